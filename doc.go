// Package simplex is a pure-Go toolkit for linear programming with the
// two-phase Simplex method — from problem modelling to post-optimal
// sensitivity analysis.
//
// What the module provides:
//
//	• Problem modelling: objective, constraint matrix, ≤ / ≥ / = relations,
//	  maximize or minimize — with strict dimension validation
//	• A dense-tableau two-phase Simplex engine with Bland's anti-cycling
//	  tie-breaking and per-iteration snapshots for reporting
//	• Shadow prices, objective-coefficient ranging and RHS ranging on the
//	  optimal tableau
//	• Deterministic results: identical inputs yield bit-for-bit identical
//	  solutions, iteration counts and snapshots
//
// Everything is organized under three subpackages plus a small CLI:
//
//	lp/         — immutable problem definitions & validation
//	matrix/     — row-major dense float64 matrices backing the tableau
//	simplex/    — the two-phase engine and the sensitivity analyzer
//	cmd/lpsolve — YAML-driven command-line front end
//
// Quick sketch:
//
//	maximize 3x1 + 2x2
//	s.t.     2x1 +  x2 ≤ 100
//	          x1 +  x2 ≤ 80
//	          x1       ≤ 40
//
// solves to x1=20, x2=60, objective 180. See the simplex package examples
// for the runnable version.
//
//	go get github.com/frangcisneros/simplex
package simplex
