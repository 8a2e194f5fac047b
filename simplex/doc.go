// Package simplex implements the two-phase Simplex method for linear
// programming on a dense tableau, plus post-optimal sensitivity analysis.
//
// The engine consumes a validated lp.Problem and produces a Result whose
// Status distinguishes optimal, infeasible, unbounded and non-convergent
// outcomes as values; only construction errors, ill-conditioned pivots and
// contract violations surface as Go errors.
//
// Algorithm outline:
//
//  1. Normalization — rows with negative RHS are negated (flipping ≤↔≥),
//     then slack (≤), surplus+artificial (≥) and artificial (=) columns are
//     appended so every row starts with an identity basic column.
//  2. Phase 1 — when artificial variables exist, minimize their sum. A
//     non-zero Phase-1 optimum, or an artificial variable still basic with
//     a non-zero value, proves infeasibility.
//  3. Phase 2 — artificial columns are removed, the objective row is
//     rebuilt from the original coefficients, and the same pivot loop
//     optimizes the real objective.
//
// Entering variables are the most-violating reduced cost with ties broken
// by smallest column index (Bland's rule); leaving rows come from the
// minimum-ratio test with ties broken by smallest row index. Together
// these guarantee termination under degeneracy within the iteration cap.
//
// Every pivot appends a Step snapshot (full tableau copy, basic-variable
// vector, entering column, leaving row) to Result.Steps; the engine never
// reads that log, it exists solely for report-generation collaborators.
//
// Complexity:
//
//	– Time:  O(iterations · m · w) where m = constraints and w = total
//	  columns after normalization; iterations is capped by MaxIterations.
//	– Space: O(m · w) for the tableau, plus O(iterations · m · w) when
//	  snapshot recording is enabled.
//
// Determinism: fixed scan orders, no map iteration in the pivot loop, no
// randomness. Solving the same problem twice yields identical statuses,
// solutions, iteration counts and snapshots.
//
// Errors (sentinel):
//
//	– ErrIllConditioned  if a pivot element falls below PivotTolerance.
//	– ErrDegenerateBasis if a basis row cannot be repaired after artificial
//	  variables are removed (ambiguous degenerate case).
//	– ErrNotOptimal      if sensitivity analysis is requested without a
//	  preceding optimal solve.
package simplex
