// Package lp defines the immutable problem-definition model consumed by the
// simplex engine: an objective vector, a dense constraint matrix, a
// right-hand-side vector, one relation (≤, ≥, =) per constraint row, and an
// optimization direction.
//
// A Problem is plain data. Validate enforces the shape invariants — A has
// exactly m rows of exactly n columns, len(RHS) == len(Relations) == m —
// and rejects non-finite coefficients before any solver work begins, so
// construction-time errors surface before the first pivot.
//
// Variable and constraint display names are decoupled from column/row
// indices through explicit index→name tables (VariableNames,
// ConstraintNames). Callers may supply their own names; defaults are
// x1..xn and c1..cm.
//
// Errors (sentinel):
//
//	– ErrNoObjective        if the objective vector is empty.
//	– ErrNoConstraints      if the constraint matrix has no rows.
//	– ErrDimensionMismatch  if A, RHS, Relations or Names disagree in shape.
//	– ErrUnknownRelation    if a relation tag is not one of "<=", ">=", "=".
//	– ErrNonFiniteValue     if any coefficient is NaN or ±Inf.
package lp
