package lp

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// Sentinel errors returned by problem validation.
var (
	// ErrNoObjective indicates an empty objective vector.
	ErrNoObjective = errors.New("lp: objective vector is empty")

	// ErrNoConstraints indicates a constraint matrix with zero rows.
	ErrNoConstraints = errors.New("lp: constraint matrix has no rows")

	// ErrDimensionMismatch indicates that A, RHS, Relations or Names
	// disagree on the problem dimensions.
	ErrDimensionMismatch = errors.New("lp: dimension mismatch")

	// ErrUnknownRelation indicates a relation tag outside {<=, >=, =}.
	ErrUnknownRelation = errors.New("lp: unknown constraint relation")

	// ErrNonFiniteValue indicates a NaN or ±Inf coefficient in the
	// objective, constraint matrix or right-hand side.
	ErrNonFiniteValue = errors.New("lp: non-finite value in problem data")
)

// Relation is the comparison between a constraint row and its RHS value.
type Relation uint8

const (
	// LessEq is a "≤" constraint; it receives one slack variable.
	LessEq Relation = iota

	// GreaterEq is a "≥" constraint; it receives one surplus and one
	// artificial variable.
	GreaterEq

	// Equal is an "=" constraint; it receives one artificial variable.
	Equal
)

// relationTags maps Relation values to their canonical text tags.
var relationTags = [...]string{"<=", ">=", "="}

// String returns the canonical tag ("<=", ">=", "=").
func (r Relation) String() string {
	if int(r) >= len(relationTags) {
		return "relation(" + strconv.Itoa(int(r)) + ")"
	}
	return relationTags[r]
}

// Valid reports whether r is one of the three defined relations.
func (r Relation) Valid() bool {
	return r <= Equal
}

// Flip mirrors the relation across a row negation: ≤ becomes ≥ and vice
// versa; = is its own mirror.
func (r Relation) Flip() Relation {
	switch r {
	case LessEq:
		return GreaterEq
	case GreaterEq:
		return LessEq
	default:
		return r
	}
}

// ParseRelation converts a text tag into a Relation. Accepted tags are
// "<=" (also "≤" and "<"), ">=" (also "≥" and ">"), and "=" (also "==").
// Anything else yields ErrUnknownRelation.
func ParseRelation(tag string) (Relation, error) {
	switch tag {
	case "<=", "≤", "<":
		return LessEq, nil
	case ">=", "≥", ">":
		return GreaterEq, nil
	case "=", "==":
		return Equal, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownRelation, tag)
	}
}

// Problem is a complete linear-programming problem definition:
//
//	optimize   c·x            (maximize if Maximize, else minimize)
//	subject to A·x  rel  RHS  (one Relation per row)
//	           x ≥ 0
//
// Problem values are treated as immutable by the solver; a solve never
// mutates the slices it is handed.
type Problem struct {
	// Objective holds the n objective coefficients c.
	Objective []float64

	// A holds the m×n constraint coefficient matrix, row-major.
	A [][]float64

	// RHS holds the m right-hand-side values b.
	RHS []float64

	// Relations holds one Relation per constraint row.
	Relations []Relation

	// Maximize selects the optimization direction.
	Maximize bool

	// Names optionally assigns display names to the original variables.
	// When nil, defaults x1..xn are used. When non-nil, len(Names) must
	// equal len(Objective).
	Names []string

	// ConstraintLabels optionally assigns display names to constraints.
	// When nil, defaults c1..cm are used. When non-nil, its length must
	// equal the number of rows of A.
	ConstraintLabels []string
}

// NumVariables returns n, the number of original decision variables.
func (p Problem) NumVariables() int { return len(p.Objective) }

// NumConstraints returns m, the number of constraint rows.
func (p Problem) NumConstraints() int { return len(p.A) }

// Validate checks the shape and numeric invariants of the definition.
// It returns the first violated sentinel, wrapped with row/column context
// where helpful, or nil if the problem is well-formed.
func (p Problem) Validate() error {
	n := p.NumVariables()
	m := p.NumConstraints()
	if n == 0 {
		return ErrNoObjective
	}
	if m == 0 {
		return ErrNoConstraints
	}
	if len(p.RHS) != m {
		return fmt.Errorf("%w: %d constraint rows but %d RHS values", ErrDimensionMismatch, m, len(p.RHS))
	}
	if len(p.Relations) != m {
		return fmt.Errorf("%w: %d constraint rows but %d relations", ErrDimensionMismatch, m, len(p.Relations))
	}
	if p.Names != nil && len(p.Names) != n {
		return fmt.Errorf("%w: %d variables but %d names", ErrDimensionMismatch, n, len(p.Names))
	}
	if p.ConstraintLabels != nil && len(p.ConstraintLabels) != m {
		return fmt.Errorf("%w: %d constraints but %d labels", ErrDimensionMismatch, m, len(p.ConstraintLabels))
	}
	for j, c := range p.Objective {
		if !isFinite(c) {
			return fmt.Errorf("%w: objective[%d]", ErrNonFiniteValue, j)
		}
	}
	for i, row := range p.A {
		if len(row) != n {
			return fmt.Errorf("%w: row %d has %d columns, want %d", ErrDimensionMismatch, i, len(row), n)
		}
		for j, a := range row {
			if !isFinite(a) {
				return fmt.Errorf("%w: A[%d][%d]", ErrNonFiniteValue, i, j)
			}
		}
	}
	for i, b := range p.RHS {
		if !isFinite(b) {
			return fmt.Errorf("%w: RHS[%d]", ErrNonFiniteValue, i)
		}
		if !p.Relations[i].Valid() {
			return fmt.Errorf("%w: row %d", ErrUnknownRelation, i)
		}
	}

	return nil
}

// VariableNames returns the index→name table for the original variables.
// The result is a fresh slice; mutating it does not affect the Problem.
func (p Problem) VariableNames() []string {
	names := make([]string, p.NumVariables())
	for j := range names {
		if p.Names != nil && p.Names[j] != "" {
			names[j] = p.Names[j]
			continue
		}
		names[j] = "x" + strconv.Itoa(j+1)
	}
	return names
}

// ConstraintNames returns the index→name table for the constraint rows.
func (p Problem) ConstraintNames() []string {
	names := make([]string, p.NumConstraints())
	for i := range names {
		if p.ConstraintLabels != nil && p.ConstraintLabels[i] != "" {
			names[i] = p.ConstraintLabels[i]
			continue
		}
		names[i] = "c" + strconv.Itoa(i+1)
	}
	return names
}

// isFinite reports whether v is neither NaN nor ±Inf.
func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
