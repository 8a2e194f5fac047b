package simplex

import (
	"errors"
	"strconv"
)

// Sentinel errors returned by the engine. All non-fatal outcomes
// (infeasible, unbounded, iteration budget exhausted) are reported through
// Result.Status instead, so batch callers can inspect statuses uniformly.
var (
	// ErrIllConditioned indicates a pivot element below PivotTolerance.
	// Continuing would silently corrupt the tableau, so the solve aborts.
	ErrIllConditioned = errors.New("simplex: pivot element below tolerance")

	// ErrDegenerateBasis indicates that, after removing artificial columns,
	// a basis row held an eliminated artificial variable and no surviving
	// column formed an identity pattern to adopt in its place.
	ErrDegenerateBasis = errors.New("simplex: basis repair failed after artificial elimination")

	// ErrNotOptimal indicates a sensitivity-analysis request without a
	// preceding solve that terminated StatusOptimal.
	ErrNotOptimal = errors.New("simplex: sensitivity analysis requires an optimal solve")
)

// Status is the termination status of a solve.
type Status uint8

const (
	// StatusOptimal: an optimal basic feasible solution was found.
	StatusOptimal Status = iota

	// StatusInfeasible: Phase 1 proved the constraint set has no feasible
	// point.
	StatusInfeasible

	// StatusUnbounded: the objective can improve without limit.
	StatusUnbounded

	// StatusError: the iteration budget was exhausted before termination.
	StatusError
)

// statusNames maps Status values to display strings.
var statusNames = [...]string{"optimal", "infeasible", "unbounded", "error"}

// String returns the lower-case status name.
func (s Status) String() string {
	if int(s) >= len(statusNames) {
		return "status(" + strconv.Itoa(int(s)) + ")"
	}
	return statusNames[s]
}

// Step is one per-pivot snapshot, recorded for report-generation
// collaborators. The engine itself never reads recorded steps.
//
// The shape of this type is a stability contract: iteration index, phase,
// full matrix copy, basic-variable vector, entering column and leaving row.
type Step struct {
	// Iteration is the 1-based pivot counter across both phases.
	Iteration int

	// Phase is 1 or 2, the phase the pivot belonged to.
	Phase int

	// Matrix is an independent copy of the full tableau after the pivot,
	// one inner slice per row; the last row is the objective row and the
	// last column the right-hand side.
	Matrix [][]float64

	// BasicVars maps each constraint row to its basic column after the
	// pivot.
	BasicVars []int

	// Entering is the column index that entered the basis.
	Entering int

	// Leaving is the row index whose basic variable left the basis.
	Leaving int
}

// Result is the structured outcome of one Solve call.
type Result struct {
	// Status is the termination status.
	Status Status

	// Solution maps every original variable name to its value. It is
	// always populated, zero-filled for non-basic originals. For
	// non-optimal statuses the values reflect the last tableau state and
	// carry no optimality meaning.
	Solution map[string]float64

	// ObjectiveValue is c·x with the original (never negated) objective
	// vector and the recovered variable vector.
	ObjectiveValue float64

	// Iterations is the total pivot count across both phases.
	Iterations int

	// Phase1Iterations is the pivot count spent in Phase 1; zero when the
	// problem needed no artificial variables.
	Phase1Iterations int

	// Steps is the ordered, append-only snapshot log, one entry per pivot.
	// Nil when snapshot recording is disabled via WithoutSteps.
	Steps []Step
}

// Range is a closed interval; Min and Max may be ±Inf for one-sided or
// unbounded ranges.
type Range struct {
	Min float64
	Max float64
}

// SensitivityReport carries the post-optimal analysis of a solve.
type SensitivityReport struct {
	// ShadowPrices maps constraint names to their dual values — the
	// marginal objective change per unit of RHS relaxation. Equality
	// constraints have no slack/surplus column and are omitted.
	ShadowPrices map[string]float64

	// OptimalityRanges maps original-variable names to the interval their
	// objective coefficient may move in while the current basis stays
	// optimal.
	OptimalityRanges map[string]Range

	// FeasibilityRanges maps constraint names to the interval their RHS
	// may move in while the current basis stays optimal. Equality
	// constraints are omitted.
	FeasibilityRanges map[string]Range
}
