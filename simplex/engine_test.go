package simplex_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/frangcisneros/simplex/lp"
	"github.com/frangcisneros/simplex/simplex"
)

// production is the classic bounded maximization problem:
// maximize 3x1+2x2 s.t. 2x1+x2≤100, x1+x2≤80, x1≤40.
func production() lp.Problem {
	return lp.Problem{
		Objective: []float64{3, 2},
		A:         [][]float64{{2, 1}, {1, 1}, {1, 0}},
		RHS:       []float64{100, 80, 40},
		Relations: []lp.Relation{lp.LessEq, lp.LessEq, lp.LessEq},
		Maximize:  true,
	}
}

// twoPhase mixes ≥ and = rows, forcing Phase 1:
// minimize 2x1+3x2 s.t. 2x1+x2≥4, x1+2x2≥5, x1+x2=6.
func twoPhase() lp.Problem {
	return lp.Problem{
		Objective: []float64{2, 3},
		A:         [][]float64{{2, 1}, {1, 2}, {1, 1}},
		RHS:       []float64{4, 5, 6},
		Relations: []lp.Relation{lp.GreaterEq, lp.GreaterEq, lp.Equal},
		Maximize:  false,
	}
}

// carpentry is the sensitivity-analysis fixture:
// maximize 80x1+50x2 s.t. 4x1+2x2≤200, x1+x2≤60.
func carpentry() lp.Problem {
	return lp.Problem{
		Objective: []float64{80, 50},
		A:         [][]float64{{4, 2}, {1, 1}},
		RHS:       []float64{200, 60},
		Relations: []lp.Relation{lp.LessEq, lp.LessEq},
		Maximize:  true,
	}
}

// requireFeasible verifies every original constraint row against the
// recovered solution, and non-negativity of every variable.
func requireFeasible(t *testing.T, p lp.Problem, res simplex.Result) {
	t.Helper()
	names := p.VariableNames()
	x := make([]float64, len(names))
	for j, name := range names {
		v, ok := res.Solution[name]
		require.True(t, ok, "solution missing variable %s", name)
		require.GreaterOrEqual(t, v, -simplex.DefaultTolerance, "negative variable %s", name)
		x[j] = v
	}
	for i, row := range p.A {
		lhs := 0.0
		for j, a := range row {
			lhs += a * x[j]
		}
		switch p.Relations[i] {
		case lp.LessEq:
			require.LessOrEqual(t, lhs, p.RHS[i]+simplex.DefaultFeasibilityTolerance, "row %d", i)
		case lp.GreaterEq:
			require.GreaterOrEqual(t, lhs, p.RHS[i]-simplex.DefaultFeasibilityTolerance, "row %d", i)
		case lp.Equal:
			require.InDelta(t, p.RHS[i], lhs, simplex.DefaultFeasibilityTolerance, "row %d", i)
		}
	}
}

func TestSolve_BoundedMaximization(t *testing.T) {
	res, err := simplex.New().Solve(production())
	require.NoError(t, err)
	require.Equal(t, simplex.StatusOptimal, res.Status)

	require.InDelta(t, 20, res.Solution["x1"], 1e-9)
	require.InDelta(t, 60, res.Solution["x2"], 1e-9)
	require.InDelta(t, 180, res.ObjectiveValue, 1e-9)

	// no artificial variables: Phase 1 skipped entirely
	require.Zero(t, res.Phase1Iterations)
	require.Greater(t, res.Iterations, 0)
	for _, step := range res.Steps {
		require.Equal(t, 2, step.Phase)
	}

	requireFeasible(t, production(), res)
}

func TestSolve_TwoPhase(t *testing.T) {
	p := twoPhase()
	res, err := simplex.New().Solve(p)
	require.NoError(t, err)
	require.Equal(t, simplex.StatusOptimal, res.Status)

	require.Greater(t, res.Phase1Iterations, 0, "a ≥/= mix must exercise Phase 1")
	require.InDelta(t, 6, res.Solution["x1"], 1e-9)
	require.InDelta(t, 0, res.Solution["x2"], 1e-9)
	require.InDelta(t, 12, res.ObjectiveValue, 1e-9)

	requireFeasible(t, p, res)
}

func TestSolve_Unbounded(t *testing.T) {
	p := lp.Problem{
		Objective: []float64{1, 1},
		A:         [][]float64{{1, -1}},
		RHS:       []float64{1},
		Relations: []lp.Relation{lp.LessEq},
		Maximize:  true,
	}
	res, err := simplex.New().Solve(p)
	require.NoError(t, err)
	require.Equal(t, simplex.StatusUnbounded, res.Status)

	// the solution map is always present, zero-filled for non-basic originals
	require.Contains(t, res.Solution, "x1")
	require.Contains(t, res.Solution, "x2")
}

func TestSolve_Infeasible(t *testing.T) {
	// Non-positive coefficients cannot reach a positive RHS under x ≥ 0.
	p := lp.Problem{
		Objective: []float64{1, 1},
		A:         [][]float64{{-1, -1}},
		RHS:       []float64{2},
		Relations: []lp.Relation{lp.GreaterEq},
		Maximize:  true,
	}
	res, err := simplex.New().Solve(p)
	require.NoError(t, err)
	require.Equal(t, simplex.StatusInfeasible, res.Status)
}

func TestSolve_SignConsistency(t *testing.T) {
	// The reported value must equal dot(originalC, x) for min and max alike.
	for _, p := range []lp.Problem{production(), twoPhase(), carpentry()} {
		res, err := simplex.New().Solve(p)
		require.NoError(t, err)
		require.Equal(t, simplex.StatusOptimal, res.Status)

		dot := 0.0
		for j, name := range p.VariableNames() {
			dot += p.Objective[j] * res.Solution[name]
		}
		require.InDelta(t, dot, res.ObjectiveValue, 1e-9)
	}
}

func TestSolve_Determinism(t *testing.T) {
	e := simplex.New()
	first, err := e.Solve(twoPhase())
	require.NoError(t, err)
	second, err := e.Solve(twoPhase())
	require.NoError(t, err)

	require.Equal(t, first.Status, second.Status)
	require.Equal(t, first.Solution, second.Solution)
	require.Equal(t, first.ObjectiveValue, second.ObjectiveValue)
	require.Equal(t, first.Iterations, second.Iterations)
	require.Equal(t, first.Phase1Iterations, second.Phase1Iterations)
	require.Equal(t, first.Steps, second.Steps)
}

func TestSolve_DegenerateTerminates(t *testing.T) {
	// Duplicated rows produce tied ratios on every pivot; Bland's
	// tie-breaking must still terminate well inside the cap.
	p := lp.Problem{
		Objective: []float64{2, 3},
		A:         [][]float64{{1, 1}, {1, 1}},
		RHS:       []float64{4, 4},
		Relations: []lp.Relation{lp.LessEq, lp.LessEq},
		Maximize:  true,
	}
	res, err := simplex.New().Solve(p)
	require.NoError(t, err)
	require.Equal(t, simplex.StatusOptimal, res.Status)
	require.Less(t, res.Iterations, simplex.DefaultMaxIterations)
	require.InDelta(t, 12, res.ObjectiveValue, 1e-9)
}

func TestSolve_RedundantEqualityRow(t *testing.T) {
	// The second row is twice the first. Phase 1 drives one artificial out,
	// the duplicate row zeroes out entirely, and the remaining artificial
	// stays basic at zero with no identity column to adopt. The row
	// constrains nothing and must be dropped from the basis, not abort the
	// solve.
	p := lp.Problem{
		Objective: []float64{1, 1},
		A:         [][]float64{{1, 1}, {2, 2}},
		RHS:       []float64{2, 4},
		Relations: []lp.Relation{lp.Equal, lp.Equal},
		Maximize:  false,
	}
	res, err := simplex.New().Solve(p)
	require.NoError(t, err)
	require.Equal(t, simplex.StatusOptimal, res.Status)
	require.InDelta(t, 2, res.ObjectiveValue, 1e-9)
	requireFeasible(t, p, res)
}

func TestSolve_UnrepairableBasisIsFatal(t *testing.T) {
	// x1+x2 = 2 overlapping x1+x2 ≥ 2 ends Phase 1 with an artificial basic
	// at zero in a row that still carries the surplus coefficient: not
	// redundant, and no surviving column forms an identity pattern. The
	// solve must abort rather than continue on a broken basis.
	p := lp.Problem{
		Objective: []float64{1, 1},
		A:         [][]float64{{1, 1}, {1, 1}},
		RHS:       []float64{2, 2},
		Relations: []lp.Relation{lp.Equal, lp.GreaterEq},
		Maximize:  false,
	}
	res, err := simplex.New().Solve(p)
	require.ErrorIs(t, err, simplex.ErrDegenerateBasis)
	require.Equal(t, simplex.StatusError, res.Status)
}

func TestSolve_InvalidProblemIsFatal(t *testing.T) {
	p := production()
	p.RHS = p.RHS[:1]
	res, err := simplex.New().Solve(p)
	require.ErrorIs(t, err, lp.ErrDimensionMismatch)
	require.Equal(t, simplex.StatusError, res.Status)
}

func TestSolve_IterationBudgetExhausted(t *testing.T) {
	// A one-pivot budget cannot finish the production problem; the caller
	// still receives a structured result, not an error.
	e := simplex.New(simplex.WithMaxIterations(1))
	res, err := e.Solve(production())
	require.NoError(t, err)
	require.Equal(t, simplex.StatusError, res.Status)
	require.Equal(t, 1, res.Iterations)
}

func TestSolve_SafetyThresholdWarns(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	e := simplex.New(
		simplex.WithLogger(zap.New(core)),
		simplex.WithMaxIterations(10),
		simplex.WithSafetyIterations(1),
	)
	_, err := e.Solve(production())
	require.NoError(t, err)

	require.Equal(t, 1, logs.FilterMessage("iteration count approaching hard cap").Len())
}

func TestSolve_IllConditionedPivotIsFatal(t *testing.T) {
	// The only eligible pivot element sits between the comparison
	// tolerance and an inflated pivot tolerance.
	p := lp.Problem{
		Objective: []float64{1},
		A:         [][]float64{{1e-6}},
		RHS:       []float64{1},
		Relations: []lp.Relation{lp.LessEq},
		Maximize:  true,
	}
	e := simplex.New(simplex.WithPivotTolerance(1e-3))
	res, err := e.Solve(p)
	require.ErrorIs(t, err, simplex.ErrIllConditioned)
	require.Equal(t, simplex.StatusError, res.Status)
}

func TestSolve_NegativeRHSNormalization(t *testing.T) {
	// -x1 - x2 ≤ -2 normalizes to x1 + x2 ≥ 2 and must go through Phase 1.
	p := lp.Problem{
		Objective: []float64{1, 2},
		A:         [][]float64{{-1, -1}, {1, 0}},
		RHS:       []float64{-2, 10},
		Relations: []lp.Relation{lp.LessEq, lp.LessEq},
		Maximize:  false,
	}
	res, err := simplex.New().Solve(p)
	require.NoError(t, err)
	require.Equal(t, simplex.StatusOptimal, res.Status)
	require.Greater(t, res.Phase1Iterations, 0)
	require.InDelta(t, 2, res.Solution["x1"], 1e-9)
	require.InDelta(t, 0, res.Solution["x2"], 1e-9)
	require.InDelta(t, 2, res.ObjectiveValue, 1e-9)
	requireFeasible(t, p, res)
}

func TestSolve_CustomNamesFlowThrough(t *testing.T) {
	p := carpentry()
	p.Names = []string{"tables", "chairs"}
	res, err := simplex.New().Solve(p)
	require.NoError(t, err)
	require.InDelta(t, 40, res.Solution["tables"], 1e-9)
	require.InDelta(t, 20, res.Solution["chairs"], 1e-9)
}

func TestSolve_StepSnapshots(t *testing.T) {
	p := production()
	res, err := simplex.New().Solve(p)
	require.NoError(t, err)
	require.NotEmpty(t, res.Steps)

	m := p.NumConstraints()
	for i, step := range res.Steps {
		require.Equal(t, i+1, step.Iteration)
		require.Len(t, step.Matrix, m+1, "objective row included")
		require.Len(t, step.BasicVars, m)
		require.GreaterOrEqual(t, step.Entering, 0)
		require.GreaterOrEqual(t, step.Leaving, 0)
		require.Equal(t, step.BasicVars[step.Leaving], step.Entering,
			"the entering column becomes basic in the leaving row")
	}

	// snapshots are independent copies
	res.Steps[0].Matrix[0][0] = math.Inf(1)
	again, err := simplex.New().Solve(p)
	require.NoError(t, err)
	require.NotEqual(t, math.Inf(1), again.Steps[0].Matrix[0][0])
}

func TestSolve_WithoutSteps(t *testing.T) {
	res, err := simplex.New(simplex.WithoutSteps()).Solve(production())
	require.NoError(t, err)
	require.Equal(t, simplex.StatusOptimal, res.Status)
	require.Nil(t, res.Steps)
}

func TestStatus_String(t *testing.T) {
	require.Equal(t, "optimal", simplex.StatusOptimal.String())
	require.Equal(t, "infeasible", simplex.StatusInfeasible.String())
	require.Equal(t, "unbounded", simplex.StatusUnbounded.String())
	require.Equal(t, "error", simplex.StatusError.String())
}
