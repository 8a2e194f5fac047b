package simplex

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/frangcisneros/simplex/lp"
)

// phaseOutcome is the terminal condition of one pivot loop.
type phaseOutcome uint8

const (
	outcomeOptimal phaseOutcome = iota
	outcomeUnbounded
	outcomeBudget
)

// Engine orchestrates the two-phase Simplex method. One Engine owns at
// most one tableau, rebuilt from scratch at the start of every Solve call;
// no state is shared across calls beyond that reusable slot. Engines are
// not safe for concurrent use.
type Engine struct {
	opts Options
	log  *zap.Logger

	tab    *tableau
	steps  []Step
	warned bool

	// Retained from the last optimal solve for sensitivity analysis.
	res      *Result
	origC    []float64
	origB    []float64
	varNames []string
	conNames []string
}

// New creates an Engine with the given options applied over
// DefaultOptions. The logger is an injected collaborator; the engine holds
// no process-wide mutable state.
func New(opts ...Option) *Engine {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.SafetyIterations >= o.MaxIterations {
		o.SafetyIterations = o.MaxIterations * 9 / 10
		if o.SafetyIterations < 1 {
			o.SafetyIterations = 1
		}
	}

	return &Engine{opts: o, log: o.Logger}
}

// Solve runs a fresh, independent two-phase solve of p.
//
// Infeasible, unbounded and non-convergent outcomes are reported through
// Result.Status with a nil error so batch callers can inspect statuses
// uniformly. A non-nil error means a fatal condition: an invalid problem
// definition (surfaced before any pivoting) or an ill-conditioned pivot /
// unrepairable degenerate basis mid-solve; the accompanying Result carries
// StatusError and the last extracted state.
//
// Re-running Solve with identical inputs is idempotent and produces
// bit-for-bit identical results.
func (e *Engine) Solve(p lp.Problem) (Result, error) {
	// Fresh run: drop everything from the previous solve.
	e.tab = nil
	e.steps = nil
	e.warned = false
	e.res = nil

	if err := p.Validate(); err != nil {
		return Result{Status: StatusError, Solution: map[string]float64{}}, fmt.Errorf("simplex: invalid problem: %w", err)
	}

	e.origC = append([]float64(nil), p.Objective...)
	e.origB = append([]float64(nil), p.RHS...)
	e.varNames = p.VariableNames()
	e.conNames = p.ConstraintNames()

	tab, err := newTableau(p, &e.opts)
	if err != nil {
		return Result{Status: StatusError, Solution: map[string]float64{}}, err
	}
	e.tab = tab

	e.log.Debug("tableau built",
		zap.Int("variables", tab.n),
		zap.Int("constraints", tab.m),
		zap.Int("artificial_vars", len(tab.artificial)),
		zap.Int("phase", tab.phase))

	iterations := 0
	phase1Iterations := 0

	if tab.phase == 1 {
		outcome, err := e.runPhase(tab, &iterations)
		phase1Iterations = iterations
		if err != nil {
			return e.finish(StatusError, iterations, phase1Iterations), err
		}
		switch outcome {
		case outcomeBudget:
			return e.finish(StatusError, iterations, phase1Iterations), nil
		case outcomeUnbounded:
			// A Phase-1 objective is bounded below by zero; reaching this
			// branch means the tableau numerics broke down.
			e.log.Warn("unbounded direction detected in phase 1")
			return e.finish(StatusError, iterations, phase1Iterations), nil
		}
		if !tab.feasible() {
			e.log.Info("phase 1 proved infeasibility",
				zap.Float64("artificial_sum", tab.phase1Value()),
				zap.Int("iterations", iterations))
			return e.finish(StatusInfeasible, iterations, phase1Iterations), nil
		}
		if err := tab.setupPhase2(e.origC); err != nil {
			return e.finish(StatusError, iterations, phase1Iterations), err
		}
		e.log.Debug("phase 2 started", zap.Int("phase1_iterations", phase1Iterations))
	}

	outcome, err := e.runPhase(tab, &iterations)
	if err != nil {
		return e.finish(StatusError, iterations, phase1Iterations), err
	}

	var status Status
	switch outcome {
	case outcomeOptimal:
		status = StatusOptimal
	case outcomeUnbounded:
		status = StatusUnbounded
	default:
		status = StatusError
	}

	res := e.finish(status, iterations, phase1Iterations)
	if status == StatusOptimal {
		// Keep the final tableau and originals for sensitivity analysis.
		e.res = &res
	}

	return res, nil
}

// runPhase drives the optimality / entering / unboundedness / leaving /
// pivot loop until a terminal condition, sharing the solve-wide iteration
// budget across phases.
func (e *Engine) runPhase(tab *tableau, iterations *int) (phaseOutcome, error) {
	for {
		if tab.isOptimal() {
			return outcomeOptimal, nil
		}
		if *iterations >= e.opts.MaxIterations {
			e.log.Warn("iteration hard cap reached",
				zap.Int("iterations", *iterations),
				zap.Int("phase", tab.phase))
			return outcomeBudget, nil
		}
		if !e.warned && *iterations >= e.opts.SafetyIterations {
			e.warned = true
			e.log.Warn("iteration count approaching hard cap",
				zap.Int("iterations", *iterations),
				zap.Int("safety_threshold", e.opts.SafetyIterations),
				zap.Int("hard_cap", e.opts.MaxIterations))
		}

		col := tab.chooseEntering()
		if col < 0 {
			return outcomeOptimal, nil
		}
		if tab.isUnbounded(col) {
			return outcomeUnbounded, nil
		}
		row := tab.chooseLeaving(col)
		if row < 0 {
			return outcomeUnbounded, nil
		}
		if err := tab.pivot(row, col); err != nil {
			return outcomeOptimal, err
		}
		*iterations++

		if e.opts.RecordSteps {
			e.steps = append(e.steps, Step{
				Iteration: *iterations,
				Phase:     tab.phase,
				Matrix:    tab.mat.RowSlices(),
				BasicVars: append([]int(nil), tab.basic...),
				Entering:  col,
				Leaving:   row,
			})
		}
	}
}

// finish extracts the solution from the current tableau and assembles the
// structured result.
func (e *Engine) finish(status Status, iterations, phase1Iterations int) Result {
	x, value := e.tab.solution(e.origC)
	solution := make(map[string]float64, len(x))
	for j, name := range e.varNames {
		solution[name] = x[j]
	}

	e.log.Info("solve terminated",
		zap.String("status", status.String()),
		zap.Float64("objective", value),
		zap.Int("iterations", iterations),
		zap.Int("phase1_iterations", phase1Iterations))

	return Result{
		Status:           status,
		Solution:         solution,
		ObjectiveValue:   value,
		Iterations:       iterations,
		Phase1Iterations: phase1Iterations,
		Steps:            e.steps,
	}
}
