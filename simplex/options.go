package simplex

import (
	"math"

	"go.uber.org/zap"
)

// DEFAULTS — single source of truth for zero-value behavior.
const (
	// DefaultTolerance is the numerical tolerance for optimality and
	// feasibility comparisons; floating-point drift accumulates over many
	// pivots, so no comparison uses exact equality.
	DefaultTolerance = 1e-9

	// DefaultPivotTolerance is the magnitude below which a pivot element
	// is treated as zero. Pivoting on such an element signals an
	// ill-conditioned formulation, not a retryable condition.
	DefaultPivotTolerance = 1e-10

	// DefaultFeasibilityTolerance is the slack allowed when verifying that
	// a recovered solution satisfies the original constraints.
	DefaultFeasibilityTolerance = 1e-6

	// DefaultMaxIterations is the hard cap on total pivots per solve; it
	// is the only termination guarantee for pathological inputs.
	DefaultMaxIterations = 1000

	// DefaultSafetyIterations is the warning threshold before the hard
	// cap; crossing it logs a warning through the injected logger.
	DefaultSafetyIterations = 900
)

const (
	panicToleranceInvalid  = "simplex: WithTolerance: tol must be finite and positive"
	panicPivotTolInvalid   = "simplex: WithPivotTolerance: tol must be finite and positive"
	panicIterationsInvalid = "simplex: WithMaxIterations: limit must be positive"
	panicSafetyInvalid     = "simplex: WithSafetyIterations: threshold must be positive"
)

// Options configures one Engine. Construct via DefaultOptions or New with
// functional options; the zero value is not valid.
type Options struct {
	// Tolerance is the numerical comparison tolerance.
	Tolerance float64

	// PivotTolerance is the near-zero pivot threshold.
	PivotTolerance float64

	// MaxIterations is the hard cap on total pivots per solve.
	MaxIterations int

	// SafetyIterations is the warning threshold before the hard cap.
	SafetyIterations int

	// RecordSteps controls whether per-pivot snapshots are collected.
	RecordSteps bool

	// Logger receives engine telemetry; defaults to zap.NewNop so the
	// core carries no process-wide mutable state.
	Logger *zap.Logger
}

// Option represents a functional option for configuring an Engine.
type Option func(*Options)

// DefaultOptions returns the documented defaults: snapshots on, no-op
// logger, tolerances and caps from the constants above.
func DefaultOptions() Options {
	return Options{
		Tolerance:        DefaultTolerance,
		PivotTolerance:   DefaultPivotTolerance,
		MaxIterations:    DefaultMaxIterations,
		SafetyIterations: DefaultSafetyIterations,
		RecordSteps:      true,
		Logger:           zap.NewNop(),
	}
}

// WithTolerance overrides the numerical comparison tolerance.
// Panics on non-finite or non-positive values (programmer error).
func WithTolerance(tol float64) Option {
	return func(o *Options) {
		if !(tol > 0) || math.IsInf(tol, 0) {
			panic(panicToleranceInvalid)
		}
		o.Tolerance = tol
	}
}

// WithPivotTolerance overrides the near-zero pivot threshold.
// Panics on non-finite or non-positive values (programmer error).
func WithPivotTolerance(tol float64) Option {
	return func(o *Options) {
		if !(tol > 0) || math.IsInf(tol, 0) {
			panic(panicPivotTolInvalid)
		}
		o.PivotTolerance = tol
	}
}

// WithMaxIterations overrides the hard iteration cap.
// Panics on non-positive limits (programmer error).
func WithMaxIterations(limit int) Option {
	return func(o *Options) {
		if limit <= 0 {
			panic(panicIterationsInvalid)
		}
		o.MaxIterations = limit
		// Keep the safety threshold below the cap when the caller shrinks
		// the cap without touching the threshold. The derived threshold
		// stays positive so it remains a value WithSafetyIterations accepts.
		if o.SafetyIterations >= limit {
			o.SafetyIterations = limit * 9 / 10
			if o.SafetyIterations < 1 {
				o.SafetyIterations = 1
			}
		}
	}
}

// WithSafetyIterations overrides the warning threshold.
// Panics on non-positive thresholds (programmer error).
func WithSafetyIterations(threshold int) Option {
	return func(o *Options) {
		if threshold <= 0 {
			panic(panicSafetyInvalid)
		}
		o.SafetyIterations = threshold
	}
}

// WithoutSteps disables per-pivot snapshot recording; batch callers that
// never render reports save the O(iterations · tableau) memory.
func WithoutSteps() Option {
	return func(o *Options) {
		o.RecordSteps = false
	}
}

// WithLogger injects the telemetry logger. A nil logger falls back to
// zap.NewNop.
func WithLogger(log *zap.Logger) Option {
	return func(o *Options) {
		if log == nil {
			log = zap.NewNop()
		}
		o.Logger = log
	}
}
