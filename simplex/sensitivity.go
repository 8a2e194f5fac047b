package simplex

import "math"

// Sensitivity performs post-optimal analysis against the finished tableau
// of the last Solve call. It is a pure computation: the tableau is never
// mutated. Calling it without a preceding solve that terminated
// StatusOptimal is a contract violation and returns ErrNotOptimal.
//
// Shadow prices and feasibility ranges are reported against the caller's
// original right-hand sides (normalization sign flips are undone), keyed
// by constraint name. Equality constraints have no slack/surplus column
// once artificials are removed and are omitted from both maps.
func (e *Engine) Sensitivity() (SensitivityReport, error) {
	if e.res == nil || e.res.Status != StatusOptimal {
		return SensitivityReport{}, ErrNotOptimal
	}

	t := e.tab
	obj := t.mat.Row(t.m)

	// basicRow inverts the basis: column index → constraint row, −1 if
	// non-basic.
	basicRow := make([]int, t.width)
	for j := range basicRow {
		basicRow[j] = -1
	}
	for i, bj := range t.basic {
		if bj >= 0 {
			basicRow[bj] = i
		}
	}

	report := SensitivityReport{
		ShadowPrices:      make(map[string]float64, t.m),
		OptimalityRanges:  make(map[string]Range, t.n),
		FeasibilityRanges: make(map[string]Range, t.m),
	}

	for i := 0; i < t.m; i++ {
		s := t.auxCol[i]
		if s < 0 {
			continue
		}
		// The slack column holds −y_i in the objective row; a surplus
		// column carries a −1 in the constraint, so the sign corrects
		// through auxSign. A row negated during normalization flips once
		// more to report against the caller's original constraint.
		price := -t.auxSign[i] * obj[s]
		if t.flipped[i] {
			price = -price
		}
		report.ShadowPrices[e.conNames[i]] = price
	}

	for j := 0; j < t.n; j++ {
		report.OptimalityRanges[e.varNames[j]] = e.optimalityRange(j, basicRow, obj)
	}

	for i := 0; i < t.m; i++ {
		if t.auxCol[i] < 0 {
			continue
		}
		report.FeasibilityRanges[e.conNames[i]] = e.feasibilityRange(i)
	}

	return report, nil
}

// optimalityRange computes the interval the objective coefficient of
// original variable j may move in while the current basis stays optimal.
//
// For a basic variable at row r, perturbing c_j by δ shifts every
// non-basic reduced cost k by −δ·tableau[r][k]; the optimality condition
// of the direction yields one ratio bound per non-basic column, and the
// tightest bounds on each side delimit δ. A non-basic variable only moves
// its own reduced cost, giving a one-sided interval.
func (e *Engine) optimalityRange(j int, basicRow []int, obj []float64) Range {
	t := e.tab
	c := e.origC[j]

	r := basicRow[j]
	if r < 0 {
		// Non-basic: r_j shifts one-for-one with c_j.
		if t.maximize {
			return Range{Min: math.Inf(-1), Max: c - obj[j]}
		}
		return Range{Min: c - obj[j], Max: math.Inf(1)}
	}

	row := t.mat.Row(r)
	lo, hi := math.Inf(-1), math.Inf(1)
	for k := 0; k < t.width; k++ {
		if basicRow[k] >= 0 {
			continue
		}
		a := row[k]
		if math.Abs(a) <= t.tol {
			continue
		}
		ratio := obj[k] / a
		if t.maximize == (a > 0) {
			// maximize: a>0 binds below; minimize: a<0 binds below.
			if ratio > lo {
				lo = ratio
			}
		} else if ratio < hi {
			hi = ratio
		}
	}

	return Range{Min: c + lo, Max: c + hi}
}

// feasibilityRange computes the interval the RHS of constraint i may move
// in while the current basis stays optimal. The constraint's slack/surplus
// column of the final tableau is (up to auxSign) the corresponding column
// of B⁻¹: perturbing b_i by δ shifts each basic value by δ times that
// entry, and non-negativity of the basis delimits δ.
func (e *Engine) feasibilityRange(i int) Range {
	t := e.tab
	s := t.auxCol[i]

	lo, hi := math.Inf(-1), math.Inf(1)
	for r := 0; r < t.m; r++ {
		row := t.mat.Row(r)
		entry := t.auxSign[i] * row[s]
		if math.Abs(entry) <= t.tol {
			continue
		}
		bound := -row[t.width] / entry
		if entry > 0 {
			if bound > lo {
				lo = bound
			}
		} else if bound < hi {
			hi = bound
		}
	}

	if t.flipped[i] {
		// The normalized row is the caller's row negated, so the interval
		// mirrors around zero.
		lo, hi = -hi, -lo
	}

	return Range{Min: e.origB[i] + lo, Max: e.origB[i] + hi}
}
