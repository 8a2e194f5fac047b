package simplex

import (
	"fmt"
	"math"

	"github.com/frangcisneros/simplex/lp"
	"github.com/frangcisneros/simplex/matrix"
)

// tableau is the dense augmented-matrix representation of the LP in
// canonical form, exclusively owned by one Engine for the duration of one
// solve. The matrix has shape (m+1) × (width+1): m constraint rows plus
// the objective row, width variable columns plus the RHS column. The
// objective row holds reduced costs r_j = c_j − z_j throughout; the
// defining property of a valid tableau is that every basic column's
// reduced cost is exactly zero.
type tableau struct {
	mat *matrix.Dense

	m, n  int // constraints, original variables
	width int // variable columns (excl. RHS); shrinks when artificials drop

	// basic maps each constraint row to the column index of its basic
	// variable. Values are unique and always reference an identity column.
	// A value of −1 marks a redundant row neutralized during Phase-2
	// setup; such rows are all-zero and never pivot again.
	basic []int

	// artificial is the set of artificial-variable column indices; emptied
	// when Phase 2 begins and the columns are physically removed.
	artificial map[int]bool

	// auxCol / auxSign locate each constraint's slack or surplus column
	// (+1 slack, −1 surplus). Equality rows have auxCol = −1, auxSign = 0.
	auxCol  []int
	auxSign []float64

	// flipped records rows negated during normalization (negative RHS), so
	// sensitivity output can be reported against the caller's original b.
	flipped []bool

	maximize bool
	phase    int

	tol      float64
	pivotTol float64
}

// newTableau builds the canonical-form tableau from a validated problem
// definition. Normalization:
//
//  1. Rows with negative RHS are negated and their relation mirrored
//     (≤↔≥; equality relations stay equality), so every RHS is
//     non-negative before any basic-feasible-solution claim.
//  2. One slack per ≤ row, one surplus plus one artificial per ≥ row, one
//     artificial per = row. Column layout: originals, then slack/surplus
//     in row order, then artificials in row order, then RHS.
//  3. Phase 1 when any artificial exists (cost 1 on artificial columns),
//     else Phase 2 directly from the real objective. Either way the basic
//     columns' reduced costs are zeroed row by row.
func newTableau(p lp.Problem, opts *Options) (*tableau, error) {
	n := p.NumVariables()
	m := p.NumConstraints()

	// Working copies; the Problem slices are never mutated.
	a := make([][]float64, m)
	b := make([]float64, m)
	rels := make([]lp.Relation, m)
	flipped := make([]bool, m)
	for i := 0; i < m; i++ {
		row := make([]float64, n)
		copy(row, p.A[i])
		a[i] = row
		b[i] = p.RHS[i]
		rels[i] = p.Relations[i]
		if b[i] < 0 {
			for j := range row {
				row[j] = -row[j]
			}
			b[i] = -b[i]
			rels[i] = rels[i].Flip()
			flipped[i] = true
		}
	}

	// Count auxiliary columns.
	slackSurplus, artificials := 0, 0
	for _, rel := range rels {
		switch rel {
		case lp.LessEq:
			slackSurplus++
		case lp.GreaterEq:
			slackSurplus++
			artificials++
		case lp.Equal:
			artificials++
		default:
			return nil, fmt.Errorf("%w: %v", lp.ErrUnknownRelation, rel)
		}
	}

	width := n + slackSurplus + artificials
	mat, err := matrix.NewDense(m+1, width+1)
	if err != nil {
		return nil, err
	}

	t := &tableau{
		mat:        mat,
		m:          m,
		n:          n,
		width:      width,
		basic:      make([]int, m),
		artificial: make(map[int]bool, artificials),
		auxCol:     make([]int, m),
		auxSign:    make([]float64, m),
		flipped:    flipped,
		maximize:   p.Maximize,
		tol:        opts.Tolerance,
		pivotTol:   opts.PivotTolerance,
	}

	auxNext := n
	artNext := n + slackSurplus
	for i := 0; i < m; i++ {
		row := mat.Row(i)
		copy(row[:n], a[i])
		row[width] = b[i]

		switch rels[i] {
		case lp.LessEq:
			row[auxNext] = 1
			t.auxCol[i] = auxNext
			t.auxSign[i] = 1
			t.basic[i] = auxNext
			auxNext++
		case lp.GreaterEq:
			row[auxNext] = -1
			t.auxCol[i] = auxNext
			t.auxSign[i] = -1
			auxNext++
			row[artNext] = 1
			t.artificial[artNext] = true
			t.basic[i] = artNext
			artNext++
		case lp.Equal:
			t.auxCol[i] = -1
			row[artNext] = 1
			t.artificial[artNext] = true
			t.basic[i] = artNext
			artNext++
		}
	}

	obj := mat.Row(m)
	if artificials > 0 {
		// Phase-1 objective: minimize the sum of artificial variables.
		t.phase = 1
		for j := range t.artificial {
			obj[j] = 1
		}
	} else {
		t.phase = 2
		copy(obj[:n], p.Objective)
	}
	t.zeroBasicReducedCosts()

	return t, nil
}

// zeroBasicReducedCosts subtracts multiples of each basic row from the
// objective row so every basic column's reduced cost becomes exactly zero.
func (t *tableau) zeroBasicReducedCosts() {
	obj := t.mat.Row(t.m)
	for i := 0; i < t.m; i++ {
		if t.basic[i] < 0 {
			continue
		}
		f := obj[t.basic[i]]
		if f == 0 {
			continue
		}
		row := t.mat.Row(i)
		for j := 0; j <= t.width; j++ {
			obj[j] -= f * row[j]
		}
	}
}

// isOptimal reports whether no reduced cost violates the optimality
// condition of the current phase. Phase 1 minimizes the artificial sum and
// ignores artificial columns, matching entering-candidate selection.
func (t *tableau) isOptimal() bool {
	obj := t.mat.Row(t.m)
	minimizing := t.phase == 1 || !t.maximize
	for j := 0; j < t.width; j++ {
		if t.phase == 1 && t.artificial[j] {
			continue
		}
		if minimizing {
			if obj[j] < -t.tol {
				return false
			}
		} else if obj[j] > t.tol {
			return false
		}
	}

	return true
}

// chooseEntering scans the reduced costs for the most-violating column;
// ties are broken by smallest column index (Bland's rule) via the strict
// comparison in ascending scan order. Returns −1 when no candidate exists.
// Phase 1 excludes artificial columns from candidacy.
func (t *tableau) chooseEntering() int {
	obj := t.mat.Row(t.m)
	minimizing := t.phase == 1 || !t.maximize

	best := -1
	bestViolation := 0.0
	for j := 0; j < t.width; j++ {
		if t.phase == 1 && t.artificial[j] {
			continue
		}
		v := obj[j]
		if minimizing {
			v = -v
		}
		if v > t.tol && v > bestViolation {
			best = j
			bestViolation = v
		}
	}

	return best
}

// isUnbounded reports whether no constraint row can bound an increase of
// the entering column: every entry (excluding the objective row) ≤ tol.
func (t *tableau) isUnbounded(col int) bool {
	for i := 0; i < t.m; i++ {
		if t.mat.Row(i)[col] > t.tol {
			return false
		}
	}

	return true
}

// chooseLeaving runs the minimum-ratio test over rows with a strictly
// positive entry in the entering column; ties are broken by smallest row
// index. Returns −1 when no row is eligible (unbounded; checked earlier).
func (t *tableau) chooseLeaving(col int) int {
	best := -1
	bestRatio := math.Inf(1)
	for i := 0; i < t.m; i++ {
		row := t.mat.Row(i)
		e := row[col]
		if e <= t.tol {
			continue
		}
		ratio := row[t.width] / e
		if ratio < bestRatio {
			best = i
			bestRatio = ratio
		}
	}

	return best
}

// pivot makes (row, col) the new basic position: divides the pivot row by
// the pivot element and eliminates the entering column from every other
// row, objective row included. A pivot element below pivotTol signals an
// ill-conditioned formulation and aborts the solve.
func (t *tableau) pivot(row, col int) error {
	pr := t.mat.Row(row)
	pv := pr[col]
	if math.Abs(pv) < t.pivotTol {
		return fmt.Errorf("%w: element %g at row %d, column %d", ErrIllConditioned, pv, row, col)
	}

	for j := 0; j <= t.width; j++ {
		pr[j] /= pv
	}

	for r := 0; r <= t.m; r++ {
		if r == row {
			continue
		}
		tr := t.mat.Row(r)
		f := tr[col]
		if f == 0 {
			continue
		}
		for j := 0; j <= t.width; j++ {
			tr[j] -= f * pr[j]
		}
	}

	t.basic[row] = col

	return nil
}

// phase1Value returns the current Phase-1 objective (the artificial-variable
// sum). The objective row's RHS holds −z, so the value is its negation.
func (t *tableau) phase1Value() float64 {
	return -t.mat.Row(t.m)[t.width]
}

// feasible reports whether the Phase-1 optimum proves feasibility: the
// artificial sum is ~0 and no artificial variable remains basic with a
// non-zero value.
func (t *tableau) feasible() bool {
	if math.Abs(t.phase1Value()) > t.tol {
		return false
	}
	for i := 0; i < t.m; i++ {
		if t.artificial[t.basic[i]] && math.Abs(t.mat.Row(i)[t.width]) > t.tol {
			return false
		}
	}

	return true
}

// setupPhase2 transitions the tableau to Phase 2: artificial columns are
// physically removed, the basis is remapped through the surviving-column
// index map, and the objective row is rebuilt from the original
// coefficients with basic reduced costs re-zeroed.
//
// When a row's basic variable was an eliminated artificial (degenerate
// case), the row is searched for any surviving column that still forms an
// identity pattern and that column is adopted. A row with no such column
// whose surviving entries and RHS are all ~0 encodes a redundant
// constraint; it is neutralized (basic = −1) and ignored from then on.
// Only a row that still carries non-zero coefficients aborts the solve
// with ErrDegenerateBasis.
func (t *tableau) setupPhase2(originalC []float64) error {
	if len(t.artificial) > 0 {
		drop := make(map[int]bool, len(t.artificial))
		for j := range t.artificial {
			drop[j] = true
		}
		mat, remap, err := t.mat.DropColumns(drop)
		if err != nil {
			return err
		}
		t.mat = mat
		t.width = mat.Cols() - 1

		for i := range t.auxCol {
			if t.auxCol[i] >= 0 {
				t.auxCol[i] = remap[t.auxCol[i]]
			}
		}
		for i := 0; i < t.m; i++ {
			if nj, ok := remap[t.basic[i]]; ok {
				t.basic[i] = nj
				continue
			}
			j := t.findIdentityColumn(i)
			if j < 0 {
				if !t.rowRedundant(i) {
					return fmt.Errorf("%w: row %d", ErrDegenerateBasis, i)
				}
				t.basic[i] = -1
				continue
			}
			t.basic[i] = j
		}
		t.artificial = map[int]bool{}
	}

	t.phase = 2
	obj := t.mat.Row(t.m)
	for j := range obj {
		obj[j] = 0
	}
	copy(obj[:t.n], originalC)
	t.zeroBasicReducedCosts()

	return nil
}

// rowRedundant reports whether every surviving entry of the row, RHS
// included, is within tolerance of zero. Such a row is a linear
// combination of the others and constrains nothing.
func (t *tableau) rowRedundant(row int) bool {
	r := t.mat.Row(row)
	for j := 0; j <= t.width; j++ {
		if math.Abs(r[j]) > t.tol {
			return false
		}
	}

	return true
}

// findIdentityColumn searches row for a column forming an identity pattern
// across all constraint rows: ~1 at row, ~0 everywhere else. Returns the
// smallest such column index, or −1. An identity column has exactly one
// non-zero row, so adopting it cannot collide with another basis row.
func (t *tableau) findIdentityColumn(row int) int {
	for j := 0; j < t.width; j++ {
		if math.Abs(t.mat.Row(row)[j]-1) > t.tol {
			continue
		}
		ok := true
		for r := 0; r < t.m; r++ {
			if r == row {
				continue
			}
			if math.Abs(t.mat.Row(r)[j]) > t.tol {
				ok = false
				break
			}
		}
		if ok {
			return j
		}
	}

	return -1
}

// solution extracts the original-variable vector (zero-filled for
// non-basic originals) and the objective value computed as the dot product
// of the original, never-negated objective vector with that vector.
func (t *tableau) solution(originalC []float64) ([]float64, float64) {
	x := make([]float64, t.n)
	for i := 0; i < t.m; i++ {
		if b := t.basic[i]; b >= 0 && b < t.n {
			x[b] = t.mat.Row(i)[t.width]
		}
	}

	value := 0.0
	for j, c := range originalC {
		value += c * x[j]
	}

	return x, value
}
