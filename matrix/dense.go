package matrix

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
var ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

// ErrIndexOutOfBounds indicates that a row or column index is outside valid range.
var ErrIndexOutOfBounds = errors.New("matrix: index out of bounds")

// denseErrorf wraps an underlying error with Dense method context.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a row-major matrix of float64 values.
// r is rows, c is columns, and data holds r*c elements in row-major order.
type Dense struct {
	r, c int       // number of rows and columns
	data []float64 // flat backing storage, length == r*c
}

var _ fmt.Stringer = (*Dense)(nil)

// NewDense creates an r×c Dense matrix initialized to zeros.
// Complexity: O(r*c) time and memory.
func NewDense(rows, cols int) (*Dense, error) {
	// Validate dimensions before allocating.
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	// make() zero-fills the flat buffer deterministically.
	data := make([]float64, rows*cols)

	return &Dense{r: rows, c: cols, data: data}, nil
}

// Rows returns the number of rows in the matrix. O(1).
func (m *Dense) Rows() int { return m.r }

// Cols returns the number of columns in the matrix. O(1).
func (m *Dense) Cols() int { return m.c }

// indexOf computes the flat index for (row, col) or returns ErrIndexOutOfBounds.
func (m *Dense) indexOf(method string, row, col int) (int, error) {
	if row < 0 || row >= m.r {
		return 0, denseErrorf(method, row, col, ErrIndexOutOfBounds)
	}
	if col < 0 || col >= m.c {
		return 0, denseErrorf(method, row, col, ErrIndexOutOfBounds)
	}

	return row*m.c + col, nil
}

// At retrieves the element at (row, col). O(1).
func (m *Dense) At(row, col int) (float64, error) {
	idx, err := m.indexOf("At", row, col)
	if err != nil {
		return 0, err
	}

	return m.data[idx], nil
}

// Set assigns value v at (row, col). O(1).
func (m *Dense) Set(row, col int, v float64) error {
	idx, err := m.indexOf("Set", row, col)
	if err != nil {
		return err
	}
	m.data[idx] = v

	return nil
}

// Row returns a no-copy view of row i. Mutations through the returned
// slice reflect in the matrix. Out-of-range i is a programmer error and
// panics, keeping the hot pivot loops free of error plumbing.
func (m *Dense) Row(i int) []float64 {
	if i < 0 || i >= m.r {
		panic(denseErrorf("Row", i, 0, ErrIndexOutOfBounds))
	}

	return m.data[i*m.c : (i+1)*m.c]
}

// Clone returns a deep copy of the Dense matrix. O(r*c).
func (m *Dense) Clone() *Dense {
	copyData := make([]float64, len(m.data))
	copy(copyData, m.data)

	return &Dense{r: m.r, c: m.c, data: copyData}
}

// RowSlices returns a fresh [][]float64 copy of the matrix contents,
// one inner slice per row. The copy shares no storage with m, making it
// safe to hand to snapshot consumers. O(r*c).
func (m *Dense) RowSlices() [][]float64 {
	out := make([][]float64, m.r)
	for i := 0; i < m.r; i++ {
		row := make([]float64, m.c)
		copy(row, m.data[i*m.c:(i+1)*m.c])
		out[i] = row
	}

	return out
}

// DropColumns returns a new Dense with the given columns removed, in the
// original column order, together with a mapping from surviving old column
// indices to their new positions (absent keys were dropped). Dropping every
// column is invalid and returns ErrInvalidDimensions.
// Complexity: O(r*c).
func (m *Dense) DropColumns(drop map[int]bool) (*Dense, map[int]int, error) {
	// Count survivors to size the new buffer.
	kept := 0
	remap := make(map[int]int, m.c)
	for j := 0; j < m.c; j++ {
		if drop[j] {
			continue
		}
		remap[j] = kept
		kept++
	}
	if kept == 0 {
		return nil, nil, ErrInvalidDimensions
	}

	out := &Dense{r: m.r, c: kept, data: make([]float64, m.r*kept)}
	for i := 0; i < m.r; i++ {
		src := m.data[i*m.c : (i+1)*m.c]
		dst := out.data[i*kept : (i+1)*kept]
		k := 0
		for j := 0; j < m.c; j++ {
			if drop[j] {
				continue
			}
			dst[k] = src[j]
			k++
		}
	}

	return out, remap, nil
}

// String implements fmt.Stringer for easy debugging.
func (m *Dense) String() string {
	var sb strings.Builder
	for i := 0; i < m.r; i++ {
		sb.WriteString("[")
		for j := 0; j < m.c; j++ {
			// compute flat index directly for performance
			fmt.Fprintf(&sb, "%g", m.data[i*m.c+j])
			if j < m.c-1 {
				sb.WriteString(", ")
			}
		}
		sb.WriteString("]\n")
	}

	return sb.String()
}
