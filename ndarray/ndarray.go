// Package ndarray builds and filters small gonum grids: stacking rows,
// reshaping ranges and selecting entries by predicate.
package ndarray

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"nnquiz/m"
)

// VStack stacks equally long rows on top of each other.
func VStack(rows ...[]float64) (*mat.Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, errors.Wrap(m.ErrShapeMismatch, "nothing to stack")
	}
	cols := len(rows[0])
	out := mat.NewDense(len(rows), cols, nil)
	for i, row := range rows {
		if len(row) != cols {
			return nil, errors.Wrapf(m.ErrShapeMismatch, "row %d has %d entries, want %d", i, len(row), cols)
		}
		out.SetRow(i, row)
	}
	return out, nil
}

// Arange returns start, start+1, ..., stop-1.
func Arange(start, stop int) []float64 {
	if stop <= start {
		return []float64{}
	}
	out := make([]float64, 0, stop-start)
	for v := start; v < stop; v++ {
		out = append(out, float64(v))
	}
	return out
}

// Reshape lays data out row-major in an r×c matrix. data is copied.
func Reshape(data []float64, r, c int) (*mat.Dense, error) {
	if r <= 0 || c <= 0 || r*c != len(data) {
		return nil, errors.Wrapf(m.ErrShapeMismatch, "cannot reshape %d values into %dx%d", len(data), r, c)
	}
	return mat.NewDense(r, c, append([]float64(nil), data...)), nil
}

// Filter walks a in row-major order and keeps the entries for which keep
// returns true.
func Filter(a mat.Matrix, keep func(v float64) bool) []float64 {
	r, c := a.Dims()
	out := []float64{}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v := a.At(i, j); keep(v) {
				out = append(out, v)
			}
		}
	}
	return out
}

// CreateBroadcastGrid returns a 4×4 grid whose column j is filled with j+1,
// built by stacking the row [1 2 3 4] four times.
func CreateBroadcastGrid() *mat.Dense {
	first := []float64{1, 2, 3, 4}
	grid, err := VStack(first, first, first, first)
	if err != nil {
		panic(err)
	}
	return grid
}

// PickOdd lays 1..25 out as a 5×5 grid and returns its odd entries in
// ascending order.
func PickOdd() []float64 {
	grid, err := Reshape(Arange(1, 26), 5, 5)
	if err != nil {
		panic(err)
	}
	return Filter(grid, isOdd)
}

func isOdd(v float64) bool {
	return int(v)%2 != 0
}
