package ndarray

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"nnquiz/m"
)

func TestCreateBroadcastGrid(t *testing.T) {
	grid := CreateBroadcastGrid()
	r, c := grid.Dims()
	require.Equal(t, 4, r)
	require.Equal(t, 4, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if grid.At(i, j) != float64(j+1) {
				t.Errorf("at [%d][%d], got %f, want %d", i, j, grid.At(i, j), j+1)
			}
		}
	}
}

func TestPickOdd(t *testing.T) {
	got := PickOdd()
	want := []float64{1, 3, 5, 7, 9, 11, 13, 15, 17, 19, 21, 23, 25}
	assert.Equal(t, want, got)
	assert.Len(t, got, 13)
}

func TestVStackRagged(t *testing.T) {
	_, err := VStack([]float64{1, 2}, []float64{3})
	require.ErrorIs(t, err, m.ErrShapeMismatch)

	_, err = VStack()
	require.ErrorIs(t, err, m.ErrShapeMismatch)
}

func TestArange(t *testing.T) {
	assert.Equal(t, []float64{-1, 0, 1, 2}, Arange(-1, 3))
	assert.Empty(t, Arange(3, 3))
	assert.Empty(t, Arange(5, 1))
}

func TestReshape(t *testing.T) {
	data := Arange(0, 6)
	a, err := Reshape(data, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, 5.0, a.At(1, 2))
	assert.Equal(t, 3.0, a.At(1, 0))

	a.Set(0, 0, 42)
	assert.Equal(t, 0.0, data[0])

	_, err = Reshape(data, 4, 2)
	require.ErrorIs(t, err, m.ErrShapeMismatch)
}

func TestFilterRowMajor(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{4, 1, 3, 2})
	got := Filter(a, func(v float64) bool { return v > 1 })
	assert.Equal(t, []float64{4, 3, 2}, got)
	assert.Empty(t, Filter(a, func(float64) bool { return false }))
}
