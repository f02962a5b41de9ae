package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestNewShape(t *testing.T) {
	t1 := New(2, 3)
	if len(t1.Data) != 6 {
		t.Fatalf("expected 6 elements, got %d", len(t1.Data))
	}
	if len(t1.Shape) != 2 || t1.Shape[0] != 2 || t1.Shape[1] != 3 {
		t.Fatalf("unexpected shape: %v", t1.Shape)
	}
}

func TestAdd(t *testing.T) {
	a := &Tensor{Data: []float64{1, 2, 3}, Shape: []int{3}}
	b := &Tensor{Data: []float64{4, 5, 6}, Shape: []int{3}}
	c, err := Add(a, b)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{5, 7, 9}
	for i := range want {
		if c.Data[i] != want[i] {
			t.Errorf("at %d, got %f, want %f", i, c.Data[i], want[i])
		}
	}

	_, err = Add(a, New(1, 3))
	assert.Error(t, err)

	short := &Tensor{Data: []float64{1, 2}, Shape: []int{3}}
	_, err = Add(a, short)
	assert.Error(t, err)
}

func TestAddDoesNotAlias(t *testing.T) {
	a := NewWithData([]float64{1, 2})
	b := NewWithData([]float64{3, 4})
	c, err := Add(a, b)
	if err != nil {
		t.Fatal(err)
	}
	c.Set(0, 0)
	c.Shape[0] = 7
	assert.Equal(t, []float64{1, 2}, a.Data)
	assert.Equal(t, []int{2}, a.Shape)
}

func TestDenseRoundTrip(t *testing.T) {
	m := mat.NewDense(3, 2, []float64{0.5, -0.6, 0.1, -0.2, 0.1, 0.7})
	ten := FromDense(m)
	assert.Equal(t, []int{3, 2}, ten.Shape)
	assert.Equal(t, -0.2, ten.At(1, 1))

	back, err := ten.ToDense()
	require.NoError(t, err)
	assert.True(t, mat.Equal(m, back))

	back.Set(0, 0, 9)
	assert.Equal(t, 0.5, ten.At(0, 0))
}

func TestFromDenseTransposed(t *testing.T) {
	m := mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})
	ten := FromDense(m.T())
	assert.Equal(t, []int{3, 2}, ten.Shape)
	assert.Equal(t, []float64{1, 4, 2, 5, 3, 6}, ten.Data)
}

func TestVecRoundTrip(t *testing.T) {
	v := mat.NewVecDense(2, []float64{0.1, -0.3})
	ten := FromVec(v)
	assert.Equal(t, []int{2}, ten.Shape)

	back, err := ten.ToVec()
	require.NoError(t, err)
	assert.True(t, mat.Equal(v, back))
}

func TestToDenseRejectsBadShape(t *testing.T) {
	_, err := NewWithData([]float64{1, 2}).ToDense()
	assert.Error(t, err)

	_, err = (&Tensor{Data: []float64{1, 2, 3}, Shape: []int{2, 2}}).ToDense()
	assert.Error(t, err)

	_, err = (&Tensor{Data: nil, Shape: []int{0}}).ToVec()
	assert.Error(t, err)
}

func TestSetAt(t *testing.T) {
	ten := New(2, 2)
	ten.Set(3, 1, 0)
	assert.Equal(t, 3.0, ten.At(1, 0))
	assert.Equal(t, []float64{0, 0, 3, 0}, ten.Data)
	assert.Panics(t, func() { ten.At(2, 0) })
	assert.Panics(t, func() { ten.At(0) })
}
