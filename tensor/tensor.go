package tensor

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Tensor is a simple n-D array backed by a flat []float64 in row-major order.
// It is the storage form of gonum matrices and vectors.
type Tensor struct {
	Data  []float64
	Shape []int
}

// New allocates a zeroed Tensor of the given shape.
func New(shape ...int) *Tensor {
	total := 1
	for _, d := range shape {
		total *= d
	}
	return &Tensor{
		Data:  make([]float64, total),
		Shape: append([]int(nil), shape...),
	}
}

// NewWithData creates a 1-D tensor from existing data slice.
func NewWithData(data []float64) *Tensor {
	return &Tensor{
		Data:  append([]float64(nil), data...),
		Shape: []int{len(data)},
	}
}

// FromDense copies a matrix into a 2-D tensor.
func FromDense(m mat.Matrix) *Tensor {
	r, c := m.Dims()
	t := New(r, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			t.Data[i*c+j] = m.At(i, j)
		}
	}
	return t
}

// FromVec copies a vector into a 1-D tensor.
func FromVec(v mat.Vector) *Tensor {
	t := New(v.Len())
	for i := range t.Data {
		t.Data[i] = v.AtVec(i)
	}
	return t
}

// Size is the element count implied by Shape.
func (t *Tensor) Size() int {
	total := 1
	for _, d := range t.Shape {
		total *= d
	}
	return total
}

func (t *Tensor) validate(dims int) error {
	if len(t.Shape) != dims {
		return fmt.Errorf("expected %d-D tensor, got shape %v", dims, t.Shape)
	}
	for _, d := range t.Shape {
		if d <= 0 {
			return fmt.Errorf("non-positive dimension in shape %v", t.Shape)
		}
	}
	if t.Size() != len(t.Data) {
		return fmt.Errorf("shape %v needs %d values, got %d", t.Shape, t.Size(), len(t.Data))
	}
	return nil
}

// ToDense copies a 2-D tensor into a new matrix.
func (t *Tensor) ToDense() (*mat.Dense, error) {
	if err := t.validate(2); err != nil {
		return nil, err
	}
	return mat.NewDense(t.Shape[0], t.Shape[1], append([]float64(nil), t.Data...)), nil
}

// ToVec copies a 1-D tensor into a new vector.
func (t *Tensor) ToVec() (*mat.VecDense, error) {
	if err := t.validate(1); err != nil {
		return nil, err
	}
	return mat.NewVecDense(t.Shape[0], append([]float64(nil), t.Data...)), nil
}

// Add returns the elementwise sum of two tensors with identical shapes.
func Add(a, b *Tensor) (*Tensor, error) {
	if !sameShape(a.Shape, b.Shape) {
		return nil, fmt.Errorf("shapes %v and %v differ", a.Shape, b.Shape)
	}
	if len(a.Data) != len(b.Data) {
		return nil, fmt.Errorf("shape %v holds %d and %d values", a.Shape, len(a.Data), len(b.Data))
	}
	out := &Tensor{
		Data:  append([]float64(nil), a.Data...),
		Shape: append([]int(nil), a.Shape...),
	}
	floats.Add(out.Data, b.Data)
	return out, nil
}

func sameShape(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// At returns the element at the given indices.
func (t *Tensor) At(indices ...int) float64 {
	return t.Data[t.offset("At", indices)]
}

// Set sets the element at the given indices to the given value.
func (t *Tensor) Set(value float64, indices ...int) {
	t.Data[t.offset("Set", indices)] = value
}

func (t *Tensor) offset(op string, indices []int) int {
	if len(indices) != len(t.Shape) {
		panic(fmt.Sprintf("%s: expected %d indices, got %d", op, len(t.Shape), len(indices)))
	}
	idx := 0
	stride := 1
	for i := len(indices) - 1; i >= 0; i-- {
		if indices[i] < 0 || indices[i] >= t.Shape[i] {
			panic(fmt.Sprintf("%s: index %d out of bounds for dimension %d (shape: %v)", op, indices[i], i, t.Shape))
		}
		idx += indices[i] * stride
		stride *= t.Shape[i]
	}
	return idx
}
