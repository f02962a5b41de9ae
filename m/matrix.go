package m

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

func apply(fn func(i, j int, v float64) float64, m mat.Matrix) mat.Matrix {
	r, c := m.Dims()
	o := mat.NewDense(r, c, nil)
	o.Apply(fn, m)
	return o
}

func scale(s float64, m mat.Matrix) mat.Matrix {
	r, c := m.Dims()
	o := mat.NewDense(r, c, nil)
	o.Scale(s, m)
	return o
}

func multiply(m, n mat.Matrix) mat.Matrix {
	r, c := m.Dims()
	o := mat.NewDense(r, c, nil)
	o.MulElem(m, n)
	return o
}

func add(m, n mat.Matrix) mat.Matrix {
	r, c := m.Dims()
	o := mat.NewDense(r, c, nil)
	o.Add(m, n)
	return o
}

func addScalar(i float64, m mat.Matrix) mat.Matrix {
	r, c := m.Dims()
	a := make([]float64, r*c)
	for x := 0; x < r*c; x++ {
		a[x] = i
	}
	n := mat.NewDense(r, c, a)
	return add(m, n)
}

// column flattens a single column matrix into a vector.
func column(m mat.Matrix) *mat.VecDense {
	r, _ := m.Dims()
	return mat.NewVecDense(r, mat.Col(nil, 0, m))
}

// Softmax turns raw scores into probabilities, exp(L[i]) / Σ exp(L[k]).
// Scores are not shifted first, so large inputs overflow to NaN; use
// StableSoftmax when that matters.
func Softmax(scores []float64) []float64 {
	exps := make([]float64, len(scores))
	for i, v := range scores {
		exps[i] = math.Exp(v)
	}
	sum := floats.Sum(exps)

	softmaxed := make([]float64, len(scores))
	for i := range exps {
		softmaxed[i] = exps[i] / sum
	}
	return softmaxed
}

// StableSoftmax subtracts the largest score before exponentiating. The result
// equals Softmax up to rounding whenever Softmax does not overflow.
func StableSoftmax(scores []float64) []float64 {
	if len(scores) == 0 {
		return []float64{}
	}
	shifted := make([]float64, len(scores))
	copy(shifted, scores)
	floats.AddConst(-floats.Max(scores), shifted)
	return Softmax(shifted)
}

// CrossEntropy returns -Σ (Y[i]·ln(P[i]) + (1-Y[i])·ln(1-P[i])).
//
// P is not guarded: a probability of exactly 0 or 1 yields +Inf or NaN.
func CrossEntropy(labels, probs []float64) (float64, error) {
	if len(labels) != len(probs) {
		return 0, shapeMismatch("%d labels, %d probabilities", len(labels), len(probs))
	}
	ce := 0.0
	for i := range labels {
		ce -= labels[i]*math.Log(probs[i]) + (1-labels[i])*math.Log(1-probs[i])
	}
	return ce, nil
}

// ClampedCrossEntropy is CrossEntropy with every probability clamped into
// [eps, 1-eps], so saturated predictions give a large finite loss. eps must
// lie in (0, 0.5); anything else would move probabilities across 0.5.
func ClampedCrossEntropy(labels, probs []float64, eps float64) (float64, error) {
	if !(eps > 0 && eps < 0.5) {
		return 0, errors.Wrapf(ErrInvalidEpsilon, "got %v", eps)
	}
	clamped := make([]float64, len(probs))
	for i, p := range probs {
		clamped[i] = math.Min(math.Max(p, eps), 1-eps)
	}
	return CrossEntropy(labels, clamped)
}

// RandomWeights draws an inputs×hidden matrix and a hidden-length vector from
// U(-1/√fanIn, 1/√fanIn).
func RandomWeights(inputs, hidden int) (*mat.Dense, []float64, error) {
	if inputs <= 0 || hidden <= 0 {
		return nil, nil, shapeMismatch("cannot build %dx%d weights", inputs, hidden)
	}
	wih := mat.NewDense(inputs, hidden, randomArray(inputs*hidden, float64(inputs)))
	who := randomArray(hidden, float64(hidden))
	return wih, who, nil
}

func randomArray(size int, v float64) []float64 {
	dist := distuv.Uniform{
		Min: -1 / math.Sqrt(v),
		Max: 1 / math.Sqrt(v),
	}

	data := make([]float64, size)
	for i := 0; i < size; i++ {
		data[i] = dist.Rand()
	}
	return data
}
