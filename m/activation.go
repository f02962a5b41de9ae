package m

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Sigmoid is the logistic function 1/(1+e^-x). Both the hidden and the output
// units of the step network use it.
type Sigmoid struct{}

func (s Sigmoid) Activate(i, j int, sum float64) float64 {
	return sigmoid(sum)
}

// Deactivate takes already activated values y and returns y*(1-y).
func (s Sigmoid) Deactivate(matrix mat.Matrix) mat.Matrix {
	oneMinus := addScalar(1, scale(-1, matrix))
	return multiply(matrix, oneMinus)
}

// math.Exp overflows to +Inf for very negative v, which still gives 0 here.
func sigmoid(v float64) float64 {
	return 1.0 / (1.0 + math.Exp(-v))
}
