package m

import (
	"gonum.org/v1/gonum/mat"

	"nnquiz/tensor"
)

// Activations holds the forward pass of a network with a single hidden layer
// and a single sigmoid output unit.
type Activations struct {
	Input        *mat.VecDense // x, length N
	HiddenInput  *mat.VecDense // x · W_ih, length H
	HiddenOutput *mat.VecDense // sigmoid(HiddenInput)
	OutputIn     float64       // HiddenOutput · w_ho
	Output       float64       // sigmoid(OutputIn)
}

// Deltas is a proposed weight update. It has the shapes of the weights it was
// computed for and is never applied implicitly.
type Deltas struct {
	HiddenOutput *mat.VecDense // length H
	InputHidden  *mat.Dense    // N×H
}

// Forward computes hidden and output activations. weightsInputHidden must be
// len(x)×len(weightsHiddenOutput).
func Forward(x []float64, weightsInputHidden mat.Matrix, weightsHiddenOutput []float64) (*Activations, error) {
	if len(x) == 0 || len(weightsHiddenOutput) == 0 {
		return nil, shapeMismatch("empty layer: %d inputs, %d hidden units", len(x), len(weightsHiddenOutput))
	}
	if isNilMatrix(weightsInputHidden) {
		return nil, shapeMismatch("weights_input_hidden is nil")
	}
	rows, cols := weightsInputHidden.Dims()
	if rows != len(x) {
		return nil, shapeMismatch("x has %d entries, weights_input_hidden has %d rows", len(x), rows)
	}
	if cols != len(weightsHiddenOutput) {
		return nil, shapeMismatch("weights_input_hidden has %d columns, weights_hidden_output has %d entries", cols, len(weightsHiddenOutput))
	}

	input := mat.NewVecDense(len(x), append([]float64(nil), x...))

	hiddenInput := mat.NewVecDense(cols, nil)
	hiddenInput.MulVec(weightsInputHidden.T(), input)
	hiddenOutput := column(apply(Sigmoid{}.Activate, hiddenInput))

	who := mat.NewVecDense(cols, weightsHiddenOutput)
	outputIn := mat.Dot(hiddenOutput, who)

	return &Activations{
		Input:        input,
		HiddenInput:  hiddenInput,
		HiddenOutput: hiddenOutput,
		OutputIn:     outputIn,
		Output:       sigmoid(outputIn),
	}, nil
}

// Backward propagates target - output back through a and returns the scaled
// weight deltas.
func Backward(a *Activations, weightsHiddenOutput []float64, target, learnrate float64) (*Deltas, error) {
	if a == nil || a.Input == nil || a.HiddenOutput == nil {
		return nil, shapeMismatch("no forward activations")
	}
	hidden := a.HiddenOutput.Len()
	if len(weightsHiddenOutput) != hidden {
		return nil, shapeMismatch("weights_hidden_output has %d entries, hidden layer has %d units", len(weightsHiddenOutput), hidden)
	}

	outputError := target - a.Output
	outputErrorTerm := outputError * a.Output * (1 - a.Output)

	hiddenErrorTerm := mat.NewVecDense(hidden, nil)
	hiddenErrorTerm.ScaleVec(outputErrorTerm, mat.NewVecDense(hidden, weightsHiddenOutput))
	hiddenErrorTerm.MulElemVec(hiddenErrorTerm, column(Sigmoid{}.Deactivate(a.HiddenOutput)))

	deltaHiddenOutput := mat.NewVecDense(hidden, nil)
	deltaHiddenOutput.ScaleVec(learnrate*outputErrorTerm, a.HiddenOutput)

	deltaInputHidden := mat.NewDense(a.Input.Len(), hidden, nil)
	deltaInputHidden.Outer(learnrate, a.Input, hiddenErrorTerm)

	return &Deltas{
		HiddenOutput: deltaHiddenOutput,
		InputHidden:  deltaInputHidden,
	}, nil
}

// ForwardBackwardStep runs one backpropagation step and returns the deltas for
// both weight sets. None of the arguments are modified.
func ForwardBackwardStep(x []float64, target float64, weightsInputHidden mat.Matrix, weightsHiddenOutput []float64, learnrate float64) (*Deltas, error) {
	a, err := Forward(x, weightsInputHidden, weightsHiddenOutput)
	if err != nil {
		return nil, err
	}
	return Backward(a, weightsHiddenOutput, target, learnrate)
}

// Apply adds the deltas to the caller's weights in place. Both weight sets are
// checked before either is written.
func (d *Deltas) Apply(weightsInputHidden *mat.Dense, weightsHiddenOutput []float64) error {
	if weightsInputHidden == nil {
		return shapeMismatch("weights_input_hidden is nil")
	}
	wih, err := tensor.Add(tensor.FromDense(weightsInputHidden), tensor.FromDense(d.InputHidden))
	if err != nil {
		return shapeMismatch("weights_input_hidden: %v", err)
	}
	who, err := tensor.Add(tensor.NewWithData(weightsHiddenOutput), tensor.FromVec(d.HiddenOutput))
	if err != nil {
		return shapeMismatch("weights_hidden_output: %v", err)
	}

	updated, err := wih.ToDense()
	if err != nil {
		return err
	}
	weightsInputHidden.Copy(updated)
	copy(weightsHiddenOutput, who.Data)
	return nil
}

func isNilMatrix(a mat.Matrix) bool {
	if a == nil {
		return true
	}
	switch w := a.(type) {
	case *mat.Dense:
		return w == nil
	case *mat.VecDense:
		return w == nil
	}
	return false
}
