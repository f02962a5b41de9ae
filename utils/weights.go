package utils

import (
	"encoding/json"
	"fmt"
	"os"

	"gonum.org/v1/gonum/mat"

	"nnquiz/m"
	"nnquiz/tensor"
)

const fileVersion = "1"

// WeightData represents a serializable matrix or vector
type WeightData struct {
	Name  string    `json:"name"`
	Shape []int     `json:"shape"`
	Data  []float64 `json:"data"`
}

// StepFile holds every input of one backpropagation step.
type StepFile struct {
	Version             string      `json:"version"`
	X                   []float64   `json:"x"`
	Target              float64     `json:"target"`
	LearnRate           float64     `json:"learnrate"`
	WeightsInputHidden  *WeightData `json:"weights_input_hidden"`
	WeightsHiddenOutput *WeightData `json:"weights_hidden_output"`
}

// DeltaFile holds the output of one backpropagation step.
type DeltaFile struct {
	Version                  string      `json:"version"`
	DeltaWeightsHiddenOutput *WeightData `json:"delta_weights_hidden_output"`
	DeltaWeightsInputHidden  *WeightData `json:"delta_weights_input_hidden"`
}

type errMissingField struct {
	field string
}

func (e errMissingField) Error() string {
	return fmt.Sprintf("step file is missing %q", e.field)
}

// NewStepFile captures step inputs for saving.
func NewStepFile(x []float64, target float64, weightsInputHidden mat.Matrix, weightsHiddenOutput []float64, learnrate float64) *StepFile {
	return &StepFile{
		Version:             fileVersion,
		X:                   append([]float64(nil), x...),
		Target:              target,
		LearnRate:           learnrate,
		WeightsInputHidden:  TensorToWeightData("weights_input_hidden", tensor.FromDense(weightsInputHidden)),
		WeightsHiddenOutput: TensorToWeightData("weights_hidden_output", tensor.NewWithData(weightsHiddenOutput)),
	}
}

// Weights converts the stored weights back into gonum form.
func (s *StepFile) Weights() (*mat.Dense, []float64, error) {
	if s.WeightsInputHidden == nil {
		return nil, nil, errMissingField{field: "weights_input_hidden"}
	}
	if s.WeightsHiddenOutput == nil {
		return nil, nil, errMissingField{field: "weights_hidden_output"}
	}
	wih, err := WeightDataToTensor(s.WeightsInputHidden).ToDense()
	if err != nil {
		return nil, nil, fmt.Errorf("weights_input_hidden: %w", err)
	}
	who, err := WeightDataToTensor(s.WeightsHiddenOutput).ToVec()
	if err != nil {
		return nil, nil, fmt.Errorf("weights_hidden_output: %w", err)
	}
	return wih, who.RawVector().Data, nil
}

// Config returns the scalar settings stored in the file.
func (s *StepFile) Config() Config {
	return Config{LearnRate: s.LearnRate, Target: s.Target}
}

// NewDeltaFile captures step deltas for saving.
func NewDeltaFile(d *m.Deltas) *DeltaFile {
	return &DeltaFile{
		Version:                  fileVersion,
		DeltaWeightsHiddenOutput: TensorToWeightData("delta_weights_hidden_output", tensor.FromVec(d.HiddenOutput)),
		DeltaWeightsInputHidden:  TensorToWeightData("delta_weights_input_hidden", tensor.FromDense(d.InputHidden)),
	}
}

// SaveStep saves step inputs to a JSON file
func SaveStep(filepath string, step *StepFile) error {
	return saveJSON(filepath, step)
}

// LoadStep loads step inputs from a JSON file
func LoadStep(filepath string) (*StepFile, error) {
	var step StepFile
	if err := loadJSON(filepath, &step); err != nil {
		return nil, err
	}
	if step.X == nil {
		return nil, errMissingField{field: "x"}
	}
	return &step, nil
}

// SaveDeltas saves step deltas to a JSON file
func SaveDeltas(filepath string, d *m.Deltas) error {
	return saveJSON(filepath, NewDeltaFile(d))
}

// LoadDeltas loads step deltas from a JSON file
func LoadDeltas(filepath string) (*DeltaFile, error) {
	var deltas DeltaFile
	if err := loadJSON(filepath, &deltas); err != nil {
		return nil, err
	}
	return &deltas, nil
}

func saveJSON(filepath string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath, err)
	}
	return os.WriteFile(filepath, data, 0644)
}

func loadJSON(filepath string, v interface{}) error {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filepath, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", filepath, err)
	}
	return nil
}

// TensorToWeightData converts a tensor to serializable weight data
func TensorToWeightData(name string, t *tensor.Tensor) *WeightData {
	return &WeightData{
		Name:  name,
		Shape: t.Shape,
		Data:  append([]float64{}, t.Data...), // copy
	}
}

// WeightDataToTensor converts weight data back to a tensor. The shape is not
// checked against the data here; ToDense and ToVec do that.
func WeightDataToTensor(wd *WeightData) *tensor.Tensor {
	return &tensor.Tensor{
		Shape: append([]int(nil), wd.Shape...),
		Data:  append([]float64(nil), wd.Data...),
	}
}
