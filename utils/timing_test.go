package utils

import (
	"bytes"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"nnquiz/m"
)

func captureOutput(t *testing.T, verbose bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prevOut, prevVerbose := Output, Verbose
	Output, Verbose = &buf, verbose
	t.Cleanup(func() { Output, Verbose = prevOut, prevVerbose })
	return &buf
}

func TestDurationUS(t *testing.T) {
	d := 1234*time.Microsecond + 567*time.Nanosecond
	got := DurationUS(d)
	if math.Abs(got-1234.567) > 0.001 {
		t.Fatalf("want 1234.567µs, got %.3f", got)
	}
}

func TestPrintTimingStatsQuiet(t *testing.T) {
	buf := captureOutput(t, false)
	PrintTimingStats(&TimingStats{TotalTime: time.Second})
	assert.Empty(t, buf.String())
}

func TestPrintTimingStatsVerbose(t *testing.T) {
	buf := captureOutput(t, true)
	PrintTimingStats(&TimingStats{
		TotalTime:        4 * time.Millisecond,
		ForwardPassTime:  time.Millisecond,
		BackwardPassTime: 2 * time.Millisecond,
	})
	assert.Contains(t, buf.String(), "Total step time: 4000.000µs")
	assert.Contains(t, buf.String(), "Forward pass: 1000.000µs (25.0%)")
	assert.Contains(t, buf.String(), "Backward pass: 2000.000µs (50.0%)")

	buf.Reset()
	PrintTimingStats(&TimingStats{})
	assert.Contains(t, buf.String(), "Forward pass: 0.000µs (0.0%)")
}

func TestPrintDeltas(t *testing.T) {
	buf := captureOutput(t, false)
	wih := mat.NewDense(3, 2, []float64{0.5, -0.6, 0.1, -0.2, 0.1, 0.7})
	d, err := m.ForwardBackwardStep([]float64{0.5, 0.1, -0.2}, 0.6, wih, []float64{0.1, -0.3}, 0.5)
	require.NoError(t, err)

	PrintDeltas(d)
	out := buf.String()
	assert.Contains(t, out, "Change in weights for hidden layer to output layer:")
	assert.Contains(t, out, "Change in weights for input layer to hidden layer:")
	assert.Contains(t, out, "0.0080404739")
}

func TestPrintActivationsRespectsVerbose(t *testing.T) {
	buf := captureOutput(t, false)
	wih := mat.NewDense(1, 1, []float64{0})
	a, err := m.Forward([]float64{1}, wih, []float64{0})
	require.NoError(t, err)

	PrintActivations(a)
	assert.Empty(t, buf.String())

	Verbose = true
	PrintActivations(a)
	assert.Contains(t, buf.String(), "Output: 0.5")
}
