package utils

import (
	"fmt"
	"io"
	"os"
	"time"

	"gonum.org/v1/gonum/mat"

	"nnquiz/m"
)

// Verbose controls whether timing statistics and intermediate activations
// are printed. Results are always printed.
var Verbose = false

// Output is where everything is printed.
// Defaults to os.Stdout.
var Output io.Writer = os.Stdout

// TimingStats holds timing information for a single step
type TimingStats struct {
	TotalTime        time.Duration
	ForwardPassTime  time.Duration
	BackwardPassTime time.Duration
}

// PrintTimingStats prints the step timing.
// Respects the Verbose flag - does nothing if Verbose is false.
func PrintTimingStats(stats *TimingStats) {
	if !Verbose {
		return
	}
	fmt.Fprintln(Output, "\n=== TIMING STATISTICS ===")
	fmt.Fprintf(Output, "Total step time: %.3fµs\n", DurationUS(stats.TotalTime))
	fmt.Fprintf(Output, "  Forward pass: %.3fµs (%.1f%%)\n", DurationUS(stats.ForwardPassTime), percent(stats.ForwardPassTime, stats.TotalTime))
	fmt.Fprintf(Output, "  Backward pass: %.3fµs (%.1f%%)\n", DurationUS(stats.BackwardPassTime), percent(stats.BackwardPassTime, stats.TotalTime))
}

func percent(part, total time.Duration) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

// DurationUS reports d in microseconds, keeping the sub-microsecond part.
func DurationUS(d time.Duration) float64 {
	return float64(d) / float64(time.Microsecond)
}

// PrintActivations prints the forward pass. Respects the Verbose flag.
func PrintActivations(a *m.Activations) {
	if !Verbose {
		return
	}
	fmt.Fprintln(Output, "Hidden layer input:")
	fmt.Fprintf(Output, "%v\n", mat.Formatted(a.HiddenInput.T()))
	fmt.Fprintln(Output, "Hidden layer output:")
	fmt.Fprintf(Output, "%v\n", mat.Formatted(a.HiddenOutput.T()))
	fmt.Fprintf(Output, "Output: %v\n", a.Output)
}

// PrintDeltas prints both weight deltas.
func PrintDeltas(d *m.Deltas) {
	fmt.Fprintln(Output, "Change in weights for hidden layer to output layer:")
	fmt.Fprintf(Output, "%v\n", mat.Formatted(d.HiddenOutput.T()))
	fmt.Fprintln(Output, "Change in weights for input layer to hidden layer:")
	fmt.Fprintf(Output, "%v\n", mat.Formatted(d.InputHidden))
}

// PrintMatrix prints a titled matrix.
func PrintMatrix(title string, a mat.Matrix) {
	fmt.Fprintln(Output, title)
	fmt.Fprintf(Output, "%v\n", mat.Formatted(a))
}

// PrintValues prints a titled list of values.
func PrintValues(title string, values []float64) {
	fmt.Fprintln(Output, title)
	fmt.Fprintln(Output, values)
}
