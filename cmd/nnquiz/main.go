// nnquiz: runs the neural-network and array exercises from the command line
//
// Usage:
//
//	nnquiz backprop [-in step.json] [-out deltas.json] [-random -input 3 -hidden 2] [-x 0.5,0.1,-0.2] [-apply] [-verbose]
//
// With -random and no -x, the input vector is all ones.
//	nnquiz softmax -scores 5,6,7 [-stable]
//	nnquiz crossentropy -labels 1,0,1,1 -probs 0.4,0.6,0.1,0.5 [-eps 1e-12]
//	nnquiz broadcast
//	nnquiz pickodd
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"nnquiz/m"
	"nnquiz/ndarray"
	"nnquiz/utils"
)

// errOutput receives usage and error messages. Results go to utils.Output.
var errOutput io.Writer = os.Stderr

func main() {
	os.Exit(execute(os.Args[1:]))
}

// execute runs one subcommand and returns the process exit code.
func execute(args []string) int {
	if len(args) < 1 {
		fmt.Fprintln(errOutput, "a command must be specified: backprop, softmax, crossentropy, broadcast, pickodd")
		return 1
	}
	subCommand := args[0]

	if err := run(subCommand, args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(errOutput, "%s: %s\n", subCommand, err.Error())
		return 1
	}
	return 0
}

func run(subCommand string, args []string) error {
	switch subCommand {
	case "backprop":
		return runBackprop(args)
	case "softmax":
		return runSoftmax(args)
	case "crossentropy":
		return runCrossEntropy(args)
	case "broadcast":
		utils.PrintMatrix("Broadcast grid:", ndarray.CreateBroadcastGrid())
		return nil
	case "pickodd":
		utils.PrintValues("Odd values of 1..25:", ndarray.PickOdd())
		return nil
	default:
		return fmt.Errorf("unknown command %q", subCommand)
	}
}

func runBackprop(args []string) error {
	defaults := utils.DefaultConfig()
	backpropFlags := flag.NewFlagSet("backprop", flag.ContinueOnError)
	backpropFlags.SetOutput(errOutput)
	flagIn := backpropFlags.String("in", "", "JSON step file with x, target, learnrate and both weight sets")
	flagOut := backpropFlags.String("out", "", "write the deltas to this JSON file")
	flagX := backpropFlags.String("x", "0.5,0.1,-0.2", "input vector (comma-separated); with -random it defaults to -input ones")
	flagTarget := backpropFlags.Float64("target", defaults.Target, "desired output")
	flagRate := backpropFlags.Float64("rate", defaults.LearnRate, "learning rate")
	flagRandom := backpropFlags.Bool("random", false, "draw random weights instead of the exercise weights")
	flagInputs := backpropFlags.Int("input", 3, "number of input nodes for -random")
	flagHidden := backpropFlags.Int("hidden", 2, "number of hidden nodes for -random")
	flagApply := backpropFlags.Bool("apply", false, "print the weights after applying the deltas")
	flagVerbose := backpropFlags.Bool("verbose", false, "print activations and timing")
	if err := backpropFlags.Parse(args); err != nil {
		return err
	}
	utils.Verbose = *flagVerbose
	xSet := false
	backpropFlags.Visit(func(f *flag.Flag) {
		if f.Name == "x" {
			xSet = true
		}
	})

	var (
		x   []float64
		wih *mat.Dense
		who []float64
		cfg = utils.Config{LearnRate: *flagRate, Target: *flagTarget}
		err error
	)
	switch {
	case *flagIn != "":
		step, loadErr := utils.LoadStep(*flagIn)
		if loadErr != nil {
			return loadErr
		}
		x = step.X
		cfg = step.Config()
		if wih, who, err = step.Weights(); err != nil {
			return err
		}
	case *flagRandom:
		if wih, who, err = m.RandomWeights(*flagInputs, *flagHidden); err != nil {
			return err
		}
		if !xSet {
			x = make([]float64, *flagInputs)
			floats.AddConst(1, x)
		} else if x, err = utils.ParseFloats(*flagX); err != nil {
			return err
		}
	default:
		wih = mat.NewDense(3, 2, []float64{
			0.5, -0.6,
			0.1, -0.2,
			0.1, 0.7,
		})
		who = []float64{0.1, -0.3}
		if x, err = utils.ParseFloats(*flagX); err != nil {
			return err
		}
	}
	if err := utils.ValidateConfig(&cfg); err != nil {
		return err
	}

	stats := &utils.TimingStats{}
	start := time.Now()
	a, err := m.Forward(x, wih, who)
	if err != nil {
		return err
	}
	stats.ForwardPassTime = time.Since(start)

	backwardStart := time.Now()
	d, err := m.Backward(a, who, cfg.Target, cfg.LearnRate)
	if err != nil {
		return err
	}
	stats.BackwardPassTime = time.Since(backwardStart)
	stats.TotalTime = time.Since(start)

	utils.PrintActivations(a)
	utils.PrintDeltas(d)

	if *flagApply {
		if err := d.Apply(wih, who); err != nil {
			return err
		}
		utils.PrintMatrix("Updated weights for input layer to hidden layer:", wih)
		utils.PrintValues("Updated weights for hidden layer to output layer:", who)
	}

	if *flagOut != "" {
		if err := utils.SaveDeltas(*flagOut, d); err != nil {
			return err
		}
	}

	utils.PrintTimingStats(stats)
	return nil
}

func runSoftmax(args []string) error {
	softmaxFlags := flag.NewFlagSet("softmax", flag.ContinueOnError)
	softmaxFlags.SetOutput(errOutput)
	flagScores := softmaxFlags.String("scores", "5,6,7", "raw scores (comma-separated)")
	flagStable := softmaxFlags.Bool("stable", false, "subtract the max score first")
	if err := softmaxFlags.Parse(args); err != nil {
		return err
	}

	scores, err := utils.ParseFloats(*flagScores)
	if err != nil {
		return err
	}
	if *flagStable {
		utils.PrintValues("Softmax:", m.StableSoftmax(scores))
	} else {
		utils.PrintValues("Softmax:", m.Softmax(scores))
	}
	return nil
}

func runCrossEntropy(args []string) error {
	ceFlags := flag.NewFlagSet("crossentropy", flag.ContinueOnError)
	ceFlags.SetOutput(errOutput)
	flagLabels := ceFlags.String("labels", "1,0,1,1", "binary labels (comma-separated)")
	flagProbs := ceFlags.String("probs", "0.4,0.6,0.1,0.5", "predicted probabilities (comma-separated)")
	flagEps := ceFlags.Float64("eps", 0, "clamp probabilities into [eps, 1-eps]; 0 leaves them unguarded")
	if err := ceFlags.Parse(args); err != nil {
		return err
	}

	cfg := utils.Config{LearnRate: utils.DefaultConfig().LearnRate, Epsilon: *flagEps}
	if err := utils.ValidateConfig(&cfg); err != nil {
		return err
	}
	labels, err := utils.ParseFloats(*flagLabels)
	if err != nil {
		return fmt.Errorf("parsing labels: %w", err)
	}
	probs, err := utils.ParseFloats(*flagProbs)
	if err != nil {
		return fmt.Errorf("parsing probabilities: %w", err)
	}

	var ce float64
	if cfg.Epsilon > 0 {
		ce, err = m.ClampedCrossEntropy(labels, probs, cfg.Epsilon)
	} else {
		ce, err = m.CrossEntropy(labels, probs)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(utils.Output, "Cross-entropy: %v\n", ce)
	return nil
}
