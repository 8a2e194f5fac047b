// Command lpsolve solves a linear program described by a structured YAML
// problem definition and prints the solution, optionally followed by a
// sensitivity report.
//
// Example problem file:
//
//	direction: maximize
//	objective: [80, 50]
//	variables: [tables, chairs]
//	constraints:
//	  - name: wood
//	    coefficients: [4, 2]
//	    relation: "<="
//	    rhs: 200
//	  - name: hours
//	    coefficients: [1, 1]
//	    relation: "<="
//	    rhs: 60
package main

import (
	"fmt"
	"math"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/frangcisneros/simplex/lp"
	"github.com/frangcisneros/simplex/simplex"
)

var (
	flagFile        string
	flagSensitivity bool
	flagVerbose     bool
	flagMaxIter     int
)

func main() {
	root := &cobra.Command{
		Use:           "lpsolve",
		Short:         "Solve a linear program with the two-phase Simplex method",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}
	root.Flags().StringVarP(&flagFile, "file", "f", "", "YAML problem definition (required)")
	root.Flags().BoolVarP(&flagSensitivity, "sensitivity", "s", false, "print shadow prices and ranging after an optimal solve")
	root.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	root.Flags().IntVar(&flagMaxIter, "max-iterations", simplex.DefaultMaxIterations, "hard cap on Simplex pivots")
	_ = root.MarkFlagRequired("file")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "lpsolve:", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	logger := zap.NewNop()
	if flagVerbose {
		config := zap.NewDevelopmentConfig()
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		var err error
		logger, err = config.Build()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()
	}

	data, err := os.ReadFile(flagFile)
	if err != nil {
		return err
	}
	problem, err := decodeProblem(data)
	if err != nil {
		return err
	}

	engine := simplex.New(
		simplex.WithLogger(logger),
		simplex.WithMaxIterations(flagMaxIter),
	)
	res, err := engine.Solve(problem)
	if err != nil {
		return err
	}

	printResult(cmd, problem, res)

	if flagSensitivity {
		if res.Status != simplex.StatusOptimal {
			return fmt.Errorf("sensitivity analysis unavailable: solve terminated %s", res.Status)
		}
		rep, err := engine.Sensitivity()
		if err != nil {
			return err
		}
		printSensitivity(cmd, problem, rep)
	}

	return nil
}

// problemFile is the YAML shape of a structured problem definition. Free
// text is never parsed here; the file mirrors the lp.Problem model.
type problemFile struct {
	Direction   string           `yaml:"direction"`
	Objective   []float64        `yaml:"objective"`
	Variables   []string         `yaml:"variables"`
	Constraints []constraintFile `yaml:"constraints"`
}

type constraintFile struct {
	Name         string    `yaml:"name"`
	Coefficients []float64 `yaml:"coefficients"`
	Relation     string    `yaml:"relation"`
	RHS          float64   `yaml:"rhs"`
}

// decodeProblem converts the YAML document into a validated lp.Problem.
func decodeProblem(data []byte) (lp.Problem, error) {
	var file problemFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return lp.Problem{}, fmt.Errorf("decode problem file: %w", err)
	}

	var maximize bool
	switch file.Direction {
	case "maximize", "max":
		maximize = true
	case "minimize", "min", "":
		maximize = false
	default:
		return lp.Problem{}, fmt.Errorf("unknown direction %q (want maximize or minimize)", file.Direction)
	}

	p := lp.Problem{
		Objective: file.Objective,
		Maximize:  maximize,
	}
	if len(file.Variables) > 0 {
		p.Names = file.Variables
	}
	labels := make([]string, 0, len(file.Constraints))
	anyNamed := false
	for _, c := range file.Constraints {
		rel, err := lp.ParseRelation(c.Relation)
		if err != nil {
			return lp.Problem{}, err
		}
		p.A = append(p.A, c.Coefficients)
		p.RHS = append(p.RHS, c.RHS)
		p.Relations = append(p.Relations, rel)
		labels = append(labels, c.Name)
		if c.Name != "" {
			anyNamed = true
		}
	}
	if anyNamed {
		// unnamed rows fall back to their positional default
		p.ConstraintLabels = labels
	}

	if err := p.Validate(); err != nil {
		return lp.Problem{}, err
	}

	return p, nil
}

func printResult(cmd *cobra.Command, p lp.Problem, res simplex.Result) {
	cmd.Printf("status: %s\n", res.Status)
	cmd.Printf("iterations: %d (phase 1: %d)\n", res.Iterations, res.Phase1Iterations)
	if res.Status != simplex.StatusOptimal {
		return
	}
	for _, name := range p.VariableNames() {
		cmd.Printf("  %s = %g\n", name, res.Solution[name])
	}
	cmd.Printf("objective: %g\n", res.ObjectiveValue)
}

func printSensitivity(cmd *cobra.Command, p lp.Problem, rep simplex.SensitivityReport) {
	cmd.Println("shadow prices:")
	for _, name := range p.ConstraintNames() {
		if price, ok := rep.ShadowPrices[name]; ok {
			cmd.Printf("  %s: %g\n", name, price)
		}
	}
	cmd.Println("objective coefficient ranges:")
	for _, name := range p.VariableNames() {
		r := rep.OptimalityRanges[name]
		cmd.Printf("  %s: [%s, %s]\n", name, formatBound(r.Min), formatBound(r.Max))
	}
	cmd.Println("RHS feasibility ranges:")
	for _, name := range p.ConstraintNames() {
		if r, ok := rep.FeasibilityRanges[name]; ok {
			cmd.Printf("  %s: [%s, %s]\n", name, formatBound(r.Min), formatBound(r.Max))
		}
	}
}

// formatBound renders ±Inf as unbounded interval ends.
func formatBound(v float64) string {
	switch {
	case math.IsInf(v, -1):
		return "-inf"
	case math.IsInf(v, 1):
		return "+inf"
	default:
		return fmt.Sprintf("%g", v)
	}
}
