package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/angelajeffers/simulation-power-analysis/adapters/excel"
	"github.com/angelajeffers/simulation-power-analysis/adapters/report"
	"github.com/angelajeffers/simulation-power-analysis/adapters/rng"
	"github.com/angelajeffers/simulation-power-analysis/adapters/trend"
	"github.com/angelajeffers/simulation-power-analysis/domain/design"
	"github.com/angelajeffers/simulation-power-analysis/internal"
	"github.com/angelajeffers/simulation-power-analysis/internal/config"
	"github.com/angelajeffers/simulation-power-analysis/internal/simulation"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "powersim",
		Short: "Monte Carlo power estimation for dose-trend toxicology designs",
	}

	rootCmd.AddCommand(
		newRunCmd(),
		newInspectCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type runFlags struct {
	seed        int64
	iterations  int
	groupSize   int
	doseGroups  int
	workers     int
	topEffect   float64
	topVariance float64
	direction   string
	endpoint    string
	mean        float64
	sd          float64
	input       string
	output      string
}

func newRunCmd() *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Estimate power for each endpoint of a study design",
		Long: `Simulate repeated studies under the configured scenario and report, per
endpoint, the fraction that reject the dose-trend null at the 0.05 level.

Endpoints come from a pilot file (--input, xlsx or csv with endpoint/mean/sd
columns) or from the --endpoint/--mean/--sd flags.

Example: powersim run --seed 1563 --iterations 10000 --group-size 10 --mean 2.08 --sd 0.13`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEstimate(cmd, flags)
		},
	}

	addDesignFlags(cmd, &flags)
	cmd.Flags().StringVar(&flags.input, "input", "", "Pilot data file (.xlsx or .csv)")
	cmd.Flags().StringVar(&flags.output, "output", "", "Report output path (.md, .html, or .xlsx)")
	cmd.Flags().IntVar(&flags.workers, "workers", 1, "Parallel workers per endpoint (1 = reference sequential mode)")

	return cmd
}

func newInspectCmd() *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print the validated design and its dose multiplier table without simulating",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := buildDesign(cmd, flags)
			if err != nil {
				return err
			}
			fmt.Printf("Scenario %s: seed %d, %d iterations, %d per group\n",
				d.Scenario.Label, d.Seed, d.Iterations, d.GroupSize)
			fmt.Println("Dose  Effect  Variance")
			for _, dose := range d.DoseLevels {
				effect, variance, err := d.Scenario.MultipliersFor(dose)
				if err != nil {
					return err
				}
				fmt.Printf("%4d  %6.3f  %8.3f\n", dose, effect, variance)
			}
			for _, ep := range d.Endpoints {
				fmt.Printf("Endpoint %s: mean %g, sd %g\n", ep.Name, ep.ControlMean, ep.ControlSD)
			}
			return nil
		},
	}

	addDesignFlags(cmd, &flags)
	cmd.Flags().StringVar(&flags.input, "input", "", "Pilot data file (.xlsx or .csv)")

	return cmd
}

func addDesignFlags(cmd *cobra.Command, flags *runFlags) {
	cmd.Flags().Int64Var(&flags.seed, "seed", 1563, "Random seed for deterministic simulation")
	cmd.Flags().IntVar(&flags.iterations, "iterations", 10000, "Simulated studies per endpoint")
	cmd.Flags().IntVar(&flags.groupSize, "group-size", 10, "Animals per dose group")
	cmd.Flags().IntVar(&flags.doseGroups, "dose-groups", 3, "Treated dose groups in addition to control")
	cmd.Flags().Float64Var(&flags.topEffect, "top-effect", 0.85, "Effect multiplier at the highest dose")
	cmd.Flags().Float64Var(&flags.topVariance, "top-variance", 2.0, "SD multiplier at the highest dose")
	cmd.Flags().StringVar(&flags.direction, "direction", "decreasing", "Trend direction tested (increasing|decreasing)")
	cmd.Flags().StringVar(&flags.endpoint, "endpoint", "endpoint_1", "Endpoint name when no input file is given")
	cmd.Flags().Float64Var(&flags.mean, "mean", 2.08, "Control mean when no input file is given")
	cmd.Flags().Float64Var(&flags.sd, "sd", 0.13, "Control SD when no input file is given")
}

// buildDesign merges environment configuration with CLI flags (flags win
// when set) and assembles a validated Design.
func buildDesign(cmd *cobra.Command, flags runFlags) (design.Design, error) {
	cfg, err := config.Load()
	if err != nil {
		return design.Design{}, err
	}
	if !cmd.Flags().Changed("seed") {
		flags.seed = cfg.Seed
	}
	if !cmd.Flags().Changed("iterations") {
		flags.iterations = cfg.Iterations
	}
	if !cmd.Flags().Changed("group-size") {
		flags.groupSize = cfg.GroupSize
	}
	if !cmd.Flags().Changed("dose-groups") {
		flags.doseGroups = cfg.DoseGroups
	}
	if !cmd.Flags().Changed("top-effect") {
		flags.topEffect = cfg.TopEffect
	}
	if !cmd.Flags().Changed("top-variance") {
		flags.topVariance = cfg.TopVariance
	}
	if !cmd.Flags().Changed("direction") {
		flags.direction = cfg.Direction
	}
	if !cmd.Flags().Changed("workers") && flags.workers <= 1 {
		flags.workers = cfg.Workers
	}
	if flags.input == "" {
		flags.input = cfg.DesignFile
	}

	var endpoints []design.EndpointSpec
	if flags.input != "" {
		endpoints, err = excel.NewPilotReader(flags.input).ReadEndpoints()
		if err != nil {
			return design.Design{}, err
		}
	} else {
		endpoints = []design.EndpointSpec{{
			Name:        flags.endpoint,
			ControlMean: flags.mean,
			ControlSD:   flags.sd,
		}}
	}

	doseLevels := make([]int, flags.doseGroups+1)
	for i := range doseLevels {
		doseLevels[i] = i
	}
	label := fmt.Sprintf("effect-%g-variance-%g", flags.topEffect, flags.topVariance)

	d := design.Design{
		Endpoints:  endpoints,
		Scenario:   design.LinearScenario(label, doseLevels, flags.topEffect, flags.topVariance),
		GroupSize:  flags.groupSize,
		DoseLevels: doseLevels,
		Iterations: flags.iterations,
		Seed:       flags.seed,
		Direction:  design.Direction(flags.direction),
		Workers:    flags.workers,
	}
	if err := d.Validate(); err != nil {
		return design.Design{}, err
	}
	return d, nil
}

func runEstimate(cmd *cobra.Command, flags runFlags) error {
	d, err := buildDesign(cmd, flags)
	if err != nil {
		return err
	}

	logger := internal.DefaultLogger
	logger.Info("starting run: scenario %s, seed %d, %d iterations, %d endpoints",
		d.Scenario.Label, d.Seed, d.Iterations, len(d.Endpoints))

	estimator := simulation.NewEstimator(rng.NewAdapter(), trend.NewJonckheereTerpstra(d.Direction))
	run, err := estimator.EstimateAll(cmd.Context(), d)
	if err != nil {
		// Endpoints completed before the failure still carry valid results.
		if run != nil && len(run.Results) > 0 {
			fmt.Print(report.NewWriter().Markdown(run))
		}
		return err
	}

	writer := report.NewWriter()
	fmt.Print(writer.Markdown(run))

	if flags.output != "" {
		switch strings.ToLower(filepath.Ext(flags.output)) {
		case ".html":
			err = writer.WriteHTML(run, flags.output)
		case ".xlsx":
			err = writer.WriteWorkbook(run, flags.output)
		default:
			err = writer.WriteMarkdown(run, flags.output)
		}
		if err != nil {
			return err
		}
		logger.Info("report written to %s", flags.output)
	}
	return nil
}
