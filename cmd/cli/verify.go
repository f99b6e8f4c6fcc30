package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/limaJavier/stratmps/pkg/mps"
)

func newVerifyCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "verify <input> <solution>",
		Short: "Check a solver solution file against the model built from input",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(cmd, opts, args[0], args[1])
		},
	}
}

func runVerify(cmd *cobra.Command, opts *options, input, solutionFile string) error {
	cfg, logger, err := setup(cmd, opts, "verify")
	if err != nil {
		return err
	}

	built, err := buildModel(cfg, logger, input)
	if err != nil {
		return err
	}

	file, err := os.Open(solutionFile)
	if err != nil {
		return errors.Wrap(err, "cannot open solution")
	}
	defer file.Close()

	solution, err := mps.ReadSolution(file)
	if err != nil {
		return errors.Wrapf(err, "cannot parse %v", solutionFile)
	}

	report, err := built.Verify(solution)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, violation := range report.Violations {
		fmt.Fprintln(out, violation)
	}
	fmt.Fprintf(out, "Obj: %g\n", report.Objective)
	if !report.Feasible() {
		return fmt.Errorf("solution violates %d rows or bounds", len(report.Violations))
	}
	logger.Info().Float64("objective", report.Objective).Msg("solution is feasible")
	return nil
}
