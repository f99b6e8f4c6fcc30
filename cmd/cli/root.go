package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/limaJavier/stratmps/internal/config"
	"github.com/limaJavier/stratmps/internal/logging"
	"github.com/limaJavier/stratmps/pkg/model"
	"github.com/limaJavier/stratmps/pkg/mps"
	"github.com/limaJavier/stratmps/pkg/problem"
)

const usageHint = "Specify data file"

type options struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "stratmps [input]",
		Short:         "Translate a strategy-assignment problem into an MPS model",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), usageHint)
				return nil
			}
			return runBuild(cmd, opts, args[0])
		},
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "configuration file (json or yaml)")
	root.AddCommand(newVerifyCmd(opts), newGenerateCmd())
	return root
}

func setup(cmd *cobra.Command, opts *options, component string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, zerolog.Nop(), errors.Wrap(err, "load config")
	}
	return cfg, logging.New(cmd.ErrOrStderr(), cfg.Logging, component), nil
}

// OutputPath replaces the extension of input with extension
func OutputPath(input, extension string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + extension
}

// buildModel loads the problem at input and enumerates its model, logging both sizes
func buildModel(cfg *config.Config, logger zerolog.Logger, input string) (*mps.Model, error) {
	p, err := problem.FromFile(input)
	if err != nil {
		return nil, err
	}

	summary := p.Summary()
	logger.Info().
		Str("problem", summary.Name).
		Int("nodes", summary.Nodes).
		Uint64("interval_min", summary.IntervalMin).
		Uint64("interval_max", summary.IntervalMax).
		Int("strategies", summary.Strategies).
		Int("edge_pairs", summary.StrategyPairs).
		Int("edges", summary.Edges).
		Msg("problem loaded")

	built, err := model.Build(p, model.Options{Profile: cfg.Profile(), Describe: cfg.Output.Describe})
	if err != nil {
		return nil, errors.Wrapf(err, "cannot build model for %v", input)
	}
	logger.Debug().Int("variables", built.NumVars()).Int("constraints", built.NumConstrs()).Msg("model built")
	return built, nil
}

func runBuild(cmd *cobra.Command, opts *options, input string) error {
	cfg, logger, err := setup(cmd, opts, "build")
	if err != nil {
		return err
	}

	output := OutputPath(input, cfg.Output.Extension)
	if filepath.Clean(output) == filepath.Clean(input) {
		return fmt.Errorf("output path %v would overwrite the input", output)
	}

	built, err := buildModel(cfg, logger, input)
	if err != nil {
		return err
	}

	// The model only becomes visible at output once it is completely written
	pending, err := renameio.NewPendingFile(output, renameio.WithPermissions(0o644))
	if err != nil {
		return errors.Wrapf(err, "cannot create %v", output)
	}
	defer pending.Cleanup()

	if _, err := built.WriteTo(pending); err != nil {
		return errors.Wrapf(err, "cannot write %v", output)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return errors.Wrapf(err, "cannot write %v", output)
	}

	logger.Info().
		Str("output", output).
		Int("variables", built.NumVars()).
		Int("constraints", built.NumConstrs()).
		Msg("model written")
	return nil
}
