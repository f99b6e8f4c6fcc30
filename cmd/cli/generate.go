package main

import (
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/limaJavier/stratmps/pkg/problem"
)

func newGenerateCmd() *cobra.Command {
	var (
		seed    uint64
		options problem.GenerateOptions
	)
	cmd := &cobra.Command{
		Use:   "generate <output>",
		Short: "Write a random problem document, e.g. for benchmarks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rng := rand.New(rand.NewPCG(seed, seed))
			return problem.Write(args[0], problem.Generate(rng, options))
		},
	}
	flags := cmd.Flags()
	flags.Uint64Var(&seed, "seed", 1, "random seed")
	flags.IntVar(&options.Nodes, "nodes", 100, "number of nodes")
	flags.IntVar(&options.MaxStrategies, "strategies", 4, "maximum strategies per node")
	flags.IntVar(&options.Edges, "edges", 200, "number of edges")
	flags.Uint64Var(&options.Horizon, "horizon", 1000, "intervals lie within [0, horizon)")
	flags.Uint64Var(&options.MaxCost, "max-cost", 100, "costs lie within [0, max-cost)")
	flags.Uint64Var(&options.MaxUsage, "max-usage", 10, "usages lie within [1, max-usage]")
	return cmd
}
