package problem

import (
	"fmt"
	"math/rand/v2"

	"github.com/samber/lo"
)

type GenerateOptions struct {
	Nodes         int
	MaxStrategies int // Each node gets between 1 and MaxStrategies strategies
	Edges         int
	Horizon       uint64 // Intervals lie within [0, Horizon)
	MaxCost       uint64
	MaxUsage      uint64
}

// Generate builds a random problem that satisfies Validate
func Generate(rng *rand.Rand, options GenerateOptions) Problem {
	horizon := max(options.Horizon, 1)
	maxStrategies := max(options.MaxStrategies, 1)
	maxCost := max(options.MaxCost, 1)
	maxUsage := max(options.MaxUsage, 1)

	problem := Problem{
		Name: fmt.Sprintf("random-%d-%d", options.Nodes, options.Edges),
		Nodes: Nodes{
			Intervals: make([][2]uint64, options.Nodes),
			Costs:     make([][]uint64, options.Nodes),
			Usages:    make([][]uint64, options.Nodes),
		},
		Edges: Edges{
			Nodes: make([][2]uint64, 0, options.Edges),
			Costs: make([][]uint64, 0, options.Edges),
		},
	}

	for node := range options.Nodes {
		start := rng.Uint64N(horizon)
		end := start + rng.Uint64N(horizon-start+1) // Possibly empty
		problem.Nodes.Intervals[node] = [2]uint64{start, end}

		strategies := rng.IntN(maxStrategies) + 1
		problem.Nodes.Costs[node] = lo.Times(strategies, func(_ int) uint64 { return rng.Uint64N(maxCost) })
		problem.Nodes.Usages[node] = lo.Times(strategies, func(_ int) uint64 { return rng.Uint64N(maxUsage) + 1 })
	}

	problem.UsageLimit = maxUsage * uint64(max(options.Nodes/2, 1))

	if options.Nodes > 0 {
		for range options.Edges {
			v, u := rng.IntN(options.Nodes), rng.IntN(options.Nodes)
			pairs := len(problem.Nodes.Costs[v]) * len(problem.Nodes.Costs[u])
			problem.Edges.Nodes = append(problem.Edges.Nodes, [2]uint64{uint64(v), uint64(u)})
			problem.Edges.Costs = append(problem.Edges.Costs, lo.Times(pairs, func(_ int) uint64 { return rng.Uint64N(maxCost) }))
		}
	}

	return problem
}
