package problem

import (
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

var ErrInputDecode = errors.New("input decode error")

// Document is the top-level shape of an input file: {"problem": {...}}
type Document struct {
	Problem Problem `mapstructure:"problem" json:"problem" yaml:"problem"`
}

type Problem struct {
	Name       string `mapstructure:"name" json:"name" yaml:"name"`
	Nodes      Nodes  `mapstructure:"nodes" json:"nodes" yaml:"nodes"`
	Edges      Edges  `mapstructure:"edges" json:"edges" yaml:"edges"`
	UsageLimit uint64 `mapstructure:"usage_limit" json:"usage_limit" yaml:"usage_limit"`
}

// Nodes holds parallel per-node sequences: node i is active during Intervals[i] and has
// len(Costs[i]) strategies
type Nodes struct {
	Intervals [][2]uint64 `mapstructure:"intervals" json:"intervals" yaml:"intervals"`
	Costs     [][]uint64  `mapstructure:"costs" json:"costs" yaml:"costs"`
	Usages    [][]uint64  `mapstructure:"usages" json:"usages" yaml:"usages"`
}

// Edges holds parallel per-edge sequences. Costs[e] is row-major over
// (strategy of Nodes[e][0], strategy of Nodes[e][1]).
type Edges struct {
	Nodes [][2]uint64 `mapstructure:"nodes" json:"nodes" yaml:"nodes"`
	Costs [][]uint64  `mapstructure:"costs" json:"costs" yaml:"costs"`
}

func (problem Problem) NumNodes() int {
	return len(problem.Nodes.Costs)
}

func (problem Problem) Strategies(node int) int {
	return len(problem.Nodes.Costs[node])
}

// Validate checks the structural invariants the model construction relies on
func (problem Problem) Validate() error {
	nodes := problem.Nodes
	if len(nodes.Intervals) != len(nodes.Costs) || len(nodes.Usages) != len(nodes.Costs) {
		return errors.Wrapf(ErrInputDecode, "node block has %d intervals, %d cost lists and %d usage lists", len(nodes.Intervals), len(nodes.Costs), len(nodes.Usages))
	}
	for node := range nodes.Costs {
		if len(nodes.Costs[node]) != len(nodes.Usages[node]) {
			return errors.Wrapf(ErrInputDecode, "node %d has %d costs but %d usages", node, len(nodes.Costs[node]), len(nodes.Usages[node]))
		}
		if interval := nodes.Intervals[node]; interval[0] > interval[1] {
			return errors.Wrapf(ErrInputDecode, "node %d interval [%d, %d) ends before it starts", node, interval[0], interval[1])
		}
	}

	edges := problem.Edges
	if len(edges.Nodes) != len(edges.Costs) {
		return errors.Wrapf(ErrInputDecode, "edge block has %d node pairs but %d cost lists", len(edges.Nodes), len(edges.Costs))
	}
	for edge, pair := range edges.Nodes {
		v, u := pair[0], pair[1]
		if v >= uint64(len(nodes.Costs)) || u >= uint64(len(nodes.Costs)) {
			return errors.Wrapf(ErrInputDecode, "edge %d (%d, %d) references a node out of %d", edge, v, u, len(nodes.Costs))
		}
		pairs := len(nodes.Costs[v]) * len(nodes.Costs[u])
		if len(edges.Costs[edge]) != pairs {
			return errors.Wrapf(ErrInputDecode, "edge %d (%d, %d) has %d costs, expected %d×%d", edge, v, u, len(edges.Costs[edge]), len(nodes.Costs[v]), len(nodes.Costs[u]))
		}
	}
	return nil
}

// Summary is a short description of a problem's size
type Summary struct {
	Name          string
	Nodes         int
	IntervalMin   uint64 // Smallest interval start
	IntervalMax   uint64 // Largest interval end
	Strategies    int
	StrategyPairs int // Edge variables the problem will produce
	Edges         int
}

func (problem Problem) Summary() Summary {
	summary := Summary{
		Name:          problem.Name,
		Nodes:         problem.NumNodes(),
		Strategies:    lo.Sum(lo.Map(problem.Nodes.Costs, func(costs []uint64, _ int) int { return len(costs) })),
		StrategyPairs: lo.Sum(lo.Map(problem.Edges.Costs, func(costs []uint64, _ int) int { return len(costs) })),
		Edges:         len(problem.Edges.Nodes),
	}
	if len(problem.Nodes.Intervals) > 0 {
		summary.IntervalMin = lo.Min(lo.Map(problem.Nodes.Intervals, func(interval [2]uint64, _ int) uint64 { return interval[0] }))
		summary.IntervalMax = lo.Max(lo.Map(problem.Nodes.Intervals, func(interval [2]uint64, _ int) uint64 { return interval[1] }))
	}
	return summary
}
