package model

import (
	"errors"
	"fmt"
	"math"

	"github.com/limaJavier/stratmps/internal/sweep"
	"github.com/limaJavier/stratmps/pkg/mps"
	"github.com/limaJavier/stratmps/pkg/problem"
)

var ErrCoefficientOverflow = errors.New("coefficient overflow")

type Options struct {
	Profile  mps.Profile
	Describe bool // Attach a description to every variable and constraint
}

// counters hold the sequence numbers behind generated names. They live for one build.
type counters struct {
	strategyVars uint64 // S%07d
	edgeVars     uint64 // E%07d
	resource     uint64 // R%07x
	connectivity uint64 // C%07x
}

type modelBuilder struct {
	problem   problem.Problem
	options   Options
	model     *mps.Model
	objective mps.Cols
	counters  counters

	strategyVars [][]int // strategyVars[node][strategy] = variable index
}

// Build enumerates the variables and constraints of p:
//   - one binary variable per (node, strategy), exactly one chosen per node,
//   - a capacity constraint per distinct interval start over the strategies active then,
//   - one variable per (edge, strategy pair) bounded below by both endpoint strategies.
//
// The objective minimises strategy and strategy-pair costs.
func Build(p problem.Problem, options Options) (*mps.Model, error) {
	builder := newModelBuilder(p, options)
	return builder.build()
}

func newModelBuilder(p problem.Problem, options Options) *modelBuilder {
	return &modelBuilder{
		problem:      p,
		options:      options,
		model:        mps.NewModel(p.Name, mps.WithProfile(options.Profile)),
		objective:    mps.NewCols(),
		strategyVars: make([][]int, p.NumNodes()),
	}
}

func (builder *modelBuilder) build() (*mps.Model, error) {
	if err := builder.problem.Validate(); err != nil {
		return nil, err
	}
	if err := builder.assignmentConstraints(); err != nil {
		return nil, err
	}
	if err := builder.resourceConstraints(); err != nil {
		return nil, err
	}
	if err := builder.connectivityConstraints(); err != nil {
		return nil, err
	}
	if err := builder.model.SetObjective(builder.objective); err != nil {
		return nil, err
	}
	return builder.model, nil
}

// assignmentConstraints registers every strategy variable and forces each node to pick exactly one
func (builder *modelBuilder) assignmentConstraints() error {
	for node, costs := range builder.problem.Nodes.Costs {
		cols := mps.NewCols()
		builder.strategyVars[node] = make([]int, len(costs))

		for strategy, cost := range costs {
			coef, err := toCoef(cost, "cost of node %d strategy %d", node, strategy)
			if err != nil {
				return err
			}

			name := fmt.Sprintf("S%07d", builder.counters.strategyVars)
			builder.counters.strategyVars++
			variable, err := builder.model.AddVar(name, builder.describe("node %d strategy %d", node, strategy))
			if err != nil {
				return err
			}

			builder.strategyVars[node][strategy] = variable
			builder.pushObjective(coef, variable)
			cols.Push(1, variable)
		}

		err := builder.model.AddConstr(mps.Constr{
			Name: fmt.Sprintf("U%07x", node),
			Desc: builder.describe("node %d picks exactly one strategy", node),
			Cols: cols,
			Type: mps.Equal,
			RHS:  1,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// resourceConstraints bounds, at every distinct interval start, the usage of all strategies
// of the nodes active at that instant
func (builder *modelBuilder) resourceConstraints() error {
	limit, err := toCoef(builder.problem.UsageLimit, "usage limit")
	if err != nil {
		return err
	}

	intervals := make([]sweep.Interval, builder.problem.NumNodes())
	for node, interval := range builder.problem.Nodes.Intervals {
		intervals[node] = sweep.Interval{Node: node, Start: interval[0], End: interval[1]}
	}

	for _, slot := range sweep.Coverage(intervals) {
		if len(slot.Nodes) == 0 {
			continue
		}

		cols := mps.NewCols()
		for _, node := range slot.Nodes {
			for strategy, usage := range builder.problem.Nodes.Usages[node] {
				coef, err := toCoef(usage, "usage of node %d strategy %d", node, strategy)
				if err != nil {
					return err
				}
				cols.Push(coef, builder.strategyVars[node][strategy])
			}
		}

		name := fmt.Sprintf("R%07x", builder.counters.resource)
		builder.counters.resource++
		err := builder.model.AddConstr(mps.Constr{
			Name: name,
			Desc: builder.describe("usage of %d nodes active at %d", len(slot.Nodes), slot.At),
			Cols: cols,
			Type: mps.LessEqual,
			RHS:  limit,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// connectivityConstraints registers one variable per edge strategy pair, carrying the pair's
// cost, and requires it to be at least each endpoint strategy variable
func (builder *modelBuilder) connectivityConstraints() error {
	for edge, pair := range builder.problem.Edges.Nodes {
		v, u := int(pair[0]), int(pair[1])
		costs := builder.problem.Edges.Costs[edge]
		uStrategies := len(builder.strategyVars[u])

		// Row-major: v strategy outer, u strategy inner
		for index, cost := range costs {
			i, j := index/uStrategies, index%uStrategies

			coef, err := toCoef(cost, "cost of edge %d pair (%d, %d)", edge, i, j)
			if err != nil {
				return err
			}

			name := fmt.Sprintf("E%07d", builder.counters.edgeVars)
			builder.counters.edgeVars++
			variable, err := builder.model.AddVar(name, builder.describe("edge %d (%d, %d) strategies (%d, %d)", edge, v, u, i, j))
			if err != nil {
				return err
			}
			builder.pushObjective(coef, variable)

			for _, endpoint := range [2][2]int{{v, i}, {u, j}} {
				node, strategy := endpoint[0], endpoint[1]
				cols := mps.NewCols()
				cols.Push(1, variable)
				cols.Push(-1, builder.strategyVars[node][strategy])

				name := fmt.Sprintf("C%07x", builder.counters.connectivity)
				builder.counters.connectivity++
				err := builder.model.AddConstr(mps.Constr{
					Name: name,
					Desc: builder.describe("edge %d selected with node %d strategy %d", edge, node, strategy),
					Cols: cols,
					Type: mps.GreaterEqual,
					RHS:  0,
				})
				if err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// pushObjective skips zero costs so only nonzero objective coefficients are emitted
func (builder *modelBuilder) pushObjective(coef int64, variable int) {
	if coef != 0 {
		builder.objective.Push(coef, variable)
	}
}

func (builder *modelBuilder) describe(format string, args ...any) string {
	if !builder.options.Describe {
		return ""
	}
	return fmt.Sprintf(format, args...)
}

func toCoef(value uint64, format string, args ...any) (int64, error) {
	if value > math.MaxInt64 {
		return 0, fmt.Errorf("%w: %v is %d", ErrCoefficientOverflow, fmt.Sprintf(format, args...), value)
	}
	return int64(value), nil
}
