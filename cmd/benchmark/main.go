package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"time"

	"github.com/limaJavier/stratmps/pkg/model"
	"github.com/limaJavier/stratmps/pkg/problem"

	"github.com/samber/lo"
)

const resultsFile = "benchmark_results.csv"

type Scenario struct {
	Nodes         int
	MaxStrategies int
	Edges         int
	Horizon       uint64
}

type BenchmarkResult struct {
	Scenario    Scenario
	Variables   int
	Constraints int
	Build       time.Duration
	Write       time.Duration
	Bytes       int64
}

func main() {
	scenarios := getScenarios()
	results := make([]BenchmarkResult, 0, len(scenarios))

	for i, scenario := range scenarios {
		fmt.Printf("Benchmarking %d nodes, %d strategies, %d edges, horizon %d\n", scenario.Nodes, scenario.MaxStrategies, scenario.Edges, scenario.Horizon)

		rng := rand.New(rand.NewPCG(uint64(i), 42))
		result, err := measure(rng, scenario)
		if err != nil {
			log.Fatalf("cannot benchmark scenario %+v: %v", scenario, err)
		}
		results = append(results, result)
	}

	file, err := os.Create(resultsFile)
	if err != nil {
		log.Fatalf("cannot create CSV file: %v", err)
	}
	defer file.Close()

	if err := toCsv(file, results); err != nil {
		log.Fatalf("cannot write CSV file: %v", err)
	}
}

func getScenarios() []Scenario {
	nodes := []int{100, 1_000, 10_000, 50_000}
	return lo.FlatMap(nodes, func(n int, _ int) []Scenario {
		return []Scenario{
			{Nodes: n, MaxStrategies: 4, Edges: n, Horizon: uint64(n) * 10},
			{Nodes: n, MaxStrategies: 8, Edges: 2 * n, Horizon: uint64(n)},
		}
	})
}

// countingWriter discards the model and keeps its size
type countingWriter struct {
	n int64
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.n += int64(len(p))
	return len(p), nil
}

func measure(rng *rand.Rand, scenario Scenario) (BenchmarkResult, error) {
	p := problem.Generate(rng, problem.GenerateOptions{
		Nodes:         scenario.Nodes,
		MaxStrategies: scenario.MaxStrategies,
		Edges:         scenario.Edges,
		Horizon:       scenario.Horizon,
		MaxCost:       1_000,
		MaxUsage:      10,
	})

	start := time.Now()
	built, err := model.Build(p, model.Options{})
	if err != nil {
		return BenchmarkResult{}, err
	}
	buildDuration := time.Since(start)

	var out countingWriter
	start = time.Now()
	if _, err := built.WriteTo(&out); err != nil {
		return BenchmarkResult{}, err
	}

	return BenchmarkResult{
		Scenario:    scenario,
		Variables:   built.NumVars(),
		Constraints: built.NumConstrs(),
		Build:       buildDuration,
		Write:       time.Since(start),
		Bytes:       out.n,
	}, nil
}

func toCsv(w io.Writer, results []BenchmarkResult) error {
	writer := csv.NewWriter(w)

	header := []string{"Nodes", "MaxStrategies", "Edges", "Horizon", "Variables", "Constraints", "Build(ms)", "Write(ms)", "Size(MB)"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("cannot write CSV header: %v", err)
	}

	for _, result := range results {
		record := []string{
			fmt.Sprintf("%d", result.Scenario.Nodes),
			fmt.Sprintf("%d", result.Scenario.MaxStrategies),
			fmt.Sprintf("%d", result.Scenario.Edges),
			fmt.Sprintf("%d", result.Scenario.Horizon),
			fmt.Sprintf("%d", result.Variables),
			fmt.Sprintf("%d", result.Constraints),
			fmt.Sprintf("%d", result.Build.Milliseconds()),
			fmt.Sprintf("%d", result.Write.Milliseconds()),
			fmt.Sprintf("%.1f", float64(result.Bytes)/(1024*1024)),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("cannot write CSV record: %v", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
