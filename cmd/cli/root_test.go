package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exampleJson = `{"problem": {
  "name": "example",
  "nodes": {"intervals": [[0, 10], [5, 15]], "costs": [[1, 2], [5]], "usages": [[1, 1], [2]]},
  "edges": {"nodes": [[0, 1]], "costs": [[3, 4]]},
  "usage_limit": 3
}}`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), err
}

func writeInput(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNoArguments(t *testing.T) {
	out, err := execute(t)

	assert.NoError(t, err)
	assert.Equal(t, usageHint+"\n", out)
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, "data/example.mps", OutputPath("data/example.json", ".mps"))
	assert.Equal(t, "example.mps", OutputPath("example", ".mps"))
	assert.Equal(t, "v1.2/example.lp", OutputPath("v1.2/example.yaml", ".lp"))
}

func TestBuildWritesModel(t *testing.T) {
	input := writeInput(t, "example.json", exampleJson)

	_, err := execute(t, input)
	require.NoError(t, err)

	content, err := os.ReadFile(OutputPath(input, ".mps"))
	require.NoError(t, err)
	model := string(content)
	assert.True(t, strings.HasPrefix(model, "NAME          example\nROWS\n"))
	assert.True(t, strings.HasSuffix(model, "\nENDATA"))
	assert.Equal(t, 5, strings.Count(model, " BV "))
}

func TestBuildWithConfig(t *testing.T) {
	input := writeInput(t, "example.json", exampleJson)
	cfg := writeInput(t, "stratmps.yaml", "output:\n  extension: .model\n  describe: true\n")

	_, err := execute(t, "--config", cfg, input)
	require.NoError(t, err)

	content, err := os.ReadFile(OutputPath(input, ".model"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "* node 0 picks exactly one strategy\n")
}

func TestBuildFailureWritesNothing(t *testing.T) {
	scenarios := map[string]string{
		"decode":   `{"problem": {"name": "x", "nodes": {"intervals": [[0, 1]], "costs": [[1, 2]], "usages": [[1]]}, "edges": {"nodes": [], "costs": []}, "usage_limit": 1}}`,
		"overflow": `{"problem": {"name": "x", "nodes": {"intervals": [[0, 1]], "costs": [[1]], "usages": [[1]]}, "edges": {"nodes": [], "costs": []}, "usage_limit": 18446744073709551615}}`,
	}

	for name, content := range scenarios {
		t.Run(name, func(t *testing.T) {
			input := writeInput(t, "broken.json", content)

			_, err := execute(t, input)

			assert.Error(t, err)
			assert.NoFileExists(t, OutputPath(input, ".mps"))
		})
	}
}

func TestBuildRefusesToOverwriteInput(t *testing.T) {
	input := writeInput(t, "example.mps", exampleJson)

	_, err := execute(t, input)

	assert.Error(t, err)
}

func TestVerify(t *testing.T) {
	input := writeInput(t, "example.json", exampleJson)
	feasible := writeInput(t, "feasible.sol", "# Objective value = 13\nS0000000 1\nS0000001 0\nS0000002 1\nE0000000 1\nE0000001 1\n")
	infeasible := writeInput(t, "infeasible.sol", "S0000000 1\nS0000001 1\nS0000002 1\nE0000000 1\nE0000001 1\n")

	out, err := execute(t, "verify", input, feasible)
	require.NoError(t, err)
	assert.Equal(t, "Obj: 13\n", out)

	out, err = execute(t, "verify", input, infeasible)
	assert.Error(t, err)
	assert.Contains(t, out, "E U0000000")
}

func TestGenerateThenBuild(t *testing.T) {
	input := filepath.Join(t.TempDir(), "random.json")

	_, err := execute(t, "generate", "--nodes", "30", "--edges", "40", "--seed", "7", input)
	require.NoError(t, err)
	_, err = execute(t, input)
	require.NoError(t, err)

	assert.FileExists(t, OutputPath(input, ".mps"))
}
