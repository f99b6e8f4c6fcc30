package mps

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/floats"
)

// Tolerance used when comparing solution values against bounds and right-hand sides
const Tolerance = 1e-6

var ErrIncompleteSolution = errors.New("incomplete solution")

// Solution maps variable names to the values an external solver assigned them
type Solution map[string]float64

// ReadSolution parses a solver solution file made of "name value" lines. Blank lines and
// lines starting with '#' are skipped.
func ReadSolution(r io.Reader) (Solution, error) {
	solution := make(Solution)
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) != 2 {
			return nil, fmt.Errorf("line %d: expected \"name value\", got %q", line, text)
		}
		value, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid value for %v: %w", line, fields[0], err)
		}
		solution[fields[0]] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read solution: %w", err)
	}
	return solution, nil
}

type Violation struct {
	Name     string // Constraint or variable name
	Activity float64
	Bound    float64
	Type     string // Row type code, or "BV" for a binary bound
}

func (violation Violation) String() string {
	return fmt.Sprintf("%v %v: activity %g, bound %g", violation.Type, violation.Name, violation.Activity, violation.Bound)
}

type Report struct {
	Objective  float64
	Violations []Violation
}

func (report Report) Feasible() bool {
	return len(report.Violations) == 0
}

// Verify evaluates solution against every binary bound and constraint of the model.
// Every variable of the model must have a value.
func (model *Model) Verify(solution Solution) (Report, error) {
	missing := lo.Filter(model.vars, func(variable Var, _ int) bool {
		_, ok := solution[variable.Name]
		return !ok
	})
	if len(missing) > 0 {
		return Report{}, fmt.Errorf("%w: %d variables without value, first is %v", ErrIncompleteSolution, len(missing), missing[0].Name)
	}

	values := lo.Map(model.vars, func(variable Var, _ int) float64 { return solution[variable.Name] })
	report := Report{Violations: make([]Violation, 0)}

	//** Binary bounds
	for i, value := range values {
		if math.Abs(value) > Tolerance && math.Abs(value-1) > Tolerance {
			report.Violations = append(report.Violations, Violation{Name: model.vars[i].Name, Activity: value, Bound: math.Round(value), Type: "BV"})
		}
	}

	//** Constraints
	for _, constr := range model.constrs {
		coefs, xs := gather(constr.Cols, values)
		activity := floats.Dot(coefs, xs)
		rhs := float64(constr.RHS)

		violated := false
		switch constr.Type {
		case Equal:
			violated = math.Abs(activity-rhs) > Tolerance
		case LessEqual:
			violated = activity > rhs+Tolerance
		case GreaterEqual:
			violated = activity < rhs-Tolerance
		}
		if violated {
			report.Violations = append(report.Violations, Violation{Name: constr.Name, Activity: activity, Bound: rhs, Type: constr.Type.Code()})
		}
	}

	//** Objective
	objective := lo.Map(model.vars, func(variable Var, _ int) float64 { return float64(variable.Obj) })
	report.Objective = floats.Dot(objective, values)

	return report, nil
}

func gather(cols Cols, values []float64) (coefs, xs []float64) {
	coefs = make([]float64, cols.Len())
	xs = make([]float64, cols.Len())
	for i, entry := range cols.Entries() {
		coefs[i] = float64(entry.Coef)
		xs[i] = values[entry.Var]
	}
	return coefs, xs
}
