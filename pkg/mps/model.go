package mps

import (
	"errors"
	"fmt"
)

var ErrUnknownVariable = errors.New("unknown variable")

type ConstrType int

const (
	Equal ConstrType = iota
	LessEqual
	GreaterEqual
)

// Code returns the row type code used in the ROWS section
func (typ ConstrType) Code() string {
	switch typ {
	case LessEqual:
		return "L"
	case GreaterEqual:
		return "G"
	}
	return "E"
}

// Nonzero is a back-reference from a variable to a constraint it appears in
type Nonzero struct {
	Constr int
	Coef   int64
}

// Var is a binary decision variable
type Var struct {
	Name     string
	Desc     string
	Nonzeros []Nonzero // In the order constraints were registered
	Obj      int64
	HasObj   bool
}

type Constr struct {
	Name string
	Desc string
	Cols Cols
	Type ConstrType
	RHS  int64
}

// Model owns every variable and constraint. Variables and constraints are referenced by
// their index, which equals their registration order.
type Model struct {
	name    string
	profile Profile
	vars    []Var
	constrs []Constr
	obj     Cols
}

// Option configures a Model at construction
type Option func(*Model)

// WithProfile sets the naming profile checked on registration (Strict by default)
func WithProfile(profile Profile) Option {
	return func(model *Model) {
		model.profile = profile
	}
}

func NewModel(name string, options ...Option) *Model {
	model := &Model{
		name:    name,
		profile: Strict,
		vars:    make([]Var, 0),
		constrs: make([]Constr, 0),
	}
	for _, option := range options {
		option(model)
	}
	return model
}

// Name returns the problem name written on the NAME line
func (model *Model) Name() string {
	return model.name
}

func (model *Model) Profile() Profile {
	return model.profile
}

// AddVar registers a new variable and returns its index
func (model *Model) AddVar(name, desc string) (int, error) {
	if err := model.profile.Check("variable", name); err != nil {
		return 0, err
	}
	index := len(model.vars)
	model.vars = append(model.vars, Var{Name: name, Desc: desc})
	return index, nil
}

// AddConstr registers constr and records a back-reference on every variable it names.
// Nothing is registered when an error is returned.
func (model *Model) AddConstr(constr Constr) error {
	if err := model.profile.Check("constraint", constr.Name); err != nil {
		return err
	}
	for _, entry := range constr.Cols.Entries() {
		if entry.Var < 0 || entry.Var >= len(model.vars) {
			return fmt.Errorf("%w: constraint %v references variable %d of %d", ErrUnknownVariable, constr.Name, entry.Var, len(model.vars))
		}
	}

	index := len(model.constrs)
	for _, entry := range constr.Cols.Entries() {
		variable := &model.vars[entry.Var]
		variable.Nonzeros = append(variable.Nonzeros, Nonzero{Constr: index, Coef: entry.Coef})
	}
	model.constrs = append(model.constrs, constr)
	return nil
}

// SetObjective sets the objective coefficient of every variable named in objective.
// A later call overwrites the coefficients of the variables it names.
func (model *Model) SetObjective(objective Cols) error {
	for _, entry := range objective.Entries() {
		if entry.Var < 0 || entry.Var >= len(model.vars) {
			return fmt.Errorf("%w: objective references variable %d of %d", ErrUnknownVariable, entry.Var, len(model.vars))
		}
	}
	for _, entry := range objective.Entries() {
		model.vars[entry.Var].Obj = entry.Coef
		model.vars[entry.Var].HasObj = true
	}
	model.obj = objective
	return nil
}

func (model *Model) Objective() Cols {
	return model.obj
}

func (model *Model) NumVars() int {
	return len(model.vars)
}

func (model *Model) NumConstrs() int {
	return len(model.constrs)
}

func (model *Model) Var(index int) Var {
	return model.vars[index]
}

func (model *Model) Constr(index int) Constr {
	return model.constrs[index]
}
