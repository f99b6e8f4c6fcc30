package problem

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/google/renameio/v2"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// FromFile reads a JSON or YAML problem document, chosen by file extension (JSON otherwise)
func FromFile(file string) (Problem, error) {
	content, err := os.ReadFile(file)
	if err != nil {
		return Problem{}, errors.Wrapf(err, "cannot read problem file %v", file)
	}

	switch strings.ToLower(filepath.Ext(file)) {
	case ".yaml", ".yml":
		return FromYaml(content)
	default:
		return FromJson(content)
	}
}

func FromJson(content []byte) (Problem, error) {
	decoder := json.NewDecoder(bytes.NewReader(content))
	decoder.UseNumber() // Keep full uint64 precision
	var raw map[string]any
	if err := decoder.Decode(&raw); err != nil {
		return Problem{}, errors.Wrapf(ErrInputDecode, "malformed json: %v", err)
	}
	return Decode(raw)
}

func FromYaml(content []byte) (Problem, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(content, &raw); err != nil {
		return Problem{}, errors.Wrapf(ErrInputDecode, "malformed yaml: %v", err)
	}
	return Decode(raw)
}

// Decode maps a generic document onto a Problem and validates it. Both the
// {"problem": {...}} wrapper and a bare problem object are accepted.
func Decode(raw map[string]any) (Problem, error) {
	var problem Problem
	var target any = &problem
	if _, ok := raw["problem"]; ok {
		target = &Document{}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:     target,
		ErrorUnset: true,
		DecodeHook: pairHook,
	})
	if err != nil {
		return Problem{}, err
	}
	if err := decoder.Decode(raw); err != nil {
		return Problem{}, errors.Wrapf(ErrInputDecode, "%v", err)
	}

	if document, ok := target.(*Document); ok {
		problem = document.Problem
	}
	if err := problem.Validate(); err != nil {
		return Problem{}, err
	}
	return problem, nil
}

var pairType = reflect.TypeOf([2]uint64{})

// pairHook rejects intervals and edge endpoints that do not hold exactly two values,
// which mapstructure would otherwise pad with zeros
func pairHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != pairType {
		return data, nil
	}
	value := reflect.ValueOf(data)
	if kind := value.Kind(); (kind == reflect.Slice || kind == reflect.Array) && value.Len() != 2 {
		return nil, fmt.Errorf("expected a pair, got %d values", value.Len())
	}
	return data, nil
}

// Write stores problem as a JSON document wrapped in {"problem": ...}. The file is replaced
// atomically.
func Write(file string, problem Problem) error {
	content, err := json.Marshal(Document{Problem: problem})
	if err != nil {
		return errors.Wrap(err, "cannot encode problem")
	}
	if err := renameio.WriteFile(file, content, 0o644); err != nil {
		return errors.Wrapf(err, "cannot write problem file %v", file)
	}
	return nil
}
