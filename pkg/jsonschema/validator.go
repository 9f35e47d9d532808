// Package jsonschema checks JSON response bodies against a JSON Schema.
package jsonschema

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ValidationErrors represents a collection of validation errors
type ValidationErrors []error

// Error implements the error interface for ValidationErrors
func (ve ValidationErrors) Error() string {
	msgs := make([]string, len(ve))
	for i, err := range ve {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Schema is a compiled schema that can check many bodies.
type Schema struct {
	compiled *jsonschema.Schema
}

// Compile parses a schema document.
func Compile(schema string) (*Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", strings.NewReader(schema)); err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}
	compiled, err := compiler.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}
	return &Schema{compiled: compiled}, nil
}

// Check validates body. A nil result means the body conforms; otherwise
// the result lists one error per failing schema location.
func (s *Schema) Check(body string) ValidationErrors {
	var doc interface{}
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		return ValidationErrors{fmt.Errorf("invalid JSON: %w", err)}
	}

	err := s.compiled.Validate(doc)
	if err == nil {
		return nil
	}
	var verr *jsonschema.ValidationError
	if errors.As(err, &verr) {
		return flatten(verr)
	}
	return ValidationErrors{err}
}

// Validate compiles schema and checks body in one step.
func Validate(body, schema string) ValidationErrors {
	s, err := Compile(schema)
	if err != nil {
		return ValidationErrors{err}
	}
	return s.Check(body)
}

func flatten(err *jsonschema.ValidationError) ValidationErrors {
	var out ValidationErrors
	if err.Message != "" {
		out = append(out, fmt.Errorf("validation error at %s: %s", err.InstanceLocation, err.Message))
	}
	for _, cause := range err.Causes {
		out = append(out, flatten(cause)...)
	}
	return out
}
