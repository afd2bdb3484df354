package registration

import (
	"context"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// JSONSchema compiles s into a draft-07 JSON Schema document describing a
// valid registration payload.
func (s *Schema) JSONSchema() map[string]any {
	properties := make(map[string]any, len(s.fields))
	var required []string

	for _, fs := range s.fields {
		prop := map[string]any{}
		_, isRequired := fs.rule(RuleRequired)
		if isRequired {
			required = append(required, string(fs.Field))
		}

		switch fs.Kind {
		case KindString:
			prop["type"] = "string"
			minLen := 0
			if isRequired {
				minLen = 1
			}
			if r, ok := fs.rule(RuleMin); ok && r.N > minLen {
				minLen = r.N
			}
			if minLen > 0 {
				prop["minLength"] = minLen
			}
			if r, ok := fs.rule(RuleMax); ok {
				prop["maxLength"] = r.N
			}
			if r, ok := fs.rule(RuleOneOf); ok {
				enum := make([]any, len(r.Options))
				for i, o := range r.Options {
					enum[i] = o
				}
				prop["enum"] = enum
			}
		case KindBool:
			prop["type"] = "boolean"
			if _, ok := fs.rule(RuleTrue); ok {
				prop["enum"] = []any{true}
			}
		}

		properties[string(fs.Field)] = prop
	}

	doc := map[string]any{
		"$schema":    "http://json-schema.org/draft-07/schema#",
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		doc["required"] = required
	}
	return doc
}

// Gate decides whether the whole form may be submitted. It validates the
// complete state atomically against the compiled JSON Schema, independently
// of any inline error messages.
type Gate struct {
	schema *gojsonschema.Schema
}

// NewGate compiles s for whole-form validation.
func NewGate(s *Schema) (*Gate, error) {
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(s.JSONSchema()))
	if err != nil {
		return nil, fmt.Errorf("compiling registration schema: %w", err)
	}
	return &Gate{schema: compiled}, nil
}

// Valid reports whether all fields of state pass simultaneously.
func (g *Gate) Valid(ctx context.Context, state FormState) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	result, err := g.schema.Validate(gojsonschema.NewGoLoader(state))
	if err != nil {
		return false, fmt.Errorf("validating form state: %w", err)
	}
	return result.Valid(), nil
}

// Explain returns the schema engine's description of every violation, for
// diagnostics. Empty when state is valid.
func (g *Gate) Explain(state FormState) string {
	result, err := g.schema.Validate(gojsonschema.NewGoLoader(state))
	if err != nil {
		return err.Error()
	}
	issues := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		issues = append(issues, e.String())
	}
	return strings.Join(issues, "; ")
}
