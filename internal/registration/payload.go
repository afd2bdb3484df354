package registration

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Payload is a loosely typed registration payload read from a file. Keys
// that are missing stay missing so they validate as absent.
type Payload map[string]any

// LoadPayload reads a YAML or JSON payload file.
func LoadPayload(path string) (Payload, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is supplied by the user on the command line
	if err != nil {
		return nil, fmt.Errorf("reading payload: %w", err)
	}
	return ParsePayload(data)
}

// ParsePayload decodes YAML or JSON bytes.
func ParsePayload(data []byte) (Payload, error) {
	var p Payload
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing payload: %w", err)
	}
	if p == nil {
		p = Payload{}
	}
	return p, nil
}

// Validate runs every field's rules against the payload.
func (p Payload) Validate(s *Schema) ErrorMap {
	return s.ValidateValues(p)
}

// State converts the payload into a FormState. Values of the wrong kind are
// left at their zero value.
func (p Payload) State() FormState {
	state := DefaultState()
	for _, f := range Fields {
		if next, err := state.With(f, p[string(f)]); err == nil {
			state = next
		}
	}
	return state
}
