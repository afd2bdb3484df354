package registration

import (
	"fmt"
	"maps"
)

// FormState is the literal content of the four inputs.
type FormState struct {
	Username    string `json:"username" yaml:"username"`
	FavLanguage string `json:"favLanguage" yaml:"favLanguage"`
	FavFood     string `json:"favFood" yaml:"favFood"`
	Agreement   bool   `json:"agreement" yaml:"agreement"`
}

// DefaultState returns the empty form.
func DefaultState() FormState {
	return FormState{}
}

// Value returns the current value of f as a string or bool.
func (s FormState) Value(f Field) any {
	switch f {
	case FieldUsername:
		return s.Username
	case FieldFavLanguage:
		return s.FavLanguage
	case FieldFavFood:
		return s.FavFood
	case FieldAgreement:
		return s.Agreement
	}
	return nil
}

// With returns a copy of s with only f replaced. Text, radio and select
// fields take a string; the agreement checkbox takes a bool.
func (s FormState) With(f Field, value any) (FormState, error) {
	switch f {
	case FieldUsername, FieldFavLanguage, FieldFavFood:
		str, ok := value.(string)
		if !ok {
			return s, fmt.Errorf("field %s: expected string, got %T", f, value)
		}
		switch f {
		case FieldUsername:
			s.Username = str
		case FieldFavLanguage:
			s.FavLanguage = str
		default:
			s.FavFood = str
		}
	case FieldAgreement:
		b, ok := value.(bool)
		if !ok {
			return s, fmt.Errorf("field %s: expected bool, got %T", f, value)
		}
		s.Agreement = b
	default:
		return s, fmt.Errorf("unknown field %q", f)
	}
	return s, nil
}

// ErrorMap holds the inline message per field. An empty or missing entry
// means the field's last validation passed.
type ErrorMap map[Field]string

// Clone returns an independent copy.
func (e ErrorMap) Clone() ErrorMap {
	if e == nil {
		return ErrorMap{}
	}
	return maps.Clone(e)
}

// Any reports whether at least one field carries a message.
func (e ErrorMap) Any() bool {
	for _, msg := range e {
		if msg != "" {
			return true
		}
	}
	return false
}

// ResultMessage is the banner shown after a submission attempt. At most one
// of Success and Failure is set.
type ResultMessage struct {
	Success string
	Failure string
}

// Succeeded returns a success banner.
func Succeeded(msg string) ResultMessage {
	return ResultMessage{Success: msg}
}

// Failed returns a failure banner.
func Failed(msg string) ResultMessage {
	return ResultMessage{Failure: msg}
}

// OK reports whether r is a success banner.
func (r ResultMessage) OK() bool {
	return r.Success != ""
}
