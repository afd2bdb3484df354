// Package presentation turns registration results into the JSON printed by
// the command line.
package presentation

import (
	"github.com/zjrosen/signup/internal/registration"
)

// ValidationDTO is the report printed by the validate command.
type ValidationDTO struct {
	Valid  bool                   `json:"valid"`
	State  registration.FormState `json:"state"`
	Errors map[string]string      `json:"errors"` // only failing fields

	// GateDetail is the whole-form engine's explanation when the gate is closed.
	GateDetail string `json:"gate_detail,omitempty"`
}

// FromValidation builds a report. Empty messages are dropped so the JSON
// lists only failing fields.
func FromValidation(state registration.FormState, errs registration.ErrorMap, valid bool) ValidationDTO {
	out := make(map[string]string)
	for f, msg := range errs {
		if msg != "" {
			out[string(f)] = msg
		}
	}
	return ValidationDTO{Valid: valid, State: state, Errors: out}
}

// SubmissionDTO is the outcome printed by the submit command.
type SubmissionDTO struct {
	Outcome  string `json:"outcome"` // "success" or "failure"
	Message  string `json:"message"`
	Endpoint string `json:"endpoint"`
	Forced   bool   `json:"forced,omitempty"`
}

// FromResult builds a submission outcome.
func FromResult(res registration.ResultMessage, endpoint string, forced bool) SubmissionDTO {
	dto := SubmissionDTO{Endpoint: endpoint, Forced: forced}
	if res.OK() {
		dto.Outcome = "success"
		dto.Message = res.Success
	} else {
		dto.Outcome = "failure"
		dto.Message = res.Failure
	}
	return dto
}
