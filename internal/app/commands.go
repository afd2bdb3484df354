package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/signup/internal/registration"
	"github.com/zjrosen/signup/internal/ui/form"
)

// GateMsg carries a whole-form verdict for one snapshot.
type GateMsg struct {
	State registration.FormState
	Valid bool
}

// SubmitResultMsg carries the outcome of a submission.
type SubmitResultMsg struct {
	Result registration.ResultMessage
}

func (m Model) validateGateCmd(state registration.FormState) tea.Cmd {
	ctx, gate := m.ctx, m.gate
	return func() tea.Msg {
		return GateMsg{State: state, Valid: registration.Recompute(ctx, gate.Valid, state)}
	}
}

func (m Model) submitCmd(state registration.FormState) tea.Cmd {
	ctx, handler := m.ctx, m.handler
	return func() tea.Msg {
		return SubmitResultMsg{Result: handler.Submit(ctx, state)}
	}
}

func formConfig() form.Config {
	return form.Config{
		ID: "signup",
		Fields: []form.FieldConfig{
			{
				Key:         string(registration.FieldUsername),
				Kind:        form.KindText,
				Label:       "Username",
				Placeholder: "Type Username",
			},
			{
				Key:     string(registration.FieldFavLanguage),
				Kind:    form.KindToggle,
				Label:   "Favorite Language",
				Options: formOptions(registration.Languages),
			},
			{
				Key:         string(registration.FieldFavFood),
				Kind:        form.KindSelect,
				Label:       "Favorite Food",
				Placeholder: "-- Select Favorite Food --",
				Options:     formOptions(registration.Foods),
			},
			{
				Key:        string(registration.FieldAgreement),
				Kind:       form.KindCheckbox,
				Label:      "Terms",
				Hint:       "ctrl+t to read",
				CheckLabel: "Agree to our terms",
			},
		},
		SubmitLabel: "Register",
		Width:       maxFormWidth,
	}
}

func formOptions(opts []registration.Option) []form.Option {
	out := make([]form.Option, len(opts))
	for i, o := range opts {
		out[i] = form.Option{Label: o.Label, Value: o.Value}
	}
	return out
}

func stateValues(s registration.FormState) map[string]any {
	values := make(map[string]any, len(registration.Fields))
	for _, f := range registration.Fields {
		values[string(f)] = s.Value(f)
	}
	return values
}

func errorStrings(errs registration.ErrorMap) map[string]string {
	out := make(map[string]string, len(errs))
	for f, msg := range errs {
		out[string(f)] = msg
	}
	return out
}
