package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/signup/internal/presentation"
	"github.com/zjrosen/signup/internal/registration"
)

// ErrInvalidPayload is returned when a payload fails validation.
var ErrInvalidPayload = errors.New("payload failed validation")

func newValidateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a registration payload file",
		Long: `Validate a YAML or JSON registration payload and print the per-field
errors and the submit gate as JSON. Exits non-zero when the payload is invalid.

Example payload:
  username: alice
  favLanguage: rust
  favFood: pizza
  agreement: true`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.initLogging(cmd, false); err != nil {
				return err
			}
			report, err := validatePayload(cmd, args[0])
			if err != nil {
				return err
			}
			if err := presentation.NewFormatter(cmd.OutOrStdout()).FormatValidation(report); err != nil {
				return err
			}
			if !report.Valid {
				return ErrInvalidPayload
			}
			return nil
		},
	}
}

// validatePayload runs both the field rules and the whole-form gate. A
// payload is valid only when both agree it is.
func validatePayload(cmd *cobra.Command, path string) (presentation.ValidationDTO, error) {
	payload, err := registration.LoadPayload(path)
	if err != nil {
		return presentation.ValidationDTO{}, err
	}

	schema := registration.DefaultSchema()
	gate, err := registration.NewGate(schema)
	if err != nil {
		return presentation.ValidationDTO{}, fmt.Errorf("building submit gate: %w", err)
	}

	errs := payload.Validate(schema)
	state := payload.State()
	gateOpen := registration.Recompute(cmd.Context(), gate.Valid, state)
	report := presentation.FromValidation(state, errs, !errs.Any() && gateOpen)
	if !gateOpen {
		report.GateDetail = gate.Explain(state)
	}
	return report, nil
}
