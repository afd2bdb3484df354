package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/zjrosen/signup/internal/presentation"
	"github.com/zjrosen/signup/internal/registration"
	"github.com/zjrosen/signup/internal/submission"
)

// ErrSubmitFailed is returned when the endpoint rejects a registration.
var ErrSubmitFailed = errors.New("registration failed")

func newSubmitCmd(opts *options) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "submit <file>",
		Short: "Validate a payload file and register it",
		Long: `Validate a YAML or JSON registration payload and POST it to the configured
endpoint. Invalid payloads are not sent unless --force is given.

Examples:
  signup submit alice.yaml
  signup submit alice.yaml --endpoint http://127.0.0.1:9000/registration
  signup submit broken.json --force`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.initLogging(cmd, false); err != nil {
				return err
			}
			formatter := presentation.NewFormatter(cmd.OutOrStdout())

			report, err := validatePayload(cmd, args[0])
			if err != nil {
				return err
			}
			if !report.Valid && !force {
				if err := formatter.FormatValidation(report); err != nil {
					return err
				}
				return ErrInvalidPayload
			}

			provider, shutdown, err := opts.newTracer()
			if err != nil {
				return err
			}
			defer shutdown()

			client := submission.NewClient(opts.cfg.Endpoint,
				submission.WithTimeout(opts.cfg.Timeout),
				submission.WithTracer(provider.Tracer()),
			)
			handler := submission.NewHandler(client, provider.Tracer())

			form := registration.NewForm(registration.NewValidator(registration.DefaultSchema(), registration.WithoutCache()))
			defer form.Close()
			for _, f := range registration.Fields {
				if _, err := form.Change(cmd.Context(), f, report.State.Value(f)); err != nil {
					return err
				}
			}

			res := handler.Submit(cmd.Context(), form.BeginSubmit())
			form.Finish(res)

			if err := formatter.FormatSubmission(presentation.FromResult(form.Result(), client.Endpoint(), force && !report.Valid)); err != nil {
				return err
			}
			if !res.OK() {
				return ErrSubmitFailed
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "submit even when validation fails")
	return cmd
}
