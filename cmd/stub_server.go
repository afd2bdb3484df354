package cmd

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/zjrosen/signup/internal/registration"
	"github.com/zjrosen/signup/internal/stubserver"
)

func newStubServerCmd(opts *options) *cobra.Command {
	var (
		addr  string
		taken []string
	)

	cmd := &cobra.Command{
		Use:   "stub-server",
		Short: "Run a local registration endpoint",
		Long: `Run a local registration endpoint for development. It answers 201 for new
usernames, 409 for taken ones, 422 for payloads failing the field rules and 400
for malformed JSON. Every successful username becomes taken.

Example:
  signup stub-server --taken admin --taken root
  signup --endpoint http://127.0.0.1:9000/registration`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := opts.initLogging(cmd, false); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := stubserver.New(registration.DefaultSchema(), taken...)
			return srv.Serve(ctx, addr, func(a net.Addr) {
				fmt.Fprintf(cmd.OutOrStdout(), "listening on http://%s%s\n", a, stubserver.RegistrationPath)
			})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", stubserver.DefaultAddr, "address to listen on")
	cmd.Flags().StringArrayVar(&taken, "taken", nil, "username that is already registered (repeatable)")
	return cmd
}
