package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zjrosen/signup/internal/config"
)

func newConfigCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the config file",
		// Only the path is needed; the file may be missing or invalid.
		PersistentPreRunE: func(*cobra.Command, []string) error {
			opts.resolvePath()
			return nil
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "path",
			Short: "Print the config file in use",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintln(cmd.OutOrStdout(), opts.cfgPath)
			},
		},
		newConfigInitCmd(opts),
		&cobra.Command{
			Use:   "set <key> <value>",
			Short: "Set one config value",
			Long: "Set one config value, keeping comments in the file. Keys:\n  " +
				strings.Join(config.Settable, "\n  "),
			Args: cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := config.SetValue(opts.cfgPath, args[0], args[1]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s = %s (%s)\n", args[0], args[1], opts.cfgPath)
				return nil
			},
		},
	)
	return cmd
}

func newConfigInitCmd(opts *options) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := os.Stat(opts.cfgPath); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", opts.cfgPath)
			}
			if err := config.WriteDefaultConfig(opts.cfgPath); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), opts.cfgPath)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}
