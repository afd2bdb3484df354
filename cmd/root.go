package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/signup/internal/app"
	"github.com/zjrosen/signup/internal/config"
	"github.com/zjrosen/signup/internal/log"
	"github.com/zjrosen/signup/internal/tracing"
)

func init() {
	// Query the terminal background before Bubble Tea owns stdin so the
	// OSC 11 reply cannot leak into the username input.
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var version = "dev"

// options carries flag values and the resolved configuration to every
// subcommand.
type options struct {
	cfgFile string
	debug   bool

	cfg        config.Config
	cfgPath    string
	cfgExists  bool
	logCleanup func()
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "signup",
		Short: "A terminal registration form",
		Long: `A terminal registration form. Pick a username, a favorite language and a
favorite food, agree to the terms and register with the configured endpoint.`,
		Version:           version,
		SilenceUsage:      true,
		PersistentPreRunE: opts.load,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runApp(cmd, opts)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if opts.logCleanup != nil {
				opts.logCleanup()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.cfgFile, "config", "c", "",
		"config file (default: .signup/config.yaml, then ~/.config/signup/config.yaml)")
	flags.String("endpoint", "", "registration endpoint (overrides config)")
	flags.BoolVarP(&opts.debug, "debug", "d", false,
		"enable debug logging (also SIGNUP_DEBUG)")

	root.AddCommand(
		newValidateCmd(opts),
		newSubmitCmd(opts),
		newStubServerCmd(opts),
		newConfigCmd(opts),
	)
	return root
}

// resolvePath picks the config file. Without --config the local file wins
// over the user file.
func (o *options) resolvePath() {
	if o.cfgFile != "" {
		o.cfgPath = o.cfgFile
		_, err := os.Stat(o.cfgFile)
		o.cfgExists = err == nil
		return
	}
	o.cfgPath, o.cfgExists = config.Locate()
}

// load reads the config file, environment and flags into o.cfg. A missing
// user config is created with defaults, like on first run.
func (o *options) load(cmd *cobra.Command, _ []string) error {
	o.resolvePath()
	o.debug = o.debug || os.Getenv("SIGNUP_DEBUG") != ""

	if !o.cfgExists && o.cfgFile == "" {
		if err := config.WriteDefaultConfig(o.cfgPath); err == nil {
			o.cfgExists = true
		}
		// Without a writable location the defaults still apply.
	}

	v := viper.New()
	config.SetDefaults(v)
	v.SetEnvPrefix("SIGNUP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if o.cfgExists {
		v.SetConfigFile(o.cfgPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config %s: %w", o.cfgPath, err)
		}
	}
	if f := cmd.Flags().Lookup("endpoint"); f != nil {
		_ = v.BindPFlag("endpoint", f)
	}

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	o.cfg = cfg
	return nil
}

// initLogging turns on the debug log. The TUI logs to a file through
// tea.LogToFile; the other commands log to stderr.
func (o *options) initLogging(cmd *cobra.Command, toFile bool) error {
	if !o.debug {
		return nil
	}
	if !toFile {
		log.InitWriter(cmd.ErrOrStderr())
		return nil
	}

	logPath := os.Getenv("SIGNUP_LOG")
	if logPath == "" {
		logPath = "debug.log"
	}
	cleanup, err := log.InitWithTeaLog(logPath, "signup")
	if err != nil {
		return fmt.Errorf("initializing logging: %w", err)
	}
	o.logCleanup = cleanup
	log.Info(log.CatConfig, "signup starting", "config", o.cfgPath, "endpoint", o.cfg.Endpoint)
	return nil
}

// newTracer builds the configured trace provider. Callers defer the returned
// shutdown.
func (o *options) newTracer() (*tracing.Provider, func(), error) {
	provider, err := tracing.NewProvider(o.cfg.Tracing)
	if err != nil {
		return nil, nil, fmt.Errorf("initializing tracing: %w", err)
	}
	shutdown := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := provider.Shutdown(ctx); err != nil {
			log.ErrorErr(log.CatSubmit, "flushing traces failed", err)
		}
	}
	return provider, shutdown, nil
}

func runApp(cmd *cobra.Command, opts *options) error {
	if err := opts.initLogging(cmd, true); err != nil {
		return err
	}
	provider, shutdown, err := opts.newTracer()
	if err != nil {
		return err
	}
	defer shutdown()

	watchPath := ""
	if opts.cfgExists {
		watchPath = opts.cfgPath
	}

	zone.NewGlobal()
	model, err := app.New(app.Options{
		Config:     opts.cfg,
		ConfigPath: watchPath,
		Tracer:     provider.Tracer(),
		Debug:      opts.debug,
	})
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err = p.Run()

	if closeErr := model.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
}
