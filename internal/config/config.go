// Package config provides configuration types, defaults and loading for signup.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/zjrosen/signup/internal/log"
	"github.com/zjrosen/signup/internal/tracing"
)

// Default values.
const (
	DefaultEndpoint = "https://webapis.bloomtechdev.com/registration"
	DefaultTimeout  = 10 * time.Second
	DefaultCacheTTL = 5 * time.Minute
)

// Config holds all configuration options for signup.
type Config struct {
	Endpoint string         `mapstructure:"endpoint"`
	Timeout  time.Duration  `mapstructure:"timeout"`
	UI       UIConfig       `mapstructure:"ui"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Tracing  tracing.Config `mapstructure:"tracing"`
}

// UIConfig holds user interface options.
type UIConfig struct {
	ShowHints     bool   `mapstructure:"show_hints"`     // key hints under the form
	MarkdownStyle string `mapstructure:"markdown_style"` // "dark" (default) or "light"
}

// CacheConfig controls memoization of single-field validation.
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"` // 0 disables the cache
}

// Defaults returns a Config with default values.
func Defaults() Config {
	tc := tracing.DefaultConfig()
	tc.FilePath = DefaultTracesFilePath()
	return Config{
		Endpoint: DefaultEndpoint,
		Timeout:  DefaultTimeout,
		UI: UIConfig{
			ShowHints:     true,
			MarkdownStyle: "dark",
		},
		Cache:   CacheConfig{TTL: DefaultCacheTTL},
		Tracing: tc,
	}
}

// Dir returns the user config directory, ~/.config/signup.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".signup")
	}
	return filepath.Join(home, ".config", "signup")
}

// DefaultTracesFilePath returns the file exporter's default output.
func DefaultTracesFilePath() string {
	return filepath.Join(Dir(), "traces", "traces.jsonl")
}

// Validate checks every section.
func Validate(cfg Config) error {
	if err := ValidateEndpoint(cfg.Endpoint); err != nil {
		return err
	}
	if cfg.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", cfg.Timeout)
	}
	if cfg.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must not be negative, got %s", cfg.Cache.TTL)
	}
	switch cfg.UI.MarkdownStyle {
	case "", "dark", "light":
	default:
		return fmt.Errorf("ui.markdown_style must be \"dark\" or \"light\", got %q", cfg.UI.MarkdownStyle)
	}
	return ValidateTracing(cfg.Tracing)
}

// ValidateEndpoint requires an absolute http(s) URL.
func ValidateEndpoint(endpoint string) error {
	if endpoint == "" {
		return fmt.Errorf("endpoint is required")
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("endpoint must use http or https, got %q", endpoint)
	}
	if u.Host == "" {
		return fmt.Errorf("endpoint has no host: %q", endpoint)
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
func ValidateTracing(tc tracing.Config) error {
	if tc.SampleRate < 0.0 || tc.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tc.SampleRate)
	}

	switch tc.Exporter {
	case "", tracing.ExporterNone, tracing.ExporterFile, tracing.ExporterStdout, tracing.ExporterOTLP:
	default:
		return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tc.Exporter)
	}

	if tc.Enabled {
		if tc.Exporter == tracing.ExporterFile && tc.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if tc.Exporter == tracing.ExporterOTLP && tc.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}
	return nil
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

// DefaultConfigTemplate returns the default config as YAML with comments.
func DefaultConfigTemplate() string {
	return `# Signup Configuration

# Registration API the form posts to
endpoint: ` + DefaultEndpoint + `

# Per-attempt HTTP timeout
timeout: 10s

# UI settings
ui:
  show_hints: true        # Show key hints under the form
  # markdown_style: dark  # Terms overlay style: "dark" (default) or "light"

# Single-field validation cache
cache:
  ttl: 5m                 # 0 disables caching

# Submission tracing
# tracing:
#   enabled: false                 # Enable/disable tracing (default: false)
#   exporter: file                 # none, file, stdout, otlp (default: file)
#   file_path: ~/.config/signup/traces/traces.jsonl
#   otlp_endpoint: localhost:4317  # Collector for the otlp exporter
#   sample_rate: 1.0               # 0.0-1.0 (default: 1.0)
`
}

// WriteDefaultConfig creates a config file at configPath with default
// settings and comments. The parent directory is created if needed.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
