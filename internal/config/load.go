package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// LocalPath is the per-project config file, checked before the user config.
const LocalPath = ".signup/config.yaml"

// SetDefaults registers every default on v so unset keys still unmarshal.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("endpoint", d.Endpoint)
	v.SetDefault("timeout", d.Timeout)
	v.SetDefault("ui.show_hints", d.UI.ShowHints)
	v.SetDefault("ui.markdown_style", d.UI.MarkdownStyle)
	v.SetDefault("cache.ttl", d.Cache.TTL)
	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
	v.SetDefault("tracing.exporter", d.Tracing.Exporter)
	v.SetDefault("tracing.file_path", d.Tracing.FilePath)
	v.SetDefault("tracing.otlp_endpoint", d.Tracing.OTLPEndpoint)
	v.SetDefault("tracing.sample_rate", d.Tracing.SampleRate)
	v.SetDefault("tracing.service_name", d.Tracing.ServiceName)
}

// Locate returns the config file to use: LocalPath when it exists, otherwise
// config.yaml in Dir. found reports whether the returned file exists.
func Locate() (path string, found bool) {
	if _, err := os.Stat(LocalPath); err == nil {
		return LocalPath, true
	}
	path = filepath.Join(Dir(), "config.yaml")
	_, err := os.Stat(path)
	return path, err == nil
}

// Load unmarshals v into a Config and validates it.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	cfg.Tracing.FilePath = ExpandHome(cfg.Tracing.FilePath)
	if err := Validate(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFile reads path on a fresh viper instance. A missing file yields the
// defaults.
func LoadFile(path string) (Config, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
	}
	return Load(v)
}
