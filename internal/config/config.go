package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds user-tunable settings loaded from config.yaml.
type Config struct {
	// SafeMode asks for confirmation before any {{command}} token runs.
	SafeMode bool `mapstructure:"safe_mode" yaml:"safe_mode" json:"safe_mode"`
	// TagColors maps tag name to a lipgloss-compatible color.
	TagColors map[string]string `mapstructure:"tag_colors" yaml:"tag_colors,omitempty" json:"tag_colors,omitempty"`
	// DefaultExportFormat is "rendered" or "raw".
	DefaultExportFormat string `mapstructure:"default_export_format" yaml:"default_export_format" json:"default_export_format"`
}

// Default returns the built-in configuration. Safe mode is on by default:
// running shell commands from prompt content without asking is a footgun.
func Default() Config {
	return Config{
		SafeMode:            true,
		TagColors:           map[string]string{},
		DefaultExportFormat: "rendered",
	}
}

// Load reads config.yaml from the promptctl directory, applying defaults
// for missing keys. A missing file is not an error.
func Load() (Config, error) {
	dir, err := Dir()
	if err != nil {
		return Default(), err
	}
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.SetDefault("safe_mode", true)
	v.SetDefault("default_export_format", "rendered")

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return Default(), fmt.Errorf("read config: %w", err)
		}
	}
	cfg := Default()
	if err := v.Unmarshal(&cfg); err != nil {
		return Default(), fmt.Errorf("parse config: %w", err)
	}
	if cfg.TagColors == nil {
		cfg.TagColors = map[string]string{}
	}
	if cfg.DefaultExportFormat != "raw" {
		cfg.DefaultExportFormat = "rendered"
	}
	return cfg, nil
}

// Save writes the config as YAML, creating the directory if needed.
func Save(cfg Config) error {
	p, err := FilePath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	v := viper.New()
	v.SetConfigType("yaml")
	v.Set("safe_mode", cfg.SafeMode)
	v.Set("tag_colors", cfg.TagColors)
	v.Set("default_export_format", cfg.DefaultExportFormat)
	return v.WriteConfigAs(p)
}

// TagColor returns the configured color for a tag, or a deterministic
// default derived from the tag name.
func (c Config) TagColor(tag string) string {
	if col, ok := c.TagColors[tag]; ok && col != "" {
		return col
	}
	palette := []string{"4", "2", "3", "5", "6", "1"}
	sum := 0
	for _, b := range []byte(tag) {
		sum += int(b)
	}
	return palette[sum%len(palette)]
}
