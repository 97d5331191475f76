// Copyright 2026 Scrollcat contributors
// SPDX-License-Identifier: Apache-2.0

// Package config provides centralized configuration management for scrollcat.
// It supports deterministic precedence (flags > env > defaults) using Viper,
// and fail-fast validation to prevent silent misconfiguration.
package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	ES    ESConfig    `mapstructure:"es"`
	List  ListConfig  `mapstructure:"list"`
	Files FilesConfig `mapstructure:"files"`
	Diag  DiagConfig  `mapstructure:"diag"`
	TUI   TUIConfig   `mapstructure:"tui"`
}

// ESConfig holds Elasticsearch connection settings.
type ESConfig struct {
	URL         string        `mapstructure:"url"`
	Index       string        `mapstructure:"index"`
	Timeout     time.Duration `mapstructure:"timeout"`      // query timeout
	PingTimeout time.Duration `mapstructure:"ping_timeout"` // startup ping timeout
}

// ListConfig holds list rendering and loading settings.
type ListConfig struct {
	ItemHeight     int           `mapstructure:"item_height"`     // default row height in terminal rows
	Overscan       int           `mapstructure:"overscan"`        // extra rows mounted beyond each visible edge
	LoadThreshold  float64       `mapstructure:"load_threshold"`  // scroll fraction that triggers the next page
	PageSize       int           `mapstructure:"page_size"`       // entries per fetched page
	ScrollDebounce time.Duration `mapstructure:"scroll_debounce"` // idle window before the scrolling flag clears
}

// FilesConfig holds local file source settings.
type FilesConfig struct {
	Follow  bool   `mapstructure:"follow"`  // keep tailing files for appended lines
	Service string `mapstructure:"service"` // override service name derived from filenames
}

// DiagConfig holds diagnostics shipping settings.
type DiagConfig struct {
	Endpoint string `mapstructure:"endpoint"` // OTLP HTTP endpoint, empty disables shipping
	Insecure bool   `mapstructure:"insecure"`
}

// TUIConfig holds TUI timing settings.
type TUIConfig struct {
	LoadTimeout time.Duration `mapstructure:"load_timeout"` // per-page fetch timeout
}

// Default configuration values.
const (
	DefaultESURL          = "http://localhost:9200"
	DefaultIndex          = "logs-*"
	DefaultTimeout        = 30 * time.Second
	DefaultPingTimeout    = 5 * time.Second
	DefaultItemHeight     = 1
	DefaultOverscan       = 5
	DefaultLoadThreshold  = 0.8
	DefaultPageSize       = 50
	DefaultScrollDebounce = 150 * time.Millisecond
	DefaultLoadTimeout    = 10 * time.Second
)

// ContextKey is used to store config in context.
type ContextKey struct{}

// FromContext retrieves Config from context.
func FromContext(ctx context.Context) (Config, bool) {
	cfg, ok := ctx.Value(ContextKey{}).(Config)
	return cfg, ok
}

// WithContext stores Config in context.
func WithContext(ctx context.Context, cfg Config) context.Context {
	return context.WithValue(ctx, ContextKey{}, cfg)
}

// Load builds a Config using Viper with precedence: flags > env > defaults.
// It binds flags from the command (and its parents) and fails fast on invalid values.
func Load(cmd *cobra.Command) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SCROLLCAT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	if err := bindFlagsRecursive(v, cmd); err != nil {
		return Config{}, fmt.Errorf("bind flags: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// setDefaults registers default values with Viper.
func setDefaults(v *viper.Viper) {
	v.SetDefault("es.url", DefaultESURL)
	v.SetDefault("es.index", DefaultIndex)
	v.SetDefault("es.timeout", DefaultTimeout)
	v.SetDefault("es.ping_timeout", DefaultPingTimeout)

	v.SetDefault("list.item_height", DefaultItemHeight)
	v.SetDefault("list.overscan", DefaultOverscan)
	v.SetDefault("list.load_threshold", DefaultLoadThreshold)
	v.SetDefault("list.page_size", DefaultPageSize)
	v.SetDefault("list.scroll_debounce", DefaultScrollDebounce)

	v.SetDefault("files.follow", false)
	v.SetDefault("files.service", "")

	v.SetDefault("diag.endpoint", "")
	v.SetDefault("diag.insecure", true)

	v.SetDefault("tui.load_timeout", DefaultLoadTimeout)
}

// bindFlagsRecursive binds flags from cmd and all parents so Viper sees them.
func bindFlagsRecursive(v *viper.Viper, cmd *cobra.Command) error {
	if cmd == nil {
		return nil
	}
	if err := bindFlagSet(v, cmd.Flags()); err != nil {
		return err
	}
	if err := bindFlagSet(v, cmd.PersistentFlags()); err != nil {
		return err
	}
	return bindFlagsRecursive(v, cmd.Parent())
}

// bindFlagSet binds flags to Viper keys using explicit mappings to nested keys.
func bindFlagSet(v *viper.Viper, fs *pflag.FlagSet) error {
	if fs == nil {
		return nil
	}
	flagToKey := map[string]string{
		"es-url":          "es.url",
		"index":           "es.index",
		"timeout":         "es.timeout",
		"ping-timeout":    "es.ping_timeout",
		"item-height":     "list.item_height",
		"overscan":        "list.overscan",
		"load-threshold":  "list.load_threshold",
		"page-size":       "list.page_size",
		"scroll-debounce": "list.scroll_debounce",
		"follow":          "files.follow",
		"service":         "files.service",
		"diag-endpoint":   "diag.endpoint",
		"diag-insecure":   "diag.insecure",
		"load-timeout":    "tui.load_timeout",
	}

	fs.VisitAll(func(f *pflag.Flag) {
		key, ok := flagToKey[f.Name]
		if !ok {
			// Fallback: replace "-" with "." to allow nested binding if names align
			key = strings.ReplaceAll(f.Name, "-", ".")
		}
		_ = v.BindPFlag(key, f)
	})
	return nil
}

// Validate enforces correctness and fails fast on invalid configuration.
func (c Config) Validate() error {
	if strings.TrimSpace(c.ES.URL) == "" {
		return fmt.Errorf("es.url is required")
	}
	if strings.TrimSpace(c.ES.Index) == "" {
		return fmt.Errorf("es.index is required")
	}
	if c.ES.Timeout <= 0 {
		return fmt.Errorf("es.timeout must be > 0")
	}
	if c.ES.PingTimeout <= 0 {
		return fmt.Errorf("es.ping_timeout must be > 0")
	}
	if c.List.ItemHeight < 1 {
		return fmt.Errorf("list.item_height must be >= 1")
	}
	if c.List.Overscan < 0 {
		return fmt.Errorf("list.overscan must be >= 0")
	}
	if c.List.LoadThreshold <= 0 || c.List.LoadThreshold > 1 {
		return fmt.Errorf("list.load_threshold must be in (0, 1]")
	}
	if c.List.PageSize < 1 {
		return fmt.Errorf("list.page_size must be >= 1")
	}
	if c.List.ScrollDebounce < 0 {
		return fmt.Errorf("list.scroll_debounce must be >= 0")
	}
	if c.TUI.LoadTimeout <= 0 {
		return fmt.Errorf("tui.load_timeout must be > 0")
	}
	return nil
}
