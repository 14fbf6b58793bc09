// Package config loads CLI settings from fbskema.yaml and FBSKEMA_* env vars.
package config

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/viper"

	fbskema "github.com/reoring/fbskema"
	"github.com/reoring/fbskema/i18n"
)

// Config holds parse settings shared by every CLI command.
type Config struct {
	Language            string `mapstructure:"language"`
	StrictDuplicateKeys bool   `mapstructure:"strict_duplicate_keys"`
	MaxBytes            int64  `mapstructure:"max_bytes"`
	MaxDepth            int    `mapstructure:"max_depth"`
	FailFast            bool   `mapstructure:"fail_fast"`
	// BatchParallelism bounds per-item fan-out of batch payloads; 0 means GOMAXPROCS.
	BatchParallelism int `mapstructure:"batch_parallelism"`
}

// Load reads path when non-empty, otherwise fbskema.yaml from the working
// directory if present. Environment variables override file values.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("language", "en")
	v.SetDefault("strict_duplicate_keys", true)
	v.SetDefault("max_bytes", 10<<20)
	v.SetDefault("max_depth", 64)
	v.SetDefault("fail_fast", false)
	v.SetDefault("batch_parallelism", 0)

	v.SetEnvPrefix("FBSKEMA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("fbskema")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var nf viper.ConfigFileNotFoundError
			if !errors.As(err, &nf) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects unknown languages and negative limits.
func (c *Config) Validate() error {
	if !slices.Contains(i18n.Languages(), c.Language) {
		return fmt.Errorf("unsupported language %q (want one of %s)", c.Language, strings.Join(i18n.Languages(), ", "))
	}
	if c.MaxBytes < 0 {
		return fmt.Errorf("max_bytes must not be negative, got %d", c.MaxBytes)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max_depth must not be negative, got %d", c.MaxDepth)
	}
	if c.BatchParallelism < 0 {
		return fmt.Errorf("batch_parallelism must not be negative, got %d", c.BatchParallelism)
	}
	return nil
}

// ParseOpt projects the config onto decoding options.
func (c *Config) ParseOpt() fbskema.ParseOpt {
	opt := fbskema.ParseOpt{
		MaxDepth:    c.MaxDepth,
		MaxBytes:    c.MaxBytes,
		FailFast:    c.FailFast,
		Parallelism: c.BatchParallelism,
		Presence:    fbskema.PresenceOpt{Collect: true},
	}
	if c.StrictDuplicateKeys {
		opt.Strictness.OnDuplicateKey = fbskema.Error
	}
	return opt
}

// Context carries the options that schemas read during Parse.
func (c *Config) Context(ctx context.Context) context.Context {
	ctx = fbskema.WithFailFast(ctx, c.FailFast)
	if c.BatchParallelism > 0 {
		ctx = fbskema.WithParallelism(ctx, c.BatchParallelism)
	}
	return ctx
}
