package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fbskema "github.com/reoring/fbskema"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, &Config{
		Language:            "en",
		StrictDuplicateKeys: true,
		MaxBytes:            10485760,
		MaxDepth:            64,
	}, cfg)
}

func TestLoad_WorkingDirectoryFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	content := "language: ja\nmax_depth: 8\nfail_fast: true\nbatch_parallelism: 4\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fbskema.yaml"), []byte(content), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "ja", cfg.Language)
	assert.Equal(t, 8, cfg.MaxDepth)
	assert.True(t, cfg.FailFast)
	assert.Equal(t, 4, cfg.BatchParallelism)
	assert.Equal(t, int64(10485760), cfg.MaxBytes)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_bytes: 100\n"), 0o644))
	t.Setenv("FBSKEMA_MAX_BYTES", "200")
	t.Setenv("FBSKEMA_STRICT_DUPLICATE_KEYS", "false")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(200), cfg.MaxBytes)
	assert.False(t, cfg.StrictDuplicateKeys)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		mut  func(*Config)
		ok   bool
	}{
		{"default", func(*Config) {}, true},
		{"japanese", func(c *Config) { c.Language = "ja" }, true},
		{"unknown language", func(c *Config) { c.Language = "fr" }, false},
		{"negative bytes", func(c *Config) { c.MaxBytes = -1 }, false},
		{"negative depth", func(c *Config) { c.MaxDepth = -1 }, false},
		{"negative parallelism", func(c *Config) { c.BatchParallelism = -2 }, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := Config{Language: "en", MaxBytes: 1, MaxDepth: 1}
			tc.mut(&c)
			if tc.ok {
				assert.NoError(t, c.Validate())
			} else {
				assert.Error(t, c.Validate())
			}
		})
	}
}

func TestParseOptAndContext(t *testing.T) {
	c := Config{Language: "en", StrictDuplicateKeys: true, MaxBytes: 10, MaxDepth: 3, FailFast: true, BatchParallelism: 2}
	opt := c.ParseOpt()
	assert.Equal(t, fbskema.Error, opt.Strictness.OnDuplicateKey)
	assert.Equal(t, int64(10), opt.MaxBytes)
	assert.Equal(t, 3, opt.MaxDepth)
	assert.True(t, opt.Presence.Collect)

	ctx := c.Context(context.Background())
	assert.True(t, fbskema.IsFailFast(ctx))
	assert.Equal(t, 2, fbskema.Parallelism(ctx))

	c.StrictDuplicateKeys = false
	assert.Equal(t, fbskema.Ignore, c.ParseOpt().Strictness.OnDuplicateKey)
}
