package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	_, res := NormalizeAndValidate(cfg)
	assert.Empty(t, res.Errors)
	assert.Equal(t, 2000, cfg.AI.MaxTokens)
	assert.InDelta(t, 0.3, cfg.AI.Temperature, 1e-6)
	assert.Equal(t, 100, cfg.Filter.TitleThreshold)
	assert.Equal(t, "auto", cfg.Filter.Mode)
	assert.Equal(t, "/active-jb-24h", cfg.Ingest.Endpoint)
}

func TestEnsureUserConfigWritesDefaultOnce(t *testing.T) {
	dir := t.TempDir()

	p, err := EnsureUserConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.yml"), p)

	require.NoError(t, os.WriteFile(p, []byte("app:\n  port: 9000\n"), 0o644))
	_, err = EnsureUserConfig(dir)
	require.NoError(t, err)

	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "app:\n  port: 9000\n", string(b))
}

func TestLoadKeepsDefaultsForMissingKeys(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(p, []byte("ai:\n  model: gpt-4o\n"), 0o644))

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", cfg.AI.Model)
	assert.Equal(t, 2000, cfg.AI.MaxTokens)
	assert.Equal(t, "plain", cfg.Secrets.Backend)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestNormalizeAndValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"bad port", func(c *Config) { c.App.Port = 0 }, "app.port must be 1..65535"},
		{"bad mode", func(c *Config) { c.Filter.Mode = "magic" }, "filter.mode must be auto or heuristic"},
		{"bad backend", func(c *Config) { c.Secrets.Backend = "vault" }, "secrets.backend must be plain or keyring"},
		{"zero threshold", func(c *Config) { c.Filter.TitleThreshold = 0 }, "filter.title_threshold must be > 0"},
		{"relative ai url", func(c *Config) { c.AI.BaseURL = "api.openai.com" }, "ai.base_url must be an absolute URL"},
		{"hot temperature", func(c *Config) { c.AI.Temperature = 3 }, "ai.temperature must be between 0 and 2"},
		{"no pages", func(c *Config) { c.Ingest.Pages = 0 }, "ingest.pages must be > 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			_, res := NormalizeAndValidate(cfg)
			assert.Contains(t, res.Errors, tt.wantErr)
			assert.False(t, res.OK())
		})
	}
}

func TestNormalizeLowercasesAndTrims(t *testing.T) {
	cfg := Default()
	cfg.Filter.Mode = "  Heuristic "
	cfg.Secrets.Backend = "KEYRING"
	cfg.AI.BaseURL = "https://example.test/v1/"

	out, res := NormalizeAndValidate(cfg)
	require.True(t, res.OK(), res.Errors)
	assert.Equal(t, "heuristic", out.Filter.Mode)
	assert.Equal(t, "keyring", out.Secrets.Backend)
	assert.Equal(t, "https://example.test/v1", out.AI.BaseURL)
}

func TestOverlayEnv(t *testing.T) {
	cfg := Default()
	env := map[string]string{
		"JOBFILTER_PORT":        "4242",
		"JOBFILTER_AI_MODEL":    "gpt-4o",
		"JOBFILTER_FILTER_MODE": "heuristic",
	}
	OverlayEnv(&cfg, func(k string) string { return env[k] })

	assert.Equal(t, 4242, cfg.App.Port)
	assert.Equal(t, "gpt-4o", cfg.AI.Model)
	assert.Equal(t, "heuristic", cfg.Filter.Mode)
	assert.Equal(t, Default().AI.BaseURL, cfg.AI.BaseURL)
}

func TestSaveAtomicKeepsBackup(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.yml")
	cfg := Default()
	require.NoError(t, SaveAtomic(p, cfg))

	cfg.AI.Model = "gpt-4o"
	require.NoError(t, SaveAtomic(p, cfg))

	got, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", got.AI.Model)

	bak, err := Load(p + ".bak")
	require.NoError(t, err)
	assert.Equal(t, Default().AI.Model, bak.AI.Model)
}

func TestSaveAtomicRejectsInvalid(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.yml")
	cfg := Default()
	cfg.App.Port = -1

	err := SaveAtomic(p, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "app.port")
	_, statErr := os.Stat(p)
	assert.True(t, os.IsNotExist(statErr))
}
