package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	var cfg Config
	cfg.App.Addr = "127.0.0.1:8642"
	cfg.Census.BaseURL = "https://api.census.gov/data/timeseries/bds"
	cfg.Census.RatePerSec = 1.0
	cfg.Census.Burst = 2
	cfg.Census.TimeoutSeconds = 60
	cfg.Clean.OnMalformed = "missing"
	cfg.Refresh.IntervalHours = 8760
	return cfg
}

func TestEnsureUserConfigWritesBuiltinDefault(t *testing.T) {
	dir := t.TempDir()

	path, err := EnsureUserConfig(dir, filepath.Join(dir, "no-such-default.yml"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.yml"), path)

	cfg, err := Load(path)
	require.NoError(t, err)
	cfg, res := NormalizeAndValidate(cfg)
	assert.True(t, res.OK(), "built-in default must validate: %v", res.Errors)
	assert.Equal(t, MalformedMissing, cfg.Clean.OnMalformed)
	assert.Equal(t, 8760, cfg.Refresh.IntervalHours)
}

func TestEnsureUserConfigCopiesShippedDefault(t *testing.T) {
	dir := t.TempDir()
	shipped := filepath.Join(dir, "shipped.yml")
	require.NoError(t, os.WriteFile(shipped, []byte("app:\n  addr: \"0.0.0.0:9999\"\n"), 0o644))

	path, err := EnsureUserConfig(dir, shipped)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9999", cfg.App.Addr)
}

func TestEnsureUserConfigKeepsExisting(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(existing, []byte("app:\n  addr: \"kept\"\n"), 0o644))

	path, err := EnsureUserConfig(dir, "ignored")
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "kept", cfg.App.Addr)
}

func TestNormalizeAndValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		_, res := NormalizeAndValidate(validConfig())
		assert.True(t, res.OK(), "%v", res.Errors)
		assert.Empty(t, res.Warnings)
	})

	t.Run("empty policy defaults to missing", func(t *testing.T) {
		cfg := validConfig()
		cfg.Clean.OnMalformed = ""
		out, res := NormalizeAndValidate(cfg)
		assert.True(t, res.OK())
		assert.Equal(t, MalformedMissing, out.Clean.OnMalformed)
	})

	t.Run("bad policy", func(t *testing.T) {
		cfg := validConfig()
		cfg.Clean.OnMalformed = "zero"
		_, res := NormalizeAndValidate(cfg)
		assert.False(t, res.OK())
	})

	t.Run("bad base url", func(t *testing.T) {
		cfg := validConfig()
		cfg.Census.BaseURL = "not a url"
		_, res := NormalizeAndValidate(cfg)
		assert.False(t, res.OK())
	})

	t.Run("trailing slash trimmed", func(t *testing.T) {
		cfg := validConfig()
		cfg.Census.BaseURL = "https://api.census.gov/data/timeseries/bds/"
		out, res := NormalizeAndValidate(cfg)
		assert.True(t, res.OK())
		assert.Equal(t, "https://api.census.gov/data/timeseries/bds", out.Census.BaseURL)
	})

	t.Run("aggressive polling warns", func(t *testing.T) {
		cfg := validConfig()
		cfg.Refresh.IntervalHours = 1
		_, res := NormalizeAndValidate(cfg)
		assert.True(t, res.OK())
		assert.NotEmpty(t, res.Warnings)
	})

	t.Run("zero rate", func(t *testing.T) {
		cfg := validConfig()
		cfg.Census.RatePerSec = 0
		_, res := NormalizeAndValidate(cfg)
		assert.False(t, res.OK())
	})
}

func TestSaveAtomicRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")

	cfg := validConfig()
	require.NoError(t, SaveAtomic(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)

	// saving again keeps a .bak of the previous file
	cfg.App.Addr = "127.0.0.1:9000"
	require.NoError(t, SaveAtomic(path, cfg))
	_, err = os.Stat(path + ".bak")
	assert.NoError(t, err)
}

func TestSaveAtomicRejectsInvalid(t *testing.T) {
	cfg := validConfig()
	cfg.Census.Burst = 0
	err := SaveAtomic(filepath.Join(t.TempDir(), "config.yml"), cfg)
	require.Error(t, err)
}
