package config

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithSupabase(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("SOURCE_TYPE", "")
	t.Setenv("PORT", "")
	t.Setenv("RELEASE_TARGETS", "")
	t.Setenv("SUPABASE_URL", "https://project.supabase.co")
	t.Setenv("SUPABASE_ANON_KEY", "anon")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "supabase", cfg.Source.Type)
	assert.Equal(t, 10, cfg.Pipeline.RecentTests)
	require.Len(t, cfg.Releases.Targets, 2)
	assert.Equal(t, "karbivskyi/MineBench-CPU-ZEPH", cfg.Releases.Targets[0].Repository)
}

func TestLoad_SupabaseRequiresCredentials(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("SOURCE_TYPE", "supabase")
	t.Setenv("SUPABASE_URL", "")
	t.Setenv("SUPABASE_ANON_KEY", "")

	_, err := Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "SupabaseURL")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("SOURCE_TYPE", "csv")
	t.Setenv("CSV_PATH", "data/benchmarks.csv")
	t.Setenv("PORT", "9090")
	t.Setenv("SERVER_READ_TIMEOUT", "3s")
	t.Setenv("MISSING_AS_ZERO", "true")
	t.Setenv("RELEASE_TARGETS", "CPU=acme/cpu-miner, GPU=acme/gpu-miner")
	t.Setenv("RELEASE_EXTENSIONS", ".tar.gz,.zip")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 3*time.Second, cfg.Server.ReadTimeout)
	assert.True(t, cfg.Pipeline.MissingAsZero)
	assert.Equal(t, []ReleaseTarget{
		{Product: "CPU", Repository: "acme/cpu-miner"},
		{Product: "GPU", Repository: "acme/gpu-miner"},
	}, cfg.Releases.Targets)
	assert.Equal(t, []string{".tar.gz", ".zip"}, cfg.Releases.Extensions)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "0.0.0.0:9090", cfg.Addr())
}

func TestLoad_YAMLFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "minebench.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 7000
  write_timeout: 45s
source:
  type: sqlite
  sqlite_path: /var/lib/minebench/bench.db
pipeline:
  strict: true
releases:
  targets:
    - product: CPU
      repository: acme/cpu
log:
  format: json
`), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("SOURCE_TYPE", "")
	t.Setenv("PORT", "7100")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 7100, cfg.Server.Port)
	assert.Equal(t, 45*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, "sqlite", cfg.Source.Type)
	assert.Equal(t, "/var/lib/minebench/bench.db", cfg.Source.SQLitePath)
	assert.True(t, cfg.Pipeline.Strict)
	assert.Len(t, cfg.Releases.Targets, 1)
	assert.Equal(t, "json", cfg.Log.Format)
	// untouched keys keep their defaults
	assert.Equal(t, "benchmarks", cfg.Source.Table)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := Load()

	assert.Error(t, err)
}

func TestValidate_InvalidValues(t *testing.T) {
	cases := map[string]func(c *Config){
		"port":        func(c *Config) { c.Server.Port = -1 },
		"source type": func(c *Config) { c.Source.Type = "postgres" },
		"mongo uri":   func(c *Config) { c.Source.Type = "mongo" },
		"repository":  func(c *Config) { c.Releases.Targets[0].Repository = "no-slash" },
		"log format":  func(c *Config) { c.Log.Format = "xml" },
		"recent":      func(c *Config) { c.Pipeline.RecentTests = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			cfg.Source.Type = "csv"
			cfg.Source.CSVPath = "bench.csv"
			mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestParseTargets_Invalid(t *testing.T) {
	_, err := parseTargets("just-a-repo")
	assert.Error(t, err)
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("TEST_INT", "not-a-number")
	t.Setenv("TEST_BOOL", "yes-please")
	t.Setenv("TEST_DURATION", "2m")

	assert.Equal(t, "default", getEnv("TEST_UNSET_KEY", "default"))
	assert.Equal(t, 42, getEnvAsInt("TEST_INT", 42))
	assert.True(t, getEnvAsBool("TEST_BOOL", true))
	assert.Equal(t, 2*time.Minute, getEnvAsDuration("TEST_DURATION", time.Second))
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LogConfig{Level: "warn", Format: "json"}, &buf)

	logger.Info("hidden")
	logger.Warn("shown", "device_uid", "dev-1")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "shown", entry["msg"])
	assert.Equal(t, "dev-1", entry["device_uid"])
	assert.False(t, logger.Enabled(context.Background(), slog.LevelInfo))
}
