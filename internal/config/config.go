package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// Config holds the application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Source   SourceConfig   `yaml:"source"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	Releases ReleasesConfig `yaml:"releases"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port" validate:"min=1,max=65535"`
	ReadTimeout  time.Duration `yaml:"read_timeout" validate:"gt=0"`
	WriteTimeout time.Duration `yaml:"write_timeout" validate:"gt=0"`
	GinMode      string        `yaml:"gin_mode" validate:"oneof=debug release test"`
}

// SourceConfig selects and configures the benchmark store.
type SourceConfig struct {
	Type            string        `yaml:"type" validate:"oneof=supabase sqlite mongo csv"`
	Timeout         time.Duration `yaml:"timeout" validate:"gt=0"`
	SupabaseURL     string        `yaml:"supabase_url" validate:"required_if=Type supabase"`
	SupabaseKey     string        `yaml:"supabase_key" validate:"required_if=Type supabase"`
	Table           string        `yaml:"table" validate:"required"`
	PageSize        int           `yaml:"page_size" validate:"min=1"`
	SQLitePath      string        `yaml:"sqlite_path" validate:"required_if=Type sqlite"`
	MongoURI        string        `yaml:"mongo_uri" validate:"required_if=Type mongo"`
	MongoDatabase   string        `yaml:"mongo_database" validate:"required_if=Type mongo"`
	MongoCollection string        `yaml:"mongo_collection" validate:"required_if=Type mongo"`
	CSVPath         string        `yaml:"csv_path" validate:"required_if=Type csv"`
}

// PipelineConfig tunes normalization and aggregation.
type PipelineConfig struct {
	Strict        bool `yaml:"strict"`
	MissingAsZero bool `yaml:"missing_as_zero"`
	RecentTests   int  `yaml:"recent_tests" validate:"min=1"`
}

// ReleaseTarget is one product whose latest release is offered for download.
type ReleaseTarget struct {
	Product    string `yaml:"product" validate:"required"`
	Repository string `yaml:"repository" validate:"required,contains=/"`
}

type ReleasesConfig struct {
	Targets     []ReleaseTarget `yaml:"targets" validate:"dive"`
	Extensions  []string        `yaml:"extensions" validate:"min=1"`
	GitHubURL   string          `yaml:"github_url" validate:"required,url"`
	GitHubToken string          `yaml:"github_token"`
	RateLimit   float64         `yaml:"rate_limit" validate:"gt=0"`
	Burst       int             `yaml:"burst" validate:"min=1"`
}

type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			GinMode:      "release",
		},
		Source: SourceConfig{
			Type:            "supabase",
			Timeout:         15 * time.Second,
			Table:           "benchmarks",
			PageSize:        1000,
			MongoDatabase:   "minebench",
			MongoCollection: "benchmarks",
		},
		Pipeline: PipelineConfig{
			RecentTests: 10,
		},
		Releases: ReleasesConfig{
			Targets: []ReleaseTarget{
				{Product: "MineBench CPU", Repository: "karbivskyi/MineBench-CPU-ZEPH"},
				{Product: "MineBench GPU", Repository: "karbivskyi/MineBench-GPU-RVN"},
			},
			Extensions: []string{".zip", ".exe"},
			GitHubURL:  "https://api.github.com",
			RateLimit:  5,
			Burst:      5,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load builds the configuration from defaults, then the YAML file named by
// CONFIG_FILE (if any), then environment variables, and validates the result.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Server.Host = getEnv("SERVER_HOST", c.Server.Host)
	c.Server.Port = getEnvAsInt("PORT", c.Server.Port)
	c.Server.ReadTimeout = getEnvAsDuration("SERVER_READ_TIMEOUT", c.Server.ReadTimeout)
	c.Server.WriteTimeout = getEnvAsDuration("SERVER_WRITE_TIMEOUT", c.Server.WriteTimeout)
	c.Server.GinMode = getEnv("GIN_MODE", c.Server.GinMode)

	c.Source.Type = getEnv("SOURCE_TYPE", c.Source.Type)
	c.Source.Timeout = getEnvAsDuration("SOURCE_TIMEOUT", c.Source.Timeout)
	c.Source.SupabaseURL = getEnv("SUPABASE_URL", c.Source.SupabaseURL)
	c.Source.SupabaseKey = getEnv("SUPABASE_ANON_KEY", c.Source.SupabaseKey)
	c.Source.Table = getEnv("BENCHMARKS_TABLE", c.Source.Table)
	c.Source.PageSize = getEnvAsInt("SOURCE_PAGE_SIZE", c.Source.PageSize)
	c.Source.SQLitePath = getEnv("SQLITE_PATH", c.Source.SQLitePath)
	c.Source.MongoURI = getEnv("MONGO_URI", c.Source.MongoURI)
	c.Source.MongoDatabase = getEnv("MONGO_DATABASE", c.Source.MongoDatabase)
	c.Source.MongoCollection = getEnv("MONGO_COLLECTION", c.Source.MongoCollection)
	c.Source.CSVPath = getEnv("CSV_PATH", c.Source.CSVPath)

	c.Pipeline.Strict = getEnvAsBool("STRICT_SCHEMA", c.Pipeline.Strict)
	c.Pipeline.MissingAsZero = getEnvAsBool("MISSING_AS_ZERO", c.Pipeline.MissingAsZero)
	c.Pipeline.RecentTests = getEnvAsInt("RECENT_TESTS", c.Pipeline.RecentTests)

	if v := os.Getenv("RELEASE_TARGETS"); v != "" {
		if targets, err := parseTargets(v); err == nil {
			c.Releases.Targets = targets
		} else {
			slog.Warn("ignoring RELEASE_TARGETS", "error", err)
		}
	}
	if v := os.Getenv("RELEASE_EXTENSIONS"); v != "" {
		c.Releases.Extensions = splitList(v)
	}
	c.Releases.GitHubURL = getEnv("GITHUB_API_URL", c.Releases.GitHubURL)
	c.Releases.GitHubToken = getEnv("GITHUB_TOKEN", c.Releases.GitHubToken)
	c.Releases.RateLimit = getEnvAsFloat("GITHUB_RATE_LIMIT", c.Releases.RateLimit)
	c.Releases.Burst = getEnvAsInt("GITHUB_BURST", c.Releases.Burst)

	c.Log.Level = strings.ToLower(getEnv("LOG_LEVEL", c.Log.Level))
	c.Log.Format = strings.ToLower(getEnv("LOG_FORMAT", c.Log.Format))
}

// parseTargets reads "Product=owner/repo,Product=owner/repo".
func parseTargets(v string) ([]ReleaseTarget, error) {
	var out []ReleaseTarget
	for _, item := range splitList(v) {
		product, repo, ok := strings.Cut(item, "=")
		if !ok {
			return nil, fmt.Errorf("target %q: expected Product=owner/repo", item)
		}
		out = append(out, ReleaseTarget{Product: strings.TrimSpace(product), Repository: strings.TrimSpace(repo)})
	}
	return out, nil
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Addr is the listen address of the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as int or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getEnvAsBool gets an environment variable as bool or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvAsDuration gets an environment variable as duration or returns a default value
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
