package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	// storage
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	RedisHost      string `toml:"redis_host"`
	RedisPort      string `toml:"redis_port"`
	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`
	// http
	RequestsRateLimitPerMin int      `toml:"requests_rate_limit_per_min"`
	AllowedOrigins          []string `toml:"allowed_origins"`
	// exercise catalog override, the bundled one when empty
	CatalogPath string `toml:"catalog_path"`
	// third party sources, a source without a base url is left out
	FitocracyBaseURL    string   `toml:"fitocracy_base_url"`
	MyFitnessPalBaseURL string   `toml:"myfitnesspal_base_url"`
	TopLoggerBaseURL    string   `toml:"toplogger_base_url"`
	RunDoubleBaseURL    string   `toml:"rundouble_base_url"`
	IngestInterval      Duration `toml:"ingest_interval"`
	IngestLookback      Duration `toml:"ingest_lookback"`
}

// Duration reads Go duration strings ("15m", "72h") from TOML.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", text, err)
	}
	d.Duration = parsed
	return nil
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

// Load reads the config file at path and returns the section of env.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("config for env [%s] missing", env)
	}
	cfg.setDefaults()
	return cfg, nil
}

func (c *Config) setDefaults() {
	if c.RequestsRateLimitPerMin <= 0 {
		c.RequestsRateLimitPerMin = 120
	}
	if c.IngestInterval.Duration <= 0 {
		c.IngestInterval.Duration = 30 * time.Minute
	}
	if c.IngestLookback.Duration <= 0 {
		c.IngestLookback.Duration = 7 * 24 * time.Hour
	}
}
