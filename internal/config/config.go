package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	defaultQueryTimeout          = 3 * time.Second
	defaultLiveUpdatesInterval   = 5 * time.Second
	defaultSourceCacheSizeMB     = 16
	defaultSourceCacheTTLSeconds = 60
	defaultStreakCheckCron       = "55 23 * * *"
	defaultSettingsRateLimit     = 30
	defaultSamplePruneCron       = "30 3 * * *"
)

type Config struct {
	Environment string `toml:"-"`

	Host string `toml:"host"`
	Port int    `toml:"port"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	// all calendar-day boundaries (today, yesterday, streak) are computed in this zone
	Timezone string `toml:"timezone"`

	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`

	// postgres
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`

	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`

	// pedometer source
	QueryTimeout          Duration `toml:"query_timeout"`
	SourceCacheSizeMB     int      `toml:"source_cache_size_mb"`
	SourceCacheTTLSeconds int      `toml:"source_cache_ttl_seconds"`
	LiveUpdatesInterval   Duration `toml:"live_updates_interval"`

	StreakCheckCron string `toml:"streak_check_cron"`
	// 0 keeps samples forever
	SampleRetentionDays int    `toml:"sample_retention_days"`
	SamplePruneCron     string `toml:"sample_prune_cron"`

	AllowedOrigins          []string `toml:"allowed_origins"`
	SettingsRateLimitPerMin int      `toml:"settings_rate_limit_per_min"`
}

// Duration lets TOML carry Go duration strings, e.g. "3s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("parse duration [%s]: %w", text, err)
	}
	d.Duration = parsed
	return nil
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
	case "prod", "production":
		cfg = t.Production
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("no config section for env: %s", env)
	}
	cfg.Environment = strings.ToLower(env)
	return cfg, nil
}

func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}
	return parse(env, &t)
}

func LoadString(env, data string) (*Config, error) {
	var t Toml
	if _, err := toml.Decode(data, &t); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return parse(env, &t)
}

func parse(env string, t *Toml) (*Config, error) {
	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) ApplyDefaults() {
	if c.Timezone == "" {
		c.Timezone = "Local"
	}
	if c.QueryTimeout.Duration <= 0 {
		c.QueryTimeout.Duration = defaultQueryTimeout
	}
	if c.LiveUpdatesInterval.Duration <= 0 {
		c.LiveUpdatesInterval.Duration = defaultLiveUpdatesInterval
	}
	if c.SourceCacheSizeMB <= 0 {
		c.SourceCacheSizeMB = defaultSourceCacheSizeMB
	}
	if c.SourceCacheTTLSeconds <= 0 {
		c.SourceCacheTTLSeconds = defaultSourceCacheTTLSeconds
	}
	if c.StreakCheckCron == "" {
		c.StreakCheckCron = defaultStreakCheckCron
	}
	if c.SamplePruneCron == "" {
		c.SamplePruneCron = defaultSamplePruneCron
	}
	if c.SettingsRateLimitPerMin <= 0 {
		c.SettingsRateLimitPerMin = defaultSettingsRateLimit
	}
}

func (c *Config) Validate() error {
	if c.Port <= 0 {
		return errors.New("port not set")
	}
	if c.SampleRetentionDays < 0 {
		return errors.New("sample retention days must not be negative")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %s: %w", c.Timezone, err)
	}
	return loc, nil
}
