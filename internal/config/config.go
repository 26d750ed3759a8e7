package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
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

	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`

	// postgres
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	// the password comes from ALIGN_POSTGRES_PASS
	PostgresUser     string `toml:"postgres_user"`
	PostgresMaxConns int32  `toml:"postgres_max_conns"`

	// metrics
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`

	// readiness check-in
	CheckinVariant    string   `toml:"checkin_variant"`
	CheckinSessionTTL Duration `toml:"checkin_session_ttl"`
	HistoryLimit      int      `toml:"history_limit"`

	// accounts
	AuthSessionTTL              Duration `toml:"auth_session_ttl"`
	LoginRateLimitAllowedPerMin int      `toml:"login_rate_limit_allowed_per_min"`
	ProfileStore                string   `toml:"profile_store"`
	SQLitePath                  string   `toml:"sqlite_path"`
	LatestScoreCacheSizeMB      int      `toml:"latest_score_cache_size_mb"`
}

// Duration reads TOML strings like "30m" or "24h".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var (
		cfg     *Config
		envName string
	)
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg, envName = t.Development, "development"
	case "prod", "production":
		cfg, envName = t.Production, "production"
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}

	if cfg == nil {
		return nil, fmt.Errorf("no config for env: %s", envName)
	}
	cfg.Environment = envName
	cfg.setDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid %s config: %w", envName, err)
	}

	return cfg, nil
}

// Load reads the TOML file and returns the config section for env.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}
	return t.Get(env)
}

// Parse is Load for already read TOML content.
func Parse(env, content string) (*Config, error) {
	var t Toml
	if _, err := toml.Decode(content, &t); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return t.Get(env)
}

func (c *Config) setDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 9000
	}
	if c.PrometheusMetricsPort == "" {
		c.PrometheusMetricsPort = "2112"
	}
	if c.PostgresUser == "" {
		c.PostgresUser = "postgres"
	}
	if c.CheckinVariant == "" {
		c.CheckinVariant = "extended"
	}
	if c.CheckinSessionTTL.Duration == 0 {
		c.CheckinSessionTTL.Duration = 24 * time.Hour
	}
	if c.HistoryLimit == 0 {
		c.HistoryLimit = 30
	}
	if c.AuthSessionTTL.Duration == 0 {
		c.AuthSessionTTL.Duration = 7 * 24 * time.Hour
	}
	if c.LoginRateLimitAllowedPerMin == 0 {
		c.LoginRateLimitAllowedPerMin = 10
	}
	if c.ProfileStore == "" {
		c.ProfileStore = "redis"
	}
	if c.LatestScoreCacheSizeMB == 0 {
		c.LatestScoreCacheSizeMB = 10
	}
}

func (c *Config) validate() error {
	switch c.ProfileStore {
	case "redis":
	case "sqlite":
		if c.SQLitePath == "" {
			return fmt.Errorf("sqlite_path is required for the sqlite profile store")
		}
	default:
		return fmt.Errorf("unknown profile_store: %s", c.ProfileStore)
	}
	if c.PostgresMaxConns < 0 {
		return fmt.Errorf("invalid postgres_max_conns: %d", c.PostgresMaxConns)
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	return nil
}
