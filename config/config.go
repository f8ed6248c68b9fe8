package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig     `mapstructure:"server"`
	Database  DatabaseConfig   `mapstructure:"database"`
	Redis     RedisConfig      `mapstructure:"redis"`
	Providers []ProviderConfig `mapstructure:"providers"`
	Health    HealthConfig     `mapstructure:"health"`
	Issuance  IssuanceConfig   `mapstructure:"issuance"`
	Sweeper   SweeperConfig    `mapstructure:"sweeper"`
	Log       LogConfig        `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// ProviderConfig describes one configured rail provider.
// Lower priority means preferred. Disabled providers are never registered.
type ProviderConfig struct {
	Name     string `mapstructure:"name"`
	Priority int    `mapstructure:"priority"`
	BaseURL  string `mapstructure:"base_url"`
	APIKey   string `mapstructure:"api_key"`
	Disabled bool   `mapstructure:"disabled"`
}

// HealthConfig tunes the provider health monitor.
type HealthConfig struct {
	Interval     time.Duration `mapstructure:"interval"`      // probe cadence
	ProbeTimeout time.Duration `mapstructure:"probe_timeout"` // per-probe deadline
	StaleCycles  int           `mapstructure:"stale_cycles"`  // missed cycles before forced unhealthy
}

// IssuanceConfig tunes the issuance orchestrator.
type IssuanceConfig struct {
	MaxAttempts    int           `mapstructure:"max_attempts"` // 0 = number of configured providers
	MintTimeout    time.Duration `mapstructure:"mint_timeout"`
	IdempotencyTTL time.Duration `mapstructure:"idempotency_ttl"`
}

type SweeperConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule"` // cron spec, e.g. "@every 1m"
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: IWE_ (Invoice Wallet Engine).
// Nested keys use underscore: IWE_DATABASE_HOST, IWE_HEALTH_INTERVAL, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "invoice_wallets")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	// Default rail table: tempo primary, circle fallback.
	v.SetDefault("providers", []map[string]interface{}{
		{"name": "tempo", "priority": 0, "base_url": "http://localhost:9091"},
		{"name": "circle", "priority": 1, "base_url": "http://localhost:9092"},
	})
	v.SetDefault("health.interval", "30s")
	v.SetDefault("health.probe_timeout", "2s")
	v.SetDefault("health.stale_cycles", 3)
	v.SetDefault("issuance.max_attempts", 0)
	v.SetDefault("issuance.mint_timeout", "10s")
	v.SetDefault("issuance.idempotency_ttl", "24h")
	v.SetDefault("sweeper.enabled", true)
	v.SetDefault("sweeper.schedule", "@every 1m")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: IWE_DATABASE_HOST -> database.host
	v.SetEnvPrefix("IWE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (optional, env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate rejects provider tables the engine cannot route over.
func (c *Config) validate() error {
	seen := make(map[string]bool, len(c.Providers))
	enabled := 0
	for _, p := range c.Providers {
		if p.Name == "" {
			return fmt.Errorf("provider with empty name")
		}
		if seen[p.Name] {
			return fmt.Errorf("duplicate provider %q", p.Name)
		}
		seen[p.Name] = true
		if !p.Disabled {
			enabled++
		}
	}
	if enabled == 0 {
		return fmt.Errorf("no enabled providers configured")
	}
	return nil
}
