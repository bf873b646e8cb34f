// Package config loads the service configuration from a TOML file with
// environment variable overrides and schema validation.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the root configuration for the service.
type Config struct {
	// Service name, used in logs and metric namespaces
	ServiceName string `mapstructure:"service_name"`
	// Service version
	Version string `mapstructure:"version"`
	// Environment: dev, staging, prod
	Environment string `mapstructure:"environment"`
	// HTTP server
	HTTP HTTPConfig `mapstructure:"http"`
	// Database
	Database DatabaseConfig `mapstructure:"database"`
	// Kafka
	Kafka KafkaConfig `mapstructure:"kafka"`
	// Logger
	Logger LoggerConfig `mapstructure:"logger"`
	// Metrics
	Metrics MetricsConfig `mapstructure:"metrics"`
	// Upload limits
	Upload UploadConfig `mapstructure:"upload"`
	// Admin endpoint guard
	Admin AdminConfig `mapstructure:"admin"`
}

// HTTPConfig configures the HTTP listener.
type HTTPConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	// Read timeout (seconds)
	ReadTimeout int `mapstructure:"read_timeout"`
	// Write timeout (seconds)
	WriteTimeout int `mapstructure:"write_timeout"`
}

// DatabaseConfig configures the MySQL connection pool.
type DatabaseConfig struct {
	Driver       string `mapstructure:"driver"`
	DSN          string `mapstructure:"dsn"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	// Connection max lifetime (seconds)
	ConnMaxLifetime int  `mapstructure:"conn_max_lifetime"`
	LogEnabled      bool `mapstructure:"log_enabled"`
	// Slow query threshold (milliseconds)
	SlowQueryThreshold int `mapstructure:"slow_query_threshold"`
}

// KafkaConfig configures the event producer.
type KafkaConfig struct {
	// Disabled by default; the import pipeline does not depend on the broker.
	Enabled bool     `mapstructure:"enabled"`
	Brokers []string `mapstructure:"brokers"`
	// Topic for upload lifecycle events
	Topic      string `mapstructure:"topic"`
	MaxRetries int    `mapstructure:"max_retries"`
	// Retry backoff (milliseconds)
	RetryBackoff int `mapstructure:"retry_backoff"`
}

// LoggerConfig configures the global logger.
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	FilePath   string `mapstructure:"file_path"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
	WithCaller bool   `mapstructure:"with_caller"`
}

// MetricsConfig configures the prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// UploadConfig bounds client file uploads.
type UploadConfig struct {
	// Max accepted body size in bytes, enforced before parsing
	MaxBytes int64 `mapstructure:"max_bytes"`
}

// AdminConfig guards the /admin endpoints.
type AdminConfig struct {
	// Shared secret expected in X-Admin-Token
	Token string `mapstructure:"token"`
}

// Load reads configPath (TOML), applies APP_* environment overrides and
// defaults, and validates the result.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigFile(configPath)
	v.SetConfigType("toml")

	// Missing file is tolerated; env vars and defaults still apply.
	_ = v.ReadInConfig()

	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate checks the invariants the process cannot start without.
func (c *Config) Validate() error {
	if c.ServiceName == "" {
		return fmt.Errorf("service_name is required")
	}
	if c.Environment == "" {
		c.Environment = "dev"
	}
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTP.Port)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("database DSN is required")
	}
	if c.Upload.MaxBytes <= 0 {
		return fmt.Errorf("upload max_bytes must be positive, got %d", c.Upload.MaxBytes)
	}
	if c.Admin.Token == "" {
		return fmt.Errorf("admin token is required")
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka brokers are required when kafka is enabled")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("service_name", "ssr-equity")
	v.SetDefault("environment", "dev")

	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", 8080)
	v.SetDefault("http.read_timeout", 30)
	v.SetDefault("http.write_timeout", 30)

	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 300)
	v.SetDefault("database.log_enabled", false)
	v.SetDefault("database.slow_query_threshold", 1000)

	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.topic", "ssr.uploads")
	v.SetDefault("kafka.max_retries", 3)
	v.SetDefault("kafka.retry_backoff", 100)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.output", "stdout")
	v.SetDefault("logger.file_path", "logs/app.log")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 10)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)
	v.SetDefault("logger.with_caller", true)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")

	// 25 MB, same ceiling the upload table was sized for
	v.SetDefault("upload.max_bytes", 26214400)
}
