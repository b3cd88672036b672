package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	HTTP       HTTPConfig       `mapstructure:"http"`
	Queue      QueueConfig      `mapstructure:"queue"`
	Transport  TransportConfig  `mapstructure:"transport"`
	Newsletter NewsletterConfig `mapstructure:"newsletter"`
	Dispatch   DispatchConfig   `mapstructure:"dispatch"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// HTTPConfig holds trigger server configuration.
type HTTPConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// QueueConfig holds Redis queue connection configuration.
type QueueConfig struct {
	// RedisURL is a redis:// connection URL. When set it takes
	// precedence over RedisAddr/RedisPassword/RedisDB.
	RedisURL      string `mapstructure:"redis_url"`
	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`
	// Key is the Redis list holding pending subscriber notifications.
	Key string `mapstructure:"key"`
}

// TransportConfig holds outbound email transport configuration.
type TransportConfig struct {
	// Type selects the transport: "ses" (default) or "stdout".
	Type string `mapstructure:"type"`
	// Region is the AWS region for SES.
	Region string `mapstructure:"region"`
	// SenderAddress is the SES-verified source address.
	SenderAddress string `mapstructure:"sender_address"`
	// SenderName is the display name used in the From header.
	SenderName string `mapstructure:"sender_name"`
}

// NewsletterConfig holds rendering configuration for notification emails.
type NewsletterConfig struct {
	WebsiteURL     string `mapstructure:"website_url"`
	UnsubscribeURL string `mapstructure:"unsubscribe_url"`
}

// DispatchConfig holds batch processing configuration.
type DispatchConfig struct {
	// BatchSize is the maximum number of queue entries read per cycle.
	BatchSize int `mapstructure:"batch_size"`
	// PacingDelay is the fixed delay after each non-empty cycle,
	// throttling outbound rate toward the provider.
	PacingDelay time.Duration `mapstructure:"pacing_delay"`
	// ProcessInterval is the cycle period in cron mode.
	ProcessInterval time.Duration `mapstructure:"process_interval"`
	// ShutdownTimeout bounds how long the scheduler waits for an
	// in-flight cycle on shutdown.
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level     string `mapstructure:"level"`
	Output    string `mapstructure:"output"` // stdout (default) or file
	FilePath  string `mapstructure:"file_path"`
	MaxSizeMB int    `mapstructure:"max_size_mb"`
	MaxFiles  int    `mapstructure:"max_files"`
}

// Load reads configuration from the given config directory path.
// It looks for a file named "config.yaml" in that directory; a missing
// file is not an error since every value can come from the environment.
// Environment variables with prefix NOTIFIER_ override file values.
// For example, NOTIFIER_QUEUE_REDIS_URL overrides queue.redis_url.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)

	v.SetEnvPrefix("NOTIFIER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", 3000)
	v.SetDefault("http.read_timeout", 30*time.Second)
	v.SetDefault("http.write_timeout", 60*time.Second)

	// Every key needs a registered default so AutomaticEnv picks it up
	// during Unmarshal even when no config file is present.
	v.SetDefault("queue.redis_url", "")
	v.SetDefault("queue.redis_addr", "localhost:6379")
	v.SetDefault("queue.redis_password", "")
	v.SetDefault("queue.redis_db", 0)
	v.SetDefault("queue.key", "subscribersQueue")

	v.SetDefault("transport.type", "ses")
	v.SetDefault("transport.region", "")
	v.SetDefault("transport.sender_address", "")
	v.SetDefault("transport.sender_name", "")

	v.SetDefault("newsletter.website_url", "https://www.ewere.tech")
	v.SetDefault("newsletter.unsubscribe_url", "https://ewere.tech/unsubscribe")

	v.SetDefault("dispatch.batch_size", 50)
	v.SetDefault("dispatch.pacing_delay", 10*time.Second)
	v.SetDefault("dispatch.process_interval", 30*time.Second)
	v.SetDefault("dispatch.shutdown_timeout", 30*time.Second)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.output", "stdout")
	v.SetDefault("logging.file_path", "")
	v.SetDefault("logging.max_size_mb", 100)
	v.SetDefault("logging.max_files", 5)
}

// Validate checks that required fields are set. A misconfigured
// transport is a fatal startup error: the process must not serve
// triggers it cannot act on.
func (c *Config) Validate() error {
	switch c.Transport.Type {
	case "ses":
		if c.Transport.Region == "" {
			return errors.New("transport: region is required for ses")
		}
		if c.Transport.SenderAddress == "" {
			return errors.New("transport: sender_address is required for ses")
		}
	case "stdout":
		// No configuration required.
	default:
		return fmt.Errorf("transport: unknown type %q", c.Transport.Type)
	}

	if c.Queue.RedisURL == "" && c.Queue.RedisAddr == "" {
		return errors.New("queue: redis_url or redis_addr is required")
	}
	if c.Queue.Key == "" {
		return errors.New("queue: key is required")
	}
	if c.Dispatch.BatchSize <= 0 {
		return fmt.Errorf("dispatch: batch_size must be positive, got %d", c.Dispatch.BatchSize)
	}

	return nil
}
