package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the service
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Auth       AuthConfig
	Redis      RedisConfig
	Kafka      KafkaConfig
	Links      LinksConfig
	Logging    LoggingConfig
	ServiceKey string
}

// ServerConfig holds server specific configuration
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	DefaultRedirect string
}

// DatabaseConfig holds database specific configuration. Driver selects
// between "pgx" (deployment) and "sqlite" (development).
type DatabaseConfig struct {
	Driver          string
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	Path            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// AuthConfig holds authentication specific configuration
type AuthConfig struct {
	JWTSecret string
}

// RedisConfig holds the optional unread-count cache configuration
type RedisConfig struct {
	Enabled        bool
	URL            string
	Password       string
	DB             int
	UnreadCountTTL time.Duration
}

// KafkaConfig holds the optional event publication configuration
type KafkaConfig struct {
	Enabled bool
	Brokers []string
	Topic   string
}

// LinksConfig holds the default redirect targets per notification kind.
// Chat, Event and Provider are format strings filled with the sender
// username, event id and provider id respectively.
type LinksConfig struct {
	Chat           string
	Event          string
	Provider       string
	Agenda         string
	BudgetRequests string
}

// LoggingConfig holds logging specific configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// LoadConfig loads the configuration from file and environment variables
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Read config file
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Read from environment variables
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default values for configuration
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.readTimeout", "10s")
	v.SetDefault("server.writeTimeout", "10s")
	v.SetDefault("server.idleTimeout", "120s")
	v.SetDefault("server.defaultRedirect", "/")

	// Database defaults
	v.SetDefault("database.driver", "pgx")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.path", "notifications.db")
	v.SetDefault("database.maxOpenConns", 25)
	v.SetDefault("database.maxIdleConns", 5)
	v.SetDefault("database.connMaxLifetime", "30m")

	// Redis defaults
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.unreadCountTTL", "30s")

	// Kafka defaults
	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.topic", "user-notifications")

	// Default redirect targets per notification kind
	v.SetDefault("links.chat", "/chat/%s/")
	v.SetDefault("links.event", "/evento/%d/")
	v.SetDefault("links.provider", "/fornecedor/%d/")
	v.SetDefault("links.agenda", "/agenda/")
	v.SetDefault("links.budgetRequests", "/servicos/minhas-solicitacoes-organizador/")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}
