// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Session    SessionConfig    `mapstructure:"session"`
	Extraction ExtractionConfig `mapstructure:"extraction"`
	Chatbot    ChatbotConfig    `mapstructure:"chatbot"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Port           int `mapstructure:"port"`
	MetricsPort    int `mapstructure:"metrics_port"`
	ReadTimeout    int `mapstructure:"read_timeout"`     // seconds
	WriteTimeout   int `mapstructure:"write_timeout"`    // seconds
	ShutdownGrace  int `mapstructure:"shutdown_grace"`   // seconds
	RequestMaxSize int `mapstructure:"request_max_size"` // bytes
}

type DatabaseConfig struct {
	Redis RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// SessionConfig controls how conversation snapshots are persisted between
// turns.
type SessionConfig struct {
	TTLMinutes int    `mapstructure:"ttl_minutes"`
	KeyPrefix  string `mapstructure:"key_prefix"`
}

// ExtractionConfig points at the external extraction engine's REST API.
type ExtractionConfig struct {
	BaseURL             string `mapstructure:"base_url"`
	APIKey              string `mapstructure:"api_key"`
	Timeout             int    `mapstructure:"timeout"`              // milliseconds
	MaxRetries          int    `mapstructure:"max_retries"`
	ReachabilityTimeout int    `mapstructure:"reachability_timeout"` // milliseconds
}

// ChatbotConfig tunes the conversation surface.
type ChatbotConfig struct {
	SuggestedCategories []string `mapstructure:"suggested_categories"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Port <= 0 {
		return fmt.Errorf("server.port must be positive, got %d", cfg.Server.Port)
	}
	if cfg.Database.Redis.Address == "" {
		return fmt.Errorf("database.redis.address is required")
	}
	if cfg.Extraction.BaseURL == "" {
		return fmt.Errorf("extraction.base_url is required")
	}
	return nil
}
