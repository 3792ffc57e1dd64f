package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Session  SessionConfig  `mapstructure:"session"`
	Files    FilesConfig    `mapstructure:"files"`
	Blog     BlogConfig     `mapstructure:"blog"`
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig represents database configuration. Driver selects between
// the embedded sqlite file (dev default) and postgres.
type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"`
	Path     string `mapstructure:"path"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"ssl_mode"`
}

// SessionConfig represents session token configuration
type SessionConfig struct {
	Secret string        `mapstructure:"secret"`
	TTL    time.Duration `mapstructure:"ttl"`
}

// FilesConfig represents static file and image upload locations
type FilesConfig struct {
	StaticDir string `mapstructure:"static_dir"`
	ImagesDir string `mapstructure:"images_dir"`
}

// BlogConfig represents listing behavior
type BlogConfig struct {
	PageSize int `mapstructure:"page_size"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	// Best effort; env vars win either way.
	_ = godotenv.Load(".env")

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Set default values
	viper.SetDefault("server.host", getEnv("QUILL_HOST", "localhost"))
	viper.SetDefault("server.port", getEnvInt("QUILL_PORT", 8080))
	viper.SetDefault("database.driver", getEnv("QUILL_DB_DRIVER", "sqlite"))
	viper.SetDefault("database.path", getEnv("QUILL_DB_PATH", "blog.db"))
	viper.SetDefault("database.host", getEnv("PG_HOST", "localhost"))
	viper.SetDefault("database.port", getEnvInt("PG_PORT", 5432))
	viper.SetDefault("database.user", getEnv("PG_USER", "postgres"))
	viper.SetDefault("database.password", getEnv("PG_PASSWORD", ""))
	viper.SetDefault("database.name", getEnv("PG_DATABASE", "quill_dev"))
	viper.SetDefault("database.ssl_mode", getEnv("PG_SSL_MODE", "disable"))
	viper.SetDefault("session.secret", getEnv("QUILL_SESSION_SECRET", ""))
	viper.SetDefault("session.ttl", getEnv("QUILL_SESSION_TTL", "720h"))
	viper.SetDefault("files.static_dir", getEnv("QUILL_STATIC_DIR", "static"))
	viper.SetDefault("files.images_dir", getEnv("QUILL_IMAGES_DIR", "static/images"))
	viper.SetDefault("blog.page_size", getEnvInt("QUILL_PAGE_SIZE", 20))

	// Enable environment variable support
	viper.AutomaticEnv()

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if config file doesn't exist, we'll use defaults and env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if config.Session.Secret == "" {
		return nil, fmt.Errorf("session secret is required (set QUILL_SESSION_SECRET)")
	}

	return &config, nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
