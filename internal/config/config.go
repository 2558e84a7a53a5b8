// FilePath: internal/config/config.go
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the service
type Config struct {
	Server     ServerConfig
	Cognito    CognitoConfig
	Backend    BackendConfig
	Redis      RedisConfig
	Session    SessionConfig
	Monitoring MonitoringConfig
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Host            string        `mapstructure:"host"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// CognitoConfig describes the hosted identity provider. Domain is the bare
// provider host; the auth client prepends https:// unless a scheme is given.
type CognitoConfig struct {
	Domain      string `mapstructure:"domain"`
	ClientID    string `mapstructure:"client_id"`
	CallbackURL string `mapstructure:"callback_url"`
	Scope       string `mapstructure:"scope"`
}

type BackendConfig struct {
	APIURL  string        `mapstructure:"api_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type SessionConfig struct {
	CookieName string        `mapstructure:"cookie_name"`
	HashKey    string        `mapstructure:"hash_key"`
	TTL        time.Duration `mapstructure:"ttl"`
}

type MonitoringConfig struct {
	LogLevel string `mapstructure:"log_level"`
}

// Load initializes configuration from environment variables and config file
func Load() (*Config, error) {
	viper.SetEnvPrefix("AGRO")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "__"))
	viper.AutomaticEnv()

	// The deploy artifact for this stack exposes flat names; honor them as
	// aliases for the nested keys.
	viper.BindEnv("cognito.domain", "AGRO_COGNITO__DOMAIN", "COGNITO_DOMAIN")
	viper.BindEnv("cognito.client_id", "AGRO_COGNITO__CLIENT_ID", "COGNITO_CLIENT_ID")
	viper.BindEnv("cognito.callback_url", "AGRO_COGNITO__CALLBACK_URL", "CALLBACK_URL")
	viper.BindEnv("backend.api_url", "AGRO_BACKEND__API_URL", "API_URL")
	viper.BindEnv("session.hash_key", "AGRO_SESSION__HASH_KEY", "SESSION_HASH_KEY")
	viper.BindEnv("redis.host", "AGRO_REDIS__HOST", "REDIS_HOST")

	// Set defaults
	setDefaults()

	// Load config file if exists
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation error: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	// Server defaults
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.read_timeout", "15s")
	viper.SetDefault("server.write_timeout", "15s")
	viper.SetDefault("server.shutdown_timeout", "30s")

	// Cognito defaults
	viper.SetDefault("cognito.scope", "email openid profile")

	// Backend defaults
	viper.SetDefault("backend.timeout", "10s")

	// Redis defaults
	viper.SetDefault("redis.db", 0)

	// Session defaults
	viper.SetDefault("session.cookie_name", "agro_session")
	viper.SetDefault("session.ttl", "720h")

	// Monitoring defaults
	viper.SetDefault("monitoring.log_level", "info")
}

func validateConfig(config *Config) error {
	// For now, just check required fields are not empty
	if config.Cognito.Domain == "" {
		return fmt.Errorf("cognito domain is required")
	}
	if config.Cognito.ClientID == "" {
		return fmt.Errorf("cognito client id is required")
	}
	if config.Cognito.CallbackURL == "" {
		return fmt.Errorf("cognito callback URL is required")
	}
	if config.Backend.APIURL == "" {
		return fmt.Errorf("backend API URL is required")
	}
	if config.Session.HashKey == "" {
		return fmt.Errorf("session hash key is required")
	}
	return nil
}
