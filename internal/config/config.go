package config

import (
	"os"
	"strconv"
	"time"
)

// AuthEncoding selects how the client-credentials payload is sent to the
// token endpoint. This is a per-deployment fixed choice, not negotiated
// at runtime.
type AuthEncoding string

const (
	AuthEncodingJSON AuthEncoding = "json"
	AuthEncodingForm AuthEncoding = "form"
)

// Config holds all configuration for the application.
type Config struct {
	Server   ServerConfig
	Auth     AuthConfig
	Provider ProviderConfig
	Redis    RedisConfig
	NewRelic NewRelicConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         string
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// IsProduction reports whether the process runs in production mode.
func (c ServerConfig) IsProduction() bool {
	return c.Env == "production"
}

// AuthConfig holds the token-endpoint configuration.
type AuthConfig struct {
	URL          string
	ClientID     string
	ClientSecret string
	Scope        string
	Encoding     AuthEncoding
}

// ProviderConfig holds the Gett booking API configuration.
type ProviderConfig struct {
	BaseURL   string
	PartnerID string
	Name      string
	Timeout   time.Duration
}

// RedisConfig holds Redis configuration for the idempotency store.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Enabled  bool
}

// NewRelicConfig holds New Relic configuration.
type NewRelicConfig struct {
	AppName    string
	LicenseKey string
	Enabled    bool
}

// Load loads configuration from environment variables.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Env:          getEnv("APP_ENV", "development"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 10*time.Second),
		},
		Auth: AuthConfig{
			URL:          getEnv("AUTH_URL", ""),
			ClientID:     getEnv("CLIENT_ID", ""),
			ClientSecret: getEnv("CLIENT_SECRET", ""),
			Scope:        getEnv("SCOPE", "cab:book"),
			Encoding:     parseAuthEncoding(getEnv("AUTH_ENCODING", "json")),
		},
		Provider: ProviderConfig{
			BaseURL:   getEnv("PROVIDER_BASE_URL", ""),
			PartnerID: getEnv("PARTNER_ID", ""),
			Name:      getEnv("PROVIDER_NAME", "Gett"),
			Timeout:   getDurationEnv("UPSTREAM_TIMEOUT", 10*time.Second),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
			Enabled:  getBoolEnv("REDIS_ENABLED", false),
		},
		NewRelic: NewRelicConfig{
			AppName:    getEnv("NEW_RELIC_APP_NAME", "gett-booking-gateway"),
			LicenseKey: getEnv("NEW_RELIC_LICENSE_KEY", ""),
			Enabled:    getBoolEnv("NEW_RELIC_ENABLED", false),
		},
	}
}

func parseAuthEncoding(value string) AuthEncoding {
	if AuthEncoding(value) == AuthEncodingForm {
		return AuthEncodingForm
	}
	return AuthEncodingJSON
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
