package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Port              string
	Environment       string
	LogLevel          string
	DatabaseURL       string
	StoreDriver       string
	JWTSecret         string
	AccessTokenTTL    time.Duration
	RefreshTokenTTL   time.Duration
	FrontendURL       string
	AllowedOrigins    []string
	LoginDomain       string
	AnthropicAPIKey   string
	AnthropicModel    string
	AMQPURL           string
	AMQPExchange      string
	DataEncryptionKey string
	RateLimitPerMin   int
	MaxQRBytes        int64
}

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STORE_DRIVER", StoreDriverPostgres)
	v.SetDefault("ACCESS_TOKEN_TTL", "24h")
	v.SetDefault("REFRESH_TOKEN_TTL", "168h")
	v.SetDefault("FRONTEND_URL", "http://localhost:3000")
	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOGIN_DOMAIN", "nevta.digital")
	v.SetDefault("ANTHROPIC_MODEL", "claude-3-5-haiku-latest")
	v.SetDefault("AMQP_EXCHANGE", "nevta.events")
	v.SetDefault("RATE_LIMIT_PER_MINUTE", 100)
	v.SetDefault("MAX_QR_BYTES", 2<<20)
}

// Load reads config.yaml (optional) and the environment; the environment wins.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:              v.GetString("PORT"),
		Environment:       strings.ToLower(v.GetString("ENVIRONMENT")),
		LogLevel:          v.GetString("LOG_LEVEL"),
		DatabaseURL:       v.GetString("DATABASE_URL"),
		StoreDriver:       strings.ToLower(v.GetString("STORE_DRIVER")),
		JWTSecret:         v.GetString("JWT_SECRET"),
		AccessTokenTTL:    v.GetDuration("ACCESS_TOKEN_TTL"),
		RefreshTokenTTL:   v.GetDuration("REFRESH_TOKEN_TTL"),
		FrontendURL:       v.GetString("FRONTEND_URL"),
		LoginDomain:       v.GetString("LOGIN_DOMAIN"),
		AnthropicAPIKey:   v.GetString("ANTHROPIC_API_KEY"),
		AnthropicModel:    v.GetString("ANTHROPIC_MODEL"),
		AMQPURL:           v.GetString("AMQP_URL"),
		AMQPExchange:      v.GetString("AMQP_EXCHANGE"),
		DataEncryptionKey: v.GetString("DATA_ENCRYPTION_KEY"),
		RateLimitPerMin:   v.GetInt("RATE_LIMIT_PER_MINUTE"),
		MaxQRBytes:        v.GetInt64("MAX_QR_BYTES"),
	}

	cfg.AllowedOrigins = []string{cfg.FrontendURL}
	for _, origin := range strings.Split(v.GetString("ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" && origin != cfg.FrontendURL {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field requirements.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case StoreDriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL environment variable is required")
		}
	case StoreDriverMemory:
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q", c.StoreDriver)
	}

	if c.JWTSecret == "" {
		if c.IsProduction() {
			return fmt.Errorf("JWT_SECRET is required in production")
		}
		c.JWTSecret = "dev-secret-change-me"
	}

	if c.DataEncryptionKey != "" && len(c.DataEncryptionKey) != 32 {
		return fmt.Errorf("DATA_ENCRYPTION_KEY must be exactly 32 characters")
	}
	if c.AccessTokenTTL <= 0 || c.RefreshTokenTTL <= 0 {
		return fmt.Errorf("token TTLs must be positive")
	}
	if c.RateLimitPerMin <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}
	if c.MaxQRBytes <= 0 {
		return fmt.Errorf("MAX_QR_BYTES must be positive")
	}
	return nil
}
