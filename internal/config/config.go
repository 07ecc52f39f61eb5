package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration
type Config struct {
	Env    string `envconfig:"APP_ENV" default:"development"`
	Port   int    `envconfig:"APP_PORT" default:"8080"`
	DB     DBConfig
	Redis  RedisConfig
	CORS   CORSConfig
	JWT    JWTConfig
	Gemini GeminiConfig
	Vapi   VapiConfig
	Stripe StripeConfig
}

// database configuration
type DBConfig struct {
	DSN          string        `envconfig:"DATABASE_URL" required:"true"`
	MaxOpenConns int           `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`
	MaxConnLife  time.Duration `envconfig:"DB_MAX_CONN_LIFETIME" default:"1h"`
}

// redis configuration (session revocation store)
type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// CORS configuration
type CORSConfig struct {
	TrustedOrigins []string `envconfig:"CORS_TRUSTED_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
}

// JWT configuration
type JWTConfig struct {
	Secret     string        `envconfig:"JWT_SECRET" required:"true"`
	SessionTTL time.Duration `envconfig:"SESSION_TTL" default:"168h"` // 1 week
}

// Gemini AI configuration
type GeminiConfig struct {
	APIKey     string        `envconfig:"GOOGLE_GENERATIVE_AI_API_KEY" required:"true"`
	Model      string        `envconfig:"GEMINI_MODEL" default:"gemini-2.0-flash-001"`
	Timeout    time.Duration `envconfig:"GEMINI_TIMEOUT" default:"30s"`
	MaxRetries int           `envconfig:"GEMINI_MAX_RETRIES" default:"2"`
}

// Vapi voice agent configuration
type VapiConfig struct {
	Token       string `envconfig:"VAPI_WEB_TOKEN" required:"true"`
	BaseURL     string `envconfig:"VAPI_BASE_URL" default:"wss://api.vapi.ai/ws"`
	WorkflowID  string `envconfig:"VAPI_WORKFLOW_ID" default:""`
	AssistantID string `envconfig:"VAPI_ASSISTANT_ID" default:""`
}

// Stripe payment configuration
type StripeConfig struct {
	SecretKey     string `envconfig:"STRIPE_SECRET_KEY" required:"true"`
	WebhookSecret string `envconfig:"STRIPE_WEBHOOK_SECRET" required:"true"`
	BaseURL       string `envconfig:"PUBLIC_BASE_URL" default:"http://localhost:3000"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

func (c *Config) Validate() error {
	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
		"test":        true,
	}
	if !validEnvs[c.Env] {
		return fmt.Errorf("invalid environment: %s (must be one of: development, staging, production, test)", c.Env)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d (must be between 1 and 65535)", c.Port)
	}
	if c.DB.MaxOpenConns < 1 {
		return fmt.Errorf("DB_MAX_OPEN_CONNS must be at least 1")
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters")
	}
	if c.JWT.SessionTTL < time.Minute {
		return fmt.Errorf("SESSION_TTL must be at least 1 minute")
	}
	if c.Gemini.Timeout < time.Second {
		return fmt.Errorf("GEMINI_TIMEOUT must be at least 1 second")
	}
	if c.Gemini.MaxRetries < 0 {
		return fmt.Errorf("GEMINI_MAX_RETRIES must be non-negative")
	}
	if !strings.HasPrefix(c.Stripe.SecretKey, "sk_") {
		return fmt.Errorf("STRIPE_SECRET_KEY must start with sk_")
	}
	if len(c.CORS.TrustedOrigins) == 0 {
		return fmt.Errorf("at least one trusted origin must be specified")
	}

	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// GetCORSOrigins returns the list of trusted CORS origins
func (c *Config) GetCORSOrigins() []string {
	origins := make([]string, 0, len(c.CORS.TrustedOrigins))
	for _, origin := range c.CORS.TrustedOrigins {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

func (c *Config) String() string {
	return fmt.Sprintf("Config{Env=%s, Port=%d, DB.MaxOpenConns=%d, CORS.Origins=%d, "+
		"JWT.SessionTTL=%s, Gemini.Model=%s, Gemini.Timeout=%s, Gemini.MaxRetries=%d}",
		c.Env, c.Port, c.DB.MaxOpenConns, len(c.CORS.TrustedOrigins),
		c.JWT.SessionTTL, c.Gemini.Model, c.Gemini.Timeout, c.Gemini.MaxRetries)
}
