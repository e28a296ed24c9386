// Package config handles loading and validation of application configuration
// from environment variables.
package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/feedbackhq/feedback-backend/logger"
	"github.com/spf13/viper"
)

// Environment represents the application's running environment (development or production).
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"
)

// ServerConfig holds server-specific configuration.
type ServerConfig struct {
	Environment    Environment `mapstructure:"ENVIRONMENT" yaml:"environment"`
	Port           string      `mapstructure:"PORT" yaml:"port"`
	AllowedOrigins []string    `mapstructure:"ALLOWED_ORIGINS" yaml:"allowed_origins"`
	Version        string      `mapstructure:"VERSION" yaml:"version"`
}

// DatabaseConfig holds MongoDB connection details.
type DatabaseConfig struct {
	URI                   string `mapstructure:"URI" yaml:"uri"`
	Name                  string `mapstructure:"NAME" yaml:"name"`
	ConnectTimeoutSeconds int    `mapstructure:"CONNECT_TIMEOUT_SECONDS" yaml:"connect_timeout_seconds"`
	MaxPoolSize           uint64 `mapstructure:"MAX_POOL_SIZE" yaml:"max_pool_size"`
}

// EmailConfig holds SMTP transport configuration for rejection notices.
type EmailConfig struct {
	Host        string `mapstructure:"HOST" yaml:"host"`
	Port        int    `mapstructure:"PORT" yaml:"port"`
	Username    string `mapstructure:"USERNAME" yaml:"username"`
	Password    string `mapstructure:"PASSWORD" yaml:"password"`
	FromAddress string `mapstructure:"FROM_ADDRESS" yaml:"from_address"`
	FromName    string `mapstructure:"FROM_NAME" yaml:"from_name"`
}

// Secure reports whether the transport should use implicit TLS. Port 465 is
// the conventional SMTPS port; STARTTLS is negotiated on other ports.
func (c *EmailConfig) Secure() bool {
	return c.Port == 465
}

// ApprovalConfig holds the endpoint of the external approval service.
type ApprovalConfig struct {
	URL            string `mapstructure:"URL" yaml:"url"`
	TimeoutSeconds int    `mapstructure:"TIMEOUT_SECONDS" yaml:"timeout_seconds"`
}

// AnalyticsConfig holds the endpoint of the external analytics service.
type AnalyticsConfig struct {
	URL            string `mapstructure:"URL" yaml:"url"`
	TimeoutSeconds int    `mapstructure:"TIMEOUT_SECONDS" yaml:"timeout_seconds"`
}

// RedisConfig holds Redis connection details for the submission rate limiter.
type RedisConfig struct {
	Address  string `mapstructure:"ADDRESS" yaml:"address"`
	Password string `mapstructure:"PASSWORD" yaml:"password"`
	DB       int    `mapstructure:"DB" yaml:"db"`
	UseTLS   bool   `mapstructure:"USE_TLS" yaml:"use_tls"`
}

// RateLimitConfig holds configuration for rate limiting feedback submissions.
type RateLimitConfig struct {
	// Maximum submissions per window for a single client IP
	SubmissionsPerWindow int `mapstructure:"SUBMISSIONS_PER_WINDOW" yaml:"submissions_per_window"`
	// Window duration in seconds
	WindowSeconds int `mapstructure:"WINDOW_SECONDS" yaml:"window_seconds"`
}

// ModerationConfig holds configuration for the moderation service binary.
type ModerationConfig struct {
	Port string `mapstructure:"PORT" yaml:"port"`
	// BadWordsFile is the path of a newline-separated list of disallowed words
	BadWordsFile string `mapstructure:"BAD_WORDS_FILE" yaml:"bad_words_file"`
	// SpamThreshold is the number of submissions per SpamWindowSeconds from
	// one email address that flags a submitter as spamming
	SpamThreshold     int `mapstructure:"SPAM_THRESHOLD" yaml:"spam_threshold"`
	SpamWindowSeconds int `mapstructure:"SPAM_WINDOW_SECONDS" yaml:"spam_window_seconds"`
}

// Config aggregates all application configuration sections.
type Config struct {
	Server     ServerConfig     `mapstructure:"SERVER" yaml:"server"`
	Database   DatabaseConfig   `mapstructure:"DATABASE" yaml:"database"`
	Email      EmailConfig      `mapstructure:"EMAIL" yaml:"email"`
	Approval   ApprovalConfig   `mapstructure:"APPROVAL" yaml:"approval"`
	Analytics  AnalyticsConfig  `mapstructure:"ANALYTICS" yaml:"analytics"`
	Redis      RedisConfig      `mapstructure:"REDIS" yaml:"redis"`
	RateLimit  RateLimitConfig  `mapstructure:"RATE_LIMIT" yaml:"rate_limit"`
	Moderation ModerationConfig `mapstructure:"MODERATION" yaml:"moderation"`
}

// IsDevelopment returns true if the application is running in development environment.
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == EnvDevelopment
}

// IsProduction returns true if the application is running in production environment.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == EnvProduction
}

// bindEnvVars binds multiple environment variables to config keys.
// Format: []{configKey, envVar}
func bindEnvVars(v *viper.Viper, bindings [][2]string) error {
	for _, b := range bindings {
		if err := v.BindEnv(b[0], b[1]); err != nil {
			return fmt.Errorf("failed to bind %s: %w", b[0], err)
		}
	}
	return nil
}

// LoadConfig loads configuration from environment variables using Viper,
// sets default values, binds environment variables to config struct fields,
// unmarshals the configuration, and validates it.
func LoadConfig() (*Config, error) {
	v := viper.New()
	log := logger.GetLogger()

	v.SetDefault("SERVER.ENVIRONMENT", EnvDevelopment)
	v.SetDefault("SERVER.PORT", "4000")
	v.SetDefault("SERVER.ALLOWED_ORIGINS", []string{"*"})
	v.SetDefault("DATABASE.URI", "mongodb://localhost:27017/feedback")
	v.SetDefault("DATABASE.NAME", "feedback")
	v.SetDefault("DATABASE.CONNECT_TIMEOUT_SECONDS", 10)
	v.SetDefault("DATABASE.MAX_POOL_SIZE", 50)
	v.SetDefault("EMAIL.PORT", 587)
	v.SetDefault("APPROVAL.URL", "http://localhost:3000/graphql")
	v.SetDefault("APPROVAL.TIMEOUT_SECONDS", 10)
	v.SetDefault("ANALYTICS.URL", "http://localhost:8000/graphql")
	v.SetDefault("ANALYTICS.TIMEOUT_SECONDS", 10)
	v.SetDefault("REDIS.ADDRESS", "localhost:6379")
	v.SetDefault("REDIS.PASSWORD", "")
	v.SetDefault("REDIS.DB", 0)
	v.SetDefault("REDIS.USE_TLS", false)
	v.SetDefault("RATE_LIMIT.SUBMISSIONS_PER_WINDOW", 10)
	v.SetDefault("RATE_LIMIT.WINDOW_SECONDS", 60)
	v.SetDefault("MODERATION.PORT", "3000")
	v.SetDefault("MODERATION.BAD_WORDS_FILE", "bw.txt")
	v.SetDefault("MODERATION.SPAM_THRESHOLD", 5)
	v.SetDefault("MODERATION.SPAM_WINDOW_SECONDS", 300)
	v.SetDefault("LOG_LEVEL", "info")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	envBindings := [][2]string{
		// Server config
		{"SERVER.ENVIRONMENT", "ENVIRONMENT"},
		{"SERVER.PORT", "PORT"},
		{"SERVER.ALLOWED_ORIGINS", "ALLOWED_ORIGINS"},
		{"SERVER.VERSION", "VERSION"},
		// Database config
		{"DATABASE.URI", "MONGO_URI"},
		{"DATABASE.NAME", "MONGO_DATABASE"},
		{"DATABASE.CONNECT_TIMEOUT_SECONDS", "MONGO_CONNECT_TIMEOUT_SECONDS"},
		{"DATABASE.MAX_POOL_SIZE", "MONGO_MAX_POOL_SIZE"},
		// Email config
		{"EMAIL.HOST", "EMAIL_HOST"},
		{"EMAIL.PORT", "EMAIL_PORT"},
		{"EMAIL.USERNAME", "EMAIL_USER"},
		{"EMAIL.PASSWORD", "EMAIL_PASSWORD"},
		{"EMAIL.FROM_ADDRESS", "EMAIL_FROM"},
		{"EMAIL.FROM_NAME", "EMAIL_FROM_NAME"},
		// Approval service
		{"APPROVAL.URL", "APPROVAL_SERVICE_URL"},
		{"APPROVAL.TIMEOUT_SECONDS", "APPROVAL_TIMEOUT_SECONDS"},
		// Analytics service
		{"ANALYTICS.URL", "ANALYTICS_SERVICE_URL"},
		{"ANALYTICS.TIMEOUT_SECONDS", "ANALYTICS_TIMEOUT_SECONDS"},
		// Redis config
		{"REDIS.ADDRESS", "REDIS_ADDRESS"},
		{"REDIS.PASSWORD", "REDIS_PASSWORD"},
		{"REDIS.DB", "REDIS_DB"},
		{"REDIS.USE_TLS", "REDIS_USE_TLS"},
		// Rate limit
		{"RATE_LIMIT.SUBMISSIONS_PER_WINDOW", "RATE_LIMIT_SUBMISSIONS_PER_WINDOW"},
		{"RATE_LIMIT.WINDOW_SECONDS", "RATE_LIMIT_WINDOW_SECONDS"},
		// Moderation service
		{"MODERATION.PORT", "MODERATION_PORT"},
		{"MODERATION.BAD_WORDS_FILE", "MODERATION_BAD_WORDS_FILE"},
		{"MODERATION.SPAM_THRESHOLD", "MODERATION_SPAM_THRESHOLD"},
		{"MODERATION.SPAM_WINDOW_SECONDS", "MODERATION_SPAM_WINDOW_SECONDS"},
	}

	if err := bindEnvVars(v, envBindings); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config unmarshal failed: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	log.Infow("Configuration loaded",
		"environment", cfg.Server.Environment,
		"server_port", cfg.Server.Port,
		"mongo_database", cfg.Database.Name,
		"approval_url", cfg.Approval.URL,
		"analytics_url", cfg.Analytics.URL,
		"email_host", cfg.Email.Host,
	)

	return &cfg, nil
}

// validateConfig checks if the loaded configuration values are valid.
func validateConfig(cfg *Config) error {
	log := logger.GetLogger()

	if cfg.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if !containsWildcard(cfg.Server.AllowedOrigins) {
		for _, origin := range cfg.Server.AllowedOrigins {
			if _, err := url.ParseRequestURI(origin); err != nil {
				return fmt.Errorf("invalid allowed origin '%s': %w", origin, err)
			}
		}
	}

	if cfg.Database.URI == "" {
		return fmt.Errorf("mongo URI is required")
	}
	if cfg.Database.Name == "" {
		return fmt.Errorf("mongo database name is required")
	}
	if cfg.Database.ConnectTimeoutSeconds <= 0 {
		return fmt.Errorf("mongo connect timeout must be positive")
	}

	if cfg.Email.Host == "" {
		return fmt.Errorf("email host is required")
	}
	if cfg.Email.Port <= 0 {
		return fmt.Errorf("email port must be positive")
	}
	if cfg.Email.FromAddress == "" {
		return fmt.Errorf("email from address is required")
	}
	if cfg.Email.Password == "" {
		log.Warn("Email password is not set. Ensure the SMTP relay accepts unauthenticated senders.")
	}

	if _, err := url.ParseRequestURI(cfg.Approval.URL); err != nil {
		return fmt.Errorf("invalid approval service URL: %w", err)
	}
	if cfg.Approval.TimeoutSeconds <= 0 {
		return fmt.Errorf("approval timeout must be positive")
	}

	if _, err := url.ParseRequestURI(cfg.Analytics.URL); err != nil {
		return fmt.Errorf("invalid analytics service URL: %w", err)
	}
	if cfg.Analytics.TimeoutSeconds <= 0 {
		return fmt.Errorf("analytics timeout must be positive")
	}

	if cfg.Redis.Address == "" {
		return fmt.Errorf("redis address is required")
	}

	if cfg.RateLimit.SubmissionsPerWindow <= 0 {
		return fmt.Errorf("rate limit submissions per window must be positive")
	}
	if cfg.RateLimit.WindowSeconds <= 0 {
		return fmt.Errorf("rate limit window seconds must be positive")
	}

	if cfg.Moderation.SpamThreshold <= 0 {
		return fmt.Errorf("moderation spam threshold must be positive")
	}
	if cfg.Moderation.SpamWindowSeconds <= 0 {
		return fmt.Errorf("moderation spam window must be positive")
	}

	return nil
}

// containsWildcard checks if the list of allowed origins contains the wildcard "*".
func containsWildcard(origins []string) bool {
	for _, origin := range origins {
		if origin == "*" {
			return true
		}
	}
	return false
}
