package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	Addr     string `mapstructure:"ADDR"`
	GinMode  string `mapstructure:"GIN_MODE"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// DatabaseURL is the hosted backend's Postgres connection string.
	DatabaseURL    string `mapstructure:"DATABASE_URL"`
	BackendAnonKey string `mapstructure:"BACKEND_ANON_KEY"`

	JWTSecret string        `mapstructure:"JWT_SECRET"`
	JWTTTL    time.Duration `mapstructure:"JWT_TTL"`

	AdminEmail    string `mapstructure:"ADMIN_EMAIL"`
	AdminPassword string `mapstructure:"ADMIN_PASSWORD"`

	StudioName    string `mapstructure:"STUDIO_NAME"`
	CareersEmail  string `mapstructure:"CAREERS_EMAIL"`
	PartnersEmail string `mapstructure:"PARTNERS_EMAIL"`

	CORSAllowedOrigins []string `mapstructure:"CORS_ALLOWED_ORIGINS"`

	AnalyticsWorkers   int           `mapstructure:"ANALYTICS_WORKERS"`
	AnalyticsQueueSize int           `mapstructure:"ANALYTICS_QUEUE_SIZE"`
	SessionIdleTimeout time.Duration `mapstructure:"SESSION_IDLE_TIMEOUT"`
	MaxSessions        int           `mapstructure:"MAX_SESSIONS"`
	SecureCookies      bool          `mapstructure:"SECURE_COOKIES"`
}

var ErrInvalidConfig = errors.New("invalid config")

// Values shipped in .env.example; treated the same as an empty setting.
var placeholders = []string{
	"your_database_url",
	"your-database-url",
	"your_supabase_url",
	"your-project-url",
	"your_anon_key",
	"your-anon-key",
	"placeholder",
}

var defaults = map[string]any{
	"ADDR":                 ":8080",
	"GIN_MODE":             "release",
	"LOG_LEVEL":            "info",
	"DATABASE_URL":         "",
	"BACKEND_ANON_KEY":     "",
	"JWT_SECRET":           "",
	"JWT_TTL":              "168h",
	"ADMIN_EMAIL":          "",
	"ADMIN_PASSWORD":       "",
	"STUDIO_NAME":          "Clockwork Reels",
	"CAREERS_EMAIL":        "careers@example.com",
	"PARTNERS_EMAIL":       "partners@example.com",
	"CORS_ALLOWED_ORIGINS": "",
	"ANALYTICS_WORKERS":    4,
	"ANALYTICS_QUEUE_SIZE": 1024,
	"SESSION_IDLE_TIMEOUT": "30m",
	"MAX_SESSIONS":         10000,
	"SECURE_COOKIES":       false,
}

// LoadConfig loads the configuration from a .env file and environment variables.
func LoadConfig(paths ...string) (*Config, error) {
	v := viper.New()
	if len(paths) == 0 {
		paths = []string{"."}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetConfigName(".env")
	v.SetConfigType("env")

	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read .env: %w", err)
		}
		log.Println("Warning: .env file not found, loading from environment variables")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}
	cfg.CORSAllowedOrigins = compact(cfg.CORSAllowedOrigins)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks settings that cannot be defaulted.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("%w: ADDR must not be empty", ErrInvalidConfig)
	}
	if c.BackendConfigured() && len(c.JWTSecret) < 16 {
		return fmt.Errorf("%w: JWT_SECRET must be at least 16 characters", ErrInvalidConfig)
	}
	if c.AnalyticsWorkers < 1 || c.AnalyticsQueueSize < 1 {
		return fmt.Errorf("%w: analytics workers and queue size must be positive", ErrInvalidConfig)
	}
	if c.SessionIdleTimeout <= 0 {
		return fmt.Errorf("%w: SESSION_IDLE_TIMEOUT must be positive", ErrInvalidConfig)
	}
	if c.MaxSessions < 1 {
		return fmt.Errorf("%w: MAX_SESSIONS must be positive", ErrInvalidConfig)
	}
	return nil
}

// BackendConfigured reports whether real backend credentials were supplied.
// Analytics and backend-sourced content are disabled otherwise.
func (c *Config) BackendConfigured() bool {
	if isPlaceholder(c.DatabaseURL) {
		return false
	}
	return c.BackendAnonKey == "" || !isPlaceholder(c.BackendAnonKey)
}

func isPlaceholder(v string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" {
		return true
	}
	for _, p := range placeholders {
		if strings.Contains(v, p) {
			return true
		}
	}
	return false
}

func compact(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
