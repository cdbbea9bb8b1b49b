package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the process configuration, read from the environment at startup.
type Config struct {
	App       AppConfig
	HTTP      HTTPConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Minio     MinioConfig
	Stripe    StripeConfig
	Session   SessionConfig
	Telegram  TelegramConfig
	Business  BusinessConfig
	Logging   LoggingConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name        string
	Environment string
	Version     string
}

type HTTPConfig struct {
	Port        int
	APIBaseURL  string
	CORSOrigins []string
}

type DatabaseConfig struct {
	URL           string
	RunMigrations bool
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

type StripeConfig struct {
	SecretKey      string
	WebhookSecret  string
	Currency       string
	VerifySessions bool
}

type SessionConfig struct {
	Secret      string
	CookieName  string
	TTL         time.Duration
	AdminEmails []string
	Secure      bool
}

type TelegramConfig struct {
	BotToken string
	ChatID   int64
}

type BusinessConfig struct {
	Name  string
	Phone string
	Email string
}

type LoggingConfig struct {
	Level  string
	Format string
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
}

const defaultAdminEmail = "jordan@afterhourshvac.ca"

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "afterhourshvac"),
			Environment: getEnv("APP_ENV", "development"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		HTTP: HTTPConfig{
			Port:        getEnvInt("PORT", 8080),
			APIBaseURL:  strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:8080"), "/"),
			CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		},
		Database: DatabaseConfig{
			URL:           os.Getenv("DATABASE_URL"),
			RunMigrations: getEnvBool("DATABASE_MIGRATE", true),
		},
		Redis: RedisConfig{
			Address:  getEnv("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Minio: MinioConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
			Bucket:    getEnv("MINIO_BUCKET", "afterhourshvac"),
		},
		Stripe: StripeConfig{
			SecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
			WebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
			Currency:      strings.ToLower(getEnv("STRIPE_CURRENCY", "cad")),
		},
		Session: SessionConfig{
			Secret:      os.Getenv("SESSION_SECRET"),
			CookieName:  getEnv("SESSION_COOKIE_NAME", "hvac_session"),
			TTL:         getEnvDuration("SESSION_TTL", 7*24*time.Hour),
			AdminEmails: normalizeEmails(splitList(getEnv("ADMIN_EMAILS", defaultAdminEmail))),
		},
		Telegram: TelegramConfig{
			BotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
			ChatID:   int64(getEnvInt("TELEGRAM_CHAT_ID", 0)),
		},
		Business: BusinessConfig{
			Name:  getEnv("BUSINESS_NAME", "After Hours HVAC"),
			Phone: getEnv("BUSINESS_PHONE", "(403) 613-6014"),
			Email: getEnv("BUSINESS_EMAIL", "info@afterhourshvac.ca"),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		RateLimit: RateLimitConfig{
			RPS:   getEnvFloat("PUBLIC_RATE_LIMIT_RPS", 1),
			Burst: getEnvInt("PUBLIC_RATE_LIMIT_BURST", 5),
		},
	}

	cfg.Session.Secure = cfg.IsProduction()
	// Verification is on whenever there is a key to verify with, unless disabled explicitly.
	cfg.Stripe.VerifySessions = getEnvBool("STRIPE_VERIFY_SESSIONS", cfg.Stripe.SecretKey != "")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.App.Environment, "production")
}

func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return errors.New("DATABASE_URL is required")
	}
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.HTTP.Port)
	}
	if c.IsProduction() && len(c.Session.Secret) < 32 {
		return errors.New("SESSION_SECRET must be at least 32 characters in production")
	}
	if c.Stripe.VerifySessions && c.Stripe.SecretKey == "" {
		return errors.New("STRIPE_VERIFY_SESSIONS requires STRIPE_SECRET_KEY")
	}
	return nil
}

// IsAdminEmail reports whether the address is on the admin allowlist.
func (s SessionConfig) IsAdminEmail(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, e := range s.AdminEmails {
		if e == email {
			return true
		}
	}
	return false
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func normalizeEmails(emails []string) []string {
	out := make([]string, 0, len(emails))
	for _, e := range emails {
		out = append(out, strings.ToLower(e))
	}
	return out
}
