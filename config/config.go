package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	Environment  string
	DatabaseURL  string
	JWTSecretKey string
	ServerPort   int
	ServerRegion string
	LogLevel     string

	AdminEmails        []string
	CORSAllowedOrigins []string

	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicBaseURL   string

	PixKey             string
	PixMerchantName    string
	PixMerchantCity    string
	PaymentTTL         time.Duration
	PaymentAutoApprove bool

	SchedulerInterval time.Duration
	TelemetryInterval time.Duration

	// DevTokens mounts the unauthenticated POST /dev/token issuer.
	DevTokens bool
}

func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// StorageEnabled reports whether every R2 setting is present.
func (c *Config) StorageEnabled() bool {
	return c.R2AccountID != "" && c.R2AccessKeyID != "" && c.R2SecretAccessKey != "" &&
		c.R2BucketName != "" && c.R2PublicBaseURL != ""
}

// Load загружает конфигурацию из переменных окружения.
// Опционально подгружает .env файл (полезно для локальной разработки).
func Load() (*Config, error) {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	jwtKey := os.Getenv("JWT_SECRET_KEY")
	if jwtKey == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY environment variable is not set")
	}

	port, err := strconv.Atoi(getEnv("SERVER_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	env := strings.ToLower(getEnv("APP_ENV", EnvDevelopment))
	if env != EnvDevelopment && env != EnvProduction {
		return nil, fmt.Errorf("APP_ENV must be %q or %q, got %q", EnvDevelopment, EnvProduction, env)
	}

	paymentTTL, err := getDuration("PAYMENT_TTL", 30*time.Minute)
	if err != nil {
		return nil, err
	}
	schedulerInterval, err := getDuration("SCHEDULER_INTERVAL", 30*time.Second)
	if err != nil {
		return nil, err
	}
	telemetryInterval, err := getDuration("TELEMETRY_INTERVAL", 5*time.Second)
	if err != nil {
		return nil, err
	}

	autoApprove, err := strconv.ParseBool(getEnv("PAYMENT_AUTO_APPROVE", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYMENT_AUTO_APPROVE environment variable: %w", err)
	}
	devTokens, err := strconv.ParseBool(getEnv("DEV_TOKENS", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid DEV_TOKENS environment variable: %w", err)
	}

	cfg := &Config{
		Environment:  env,
		DatabaseURL:  dbURL,
		JWTSecretKey: jwtKey,
		ServerPort:   port,
		ServerRegion: getEnv("SERVER_REGION", "local"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),

		AdminEmails:        splitList(os.Getenv("ADMIN_EMAILS")),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),

		R2AccountID:       os.Getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:      os.Getenv("R2_BUCKET_NAME"),
		R2PublicBaseURL:   os.Getenv("R2_PUBLIC_BASE_URL"),

		PixKey:             os.Getenv("PIX_KEY"),
		PixMerchantName:    getEnv("PIX_MERCHANT_NAME", "EHUB"),
		PixMerchantCity:    getEnv("PIX_MERCHANT_CITY", "SAO PAULO"),
		PaymentTTL:         paymentTTL,
		PaymentAutoApprove: autoApprove,

		SchedulerInterval: schedulerInterval,
		TelemetryInterval: telemetryInterval,

		DevTokens: devTokens,
	}

	if cfg.IsProduction() && cfg.DevTokens {
		return nil, fmt.Errorf("DEV_TOKENS cannot be enabled in production")
	}
	if cfg.IsProduction() && cfg.PixKey == "" {
		return nil, fmt.Errorf("PIX_KEY environment variable is required in production")
	}
	if cfg.PixKey == "" {
		cfg.PixKey = "dev@ehub.local"
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, d)
	}
	return d, nil
}

func splitList(v string) []string {
	out := make([]string, 0)
	for _, part := range strings.Split(v, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
