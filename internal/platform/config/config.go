package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr                 string
	DatabaseURL          string
	JWTSecret            string
	JWTTTL               time.Duration
	DataEncryptionKey    string // 32 raw bytes, 64 hex chars, or base64
	RedisURL             string
	CacheTTL             time.Duration
	Environment          string
	Timezone             string
	RunMigrations        bool
	MigrationsDir        string
	RunSeed              bool
	SeedAdminUsername    string
	SeedAdminPassword    string
	EmailFrom            string
	EmailEnabled         bool
	SMTPHost             string
	SMTPPort             int
	SMTPUser             string
	SMTPPassword         string
	SMTPUseTLS           bool
	MaxBodyBytes         int64
	RateLimitPerMinute   int
	MetricsEnabled       bool
	WorkdayStart         string
	OvertimeStart        string
	OvertimeMonthlyHours float64
	OvertimeMultiplier   float64
	PaymentDay           int
	PayrollCron          string
	TaxTableFile         string
	RetentionCron        string
	RetentionDays        int
	AuditRetentionDays   int
}

// Load reads an optional .env file and then the process environment.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Addr:                 getEnv("APP_ADDR", ":8080"),
		DatabaseURL:          getEnv("DATABASE_URL", ""),
		JWTSecret:            getEnv("JWT_SECRET", ""),
		JWTTTL:               getEnvDuration("JWT_TTL", 8*time.Hour),
		DataEncryptionKey:    getEnv("DATA_ENCRYPTION_KEY", ""),
		RedisURL:             getEnv("REDIS_URL", ""),
		CacheTTL:             getEnvDuration("CACHE_TTL", 10*time.Minute),
		Environment:          getEnv("APP_ENV", "development"),
		Timezone:             getEnv("TIMEZONE", "Asia/Seoul"),
		RunMigrations:        getEnvBool("RUN_MIGRATIONS", true),
		MigrationsDir:        getEnv("MIGRATIONS_DIR", "migrations"),
		RunSeed:              getEnvBool("RUN_SEED", true),
		SeedAdminUsername:    getEnv("SEED_ADMIN_USERNAME", "admin"),
		SeedAdminPassword:    getEnv("SEED_ADMIN_PASSWORD", ""),
		EmailFrom:            getEnv("EMAIL_FROM", "no-reply@example.com"),
		EmailEnabled:         getEnvBool("EMAIL_ENABLED", false),
		SMTPHost:             getEnv("SMTP_HOST", ""),
		SMTPPort:             getEnvInt("SMTP_PORT", 587),
		SMTPUser:             getEnv("SMTP_USER", ""),
		SMTPPassword:         getEnv("SMTP_PASSWORD", ""),
		SMTPUseTLS:           getEnvBool("SMTP_USE_TLS", true),
		MaxBodyBytes:         getEnvInt64("MAX_BODY_BYTES", 1048576),
		RateLimitPerMinute:   getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
		MetricsEnabled:       getEnvBool("METRICS_ENABLED", true),
		WorkdayStart:         getEnv("WORKDAY_START", "09:00:00"),
		OvertimeStart:        getEnv("OVERTIME_START", "18:00:00"),
		OvertimeMonthlyHours: getEnvFloat("OVERTIME_MONTHLY_HOURS", 209),
		OvertimeMultiplier:   getEnvFloat("OVERTIME_MULTIPLIER", 1.5),
		PaymentDay:           getEnvInt("PAYMENT_DAY", 25),
		PayrollCron:          getEnv("PAYROLL_CRON", ""),
		TaxTableFile:         getEnv("PAYROLL_TAX_TABLE_FILE", ""),
		RetentionCron:        getEnv("RETENTION_CRON", "0 3 * * *"),
		RetentionDays:        getEnvInt("RETENTION_DAYS", 90),
		AuditRetentionDays:   getEnvInt("AUDIT_RETENTION_DAYS", 0),
	}
}

// Location resolves the configured timezone, falling back to UTC.
func (c Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt64(key string, fallback int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Environment == "production" {
		if strings.TrimSpace(c.JWTSecret) == "" {
			return fmt.Errorf("JWT_SECRET must be set to a strong value in production")
		}
		if strings.TrimSpace(c.DataEncryptionKey) == "" {
			return fmt.Errorf("DATA_ENCRYPTION_KEY must be set in production for encryption at rest")
		}
		if c.RunSeed && strings.TrimSpace(c.SeedAdminPassword) == "" {
			return fmt.Errorf("SEED_ADMIN_PASSWORD must be set or RUN_SEED disabled in production")
		}
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}
	if c.EmailEnabled && c.SMTPHost == "" {
		return fmt.Errorf("SMTP_HOST must be set when EMAIL_ENABLED is true")
	}
	if _, err := time.Parse("15:04:05", c.WorkdayStart); err != nil {
		return fmt.Errorf("WORKDAY_START must be HH:MM:SS")
	}
	if _, err := time.Parse("15:04:05", c.OvertimeStart); err != nil {
		return fmt.Errorf("OVERTIME_START must be HH:MM:SS")
	}
	if c.OvertimeMonthlyHours <= 0 {
		return fmt.Errorf("OVERTIME_MONTHLY_HOURS must be positive")
	}
	if c.OvertimeMultiplier < 1 {
		return fmt.Errorf("OVERTIME_MULTIPLIER must be at least 1")
	}
	if c.PaymentDay < 1 || c.PaymentDay > 28 {
		return fmt.Errorf("PAYMENT_DAY must be between 1 and 28")
	}
	if c.RetentionDays < 0 || c.AuditRetentionDays < 0 {
		return fmt.Errorf("RETENTION_DAYS and AUDIT_RETENTION_DAYS must not be negative")
	}
	return nil
}
