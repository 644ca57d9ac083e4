package config

import (
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		DatabaseURL:          "postgres://localhost/hrpay",
		Environment:          "development",
		MaxBodyBytes:         1048576,
		RateLimitPerMinute:   60,
		WorkdayStart:         "09:00:00",
		OvertimeStart:        "18:00:00",
		OvertimeMonthlyHours: 209,
		OvertimeMultiplier:   1.5,
		PaymentDay:           25,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "missing database url", mutate: func(c *Config) { c.DatabaseURL = " " }, wantErr: true},
		{name: "production without secret", mutate: func(c *Config) { c.Environment = "production" }, wantErr: true},
		{name: "bad workday start", mutate: func(c *Config) { c.WorkdayStart = "9am" }, wantErr: true},
		{name: "bad overtime start", mutate: func(c *Config) { c.OvertimeStart = "18:00" }, wantErr: true},
		{name: "zero monthly hours", mutate: func(c *Config) { c.OvertimeMonthlyHours = 0 }, wantErr: true},
		{name: "multiplier below one", mutate: func(c *Config) { c.OvertimeMultiplier = 0.5 }, wantErr: true},
		{name: "payment day out of range", mutate: func(c *Config) { c.PaymentDay = 31 }, wantErr: true},
		{name: "email without host", mutate: func(c *Config) { c.EmailEnabled = true }, wantErr: true},
		{name: "negative retention", mutate: func(c *Config) { c.RetentionDays = -1 }, wantErr: true},
		{name: "negative audit retention", mutate: func(c *Config) { c.AuditRetentionDays = -30 }, wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr && err == nil {
				t.Fatal("expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example/db")
	t.Setenv("OVERTIME_MONTHLY_HOURS", "226")
	t.Setenv("JWT_TTL", "90m")
	t.Setenv("PAYMENT_DAY", "not-a-number")

	cfg := Load()
	if cfg.DatabaseURL != "postgres://example/db" {
		t.Fatalf("unexpected database url %q", cfg.DatabaseURL)
	}
	if cfg.OvertimeMonthlyHours != 226 {
		t.Fatalf("expected 226 monthly hours, got %v", cfg.OvertimeMonthlyHours)
	}
	if cfg.JWTTTL != 90*time.Minute {
		t.Fatalf("expected 90m ttl, got %v", cfg.JWTTTL)
	}
	if cfg.PaymentDay != 25 {
		t.Fatalf("expected fallback payment day 25, got %d", cfg.PaymentDay)
	}
	if cfg.RetentionDays != 90 || cfg.AuditRetentionDays != 0 {
		t.Fatalf("unexpected retention defaults %d/%d", cfg.RetentionDays, cfg.AuditRetentionDays)
	}
}

func TestLocationFallsBackToUTC(t *testing.T) {
	cfg := Config{Timezone: "Not/AZone"}
	if cfg.Location() != time.UTC {
		t.Fatal("expected UTC fallback")
	}
}
