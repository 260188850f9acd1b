package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"bankcalc/domain"
)

// Config holds the process-wide settings. Values come from the environment,
// optionally seeded from a .env file.
type Config struct {
	HTTPAddr     string
	RedisAddr    string // empty selects in-memory cache and ledger
	DatabaseURL  string // empty selects in-memory accounts and transfers
	AccountsFile string // JSON accounts loaded at startup
	LogLevel     logrus.Level
	CacheTTL     time.Duration
	ScheduleSpec string // cron spec for scheduled transfers

	RateLimitCapacity int
	RateLimitWindow   time.Duration

	Limits            domain.Limits
	MinDepositAmount  float64
	WithdrawalPenalty float64
	RequestTimeout    time.Duration
	ShutdownTimeout   time.Duration
}

// LoadConfig reads .env (when present) and the environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Debug(".env file not found, using environment only")
	}

	level, err := logrus.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	cfg := &Config{
		HTTPAddr:     getEnv("HTTP_ADDR", ":8080"),
		RedisAddr:    os.Getenv("REDIS_ADDR"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		AccountsFile: os.Getenv("ACCOUNTS_FILE"),
		LogLevel:     level,
		ScheduleSpec: getEnv("TRANSFER_SCHEDULE_SPEC", "*/15 * * * *"),
	}

	if cfg.CacheTTL, err = getDuration("CACHE_TTL", time.Hour); err != nil {
		return nil, err
	}
	if cfg.RateLimitWindow, err = getDuration("RATE_LIMIT_WINDOW", time.Minute); err != nil {
		return nil, err
	}
	if cfg.RequestTimeout, err = getDuration("REQUEST_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = getDuration("SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.RateLimitCapacity, err = getInt("RATE_LIMIT_CAPACITY", 30); err != nil {
		return nil, err
	}
	if cfg.MinDepositAmount, err = getFloat("FD_MIN_AMOUNT", 1000); err != nil {
		return nil, err
	}
	if cfg.WithdrawalPenalty, err = getFloat("FD_WITHDRAWAL_PENALTY", 1.0); err != nil {
		return nil, err
	}

	if cfg.Limits.PerTransaction, err = getDecimal("LIMIT_PER_TRANSACTION", "50000"); err != nil {
		return nil, err
	}
	if cfg.Limits.Daily, err = getDecimal("LIMIT_DAILY", "100000"); err != nil {
		return nil, err
	}
	if cfg.Limits.Monthly, err = getDecimal("LIMIT_MONTHLY", "500000"); err != nil {
		return nil, err
	}

	return cfg, nil
}

// getEnv returns the variable or defaultValue when unset.
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func getInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

func getDecimal(key, def string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(getEnv(key, def))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", key, err)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%s: must not be negative", key)
	}
	return d, nil
}
