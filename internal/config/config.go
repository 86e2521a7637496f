package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/efreitasn/goodsexchange/internal/domain"
)

// Config holds all runtime configuration for the goods exchange.
type Config struct {
	Port            int
	LogLevel        string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	InitialBalance               int64 // cents
	DealLogCapacity              int
	AllowImplicitProductCreation bool
	ImplicitCategory             string
	UserName                     string
	BaseOwner                    string
	AdminPasswordHash            string // bcrypt; empty disables admin mode
	SeedFile                     string // optional YAML path
	StatsLocation                *time.Location
}

// Load reads configuration from environment variables, applies defaults,
// and validates values. It returns an error for any invalid value.
func Load() (*Config, error) {
	port, err := getInt("PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	logLevel := getStr("LOG_LEVEL", "info")
	if !isValidLogLevel(logLevel) {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %q, must be one of: debug, info, warn, error", logLevel)
	}

	readTimeout, err := getDuration("READ_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid READ_TIMEOUT: %w", err)
	}

	writeTimeout, err := getDuration("WRITE_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid WRITE_TIMEOUT: %w", err)
	}

	idleTimeout, err := getDuration("IDLE_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid IDLE_TIMEOUT: %w", err)
	}

	shutdownTimeout, err := getDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
	}

	initialBalance, err := getCents("INITIAL_BALANCE", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid INITIAL_BALANCE: %w", err)
	}
	if initialBalance < 0 {
		return nil, fmt.Errorf("invalid INITIAL_BALANCE: must not be negative")
	}

	dealLogCapacity, err := getInt("DEAL_LOG_CAPACITY", 5000)
	if err != nil {
		return nil, fmt.Errorf("invalid DEAL_LOG_CAPACITY: %w", err)
	}
	if dealLogCapacity <= 0 {
		return nil, fmt.Errorf("invalid DEAL_LOG_CAPACITY: must be greater than 0")
	}

	allowImplicit, err := getBool("ALLOW_IMPLICIT_PRODUCT_CREATION", false)
	if err != nil {
		return nil, fmt.Errorf("invalid ALLOW_IMPLICIT_PRODUCT_CREATION: %w", err)
	}

	statsTimezone := getStr("STATS_TIMEZONE", "Local")
	statsLocation, err := time.LoadLocation(statsTimezone)
	if err != nil {
		return nil, fmt.Errorf("invalid STATS_TIMEZONE: %w", err)
	}

	return &Config{
		Port:                         port,
		LogLevel:                     logLevel,
		ReadTimeout:                  readTimeout,
		WriteTimeout:                 writeTimeout,
		IdleTimeout:                  idleTimeout,
		ShutdownTimeout:              shutdownTimeout,
		InitialBalance:               initialBalance,
		DealLogCapacity:              dealLogCapacity,
		AllowImplicitProductCreation: allowImplicit,
		ImplicitCategory:             getStr("IMPLICIT_CATEGORY", "User listings"),
		UserName:                     getStr("USER_NAME", "current-user"),
		BaseOwner:                    getStr("BASE_OWNER", "NotAHamster"),
		AdminPasswordHash:            os.Getenv("ADMIN_PASSWORD_HASH"),
		SeedFile:                     os.Getenv("SEED_FILE"),
		StatsLocation:                statsLocation,
	}, nil
}

func getStr(key, defaultVal string) string {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v
}

func getInt(key string, defaultVal int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(v)
}

func getBool(key string, defaultVal bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	return strconv.ParseBool(v)
}

func getDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	return time.ParseDuration(v)
}

// getCents parses a decimal currency amount, rounded half up to cents.
func getCents(key string, defaultVal int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return 0, err
	}
	return domain.DecimalToCents(d)
}

func isValidLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}
