package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"taccuino/internal/format"
	"taccuino/internal/log"
)

type Config struct {
	// Storage
	DataBackend    string
	SQLiteDBPath   string
	StoreNamespace string

	// Read cache in front of the backend
	CacheEnabled bool
	CacheSize    int
	CacheTTL     time.Duration

	// Presentation
	Locale          string
	DefaultCurrency string
	DatePattern     string

	// Optional YAML file with the initial category set
	CategorySeedFile string

	// Logging
	LogLevel  string
	LogFormat string
}

var validBackends = []string{"memory", "sqlite"}

func Load() *Config {
	return &Config{
		DataBackend:    getEnv("DATA_BACKEND", "sqlite"),
		SQLiteDBPath:   getEnv("SQLITE_DB_PATH", "./data/taccuino.db"),
		StoreNamespace: getEnv("STORE_NAMESPACE", "taccuino"),

		CacheEnabled: getEnvBool("CACHE_ENABLED", true),
		CacheSize:    getEnvInt("CACHE_SIZE", 256),
		CacheTTL:     getEnvDuration("CACHE_TTL", 5*time.Minute),

		Locale:          getEnv("LOCALE", format.DefaultLocale),
		DefaultCurrency: getEnv("DEFAULT_CURRENCY", format.DefaultCurrency),
		DatePattern:     getEnv("DATE_PATTERN", format.DefaultDatePattern),

		CategorySeedFile: getEnv("CATEGORY_SEED_FILE", ""),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	isValidBackend := false
	for _, backend := range validBackends {
		if c.DataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	if c.DataBackend == "sqlite" && strings.TrimSpace(c.SQLiteDBPath) == "" {
		errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
	}

	if strings.Contains(c.StoreNamespace, ":") {
		errors = append(errors, fmt.Sprintf("invalid store namespace '%s': must not contain ':'", c.StoreNamespace))
	}

	if c.CacheEnabled {
		if c.CacheSize < 1 {
			errors = append(errors, fmt.Sprintf("invalid cache size %d: must be at least 1", c.CacheSize))
		} else if c.CacheSize > 100000 {
			errors = append(errors, fmt.Sprintf("invalid cache size %d: must be at most 100000", c.CacheSize))
		}
		if c.CacheTTL < 0 {
			errors = append(errors, fmt.Sprintf("invalid cache TTL %v: must not be negative", c.CacheTTL))
		} else if c.CacheTTL > 24*time.Hour {
			errors = append(errors, fmt.Sprintf("invalid cache TTL %v: must be at most 24 hours", c.CacheTTL))
		}
	}

	if _, err := format.New(c.Locale); err != nil {
		errors = append(errors, fmt.Sprintf("invalid locale '%s'", c.Locale))
	} else if !format.HasLocaleTable(c.Locale) {
		errors = append(errors, fmt.Sprintf("unsupported locale '%s': no embedded locale table", c.Locale))
	}
	if _, err := format.ParseCurrency(c.DefaultCurrency); err != nil {
		errors = append(errors, fmt.Sprintf("invalid default currency '%s': must be an ISO 4217 code", c.DefaultCurrency))
	}
	if err := format.ValidatePattern(c.DatePattern); err != nil {
		errors = append(errors, fmt.Sprintf("invalid date pattern '%s': %v", c.DatePattern, err))
	}

	if c.CategorySeedFile != "" {
		if _, err := os.Stat(c.CategorySeedFile); os.IsNotExist(err) {
			errors = append(errors, fmt.Sprintf("category seed file does not exist: %s", c.CategorySeedFile))
		}
	}

	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be debug, info, warn or error", c.LogLevel))
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be 'text' or 'json'", c.LogFormat))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
