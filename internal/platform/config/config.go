package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Sync lock drivers.
const (
	SyncLockDriverMemory   = "memory"
	SyncLockDriverRedis    = "redis"
	SyncLockDriverPostgres = "postgres"
)

const defaultCommerceSettingsTable = "a2_ec_settings"

// Config holds application configuration.
type Config struct {
	DatabaseURL           string
	Port                  string
	IsProduction          bool
	EnableDBCheck         bool
	JWTSecret             string
	MigrationsPath        string
	RedisURL              string
	SyncLockDriver        string
	SyncLockTTL           time.Duration
	CommerceSettingsTable string
	RateLimit             string
	CORSAllowedOrigins    []string
	PosthogAPIKey         string
	SeedDefaultCurrency   bool
	CurrencySettingsFile  string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", true)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("SYNC_LOCK_DRIVER", SyncLockDriverMemory)
	viper.SetDefault("SYNC_LOCK_TTL", "30s")
	viper.SetDefault("COMMERCE_SETTINGS_TABLE", defaultCommerceSettingsTable)
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("SEED_DEFAULT_CURRENCY", true)
	viper.SetDefault("CURRENCY_SETTINGS_FILE", "configs/multicurrency.yaml")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	lockTTLStr := viper.GetString("SYNC_LOCK_TTL")
	lockTTL, err := time.ParseDuration(lockTTLStr)
	if err != nil || lockTTL <= 0 {
		lockTTL = 30 * time.Second
		log.Printf("Warning: Invalid value for SYNC_LOCK_TTL ('%s'). Defaulting to %s.\n", lockTTLStr, lockTTL.String())
	}

	driver := strings.ToLower(strings.TrimSpace(viper.GetString("SYNC_LOCK_DRIVER")))
	switch driver {
	case SyncLockDriverMemory, SyncLockDriverPostgres:
	case SyncLockDriverRedis:
		if viper.GetString("REDIS_URL") == "" {
			return nil, errors.New("SYNC_LOCK_DRIVER is redis but REDIS_URL is not set")
		}
	default:
		return nil, fmt.Errorf("unknown SYNC_LOCK_DRIVER %q (want %s, %s or %s)",
			driver, SyncLockDriverMemory, SyncLockDriverRedis, SyncLockDriverPostgres)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")
	cfg.RedisURL = viper.GetString("REDIS_URL")
	cfg.SyncLockDriver = driver
	cfg.SyncLockTTL = lockTTL
	cfg.CommerceSettingsTable = viper.GetString("COMMERCE_SETTINGS_TABLE")
	if cfg.CommerceSettingsTable == "" {
		cfg.CommerceSettingsTable = defaultCommerceSettingsTable
	}
	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))
	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")
	cfg.SeedDefaultCurrency = viper.GetBool("SEED_DEFAULT_CURRENCY")
	cfg.CurrencySettingsFile = viper.GetString("CURRENCY_SETTINGS_FILE")

	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
