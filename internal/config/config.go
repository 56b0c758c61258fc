package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Ledger backends.
const (
	LedgerBackendPostgres = "postgres"
	LedgerBackendRedis    = "redis"
	LedgerBackendMemory   = "memory"
)

// Policies applied when the revocation ledger cannot answer.
const (
	UnknownPolicyAllow = "allow"
	UnknownPolicyDeny  = "deny"
)

// Policies for resources created before ownership tagging existed.
const (
	LegacyOwnerLocked = "locked"
	LegacyOwnerOpen   = "open"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App          AppConfig
	Postgres     PostgresConfig
	Redis        RedisConfig
	Logger       LoggerConfig
	Auth         AuthConfig
	Ledger       LedgerConfig
	Seed         SeedConfig
	Notification NotificationConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines authentication and authorization parameters.
type AuthConfig struct {
	JWTSecret             string
	AccessTokenTTLMinutes int
	BcryptCost            int
	// VerifySignatures switches the credential decoder from trust-on-decode
	// to HS256 verification against JWTSecret.
	VerifySignatures bool
	// RevocationUnknownPolicy decides mutate/delete requests when the ledger
	// cannot be read: "allow" (fail open) or "deny".
	RevocationUnknownPolicy string
	// LegacyOwnerPolicy governs untagged resources: "locked" or "open".
	LegacyOwnerPolicy string
}

// LedgerConfig selects the revocation ledger store.
type LedgerConfig struct {
	Backend string
}

// SeedConfig controls catalog seeding at start-up.
type SeedConfig struct {
	OnStart bool
}

// NotificationConfig holds stub notification endpoints.
type NotificationConfig struct {
	EmailFrom string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	maxConns := int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10))
	minConns := int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2))
	runMigrations := getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true)
	connMaxIdle := int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30))
	connMaxLife := int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300))

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "catalog-service"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       maxConns,
			MinConns:       minConns,
			RunMigrations:  runMigrations,
			ConnMaxIdleSec: connMaxIdle,
			ConnMaxLifeSec: connMaxLife,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:               getEnv("AUTH_JWT_SECRET", "dev-secret"),
			AccessTokenTTLMinutes:   getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 60),
			BcryptCost:              getEnvAsInt("AUTH_BCRYPT_COST", 12),
			VerifySignatures:        getEnvAsBool("AUTH_VERIFY_SIGNATURES", false),
			RevocationUnknownPolicy: strings.ToLower(getEnv("AUTH_REVOCATION_UNKNOWN_POLICY", UnknownPolicyAllow)),
			LegacyOwnerPolicy:       strings.ToLower(getEnv("AUTH_LEGACY_OWNER_POLICY", LegacyOwnerLocked)),
		},
		Ledger: LedgerConfig{
			Backend: strings.ToLower(getEnv("LEDGER_BACKEND", LedgerBackendPostgres)),
		},
		Seed: SeedConfig{
			OnStart: getEnvAsBool("SEED_ON_START", false),
		},
		Notification: NotificationConfig{
			EmailFrom: getEnv("NOTIFY_EMAIL_FROM", "noreply@example.com"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Ledger.Backend {
	case LedgerBackendPostgres, LedgerBackendRedis, LedgerBackendMemory:
	default:
		return fmt.Errorf("invalid LEDGER_BACKEND %q", c.Ledger.Backend)
	}
	switch c.Auth.RevocationUnknownPolicy {
	case UnknownPolicyAllow, UnknownPolicyDeny:
	default:
		return fmt.Errorf("invalid AUTH_REVOCATION_UNKNOWN_POLICY %q", c.Auth.RevocationUnknownPolicy)
	}
	switch c.Auth.LegacyOwnerPolicy {
	case LegacyOwnerLocked, LegacyOwnerOpen:
	default:
		return fmt.Errorf("invalid AUTH_LEGACY_OWNER_POLICY %q", c.Auth.LegacyOwnerPolicy)
	}
	return nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
