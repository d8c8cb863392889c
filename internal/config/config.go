package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/vistalabs/vista/internal/domain"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	LogDir      string
	ServiceName string
	Version     string
	Environment string
	APIKey      string // API key for authentication

	// Storage
	StoreDriver string
	SQLitePath  string

	// Database (STORE_DRIVER=postgres)
	DBUser            string
	DBPassword        string
	DBHost            string
	DBPort            string
	DBName            string
	DBMaxConns        int
	DBMaxConnIdleTime time.Duration
	DBMaxConnLifetime time.Duration

	// Production
	DefaultProductionMode domain.Mode

	// Catalog seed file applied on startup (disabled when empty)
	SeedPath string

	// Idempotent execute
	IdempotencyCacheSize int
	IdempotencyTTL       time.Duration

	// Event system
	EventMaxRetries     int
	EventRetryDelay     time.Duration
	EventDeadLetterPath string
	// Live stock event stream at /api/v1/events
	EventStreamEnabled bool

	// Snapshot backups (disabled when the bucket is empty)
	BackupS3Bucket    string
	BackupS3Region    string
	BackupS3Endpoint  string
	BackupS3PathStyle bool
	BackupInterval    time.Duration
	// Optional static credentials; the default AWS chain is used when empty
	BackupS3AccessKeyID     string
	BackupS3SecretAccessKey string

	// Low-stock alerts (disabled when token or channel is empty)
	DiscordToken          string
	DiscordAlertChannelID string

	// Security
	TrustedProxies []string
}

// Load loads the configuration from environment variables and validates it
func Load() (*Config, error) {
	cfg, err := LoadUnvalidated()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadUnvalidated reads the environment without requiring server-only values
// such as API_KEY. Used by the devtool commands.
func LoadUnvalidated() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    getEnv("LOG_LEVEL", DefaultLogLevel),
		LogFormat:   getEnv("LOG_FORMAT", DefaultLogFormat),
		LogDir:      getEnv("LOG_DIR", DefaultLogDir),
		ServiceName: getEnv("SERVICE_NAME", DefaultServiceName),
		Version:     getEnv("VERSION", DefaultVersion),
		Environment: getEnv("ENVIRONMENT", DefaultEnvironment),
		APIKey:      getEnv("API_KEY", ""),

		StoreDriver: strings.ToLower(getEnv("STORE_DRIVER", StoreDriverMemory)),
		SQLitePath:  getEnv("SQLITE_PATH", DefaultSQLitePath),

		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", "postgres"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBName:            getEnv("DB_NAME", "vista"),
		DBMaxConns:        getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),
		DBMaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", DefaultDBMaxConnIdleTime),
		DBMaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", DefaultDBMaxConnLifetime),

		DefaultProductionMode: domain.Mode(getEnv("DEFAULT_PRODUCTION_MODE", string(domain.ModeUnits))),
		SeedPath:              getEnv("SEED_PATH", ""),

		IdempotencyCacheSize: getEnvAsInt("IDEMPOTENCY_CACHE_SIZE", DefaultIdempotencyCacheSize),
		IdempotencyTTL:       getEnvAsDuration("IDEMPOTENCY_TTL", DefaultIdempotencyTTL),

		EventMaxRetries:     getEnvAsInt("EVENT_MAX_RETRIES", DefaultEventMaxRetries),
		EventRetryDelay:     getEnvAsDuration("EVENT_RETRY_DELAY", DefaultEventRetryDelay),
		EventDeadLetterPath: getEnv("EVENT_DEADLETTER_PATH", DefaultEventDeadLetterPath),
		EventStreamEnabled:  getEnvAsBool("EVENT_STREAM_ENABLED", true),

		BackupS3Bucket:    getEnv("BACKUP_S3_BUCKET", ""),
		BackupS3Region:    getEnv("BACKUP_S3_REGION", DefaultBackupRegion),
		BackupS3Endpoint:  getEnv("BACKUP_S3_ENDPOINT", ""),
		BackupS3PathStyle: getEnvAsBool("BACKUP_S3_PATH_STYLE", false),
		BackupInterval:    getEnvAsDuration("BACKUP_INTERVAL", DefaultBackupInterval),

		BackupS3AccessKeyID:     getEnv("BACKUP_S3_ACCESS_KEY_ID", ""),
		BackupS3SecretAccessKey: getEnv("BACKUP_S3_SECRET_ACCESS_KEY", ""),

		DiscordToken:          getEnv("DISCORD_TOKEN", ""),
		DiscordAlertChannelID: getEnv("DISCORD_ALERT_CHANNEL_ID", ""),

		TrustedProxies: splitList(getEnv("TRUSTED_PROXIES", "")),
	}

	portStr := getEnv("PORT", DefaultPort)
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port
	return cfg, nil
}

// Validate checks values that have no sensible fallback
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("API_KEY environment variable must be set for security")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT value: %d", c.Port)
	}
	switch c.StoreDriver {
	case StoreDriverMemory, StoreDriverSQLite, StoreDriverPostgres:
	default:
		return fmt.Errorf("invalid STORE_DRIVER %q: expected one of memory, sqlite, postgres", c.StoreDriver)
	}
	if !c.DefaultProductionMode.Valid() {
		return fmt.Errorf("invalid DEFAULT_PRODUCTION_MODE %q: %w", c.DefaultProductionMode, domain.ErrInvalidMode)
	}
	if c.IdempotencyCacheSize <= 0 {
		return fmt.Errorf("IDEMPOTENCY_CACHE_SIZE must be positive, got %d", c.IdempotencyCacheSize)
	}
	return nil
}

// BackupEnabled reports whether snapshot backups are configured
func (c *Config) BackupEnabled() bool {
	return c.BackupS3Bucket != ""
}

// AlertsEnabled reports whether low-stock Discord alerts are configured
func (c *Config) AlertsEnabled() bool {
	return c.DiscordToken != "" && c.DiscordAlertChannelID != ""
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt parses an integer environment variable, falling back on error
func getEnvAsInt(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return defaultValue
	}
	return n
}

// getEnvAsDuration parses a duration environment variable ("30s", "5m"),
// falling back on error
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return defaultValue
	}
	return d
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return defaultValue
	}
	return b
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
