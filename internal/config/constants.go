package config

import "time"

// Store drivers
const (
	StoreDriverMemory   = "memory"
	StoreDriverSQLite   = "sqlite"
	StoreDriverPostgres = "postgres"
)

// Defaults
const (
	DefaultPort        = "8080"
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
	DefaultLogDir      = "logs"
	DefaultServiceName = "vista"
	DefaultVersion     = "dev"
	DefaultEnvironment = "dev"

	DefaultSQLitePath = "data/vista.db"

	DefaultDBMaxConns        = 10
	DefaultDBMaxConnIdleTime = 30 * time.Minute
	DefaultDBMaxConnLifetime = time.Hour

	DefaultIdempotencyCacheSize = 1024
	DefaultIdempotencyTTL       = 10 * time.Minute

	DefaultEventMaxRetries     = 5
	DefaultEventRetryDelay     = 2 * time.Second
	DefaultEventDeadLetterPath = "logs/event_deadletter.jsonl"

	DefaultBackupRegion   = "us-east-1"
	DefaultBackupInterval = 6 * time.Hour
)
