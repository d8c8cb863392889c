package bootstrap

import "time"

// =============================================================================
// File System Permissions
// =============================================================================

const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755

	// LogFilePermission is the permission for log files (read/write for owner, read for group/others)
	LogFilePermission = 0666
)

// =============================================================================
// Logger Configuration
// =============================================================================

const (
	// LogFileTimestampFormat is the timestamp format for log filenames (YYYY-MM-DD_HH-MM-SS)
	LogFileTimestampFormat = "2006-01-02_15-04-05"

	// LogFileNamePattern is the format string for log filenames
	LogFileNamePattern = "session_%s.log"

	// LogFileExtension is the file extension for log files
	LogFileExtension = ".log"

	// LogFileRetentionCount is the number of log files kept after cleanup
	LogFileRetentionCount = 9
)

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingVista       = "Starting Vista"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgFailedCreateLogsDir = "failed to create logs directory"
	LogMsgFailedOpenLogFile   = "failed to open log file"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file"
)

// =============================================================================
// Event System
// =============================================================================


const (
	LogMsgEventSystemInitialized         = "Event system initialized"
	LogMsgFailedCreateDeadLetterDir      = "failed to create dead-letter directory"
	LogMsgFailedCreateResilientPublisher = "failed to create resilient publisher"
)

// =============================================================================
// Store Selection
// =============================================================================

const (
	LogMsgStoreOpened           = "Store opened"
	LogMsgMigrationsApplied     = "Database migrations applied"
	ErrMsgFailedOpenStore       = "failed to open store"
	ErrMsgFailedConnectDatabase = "failed to connect to database"
	ErrMsgFailedApplyMigrations = "failed to apply migrations"
	ErrMsgUnknownStoreDriver    = "unknown store driver"
)

// =============================================================================
// Catalog Seed Messages
// =============================================================================

const (
	LogMsgApplyingSeed    = "Applying catalog seed..."
	LogMsgSeedSkipped     = "No SEED_PATH configured, seed skipped"
	ErrMsgFailedLoadSeed  = "failed to load catalog seed"
	ErrMsgFailedApplySeed = "failed to apply catalog seed"
)

// =============================================================================
// Event Handler Configuration
// =============================================================================

// Log messages for event handler registration
const (
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	LogMsgDiscordNotifierRegistered  = "Discord low-stock notifier registered"
	LogMsgDiscordNotifierDisabled    = "Discord alerts not configured, notifier disabled"
	ErrMsgFailedCreateNotifier       = "failed to create discord notifier"
)

// =============================================================================
// Background Workers
// =============================================================================

const (
	// BackgroundWorkers is the worker pool size for scheduled jobs
	BackgroundWorkers = 1

	// BackgroundQueueSize bounds queued jobs; a full queue skips a tick
	BackgroundQueueSize = 4

	// BackupJobTimeout bounds one export-and-upload cycle
	BackupJobTimeout = 5 * time.Minute

	// BackupJobName labels the scheduled backup in logs
	BackupJobName = "snapshot-backup"
)

const (
	LogMsgBackupsScheduled       = "Snapshot backups scheduled"
	LogMsgBackupsDisabled        = "BACKUP_S3_BUCKET not set, backups disabled"
	ErrMsgFailedCreateS3Uploader = "failed to create s3 uploader"
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShuttingDownServer         = "Shutting down server..."
	LogMsgShuttingDownWorkers        = "Stopping background workers..."
	LogMsgShuttingDownEventPublisher = "Shutting down event publisher..."
	LogMsgServerStopped              = "Server stopped"
	LogMsgServerForcedShutdown       = "Server forced to shutdown"
	LogMsgResilientPublisherFailed   = "Resilient publisher shutdown failed"
	LogMsgStoreCloseFailed           = "Store close failed"
)
