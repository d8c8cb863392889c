package database

import "time"

// Pool defaults applied when a PoolConfig field is zero
const (
	DefaultMinConnections  = 2
	DefaultMaxConnections  = 10
	DefaultConnectTimeout  = 10 * time.Second
	DefaultApplicationName = "vista"
)

// Error messages
const (
	ErrMsgFailedToParseConnString = "failed to parse connection string"
	ErrMsgFailedToCreatePool      = "failed to create connection pool"
	ErrMsgFailedToPingDatabase    = "failed to ping database"
)

// Log messages
const (
	LogMsgConnectedToDatabase = "Connected to PostgreSQL"
)
