package backup

// Object layout
const (
	KeyPrefix     = "snapshots/"
	KeyExtension  = ".msgpack"
	KeyTimeFormat = "20060102T150405Z"
)

// Log messages
const (
	LogMsgBackupStarted   = "Snapshot backup started"
	LogMsgBackupCompleted = "Snapshot backup completed"
	LogMsgBackupFailed    = "Snapshot backup failed"
)

// Error messages
const (
	ErrMsgExportFailed = "failed to export store snapshot"
	ErrMsgEncodeFailed = "failed to encode store snapshot"
	ErrMsgUploadFailed = "failed to upload snapshot"
	ErrMsgBucketEmpty  = "backup bucket is required"
)
