package worker

import "time"

// Log messages
const (
	LogMsgWorkerJobFailed  = "Worker job failed"
	LogMsgWorkerJobTimeout = "Worker job exceeded its deadline"
	LogMsgWorkerPoolClosed = "Job rejected, worker pool stopped"
)

// Defaults
const (
	DefaultWorkers    = 2
	DefaultQueueSize  = 16
	DefaultJobTimeout = 2 * time.Minute
)
