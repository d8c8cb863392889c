package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vistalabs/vista/internal/backup"
	"github.com/vistalabs/vista/internal/config"
	"github.com/vistalabs/vista/internal/scheduler"
	"github.com/vistalabs/vista/internal/worker"
)

// Workers bundles the background pool, its scheduler and the backup job.
// Backup is nil when backups are disabled.
type Workers struct {
	Pool      *worker.Pool
	Scheduler *scheduler.Scheduler
	Backup    *backup.Job
}

// InitializeWorkers starts the worker pool and, when BACKUP_S3_BUCKET is set,
// schedules snapshot backups every BACKUP_INTERVAL.
func InitializeWorkers(ctx context.Context, cfg *config.Config, store backup.Exporter) (*Workers, error) {
	var job *backup.Job
	if cfg.BackupEnabled() {
		uploader, err := backup.NewS3Uploader(ctx, backup.S3Config{
			Bucket:          cfg.BackupS3Bucket,
			Region:          cfg.BackupS3Region,
			Endpoint:        cfg.BackupS3Endpoint,
			PathStyle:       cfg.BackupS3PathStyle,
			AccessKeyID:     cfg.BackupS3AccessKeyID,
			SecretAccessKey: cfg.BackupS3SecretAccessKey,
		})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateS3Uploader, err)
		}
		job = backup.NewJob(store, uploader)
	}
	return startWorkers(cfg, job), nil
}

func startWorkers(cfg *config.Config, job *backup.Job) *Workers {
	pool := worker.NewPool(BackgroundWorkers, BackgroundQueueSize, BackupJobTimeout)
	pool.Start()
	sched := scheduler.New(pool)

	if job != nil && cfg.BackupInterval > 0 {
		sched.Schedule(BackupJobName, cfg.BackupInterval, job)
		slog.Info(LogMsgBackupsScheduled, "bucket", cfg.BackupS3Bucket, "interval", cfg.BackupInterval)
	} else {
		slog.Info(LogMsgBackupsDisabled)
	}

	return &Workers{Pool: pool, Scheduler: sched, Backup: job}
}

// Stop halts scheduling and waits for running jobs
func (w *Workers) Stop() {
	w.Scheduler.Stop()
	w.Pool.Stop()
}
