// Package backup exports store snapshots to object storage.
package backup

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/vistalabs/vista/internal/domain"
	"github.com/vistalabs/vista/internal/logger"
	"github.com/vistalabs/vista/internal/metrics"
	"github.com/vistalabs/vista/internal/snapshot"
)

// Exporter produces a full store snapshot
type Exporter interface {
	Snapshot(ctx context.Context) (domain.Snapshot, error)
}

// Uploader stores an encoded snapshot
type Uploader interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
}

// Result describes one completed backup
type Result struct {
	Key     string    `json:"key"`
	Bytes   int       `json:"bytes"`
	TakenAt time.Time `json:"taken_at"`
}

// Job exports, encodes and uploads a snapshot. It implements worker.Job and
// is safe to trigger manually while scheduled; runs never overlap.
type Job struct {
	store    Exporter
	uploader Uploader
	now      func() time.Time
	mu       sync.Mutex
}

// NewJob creates a backup job
func NewJob(store Exporter, uploader Uploader) *Job {
	return &Job{store: store, uploader: uploader, now: time.Now}
}

// Process implements worker.Job
func (j *Job) Process(ctx context.Context) error {
	_, err := j.Run(ctx)
	return err
}

// Run performs one backup and returns where it was written
func (j *Job) Run(ctx context.Context) (*Result, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	log := logger.FromContext(ctx)
	log.Info(LogMsgBackupStarted)

	res, err := j.run(ctx)
	if err != nil {
		metrics.Backups.WithLabelValues(metrics.OutcomeError).Inc()
		log.Error(LogMsgBackupFailed, "error", err)
		return nil, err
	}
	metrics.Backups.WithLabelValues(metrics.OutcomeSuccess).Inc()
	log.Info(LogMsgBackupCompleted, "key", res.Key, "bytes", res.Bytes)
	return res, nil
}

func (j *Job) run(ctx context.Context) (*Result, error) {
	snap, err := j.store.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgExportFailed, err)
	}
	if snap.TakenAt.IsZero() {
		snap.TakenAt = j.now().UTC()
	}

	data, err := snapshot.Encode(snap)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgEncodeFailed, err)
	}

	key := ObjectKey(snap.TakenAt)
	if err := j.uploader.Upload(ctx, key, data, snapshot.ContentType); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgUploadFailed, err)
	}
	return &Result{Key: key, Bytes: len(data), TakenAt: snap.TakenAt}, nil
}

// ObjectKey returns the object key for a snapshot taken at t
func ObjectKey(t time.Time) string {
	return KeyPrefix + t.UTC().Format(KeyTimeFormat) + KeyExtension
}
