package handler

import (
	"context"
	"net/http"

	"github.com/vistalabs/vista/internal/backup"
)

// BackupRunner runs one snapshot backup
type BackupRunner interface {
	Run(ctx context.Context) (*backup.Result, error)
}

// HandleTriggerBackup runs a snapshot backup immediately. runner is nil when
// backups are not configured.
// @Summary Trigger snapshot backup
// @Tags admin
// @Produce json
// @Success 200 {object} backup.Result
// @Failure 503 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/admin/backup [post]
func HandleTriggerBackup(runner BackupRunner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if runner == nil {
			respondError(w, http.StatusServiceUnavailable, ErrMsgBackupsDisabled)
			return
		}
		res, err := runner.Run(context.WithoutCancel(r.Context()))
		if err != nil {
			respondServiceError(w, r, "Backup", err)
			return
		}
		respondJSON(w, http.StatusOK, res)
	}
}
