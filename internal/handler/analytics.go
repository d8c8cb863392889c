package handler

import (
	"context"
	"net/http"

	"github.com/vistalabs/vista/internal/analytics"
	"github.com/vistalabs/vista/internal/domain"
)

// SnapshotExporter exports the whole store
type SnapshotExporter interface {
	Snapshot(ctx context.Context) (domain.Snapshot, error)
}

// HandleAnalytics builds the financial report from a store snapshot
// @Summary Financial report
// @Description Unit costs, margins, max producible units and inventory value
// @Tags analytics
// @Produce json
// @Success 200 {object} analytics.Report
// @Security ApiKeyAuth
// @Router /api/v1/analytics [get]
func HandleAnalytics(store SnapshotExporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := store.Snapshot(r.Context())
		if err != nil {
			respondServiceError(w, r, "Analytics", err)
			return
		}
		respondJSON(w, http.StatusOK, analytics.Build(snap))
	}
}
