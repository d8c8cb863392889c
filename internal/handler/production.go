package handler

import (
	"context"
	"net/http"

	"github.com/vistalabs/vista/internal/domain"
	"github.com/vistalabs/vista/internal/production"
)

// SimulateRequest previews a production run
type SimulateRequest struct {
	ProductID string  `json:"product_id" validate:"required"`
	Quantity  float64 `json:"quantity"`
	Mode      string  `json:"mode,omitempty" validate:"mode"`
}

// ExecuteRequest confirms a production run. UnitsToProduce and
// BatchVolumeUnits are the figures the preview showed.
type ExecuteRequest struct {
	ProductID        string  `json:"product_id" validate:"required"`
	UnitsToProduce   int     `json:"units_to_produce" validate:"gte=0"`
	BatchVolumeUnits float64 `json:"batch_volume_units" validate:"gte=0"`
	PreviewFeasible  bool    `json:"preview_feasible"`
}

// ProductionHandlers serves the production routes
type ProductionHandlers struct {
	svc production.Service
}

// NewProductionHandlers creates production handlers
func NewProductionHandlers(svc production.Service) *ProductionHandlers {
	return &ProductionHandlers{svc: svc}
}

// HandleSimulate previews a run without touching stock
// @Summary Simulate production
// @Description Computes requirements and feasibility. Domain failures are reported in the result body.
// @Tags production
// @Accept json
// @Produce json
// @Param request body SimulateRequest true "Simulation input"
// @Success 200 {object} domain.SimulationResult
// @Failure 400 {object} ValidationErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/production/simulate [post]
func (h *ProductionHandlers) HandleSimulate(w http.ResponseWriter, r *http.Request) {
	var req SimulateRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Simulate"); err != nil {
		return
	}
	result, err := h.svc.Simulate(r.Context(), req.ProductID, req.Quantity, domain.Mode(req.Mode))
	if err != nil {
		respondServiceError(w, r, "Simulate", err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// HandleExecute commits a run. A rejected run returns 409 with the result.
// @Summary Execute production
// @Description Re-validates against current stock and commits all mutations atomically. Honours Idempotency-Key.
// @Tags production
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Replay key for retried confirms"
// @Param request body ExecuteRequest true "Confirmed run"
// @Success 200 {object} domain.ExecutionResult
// @Failure 400 {object} ValidationErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} domain.ExecutionResult
// @Security ApiKeyAuth
// @Router /api/v1/production/execute [post]
func (h *ProductionHandlers) HandleExecute(w http.ResponseWriter, r *http.Request) {
	var req ExecuteRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Execute"); err != nil {
		return
	}

	// The commit must not be abandoned halfway because the client hung up
	ctx := context.WithoutCancel(r.Context())
	result, err := h.svc.Execute(ctx, production.ExecuteRequest{
		ProductID:        req.ProductID,
		UnitsToProduce:   req.UnitsToProduce,
		BatchVolumeUnits: req.BatchVolumeUnits,
		PreviewFeasible:  req.PreviewFeasible,
	})
	if err != nil {
		respondServiceError(w, r, "Execute", err)
		return
	}

	status := http.StatusOK
	if !result.Success {
		status = http.StatusConflict
	}
	respondJSON(w, status, result)
}

// HandleListRuns returns recent runs, newest first
// @Summary Production history
// @Tags production
// @Produce json
// @Param limit query int false "Maximum runs to return"
// @Success 200 {object} ListResponse[domain.ProductionRun]
// @Failure 400 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/production/runs [get]
func (h *ProductionHandlers) HandleListRuns(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(w, r)
	if !ok {
		return
	}
	runs, err := h.svc.ListRuns(r.Context(), limit)
	if err != nil {
		respondServiceError(w, r, "List runs", err)
		return
	}
	respondJSON(w, http.StatusOK, newList(runs))
}

// HandleUnitCost returns the unit cost breakdown of a product
// @Summary Unit cost
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} costing.Breakdown
// @Failure 404 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/products/{id}/cost [get]
func (h *ProductionHandlers) HandleUnitCost(w http.ResponseWriter, r *http.Request) {
	breakdown, err := h.svc.UnitCost(r.Context(), pathID(r))
	if err != nil {
		respondServiceError(w, r, "Unit cost", err)
		return
	}
	respondJSON(w, http.StatusOK, breakdown)
}
