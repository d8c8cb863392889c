package production

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/vistalabs/vista/internal/concurrency"
	"github.com/vistalabs/vista/internal/costing"
	"github.com/vistalabs/vista/internal/domain"
	"github.com/vistalabs/vista/internal/event"
	"github.com/vistalabs/vista/internal/logger"
	"github.com/vistalabs/vista/internal/metrics"
	"github.com/vistalabs/vista/internal/repository"
)

// ExecuteRequest is a confirmed production run.
type ExecuteRequest struct {
	ProductID        string  `json:"product_id"`
	UnitsToProduce   int     `json:"units_to_produce"`
	BatchVolumeUnits float64 `json:"batch_volume_units"`
	PreviewFeasible  bool    `json:"preview_feasible"`
}

// Publisher delivers events without blocking the caller
type Publisher interface {
	PublishWithRetry(ctx context.Context, evt event.Event)
}

// Service defines the interface for production operations
type Service interface {
	Simulate(ctx context.Context, productID string, quantity float64, mode domain.Mode) (*domain.SimulationResult, error)
	Execute(ctx context.Context, req ExecuteRequest) (*domain.ExecutionResult, error)
	UnitCost(ctx context.Context, productID string) (*costing.Breakdown, error)
	ListRuns(ctx context.Context, limit int) ([]domain.ProductionRun, error)
}

type service struct {
	repo        repository.Production
	publisher   Publisher
	lockManager *concurrency.LockManager
	defaultMode domain.Mode
	now         func() time.Time
}

// NewService creates a new production service. publisher may be nil.
func NewService(repo repository.Production, publisher Publisher, lockManager *concurrency.LockManager, defaultMode domain.Mode) Service {
	if !defaultMode.Valid() {
		defaultMode = domain.ModeUnits
	}
	return &service{
		repo:        repo,
		publisher:   publisher,
		lockManager: lockManager,
		defaultMode: defaultMode,
		now:         time.Now,
	}
}

// Simulate previews a run against the current stock. Domain failures are
// reported in the result; the error is only set for lookup and storage faults.
func (s *service) Simulate(ctx context.Context, productID string, quantity float64, mode domain.Mode) (*domain.SimulationResult, error) {
	log := logger.FromContext(ctx)
	if mode == "" {
		mode = s.defaultMode
	}
	log.Info(LogMsgSimulateCalled, "product_id", productID, "quantity", quantity, "mode", mode)

	snapshot, err := s.repo.GetProductionSnapshot(ctx, productID)
	if err != nil {
		return nil, wrapLookup(err)
	}
	logMissing(ctx, *snapshot)

	result := Simulate(*snapshot, quantity, mode)
	metrics.ProductionSimulations.WithLabelValues(strconv.FormatBool(result.Feasible)).Inc()
	return &result, nil
}

// Execute re-validates and commits a run. The snapshot is read inside the
// transaction under the production lock so concurrent runs never consume
// the same stock twice.
func (s *service) Execute(ctx context.Context, req ExecuteRequest) (*domain.ExecutionResult, error) {
	ctx = logger.WithAttrs(ctx, "product_id", req.ProductID)
	log := logger.FromContext(ctx)
	log.Info(LogMsgExecuteCalled, "units", req.UnitsToProduce, "batch", req.BatchVolumeUnits, "preview_feasible", req.PreviewFeasible)

	release := s.lockManager.Acquire(LockKeyProduction)
	defer release()

	start := s.now()
	result, lowPackaging, err := s.executeTx(ctx, req)
	if err != nil {
		metrics.ProductionRuns.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, err
	}
	if !result.Success {
		log.Info(LogMsgRunRejected, "kind", result.Failure.Kind, "message", result.Message)
		metrics.ProductionRuns.WithLabelValues(string(result.Failure.Kind)).Inc()
		return result, nil
	}

	metrics.ProductionRuns.WithLabelValues(metrics.OutcomeSuccess).Inc()
	metrics.ProductionRunDuration.Observe(s.now().Sub(start).Seconds())
	log.Info(LogMsgRunCommitted, "run_id", result.Run.ID, "units", result.Run.UnitsProduced)

	if s.publisher != nil {
		s.publisher.PublishWithRetry(ctx, NewProductionCompletedEvent(*result.Run, lowPackaging))
	}
	return result, nil
}

func (s *service) executeTx(ctx context.Context, req ExecuteRequest) (*domain.ExecutionResult, *domain.Packaging, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	snapshot, err := tx.GetProductionSnapshot(ctx, req.ProductID)
	if err != nil {
		return nil, nil, wrapLookup(err)
	}
	logMissing(ctx, *snapshot)

	result := Execute(ExecuteInput{
		Snapshot:         *snapshot,
		UnitsToProduce:   req.UnitsToProduce,
		BatchVolumeUnits: req.BatchVolumeUnits,
		PreviewFeasible:  req.PreviewFeasible,
	})
	if !result.Success {
		return &result, nil, nil
	}

	if err := tx.ApplyMutations(ctx, *result.Mutations); err != nil {
		return nil, nil, fmt.Errorf(ErrMsgApplyMutationsFailed, err)
	}

	run := domain.ProductionRun{
		ID:               uuid.New().String(),
		ProductID:        snapshot.Product.ID,
		ProductName:      snapshot.Product.Name,
		UnitsProduced:    req.UnitsToProduce,
		BatchVolumeUnits: req.BatchVolumeUnits,
		UnitCost:         costing.ComputeUnitCost(snapshot.Product, snapshot.Packaging, snapshot.Ingredients),
		Mutations:        *result.Mutations,
		CreatedAt:        s.now().UTC(),
	}
	if err := tx.InsertProductionRun(ctx, run); err != nil {
		return nil, nil, fmt.Errorf(ErrMsgRecordRunFailed, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}
	result.Run = &run

	var lowPackaging *domain.Packaging
	if after := result.Mutations.Apply(*snapshot); after.Packaging != nil && after.Packaging.BelowMinimum() {
		lowPackaging = after.Packaging
	}
	return &result, lowPackaging, nil
}

// UnitCost returns the unit cost breakdown of a product
func (s *service) UnitCost(ctx context.Context, productID string) (*costing.Breakdown, error) {
	logger.FromContext(ctx).Debug(LogMsgUnitCostCalled, "product_id", productID)

	snapshot, err := s.repo.GetProductionSnapshot(ctx, productID)
	if err != nil {
		return nil, wrapLookup(err)
	}
	b := costing.ComputeUnitCostDetail(snapshot.Product, snapshot.Packaging, snapshot.Ingredients)
	return &b, nil
}

// ListRuns returns the most recent runs, newest first
func (s *service) ListRuns(ctx context.Context, limit int) ([]domain.ProductionRun, error) {
	logger.FromContext(ctx).Debug(LogMsgListRunsCalled, "limit", limit)
	if limit <= 0 {
		limit = DefaultRunListLimit
	}
	runs, err := s.repo.ListProductionRuns(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListRunsFailed, err)
	}
	return runs, nil
}

// wrapLookup keeps not-found errors matchable and wraps everything else
func wrapLookup(err error) error {
	if errors.Is(err, domain.ErrProductNotFound) {
		return err
	}
	return fmt.Errorf(ErrMsgGetSnapshotFailed, err)
}

func logMissing(ctx context.Context, s domain.ProductionSnapshot) {
	for _, id := range s.Product.IngredientIDs() {
		if _, ok := s.Ingredients[id]; !ok {
			logger.FromContext(ctx).Warn(LogMsgMissingReference, "product_id", s.Product.ID, "ingredient_id", id)
		}
	}
}
