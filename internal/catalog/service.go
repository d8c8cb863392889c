// Package catalog manages ingredients, packaging and products.
package catalog

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/vistalabs/vista/internal/domain"
	"github.com/vistalabs/vista/internal/event"
	"github.com/vistalabs/vista/internal/logger"
	"github.com/vistalabs/vista/internal/repository"
	"github.com/vistalabs/vista/internal/units"
)

// Publisher delivers events without blocking the caller
type Publisher interface {
	PublishWithRetry(ctx context.Context, evt event.Event)
}

// Service defines catalog operations
type Service interface {
	ListIngredients(ctx context.Context) ([]domain.Ingredient, error)
	GetIngredient(ctx context.Context, id string) (*domain.Ingredient, error)
	CreateIngredient(ctx context.Context, ing domain.Ingredient) (*domain.Ingredient, error)
	UpdateIngredient(ctx context.Context, ing domain.Ingredient) (*domain.Ingredient, error)
	DeleteIngredient(ctx context.Context, id string) error
	RestockIngredient(ctx context.Context, id string, quantity float64, inDisplayUnit bool) (*domain.Ingredient, error)

	ListPackaging(ctx context.Context) ([]domain.Packaging, error)
	GetPackaging(ctx context.Context, id string) (*domain.Packaging, error)
	CreatePackaging(ctx context.Context, pkg domain.Packaging) (*domain.Packaging, error)
	UpdatePackaging(ctx context.Context, pkg domain.Packaging) (*domain.Packaging, error)
	DeletePackaging(ctx context.Context, id string) error
	RestockPackaging(ctx context.Context, id string, pieces int) (*domain.Packaging, error)

	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	CreateProduct(ctx context.Context, p domain.Product) (*domain.Product, error)
	UpdateProduct(ctx context.Context, p domain.Product) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

type service struct {
	repo      repository.Catalog
	publisher Publisher
}

// NewService creates a new catalog service. publisher may be nil.
func NewService(repo repository.Catalog, publisher Publisher) Service {
	return &service{repo: repo, publisher: publisher}
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, msg)
}

func finiteNonNegative(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

func newID(id string) string {
	if id == "" {
		return uuid.New().String()
	}
	return id
}

// ==================== Ingredients ====================

func validateIngredient(ing domain.Ingredient) error {
	switch {
	case ing.Name == "":
		return invalid(ErrMsgNameRequired)
	case !ing.DisplayUnit.Valid():
		return invalid(ErrMsgInvalidUnit)
	case !finiteNonNegative(ing.Stock):
		return invalid(ErrMsgNegativeStock)
	case !finiteNonNegative(ing.CostPerBaseUnit):
		return invalid(ErrMsgNegativeCost)
	}
	return nil
}

func (s *service) ListIngredients(ctx context.Context) ([]domain.Ingredient, error) {
	return s.repo.ListIngredients(ctx)
}

func (s *service) GetIngredient(ctx context.Context, id string) (*domain.Ingredient, error) {
	return s.repo.GetIngredient(ctx, id)
}

func (s *service) CreateIngredient(ctx context.Context, ing domain.Ingredient) (*domain.Ingredient, error) {
	if err := validateIngredient(ing); err != nil {
		return nil, err
	}
	ing.ID = newID(ing.ID)
	if err := s.repo.CreateIngredient(ctx, ing); err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info(LogMsgCreated, "kind", "ingredient", "id", ing.ID)
	return s.repo.GetIngredient(ctx, ing.ID)
}

func (s *service) UpdateIngredient(ctx context.Context, ing domain.Ingredient) (*domain.Ingredient, error) {
	if err := validateIngredient(ing); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateIngredient(ctx, ing); err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info(LogMsgUpdated, "kind", "ingredient", "id", ing.ID)
	return s.repo.GetIngredient(ctx, ing.ID)
}

func (s *service) DeleteIngredient(ctx context.Context, id string) error {
	if err := s.repo.DeleteIngredient(ctx, id); err != nil {
		return err
	}
	logger.FromContext(ctx).Info(LogMsgDeleted, "kind", "ingredient", "id", id)
	return nil
}

// RestockIngredient adds stock. With inDisplayUnit the quantity is in kg or l
// for bulk ingredients and is converted to base units first.
func (s *service) RestockIngredient(ctx context.Context, id string, quantity float64, inDisplayUnit bool) (*domain.Ingredient, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgRestockCalled, "kind", domain.LineIngredient, "id", id, "quantity", quantity, "display_unit", inDisplayUnit)
	if !finiteNonNegative(quantity) || quantity == 0 {
		return nil, invalid(ErrMsgRestockQuantity)
	}

	ing, err := s.repo.GetIngredient(ctx, id)
	if err != nil {
		return nil, err
	}
	added := quantity
	if inDisplayUnit {
		added = units.ToBaseQuantity(quantity, ing.DisplayUnit.IsBulk())
	}

	updated, err := s.repo.AdjustIngredientStock(ctx, id, added)
	if err != nil {
		return nil, err
	}
	log.Info(LogMsgRestockApplied, "kind", domain.LineIngredient, "id", id, "added", added, "stock", updated.Stock)
	s.publish(ctx, newRestockedEvent(domain.LineIngredient, updated.ID, updated.Name, added, updated.Stock))
	return updated, nil
}

// ==================== Packaging ====================

func validatePackaging(pkg domain.Packaging) error {
	switch {
	case pkg.Name == "":
		return invalid(ErrMsgNameRequired)
	case !finiteNonNegative(pkg.CapacityMl) || pkg.CapacityMl == 0:
		return invalid(ErrMsgInvalidCapacity)
	case pkg.Stock < 0:
		return invalid(ErrMsgNegativeStock)
	case !finiteNonNegative(pkg.CostPerPiece):
		return invalid(ErrMsgNegativeCost)
	case pkg.MinStock != nil && *pkg.MinStock < 0:
		return invalid(ErrMsgNegativeMinStock)
	}
	return nil
}

func (s *service) ListPackaging(ctx context.Context) ([]domain.Packaging, error) {
	return s.repo.ListPackaging(ctx)
}

func (s *service) GetPackaging(ctx context.Context, id string) (*domain.Packaging, error) {
	return s.repo.GetPackaging(ctx, id)
}

func (s *service) CreatePackaging(ctx context.Context, pkg domain.Packaging) (*domain.Packaging, error) {
	if err := validatePackaging(pkg); err != nil {
		return nil, err
	}
	pkg.ID = newID(pkg.ID)
	if err := s.repo.CreatePackaging(ctx, pkg); err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info(LogMsgCreated, "kind", "packaging", "id", pkg.ID)
	return s.repo.GetPackaging(ctx, pkg.ID)
}

func (s *service) UpdatePackaging(ctx context.Context, pkg domain.Packaging) (*domain.Packaging, error) {
	if err := validatePackaging(pkg); err != nil {
		return nil, err
	}
	if err := s.repo.UpdatePackaging(ctx, pkg); err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info(LogMsgUpdated, "kind", "packaging", "id", pkg.ID)
	return s.repo.GetPackaging(ctx, pkg.ID)
}

func (s *service) DeletePackaging(ctx context.Context, id string) error {
	if err := s.repo.DeletePackaging(ctx, id); err != nil {
		return err
	}
	logger.FromContext(ctx).Info(LogMsgDeleted, "kind", "packaging", "id", id)
	return nil
}

func (s *service) RestockPackaging(ctx context.Context, id string, pieces int) (*domain.Packaging, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgRestockCalled, "kind", domain.LinePackaging, "id", id, "pieces", pieces)
	if pieces <= 0 {
		return nil, invalid(ErrMsgRestockQuantity)
	}

	updated, err := s.repo.AdjustPackagingStock(ctx, id, pieces)
	if err != nil {
		return nil, err
	}
	log.Info(LogMsgRestockApplied, "kind", domain.LinePackaging, "id", id, "added", pieces, "stock", updated.Stock)
	s.publish(ctx, newRestockedEvent(domain.LinePackaging, updated.ID, updated.Name, float64(pieces), float64(updated.Stock)))
	return updated, nil
}

// ==================== Products ====================

// validateProduct checks field ranges and that every reference resolves.
// Formulas may list the same ingredient more than once.
func (s *service) validateProduct(ctx context.Context, p domain.Product) error {
	switch {
	case p.Name == "":
		return invalid(ErrMsgNameRequired)
	case p.PackagingID == "":
		return invalid(ErrMsgPackagingRequired)
	case p.Stock < 0:
		return invalid(ErrMsgNegativeStock)
	case !finiteNonNegative(p.SalePrice):
		return invalid(ErrMsgNegativePrice)
	}
	for _, item := range p.Formula {
		if !finiteNonNegative(item.AmountPerUnitVolume) {
			return invalid(ErrMsgInvalidAmount)
		}
	}

	if _, err := s.repo.GetPackaging(ctx, p.PackagingID); err != nil {
		return err
	}
	for _, id := range p.IngredientIDs() {
		if _, err := s.repo.GetIngredient(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (s *service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.repo.ListProducts(ctx)
}

func (s *service) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetProduct(ctx, id)
}

func (s *service) CreateProduct(ctx context.Context, p domain.Product) (*domain.Product, error) {
	if err := s.validateProduct(ctx, p); err != nil {
		return nil, err
	}
	p.ID = newID(p.ID)
	if err := s.repo.CreateProduct(ctx, p); err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info(LogMsgCreated, "kind", "product", "id", p.ID)
	return s.repo.GetProduct(ctx, p.ID)
}

func (s *service) UpdateProduct(ctx context.Context, p domain.Product) (*domain.Product, error) {
	if err := s.validateProduct(ctx, p); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateProduct(ctx, p); err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info(LogMsgUpdated, "kind", "product", "id", p.ID)
	return s.repo.GetProduct(ctx, p.ID)
}

func (s *service) DeleteProduct(ctx context.Context, id string) error {
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return err
	}
	logger.FromContext(ctx).Info(LogMsgDeleted, "kind", "product", "id", id)
	return nil
}

// ==================== Events ====================

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.publisher != nil {
		s.publisher.PublishWithRetry(ctx, evt)
	}
}

func newRestockedEvent(kind domain.LineKind, id, name string, added, newStock float64) event.Event {
	return event.Event{
		Version: event.EventSchemaVersion,
		Type:    event.StockRestocked,
		Payload: domain.StockRestockedPayload{
			Kind:       kind,
			ResourceID: id,
			Name:       name,
			Added:      added,
			NewStock:   newStock,
			Timestamp:  time.Now().Unix(),
		},
		Metadata: map[string]interface{}{
			event.MetadataKeySource: eventSource,
		},
	}
}
