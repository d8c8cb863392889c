// Package memory is an in-process implementation of repository.Store.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/vistalabs/vista/internal/domain"
	"github.com/vistalabs/vista/internal/repository"
)

// PersistFunc is called with the next state before it replaces the current
// one. Returning an error aborts the write.
type PersistFunc func(ctx context.Context, next domain.Snapshot) error

// Store keeps every entity in a domain.Snapshot. Writers are serialized by a
// single lock and work on a copy that is swapped in once complete.
type Store struct {
	writer sync.Mutex

	mu    sync.RWMutex
	state domain.Snapshot

	persist PersistFunc
	now     func() time.Time
}

// Option configures a Store
type Option func(*Store)

// WithPersister registers a hook run on every write before it becomes visible
func WithPersister(fn PersistFunc) Option {
	return func(s *Store) { s.persist = fn }
}

// WithInitialState seeds the store
func WithInitialState(state domain.Snapshot) Option {
	return func(s *Store) { s.state = state.Clone() }
}

// WithClock overrides the clock used for UpdatedAt stamps
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore creates an empty store
func NewStore(opts ...Option) *Store {
	s := &Store{state: domain.NewSnapshot(), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ repository.Store = (*Store)(nil)

// Ping always succeeds
func (s *Store) Ping(_ context.Context) error { return nil }

// Close is a no-op
func (s *Store) Close() error { return nil }

func (s *Store) read() domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// write applies fn to a copy of the state and publishes it
func (s *Store) write(ctx context.Context, fn func(next *domain.Snapshot) error) error {
	s.writer.Lock()
	defer s.writer.Unlock()

	next := s.read().Clone()
	if err := fn(&next); err != nil {
		return err
	}
	return s.publish(ctx, next)
}

// publish must be called with the writer lock held
func (s *Store) publish(ctx context.Context, next domain.Snapshot) error {
	if s.persist != nil {
		if err := s.persist(ctx, next); err != nil {
			return err
		}
	}
	s.mu.Lock()
	s.state = next
	s.mu.Unlock()
	return nil
}

// Snapshot exports a deep copy of the store
func (s *Store) Snapshot(_ context.Context) (domain.Snapshot, error) {
	c := s.read().Clone()
	c.TakenAt = s.now().UTC()
	return c, nil
}

// ==================== Ingredients ====================

func (s *Store) ListIngredients(_ context.Context) ([]domain.Ingredient, error) {
	state := s.read()
	out := make([]domain.Ingredient, 0, len(state.Ingredients))
	for _, ing := range state.Ingredients {
		out = append(out, ing)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name || (out[i].Name == out[j].Name && out[i].ID < out[j].ID) })
	return out, nil
}

func (s *Store) GetIngredient(_ context.Context, id string) (*domain.Ingredient, error) {
	ing, ok := s.read().Ingredients[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrIngredientNotFound, id)
	}
	return &ing, nil
}

func (s *Store) CreateIngredient(ctx context.Context, ing domain.Ingredient) error {
	return s.write(ctx, func(next *domain.Snapshot) error {
		if _, exists := next.Ingredients[ing.ID]; exists {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateID, ing.ID)
		}
		ing.UpdatedAt = s.now().UTC()
		next.Ingredients[ing.ID] = ing
		return nil
	})
}

func (s *Store) UpdateIngredient(ctx context.Context, ing domain.Ingredient) error {
	return s.write(ctx, func(next *domain.Snapshot) error {
		if _, exists := next.Ingredients[ing.ID]; !exists {
			return fmt.Errorf("%w: %s", domain.ErrIngredientNotFound, ing.ID)
		}
		ing.UpdatedAt = s.now().UTC()
		next.Ingredients[ing.ID] = ing
		return nil
	})
}

func (s *Store) DeleteIngredient(ctx context.Context, id string) error {
	return s.write(ctx, func(next *domain.Snapshot) error {
		if _, exists := next.Ingredients[id]; !exists {
			return fmt.Errorf("%w: %s", domain.ErrIngredientNotFound, id)
		}
		for _, p := range next.Products {
			for _, item := range p.Formula {
				if item.IngredientID == id {
					return fmt.Errorf("%w: ingredient %s is used by %s", domain.ErrResourceInUse, id, p.ID)
				}
			}
		}
		delete(next.Ingredients, id)
		return nil
	})
}

func (s *Store) AdjustIngredientStock(ctx context.Context, id string, delta float64) (*domain.Ingredient, error) {
	var out domain.Ingredient
	err := s.write(ctx, func(next *domain.Snapshot) error {
		ing, ok := next.Ingredients[id]
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrIngredientNotFound, id)
		}
		if ing.Stock+delta < 0 {
			return fmt.Errorf("%w: stock of %s would become negative", domain.ErrInvalidInput, id)
		}
		ing.Stock += delta
		ing.UpdatedAt = s.now().UTC()
		next.Ingredients[id] = ing
		out = ing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ==================== Packaging ====================

func (s *Store) ListPackaging(_ context.Context) ([]domain.Packaging, error) {
	state := s.read().Clone()
	out := make([]domain.Packaging, 0, len(state.Packaging))
	for _, pkg := range state.Packaging {
		out = append(out, pkg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name || (out[i].Name == out[j].Name && out[i].ID < out[j].ID) })
	return out, nil
}

func (s *Store) GetPackaging(_ context.Context, id string) (*domain.Packaging, error) {
	pkg, ok := s.read().Clone().Packaging[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrPackagingNotFound, id)
	}
	return &pkg, nil
}

func (s *Store) CreatePackaging(ctx context.Context, pkg domain.Packaging) error {
	return s.write(ctx, func(next *domain.Snapshot) error {
		if _, exists := next.Packaging[pkg.ID]; exists {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateID, pkg.ID)
		}
		pkg.UpdatedAt = s.now().UTC()
		next.Packaging[pkg.ID] = pkg
		return nil
	})
}

func (s *Store) UpdatePackaging(ctx context.Context, pkg domain.Packaging) error {
	return s.write(ctx, func(next *domain.Snapshot) error {
		if _, exists := next.Packaging[pkg.ID]; !exists {
			return fmt.Errorf("%w: %s", domain.ErrPackagingNotFound, pkg.ID)
		}
		pkg.UpdatedAt = s.now().UTC()
		next.Packaging[pkg.ID] = pkg
		return nil
	})
}

func (s *Store) DeletePackaging(ctx context.Context, id string) error {
	return s.write(ctx, func(next *domain.Snapshot) error {
		if _, exists := next.Packaging[id]; !exists {
			return fmt.Errorf("%w: %s", domain.ErrPackagingNotFound, id)
		}
		for _, p := range next.Products {
			if p.PackagingID == id {
				return fmt.Errorf("%w: packaging %s is used by %s", domain.ErrResourceInUse, id, p.ID)
			}
		}
		delete(next.Packaging, id)
		return nil
	})
}

func (s *Store) AdjustPackagingStock(ctx context.Context, id string, delta int) (*domain.Packaging, error) {
	var out domain.Packaging
	err := s.write(ctx, func(next *domain.Snapshot) error {
		pkg, ok := next.Packaging[id]
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrPackagingNotFound, id)
		}
		if pkg.Stock+delta < 0 {
			return fmt.Errorf("%w: stock of %s would become negative", domain.ErrInvalidInput, id)
		}
		pkg.Stock += delta
		pkg.UpdatedAt = s.now().UTC()
		next.Packaging[id] = pkg
		out = pkg
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ==================== Products ====================

func (s *Store) ListProducts(_ context.Context) ([]domain.Product, error) {
	state := s.read().Clone()
	out := make([]domain.Product, 0, len(state.Products))
	for _, p := range state.Products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name || (out[i].Name == out[j].Name && out[i].ID < out[j].ID) })
	return out, nil
}

func (s *Store) GetProduct(_ context.Context, id string) (*domain.Product, error) {
	p, ok := s.read().Products[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)
	}
	p.Formula = append([]domain.FormulaItem(nil), p.Formula...)
	return &p, nil
}

func (s *Store) CreateProduct(ctx context.Context, p domain.Product) error {
	return s.write(ctx, func(next *domain.Snapshot) error {
		if _, exists := next.Products[p.ID]; exists {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateID, p.ID)
		}
		p.Formula = append([]domain.FormulaItem(nil), p.Formula...)
		p.UpdatedAt = s.now().UTC()
		next.Products[p.ID] = p
		return nil
	})
}

func (s *Store) UpdateProduct(ctx context.Context, p domain.Product) error {
	return s.write(ctx, func(next *domain.Snapshot) error {
		if _, exists := next.Products[p.ID]; !exists {
			return fmt.Errorf("%w: %s", domain.ErrProductNotFound, p.ID)
		}
		p.Formula = append([]domain.FormulaItem(nil), p.Formula...)
		p.UpdatedAt = s.now().UTC()
		next.Products[p.ID] = p
		return nil
	})
}

func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	return s.write(ctx, func(next *domain.Snapshot) error {
		if _, exists := next.Products[id]; !exists {
			return fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)
		}
		delete(next.Products, id)
		return nil
	})
}

// ==================== Production ====================

func (s *Store) GetProductionSnapshot(_ context.Context, productID string) (*domain.ProductionSnapshot, error) {
	return productionSnapshot(s.read(), productID)
}

func (s *Store) ListProductionRuns(_ context.Context, limit int) ([]domain.ProductionRun, error) {
	return latestRuns(s.read().Runs, limit), nil
}

// BeginTx takes the writer lock until Commit or Rollback
func (s *Store) BeginTx(_ context.Context) (repository.ProductionTx, error) {
	s.writer.Lock()
	return &tx{store: s, work: s.read().Clone()}, nil
}

type tx struct {
	store  *Store
	work   domain.Snapshot
	closed bool
}

func (t *tx) GetProductionSnapshot(_ context.Context, productID string) (*domain.ProductionSnapshot, error) {
	if t.closed {
		return nil, repository.ErrTxClosed
	}
	return productionSnapshot(t.work, productID)
}

func (t *tx) ApplyMutations(_ context.Context, m domain.Mutations) error {
	if t.closed {
		return repository.ErrTxClosed
	}
	now := t.store.now().UTC()
	for _, d := range m.Ingredients {
		ing, ok := t.work.Ingredients[d.IngredientID]
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrIngredientNotFound, d.IngredientID)
		}
		ing.Stock += d.Delta
		if ing.Stock < 0 {
			return fmt.Errorf("%w: %s", domain.ErrInsufficientStock, d.IngredientID)
		}
		ing.UpdatedAt = now
		t.work.Ingredients[d.IngredientID] = ing
	}

	pkg, ok := t.work.Packaging[m.Packaging.PackagingID]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrPackagingNotFound, m.Packaging.PackagingID)
	}
	pkg.Stock += m.Packaging.Delta
	if pkg.Stock < 0 {
		return fmt.Errorf("%w: %s", domain.ErrInsufficientStock, m.Packaging.PackagingID)
	}
	pkg.UpdatedAt = now
	t.work.Packaging[pkg.ID] = pkg

	p, ok := t.work.Products[m.Product.ProductID]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrProductNotFound, m.Product.ProductID)
	}
	p.Stock += m.Product.Delta
	p.UpdatedAt = now
	t.work.Products[p.ID] = p
	return nil
}

func (t *tx) InsertProductionRun(_ context.Context, run domain.ProductionRun) error {
	if t.closed {
		return repository.ErrTxClosed
	}
	t.work.Runs = append(t.work.Runs, run)
	return nil
}

func (t *tx) Commit(ctx context.Context) error {
	if t.closed {
		return repository.ErrTxClosed
	}
	t.closed = true
	defer t.store.writer.Unlock()
	return t.store.publish(ctx, t.work)
}

func (t *tx) Rollback(_ context.Context) error {
	if t.closed {
		return repository.ErrTxClosed
	}
	t.closed = true
	t.store.writer.Unlock()
	return nil
}

func productionSnapshot(state domain.Snapshot, productID string) (*domain.ProductionSnapshot, error) {
	ps, ok := state.ProductionSnapshot(productID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, productID)
	}
	ps.Product.Formula = append([]domain.FormulaItem(nil), ps.Product.Formula...)
	if ps.Packaging != nil && ps.Packaging.MinStock != nil {
		m := *ps.Packaging.MinStock
		ps.Packaging.MinStock = &m
	}
	return &ps, nil
}

// latestRuns returns up to limit runs, newest first
func latestRuns(runs []domain.ProductionRun, limit int) []domain.ProductionRun {
	n := len(runs)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]domain.ProductionRun, 0, n)
	for i := len(runs) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, runs[i])
	}
	return out
}
