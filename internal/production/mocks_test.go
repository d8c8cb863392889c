package production

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/vistalabs/vista/internal/domain"
	"github.com/vistalabs/vista/internal/event"
	"github.com/vistalabs/vista/internal/repository"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetProductionSnapshot(ctx context.Context, productID string) (*domain.ProductionSnapshot, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProductionSnapshot), args.Error(1)
}

func (m *MockRepository) ListProductionRuns(ctx context.Context, limit int) ([]domain.ProductionRun, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProductionRun), args.Error(1)
}

func (m *MockRepository) BeginTx(ctx context.Context) (repository.ProductionTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.ProductionTx), args.Error(1)
}

type MockTx struct {
	mock.Mock
}

func (m *MockTx) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockTx) GetProductionSnapshot(ctx context.Context, productID string) (*domain.ProductionSnapshot, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProductionSnapshot), args.Error(1)
}

func (m *MockTx) ApplyMutations(ctx context.Context, mutations domain.Mutations) error {
	return m.Called(ctx, mutations).Error(0)
}

func (m *MockTx) InsertProductionRun(ctx context.Context, run domain.ProductionRun) error {
	return m.Called(ctx, run).Error(0)
}

// recordingPublisher captures published events
type recordingPublisher struct {
	mu     sync.Mutex
	events []event.Event
}

func (p *recordingPublisher) PublishWithRetry(_ context.Context, evt event.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
}

func (p *recordingPublisher) published() []event.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]event.Event(nil), p.events...)
}
