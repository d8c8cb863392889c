package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vistalabs/vista/internal/catalog"
	"github.com/vistalabs/vista/internal/config"
	"github.com/vistalabs/vista/internal/domain"
	"github.com/vistalabs/vista/internal/event"
	"github.com/vistalabs/vista/internal/sse"
)

func TestInitializeStore(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		store, err := InitializeStore(ctx, &config.Config{StoreDriver: config.StoreDriverMemory})
		require.NoError(t, err)
		defer store.Close()
		assert.NoError(t, store.Ping(ctx))
	})

	t.Run("sqlite persists across reopen", func(t *testing.T) {
		cfg := &config.Config{StoreDriver: config.StoreDriverSQLite, SQLitePath: filepath.Join(t.TempDir(), "vista.db")}

		store, err := InitializeStore(ctx, cfg)
		require.NoError(t, err)
		require.NoError(t, store.CreateIngredient(ctx, domain.Ingredient{ID: "gly", Name: "Glycerin", DisplayUnit: domain.UnitKilogram}))
		require.NoError(t, store.Close())

		reopened, err := InitializeStore(ctx, cfg)
		require.NoError(t, err)
		defer reopened.Close()
		ing, err := reopened.GetIngredient(ctx, "gly")
		require.NoError(t, err)
		assert.Equal(t, "Glycerin", ing.Name)
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, err := InitializeStore(ctx, &config.Config{StoreDriver: "mongo"})
		assert.ErrorContains(t, err, ErrMsgUnknownStoreDriver)
	})
}

func TestInitializeEventSystem(t *testing.T) {
	cfg := &config.Config{EventDeadLetterPath: filepath.Join(t.TempDir(), "nested", "deadletter.jsonl")}

	events, err := InitializeEventSystem(cfg)
	require.NoError(t, err)
	require.NotNil(t, events.Bus)
	t.Cleanup(func() { _ = events.Publisher.Shutdown(context.Background()) })

	_, err = os.Stat(cfg.EventDeadLetterPath)
	assert.NoError(t, err, "dead-letter file is created with its directory")

	// Publishing through the retrying publisher reaches bus subscribers
	got := make(chan event.Type, 1)
	events.Bus.Subscribe(event.StockRestocked, func(_ context.Context, evt event.Event) error {
		got <- evt.Type
		return nil
	})
	events.Publisher.PublishWithRetry(context.Background(), event.Event{Type: event.StockRestocked})
	select {
	case typ := <-got:
		assert.Equal(t, event.StockRestocked, typ)
	case <-time.After(time.Second):
		t.Fatal("subscriber never saw the event")
	}
}

type recordingSender struct {
	mu     sync.Mutex
	embeds []*discordgo.MessageEmbed
}

func (s *recordingSender) ChannelMessageSendEmbed(_ string, embed *discordgo.MessageEmbed, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.embeds = append(s.embeds, embed)
	return &discordgo.Message{}, nil
}

func (s *recordingSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.embeds)
}

func TestRegisterEventHandlers(t *testing.T) {
	ctx := context.Background()
	minStock := 5
	low := event.Event{
		Version: event.EventSchemaVersion,
		Type:    event.ProductionCompleted,
		Payload: domain.ProductionCompletedPayload{
			ProductID:     "cream",
			UnitsProduced: 8,
			LowPackaging:  &domain.Packaging{ID: "jar", Name: "100ml Jar", Stock: 2, MinStock: &minStock},
		},
	}

	t.Run("alerts disabled", func(t *testing.T) {
		bus := event.NewMemoryBus()
		sender := &recordingSender{}
		require.NoError(t, RegisterEventHandlers(EventHandlerDependencies{EventBus: bus, Config: &config.Config{}, Sender: sender}))

		require.NoError(t, bus.Publish(ctx, low))
		assert.Zero(t, sender.count())
	})

	t.Run("alerts enabled", func(t *testing.T) {
		bus := event.NewMemoryBus()
		sender := &recordingSender{}
		cfg := &config.Config{DiscordToken: "tok", DiscordAlertChannelID: "123"}
		require.NoError(t, RegisterEventHandlers(EventHandlerDependencies{EventBus: bus, Config: cfg, Sender: sender}))

		require.NoError(t, bus.Publish(ctx, low))
		assert.Equal(t, 1, sender.count())
	})

	t.Run("event stream bridge", func(t *testing.T) {
		bus := event.NewMemoryBus()
		hub := sse.NewHub()
		hub.Start()
		defer hub.Stop()
		require.NoError(t, RegisterEventHandlers(EventHandlerDependencies{EventBus: bus, Config: &config.Config{}, Hub: hub}))

		client := hub.Register([]string{sse.EventTypeLowStock})
		require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)
		require.NoError(t, bus.Publish(ctx, low))

		select {
		case evt := <-client.EventChannel:
			assert.Equal(t, sse.EventTypeLowStock, evt.Type)
		case <-time.After(time.Second):
			t.Fatal("no low stock event on the stream")
		}
	})
}

func TestSyncCatalogSeed(t *testing.T) {
	ctx := context.Background()
	store, err := InitializeStore(ctx, &config.Config{StoreDriver: config.StoreDriverMemory})
	require.NoError(t, err)
	svc := catalog.NewService(store, nil)

	require.NoError(t, SyncCatalogSeed(ctx, &config.Config{}, svc), "no seed path is a no-op")

	cfg := &config.Config{SeedPath: filepath.Join("..", "..", "configs", "seed.example.json")}
	require.NoError(t, SyncCatalogSeed(ctx, cfg, svc))
	require.NoError(t, SyncCatalogSeed(ctx, cfg, svc), "reapplying is safe")

	products, err := svc.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 1)

	err = SyncCatalogSeed(ctx, &config.Config{SeedPath: filepath.Join(t.TempDir(), "missing.json")}, svc)
	assert.ErrorContains(t, err, ErrMsgFailedLoadSeed)
}

func TestInitializeWorkers_BackupsDisabled(t *testing.T) {
	ctx := context.Background()
	store, err := InitializeStore(ctx, &config.Config{StoreDriver: config.StoreDriverMemory})
	require.NoError(t, err)

	workers, err := InitializeWorkers(ctx, &config.Config{BackupInterval: time.Hour}, store)
	require.NoError(t, err)
	assert.Nil(t, workers.Backup)
	workers.Stop()
}

func TestCleanupLogs(t *testing.T) {
	dir := t.TempDir()
	names := []string{
		"session_2026-01-01_00-00-00.log",
		"session_2026-01-02_00-00-00.log",
		"session_2026-01-03_00-00-00.log",
		"notes.txt",
	}
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), nil, 0o600))
	}

	cleanupLogs(dir, 2)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var left []string
	for _, e := range entries {
		left = append(left, e.Name())
	}
	assert.ElementsMatch(t, []string{"session_2026-01-02_00-00-00.log", "session_2026-01-03_00-00-00.log", "notes.txt"}, left)
}

func TestGracefulShutdown_NilComponents(t *testing.T) {
	assert.NotPanics(t, func() {
		GracefulShutdown(context.Background(), ShutdownComponents{})
	})
}

func TestGracefulShutdown_StopsHub(t *testing.T) {
	hub := sse.NewHub()
	hub.Start()
	client := hub.Register(nil)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	GracefulShutdown(context.Background(), ShutdownComponents{Events: hub})

	require.Eventually(t, func() bool {
		select {
		case _, ok := <-client.EventChannel:
			return !ok
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)
}
