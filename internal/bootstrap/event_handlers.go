package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/vistalabs/vista/internal/config"
	"github.com/vistalabs/vista/internal/discord"
	"github.com/vistalabs/vista/internal/event"
	"github.com/vistalabs/vista/internal/metrics"
	"github.com/vistalabs/vista/internal/sse"
)

// EventHandlerDependencies holds the dependencies needed for event handler registration.
type EventHandlerDependencies struct {
	EventBus event.Bus
	Config   *config.Config
	// Sender overrides the Discord session, mainly for tests
	Sender discord.Sender
	// Hub receives stock events for streaming clients; nil disables the bridge
	Hub *sse.Hub
}

// RegisterEventHandlers sets up all event handlers and subscribers:
// - Metrics collector (production and restock counters)
// - SSE bridge (live stock events), when a hub is supplied
// - Discord notifier (low packaging alerts), when configured
func RegisterEventHandlers(deps EventHandlerDependencies) error {
	metricsCollector := metrics.NewEventMetricsCollector()
	metricsCollector.Register(deps.EventBus)
	slog.Info(LogMsgMetricsCollectorRegistered)

	if deps.Hub != nil {
		sse.NewSubscriber(deps.Hub).Register(deps.EventBus)
	}

	if !deps.Config.AlertsEnabled() {
		slog.Info(LogMsgDiscordNotifierDisabled)
		return nil
	}

	var notifier *discord.Notifier
	if deps.Sender != nil {
		notifier = discord.NewWithSender(deps.Sender, deps.Config.DiscordAlertChannelID)
	} else {
		var err error
		notifier, err = discord.New(discord.Config{
			Token:     deps.Config.DiscordToken,
			ChannelID: deps.Config.DiscordAlertChannelID,
		})
		if err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedCreateNotifier, err)
		}
	}
	notifier.Register(deps.EventBus)
	slog.Info(LogMsgDiscordNotifierRegistered, "channel_id", deps.Config.DiscordAlertChannelID)

	return nil
}
