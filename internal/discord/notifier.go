// Package discord posts inventory alerts to a Discord channel.
package discord

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/vistalabs/vista/internal/domain"
	"github.com/vistalabs/vista/internal/event"
	"github.com/vistalabs/vista/internal/logger"
)

// Sender is the part of a discordgo session the notifier needs
type Sender interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Notifier sends a low-stock embed whenever a production run leaves its
// packaging below the configured minimum.
type Notifier struct {
	session   Sender
	channelID string
}

// Config holds the notifier configuration
type Config struct {
	Token     string
	ChannelID string
}

// New creates a notifier backed by a bot session. Messages are sent over the
// REST API, so the gateway connection is never opened.
func New(cfg Config) (*Notifier, error) {
	s, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}
	return NewWithSender(s, cfg.ChannelID), nil
}

// NewWithSender creates a notifier over an existing sender
func NewWithSender(s Sender, channelID string) *Notifier {
	return &Notifier{session: s, channelID: channelID}
}

// Register subscribes the notifier to production events
func (n *Notifier) Register(bus event.Bus) {
	bus.Subscribe(event.ProductionCompleted, n.HandleProductionCompleted)
	logger.Info(LogMsgNotifierEnabled, "channel_id", n.channelID)
}

// HandleProductionCompleted posts an alert for runs that left packaging low.
// Delivery failures are logged and swallowed so a Discord outage never
// replays the event to other subscribers.
func (n *Notifier) HandleProductionCompleted(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	p, err := event.DecodePayload[domain.ProductionCompletedPayload](evt.Payload)
	if err != nil {
		log.Warn(LogMsgAlertUndecoded, "error", err)
		return nil
	}
	if p.LowPackaging == nil {
		return nil
	}

	if _, err := n.session.ChannelMessageSendEmbed(n.channelID, LowPackagingEmbed(p), discordgo.WithContext(ctx)); err != nil {
		log.Error(LogMsgAlertFailed, "packaging_id", p.LowPackaging.ID, "error", err)
		return nil
	}
	log.Info(LogMsgAlertSent, "packaging_id", p.LowPackaging.ID, "stock", p.LowPackaging.Stock)
	return nil
}

// LowPackagingEmbed renders the alert for a completed run
func LowPackagingEmbed(p domain.ProductionCompletedPayload) *discordgo.MessageEmbed {
	pkg := p.LowPackaging
	minimum := "-"
	if pkg.MinStock != nil {
		minimum = strconv.Itoa(*pkg.MinStock)
	}

	ts := time.Now().UTC()
	if p.Timestamp > 0 {
		ts = time.Unix(p.Timestamp, 0).UTC()
	}

	return &discordgo.MessageEmbed{
		Title:       TitleLowPackaging,
		Description: fmt.Sprintf("**%s** is running low after producing %d × %s.", pkg.Name, p.UnitsProduced, p.ProductName),
		Color:       ColorWarning,
		Fields: []*discordgo.MessageEmbedField{
			{Name: FieldPackaging, Value: pkg.Name, Inline: true},
			{Name: FieldInStock, Value: strconv.Itoa(pkg.Stock), Inline: true},
			{Name: FieldMinimum, Value: minimum, Inline: true},
			{Name: FieldRun, Value: p.RunID},
		},
		Timestamp: ts.Format(time.RFC3339),
		Footer: &discordgo.MessageEmbedFooter{
			Text: FooterText,
		},
	}
}
