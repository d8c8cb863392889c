package event

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/vistalabs/vista/internal/logger"
)

// errShutdown is recorded on dead-letter entries dropped by Shutdown.
var errShutdown = errors.New("publisher shut down")

type retryItem struct {
	event   Event
	attempt int
	lastErr error
}

// ResilientPublisher wraps a Bus with exponential-backoff retries. Events that
// still fail after maxRetries attempts, or that are pending at shutdown, are
// written to a dead-letter file.
type ResilientPublisher struct {
	bus        Bus
	maxRetries int
	baseDelay  time.Duration
	deadLetter *DeadLetterWriter

	queue chan retryItem
	done  chan struct{}
	stop  chan struct{}

	mu      sync.Mutex
	closed  bool
	pending map[*time.Timer]retryItem
}

// NewResilientPublisher starts the retry worker
func NewResilientPublisher(bus Bus, maxRetries int, baseDelay time.Duration, deadLetterPath string) (*ResilientPublisher, error) {
	dlw, err := NewDeadLetterWriter(deadLetterPath)
	if err != nil {
		return nil, err
	}
	p := &ResilientPublisher{
		bus:        bus,
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
		deadLetter: dlw,
		queue:      make(chan retryItem, RetryQueueBufferSize),
		done:       make(chan struct{}),
		stop:       make(chan struct{}),
		pending:    make(map[*time.Timer]retryItem),
	}
	go p.run()
	return p, nil
}

// PublishWithRetry publishes the event and schedules retries on failure.
// It never blocks on the retry path.
func (p *ResilientPublisher) PublishWithRetry(ctx context.Context, evt Event) {
	err := p.bus.Publish(ctx, evt)
	if err == nil {
		return
	}
	logger.FromContext(ctx).Warn(LogMsgEventPublishFailed, "event_type", evt.Type, "error", err)
	p.schedule(retryItem{event: evt, attempt: 1, lastErr: err})
}

// Publish implements Bus. Failures are retried in the background.
func (p *ResilientPublisher) Publish(ctx context.Context, evt Event) error {
	p.PublishWithRetry(ctx, evt)
	return nil
}

// Subscribe delegates to the inner bus
func (p *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	p.bus.Subscribe(eventType, handler)
}

func (p *ResilientPublisher) schedule(item retryItem) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		p.writeDeadLetter(item, LogMsgEventDroppedShutdown)
		return
	}

	var timer *time.Timer
	timer = time.AfterFunc(CalculateRetryDelay(p.baseDelay, item.attempt), func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		if _, ok := p.pending[timer]; !ok {
			return
		}
		delete(p.pending, timer)

		select {
		case p.queue <- item:
		default:
			p.writeDeadLetter(item, LogMsgRetryQueueFull)
		}
	})
	p.pending[timer] = item
}

func (p *ResilientPublisher) run() {
	defer close(p.done)
	for {
		select {
		case item := <-p.queue:
			p.retry(item)
		case <-p.stop:
			for {
				select {
				case item := <-p.queue:
					p.writeDeadLetter(item, LogMsgEventDroppedShutdown)
				default:
					return
				}
			}
		}
	}
}

func (p *ResilientPublisher) retry(item retryItem) {
	log := logger.FromContext(context.Background())
	err := p.bus.Publish(context.Background(), item.event)
	if err == nil {
		log.Info(LogMsgEventRetrySucceeded, "event_type", item.event.Type, "attempt", item.attempt)
		return
	}
	item.lastErr = err
	if item.attempt >= p.maxRetries {
		p.writeDeadLetter(item, LogMsgEventRetryExhausted)
		return
	}
	log.Warn(LogMsgEventRetryFailed, "event_type", item.event.Type, "attempt", item.attempt, "error", err)
	item.attempt++
	p.schedule(item)
}

func (p *ResilientPublisher) writeDeadLetter(item retryItem, reason string) {
	log := logger.FromContext(context.Background())
	log.Warn(reason, "event_type", item.event.Type, "attempts", item.attempt)
	if err := p.deadLetter.Write(item.event, item.attempt, item.lastErr); err != nil {
		log.Error(LogMsgDeadLetterWriteFailed, "error", err)
	}
}

// Shutdown stops retrying and dead-letters everything still pending.
func (p *ResilientPublisher) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	for timer, item := range p.pending {
		timer.Stop()
		if item.lastErr == nil {
			item.lastErr = errShutdown
		}
		p.writeDeadLetter(item, LogMsgEventDroppedShutdown)
		delete(p.pending, timer)
	}
	p.mu.Unlock()
	close(p.stop)

	select {
	case <-p.done:
	case <-ctx.Done():
		logger.FromContext(ctx).Warn(LogMsgShutdownTimeout)
		return ctx.Err()
	}
	return p.deadLetter.Close()
}
