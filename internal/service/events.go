package service

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/SoftwareSushi/gpt-academy/internal/observability"
)

// Session event types pushed to websocket subscribers.
const (
	EventTurnAppended       = "turn_appended"
	EventExtractionResolved = "extraction_resolved"
	EventFeedbackReady      = "feedback_ready"
)

const eventSendBufferSize = 16

// Event is one asynchronous session occurrence fanned out to subscribers.
type Event struct {
	SessionID string      `json:"session_id"`
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload,omitempty"`
	SentAt    time.Time   `json:"sent_at"`
}

// EventBroker fans session events out to in-process subscribers (the
// websocket handler) and optionally mirrors them to NATS for other nodes.
// A nil broker is safe to publish to.
type EventBroker struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
	nats        *nats.Conn
	subjectBase string
	logger      zerolog.Logger
}

// NewEventBroker constructs the broker. natsConn may be nil.
func NewEventBroker(natsConn *nats.Conn, logger zerolog.Logger) *EventBroker {
	return &EventBroker{
		subscribers: make(map[string]map[chan Event]struct{}),
		nats:        natsConn,
		subjectBase: "gptacademy.sessions",
		logger:      logger.With().Str("component", "event_broker").Logger(),
	}
}

// Subscribe registers a listener for one session's events. The returned
// function unsubscribes and closes the channel.
func (b *EventBroker) Subscribe(sessionID string) (<-chan Event, func()) {
	ch := make(chan Event, eventSendBufferSize)

	b.mu.Lock()
	if b.subscribers[sessionID] == nil {
		b.subscribers[sessionID] = make(map[chan Event]struct{})
	}
	b.subscribers[sessionID][ch] = struct{}{}
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			if subs, ok := b.subscribers[sessionID]; ok {
				delete(subs, ch)
				if len(subs) == 0 {
					delete(b.subscribers, sessionID)
				}
			}
			b.mu.Unlock()
			close(ch)
		})
	}

	return ch, cancel
}

// Publish delivers the event to every subscriber of the session. Slow
// subscribers are skipped rather than blocked on.
func (b *EventBroker) Publish(event Event) {
	if b == nil {
		return
	}

	if event.SentAt.IsZero() {
		event.SentAt = time.Now().UTC()
	}

	observability.EventsPublished().WithLabelValues(event.Type).Inc()

	b.mu.RLock()
	for ch := range b.subscribers[event.SessionID] {
		select {
		case ch <- event:
		default:
			b.logger.Debug().Str("session_id", event.SessionID).Str("type", event.Type).Msg("dropping event for slow subscriber")
		}
	}
	b.mu.RUnlock()

	if b.nats != nil {
		payload, err := json.Marshal(event)
		if err != nil {
			return
		}
		subject := fmt.Sprintf("%s.%s.events", b.subjectBase, event.SessionID)
		if err := b.nats.Publish(subject, payload); err != nil {
			b.logger.Warn().Err(err).Msg("failed to publish session event to nats")
		}
	}
}
