package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"croulette/events"
	"croulette/infrastructure/observability"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// SourceService is stamped on every envelope
const SourceService = "croulette"

// MessagePublisher sends raw bytes to a subject
type MessagePublisher interface {
	Publish(ctx context.Context, subject string, data []byte) error
}

// EventEnvelope wraps an event payload for the wire
type EventEnvelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	Timestamp     time.Time       `json:"timestamp"`
	SourceService string          `json:"source_service"`
	Payload       json.RawMessage `json:"payload"`
}

// EventForwarder copies committed domain events from the local bus to NATS
type EventForwarder struct {
	publisher     MessagePublisher
	subjectMapper *EventSubjectMapper
	metrics       *observability.MetricsProvider
	now           func() time.Time
}

// NewEventForwarder creates a forwarder. metrics may be nil.
func NewEventForwarder(publisher MessagePublisher, subjectMapper *EventSubjectMapper, metrics *observability.MetricsProvider) *EventForwarder {
	return &EventForwarder{
		publisher:     publisher,
		subjectMapper: subjectMapper,
		metrics:       metrics,
		now:           time.Now,
	}
}

// Register subscribes the forwarder to every mapped event type on bus
func (f *EventForwarder) Register(bus *events.Bus) {
	for _, eventType := range f.subjectMapper.EventTypes() {
		bus.Subscribe(eventType, f.handle)
	}
}

func (f *EventForwarder) handle(ctx context.Context, event events.Event) {
	if err := f.Forward(ctx, event); err != nil {
		log.WithFields(log.Fields{
			"eventType": event.Type(),
			"error":     err,
		}).Error("Failed to forward event to NATS")
	}
}

// Forward publishes one event wrapped in an envelope
func (f *EventForwarder) Forward(ctx context.Context, event events.Event) error {
	subject := f.subjectMapper.MapEventToSubject(event.Type())

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	envelope := EventEnvelope{
		EventID:       uuid.New().String(),
		EventType:     string(event.Type()),
		Timestamp:     f.now().UTC(),
		SourceService: SourceService,
		Payload:       payload,
	}

	data, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("failed to marshal event envelope: %w", err)
	}

	if err := f.publisher.Publish(ctx, subject, data); err != nil {
		return fmt.Errorf("failed to publish event to NATS: %w", err)
	}

	f.metrics.RecordNATSMessagePublished(subject)

	log.WithFields(log.Fields{
		"eventID":   envelope.EventID,
		"eventType": envelope.EventType,
		"subject":   subject,
	}).Debug("Forwarded event to NATS")

	return nil
}
