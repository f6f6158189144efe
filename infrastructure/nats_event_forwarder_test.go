package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"croulette/events"
	"croulette/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type publishedMessage struct {
	subject string
	data    []byte
}

type recordingPublisher struct {
	mu       sync.Mutex
	messages []publishedMessage
	err      error
	notify   chan struct{}
}

func newRecordingPublisher() *recordingPublisher {
	return &recordingPublisher{notify: make(chan struct{}, 16)}
}

func (p *recordingPublisher) Publish(ctx context.Context, subject string, data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.messages = append(p.messages, publishedMessage{subject: subject, data: data})
	p.notify <- struct{}{}
	return nil
}

func (p *recordingPublisher) snapshot() []publishedMessage {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]publishedMessage(nil), p.messages...)
}

func TestEventSubjectMapper(t *testing.T) {
	m := NewEventSubjectMapper()

	assert.Equal(t, SubjectBalanceChanged, m.MapEventToSubject(events.EventTypeBalanceChange))
	assert.Equal(t, SubjectUserCreated, m.MapEventToSubject(events.EventTypeUserCreated))
	assert.Equal(t, SubjectSpinCompleted, m.MapEventToSubject(events.EventTypeRouletteSpin))
	assert.Equal(t, "unknown.other", m.MapEventToSubject("other"))

	for _, eventType := range m.EventTypes() {
		assert.Contains(t, m.GetAllSubjects(), m.MapEventToSubject(eventType))
	}
}

func TestEventForwarder_Forward(t *testing.T) {
	publisher := newRecordingPublisher()
	forwarder := NewEventForwarder(publisher, NewEventSubjectMapper(), nil)
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	forwarder.now = func() time.Time { return fixed }

	event := events.SpinCompletedEvent{
		Platform:   models.PlatformDiscord,
		ScopeID:    42,
		UserID:     7,
		SpinID:     99,
		Bet:        "00",
		Pocket:     "00",
		Multiplier: 35,
		Cost:       50,
		Payout:     1750,
	}
	require.NoError(t, forwarder.Forward(context.Background(), event))

	messages := publisher.snapshot()
	require.Len(t, messages, 1)
	assert.Equal(t, SubjectSpinCompleted, messages[0].subject)

	var envelope EventEnvelope
	require.NoError(t, json.Unmarshal(messages[0].data, &envelope))
	_, err := uuid.Parse(envelope.EventID)
	assert.NoError(t, err)
	assert.Equal(t, "roulette_spin", envelope.EventType)
	assert.Equal(t, SourceService, envelope.SourceService)
	assert.True(t, fixed.Equal(envelope.Timestamp))

	var payload events.SpinCompletedEvent
	require.NoError(t, json.Unmarshal(envelope.Payload, &payload))
	assert.Equal(t, event, payload)
}

func TestEventForwarder_PublishError(t *testing.T) {
	publisher := newRecordingPublisher()
	publisher.err = errors.New("nats down")
	forwarder := NewEventForwarder(publisher, NewEventSubjectMapper(), nil)

	err := forwarder.Forward(context.Background(), events.UserCreatedEvent{UserID: 1})
	assert.ErrorContains(t, err, "nats down")
}

func TestEventForwarder_Register(t *testing.T) {
	publisher := newRecordingPublisher()
	forwarder := NewEventForwarder(publisher, NewEventSubjectMapper(), nil)

	bus := events.NewBus()
	forwarder.Register(bus)

	bus.Emit(context.Background(), events.BalanceChangeEvent{UserID: 1, OldBalance: 1000, NewBalance: 950, ChangeAmount: -50})
	bus.Emit(context.Background(), events.UserCreatedEvent{UserID: 2})

	for i := 0; i < 2; i++ {
		select {
		case <-publisher.notify:
		case <-time.After(2 * time.Second):
			t.Fatalf("only %d events forwarded", i)
		}
	}

	subjects := make(map[string]bool)
	for _, msg := range publisher.snapshot() {
		subjects[msg.subject] = true
	}
	assert.True(t, subjects[SubjectBalanceChanged])
	assert.True(t, subjects[SubjectUserCreated])
}
