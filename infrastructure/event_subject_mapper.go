package infrastructure

import (
	"fmt"

	"croulette/events"
)

// Subjects events are published on
const (
	SubjectBalanceChanged = "users.balance_changed"
	SubjectUserCreated    = "users.created"
	SubjectSpinCompleted  = "roulette.spin_completed"
)

// EventSubjectMapper maps domain events to NATS subjects
type EventSubjectMapper struct{}

// NewEventSubjectMapper creates a new event subject mapper
func NewEventSubjectMapper() *EventSubjectMapper {
	return &EventSubjectMapper{}
}

// MapEventToSubject converts a domain event type to its NATS subject
func (m *EventSubjectMapper) MapEventToSubject(eventType events.EventType) string {
	switch eventType {
	case events.EventTypeBalanceChange:
		return SubjectBalanceChanged
	case events.EventTypeUserCreated:
		return SubjectUserCreated
	case events.EventTypeRouletteSpin:
		return SubjectSpinCompleted
	default:
		return fmt.Sprintf("unknown.%s", eventType)
	}
}

// EventTypes returns every event type that has a subject
func (m *EventSubjectMapper) EventTypes() []events.EventType {
	return []events.EventType{
		events.EventTypeBalanceChange,
		events.EventTypeUserCreated,
		events.EventTypeRouletteSpin,
	}
}

// GetAllSubjects returns all subjects that this service publishes to
func (m *EventSubjectMapper) GetAllSubjects() []string {
	return []string{
		SubjectBalanceChanged,
		SubjectUserCreated,
		SubjectSpinCompleted,
	}
}
