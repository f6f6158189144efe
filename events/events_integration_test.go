package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"croulette/models"

	"github.com/stretchr/testify/assert"
)

// TestEventDeliveryIntegration tests the flow from TransactionalBus to the main Bus
func TestEventDeliveryIntegration(t *testing.T) {
	mainBus := NewBus()
	transactionalBus := NewTransactionalBus(mainBus)

	eventReceived := make(chan BalanceChangeEvent, 1)
	var wg sync.WaitGroup
	wg.Add(1)

	mainBus.Subscribe(EventTypeBalanceChange, func(ctx context.Context, event Event) {
		defer wg.Done()
		if balanceEvent, ok := event.(BalanceChangeEvent); ok {
			eventReceived <- balanceEvent
		} else {
			t.Errorf("Expected BalanceChangeEvent, got %T", event)
		}
	})

	testEvent := BalanceChangeEvent{
		Platform:        models.PlatformDiscord,
		ScopeID:         789,
		UserID:          123456,
		OldBalance:      1000,
		NewBalance:      1050,
		TransactionType: models.TransactionTypeRouletteWin,
		ChangeAmount:    50,
	}

	transactionalBus.Publish(testEvent)
	assert.Equal(t, 1, transactionalBus.Pending())

	// Flushing after a commit hands the events to the main bus
	ctx, cancel := context.WithCancel(context.Background())
	err := transactionalBus.Flush(ctx)
	cancel()
	assert.NoError(t, err)
	assert.Equal(t, 0, transactionalBus.Pending())

	wg.Wait()

	select {
	case received := <-eventReceived:
		assert.Equal(t, testEvent, received)
	case <-time.After(2 * time.Second):
		t.Fatal("Event was not received within timeout")
	}
}

// TestMultipleEventsDelivery delivers events of several types in one flush
func TestMultipleEventsDelivery(t *testing.T) {
	mainBus := NewBus()
	transactionalBus := NewTransactionalBus(mainBus)

	received := make(chan Event, 3)
	var wg sync.WaitGroup
	wg.Add(3)

	handler := func(ctx context.Context, event Event) {
		defer wg.Done()
		received <- event
	}
	mainBus.Subscribe(EventTypeBalanceChange, handler)
	mainBus.Subscribe(EventTypeUserCreated, handler)
	mainBus.Subscribe(EventTypeRouletteSpin, handler)

	transactionalBus.Publish(UserCreatedEvent{Platform: models.PlatformTelegram, ScopeID: -100, UserID: 1, Username: "alice", InitialBalance: 1000})
	transactionalBus.Publish(BalanceChangeEvent{Platform: models.PlatformTelegram, ScopeID: -100, UserID: 1, OldBalance: 1000, NewBalance: 950, TransactionType: models.TransactionTypeRouletteLoss, ChangeAmount: -50})
	transactionalBus.Publish(SpinCompletedEvent{Platform: models.PlatformTelegram, ScopeID: -100, UserID: 1, SpinID: 9, Bet: "r", Pocket: "2", Cost: 50})

	assert.NoError(t, transactionalBus.Flush(context.Background()))
	wg.Wait()
	close(received)

	types := make(map[EventType]bool)
	for ev := range received {
		types[ev.Type()] = true
	}
	assert.True(t, types[EventTypeUserCreated])
	assert.True(t, types[EventTypeBalanceChange])
	assert.True(t, types[EventTypeRouletteSpin])
}

// TestTransactionalBusDiscard checks that discarded events are not delivered
func TestTransactionalBusDiscard(t *testing.T) {
	mainBus := NewBus()
	transactionalBus := NewTransactionalBus(mainBus)

	eventReceived := make(chan bool, 1)
	mainBus.Subscribe(EventTypeBalanceChange, func(ctx context.Context, event Event) {
		eventReceived <- true
	})

	transactionalBus.Publish(BalanceChangeEvent{UserID: 123456, ScopeID: 789, ChangeAmount: 50})
	transactionalBus.Discard()

	select {
	case <-eventReceived:
		t.Fatal("Event was received despite being discarded")
	case <-time.After(100 * time.Millisecond):
	}
}

// TestBusHandlerPanic checks that one panicking handler does not stop the others
func TestBusHandlerPanic(t *testing.T) {
	bus := NewBus()

	done := make(chan struct{})
	bus.Subscribe(EventTypeRouletteSpin, func(ctx context.Context, event Event) {
		panic("boom")
	})
	bus.Subscribe(EventTypeRouletteSpin, func(ctx context.Context, event Event) {
		close(done)
	})

	bus.Emit(context.Background(), SpinCompletedEvent{SpinID: 1})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("second handler was not called")
	}
}
