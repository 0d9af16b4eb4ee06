package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_PublishSubscribe(t *testing.T) {
	bus := NewBus()

	var received []Event
	unsubscribe := bus.Subscribe(EventChildrenUpdated, func(e Event) {
		received = append(received, e)
	})
	defer unsubscribe()

	bus.Publish(Event{Type: EventChildrenUpdated, ParentID: 42, ChildID: 7})

	require.Len(t, received, 1)
	assert.Equal(t, int64(42), received[0].ParentID)
	assert.Equal(t, int64(7), received[0].ChildID)
	assert.False(t, received[0].OccurredAt.IsZero())
}

func TestBus_TypeIsolation(t *testing.T) {
	bus := NewBus()

	createdCount := 0
	statusCount := 0

	defer bus.Subscribe(EventRequestCreated, func(Event) { createdCount++ })()
	defer bus.Subscribe(EventRequestStatusChanged, func(Event) { statusCount++ })()

	bus.Publish(Event{Type: EventRequestCreated, RequestID: 1})
	bus.Publish(Event{Type: EventRequestCreated, RequestID: 2})

	assert.Equal(t, 2, createdCount)
	assert.Zero(t, statusCount)
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBus()

	count := 0
	unsubscribe := bus.Subscribe(EventChildrenUpdated, func(Event) { count++ })

	bus.Publish(Event{Type: EventChildrenUpdated})
	unsubscribe()
	bus.Publish(Event{Type: EventChildrenUpdated})

	assert.Equal(t, 1, count)

	// Повторная отписка безопасна
	unsubscribe()
}

func TestBus_MultipleSubscribers(t *testing.T) {
	bus := NewBus()

	first, second := 0, 0
	defer bus.Subscribe(EventRequestStatusChanged, func(Event) { first++ })()
	defer bus.Subscribe(EventRequestStatusChanged, func(Event) { second++ })()

	bus.Publish(Event{Type: EventRequestStatusChanged, Status: "accepted"})

	assert.Equal(t, 1, first)
	assert.Equal(t, 1, second)
}
