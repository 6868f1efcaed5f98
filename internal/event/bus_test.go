package event

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInMemoryBus(t *testing.T) {
	t.Parallel()

	t.Run("delivers to every subscriber", func(t *testing.T) {
		bus := NewBus()
		first, unsubFirst := bus.Subscribe()
		second, unsubSecond := bus.Subscribe()
		defer unsubFirst()
		defer unsubSecond()

		bus.Publish(New(TypeComplaintCreated, 7, map[string]any{"id": 1}))

		got := <-first
		require.Equal(t, TypeComplaintCreated, got.Type)
		require.Equal(t, int64(7), got.ActorID)
		require.NotEmpty(t, got.ID)
		require.Equal(t, got.ID, (<-second).ID)
	})

	t.Run("drops events for a full subscriber without blocking", func(t *testing.T) {
		bus := NewBus()
		ch, unsubscribe := bus.Subscribe()
		defer unsubscribe()

		for i := 0; i < subscriberBuffer+5; i++ {
			bus.Publish(New(TypeComplaintApproved, 1, nil))
		}
		require.Len(t, ch, subscriberBuffer)
	})

	t.Run("unsubscribe closes the channel once", func(t *testing.T) {
		bus := NewBus()
		ch, unsubscribe := bus.Subscribe()
		unsubscribe()
		unsubscribe()

		_, open := <-ch
		require.False(t, open)

		bus.Publish(New(TypeComplaintRejected, 1, nil))
	})
}
