package ws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishQueuesJSON(t *testing.T) {
	h := NewHub()
	id := uuid.New()
	h.Publish(Event{
		Type:   "stock_update",
		Action: "purchase_created",
		Item:   &ItemChange{ID: id, Delta: 5, Quantity: 15},
		User:   Actor{ID: "u1", Name: "Ann"},
	})

	select {
	case msg := <-h.Broadcast:
		var got Event
		require.NoError(t, json.Unmarshal(msg, &got))
		assert.Equal(t, "purchase_created", got.Action)
		require.NotNil(t, got.Item)
		assert.Equal(t, id, got.Item.ID)
		assert.Equal(t, 15, got.Item.Quantity)
	case <-time.After(time.Second):
		t.Fatal("event was not queued")
	}
}

func TestPublishDropsWhenQueueFull(t *testing.T) {
	h := NewHub()
	done := make(chan struct{})
	go func() {
		for i := 0; i < cap(h.Broadcast)+10; i++ {
			h.Publish(Event{Type: "stock_update", Action: "purchase_created"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked with no dispatcher running")
	}
	assert.Equal(t, cap(h.Broadcast), len(h.Broadcast))
}

func TestPublishOnNilHubIsNoop(t *testing.T) {
	var h *Hub
	assert.NotPanics(t, func() { h.Publish(Event{Action: "x"}) })
}

func TestClientCountStartsEmpty(t *testing.T) {
	assert.Equal(t, 0, NewHub().ClientCount())
}
