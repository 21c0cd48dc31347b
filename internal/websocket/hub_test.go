package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/venuecal/venuecal/internal/event_bus"
)

// mockClient has a send channel but no connection.
func mockClient(hub *Hub, venueId int) *Client {
	return &Client{
		hub:     hub,
		venueId: venueId,
		send:    make(chan []byte, sendBufferSize),
	}
}

func receive(t *testing.T, c *Client) Message {
	t.Helper()
	select {
	case data := <-c.send:
		var msg Message
		require.NoError(t, json.Unmarshal(data, &msg))
		return msg
	default:
		t.Fatal("no message queued")
		return Message{}
	}
}

func TestHub_RegisterUnregister(t *testing.T) {
	hub := NewHub()
	c1 := mockClient(hub, 1)
	c2 := mockClient(hub, 1)
	other := mockClient(hub, 2)

	hub.Register(c1)
	hub.Register(c2)
	hub.Register(other)
	assert.Equal(t, 2, hub.ClientCount(1))
	assert.Equal(t, 1, hub.ClientCount(2))

	hub.Unregister(c1)
	hub.Unregister(c1)
	assert.Equal(t, 1, hub.ClientCount(1))

	hub.Unregister(c2)
	assert.Equal(t, 0, hub.ClientCount(1))
}

func TestHub_BroadcastReachesOnlyTheVenue(t *testing.T) {
	// given
	hub := NewHub()
	c := mockClient(hub, 1)
	other := mockClient(hub, 2)
	hub.Register(c)
	hub.Register(other)
	defer hub.Unregister(c)
	defer hub.Unregister(other)

	// when
	hub.Broadcast(1, NewMessage("calendar_event", "created", "abc"))

	// then
	msg := receive(t, c)
	assert.Equal(t, Message{Type: "calendar_event_created", Entity: "calendar_event", Action: "created", ID: "abc"}, msg)
	assert.Empty(t, other.send)
}

func TestHub_BroadcastDropsWhenBufferFull(t *testing.T) {
	hub := NewHub()
	c := mockClient(hub, 1)
	hub.Register(c)
	defer hub.Unregister(c)

	for i := 0; i < sendBufferSize+3; i++ {
		hub.Broadcast(1, NewMessage("calendar_event", "updated", ""))
	}

	assert.Len(t, c.send, sendBufferSize)
}

func TestHub_BroadcastWithoutClients(t *testing.T) {
	hub := NewHub()
	assert.NotPanics(t, func() {
		hub.Broadcast(5, NewMessage("venue_config", "updated", ""))
	})
}

func TestHub_ConcurrentAccess(t *testing.T) {
	hub := NewHub()
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(venueId int) {
			defer wg.Done()
			c := mockClient(hub, venueId)
			hub.Register(c)
			hub.Broadcast(venueId, NewMessage("calendar_event", "created", ""))
			hub.Unregister(c)
		}(i % 3)
	}
	wg.Wait()

	for venueId := 0; venueId < 3; venueId++ {
		assert.Equal(t, 0, hub.ClientCount(venueId))
	}
}

func TestSubscribeToBus(t *testing.T) {
	// given
	bus := event_bus.NewEventBus()
	hub := NewHub()
	c := mockClient(hub, 4)
	hub.Register(c)
	defer hub.Unregister(c)
	unsubscribe := SubscribeToBus(bus, hub)

	// when
	ctx := context.Background()
	require.NoError(t, bus.Publish(event_bus.NewEvent(ctx, event_bus.CalendarEventDeleted, event_bus.CalendarEventChanged{VenueId: 4, UID: "e-1"})))
	require.NoError(t, bus.Publish(event_bus.NewEvent(ctx, event_bus.VenueConfigUpdated, event_bus.VenueConfigChanged{VenueId: 4})))
	require.NoError(t, bus.Publish(event_bus.NewEvent(ctx, event_bus.CalendarEventCreated, event_bus.CalendarEventChanged{VenueId: 9, UID: "e-2"})))

	// then
	assert.Equal(t, NewMessage("calendar_event", "deleted", "e-1"), receive(t, c))
	assert.Equal(t, NewMessage("venue_config", "updated", ""), receive(t, c))
	assert.Empty(t, c.send)

	unsubscribe()
	require.NoError(t, bus.Publish(event_bus.NewEvent(ctx, event_bus.CalendarEventUpdated, event_bus.CalendarEventChanged{VenueId: 4, UID: "e-1"})))
	assert.Empty(t, c.send)
}
