package websocket

import (
	"github.com/venuecal/venuecal/internal/event_bus"
)

const (
	entityEvent  = "calendar_event"
	entityConfig = "venue_config"
)

var eventActions = map[event_bus.EventType]string{
	event_bus.CalendarEventCreated: "created",
	event_bus.CalendarEventUpdated: "updated",
	event_bus.CalendarEventDeleted: "deleted",
}

// SubscribeToBus forwards calendar and configuration changes to the venue's clients.
func SubscribeToBus(bus *event_bus.EventBus, hub *Hub) (unsubscribe func()) {
	var unsubscribes []func()
	for eventType, action := range eventActions {
		unsubscribes = append(unsubscribes, event_bus.SubscribeTyped(bus, eventType,
			func(e event_bus.EventT[event_bus.CalendarEventChanged]) error {
				hub.Broadcast(e.Data.VenueId, NewMessage(entityEvent, action, e.Data.UID))
				return nil
			}))
	}
	unsubscribes = append(unsubscribes, event_bus.SubscribeTyped(bus, event_bus.VenueConfigUpdated,
		func(e event_bus.EventT[event_bus.VenueConfigChanged]) error {
			hub.Broadcast(e.Data.VenueId, NewMessage(entityConfig, "updated", ""))
			return nil
		}))

	return func() {
		for _, unsubscribe := range unsubscribes {
			unsubscribe()
		}
	}
}
