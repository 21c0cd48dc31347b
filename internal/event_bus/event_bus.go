package event_bus

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// EventType is an identifier for events, e.g. "calendar.event.created".
type EventType string

// Event is the generic envelope used by the bus. Data is kept as any so different
// payload types can travel on the same bus.
type Event struct {
	ctx       context.Context
	Type      EventType
	Timestamp time.Time
	Data      any
}

// NewEvent creates an Event stamped with the current time.
func NewEvent(ctx context.Context, eventType EventType, data any) Event {
	return Event{
		ctx:       ctx,
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      data,
	}
}

// Context returns the context of the publishing request. Handlers use it for venue lookups
// and cancellation.
func (e Event) Context() context.Context {
	if e.ctx == nil {
		return context.Background()
	}
	return e.ctx
}

// EventT is a typed envelope used by typed handlers.
type EventT[T any] struct {
	ctx       context.Context
	Type      EventType
	Timestamp time.Time
	Data      T
}

func (e EventT[T]) Context() context.Context {
	if e.ctx == nil {
		return context.Background()
	}
	return e.ctx
}

type subscription struct {
	id uint64
	h  func(Event) error
}

// EventBus is a concurrency-safe synchronous event dispatcher. Handlers of a type run
// sequentially, in subscription order, inside Publish.
type EventBus struct {
	mu          sync.RWMutex
	subscribers map[EventType][]subscription
	nextID      uint64
}

func NewEventBus() *EventBus {
	return &EventBus{
		subscribers: make(map[EventType][]subscription),
	}
}

// Subscribe registers h for eventType and returns a function removing it again.
func (eb *EventBus) Subscribe(eventType EventType, h func(Event) error) (unsubscribe func()) {
	eb.mu.Lock()
	eb.nextID++
	id := eb.nextID
	eb.subscribers[eventType] = append(eb.subscribers[eventType], subscription{id: id, h: h})
	eb.mu.Unlock()

	return func() {
		eb.mu.Lock()
		defer eb.mu.Unlock()

		remaining := slices.DeleteFunc(eb.subscribers[eventType], func(s subscription) bool { return s.id == id })
		if len(remaining) == 0 {
			delete(eb.subscribers, eventType)
			return
		}
		eb.subscribers[eventType] = remaining
	}
}

// SubscribeTyped registers a handler for a specific payload type T. Events of eventType whose payload
// is not a T are skipped.
//
// Example:
//
//	unsub := event_bus.SubscribeTyped[event_bus.CalendarEventChanged](bus, event_bus.CalendarEventCreated,
//	    func(e event_bus.EventT[event_bus.CalendarEventChanged]) error {
//	        log.Infof("venue %d created event %s", e.Data.VenueId, e.Data.UID)
//	        return nil
//	    })
func SubscribeTyped[T any](eb *EventBus, eventType EventType, h func(EventT[T]) error) (unsubscribe func()) {
	wrapper := func(e Event) error {
		payload, ok := e.Data.(T)
		if !ok {
			log.Debugf("EventBus: skipping %s, expected %T payload, got %T", eventType, *new(T), e.Data)
			return nil
		}
		return h(EventT[T]{
			ctx:       e.ctx,
			Type:      e.Type,
			Timestamp: e.Timestamp,
			Data:      payload,
		})
	}
	return eb.Subscribe(eventType, wrapper)
}

// Publish runs every handler registered for e.Type. A failing or panicking handler does not stop the
// others; all failures are returned joined. Remaining handlers are skipped once the context is done.
func (eb *EventBus) Publish(e Event) error {
	if err := e.Context().Err(); err != nil {
		return fmt.Errorf("event %s: context cancelled before publish: %w", e.Type, err)
	}

	eb.mu.RLock()
	handlers := slices.Clone(eb.subscribers[e.Type])
	eb.mu.RUnlock()

	var errs []error
	for _, s := range handlers {
		if err := e.Context().Err(); err != nil {
			errs = append(errs, fmt.Errorf("context cancelled during event processing: %w", err))
			break
		}

		err := func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("handler panic (ID %d) for event %s: %v", s.id, e.Type, r)
				}
			}()
			return s.h(e)
		}()
		if err != nil {
			log.Errorf("EventBus: handler error (ID %d) for event %s: %v", s.id, e.Type, err)
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("event %s: %d handler(s) failed: %w", e.Type, len(errs), errors.Join(errs...))
	}
	return nil
}
