package calendar

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

type RepositoryStub struct {
	mu             sync.RWMutex
	items          map[uuid.UUID]Event // uid -> event
	venueIds       map[uuid.UUID]int   // uid -> venueId
	inTransaction  bool
	transactionErr error
	// FailWrites makes every write fail with this error when set.
	FailWrites error
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{
		items:    make(map[uuid.UUID]Event),
		venueIds: make(map[uuid.UUID]int),
	}
}

func (r *RepositoryStub) WithTransaction(ctx context.Context, fn func(repo Repository) error) error {
	r.mu.Lock()
	originalItems := maps.Clone(r.items)
	originalVenueIds := maps.Clone(r.venueIds)
	r.inTransaction = true
	r.transactionErr = nil
	r.mu.Unlock()

	err := fn(r)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.inTransaction = false
	if err != nil || r.transactionErr != nil {
		r.items = originalItems
		r.venueIds = originalVenueIds
		if err != nil {
			return err
		}
		return r.transactionErr
	}
	return nil
}

func (r *RepositoryStub) StoreEvent(ctx context.Context, venueId int, event Event) (uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailWrites != nil {
		return uuid.Nil, r.FailWrites
	}

	if event.UID == uuid.Nil {
		event.UID = uuid.New()
	}
	event.Attendees = slices.Clone(attendeesOrEmpty(event.Attendees))
	r.items[event.UID] = event
	r.venueIds[event.UID] = venueId
	return event.UID, nil
}

func (r *RepositoryStub) GetEvent(ctx context.Context, venueId int, uid uuid.UUID) (Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	event, ok := r.items[uid]
	if !ok || r.venueIds[uid] != venueId {
		return Event{}, ErrEventNotFound
	}
	return event, nil
}

func (r *RepositoryStub) GetEvents(ctx context.Context, venueId int, from, to time.Time) ([]Event, error) {
	return r.filter(venueId, func(e Event) bool {
		return !e.StartDate.After(to) && !e.EndDate.Before(from)
	}), nil
}

func (r *RepositoryStub) GetAllEvents(ctx context.Context, venueId int) ([]Event, error) {
	return r.filter(venueId, func(Event) bool { return true }), nil
}

func (r *RepositoryStub) filter(venueId int, keep func(Event) bool) []Event {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Event, 0)
	for uid, event := range r.items {
		if r.venueIds[uid] == venueId && keep(event) {
			result = append(result, event)
		}
	}
	slices.SortFunc(result, func(a, b Event) int {
		if c := a.StartDate.Compare(b.StartDate); c != 0 {
			return c
		}
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return result
}

func (r *RepositoryStub) UpdateEvent(ctx context.Context, venueId int, event Event, expectedUpdatedAt time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailWrites != nil {
		return false, r.FailWrites
	}

	current, ok := r.items[event.UID]
	if !ok || r.venueIds[event.UID] != venueId {
		return false, nil
	}
	if !expectedUpdatedAt.IsZero() && !current.UpdatedAt.Equal(expectedUpdatedAt) {
		return false, nil
	}
	event.CreatedAt = current.CreatedAt
	event.Attendees = slices.Clone(attendeesOrEmpty(event.Attendees))
	r.items[event.UID] = event
	return true, nil
}

func (r *RepositoryStub) DeleteEvent(ctx context.Context, venueId int, uid uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailWrites != nil {
		return false, r.FailWrites
	}

	if _, ok := r.items[uid]; !ok || r.venueIds[uid] != venueId {
		return false, nil
	}
	delete(r.items, uid)
	delete(r.venueIds, uid)
	return true, nil
}

// SetTransactionError makes the running transaction roll back.
func (r *RepositoryStub) SetTransactionError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transactionErr = err
}

func (r *RepositoryStub) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

func (r *RepositoryStub) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = make(map[uuid.UUID]Event)
	r.venueIds = make(map[uuid.UUID]int)
	r.inTransaction = false
	r.transactionErr = nil
	r.FailWrites = nil
}
