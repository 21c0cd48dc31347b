package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"github.com/venuecal/venuecal/internal/apperr"
)

type Repository interface {
	WithTransaction(ctx context.Context, fn func(repo Repository) error) error
	StoreEvent(ctx context.Context, venueId int, event Event) (uuid.UUID, error)
	GetEvent(ctx context.Context, venueId int, uid uuid.UUID) (Event, error)
	// GetEvents returns every event overlapping [from, to], ordered by start.
	GetEvents(ctx context.Context, venueId int, from, to time.Time) ([]Event, error)
	GetAllEvents(ctx context.Context, venueId int) ([]Event, error)
	// UpdateEvent overwrites the event. When expectedUpdatedAt is not zero the row is only written if
	// it still carries that timestamp. Returns false when no row was written.
	UpdateEvent(ctx context.Context, venueId int, event Event, expectedUpdatedAt time.Time) (bool, error)
	DeleteEvent(ctx context.Context, venueId int, uid uuid.UUID) (bool, error)
}

type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type RepositoryImpl struct {
	db *pgxpool.Pool
	tx pgx.Tx
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

// getQueryer returns the transaction when running inside WithTransaction.
func (r *RepositoryImpl) getQueryer() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

func (r *RepositoryImpl) WithTransaction(ctx context.Context, fn func(repo Repository) error) error {
	if r.tx != nil {
		return fn(r)
	}
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return apperr.Persistence("begin transaction", err)
	}
	defer func() {
		// no-op after commit
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			log.Errorf("rollback error: %v", rbErr)
		}
	}()

	if err := fn(&RepositoryImpl{db: r.db, tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return apperr.Persistence("commit transaction", err)
	}
	return nil
}

const eventColumns = `uid, title, description, start_date, end_date, location, category, priority, attendees, created_at, updated_at`

func (r *RepositoryImpl) StoreEvent(ctx context.Context, venueId int, event Event) (uuid.UUID, error) {
	query := `INSERT INTO calendar_event (venue_id, ` + eventColumns + `)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	uid := event.UID
	if uid == uuid.Nil {
		uid = uuid.New()
	}
	_, err := r.getQueryer().Exec(ctx, query,
		venueId,
		uid,
		event.Title,
		event.Description,
		event.StartDate,
		event.EndDate,
		event.Location,
		event.Category,
		event.Priority,
		attendeesOrEmpty(event.Attendees),
		event.CreatedAt,
		event.UpdatedAt,
	)
	if err != nil {
		log.Errorf("could not store event: %v", err)
		return uuid.Nil, apperr.Persistence("insert event", err)
	}
	return uid, nil
}

func (r *RepositoryImpl) GetEvent(ctx context.Context, venueId int, uid uuid.UUID) (Event, error) {
	query := `SELECT ` + eventColumns + ` FROM calendar_event WHERE venue_id = $1 AND uid = $2`

	event, err := scanEvent(r.getQueryer().QueryRow(ctx, query, venueId, uid))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Event{}, ErrEventNotFound
		}
		log.Errorf("could not get event %s: %v", uid, err)
		return Event{}, apperr.Persistence("get event", err)
	}
	return event, nil
}

func (r *RepositoryImpl) GetEvents(ctx context.Context, venueId int, from, to time.Time) ([]Event, error) {
	// An event overlaps the period when it starts before the period ends
	// and ends after the period starts.
	query := `SELECT ` + eventColumns + `
			  FROM calendar_event
			  WHERE venue_id = $1
				AND start_date <= $2
				AND end_date >= $3
			  ORDER BY start_date, created_at`

	return r.queryEvents(ctx, query, venueId, to, from)
}

func (r *RepositoryImpl) GetAllEvents(ctx context.Context, venueId int) ([]Event, error) {
	query := `SELECT ` + eventColumns + ` FROM calendar_event WHERE venue_id = $1 ORDER BY start_date, created_at`
	return r.queryEvents(ctx, query, venueId)
}

func (r *RepositoryImpl) queryEvents(ctx context.Context, query string, args ...any) ([]Event, error) {
	rows, err := r.getQueryer().Query(ctx, query, args...)
	if err != nil {
		log.Errorf("could not query calendar events: %v", err)
		return nil, apperr.Persistence("query events", err)
	}
	defer rows.Close()

	events := make([]Event, 0, 10)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			log.Errorf("could not scan row: %v", err)
			return nil, apperr.Persistence("scan event", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Persistence("iterate events", err)
	}
	return events, nil
}

func (r *RepositoryImpl) UpdateEvent(ctx context.Context, venueId int, event Event, expectedUpdatedAt time.Time) (bool, error) {
	query := `UPDATE calendar_event
				SET title = $1, description = $2, start_date = $3, end_date = $4, location = $5,
				    category = $6, priority = $7, attendees = $8, updated_at = $9
				WHERE uid = $10 AND venue_id = $11 AND ($12::timestamptz IS NULL OR updated_at = $12)`

	var expected *time.Time
	if !expectedUpdatedAt.IsZero() {
		expected = &expectedUpdatedAt
	}
	tag, err := r.getQueryer().Exec(ctx, query,
		event.Title,
		event.Description,
		event.StartDate,
		event.EndDate,
		event.Location,
		event.Category,
		event.Priority,
		attendeesOrEmpty(event.Attendees),
		event.UpdatedAt,
		event.UID,
		venueId,
		expected,
	)
	if err != nil {
		log.Errorf("could not update event %s: %v", event.UID, err)
		return false, apperr.Persistence("update event", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *RepositoryImpl) DeleteEvent(ctx context.Context, venueId int, uid uuid.UUID) (bool, error) {
	tag, err := r.getQueryer().Exec(ctx, `DELETE FROM calendar_event WHERE uid = $1 AND venue_id = $2`, uid, venueId)
	if err != nil {
		log.Errorf("could not delete event %s: %v", uid, err)
		return false, apperr.Persistence("delete event", err)
	}
	return tag.RowsAffected() == 1, nil
}

func scanEvent(row pgx.Row) (Event, error) {
	var event Event
	err := row.Scan(
		&event.UID,
		&event.Title,
		&event.Description,
		&event.StartDate,
		&event.EndDate,
		&event.Location,
		&event.Category,
		&event.Priority,
		&event.Attendees,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		return Event{}, fmt.Errorf("scan event: %w", err)
	}
	return event, nil
}

func attendeesOrEmpty(attendees []string) []string {
	if attendees == nil {
		return []string{}
	}
	return attendees
}
