package venue

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"github.com/venuecal/venuecal/internal/apperr"
)

type Repository interface {
	// CreateVenue stores the venue together with its empty configuration.
	CreateVenue(ctx context.Context, venue Venue) (Venue, error)
	GetVenue(ctx context.Context, id int) (Venue, error)
	GetVenueByCode(ctx context.Context, code string) (Venue, error)
	UpdateVenue(ctx context.Context, venue Venue) (Venue, error)
	ListVenues(ctx context.Context) ([]Venue, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const uniqueViolation = "23505"

func (r *RepositoryImpl) CreateVenue(ctx context.Context, venue Venue) (Venue, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return Venue{}, apperr.Persistence("begin transaction", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO venue (code, name, google_calendar_id) VALUES ($1, $2, $3) RETURNING id, created_at`,
		venue.Code, venue.Name, venue.GoogleCalendarId,
	).Scan(&venue.Id, &venue.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return Venue{}, ErrVenueCodeTaken
		}
		log.Errorf("failed to create venue: %v", err)
		return Venue{}, apperr.Persistence("create venue", err)
	}

	_, err = tx.Exec(ctx, `INSERT INTO venue_config (venue_id, settings) VALUES ($1, '{}'::jsonb)`, venue.Id)
	if err != nil {
		log.Errorf("failed to create configuration for venue %d: %v", venue.Id, err)
		return Venue{}, apperr.Persistence("create venue configuration", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return Venue{}, apperr.Persistence("commit venue", err)
	}
	return venue, nil
}

func (r *RepositoryImpl) GetVenue(ctx context.Context, id int) (Venue, error) {
	return r.getVenue(ctx, "WHERE id = $1", id)
}

func (r *RepositoryImpl) GetVenueByCode(ctx context.Context, code string) (Venue, error) {
	return r.getVenue(ctx, "WHERE code = $1", code)
}

func (r *RepositoryImpl) getVenue(ctx context.Context, where string, arg any) (Venue, error) {
	var venue Venue
	err := r.db.QueryRow(ctx, "SELECT id, code, name, google_calendar_id, created_at FROM venue "+where, arg).
		Scan(&venue.Id, &venue.Code, &venue.Name, &venue.GoogleCalendarId, &venue.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		log.Debugf("venue %v not found", arg)
		return Venue{}, ErrVenueNotFound
	} else if err != nil {
		log.Errorf("failed to get venue: %v", err)
		return Venue{}, apperr.Persistence("get venue", err)
	}
	return venue, nil
}

func (r *RepositoryImpl) UpdateVenue(ctx context.Context, venue Venue) (Venue, error) {
	err := r.db.QueryRow(ctx,
		`UPDATE venue SET name = $1, google_calendar_id = $2 WHERE id = $3 RETURNING code, created_at`,
		venue.Name, venue.GoogleCalendarId, venue.Id,
	).Scan(&venue.Code, &venue.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Venue{}, ErrVenueNotFound
	} else if err != nil {
		log.Errorf("failed to update venue: %v", err)
		return Venue{}, apperr.Persistence("update venue", err)
	}
	return venue, nil
}

func (r *RepositoryImpl) ListVenues(ctx context.Context) ([]Venue, error) {
	rows, err := r.db.Query(ctx, "SELECT id, code, name, google_calendar_id, created_at FROM venue ORDER BY id")
	if err != nil {
		log.Errorf("failed to list venues: %v", err)
		return nil, apperr.Persistence("list venues", err)
	}
	defer rows.Close()

	venues := make([]Venue, 0, 4)
	for rows.Next() {
		var venue Venue
		if err := rows.Scan(&venue.Id, &venue.Code, &venue.Name, &venue.GoogleCalendarId, &venue.CreatedAt); err != nil {
			return nil, apperr.Persistence("scan venue", err)
		}
		venues = append(venues, venue)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Persistence("iterate venues", err)
	}
	return venues, nil
}
