package venue_config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"github.com/venuecal/venuecal/internal/apperr"
)

type Repository interface {
	// GetConfig returns the venue's stored overrides. ErrConfigNotFound if the venue has no configuration row.
	GetConfig(ctx context.Context, venueId int) (ConfigPatch, error)
	// StoreConfig replaces the venue's stored overrides, option lists included.
	StoreConfig(ctx context.Context, venueId int, patch ConfigPatch) error
	// ListCategories returns default categories (VenueId == nil) followed by the venue's own.
	ListCategories(ctx context.Context, venueId int) ([]CategoryOption, error)
	ListPriorities(ctx context.Context, venueId int) ([]PriorityOption, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) GetConfig(ctx context.Context, venueId int) (ConfigPatch, error) {
	var settings []byte
	err := r.db.QueryRow(ctx, "SELECT settings FROM venue_config WHERE venue_id = $1", venueId).Scan(&settings)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ConfigPatch{}, ErrConfigNotFound
		}
		log.Errorf("failed to read configuration of venue %d: %v", venueId, err)
		return ConfigPatch{}, apperr.Persistence("read configuration", err)
	}

	var patch ConfigPatch
	if err := json.Unmarshal(settings, &patch); err != nil {
		log.Errorf("stored configuration of venue %d is not readable: %v", venueId, err)
		return ConfigPatch{}, apperr.Persistence("decode configuration", err)
	}

	if patch.Locations, err = r.getLocations(ctx, venueId); err != nil {
		return ConfigPatch{}, err
	}
	if patch.CustomCategories, err = r.getCustomCategories(ctx, venueId); err != nil {
		return ConfigPatch{}, err
	}
	if patch.CustomPriorities, err = r.getCustomPriorities(ctx, venueId); err != nil {
		return ConfigPatch{}, err
	}
	return patch, nil
}

func (r *RepositoryImpl) StoreConfig(ctx context.Context, venueId int, patch ConfigPatch) error {
	settings := patch
	settings.Locations = nil
	settings.CustomCategories = nil
	settings.CustomPriorities = nil
	settingsJson, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return apperr.Persistence("begin transaction", err)
	}
	defer tx.Rollback(ctx)

	const upsertSettings = `
		INSERT INTO venue_config (venue_id, settings, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (venue_id)
		DO UPDATE SET settings = EXCLUDED.settings, updated_at = EXCLUDED.updated_at`
	if _, err := tx.Exec(ctx, upsertSettings, venueId, settingsJson); err != nil {
		log.Errorf("failed to store configuration of venue %d: %v", venueId, err)
		return apperr.Persistence("store configuration", err)
	}

	for _, table := range []string{"location_option", "category_option", "priority_option"} {
		if _, err := tx.Exec(ctx, "DELETE FROM "+table+" WHERE venue_id = $1", venueId); err != nil {
			log.Errorf("failed to clear %s of venue %d: %v", table, venueId, err)
			return apperr.Persistence("clear "+table, err)
		}
	}

	locationRows := make([][]any, 0, len(patch.Locations))
	for i, l := range patch.Locations {
		locationRows = append(locationRows, []any{venueId, l.Id, l.Name, l.Address, l.Capacity, l.IsActive, i})
	}
	err = insertRows(ctx, tx, "location_option (venue_id, id, name, address, capacity, is_active, position)", locationRows)
	if err != nil {
		return err
	}

	categoryRows := make([][]any, 0, len(patch.CustomCategories))
	for i, c := range patch.CustomCategories {
		categoryRows = append(categoryRows, []any{venueId, c.Id, c.Name, c.Color, c.IsActive, i})
	}
	err = insertRows(ctx, tx, "category_option (venue_id, id, name, color, is_active, position)", categoryRows)
	if err != nil {
		return err
	}

	priorityRows := make([][]any, 0, len(patch.CustomPriorities))
	for i, p := range patch.CustomPriorities {
		priorityRows = append(priorityRows, []any{venueId, p.Id, p.Name, p.Color, p.Level, p.IsActive, i})
	}
	err = insertRows(ctx, tx, "priority_option (venue_id, id, name, color, level, is_active, position)", priorityRows)
	if err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return apperr.Persistence("commit configuration", err)
	}
	return nil
}

// insertRows batch inserts rows into target, a "table (columns...)" clause.
func insertRows(ctx context.Context, tx pgx.Tx, target string, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}
	var query strings.Builder
	query.WriteString("INSERT INTO " + target + " VALUES ")
	values := make([]any, 0, len(rows)*len(rows[0]))
	for i, row := range rows {
		if i > 0 {
			query.WriteString(",")
		}
		query.WriteString("(")
		for j := range row {
			if j > 0 {
				query.WriteString(", ")
			}
			fmt.Fprintf(&query, "$%d", len(values)+j+1)
		}
		query.WriteString(")")
		values = append(values, row...)
	}
	if _, err := tx.Exec(ctx, query.String(), values...); err != nil {
		log.Errorf("failed to insert into %s: %v", target, err)
		return apperr.Persistence("insert options", err)
	}
	return nil
}

func (r *RepositoryImpl) getLocations(ctx context.Context, venueId int) ([]LocationOption, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, venue_id, name, address, capacity, is_active FROM location_option
				WHERE venue_id = $1 ORDER BY position`, venueId)
	if err != nil {
		log.Errorf("failed to query locations: %v", err)
		return nil, apperr.Persistence("query locations", err)
	}
	defer rows.Close()

	var locations []LocationOption
	for rows.Next() {
		var location LocationOption
		err := rows.Scan(&location.Id, &location.VenueId, &location.Name, &location.Address, &location.Capacity, &location.IsActive)
		if err != nil {
			return nil, apperr.Persistence("scan location", err)
		}
		locations = append(locations, location)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Persistence("iterate locations", err)
	}
	return locations, nil
}

func (r *RepositoryImpl) getCustomCategories(ctx context.Context, venueId int) ([]CategoryOption, error) {
	categories, err := r.queryCategories(ctx, "WHERE venue_id = $1 ORDER BY position", venueId)
	if len(categories) == 0 {
		return nil, err
	}
	return categories, err
}

func (r *RepositoryImpl) getCustomPriorities(ctx context.Context, venueId int) ([]PriorityOption, error) {
	priorities, err := r.queryPriorities(ctx, "WHERE venue_id = $1 ORDER BY position", venueId)
	if len(priorities) == 0 {
		return nil, err
	}
	return priorities, err
}

func (r *RepositoryImpl) ListCategories(ctx context.Context, venueId int) ([]CategoryOption, error) {
	return r.queryCategories(ctx, "WHERE venue_id IS NULL OR venue_id = $1 ORDER BY venue_id NULLS FIRST, position", venueId)
}

func (r *RepositoryImpl) ListPriorities(ctx context.Context, venueId int) ([]PriorityOption, error) {
	return r.queryPriorities(ctx, "WHERE venue_id IS NULL OR venue_id = $1 ORDER BY venue_id NULLS FIRST, position", venueId)
}

func (r *RepositoryImpl) queryCategories(ctx context.Context, where string, venueId int) ([]CategoryOption, error) {
	rows, err := r.db.Query(ctx, "SELECT id, venue_id, name, color, is_active FROM category_option "+where, venueId)
	if err != nil {
		log.Errorf("failed to query categories: %v", err)
		return nil, apperr.Persistence("query categories", err)
	}
	defer rows.Close()

	categories := make([]CategoryOption, 0, 8)
	for rows.Next() {
		var category CategoryOption
		if err := rows.Scan(&category.Id, &category.VenueId, &category.Name, &category.Color, &category.IsActive); err != nil {
			return nil, apperr.Persistence("scan category", err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Persistence("iterate categories", err)
	}
	return categories, nil
}

func (r *RepositoryImpl) queryPriorities(ctx context.Context, where string, venueId int) ([]PriorityOption, error) {
	rows, err := r.db.Query(ctx, "SELECT id, venue_id, name, color, level, is_active FROM priority_option "+where, venueId)
	if err != nil {
		log.Errorf("failed to query priorities: %v", err)
		return nil, apperr.Persistence("query priorities", err)
	}
	defer rows.Close()

	priorities := make([]PriorityOption, 0, 8)
	for rows.Next() {
		var priority PriorityOption
		err := rows.Scan(&priority.Id, &priority.VenueId, &priority.Name, &priority.Color, &priority.Level, &priority.IsActive)
		if err != nil {
			return nil, apperr.Persistence("scan priority", err)
		}
		priorities = append(priorities, priority)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Persistence("iterate priorities", err)
	}
	return priorities, nil
}
