package test_utils

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// CreateTestVenue inserts a venue with an empty configuration and returns its id.
func CreateTestVenue(t *testing.T, ctx context.Context, db *pgxpool.Pool, code string) int {
	t.Helper()
	var venueId int
	err := db.QueryRow(ctx, "INSERT INTO venue (code, name) VALUES ($1, $2) RETURNING id", code, code).Scan(&venueId)
	require.NoError(t, err)
	_, err = db.Exec(ctx, "INSERT INTO venue_config (venue_id) VALUES ($1)", venueId)
	require.NoError(t, err)
	return venueId
}
