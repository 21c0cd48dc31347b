package venue

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/venuecal/venuecal/internal/test_utils"
)

var pgContainer *postgres.PostgresContainer
var openDb func() *pgxpool.Pool

func TestMain(m *testing.M) {
	pgContainer, openDb = test_utils.TestWithDB()
	code := m.Run()
	if err := testcontainers.TerminateContainer(pgContainer); err != nil {
		log.Errorf("failed to terminate container: %s", err)
	}
	os.Exit(code)
}

func setupTestRepository(t *testing.T) (context.Context, *RepositoryImpl, *pgxpool.Pool) {
	ctx := context.Background()
	db := openDb()
	t.Cleanup(func() {
		db.Close()
		err := pgContainer.Restore(ctx)
		require.NoError(t, err)
	})
	return ctx, NewRepository(db), db
}

func TestRepositoryImpl_CreateVenue(t *testing.T) {
	t.Run("should store venue with empty configuration", func(t *testing.T) {
		// given
		ctx, repo, db := setupTestRepository(t)

		// when
		created, err := repo.CreateVenue(ctx, Venue{Code: "grand-hall", Name: "Grand Hall"})

		// then
		require.NoError(t, err)
		assert.NotZero(t, created.Id)
		assert.False(t, created.CreatedAt.IsZero())

		var settings string
		err = db.QueryRow(ctx, "SELECT settings::text FROM venue_config WHERE venue_id = $1", created.Id).Scan(&settings)
		require.NoError(t, err)
		assert.Equal(t, "{}", settings)
	})

	t.Run("should reject duplicate code", func(t *testing.T) {
		// given
		ctx, repo, _ := setupTestRepository(t)
		_, err := repo.CreateVenue(ctx, Venue{Code: "grand-hall", Name: "Grand Hall"})
		require.NoError(t, err)

		// when
		_, err = repo.CreateVenue(ctx, Venue{Code: "grand-hall", Name: "Copy"})

		// then
		assert.ErrorIs(t, err, ErrVenueCodeTaken)
	})
}

func TestRepositoryImpl_GetAndUpdateVenue(t *testing.T) {
	// given
	ctx, repo, _ := setupTestRepository(t)
	created, err := repo.CreateVenue(ctx, Venue{Code: "grand-hall", Name: "Grand Hall"})
	require.NoError(t, err)

	// when
	byCode, err := repo.GetVenueByCode(ctx, "grand-hall")
	require.NoError(t, err)
	updated, err := repo.UpdateVenue(ctx, Venue{Id: created.Id, Name: "Renamed", GoogleCalendarId: "cal-1"})
	require.NoError(t, err)
	byId, err := repo.GetVenue(ctx, created.Id)
	require.NoError(t, err)
	venues, err := repo.ListVenues(ctx)
	require.NoError(t, err)

	// then
	assert.Equal(t, created.Id, byCode.Id)
	assert.Equal(t, "grand-hall", updated.Code)
	assert.Equal(t, "Renamed", byId.Name)
	assert.Equal(t, "cal-1", byId.GoogleCalendarId)
	assert.Len(t, venues, 1)
}

func TestRepositoryImpl_MissingVenue(t *testing.T) {
	ctx, repo, _ := setupTestRepository(t)

	_, err := repo.GetVenueByCode(ctx, "nowhere")
	assert.ErrorIs(t, err, ErrVenueNotFound)

	_, err = repo.GetVenue(ctx, 999)
	assert.ErrorIs(t, err, ErrVenueNotFound)

	_, err = repo.UpdateVenue(ctx, Venue{Id: 999, Name: "x"})
	assert.ErrorIs(t, err, ErrVenueNotFound)
}
