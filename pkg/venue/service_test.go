package venue

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/venuecal/venuecal/internal/apperr"
)

var repoStub = NewRepositoryStub()

func setupService(t *testing.T) *ServiceImpl {
	t.Cleanup(repoStub.Reset)
	return NewService(repoStub)
}

func TestServiceImpl_CreateVenue(t *testing.T) {
	t.Run("should create a venue", func(t *testing.T) {
		service := setupService(t)

		// when
		created, err := service.CreateVenue(context.Background(), "grand-hall", " Grand Hall ")

		// then
		require.NoError(t, err)
		assert.NotZero(t, created.Id)
		assert.Equal(t, "grand-hall", created.Code)
		assert.Equal(t, "Grand Hall", created.Name)
	})

	t.Run("should reject invalid codes", func(t *testing.T) {
		service := setupService(t)

		for _, code := range []string{"", "a", "Grand Hall", "-leading", "under_score"} {
			_, err := service.CreateVenue(context.Background(), code, "Name")
			assert.True(t, apperr.IsValidation(err), "code %q should be rejected", code)
		}
	})

	t.Run("should require a name", func(t *testing.T) {
		service := setupService(t)

		_, err := service.CreateVenue(context.Background(), "grand-hall", "  ")

		assert.True(t, apperr.IsValidation(err))
	})

	t.Run("should report taken codes as conflict", func(t *testing.T) {
		service := setupService(t)
		_, err := service.CreateVenue(context.Background(), "grand-hall", "Grand Hall")
		require.NoError(t, err)

		_, err = service.CreateVenue(context.Background(), "grand-hall", "Another")

		assert.ErrorIs(t, err, apperr.ErrConflict)
	})
}

func TestServiceImpl_CurrentVenue(t *testing.T) {
	t.Run("should read and update the venue from context", func(t *testing.T) {
		service := setupService(t)
		created, err := service.CreateVenue(context.Background(), "grand-hall", "Grand Hall")
		require.NoError(t, err)
		ctx := WithVenue(context.Background(), created)

		// when
		updated, err := service.UpdateCurrentVenue(ctx, "The Grand Hall", "cal@group.calendar.google.com")
		require.NoError(t, err)
		current, err := service.GetCurrentVenue(ctx)
		require.NoError(t, err)

		// then
		assert.Equal(t, "The Grand Hall", updated.Name)
		assert.Equal(t, "grand-hall", current.Code)
		assert.Equal(t, "cal@group.calendar.google.com", current.GoogleCalendarId)
	})

	t.Run("should fail without venue in context", func(t *testing.T) {
		service := setupService(t)

		_, err := service.GetCurrentVenue(context.Background())

		assert.ErrorIs(t, err, ErrNoVenue)
		assert.Contains(t, err.Error(), "failed to get current venue")
	})

	t.Run("should report missing venue as not found", func(t *testing.T) {
		service := setupService(t)
		ctx := WithVenue(context.Background(), Venue{Id: 404, Code: "gone"})

		_, err := service.UpdateCurrentVenue(ctx, "Name", "")

		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}
