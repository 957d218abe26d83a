package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bourbonvault/backend/internal/domain"
	"github.com/bourbonvault/backend/internal/infrastructure/memory"
	"github.com/bourbonvault/backend/internal/logger"
)

func newDashboard(t *testing.T, favorites domain.FavoriteRepository) (*DashboardService, *TastingNoteService, *FavoriteService, *CollectionService) {
	t.Helper()
	catalog, _ := newFixtureCatalog(t)
	store := memory.NewStore()
	log := logger.NewTestLogger(t)
	if favorites == nil {
		favorites = store.Favorites()
	}

	notes := NewTastingNoteService(store.TastingNotes(), catalog, log)
	favs := NewFavoriteService(favorites, catalog, log)
	collection := NewCollectionService(store.Collection(), catalog, log)
	return NewDashboardService(notes, favs, collection), notes, favs, collection
}

func TestDashboardService(t *testing.T) {
	ctx := context.Background()

	t.Run("empty journal", func(t *testing.T) {
		dash, _, _, _ := newDashboard(t, nil)

		got, err := dash.Get(ctx, "user-1")
		require.NoError(t, err)
		assert.Zero(t, got.NotesCount)
		assert.Nil(t, got.AverageRating)
		assert.NotNil(t, got.TopFlavors)
		assert.Empty(t, got.TopFlavors)
	})

	t.Run("summarises every part", func(t *testing.T) {
		dash, notes, favs, collection := newDashboard(t, nil)

		_, err := notes.Create(ctx, "user-1", domain.TastingNoteInput{BourbonID: "alpha", Rating: ptr(4.0), DiscernibleFlavors: []string{"Oak", "Vanilla"}})
		require.NoError(t, err)
		_, err = notes.Create(ctx, "user-1", domain.TastingNoteInput{BourbonID: "bravo", Rating: ptr(3.0), DiscernibleFlavors: []string{"Oak"}})
		require.NoError(t, err)
		_, err = notes.Create(ctx, "user-1", domain.TastingNoteInput{BourbonID: "delta"})
		require.NoError(t, err)
		_, err = favs.Add(ctx, "user-1", "delta")
		require.NoError(t, err)
		_, err = collection.Add(ctx, "user-1", domain.CollectionInput{BourbonID: "alpha", Status: domain.StatusOwn})
		require.NoError(t, err)

		got, err := dash.Get(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, 3, got.NotesCount)
		assert.Equal(t, 1, got.FavoritesCount)
		require.NotNil(t, got.AverageRating)
		assert.Equal(t, 3.5, *got.AverageRating)
		assert.Equal(t, domain.CollectionStats{Own: 1, Total: 1}, got.Collection)
		require.NotEmpty(t, got.TopFlavors)
		assert.Equal(t, "Oak", got.TopFlavors[0])
	})

	t.Run("any failing part fails the summary", func(t *testing.T) {
		dash, _, _, _ := newDashboard(t, brokenFavorites{})

		_, err := dash.Get(ctx, "user-1")
		assert.ErrorIs(t, err, errBoom)
	})

	t.Run("user is required", func(t *testing.T) {
		dash, _, _, _ := newDashboard(t, nil)
		_, err := dash.Get(ctx, "")
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	})
}

// brokenFavorites fails every read
type brokenFavorites struct {
	domain.FavoriteRepository
}

func (brokenFavorites) ListByUser(ctx context.Context, userID string) ([]domain.Favorite, error) {
	return nil, errBoom
}
