package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bourbonvault/backend/internal/domain"
	"github.com/bourbonvault/backend/internal/infrastructure/memory"
	"github.com/bourbonvault/backend/internal/logger"
)

func newFavoriteService(t *testing.T) (*FavoriteService, *flakyFavorites) {
	t.Helper()
	svc, repo, _ := newFavoriteServiceWithClock(t)
	return svc, repo
}

func newFavoriteServiceWithClock(t *testing.T) (*FavoriteService, *flakyFavorites, *manualClock) {
	t.Helper()
	catalog, _ := newFixtureCatalog(t)
	repo := &flakyFavorites{FavoriteRepository: memory.NewStore().Favorites()}
	svc := NewFavoriteService(repo, catalog, logger.NewTestLogger(t))
	clock := newManualClock(clockStart)
	svc.now = clock.Now
	return svc, repo, clock
}

func favoriteIDs(favs []domain.Favorite) []string {
	out := make([]string, len(favs))
	for i, f := range favs {
		out[i] = f.BourbonID
	}
	return out
}

func TestFavoriteService_AddRemove(t *testing.T) {
	ctx := context.Background()
	svc, repo := newFavoriteService(t)

	_, err := svc.Add(ctx, "user-1", "alpha")
	require.NoError(t, err)
	_, err = svc.Add(ctx, "user-1", "bravo")
	require.NoError(t, err)

	favs, err := svc.List(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"bravo", "alpha"}, favoriteIDs(favs))
	assert.Equal(t, 1, repo.listCalls)

	_, err = svc.Add(ctx, "user-1", "alpha")
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	_, err = svc.Add(ctx, "user-1", "zulu")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, svc.Remove(ctx, "user-1", "alpha"))
	assert.ErrorIs(t, svc.Remove(ctx, "user-1", "alpha"), domain.ErrNotFound)

	isFav, err := svc.IsFavorite(ctx, "user-1", "bravo")
	require.NoError(t, err)
	assert.True(t, isFav)

	others, err := svc.List(ctx, "user-2")
	require.NoError(t, err)
	assert.NotNil(t, others)
	assert.Empty(t, others)
}

func TestFavoriteService_RollsBackFailedWrites(t *testing.T) {
	ctx := context.Background()

	t.Run("add", func(t *testing.T) {
		svc, repo := newFavoriteService(t)
		_, err := svc.Add(ctx, "user-1", "alpha")
		require.NoError(t, err)

		repo.addErr = errBoom
		_, err = svc.Add(ctx, "user-1", "bravo")
		assert.ErrorIs(t, err, errBoom)

		favs, err := svc.List(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, []string{"alpha"}, favoriteIDs(favs))
	})

	t.Run("remove", func(t *testing.T) {
		svc, repo := newFavoriteService(t)
		_, err := svc.Add(ctx, "user-1", "alpha")
		require.NoError(t, err)

		repo.removeErr = errBoom
		assert.ErrorIs(t, svc.Remove(ctx, "user-1", "alpha"), errBoom)

		favs, err := svc.List(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, []string{"alpha"}, favoriteIDs(favs))
	})
}

func TestFavoriteService_Toggle(t *testing.T) {
	ctx := context.Background()
	svc, _ := newFavoriteService(t)

	active, err := svc.Toggle(ctx, "user-1", "delta")
	require.NoError(t, err)
	assert.True(t, active)

	active, err = svc.Toggle(ctx, "user-1", "delta")
	require.NoError(t, err)
	assert.False(t, active)

	_, err = svc.Toggle(ctx, "", "delta")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestFavoriteService_Invalidate(t *testing.T) {
	ctx := context.Background()
	svc, repo := newFavoriteService(t)

	_, err := svc.List(ctx, "user-1")
	require.NoError(t, err)
	_, err = svc.List(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, repo.listCalls)

	svc.Invalidate("user-1")
	_, err = svc.List(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 2, repo.listCalls)
}

func TestFavoriteService_FailedAddKeepsConcurrentWrites(t *testing.T) {
	ctx := context.Background()
	catalog, _ := newFixtureCatalog(t)
	repo := &gatedFavorites{
		FavoriteRepository: memory.NewStore().Favorites(),
		failBourbon:        "alpha",
		started:            make(chan struct{}),
		release:            make(chan struct{}),
	}
	svc := NewFavoriteService(repo, catalog, logger.NewTestLogger(t))

	// Warm the view so both writers share it.
	_, err := svc.List(ctx, "user-1")
	require.NoError(t, err)

	var wg sync.WaitGroup
	var failed error
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, failed = svc.Add(ctx, "user-1", "alpha")
	}()

	<-repo.started
	_, err = svc.Add(ctx, "user-1", "bravo")
	require.NoError(t, err)
	close(repo.release)
	wg.Wait()

	assert.ErrorIs(t, failed, errBoom)

	favs, err := svc.List(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"bravo"}, favoriteIDs(favs))

	stored, err := repo.FavoriteRepository.ListByUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"bravo"}, favoriteIDs(stored))
}

func TestFavoriteService_FailedRemoveKeepsConcurrentWrites(t *testing.T) {
	ctx := context.Background()
	svc, repo := newFavoriteService(t)

	_, err := svc.Add(ctx, "user-1", "alpha")
	require.NoError(t, err)

	repo.removeErr = errBoom
	assert.ErrorIs(t, svc.Remove(ctx, "user-1", "alpha"), errBoom)
	repo.removeErr = nil

	_, err = svc.Add(ctx, "user-1", "bravo")
	require.NoError(t, err)

	favs, err := svc.List(ctx, "user-1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"alpha", "bravo"}, favoriteIDs(favs))
}

func TestFavoriteService_ViewExpires(t *testing.T) {
	ctx := context.Background()
	svc, repo, clock := newFavoriteServiceWithClock(t)

	favs, err := svc.List(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, favs)

	// Another replica writes straight to the shared store.
	require.NoError(t, repo.FavoriteRepository.Add(ctx, &domain.Favorite{
		ID: "other", UserID: "user-1", BourbonID: "delta", CreatedAt: clockStart,
	}))

	favs, err = svc.List(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, favs)

	clock.Advance(DefaultFavoriteViewTTL)
	favs, err = svc.List(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"delta"}, favoriteIDs(favs))
	assert.Equal(t, 2, repo.listCalls)

	t.Run("expired views of other users are evicted", func(t *testing.T) {
		_, err := svc.List(ctx, "user-2")
		require.NoError(t, err)
		clock.Advance(DefaultFavoriteViewTTL)
		_, err = svc.List(ctx, "user-3")
		require.NoError(t, err)

		svc.mu.Lock()
		defer svc.mu.Unlock()
		assert.NotContains(t, svc.views, "user-1")
		assert.NotContains(t, svc.views, "user-2")
		assert.Contains(t, svc.views, "user-3")
	})
}

func TestFavoriteService_ConflictReloadsView(t *testing.T) {
	ctx := context.Background()
	svc, repo := newFavoriteService(t)

	_, err := svc.List(ctx, "user-1")
	require.NoError(t, err)
	require.NoError(t, repo.FavoriteRepository.Add(ctx, &domain.Favorite{
		ID: "other", UserID: "user-1", BourbonID: "alpha", CreatedAt: clockStart.Add(-time.Hour),
	}))

	_, err = svc.Add(ctx, "user-1", "alpha")
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	favs, err := svc.List(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha"}, favoriteIDs(favs))
	assert.Equal(t, "other", favs[0].ID)
}

// gatedFavorites holds the write for failBourbon until release is closed,
// then fails it
type gatedFavorites struct {
	domain.FavoriteRepository
	failBourbon string
	started     chan struct{}
	release     chan struct{}
}

func (r *gatedFavorites) Add(ctx context.Context, fav *domain.Favorite) error {
	if fav.BourbonID != r.failBourbon {
		return r.FavoriteRepository.Add(ctx, fav)
	}
	close(r.started)
	<-r.release
	return errBoom
}
