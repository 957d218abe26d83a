package usecase

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bourbonvault/backend/internal/domain"
)

// memSessions is a map-backed SessionStore
type memSessions struct {
	mu     sync.Mutex
	lists  map[string][]string
	setErr error
}

func newMemSessions() *memSessions {
	return &memSessions{lists: make(map[string][]string)}
}

func (s *memSessions) GetList(ctx context.Context, sessionID, list string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.lists[sessionID+":"+list]...), nil
}

func (s *memSessions) SetList(ctx context.Context, sessionID, list string, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.setErr != nil {
		return s.setErr
	}
	s.lists[sessionID+":"+list] = append([]string(nil), ids...)
	return nil
}

func (s *memSessions) Clear(ctx context.Context, sessionID, list string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.lists, sessionID+":"+list)
	return nil
}

func TestCompareService(t *testing.T) {
	ctx := context.Background()
	catalog, provider := newFixtureCatalog(t)
	provider.items = append(provider.items, domain.Bourbon{ID: "echo", Name: "Echo"})
	svc := NewCompareService(newMemSessions(), catalog)

	for _, id := range []string{"delta", "alpha", "bravo", "charlie"} {
		added, err := svc.Add(ctx, "s1", id)
		require.NoError(t, err)
		assert.True(t, added)
	}

	t.Run("duplicate is a no-op", func(t *testing.T) {
		added, err := svc.Add(ctx, "s1", "alpha")
		require.NoError(t, err)
		assert.False(t, added)
	})

	t.Run("capacity", func(t *testing.T) {
		_, err := svc.Add(ctx, "s1", "echo")
		assert.ErrorIs(t, err, domain.ErrCompareFull)
	})

	t.Run("insertion order", func(t *testing.T) {
		list, err := svc.List(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, []string{"delta", "alpha", "bravo", "charlie"}, list)

		resolved, err := svc.Resolve(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, list, bourbonIDs(resolved))
	})

	t.Run("toggle", func(t *testing.T) {
		active, err := svc.Toggle(ctx, "s1", "alpha")
		require.NoError(t, err)
		assert.False(t, active)

		active, err = svc.Toggle(ctx, "s1", "echo")
		require.NoError(t, err)
		assert.True(t, active)

		list, err := svc.List(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, []string{"delta", "bravo", "charlie", "echo"}, list)
	})

	t.Run("remove and clear", func(t *testing.T) {
		removed, err := svc.Remove(ctx, "s1", "zulu")
		require.NoError(t, err)
		assert.False(t, removed)

		removed, err = svc.Remove(ctx, "s1", "delta")
		require.NoError(t, err)
		assert.True(t, removed)

		require.NoError(t, svc.Clear(ctx, "s1"))
		list, err := svc.List(ctx, "s1")
		require.NoError(t, err)
		assert.NotNil(t, list)
		assert.Empty(t, list)
	})

	t.Run("sessions are isolated", func(t *testing.T) {
		list, err := svc.List(ctx, "s2")
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("unknown bourbon", func(t *testing.T) {
		_, err := svc.Add(ctx, "s1", "zulu")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("session is required", func(t *testing.T) {
		_, err := svc.Add(ctx, " ", "alpha")
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
		assert.ErrorIs(t, svc.Clear(ctx, ""), domain.ErrInvalidArgument)
	})
}

func TestAnonymousFavoriteService(t *testing.T) {
	ctx := context.Background()
	catalog, _ := newFixtureCatalog(t)
	store := newMemSessions()
	svc := NewAnonymousFavoriteService(store, catalog)

	for _, id := range []string{"alpha", "bravo", "charlie", "delta"} {
		_, err := svc.Add(ctx, "s1", id)
		require.NoError(t, err)
	}
	list, err := svc.List(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, list, 4)

	active, err := svc.Toggle(ctx, "s1", "bravo")
	require.NoError(t, err)
	assert.False(t, active)

	t.Run("store failure surfaces", func(t *testing.T) {
		store.setErr = errBoom
		defer func() { store.setErr = nil }()

		_, err := svc.Add(ctx, "s1", "bravo")
		assert.ErrorIs(t, err, errBoom)
	})

	resolved, err := svc.Resolve(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "charlie", "delta"}, bourbonIDs(resolved))
}
