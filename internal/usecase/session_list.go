package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/bourbonvault/backend/internal/domain"
)

// Session list names
const (
	compareList   = "compare"
	favoritesList = "favorites"
)

// MaxCompare is the largest compare set a session may hold
const MaxCompare = 4

// sessionList is an ordered, duplicate-free id list kept per anonymous session.
// capacity <= 0 means unbounded.
type sessionList struct {
	store    domain.SessionStore
	catalog  *CatalogService
	name     string
	capacity int

	// serialises read-modify-write cycles within this process
	mu sync.Mutex
}

func (l *sessionList) ids(ctx context.Context, sessionID string) ([]string, error) {
	if err := requireSession(sessionID); err != nil {
		return nil, err
	}
	ids, err := l.store.GetList(ctx, sessionID, l.name)
	if err != nil {
		return nil, fmt.Errorf("read %s list: %w", l.name, err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// add appends id and reports whether the list changed. Duplicates are a no-op.
func (l *sessionList) add(ctx context.Context, sessionID, bourbonID string) (bool, error) {
	if _, err := l.catalog.Get(ctx, bourbonID); err != nil {
		return false, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	ids, err := l.ids(ctx, sessionID)
	if err != nil {
		return false, err
	}
	if indexOf(ids, bourbonID) >= 0 {
		return false, nil
	}
	if l.capacity > 0 && len(ids) >= l.capacity {
		return false, fmt.Errorf("%w: at most %d bourbons", domain.ErrCompareFull, l.capacity)
	}
	if err := l.store.SetList(ctx, sessionID, l.name, append(ids, bourbonID)); err != nil {
		return false, fmt.Errorf("write %s list: %w", l.name, err)
	}
	return true, nil
}

// remove drops id and reports whether the list changed
func (l *sessionList) remove(ctx context.Context, sessionID, bourbonID string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ids, err := l.ids(ctx, sessionID)
	if err != nil {
		return false, err
	}
	idx := indexOf(ids, bourbonID)
	if idx < 0 {
		return false, nil
	}
	next := append(append([]string{}, ids[:idx]...), ids[idx+1:]...)
	if err := l.store.SetList(ctx, sessionID, l.name, next); err != nil {
		return false, fmt.Errorf("write %s list: %w", l.name, err)
	}
	return true, nil
}

func (l *sessionList) toggle(ctx context.Context, sessionID, bourbonID string) (bool, error) {
	removed, err := l.remove(ctx, sessionID, bourbonID)
	if err != nil || removed {
		return false, err
	}
	return l.add(ctx, sessionID, bourbonID)
}

func (l *sessionList) clear(ctx context.Context, sessionID string) error {
	if err := requireSession(sessionID); err != nil {
		return err
	}
	return l.store.Clear(ctx, sessionID, l.name)
}

func (l *sessionList) resolve(ctx context.Context, sessionID string) ([]domain.Bourbon, error) {
	ids, err := l.ids(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return l.catalog.Resolve(ctx, ids)
}

// CompareService keeps the anonymous side-by-side comparison set
type CompareService struct {
	list *sessionList
}

// NewCompareService creates a compare service holding at most MaxCompare ids
func NewCompareService(store domain.SessionStore, catalog *CatalogService) *CompareService {
	return &CompareService{list: &sessionList{store: store, catalog: catalog, name: compareList, capacity: MaxCompare}}
}

// List returns the ids in insertion order
func (s *CompareService) List(ctx context.Context, sessionID string) ([]string, error) {
	return s.list.ids(ctx, sessionID)
}

// Resolve returns the compared bourbons in insertion order
func (s *CompareService) Resolve(ctx context.Context, sessionID string) ([]domain.Bourbon, error) {
	return s.list.resolve(ctx, sessionID)
}

// Add appends a bourbon. Returns false for a duplicate and ErrCompareFull
// when the set already holds MaxCompare entries.
func (s *CompareService) Add(ctx context.Context, sessionID, bourbonID string) (bool, error) {
	return s.list.add(ctx, sessionID, bourbonID)
}

// Remove drops a bourbon, reporting whether it was present
func (s *CompareService) Remove(ctx context.Context, sessionID, bourbonID string) (bool, error) {
	return s.list.remove(ctx, sessionID, bourbonID)
}

// Toggle removes a present bourbon or adds an absent one; the result is the new membership
func (s *CompareService) Toggle(ctx context.Context, sessionID, bourbonID string) (bool, error) {
	return s.list.toggle(ctx, sessionID, bourbonID)
}

// Clear empties the set
func (s *CompareService) Clear(ctx context.Context, sessionID string) error {
	return s.list.clear(ctx, sessionID)
}

// AnonymousFavoriteService keeps favorites for visitors without an account
type AnonymousFavoriteService struct {
	list *sessionList
}

// NewAnonymousFavoriteService creates the session favorites service
func NewAnonymousFavoriteService(store domain.SessionStore, catalog *CatalogService) *AnonymousFavoriteService {
	return &AnonymousFavoriteService{list: &sessionList{store: store, catalog: catalog, name: favoritesList}}
}

// List returns favorite ids in insertion order
func (s *AnonymousFavoriteService) List(ctx context.Context, sessionID string) ([]string, error) {
	return s.list.ids(ctx, sessionID)
}

// Resolve returns the favorite bourbons
func (s *AnonymousFavoriteService) Resolve(ctx context.Context, sessionID string) ([]domain.Bourbon, error) {
	return s.list.resolve(ctx, sessionID)
}

// Add marks a bourbon; false when it already was a favorite
func (s *AnonymousFavoriteService) Add(ctx context.Context, sessionID, bourbonID string) (bool, error) {
	return s.list.add(ctx, sessionID, bourbonID)
}

// Remove unmarks a bourbon; false when it was not a favorite
func (s *AnonymousFavoriteService) Remove(ctx context.Context, sessionID, bourbonID string) (bool, error) {
	return s.list.remove(ctx, sessionID, bourbonID)
}

// Toggle flips membership and returns the new state
func (s *AnonymousFavoriteService) Toggle(ctx context.Context, sessionID, bourbonID string) (bool, error) {
	return s.list.toggle(ctx, sessionID, bourbonID)
}

// Clear forgets every session favorite
func (s *AnonymousFavoriteService) Clear(ctx context.Context, sessionID string) error {
	return s.list.clear(ctx, sessionID)
}

func requireSession(sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return fmt.Errorf("%w: session id is required", domain.ErrInvalidArgument)
	}
	return nil
}

func indexOf(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}
