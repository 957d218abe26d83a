package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bourbonvault/backend/internal/domain"
	"github.com/bourbonvault/backend/internal/logger"
)

// DefaultFavoriteViewTTL bounds how long a per-user view is trusted before
// it is reloaded from the repository
const DefaultFavoriteViewTTL = time.Minute

// FavoriteService manages user favorites. Writes are applied to a per-user
// view first; when the repository write fails only that write is undone.
// Views expire after viewTTL so writes made by other replicas show up.
type FavoriteService struct {
	repo    domain.FavoriteRepository
	catalog *CatalogService
	log     logger.Logger
	now     func() time.Time
	viewTTL time.Duration

	mu    sync.Mutex
	views map[string]favoriteView
}

type favoriteView struct {
	items    []domain.Favorite
	loadedAt time.Time
}

// NewFavoriteService creates the favorite service
func NewFavoriteService(repo domain.FavoriteRepository, catalog *CatalogService, log logger.Logger) *FavoriteService {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &FavoriteService{
		repo:    repo,
		catalog: catalog,
		log:     log,
		now:     time.Now,
		viewTTL: DefaultFavoriteViewTTL,
		views:   make(map[string]favoriteView),
	}
}

// List returns the user's favorites, newest first
func (s *FavoriteService) List(ctx context.Context, userID string) ([]domain.Favorite, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	view, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return append([]domain.Favorite{}, view...), nil
}

// IsFavorite reports whether the bourbon is among the user's favorites
func (s *FavoriteService) IsFavorite(ctx context.Context, userID, bourbonID string) (bool, error) {
	favs, err := s.List(ctx, userID)
	if err != nil {
		return false, err
	}
	return indexOfFavorite(favs, bourbonID) >= 0, nil
}

// Add marks a bourbon as favorite. Adding an existing favorite returns ErrAlreadyExists.
func (s *FavoriteService) Add(ctx context.Context, userID, bourbonID string) (*domain.Favorite, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if _, err := s.catalog.Get(ctx, bourbonID); err != nil {
		return nil, err
	}
	if _, err := s.load(ctx, userID); err != nil {
		return nil, err
	}

	fav := domain.Favorite{
		ID:        uuid.NewString(),
		UserID:    userID,
		BourbonID: bourbonID,
		CreatedAt: s.now().UTC(),
	}

	s.mu.Lock()
	view := s.views[userID]
	if indexOfFavorite(view.items, bourbonID) >= 0 {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: favorite %q", domain.ErrAlreadyExists, bourbonID)
	}
	view.items = append([]domain.Favorite{fav}, view.items...)
	s.views[userID] = view
	s.mu.Unlock()

	if err := s.repo.Add(ctx, &fav); err != nil {
		s.undo(userID, err, func(items []domain.Favorite) []domain.Favorite {
			if idx := indexOfFavoriteID(items, fav.ID); idx >= 0 {
				return removeAt(items, idx)
			}
			return items
		})
		return nil, err
	}
	return &fav, nil
}

// Remove unmarks a bourbon. Removing a bourbon that is not a favorite returns ErrNotFound.
func (s *FavoriteService) Remove(ctx context.Context, userID, bourbonID string) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	if _, err := s.load(ctx, userID); err != nil {
		return err
	}

	s.mu.Lock()
	view := s.views[userID]
	idx := indexOfFavorite(view.items, bourbonID)
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: favorite %q", domain.ErrNotFound, bourbonID)
	}
	removed := view.items[idx]
	view.items = removeAt(view.items, idx)
	s.views[userID] = view
	s.mu.Unlock()

	if err := s.repo.Remove(ctx, userID, bourbonID); err != nil {
		s.undo(userID, err, func(items []domain.Favorite) []domain.Favorite {
			if indexOfFavorite(items, bourbonID) >= 0 {
				return items
			}
			return insertByNewest(items, removed)
		})
		return err
	}
	return nil
}

// Toggle flips the favorite state and reports the new state
func (s *FavoriteService) Toggle(ctx context.Context, userID, bourbonID string) (bool, error) {
	isFav, err := s.IsFavorite(ctx, userID, bourbonID)
	if err != nil {
		return false, err
	}
	if isFav {
		return false, s.Remove(ctx, userID, bourbonID)
	}
	if _, err := s.Add(ctx, userID, bourbonID); err != nil {
		return false, err
	}
	return true, nil
}

// Invalidate drops the cached view so the next read goes to the repository
func (s *FavoriteService) Invalidate(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.views, userID)
}

func (s *FavoriteService) load(ctx context.Context, userID string) ([]domain.Favorite, error) {
	s.mu.Lock()
	view, ok := s.views[userID]
	s.mu.Unlock()
	if ok && s.fresh(view) {
		return view.items, nil
	}

	favs, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	if favs == nil {
		favs = []domain.Favorite{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.views[userID]; ok && s.fresh(existing) {
		return existing.items, nil
	}
	s.evictStale()
	s.views[userID] = favoriteView{items: favs, loadedAt: s.now()}
	return favs, nil
}

func (s *FavoriteService) fresh(view favoriteView) bool {
	return s.now().Sub(view.loadedAt) < s.viewTTL
}

// evictStale drops expired views. Caller holds s.mu.
func (s *FavoriteService) evictStale() {
	for userID, view := range s.views {
		if !s.fresh(view) {
			delete(s.views, userID)
		}
	}
}

// undo reverts a single failed write against the current view. When the
// repository disagrees with the view (duplicate or missing row) the view is
// dropped so the next read reloads it.
func (s *FavoriteService) undo(userID string, cause error, revert func([]domain.Favorite) []domain.Favorite) {
	conflict := errors.Is(cause, domain.ErrAlreadyExists) || errors.Is(cause, domain.ErrNotFound)

	s.mu.Lock()
	if view, ok := s.views[userID]; ok {
		if conflict {
			delete(s.views, userID)
		} else {
			view.items = revert(view.items)
			s.views[userID] = view
		}
	}
	s.mu.Unlock()

	level := s.log.Warn
	if !conflict {
		level = s.log.Error
	}
	level("favorite write failed, view reverted", map[string]interface{}{
		"user_id": userID,
		"error":   cause.Error(),
	})
}

func removeAt(favs []domain.Favorite, idx int) []domain.Favorite {
	next := make([]domain.Favorite, 0, len(favs)-1)
	next = append(next, favs[:idx]...)
	return append(next, favs[idx+1:]...)
}

// insertByNewest puts fav back in CreatedAt-descending position
func insertByNewest(favs []domain.Favorite, fav domain.Favorite) []domain.Favorite {
	idx := len(favs)
	for i, f := range favs {
		if fav.CreatedAt.After(f.CreatedAt) {
			idx = i
			break
		}
	}
	next := make([]domain.Favorite, 0, len(favs)+1)
	next = append(next, favs[:idx]...)
	next = append(next, fav)
	return append(next, favs[idx:]...)
}

func indexOfFavoriteID(favs []domain.Favorite, id string) int {
	for i, f := range favs {
		if f.ID == id {
			return i
		}
	}
	return -1
}

func indexOfFavorite(favs []domain.Favorite, bourbonID string) int {
	for i, f := range favs {
		if f.BourbonID == bourbonID {
			return i
		}
	}
	return -1
}
