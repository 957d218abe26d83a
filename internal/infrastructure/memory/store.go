// Package memory holds the default in-process repositories. Data lives only
// as long as the process.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/bourbonvault/backend/internal/domain"
)

// Store implements every journal repository on guarded maps
type Store struct {
	mu         sync.RWMutex
	profiles   map[string]domain.Profile
	notes      map[string]domain.TastingNote
	favorites  map[string]domain.Favorite // key: userID + "/" + bourbonID
	collection map[string]domain.CollectionItem
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		profiles:   make(map[string]domain.Profile),
		notes:      make(map[string]domain.TastingNote),
		favorites:  make(map[string]domain.Favorite),
		collection: make(map[string]domain.CollectionItem),
	}
}

// Profiles returns the profile repository view
func (s *Store) Profiles() domain.ProfileRepository { return profileRepo{s} }

// TastingNotes returns the tasting note repository view
func (s *Store) TastingNotes() domain.TastingNoteRepository { return noteRepo{s} }

// Favorites returns the favorite repository view
func (s *Store) Favorites() domain.FavoriteRepository { return favoriteRepo{s} }

// Collection returns the collection repository view
func (s *Store) Collection() domain.CollectionRepository { return collectionRepo{s} }

type profileRepo struct{ s *Store }

func (r profileRepo) GetByUser(ctx context.Context, userID string) (*domain.Profile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.profiles[userID]
	if !ok {
		return nil, fmt.Errorf("%w: profile for %q", domain.ErrNotFound, userID)
	}
	p.FlavorPreferences = append([]string{}, p.FlavorPreferences...)
	return &p, nil
}

func (r profileRepo) Upsert(ctx context.Context, profile *domain.Profile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p := *profile
	p.FlavorPreferences = append([]string{}, profile.FlavorPreferences...)
	r.s.profiles[p.UserID] = p
	return nil
}

type noteRepo struct{ s *Store }

func (r noteRepo) Create(ctx context.Context, note *domain.TastingNote) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, exists := r.s.notes[note.ID]; exists {
		return fmt.Errorf("%w: tasting note %q", domain.ErrAlreadyExists, note.ID)
	}
	r.s.notes[note.ID] = copyNote(*note)
	return nil
}

func (r noteRepo) GetByID(ctx context.Context, userID, id string) (*domain.TastingNote, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n, ok := r.s.notes[id]
	if !ok || n.UserID != userID {
		return nil, fmt.Errorf("%w: tasting note %q", domain.ErrNotFound, id)
	}
	n = copyNote(n)
	return &n, nil
}

// ListByUser returns notes newest tasted first
func (r noteRepo) ListByUser(ctx context.Context, userID string) ([]domain.TastingNote, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []domain.TastingNote{}
	for _, n := range r.s.notes {
		if n.UserID == userID {
			out = append(out, copyNote(n))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].TastedAt.Equal(out[j].TastedAt) {
			return out[i].TastedAt.After(out[j].TastedAt)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r noteRepo) Update(ctx context.Context, note *domain.TastingNote) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.notes[note.ID]
	if !ok || existing.UserID != note.UserID {
		return fmt.Errorf("%w: tasting note %q", domain.ErrNotFound, note.ID)
	}
	r.s.notes[note.ID] = copyNote(*note)
	return nil
}

func (r noteRepo) Delete(ctx context.Context, userID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n, ok := r.s.notes[id]
	if !ok || n.UserID != userID {
		return fmt.Errorf("%w: tasting note %q", domain.ErrNotFound, id)
	}
	delete(r.s.notes, id)
	return nil
}

func copyNote(n domain.TastingNote) domain.TastingNote {
	n.DiscernibleFlavors = append([]string{}, n.DiscernibleFlavors...)
	if n.Rating != nil {
		r := *n.Rating
		n.Rating = &r
	}
	return n
}

type favoriteRepo struct{ s *Store }

func favoriteKey(userID, bourbonID string) string { return userID + "/" + bourbonID }

func (r favoriteRepo) Add(ctx context.Context, fav *domain.Favorite) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := favoriteKey(fav.UserID, fav.BourbonID)
	if _, exists := r.s.favorites[key]; exists {
		return fmt.Errorf("%w: favorite %q", domain.ErrAlreadyExists, fav.BourbonID)
	}
	r.s.favorites[key] = *fav
	return nil
}

func (r favoriteRepo) Remove(ctx context.Context, userID, bourbonID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := favoriteKey(userID, bourbonID)
	if _, exists := r.s.favorites[key]; !exists {
		return fmt.Errorf("%w: favorite %q", domain.ErrNotFound, bourbonID)
	}
	delete(r.s.favorites, key)
	return nil
}

// ListByUser returns favorites newest first
func (r favoriteRepo) ListByUser(ctx context.Context, userID string) ([]domain.Favorite, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []domain.Favorite{}
	for _, f := range r.s.favorites {
		if f.UserID == userID {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].BourbonID < out[j].BourbonID
	})
	return out, nil
}

type collectionRepo struct{ s *Store }

func (r collectionRepo) Create(ctx context.Context, item *domain.CollectionItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.collection {
		if existing.UserID == item.UserID && existing.BourbonID == item.BourbonID {
			return fmt.Errorf("%w: %q is already in the collection", domain.ErrAlreadyExists, item.BourbonID)
		}
	}
	r.s.collection[item.ID] = *item
	return nil
}

func (r collectionRepo) GetByID(ctx context.Context, userID, id string) (*domain.CollectionItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	item, ok := r.s.collection[id]
	if !ok || item.UserID != userID {
		return nil, fmt.Errorf("%w: collection item %q", domain.ErrNotFound, id)
	}
	return &item, nil
}

// ListByUser returns items newest first
func (r collectionRepo) ListByUser(ctx context.Context, userID string) ([]domain.CollectionItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []domain.CollectionItem{}
	for _, item := range r.s.collection {
		if item.UserID == userID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r collectionRepo) Update(ctx context.Context, item *domain.CollectionItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.collection[item.ID]
	if !ok || existing.UserID != item.UserID {
		return fmt.Errorf("%w: collection item %q", domain.ErrNotFound, item.ID)
	}
	r.s.collection[item.ID] = *item
	return nil
}

func (r collectionRepo) Delete(ctx context.Context, userID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	item, ok := r.s.collection[id]
	if !ok || item.UserID != userID {
		return fmt.Errorf("%w: collection item %q", domain.ErrNotFound, id)
	}
	delete(r.s.collection, id)
	return nil
}
