package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations.
// Values are opaque encoded bytes; Get returns ErrCacheMiss for absent or expired keys.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// CatalogProvider supplies the complete, validated catalog.
// Version changes whenever the returned list may differ.
type CatalogProvider interface {
	GetAll(ctx context.Context) ([]Bourbon, error)
	Version() string
}

// HistoryProvider exposes what a user has already tasted. GetHistory returns
// the flavor tags and tasted ids from a single read of the journal.
type HistoryProvider interface {
	GetHistory(ctx context.Context, userID string) (TastingHistory, error)
	GetHistoricalFlavorTags(ctx context.Context, userID string) ([]string, error)
	GetHistoricalItemIDs(ctx context.Context, userID string) (map[string]struct{}, error)
	GetRatedItemIDs(ctx context.Context, userID string, minRating float64) (map[string]struct{}, error)
}

// ProfileRepository persists user profiles
type ProfileRepository interface {
	GetByUser(ctx context.Context, userID string) (*Profile, error)
	Upsert(ctx context.Context, profile *Profile) error
}

// TastingNoteRepository persists diary entries
type TastingNoteRepository interface {
	Create(ctx context.Context, note *TastingNote) error
	GetByID(ctx context.Context, userID, id string) (*TastingNote, error)
	ListByUser(ctx context.Context, userID string) ([]TastingNote, error)
	Update(ctx context.Context, note *TastingNote) error
	Delete(ctx context.Context, userID, id string) error
}

// FavoriteRepository persists user favorites
type FavoriteRepository interface {
	Add(ctx context.Context, fav *Favorite) error
	Remove(ctx context.Context, userID, bourbonID string) error
	ListByUser(ctx context.Context, userID string) ([]Favorite, error)
}

// CollectionRepository persists collection items
type CollectionRepository interface {
	Create(ctx context.Context, item *CollectionItem) error
	GetByID(ctx context.Context, userID, id string) (*CollectionItem, error)
	ListByUser(ctx context.Context, userID string) ([]CollectionItem, error)
	Update(ctx context.Context, item *CollectionItem) error
	Delete(ctx context.Context, userID, id string) error
}

// SessionStore keeps anonymous per-session id lists (compare list, favorites fallback)
type SessionStore interface {
	GetList(ctx context.Context, sessionID, list string) ([]string, error)
	SetList(ctx context.Context, sessionID, list string, ids []string) error
	Clear(ctx context.Context, sessionID, list string) error
}
