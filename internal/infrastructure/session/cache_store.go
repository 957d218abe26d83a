package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bourbonvault/backend/internal/domain"
)

// CacheStore keeps lists as JSON documents in any domain.CacheRepository,
// normally the in-process memory cache.
type CacheStore struct {
	cache domain.CacheRepository
	ttl   time.Duration
}

// NewCacheStore wraps a cache. ttl <= 0 keeps lists until cleared.
func NewCacheStore(cache domain.CacheRepository, ttl time.Duration) *CacheStore {
	return &CacheStore{cache: cache, ttl: ttl}
}

// GetList returns the ids in order and refreshes the TTL
func (s *CacheStore) GetList(ctx context.Context, sessionID, list string) ([]string, error) {
	key := listKey(sessionID, list)
	raw, err := s.cache.Get(ctx, key)
	if errors.Is(err, domain.ErrCacheMiss) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}

	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	if err := s.cache.Set(ctx, key, raw, s.ttl); err != nil {
		return nil, err
	}
	return ids, nil
}

// SetList replaces the list
func (s *CacheStore) SetList(ctx context.Context, sessionID, list string, ids []string) error {
	key := listKey(sessionID, list)
	if len(ids) == 0 {
		return s.cache.Delete(ctx, key)
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.cache.Set(ctx, key, raw, s.ttl)
}

// Clear deletes the list
func (s *CacheStore) Clear(ctx context.Context, sessionID, list string) error {
	return s.cache.Delete(ctx, listKey(sessionID, list))
}
