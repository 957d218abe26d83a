package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bourbonvault/backend/internal/domain"
)

var errBoom = errors.New("boom")

// staticProvider serves a fixed catalog. When loadedVersion is set, Version
// stays empty until the first GetAll, like a provider that loads lazily.
type staticProvider struct {
	items         []domain.Bourbon
	version       string
	loadedVersion string
	err           error
	calls         int
}

func (p *staticProvider) GetAll(ctx context.Context) ([]domain.Bourbon, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	if p.loadedVersion != "" {
		p.version = p.loadedVersion
	}
	return p.items, nil
}

func (p *staticProvider) Version() string { return p.version }

// fixtureBourbons is a small catalog covering every filter facet
func fixtureBourbons() []domain.Bourbon {
	return []domain.Bourbon{
		{
			ID: "alpha", Name: "Alpha Reserve", Distillery: "North Distillery",
			FlavorProfile: []string{"Vanilla", "Oak"}, Category: domain.CategoryWheated, Rarity: domain.RarityCommon,
			MSRP: "$30", SecondaryPrice: "$36",
		},
		{
			ID: "bravo", Name: "Bravo Rye", Distillery: "South Distillery",
			FlavorProfile: []string{"Honey", "Citrus"}, Category: domain.CategoryHighRye, Rarity: domain.RarityAllocated,
			MSRP: "$50", SecondaryPrice: "$150",
		},
		{
			ID: "charlie", Name: "Charlie's Barrel", Distillery: "North Distillery",
			FlavorProfile: []string{"French Vanilla", "Caramel", "Oak"}, Category: domain.CategoryStraight, Rarity: domain.RarityLimited,
			MSRP: "n/a",
		},
		{
			ID: "delta", Name: "Delta", Distillery: "East Distillery",
			FlavorProfile: []string{"Dark Chocolate", "Cherry"}, Category: domain.CategoryWheated, Rarity: domain.RarityUnicorn,
			MSRP: "$100", SecondaryPrice: "$1,200",
		},
	}
}

func newFixtureCatalog(t *testing.T) (*CatalogService, *staticProvider) {
	t.Helper()
	provider := &staticProvider{items: fixtureBourbons(), version: "v1"}
	svc, err := NewCatalogService(provider)
	require.NoError(t, err)
	return svc, provider
}

// mapCache is an in-memory CacheRepository that counts traffic
type mapCache struct {
	mu     sync.Mutex
	data   map[string][]byte
	getErr error
	setErr error
	gets   int
	sets   int
}

func newMapCache() *mapCache {
	return &mapCache{data: make(map[string][]byte)}
}

func (c *mapCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	if c.getErr != nil {
		return nil, c.getErr
	}
	v, ok := c.data[key]
	if !ok {
		return nil, domain.ErrCacheMiss
	}
	return v, nil
}

func (c *mapCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	if c.setErr != nil {
		return c.setErr
	}
	c.data[key] = value
	return nil
}

func (c *mapCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *mapCache) Exists(ctx context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return ok, nil
}

type recommendationEvent struct {
	mode    domain.RecommendationMode
	cached  bool
	results int
}

// recordingObserver keeps every event it receives
type recordingObserver struct {
	recommendations []recommendationEvent
	markups         []int
}

func (o *recordingObserver) RecommendationComputed(mode domain.RecommendationMode, cached bool, results int) {
	o.recommendations = append(o.recommendations, recommendationEvent{mode, cached, results})
}

func (o *recordingObserver) MarkupReportBuilt(records int) {
	o.markups = append(o.markups, records)
}

// stubHistory returns canned history
type stubHistory struct {
	tags   []string
	tasted map[string]struct{}
	rated  map[string]struct{}
	err    error
}

func (h stubHistory) GetHistory(ctx context.Context, userID string) (domain.TastingHistory, error) {
	if h.err != nil {
		return domain.TastingHistory{}, h.err
	}
	return domain.TastingHistory{FlavorTags: h.tags, ItemIDs: h.tasted}, nil
}

func (h stubHistory) GetHistoricalFlavorTags(ctx context.Context, userID string) ([]string, error) {
	return h.tags, h.err
}

func (h stubHistory) GetHistoricalItemIDs(ctx context.Context, userID string) (map[string]struct{}, error) {
	return h.tasted, h.err
}

func (h stubHistory) GetRatedItemIDs(ctx context.Context, userID string, minRating float64) (map[string]struct{}, error) {
	return h.rated, h.err
}

// flakyFavorites wraps a real repository and fails writes on demand
type flakyFavorites struct {
	domain.FavoriteRepository
	addErr    error
	removeErr error
	listCalls int
}

func (r *flakyFavorites) Add(ctx context.Context, fav *domain.Favorite) error {
	if r.addErr != nil {
		return r.addErr
	}
	return r.FavoriteRepository.Add(ctx, fav)
}

func (r *flakyFavorites) Remove(ctx context.Context, userID, bourbonID string) error {
	if r.removeErr != nil {
		return r.removeErr
	}
	return r.FavoriteRepository.Remove(ctx, userID, bourbonID)
}

func (r *flakyFavorites) ListByUser(ctx context.Context, userID string) ([]domain.Favorite, error) {
	r.listCalls++
	return r.FavoriteRepository.ListByUser(ctx, userID)
}

// failingProfiles fails every call
type failingProfiles struct{}

func (failingProfiles) GetByUser(ctx context.Context, userID string) (*domain.Profile, error) {
	return nil, errBoom
}

func (failingProfiles) Upsert(ctx context.Context, profile *domain.Profile) error {
	return errBoom
}

// fixedClock returns a now func that advances one minute per call
func fixedClock(start time.Time) func() time.Time {
	var mu sync.Mutex
	current := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t := current
		current = current.Add(time.Minute)
		return t
	}
}

// manualClock only moves when told to
type manualClock struct {
	mu      sync.Mutex
	current time.Time
}

func newManualClock(start time.Time) *manualClock {
	return &manualClock{current: start}
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.current.Add(d)
}

func ptr[T any](v T) *T {
	return &v
}
