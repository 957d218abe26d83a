package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bourbonvault/backend/internal/domain"
	"github.com/bourbonvault/backend/internal/logger"
)

// RecommendationConfig holds tuning for the recommendation feeds
type RecommendationConfig struct {
	TopFlavors   int
	MaxResults   int
	TopRatedMax  int
	MinTopRating float64
	CacheTTL     time.Duration
}

func (c RecommendationConfig) withDefaults() RecommendationConfig {
	if c.TopFlavors <= 0 {
		c.TopFlavors = DefaultTopFlavors
	}
	if c.MaxResults <= 0 {
		c.MaxResults = DefaultMaxResults
	}
	if c.TopRatedMax <= 0 {
		c.TopRatedMax = DefaultTopRatedMax
	}
	if c.MinTopRating <= 0 {
		c.MinTopRating = DefaultMinTopRating
	}
	if c.CacheTTL == 0 {
		c.CacheTTL = time.Hour
	}
	return c
}

// RecommendationService builds the recommendation feeds. Full ranked lists
// are memoised per catalog version and preference set; limits apply after.
type RecommendationService struct {
	catalog  *CatalogService
	history  domain.HistoryProvider
	profiles domain.ProfileRepository
	cache    domain.CacheRepository
	observer Observer
	log      logger.Logger
	cfg      RecommendationConfig
}

// NewRecommendationService wires the recommendation feeds. cache and observer may be nil.
func NewRecommendationService(
	catalog *CatalogService,
	history domain.HistoryProvider,
	profiles domain.ProfileRepository,
	cache domain.CacheRepository,
	observer Observer,
	log logger.Logger,
	cfg RecommendationConfig,
) (*RecommendationService, error) {
	if catalog == nil {
		return nil, fmt.Errorf("%w: catalog service is nil", domain.ErrInvalidArgument)
	}
	if history == nil {
		return nil, fmt.Errorf("%w: history provider is nil", domain.ErrInvalidArgument)
	}
	if observer == nil {
		observer = noopObserver{}
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &RecommendationService{
		catalog:  catalog,
		history:  history,
		profiles: profiles,
		cache:    cache,
		observer: observer,
		log:      log,
		cfg:      cfg.withDefaults(),
	}, nil
}

// ByPreferences ranks the catalog against an explicit flavor set
func (s *RecommendationService) ByPreferences(ctx context.Context, preferences []string, limit int) (*domain.Recommendations, error) {
	return s.byPreferences(ctx, domain.ModePreferences, preferences, limit)
}

// ForProfile ranks the catalog against the user's saved flavor preferences.
// A user without a profile gets an empty feed.
func (s *RecommendationService) ForProfile(ctx context.Context, userID string, limit int) (*domain.Recommendations, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if s.profiles == nil {
		return nil, fmt.Errorf("%w: profile repository is not configured", domain.ErrInvalidArgument)
	}

	var prefs []string
	profile, err := s.profiles.GetByUser(ctx, userID)
	switch {
	case err == nil:
		prefs = profile.FlavorPreferences
	case errors.Is(err, domain.ErrNotFound):
	default:
		return nil, fmt.Errorf("load profile: %w", err)
	}
	return s.byPreferences(ctx, domain.ModeProfile, prefs, limit)
}

// ByHistory ranks the catalog against the most frequent flavors in the
// user's tasting history, skipping bourbons already tasted.
func (s *RecommendationService) ByHistory(ctx context.Context, userID string, limit int) (*domain.Recommendations, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}

	history, err := s.history.GetHistory(ctx, userID)
	if err != nil {
		return nil, err
	}
	tasted := history.ItemIDs

	profile := DeriveFlavorProfile(history.FlavorTags, s.cfg.TopFlavors)
	items, err := s.memoised(ctx, domain.ModeHistory, NormalizePreferences(profile), tasted, func(catalog []domain.Bourbon) []domain.ScoredItem {
		return scoreByProfile(catalog, profile, tasted)
	})
	if err != nil {
		return nil, err
	}

	return &domain.Recommendations{
		Mode:        domain.ModeHistory,
		Preferences: nonNil(profile),
		Items:       Limit(items, s.limit(limit, s.cfg.MaxResults)),
	}, nil
}

// TopRated combines the flavor profiles of everything the user rated at or
// above the configured threshold and ranks the rest of the catalog.
func (s *RecommendationService) TopRated(ctx context.Context, userID string, limit int) (*domain.Recommendations, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}

	rated, err := s.history.GetRatedItemIDs(ctx, userID, s.cfg.MinTopRating)
	if err != nil {
		return nil, err
	}

	items, err := s.memoised(ctx, domain.ModeTopRated, nil, rated, func(catalog []domain.Bourbon) []domain.ScoredItem {
		return ScoreByTopRated(catalog, rated)
	})
	if err != nil {
		return nil, err
	}

	return &domain.Recommendations{
		Mode:        domain.ModeTopRated,
		Preferences: sortedKeys(rated),
		Items:       Limit(items, s.limit(limit, s.cfg.TopRatedMax)),
	}, nil
}

func (s *RecommendationService) byPreferences(ctx context.Context, mode domain.RecommendationMode, preferences []string, limit int) (*domain.Recommendations, error) {
	normalized := NormalizePreferences(preferences)
	items, err := s.memoised(ctx, mode, normalized, nil, func(catalog []domain.Bourbon) []domain.ScoredItem {
		return ScoreByPreferences(catalog, normalized)
	})
	if err != nil {
		return nil, err
	}

	return &domain.Recommendations{
		Mode:        mode,
		Preferences: normalized,
		Items:       Limit(items, s.limit(limit, s.cfg.MaxResults)),
	}, nil
}

// memoised returns the cached ranking for (mode, catalog version, preferences,
// exclusions) or computes and stores it. The catalog is read before the key is
// built so the key always names the version the ranking was computed from.
// Cache failures never fail the request.
func (s *RecommendationService) memoised(
	ctx context.Context,
	mode domain.RecommendationMode,
	normalized []string,
	exclude map[string]struct{},
	compute func([]domain.Bourbon) []domain.ScoredItem,
) ([]domain.ScoredItem, error) {
	catalog, version, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	key := recommendationCacheKey(mode, version, normalized, exclude)

	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, key); err == nil {
			var items []domain.ScoredItem
			if err := json.Unmarshal(raw, &items); err == nil {
				s.observer.RecommendationComputed(mode, true, len(items))
				return items, nil
			}
			s.log.Warn("discarding undecodable cached recommendations", map[string]interface{}{"key": key})
		} else if !errors.Is(err, domain.ErrCacheMiss) {
			s.log.WithError(err).Warn("recommendation cache read failed", map[string]interface{}{"key": key})
		}
	}

	items := compute(catalog)
	s.observer.RecommendationComputed(mode, false, len(items))

	if s.cache != nil {
		if raw, err := json.Marshal(items); err == nil {
			if err := s.cache.Set(ctx, key, raw, s.cfg.CacheTTL); err != nil {
				s.log.WithError(err).Warn("recommendation cache write failed", map[string]interface{}{"key": key})
			}
		}
	}
	return items, nil
}

func (s *RecommendationService) limit(requested, fallback int) int {
	if requested <= 0 {
		return fallback
	}
	return requested
}

// recommendationCacheKey format: "reco:{mode}:{version}:{prefs|...}:{excluded,...}"
func recommendationCacheKey(mode domain.RecommendationMode, version string, normalized []string, exclude map[string]struct{}) string {
	prefs := append([]string(nil), normalized...)
	sort.Strings(prefs)
	return fmt.Sprintf("reco:%s:%s:%s:%s", mode, version, strings.Join(prefs, "|"), strings.Join(sortedKeys(exclude), ","))
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func requireUser(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("%w: user id is required", domain.ErrInvalidArgument)
	}
	return nil
}
