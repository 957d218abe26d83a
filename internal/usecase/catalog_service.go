package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bourbonvault/backend/internal/domain"
)

// FlavorCategories are the canonical flavor chips offered to users
var FlavorCategories = []string{
	"Vanilla", "Caramel", "Oak", "Spice", "Honey", "Cherry",
	"Chocolate", "Tobacco", "Leather", "Fruit", "Nuts", "Maple",
}

var categoryOptions = []domain.CategoryOption{
	{ID: "all", Label: "All Bourbons"},
	{ID: string(domain.CategoryStraight), Label: "Straight"},
	{ID: string(domain.CategorySmallBatch), Label: "Small Batch"},
	{ID: string(domain.CategorySingleBarrel), Label: "Single Barrel"},
	{ID: string(domain.CategoryBottledInBond), Label: "Bottled-in-Bond"},
	{ID: string(domain.CategoryCaskStrength), Label: "Cask Strength"},
	{ID: string(domain.CategoryWheated), Label: "Wheated"},
	{ID: string(domain.CategoryHighRye), Label: "High Rye"},
}

// CatalogService answers read-only catalog queries
type CatalogService struct {
	provider domain.CatalogProvider
}

// NewCatalogService fails fast on a nil provider
func NewCatalogService(provider domain.CatalogProvider) (*CatalogService, error) {
	if provider == nil {
		return nil, fmt.Errorf("%w: catalog provider is nil", domain.ErrInvalidArgument)
	}
	return &CatalogService{provider: provider}, nil
}

// snapshotter is implemented by providers that can return items and their
// version from one read
type snapshotter interface {
	Snapshot(ctx context.Context) ([]domain.Bourbon, string, error)
}

// All returns the full catalog
func (s *CatalogService) All(ctx context.Context) ([]domain.Bourbon, error) {
	items, _, err := s.Snapshot(ctx)
	return items, err
}

// Snapshot loads the catalog and returns it with the version it was read at.
// Loading first lets a lazy provider refresh before its version is used.
func (s *CatalogService) Snapshot(ctx context.Context) ([]domain.Bourbon, string, error) {
	var (
		items   []domain.Bourbon
		version string
		err     error
	)
	if sp, ok := s.provider.(snapshotter); ok {
		items, version, err = sp.Snapshot(ctx)
	} else {
		items, err = s.provider.GetAll(ctx)
		version = s.provider.Version()
	}
	if err != nil {
		if errors.Is(err, domain.ErrCatalogUnavailable) {
			return nil, "", err
		}
		return nil, "", fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}
	return items, version, nil
}

// Version of the underlying catalog, used as a memoisation key
func (s *CatalogService) Version() string {
	return s.provider.Version()
}

// List returns catalog entries matching every facet of the filter. Within a
// facet any listed value matches.
func (s *CatalogService) List(ctx context.Context, filter domain.CatalogFilter) ([]domain.Bourbon, error) {
	items, err := s.All(ctx)
	if err != nil {
		return nil, err
	}

	query := PreprocessQuery(filter.Query)
	out := []domain.Bourbon{}
	for _, b := range items {
		if matchesFilter(b, filter, query) {
			out = append(out, b)
		}
	}
	return out, nil
}

// Get returns a single entry by id
func (s *CatalogService) Get(ctx context.Context, id string) (*domain.Bourbon, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: bourbon id is required", domain.ErrInvalidArgument)
	}
	items, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, fmt.Errorf("%w: bourbon %q", domain.ErrNotFound, id)
}

// Resolve returns the entries for ids in the given order. Unknown ids are skipped.
func (s *CatalogService) Resolve(ctx context.Context, ids []string) ([]domain.Bourbon, error) {
	items, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]domain.Bourbon, len(items))
	for _, b := range items {
		byID[b.ID] = b
	}
	out := make([]domain.Bourbon, 0, len(ids))
	for _, id := range ids {
		if b, ok := byID[id]; ok {
			out = append(out, b)
		}
	}
	return out, nil
}

// Flavors returns the canonical flavor categories
func (s *CatalogService) Flavors() []string {
	return append([]string(nil), FlavorCategories...)
}

// Categories returns the selectable category labels, "all" first
func (s *CatalogService) Categories() []domain.CategoryOption {
	return append([]domain.CategoryOption(nil), categoryOptions...)
}

func matchesFilter(b domain.Bourbon, f domain.CatalogFilter, query string) bool {
	if f.Category != "" && f.Category != "all" && b.Category != f.Category {
		return false
	}
	if len(f.Distilleries) > 0 && !containsFold(f.Distilleries, b.Distillery) {
		return false
	}
	if len(f.Rarities) > 0 {
		found := false
		for _, r := range f.Rarities {
			if strings.EqualFold(string(r), string(b.Rarity)) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if flavors := NormalizePreferences(f.Flavors); len(flavors) > 0 && FlavorScore(b, flavors) == 0 {
		return false
	}
	return MatchesQuery(b, query)
}

func containsFold(values []string, s string) bool {
	for _, v := range values {
		if strings.EqualFold(strings.TrimSpace(v), s) {
			return true
		}
	}
	return false
}
