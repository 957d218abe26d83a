package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bourbonvault/backend/internal/domain"
	"github.com/bourbonvault/backend/internal/logger"
)

func TestMarkupService_Report(t *testing.T) {
	ctx := context.Background()

	t.Run("builds and memoises per catalog version", func(t *testing.T) {
		catalog, provider := newFixtureCatalog(t)
		cache := newMapCache()
		observer := &recordingObserver{}
		svc, err := NewMarkupService(catalog, cache, observer, logger.NewTestLogger(t), 0)
		require.NoError(t, err)

		report, err := svc.Report(ctx)
		require.NoError(t, err)
		require.Len(t, report.Records, 3)
		assert.Equal(t, "delta", report.Records[0].Bourbon.ID)
		assert.Equal(t, 1100.0, report.Records[0].MarkupPercent)
		assert.Equal(t, domain.TierExtremePremium, report.Records[0].Tier)
		assert.Equal(t, 3, report.Summary.Analyzed)
		require.NotNil(t, report.Summary.HighestMarkup)
		assert.Equal(t, 1100.0, *report.Summary.HighestMarkup)
		assert.Contains(t, cache.data, "markups:v1")

		again, err := svc.Report(ctx)
		require.NoError(t, err)
		assert.Equal(t, report.Records[2].Bourbon.ID, again.Records[2].Bourbon.ID)
		assert.Equal(t, []int{3}, observer.markups)

		provider.version = "v2"
		_, err = svc.Report(ctx)
		require.NoError(t, err)
		assert.Equal(t, []int{3, 3}, observer.markups)
		assert.Contains(t, cache.data, "markups:v2")
	})

	t.Run("key names the version the catalog was loaded at", func(t *testing.T) {
		catalog, provider := newFixtureCatalog(t)
		provider.version = ""
		provider.loadedVersion = "v9"
		cache := newMapCache()
		svc, err := NewMarkupService(catalog, cache, nil, nil, 0)
		require.NoError(t, err)

		_, err = svc.Report(ctx)
		require.NoError(t, err)
		assert.Contains(t, cache.data, "markups:v9")
		assert.NotContains(t, cache.data, "markups:")
	})

	t.Run("works without a cache", func(t *testing.T) {
		catalog, _ := newFixtureCatalog(t)
		svc, err := NewMarkupService(catalog, nil, nil, nil, 0)
		require.NoError(t, err)

		report, err := svc.Report(ctx)
		require.NoError(t, err)
		assert.Equal(t, "alpha", report.Summary.BestValue[0].Bourbon.ID)
	})

	t.Run("cache read failure still answers", func(t *testing.T) {
		catalog, _ := newFixtureCatalog(t)
		cache := newMapCache()
		cache.getErr = errBoom
		svc, err := NewMarkupService(catalog, cache, nil, logger.NewTestLogger(t), 0)
		require.NoError(t, err)

		report, err := svc.Report(ctx)
		require.NoError(t, err)
		assert.Len(t, report.Records, 3)
	})

	t.Run("catalog failure surfaces", func(t *testing.T) {
		catalog, provider := newFixtureCatalog(t)
		provider.err = errBoom
		svc, err := NewMarkupService(catalog, nil, nil, nil, 0)
		require.NoError(t, err)

		_, err = svc.Report(ctx)
		assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
	})

	t.Run("nil catalog", func(t *testing.T) {
		_, err := NewMarkupService(nil, nil, nil, nil, 0)
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	})
}
