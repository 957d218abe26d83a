package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bourbonvault/backend/internal/domain"
	"github.com/bourbonvault/backend/internal/logger"
)

// MarkupService builds the value-calculator report, memoised per catalog version
type MarkupService struct {
	catalog  *CatalogService
	cache    domain.CacheRepository
	observer Observer
	log      logger.Logger
	ttl      time.Duration
}

// NewMarkupService creates a markup service. cache and observer may be nil.
func NewMarkupService(catalog *CatalogService, cache domain.CacheRepository, observer Observer, log logger.Logger, ttl time.Duration) (*MarkupService, error) {
	if catalog == nil {
		return nil, fmt.Errorf("%w: catalog service is nil", domain.ErrInvalidArgument)
	}
	if observer == nil {
		observer = noopObserver{}
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	if ttl == 0 {
		ttl = time.Hour
	}
	return &MarkupService{catalog: catalog, cache: cache, observer: observer, log: log, ttl: ttl}, nil
}

// Report returns every markup record with its summary
func (s *MarkupService) Report(ctx context.Context) (*domain.MarkupReport, error) {
	catalog, version, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	key := "markups:" + version

	if s.cache != nil {
		raw, err := s.cache.Get(ctx, key)
		if err == nil {
			var report domain.MarkupReport
			if err := json.Unmarshal(raw, &report); err == nil {
				return &report, nil
			}
		} else if !errors.Is(err, domain.ErrCacheMiss) {
			s.log.WithError(err).Warn("markup cache read failed", nil)
		}
	}

	records := ComputeMarkups(catalog)
	report := &domain.MarkupReport{
		Records: records,
		Summary: SummarizeMarkups(records),
	}
	s.observer.MarkupReportBuilt(len(records))

	if s.cache != nil {
		if raw, err := json.Marshal(report); err == nil {
			if err := s.cache.Set(ctx, key, raw, s.ttl); err != nil {
				s.log.WithError(err).Warn("markup cache write failed", nil)
			}
		}
	}
	return report, nil
}
