package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/bourbonvault/backend/internal/domain"
	"github.com/bourbonvault/backend/internal/logger"
)

const (
	defaultRefreshInterval = 15 * time.Minute
	maxAttempts            = 3
	baseBackoff            = 500 * time.Millisecond
)

// RemoteProvider fetches the catalog from an upstream HTTP API and keeps the
// last good snapshot. A failed refresh keeps serving the stale snapshot.
type RemoteProvider struct {
	httpClient  *http.Client
	baseURL     string
	rateLimiter *rate.Limiter
	refresh     time.Duration
	log         logger.Logger
	wait        func(ctx context.Context, d time.Duration) error
	now         func() time.Time

	mu        sync.RWMutex
	items     []domain.Bourbon
	version   string
	fetchedAt time.Time
}

// NewRemoteProvider creates a client for {baseURL}/v1/bourbons
func NewRemoteProvider(baseURL string, refresh time.Duration, log logger.Logger) *RemoteProvider {
	if refresh <= 0 {
		refresh = defaultRefreshInterval
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	return &RemoteProvider{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:     strings.TrimRight(baseURL, "/"),
		rateLimiter: rate.NewLimiter(rate.Every(time.Second), 10),
		refresh:     refresh,
		log:         log,
		wait:        waitContext,
		now:         time.Now,
	}
}

// GetAll returns the cached snapshot, refreshing it once it is older than
// the refresh interval.
func (p *RemoteProvider) GetAll(ctx context.Context) ([]domain.Bourbon, error) {
	items, _, err := p.Snapshot(ctx)
	return items, err
}

// Snapshot is GetAll plus the version of exactly the items returned
func (p *RemoteProvider) Snapshot(ctx context.Context) ([]domain.Bourbon, string, error) {
	p.mu.RLock()
	fresh := p.items != nil && p.now().Sub(p.fetchedAt) < p.refresh
	items, current := p.items, p.version
	p.mu.RUnlock()

	if fresh {
		return cloneAll(items), current, nil
	}

	fetched, version, err := p.fetch(ctx)
	if err != nil {
		if items != nil {
			p.log.WithError(err).Warn("catalog refresh failed, serving stale snapshot", map[string]interface{}{
				"base_url": p.baseURL,
			})
			return cloneAll(items), current, nil
		}
		return nil, "", err
	}

	p.mu.Lock()
	p.items = fetched
	p.version = version
	p.fetchedAt = p.now()
	p.mu.Unlock()

	p.log.Info("catalog refreshed", map[string]interface{}{
		"count":   len(fetched),
		"version": version,
	})
	return cloneAll(fetched), version, nil
}

// Version of the last successfully fetched snapshot, empty before the first fetch
func (p *RemoteProvider) Version() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.version
}

// fetch retries transient failures with exponential backoff
func (p *RemoteProvider) fetch(ctx context.Context) ([]domain.Bourbon, string, error) {
	reqURL := p.baseURL + "/v1/bourbons"

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := p.rateLimiter.Wait(ctx); err != nil {
			return nil, "", fmt.Errorf("%w: rate limiter: %v", domain.ErrCatalogUnavailable, err)
		}

		items, version, retry, err := p.fetchOnce(ctx, reqURL)
		if err == nil {
			return items, version, nil
		}
		lastErr = err
		if !retry {
			break
		}

		p.log.Debug("catalog fetch failed", map[string]interface{}{
			"attempt": attempt,
			"error":   err.Error(),
		})
		if attempt < maxAttempts {
			if err := p.wait(ctx, exponentialBackoff(attempt)); err != nil {
				return nil, "", fmt.Errorf("%w: %v (last error: %v)", domain.ErrCatalogUnavailable, err, lastErr)
			}
		}
	}

	return nil, "", lastErr
}

func (p *RemoteProvider) fetchOnce(ctx context.Context, reqURL string) (items []domain.Bourbon, version string, retry bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, "", false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "BourbonVault/1.0")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, "", ctx.Err() == nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", true, fmt.Errorf("%w: read body: %v", domain.ErrCatalogUnavailable, err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, "", true, fmt.Errorf("%w: status %d", domain.ErrCatalogUnavailable, resp.StatusCode)
	default:
		return nil, "", false, fmt.Errorf("%w: status %d", domain.ErrCatalogUnavailable, resp.StatusCode)
	}

	var payload remoteCatalog
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, "", false, fmt.Errorf("%w: decode response: %v", domain.ErrCatalogUnavailable, err)
	}

	items, err = payload.toDomain()
	if err != nil {
		return nil, "", false, err
	}

	version = payload.Version
	if version == "" {
		version = contentVersion(body)
	}
	return items, version, false, nil
}

// exponentialBackoff returns 500ms, 1s, 2s, ... for attempts 1, 2, 3, ...
func exponentialBackoff(attempt int) time.Duration {
	return baseBackoff * time.Duration(1<<(attempt-1))
}

// waitContext sleeps for d or until ctx is done
func waitContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
