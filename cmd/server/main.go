package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bourbonvault/backend/config"
	httpDelivery "github.com/bourbonvault/backend/internal/delivery/http"
	"github.com/bourbonvault/backend/internal/domain"
	"github.com/bourbonvault/backend/internal/infrastructure/cache"
	"github.com/bourbonvault/backend/internal/infrastructure/catalog"
	"github.com/bourbonvault/backend/internal/infrastructure/memory"
	"github.com/bourbonvault/backend/internal/infrastructure/postgres"
	"github.com/bourbonvault/backend/internal/infrastructure/session"
	"github.com/bourbonvault/backend/internal/logger"
	"github.com/bourbonvault/backend/internal/metrics"
	"github.com/bourbonvault/backend/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewStructured(cfg.Log.Level, cfg.Log.Format)

	if err := run(cfg, log); err != nil {
		log.WithError(err).Error("server stopped with error", nil)
		os.Exit(1)
	}
}

// repositories is the journal persistence picked by database.driver
type repositories struct {
	profiles  domain.ProfileRepository
	notes     domain.TastingNoteRepository
	favorites domain.FavoriteRepository
	items     domain.CollectionRepository
}

func run(cfg *config.Config, log logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("starting Bourbon Vault backend", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"database":    cfg.Database.Driver,
		"session":     cfg.Session.Type,
		"catalog":     cfg.Catalog.Source,
	})

	provider, err := newCatalogProvider(cfg.Catalog, log)
	if err != nil {
		return err
	}
	catalogSvc, err := usecase.NewCatalogService(provider)
	if err != nil {
		return err
	}

	var redisClient *redis.Client
	if cfg.Session.Type == "redis" || cfg.Cache.Type == "redis" {
		redisClient, err = session.NewRedisClient(ctx, session.RedisOptions{
			Addr:     cfg.Session.RedisAddr,
			Password: cfg.Session.RedisPassword,
			DB:       cfg.Session.RedisDB,
		})
		if err != nil {
			return err
		}
		defer redisClient.Close()
	}

	memCache := cache.NewMemoryCache(cache.DefaultCleanupInterval)
	defer memCache.Close()

	var resultCache domain.CacheRepository = memCache
	if cfg.Cache.Type == "redis" {
		resultCache = cache.NewRedisCache(redisClient, "bourbonvault:cache:")
	}

	var sessions domain.SessionStore = session.NewCacheStore(memCache, cfg.Session.TTL)
	if cfg.Session.Type == "redis" {
		sessions = session.NewRedisStore(redisClient, cfg.Session.TTL)
	}

	repos, closeDB, err := newRepositories(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer closeDB()

	m := metrics.New()

	recommendations, err := usecase.NewRecommendationService(
		catalogSvc,
		usecase.NewNoteHistory(repos.notes),
		repos.profiles,
		resultCache,
		m,
		log,
		usecase.RecommendationConfig{
			TopFlavors:   cfg.Recommend.TopFlavors,
			MaxResults:   cfg.Recommend.MaxResults,
			TopRatedMax:  cfg.Recommend.TopRatedMax,
			MinTopRating: cfg.Recommend.TopRatedMinRating,
			CacheTTL:     cfg.Cache.TTL,
		},
	)
	if err != nil {
		return err
	}
	markups, err := usecase.NewMarkupService(catalogSvc, resultCache, m, log, cfg.Cache.TTL)
	if err != nil {
		return err
	}

	notes := usecase.NewTastingNoteService(repos.notes, catalogSvc, log)
	favorites := usecase.NewFavoriteService(repos.favorites, catalogSvc, log)
	collection := usecase.NewCollectionService(repos.items, catalogSvc, log)

	handler := httpDelivery.NewHandler(httpDelivery.Services{
		Catalog:          catalogSvc,
		Recommendations:  recommendations,
		Markups:          markups,
		Compare:          usecase.NewCompareService(sessions, catalogSvc),
		SessionFavorites: usecase.NewAnonymousFavoriteService(sessions, catalogSvc),
		Notes:            notes,
		Favorites:        favorites,
		Collection:       collection,
		Profiles:         usecase.NewProfileService(repos.profiles),
		Dashboard:        usecase.NewDashboardService(notes, favorites, collection),
	}, log)

	auth := httpDelivery.NewTokenAuthority(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if auth == nil {
		log.Warn("no JWT secret configured, /api/v1/me routes are disabled", nil)
	}

	router := httpDelivery.SetupRouter(cfg, handler, httpDelivery.RouterDeps{
		Log:     log,
		Metrics: m,
		Auth:    auth,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("server listening", map[string]interface{}{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutdown signal received, draining connections", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Info("server stopped gracefully", nil)
	return nil
}

func newCatalogProvider(cfg config.CatalogConfig, log logger.Logger) (domain.CatalogProvider, error) {
	switch cfg.Source {
	case "file":
		return catalog.LoadFile(cfg.Path)
	case "remote":
		return catalog.NewRemoteProvider(cfg.BaseURL, cfg.Refresh, log), nil
	default:
		return catalog.NewEmbedded()
	}
}

func newRepositories(ctx context.Context, cfg config.DatabaseConfig) (*repositories, func(), error) {
	if cfg.Driver != "postgres" {
		store := memory.NewStore()
		return &repositories{
			profiles:  store.Profiles(),
			notes:     store.TastingNotes(),
			favorites: store.Favorites(),
			items:     store.Collection(),
		}, func() {}, nil
	}

	db, err := postgres.Open(ctx, postgres.Options{
		DSN:            cfg.DSN,
		MaxConnections: cfg.MaxConnections,
		MaxIdle:        cfg.MaxIdle,
	})
	if err != nil {
		return nil, nil, err
	}
	if err := postgres.InitSchema(ctx, db); err != nil {
		db.Close()
		return nil, nil, err
	}

	repos := postgres.NewRepositories(db)
	return &repositories{
		profiles:  repos.Profiles,
		notes:     repos.TastingNotes,
		favorites: repos.Favorites,
		items:     repos.Collection,
	}, closeFunc(db), nil
}

func closeFunc(db *sql.DB) func() {
	return func() { db.Close() }
}
