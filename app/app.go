package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"

	"inventory-admin/apiclient"
	"inventory-admin/app/controller"
	"inventory-admin/app/router"
	"inventory-admin/config"
	"inventory-admin/db"
	"inventory-admin/purchase"
	"inventory-admin/repository"
	"inventory-admin/service"
)

const (
	sessionPurgeInterval = 15 * time.Minute
	draftPurgeInterval   = 5 * time.Minute
)

// App is the wired application
type App struct {
	Handler http.Handler

	closers []func() error
}

// Close releases the session store connections
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			log.Warn().Err(err).Msg("⚠️  Close: error releasing resource")
		}
	}
}

// Initialize initializes the application. ctx bounds background work such as
// the expired-session and expired-draft purges.
func Initialize(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{}

	sessions, err := a.openSessionStore(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	// Remote inventory API
	api := apiclient.New(cfg.APIBaseURL, cfg.APITimeout)
	gateway := purchase.NewGateway(api, cfg.SubmitTimeout)

	drafts := repository.NewDraftRepository()

	// Services
	authService := service.NewAuthService(api, sessions, drafts, cfg.SessionTTL)
	draftService := service.NewDraftService(api, gateway, drafts, cfg.CatalogTimeout)
	inventoryService := service.NewInventoryService(api)
	reportService := service.NewReportService(api, cfg.ChromePath, cfg.ReportTimeout)
	thumbnailService := service.NewThumbnailService(api, api, cfg.ImageCacheDir)

	controllers := &router.Controllers{
		Auth:      controller.NewAuthController(authService, cfg.CookieSecure || cfg.IsProduction()),
		Inventory: controller.NewInventoryController(inventoryService, thumbnailService),
		Draft:     controller.NewDraftController(draftService),
		Report:    controller.NewReportController(reportService),
	}
	a.Handler = router.New(controllers, cfg.RequestTimeout)

	go purgeDrafts(ctx, draftService, cfg.SessionTTL)

	log.Info().Str("api", cfg.APIBaseURL).Str("sessions", cfg.SessionBackend).Msg("✅ Application initialized")
	return a, nil
}

func (a *App) openSessionStore(ctx context.Context, cfg *config.Config) (repository.SessionRepositoryInterface, error) {
	switch cfg.SessionBackend {
	case config.SessionBackendPostgres:
		conn, err := db.Open(ctx, cfg.PostgresDSN())
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		a.closers = append(a.closers, conn.Close)

		repo := repository.NewPostgresSessionRepository(conn)
		if err := repo.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		go purgeSessions(ctx, repo)
		return repo, nil

	case config.SessionBackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		a.closers = append(a.closers, client.Close)
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		log.Info().Str("addr", cfg.RedisAddr).Msg("✅ Connected to Redis")
		return repository.NewRedisSessionRepository(client), nil

	default:
		return repository.NewMemorySessionRepository(), nil
	}
}

// purgeSessions deletes expired Postgres sessions until ctx is done
func purgeSessions(ctx context.Context, repo *repository.PostgresSessionRepository) {
	ticker := time.NewTicker(sessionPurgeInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := repo.PurgeExpired(ctx)
			if err != nil {
				log.Warn().Err(err).Msg("⚠️  PurgeSessions: failed")
				continue
			}
			if n > 0 {
				log.Info().Int64("sessions", n).Msg("PurgeSessions: removed expired sessions")
			}
		}
	}
}

// purgeDrafts discards drafts older than the session TTL until ctx is done
func purgeDrafts(ctx context.Context, drafts *service.DraftService, ttl time.Duration) {
	ticker := time.NewTicker(draftPurgeInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			drafts.PurgeExpired(ttl)
		}
	}
}
