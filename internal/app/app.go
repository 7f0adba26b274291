package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ChukaCSTD/Macys-Clone/internal/api"
	"github.com/ChukaCSTD/Macys-Clone/internal/config"
	"github.com/ChukaCSTD/Macys-Clone/internal/domain"
	"github.com/ChukaCSTD/Macys-Clone/internal/storage"
	"github.com/ChukaCSTD/Macys-Clone/internal/store"
	"github.com/ChukaCSTD/Macys-Clone/pkg/httpclient"
)

// App wires the client core together: local storage, the remote API client,
// the session context and the three stores scoped to it.
type App struct {
	cfg     *config.Config
	logger  *slog.Logger
	storage storage.Store

	API     *api.Client
	Session *store.Session
	Catalog *store.Catalog
	Cart    *store.Cart
	Likes   *store.Likes
}

// New creates the application with all dependencies wired and local state
// restored (session, catalog cache, like cache). No network calls are made.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	st, err := openStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}
	logger.Info("local storage ready", slog.String("backend", cfg.StorageBackend))

	hcCfg := httpclient.DefaultConfig()
	hcCfg.Timeout = cfg.Timeout()
	hcCfg.MaxRetries = cfg.HTTPRetries
	apiClient := api.New(cfg.APIBaseURL, httpclient.New(hcCfg), logger)

	session := store.NewSession(st, logger)
	defaults := domain.Defaults{
		Currency: cfg.DefaultCurrency,
		Brand:    cfg.DefaultBrand,
	}
	catalog := store.NewCatalog(st, apiClient, session, defaults, logger)
	cart := store.NewCart(apiClient, session, logger)
	likes := store.NewLikes(st, apiClient, session, logger)

	if err := session.Restore(ctx); err != nil {
		logger.Warn("session restore failed", slog.String("error", err.Error()))
	}
	if err := catalog.Load(ctx); err != nil {
		logger.Warn("catalog load failed", slog.String("error", err.Error()))
	}
	if err := likes.Load(ctx); err != nil {
		logger.Warn("like load failed", slog.String("error", err.Error()))
	}

	return &App{
		cfg:     cfg,
		logger:  logger,
		storage: st,
		API:     apiClient,
		Session: session,
		Catalog: catalog,
		Cart:    cart,
		Likes:   likes,
	}, nil
}

// Close releases the local storage backend.
func (a *App) Close() error {
	return a.storage.Close()
}

func openStorage(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	switch cfg.StorageBackend {
	case config.BackendBolt:
		return storage.OpenBolt(cfg.StoragePath)
	case config.BackendRedis:
		return storage.NewRedis(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	case config.BackendMemory:
		return storage.NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %q", cfg.StorageBackend)
	}
}
