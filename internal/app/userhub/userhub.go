// Package userhub собирает приложение: хранилище, кэш, сервисы,
// маршрутизатор и HTTP-сервер с плавной остановкой.
package userhub

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/vpetrukhin/user-hub/internal/cache"
	"github.com/vpetrukhin/user-hub/internal/config"
	jwtlib "github.com/vpetrukhin/user-hub/internal/lib/jwt"
	authservice "github.com/vpetrukhin/user-hub/internal/services/auth"
	subservice "github.com/vpetrukhin/user-hub/internal/services/subscription"
	userservice "github.com/vpetrukhin/user-hub/internal/services/user"
	"github.com/vpetrukhin/user-hub/internal/storage/mongo"
	"github.com/vpetrukhin/user-hub/internal/storage/repository"
)

// App корневой объект приложения.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *mongo.Storage
	cache  *cache.Cache
}

// New конструирует приложение из конфига: один раз на старте процесса,
// после конструирования конфигурация не меняется.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, err
	}

	connectCtx, cancel := context.WithTimeout(ctx, cfg.StorageConnection.ConnectTimeout)
	defer cancel()
	db, err := mongo.New(connectCtx, cfg.StorageConnection.URL, cfg.StorageConnection.DBName, loc)
	if err != nil {
		return nil, err
	}
	if err := db.EnsureIndexes(ctx, cfg.UsersCollection, cfg.SubscriptionsCollection); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	repo := repository.New(db, cfg.StorageConnection)

	accessMaker := jwtlib.NewMaker(cfg.AccessSecretKey, cfg.AccessTokenTTL)
	refreshMaker := jwtlib.NewMaker(cfg.RefreshSecretKey, cfg.RefreshTokenTTL)

	authService := authservice.New(repo, accessMaker, refreshMaker, cfg.BcryptCost, loc)
	userService := userservice.New(repo, cacheRedis, cfg.RedisConnection.CacheTTL, logger)
	subscriptionService := subservice.New(repo, repo, loc)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, authService, userService, subscriptionService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
	}, nil
}

// Run запускает HTTP-сервер и блокируется до остановки контекста
// или ошибки сервера. Остановка плавная, с закрытием соединений.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if closeErr := a.db.Close(timeoutCtx); closeErr != nil {
			a.logger.Error("failed to close storage connection")
		}
		if closeErr := a.cache.Db.Close(); closeErr != nil {
			a.logger.Error("failed to close cache connection")
		}
		return err
	}
}
