package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"kindred/auth"
	"kindred/chat"
	"kindred/config"
	"kindred/database"
	"kindred/events"
	"kindred/handlers"
	"kindred/logger"
	"kindred/matching"
	"kindred/media"
	"kindred/memstore"
	"kindred/middleware"
	"kindred/profile"
	"kindred/routes"
	"kindred/store"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logg, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logg.Sync() }()

	if err := run(cfg, logg); err != nil {
		logg.Fatal("server exited", zap.Error(err))
	}
}

func run(cfg *config.Config, logg *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, pinger, closeStore, err := openStore(ctx, cfg, logg)
	if err != nil {
		return err
	}
	defer closeStore()

	var uploader media.Uploader = media.DisabledUploader{}
	if cfg.CloudinaryURL != "" {
		cld, err := media.NewCloudinaryUploader(cfg.CloudinaryURL, "kindred/profiles")
		if err != nil {
			return err
		}
		uploader = cld
	} else {
		logg.Warn("CLOUDINARY_URL not set, profile image uploads are disabled")
	}

	limiter, closeLimiter, err := newLimiter(ctx, cfg, logg)
	if err != nil {
		return err
	}
	defer closeLimiter()

	publisher := events.NewLogPublisher(logg)
	authSvc := auth.NewService(st, auth.NewTokenManager(cfg.JWTSecret, auth.SessionTTL))

	h := handlers.New(handlers.Deps{
		Auth:          authSvc,
		Engine:        matching.NewEngine(st, publisher, logg),
		Chat:          chat.NewService(st, publisher),
		Profiles:      profile.NewService(st, uploader, logg),
		Pinger:        pinger,
		SecureCookies: cfg.Production(),
		Log:           logg,
	})

	if cfg.GinMode == gin.ReleaseMode || cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := routes.SetupRouter(h, routes.Config{
		ClientURL:     cfg.ClientURL,
		Limiter:       limiter,
		Authenticator: authSvc,
		Log:           logg,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logg.Info("server listening", zap.String("port", cfg.Port), zap.String("store", cfg.StoreBackend))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logg.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logg.Info("server stopped")
	return nil
}

func openStore(ctx context.Context, cfg *config.Config, logg *zap.Logger) (store.Store, handlers.Pinger, func(), error) {
	if cfg.StoreBackend == "memory" {
		logg.Warn("using in-memory store, data is lost on restart")
		return memstore.New(), nil, func() {}, nil
	}

	var (
		db  *database.Store
		err error
	)
	for attempt := 1; attempt <= 3; attempt++ {
		db, err = database.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase, logg)
		if err == nil {
			break
		}
		logg.Warn("MongoDB connection attempt failed", zap.Int("attempt", attempt), zap.Error(err))
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, nil, nil, err
	}

	if err := db.EnsureIndexes(ctx); err != nil {
		_ = db.Disconnect()
		return nil, nil, nil, err
	}

	closeFn := func() {
		if err := db.Disconnect(); err != nil {
			logg.Warn("MongoDB disconnect failed", zap.Error(err))
		}
	}
	return db, db, closeFn, nil
}

func newLimiter(ctx context.Context, cfg *config.Config, logg *zap.Logger) (middleware.Limiter, func(), error) {
	if cfg.RedisURL == "" {
		rl := middleware.NewIPRateLimiter(cfg.RatePerMinute)
		go rl.Cleanup(ctx)
		return rl, func() {}, nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, err
	}
	logg.Info("rate limiting backed by Redis")

	closeFn := func() {
		if err := client.Close(); err != nil {
			logg.Warn("redis close failed", zap.Error(err))
		}
	}
	return middleware.NewRedisRateLimiter(client, "kindred:ratelimit", cfg.RatePerMinute), closeFn, nil
}
