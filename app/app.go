// File: app/app.go
package app

import (
	"context"
	"fmt"
	"movie-api/config"
	"movie-api/db"
	"movie-api/handler"
	"movie-api/logger"
	"movie-api/repository"
	"movie-api/router"
	"movie-api/service"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// TestApp exposes the wired router and its collaborators to integration tests.
type TestApp struct {
	Router http.Handler
	Repos  *repository.Repositories
	Auth   *service.AuthService
	Movies *service.MovieService
}

// NewTestApp wires the application on top of repos using config.AppConfig.
// cache may be nil.
func NewTestApp(repos *repository.Repositories, cache service.ICacheClient) *TestApp {
	return build(repos, cache, config.AppConfig)
}

func build(repos *repository.Repositories, cache service.ICacheClient, cfg config.Config) *TestApp {
	// Layers for Auth
	authService := service.NewAuthService(repos.Users, service.TokenOptions{
		Secret: cfg.JWT.SecretKey,
		Issuer: cfg.JWT.Issuer,
		TTL:    cfg.JWT.TTL,
	})
	authHandler := handler.NewAuthHandler(authService)

	// Layers for Movies
	movieService := service.NewMovieService(repos.Movies, cache, cfg.Redis.TTL)
	movieHandler := handler.NewMovieHandler(movieService)

	// Layers for Users
	userService := service.NewUserService(repos.Users, authService)
	userHandler := handler.NewUserHandler(userService)

	opts := router.Options{
		Tokens:           authService,
		LegacyOpenRoutes: cfg.Auth.LegacyOpenRoutes,
		StaticDir:        cfg.Server.StaticDir,
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		StoreTimeout:     cfg.Store.Timeout,
	}
	if cfg.RateLimit.Enabled {
		opts.RateLimiter = handler.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	return &TestApp{
		Router: router.NewRouter(movieHandler, userHandler, authHandler, opts),
		Repos:  repos,
		Auth:   authService,
		Movies: movieService,
	}
}

// openStore connects the backend selected by store.driver.
func openStore(ctx context.Context, cfg config.Config) (*repository.Repositories, error) {
	switch cfg.Store.Driver {
	case "memory":
		logger.Log.Warn("Using the in-memory store, data is lost on restart")
		return repository.NewMemoryRepositories(), nil

	case "postgres":
		database, err := db.Connect(ctx)
		if err != nil {
			return nil, err
		}
		if err := db.Migrate(database); err != nil {
			database.Close()
			return nil, err
		}
		return &repository.Repositories{
			Movies: repository.NewPostgresMovieRepository(database),
			Users:  repository.NewPostgresUserRepository(database),
			Close:  func(context.Context) error { return database.Close() },
		}, nil

	case "mongo":
		client, database, err := db.ConnectMongo(ctx)
		if err != nil {
			return nil, err
		}
		users := repository.NewMongoUserRepository(database)
		if err := users.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		return &repository.Repositories{
			Movies: repository.NewMongoMovieRepository(database),
			Users:  users,
			Close:  client.Disconnect,
		}, nil
	}
	return nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
}

func Run() {
	logger.Init()
	if err := config.LoadConfig("."); err != nil {
		logger.Log.Fatalf("Error loading configuration: %v", err)
	}
	cfg := config.AppConfig
	logger.Log.Info("Configuration loaded successfully")

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStartup()

	repos, err := openStore(startupCtx, cfg)
	if err != nil {
		logger.Log.Fatalf("Error connecting to the %s store: %v", cfg.Store.Driver, err)
	}
	defer func() {
		if err := repos.Close(context.Background()); err != nil {
			logger.Log.WithError(err).Error("Failed to close store")
		}
	}()

	var cache service.ICacheClient
	if cfg.Redis.Addr != "" {
		rdb, err := db.ConnectRedis(startupCtx)
		if err != nil {
			logger.Log.WithError(err).Warn("Redis unavailable, movie caching disabled")
		} else {
			defer rdb.Close()
			cache = rdb
		}
	}

	a := build(repos, cache, cfg)

	if cfg.Store.Seed {
		n, err := a.Movies.SeedCatalog(startupCtx)
		if err != nil {
			logger.Log.Fatalf("Error seeding the movie catalog: %v", err)
		}
		if n > 0 {
			logger.Log.WithField("movies", n).Info("Movie catalog seeded")
		}
	}

	// --- Start the Server with Graceful Shutdown ---
	port := cfg.Server.Port
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	go func() {
		logger.Log.Infof("Server starting on port :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Warn("Shutdown signal received. Starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Errorf("Server forced to shutdown: %v", err)
		return
	}

	logger.Log.Info("Server exited properly")
}
