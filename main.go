package main

import (
	"Connect4/config"
	_ "Connect4/config/swagger"
	"Connect4/logger"
	"Connect4/middleware"
	"Connect4/routes"
	"Connect4/services/coordinator"
	"Connect4/services/redis"
	"Connect4/services/scheduler"
	"Connect4/services/session"
	"Connect4/services/socket_io"
	"Connect4/services/store"
	appsync "Connect4/sync"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

// @title Connect4 API
// @version 1.0
// @description Gin-Gonic server for the Connect4 game API
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	settings := config.Load()

	if settings.Prod {
		gin.SetMode(gin.ReleaseMode)
		logger.Init("production")
	} else {
		logger.Init(settings.LogLevel)
	}
	defer logger.Sync()
	logger.Infof("Setting up server...")

	gormDB, err := config.ConnectGORM(settings)
	if err != nil {
		logger.Fatalf("Error connecting to PostgreSQL: %v", err)
	}
	logger.Infof("GORM Connected")

	// Only migrate in development or during deployment
	if settings.MigratePostgres {
		logger.Infof("Migrating PostgreSQL database...")
		if err := config.MigrateDatabase(gormDB); err != nil {
			logger.Warnf("Database migration failed: %v", err)
		}
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatalf("Error reading GORM PostgreSQL instance: %v", err)
	}
	defer sqlDB.Close()

	gormStore := store.New(gormDB)
	arranger := session.NewArranger(settings.RatingTolerance, settings.MaxWaiting)
	sio := socket_io.New()
	opts := []coordinator.Option{coordinator.WithArranger(arranger)}

	redisClient, err := config.ConnectRedis(settings)
	if err != nil {
		logger.Fatalf("Error connecting to Redis: %v", err)
	}
	if redisClient != nil {
		defer redis.CloseRedis(redisClient)
		opts = append(opts,
			coordinator.WithPresence(redisClient),
			coordinator.WithLocker(redisClient, 10*settings.ArrangeInterval))
	} else {
		logger.Infof("REDIS_URL not set, running without presence mirror")
	}

	coord := coordinator.New(gormStore, sio, opts...)
	jwtManager := middleware.NewJWTManager(settings.JWTSecret, settings.JWTExpiration)

	r := gin.New()
	r.Use(gin.Recovery())

	middleware.SetUpMiddleware(r, settings)
	routes.SetupRoutes(r, gormStore, coord, jwtManager)
	sio.Start(r, coord, jwtManager)

	jobs, err := scheduler.New()
	if err != nil {
		logger.Fatalf("Error creating scheduler: %v", err)
	}
	if err := jobs.Every("arrange-random-matches", settings.ArrangeInterval, func(ctx context.Context) {
		coord.ArrangeRandomMatches(ctx)
	}); err != nil {
		logger.Fatalf("Error scheduling arranger: %v", err)
	}
	if redisClient != nil {
		syncManager := appsync.NewSyncManager(redisClient, coord.Registry())
		if err := jobs.Every("sync-presence", redis.PresenceTTL/4, func(ctx context.Context) {
			if _, err := syncManager.SyncPresence(ctx); err != nil {
				logger.Warnf("[SYNC] %v", err)
			}
		}); err != nil {
			logger.Fatalf("Error scheduling presence sync: %v", err)
		}
	}
	jobs.Start()

	server := &http.Server{Addr: ":" + settings.Port, Handler: r}
	go func() {
		var err error
		if settings.UseHTTPS {
			err = server.ListenAndServeTLS(settings.CertFile, settings.KeyFile)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Error starting server: %v", err)
		}
	}()
	logger.Infof("Server started on port %s", settings.Port)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	s := <-signals
	logger.Infof("Received %s, shutting down", s)

	if err := jobs.Shutdown(); err != nil {
		logger.Warnf("Error stopping scheduler: %v", err)
	}
	sio.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Warnf("Error shutting down server: %v", err)
	}
}
