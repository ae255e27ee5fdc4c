package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/lungscan/scan-api/internal/api"
	"github.com/lungscan/scan-api/internal/infrastructure/config"
	mongodb "github.com/lungscan/scan-api/internal/infrastructure/db/mongo"
	redisdb "github.com/lungscan/scan-api/internal/infrastructure/db/redis"
	"github.com/lungscan/scan-api/internal/infrastructure/storage"
	"github.com/lungscan/scan-api/internal/infrastructure/vision"
	"github.com/lungscan/scan-api/pkg/logger"
	goredis "github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	// Load a local .env when present; real deployments set the environment.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.Init(logger.Options{})
		bootLog.Fatal().Err(err).Msg("invalid configuration")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Debug,
	})

	ctx := context.Background()

	db := connectMongo(ctx, cfg, log)

	var rdb *goredis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, stats cache disabled")
			rdb = nil
		}
	}

	classifier := vision.NewClassifier(cfg.ModelPath, log)
	defer classifier.Close()

	files, err := storage.NewUploadStore(cfg.UploadDir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.UploadDir).Msg("cannot prepare upload directory")
	}

	e := api.NewRouter(cfg, db, rdb, classifier, files, log)

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	if db != nil {
		_ = db.Client().Disconnect(shutdownCtx)
	}
	if rdb != nil {
		_ = rdb.Close()
	}
}

// connectMongo dials MongoDB and creates the indexes the queries rely on.
// When ALLOW_START_WITHOUT_DB is set a connection failure is not fatal and
// the process serves in degraded mode.
func connectMongo(ctx context.Context, cfg *config.Config, log zerolog.Logger) *mongo.Database {
	_, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:        cfg.Mongo.URI,
		Database:   cfg.Mongo.Database,
		MaxRetries: 3,
		RetryDelay: 2 * time.Second,
	}, log)
	if err != nil {
		if cfg.AllowStartWithoutDB {
			log.Warn().Err(err).Msg("MongoDB unavailable, starting in degraded mode")
			return nil
		}
		log.Fatal().Err(err).Msg("cannot connect to MongoDB")
	}

	idxCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	for name, ensure := range map[string]func(context.Context) error{
		"doctors":  mongodb.NewDoctorRepository(db).EnsureIndexes,
		"patients": mongodb.NewPatientRepository(db).EnsureIndexes,
		"scans":    mongodb.NewScanRepository(db).EnsureIndexes,
	} {
		if err := ensure(idxCtx); err != nil {
			log.Warn().Err(err).Str("collection", name).Msg("could not ensure indexes")
		}
	}
	return db
}
