package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultTimeout = 10 * time.Second

// Config captures the settings required to establish a MongoDB connection.
type Config struct {
	URI        string
	Database   string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
}

// Connect establishes a MongoDB client, verifying connectivity with a ping.
// The attempt is retried MaxRetries times with RetryDelay between attempts
// before giving up; the caller decides whether a final failure is fatal.
func Connect(ctx context.Context, cfg Config, logger zerolog.Logger) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	retries := cfg.MaxRetries
	if retries <= 0 {
		retries = 1
	}

	var lastErr error
	for attempt := 1; attempt <= retries; attempt++ {
		client, db, err := connectOnce(ctx, cfg, timeout)
		if err == nil {
			logger.Info().Str("database", cfg.Database).Msg("connected to MongoDB")
			return client, db, nil
		}
		lastErr = err
		logger.Error().Err(err).Int("attempt", attempt).Msg("failed to connect to MongoDB")
		if attempt < retries {
			select {
			case <-ctx.Done():
				return nil, nil, ctx.Err()
			case <-time.After(cfg.RetryDelay):
			}
		}
	}
	return nil, nil, lastErr
}

func connectOnce(ctx context.Context, cfg Config, timeout time.Duration) (*mongo.Client, *mongo.Database, error) {
	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().
		ApplyURI(cfg.URI).
		SetServerSelectionTimeout(timeout).
		SetConnectTimeout(timeout))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, client.Database(cfg.Database), nil
}
