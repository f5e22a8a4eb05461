package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/folio/backend/internal/config"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPool は PostgreSQL 接続プールを生成する
func NewPool(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// CloseFunc releases the connection behind a store.
type CloseFunc func(ctx context.Context) error

// Open configures the store selected by cfg.Driver without contacting it, so
// the API can start while the store is down; failures surface per request.
// The returned store is shared by all requests; call the CloseFunc on shutdown.
func Open(ctx context.Context, cfg config.StoreConfig) (ContactRepository, CloseFunc, error) {
	slog.Info("opening contact store", "driver", cfg.Driver)

	switch cfg.Driver {
	case config.DriverMongo:
		client, err := NewMongoClient(cfg.MongoURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to mongo: %w", err)
		}
		repo := NewMongoContactRepository(client.Database(cfg.DBName))
		return repo, client.Disconnect, nil

	case config.DriverPostgres:
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to postgres: %w", err)
		}
		return NewPgContactRepository(pool), func(context.Context) error {
			pool.Close()
			return nil
		}, nil

	case config.DriverRedis:
		client, err := NewRedisClient(cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to redis: %w", err)
		}
		return NewRedisContactRepository(client, cfg.RedisKey), func(context.Context) error {
			return client.Close()
		}, nil

	case config.DriverDynamoDB:
		client, err := NewDynamoClient(ctx, cfg.AWSRegion, cfg.DynamoDBEndpoint)
		if err != nil {
			return nil, nil, fmt.Errorf("configuring dynamodb: %w", err)
		}
		return NewDynamoContactRepository(client, cfg.DynamoDBTable), noopClose, nil

	case config.DriverMemory:
		return NewMemoryContactRepository(), noopClose, nil
	}

	return nil, nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
}

func noopClose(context.Context) error { return nil }
