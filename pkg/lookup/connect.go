package lookup

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// RedisConfig configures ConnectRedis.
type RedisConfig struct {
	ConnectionURL  string        `env:"LOOKUP_REDIS_URL" envDefault:"redis://localhost:6379/0"`
	RetryAttempts  int           `env:"LOOKUP_REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"LOOKUP_REDIS_RETRY_INTERVAL" envDefault:"2s"`
	ConnectTimeout time.Duration `env:"LOOKUP_REDIS_CONNECT_TIMEOUT" envDefault:"10s"`
}

// PostgresConfig configures ConnectPostgres.
type PostgresConfig struct {
	ConnectionString string        `env:"LOOKUP_PG_CONN_URL"`
	MaxConns         int32         `env:"LOOKUP_PG_MAX_CONNS" envDefault:"4"`
	RetryAttempts    int           `env:"LOOKUP_PG_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval    time.Duration `env:"LOOKUP_PG_RETRY_INTERVAL" envDefault:"2s"`
}

// ConnectRedis opens a redis client and pings it, retrying up to
// RetryAttempts times.
func ConnectRedis(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.ConnectionURL)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseRedisURL, err)
	}

	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	var lastErr error
	for range max(cfg.RetryAttempts, 1) {
		client := redis.NewClient(opts)
		if lastErr = client.Ping(ctx).Err(); lastErr == nil {
			return client, nil
		}
		_ = client.Close()

		if err := sleep(ctx, cfg.RetryInterval); err != nil {
			return nil, errors.Join(ErrRedisNotReady, err)
		}
	}
	return nil, errors.Join(ErrRedisNotReady, lastErr)
}

// ConnectPostgres opens a pgx pool and pings it, retrying with a linearly
// growing delay.
func ConnectPostgres(ctx context.Context, cfg PostgresConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString)
	if err != nil {
		return nil, errors.Join(ErrFailedToParsePostgresDSN, err)
	}
	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	}

	var lastErr error
	for i := range max(cfg.RetryAttempts, 1) {
		pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				return pool, nil
			}
			pool.Close()
		}
		lastErr = err

		if err := sleep(ctx, time.Duration(i+1)*cfg.RetryInterval); err != nil {
			return nil, errors.Join(ErrPostgresNotReady, err)
		}
	}
	return nil, errors.Join(ErrPostgresNotReady, lastErr)
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
