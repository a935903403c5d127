package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PoolConfig struct {
	MaxConns          int
	MinConns          int
	HealthCheckPeriod time.Duration
	PoolTimeout       time.Duration
	RetryAttempts     int
	RetryDelay        time.Duration
	ApplicationName   string
}

func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		MaxConns:          50,
		MinConns:          5,
		HealthCheckPeriod: 30 * time.Second,
		PoolTimeout:       5 * time.Second,
		RetryAttempts:     5,
		RetryDelay:        time.Second,
		ApplicationName:   "artha-pay",
	}
}

// NewPool подключается к Postgres с экспоненциальной задержкой между попытками.
func NewPool(ctx context.Context, dsn string, cfg PoolConfig, log *slog.Logger) (*pgxpool.Pool, error) {
	conf, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("не удалось распарсить DSN: %w", err)
	}

	conf.MaxConns = int32(cfg.MaxConns)
	conf.MinConns = int32(cfg.MinConns)
	conf.HealthCheckPeriod = cfg.HealthCheckPeriod
	conf.MaxConnLifetime = 30 * time.Minute
	conf.MaxConnIdleTime = 5 * time.Minute
	if cfg.ApplicationName != "" {
		conf.ConnConfig.RuntimeParams["application_name"] = cfg.ApplicationName
	}
	conf.ConnConfig.ConnectTimeout = cfg.PoolTimeout

	attempts := max(cfg.RetryAttempts, 1)
	var pool *pgxpool.Pool
	for i := 0; i < attempts; i++ {
		if i > 0 {
			if err := backoff(ctx, cfg.RetryDelay*time.Duration(1<<(i-1))); err != nil {
				return nil, fmt.Errorf("подключение к БД прервано: %w", err)
			}
		}

		pool, err = pgxpool.NewWithConfig(ctx, conf)
		if err != nil {
			log.Warn("не удалось создать пул соединений",
				slog.Int("attempt", i+1),
				slog.Int("max_attempts", attempts),
				slog.String("error", err.Error()))
			continue
		}

		if err = pool.Ping(ctx); err != nil {
			log.Warn("ping БД не удался",
				slog.Int("attempt", i+1),
				slog.String("error", err.Error()))
			pool.Close()
			continue
		}

		log.Info("подключение к базе данных успешно")
		return pool, nil
	}

	return nil, fmt.Errorf("не удалось создать пул соединений после %d попыток: %w", attempts, err)
}

func backoff(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
