package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mshrynzw/auriary/internal/config"
)

func Connect(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, err
	}
	poolCfg.MaxConns = int32(cfg.MaxOpenConns)
	poolCfg.MaxConnIdleTime = cfg.MaxIdleTime
	return pgxpool.NewWithConfig(ctx, poolCfg)
}
