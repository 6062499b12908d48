package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jerry-619/JobPrep-AI/internal/config"
)

func Connect(ctx context.Context, dbCfg config.DBConfig) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dbCfg.DSN)
	if err != nil {
		return nil, err
	}
	cfg.MaxConns = int32(dbCfg.MaxConns)
	cfg.MaxConnLifetime = dbCfg.MaxConnLife
	return pgxpool.NewWithConfig(ctx, cfg)
}
