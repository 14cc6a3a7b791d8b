// Package postgres содержит обертку над пулом соединений pgx.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"staffdir/pkg/logger"
)

// Константы для сообщений логгера.
const (
	logConnecting = "connecting to Postgres database"
	logConnected  = "successfully connected to Postgres"
	logClosing    = "closing Postgres connection pool"
)

// Константы для сообщений об ошибках.
const (
	errParseConfig  = "failed to parse connection config"
	errCreatePool   = "failed to create connection pool"
	errPingDatabase = "failed to ping database"
)

// Database представляет соединение с Postgres.
type Database struct {
	pool *pgxpool.Pool
}

// New создает новое соединение с базой данных Postgres.
func New(ctx context.Context, dsn string, minConn, maxConn int) (*Database, error) {
	log := logger.Log(ctx)

	log.Info(ctx, logConnecting)

	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Error(ctx, errParseConfig, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errParseConfig, err)
	}

	poolCfg.MinConns = int32(minConn)
	poolCfg.MaxConns = int32(maxConn)

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		log.Error(ctx, errCreatePool, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCreatePool, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		log.Error(ctx, errPingDatabase, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errPingDatabase, err)
	}

	log.Info(ctx, logConnected)
	return &Database{pool: pool}, nil
}

// Pool возвращает пул соединений.
func (db *Database) Pool() *pgxpool.Pool {
	return db.pool
}

// Ping проверяет доступность базы данных.
func (db *Database) Ping(ctx context.Context) error {
	if err := db.pool.Ping(ctx); err != nil {
		return fmt.Errorf("%s: %w", errPingDatabase, err)
	}
	return nil
}

// Close закрывает соединение с базой данных.
func (db *Database) Close(ctx context.Context) {
	logger.Log(ctx).Info(ctx, logClosing)
	db.pool.Close()
}
