// Package database opens the PostgreSQL pool shared by the postgres store,
// migrations and the devtool.
package database

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vistalabs/vista/internal/config"
	"github.com/vistalabs/vista/internal/logger"
)

// PoolConfig describes a pgx pool. Zero values fall back to the defaults.
type PoolConfig struct {
	ConnString      string
	MaxConns        int
	MinConns        int
	MaxConnIdleTime time.Duration
	MaxConnLifetime time.Duration
	// ConnectTimeout bounds the initial ping
	ConnectTimeout  time.Duration
	ApplicationName string
}

// PoolConfigFrom maps the DB_* settings onto a PoolConfig
func PoolConfigFrom(cfg *config.Config) PoolConfig {
	return PoolConfig{
		ConnString:      cfg.GetDBConnString(),
		MaxConns:        cfg.DBMaxConns,
		MaxConnIdleTime: cfg.DBMaxConnIdleTime,
		MaxConnLifetime: cfg.DBMaxConnLifetime,
		ApplicationName: cfg.ServiceName,
	}
}

func (pc PoolConfig) withDefaults() PoolConfig {
	if pc.MaxConns <= 0 {
		pc.MaxConns = DefaultMaxConnections
	}
	if pc.MaxConns > math.MaxInt32 {
		pc.MaxConns = math.MaxInt32
	}
	if pc.MinConns <= 0 {
		pc.MinConns = DefaultMinConnections
	}
	if pc.MinConns > pc.MaxConns {
		pc.MinConns = pc.MaxConns
	}
	if pc.ConnectTimeout <= 0 {
		pc.ConnectTimeout = DefaultConnectTimeout
	}
	if pc.ApplicationName == "" {
		pc.ApplicationName = DefaultApplicationName
	}
	return pc
}

// NewPool creates the pool and pings it once. The caller must Close it.
func NewPool(ctx context.Context, pc PoolConfig) (*pgxpool.Pool, error) {
	pc = pc.withDefaults()

	poolCfg, err := pgxpool.ParseConfig(pc.ConnString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToParseConnString, err)
	}
	poolCfg.MaxConns = int32(pc.MaxConns)
	poolCfg.MinConns = int32(pc.MinConns)
	if pc.MaxConnIdleTime > 0 {
		poolCfg.MaxConnIdleTime = pc.MaxConnIdleTime
	}
	if pc.MaxConnLifetime > 0 {
		poolCfg.MaxConnLifetime = pc.MaxConnLifetime
	}
	poolCfg.ConnConfig.RuntimeParams["application_name"] = pc.ApplicationName

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCreatePool, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pc.ConnectTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToPingDatabase, err)
	}

	logger.FromContext(ctx).Info(LogMsgConnectedToDatabase,
		"host", poolCfg.ConnConfig.Host,
		"database", poolCfg.ConnConfig.Database,
		"max_conns", poolCfg.MaxConns)
	return pool, nil
}
