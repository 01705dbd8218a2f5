// Package postgres implements store.Backend on PostgreSQL via pgx.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"barangayhub/api/internal/config"
	"barangayhub/api/internal/store"
)

var _ store.Backend = (*Store)(nil)

// Store is the PostgreSQL persistence driver.
type Store struct {
	pool      *pgxpool.Pool
	users     *userStore
	admins    *adminStore
	officials *officialStore
}

// Open connects a pool, verifies connectivity, and applies pending schema
// migrations.
func Open(ctx context.Context, cfg config.PostgresConfig) (*Store, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL())
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxOpen)
	poolConfig.MinConns = int32(cfg.MaxIdle)
	poolConfig.MaxConnLifetime = cfg.ConnMaxLifetime
	poolConfig.HealthCheckPeriod = 30 * time.Second

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connectCtx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("pgxpool: %w", err)
	}

	if err := pool.Ping(connectCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	if err := runMigrations(ctx, cfg.URL()); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &Store{
		pool:      pool,
		users:     &userStore{pool: pool},
		admins:    &adminStore{pool: pool},
		officials: &officialStore{pool: pool},
	}, nil
}

func (s *Store) Users() store.UserStore         { return s.users }
func (s *Store) Admins() store.AdminStore       { return s.admins }
func (s *Store) Officials() store.OfficialStore { return s.officials }

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}
