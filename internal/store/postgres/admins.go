package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"barangayhub/api/internal/models"
	"barangayhub/api/internal/store"
)

type adminStore struct {
	pool *pgxpool.Pool
}

func (s *adminStore) Create(ctx context.Context, admin models.Admin) (models.Admin, error) {
	const query = `
		INSERT INTO admins (username, password_hash)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	row := s.pool.QueryRow(ctx, query, admin.Username, admin.PasswordHash)
	if err := row.Scan(&admin.ID, &admin.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return models.Admin{}, store.ErrDuplicate
		}
		return models.Admin{}, err
	}
	return admin, nil
}

func (s *adminStore) FindByUsername(ctx context.Context, username string) (models.Admin, error) {
	const query = `
		SELECT id, username, password_hash, created_at
		FROM admins WHERE username = $1
	`

	row := s.pool.QueryRow(ctx, query, username)
	var admin models.Admin
	if err := row.Scan(
		&admin.ID,
		&admin.Username,
		&admin.PasswordHash,
		&admin.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Admin{}, store.ErrNotFound
		}
		return models.Admin{}, err
	}
	return admin, nil
}

func (s *adminStore) Count(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM admins`
	var count int
	if err := s.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
