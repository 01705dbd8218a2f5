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

const uniqueViolation = "23505"

type userStore struct {
	pool *pgxpool.Pool
}

func (s *userStore) Create(ctx context.Context, user models.User) (models.User, error) {
	const query = `
		INSERT INTO users (fullname, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	row := s.pool.QueryRow(ctx, query, user.Fullname, user.Email, user.PasswordHash)
	if err := row.Scan(&user.ID, &user.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return models.User{}, store.ErrDuplicate
		}
		return models.User{}, err
	}
	return user, nil
}

func (s *userStore) GetByID(ctx context.Context, id int64) (models.User, error) {
	const query = `
		SELECT id, fullname, email, password_hash, created_at
		FROM users WHERE id = $1
	`
	return scanUser(s.pool.QueryRow(ctx, query, id))
}

func (s *userStore) FindByEmail(ctx context.Context, email string) (models.User, error) {
	const query = `
		SELECT id, fullname, email, password_hash, created_at
		FROM users WHERE LOWER(email) = LOWER($1)
	`
	return scanUser(s.pool.QueryRow(ctx, query, email))
}

// List returns users newest-first.
func (s *userStore) List(ctx context.Context) ([]models.User, error) {
	const query = `
		SELECT id, fullname, email, password_hash, created_at
		FROM users ORDER BY id DESC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var user models.User
		if err := rows.Scan(
			&user.ID,
			&user.Fullname,
			&user.Email,
			&user.PasswordHash,
			&user.CreatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (s *userStore) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM users WHERE id = $1`
	cmd, err := s.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (models.User, error) {
	var user models.User
	if err := row.Scan(
		&user.ID,
		&user.Fullname,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, store.ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}
