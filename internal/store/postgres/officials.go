package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"barangayhub/api/internal/models"
	"barangayhub/api/internal/store"
)

type officialStore struct {
	pool *pgxpool.Pool
}

func (s *officialStore) Create(ctx context.Context, official models.Official) (models.Official, error) {
	const query = `
		INSERT INTO officials (name, position, contact_info)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	row := s.pool.QueryRow(ctx, query, official.Name, official.Position, official.ContactInfo)
	if err := row.Scan(&official.ID, &official.CreatedAt); err != nil {
		return models.Official{}, err
	}
	return official, nil
}

func (s *officialStore) GetByID(ctx context.Context, id int64) (models.Official, error) {
	const query = `
		SELECT id, name, position, contact_info, created_at
		FROM officials WHERE id = $1
	`

	row := s.pool.QueryRow(ctx, query, id)
	var official models.Official
	if err := row.Scan(
		&official.ID,
		&official.Name,
		&official.Position,
		&official.ContactInfo,
		&official.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Official{}, store.ErrNotFound
		}
		return models.Official{}, err
	}
	return official, nil
}

func (s *officialStore) List(ctx context.Context) ([]models.Official, error) {
	const query = `
		SELECT id, name, position, contact_info, created_at
		FROM officials ORDER BY id ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	officials := []models.Official{}
	for rows.Next() {
		var official models.Official
		if err := rows.Scan(
			&official.ID,
			&official.Name,
			&official.Position,
			&official.ContactInfo,
			&official.CreatedAt,
		); err != nil {
			return nil, err
		}
		officials = append(officials, official)
	}
	return officials, rows.Err()
}

func (s *officialStore) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM officials WHERE id = $1`
	cmd, err := s.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}
