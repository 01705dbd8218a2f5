package file

import (
	"context"
	"time"

	"barangayhub/api/internal/models"
	"barangayhub/api/internal/store"
)

type adminRecord struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

func (r adminRecord) model() models.Admin {
	return models.Admin{
		ID:           r.ID,
		Username:     r.Username,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt,
	}
}

type adminStore struct {
	doc *document[adminRecord]
}

func (s *adminStore) Create(ctx context.Context, admin models.Admin) (models.Admin, error) {
	var created models.Admin
	err := s.doc.update(func(items []adminRecord) ([]adminRecord, error) {
		for _, item := range items {
			if item.Username == admin.Username {
				return nil, store.ErrDuplicate
			}
		}
		rec := adminRecord{
			ID:           s.doc.nextID(),
			Username:     admin.Username,
			PasswordHash: admin.PasswordHash,
			CreatedAt:    time.Now().UTC(),
		}
		created = rec.model()
		return append(items, rec), nil
	})
	if err != nil {
		return models.Admin{}, err
	}
	return created, nil
}

func (s *adminStore) FindByUsername(ctx context.Context, username string) (models.Admin, error) {
	var found models.Admin
	err := s.doc.view(func(items []adminRecord) error {
		for _, item := range items {
			if item.Username == username {
				found = item.model()
				return nil
			}
		}
		return store.ErrNotFound
	})
	if err != nil {
		return models.Admin{}, err
	}
	return found, nil
}

func (s *adminStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.doc.view(func(items []adminRecord) error {
		count = len(items)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}
