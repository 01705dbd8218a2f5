package file

import (
	"context"
	"strings"
	"time"

	"barangayhub/api/internal/models"
	"barangayhub/api/internal/store"
)

// userRecord is the on-disk shape of a user entry in users.json.
type userRecord struct {
	ID           int64     `json:"id"`
	Fullname     string    `json:"fullname"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

func (r userRecord) model() models.User {
	return models.User{
		ID:           r.ID,
		Fullname:     r.Fullname,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt,
	}
}

type userStore struct {
	doc *document[userRecord]
}

func (s *userStore) Create(ctx context.Context, user models.User) (models.User, error) {
	var created models.User
	err := s.doc.update(func(items []userRecord) ([]userRecord, error) {
		for _, item := range items {
			if strings.EqualFold(item.Email, user.Email) {
				return nil, store.ErrDuplicate
			}
		}
		rec := userRecord{
			ID:           s.doc.nextID(),
			Fullname:     user.Fullname,
			Email:        user.Email,
			PasswordHash: user.PasswordHash,
			CreatedAt:    time.Now().UTC(),
		}
		created = rec.model()
		return append(items, rec), nil
	})
	if err != nil {
		return models.User{}, err
	}
	return created, nil
}

func (s *userStore) GetByID(ctx context.Context, id int64) (models.User, error) {
	var found models.User
	err := s.doc.view(func(items []userRecord) error {
		for _, item := range items {
			if item.ID == id {
				found = item.model()
				return nil
			}
		}
		return store.ErrNotFound
	})
	if err != nil {
		return models.User{}, err
	}
	return found, nil
}

func (s *userStore) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var found models.User
	err := s.doc.view(func(items []userRecord) error {
		for _, item := range items {
			if strings.EqualFold(item.Email, email) {
				found = item.model()
				return nil
			}
		}
		return store.ErrNotFound
	})
	if err != nil {
		return models.User{}, err
	}
	return found, nil
}

// List returns users in insertion order.
func (s *userStore) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.doc.view(func(items []userRecord) error {
		users = make([]models.User, 0, len(items))
		for _, item := range items {
			users = append(users, item.model())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (s *userStore) Delete(ctx context.Context, id int64) error {
	return s.doc.update(func(items []userRecord) ([]userRecord, error) {
		for i, item := range items {
			if item.ID == id {
				return append(items[:i], items[i+1:]...), nil
			}
		}
		return nil, store.ErrNotFound
	})
}
