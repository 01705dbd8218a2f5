package file

import (
	"context"
	"time"

	"barangayhub/api/internal/models"
	"barangayhub/api/internal/store"
)

type officialRecord struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Position    string    `json:"position"`
	ContactInfo string    `json:"contact_info"`
	CreatedAt   time.Time `json:"created_at"`
}

func (r officialRecord) model() models.Official {
	return models.Official{
		ID:          r.ID,
		Name:        r.Name,
		Position:    r.Position,
		ContactInfo: r.ContactInfo,
		CreatedAt:   r.CreatedAt,
	}
}

type officialStore struct {
	doc *document[officialRecord]
}

func (s *officialStore) Create(ctx context.Context, official models.Official) (models.Official, error) {
	var created models.Official
	err := s.doc.update(func(items []officialRecord) ([]officialRecord, error) {
		rec := officialRecord{
			ID:          s.doc.nextID(),
			Name:        official.Name,
			Position:    official.Position,
			ContactInfo: official.ContactInfo,
			CreatedAt:   time.Now().UTC(),
		}
		created = rec.model()
		return append(items, rec), nil
	})
	if err != nil {
		return models.Official{}, err
	}
	return created, nil
}

func (s *officialStore) GetByID(ctx context.Context, id int64) (models.Official, error) {
	var found models.Official
	err := s.doc.view(func(items []officialRecord) error {
		for _, item := range items {
			if item.ID == id {
				found = item.model()
				return nil
			}
		}
		return store.ErrNotFound
	})
	if err != nil {
		return models.Official{}, err
	}
	return found, nil
}

// List returns officials in insertion order.
func (s *officialStore) List(ctx context.Context) ([]models.Official, error) {
	var officials []models.Official
	err := s.doc.view(func(items []officialRecord) error {
		officials = make([]models.Official, 0, len(items))
		for _, item := range items {
			officials = append(officials, item.model())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return officials, nil
}

func (s *officialStore) Delete(ctx context.Context, id int64) error {
	return s.doc.update(func(items []officialRecord) ([]officialRecord, error) {
		for i, item := range items {
			if item.ID == id {
				return append(items[:i], items[i+1:]...), nil
			}
		}
		return nil, store.ErrNotFound
	})
}
