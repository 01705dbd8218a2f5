package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"barangayhub/api/internal/models"
	"barangayhub/api/internal/store"
)

// OfficialService manages the public roster of elected officials.
type OfficialService struct {
	officials store.OfficialStore
	log       zerolog.Logger
}

func NewOfficialService(officials store.OfficialStore, log zerolog.Logger) *OfficialService {
	return &OfficialService{officials: officials, log: log}
}

func (s *OfficialService) List(ctx context.Context) ([]models.Official, error) {
	return s.officials.List(ctx)
}

func (s *OfficialService) Add(ctx context.Context, name, position, contactInfo string) (models.Official, error) {
	name = strings.TrimSpace(name)
	position = strings.TrimSpace(position)
	if name == "" || position == "" {
		return models.Official{}, validationErrorf("name and position are required")
	}

	official, err := s.officials.Create(ctx, models.Official{
		Name:        name,
		Position:    position,
		ContactInfo: strings.TrimSpace(contactInfo),
	})
	if err != nil {
		return models.Official{}, err
	}

	s.log.Info().Int64("official_id", official.ID).Str("position", official.Position).Msg("official added")
	return official, nil
}

func (s *OfficialService) Delete(ctx context.Context, id int64) error {
	return s.officials.Delete(ctx, id)
}
