package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"barangayhub/api/internal/models"
	"barangayhub/api/internal/security"
	"barangayhub/api/internal/store"
)

// BootstrapAdmin seeds the default back-office account when the admin
// collection is empty. It is safe to run on every startup.
func BootstrapAdmin(ctx context.Context, admins store.AdminStore, username, password string, log zerolog.Logger) error {
	count, err := admins.Count(ctx)
	if err != nil {
		return fmt.Errorf("count admins: %w", err)
	}
	if count > 0 {
		return nil
	}

	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return err
	}

	admin, err := admins.Create(ctx, models.Admin{
		Username:     username,
		PasswordHash: passwordHash,
	})
	if err != nil {
		// Another instance may have seeded between the count and the insert.
		if errors.Is(err, store.ErrDuplicate) {
			return nil
		}
		return fmt.Errorf("seed admin: %w", err)
	}

	log.Info().Str("username", admin.Username).Msg("bootstrap admin created")
	return nil
}
