// Package store defines the persistence contracts shared by the file and
// postgres backends. Callers must not rely on List ordering being the same
// across backends.
package store

import (
	"context"
	"errors"

	"barangayhub/api/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate indicates a uniqueness conflict on a record's unique key.
var ErrDuplicate = errors.New("record already exists")

// UserStore persists citizen accounts. Email lookup is case-insensitive.
type UserStore interface {
	Create(ctx context.Context, user models.User) (models.User, error)
	GetByID(ctx context.Context, id int64) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Delete(ctx context.Context, id int64) error
}

// AdminStore persists back-office accounts.
type AdminStore interface {
	Create(ctx context.Context, admin models.Admin) (models.Admin, error)
	FindByUsername(ctx context.Context, username string) (models.Admin, error)
	Count(ctx context.Context) (int, error)
}

// OfficialStore persists the officials roster.
type OfficialStore interface {
	Create(ctx context.Context, official models.Official) (models.Official, error)
	GetByID(ctx context.Context, id int64) (models.Official, error)
	List(ctx context.Context) ([]models.Official, error)
	Delete(ctx context.Context, id int64) error
}

// Backend bundles the collection stores of one persistence driver. Exactly
// one backend is wired per deployment; request handling never branches on
// the driver.
type Backend interface {
	Users() UserStore
	Admins() AdminStore
	Officials() OfficialStore
	Ping(ctx context.Context) error
	Close() error
}
