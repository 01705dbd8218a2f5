package file

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"barangayhub/api/internal/models"
	"barangayhub/api/internal/store"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestOpen_CreatesMissingDocuments(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s, err := Open(filepath.Join(dir, "data"))
	require.NoError(t, err)

	_, err = s.Users().List(context.Background())
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(dir, "data", "users.json"))
	require.NoError(t, err)
	require.JSONEq(t, "[]", string(raw))
}

func TestUserStore_CreateAndFind(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.Users().Create(ctx, models.User{
		Fullname:     "Ana Cruz",
		Email:        "ana@example.com",
		PasswordHash: "digest",
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), created.ID)
	require.False(t, created.CreatedAt.IsZero())

	byID, err := s.Users().GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "ana@example.com", byID.Email)

	// Email lookup is case-insensitive.
	byEmail, err := s.Users().FindByEmail(ctx, "ANA@Example.COM")
	require.NoError(t, err)
	require.Equal(t, created.ID, byEmail.ID)
}

func TestUserStore_DuplicateEmailCaseInsensitive(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Users().Create(ctx, models.User{Fullname: "Ana", Email: "ana@example.com", PasswordHash: "x"})
	require.NoError(t, err)

	_, err = s.Users().Create(ctx, models.User{Fullname: "Other", Email: "ANA@example.com", PasswordHash: "y"})
	require.ErrorIs(t, err, store.ErrDuplicate)
}

func TestUserStore_IDsNeverReused(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	first, err := s.Users().Create(ctx, models.User{Fullname: "A", Email: "a@example.com", PasswordHash: "x"})
	require.NoError(t, err)
	second, err := s.Users().Create(ctx, models.User{Fullname: "B", Email: "b@example.com", PasswordHash: "x"})
	require.NoError(t, err)
	require.Greater(t, second.ID, first.ID)

	// Deleting the highest id must not cause it to be handed out again.
	require.NoError(t, s.Users().Delete(ctx, second.ID))

	third, err := s.Users().Create(ctx, models.User{Fullname: "C", Email: "c@example.com", PasswordHash: "x"})
	require.NoError(t, err)
	require.Greater(t, third.ID, second.ID)
}

func TestUserStore_DeleteThenGet(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.Users().Create(ctx, models.User{Fullname: "A", Email: "a@example.com", PasswordHash: "x"})
	require.NoError(t, err)

	require.NoError(t, s.Users().Delete(ctx, created.ID))

	_, err = s.Users().GetByID(ctx, created.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	require.ErrorIs(t, s.Users().Delete(ctx, created.ID), store.ErrNotFound)
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ctx := context.Background()

	s, err := Open(dir)
	require.NoError(t, err)
	_, err = s.Users().Create(ctx, models.User{Fullname: "A", Email: "a@example.com", PasswordHash: "x"})
	require.NoError(t, err)
	second, err := s.Users().Create(ctx, models.User{Fullname: "B", Email: "b@example.com", PasswordHash: "x"})
	require.NoError(t, err)
	require.NoError(t, s.Users().Delete(ctx, second.ID))

	reopened, err := Open(dir)
	require.NoError(t, err)

	users, err := reopened.Users().List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)

	// The id high-water mark is rebuilt from the surviving records.
	next, err := reopened.Users().Create(ctx, models.User{Fullname: "C", Email: "c@example.com", PasswordHash: "x"})
	require.NoError(t, err)
	require.Greater(t, next.ID, users[0].ID)
}

func TestOfficialStore_ListInsertionOrder(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	names := []string{"Juan Dela Cruz", "Maria Santos", "Pedro Reyes"}
	for _, name := range names {
		_, err := s.Officials().Create(ctx, models.Official{Name: name, Position: "Kagawad"})
		require.NoError(t, err)
	}

	officials, err := s.Officials().List(ctx)
	require.NoError(t, err)
	require.Len(t, officials, len(names))
	for i, official := range officials {
		require.Equal(t, names[i], official.Name)
		require.Equal(t, int64(i+1), official.ID)
	}
}

func TestAdminStore_CountAndUniqueUsername(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	count, err := s.Admins().Count(ctx)
	require.NoError(t, err)
	require.Zero(t, count)

	_, err = s.Admins().Create(ctx, models.Admin{Username: "admin", PasswordHash: "x"})
	require.NoError(t, err)

	_, err = s.Admins().Create(ctx, models.Admin{Username: "admin", PasswordHash: "y"})
	require.ErrorIs(t, err, store.ErrDuplicate)

	count, err = s.Admins().Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestUserStore_ConcurrentCreates(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.Users().Create(ctx, models.User{
				Fullname:     "User",
				Email:        string(rune('a'+i)) + "@example.com",
				PasswordHash: "x",
			})
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}

	users, err := s.Users().List(ctx)
	require.NoError(t, err)
	require.Len(t, users, n)

	seen := make(map[int64]struct{}, n)
	for _, user := range users {
		_, dup := seen[user.ID]
		require.False(t, dup, "id %d assigned twice", user.ID)
		seen[user.ID] = struct{}{}
	}
}

func TestStore_Snapshot(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Users().Create(ctx, models.User{Fullname: "A", Email: "a@example.com", PasswordHash: "x"})
	require.NoError(t, err)

	dst := filepath.Join(t.TempDir(), "backup")
	require.NoError(t, s.Snapshot(dst))

	for _, name := range []string{"users.json", "admins.json", "officials.json"} {
		_, err := os.Stat(filepath.Join(dst, name))
		require.NoError(t, err, name)
	}

	src, err := os.ReadFile(filepath.Join(s.dir, "users.json"))
	require.NoError(t, err)
	copied, err := os.ReadFile(filepath.Join(dst, "users.json"))
	require.NoError(t, err)
	require.Equal(t, src, copied)
}
