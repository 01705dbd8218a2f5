// Package file implements store.Backend on flat JSON documents, one array
// file per collection (users.json, admins.json, officials.json). Every
// mutation rewrites the whole document through a temp-file rename; all
// access to a collection is serialized by its document mutex, so concurrent
// writers cannot lose updates.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"barangayhub/api/internal/store"
)

var _ store.Backend = (*Store)(nil)

// Store is the file-backed persistence driver rooted at a data directory.
type Store struct {
	dir       string
	users     *userStore
	admins    *adminStore
	officials *officialStore
}

// Open prepares the data directory and loads id high-water marks for each
// collection. Missing documents are created as empty arrays.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	users, err := openDocument[userRecord](filepath.Join(dir, "users.json"), func(r userRecord) int64 { return r.ID })
	if err != nil {
		return nil, err
	}
	admins, err := openDocument[adminRecord](filepath.Join(dir, "admins.json"), func(r adminRecord) int64 { return r.ID })
	if err != nil {
		return nil, err
	}
	officials, err := openDocument[officialRecord](filepath.Join(dir, "officials.json"), func(r officialRecord) int64 { return r.ID })
	if err != nil {
		return nil, err
	}

	return &Store{
		dir:       dir,
		users:     &userStore{doc: users},
		admins:    &adminStore{doc: admins},
		officials: &officialStore{doc: officials},
	}, nil
}

func (s *Store) Users() store.UserStore         { return s.users }
func (s *Store) Admins() store.AdminStore       { return s.admins }
func (s *Store) Officials() store.OfficialStore { return s.officials }

func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := os.Stat(s.dir); err != nil {
		return fmt.Errorf("data dir: %w", err)
	}
	return nil
}

func (s *Store) Close() error { return nil }

// Snapshot copies every collection document into dir, creating it if
// needed. Each copy is taken under the collection lock so a snapshot never
// observes a half-written document.
func (s *Store) Snapshot(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}
	if err := s.users.doc.copyTo(dir); err != nil {
		return err
	}
	if err := s.admins.doc.copyTo(dir); err != nil {
		return err
	}
	return s.officials.doc.copyTo(dir)
}

// document is one JSON array file plus the bookkeeping needed to hand out
// monotonically increasing ids. lastID only ever grows, so ids are never
// reused within the store's lifetime even after the highest record is
// deleted.
type document[T any] struct {
	mu     sync.Mutex
	path   string
	lastID int64
	idOf   func(T) int64
}

func openDocument[T any](path string, idOf func(T) int64) (*document[T], error) {
	d := &document[T]{path: path, idOf: idOf}
	items, err := d.read()
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if id := idOf(item); id > d.lastID {
			d.lastID = id
		}
	}
	return d, nil
}

// nextID must be called with mu held.
func (d *document[T]) nextID() int64 {
	d.lastID++
	return d.lastID
}

// read decodes the whole document, creating it as [] when absent. Callers
// must hold mu unless the store is still being opened.
func (d *document[T]) read() ([]T, error) {
	raw, err := os.ReadFile(d.path)
	if os.IsNotExist(err) {
		if err := os.WriteFile(d.path, []byte("[]"), 0o644); err != nil {
			return nil, fmt.Errorf("initialize %s: %w", filepath.Base(d.path), err)
		}
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(d.path), err)
	}
	if len(raw) == 0 {
		return nil, nil
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(d.path), err)
	}
	return items, nil
}

// write rewrites the document atomically via a temp file in the same
// directory followed by a rename.
func (d *document[T]) write(items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(d.path), err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(d.path), filepath.Base(d.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("temp file for %s: %w", filepath.Base(d.path), err)
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", filepath.Base(d.path), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close %s: %w", filepath.Base(d.path), err)
	}
	if err := os.Rename(tmp.Name(), d.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace %s: %w", filepath.Base(d.path), err)
	}
	return nil
}

// view runs fn against the current contents under the collection lock.
func (d *document[T]) view(fn func(items []T) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	items, err := d.read()
	if err != nil {
		return err
	}
	return fn(items)
}

// update runs a read-modify-write cycle under the collection lock. fn
// returns the new contents; returning an error leaves the document
// untouched.
func (d *document[T]) update(fn func(items []T) ([]T, error)) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	items, err := d.read()
	if err != nil {
		return err
	}
	out, err := fn(items)
	if err != nil {
		return err
	}
	return d.write(out)
}

func (d *document[T]) copyTo(dir string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	src, err := os.Open(d.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("open %s: %w", filepath.Base(d.path), err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(dir, filepath.Base(d.path)))
	if err != nil {
		return fmt.Errorf("create snapshot of %s: %w", filepath.Base(d.path), err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("copy %s: %w", filepath.Base(d.path), err)
	}
	return dst.Close()
}
