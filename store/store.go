// Package store caches extracted part sets in a bbolt database so a
// drawing is parsed once and combined at many sizes later.
package store

import (
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"

	"github.com/Bersaelor/framecad"
	"github.com/Bersaelor/framecad/diag"
	"github.com/Bersaelor/framecad/frame"
)

// ErrNotFound is returned for ids that are not in the store.
var ErrNotFound = errors.New("store: entry not found")

var bucketParts = []byte("parts")

// Entry is one extracted drawing.
type Entry struct {
	ID        string               `json:"id"`
	Name      string               `json:"name,omitempty"`
	Created   time.Time            `json:"created"`
	Reference frame.SizeParameters `json:"reference"`
	Parts     frame.PartSet        `json:"parts"`
	Warnings  []diag.Warning       `json:"warnings,omitempty"`
}

// Summary lists an entry without its geometry.
type Summary struct {
	ID      string
	Name    string
	Created time.Time
	Parts   []string
}

// Store is a bbolt-backed Entry cache. It is safe for concurrent use.
type Store struct {
	db *bbolt.DB
}

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketParts)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("store: init %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores e, replacing any entry with the same id. An empty ID is
// filled with a new UUID and a zero Created with the current time.
func (s *Store) Save(e *Entry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Created.IsZero() {
		e.Created = time.Now().UTC()
	}
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", e.ID, err)
	}
	err = s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketParts).Put([]byte(e.ID), data)
	})
	if err != nil {
		return fmt.Errorf("store: save %s: %w", e.ID, err)
	}
	framecad.Logger().Debug("store: saved parts", "id", e.ID, "parts", len(e.Parts))
	return nil
}

// Load returns the entry stored under id.
func (s *Store) Load(id string) (*Entry, error) {
	var e Entry
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketParts).Get([]byte(id))
		if data == nil {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return json.Unmarshal(data, &e)
	})
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// List returns a summary of every entry, oldest first.
func (s *Store) List() ([]Summary, error) {
	var out []Summary
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketParts).ForEach(func(k, v []byte) error {
			var e Entry
			if err := json.Unmarshal(v, &e); err != nil {
				return fmt.Errorf("store: decode %s: %w", k, err)
			}
			out = append(out, Summary{ID: e.ID, Name: e.Name, Created: e.Created, Parts: e.Parts.Names()})
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	slices.SortFunc(out, func(a, b Summary) int {
		if c := a.Created.Compare(b.Created); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out, nil
}

// Delete removes the entry stored under id.
func (s *Store) Delete(id string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketParts)
		if b.Get([]byte(id)) == nil {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return b.Delete([]byte(id))
	})
}
