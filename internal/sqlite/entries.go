package sqlite

import (
	"bytes"
	"database/sql"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/slidelab/lightbox/pkg/types"
)

// Compile-time interface check: storeEntry must implement types.Entry.
var _ types.Entry = (*storeEntry)(nil)

// newID generates a UUID v7 for entry and annotation IDs.
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fall back to UUID v4 if v7 generation fails.
		return uuid.New().String()
	}
	return id.String()
}

// EntryCount returns the authoritative entry count.
func (s *Store) EntryCount() (int, error) {
	if err := s.ensureOpen(); err != nil {
		return 0, err
	}

	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM entries").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting entries: %w", err)
	}
	return n, nil
}

// ListEntries returns the current entries in registration order.
func (s *Store) ListEntries() ([]types.Entry, error) {
	if err := s.ensureOpen(); err != nil {
		return nil, err
	}

	rows, err := s.db.Query("SELECT entry_id FROM entries ORDER BY rowid ASC")
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	defer rows.Close()

	var entries []types.Entry
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning entry id: %w", err)
		}
		entries = append(entries, &storeEntry{store: s, id: id})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entries: %w", err)
	}
	return entries, nil
}

// AddEntry registers a new entry for the builder's image source. A source
// URI already present in the project is rejected with ErrRegistrationFailed.
func (s *Store) AddEntry(b types.Builder) (types.Entry, error) {
	if err := s.ensureOpen(); err != nil {
		return nil, err
	}
	if b == nil {
		return nil, fmt.Errorf("%w: nil builder", types.ErrRegistrationFailed)
	}

	uri := b.URI()
	var exists int
	err := s.db.QueryRow("SELECT 1 FROM entries WHERE uri = ?", uri).Scan(&exists)
	if err == nil {
		return nil, fmt.Errorf("%w: %s is already registered", types.ErrRegistrationFailed, uri)
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("checking entry uri: %w", err)
	}

	id := newID()
	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.Exec(
		"INSERT INTO entries (entry_id, uri, format, name, created_at) VALUES (?, ?, ?, ?, ?)",
		id, uri, b.Format(), filepath.Base(uri), now,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrRegistrationFailed, err)
	}

	entry := &storeEntry{store: s, id: id}
	if err := os.MkdirAll(entry.EntryPath(), 0o755); err != nil {
		return nil, fmt.Errorf("creating entry dir: %w", err)
	}
	return entry, nil
}

// RemoveEntry removes an entry and cascades to its metadata and annotations.
func (s *Store) RemoveEntry(id string) error {
	if err := s.ensureOpen(); err != nil {
		return err
	}

	var exists int
	err := s.db.QueryRow("SELECT 1 FROM entries WHERE entry_id = ?", id).Scan(&exists)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%w: %s", types.ErrEntryNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("checking entry existence: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM metadata WHERE entry_id = ?", id); err != nil {
		return fmt.Errorf("deleting entry metadata: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM annotations WHERE entry_id = ?", id); err != nil {
		return fmt.Errorf("deleting entry annotations: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM entries WHERE entry_id = ?", id); err != nil {
		return fmt.Errorf("deleting entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing entry removal: %w", err)
	}

	s.mu.Lock()
	delete(s.imageData, id)
	s.mu.Unlock()
	return nil
}

// storeEntry implements types.Entry over one entries row. It holds no state
// beyond the ID; every accessor reads or writes the database directly.
type storeEntry struct {
	store *Store
	id    string
}

func (e *storeEntry) ID() string { return e.id }

func (e *storeEntry) URI() string {
	var uri string
	err := e.store.db.QueryRow("SELECT uri FROM entries WHERE entry_id = ?", e.id).Scan(&uri)
	if err != nil {
		return ""
	}
	return uri
}

func (e *storeEntry) Name() string {
	var name string
	err := e.store.db.QueryRow("SELECT name FROM entries WHERE entry_id = ?", e.id).Scan(&name)
	if err != nil {
		return ""
	}
	return name
}

// SetName renames the entry. The first rename snapshots the prior name as
// the original name; later renames leave the snapshot untouched.
func (e *storeEntry) SetName(name string) error {
	if err := e.store.ensureOpen(); err != nil {
		return err
	}

	var current string
	var original sql.NullString
	err := e.store.db.QueryRow(
		"SELECT name, original_name FROM entries WHERE entry_id = ?", e.id,
	).Scan(&current, &original)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%w: %s", types.ErrEntryNotFound, e.id)
	}
	if err != nil {
		return fmt.Errorf("reading entry name: %w", err)
	}
	if name == current {
		return nil
	}

	if !original.Valid && current != "" {
		_, err = e.store.db.Exec(
			"UPDATE entries SET name = ?, original_name = ? WHERE entry_id = ?",
			name, current, e.id,
		)
	} else {
		_, err = e.store.db.Exec(
			"UPDATE entries SET name = ? WHERE entry_id = ?", name, e.id,
		)
	}
	if err != nil {
		return fmt.Errorf("renaming entry: %w", err)
	}
	return nil
}

func (e *storeEntry) OriginalName() (string, bool) {
	var original sql.NullString
	err := e.store.db.QueryRow(
		"SELECT original_name FROM entries WHERE entry_id = ?", e.id,
	).Scan(&original)
	if err != nil || !original.Valid {
		return "", false
	}
	return original.String, true
}

func (e *storeEntry) Description() (string, bool) {
	var desc sql.NullString
	err := e.store.db.QueryRow(
		"SELECT description FROM entries WHERE entry_id = ?", e.id,
	).Scan(&desc)
	if err != nil || !desc.Valid {
		return "", false
	}
	return desc.String, true
}

// SetDescription writes the description through and marks the entry's
// loaded image data as changed so the next save flushes it.
func (e *storeEntry) SetDescription(text string) error {
	if err := e.store.ensureOpen(); err != nil {
		return err
	}

	res, err := e.store.db.Exec(
		"UPDATE entries SET description = ? WHERE entry_id = ?", text, e.id,
	)
	if err != nil {
		return fmt.Errorf("updating description: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", types.ErrEntryNotFound, e.id)
	}

	e.store.mu.Lock()
	if d, ok := e.store.imageData[e.id]; ok {
		d.changed = true
	}
	e.store.mu.Unlock()
	return nil
}

func (e *storeEntry) EntryPath() string {
	return filepath.Join(e.store.dir, "data", e.id)
}

func (e *storeEntry) Thumbnail() (image.Image, bool, error) {
	var blob []byte
	err := e.store.db.QueryRow(
		"SELECT thumbnail FROM entries WHERE entry_id = ?", e.id,
	).Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, false, fmt.Errorf("%w: %s", types.ErrEntryNotFound, e.id)
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading thumbnail: %w", err)
	}
	if len(blob) == 0 {
		return nil, false, nil
	}

	img, err := png.Decode(bytes.NewReader(blob))
	if err != nil {
		return nil, false, fmt.Errorf("decoding thumbnail: %w", err)
	}
	return img, true, nil
}

func (e *storeEntry) SetThumbnail(img image.Image) error {
	if err := e.store.ensureOpen(); err != nil {
		return err
	}
	if img == nil {
		return fmt.Errorf("%w: nil thumbnail", types.ErrInvalidHandle)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encoding thumbnail: %w", err)
	}
	res, err := e.store.db.Exec(
		"UPDATE entries SET thumbnail = ? WHERE entry_id = ?", buf.Bytes(), e.id,
	)
	if err != nil {
		return fmt.Errorf("storing thumbnail: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", types.ErrEntryNotFound, e.id)
	}
	return nil
}
