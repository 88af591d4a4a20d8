package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/slidelab/lightbox/pkg/types"
)

// storeVersion is the format version written into new project databases.
const storeVersion = "1.0"

// databaseName is the project database filename inside the project directory.
const databaseName = "project.db"

// Compile-time interface check: Store must implement types.Store.
var _ types.Store = (*Store)(nil)

// Store implements types.Store over a single SQLite database. Entries,
// metadata, and annotations write through immediately; project-level fields
// (name, mask flag) are held in memory and persisted by Sync, matching the
// save semantics the proxy layer documents.
//
// The mutex guards only lifecycle state and the image-data cache; callers
// serialize everything else by convention.
type Store struct {
	mu     sync.Mutex
	db     *sql.DB
	dir    string
	closed bool

	uri       string
	prevURI   string
	name      string
	version   string
	maskNames bool
	created   time.Time
	modified  time.Time

	// imageData caches loaded per-entry image data so that the changed
	// flag and hierarchy stay stable across ReadImageData calls.
	imageData map[string]*imageData

	// dataWrites counts SaveImageData flushes; tests probe it to verify
	// the dirty-flag gate.
	dataWrites int
}

// Open loads the project persisted in config.ProjectDir, or initializes a
// new one when the directory holds no project database yet. Load failures
// surface as types.ErrProjectLoadFailed.
func Open(config types.Config) (*Store, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.Backend != types.BackendSQLite {
		return nil, fmt.Errorf("%w: %s", types.ErrBackendUnknown, config.Backend)
	}

	dir, err := filepath.Abs(config.ProjectDir)
	if err != nil {
		return nil, fmt.Errorf("resolving project dir: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating project dir: %w", err)
	}

	dbPath := filepath.Join(dir, databaseName)
	_, statErr := os.Stat(dbPath)
	existing := statErr == nil

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:        db,
		dir:       dir,
		imageData: make(map[string]*imageData),
	}

	if existing {
		if err := s.load(); err != nil {
			db.Close()
			return nil, fmt.Errorf("%w: %s: %v", types.ErrProjectLoadFailed, dbPath, err)
		}
	} else {
		if err := s.create(); err != nil {
			db.Close()
			return nil, err
		}
	}

	return s, nil
}

// projectURI derives the project identity from its directory location.
func projectURI(dir string) string {
	return "file://" + filepath.ToSlash(dir)
}

// create initializes the schema and the singleton project row.
func (s *Store) create() error {
	for _, ddl := range schemaDDL {
		if _, err := s.db.Exec(ddl); err != nil {
			return fmt.Errorf("initializing schema: %w", err)
		}
	}

	now := time.Now().UTC()
	s.uri = projectURI(s.dir)
	s.name = filepath.Base(s.dir)
	s.version = storeVersion
	s.created = now
	s.modified = now

	_, err := s.db.Exec(
		"INSERT INTO project (id, uri, name, version, mask_image_names, created_at, modified_at) VALUES (1, ?, ?, ?, 0, ?, ?)",
		s.uri, s.name, s.version, now.Format(time.RFC3339), now.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("initializing project row: %w", err)
	}
	return nil
}

// load reads the singleton project row into memory. When the project
// directory has moved since the last open, the stored URI is kept as the
// previous URI and the row is rewritten with the current location.
func (s *Store) load() error {
	row := s.db.QueryRow(
		"SELECT uri, previous_uri, name, version, mask_image_names, created_at, modified_at FROM project WHERE id = 1",
	)

	var prevURI sql.NullString
	var mask int
	var createdAt, modifiedAt string
	if err := row.Scan(&s.uri, &prevURI, &s.name, &s.version, &mask, &createdAt, &modifiedAt); err != nil {
		return err
	}
	if prevURI.Valid {
		s.prevURI = prevURI.String
	}
	s.maskNames = mask != 0

	var err error
	if s.created, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return fmt.Errorf("parsing created_at: %w", err)
	}
	if s.modified, err = time.Parse(time.RFC3339, modifiedAt); err != nil {
		return fmt.Errorf("parsing modified_at: %w", err)
	}

	// Relocation check.
	if current := projectURI(s.dir); s.uri != current {
		s.prevURI = s.uri
		s.uri = current
		_, err := s.db.Exec(
			"UPDATE project SET uri = ?, previous_uri = ? WHERE id = 1",
			s.uri, s.prevURI,
		)
		if err != nil {
			return fmt.Errorf("recording relocation: %w", err)
		}
	}
	return nil
}

// ensureOpen returns types.ErrStoreClosed after Close.
func (s *Store) ensureOpen() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return types.ErrStoreClosed
	}
	return nil
}

func (s *Store) Path() string { return s.dir }

func (s *Store) URI() string { return s.uri }

func (s *Store) PreviousURI() (string, bool) {
	return s.prevURI, s.prevURI != ""
}

func (s *Store) Name() string { return s.name }

func (s *Store) SetName(name string) error {
	if err := s.ensureOpen(); err != nil {
		return err
	}
	s.name = name
	return nil
}

func (s *Store) Version() string { return s.version }

func (s *Store) CreationTimestamp() time.Time { return s.created }

func (s *Store) ModificationTimestamp() time.Time { return s.modified }

func (s *Store) MaskImageNames() bool { return s.maskNames }

func (s *Store) SetMaskImageNames(mask bool) error {
	if err := s.ensureOpen(); err != nil {
		return err
	}
	s.maskNames = mask
	return nil
}

// PathClasses returns the classification registry ordered by ordinal.
func (s *Store) PathClasses() ([]types.PathClass, error) {
	if err := s.ensureOpen(); err != nil {
		return nil, err
	}

	rows, err := s.db.Query("SELECT name, color FROM path_classes ORDER BY ordinal ASC")
	if err != nil {
		return nil, fmt.Errorf("querying path classes: %w", err)
	}
	defer rows.Close()

	classes := []types.PathClass{}
	for rows.Next() {
		var pc types.PathClass
		var color sql.NullString
		if err := rows.Scan(&pc.Name, &color); err != nil {
			return nil, fmt.Errorf("scanning path class: %w", err)
		}
		if color.Valid {
			pc.Color = color.String
		}
		classes = append(classes, pc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating path classes: %w", err)
	}
	return classes, nil
}

// SetPathClasses replaces the whole registry in one transaction.
func (s *Store) SetPathClasses(classes []types.PathClass) error {
	if err := s.ensureOpen(); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM path_classes"); err != nil {
		return fmt.Errorf("clearing path classes: %w", err)
	}
	for i, pc := range classes {
		var color any
		if pc.Color != "" {
			color = pc.Color
		}
		_, err := tx.Exec(
			"INSERT INTO path_classes (ordinal, name, color) VALUES (?, ?, ?)",
			i, pc.Name, color,
		)
		if err != nil {
			return fmt.Errorf("inserting path class %q: %w", pc.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing path classes: %w", err)
	}
	return nil
}

// Sync persists the in-memory project fields and bumps the modification
// timestamp. Per-entry image data is saved through the entries themselves.
func (s *Store) Sync() error {
	if err := s.ensureOpen(); err != nil {
		return err
	}

	s.modified = time.Now().UTC()
	var prevURI any
	if s.prevURI != "" {
		prevURI = s.prevURI
	}
	var mask int
	if s.maskNames {
		mask = 1
	}

	_, err := s.db.Exec(
		"UPDATE project SET uri = ?, previous_uri = ?, name = ?, mask_image_names = ?, modified_at = ? WHERE id = 1",
		s.uri, prevURI, s.name, mask, s.modified.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("syncing project: %w", err)
	}
	return nil
}

// Close releases the database. Idempotent.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	s.imageData = make(map[string]*imageData)

	if err := s.db.Close(); err != nil {
		return fmt.Errorf("closing database: %w", err)
	}
	return nil
}

// DataWrites reports how many image-data flushes the store has performed.
// Test probe for the dirty-flag gate.
func (s *Store) DataWrites() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dataWrites
}
