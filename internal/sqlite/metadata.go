package sqlite

// Per-entry metadata operations. Values are stored as typed scalars (kind
// column plus JSON-encoded value) so metadata written by other tools keeps
// its type across the boundary; keys are always text.

import (
	"database/sql"
	"fmt"

	"github.com/slidelab/lightbox/pkg/types"
)

func (e *storeEntry) MetadataValue(key types.Scalar) (types.Scalar, bool, error) {
	if err := e.store.ensureOpen(); err != nil {
		return types.Scalar{}, false, err
	}

	var kind, encoded string
	err := e.store.db.QueryRow(
		"SELECT value_kind, value FROM metadata WHERE entry_id = ? AND key = ?",
		e.id, key.String(),
	).Scan(&kind, &encoded)
	if err == sql.ErrNoRows {
		return types.Scalar{}, false, nil
	}
	if err != nil {
		return types.Scalar{}, false, fmt.Errorf("reading metadata value: %w", err)
	}

	v, err := types.DecodeScalar(kind, encoded)
	if err != nil {
		return types.Scalar{}, false, fmt.Errorf("decoding metadata value for %q: %w", key.String(), err)
	}
	return v, true, nil
}

// PutMetadataValue writes a key/value pair through, silently overwriting
// any existing value for the key.
func (e *storeEntry) PutMetadataValue(key, value types.Scalar) error {
	if err := e.store.ensureOpen(); err != nil {
		return err
	}

	k, err := key.AsText()
	if err != nil {
		return fmt.Errorf("metadata key: %w", err)
	}
	kind := value.Kind
	if kind == "" {
		kind = types.KindText
	}
	encoded, err := value.Encode()
	if err != nil {
		return fmt.Errorf("metadata value for %q: %w", k, err)
	}

	_, err = e.store.db.Exec(
		"INSERT INTO metadata (entry_id, key, value_kind, value) VALUES (?, ?, ?, ?) ON CONFLICT (entry_id, key) DO UPDATE SET value_kind = excluded.value_kind, value = excluded.value",
		e.id, k, kind, encoded,
	)
	if err != nil {
		return fmt.Errorf("writing metadata %q: %w", k, err)
	}
	return nil
}

// RemoveMetadataValue deletes the key and reports whether it was present.
func (e *storeEntry) RemoveMetadataValue(key types.Scalar) (bool, error) {
	if err := e.store.ensureOpen(); err != nil {
		return false, err
	}

	k, err := key.AsText()
	if err != nil {
		return false, fmt.Errorf("metadata key: %w", err)
	}
	res, err := e.store.db.Exec(
		"DELETE FROM metadata WHERE entry_id = ? AND key = ?", e.id, k,
	)
	if err != nil {
		return false, fmt.Errorf("removing metadata %q: %w", k, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("removing metadata %q: %w", k, err)
	}
	return n > 0, nil
}

// ContainsMetadata checks membership by the key's coerced string form.
func (e *storeEntry) ContainsMetadata(key types.Scalar) (bool, error) {
	if err := e.store.ensureOpen(); err != nil {
		return false, err
	}

	var exists int
	err := e.store.db.QueryRow(
		"SELECT 1 FROM metadata WHERE entry_id = ? AND key = ?", e.id, key.String(),
	).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking metadata key: %w", err)
	}
	return true, nil
}

// MetadataKeys returns the keys in insertion order.
func (e *storeEntry) MetadataKeys() ([]types.Scalar, error) {
	if err := e.store.ensureOpen(); err != nil {
		return nil, err
	}

	rows, err := e.store.db.Query(
		"SELECT key FROM metadata WHERE entry_id = ? ORDER BY rowid ASC", e.id,
	)
	if err != nil {
		return nil, fmt.Errorf("listing metadata keys: %w", err)
	}
	defer rows.Close()

	var keys []types.Scalar
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scanning metadata key: %w", err)
		}
		keys = append(keys, types.TextScalar(k))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating metadata keys: %w", err)
	}
	return keys, nil
}

func (e *storeEntry) MetadataCount() (int, error) {
	if err := e.store.ensureOpen(); err != nil {
		return 0, err
	}

	var n int
	err := e.store.db.QueryRow(
		"SELECT COUNT(*) FROM metadata WHERE entry_id = ?", e.id,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting metadata: %w", err)
	}
	return n, nil
}

func (e *storeEntry) ClearMetadata() error {
	if err := e.store.ensureOpen(); err != nil {
		return err
	}

	if _, err := e.store.db.Exec("DELETE FROM metadata WHERE entry_id = ?", e.id); err != nil {
		return fmt.Errorf("clearing metadata: %w", err)
	}
	return nil
}
