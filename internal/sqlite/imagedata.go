package sqlite

import (
	"fmt"
	"time"

	"github.com/slidelab/lightbox/pkg/types"
)

// Compile-time interface checks.
var (
	_ types.ImageData     = (*imageData)(nil)
	_ types.HierarchyData = (*hierarchyData)(nil)
)

// imageData is the store-side per-entry image state: a changed flag and the
// annotation hierarchy, loaded once per entry and cached on the store so
// repeated reads observe the same instance.
type imageData struct {
	store   *Store
	entryID string
	changed bool
	hier    *hierarchyData
}

// ReadImageData loads (or returns the cached) image data for the entry.
func (e *storeEntry) ReadImageData() (types.ImageData, error) {
	if err := e.store.ensureOpen(); err != nil {
		return nil, err
	}

	e.store.mu.Lock()
	if d, ok := e.store.imageData[e.id]; ok {
		e.store.mu.Unlock()
		return d, nil
	}
	e.store.mu.Unlock()

	var exists int
	err := e.store.db.QueryRow("SELECT 1 FROM entries WHERE entry_id = ?", e.id).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", types.ErrEntryNotFound, e.id)
	}

	rows, err := e.store.db.Query(
		"SELECT object_id, class_name, roi FROM annotations WHERE entry_id = ? ORDER BY rowid ASC",
		e.id,
	)
	if err != nil {
		return nil, fmt.Errorf("loading annotations: %w", err)
	}
	defer rows.Close()

	var objects []types.PathObject
	for rows.Next() {
		var obj types.PathObject
		var class *string
		if err := rows.Scan(&obj.ID, &class, &obj.ROI); err != nil {
			return nil, fmt.Errorf("scanning annotation: %w", err)
		}
		if class != nil {
			obj.ClassName = *class
		}
		objects = append(objects, obj)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating annotations: %w", err)
	}

	d := &imageData{store: e.store, entryID: e.id}
	d.hier = &hierarchyData{data: d, objects: objects}

	e.store.mu.Lock()
	e.store.imageData[e.id] = d
	e.store.mu.Unlock()
	return d, nil
}

// SaveImageData flushes the annotation hierarchy in one transaction and
// clears the changed flag.
func (e *storeEntry) SaveImageData(data types.ImageData) error {
	if err := e.store.ensureOpen(); err != nil {
		return err
	}

	d, ok := data.(*imageData)
	if !ok || d.entryID != e.id {
		return fmt.Errorf("%w: image data does not belong to entry %s", types.ErrInvalidHandle, e.id)
	}

	tx, err := e.store.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM annotations WHERE entry_id = ?", e.id); err != nil {
		return fmt.Errorf("clearing annotations: %w", err)
	}
	now := time.Now().UTC().Format(time.RFC3339)
	for _, obj := range d.hier.objects {
		var class any
		if obj.ClassName != "" {
			class = obj.ClassName
		}
		_, err := tx.Exec(
			"INSERT INTO annotations (object_id, entry_id, class_name, roi, created_at) VALUES (?, ?, ?, ?, ?)",
			obj.ID, e.id, class, obj.ROI, now,
		)
		if err != nil {
			return fmt.Errorf("inserting annotation %s: %w", obj.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing image data: %w", err)
	}

	e.store.mu.Lock()
	d.changed = false
	e.store.dataWrites++
	e.store.mu.Unlock()
	return nil
}

func (d *imageData) IsChanged() bool { return d.changed }

func (d *imageData) Hierarchy() types.HierarchyData { return d.hier }

// hierarchyData holds the loaded annotation objects for one entry. Mutation
// marks the owning image data changed; persistence happens on save.
type hierarchyData struct {
	data    *imageData
	objects []types.PathObject
}

func (h *hierarchyData) Objects() ([]types.PathObject, error) {
	out := make([]types.PathObject, len(h.objects))
	copy(out, h.objects)
	return out, nil
}

func (h *hierarchyData) AddObject(obj types.PathObject) error {
	if obj.ID == "" {
		obj.ID = newID()
	}
	if obj.ROI == "" {
		return fmt.Errorf("%w: annotation without geometry", types.ErrInvalidHandle)
	}
	h.objects = append(h.objects, obj)
	h.data.changed = true
	return nil
}

func (h *hierarchyData) Len() int { return len(h.objects) }
