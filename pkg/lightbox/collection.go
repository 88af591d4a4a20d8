package lightbox

import (
	"fmt"
	"path/filepath"

	"github.com/slidelab/lightbox/pkg/types"
)

// ImageCollection is the set-like view over a project's entries. It holds
// no entry state of its own; every operation reads or writes the store.
type ImageCollection struct {
	store types.Store
	find  types.BuilderFinder
}

// Len returns the number of registered entries.
func (c *ImageCollection) Len() (int, error) {
	return c.store.EntryCount()
}

// Entries returns a point-in-time snapshot of all entries in registration
// order. Mutating the collection invalidates the snapshot's completeness,
// not the individual handles.
func (c *ImageCollection) Entries() ([]*ImageEntry, error) {
	raw, err := c.store.ListEntries()
	if err != nil {
		return nil, err
	}
	entries := make([]*ImageEntry, 0, len(raw))
	for _, r := range raw {
		entry, err := wrapEntry(r)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Add registers the image file at path and returns its entry handle.
// Detection picks the reader; unsupported files fail with
// types.ErrUnsupportedFormat, duplicates with types.ErrRegistrationFailed.
// A thumbnail rendered from the middle plane is stored with the entry.
func (c *ImageCollection) Add(path string) (*ImageEntry, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}

	builders, err := c.find("", abs)
	if err != nil {
		return nil, err
	}
	if len(builders) == 0 {
		return nil, fmt.Errorf("%w: no reader recognizes %s", types.ErrUnsupportedFormat, abs)
	}
	chosen := builders[0]

	raw, err := c.store.AddEntry(chosen)
	if err != nil {
		return nil, err
	}

	reader, err := chosen.Build()
	if err != nil {
		// The entry is registered but unreadable; remove it again so a
		// failed Add leaves the collection unchanged.
		_ = c.store.RemoveEntry(raw.ID())
		return nil, fmt.Errorf("opening %s with %s reader: %w", abs, chosen.Format(), err)
	}
	defer reader.Close()

	if err := raw.SetName(reader.DisplayName()); err != nil {
		return nil, err
	}
	thumb, err := reader.Thumbnail(reader.Planes()/2, 0)
	if err != nil {
		return nil, fmt.Errorf("rendering thumbnail for %s: %w", abs, err)
	}
	if err := raw.SetThumbnail(thumb); err != nil {
		return nil, err
	}

	return wrapEntry(raw)
}

// Contains reports whether entry identifies a current member of this
// collection, matched by entry ID.
func (c *ImageCollection) Contains(entry *ImageEntry) (bool, error) {
	if entry == nil {
		return false, nil
	}
	raw, err := c.store.ListEntries()
	if err != nil {
		return false, err
	}
	for _, r := range raw {
		if r.ID() == entry.ID() {
			return true, nil
		}
	}
	return false, nil
}

// Discard removes entry from the collection along with its metadata and
// annotations. Removing an entry that is not a member fails with
// types.ErrEntryNotFound.
func (c *ImageCollection) Discard(entry *ImageEntry) error {
	if entry == nil {
		return fmt.Errorf("%w: nil entry", types.ErrInvalidHandle)
	}
	return c.store.RemoveEntry(entry.ID())
}

// Clear removes every entry from the collection.
func (c *ImageCollection) Clear() error {
	raw, err := c.store.ListEntries()
	if err != nil {
		return err
	}
	for _, r := range raw {
		if err := c.store.RemoveEntry(r.ID()); err != nil {
			return err
		}
	}
	return nil
}

// Replace swaps the collection's membership for the given entries,
// re-registering each from its source URI. The incoming slice is validated
// before anything is removed, but the swap itself is not atomic: a failed
// re-registration leaves the collection partially populated.
func (c *ImageCollection) Replace(entries []*ImageEntry) error {
	uris := make([]string, 0, len(entries))
	for i, entry := range entries {
		if entry == nil {
			return fmt.Errorf("%w: entry %d is nil", types.ErrTypeMismatch, i)
		}
		uris = append(uris, entry.URI())
	}

	if err := c.Clear(); err != nil {
		return err
	}
	for _, uri := range uris {
		if _, err := c.Add(uri); err != nil {
			return err
		}
	}
	return nil
}
