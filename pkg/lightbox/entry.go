package lightbox

import (
	"fmt"
	"image"

	"github.com/slidelab/lightbox/pkg/types"
)

// ImageEntry is the handle over one registered image. The entry's image
// data is read once at construction and reused for the handle's lifetime;
// Save writes it back only when something actually changed.
type ImageEntry struct {
	raw       types.Entry
	data      types.ImageData
	metadata  *Metadata
	hierarchy *Hierarchy
}

// wrapEntry builds the proxy handle over a raw store entry. Entries whose
// image data cannot be loaded fail with types.ErrImageDataUnavailable.
func wrapEntry(raw types.Entry) (*ImageEntry, error) {
	if raw == nil {
		return nil, fmt.Errorf("%w: nil entry", types.ErrInvalidHandle)
	}
	data, err := raw.ReadImageData()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrImageDataUnavailable, err)
	}
	entry := &ImageEntry{raw: raw, data: data}
	entry.metadata = &Metadata{raw: raw}
	return entry, nil
}

// ID returns the entry's stable unique identifier.
func (e *ImageEntry) ID() string { return e.raw.ID() }

// URI returns the location of the entry's source image.
func (e *ImageEntry) URI() string { return e.raw.URI() }

// Name returns the entry's display name.
func (e *ImageEntry) Name() string { return e.raw.Name() }

// SetName renames the entry. The first effective rename records the prior
// name, retrievable through OriginalName.
func (e *ImageEntry) SetName(name string) error { return e.raw.SetName(name) }

// OriginalName returns the name the entry had before its first rename and
// true, or false when the entry was never renamed.
func (e *ImageEntry) OriginalName() (string, bool) { return e.raw.OriginalName() }

// Description returns the entry's free-form description, empty when none
// has been set.
func (e *ImageEntry) Description() string {
	desc, _ := e.raw.Description()
	return desc
}

// SetDescription updates the entry's description.
func (e *ImageEntry) SetDescription(text string) error { return e.raw.SetDescription(text) }

// EntryPath returns the per-entry data directory inside the project.
func (e *ImageEntry) EntryPath() string { return e.raw.EntryPath() }

// Thumbnail returns the stored preview image, if any.
func (e *ImageEntry) Thumbnail() (image.Image, bool, error) { return e.raw.Thumbnail() }

// SetThumbnail replaces the stored preview image.
func (e *ImageEntry) SetThumbnail(img image.Image) error { return e.raw.SetThumbnail(img) }

// Metadata returns the entry's metadata view. The same view is returned
// on every call.
func (e *ImageEntry) Metadata() *Metadata { return e.metadata }

// Hierarchy returns the entry's annotation hierarchy. The hierarchy is
// materialized from the entry's image data on first access and cached for
// the handle's lifetime.
func (e *ImageEntry) Hierarchy() *Hierarchy {
	if e.hierarchy == nil {
		e.hierarchy = &Hierarchy{data: e.data.Hierarchy()}
	}
	return e.hierarchy
}

// IsChanged reports whether the entry's image data has unsaved changes.
func (e *ImageEntry) IsChanged() bool { return e.data.IsChanged() }

// Save writes the entry's image data back to the store. When nothing has
// changed since the last load or save, Save does no store work at all.
func (e *ImageEntry) Save() error {
	if !e.data.IsChanged() {
		return nil
	}
	return e.raw.SaveImageData(e.data)
}

func (e *ImageEntry) String() string {
	return fmt.Sprintf("<ImageEntry %q id=%s>", e.raw.Name(), e.raw.ID())
}
