package types

import (
	"errors"
	"image"
)

// Entry handle and metadata errors.
var (
	ErrInvalidHandle        = errors.New("not a valid project entry")
	ErrImageDataUnavailable = errors.New("no image data for entry")
	ErrKeyNotFound          = errors.New("metadata key not found")
)

// Entry is the external per-entry contract: one registered image together
// with its name, description, metadata, and image data. All state lives in
// the store; accessors read and write through immediately unless noted.
type Entry interface {
	// ID returns the opaque, externally assigned entry identifier.
	ID() string

	// URI returns the location of the entry's source image.
	URI() string

	Name() string
	SetName(name string) error

	// OriginalName returns the name the entry carried before its first
	// rename and true, or false when the entry was never renamed.
	OriginalName() (string, bool)

	// Description returns the free-text description and whether the store
	// holds one at all.
	Description() (string, bool)

	// SetDescription writes the description through and marks the entry's
	// image data as changed.
	SetDescription(text string) error

	// EntryPath returns the store-owned filesystem location for this
	// entry's data. Read-only.
	EntryPath() string

	// Thumbnail returns the representative image and true, or false when
	// none has been assigned yet.
	Thumbnail() (image.Image, bool, error)
	SetThumbnail(img image.Image) error

	// ReadImageData loads the entry's image data. The returned value is
	// stable for the lifetime of the entry: repeated calls observe the
	// same changed flag and hierarchy.
	ReadImageData() (ImageData, error)

	// SaveImageData persists the image data and clears its changed flag.
	SaveImageData(data ImageData) error

	// Metadata operations in Scalar terms. Keys are always text scalars;
	// values may carry any kind when written by other tools.
	MetadataValue(key Scalar) (Scalar, bool, error)
	PutMetadataValue(key, value Scalar) error
	RemoveMetadataValue(key Scalar) (bool, error)
	ContainsMetadata(key Scalar) (bool, error)
	MetadataKeys() ([]Scalar, error)
	MetadataCount() (int, error)
	ClearMetadata() error
}

// ImageData is the mutable per-entry image state tracked by the store. The
// changed flag is the single "unsaved changes" marker this layer relies on.
type ImageData interface {
	IsChanged() bool
	Hierarchy() HierarchyData
}

// HierarchyData is the externally modeled annotation structure attached to
// one entry's image data. The proxy layer treats it as opaque.
type HierarchyData interface {
	Objects() ([]PathObject, error)
	AddObject(obj PathObject) error
	Len() int
}

// PathObject is one spatial annotation attached to an image.
type PathObject struct {
	ID        string `json:"id"`
	ClassName string `json:"class_name,omitempty"`
	ROI       string `json:"roi"` // serialized geometry, opaque to this layer
}
