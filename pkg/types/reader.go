package types

import (
	"errors"
	"image"
)

// ErrUnsupportedFormat is returned when no builder exists for a file.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// BuilderFinder locates builders able to read the image at the given
// location, most suitable first. An empty result means the format is
// unsupported. The hint may carry a media type or be empty.
type BuilderFinder func(hint, location string) ([]Builder, error)

// Builder is a factory for readers of one specific image source. Stores
// register entries from builders; the transient reader built from one
// supplies the display name and thumbnail for a newly added entry.
type Builder interface {
	// URI returns the absolute location of the image source.
	URI() string

	// Format names the detected image format, e.g. "tiff".
	Format() string

	// Build constructs a reader for the source. The caller closes it.
	Build() (Reader, error)
}

// Reader provides pixel access to one image source.
type Reader interface {
	// DisplayName returns a human-readable name for the image.
	DisplayName() string

	// Planes returns the number of z-planes. Always at least 1.
	Planes() int

	// Channels returns the number of channels. Always at least 1.
	Channels() int

	// Thumbnail renders a representative image of the given plane and
	// channel, bounded to a store-friendly size.
	Thumbnail(plane, channel int) (image.Image, error)

	Close() error
}
