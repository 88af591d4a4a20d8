package types

import (
	"errors"
	"time"
)

// Store lifecycle and registration errors.
var (
	ErrProjectLoadFailed  = errors.New("project load failed")
	ErrRegistrationFailed = errors.New("image registration rejected")
	ErrEntryNotFound      = errors.New("entry not found")
	ErrStoreClosed        = errors.New("project store is closed")
)

// ImageIDKey is the field name the store uses to uniquely identify entries.
const ImageIDKey = "image_id"

// PathClass is one named classification label in the project-wide registry.
type PathClass struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"` // display color as #RRGGBB
}

// Store is the contract the proxy layer requires from an external project
// store. Implementations own persistence entirely; the proxy layer holds no
// independent copy of any state reachable through this interface.
//
// A Store and everything derived from it is single-threaded by convention:
// callers serialize access themselves.
type Store interface {
	// Path returns the filesystem location the project is rooted at.
	Path() string

	// URI returns the project identity assigned by the store.
	URI() string

	// PreviousURI returns the project's prior identity and true when the
	// project has been relocated, or false when it never moved.
	PreviousURI() (string, bool)

	Name() string
	SetName(name string) error

	// Version reports the store format version. Read-only.
	Version() string

	CreationTimestamp() time.Time
	ModificationTimestamp() time.Time

	MaskImageNames() bool
	SetMaskImageNames(mask bool) error

	// PathClasses returns the ordered classification registry.
	PathClasses() ([]PathClass, error)

	// SetPathClasses replaces the entire registry in a single store
	// operation.
	SetPathClasses(classes []PathClass) error

	// EntryCount returns the authoritative number of entries.
	EntryCount() (int, error)

	// ListEntries returns the current entries in the store's own listing
	// order. Each call reflects membership at the time of the call.
	ListEntries() ([]Entry, error)

	// AddEntry registers a new entry for the builder's image source.
	// Fails with ErrRegistrationFailed when the store rejects it.
	AddEntry(b Builder) (Entry, error)

	// RemoveEntry removes the entry with the given ID together with its
	// metadata and annotations. Fails with ErrEntryNotFound when absent.
	RemoveEntry(id string) error

	// Sync persists project-level bookkeeping (name, flags, image list).
	// It does not cascade to per-entry image data.
	Sync() error

	// Close releases the store's resources. Further operations fail with
	// ErrStoreClosed.
	Close() error
}
