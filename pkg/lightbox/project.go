// Package lightbox exposes an image project store through native collection
// proxies: a Project handle owning a set-like ImageCollection of entries,
// each entry owning a dict-like Metadata view and a cached annotation
// Hierarchy. All state lives in the backing store; the proxies write
// through immediately and hold no independent copy of the truth.
//
// A Project and everything derived from it is single-threaded by
// convention: there is no internal locking, and concurrent use from
// multiple goroutines must be serialized by the caller.
package lightbox

import (
	"fmt"
	"time"

	"github.com/slidelab/lightbox/internal/imageio"
	"github.com/slidelab/lightbox/internal/sqlite"
	"github.com/slidelab/lightbox/pkg/types"
)

// Project is the root handle over one project store. Exactly one
// ImageCollection exists per Project, reachable through Images.
type Project struct {
	store  types.Store
	images *ImageCollection
}

// Open loads the project persisted at dir, or initializes a new empty
// project rooted there, using the SQLite backend. Load failures surface as
// types.ErrProjectLoadFailed.
func Open(dir string) (*Project, error) {
	return OpenConfig(types.Config{Backend: types.BackendSQLite, ProjectDir: dir})
}

// OpenConfig opens a project using an explicit backend configuration.
func OpenConfig(config types.Config) (*Project, error) {
	store, err := sqlite.Open(config)
	if err != nil {
		return nil, err
	}
	return FromStore(store), nil
}

// FromStore wraps an already opened project store. The default format
// detection subsystem is attached; tests substitute their own store.
func FromStore(store types.Store) *Project {
	p := &Project{store: store}
	p.images = &ImageCollection{store: store, find: imageio.FindBuilders}
	return p
}

// Images returns the project's entry collection.
func (p *Project) Images() *ImageCollection { return p.images }

// SetImages replaces the whole collection; see ImageCollection.Replace.
func (p *Project) SetImages(entries []*ImageEntry) error {
	return p.images.Replace(entries)
}

// Len returns the number of images in the project.
func (p *Project) Len() (int, error) { return p.images.Len() }

// Path returns the filesystem location the project is rooted at.
func (p *Project) Path() string { return p.store.Path() }

// URI returns the project identity assigned by the store.
func (p *Project) URI() string { return p.store.URI() }

// PreviousURI returns the project's prior identity and true when the
// project has been relocated.
func (p *Project) PreviousURI() (string, bool) { return p.store.PreviousURI() }

// ImageID returns the field name used to uniquely identify entries.
func (p *Project) ImageID() string { return types.ImageIDKey }

func (p *Project) Name() string { return p.store.Name() }

func (p *Project) SetName(name string) error { return p.store.SetName(name) }

// Version reports the store format version. Read-only.
func (p *Project) Version() string { return p.store.Version() }

func (p *Project) TimestampCreation() time.Time { return p.store.CreationTimestamp() }

func (p *Project) TimestampModification() time.Time { return p.store.ModificationTimestamp() }

func (p *Project) MaskImageNames() bool { return p.store.MaskImageNames() }

func (p *Project) SetMaskImageNames(mask bool) error { return p.store.SetMaskImageNames(mask) }

// PathClasses returns an ordered snapshot of the classification registry.
func (p *Project) PathClasses() ([]types.PathClass, error) {
	return p.store.PathClasses()
}

// SetPathClasses replaces the entire registry in a single store call.
func (p *Project) SetPathClasses(classes []types.PathClass) error {
	return p.store.SetPathClasses(classes)
}

// Save persists project-level bookkeeping through the store's sync
// operation. It does not cascade to per-entry image data; callers save
// entries individually through ImageEntry.Save.
func (p *Project) Save() error { return p.store.Sync() }

// Close releases the underlying store.
func (p *Project) Close() error { return p.store.Close() }

func (p *Project) String() string {
	return fmt.Sprintf("<Project %q>", p.store.Name())
}
