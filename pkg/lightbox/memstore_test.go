package lightbox

import (
	"fmt"
	"image"
	"path/filepath"
	"time"

	"github.com/slidelab/lightbox/pkg/types"
)

// memStore is an in-memory types.Store used to exercise the proxy layer
// without a database. It counts syncs and per-entry image-data flushes so
// tests can assert the dirty-flag gate.
type memStore struct {
	path    string
	uri     string
	prevURI string
	name    string
	mask    bool
	created time.Time
	closed  bool

	classes []types.PathClass
	entries []*memEntry
	nextID  int
	syncs   int
}

var (
	_ types.Store = (*memStore)(nil)
	_ types.Entry = (*memEntry)(nil)
)

func newMemStore() *memStore {
	return &memStore{
		path:    "/mem/project",
		uri:     "file:///mem/project",
		name:    "project",
		created: time.Now(),
	}
}

func (s *memStore) Path() string                        { return s.path }
func (s *memStore) URI() string                         { return s.uri }
func (s *memStore) PreviousURI() (string, bool)         { return s.prevURI, s.prevURI != "" }
func (s *memStore) Name() string                        { return s.name }
func (s *memStore) SetName(name string) error           { s.name = name; return nil }
func (s *memStore) Version() string                     { return "1.0" }
func (s *memStore) CreationTimestamp() time.Time        { return s.created }
func (s *memStore) ModificationTimestamp() time.Time    { return s.created }
func (s *memStore) MaskImageNames() bool                { return s.mask }
func (s *memStore) SetMaskImageNames(mask bool) error   { s.mask = mask; return nil }
func (s *memStore) PathClasses() ([]types.PathClass, error) {
	out := make([]types.PathClass, len(s.classes))
	copy(out, s.classes)
	return out, nil
}
func (s *memStore) SetPathClasses(classes []types.PathClass) error {
	s.classes = append([]types.PathClass(nil), classes...)
	return nil
}

func (s *memStore) EntryCount() (int, error) { return len(s.entries), nil }

func (s *memStore) ListEntries() ([]types.Entry, error) {
	out := make([]types.Entry, len(s.entries))
	for i, e := range s.entries {
		out[i] = e
	}
	return out, nil
}

func (s *memStore) AddEntry(b types.Builder) (types.Entry, error) {
	if b == nil {
		return nil, fmt.Errorf("%w: nil builder", types.ErrRegistrationFailed)
	}
	for _, e := range s.entries {
		if e.uri == b.URI() {
			return nil, fmt.Errorf("%w: %s is already registered", types.ErrRegistrationFailed, b.URI())
		}
	}
	s.nextID++
	e := &memEntry{
		store: s,
		id:    fmt.Sprintf("entry-%d", s.nextID),
		uri:   b.URI(),
		name:  filepath.Base(b.URI()),
		data:  &memImageData{},
	}
	s.entries = append(s.entries, e)
	return e, nil
}

func (s *memStore) RemoveEntry(id string) error {
	for i, e := range s.entries {
		if e.id == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", types.ErrEntryNotFound, id)
}

func (s *memStore) Sync() error  { s.syncs++; return nil }
func (s *memStore) Close() error { s.closed = true; return nil }

// kv keeps metadata insertion-ordered like the real store does.
type kv struct {
	key   string
	value types.Scalar
}

type memEntry struct {
	store        *memStore
	id           string
	uri          string
	name         string
	originalName *string
	description  *string
	thumbnail    image.Image
	meta         []kv

	data    *memImageData
	readErr error
	saves   int
}

func (e *memEntry) ID() string   { return e.id }
func (e *memEntry) URI() string  { return e.uri }
func (e *memEntry) Name() string { return e.name }

func (e *memEntry) SetName(name string) error {
	if name == e.name {
		return nil
	}
	if e.originalName == nil && e.name != "" {
		prior := e.name
		e.originalName = &prior
	}
	e.name = name
	return nil
}

func (e *memEntry) OriginalName() (string, bool) {
	if e.originalName == nil {
		return "", false
	}
	return *e.originalName, true
}

func (e *memEntry) Description() (string, bool) {
	if e.description == nil {
		return "", false
	}
	return *e.description, true
}

func (e *memEntry) SetDescription(text string) error {
	e.description = &text
	e.data.changed = true
	return nil
}

func (e *memEntry) EntryPath() string {
	return filepath.Join(e.store.path, "data", e.id)
}

func (e *memEntry) Thumbnail() (image.Image, bool, error) {
	return e.thumbnail, e.thumbnail != nil, nil
}

func (e *memEntry) SetThumbnail(img image.Image) error {
	e.thumbnail = img
	return nil
}

func (e *memEntry) ReadImageData() (types.ImageData, error) {
	if e.readErr != nil {
		return nil, e.readErr
	}
	return e.data, nil
}

func (e *memEntry) SaveImageData(data types.ImageData) error {
	d, ok := data.(*memImageData)
	if !ok || d != e.data {
		return fmt.Errorf("%w: foreign image data", types.ErrInvalidHandle)
	}
	d.changed = false
	e.saves++
	return nil
}

func (e *memEntry) MetadataValue(key types.Scalar) (types.Scalar, bool, error) {
	for _, pair := range e.meta {
		if pair.key == key.String() {
			return pair.value, true, nil
		}
	}
	return types.Scalar{}, false, nil
}

func (e *memEntry) PutMetadataValue(key, value types.Scalar) error {
	k, err := key.AsText()
	if err != nil {
		return err
	}
	for i, pair := range e.meta {
		if pair.key == k {
			e.meta[i].value = value
			return nil
		}
	}
	e.meta = append(e.meta, kv{key: k, value: value})
	return nil
}

func (e *memEntry) RemoveMetadataValue(key types.Scalar) (bool, error) {
	k, err := key.AsText()
	if err != nil {
		return false, err
	}
	for i, pair := range e.meta {
		if pair.key == k {
			e.meta = append(e.meta[:i], e.meta[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (e *memEntry) ContainsMetadata(key types.Scalar) (bool, error) {
	for _, pair := range e.meta {
		if pair.key == key.String() {
			return true, nil
		}
	}
	return false, nil
}

func (e *memEntry) MetadataKeys() ([]types.Scalar, error) {
	keys := make([]types.Scalar, 0, len(e.meta))
	for _, pair := range e.meta {
		keys = append(keys, types.TextScalar(pair.key))
	}
	return keys, nil
}

func (e *memEntry) MetadataCount() (int, error) { return len(e.meta), nil }

func (e *memEntry) ClearMetadata() error { e.meta = nil; return nil }

type memImageData struct {
	changed   bool
	hier      memHierData
	hierCalls int
}

func (d *memImageData) IsChanged() bool { return d.changed }

func (d *memImageData) Hierarchy() types.HierarchyData {
	d.hierCalls++
	d.hier.data = d
	return &d.hier
}

type memHierData struct {
	data    *memImageData
	objects []types.PathObject
}

func (h *memHierData) Objects() ([]types.PathObject, error) {
	out := make([]types.PathObject, len(h.objects))
	copy(out, h.objects)
	return out, nil
}

func (h *memHierData) AddObject(obj types.PathObject) error {
	if obj.ROI == "" {
		return fmt.Errorf("%w: annotation without geometry", types.ErrInvalidHandle)
	}
	h.objects = append(h.objects, obj)
	h.data.changed = true
	return nil
}

func (h *memHierData) Len() int { return len(h.objects) }

// memBuilder registers a URI without touching the filesystem.
type memBuilder struct {
	uri string
}

func (b *memBuilder) URI() string                  { return b.uri }
func (b *memBuilder) Format() string               { return "png" }
func (b *memBuilder) Build() (types.Reader, error) { return &memReader{name: filepath.Base(b.uri)}, nil }

// memReader is a trivial single-plane reader.
type memReader struct {
	name string
}

func (r *memReader) DisplayName() string { return r.name }
func (r *memReader) Planes() int         { return 1 }
func (r *memReader) Channels() int       { return 1 }
func (r *memReader) Thumbnail(plane, channel int) (image.Image, error) {
	return image.NewRGBA(image.Rect(0, 0, 4, 4)), nil
}
func (r *memReader) Close() error { return nil }

// memFinder returns one memBuilder per location; unsupported paths (by
// extension) return no builders, like the real detection does.
func memFinder(hint, location string) ([]types.Builder, error) {
	if filepath.Ext(location) == ".txt" {
		return nil, nil
	}
	return []types.Builder{&memBuilder{uri: location}}, nil
}

// newMemProject wires a Project over a fresh memStore with the fake finder.
func newMemProject() (*Project, *memStore) {
	store := newMemStore()
	p := FromStore(store)
	p.images.find = memFinder
	return p, store
}
