package lightbox

import (
	"github.com/slidelab/lightbox/pkg/types"

	"github.com/google/uuid"
)

// Hierarchy is the view over one entry's annotation objects. Additions
// mark the owning entry's image data as changed; the entry's Save persists
// them.
type Hierarchy struct {
	data types.HierarchyData
}

// Len returns the number of annotation objects.
func (h *Hierarchy) Len() int { return h.data.Len() }

// Annotations returns a snapshot of all annotation objects.
func (h *Hierarchy) Annotations() ([]types.PathObject, error) {
	return h.data.Objects()
}

// AddAnnotation appends a new annotation with the given classification and
// region geometry, returning its generated identifier.
func (h *Hierarchy) AddAnnotation(className, roi string) (string, error) {
	id := newObjectID()
	obj := types.PathObject{ID: id, ClassName: className, ROI: roi}
	if err := h.data.AddObject(obj); err != nil {
		return "", err
	}
	return id, nil
}

// AddObject appends an annotation object as-is; an empty ID is filled in
// by the underlying data.
func (h *Hierarchy) AddObject(obj types.PathObject) error {
	return h.data.AddObject(obj)
}

func newObjectID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
