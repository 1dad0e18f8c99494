package landmark

// HandleRegistry owns the opaque visual handles (spheres, dots, canvas
// objects) one renderer keeps per landmark. A landmark stores only its
// id and geometry; each viewport's renderer holds its own registry, so
// there are no back-references from landmarks into renderer state.
// Handles are created when a landmark first appears and destroyed when
// it goes away or the registry is cleared.
type HandleRegistry struct {
	create  func(Landmark) any
	destroy func(any)
	handles map[string]any
}

// NewHandleRegistry builds a registry with the renderer's create and
// destroy callbacks. destroy may be nil when handles need no teardown.
func NewHandleRegistry(create func(Landmark) any, destroy func(any)) *HandleRegistry {
	return &HandleRegistry{
		create:  create,
		destroy: destroy,
		handles: make(map[string]any),
	}
}

// Sync reconciles the registry against the current landmark list:
// missing handles are created, orphaned handles destroyed.
func (r *HandleRegistry) Sync(landmarks []Landmark) {
	seen := make(map[string]bool, len(landmarks))
	for _, lm := range landmarks {
		seen[lm.ID] = true
		if _, ok := r.handles[lm.ID]; !ok {
			r.handles[lm.ID] = r.create(lm)
		}
	}
	for id, h := range r.handles {
		if !seen[id] {
			if r.destroy != nil {
				r.destroy(h)
			}
			delete(r.handles, id)
		}
	}
}

// Handle returns the handle for a landmark id
func (r *HandleRegistry) Handle(id string) (any, bool) {
	h, ok := r.handles[id]
	return h, ok
}

// Len returns the number of live handles
func (r *HandleRegistry) Len() int {
	return len(r.handles)
}

// Clear destroys every handle
func (r *HandleRegistry) Clear() {
	for id, h := range r.handles {
		if r.destroy != nil {
			r.destroy(h)
		}
		delete(r.handles, id)
	}
}
