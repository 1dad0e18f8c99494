// Package landmark stores the typed anatomical 3D points placed by the
// user: cusp nadirs, root points and free centerline points. The store
// owns identity, ordering and capacity; per-viewport visual handles live
// in separate registries so landmarks never reference renderer state.
package landmark

import (
	"errors"

	"github.com/google/uuid"
	"github.com/openmpr/taviplan/pkg/geometry"
)

// ErrCapacity is returned when a group already holds its maximum number
// of landmarks. The click that caused it is simply a no-op.
var ErrCapacity = errors.New("landmark: group at capacity")

// Landmark is one placed anatomical point. Values returned from the
// store are copies; mutation goes through the store methods.
type Landmark struct {
	ID       string
	Position geometry.Vector3
	Kind     Kind
	Group    Group
	Color    string
}

// Store is the ordered landmark collection. Not safe for concurrent
// use; all access happens on the UI goroutine.
type Store struct {
	ordered []Landmark // insertion order across all groups
	index   map[string]int
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{index: make(map[string]int)}
}

// Add places a new landmark in the given group. The group's ordering
// rule determines the kind from the current member count. Returns
// ErrCapacity when the group is full, leaving the store unchanged.
func (s *Store) Add(group Group, position geometry.Vector3) (Landmark, error) {
	spec, ok := Spec(group)
	if !ok {
		return Landmark{}, errors.New("landmark: unknown group " + string(group))
	}

	n := s.CountInGroup(group)
	if n >= spec.Max {
		return Landmark{}, ErrCapacity
	}

	kind := spec.Ordering[len(spec.Ordering)-1]
	if n < len(spec.Ordering) {
		kind = spec.Ordering[n]
	} else if !spec.Repeat {
		return Landmark{}, ErrCapacity
	}

	lm := Landmark{
		ID:       uuid.NewString(),
		Position: position,
		Kind:     kind,
		Group:    group,
		Color:    ColorFor(kind),
	}
	s.index[lm.ID] = len(s.ordered)
	s.ordered = append(s.ordered, lm)
	return lm, nil
}

// Remove deletes a landmark by id. Dependent derived state (connection
// curve, completion flags) is the caller's to refresh afterwards.
func (s *Store) Remove(id string) bool {
	i, ok := s.index[id]
	if !ok {
		return false
	}
	s.ordered = append(s.ordered[:i], s.ordered[i+1:]...)
	delete(s.index, id)
	for j := i; j < len(s.ordered); j++ {
		s.index[s.ordered[j].ID] = j
	}
	return true
}

// UpdatePosition moves a landmark without changing its identity
func (s *Store) UpdatePosition(id string, position geometry.Vector3) bool {
	i, ok := s.index[id]
	if !ok {
		return false
	}
	s.ordered[i].Position = position
	return true
}

// Get returns a landmark by id
func (s *Store) Get(id string) (Landmark, bool) {
	i, ok := s.index[id]
	if !ok {
		return Landmark{}, false
	}
	return s.ordered[i], true
}

// FindNearest returns the landmark closest to the given world position
// within the radius threshold. Ties resolve to the earliest-inserted
// landmark for determinism.
func (s *Store) FindNearest(position geometry.Vector3, radius float64) (Landmark, bool) {
	best := -1
	bestDist := 0.0
	for i, lm := range s.ordered {
		d := lm.Position.Distance(position)
		if d > radius {
			continue
		}
		// Strict less keeps the earliest insertion on equal distance
		if best < 0 || d < bestDist {
			best = i
			bestDist = d
		}
	}
	if best < 0 {
		return Landmark{}, false
	}
	return s.ordered[best], true
}

// CountInGroup returns the number of landmarks in a group
func (s *Store) CountInGroup(group Group) int {
	n := 0
	for _, lm := range s.ordered {
		if lm.Group == group {
			n++
		}
	}
	return n
}

// IsGroupComplete reports whether a group has reached its required
// count: exactly Max for exact groups, at least Max otherwise (the
// store never allows more than Max, so both reduce to count == Max).
func (s *Store) IsGroupComplete(group Group) bool {
	spec, ok := Spec(group)
	if !ok {
		return false
	}
	return s.CountInGroup(group) == spec.Max
}

// InGroup returns the group's landmarks in insertion order
func (s *Store) InGroup(group Group) []Landmark {
	var out []Landmark
	for _, lm := range s.ordered {
		if lm.Group == group {
			out = append(out, lm)
		}
	}
	return out
}

// All returns every landmark in insertion order
func (s *Store) All() []Landmark {
	out := make([]Landmark, len(s.ordered))
	copy(out, s.ordered)
	return out
}

// Len returns the total landmark count
func (s *Store) Len() int {
	return len(s.ordered)
}

// ClearGroup removes all landmarks of a group
func (s *Store) ClearGroup(group Group) {
	kept := s.ordered[:0]
	for _, lm := range s.ordered {
		if lm.Group != group {
			kept = append(kept, lm)
		} else {
			delete(s.index, lm.ID)
		}
	}
	s.ordered = kept
	for i, lm := range s.ordered {
		s.index[lm.ID] = i
	}
}

// Clear removes every landmark
func (s *Store) Clear() {
	s.ordered = nil
	s.index = make(map[string]int)
}
