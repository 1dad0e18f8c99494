package landmark

import (
	"errors"
	"testing"

	"github.com/openmpr/taviplan/pkg/geometry"
)

func TestAddAssignsKindsByOrder(t *testing.T) {
	s := NewStore()

	expected := []Kind{KindCuspLeft, KindCuspRight, KindCuspNonCoronary}
	for i, want := range expected {
		lm, err := s.Add(GroupCusp, geometry.NewVector3(float64(i), 0, 0))
		if err != nil {
			t.Fatalf("add %d: unexpected error: %v", i, err)
		}
		if lm.Kind != want {
			t.Errorf("add %d: expected kind %s, got %s", i, want, lm.Kind)
		}
		if lm.ID == "" {
			t.Error("landmark must get a generated id")
		}
		if lm.Color == "" {
			t.Error("landmark must get a color token")
		}
	}
}

func TestAddCuspCapacity(t *testing.T) {
	s := NewStore()
	for i := 0; i < 3; i++ {
		if _, err := s.Add(GroupCusp, geometry.NewVector3(float64(i), 0, 0)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	// Fourth cusp point must fail and leave the store at 3
	if _, err := s.Add(GroupCusp, geometry.NewVector3(9, 9, 9)); !errors.Is(err, ErrCapacity) {
		t.Fatalf("expected ErrCapacity, got %v", err)
	}
	if n := s.CountInGroup(GroupCusp); n != 3 {
		t.Errorf("store size changed on rejected add: got %d", n)
	}
}

func TestCenterlineCapacityAndRepeat(t *testing.T) {
	s := NewStore()
	for i := 0; i < 10; i++ {
		lm, err := s.Add(GroupCenterline, geometry.NewVector3(0, 0, float64(i)))
		if err != nil {
			t.Fatalf("add %d: unexpected error: %v", i, err)
		}
		if lm.Kind != KindCenterline {
			t.Errorf("add %d: expected centerline kind, got %s", i, lm.Kind)
		}
	}
	if _, err := s.Add(GroupCenterline, geometry.Vector3{}); !errors.Is(err, ErrCapacity) {
		t.Fatalf("expected ErrCapacity after 10 centerline points, got %v", err)
	}
}

func TestUpdatePositionKeepsIdentity(t *testing.T) {
	s := NewStore()
	lm, err := s.Add(GroupRoot, geometry.NewVector3(1, 1, 1))
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 50; i++ {
		if !s.UpdatePosition(lm.ID, geometry.NewVector3(float64(i), 0, 0)) {
			t.Fatalf("update %d failed", i)
		}
	}

	if s.Len() != 1 {
		t.Fatalf("updates must not duplicate landmarks: store has %d", s.Len())
	}
	got, ok := s.Get(lm.ID)
	if !ok {
		t.Fatal("landmark vanished")
	}
	if got.Position.X != 49 {
		t.Errorf("expected final position x=49, got %v", got.Position)
	}
}

func TestRemoveReindexes(t *testing.T) {
	s := NewStore()
	var ids []string
	for i := 0; i < 3; i++ {
		lm, err := s.Add(GroupCenterline, geometry.NewVector3(float64(i), 0, 0))
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, lm.ID)
	}

	if !s.Remove(ids[1]) {
		t.Fatal("remove failed")
	}
	if s.Remove(ids[1]) {
		t.Error("double remove should report false")
	}

	// Remaining landmarks stay addressable and ordered
	if _, ok := s.Get(ids[0]); !ok {
		t.Error("first landmark lost after remove")
	}
	if _, ok := s.Get(ids[2]); !ok {
		t.Error("last landmark lost after remove")
	}
	all := s.All()
	if len(all) != 2 || all[0].ID != ids[0] || all[1].ID != ids[2] {
		t.Errorf("order broken after remove: %v", all)
	}
}

func TestFindNearest(t *testing.T) {
	s := NewStore()
	a, _ := s.Add(GroupCenterline, geometry.NewVector3(0, 0, 0))
	b, _ := s.Add(GroupCenterline, geometry.NewVector3(10, 0, 0))

	got, ok := s.FindNearest(geometry.NewVector3(1, 0, 0), 5)
	if !ok || got.ID != a.ID {
		t.Errorf("expected nearest %s, got %+v ok=%v", a.ID, got, ok)
	}

	got, ok = s.FindNearest(geometry.NewVector3(9, 0, 0), 5)
	if !ok || got.ID != b.ID {
		t.Errorf("expected nearest %s, got %+v ok=%v", b.ID, got, ok)
	}

	if _, ok := s.FindNearest(geometry.NewVector3(100, 0, 0), 5); ok {
		t.Error("out-of-radius query should miss")
	}
}

func TestFindNearestTieBreaksByInsertion(t *testing.T) {
	s := NewStore()
	first, _ := s.Add(GroupCenterline, geometry.NewVector3(-1, 0, 0))
	s.Add(GroupCenterline, geometry.NewVector3(1, 0, 0))

	// Query point exactly between the two: earliest insertion wins
	got, ok := s.FindNearest(geometry.NewVector3(0, 0, 0), 5)
	if !ok || got.ID != first.ID {
		t.Errorf("tie should resolve to first inserted, got %+v", got)
	}
}

func TestIsGroupComplete(t *testing.T) {
	s := NewStore()

	if s.IsGroupComplete(GroupCusp) {
		t.Error("empty cusp group must not be complete")
	}
	for i := 0; i < 3; i++ {
		s.Add(GroupCusp, geometry.NewVector3(float64(i), float64(i*i), 0))
	}
	if !s.IsGroupComplete(GroupCusp) {
		t.Error("cusp group with 3 points must be complete")
	}

	s.Add(GroupRoot, geometry.Vector3{})
	if s.IsGroupComplete(GroupRoot) {
		t.Error("root group with 1 of 3 points must not be complete")
	}
}

func TestClearGroup(t *testing.T) {
	s := NewStore()
	s.Add(GroupCusp, geometry.NewVector3(1, 0, 0))
	s.Add(GroupCenterline, geometry.NewVector3(2, 0, 0))
	s.Add(GroupCusp, geometry.NewVector3(3, 0, 0))

	s.ClearGroup(GroupCusp)

	if n := s.CountInGroup(GroupCusp); n != 0 {
		t.Errorf("cusp group should be empty, has %d", n)
	}
	if n := s.CountInGroup(GroupCenterline); n != 1 {
		t.Errorf("centerline group should be untouched, has %d", n)
	}
}

func TestHandleRegistrySync(t *testing.T) {
	created := 0
	destroyed := 0
	reg := NewHandleRegistry(
		func(lm Landmark) any { created++; return lm.ID },
		func(any) { destroyed++ },
	)

	s := NewStore()
	a, _ := s.Add(GroupCenterline, geometry.NewVector3(0, 0, 0))
	s.Add(GroupCenterline, geometry.NewVector3(1, 0, 0))

	reg.Sync(s.All())
	if created != 2 || reg.Len() != 2 {
		t.Fatalf("expected 2 handles created, got created=%d len=%d", created, reg.Len())
	}

	// Second sync with no changes is a no-op
	reg.Sync(s.All())
	if created != 2 || destroyed != 0 {
		t.Errorf("sync without changes must not churn handles: created=%d destroyed=%d", created, destroyed)
	}

	s.Remove(a.ID)
	reg.Sync(s.All())
	if destroyed != 1 || reg.Len() != 1 {
		t.Errorf("expected 1 handle destroyed, got destroyed=%d len=%d", destroyed, reg.Len())
	}

	reg.Clear()
	if reg.Len() != 0 || destroyed != 2 {
		t.Errorf("clear must destroy remaining handles: len=%d destroyed=%d", reg.Len(), destroyed)
	}
}
