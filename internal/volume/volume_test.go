package volume

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/openmpr/taviplan/pkg/geometry"
)

func TestSampleWorldAtVoxelCenters(t *testing.T) {
	v, err := New([3]int{4, 4, 4}, [3]float64{2, 2, 2}, geometry.NewVector3(10, 0, -5))
	if err != nil {
		t.Fatal(err)
	}
	v.Set(1, 2, 3, 500)

	// Exactly on the voxel: interpolation degenerates to the stored value
	got := v.SampleWorld(geometry.NewVector3(10+2, 0+4, -5+6))
	if math.Abs(got-500) > 1e-10 {
		t.Errorf("expected 500 at voxel center, got %v", got)
	}
}

func TestSampleWorldInterpolates(t *testing.T) {
	v, err := New([3]int{2, 1, 1}, [3]float64{1, 1, 1}, geometry.Vector3{})
	if err != nil {
		t.Fatal(err)
	}
	v.Set(0, 0, 0, 0)
	v.Set(1, 0, 0, 100)

	got := v.SampleWorld(geometry.NewVector3(0.5, 0, 0))
	if math.Abs(got-50) > 1e-10 {
		t.Errorf("expected 50 midway between voxels, got %v", got)
	}
}

func TestSampleWorldOutside(t *testing.T) {
	v, err := New([3]int{4, 4, 4}, [3]float64{1, 1, 1}, geometry.Vector3{})
	if err != nil {
		t.Fatal(err)
	}

	if got := v.SampleWorld(geometry.NewVector3(-10, 0, 0)); got != AirValue {
		t.Errorf("outside samples should read as air, got %v", got)
	}
}

func TestPhantomHasLumen(t *testing.T) {
	v := Phantom([3]int{64, 64, 48}, [3]float64{1, 1, 1})

	// The volume center sits inside the contrast-filled lumen
	if got := v.SampleWorld(v.Center()); got < WallValue {
		t.Errorf("phantom center should be lumen-bright, got %v", got)
	}

	// A corner is plain tissue
	if got := v.SampleWorld(v.Origin); got != TissueValue {
		t.Errorf("phantom corner should be tissue, got %v", got)
	}

	min, max := v.ValueRange()
	if min == max {
		t.Error("phantom should not be uniform")
	}
}

func TestVolumeRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.vol")

	original := Phantom([3]int{16, 16, 12}, [3]float64{0.7, 0.7, 1.0})
	original.Origin = geometry.NewVector3(-5, 3, 20)

	if err := Write(path, original); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	loaded, err := Read(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	if loaded.Dims != original.Dims {
		t.Errorf("dims mismatch: %v vs %v", loaded.Dims, original.Dims)
	}
	if loaded.Spacing != original.Spacing {
		t.Errorf("spacing mismatch: %v vs %v", loaded.Spacing, original.Spacing)
	}
	if !loaded.Origin.ApproxEqual(original.Origin, 0) {
		t.Errorf("origin mismatch: %v vs %v", loaded.Origin, original.Origin)
	}
	for i := range original.Data {
		if loaded.Data[i] != original.Data[i] {
			t.Fatalf("voxel %d mismatch: %d vs %d", i, loaded.Data[i], original.Data[i])
		}
	}
}

func TestReadRejectsBadMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.vol")
	if err := os.WriteFile(path, []byte("not a volume at all, just text padding"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Read(path); err == nil {
		t.Fatal("expected error for bad magic")
	}
}

func TestReadRejectsUnreasonableDims(t *testing.T) {
	cases := [][3]uint32{
		{0, 16, 16},
		{math.MaxUint32, math.MaxUint32, math.MaxUint32},
		// Each axis passes the per-axis bound but the product overflows
		// a machine int long before the allocation would fail
		{1 << 20, 1 << 20, 1 << 20},
	}
	for _, dims := range cases {
		path := filepath.Join(t.TempDir(), "huge.vol")
		hdr := volHeader{Magic: volMagic, Dims: dims, Spacing: [3]float64{1, 1, 1}}

		f, err := os.Create(path)
		if err != nil {
			t.Fatal(err)
		}
		if err := binary.Write(f, binary.LittleEndian, &hdr); err != nil {
			t.Fatal(err)
		}
		f.Close()

		if _, err := Read(path); err == nil {
			t.Errorf("dims %v: expected a dimension error", dims)
		}
	}
}
