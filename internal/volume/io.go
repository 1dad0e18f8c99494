package volume

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/openmpr/taviplan/pkg/geometry"
)

// Container format: magic, three uint32 dims, three float64 spacings,
// three float64 origin components, then little-endian int16 samples in
// X-fastest order. A deliberately small stand-in for the DICOM series
// that feeds the real tool.
var volMagic = [4]byte{'T', 'V', 'O', 'L'}

type volHeader struct {
	Magic   [4]byte
	Dims    [3]uint32
	Spacing [3]float64
	Origin  [3]float64
}

// maxVoxels caps loads so a corrupt header cannot ask for an absurd
// allocation.
const maxVoxels = 1 << 28

// Read loads a .vol file
func Read(filename string) (*Volume, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open volume: %w", err)
	}
	defer file.Close()

	reader := bufio.NewReader(file)

	var hdr volHeader
	if err := binary.Read(reader, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("failed to read volume header: %w", err)
	}
	if hdr.Magic != volMagic {
		return nil, fmt.Errorf("not a volume file: bad magic %q", hdr.Magic)
	}

	// Bound each axis, then the running product, so three huge uint32
	// dims cannot overflow past the voxel cap.
	for _, d := range hdr.Dims {
		if d == 0 || d > maxVoxels {
			return nil, fmt.Errorf("unreasonable volume dimensions %v", hdr.Dims)
		}
	}
	count64 := int64(hdr.Dims[0]) * int64(hdr.Dims[1])
	if count64 > maxVoxels {
		return nil, fmt.Errorf("unreasonable volume dimensions %v", hdr.Dims)
	}
	count64 *= int64(hdr.Dims[2])
	if count64 > maxVoxels {
		return nil, fmt.Errorf("unreasonable volume dimensions %v", hdr.Dims)
	}
	dims := [3]int{int(hdr.Dims[0]), int(hdr.Dims[1]), int(hdr.Dims[2])}
	count := int(count64)

	v, err := New(dims, hdr.Spacing, geometry.NewVector3(hdr.Origin[0], hdr.Origin[1], hdr.Origin[2]))
	if err != nil {
		return nil, err
	}

	if err := binary.Read(reader, binary.LittleEndian, v.Data); err != nil {
		return nil, fmt.Errorf("failed to read %d voxels: %w", count, err)
	}

	return v, nil
}

// Write stores a volume as a .vol file
func Write(filename string, v *Volume) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create volume file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)

	hdr := volHeader{
		Magic:   volMagic,
		Dims:    [3]uint32{uint32(v.Dims[0]), uint32(v.Dims[1]), uint32(v.Dims[2])},
		Spacing: v.Spacing,
		Origin:  [3]float64{v.Origin.X, v.Origin.Y, v.Origin.Z},
	}
	if err := binary.Write(writer, binary.LittleEndian, hdr); err != nil {
		return fmt.Errorf("failed to write volume header: %w", err)
	}
	if err := binary.Write(writer, binary.LittleEndian, v.Data); err != nil {
		return fmt.Errorf("failed to write voxels: %w", err)
	}

	return writer.Flush()
}
