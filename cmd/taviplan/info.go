package main

import (
	"fmt"
	"os"

	"github.com/openmpr/taviplan/internal/volume"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <volume.vol>",
	Short: "Display general information about a volume file",
	Long:  "Show volume dimensions, voxel spacing, physical extent and the sample value range.",
	Args:  cobra.ExactArgs(1),
	Run:   runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) {
	filename := args[0]

	vol, err := volume.Read(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading volume: %v\n", err)
		os.Exit(1)
	}

	extent := vol.Extent()
	center := vol.Center()
	lo, hi := vol.ValueRange()

	fmt.Println("Volume Information")
	fmt.Println("==================")
	fmt.Printf("File: %s\n\n", filename)

	fmt.Println("Grid:")
	fmt.Printf("  Dimensions: %d x %d x %d voxels\n", vol.Dims[0], vol.Dims[1], vol.Dims[2])
	fmt.Printf("  Spacing: %.3f x %.3f x %.3f mm\n", vol.Spacing[0], vol.Spacing[1], vol.Spacing[2])
	fmt.Printf("  Voxels: %d\n\n", len(vol.Data))

	fmt.Println("Patient Space:")
	fmt.Printf("  Origin: (%.2f, %.2f, %.2f) mm\n", vol.Origin.X, vol.Origin.Y, vol.Origin.Z)
	fmt.Printf("  Extent: %.2f x %.2f x %.2f mm\n", extent.X, extent.Y, extent.Z)
	fmt.Printf("  Center: (%.2f, %.2f, %.2f) mm\n\n", center.X, center.Y, center.Z)

	fmt.Println("Samples:")
	fmt.Printf("  Minimum: %d\n", lo)
	fmt.Printf("  Maximum: %d\n", hi)
}
