package main

import (
	"fmt"

	"github.com/philipparndt/goobj/pkg/analysis"
	"github.com/spf13/cobra"
)

var (
	faceCount   int
	faceLargest bool
)

var facesCmd = &cobra.Command{
	Use:   "faces <file.obj> [file.mtl...]",
	Short: "Analyze the faces of an OBJ model",
	Long:  "Display per-face information: vertex count, material, area and perimeter.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFaces,
}

func init() {
	rootCmd.AddCommand(facesCmd)

	facesCmd.Flags().IntVarP(&faceCount, "count", "n", 10, "Number of faces to display")
	facesCmd.Flags().BoolVarP(&faceLargest, "largest", "l", false, "Show largest faces by area")
}

func runFaces(cmd *cobra.Command, args []string) error {
	if err := checkCount(faceCount); err != nil {
		return err
	}
	_, g, err := loadGeometry(args)
	if err != nil {
		return err
	}
	result := analysis.AnalyzeGeometry(g)
	out := cmd.OutOrStdout()

	faces := result.Faces
	title := fmt.Sprintf("First %d Faces", faceCount)
	if faceLargest {
		faces = analysis.FindLargestFaces(result, faceCount)
		title = fmt.Sprintf("Top %d Largest Faces", faceCount)
	}
	if len(faces) > faceCount {
		faces = faces[:faceCount]
	}

	fmt.Fprintln(out, title)
	fmt.Fprintln(out, "====================")
	fmt.Fprintf(out, "Total faces: %d\n", result.FaceCount)
	fmt.Fprintf(out, "Total triangles after fan triangulation: %d\n", result.TriangleCount)
	fmt.Fprintf(out, "Total surface area: %.6f square units\n\n", result.SurfaceArea)

	fmt.Fprintf(out, "%-8s %-8s %-20s %-15s %-15s\n", "Face", "Corners", "Material", "Area", "Perimeter")
	fmt.Fprintln(out, "--------------------------------------------------------------------")
	for _, f := range faces {
		fmt.Fprintf(out, "%-8d %-8d %-20s %-15.6f %-15.6f\n",
			f.Index, f.VertexCount, analysis.FormatMaterial(f.Material), f.Area, f.Perimeter)
	}
	return nil
}
