package main

import (
	"fmt"

	"github.com/philipparndt/goobj/pkg/analysis"
	"github.com/spf13/cobra"
)

var buildDump int

var buildCmd = &cobra.Command{
	Use:   "build <file.obj> [file.mtl...]",
	Short: "Convert an OBJ model into render buffers",
	Long: `Parse the model, normalize it to the target size and build the flat
position, color, normal and index buffers. Prints a summary and optionally
the first vertices and triangles of the result.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().IntVarP(&buildDump, "dump", "d", 0, "Number of vertices and triangles to print")
}

func runBuild(cmd *cobra.Command, args []string) error {
	a, err := loadAsset(args)
	if err != nil {
		return err
	}
	b := a.Buffers
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Render Buffers")
	fmt.Fprintln(out, "====================")
	fmt.Fprintf(out, "Transform: %s\n", a.Transform)
	fmt.Fprintf(out, "Vertices: %d\n", b.VertexCount)
	fmt.Fprintf(out, "Indices: %d\n", b.IndexCount)
	fmt.Fprintf(out, "Triangles: %d\n", b.TriangleCount())
	fmt.Fprintf(out, "Positions: %d floats\n", len(b.Positions))
	fmt.Fprintf(out, "Colors: %d floats\n", len(b.Colors))
	fmt.Fprintf(out, "Normals: %d floats\n", len(b.Normals))

	bounds := b.Bounds()
	fmt.Fprintf(out, "Bounds: %s - %s\n", analysis.FormatVector(bounds.Min), analysis.FormatVector(bounds.Max))

	if buildDump <= 0 {
		return nil
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%-6s %-35s %-35s %-30s\n", "Index", "Position", "Normal", "Color")
	fmt.Fprintln(out, "----------------------------------------------------------------------------------------------------------")
	for i := range min(buildDump, b.VertexCount) {
		c := b.Color(i)
		fmt.Fprintf(out, "%-6d %-35s %-35s (%.2f, %.2f, %.2f, %.2f)\n",
			i, analysis.FormatVector(b.Position(i)), analysis.FormatVector(b.Normal(i)), c[0], c[1], c[2], c[3])
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%-8s %-20s\n", "Triangle", "Indices")
	fmt.Fprintln(out, "------------------------------")
	for i := range min(buildDump, b.TriangleCount()) {
		t := b.Triangle(i)
		fmt.Fprintf(out, "%-8d %d %d %d\n", i, t[0], t[1], t[2])
	}
	return nil
}
