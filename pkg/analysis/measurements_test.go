package analysis

import (
	"math"
	"testing"

	"github.com/philipparndt/goobj/pkg/obj"
)

const square = `v 0 0 0
v 2 0 0
v 2 2 0
v 0 2 0
v 0 0 3
vn 0 0 1
usemtl floor
f 1//1 2//1 3//1 4//1
usemtl wall
f 1 2 5
`

func analyze(t *testing.T, text string) *MeasurementResult {
	t.Helper()
	g, err := obj.Parse(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return AnalyzeGeometry(g)
}

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

func TestAnalyzeCounts(t *testing.T) {
	result := analyze(t, square)

	if result.VertexCount != 5 {
		t.Errorf("expected 5 vertices, got %d", result.VertexCount)
	}
	if result.NormalCount != 1 {
		t.Errorf("expected 1 normal, got %d", result.NormalCount)
	}
	if result.FaceCount != 2 {
		t.Errorf("expected 2 faces, got %d", result.FaceCount)
	}
	// quad -> 2 triangles, triangle -> 1
	if result.TriangleCount != 3 {
		t.Errorf("expected 3 triangles, got %d", result.TriangleCount)
	}
	if result.MissingNormals != 3 {
		t.Errorf("expected 3 face vertices without normals, got %d", result.MissingNormals)
	}
	if result.EdgeCount != 7 {
		t.Errorf("expected 7 edges, got %d", result.EdgeCount)
	}
}

func TestAnalyzeAreaAndEdges(t *testing.T) {
	result := analyze(t, square)

	// 2x2 square plus right triangle with legs 2 and 3
	if !near(result.SurfaceArea, 4+3) {
		t.Errorf("expected surface area 7, got %v", result.SurfaceArea)
	}
	if !near(result.MinEdgeLength, 2) {
		t.Errorf("expected min edge 2, got %v", result.MinEdgeLength)
	}
	if !near(result.MaxEdgeLength, float32(math.Sqrt(13))) {
		t.Errorf("expected max edge sqrt(13), got %v", result.MaxEdgeLength)
	}
	if !near(result.Faces[0].Perimeter, 8) {
		t.Errorf("expected quad perimeter 8, got %v", result.Faces[0].Perimeter)
	}
	if !near(result.Volume, 2*2*3) {
		t.Errorf("expected bounding volume 12, got %v", result.Volume)
	}
}

func TestAnalyzeMaterials(t *testing.T) {
	result := analyze(t, square)

	if len(result.Materials) != 2 {
		t.Fatalf("expected 2 materials, got %v", result.Materials)
	}
	if result.Materials[0] != (MaterialUsage{Name: "floor", Faces: 1}) {
		t.Errorf("unexpected usage %v", result.Materials[0])
	}
	if result.Materials[1] != (MaterialUsage{Name: "wall", Faces: 1}) {
		t.Errorf("unexpected usage %v", result.Materials[1])
	}
}

func TestFindEdges(t *testing.T) {
	result := analyze(t, square)

	longest := FindLongestEdges(result, 1)
	if len(longest) != 1 || !near(longest[0].Length, float32(math.Sqrt(13))) {
		t.Errorf("unexpected longest edge %v", longest)
	}

	shortest := FindShortestEdges(result, 100)
	if len(shortest) != result.EdgeCount {
		t.Errorf("expected all %d edges, got %d", result.EdgeCount, len(shortest))
	}
	if !near(shortest[0].Length, 2) {
		t.Errorf("unexpected shortest edge %v", shortest[0])
	}

	exact := FindEdgesByLength(result, 2.9, 3.1)
	if len(exact) != 1 || exact[0].FaceID != 1 {
		t.Errorf("expected the single 3-unit edge of face 1, got %v", exact)
	}
}

func TestFindLargestFaces(t *testing.T) {
	result := analyze(t, square)

	faces := FindLargestFaces(result, 1)
	if len(faces) != 1 || faces[0].Material != "floor" || faces[0].VertexCount != 4 {
		t.Errorf("unexpected largest face %v", faces)
	}
}

func TestNegativeCountReturnsNothing(t *testing.T) {
	result := analyze(t, square)

	if edges := FindLongestEdges(result, -1); len(edges) != 0 {
		t.Errorf("expected no edges, got %v", edges)
	}
	if edges := FindShortestEdges(result, -5); len(edges) != 0 {
		t.Errorf("expected no edges, got %v", edges)
	}
	if faces := FindLargestFaces(result, -1); len(faces) != 0 {
		t.Errorf("expected no faces, got %v", faces)
	}
}

func TestAnalyzeSkipsBrokenFaces(t *testing.T) {
	result := analyze(t, "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 9\n")

	if result.FaceCount != 1 || len(result.Faces) != 0 || result.EdgeCount != 0 {
		t.Errorf("expected the out of range face to be counted but not measured, got %+v", result)
	}
}

func TestFormat(t *testing.T) {
	if got := FormatMeasurement(1.5, ""); got != "1.500000 units" {
		t.Errorf("unexpected format %q", got)
	}
	if got := FormatMaterial(""); got != "(none)" {
		t.Errorf("unexpected format %q", got)
	}
}
