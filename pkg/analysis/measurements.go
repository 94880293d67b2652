package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/philipparndt/goobj/pkg/geometry"
	"github.com/philipparndt/goobj/pkg/obj"
)

// EdgeInfo contains information about a polygon edge in the model
type EdgeInfo struct {
	Start  geometry.Vector3
	End    geometry.Vector3
	Length float32
	FaceID int
}

// FaceInfo contains information about a single face
type FaceInfo struct {
	Index       int
	VertexCount int
	Material    string
	Area        float32
	Perimeter   float32
}

// MaterialUsage counts the faces drawn with one material
type MaterialUsage struct {
	Name  string
	Faces int
}

// MeasurementResult contains various measurements of a parsed OBJ geometry
type MeasurementResult struct {
	BoundingBox   geometry.BoundingBox
	Dimensions    geometry.Vector3
	Volume        float32
	SurfaceArea   float32
	VertexCount   int
	NormalCount   int
	TexCoordCount int
	FaceCount     int
	TriangleCount int
	// Face vertices without a normal index; the builder gives these the
	// fallback normal.
	MissingNormals int
	Materials      []MaterialUsage
	EdgeCount      int
	MinEdgeLength  float32
	MaxEdgeLength  float32
	AvgEdgeLength  float32
	AllEdges       []EdgeInfo
	Faces          []FaceInfo
}

// AnalyzeGeometry performs comprehensive analysis on a parsed geometry.
// Faces referencing vertices outside the table are counted but not measured.
func AnalyzeGeometry(g *obj.Geometry) *MeasurementResult {
	result := &MeasurementResult{
		BoundingBox:   g.Bounds,
		Dimensions:    g.BoundsSize(),
		VertexCount:   g.VertexCount(),
		NormalCount:   len(g.Normals),
		TexCoordCount: len(g.TexCoords),
		FaceCount:     g.FaceCount(),
		AllEdges:      make([]EdgeInfo, 0),
		Faces:         make([]FaceInfo, 0, g.FaceCount()),
	}
	result.Volume = result.BoundingBox.Volume()

	usage := make(map[string]int)
	var minLength float32 = math.MaxFloat32
	var maxLength, totalLength float32

	for i, face := range g.Faces {
		usage[face.Material]++
		for _, fv := range face.Vertices {
			if !fv.Normal.Valid {
				result.MissingNormals++
			}
		}

		polygon, err := g.Polygon(face)
		if err != nil {
			continue
		}

		info := FaceInfo{Index: i, VertexCount: len(polygon), Material: face.Material}
		for _, tri := range geometry.FanTriangles(polygon) {
			info.Area += tri.Area()
			result.TriangleCount++
		}

		for j := range polygon {
			start, end := polygon[j], polygon[(j+1)%len(polygon)]
			length := start.Distance(end)
			info.Perimeter += length

			result.AllEdges = append(result.AllEdges, EdgeInfo{
				Start:  start,
				End:    end,
				Length: length,
				FaceID: i,
			})

			totalLength += length
			minLength = min(minLength, length)
			maxLength = max(maxLength, length)
		}

		result.SurfaceArea += info.Area
		result.Faces = append(result.Faces, info)
	}

	result.EdgeCount = len(result.AllEdges)
	if result.EdgeCount > 0 {
		result.MinEdgeLength = minLength
		result.MaxEdgeLength = maxLength
		result.AvgEdgeLength = totalLength / float32(result.EdgeCount)
	}

	for name, faces := range usage {
		result.Materials = append(result.Materials, MaterialUsage{Name: name, Faces: faces})
	}
	sort.Slice(result.Materials, func(i, j int) bool {
		return result.Materials[i].Name < result.Materials[j].Name
	})

	return result
}

// FindEdgesByLength finds all edges within a length range
func FindEdgesByLength(result *MeasurementResult, minLength, maxLength float32) []EdgeInfo {
	var edges []EdgeInfo
	for _, edge := range result.AllEdges {
		if edge.Length >= minLength && edge.Length <= maxLength {
			edges = append(edges, edge)
		}
	}
	return edges
}

// FindLongestEdges returns the N longest edges in the model
func FindLongestEdges(result *MeasurementResult, count int) []EdgeInfo {
	return sortedEdges(result, count, func(a, b EdgeInfo) bool { return a.Length > b.Length })
}

// FindShortestEdges returns the N shortest edges in the model
func FindShortestEdges(result *MeasurementResult, count int) []EdgeInfo {
	return sortedEdges(result, count, func(a, b EdgeInfo) bool { return a.Length < b.Length })
}

func sortedEdges(result *MeasurementResult, count int, less func(a, b EdgeInfo) bool) []EdgeInfo {
	edges := make([]EdgeInfo, len(result.AllEdges))
	copy(edges, result.AllEdges)

	sort.SliceStable(edges, func(i, j int) bool {
		return less(edges[i], edges[j])
	})

	return edges[:clampCount(count, len(edges))]
}

// FindLargestFaces returns the N faces with the largest area
func FindLargestFaces(result *MeasurementResult, count int) []FaceInfo {
	faces := make([]FaceInfo, len(result.Faces))
	copy(faces, result.Faces)

	sort.SliceStable(faces, func(i, j int) bool {
		return faces[i].Area > faces[j].Area
	})

	return faces[:clampCount(count, len(faces))]
}

// clampCount limits a requested result count to [0, n]
func clampCount(count, n int) int {
	return max(0, min(count, n))
}

// FormatMeasurement formats a measurement with appropriate units
func FormatMeasurement(value float32, unit string) string {
	if unit == "" {
		unit = "units"
	}
	return fmt.Sprintf("%.6f %s", value, unit)
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v.X, v.Y, v.Z)
}

// FormatMaterial formats a material name, marking faces without one
func FormatMaterial(name string) string {
	if name == "" {
		return "(none)"
	}
	return name
}
