package obj

import (
	"fmt"

	"github.com/philipparndt/goobj/pkg/geometry"
)

// Index is an optional zero-based index into one of the geometry tables
type Index struct {
	Value int
	Valid bool
}

// Missing is the absent index
var Missing = Index{}

// IndexOf returns a present index
func IndexOf(i int) Index {
	return Index{Value: i, Valid: true}
}

func (i Index) String() string {
	if !i.Valid {
		return "-"
	}
	return fmt.Sprint(i.Value)
}

// FaceVertex references a vertex and optionally a texture coordinate and a
// normal. All indices are zero-based.
type FaceVertex struct {
	Vertex   int
	TexCoord Index
	Normal   Index
}

// Face is a polygon drawn with a named material. Material is empty when no
// usemtl directive preceded the face.
type Face struct {
	Vertices []FaceVertex
	Material string
}

// Geometry is the content of an OBJ file, with indices as laid out in the
// file. It is read-only once Parse returns.
type Geometry struct {
	Vertices  []geometry.Vector3
	Normals   []geometry.Vector3
	TexCoords []geometry.TexCoord
	Faces     []Face
	Bounds    geometry.BoundingBox
}

// NewGeometry creates an empty geometry
func NewGeometry() *Geometry {
	return &Geometry{
		Vertices:  make([]geometry.Vector3, 0),
		Normals:   make([]geometry.Vector3, 0),
		TexCoords: make([]geometry.TexCoord, 0),
		Faces:     make([]Face, 0),
	}
}

// AddVertex appends a vertex and grows the bounding box to contain it
func (g *Geometry) AddVertex(v geometry.Vector3) {
	g.Vertices = append(g.Vertices, v)
	g.Bounds.Extend(v)
}

// AddNormal appends a normal
func (g *Geometry) AddNormal(n geometry.Vector3) {
	g.Normals = append(g.Normals, n)
}

// AddTexCoord appends a texture coordinate
func (g *Geometry) AddTexCoord(tc geometry.TexCoord) {
	g.TexCoords = append(g.TexCoords, tc)
}

// AddFace appends a face
func (g *Geometry) AddFace(f Face) {
	g.Faces = append(g.Faces, f)
}

// VertexCount returns the number of vertices
func (g *Geometry) VertexCount() int {
	return len(g.Vertices)
}

// FaceCount returns the number of faces
func (g *Geometry) FaceCount() int {
	return len(g.Faces)
}

// BoundsCenter returns the center of the bounding box
func (g *Geometry) BoundsCenter() geometry.Vector3 {
	return g.Bounds.Center()
}

// BoundsSize returns the size of the bounding box
func (g *Geometry) BoundsSize() geometry.Vector3 {
	return g.Bounds.Size()
}

// Polygon returns the positions of a face's corners, in order. Vertex
// indices outside the table are reported as an error.
func (g *Geometry) Polygon(f Face) ([]geometry.Vector3, error) {
	out := make([]geometry.Vector3, len(f.Vertices))
	for i, fv := range f.Vertices {
		if fv.Vertex < 0 || fv.Vertex >= len(g.Vertices) {
			return nil, fmt.Errorf("vertex index %d out of range [0, %d)", fv.Vertex, len(g.Vertices))
		}
		out[i] = g.Vertices[fv.Vertex]
	}
	return out, nil
}
