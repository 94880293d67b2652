// Package raw converts parsed OBJ geometry and MTL materials into flat
// vertex and index buffers in the layout expected by GPU upload code.
package raw

import (
	"fmt"

	"github.com/philipparndt/goobj/pkg/geometry"
)

// Components per vertex in each buffer
const (
	PositionSize = 3
	NormalSize   = 3
	ColorSize    = 4
)

// MaxVertices is the largest vertex count addressable by 16-bit indices
const MaxVertices = 1 << 16

// Buffers holds de-indexed vertex attributes and triangle indices. Entry i
// of Positions, Normals and Colors describe the same vertex. The value is
// handed to the renderer as is and must not be modified afterwards.
type Buffers struct {
	Positions []float32 // x, y, z per vertex
	Colors    []float32 // r, g, b, a per vertex
	Normals   []float32 // x, y, z per vertex
	Indices   []uint16  // three per triangle

	VertexCount int
	IndexCount  int
}

// TriangleCount returns the number of triangles in the index buffer
func (b *Buffers) TriangleCount() int {
	return b.IndexCount / 3
}

// Triangle returns the vertex indices of triangle i
func (b *Buffers) Triangle(i int) [3]uint16 {
	return [3]uint16{b.Indices[3*i], b.Indices[3*i+1], b.Indices[3*i+2]}
}

// Position returns the position of vertex i
func (b *Buffers) Position(i int) geometry.Vector3 {
	p := b.Positions[PositionSize*i:]
	return geometry.NewVector3(p[0], p[1], p[2])
}

// Normal returns the normal of vertex i
func (b *Buffers) Normal(i int) geometry.Vector3 {
	n := b.Normals[NormalSize*i:]
	return geometry.NewVector3(n[0], n[1], n[2])
}

// Color returns the RGBA color of vertex i
func (b *Buffers) Color(i int) [4]float32 {
	c := b.Colors[ColorSize*i:]
	return [4]float32{c[0], c[1], c[2], c[3]}
}

// Bounds returns the bounding box of the output positions
func (b *Buffers) Bounds() geometry.BoundingBox {
	var bbox geometry.BoundingBox
	for i := 0; i < b.VertexCount; i++ {
		bbox.Extend(b.Position(i))
	}
	return bbox
}

func (b *Buffers) String() string {
	return fmt.Sprintf("%d vertices, %d indices (%d triangles)", b.VertexCount, b.IndexCount, b.TriangleCount())
}
