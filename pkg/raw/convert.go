package raw

import (
	"errors"
	"fmt"

	"github.com/philipparndt/goobj/pkg/geometry"
	"github.com/philipparndt/goobj/pkg/mtl"
	"github.com/philipparndt/goobj/pkg/obj"
)

var (
	// ErrTooManyVertices is returned when the output would not be
	// addressable with 16-bit indices
	ErrTooManyVertices = errors.New("too many vertices for 16-bit indices")
	// ErrNoMaterial is returned for a face drawn without any usemtl
	ErrNoMaterial = errors.New("face has no material")
)

// FallbackNormal is used for face vertices without a normal index.
// Normals are not recomputed from the face winding.
var FallbackNormal = geometry.NewVector3(0, 0, 1)

// MaterialSource resolves material names. *mtl.Library implements it.
type MaterialSource interface {
	Get(name string) (*mtl.Material, error)
}

// IndexOutOfRangeError is returned when a face references an entry past
// the end of one of the geometry tables.
type IndexOutOfRangeError struct {
	Table string // "vertex", "normal" or "texcoord"
	Face  int
	Index int
	Len   int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("face %d: %s index %d out of range [0, %d)", e.Face, e.Table, e.Index, e.Len)
}

// Build converts geometry and materials to flat buffers. Every position is
// transformed with xf. Faces are triangulated as fans around their first
// vertex. Faces with fewer than three vertices are skipped.
func Build(g *obj.Geometry, materials MaterialSource, xf geometry.Transform) (*Buffers, error) {
	vertexCount, indexCount := 0, 0
	for _, f := range g.Faces {
		n := len(f.Vertices)
		if n < 3 {
			continue
		}
		vertexCount += n
		indexCount += 3 * (n - 2)
	}
	if vertexCount > MaxVertices {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyVertices, vertexCount, MaxVertices)
	}

	out := &Buffers{
		Positions:   make([]float32, 0, PositionSize*vertexCount),
		Colors:      make([]float32, 0, ColorSize*vertexCount),
		Normals:     make([]float32, 0, NormalSize*vertexCount),
		Indices:     make([]uint16, 0, indexCount),
		VertexCount: vertexCount,
		IndexCount:  indexCount,
	}

	next := 0
	for fi, f := range g.Faces {
		n := len(f.Vertices)
		if n < 3 {
			continue
		}

		color, err := faceColor(materials, f)
		if err != nil {
			return nil, fmt.Errorf("face %d: %w", fi, err)
		}

		start := next
		for _, fv := range f.Vertices {
			pos, normal, err := resolve(g, fi, fv)
			if err != nil {
				return nil, err
			}
			pos = xf.Apply(pos)

			out.Positions = append(out.Positions, pos.X, pos.Y, pos.Z)
			out.Normals = append(out.Normals, normal.X, normal.Y, normal.Z)
			out.Colors = append(out.Colors, color.R, color.G, color.B, color.A)
			next++
		}

		// Fan around the first vertex: 0-1-2, 0-2-3, ...
		for j := 1; j+1 < n; j++ {
			out.Indices = append(out.Indices,
				uint16(start),
				uint16(start+j),
				uint16(start+j+1))
		}
	}

	return out, nil
}

func faceColor(materials MaterialSource, f obj.Face) (mtl.Color, error) {
	if f.Material == "" {
		return mtl.Color{}, ErrNoMaterial
	}
	m, err := materials.Get(f.Material)
	if err != nil {
		return mtl.Color{}, err
	}
	return m.Diffuse, nil
}

func resolve(g *obj.Geometry, face int, fv obj.FaceVertex) (pos, normal geometry.Vector3, err error) {
	if fv.Vertex < 0 || fv.Vertex >= len(g.Vertices) {
		return pos, normal, &IndexOutOfRangeError{Table: "vertex", Face: face, Index: fv.Vertex, Len: len(g.Vertices)}
	}
	pos = g.Vertices[fv.Vertex]

	if fv.TexCoord.Valid && (fv.TexCoord.Value < 0 || fv.TexCoord.Value >= len(g.TexCoords)) {
		return pos, normal, &IndexOutOfRangeError{Table: "texcoord", Face: face, Index: fv.TexCoord.Value, Len: len(g.TexCoords)}
	}

	normal = FallbackNormal
	if fv.Normal.Valid {
		if fv.Normal.Value < 0 || fv.Normal.Value >= len(g.Normals) {
			return pos, normal, &IndexOutOfRangeError{Table: "normal", Face: face, Index: fv.Normal.Value, Len: len(g.Normals)}
		}
		normal = g.Normals[fv.Normal.Value]
	}
	return pos, normal, nil
}
