package raw

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/philipparndt/goobj/pkg/geometry"
	"github.com/philipparndt/goobj/pkg/mtl"
	"github.com/philipparndt/goobj/pkg/obj"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, objText, mtlText string) (*obj.Geometry, *mtl.Library) {
	t.Helper()
	g, err := obj.Parse(objText)
	require.NoError(t, err)
	lib, err := mtl.Parse(mtlText)
	require.NoError(t, err)
	return g, lib
}

func TestBuildRedTriangle(t *testing.T) {
	g, lib := parse(t, "v 0 0 0\nv 1 0 0\nv 0 1 0\nusemtl red\nf 1 2 3\n", "newmtl red\nKd 1 0 0\n")
	require.Equal(t, 3, g.VertexCount())
	require.Equal(t, 1, g.FaceCount())

	b, err := Build(g, lib, geometry.Identity())
	require.NoError(t, err)

	assert.Equal(t, 3, b.VertexCount)
	assert.Equal(t, 3, b.IndexCount)
	assert.Equal(t, []uint16{0, 1, 2}, b.Indices)
	assert.Equal(t, []float32{0, 0, 0, 1, 0, 0, 0, 1, 0}, b.Positions)
	for i := 0; i < b.VertexCount; i++ {
		assert.Equal(t, [4]float32{1, 0, 0, 1}, b.Color(i), "color of vertex %d", i)
		assert.Equal(t, FallbackNormal, b.Normal(i), "normal of vertex %d", i)
	}
}

func TestBuildExactBufferSizes(t *testing.T) {
	g, lib := parse(t, `v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
v 0 0 1
usemtl m
f 1 2 3
f 1 2 3 4
f 1 2 3 4 5
`, "newmtl m\n")

	b, err := Build(g, lib, geometry.Identity())
	require.NoError(t, err)

	assert.Equal(t, 3+4+5, b.VertexCount)
	assert.Equal(t, 3*(1+2+3), b.IndexCount)
	assert.Len(t, b.Positions, PositionSize*b.VertexCount)
	assert.Len(t, b.Normals, NormalSize*b.VertexCount)
	assert.Len(t, b.Colors, ColorSize*b.VertexCount)
	assert.Len(t, b.Indices, b.IndexCount)
	assert.Equal(t, cap(b.Positions), len(b.Positions))
	assert.Equal(t, cap(b.Indices), len(b.Indices))
}

func TestBuildTriangleOnlyCounts(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 10; i++ {
		fmt.Fprintf(&sb, "v %d 0 0\nv %d 1 0\nv %d 0 1\n", i, i, i)
	}
	sb.WriteString("usemtl m\n")
	faces := 0
	for i := 0; i < 10; i++ {
		fmt.Fprintf(&sb, "f %d %d %d\n", 3*i+1, 3*i+2, 3*i+3)
		faces++
	}

	g, lib := parse(t, sb.String(), "newmtl m\n")
	b, err := Build(g, lib, geometry.Identity())
	require.NoError(t, err)

	assert.Equal(t, 3*faces, b.IndexCount)
	assert.Equal(t, 3*faces, b.VertexCount)
}

func TestBuildFanTriangulation(t *testing.T) {
	g, lib := parse(t, `v 0 0 0
v 1 0 0
v 2 1 0
v 1 2 0
v 0 1 0
usemtl m
f 1 2 3
f 1 2 3 4 5
`, "newmtl m\n")

	b, err := Build(g, lib, geometry.Identity())
	require.NoError(t, err)

	// The pentagon starts after the first triangle's three vertices.
	require.Equal(t, 1+3, b.TriangleCount())
	assert.Equal(t, [3]uint16{0, 1, 2}, b.Triangle(0))
	assert.Equal(t, [3]uint16{3, 4, 5}, b.Triangle(1))
	assert.Equal(t, [3]uint16{3, 5, 6}, b.Triangle(2))
	assert.Equal(t, [3]uint16{3, 6, 7}, b.Triangle(3))

	for i := 1; i < b.TriangleCount(); i++ {
		for _, idx := range b.Triangle(i) {
			assert.True(t, idx >= 3 && idx < 8, "triangle %d references vertex %d outside its face", i, idx)
		}
	}
}

func TestBuildNormals(t *testing.T) {
	g, lib := parse(t, `v 0 0 0
v 1 0 0
v 0 1 0
vn 1 0 0
vn 0 1 0
usemtl m
f 1//1 2//2 3
`, "newmtl m\n")

	b, err := Build(g, lib, geometry.Identity())
	require.NoError(t, err)

	assert.Equal(t, geometry.NewVector3(1, 0, 0), b.Normal(0))
	assert.Equal(t, geometry.NewVector3(0, 1, 0), b.Normal(1))
	assert.Equal(t, geometry.NewVector3(0, 0, 1), b.Normal(2))
}

func TestBuildAppliesTransform(t *testing.T) {
	g, lib := parse(t, "v 1 1 1\nv 3 1 1\nv 1 5 1\nusemtl m\nf 1 2 3\n", "newmtl m\n")

	xf := geometry.Transform{Translation: geometry.NewVector3(-1, -1, -1), Scale: 2}
	b, err := Build(g, lib, xf)
	require.NoError(t, err)

	assert.Equal(t, geometry.NewVector3(0, 0, 0), b.Position(0))
	assert.Equal(t, geometry.NewVector3(4, 0, 0), b.Position(1))
	assert.Equal(t, geometry.NewVector3(0, 8, 0), b.Position(2))
}

func TestBuildNormalizedBounds(t *testing.T) {
	g, lib := parse(t, `v -3 2 10
v 7 4 11
v 1 9 12
v 0 0 13
usemtl m
f 1 2 3 4
`, "newmtl m\n")

	const target = 5
	xf, err := geometry.NormalizeTransform(g.Bounds, target)
	require.NoError(t, err)

	b, err := Build(g, lib, xf)
	require.NoError(t, err)

	bounds := b.Bounds()
	center := bounds.Center()
	assert.InDelta(t, 0, center.X, 1e-5)
	assert.InDelta(t, 0, center.Y, 1e-5)
	assert.InDelta(t, 0, center.Z, 1e-5)
	assert.InDelta(t, target, bounds.MaxDimension(), 1e-5)
}

func TestBuildSkipsShortFaces(t *testing.T) {
	g, lib := parse(t, "v 0 0 0\nv 1 0 0\nv 0 1 0\nusemtl m\nf 1 2 3\n", "newmtl m\n")
	g.Faces = append(g.Faces, obj.Face{Vertices: []obj.FaceVertex{{Vertex: 0}, {Vertex: 1}}})

	b, err := Build(g, lib, geometry.Identity())
	require.NoError(t, err)
	assert.Equal(t, 3, b.VertexCount)
	assert.Equal(t, 3, b.IndexCount)
}

func TestBuildMaterialErrors(t *testing.T) {
	g, lib := parse(t, "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n", "newmtl m\n")
	_, err := Build(g, lib, geometry.Identity())
	assert.ErrorIs(t, err, ErrNoMaterial)

	g, lib = parse(t, "v 0 0 0\nv 1 0 0\nv 0 1 0\nusemtl blue\nf 1 2 3\n", "newmtl m\n")
	_, err = Build(g, lib, geometry.Identity())
	assert.ErrorIs(t, err, mtl.ErrMaterialNotFound)
	var nf *mtl.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "blue", nf.Name)
}

func TestBuildIndexOutOfRange(t *testing.T) {
	cases := map[string]struct {
		text  string
		table string
	}{
		"vertex":   {"v 0 0 0\nv 1 0 0\nv 0 1 0\nusemtl m\nf 1 2 4\n", "vertex"},
		"zero":     {"v 0 0 0\nv 1 0 0\nv 0 1 0\nusemtl m\nf 0 1 2\n", "vertex"},
		"normal":   {"v 0 0 0\nv 1 0 0\nv 0 1 0\nvn 0 0 1\nusemtl m\nf 1//1 2//2 3//1\n", "normal"},
		"texcoord": {"v 0 0 0\nv 1 0 0\nv 0 1 0\nusemtl m\nf 1/1 2 3\n", "texcoord"},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			g, lib := parse(t, c.text, "newmtl m\n")
			_, err := Build(g, lib, geometry.Identity())
			var oor *IndexOutOfRangeError
			require.ErrorAs(t, err, &oor)
			assert.Equal(t, c.table, oor.Table)
		})
	}
}

func TestBuildTooManyVertices(t *testing.T) {
	g := obj.NewGeometry()
	g.AddVertex(geometry.NewVector3(0, 0, 0))
	g.AddVertex(geometry.NewVector3(1, 0, 0))
	g.AddVertex(geometry.NewVector3(0, 1, 0))
	tri := obj.Face{Vertices: []obj.FaceVertex{{Vertex: 0}, {Vertex: 1}, {Vertex: 2}}, Material: "m"}
	for i := 0; i < MaxVertices/3+1; i++ {
		g.AddFace(tri)
	}
	lib, err := mtl.Parse("newmtl m\n")
	require.NoError(t, err)

	_, err = Build(g, lib, geometry.Identity())
	assert.ErrorIs(t, err, ErrTooManyVertices)
}

func TestBuildAtVertexLimit(t *testing.T) {
	g := obj.NewGeometry()
	for i := 0; i < 4; i++ {
		g.AddVertex(geometry.NewVector3(float32(i), float32(i%2), 0))
	}
	quad := obj.Face{Vertices: []obj.FaceVertex{{Vertex: 0}, {Vertex: 1}, {Vertex: 2}, {Vertex: 3}}, Material: "m"}
	for i := 0; i < MaxVertices/4; i++ {
		g.AddFace(quad)
	}
	lib, err := mtl.Parse("newmtl m\n")
	require.NoError(t, err)

	b, err := Build(g, lib, geometry.Identity())
	require.NoError(t, err)
	assert.Equal(t, MaxVertices, b.VertexCount)
	assert.Equal(t, uint16(math.MaxUint16), b.Indices[len(b.Indices)-1])
}
