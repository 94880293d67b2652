package geometry

// Triangle is three corners in counter-clockwise order
type Triangle struct {
	V1, V2, V3 Vector3
}

// NewTriangle creates a new triangle
func NewTriangle(v1, v2, v3 Vector3) Triangle {
	return Triangle{V1: v1, V2: v2, V3: v3}
}

// Normal computes the unit normal from the winding order
func (t Triangle) Normal() Vector3 {
	edge1 := t.V2.Sub(t.V1)
	edge2 := t.V3.Sub(t.V1)
	return edge1.Cross(edge2).Normalize()
}

// Area returns the surface area of the triangle
func (t Triangle) Area() float32 {
	edge1 := t.V2.Sub(t.V1)
	edge2 := t.V3.Sub(t.V1)
	return edge1.Cross(edge2).Length() / 2
}

// EdgeLengths returns the lengths of all three edges
func (t Triangle) EdgeLengths() [3]float32 {
	return [3]float32{
		t.V1.Distance(t.V2),
		t.V2.Distance(t.V3),
		t.V3.Distance(t.V1),
	}
}

// Perimeter returns the total length of all edges
func (t Triangle) Perimeter() float32 {
	lengths := t.EdgeLengths()
	return lengths[0] + lengths[1] + lengths[2]
}

// Center returns the centroid of the triangle
func (t Triangle) Center() Vector3 {
	return Vector3{
		X: (t.V1.X + t.V2.X + t.V3.X) / 3,
		Y: (t.V1.Y + t.V2.Y + t.V3.Y) / 3,
		Z: (t.V1.Z + t.V2.Z + t.V3.Z) / 3,
	}
}

// FanTriangles splits a convex polygon into a triangle fan pivoting on the
// first corner: (0,1,2), (0,2,3), ..., (0,n-2,n-1).
// Polygons with fewer than three corners yield nothing.
func FanTriangles(polygon []Vector3) []Triangle {
	if len(polygon) < 3 {
		return nil
	}
	tris := make([]Triangle, 0, len(polygon)-2)
	for i := 1; i+1 < len(polygon); i++ {
		tris = append(tris, NewTriangle(polygon[0], polygon[i], polygon[i+1]))
	}
	return tris
}
