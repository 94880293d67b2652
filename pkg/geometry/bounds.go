package geometry

// BoundingBox represents an axis-aligned bounding box.
// The zero value is empty; the first Extend sets both corners to the point.
type BoundingBox struct {
	Min   Vector3
	Max   Vector3
	Valid bool
}

// NewBoundingBox creates a new, empty bounding box
func NewBoundingBox() BoundingBox {
	return BoundingBox{}
}

// BoundsOf returns the bounding box of the given points
func BoundsOf(points ...Vector3) BoundingBox {
	var b BoundingBox
	for _, p := range points {
		b.Extend(p)
	}
	return b
}

// Extend expands the bounding box to include a point
func (b *BoundingBox) Extend(point Vector3) {
	if !b.Valid {
		b.Min = point
		b.Max = point
		b.Valid = true
		return
	}
	b.Min = b.Min.Min(point)
	b.Max = b.Max.Max(point)
}

// Size returns the dimensions of the bounding box
func (b BoundingBox) Size() Vector3 {
	return b.Max.Sub(b.Min)
}

// Center returns the center point of the bounding box
func (b BoundingBox) Center() Vector3 {
	return Vector3{
		X: (b.Min.X + b.Max.X) / 2,
		Y: (b.Min.Y + b.Max.Y) / 2,
		Z: (b.Min.Z + b.Max.Z) / 2,
	}
}

// MaxDimension returns the largest extent along any axis
func (b BoundingBox) MaxDimension() float32 {
	return b.Size().MaxComponent()
}

// Diagonal returns the length of the bounding box diagonal
func (b BoundingBox) Diagonal() float32 {
	return b.Size().Length()
}

// Volume returns the volume of the bounding box
func (b BoundingBox) Volume() float32 {
	size := b.Size()
	return size.X * size.Y * size.Z
}
