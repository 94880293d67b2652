package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrDegenerateBounds is returned when a bounding box cannot be normalized
// because it is empty or its largest dimension is zero.
var ErrDegenerateBounds = errors.New("degenerate bounding box")

// Transform is a translation followed by a uniform scale:
// out = (in + Translation) * Scale.
type Transform struct {
	Translation Vector3
	Scale       float32
}

// Identity returns the transform that leaves points unchanged
func Identity() Transform {
	return Transform{Scale: 1}
}

// NormalizeTransform derives the transform that moves the center of bounds
// to the origin and scales its largest dimension to targetSize.
func NormalizeTransform(bounds BoundingBox, targetSize float32) (Transform, error) {
	if !bounds.Valid {
		return Transform{}, fmt.Errorf("%w: no points", ErrDegenerateBounds)
	}
	maxDim := bounds.MaxDimension()
	if maxDim <= 0 || !bounds.Size().IsFinite() {
		return Transform{}, fmt.Errorf("%w: largest dimension is %v", ErrDegenerateBounds, maxDim)
	}
	scale := targetSize / maxDim
	if math.IsInf(float64(scale), 0) || math.IsNaN(float64(scale)) {
		return Transform{}, fmt.Errorf("%w: scale %v", ErrDegenerateBounds, scale)
	}
	return Transform{
		Translation: bounds.Center().Neg(),
		Scale:       scale,
	}, nil
}

// Apply transforms a point. Translation is applied before scale.
func (t Transform) Apply(p Vector3) Vector3 {
	return FromVec3(p.Vec3().Add(t.Translation.Vec3()).Mul(t.Scale))
}

// ApplyBounds transforms both corners of a bounding box
func (t Transform) ApplyBounds(b BoundingBox) BoundingBox {
	if !b.Valid {
		return b
	}
	return BoundsOf(t.Apply(b.Min), t.Apply(b.Max))
}

// Matrix returns the equivalent model matrix, Scale * Translate
func (t Transform) Matrix() mgl32.Mat4 {
	tr := mgl32.Translate3D(t.Translation.X, t.Translation.Y, t.Translation.Z)
	return mgl32.Scale3D(t.Scale, t.Scale, t.Scale).Mul4(tr)
}

func (t Transform) String() string {
	return fmt.Sprintf("translate %s, scale %.6f", t.Translation, t.Scale)
}
