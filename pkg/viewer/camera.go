package viewer

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/philipparndt/goobj/pkg/geometry"
)

// Camera orbits around a target point
type Camera struct {
	Target    geometry.Vector3
	Up        geometry.Vector3
	FOV       float32 // vertical field of view in radians
	Distance  float32
	RotationX float64 // pitch in radians
	RotationY float64 // yaw in radians
}

// NewCamera creates a camera framing the given bounding box
func NewCamera(bbox geometry.BoundingBox) *Camera {
	distance := bbox.MaxDimension() * 2
	if distance <= 0 {
		distance = 1
	}
	return &Camera{
		Target:   bbox.Center(),
		Up:       geometry.NewVector3(0, 1, 0),
		FOV:      mgl32.DegToRad(45),
		Distance: distance,
	}
}

// Position returns the eye position from the rotation angles
func (c *Camera) Position() geometry.Vector3 {
	x := float64(c.Distance) * math.Cos(c.RotationX) * math.Sin(c.RotationY)
	y := float64(c.Distance) * math.Sin(c.RotationX)
	z := float64(c.Distance) * math.Cos(c.RotationX) * math.Cos(c.RotationY)
	return c.Target.Add(geometry.NewVector3(float32(x), float32(y), float32(z)))
}

// Rotate rotates the camera by the given angles
func (c *Camera) Rotate(deltaX, deltaY float64) {
	c.RotationX += deltaX
	c.RotationY += deltaY

	// Clamp X rotation to prevent gimbal lock
	maxAngle := math.Pi/2 - 0.1
	c.RotationX = math.Max(-maxAngle, math.Min(maxAngle, c.RotationX))
}

// Zoom changes the camera distance
func (c *Camera) Zoom(delta float32) {
	c.Distance *= 1 + delta
	if c.Distance < 0.1 {
		c.Distance = 0.1
	}
}

// View returns the view matrix
func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position().Vec3(), c.Target.Vec3(), c.Up.Vec3())
}

// Projection returns the perspective projection for the given aspect ratio
func (c *Camera) Projection(aspect float32) mgl32.Mat4 {
	near := c.Distance / 100
	far := c.Distance * 10
	return mgl32.Perspective(c.FOV, aspect, near, far)
}

// Project maps a world point to screen coordinates. The third value is the
// distance in front of the camera; points behind it have depth <= 0.
func (c *Camera) Project(point geometry.Vector3, width, height float64) (x, y, depth float64) {
	view := c.View()
	eye := view.Mul4x1(point.Vec3().Vec4(1))
	depth = float64(-eye[2])

	clip := c.Projection(float32(width / height)).Mul4x1(eye)
	w := float64(clip[3])
	if w <= 1e-6 {
		w = 1e-6
	}
	ndcX := float64(clip[0]) / w
	ndcY := float64(clip[1]) / w

	x = (ndcX + 1) / 2 * width
	y = (1 - ndcY) / 2 * height
	return x, y, depth
}
