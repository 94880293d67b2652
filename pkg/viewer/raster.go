package viewer

import (
	"image"
	"image/color"
	"math"
)

// screenPoint is a projected vertex: pixel coordinates plus view depth
type screenPoint struct {
	X, Y, Z float64
}

// canvas is an RGBA image with a depth buffer. Smaller depth is closer.
type canvas struct {
	img   *image.RGBA
	depth []float64
}

func newCanvas(width, height int, background color.RGBA) *canvas {
	c := &canvas{
		img:   image.NewRGBA(image.Rect(0, 0, width, height)),
		depth: make([]float64, width*height),
	}
	for i := range c.depth {
		c.depth[i] = math.Inf(1)
	}
	for i := 0; i < len(c.img.Pix); i += 4 {
		c.img.Pix[i+0] = background.R
		c.img.Pix[i+1] = background.G
		c.img.Pix[i+2] = background.B
		c.img.Pix[i+3] = background.A
	}
	return c
}

// edge is twice the signed area of triangle (a, b, p)
func edge(a, b screenPoint, px, py float64) float64 {
	return (b.X-a.X)*(py-a.Y) - (b.Y-a.Y)*(px-a.X)
}

// fillTriangle rasterizes a triangle with depth testing, sampling pixel
// centers. Both windings are drawn.
func (c *canvas) fillTriangle(a, b, p screenPoint, col color.RGBA) {
	area := edge(a, b, p.X, p.Y)
	if area == 0 {
		return
	}

	bounds := c.img.Bounds()
	minX := max(bounds.Min.X, int(math.Floor(min(a.X, b.X, p.X))))
	maxX := min(bounds.Max.X-1, int(math.Ceil(max(a.X, b.X, p.X))))
	minY := max(bounds.Min.Y, int(math.Floor(min(a.Y, b.Y, p.Y))))
	maxY := min(bounds.Max.Y-1, int(math.Ceil(max(a.Y, b.Y, p.Y))))

	width := bounds.Dx()
	for y := minY; y <= maxY; y++ {
		py := float64(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float64(x) + 0.5

			// Barycentric weights, normalized so they sum to one
			w0 := edge(b, p, px, py) / area
			w1 := edge(p, a, px, py) / area
			w2 := edge(a, b, px, py) / area
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}

			z := w0*a.Z + w1*b.Z + w2*p.Z
			idx := y*width + x
			if z < c.depth[idx] {
				c.depth[idx] = z
				c.img.SetRGBA(x, y, col)
			}
		}
	}
}

// line draws a segment with Bresenham's algorithm, ignoring depth
func (c *canvas) line(x1, y1, x2, y2 int, col color.RGBA) {
	bounds := c.img.Bounds()

	dx := abs(x2 - x1)
	dy := -abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}

	err := dx + dy
	for {
		if (image.Point{X: x1, Y: y1}).In(bounds) {
			c.img.SetRGBA(x1, y1, col)
		}
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x1 += sx
		}
		if e2 <= dx {
			err += dx
			y1 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
