// Package viewer draws converted render buffers into images. It stands in
// for a GPU when previewing a model from the command line.
package viewer

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/philipparndt/goobj/pkg/raw"
	"golang.org/x/image/draw"
)

// Options controls how a model is drawn
type Options struct {
	Width, Height int
	// Camera orbit angles in degrees
	RotateX, RotateY float64
	// Each output pixel averages Supersample x Supersample samples
	Supersample int
	Background  color.RGBA
	// Outline every triangle in addition to filling it
	Wireframe bool
}

// DefaultOptions returns a 800x600 view from slightly above
func DefaultOptions() Options {
	return Options{
		Width:       800,
		Height:      600,
		RotateX:     20,
		RotateY:     -30,
		Supersample: 2,
		Background:  color.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff},
	}
}

// Render draws the buffers as seen by a camera orbiting their bounding box.
// Triangles are filled with the color of their first vertex, darkened with
// distance.
func Render(b *raw.Buffers, opts Options) *image.RGBA {
	ss := max(opts.Supersample, 1)
	width, height := opts.Width*ss, opts.Height*ss
	c := newCanvas(width, height, opts.Background)

	bounds := b.Bounds()
	cam := NewCamera(bounds)
	cam.Rotate(opts.RotateX*math.Pi/180, opts.RotateY*math.Pi/180)

	projected := make([]screenPoint, b.VertexCount)
	for i := range projected {
		x, y, z := cam.Project(b.Position(i), float64(width), float64(height))
		projected[i] = screenPoint{X: x, Y: y, Z: z}
	}

	near := float64(cam.Distance) - float64(bounds.Diagonal())/2
	far := float64(cam.Distance) + float64(bounds.Diagonal())/2

	for t := 0; t < b.TriangleCount(); t++ {
		tri := b.Triangle(t)
		p0, p1, p2 := projected[tri[0]], projected[tri[1]], projected[tri[2]]
		if p0.Z <= 0 || p1.Z <= 0 || p2.Z <= 0 {
			continue
		}

		col := shade(b.Color(int(tri[0])), (p0.Z+p1.Z+p2.Z)/3, near, far)
		c.fillTriangle(p0, p1, p2, col)
	}

	if opts.Wireframe {
		outline := color.RGBA{R: 0, G: 0, B: 0, A: 0xff}
		for t := 0; t < b.TriangleCount(); t++ {
			tri := b.Triangle(t)
			for k := 0; k < 3; k++ {
				a, e := projected[tri[k]], projected[tri[(k+1)%3]]
				c.line(int(a.X), int(a.Y), int(e.X), int(e.Y), outline)
			}
		}
	}

	if ss == 1 {
		return c.img
	}
	out := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.CatmullRom.Scale(out, out.Bounds(), c.img, c.img.Bounds(), draw.Src, nil)
	return out
}

// shade converts a [0,1] RGBA color to 8 bits and fades it with depth
func shade(rgba [4]float32, depth, near, far float64) color.RGBA {
	fade := 1.0
	if far > near {
		t := (depth - near) / (far - near)
		fade = 1 - 0.5*math.Max(0, math.Min(1, t))
	}
	to8 := func(v float32, f float64) uint8 {
		return uint8(math.Round(math.Max(0, math.Min(1, float64(v)*f)) * 255))
	}
	return color.RGBA{
		R: to8(rgba[0], fade),
		G: to8(rgba[1], fade),
		B: to8(rgba[2], fade),
		A: to8(rgba[3], 1),
	}
}

// ParseColor parses a "#rrggbb" or "#rrggbbaa" color
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// WritePNG encodes the image as PNG
func WritePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// SavePNG writes the image to a PNG file
func SavePNG(filename string, img image.Image) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := WritePNG(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return f.Close()
}
