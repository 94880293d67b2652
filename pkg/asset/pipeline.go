package asset

import (
	"context"
	"fmt"

	"github.com/philipparndt/goobj/pkg/geometry"
	"github.com/philipparndt/goobj/pkg/mtl"
	"github.com/philipparndt/goobj/pkg/obj"
	"github.com/philipparndt/goobj/pkg/raw"
)

// Asset is a fully converted model
type Asset struct {
	Geometry  *obj.Geometry
	Materials *mtl.Library
	Transform geometry.Transform
	Buffers   *raw.Buffers
}

// Result carries the outcome of a background conversion
type Result struct {
	Asset *Asset
	Err   error
}

// Process parses the bundle, merges its materials in order, normalizes the
// geometry to targetSize and builds the render buffers.
func Process(b Bundle, targetSize float32) (*Asset, error) {
	g, err := ParseGeometry(b)
	if err != nil {
		return nil, err
	}

	lib := mtl.NewLibrary()
	for _, m := range b.Materials {
		if err := lib.ParseAndMerge(string(m.Data)); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", m.Name, err)
		}
	}

	xf, err := geometry.NormalizeTransform(g.Bounds, targetSize)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize %s: %w", b.Object.Name, err)
	}

	buffers, err := raw.Build(g, lib, xf)
	if err != nil {
		return nil, fmt.Errorf("failed to convert %s: %w", b.Object.Name, err)
	}

	return &Asset{Geometry: g, Materials: lib, Transform: xf, Buffers: buffers}, nil
}

// ParseGeometry parses only the object file of the bundle. Materials are
// not read, so unresolved usemtl names are not an error.
func ParseGeometry(b Bundle) (*obj.Geometry, error) {
	g, err := obj.Parse(string(b.Object.Data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", b.Object.Name, err)
	}
	return g, nil
}

// Start runs Process in a new goroutine. The returned channel receives
// exactly one Result and is then closed; the receiver owns the asset.
func Start(ctx context.Context, b Bundle, targetSize float32) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		if err := ctx.Err(); err != nil {
			ch <- Result{Err: err}
			return
		}
		a, err := Process(b, targetSize)
		ch <- Result{Asset: a, Err: err}
	}()
	return ch
}
