// Package obj parses the subset of the Wavefront OBJ format made of
// vertices, texture coordinates, normals, faces and material selection.
package obj

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/philipparndt/goobj/pkg/directive"
	"github.com/philipparndt/goobj/pkg/geometry"
)

var (
	// ErrNoVertices is returned for input without any vertex
	ErrNoVertices = errors.New("no vertices found")
	// ErrTooFewFaceVertices is returned for faces with fewer than 3 vertices
	ErrTooFewFaceVertices = errors.New("face must have at least 3 vertices")
	// ErrMissingVertexIndex is returned for a face vertex without a vertex index
	ErrMissingVertexIndex = errors.New("face vertex must have a vertex index")
)

// ParseFile reads and parses an OBJ file
func ParseFile(filename string) (*Geometry, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return Parse(string(data))
}

// ParseReader reads r to the end and parses its contents
func ParseReader(r io.Reader) (*Geometry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read OBJ data: %w", err)
	}
	return Parse(string(data))
}

// Parse parses OBJ text. Any malformed line aborts the parse with a
// *directive.ParseError carrying its line number.
func Parse(text string) (*Geometry, error) {
	g := NewGeometry()
	currentMaterial := ""

	lines, err := directive.Scan(text, func(d directive.Directive) error {
		switch d.Verb {
		case "v":
			v, err := parseVector3(d.Args)
			if err != nil {
				return fmt.Errorf("vertex: %w", err)
			}
			g.AddVertex(v)

		case "vt":
			c, err := directive.Floats(d.Args, 2, false)
			if err != nil {
				return fmt.Errorf("texture coordinate: %w", err)
			}
			g.AddTexCoord(geometry.TexCoord{U: c[0], V: c[1]})

		case "vn":
			n, err := parseVector3(d.Args)
			if err != nil {
				return fmt.Errorf("normal: %w", err)
			}
			g.AddNormal(n)

		case "usemtl":
			currentMaterial = d.Args

		case "f":
			f, err := parseFace(d.Args, currentMaterial)
			if err != nil {
				return fmt.Errorf("face: %w", err)
			}
			g.AddFace(f)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if g.VertexCount() == 0 {
		return nil, &directive.ParseError{Line: lines, Err: ErrNoVertices}
	}
	return g, nil
}

func parseVector3(args string) (geometry.Vector3, error) {
	c, err := directive.Floats(args, 3, true)
	if err != nil {
		return geometry.Vector3{}, err
	}
	return geometry.NewVector3(c[0], c[1], c[2]), nil
}

func parseFace(args, material string) (Face, error) {
	tokens := strings.Fields(args)
	if len(tokens) < 3 {
		return Face{}, fmt.Errorf("%w, got %d", ErrTooFewFaceVertices, len(tokens))
	}

	vertices := make([]FaceVertex, len(tokens))
	for i, tok := range tokens {
		fv, err := parseFaceVertex(tok)
		if err != nil {
			return Face{}, fmt.Errorf("vertex %d (%q): %w", i+1, tok, err)
		}
		vertices[i] = fv
	}
	return Face{Vertices: vertices, Material: material}, nil
}

// parseFaceVertex parses "v", "v/t", "v//n" or "v/t/n" with 1-based indices.
func parseFaceVertex(tok string) (FaceVertex, error) {
	parts := strings.Split(tok, "/")
	if parts[0] == "" {
		return FaceVertex{}, ErrMissingVertexIndex
	}
	v, err := strconv.Atoi(parts[0])
	if err != nil {
		return FaceVertex{}, err
	}

	fv := FaceVertex{Vertex: v - 1}
	if len(parts) >= 2 {
		fv.TexCoord = optionalIndex(parts[1])
	}
	if len(parts) >= 3 {
		fv.Normal = optionalIndex(parts[2])
	}
	return fv, nil
}

// optionalIndex converts a 1-based index component; empty or malformed
// components are Missing.
func optionalIndex(s string) Index {
	i, err := strconv.Atoi(s)
	if err != nil {
		return Missing
	}
	return IndexOf(i - 1)
}
