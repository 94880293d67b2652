// Package mtl reads diffuse colors from Wavefront MTL material libraries.
package mtl

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/philipparndt/goobj/pkg/directive"
)

var (
	// ErrMaterialNotFound matches every *NotFoundError
	ErrMaterialNotFound = errors.New("material not found")
	// ErrNoCurrentMaterial is returned for a Kd directive before any newmtl
	ErrNoCurrentMaterial = errors.New("Kd directive must come after newmtl")
)

// Color is an RGBA color with components in [0, 1]
type Color struct {
	R, G, B, A float32
}

// White is the default diffuse color
var White = Color{R: 1, G: 1, B: 1, A: 1}

// Material is a named surface description. Only the diffuse color is kept.
type Material struct {
	Name    string
	Diffuse Color
}

// NewMaterial creates a material with the default white diffuse color
func NewMaterial(name string) *Material {
	return &Material{Name: name, Diffuse: White}
}

// NotFoundError is returned by Get for unknown material names
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("material not found: %q", e.Name)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrMaterialNotFound
}

// Library maps material names to materials. Definitions from several
// libraries are merged; a later definition replaces an earlier one.
type Library struct {
	materials map[string]*Material
}

// NewLibrary creates an empty library
func NewLibrary() *Library {
	return &Library{materials: make(map[string]*Material)}
}

// Parse creates a library from a single MTL text
func Parse(text string) (*Library, error) {
	lib := NewLibrary()
	if err := lib.ParseAndMerge(text); err != nil {
		return nil, err
	}
	return lib, nil
}

// ParseFile reads an MTL file and merges it into the library
func (l *Library) ParseFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	return l.ParseAndMerge(string(data))
}

// ParseAndMerge parses MTL text and adds its materials to the library.
// Materials declared before a failing line stay in the library.
func (l *Library) ParseAndMerge(text string) error {
	var current *Material

	_, err := directive.Scan(text, func(d directive.Directive) error {
		switch d.Verb {
		case "newmtl":
			current = NewMaterial(d.Args)
			l.materials[current.Name] = current

		case "Kd":
			if current == nil {
				return ErrNoCurrentMaterial
			}
			c, err := directive.Floats(d.Args, 3, false)
			if err != nil {
				return fmt.Errorf("Kd: %w", err)
			}
			current.Diffuse = Color{R: c[0], G: c[1], B: c[2], A: 1}
		}
		return nil
	})
	return err
}

// Get returns the material with the given name
func (l *Library) Get(name string) (*Material, error) {
	m, ok := l.materials[name]
	if !ok {
		return nil, &NotFoundError{Name: name}
	}
	return m, nil
}

// Len returns the number of materials
func (l *Library) Len() int {
	return len(l.materials)
}

// Names returns the material names in sorted order
func (l *Library) Names() []string {
	names := make([]string, 0, len(l.materials))
	for name := range l.materials {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
