// Package asset gathers the OBJ and MTL texts that make up a model and runs
// them through the parse and build pipeline.
package asset

import (
	"errors"
	"log/slog"
	"path"
	"strings"

	"github.com/philipparndt/goobj/internal/logging"
)

// ErrNoObject is returned for a bundle without an OBJ file
var ErrNoObject = errors.New("no OBJ file in asset")

// Kind classifies an asset file
type Kind int

const (
	KindOther Kind = iota
	KindObject
	KindMaterial
)

func (k Kind) String() string {
	switch k {
	case KindObject:
		return "obj"
	case KindMaterial:
		return "mtl"
	default:
		return "other"
	}
}

// Classify returns the kind of a file from its extension, ignoring case
func Classify(name string) Kind {
	switch strings.ToLower(path.Ext(name)) {
	case ".obj":
		return KindObject
	case ".mtl":
		return KindMaterial
	default:
		return KindOther
	}
}

// File is a named file body held in memory
type File struct {
	Name string
	Data []byte
}

// Bundle is one object file and the material files that go with it, in the
// order they should be merged.
type Bundle struct {
	Object    File
	Materials []File
}

// NewBundle sorts files into a bundle. The first OBJ file wins; further OBJ
// files and files of other kinds are skipped.
func NewBundle(files []File, log *slog.Logger) (Bundle, error) {
	if log == nil {
		log = logging.Discard()
	}

	var b Bundle
	found := false
	for _, f := range files {
		switch Classify(f.Name) {
		case KindObject:
			if found {
				log.Warn("asset has more than one OBJ file, ignoring", "file", f.Name)
				continue
			}
			b.Object = f
			found = true
		case KindMaterial:
			b.Materials = append(b.Materials, f)
		default:
			log.Debug("skipping file", "file", f.Name)
		}
	}

	if !found {
		return Bundle{}, ErrNoObject
	}
	return b, nil
}

// Names returns the names of all files in the bundle, object first
func (b Bundle) Names() []string {
	names := []string{b.Object.Name}
	for _, m := range b.Materials {
		names = append(names, m.Name)
	}
	return names
}
