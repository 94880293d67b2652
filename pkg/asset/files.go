package asset

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// LoadFiles reads the given files into a bundle. When no material file is
// among them, a sibling file with the object's base name and an .mtl
// extension is added if it exists.
func LoadFiles(log *slog.Logger, paths ...string) (Bundle, error) {
	files := make([]File, 0, len(paths)+1)
	hasMaterial := false

	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return Bundle{}, fmt.Errorf("failed to read %s: %w", p, err)
		}
		files = append(files, File{Name: p, Data: data})
		if Classify(p) == KindMaterial {
			hasMaterial = true
		}
	}

	if !hasMaterial {
		if sibling, ok := siblingMaterial(paths); ok {
			data, err := os.ReadFile(sibling)
			switch {
			case err == nil:
				files = append(files, File{Name: sibling, Data: data})
			case !errors.Is(err, fs.ErrNotExist):
				return Bundle{}, fmt.Errorf("failed to read %s: %w", sibling, err)
			}
		}
	}

	return NewBundle(files, log)
}

// Paths returns the paths LoadFiles reads for the given arguments, including
// an existing sibling material file.
func Paths(paths ...string) []string {
	out := append([]string(nil), paths...)
	for _, p := range paths {
		if Classify(p) == KindMaterial {
			return out
		}
	}
	if sibling, ok := siblingMaterial(paths); ok {
		if _, err := os.Stat(sibling); err == nil {
			out = append(out, sibling)
		}
	}
	return out
}

func siblingMaterial(paths []string) (string, bool) {
	for _, p := range paths {
		if Classify(p) == KindObject {
			return strings.TrimSuffix(p, filepath.Ext(p)) + ".mtl", true
		}
	}
	return "", false
}
