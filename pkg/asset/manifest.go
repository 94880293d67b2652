package asset

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNoObjFormat is returned for a manifest without an OBJ representation
var ErrNoObjFormat = errors.New("asset has no OBJ format")

// Manifest is the metadata document describing a downloadable asset and
// the formats it is available in.
type Manifest struct {
	Name        string   `json:"name"`
	DisplayName string   `json:"displayName"`
	AuthorName  string   `json:"authorName"`
	Formats     []Format `json:"formats"`
}

// Format is one representation of an asset
type Format struct {
	FormatType string         `json:"formatType"`
	Root       ManifestFile   `json:"root"`
	Resources  []ManifestFile `json:"resources"`
}

// ManifestFile locates one file of a format
type ManifestFile struct {
	RelativePath string `json:"relativePath"`
	URL          string `json:"url"`
}

// Entry is a file to download
type Entry struct {
	Name string
	URL  string
}

// ParseManifest decodes a manifest document
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("could not unmarshal manifest json: %w", err)
	}
	return &m, nil
}

// Attribution returns "<display name> by <author>"
func (m *Manifest) Attribution() string {
	if m.AuthorName == "" {
		return m.DisplayName
	}
	return fmt.Sprintf("%s by %s", m.DisplayName, m.AuthorName)
}

// ObjEntries returns the files of the OBJ format to download: the root file
// followed by the OBJ and MTL resources. Textures are left out.
func (m *Manifest) ObjEntries() ([]Entry, error) {
	for _, f := range m.Formats {
		if f.FormatType != "OBJ" {
			continue
		}
		entries := []Entry{{Name: f.Root.RelativePath, URL: f.Root.URL}}
		for _, r := range f.Resources {
			if Classify(r.RelativePath) != KindOther {
				entries = append(entries, Entry{Name: r.RelativePath, URL: r.URL})
			}
		}
		return entries, nil
	}
	return nil, ErrNoObjFormat
}
