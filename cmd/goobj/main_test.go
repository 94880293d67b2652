package main

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/philipparndt/goobj/pkg/asset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const redTriangleObj = `mtllib red.mtl
v 0 0 0
v 1 0 0
v 0 1 0
vn 0 0 1
usemtl red
f 1//1 2//1 3//1
`

const redTriangleMtl = `newmtl red
Kd 1 0 0
`

func writeModel(t *testing.T) (objPath, mtlPath string) {
	t.Helper()
	dir := t.TempDir()
	objPath = filepath.Join(dir, "red.obj")
	mtlPath = filepath.Join(dir, "red.mtl")
	require.NoError(t, os.WriteFile(objPath, []byte(redTriangleObj), 0o644))
	require.NoError(t, os.WriteFile(mtlPath, []byte(redTriangleMtl), 0o644))
	return objPath, mtlPath
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeObjOnly(t *testing.T) string {
	t.Helper()
	objPath := filepath.Join(t.TempDir(), "lonely.obj")
	require.NoError(t, os.WriteFile(objPath, []byte(redTriangleObj), 0o644))
	return objPath
}

func TestInfoCommand(t *testing.T) {
	objPath, _ := writeModel(t)

	out, err := execute(t, "info", objPath)
	require.NoError(t, err)

	assert.Contains(t, out, "Vertices: 3")
	assert.Contains(t, out, "Faces: 1")
	assert.Contains(t, out, "Materials Defined: 1")
	assert.Contains(t, out, "Indices: 3")
}

func TestBuildCommandDump(t *testing.T) {
	objPath, mtlPath := writeModel(t)
	t.Cleanup(func() { buildDump = 0 })

	out, err := execute(t, "build", "--dump", "3", objPath, mtlPath)
	require.NoError(t, err)

	assert.Contains(t, out, "Triangles: 1")
	assert.Contains(t, out, "(1.00, 0.00, 0.00, 1.00)")
	assert.Contains(t, out, "0 1 2")
}

func TestBuildCommandSizeFlag(t *testing.T) {
	objPath, _ := writeModel(t)
	t.Cleanup(func() {
		targetSize = 0
		rootCmd.PersistentFlags().Lookup("size").Changed = false
	})

	out, err := execute(t, "build", "--size", "10", objPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Vertices: 3")
}

func TestBuildCommandMissingMaterial(t *testing.T) {
	objPath := writeObjOnly(t)

	_, err := execute(t, "build", objPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "red")
}

func TestRenderCommand(t *testing.T) {
	objPath, _ := writeModel(t)
	output := filepath.Join(t.TempDir(), "out.png")
	t.Cleanup(func() { renderOutput = "model.png" })

	out, err := execute(t, "render", "-o", output, "--width", "40", "--height", "30", objPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote")

	f, err := os.Open(output)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 40, img.Bounds().Dx())
	assert.Equal(t, 30, img.Bounds().Dy())
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "goobj dev")
}

func TestInfoCommandWithoutMaterials(t *testing.T) {
	objPath := writeObjOnly(t)

	out, err := execute(t, "info", objPath)
	require.NoError(t, err)

	assert.Contains(t, out, "Vertices: 3")
	assert.Contains(t, out, "red")
	assert.Contains(t, out, "Render Buffers: unavailable")
}

func TestEdgesCommand(t *testing.T) {
	objPath, _ := writeModel(t)
	t.Cleanup(func() {
		edgesLongest = false
		edgesCount = 10
	})

	out, err := execute(t, "edges", "--longest", "-n", "1", objPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Top 1 Longest Edges")
	assert.Contains(t, out, "Total edges in model: 3")
}

func TestEdgesCommandWithoutMaterials(t *testing.T) {
	objPath := writeObjOnly(t)

	out, err := execute(t, "edges", objPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Total edges in model: 3")
}

func TestFacesCommand(t *testing.T) {
	objPath, _ := writeModel(t)
	t.Cleanup(func() { faceLargest = false })

	out, err := execute(t, "faces", "--largest", objPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Total faces: 1")
	assert.Contains(t, out, "0.500000")
}

func TestNegativeCountIsRejected(t *testing.T) {
	objPath, _ := writeModel(t)
	t.Cleanup(func() {
		edgesLongest = false
		edgesCount = 10
		faceCount = 10
	})

	_, err := execute(t, "edges", "--longest", "-n", "-1", objPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "count must not be negative")

	_, err = execute(t, "faces", "-n", "-1", objPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "count must not be negative")
}

func TestSaveFilesKeepsRelativePaths(t *testing.T) {
	dir := t.TempDir()
	files := []asset.File{
		{Name: "a/mat.mtl", Data: []byte("newmtl a\n")},
		{Name: "b/mat.mtl", Data: []byte("newmtl b\n")},
	}
	require.NoError(t, saveFiles(dir, files))

	data, err := os.ReadFile(filepath.Join(dir, "a", "mat.mtl"))
	require.NoError(t, err)
	assert.Equal(t, "newmtl a\n", string(data))
	data, err = os.ReadFile(filepath.Join(dir, "b", "mat.mtl"))
	require.NoError(t, err)
	assert.Equal(t, "newmtl b\n", string(data))
}

func TestSaveFilesRejectsUnsafeNames(t *testing.T) {
	tests := []struct {
		name  string
		files []asset.File
	}{
		{"parent directory", []asset.File{{Name: "../evil.obj"}}},
		{"absolute", []asset.File{{Name: "/tmp/evil.obj"}}},
		{"collision", []asset.File{{Name: "a/./m.mtl"}, {Name: "a/m.mtl"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			assert.Error(t, saveFiles(dir, tt.files))

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			assert.Empty(t, entries)
		})
	}
}

const redTriangleManifest = `{
  "displayName": "Red Triangle",
  "authorName": "Tester",
  "formats": [{
    "formatType": "OBJ",
    "root": {"relativePath": "models/red.obj", "url": "%[1]s/red.obj"},
    "resources": [{"relativePath": "materials/red.mtl", "url": "%[1]s/red.mtl"}]
  }]
}`

func TestFetchCommand(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/asset.json":
			fmt.Fprintf(w, redTriangleManifest, srv.URL)
		case "/red.obj":
			fmt.Fprint(w, redTriangleObj)
		case "/red.mtl":
			fmt.Fprint(w, redTriangleMtl)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	dir := t.TempDir()
	t.Cleanup(func() { fetchDir = "" })

	out, err := execute(t, "fetch", "--dir", dir, srv.URL+"/asset.json")
	require.NoError(t, err)
	assert.Contains(t, out, "Asset: Red Triangle by Tester")
	assert.Contains(t, out, "Files: 2")

	assert.FileExists(t, filepath.Join(dir, "models", "red.obj"))
	assert.FileExists(t, filepath.Join(dir, "materials", "red.mtl"))
}

func TestWatchCommandRendersOnStart(t *testing.T) {
	objPath, _ := writeModel(t)
	output := filepath.Join(t.TempDir(), "watch.png")
	t.Cleanup(func() { watchOutput = "" })

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs([]string{"watch", "-o", output, "--width", "20", "--height", "10", objPath})
	require.NoError(t, rootCmd.ExecuteContext(ctx))

	assert.Contains(t, out.String(), "Watching 2 file(s)")
	assert.FileExists(t, output)
}
