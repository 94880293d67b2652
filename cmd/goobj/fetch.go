package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/philipparndt/goobj/pkg/asset"
	"github.com/philipparndt/goobj/pkg/viewer"
	"github.com/spf13/cobra"
)

var (
	fetchDir    string
	fetchRender string
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <manifest-url>",
	Short: "Download a remote OBJ asset and convert it",
	Long: `Download an asset manifest, fetch the files of its OBJ format
concurrently and convert them. The files can be saved to a directory and the
result rendered to a PNG file.`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	addRenderFlags(fetchCmd)
	fetchCmd.Flags().StringVarP(&fetchDir, "dir", "d", "", "Save the downloaded files into this directory")
	fetchCmd.Flags().StringVarP(&fetchRender, "output", "o", "", "Render the model to this PNG file")
}

func runFetch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Fetch.Timeout.Duration)
	defer cancel()

	fetcher := asset.NewFetcher(&http.Client{}, logger)
	manifest, files, err := fetcher.FetchManifest(ctx, args[0])
	if err != nil {
		return err
	}

	if fetchDir != "" {
		if err := saveFiles(fetchDir, files); err != nil {
			return err
		}
	}

	bundle, err := asset.NewBundle(files, logger)
	if err != nil {
		return err
	}
	a, err := asset.Process(bundle, cfg.TargetSize)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Asset: %s\n", manifest.Attribution())
	fmt.Fprintf(out, "Files: %d\n", len(files))
	for _, name := range bundle.Names() {
		fmt.Fprintf(out, "  %s\n", name)
	}
	fmt.Fprintf(out, "Buffers: %s\n", a.Buffers)

	if fetchRender == "" {
		return nil
	}
	opts, err := renderOptions(cmd)
	if err != nil {
		return err
	}
	if err := viewer.SavePNG(fetchRender, viewer.Render(a.Buffers, opts)); err != nil {
		return fmt.Errorf("failed to write %s: %w", fetchRender, err)
	}
	fmt.Fprintf(out, "Wrote %s\n", fetchRender)
	return nil
}

// saveFiles writes files under dir, keeping their relative paths. Names
// that are absolute, leave dir or collide after cleaning are rejected.
func saveFiles(dir string, files []asset.File) error {
	seen := make(map[string]string, len(files))
	for _, f := range files {
		rel := filepath.Clean(filepath.FromSlash(f.Name))
		if !filepath.IsLocal(rel) {
			return fmt.Errorf("refusing to save %q outside %s", f.Name, dir)
		}
		if prev, ok := seen[rel]; ok {
			return fmt.Errorf("files %q and %q both map to %s", prev, f.Name, rel)
		}
		seen[rel] = f.Name
	}

	for _, f := range files {
		path := filepath.Join(dir, filepath.Clean(filepath.FromSlash(f.Name)))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(path, f.Data, 0o644); err != nil {
			return fmt.Errorf("failed to save %s: %w", f.Name, err)
		}
		logger.Debug("saved", "file", path)
	}
	return nil
}
