package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/philipparndt/goobj/pkg/asset"
	"github.com/philipparndt/goobj/pkg/viewer"
	"github.com/philipparndt/goobj/pkg/watcher"
	"github.com/spf13/cobra"
)

var watchOutput string

var watchCmd = &cobra.Command{
	Use:   "watch <file.obj> [file.mtl...]",
	Short: "Rebuild the model whenever its files change",
	Long: `Watch the OBJ file and its material libraries. Every change reloads
and converts the model in the background; with --output the result is also
rendered to a PNG file.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	addRenderFlags(watchCmd)
	watchCmd.Flags().StringVarP(&watchOutput, "output", "o", "", "Render each rebuild to this PNG file")
}

func runWatch(cmd *cobra.Command, args []string) error {
	var opts viewer.Options
	if watchOutput != "" {
		o, err := renderOptions(cmd)
		if err != nil {
			return err
		}
		opts = o
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rebuild := func() {
		bundle, err := asset.LoadFiles(logger, args...)
		if err != nil {
			logger.Error("reload failed", "err", err)
			return
		}
		res := <-asset.Start(ctx, bundle, cfg.TargetSize)
		if res.Err != nil {
			logger.Error("rebuild failed", "err", res.Err)
			return
		}
		logger.Info("rebuilt", "vertices", res.Asset.Buffers.VertexCount,
			"triangles", res.Asset.Buffers.TriangleCount())

		if watchOutput == "" {
			return
		}
		img := viewer.Render(res.Asset.Buffers, opts)
		if err := viewer.SavePNG(watchOutput, img); err != nil {
			logger.Error("failed to write image", "file", watchOutput, "err", err)
			return
		}
		logger.Info("rendered", "file", watchOutput)
	}

	fw, err := watcher.NewFileWatcher(cfg.Watch.Debounce.Duration, logger)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fw.Close()

	files := asset.Paths(args...)
	if err := fw.Watch(files, func(changed []string) {
		logger.Info("files changed", "files", changed)
		rebuild()
	}); err != nil {
		return err
	}

	rebuild()
	fmt.Fprintf(cmd.OutOrStdout(), "Watching %d file(s), press Ctrl+C to stop\n", len(files))
	fw.Run(ctx)
	return nil
}
