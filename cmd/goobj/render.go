package main

import (
	"fmt"

	"github.com/philipparndt/goobj/pkg/viewer"
	"github.com/spf13/cobra"
)

var (
	renderOutput    string
	renderWidth     int
	renderHeight    int
	renderRotateX   float64
	renderRotateY   float64
	renderWireframe bool
)

var renderCmd = &cobra.Command{
	Use:   "render <file.obj> [file.mtl...]",
	Short: "Render a preview of the converted model to a PNG file",
	Long:  "Convert the model and draw its render buffers with a software rasterizer. Flags override the [render] section of the config file.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	addRenderFlags(renderCmd)
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "model.png", "Output PNG file")
}

func addRenderFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&renderWidth, "width", 0, "Image width in pixels")
	cmd.Flags().IntVar(&renderHeight, "height", 0, "Image height in pixels")
	cmd.Flags().Float64Var(&renderRotateX, "rx", 0, "Camera pitch in degrees")
	cmd.Flags().Float64Var(&renderRotateY, "ry", 0, "Camera yaw in degrees")
	cmd.Flags().BoolVarP(&renderWireframe, "wireframe", "w", false, "Outline triangles")
}

// renderOptions combines the config file with flags set on cmd
func renderOptions(cmd *cobra.Command) (viewer.Options, error) {
	rs := cfg.Render
	bg, err := viewer.ParseColor(rs.Background)
	if err != nil {
		return viewer.Options{}, fmt.Errorf("invalid background: %w", err)
	}

	opts := viewer.Options{
		Width:       rs.Width,
		Height:      rs.Height,
		RotateX:     rs.RotateX,
		RotateY:     rs.RotateY,
		Supersample: rs.Supersample,
		Background:  bg,
		Wireframe:   renderWireframe,
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		opts.Width = renderWidth
	}
	if flags.Changed("height") {
		opts.Height = renderHeight
	}
	if flags.Changed("rx") {
		opts.RotateX = renderRotateX
	}
	if flags.Changed("ry") {
		opts.RotateY = renderRotateY
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return viewer.Options{}, fmt.Errorf("invalid image size %dx%d", opts.Width, opts.Height)
	}
	return opts, nil
}

func runRender(cmd *cobra.Command, args []string) error {
	opts, err := renderOptions(cmd)
	if err != nil {
		return err
	}
	a, err := loadAsset(args)
	if err != nil {
		return err
	}

	img := viewer.Render(a.Buffers, opts)
	if err := viewer.SavePNG(renderOutput, img); err != nil {
		return fmt.Errorf("failed to write %s: %w", renderOutput, err)
	}
	logger.Info("rendered", "file", renderOutput, "width", opts.Width, "height", opts.Height,
		"triangles", a.Buffers.TriangleCount())
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%dx%d, %d triangles)\n",
		renderOutput, opts.Width, opts.Height, a.Buffers.TriangleCount())
	return nil
}
