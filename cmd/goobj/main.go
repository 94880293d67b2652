package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/philipparndt/goobj/internal/config"
	"github.com/philipparndt/goobj/internal/logging"
	"github.com/philipparndt/goobj/version"
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
	targetSize float32

	cfg    = config.Default()
	logger = logging.Discard()
)

var rootCmd = &cobra.Command{
	Use:   "goobj",
	Short: "Convert OBJ/MTL models into GPU-ready vertex and index buffers",
	Long: `goobj parses Wavefront OBJ geometry and MTL material libraries, normalizes
the model to a fixed display size and converts it into flat position, color,
normal and 16-bit index buffers ready for upload to a rendering pipeline.`,
	Version:           version.GetFullVersion(),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "Config file (default ./"+config.DefaultFile+" if present)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	flags.Float32Var(&targetSize, "size", 0, "Largest dimension of the normalized model (overrides config)")
}

func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("size") {
		loaded.TargetSize = targetSize
	}
	if err := loaded.Validate(); err != nil {
		return err
	}

	level, err := logging.ParseLevel(loaded.LogLevel)
	if err != nil {
		return err
	}
	if verbose {
		level = slog.LevelDebug
	}

	cfg = loaded
	logger = logging.New(cmd.ErrOrStderr(), level)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
