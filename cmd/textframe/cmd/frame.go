package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/MeKo-Tech/textframe/internal/config"
	"github.com/MeKo-Tech/textframe/internal/engine"
	"github.com/MeKo-Tech/textframe/internal/frame"
	"github.com/MeKo-Tech/textframe/internal/processor"
	"github.com/MeKo-Tech/textframe/internal/projector"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	outputFormatJSON = "json"
	outputFormatCSV  = "csv"
	outputFormatText = "text"
)

// frameCmd represents the frame command.
var frameCmd = &cobra.Command{
	Use:   "frame <image>...",
	Short: "Detect text in image files treated as camera frames",
	Long: `Process one or more image files as camera frames.

Each file is read as a frame captured in the sensor orientation given by
--orientation. When --output-orientation is set the detection runs in the
orientation that reaches it, otherwise the sensor orientation is used.

Supported formats: JPEG, PNG, BMP, TIFF, WebP

Examples:
  textframe frame photo.jpg
  textframe frame photo.jpg --orientation right --output-orientation portrait
  textframe frame *.png --format csv --output results.csv`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if err := cfg.Validate(); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if cfg.Output.File != "" {
			f, err := os.Create(cfg.Output.File)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer func() { _ = f.Close() }()
			out = f
		}

		eng, err := engine.New(cfg.ToEngineConfig())
		if err != nil {
			return fmt.Errorf("failed to create engine: %w", err)
		}
		return runFrames(out, cfg, eng, args)
	},
}

// runFrames processes every path with eng and writes the results to out in
// the configured format.
func runFrames(out io.Writer, cfg *config.Config, eng engine.Engine, paths []string) error {
	sensor, err := cfg.SensorOrientation()
	if err != nil {
		return err
	}
	if cfg.UnknownOutputOrientation() {
		slog.Warn("Unknown output orientation, frames resolve as portrait",
			"output_orientation", cfg.Frame.OutputOrientation)
	}
	format := strings.ToLower(cfg.Output.Format)
	if format == "" {
		format = outputFormatJSON
	}

	proc, err := processor.New(eng)
	if err != nil {
		return err
	}

	args := make(map[string]any, 1)
	if cfg.Frame.OutputOrientation != "" {
		args[processor.OutputOrientationKey] = cfg.Frame.OutputOrientation
	}

	var failed []error
	for _, path := range paths {
		if !frame.IsSupported(path) {
			failed = append(failed, fmt.Errorf("%s: unsupported file type", path))
			continue
		}
		f, err := frame.Load(path, sensor)
		if err != nil {
			failed = append(failed, err)
			continue
		}
		res, resolved, err := proc.ProcessFrame(f, args)
		if err != nil {
			failed = append(failed, fmt.Errorf("%s: %w", path, err))
			continue
		}
		slog.Debug("Frame processed", "file", path, "resolved", resolved.String(), "blocks", len(res.Blocks))
		if slog.Default().Enabled(context.Background(), slog.LevelDebug) {
			if err := projector.Validate(res); err != nil {
				slog.Warn("Result failed validation", "file", path, "error", err)
			}
		}

		rendered, err := render(res, format)
		if err != nil {
			return err
		}
		if len(paths) > 1 && format == outputFormatText {
			rendered = fmt.Sprintf("# %s\n%s", path, rendered)
		}
		if _, err := io.WriteString(out, rendered); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return errors.Join(failed...)
}

func render(res *projector.Result, format string) (string, error) {
	switch format {
	case outputFormatJSON:
		s, err := projector.ToJSON(res)
		return s + "\n", err
	case outputFormatText:
		s, err := projector.ToPlainText(res)
		return s + "\n", err
	case outputFormatCSV:
		return projector.ToCSV(res)
	default:
		return "", fmt.Errorf("invalid output format: %s (must be one of: %s, %s, %s)",
			format, outputFormatJSON, outputFormatText, outputFormatCSV)
	}
}

func addFrameFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("orientation", "r", "up",
		"sensor orientation of the frame (up, down, left, right and their -mirrored variants)")
	cmd.Flags().String("output-orientation", "",
		"requested output orientation (portrait, landscape-left, portrait-upside-down, landscape-right)")
	cmd.Flags().StringP("format", "f", outputFormatJSON, "output format (json, text, csv)")
	cmd.Flags().StringP("output", "o", "", "write results to a file instead of stdout")
	cmd.Flags().StringSlice("lang", []string{"eng"}, "tesseract language packs")
	cmd.Flags().Int("psm", 3, "tesseract page segmentation mode (0-13)")
}

// bindFrameFlags binds all flags to viper configuration keys.
func bindFrameFlags(cmd *cobra.Command) {
	flagBindings := []struct {
		key  string
		flag string
	}{
		{"frame.default_orientation", "orientation"},
		{"frame.output_orientation", "output-orientation"},
		{"output.format", "format"},
		{"output.file", "output"},
		{"engine.languages", "lang"},
		{"engine.page_seg_mode", "psm"},
	}

	for _, binding := range flagBindings {
		if err := viper.BindPFlag(binding.key, cmd.Flags().Lookup(binding.flag)); err != nil {
			panic(fmt.Sprintf("failed to bind flag %s: %v", binding.flag, err))
		}
	}
}

func init() {
	rootCmd.AddCommand(frameCmd)
	addFrameFlags(frameCmd)
	bindFrameFlags(frameCmd)
}
