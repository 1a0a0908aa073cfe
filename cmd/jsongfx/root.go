package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/kjarosh/jsongfx/scene"
	"github.com/kjarosh/jsongfx/sceneio"
	"github.com/kjarosh/jsongfx/sceneraster"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// runError marks failures of the command itself,
// as opposed to command line parsing errors.
type runError struct {
	err error
}

func (e *runError) Error() string { return e.err.Error() }

func (e *runError) Unwrap() error { return e.err }

// inputError marks failures to read or parse the scene file.
type inputError struct {
	path string
	err  error
}

func (e *inputError) Error() string { return e.err.Error() }

func (e *inputError) Unwrap() error { return e.err }

func newRootCmd(stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jsongfx FILE",
		Short: "jsongfx renders JSON scene documents",
		Long: `jsongfx reads a scene document (JSON, or YAML for .yaml/.yml files) describing
a canvas, a palette and a list of figures, and renders it.
Without --output the image is displayed, otherwise it is written to the given
file, in the format chosen by its extension.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			cfg, err := loadConfig(cmd)
			if err != nil {
				return &runError{err: err}
			}
			logger, err := newLogger(stderr, cfg.LogLevel)
			if err != nil {
				return &runError{err: err}
			}
			if err := run(cmd.Context(), input, cfg, logger); err != nil {
				return &runError{err: err}
			}
			return nil
		},
	}
	cmd.SetErr(stderr)
	addFlags(cmd)
	return cmd
}

func run(ctx context.Context, input string, cfg config, logger zerolog.Logger) error {
	s, err := scene.ReadScene(input, scene.WithErrorMode(cfg.errorMode()), scene.WithLogger(logger))
	if err != nil {
		return &inputError{path: input, err: err}
	}
	if cfg.Output != "" {
		if err := sceneio.Save(cfg.Output, s); err != nil {
			return err
		}
		logger.Info().Str("output", cfg.Output).Msg("scene written")
		return nil
	}

	img := sceneraster.RasterSceneToImage(s)
	if cfg.Framebuffer != "" {
		return sceneio.ShowOnFramebuffer(img, cfg.Framebuffer, logger)
	}
	return sceneio.Show(ctx, img, cfg.Viewer, logger)
}

// describe returns the one line diagnostic printed for a failed run.
// Only errors from the scene file are reported as "not found".
func describe(err error) string {
	var (
		outErr *sceneio.OutputError
		inErr  *inputError
	)
	switch {
	case errors.As(err, &outErr):
		return "Invalid output file name: " + outErr.Error()
	case scene.IsInvalidFormat(err):
		return "Invalid file format: " + err.Error()
	case errors.As(err, &inErr) && errors.Is(inErr.err, fs.ErrNotExist):
		return fmt.Sprintf("File '%s' not found", inErr.path)
	default:
		return "Error: " + err.Error()
	}
}

func execute(args []string, stderr io.Writer) int {
	cmd := newRootCmd(stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	if err == nil {
		return exitOK
	}
	var rerr *runError
	if errors.As(err, &rerr) {
		fmt.Fprintln(stderr, describe(rerr.err))
		return exitError
	}
	fmt.Fprintf(stderr, "Error: %v\n%s", err, cmd.UsageString())
	return exitUsage
}

// Execute runs the command line and returns the process exit code.
func Execute(args []string) int {
	return execute(args, os.Stderr)
}
