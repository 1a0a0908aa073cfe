package sceneio

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/rs/zerolog"
)

// DefaultFramebuffer is the device used by ShowOnFramebuffer
// when none is given.
const DefaultFramebuffer = "/dev/fb0"

// DefaultViewer returns the command opening an image with the
// desktop default application.
func DefaultViewer() string {
	switch runtime.GOOS {
	case "darwin":
		return "open"
	case "windows":
		return "cmd /c start"
	default:
		return "xdg-open"
	}
}

// Show writes the image to a temporary PNG file and opens it with `command`,
// a space separated command line to which the file path is appended.
// An empty command uses DefaultViewer.
// The viewer is not waited for: the temporary file is left for it to read.
func Show(ctx context.Context, img image.Image, command string, logger zerolog.Logger) error {
	args := strings.Fields(command)
	if len(args) == 0 {
		args = strings.Fields(DefaultViewer())
	}

	tmp, err := os.CreateTemp("", "jsongfx-*.png")
	if err != nil {
		return fmt.Errorf("creating preview file: %w", err)
	}
	if err := png.Encode(tmp, img); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("encoding preview: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("writing preview: %w", err)
	}

	args = append(args, tmp.Name())
	logger.Debug().Strs("command", args).Msg("starting viewer")
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	if err := cmd.Start(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("starting viewer %q: %w", args[0], err)
	}
	return cmd.Process.Release()
}

// fitRect returns the largest rectangle with the aspect ratio of `src`
// fitting in `dst`, centered in it.
func fitRect(dst, src image.Rectangle) image.Rectangle {
	dw, dh := dst.Dx(), dst.Dy()
	sw, sh := src.Dx(), src.Dy()
	if sw <= 0 || sh <= 0 || dw <= 0 || dh <= 0 {
		return image.Rectangle{Min: dst.Min, Max: dst.Min}
	}
	w, h := dw, dw*sh/sw
	if h > dh {
		w, h = dh*sw/sh, dh
	}
	x0 := dst.Min.X + (dw-w)/2
	y0 := dst.Min.Y + (dh-h)/2
	return image.Rect(x0, y0, x0+w, y0+h)
}
