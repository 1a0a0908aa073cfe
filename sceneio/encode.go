// Writes rendered scenes to files and shows them on screen.
package sceneio

import (
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/kjarosh/jsongfx/scene"
	"github.com/kjarosh/jsongfx/scenepdf"
	"github.com/kjarosh/jsongfx/sceneraster"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Format is an output file format.
type Format uint8

const (
	PNG Format = iota
	JPEG
	GIF
	BMP
	TIFF
	PDF
)

func (f Format) String() string {
	switch f {
	case PNG:
		return "PNG"
	case JPEG:
		return "JPEG"
	case GIF:
		return "GIF"
	case BMP:
		return "BMP"
	case TIFF:
		return "TIFF"
	case PDF:
		return "PDF"
	default:
		return "<unknown Format>"
	}
}

var extensions = map[string]Format{
	".png":  PNG,
	".jpg":  JPEG,
	".jpeg": JPEG,
	".gif":  GIF,
	".bmp":  BMP,
	".tif":  TIFF,
	".tiff": TIFF,
	".pdf":  PDF,
}

// ErrUnknownFormat is returned when the output format
// cannot be inferred from the file extension.
var ErrUnknownFormat = errors.New("unknown file extension")

// OutputError reports a problem with the output file:
// unsupported extension, file not writable or encoding failure.
type OutputError struct {
	Path string
	Err  error
}

func (e *OutputError) Error() string { return e.Path + ": " + e.Err.Error() }

func (e *OutputError) Unwrap() error { return e.Err }

// FormatFromPath infers the format from the (case insensitive) extension of `path`.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	f, ok := extensions[ext]
	if !ok {
		return 0, fmt.Errorf("%w %q", ErrUnknownFormat, ext)
	}
	return f, nil
}

// EncodeImage writes an already rendered image. PDF is not
// supported here, since it is rendered from the scene directly.
func EncodeImage(w io.Writer, img image.Image, format Format) error {
	switch format {
	case PNG:
		return png.Encode(w, img)
	case JPEG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 95})
	case GIF:
		return gif.Encode(w, img, nil)
	case BMP:
		return bmp.Encode(w, img)
	case TIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("can't encode an image as %s", format)
	}
}

// Encode renders the scene in the given format.
func Encode(w io.Writer, s *scene.Scene, format Format) error {
	if format == PDF {
		return scenepdf.RenderSceneToPDF(s, w)
	}
	return EncodeImage(w, sceneraster.RasterSceneToImage(s), format)
}

// Save renders the scene into the file `path`, with the format given by its extension.
// All errors are *OutputError; no file is created if the extension is not supported,
// and a partially written file is removed.
func Save(path string, s *scene.Scene) (err error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return &OutputError{Path: path, Err: err}
	}
	out, err := os.Create(path)
	if err != nil {
		return &OutputError{Path: path, Err: err}
	}
	defer func() {
		if cerr := out.Close(); err == nil && cerr != nil {
			err = &OutputError{Path: path, Err: cerr}
		}
		if err != nil {
			os.Remove(path)
		}
	}()
	if err := Encode(out, s, format); err != nil {
		return &OutputError{Path: path, Err: err}
	}
	return nil
}
