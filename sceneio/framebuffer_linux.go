//go:build linux && cgo

package sceneio

import (
	"image"
	"image/draw"

	fb "github.com/gonutz/framebuffer"
	"github.com/rs/zerolog"
	xdraw "golang.org/x/image/draw"
)

// ShowOnFramebuffer scales the image to fit the framebuffer `device`,
// keeping its aspect ratio, and draws it centered on a black background.
func ShowOnFramebuffer(img image.Image, device string, logger zerolog.Logger) error {
	if device == "" {
		device = DefaultFramebuffer
	}
	dev, err := fb.Open(device)
	if err != nil {
		return err
	}
	defer dev.Close()

	bounds := dev.Bounds()
	logger.Debug().Str("device", device).Int("width", bounds.Dx()).Int("height", bounds.Dy()).Msg("framebuffer open")

	draw.Draw(dev, bounds, image.Black, image.Point{}, draw.Src)
	xdraw.NearestNeighbor.Scale(dev, fitRect(bounds, img.Bounds()), img, img.Bounds(), xdraw.Src, nil)
	return nil
}
