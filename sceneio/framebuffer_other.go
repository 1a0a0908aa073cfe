//go:build !linux || !cgo

package sceneio

import (
	"errors"
	"image"

	"github.com/rs/zerolog"
)

func ShowOnFramebuffer(img image.Image, device string, logger zerolog.Logger) error {
	return errors.New("framebuffer output is only supported on linux")
}
