package sceneraster

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kjarosh/jsongfx/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	black = color.RGBA{A: 0xff}
	red   = color.RGBA{R: 0xff, A: 0xff}
	green = color.RGBA{G: 0xff, A: 0xff}
	blue  = color.RGBA{B: 0xff, A: 0xff}
)

func renderString(t *testing.T, doc string) *image.RGBA {
	t.Helper()
	img, err := RasterSceneStream(strings.NewReader(doc), scene.JSON)
	require.NoError(t, err)
	return img
}

func TestSinglePoint(t *testing.T) {
	img := renderString(t, `{"palette":{"red":"#FF0000"},"screen":{"width":10,"height":10,"background":"#000000"},"figures":[{"type":"point","x":5,"y":5,"color":"red"}]}`)

	require.Equal(t, image.Rect(0, 0, 10, 10), img.Bounds())
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			want := black
			if x == 5 && y == 5 {
				want = red
			}
			assert.Equal(t, want, img.RGBAAt(x, y), "pixel (%d, %d)", x, y)
		}
	}
}

func TestEmptyScene(t *testing.T) {
	img := renderString(t, `{"palette":{},"screen":{"width":3,"height":2,"background":"(0,0,255)"},"figures":[]}`)
	require.Equal(t, image.Rect(0, 0, 3, 2), img.Bounds())
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			assert.Equal(t, blue, img.RGBAAt(x, y))
		}
	}
}

func TestFilledShapes(t *testing.T) {
	img := renderString(t, `{
		"palette": {"r": "#ff0000", "g": "(0,255,0)"},
		"screen": {"width": 100, "height": 100, "background": "#000000", "default_color": "g"},
		"figures": [
			{"type": "rectangle", "x": 10, "y": 10, "width": 20, "height": 10, "color": "r"},
			{"type": "circle", "x": 70, "y": 30, "radius": 15},
			{"type": "polygon", "points": [[10, 60], [40, 60], [40, 90], [10, 90]], "color": "#0000FF"},
			{"type": "ellipse", "x": 75, "y": 75, "radiusx": 20, "radiusy": 8, "color": "r"}
		]
	}`)

	// interiors
	assert.Equal(t, red, img.RGBAAt(20, 15))
	assert.Equal(t, green, img.RGBAAt(70, 30))
	assert.Equal(t, blue, img.RGBAAt(25, 75))
	assert.Equal(t, red, img.RGBAAt(75, 75))
	// both rectangle corners are included
	assert.Equal(t, red, img.RGBAAt(10, 10))
	assert.Equal(t, red, img.RGBAAt(30, 20))

	// outside of every figure
	for _, p := range []image.Point{{0, 0}, {5, 5}, {32, 22}, {50, 50}, {70, 50}, {99, 99}, {75, 90}} {
		assert.Equal(t, black, img.RGBAAt(p.X, p.Y), "pixel %v", p)
	}
}

func TestListOrderIsDrawOrder(t *testing.T) {
	img := renderString(t, `{
		"palette": {},
		"screen": {"width": 20, "height": 20, "background": "#000000"},
		"figures": [
			{"type": "square", "x": 2, "y": 2, "size": 10, "color": "#ff0000"},
			{"type": "square", "x": 5, "y": 5, "size": 10, "color": "#00ff00"}
		]
	}`)
	assert.Equal(t, red, img.RGBAAt(3, 3))
	assert.Equal(t, green, img.RGBAAt(8, 8))
	assert.Equal(t, green, img.RGBAAt(14, 14))
}

func TestNegativeRectangle(t *testing.T) {
	img := renderString(t, `{"palette": {}, "screen": {"width": 20, "height": 20, "background": "#000000"},
		"figures": [{"type": "rectangle", "x": 15, "y": 15, "width": -10, "height": -10, "color": "#ff0000"}]}`)
	assert.Equal(t, red, img.RGBAAt(10, 10))
	assert.Equal(t, black, img.RGBAAt(2, 2))
}

func TestOutOfCanvas(t *testing.T) {
	img := renderString(t, `{"palette": {}, "screen": {"width": 4, "height": 4, "background": "#000000"},
		"figures": [{"type": "point", "x": 40, "y": -3, "color": "#ff0000"}, {"type": "point", "x": 1.7, "y": 2.2, "color": "#ff0000"}]}`)
	assert.Equal(t, red, img.RGBAAt(1, 2))
	assert.Equal(t, black, img.RGBAAt(3, 0))
}

func TestDeterministic(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "shapes.json"))
	require.NoError(t, err)

	first := renderString(t, string(data))
	second := renderString(t, string(data))
	assert.True(t, bytes.Equal(first.Pix, second.Pix), "renders differ")

	var b bytes.Buffer
	require.NoError(t, png.Encode(&b, first))
	require.NoError(t, os.WriteFile(filepath.Join(t.TempDir(), "shapes.png"), b.Bytes(), 0o644))
}
