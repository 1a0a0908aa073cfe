// Implements a raster backend to render scenes,
// by wrapping rasterx.
package sceneraster

import (
	"image"
	"image/draw"
	"io"
	"math"

	"github.com/kjarosh/jsongfx/scene"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

var _ scene.Driver = (*Renderer)(nil) // assert interface conformance

// Renderer draws figures onto a draw.Image.
// Points are set directly, the other figures are
// filled by a rasterx.Filler.
type Renderer struct {
	img    draw.Image
	filler *rasterx.Filler
}

// NewRenderer returns a renderer drawing on img, with
// a rasterx.ScannerGV covering the image bounds.
func NewRenderer(img draw.Image) *Renderer {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	scanner := rasterx.NewScannerGV(w, h, img, bounds)
	return &Renderer{img: img, filler: rasterx.NewFiller(w, h, scanner)}
}

// NewCanvas allocates an image of the screen size, filled with its background.
func NewCanvas(screen scene.Screen) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, screen.Width, screen.Height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: screen.Background}, image.Point{}, draw.Src)
	return img
}

// RasterSceneToImage renders the scene into a new image.
// All the validation happened when the scene was parsed,
// so this step cannot fail.
func RasterSceneToImage(s *scene.Scene) *image.RGBA {
	img := NewCanvas(s.Screen())
	s.Draw(NewRenderer(img))
	return img
}

// RasterSceneStream reads the scene from `stream` and
// renders it into an image.
func RasterSceneStream(stream io.Reader, syntax scene.Syntax, opts ...scene.Option) (*image.RGBA, error) {
	parsed, err := scene.ReadSceneStream(stream, syntax, opts...)
	if err != nil {
		return nil, err
	}
	return RasterSceneToImage(parsed), nil
}

func (rd *Renderer) Point(x, y float64, c scene.Color) {
	rd.img.Set(int(math.Floor(x)), int(math.Floor(y)), c)
}

// Rectangle includes both corners, so that
// a rectangle of width w covers w+1 columns.
func (rd *Renderer) Rectangle(x0, y0, x1, y1 float64, c scene.Color) {
	minX, minY, maxX, maxY := normalize(x0, y0, x1, y1)
	rd.filler.Clear()
	rasterx.AddRect(minX, minY, maxX+1, maxY+1, 0, rd.filler)
	rd.fill(c)
}

func (rd *Renderer) Polygon(points []scene.Vertex, c scene.Color) {
	rd.filler.Clear()
	rd.filler.Start(pixelCenter(points[0]))
	for _, p := range points[1:] {
		rd.filler.Line(pixelCenter(p))
	}
	rd.filler.Stop(true)
	rd.fill(c)
}

func (rd *Renderer) Ellipse(x0, y0, x1, y1 float64, c scene.Color) {
	minX, minY, maxX, maxY := normalize(x0, y0, x1, y1)
	rx, ry := (maxX-minX+1)/2, (maxY-minY+1)/2
	rd.filler.Clear()
	rasterx.AddEllipse(minX+rx, minY+ry, rx, ry, 0, rd.filler)
	rd.fill(c)
}

func (rd *Renderer) fill(c scene.Color) {
	rd.filler.SetColor(c)
	rd.filler.Draw()
}

// pixelCenter maps a vertex to the center of its pixel.
func pixelCenter(v scene.Vertex) fixed.Point26_6 {
	return rasterx.ToFixedP(v.X+0.5, v.Y+0.5)
}

// normalize ensures min <= max on both axes.
func normalize(x0, y0, x1, y1 float64) (minX, minY, maxX, maxY float64) {
	return math.Min(x0, x1), math.Min(y0, y1), math.Max(x0, x1), math.Max(y0, y1)
}
