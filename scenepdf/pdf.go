// Implements a PDF backend to render scenes,
// by wrapping github.com/jung-kurt/gofpdf.
package scenepdf

import (
	"image/color"
	"io"
	"math"

	"github.com/jung-kurt/gofpdf"
	"github.com/kjarosh/jsongfx/scene"
)

var _ scene.Driver = Renderer{} // assert interface conformance

// Renderer writes figures as filled paths on the current page of a gofpdf document.
// One pixel of the scene is one PDF point.
type Renderer struct {
	pdf *gofpdf.Fpdf
}

// NewRenderer return a renderer which will
// write to the given `pdf`.
func NewRenderer(pdf *gofpdf.Fpdf) Renderer {
	return Renderer{pdf: pdf}
}

// NewDocument returns a single page document of the screen size,
// painted with the screen background.
func NewDocument(screen scene.Screen) *gofpdf.Fpdf {
	w, h := float64(screen.Width), float64(screen.Height)
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: w, Ht: h},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	setFillColor(pdf, screen.Background)
	pdf.Rect(0, 0, w, h, "F")
	return pdf
}

// RenderSceneToPDF draws the scene and writes the document to `out`.
func RenderSceneToPDF(s *scene.Scene, out io.Writer) error {
	pdf := NewDocument(s.Screen())
	s.Draw(NewRenderer(pdf))
	return pdf.Output(out)
}

func setFillColor(pdf *gofpdf.Fpdf, c color.Color) {
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	pdf.SetFillColor(int(rgba.R), int(rgba.G), int(rgba.B))
}

func (r Renderer) Point(x, y float64, c scene.Color) {
	setFillColor(r.pdf, c)
	r.pdf.Rect(math.Floor(x), math.Floor(y), 1, 1, "F")
}

func (r Renderer) Rectangle(x0, y0, x1, y1 float64, c scene.Color) {
	minX, minY := math.Min(x0, x1), math.Min(y0, y1)
	setFillColor(r.pdf, c)
	r.pdf.Rect(minX, minY, math.Abs(x1-x0)+1, math.Abs(y1-y0)+1, "F")
}

func (r Renderer) Polygon(points []scene.Vertex, c scene.Color) {
	pts := make([]gofpdf.PointType, len(points))
	for i, p := range points {
		pts[i] = gofpdf.PointType{X: p.X + 0.5, Y: p.Y + 0.5}
	}
	setFillColor(r.pdf, c)
	r.pdf.Polygon(pts, "F")
}

func (r Renderer) Ellipse(x0, y0, x1, y1 float64, c scene.Color) {
	rx, ry := (math.Abs(x1-x0)+1)/2, (math.Abs(y1-y0)+1)/2
	setFillColor(r.pdf, c)
	r.pdf.Ellipse(math.Min(x0, x1)+rx, math.Min(y0, y1)+ry, rx, ry, 0, "F")
}
