package scene

// Driver knows how to do the actual draw operations
// but doesn't need any knowledge of the document format.
// Coordinates are the ones of the document: the origin is the top left
// corner of the canvas and the y axis points down.
type Driver interface {
	// Point sets the single pixel containing (x, y).
	Point(x, y float64, c Color)

	// Rectangle fills the rectangle with corners (x0, y0) and (x1, y1),
	// both included. The corners may come in any order.
	Rectangle(x0, y0, x1, y1 float64, c Color)

	// Polygon fills the closed shape through points.
	Polygon(points []Vertex, c Color)

	// Ellipse fills the ellipse inscribed in the given bounding box.
	Ellipse(x0, y0, x1, y1 float64, c Color)
}

func (f Point) drawTo(d Driver)     { d.Point(f.X, f.Y, f.Fill) }
func (f Rectangle) drawTo(d Driver) { d.Rectangle(f.X0, f.Y0, f.X1, f.Y1, f.Fill) }
func (f Polygon) drawTo(d Driver)   { d.Polygon(f.Points, f.Fill) }
func (f Ellipse) drawTo(d Driver)   { d.Ellipse(f.X0, f.Y0, f.X1, f.Y1, f.Fill) }

// Draw sends every figure of the scene to the driver `d`, back to front.
// The background is not drawn: backends are expected to
// prepare their canvas from Screen().
func (s *Scene) Draw(d Driver) {
	for _, f := range s.figures {
		f.drawTo(d)
	}
}
