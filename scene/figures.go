package scene

import (
	"encoding/json"
	"fmt"
	"math"
)

// Figure is one drawable primitive of a scene:
// a Point, a Rectangle, a Polygon or an Ellipse.
type Figure interface {
	// Color returns the resolved fill color.
	Color() Color

	// drawTo sends the figure to the driver.
	drawTo(d Driver)
}

// Vertex is a polygon corner.
type Vertex struct{ X, Y float64 }

// Point is a single pixel.
type Point struct {
	X, Y float64
	Fill Color
}

// Rectangle is given by its two corners. The second corner
// is not required to be greater than the first one.
type Rectangle struct {
	X0, Y0, X1, Y1 float64
	Fill           Color
}

// Polygon is a closed shape through Points.
type Polygon struct {
	Points []Vertex
	Fill   Color
}

// Ellipse is given by its bounding box.
type Ellipse struct {
	X0, Y0, X1, Y1 float64
	Fill           Color
}

func (f Point) Color() Color     { return f.Fill }
func (f Rectangle) Color() Color { return f.Fill }
func (f Polygon) Color() Color   { return f.Fill }
func (f Ellipse) Color() Color   { return f.Fill }

// NewRectangle returns the rectangle with top left corner (x, y).
func NewRectangle(c Color, x, y, width, height float64) Rectangle {
	return Rectangle{X0: x, Y0: y, X1: x + width, Y1: y + height, Fill: c}
}

// NewSquare is a shortcut for NewRectangle(c, x, y, size, size).
func NewSquare(c Color, x, y, size float64) Rectangle {
	return NewRectangle(c, x, y, size, size)
}

// NewEllipse returns the ellipse centered on (x, y).
func NewEllipse(c Color, x, y, rx, ry float64) Ellipse {
	return Ellipse{X0: x - rx, Y0: y - ry, X1: x + rx, Y1: y + ry, Fill: c}
}

// NewCircle is a shortcut for NewEllipse(c, x, y, radius, radius).
func NewCircle(c Color, x, y, radius float64) Ellipse {
	return NewEllipse(c, x, y, radius, radius)
}

// figureObject is the raw JSON object of one figure.
type figureObject struct {
	kind   string
	fields map[string]interface{}
}

type figureFunc func(c Color, obj figureObject) (Figure, error)

// figureFuncs maps the accepted "type" values to their parser.
// square and circle have no runtime representation of their own.
var figureFuncs = map[string]figureFunc{
	"point":     pointF,
	"rectangle": rectangleF,
	"square":    squareF,
	"polygon":   polygonF,
	"ellipse":   ellipseF,
	"circle":    circleF,
}

// figureFields lists the keys understood for each figure type,
// in addition to "type" and "color".
var figureFields = map[string][]string{
	"point":     {"x", "y"},
	"rectangle": {"x", "y", "width", "height"},
	"square":    {"x", "y", "size"},
	"polygon":   {"points"},
	"ellipse":   {"x", "y", "radiusx", "radiusy"},
	"circle":    {"x", "y", "radius"},
}

func pointF(c Color, obj figureObject) (Figure, error) {
	var x, y float64
	if err := obj.numbers([]string{"x", "y"}, &x, &y); err != nil {
		return nil, err
	}
	return Point{X: x, Y: y, Fill: c}, nil
}

func rectangleF(c Color, obj figureObject) (Figure, error) {
	var x, y, w, h float64
	if err := obj.numbers([]string{"x", "y", "width", "height"}, &x, &y, &w, &h); err != nil {
		return nil, err
	}
	return NewRectangle(c, x, y, w, h), nil
}

func squareF(c Color, obj figureObject) (Figure, error) {
	var x, y, size float64
	if err := obj.numbers([]string{"x", "y", "size"}, &x, &y, &size); err != nil {
		return nil, err
	}
	return NewSquare(c, x, y, size), nil
}

func ellipseF(c Color, obj figureObject) (Figure, error) {
	var x, y, rx, ry float64
	if err := obj.numbers([]string{"x", "y", "radiusx", "radiusy"}, &x, &y, &rx, &ry); err != nil {
		return nil, err
	}
	return NewEllipse(c, x, y, rx, ry), nil
}

func circleF(c Color, obj figureObject) (Figure, error) {
	var x, y, r float64
	if err := obj.numbers([]string{"x", "y", "radius"}, &x, &y, &r); err != nil {
		return nil, err
	}
	return NewCircle(c, x, y, r), nil
}

func polygonF(c Color, obj figureObject) (Figure, error) {
	raw, ok := obj.fields["points"]
	if !ok {
		return nil, invalidFormat("%s: missing field %q", obj.kind, "points")
	}
	list, ok := raw.([]interface{})
	if !ok {
		return nil, invalidFormat("%s: field %q must be an array, got %s", obj.kind, "points", jsonType(raw))
	}
	if len(list) == 0 {
		return nil, invalidFormat("%s: field %q must not be empty", obj.kind, "points")
	}
	points := make([]Vertex, len(list))
	for i, item := range list {
		pair, ok := item.([]interface{})
		if !ok || len(pair) != 2 {
			return nil, invalidFormat("%s: point %d must be an [x, y] pair", obj.kind, i)
		}
		x, okX := toNumber(pair[0])
		y, okY := toNumber(pair[1])
		if !okX || !okY {
			return nil, invalidFormat("%s: point %d must hold numbers", obj.kind, i)
		}
		points[i] = Vertex{X: x, Y: y}
	}
	return Polygon{Points: points, Fill: c}, nil
}

// numbers reads the required numeric fields names into dst, in order.
func (obj figureObject) numbers(names []string, dst ...*float64) error {
	for i, name := range names {
		v, err := numberField(obj.kind, obj.fields, name)
		if err != nil {
			return err
		}
		*dst[i] = v
	}
	return nil
}

func numberField(kind string, fields map[string]interface{}, name string) (float64, error) {
	raw, ok := fields[name]
	if !ok {
		return 0, invalidFormat("%s: missing field %q", kind, name)
	}
	v, ok := toNumber(raw)
	if !ok {
		return 0, invalidFormat("%s: field %q must be a number, got %s", kind, name, jsonType(raw))
	}
	return v, nil
}

// toNumber accepts the numeric types produced by the JSON
// (with UseNumber) and YAML decoders.
func toNumber(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

// toInt accepts integer literals only.
func toInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case json.Number:
		i, err := n.Int64()
		if err != nil || i > math.MaxInt32 || i < math.MinInt32 {
			return 0, false
		}
		return int(i), true
	case int:
		return n, true
	case int64:
		if n > math.MaxInt32 || n < math.MinInt32 {
			return 0, false
		}
		return int(n), true
	}
	return 0, false
}

// jsonType names the JSON type of a decoded value, for error messages.
func jsonType(v interface{}) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case json.Number, float64, int, int64, uint64:
		return "number"
	case []interface{}:
		return "array"
	case map[string]interface{}:
		return "object"
	}
	return fmt.Sprintf("%T", v)
}
