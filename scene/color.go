package scene

import (
	"fmt"
	"image/color"
	"regexp"
	"strconv"
)

// Color is a resolved, literal color: either a HexColor or an RGBColor.
// Palette names never reach this type.
type Color interface {
	color.Color
	isColor()
}

// HexColor is a "#RRGGBB" literal, kept verbatim as found in the document.
type HexColor string

// RGBColor is a "(r,g,b)" literal.
type RGBColor struct {
	R, G, B uint8
}

func (HexColor) isColor() {}
func (RGBColor) isColor() {}

// RGBA implements color.Color. Values not of the "#RRGGBB" form,
// which ParseLiteralColor never returns, are opaque black.
func (h HexColor) RGBA() (r, g, b, a uint32) {
	if !hexColorRe.MatchString(string(h)) {
		return RGBColor{}.RGBA()
	}
	v, _ := strconv.ParseUint(string(h[1:]), 16, 32)
	return RGBColor{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}.RGBA()
}

func (c RGBColor) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}.RGBA()
}

func (c RGBColor) String() string { return fmt.Sprintf("(%d,%d,%d)", c.R, c.G, c.B) }

// Palette maps color names to literal colors.
type Palette map[string]Color

var (
	hexColorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
	rgbColorRe = regexp.MustCompile(`^\((\d{1,3}),(\d{1,3}),(\d{1,3})\)$`)
)

// ParseLiteralColor accepts the hex and the rgb tuple syntaxes only.
// The boolean is false when ref matches neither; an error is returned
// when ref is an rgb tuple with a component out of [0, 255].
func ParseLiteralColor(ref string) (Color, bool, error) {
	if hexColorRe.MatchString(ref) {
		return HexColor(ref), true, nil
	}
	m := rgbColorRe.FindStringSubmatch(ref)
	if m == nil {
		return nil, false, nil
	}
	var comps [3]uint8
	for i, s := range m[1:] {
		v, _ := strconv.Atoi(s) // at most 3 digits
		if v > 255 {
			return nil, true, invalidFormat("color component out of range [0, 255]: %s", ref)
		}
		comps[i] = uint8(v)
	}
	return RGBColor{R: comps[0], G: comps[1], B: comps[2]}, true, nil
}

// ResolveColor turns a color reference into a literal color, trying in order
// the hex syntax, the rgb tuple syntax and finally a palette lookup.
func ResolveColor(ref string, palette Palette) (Color, error) {
	c, ok, err := ParseLiteralColor(ref)
	if err != nil {
		return nil, err
	}
	if ok {
		return c, nil
	}
	if c, ok := palette[ref]; ok {
		return c, nil
	}
	return nil, invalidFormat("unsupported color format: %s", ref)
}
