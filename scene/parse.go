package scene

import (
	"maps"
	"slices"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/rs/zerolog"
)

// Option configures Parse and the Read functions.
type Option func(*parser)

// WithErrorMode sets how unknown keys are handled (default IgnoreErrorMode).
func WithErrorMode(mode ErrorMode) Option {
	return func(p *parser) {
		p.errorMode = mode
	}
}

// WithLogger sets the logger used for warnings and debug output.
func WithLogger(logger zerolog.Logger) Option {
	return func(p *parser) {
		p.logger = logger
	}
}

// document is the top level layout of a scene document.
type document struct {
	Palette map[string]interface{} `mapstructure:"palette"`
	Screen  map[string]interface{} `mapstructure:"screen"`
	Figures []interface{}          `mapstructure:"figures"`
}

var documentSections = []string{"palette", "screen", "figures"}

var screenFields = []string{"width", "height", "background", "default_color"}

// parser holds the state needed while reading a document.
type parser struct {
	errorMode ErrorMode
	logger    zerolog.Logger

	palette      Palette
	defaultColor Color
}

// Parse validates an already decoded document (as produced by encoding/json,
// with or without UseNumber, or by gopkg.in/yaml.v3) and builds the Scene.
// Processing stops at the first problem, checking the palette, then the screen,
// then the figures in order.
func Parse(doc interface{}, opts ...Option) (*Scene, error) {
	p := &parser{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(p)
	}

	var raw document
	if err := decodeDocument(doc, &raw); err != nil {
		return nil, err
	}

	if err := p.readPalette(raw.Palette); err != nil {
		return nil, err
	}
	screen, err := p.readScreen(raw.Screen)
	if err != nil {
		return nil, err
	}

	figures := make([]Figure, 0, len(raw.Figures))
	for i, item := range raw.Figures {
		f, err := p.readFigure(item)
		if err != nil {
			return nil, withContext(err, "figure %d", i)
		}
		figures = append(figures, f)
	}

	p.logger.Debug().
		Int("width", screen.Width).
		Int("height", screen.Height).
		Int("palette", len(p.palette)).
		Int("figures", len(figures)).
		Msg("scene parsed")

	// the palette is not needed anymore
	p.palette = nil
	return &Scene{screen: screen, figures: figures}, nil
}

func decodeDocument(doc interface{}, raw *document) error {
	top, ok := doc.(map[string]interface{})
	if !ok {
		return invalidFormat("document must be an object, got %s", jsonType(doc))
	}
	for _, section := range documentSections {
		if _, ok := top[section]; !ok {
			return invalidFormat("missing section %q", section)
		}
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{Result: raw})
	if err != nil {
		return err
	}
	if err := decoder.Decode(top); err != nil {
		if merr, ok := err.(*mapstructure.Error); ok {
			return invalidFormat("%s", strings.Join(merr.Errors, "; "))
		}
		return invalidFormat("%v", err)
	}
	return nil
}

func (p *parser) readPalette(entries map[string]interface{}) error {
	p.palette = make(Palette, len(entries))
	// sorted so that the reported error does not depend on map order
	for _, name := range slices.Sorted(maps.Keys(entries)) {
		ref, ok := entries[name].(string)
		if !ok {
			return invalidFormat("palette: entry %q must be a string, got %s", name, jsonType(entries[name]))
		}
		c, ok, err := ParseLiteralColor(ref)
		if err != nil {
			return withContext(err, "palette: entry %q", name)
		}
		if !ok {
			return invalidFormat("palette: entry %q is not a literal color: %s", name, ref)
		}
		p.palette[name] = c
	}
	return nil
}

func (p *parser) readScreen(fields map[string]interface{}) (Screen, error) {
	var screen Screen
	if err := p.checkFields("screen", fields, screenFields); err != nil {
		return screen, err
	}
	for _, dim := range []struct {
		name string
		dst  *int
	}{{"width", &screen.Width}, {"height", &screen.Height}} {
		raw, ok := fields[dim.name]
		if !ok {
			return screen, invalidFormat("screen: missing field %q", dim.name)
		}
		v, ok := toInt(raw)
		if !ok || v <= 0 {
			return screen, invalidFormat("screen: field %q must be a positive integer, got %v", dim.name, raw)
		}
		*dim.dst = v
	}

	ref, err := stringField("screen", fields, "background")
	if err != nil {
		return screen, err
	}
	if screen.Background, err = ResolveColor(ref, p.palette); err != nil {
		return screen, withContext(err, "screen: background")
	}

	if _, ok := fields["default_color"]; ok {
		ref, err := stringField("screen", fields, "default_color")
		if err != nil {
			return screen, err
		}
		if screen.DefaultColor, err = ResolveColor(ref, p.palette); err != nil {
			return screen, withContext(err, "screen: default_color")
		}
		p.defaultColor = screen.DefaultColor
	}
	return screen, nil
}

func (p *parser) readFigure(item interface{}) (Figure, error) {
	fields, ok := item.(map[string]interface{})
	if !ok {
		return nil, invalidFormat("figure must be an object, got %s", jsonType(item))
	}
	kind, err := stringField("figure", fields, "type")
	if err != nil {
		return nil, err
	}
	df, ok := figureFuncs[kind]
	if !ok {
		return nil, invalidFormat("unsupported figure type: %s", kind)
	}
	if err := p.checkFields(kind, fields, append([]string{"type", "color"}, figureFields[kind]...)); err != nil {
		return nil, err
	}

	var c Color
	if _, ok := fields["color"]; ok {
		ref, err := stringField(kind, fields, "color")
		if err != nil {
			return nil, err
		}
		if c, err = ResolveColor(ref, p.palette); err != nil {
			return nil, err
		}
	} else {
		if p.defaultColor == nil {
			return nil, errNoDefaultColor
		}
		c = p.defaultColor
	}

	return df(c, figureObject{kind: kind, fields: fields})
}

// checkFields applies the error mode to the keys of `fields` not listed in `known`.
func (p *parser) checkFields(context string, fields map[string]interface{}, known []string) error {
	if p.errorMode == IgnoreErrorMode {
		return nil
	}
	for _, key := range slices.Sorted(maps.Keys(fields)) {
		if slices.Contains(known, key) {
			continue
		}
		if p.errorMode == StrictErrorMode {
			return invalidFormat("%s: unknown field %q", context, key)
		}
		p.logger.Warn().Str("object", context).Str("field", key).Msg("ignoring unknown field")
	}
	return nil
}

func stringField(context string, fields map[string]interface{}, name string) (string, error) {
	raw, ok := fields[name]
	if !ok {
		return "", invalidFormat("%s: missing field %q", context, name)
	}
	s, ok := raw.(string)
	if !ok {
		return "", invalidFormat("%s: field %q must be a string, got %s", context, name, jsonType(raw))
	}
	return s, nil
}
