// Provides parsing of declarative scene documents.
// A scene document describes a canvas, a color palette and an
// ordered list of figures; it is parsed and fully validated into an
// immutable Scene, which can then be consumed by painting drivers.
// See jsongfx/sceneraster and jsongfx/scenepdf for drivers.
package scene

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"gopkg.in/yaml.v3"
)

// Screen holds the canvas metadata.
type Screen struct {
	Width, Height int
	Background    Color
	DefaultColor  Color // nil when the document has no default color
}

// Scene holds data from parsed documents.
// See the `Draw` method to use it.
type Scene struct {
	screen  Screen
	figures []Figure
}

// Screen returns the canvas metadata.
func (s *Scene) Screen() Screen { return s.screen }

// Figures returns a copy of the figures, in drawing order.
// Polygon vertices are copied too.
func (s *Scene) Figures() []Figure {
	out := make([]Figure, len(s.figures))
	for i, f := range s.figures {
		if p, ok := f.(Polygon); ok {
			p.Points = slices.Clone(p.Points)
			f = p
		}
		out[i] = f
	}
	return out
}

// Syntax is the serialization of a scene document.
type Syntax uint8

const (
	JSON Syntax = iota
	YAML
)

func (s Syntax) String() string {
	switch s {
	case JSON:
		return "JSON"
	case YAML:
		return "YAML"
	default:
		return "<unknown Syntax>"
	}
}

// SyntaxFromPath chooses YAML for .yaml and .yml files, JSON otherwise.
func SyntaxFromPath(name string) Syntax {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return YAML
	}
	return JSON
}

var utf8BOM = []byte("\xef\xbb\xbf")

// ReadSceneStream reads and validates a scene from the given io.Reader.
// Documents are UTF-8; a byte order mark selects another Unicode encoding
// and the input is converted to UTF-8 first.
// Errors found in the document itself are *InvalidFormatError.
func ReadSceneStream(stream io.Reader, syntax Syntax, opts ...Option) (*Scene, error) {
	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, err
	}
	if data, err = toUTF8(data, syntax); err != nil {
		return nil, err
	}

	var doc interface{}
	switch syntax {
	case YAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, invalidFormat("invalid YAML: %v", err)
		}
	default:
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.UseNumber()
		if err := decoder.Decode(&doc); err != nil {
			return nil, invalidFormat("invalid JSON: %v", err)
		}
		if _, err := decoder.Token(); err != io.EOF {
			return nil, invalidFormat("invalid JSON: unexpected data after the document")
		}
	}
	return Parse(doc, opts...)
}

// toUTF8 decodes BOM marked input and strips the mark. Without a BOM
// the content is not sniffed: it must already be valid UTF-8.
func toUTF8(data []byte, syntax Syntax) ([]byte, error) {
	contentType := "application/json"
	if syntax == YAML {
		contentType = "application/yaml"
	}
	if enc, name, certain := charset.DetermineEncoding(data, contentType); certain {
		decoded, err := enc.NewDecoder().Bytes(data)
		if err != nil {
			return nil, invalidFormat("invalid %s: cannot decode %s input: %v", syntax, name, err)
		}
		data = decoded
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return nil, invalidFormat("invalid %s: input is not valid UTF-8", syntax)
	}
	return data, nil
}

// ReadScene reads the scene from the named file, choosing
// the syntax from its extension.
// A missing file is reported with an error wrapping fs.ErrNotExist.
func ReadScene(sceneFile string, opts ...Option) (*Scene, error) {
	fin, errf := os.Open(sceneFile)
	if errf != nil {
		return nil, errf
	}
	defer fin.Close()
	return ReadSceneStream(fin, SyntaxFromPath(sceneFile), opts...)
}
