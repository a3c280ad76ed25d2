// Package theme loads the style sheets skinning widgets.
//
// A style sheet is a YAML document with a default style and named styles
// overriding it:
//
//	default:
//	  background: "#1e1e2e"
//	  foreground: "#cdd6f4"
//	  padding: 8
//	  gap: 4
//	  fontSize: 14
//	styles:
//	  title:
//	    fontSize: 24
//	  toolbar:
//	    direction: horizontal
package theme

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gogpu/gg"
	"gopkg.in/yaml.v3"
)

// Direction is the axis a container stacks its children on.
type Direction int

const (
	Vertical Direction = iota
	Horizontal
)

func (d Direction) String() string {
	switch d {
	case Vertical:
		return "vertical"
	case Horizontal:
		return "horizontal"
	default:
		return "unknown"
	}
}

var ErrInvalidColor = errors.New("invalid color")
var ErrInvalidDirection = errors.New("invalid direction")

// Style is a fully resolved style.
type Style struct {
	Background gg.RGBA
	Foreground gg.RGBA
	Padding    float64
	Gap        float64
	FontSize   float64
	Direction  Direction
}

// Theme is a loaded style sheet.
type Theme struct {
	base   Style
	styles map[string]rule
}

// rule holds the fields a style sets, nil fields inherit from the default.
type rule struct {
	Background *color     `yaml:"background"`
	Foreground *color     `yaml:"foreground"`
	Padding    *float64   `yaml:"padding"`
	Gap        *float64   `yaml:"gap"`
	FontSize   *float64   `yaml:"fontSize"`
	Direction  *direction `yaml:"direction"`
}

type document struct {
	Default rule            `yaml:"default"`
	Styles  map[string]rule `yaml:"styles"`
}

var builtin = Style{
	Background: gg.RGBA{},
	Foreground: gg.RGB(0, 0, 0),
	Padding:    0,
	Gap:        0,
	FontSize:   14,
	Direction:  Vertical,
}

// Default returns a theme holding only the built-in style.
func Default() *Theme {
	return &Theme{base: builtin, styles: map[string]rule{}}
}

// Load parses a YAML style sheet.
func Load(r io.Reader) (*Theme, error) {
	var doc document

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("theme: decode: %w", err)
	}

	t := &Theme{
		base:   doc.Default.apply(builtin),
		styles: doc.Styles,
	}
	if t.styles == nil {
		t.styles = map[string]rule{}
	}

	return t, nil
}

// LoadFile parses the YAML style sheet at path.
func LoadFile(path string) (*Theme, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("theme: %w", err)
	}
	defer f.Close()

	return Load(f)
}

// Resolve returns the style called name, falling back to the default
// style for every field the named style leaves unset.
func (t *Theme) Resolve(name string) Style {
	r, ok := t.styles[name]
	if !ok {
		return t.base
	}
	return r.apply(t.base)
}

// Has reports whether the theme defines the named style.
func (t *Theme) Has(name string) bool {
	_, ok := t.styles[name]
	return ok
}

func (r rule) apply(s Style) Style {
	if r.Background != nil {
		s.Background = gg.RGBA(*r.Background)
	}
	if r.Foreground != nil {
		s.Foreground = gg.RGBA(*r.Foreground)
	}
	if r.Padding != nil {
		s.Padding = *r.Padding
	}
	if r.Gap != nil {
		s.Gap = *r.Gap
	}
	if r.FontSize != nil {
		s.FontSize = *r.FontSize
	}
	if r.Direction != nil {
		s.Direction = Direction(*r.Direction)
	}
	return s
}

type color gg.RGBA

func (c *color) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}

	if !validHex(s) {
		return fmt.Errorf("line %d: %q: %w", value.Line, s, ErrInvalidColor)
	}

	*c = color(gg.Hex(s))
	return nil
}

func validHex(s string) bool {
	s = strings.TrimPrefix(s, "#")
	switch len(s) {
	case 3, 4, 6, 8:
	default:
		return false
	}

	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

type direction Direction

func (d *direction) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}

	switch strings.ToLower(s) {
	case "vertical", "column":
		*d = direction(Vertical)
	case "horizontal", "row":
		*d = direction(Horizontal)
	default:
		return fmt.Errorf("line %d: %q: %w", value.Line, s, ErrInvalidDirection)
	}
	return nil
}
