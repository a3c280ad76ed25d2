package widget

import (
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/AnatoleLucet/aspect"
)

var defaultFont = sync.OnceValues(func() (*text.FontSource, error) {
	return text.NewFontSource(goregular.TTF)
})

// DefaultFont returns the font labels use unless given another one.
func DefaultFont() (*text.FontSource, error) {
	return defaultFont()
}

// Label displays a run of text, wrapped to its width when Wrap is set.
type Label struct {
	Base

	text *aspect.Property[string]
	wrap *aspect.Property[bool]
	font *aspect.Property[*text.FontSource]

	elements *aspect.Aspect[textElements]
	lines    *aspect.Aspect[[]string]
}

// textElements is the shaped, unwrapped text.
type textElements struct {
	face       text.Face
	advance    float64
	ascent     float64
	lineHeight float64
}

func NewLabel(s string, opts ...Option) *Label {
	l := &Label{}
	l.init(l, newConfig("label", opts), nil, hooks{
		measure: l.measure,
	})

	c := l.component

	font, err := defaultFont()
	if err != nil {
		aspect.Logger().Warn("default font unavailable", "err", err)
	}

	l.text = aspect.NewProperty(c, s, aspect.FlagProperties)
	l.wrap = aspect.NewProperty(c, false, aspect.FlagProperties)
	l.font = aspect.NewProperty(c, font, aspect.FlagProperties)

	l.elements = aspect.NewAspect(c, aspect.FlagTextElements,
		aspect.FlagStyles|aspect.FlagProperties, aspect.FlagSizeConstraints,
		l.shape)

	l.lines = aspect.NewAspect(c, aspect.FlagLines,
		aspect.FlagLayout|aspect.FlagTextElements, aspect.FlagVertices,
		func([]string) []string {
			return l.wrapTo(l.size.Read().Width)
		})

	return l
}

func (l *Label) Text() string { return l.text.Read() }

func (l *Label) SetText(s string) { l.text.Write(s) }

func (l *Label) Wrap() bool { return l.wrap.Read() }

// SetWrap wraps the text to the label's width instead of overflowing it.
func (l *Label) SetWrap(wrap bool) { l.wrap.Write(wrap) }

func (l *Label) SetFont(font *text.FontSource) { l.font.Write(font) }

// Lines returns the text split in lines as last laid out.
func (l *Label) Lines() []string { return l.lines.Read() }

func (l *Label) shape(textElements) textElements {
	font := l.font.Read()
	if font == nil {
		return textElements{}
	}

	face := font.Face(l.style.Read().FontSize)
	metrics := face.Metrics()

	return textElements{
		face:       face,
		advance:    face.Advance(l.text.Read()),
		ascent:     metrics.Ascent,
		lineHeight: metrics.LineHeight(),
	}
}

func (l *Label) wrapTo(width float64) []string {
	s := l.text.Read()
	el := l.elements.Read()
	if el.face == nil || s == "" {
		return nil
	}

	mode := text.WrapNone
	if l.wrap.Read() {
		mode = text.WrapWordChar
	}

	pad := l.style.Read().Padding
	results := text.WrapText(s, el.face, width-2*pad, mode)

	lines := make([]string, len(results))
	for i, r := range results {
		lines[i] = r.Text
	}
	return lines
}

func (l *Label) measure() Size {
	el := l.elements.Read()
	pad := l.style.Read().Padding

	lines := 1
	if w := l.width.Read(); w >= 0 && l.wrap.Read() {
		lines = max(len(l.wrapTo(w)), 1)
		return Size{Width: w, Height: float64(lines)*el.lineHeight + 2*pad}
	}

	return Size{
		Width:  el.advance + 2*pad,
		Height: float64(lines)*el.lineHeight + 2*pad,
	}
}

func (l *Label) Draw(dc *gg.Context) {
	if !l.Visible() {
		return
	}

	style := l.style.Read()
	l.fillBounds(dc, style.Background)

	el := l.elements.Read()
	lines := l.lines.Read()
	if el.face == nil || len(lines) == 0 {
		return
	}

	fg := style.Foreground
	fg.A *= l.worldAlpha.Read()

	dc.Push()
	dc.Identity()
	dc.Transform(l.world.Read())
	dc.SetFont(el.face)
	dc.SetColor(fg.Color())
	for i, line := range lines {
		dc.DrawString(line, style.Padding, style.Padding+el.ascent+float64(i)*el.lineHeight)
	}
	dc.Pop()
}
