package widget

import (
	"github.com/gogpu/gg"

	"github.com/AnatoleLucet/aspect"
	"github.com/AnatoleLucet/aspect/theme"
)

// Box stacks its visible children along the direction of its style,
// separated by the style's gap and inset by its padding. Children without
// an explicit size on the other axis are stretched along it.
type Box struct {
	Base
}

const (
	boxCascading = aspect.FlagStyles |
		aspect.FlagConcatenatedTransform |
		aspect.FlagConcatenatedColor |
		aspect.FlagInteractiveMode |
		aspect.FlagHierarchyDescending

	boxBubbling = aspect.FlagSizeConstraints |
		aspect.FlagLayout |
		aspect.FlagHierarchyAscending

	boxMembership = aspect.FlagSizeConstraints | aspect.FlagLayout
)

func NewBox(opts ...Option) *Box {
	b := &Box{}
	b.init(b, newConfig("box", opts), []aspect.Option{
		aspect.WithCascading(boxCascading),
		aspect.WithBubbling(boxBubbling),
		aspect.WithMembership(boxMembership),
	}, hooks{
		measure: b.measure,
		layout:  b.layout,
	})
	return b
}

// Add appends children to the box.
func (b *Box) Add(children ...Widget) {
	for _, child := range children {
		b.component.AddChild(child.Component())
	}
}

// Insert inserts child before the child at index.
func (b *Box) Insert(child Widget, index int) {
	b.component.AddChildAt(child.Component(), index)
}

func (b *Box) Remove(child Widget) {
	b.component.RemoveChild(child.Component())
}

func (b *Box) Len() int {
	return b.component.NumChildren()
}

// Children returns the box's widgets in order.
func (b *Box) Children() []Widget {
	children := make([]Widget, 0, b.component.NumChildren())
	for c := range b.component.Children() {
		if w, ok := c.Host().(Widget); ok {
			children = append(children, w)
		}
	}
	return children
}

func (b *Box) visibleChildren() []*Base {
	var children []*Base
	for _, w := range b.Children() {
		if child := w.base(); child.Visible() {
			children = append(children, child)
		}
	}
	return children
}

func (b *Box) measure() Size {
	style := b.style.Read()
	children := b.visibleChildren()

	var content Size
	for i, child := range children {
		m := child.Measure()

		switch style.Direction {
		case theme.Horizontal:
			content.Width += m.Width
			content.Height = max(content.Height, m.Height)
			if i > 0 {
				content.Width += style.Gap
			}
		default:
			content.Height += m.Height
			content.Width = max(content.Width, m.Width)
			if i > 0 {
				content.Height += style.Gap
			}
		}
	}

	return Size{
		Width:  content.Width + 2*style.Padding,
		Height: content.Height + 2*style.Padding,
	}
}

// layout places the children, pulling their measured size and validating
// their own layout depth first.
func (b *Box) layout(size Size) {
	style := b.style.Read()
	inner := Size{
		Width:  max(size.Width-2*style.Padding, 0),
		Height: max(size.Height-2*style.Padding, 0),
	}

	offset := style.Padding
	for _, child := range b.visibleChildren() {
		m := child.Measure()

		// stretched along the cross axis unless sized explicitly
		switch style.Direction {
		case theme.Horizontal:
			if child.height.Read() < 0 {
				m.Height = inner.Height
			}
			child.place(offset, style.Padding, m)
			offset += m.Width + style.Gap
		default:
			if child.width.Read() < 0 {
				m.Width = inner.Width
			}
			child.place(style.Padding, offset, m)
			offset += m.Height + style.Gap
		}

		child.component.Validate(aspect.FlagLayout)
	}
}

func (b *Box) Draw(dc *gg.Context) {
	if !b.Visible() {
		return
	}

	b.fillBounds(dc, b.style.Read().Background)

	for _, child := range b.Children() {
		child.Draw(dc)
	}
}

// HitTest returns the deepest enabled, visible widget under the stage
// point, nil if none.
func (b *Box) HitTest(x, y float64) Widget {
	if !b.Visible() || !b.Enabled() || !b.Contains(x, y) {
		return nil
	}

	children := b.Children()
	for i := len(children) - 1; i >= 0; i-- {
		switch child := children[i].(type) {
		case *Box:
			if hit := child.HitTest(x, y); hit != nil {
				return hit
			}
		default:
			cb := child.base()
			if cb.Visible() && cb.Enabled() && cb.Contains(x, y) {
				return child
			}
		}
	}

	return b
}
