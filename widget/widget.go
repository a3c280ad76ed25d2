// Package widget provides concrete components built on the aspect engine:
// a stacking container, a text label and the stage driving them.
package widget

import (
	"github.com/gogpu/gg"

	"github.com/AnatoleLucet/aspect"
	"github.com/AnatoleLucet/aspect/theme"
)

// Size is a width and a height in pixels.
type Size struct {
	Width, Height float64
}

// unset marks an explicit dimension or an assigned size left to layout.
const unset = -1

// Widget is implemented by every component of this package.
type Widget interface {
	Component() *aspect.Component
	Draw(dc *gg.Context)

	base() *Base
}

// Option configures a widget during creation.
type Option func(*config)

type config struct {
	name  string
	style string
}

// WithName names the widget's component.
func WithName(name string) Option {
	return func(c *config) {
		c.name = name
	}
}

// WithStyle selects the theme style of the widget.
func WithStyle(name string) Option {
	return func(c *config) {
		c.style = name
	}
}

func newConfig(defaultName string, opts []Option) config {
	c := config{name: defaultName}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Base holds the state and aspects shared by every widget.
type Base struct {
	component *aspect.Component
	self      Widget

	// set on roots, inherited by descendants
	theme *theme.Theme

	styleName   *aspect.Property[string]
	width       *aspect.Property[float64]
	height      *aspect.Property[float64]
	x           *aspect.Property[float64]
	y           *aspect.Property[float64]
	rotation    *aspect.Property[float64]
	scale       *aspect.Property[float64]
	visible     *aspect.Property[bool]
	alpha       *aspect.Property[float64]
	interactive *aspect.Property[bool]
	// written by the parent's layout
	assigned *aspect.Property[Size]

	style       *aspect.Aspect[theme.Style]
	enabled     *aspect.Aspect[bool]
	constraints *aspect.Aspect[Size]
	size        *aspect.Aspect[Size]
	local       *aspect.Aspect[gg.Matrix]
	world       *aspect.Aspect[gg.Matrix]
	worldAlpha  *aspect.Aspect[float64]
	vertices    *aspect.Aspect[[4]gg.Point]
}

// hooks are the widget specific parts of the shared aspects.
type hooks struct {
	// content size, padding included
	measure func() Size
	// called at the end of the Layout aspect with the final size
	layout func(size Size)
}

func (b *Base) init(self Widget, cfg config, opts []aspect.Option, h hooks) {
	b.self = self
	b.component = aspect.NewComponent(append([]aspect.Option{
		aspect.WithName(cfg.name),
		aspect.WithHost(self),
	}, opts...)...)

	c := b.component

	b.styleName = aspect.NewProperty(c, cfg.style, aspect.FlagStyles)
	b.width = aspect.NewProperty[float64](c, unset, aspect.FlagSizeConstraints)
	b.height = aspect.NewProperty[float64](c, unset, aspect.FlagSizeConstraints)
	b.x = aspect.NewProperty[float64](c, 0, aspect.FlagTransform)
	b.y = aspect.NewProperty[float64](c, 0, aspect.FlagTransform)
	b.rotation = aspect.NewProperty[float64](c, 0, aspect.FlagTransform)
	b.scale = aspect.NewProperty[float64](c, 1, aspect.FlagTransform)
	b.visible = aspect.NewProperty(c, true, aspect.FlagLayoutMembership)
	b.alpha = aspect.NewProperty[float64](c, 1, aspect.FlagConcatenatedColor)
	b.interactive = aspect.NewProperty(c, true, aspect.FlagInteractiveMode)
	b.assigned = aspect.NewProperty(c, Size{unset, unset}, aspect.FlagLayout)

	// markers, their invalidation is what matters
	c.Register(aspect.FlagHierarchyDescending, 0, 0, nil)
	c.Register(aspect.FlagHierarchyAscending, 0, 0, nil)
	c.Register(aspect.FlagLayoutMembership, 0, 0, nil)
	c.Register(aspect.FlagProperties, 0, 0, nil)

	b.enabled = aspect.NewAspect(c, aspect.FlagInteractiveMode, aspect.FlagHierarchyDescending, 0,
		func(bool) bool {
			if p := b.parent(); p != nil && !p.Enabled() {
				return false
			}
			return b.interactive.Read()
		})

	b.style = aspect.NewAspect(c, aspect.FlagStyles, aspect.FlagHierarchyDescending, 0,
		func(theme.Style) theme.Style {
			return b.resolveTheme().Resolve(b.styleName.Read())
		})

	b.constraints = aspect.NewAspect(c, aspect.FlagSizeConstraints,
		aspect.FlagStyles|aspect.FlagProperties|aspect.FlagHierarchyAscending, 0,
		func(Size) Size {
			m := h.measure()
			if w := b.width.Read(); w >= 0 {
				m.Width = w
			}
			if ht := b.height.Read(); ht >= 0 {
				m.Height = ht
			}
			return m
		})

	b.size = aspect.NewAspect(c, aspect.FlagLayout, aspect.FlagSizeConstraints, 0,
		func(Size) Size {
			size := b.constraints.Read()
			if a := b.assigned.Read(); a.Width >= 0 && a.Height >= 0 {
				size = a
			}
			if h.layout != nil {
				h.layout(size)
			}
			return size
		})

	b.local = aspect.NewAspect(c, aspect.FlagTransform, aspect.FlagLayout, 0,
		func(gg.Matrix) gg.Matrix {
			size := b.size.Read()
			m := gg.Translate(b.x.Read(), b.y.Read())
			if r, s := b.rotation.Read(), b.scale.Read(); r != 0 || s != 1 {
				cx, cy := size.Width/2, size.Height/2
				m = m.Multiply(gg.Translate(cx, cy)).
					Multiply(gg.Rotate(r)).
					Multiply(gg.Scale(s, s)).
					Multiply(gg.Translate(-cx, -cy))
			}
			return m
		})

	b.world = aspect.NewAspect(c, aspect.FlagConcatenatedTransform,
		aspect.FlagTransform|aspect.FlagHierarchyDescending, 0,
		func(gg.Matrix) gg.Matrix {
			local := b.local.Read()
			if p := b.parent(); p != nil {
				return p.WorldTransform().Multiply(local)
			}
			return local
		})

	b.worldAlpha = aspect.NewAspect(c, aspect.FlagConcatenatedColor, aspect.FlagHierarchyDescending, 0,
		func(float64) float64 {
			alpha := b.alpha.Read()
			if p := b.parent(); p != nil {
				alpha *= p.WorldAlpha()
			}
			return alpha
		})

	b.vertices = aspect.NewAspect(c, aspect.FlagVertices,
		aspect.FlagLayout|aspect.FlagConcatenatedTransform|aspect.FlagConcatenatedColor|aspect.FlagStyles, 0,
		func([4]gg.Point) [4]gg.Point {
			size := b.size.Read()
			world := b.world.Read()
			return [4]gg.Point{
				world.TransformPoint(gg.Pt(0, 0)),
				world.TransformPoint(gg.Pt(size.Width, 0)),
				world.TransformPoint(gg.Pt(size.Width, size.Height)),
				world.TransformPoint(gg.Pt(0, size.Height)),
			}
		})
}

func (b *Base) base() *Base { return b }

func (b *Base) Component() *aspect.Component { return b.component }

// parent returns the widget holding b, nil for roots.
func (b *Base) parent() *Base {
	p := b.component.Parent()
	if p == nil {
		return nil
	}
	if w, ok := p.Host().(Widget); ok {
		return w.base()
	}
	return nil
}

func (b *Base) resolveTheme() *theme.Theme {
	for n := b; n != nil; n = n.parent() {
		if n.theme != nil {
			return n.theme
		}
	}
	return theme.Default()
}

// SetTheme sets the theme of b and every descendant without a theme.
func (b *Base) SetTheme(t *theme.Theme) {
	if b.theme == t {
		return
	}
	b.theme = t
	b.component.Invalidate(aspect.FlagStyles)
}

func (b *Base) StyleName() string { return b.styleName.Read() }

func (b *Base) SetStyleName(name string) { b.styleName.Write(name) }

// Style returns the resolved style.
func (b *Base) Style() theme.Style { return b.style.Read() }

func (b *Base) Position() (x, y float64) { return b.x.Read(), b.y.Read() }

// SetPosition moves the widget within its parent. Containers override it
// for the children they lay out.
func (b *Base) SetPosition(x, y float64) {
	b.x.Write(x)
	b.y.Write(y)
}

// SetSize fixes the widget's measured size, unset (negative) dimensions
// are measured from content.
func (b *Base) SetSize(width, height float64) {
	b.width.Write(max(width, unset))
	b.height.Write(max(height, unset))
}

// Size returns the final size from the last layout.
func (b *Base) Size() Size { return b.size.Read() }

// Measure returns the size the widget asks its parent for.
func (b *Base) Measure() Size { return b.constraints.Read() }

func (b *Base) Visible() bool { return b.visible.Read() }

// SetVisible adds or removes the widget from its parent's layout.
func (b *Base) SetVisible(visible bool) { b.visible.Write(visible) }

func (b *Base) Alpha() float64 { return b.alpha.Read() }

func (b *Base) SetAlpha(alpha float64) { b.alpha.Write(min(max(alpha, 0), 1)) }

func (b *Base) Rotation() float64 { return b.rotation.Read() }

// SetRotation rotates the widget about its center, in radians.
func (b *Base) SetRotation(angle float64) { b.rotation.Write(angle) }

func (b *Base) SetScale(scale float64) { b.scale.Write(scale) }

func (b *Base) SetInteractive(interactive bool) { b.interactive.Write(interactive) }

// Enabled reports whether the widget and all its ancestors are interactive.
func (b *Base) Enabled() bool { return b.enabled.Read() }

// WorldTransform maps the widget's local space to the stage.
func (b *Base) WorldTransform() gg.Matrix { return b.world.Read() }

// WorldAlpha is the widget's alpha multiplied by its ancestors'.
func (b *Base) WorldAlpha() float64 { return b.worldAlpha.Read() }

// Bounds returns the widget's corners in stage space.
func (b *Base) Bounds() [4]gg.Point { return b.vertices.Read() }

// Contains reports whether the stage point lies inside the widget.
func (b *Base) Contains(x, y float64) bool {
	size := b.size.Read()
	p := b.world.Read().Invert().TransformPoint(gg.Pt(x, y))
	return p.X >= 0 && p.Y >= 0 && p.X < size.Width && p.Y < size.Height
}

// place is called by the parent's layout.
func (b *Base) place(x, y float64, size Size) {
	b.x.Write(x)
	b.y.Write(y)
	b.assigned.Write(size)
}

func (b *Base) fillBounds(dc *gg.Context, col gg.RGBA) {
	quad := b.vertices.Read()

	col.A *= b.worldAlpha.Read()
	if col.A <= 0 {
		return
	}

	dc.Push()
	dc.Identity()
	dc.MoveTo(quad[0].X, quad[0].Y)
	for _, p := range quad[1:] {
		dc.LineTo(p.X, p.Y)
	}
	dc.ClosePath()
	dc.SetColor(col.Color())
	if err := dc.Fill(); err != nil {
		aspect.Logger().Warn("fill failed", "widget", b.component.Path(), "err", err)
	}
	dc.Pop()
}

// Dispose removes the widget from its parent and releases it.
func (b *Base) Dispose() { b.component.Dispose() }
