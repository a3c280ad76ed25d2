package widget

import (
	"fmt"
	"image"

	"github.com/gogpu/gg"

	"github.com/AnatoleLucet/aspect"
	"github.com/AnatoleLucet/aspect/theme"
)

// Stage is the root of a widget tree bound to a drawing target. Each frame
// validates the invalidated part of the tree and redraws it.
type Stage struct {
	root *Box
	dc   *gg.Context

	background gg.RGBA
	renders    int
}

// StageOption configures a Stage during creation.
type StageOption func(*stageOptions)

type stageOptions struct {
	theme      *theme.Theme
	dc         *gg.Context
	background gg.RGBA
}

// WithTheme sets the theme the whole tree resolves its styles from.
func WithTheme(t *theme.Theme) StageOption {
	return func(o *stageOptions) {
		o.theme = t
	}
}

// WithContext renders into dc instead of a new software context, for
// instance one backed by a GPU accelerator.
func WithContext(dc *gg.Context) StageOption {
	return func(o *stageOptions) {
		o.dc = dc
	}
}

// WithBackground sets the color the target is cleared with every frame.
func WithBackground(col gg.RGBA) StageOption {
	return func(o *stageOptions) {
		o.background = col
	}
}

func NewStage(width, height int, opts ...StageOption) *Stage {
	o := stageOptions{
		theme:      theme.Default(),
		background: gg.RGB(1, 1, 1),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.dc == nil {
		o.dc = gg.NewContext(width, height)
	}

	s := &Stage{
		root:       NewBox(WithName("stage")),
		dc:         o.dc,
		background: o.background,
	}
	s.root.SetTheme(o.theme)
	s.root.place(0, 0, Size{Width: float64(width), Height: float64(height)})

	return s
}

func (s *Stage) Root() *Box { return s.root }

func (s *Stage) Context() *gg.Context { return s.dc }

func (s *Stage) SetTheme(t *theme.Theme) { s.root.SetTheme(t) }

// Frame runs fn, then validates the tree top-down and redraws it.
func (s *Stage) Frame(fn func()) {
	aspect.Frame(func() {
		if fn != nil {
			fn()
		}
		aspect.OnRender(s.render)
	})
}

func (s *Stage) render() {
	s.dc.ClearWithColor(s.background)
	s.root.Draw(s.dc)
	s.renders++

	aspect.Logger().Debug("stage rendered", "renders", s.renders)
}

// Renders returns how many times the stage was drawn.
func (s *Stage) Renders() int { return s.renders }

// HitTest returns the deepest enabled widget under the point, nil if none.
func (s *Stage) HitTest(x, y float64) Widget {
	return s.root.HitTest(x, y)
}

func (s *Stage) Image() image.Image {
	return s.dc.Image()
}

func (s *Stage) SavePNG(path string) error {
	if err := s.dc.SavePNG(path); err != nil {
		return fmt.Errorf("stage: save %s: %w", path, err)
	}
	return nil
}

// Close disposes the tree and releases the drawing target.
func (s *Stage) Close() error {
	s.root.Dispose()
	return s.dc.Close()
}
