package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCascade(t *testing.T) {
	t.Run("reaches every descendant once", func(t *testing.T) {
		log := []string{}

		r := NewRuntime()
		newStyled := func(name string) *Component {
			c := r.NewComponent(name)
			c.SetCascading(FlagStyles)
			c.Register(FlagStyles, 0, 0, logger(&log, name))
			return c
		}

		p, a, b, g := newStyled("p"), newStyled("a"), newStyled("b"), newStyled("g")
		r.Frame(func() {
			p.AddChild(a)
			a.AddChild(g)
			p.AddChild(b)
		})
		log = nil

		p.Invalidate(FlagStyles)
		r.Flush()

		assert.Equal(t, []string{"p", "a", "b", "g"}, log)
	})

	t.Run("only pushes cascading flags", func(t *testing.T) {
		r := NewRuntime()
		p, c := r.NewComponent("p"), r.NewComponent("c")
		p.SetCascading(FlagStyles)
		for _, n := range []*Component{p, c} {
			n.Register(FlagStyles, 0, 0, nil)
			n.Register(FlagLayout, 0, 0, nil)
		}
		p.AddChild(c)
		r.Flush()

		p.Invalidate(FlagLayout)
		assert.True(t, c.IsValid(FlagLayout))

		p.Invalidate(FlagStyles)
		assert.False(t, c.IsValid(FlagStyles))
	})

	t.Run("stops once detached", func(t *testing.T) {
		r := NewRuntime()
		p, c := r.NewComponent("p"), r.NewComponent("c")
		p.SetCascading(FlagStyles)
		p.Register(FlagStyles, 0, 0, nil)
		c.Register(FlagStyles, 0, 0, nil)
		p.AddChild(c)
		p.RemoveChild(c)
		r.Flush()

		p.Invalidate(FlagStyles)
		assert.True(t, c.IsValid(FlagStyles))
	})
}

func TestBubble(t *testing.T) {
	newPair := func(r *Runtime, onLayout func()) (p, c *Component) {
		p, c = r.NewComponent("p"), r.NewComponent("c")
		p.SetBubbling(FlagLayout)
		p.Register(FlagLayout, 0, 0, onLayout)
		c.Register(FlagLayout, 0, 0, nil)
		p.AddChild(c)
		r.Flush()
		return p, c
	}

	t.Run("invalidates the parent", func(t *testing.T) {
		r := NewRuntime()
		p, c := newPair(r, nil)
		require.True(t, p.IsValid(FlagLayout))

		c.Invalidate(FlagLayout)
		assert.False(t, p.IsValid(FlagLayout))
	})

	t.Run("does not interrupt a parent laying out", func(t *testing.T) {
		runs := 0
		var c *Component

		r := NewRuntime()
		p, c := newPair(r, func() {
			runs++
			if c != nil {
				c.Invalidate(FlagLayout)
				c.Validate(FlagLayout)
			}
		})
		runs = 0

		p.Invalidate(FlagLayout)
		p.Validate(FlagLayout)

		assert.Equal(t, 1, runs)
		assert.True(t, p.IsValid(FlagLayout))
		assert.True(t, c.IsValid(FlagLayout))
	})

	t.Run("replays a change the running aspect depended on", func(t *testing.T) {
		layouts, arm := 0, false
		var c *Component

		r := NewRuntime()
		p := r.NewComponent("p")
		c = r.NewComponent("c")
		p.SetBubbling(FlagLayout)
		p.Register(FlagLayout, 0, 0, func() { layouts++ })
		p.Register(flagVertices, FlagLayout, 0, func() {
			if arm {
				arm = false
				c.Invalidate(FlagLayout)
			}
		})
		c.Register(FlagLayout, 0, 0, nil)
		p.AddChild(c)
		r.Flush()

		layouts, arm = 0, true
		p.Invalidate(flagVertices)

		assert.Equal(t, flagVertices, p.Validate(FlagAll))
		assert.False(t, p.IsValid(FlagLayout))
		assert.False(t, p.IsValid(flagVertices))

		r.Flush()

		assert.Equal(t, 1, layouts)
		assert.True(t, p.IsValid(FlagLayout|flagVertices))
		assert.True(t, c.IsValid(FlagLayout))
	})

	t.Run("only bubbles bubbling flags", func(t *testing.T) {
		r := NewRuntime()
		p, c := newPair(r, nil)
		c.Register(FlagStyles, 0, 0, nil)
		p.Register(FlagStyles, 0, 0, nil)
		r.Flush()

		c.Invalidate(FlagStyles)
		assert.True(t, p.IsValid(FlagStyles))
		assert.True(t, p.IsValid(FlagLayout))
	})
}

func TestMembership(t *testing.T) {
	t.Run("invalidates the parent even while laying out", func(t *testing.T) {
		runs := 0
		arm := false
		var c *Component

		r := NewRuntime()
		p := r.NewComponent("p")
		c = r.NewComponent("c")
		p.SetMembership(FlagLayout)
		p.Register(FlagLayout, 0, 0, func() {
			runs++
			if arm {
				arm = false
				c.Invalidate(FlagLayoutMembership)
			}
		})
		c.Register(FlagLayoutMembership, 0, 0, nil)
		p.AddChild(c)
		r.Flush()

		runs, arm = 0, true
		p.Invalidate(FlagLayout)

		assert.Equal(t, FlagNone, p.Validate(FlagLayout))
		assert.False(t, p.IsValid(FlagLayout))

		assert.Equal(t, FlagLayout, p.Validate(FlagLayout))
		assert.Equal(t, 2, runs)
	})

	t.Run("invalidates aspects the running one depends on once it returns", func(t *testing.T) {
		measures, arm := 0, false
		var c *Component

		r := NewRuntime()
		p := r.NewComponent("p")
		c = r.NewComponent("c")
		p.SetMembership(FlagSizeConstraints | FlagLayout)
		p.Register(FlagSizeConstraints, 0, 0, func() { measures++ })
		p.Register(FlagLayout, FlagSizeConstraints, 0, func() {
			if arm {
				arm = false
				c.Invalidate(FlagLayoutMembership)
			}
		})
		c.Register(FlagLayoutMembership, 0, 0, nil)
		p.AddChild(c)
		r.Flush()

		measures, arm = 0, true
		p.Invalidate(FlagLayout)

		assert.Equal(t, FlagNone, p.Validate(FlagLayout))
		assert.False(t, p.IsValid(FlagSizeConstraints))
		assert.False(t, p.IsValid(FlagLayout))

		r.Flush()

		assert.Equal(t, 1, measures)
		assert.True(t, p.IsValid(FlagSizeConstraints|FlagLayout))
		assert.Equal(t, 0, r.Pending())
	})

	t.Run("is invalidated outside a pass", func(t *testing.T) {
		r := NewRuntime()
		p, c := r.NewComponent("p"), r.NewComponent("c")
		p.SetMembership(FlagLayout)
		p.Register(FlagLayout, 0, 0, nil)
		c.Register(FlagLayoutMembership, 0, 0, nil)
		p.AddChild(c)
		r.Flush()

		c.Invalidate(FlagLayoutMembership)
		assert.False(t, p.IsValid(FlagLayout))
	})
}

func TestHierarchyChanges(t *testing.T) {
	newLinked := func(r *Runtime) (p, c *Component) {
		p, c = r.NewComponent("p"), r.NewComponent("c")
		p.SetCascading(FlagStyles)
		p.SetBubbling(FlagLayout)
		p.Register(FlagHierarchyAscending, 0, 0, nil)
		p.Register(FlagLayout, FlagHierarchyAscending, 0, nil)
		c.Register(FlagHierarchyDescending, 0, 0, nil)
		c.Register(FlagStyles, FlagHierarchyDescending, 0, nil)
		r.Flush()
		return p, c
	}

	t.Run("adding a child", func(t *testing.T) {
		r := NewRuntime()
		p, c := newLinked(r)

		p.AddChild(c)

		assert.False(t, p.IsValid(FlagHierarchyAscending))
		assert.False(t, p.IsValid(FlagLayout))
		assert.False(t, c.IsValid(FlagHierarchyDescending))
		assert.False(t, c.IsValid(FlagStyles))
		assert.Equal(t, 2, r.Pending())
	})

	t.Run("removing a child", func(t *testing.T) {
		r := NewRuntime()
		p, c := newLinked(r)
		p.AddChild(c)
		r.Flush()

		p.RemoveChild(c)

		assert.False(t, p.IsValid(FlagLayout))
		assert.False(t, c.IsValid(FlagStyles))
	})
}
