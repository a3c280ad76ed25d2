package internal

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catchTreeError(t *testing.T, fn func()) (terr *TreeError) {
	t.Helper()

	defer func() {
		r := recover()
		require.NotNil(t, r, "expected a panic")

		err, ok := r.(error)
		require.True(t, ok, "panic value %v is not an error", r)
		require.True(t, errors.As(err, &terr), "panic %v is not a *TreeError", err)
	}()

	fn()
	return nil
}

func childNames(c *Component) []string {
	names := []string{}
	for child := range c.Children() {
		names = append(names, child.Name())
	}
	return names
}

func TestComponentTree(t *testing.T) {
	t.Run("keeps children in order", func(t *testing.T) {
		r := NewRuntime()
		p := r.NewComponent("p")
		a, b, c, z := r.NewComponent("a"), r.NewComponent("b"), r.NewComponent("c"), r.NewComponent("z")

		p.AddChild(a)
		p.AddChild(c)
		p.AddChildAt(b, 1)
		p.AddChildAt(z, 0)
		assert.Equal(t, []string{"z", "a", "b", "c"}, childNames(p))
		assert.Equal(t, 4, p.NumChildren())
		assert.Equal(t, 2, p.IndexOf(b))
		assert.Same(t, c, p.ChildAt(3))
		assert.Nil(t, p.ChildAt(4))

		p.RemoveChild(b)
		assert.Equal(t, []string{"z", "a", "c"}, childNames(p))
		p.RemoveChild(z)
		assert.Equal(t, []string{"a", "c"}, childNames(p))
		p.RemoveChild(c)
		assert.Equal(t, []string{"a"}, childNames(p))

		p.AddChild(b)
		assert.Equal(t, []string{"a", "b"}, childNames(p))
		assert.Equal(t, -1, p.IndexOf(c))
		assert.Nil(t, c.Parent())
	})

	t.Run("tracks depth", func(t *testing.T) {
		r := NewRuntime()
		p, c, g := r.NewComponent("p"), r.NewComponent("c"), r.NewComponent("g")

		c.AddChild(g)
		p.AddChild(c)
		assert.Equal(t, 1, c.Depth())
		assert.Equal(t, 2, g.Depth())

		p.RemoveChild(c)
		assert.Equal(t, 0, c.Depth())
		assert.Equal(t, 1, g.Depth())
	})

	t.Run("paths", func(t *testing.T) {
		r := NewRuntime()
		app, list, item := r.NewComponent("app"), r.NewComponent("list"), r.NewComponent("")

		app.AddChild(list)
		list.AddChild(r.NewComponent("first"))
		list.AddChild(item)

		assert.Equal(t, "/app/list", list.Path())
		assert.Equal(t, "/app/list/#1", item.Path())
	})

	t.Run("remove children", func(t *testing.T) {
		r := NewRuntime()
		p := r.NewComponent("p")
		p.AddChild(r.NewComponent("a"))
		p.AddChild(r.NewComponent("b"))

		p.RemoveChildren()
		assert.Equal(t, 0, p.NumChildren())
		assert.Empty(t, childNames(p))
	})

	t.Run("rejects a child that already has a parent", func(t *testing.T) {
		r := NewRuntime()
		p, q, c := r.NewComponent("p"), r.NewComponent("q"), r.NewComponent("c")
		p.AddChild(c)

		err := catchTreeError(t, func() { q.AddChild(c) })
		assert.ErrorIs(t, err, ErrHasParent)
	})

	t.Run("rejects cycles", func(t *testing.T) {
		r := NewRuntime()
		p, c := r.NewComponent("p"), r.NewComponent("c")
		p.AddChild(c)

		err := catchTreeError(t, func() { p.AddChild(p) })
		assert.ErrorIs(t, err, ErrCycle)

		err = catchTreeError(t, func() { c.AddChild(p) })
		assert.ErrorIs(t, err, ErrCycle)
	})

	t.Run("rejects out of range indexes", func(t *testing.T) {
		r := NewRuntime()
		p := r.NewComponent("p")

		err := catchTreeError(t, func() { p.AddChildAt(r.NewComponent("c"), 1) })
		assert.ErrorIs(t, err, ErrIndex)

		err = catchTreeError(t, func() { p.AddChildAt(r.NewComponent("c"), -1) })
		assert.ErrorIs(t, err, ErrIndex)
	})

	t.Run("rejects removing a stranger", func(t *testing.T) {
		r := NewRuntime()
		p := r.NewComponent("p")

		err := catchTreeError(t, func() { p.RemoveChild(r.NewComponent("c")) })
		assert.ErrorIs(t, err, ErrNotChild)

		err = catchTreeError(t, func() { p.RemoveChild(nil) })
		assert.ErrorIs(t, err, ErrNotChild)
	})

	t.Run("rejects components of another runtime", func(t *testing.T) {
		p := NewRuntime().NewComponent("p")
		c := NewRuntime().NewComponent("c")

		err := catchTreeError(t, func() { p.AddChild(c) })
		assert.ErrorIs(t, err, ErrGoroutine)
	})
}

func TestComponentDispose(t *testing.T) {
	t.Run("disposes children first", func(t *testing.T) {
		log := []string{}

		r := NewRuntime()
		p, c, g := r.NewComponent("p"), r.NewComponent("c"), r.NewComponent("g")
		p.AddChild(c)
		c.AddChild(g)

		p.OnDispose(func() { log = append(log, "p") })
		c.OnDispose(func() { log = append(log, "c") })
		g.OnDispose(func() { log = append(log, "g") })

		p.Dispose()

		assert.Equal(t, []string{"g", "c", "p"}, log)
		assert.True(t, p.Disposed())
		assert.True(t, c.Disposed())
		assert.True(t, g.Disposed())
		assert.Nil(t, c.Parent())
	})

	t.Run("detaches from the parent", func(t *testing.T) {
		r := NewRuntime()
		p, c := r.NewComponent("p"), r.NewComponent("c")
		p.AddChild(c)

		c.Dispose()

		assert.Equal(t, 0, p.NumChildren())
		assert.False(t, p.Disposed())
	})

	t.Run("is idempotent", func(t *testing.T) {
		count := 0

		c := NewRuntime().NewComponent("c")
		c.OnDispose(func() { count++ })

		c.Dispose()
		c.Dispose()

		assert.Equal(t, 1, count)
	})

	t.Run("unschedules and silences the component", func(t *testing.T) {
		r := NewRuntime()
		c := r.NewComponent("c")
		c.Register(FlagStyles, 0, 0, nil)
		require.Equal(t, 1, r.Pending())

		notified := false
		c.OnInvalidate(func(Flag) { notified = true })

		c.Dispose()

		assert.Equal(t, 0, r.Pending())
		assert.Equal(t, FlagNone, c.Invalidate(FlagAll))
		assert.False(t, notified)
	})

	t.Run("rejects further use", func(t *testing.T) {
		r := NewRuntime()
		c := r.NewComponent("c")
		c.Dispose()

		err := catchTreeError(t, func() { c.Register(FlagStyles, 0, 0, nil) })
		assert.ErrorIs(t, err, ErrDisposed)

		err = catchTreeError(t, func() { c.Validate(FlagAll) })
		assert.ErrorIs(t, err, ErrDisposed)

		err = catchTreeError(t, func() { r.NewComponent("p").AddChild(c) })
		assert.ErrorIs(t, err, ErrDisposed)
	})
}

func TestComponentValidate(t *testing.T) {
	t.Run("schedules registered aspects", func(t *testing.T) {
		r := NewRuntime()
		c := r.NewComponent("c")
		c.Register(FlagStyles, 0, 0, nil)

		assert.Equal(t, 1, r.Pending())

		assert.Equal(t, FlagStyles, c.Validate(FlagAll))
		assert.Equal(t, 0, r.Pending())
	})

	t.Run("stays scheduled while partially valid", func(t *testing.T) {
		r := NewRuntime()
		c := r.NewComponent("c")
		c.Register(FlagStyles, 0, 0, nil)
		c.Register(FlagLayout, FlagStyles, 0, nil)

		c.Validate(FlagStyles)
		assert.Equal(t, 1, r.Pending())
	})

	t.Run("tracks the validating component", func(t *testing.T) {
		r := NewRuntime()
		c := r.NewComponent("c")

		var current *Component
		c.Register(FlagStyles, 0, 0, func() { current = r.CurrentComponent() })

		c.Validate(FlagAll)

		assert.Same(t, c, current)
		assert.Nil(t, r.CurrentComponent())
	})

	t.Run("wraps panics with the component path", func(t *testing.T) {
		boom := errors.New("boom")
		observed := []any{}

		r := NewRuntime()
		p, c := r.NewComponent("p"), r.NewComponent("c")
		p.AddChild(c)

		c.Register(FlagStyles, 0, 0, func() { panic(boom) })
		p.Register(FlagLayout, 0, 0, func() { c.Validate(FlagStyles) })
		c.OnError(func(v any) { observed = append(observed, v) })

		var recovered any
		func() {
			defer func() { recovered = recover() }()
			p.Validate(FlagAll)
		}()

		var cp *ComponentPanic
		require.ErrorAs(t, recovered.(error), &cp)
		assert.Equal(t, "/p/c", cp.Path)
		assert.ErrorIs(t, cp, boom)
		assert.Equal(t, []any{boom}, observed)

		assert.Nil(t, r.CurrentComponent())
		assert.Equal(t, FlagNone, p.Graph().Current())
	})
}

func TestSubscriptions(t *testing.T) {
	t.Run("receives the changed flags", func(t *testing.T) {
		changes := []Flag{}

		r := NewRuntime()
		c := r.NewComponent("c")
		c.Register(FlagStyles, 0, 0, nil)
		c.Register(FlagLayout, FlagStyles, 0, nil)
		c.Validate(FlagAll)

		c.OnInvalidate(func(changed Flag) { changes = append(changes, changed) })

		c.Invalidate(FlagStyles)
		c.Invalidate(FlagStyles)
		c.Invalidate(FlagViewport)

		assert.Equal(t, []Flag{FlagStyles | FlagLayout}, changes)
	})

	t.Run("cancel", func(t *testing.T) {
		log := []string{}

		r := NewRuntime()
		c := r.NewComponent("c")
		c.Register(FlagStyles, 0, 0, nil)
		c.Validate(FlagAll)

		first := c.OnInvalidate(func(Flag) { log = append(log, "first") })
		c.OnInvalidate(func(Flag) { log = append(log, "second") })
		third := c.OnInvalidate(func(Flag) { log = append(log, "third") })

		first.Cancel()
		first.Cancel()
		third.Cancel()

		c.Invalidate(FlagStyles)
		assert.Equal(t, []string{"second"}, log)
	})

	t.Run("cancelled while emitting", func(t *testing.T) {
		log := []string{}

		r := NewRuntime()
		c := r.NewComponent("c")
		c.Register(FlagStyles, 0, 0, nil)
		c.Validate(FlagAll)

		var second *Subscription
		c.OnInvalidate(func(Flag) {
			log = append(log, "first")
			second.Cancel()
		})
		second = c.OnInvalidate(func(Flag) { log = append(log, "second") })
		c.OnInvalidate(func(Flag) { log = append(log, "third") })

		c.Invalidate(FlagStyles)
		assert.Equal(t, []string{"first", "third"}, log)
	})
}
