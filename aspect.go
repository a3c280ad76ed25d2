package aspect

import (
	"iter"

	"github.com/AnatoleLucet/aspect/internal"
)

// Component is a node of the tree owning one validation graph.
type Component struct {
	component *internal.Component
	host      any
}

// NewComponent creates a detached component on the calling goroutine's
// runtime.
func NewComponent(opts ...Option) *Component {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	c := &Component{
		component: internal.GetRuntime().NewComponent(o.name),
		host:      o.host,
	}
	c.component.SetHost(c)
	c.component.SetCascading(o.cascading)
	c.component.SetBubbling(o.bubbling)
	c.component.SetMembership(o.membership)

	return c
}

func wrap(c *internal.Component) *Component {
	if c == nil {
		return nil
	}
	return c.Host().(*Component)
}

// Register adds the aspect flag, validated by onValidate once every flag in
// dependencies is valid, and invalidating dependents whenever it is
// invalidated. Aspects are registered once, while constructing the
// component. Misuse panics with a *GraphError.
func (c *Component) Register(flag, dependencies, dependents Flag, onValidate func()) {
	c.component.Register(flag, dependencies, dependents, onValidate)
}

// Invalidate invalidates flags, their dependents, and propagates the change
// through the tree. It returns the flags that went from valid to invalid.
func (c *Component) Invalidate(flags Flag) Flag {
	return c.component.Invalidate(flags)
}

// InvalidateAll invalidates every registered aspect.
func (c *Component) InvalidateAll() Flag {
	return c.component.Invalidate(FlagAll)
}

// Validate recomputes the invalid aspects among flags, dependencies first,
// and returns the flags that went from invalid to valid.
func (c *Component) Validate(flags Flag) Flag {
	return c.component.Validate(flags)
}

// ValidateAll validates every registered aspect.
func (c *Component) ValidateAll() Flag {
	return c.component.Validate(FlagAll)
}

// IsValid reports whether every bit of flag is registered and valid.
func (c *Component) IsValid(flag Flag) bool {
	return c.component.IsValid(flag)
}

// Invalid returns the currently invalid aspects.
func (c *Component) Invalid() Flag {
	return c.component.Graph().Invalid()
}

// Registered returns every registered aspect.
func (c *Component) Registered() Flag {
	return c.component.Graph().Registered()
}

// Validating returns the aspects whose validation is in progress.
func (c *Component) Validating() Flag {
	return c.component.Graph().Validating()
}

func (c *Component) Name() string { return c.component.Name() }

func (c *Component) Path() string { return c.component.Path() }

// Host returns the value set with WithHost or SetHost.
func (c *Component) Host() any { return c.host }

func (c *Component) SetHost(host any) { c.host = host }

func (c *Component) Cascading() Flag { return c.component.Cascading() }

func (c *Component) SetCascading(flags Flag) { c.component.SetCascading(flags) }

func (c *Component) Bubbling() Flag { return c.component.Bubbling() }

func (c *Component) SetBubbling(flags Flag) { c.component.SetBubbling(flags) }

func (c *Component) Membership() Flag { return c.component.Membership() }

func (c *Component) SetMembership(flags Flag) { c.component.SetMembership(flags) }

func (c *Component) Parent() *Component { return wrap(c.component.Parent()) }

func (c *Component) Depth() int { return c.component.Depth() }

func (c *Component) NumChildren() int { return c.component.NumChildren() }

func (c *Component) ChildAt(index int) *Component { return wrap(c.component.ChildAt(index)) }

func (c *Component) IndexOf(child *Component) int {
	if child == nil {
		return -1
	}
	return c.component.IndexOf(child.component)
}

// Children iterates the children in order.
func (c *Component) Children() iter.Seq[*Component] {
	return func(yield func(*Component) bool) {
		for child := range c.component.Children() {
			if !yield(wrap(child)) {
				return
			}
		}
	}
}

// AddChild appends child. The child is invalidated with c's cascading
// flags and c with its bubbling flags.
func (c *Component) AddChild(child *Component) { c.component.AddChild(child.component) }

// AddChildAt inserts child before the child at index.
func (c *Component) AddChildAt(child *Component, index int) {
	c.component.AddChildAt(child.component, index)
}

func (c *Component) RemoveChild(child *Component) { c.component.RemoveChild(child.component) }

func (c *Component) RemoveChildren() { c.component.RemoveChildren() }

// OnInvalidate calls fn with the flags that changed every time an
// invalidation of c reports a change. Call Cancel to stop.
func (c *Component) OnInvalidate(fn func(changed Flag)) *Subscription {
	return &Subscription{c.component.OnInvalidate(fn)}
}

// Dispose detaches the component, disposes its children and runs the
// functions registered with OnDispose.
func (c *Component) Dispose() { c.component.Dispose() }

func (c *Component) Disposed() bool { return c.component.Disposed() }

// OnDispose registers fn to be called when the component is disposed.
func (c *Component) OnDispose(fn func()) { c.component.OnDispose(fn) }

// OnError registers an observer of panics raised while the component
// validates. The panic still propagates once observers ran.
func (c *Component) OnError(fn func(any)) { c.component.OnError(fn) }

// Subscription is an active OnInvalidate listener.
type Subscription struct {
	sub *internal.Subscription
}

func (s *Subscription) Cancel() { s.sub.Cancel() }

// Frame runs fn and, once the outermost Frame returns, validates every
// invalidated component top-down and runs the effects queued with
// OnRender and AfterFrame.
func Frame(fn func()) {
	internal.GetRuntime().Frame(fn)
}

// Flush validates every invalidated component now.
func Flush() {
	internal.GetRuntime().Flush()
}

// OnRender queues fn to run once after the next flush, before the
// AfterFrame callbacks.
func OnRender(fn func()) {
	internal.GetRuntime().AfterFrame(internal.EffectRender, fn)
}

// AfterFrame queues fn to run once after the next flush.
func AfterFrame(fn func()) {
	internal.GetRuntime().AfterFrame(internal.EffectUser, fn)
}

// Frames returns how many flushes completed on this goroutine.
func Frames() int {
	return internal.GetRuntime().Frames()
}

// Pending returns how many components wait for the next flush.
func Pending() int {
	return internal.GetRuntime().Pending()
}

// Validating returns the innermost component whose validation is running.
func Validating() *Component {
	return wrap(internal.GetRuntime().CurrentComponent())
}
