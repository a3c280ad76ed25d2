package internal

import (
	"iter"
	"strconv"
	"strings"
)

// Component owns one validation graph and its place in the tree.
type Component struct {
	name string

	// the value wrapping this component, set by the public facade
	host any

	runtime *Runtime
	graph   *Graph

	// propagation configuration, see propagation.go
	cascading  Flag
	bubbling   Flag
	membership Flag
	// flags children invalidated while c's pass depended on them
	deferred Flag

	depth int

	parent       *Component
	prevSibling  *Component // the first child's prevSibling loops to the last child
	nextSibling  *Component
	childrenHead *Component
	numChildren  int

	// invalidation subscribers
	subsHead *Subscription
	// this component's subscriptions on its parent and the parent's on it
	cascadeLink *Subscription
	bubbleLink  *Subscription

	// cleanup functions called when the component is disposed
	cleanups []func()

	// panic observers
	catchers []func(any)

	disposed bool
}

func (r *Runtime) NewComponent(name string) *Component {
	return &Component{
		name:    name,
		runtime: r,
		graph:   NewGraph(),
	}
}

func (c *Component) Host() any { return c.host }

func (c *Component) SetHost(host any) { c.host = host }

func (c *Component) Name() string { return c.name }

func (c *Component) SetName(name string) { c.name = name }

func (c *Component) Graph() *Graph { return c.graph }

func (c *Component) Runtime() *Runtime { return c.runtime }

// Register adds an aspect to the component's graph. New aspects start
// invalid, so the component is scheduled for the next flush.
func (c *Component) Register(flag, dependencies, dependents Flag, onValidate func()) {
	c.mustBeAlive("register")
	c.graph.AddNode(flag, dependencies, dependents, onValidate)
	c.runtime.heap.Insert(c)

	debug("aspect registered",
		"component", c.Path(),
		"flag", flag,
		"dependencies", c.graph.Dependencies(flag),
		"dependents", c.graph.Dependents(flag),
	)
}

// Invalidate invalidates flags and propagates the change to subscribers.
// Invalidating a disposed component is a no-op.
func (c *Component) Invalidate(flags Flag) Flag {
	if c.disposed {
		return FlagNone
	}

	changed := c.graph.Invalidate(flags)
	if changed == 0 {
		return changed
	}

	c.runtime.heap.Insert(c)
	c.emit(changed)

	return changed
}

// Validate validates flags on this component. Panics escaping the pass are
// reported to the component's error observers and re-raised with the
// component's path attached.
func (c *Component) Validate(flags Flag) Flag {
	c.mustBeAlive("validate")

	if flags&c.graph.Invalid() == 0 {
		return c.graph.Validate(flags)
	}

	var validated Flag
	c.runtime.tracker.RunWithComponent(c, func() {
		validated = c.graph.Validate(flags)
	})

	c.flushDeferred()

	if c.graph.Invalid() == 0 {
		c.runtime.heap.Remove(c)
	}

	if validated != 0 {
		debug("aspects validated", "component", c.Path(), "flags", validated)
	}

	return validated
}

func (c *Component) IsValid(flag Flag) bool {
	return c.graph.IsValid(flag)
}

func (c *Component) Parent() *Component { return c.parent }

func (c *Component) Depth() int { return c.depth }

func (c *Component) NumChildren() int { return c.numChildren }

func (c *Component) Disposed() bool { return c.disposed }

// Children iterates the children in order.
func (c *Component) Children() iter.Seq[*Component] {
	return func(yield func(*Component) bool) {
		child := c.childrenHead

		for child != nil {
			next := child.nextSibling
			if !yield(child) {
				return
			}

			child = next
		}
	}
}

// ChildAt returns the child at index, nil when out of range.
func (c *Component) ChildAt(index int) *Component {
	if index < 0 || index >= c.numChildren {
		return nil
	}

	i := 0
	for child := range c.Children() {
		if i == index {
			return child
		}
		i++
	}
	return nil
}

// IndexOf returns the position of child, -1 if it is not a child of c.
func (c *Component) IndexOf(child *Component) int {
	if child == nil || child.parent != c {
		return -1
	}

	i := 0
	for ch := range c.Children() {
		if ch == child {
			return i
		}
		i++
	}
	return -1
}

// Path returns the slash separated names from the root to c.
func (c *Component) Path() string {
	var parts []string
	for n := c; n != nil; n = n.parent {
		name := n.name
		if name == "" && n.parent != nil {
			name = "#" + strconv.Itoa(n.parent.IndexOf(n))
		}
		parts = append(parts, name)
	}

	var b strings.Builder
	for i := len(parts) - 1; i >= 0; i-- {
		b.WriteByte('/')
		b.WriteString(parts[i])
	}
	return b.String()
}

func (c *Component) AddChild(child *Component) {
	c.AddChildAt(child, c.numChildren)
}

// AddChildAt inserts child before the child currently at index.
func (c *Component) AddChildAt(child *Component, index int) {
	c.mustBeAlive("add child")
	child.mustBeAlive("add child")

	if child.runtime != c.runtime {
		panic(&TreeError{Op: "add child", Path: child.Path(), Err: ErrGoroutine})
	}
	if child.parent != nil {
		panic(&TreeError{Op: "add child", Path: child.Path(), Err: ErrHasParent})
	}
	for n := c; n != nil; n = n.parent {
		if n == child {
			panic(&TreeError{Op: "add child", Path: child.Path(), Err: ErrCycle})
		}
	}
	if index < 0 || index > c.numChildren {
		panic(&TreeError{Op: "add child", Path: c.Path() + "[" + strconv.Itoa(index) + "]", Err: ErrIndex})
	}

	c.linkChild(child, index)
	child.setDepth(c.depth + 1)
	c.attach(child)

	debug("child added", "parent", c.Path(), "child", child.Path(), "index", index)
}

func (c *Component) RemoveChild(child *Component) {
	c.mustBeAlive("remove child")

	if child == nil || child.parent != c {
		path := "<nil>"
		if child != nil {
			path = child.Path()
		}
		panic(&TreeError{Op: "remove child", Path: path, Err: ErrNotChild})
	}

	debug("child removed", "parent", c.Path(), "child", child.Path())

	c.detach(child)
	c.unlinkChild(child)
	child.setDepth(0)
	c.afterDetach(child)
}

func (c *Component) RemoveChildren() {
	for child := range c.Children() {
		c.RemoveChild(child)
	}
}

// Dispose detaches c from its parent, disposes its children and runs its
// cleanups. The graph and every subscription are discarded.
func (c *Component) Dispose() {
	if c.disposed {
		return
	}

	if c.parent != nil {
		c.parent.RemoveChild(c)
	}

	c.disposeTree()
}

func (c *Component) disposeTree() {
	for child := range c.Children() {
		c.detach(child)
		c.unlinkChild(child)
		child.disposeTree()
	}

	c.disposed = true
	c.runtime.heap.Remove(c)

	for s := c.subsHead; s != nil; {
		next := s.next
		s.source = nil
		s.prev, s.next = s, nil
		s = next
	}
	c.subsHead = nil

	for i := 0; i < len(c.cleanups); i++ {
		c.cleanups[i]()
	}
	c.cleanups = nil
	c.deferred = 0
	c.graph = NewGraph()
}

func (c *Component) OnDispose(fn func()) {
	c.cleanups = append(c.cleanups, fn)
}

// OnError registers an observer of panics raised while c validates.
// Observers cannot swallow the panic, it is re-raised once they ran.
func (c *Component) OnError(fn func(any)) {
	c.catchers = append(c.catchers, fn)
}

func (c *Component) mustBeAlive(op string) {
	if c.disposed {
		panic(&TreeError{Op: op, Path: c.Path(), Err: ErrDisposed})
	}
	if !c.runtime.Owned() {
		panic(&TreeError{Op: op, Path: c.Path(), Err: ErrGoroutine})
	}
}

func (c *Component) linkChild(child *Component, index int) {
	child.parent = c

	next := c.ChildAt(index)
	switch {
	case c.childrenHead == nil:
		c.childrenHead = child
		child.prevSibling = child // loop to self
		child.nextSibling = nil
	case next == nil:
		tail := c.childrenHead.prevSibling
		tail.nextSibling = child
		child.prevSibling = tail
		child.nextSibling = nil
		c.childrenHead.prevSibling = child
	case next == c.childrenHead:
		child.prevSibling = next.prevSibling
		child.nextSibling = next
		next.prevSibling = child
		c.childrenHead = child
	default:
		child.prevSibling = next.prevSibling
		child.nextSibling = next
		next.prevSibling.nextSibling = child
		next.prevSibling = child
	}

	c.numChildren++
}

func (c *Component) unlinkChild(child *Component) {
	// single child
	if child.prevSibling == child {
		c.childrenHead = nil
	} else {
		head := c.childrenHead
		if child == head {
			c.childrenHead = child.nextSibling
		} else {
			child.prevSibling.nextSibling = child.nextSibling
		}

		next := child.nextSibling
		if next == nil {
			next = c.childrenHead
		}
		next.prevSibling = child.prevSibling
	}

	child.parent = nil
	child.prevSibling = nil
	child.nextSibling = nil
	c.numChildren--
}

// setDepth moves the subtree to its new depth, keeping scheduled
// components in the right heap bucket.
func (c *Component) setDepth(depth int) {
	scheduled := c.runtime.heap.Contains(c)
	if scheduled {
		c.runtime.heap.Remove(c)
	}

	c.depth = depth

	if scheduled {
		c.runtime.heap.Insert(c)
	}

	for child := range c.Children() {
		child.setDepth(depth + 1)
	}
}
