package internal

// SetCascading sets the flags whose invalidation on c is pushed down to
// every child.
func (c *Component) SetCascading(flags Flag) { c.cascading = flags }

// SetBubbling sets the flags whose invalidation on a child invalidates the
// same flags on c.
func (c *Component) SetBubbling(flags Flag) { c.bubbling = flags }

// SetMembership sets the flags of c invalidated whenever a child's
// FlagLayoutMembership changes, even while c is validating them.
func (c *Component) SetMembership(flags Flag) { c.membership = flags }

func (c *Component) Cascading() Flag { return c.cascading }

func (c *Component) Bubbling() Flag { return c.bubbling }

func (c *Component) Membership() Flag { return c.membership }

// attach wires a freshly linked child into c's propagation.
func (c *Component) attach(child *Component) {
	child.cascadeLink = c.OnInvalidate(func(changed Flag) {
		c.cascade(child, changed)
	})
	child.bubbleLink = child.OnInvalidate(func(changed Flag) {
		c.bubble(changed)
	})

	child.Invalidate(c.cascading | FlagHierarchyDescending)
	c.invalidateFromChildren((c.bubbling | FlagHierarchyAscending) &^ c.graph.Validating())
}

func (c *Component) detach(child *Component) {
	child.cascadeLink.Cancel()
	child.bubbleLink.Cancel()
	child.cascadeLink = nil
	child.bubbleLink = nil
}

func (c *Component) afterDetach(child *Component) {
	child.Invalidate(c.cascading | FlagHierarchyDescending)
	c.invalidateFromChildren((c.bubbling | FlagHierarchyAscending) &^ c.graph.Validating())
}

func (c *Component) cascade(child *Component, changed Flag) {
	flags := changed & c.cascading
	if flags == 0 {
		return
	}

	debug("cascade", "from", c.Path(), "to", child.Path(), "flags", flags)
	child.Invalidate(flags)
}

func (c *Component) bubble(changed Flag) {
	var flags Flag

	// a child never interrupts the aspects c is running
	if bubbled := changed & c.bubbling &^ c.graph.Validating(); bubbled != 0 {
		flags = bubbled | FlagHierarchyAscending
	}

	// a child joining or leaving the layout always counts, even for the
	// aspect c is validating right now
	if changed&FlagLayoutMembership != 0 {
		flags |= c.membership
	}

	if flags == 0 {
		return
	}

	debug("bubble", "to", c.Path(), "flags", flags)
	c.invalidateFromChildren(flags)
}

// invalidateFromChildren invalidates flags on c. Flags the running pass
// depends on cannot be invalidated yet: they are kept and invalidated once
// the pass returns.
func (c *Component) invalidateFromChildren(flags Flag) {
	flags &= c.graph.Registered()

	if later := flags & c.graph.Locked() &^ c.graph.Current(); later != 0 {
		debug("invalidation deferred", "component", c.Path(), "flags", later)
		c.deferred |= later
		flags &^= later
	}

	if flags != 0 {
		c.Invalidate(flags)
	}
}

// flushDeferred invalidates what children reported during c's last pass.
func (c *Component) flushDeferred() {
	if c.deferred == 0 || c.graph.Locked() != 0 {
		return
	}

	flags := c.deferred
	c.deferred = 0
	c.Invalidate(flags)
}
