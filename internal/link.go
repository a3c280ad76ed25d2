package internal

// Subscription links an emitting component to a handler of its
// invalidations. Subscriptions of one emitter form a doubly linked list
// whose head's prev loops to the tail.
type Subscription struct {
	source *Component
	fn     func(changed Flag)

	prev *Subscription
	next *Subscription
}

// OnInvalidate calls fn with the changed flags every time an Invalidate
// on c reports a change. The returned subscription stays active until
// cancelled or until c is disposed.
func (c *Component) OnInvalidate(fn func(changed Flag)) *Subscription {
	s := &Subscription{source: c, fn: fn}
	c.addSubscription(s)
	return s
}

// Cancel detaches the subscription. Cancelling twice is a no-op.
func (s *Subscription) Cancel() {
	if s == nil || s.source == nil {
		return
	}
	s.source.removeSubscription(s)
	s.source = nil
}

func (c *Component) addSubscription(s *Subscription) {
	if c.subsHead == nil {
		c.subsHead = s
		s.prev = s // loop to self
		s.next = nil
	} else {
		tail := c.subsHead.prev
		tail.next = s
		s.prev = tail
		s.next = nil
		c.subsHead.prev = s
	}
}

func (c *Component) removeSubscription(s *Subscription) {
	// single subscription
	if s.prev == s {
		c.subsHead = nil
		return
	}

	head := c.subsHead
	if s == head {
		c.subsHead = s.next
	} else {
		s.prev.next = s.next
	}

	next := s.next
	if next == nil {
		next = c.subsHead
	}
	next.prev = s.prev

	// next is kept so an emit standing on s can move on
	s.prev = s
}

func (c *Component) emit(changed Flag) {
	for s := c.subsHead; s != nil; {
		next := s.next
		if s.source != nil {
			s.fn(changed)
		}
		s = next
	}
}
