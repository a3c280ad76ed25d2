package internal

type Tracker struct {
	// components whose graph is validating, innermost last
	stack []*Component
}

func NewTracker() *Tracker {
	return &Tracker{}
}

func (t *Tracker) RunWithComponent(c *Component, fn func()) {
	defer c.recover()

	t.stack = append(t.stack, c)
	defer func() { t.stack = t.stack[:len(t.stack)-1] }()

	fn()
}

// Current returns the innermost validating component, nil when idle.
func (t *Tracker) Current() *Component {
	if len(t.stack) == 0 {
		return nil
	}
	return t.stack[len(t.stack)-1]
}

func (c *Component) recover() {
	r := recover()
	if r == nil {
		return
	}

	for _, catcher := range c.catchers {
		catcher(r)
	}

	if _, ok := r.(*ComponentPanic); ok {
		panic(r)
	}
	panic(&ComponentPanic{Path: c.Path(), Value: r})
}
