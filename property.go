package aspect

// Property is a value of a component whose writes invalidate aspects.
type Property[T comparable] struct {
	owner *Component
	flags Flag

	value T
}

// NewProperty creates a property of owner invalidating flags on change.
func NewProperty[T comparable](owner *Component, initial T, flags Flag) *Property[T] {
	return &Property[T]{
		owner: owner,
		flags: flags,
		value: initial,
	}
}

func (p *Property[T]) Read() T {
	return p.value
}

// Write stores v and invalidates the property's flags if it differs from
// the current value. It reports whether the value changed.
func (p *Property[T]) Write(v T) bool {
	if p.value == v {
		return false
	}

	p.value = v
	p.owner.Invalidate(p.flags)
	return true
}

// Aspect is a value cached by one aspect of a component, recomputed when
// the aspect is validated.
type Aspect[T any] struct {
	owner *Component
	flag  Flag

	value T
}

// NewAspect registers flag on owner and caches the result of compute,
// called with the previous value, each time the aspect is validated.
func NewAspect[T any](owner *Component, flag, dependencies, dependents Flag, compute func(prev T) T) *Aspect[T] {
	a := &Aspect[T]{owner: owner, flag: flag}

	owner.Register(flag, dependencies, dependents, func() {
		a.value = compute(a.value)
	})

	return a
}

// Read validates the aspect if needed and returns its value. Read from
// inside another aspect's validation of the same component only when the
// aspect is one of its declared dependencies.
func (a *Aspect[T]) Read() T {
	a.owner.Validate(a.flag)
	return a.value
}

// Peek returns the cached value without validating.
func (a *Aspect[T]) Peek() T {
	return a.value
}

func (a *Aspect[T]) Flag() Flag {
	return a.flag
}

func (a *Aspect[T]) Valid() bool {
	return a.owner.IsValid(a.flag)
}
