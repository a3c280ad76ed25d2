package internal

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidFlag          = errors.New("flag must have exactly one bit set")
	ErrDuplicateFlag        = errors.New("flag already registered")
	ErrUnknownFlag          = errors.New("flag not registered")
	ErrCycle                = errors.New("dependency cycle")
	ErrOrder                = errors.New("dependency stored after dependent")
	ErrInvalidateDependency = errors.New("invalidating a dependency of the validating aspect")
	ErrNestedValidation     = errors.New("nested validation outside the validating aspect's dependencies")
	ErrValidating           = errors.New("graph is validating")
	ErrRequeueLimit         = errors.New("aspect keeps invalidating itself")

	ErrHasParent = errors.New("component already has a parent")
	ErrNotChild  = errors.New("component is not a child")
	ErrIndex     = errors.New("child index out of range")
	ErrDisposed  = errors.New("component is disposed")
	ErrGoroutine = errors.New("component used outside the goroutine that created it")
)

// GraphError is raised (as a panic value) when a validation graph is misused.
type GraphError struct {
	Op   string
	Flag Flag
	Err  error
}

func (e *GraphError) Error() string {
	return fmt.Sprintf("aspect: %s %s: %v", e.Op, e.Flag, e.Err)
}

func (e *GraphError) Unwrap() error { return e.Err }

// TreeError is raised (as a panic value) on an illegal tree mutation.
type TreeError struct {
	Op   string
	Path string
	Err  error
}

func (e *TreeError) Error() string {
	return fmt.Sprintf("aspect: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *TreeError) Unwrap() error { return e.Err }

// ComponentPanic wraps a panic that escaped a component's validation pass
// with the path of the component that was validating.
type ComponentPanic struct {
	Path  string
	Value any
}

func (p *ComponentPanic) Error() string {
	return fmt.Sprintf("aspect: validating %s: %v", p.Path, p.Value)
}

func (p *ComponentPanic) Unwrap() error {
	if err, ok := p.Value.(error); ok {
		return err
	}
	return nil
}
