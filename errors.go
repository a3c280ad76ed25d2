package aspect

import "github.com/AnatoleLucet/aspect/internal"

type (
	GraphError     = internal.GraphError
	TreeError      = internal.TreeError
	ComponentPanic = internal.ComponentPanic
)

var (
	ErrInvalidFlag          = internal.ErrInvalidFlag
	ErrDuplicateFlag        = internal.ErrDuplicateFlag
	ErrUnknownFlag          = internal.ErrUnknownFlag
	ErrCycle                = internal.ErrCycle
	ErrOrder                = internal.ErrOrder
	ErrInvalidateDependency = internal.ErrInvalidateDependency
	ErrNestedValidation     = internal.ErrNestedValidation
	ErrValidating           = internal.ErrValidating
	ErrRequeueLimit         = internal.ErrRequeueLimit

	ErrHasParent = internal.ErrHasParent
	ErrNotChild  = internal.ErrNotChild
	ErrIndex     = internal.ErrIndex
	ErrDisposed  = internal.ErrDisposed
	ErrGoroutine = internal.ErrGoroutine
)
