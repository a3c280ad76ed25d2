// Package aspect is an incremental validation engine for retained-mode
// component trees.
//
// Every component owns a small dependency graph of aspects (styles,
// layout, transform, ...), each identified by one bit of a Flag.
// Mutators invalidate aspects, and the graph invalidates everything
// depending on them. Validation recomputes only what is requested and
// invalid, dependencies first.
//
// Components are linked into a tree. Invalidations of a component's
// cascading flags are pushed to its children, invalidations of a child
// matching its parent's bubbling flags are pushed to the parent:
//
//	root := aspect.NewComponent(
//	    aspect.WithName("root"),
//	    aspect.WithCascading(aspect.FlagStyles),
//	    aspect.WithBubbling(aspect.FlagLayout),
//	)
//	root.Register(aspect.FlagStyles, 0, 0, resolveStyles)
//	root.Register(aspect.FlagLayout, aspect.FlagStyles, 0, layout)
//
//	aspect.Frame(func() {
//	    root.Invalidate(aspect.FlagStyles)
//	}) // validates the whole tree once the frame returns
//
// The engine is not safe for concurrent use. Components belong to the
// goroutine that created them and each goroutine gets its own runtime.
//
// Misuse (bad registration, invalidating a dependency of the aspect being
// validated, over-broad nested validation, illegal tree mutations) panics
// immediately with a *GraphError, *TreeError or *ComponentPanic.
package aspect
