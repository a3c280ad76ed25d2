package internal

import (
	"math"
	"slices"
)

const noRewind = math.MaxInt

// consecutive passes an aspect may end by invalidating itself
const maxRequeues = 100

type validationNode struct {
	flag Flag

	// the node's own flag plus every flag transitively depending on it
	invalidationMask Flag
	// the node's own flag plus every flag it transitively depends on
	validationMask Flag

	onValidate func()

	valid bool
	// passes in a row that ended with the node invalidating itself
	requeues int
}

// Graph is the per-component dependency graph of lazily recomputed aspects.
//
// Nodes are kept in an order where every dependency is stored before its
// dependents, and each node carries its transitive masks, so both
// Invalidate and Validate are single left to right passes.
type Graph struct {
	nodes []validationNode

	registered Flag
	invalid    Flag

	// index of the node whose onValidate is executing, -1 when idle
	cursor int

	// flags of the nodes currently executing (nested passes included)
	validating Flag
	// union of the validation masks of the executing nodes
	locked Flag

	// lowest node index invalidated while a pass was running
	rewind int
	// the executing node invalidated its own flag
	requeued bool
}

func NewGraph() *Graph {
	return &Graph{
		cursor: -1,
		rewind: noRewind,
	}
}

// AddNode registers the aspect flag. dependencies must be valid before flag
// can be validated, dependents are invalidated whenever flag is.
// Misuse panics with a *GraphError.
func (g *Graph) AddNode(flag, dependencies, dependents Flag, onValidate func()) {
	if !flag.Single() {
		panic(&GraphError{Op: "register", Flag: flag, Err: ErrInvalidFlag})
	}
	if g.registered&flag != 0 {
		panic(&GraphError{Op: "register", Flag: flag, Err: ErrDuplicateFlag})
	}
	if g.cursor >= 0 {
		panic(&GraphError{Op: "register", Flag: flag, Err: ErrValidating})
	}
	if unknown := (dependencies | dependents) &^ g.registered; unknown != 0 {
		panic(&GraphError{Op: "register", Flag: unknown, Err: ErrUnknownFlag})
	}
	if onValidate == nil {
		onValidate = func() {}
	}

	node := validationNode{
		flag:             flag,
		invalidationMask: flag | dependents,
		validationMask:   flag | dependencies,
		onValidate:       onValidate,
	}

	for i := range g.nodes {
		n := &g.nodes[i]
		if n.flag&dependencies != 0 {
			node.validationMask |= n.validationMask
		}
		if n.flag&dependents != 0 {
			node.invalidationMask |= n.invalidationMask
		}
	}

	if both := node.validationMask & node.invalidationMask; both != flag {
		panic(&GraphError{Op: "register", Flag: both &^ flag, Err: ErrCycle})
	}

	// after the last dependency, before the first dependent
	index := len(g.nodes)
	last := -1
	for i := range g.nodes {
		n := &g.nodes[i]
		if n.flag&node.validationMask != 0 {
			last = i
		}
		if n.flag&node.invalidationMask != 0 && index == len(g.nodes) {
			index = i
		}
	}
	if last >= index {
		panic(&GraphError{Op: "register", Flag: g.nodes[last].flag | g.nodes[index].flag, Err: ErrOrder})
	}

	for i := range g.nodes {
		n := &g.nodes[i]
		if n.flag&node.validationMask != 0 {
			n.invalidationMask |= node.invalidationMask
		}
		if n.flag&node.invalidationMask != 0 {
			n.validationMask |= node.validationMask
			n.valid = false
		}
	}

	g.nodes = slices.Insert(g.nodes, index, node)
	g.registered |= flag
	g.invalid |= node.invalidationMask
}

// Invalidate marks flags and everything depending on them invalid and
// returns the flags that went from valid to invalid.
func (g *Graph) Invalidate(flags Flag) Flag {
	flags &= g.registered
	if flags == 0 {
		return 0
	}

	var changed Flag

	if g.cursor >= 0 {
		current := &g.nodes[g.cursor]
		if illegal := flags & g.locked &^ current.flag; illegal != 0 {
			panic(&GraphError{Op: "invalidate", Flag: illegal, Err: ErrInvalidateDependency})
		}
		if flags&current.flag != 0 && !g.requeued {
			g.requeued = true
			changed |= current.flag
		}
	}

	pending := flags
	for i := range g.nodes {
		n := &g.nodes[i]
		if n.flag&pending == 0 {
			continue
		}
		pending |= n.invalidationMask

		if !n.valid {
			continue
		}
		n.valid = false
		changed |= n.flag

		if g.cursor >= 0 && i < g.rewind {
			g.rewind = i
		}
	}

	g.invalid |= changed
	return changed
}

// Validate recomputes the invalid aspects among flags, dependencies first,
// and returns the flags that went from invalid to valid.
//
// When called from inside an onValidate of this graph, flags must be a
// subset of the executing aspect's dependencies.
func (g *Graph) Validate(flags Flag) Flag {
	flags &= g.registered

	if g.cursor >= 0 {
		current := &g.nodes[g.cursor]
		if over := flags &^ (current.validationMask &^ current.flag); over != 0 {
			panic(&GraphError{Op: "validate", Flag: over, Err: ErrNestedValidation})
		}
	}

	pending := flags & g.invalid
	if pending == 0 {
		return 0
	}

	return g.pass(pending)
}

func (g *Graph) pass(pending Flag) (validated Flag) {
	prevCursor, prevRequeued := g.cursor, g.requeued
	prevValidating, prevLocked := g.validating, g.locked
	outerRewind := g.rewind
	lowest := noRewind

	g.rewind = noRewind
	defer func() {
		g.cursor, g.requeued = prevCursor, prevRequeued
		g.validating, g.locked = prevValidating, prevLocked
		g.rewind = min(outerRewind, lowest)
		if prevCursor < 0 {
			g.rewind = noRewind
		}
	}()

	for i := 0; i < len(g.nodes); i++ {
		n := &g.nodes[i]
		if n.valid || n.invalidationMask&pending == 0 {
			continue
		}
		// a dependency was left invalid, keep n invalid too
		if g.invalid&n.validationMask&^n.flag != 0 {
			continue
		}

		pending |= n.validationMask

		g.cursor, g.requeued = i, false
		g.validating = prevValidating | n.flag
		g.locked = prevLocked | n.validationMask

		n.onValidate()

		if g.requeued {
			n.requeues++
			if n.requeues > maxRequeues {
				panic(&GraphError{Op: "validate", Flag: n.flag, Err: ErrRequeueLimit})
			}
		} else {
			n.requeues = 0
			n.valid = true
			g.invalid &^= n.flag
			validated |= n.flag
		}

		if g.rewind != noRewind {
			lowest = min(lowest, g.rewind)
			if g.rewind < i {
				i = g.rewind - 1
			}
			g.rewind = noRewind
		}
	}

	return validated
}

// IsValid reports whether every bit of flag is registered and valid.
func (g *Graph) IsValid(flag Flag) bool {
	return flag != 0 && flag&^g.registered == 0 && flag&g.invalid == 0
}

// Registered returns every registered flag.
func (g *Graph) Registered() Flag { return g.registered }

// Invalid returns the flags currently invalid.
func (g *Graph) Invalid() Flag { return g.invalid }

// Validating returns the flags whose onValidate is on the call stack.
func (g *Graph) Validating() Flag { return g.validating }

// Locked returns the flags that cannot be invalidated right now: the
// executing aspects and everything they depend on.
func (g *Graph) Locked() Flag { return g.locked }

// Current returns the flag of the innermost executing aspect, if any.
func (g *Graph) Current() Flag {
	if g.cursor < 0 {
		return FlagNone
	}
	return g.nodes[g.cursor].flag
}

// Order returns the registered flags in validation order.
func (g *Graph) Order() []Flag {
	order := make([]Flag, len(g.nodes))
	for i := range g.nodes {
		order[i] = g.nodes[i].flag
	}
	return order
}

// Dependencies returns the transitive dependencies of flag, flag excluded.
func (g *Graph) Dependencies(flag Flag) Flag {
	for i := range g.nodes {
		if g.nodes[i].flag == flag {
			return g.nodes[i].validationMask &^ flag
		}
	}
	return FlagNone
}

// Dependents returns the transitive dependents of flag, flag excluded.
func (g *Graph) Dependents(flag Flag) Flag {
	for i := range g.nodes {
		if g.nodes[i].flag == flag {
			return g.nodes[i].invalidationMask &^ flag
		}
	}
	return FlagNone
}
