package internal

// DirtyHeap buckets components waiting for validation by tree depth.
type DirtyHeap struct {
	min int
	max int

	nodes []*heapNode // [depth]head

	lookup map[*Component]*heapNode // for O(1) removal
}

type heapNode struct {
	node *Component

	next *heapNode
	prev *heapNode
}

func NewHeap() *DirtyHeap {
	return &DirtyHeap{
		min:    0,
		max:    0,
		nodes:  make([]*heapNode, 64),
		lookup: make(map[*Component]*heapNode),
	}
}

func (h *DirtyHeap) Contains(node *Component) bool {
	_, ok := h.lookup[node]
	return ok
}

func (h *DirtyHeap) Len() int {
	return len(h.lookup)
}

func (h *DirtyHeap) Insert(node *Component) {
	if node.disposed || h.Contains(node) {
		return
	}

	entry := &heapNode{node: node}
	h.lookup[node] = entry

	depth := node.Depth()
	for depth >= len(h.nodes) {
		h.nodes = append(h.nodes, make([]*heapNode, len(h.nodes))...)
	}

	if h.nodes[depth] == nil {
		h.nodes[depth] = entry
		entry.prev = entry // loop to self
		entry.next = nil
	} else {
		head := h.nodes[depth]
		tail := head.prev

		tail.next = entry
		entry.prev = tail
		entry.next = nil
		head.prev = entry
	}

	if depth > h.max {
		h.max = depth
	}
	// only lowered while draining, picked up by the drain loop
	if depth < h.min {
		h.min = depth
	}
}

func (h *DirtyHeap) Remove(node *Component) {
	entry, ok := h.lookup[node]
	if !ok {
		return
	}
	delete(h.lookup, node)

	depth := node.Depth()

	// single node
	if entry.prev == entry {
		h.nodes[depth] = nil
		entry.prev = entry
		entry.next = nil
		return
	}

	// multiple nodes
	head := h.nodes[depth]
	if entry == head {
		h.nodes[depth] = entry.next
	} else {
		entry.prev.next = entry.next
	}

	next := entry.next
	if next == nil {
		next = h.nodes[depth]
	}
	next.prev = entry.prev

	entry.prev = entry
	entry.next = nil
}

// Drain processes every scheduled component, shallowest first, leaving the
// heap empty. Components scheduled while draining are processed in the
// same drain, including ones shallower than the current depth.
func (h *DirtyHeap) Drain(process func(*Component)) {
	for h.min = 0; h.min <= h.max; {
		entry := h.nodes[h.min]
		if entry == nil {
			h.min++
			continue
		}

		h.Remove(entry.node)
		process(entry.node)
	}

	h.min = 0
	h.max = 0
}
