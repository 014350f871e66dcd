package hazard

import "smrcore/refcount"

// Node is the reclaimable object: a reference-counter cell (initial value
// 1, monotone to zero, zero triggers the release callback exactly once)
// plus whatever payload the caller attaches via Value.
//
// Node must always be reached through a pointer: *Node's address is the
// identity hazard pointers track and compare, and Go heap allocations are
// always at least 2-byte aligned, which keeps the low tag bit free for
// the period-tagging scheme in slab.go.
type Node struct {
	refs  refcount.Counter
	Value any
}

// NewNode allocates a Node at refcount 1 holding value, with release
// invoked exactly once when the count reaches zero.
func NewNode(value any, release func(*Node)) *Node {
	n := &Node{Value: value}
	n.refs.Init(func() { release(n) })
	return n
}

// NodePut drops the caller's own reference to node directly, without
// going through a hazard Ctx. Used by a writer retiring a node it never
// published, or to drop the writer's original owning reference after a
// reader has promoted its own.
func NodePut(node *Node) {
	node.refs.Release()
}
