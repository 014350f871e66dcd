package hazard

import "sync/atomic"

// Pointer is a publication site: a location readers observe via Get and
// writers update via Store. The zero value publishes NULL.
type Pointer struct {
	p atomic.Pointer[Node]
}

// Store publishes node. Go's atomic.Pointer.Store is already a full fence
// on every supported architecture, including for the NULL case — there is
// no cheaper relaxed-store path worth special-casing here.
func (pub *Pointer) Store(node *Node) {
	pub.p.Store(node)
}

// Load reads the current publication. Get calls Load twice: once before
// acquiring a slot, and again after, to detect a concurrent unpublish;
// Go's atomic load already provides the acquire semantics both call sites
// need.
func (pub *Pointer) Load() *Node {
	return pub.p.Load()
}
