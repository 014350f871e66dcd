// Package hazard implements a per-CPU hazard-pointer reclamation scheme
// layered over smrcore/refcount, with period-tagged slots for
// NULL-synchronize forward progress and a promote-to-refcount escape
// hatch for long critical sections or slot exhaustion.
//
// Usage sketch:
//
//	node := hazard.NewNode(payload, func(n *hazard.Node) { free(n) })
//	var pub hazard.Pointer
//	pub.Store(node)
//
//	ctx, ok := hazard.Get(&pub)   // reader
//	if ok {
//	    use(ctx.Pointer())
//	    hazard.Put(ctx)
//	}
//
//	pub.Store(nil)                // writer retires node
//	hazard.SynchronizePut(node)    // wait out readers, then drop the owning ref
package hazard
