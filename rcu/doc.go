// Package rcu implements a quiescent-state-based RCU domain: readers
// declare themselves online, report quiescent states, and go offline;
// writers call Synchronize to block until every read-side critical
// section that was live when the call began has ended.
//
// Unlike package hazard, there is no explicit read_lock/read_unlock
// critical section to protect individual objects — a reader is simply
// "online" for as long as it might be touching RCU-protected data, and
// periodically calls QuiescentState to let pending grace periods proceed.
//
// A second flavor lives alongside it (NestedDomain/NestedReaderTLS, see
// nested.go): readers there delimit real, nestable read-side critical
// sections with ReadLock/ReadUnlock and owe the domain nothing in
// between. It costs full fences on every outermost lock and unlock where
// the quiescent-state flavor's ReadLock is free, in exchange for not
// requiring cooperative quiescent-state reporting.
//
// Usage sketch:
//
//	dom := rcu.NewDomain()
//	tls := rcu.NewReaderTLS()
//	dom.RegisterThread(tls)
//	tls.ThreadOnline()
//	for {
//	    use(protectedData)
//	    tls.QuiescentState()
//	}
//	tls.ThreadOffline()
//	tls.UnregisterThread()
//	...
//	dom.Synchronize() // writer: wait for every reader above to catch up
package rcu
