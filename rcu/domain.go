package rcu

import (
	"sync"
	"sync/atomic"

	"smrcore/internal/diag"
	"smrcore/internal/platform"
)

// Domain is an independently-running RCU namespace: its grace periods
// never serialize with another domain's. NewDomain returns a zero Domain,
// which is ready to use.
type Domain struct {
	reg registry

	gpMu  sync.Mutex
	gpCtr atomic.Uint32

	waitersMu sync.Mutex
	waiters   []*waiter

	// futex backs the grace-period loop's blocking wait. It is accessed
	// through the sync/atomic free functions, not atomic.Uint32, because
	// FutexWait/FutexWake need its address as a raw *uint32.
	futex uint32
}

// NewDomain allocates an empty, ready-to-use RCU domain.
func NewDomain() *Domain {
	return &Domain{}
}

// Close asserts, in debug builds, that no reader is still registered. Go's
// garbage collector reclaims a Domain's memory regardless of whether Close
// is called; it exists only to mirror the create/destroy pairing of the
// external interface.
func (d *Domain) Close() {
	d.reg.mu.Lock()
	defer d.reg.mu.Unlock()
	diag.Assert(d.reg.head == nil, "rcu: domain closed with readers still registered")
}

// wakeGracePeriod wakes a grace period parked on this domain's futex, if
// any. Called by a reader transitioning to a quiescent state or offline.
func (d *Domain) wakeGracePeriod() {
	if atomic.CompareAndSwapUint32(&d.futex, futexParked, 0) {
		platform.FutexWake(&d.futex, 1)
	}
}
