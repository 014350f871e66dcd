package rcu

import (
	"sync"
	"sync/atomic"

	"smrcore/internal/diag"
	"smrcore/internal/platform"
)

// The nested-counter flavor. Unlike the quiescent-state flavor in
// reader.go, readers here carry real read-side critical sections:
// ReadLock/ReadUnlock maintain a nesting count in the low bits of the
// reader's ctr and a phase bit in a designated position above it, and a
// grace period waits for every reader to either leave its outermost
// section or re-enter one under the flipped phase. No online/offline or
// quiescent-state reporting is required of readers.
//
// ctr layout: bits below nestPhase hold the nesting count, nestPhase is
// the phase discriminator. The domain's gpCtr keeps a permanent count of
// one so a top-level ReadLock can copy it verbatim and land at nesting
// depth 1 in a single store.

// NestedReaderTLS is one reader's registration record within a
// NestedDomain. Create one per logical reader and never share it between
// concurrently active readers.
type NestedReaderTLS struct {
	ctr atomic.Uint32
	dom *NestedDomain

	next, prev *NestedReaderTLS
	registered bool
}

// NewNestedReaderTLS allocates an idle, unregistered reader record.
func NewNestedReaderTLS() *NestedReaderTLS {
	return &NestedReaderTLS{}
}

// Close asserts, in debug builds, that tls was unregistered before being
// discarded.
func (tls *NestedReaderTLS) Close() {
	diag.Assert(!tls.registered, "rcu: nested reader_tls closed while still registered")
}

// NestedDomain is an independently-running namespace for the
// nested-counter flavor; its grace periods never serialize with another
// domain's. A zero NestedDomain is not usable; construct with
// NewNestedDomain.
type NestedDomain struct {
	regMu sync.Mutex
	head  *NestedReaderTLS

	gpMu  sync.Mutex
	gpCtr atomic.Uint32

	waitersMu sync.Mutex
	waiters   []*waiter

	futex uint32
}

// NewNestedDomain allocates an empty, ready-to-use domain. gpCtr starts
// at a count of one, never zero, so the ReadLock fast path can copy it
// directly.
func NewNestedDomain() *NestedDomain {
	d := &NestedDomain{}
	d.gpCtr.Store(nestCount)
	return d
}

// Close asserts, in debug builds, that no reader is still registered.
func (d *NestedDomain) Close() {
	d.regMu.Lock()
	defer d.regMu.Unlock()
	diag.Assert(d.head == nil, "rcu: nested domain closed with readers still registered")
}

// RegisterThread links tls into d's registry. The reader starts outside
// any critical section.
func (d *NestedDomain) RegisterThread(tls *NestedReaderTLS) {
	tls.dom = d
	d.regMu.Lock()
	defer d.regMu.Unlock()
	tls.next = d.head
	tls.prev = nil
	if d.head != nil {
		d.head.prev = tls
	}
	d.head = tls
	tls.registered = true
}

// UnregisterThread removes tls from its domain's registry. The reader
// must have left every read-side critical section first.
func (tls *NestedReaderTLS) UnregisterThread() {
	diag.Assert(tls.ctr.Load()&nestMask == 0,
		"rcu: nested reader unregistered inside a read-side critical section")
	d := tls.dom
	d.regMu.Lock()
	defer d.regMu.Unlock()
	if !tls.registered {
		return
	}
	if tls.prev != nil {
		tls.prev.next = tls.next
	} else {
		d.head = tls.next
	}
	if tls.next != nil {
		tls.next.prev = tls.prev
	}
	tls.next, tls.prev = nil, nil
	tls.registered = false
}

// ReadLock enters a read-side critical section. The outermost entry
// copies the domain's gpCtr — current phase plus a count of one — in a
// single store; nested entries only bump the count and need no fence.
func (tls *NestedReaderTLS) ReadLock() {
	diag.Assert(tls.registered, "rcu: read_lock on an unregistered nested reader")
	tmp := tls.ctr.Load()
	diag.Assert(tmp&nestMask != nestMask, "rcu: read_lock nesting overflow")
	if tmp&nestMask == 0 {
		tls.ctr.Store(tls.dom.gpCtr.Load())
		platform.StrongFence()
	} else {
		tls.ctr.Store(tmp + nestCount)
	}
}

// ReadUnlock exits a read-side critical section. Only the outermost exit
// publishes the drop to zero and wakes a grace period that might be
// parked on it; inner exits only decrement the count.
func (tls *NestedReaderTLS) ReadUnlock() {
	tmp := tls.ctr.Load()
	diag.Assert(tmp&nestMask != 0, "rcu: read_unlock without a matching read_lock")
	if tmp&nestMask == nestCount {
		platform.StrongFence()
		tls.ctr.Store(tmp - nestCount)
		platform.StrongFence()
		tls.dom.wakeGracePeriod()
	} else {
		tls.ctr.Store(tmp - nestCount)
	}
}

// ReadOngoing reports whether tls is currently inside a read-side
// critical section.
func (tls *NestedReaderTLS) ReadOngoing() bool {
	return tls.ctr.Load()&nestMask != 0
}

func (d *NestedDomain) wakeGracePeriod() {
	if atomic.CompareAndSwapUint32(&d.futex, futexParked, 0) {
		platform.FutexWake(&d.futex, 1)
	}
}

// Synchronize blocks until every read-side critical section live when
// the call began has ended. Concurrent callers batch onto a single scan,
// exactly as in the quiescent-state flavor. Calling it from inside one of
// this domain's own read-side critical sections deadlocks, as it must.
func (d *NestedDomain) Synchronize() {
	w := &waiter{done: make(chan struct{})}

	d.waitersMu.Lock()
	leader := len(d.waiters) == 0
	d.waiters = append(d.waiters, w)
	d.waitersMu.Unlock()

	if !leader {
		<-w.done
		return
	}

	d.runGracePeriod()
}

func (d *NestedDomain) runGracePeriod() {
	d.gpMu.Lock()

	d.waitersMu.Lock()
	batch := d.waiters
	d.waiters = nil
	d.waitersMu.Unlock()

	d.regMu.Lock()
	platform.BroadcastBarrier()

	// First pass: wait for readers still inside a section entered under
	// the phase before the previous flip.
	d.waitForCurrentPhase()

	platform.StrongFence()
	d.gpCtr.Store(d.gpCtr.Load() ^ nestPhase)
	platform.StrongFence()

	// Second pass: readers that were inside a section under the
	// just-retired phase must leave it before this call can return; a
	// reader that re-enters picks up the new phase and no longer counts.
	d.waitForCurrentPhase()

	platform.BroadcastBarrier()
	d.regMu.Unlock()
	d.gpMu.Unlock()

	for _, w := range batch {
		close(w.done)
	}
}

// waitForCurrentPhase blocks, with d.regMu held on entry and on return,
// until no registered reader is inside a critical section whose phase
// differs from the domain's current one. Same lock-release and futex
// protocol as the quiescent-state flavor's waitForPhase.
func (d *NestedDomain) waitForCurrentPhase() {
	attempts := 0
	for {
		if d.quiescentLocked() {
			return
		}

		attempts++
		d.regMu.Unlock()
		if attempts < qsActiveAttempts {
			platform.CPURelax()
			d.regMu.Lock()
			continue
		}
		attempts = 0

		// Sentinel first, then re-scan, then sleep — see waitForPhase.
		atomic.StoreUint32(&d.futex, futexParked)
		platform.BroadcastBarrier()
		d.regMu.Lock()
		if d.quiescentLocked() {
			atomic.StoreUint32(&d.futex, 0)
			return
		}
		d.regMu.Unlock()
		platform.FutexWait(&d.futex, futexParked)
		d.regMu.Lock()
	}
}

// quiescentLocked reports whether every registered reader is outside any
// critical section or inside one entered under the current phase. Caller
// holds d.regMu.
func (d *NestedDomain) quiescentLocked() bool {
	gp := d.gpCtr.Load()
	for tls := d.head; tls != nil; tls = tls.next {
		c := tls.ctr.Load()
		if c&nestMask != 0 && (c^gp)&nestPhase != 0 {
			return false
		}
	}
	return true
}
