package rcu

import (
	"sync/atomic"

	"smrcore/internal/platform"
)

// waiter lets concurrent Synchronize callers batch onto a single grace
// period: the caller that finds the waiter queue empty becomes the
// leader and runs the scan below; everyone else parks on done and is
// woken once the leader's pass covers them too.
type waiter struct {
	done chan struct{}
}

// Synchronize blocks until every read-side critical section live when the
// call began has ended. Concurrent callers batch onto a single scan: only
// the caller that finds the queue empty actually performs it.
//
// A goroutine that is itself a registered reader on this domain must call
// ThreadOffline before calling Synchronize and ThreadOnline after,
// exactly as it would before any other blocking call made from inside a
// read-side section — Synchronize has no way to discover which
// *ReaderTLS, if any, belongs to its own caller.
func (d *Domain) Synchronize() {
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

func (d *Domain) runGracePeriod() {
	d.gpMu.Lock()

	d.waitersMu.Lock()
	batch := d.waiters
	d.waiters = nil
	d.waitersMu.Unlock()

	d.reg.mu.Lock()
	platform.BroadcastBarrier()

	// First pass: wait out readers who were already online-old relative
	// to the phase published before this call began.
	d.waitForPhase(d.gpCtr.Load() | onlineBit)

	platform.StrongFence()
	d.gpCtr.Store(d.gpCtr.Load() ^ phaseBit)
	platform.StrongFence()

	// Second pass, against the flipped phase: readers who were already
	// online-current relative to the old phase (and so were set aside by
	// the first pass) must still observe the new one before this call can
	// return.
	d.waitForPhase(d.gpCtr.Load() | onlineBit)

	platform.BroadcastBarrier()
	d.reg.mu.Unlock()
	d.gpMu.Unlock()

	for _, w := range batch {
		close(w.done)
	}
}

// waitForPhase blocks, with d.reg.mu held on entry and on return, until
// every registered reader is either offline or has ctr == target. It
// releases the lock while spinning or parked so registrations and
// unregistrations can make progress concurrently.
func (d *Domain) waitForPhase(target uint32) {
	attempts := 0
	for {
		if d.quiescentLocked(target) {
			return
		}

		attempts++
		d.reg.mu.Unlock()
		if attempts < qsActiveAttempts {
			platform.CPURelax()
			d.reg.mu.Lock()
			continue
		}
		attempts = 0

		// Publish the parked sentinel BEFORE the final re-scan, so a
		// reader reaching its quiescent state between that scan and the
		// sleep below is guaranteed to observe the sentinel and issue
		// the wake; checking in the other order can sleep forever on a
		// wake that was never sent.
		atomic.StoreUint32(&d.futex, futexParked)
		platform.BroadcastBarrier()
		d.reg.mu.Lock()
		if d.quiescentLocked(target) {
			atomic.StoreUint32(&d.futex, 0)
			return
		}
		d.reg.mu.Unlock()
		platform.FutexWait(&d.futex, futexParked)
		d.reg.mu.Lock()
	}
}

// quiescentLocked reports whether every registered reader is offline or
// caught up with target. Caller holds d.reg.mu.
func (d *Domain) quiescentLocked(target uint32) bool {
	for tls := d.reg.head; tls != nil; tls = tls.next {
		if c := tls.ctr.Load(); c != 0 && c != target {
			return false
		}
	}
	return true
}
