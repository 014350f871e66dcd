package rcu

import (
	"sync/atomic"

	"smrcore/internal/diag"
	"smrcore/internal/platform"
)

// ReaderTLS is one reader's registration record within a Domain — the
// per-reader analogue of a pthread's thread-local RCU state. Create one
// per logical reader (goroutine, worker, connection) with NewReaderTLS
// and never share it between concurrently active readers.
//
// ctr encodes the reader's state: 0 means offline; otherwise onlineBit is
// always set and the remaining bit records the last grace-period phase
// this reader observed. A reader is caught up with the domain exactly
// when ctr equals the domain's current (phase | onlineBit) value.
type ReaderTLS struct {
	ctr atomic.Uint32
	dom *Domain

	next, prev *ReaderTLS
	registered bool
}

// NewReaderTLS allocates an offline, unregistered reader record.
func NewReaderTLS() *ReaderTLS {
	return &ReaderTLS{}
}

// Close asserts, in debug builds, that tls was unregistered before being
// discarded.
func (tls *ReaderTLS) Close() {
	diag.Assert(!tls.registered, "rcu: reader_tls closed while still registered")
}

// RegisterThread links tls into dom's registry. The reader starts
// offline; call ThreadOnline before entering a read-side critical
// section.
func (dom *Domain) RegisterThread(tls *ReaderTLS) {
	tls.dom = dom
	dom.reg.insert(tls)
}

// UnregisterThread removes tls from its domain's registry, first
// reporting an implicit quiescent state if the reader was still online.
func (tls *ReaderTLS) UnregisterThread() {
	if tls.ctr.Load() != 0 {
		tls.ThreadOffline()
	}
	tls.dom.reg.remove(tls)
}

// ReadLock and ReadUnlock are no-ops in this quiescent-state flavor: the
// reader protocol is carried entirely by ThreadOnline/ThreadOffline/
// QuiescentState. They exist so call sites read the same as other RCU
// flavors, and so debug builds can catch a read-side section entered
// while offline.
func (tls *ReaderTLS) ReadLock() {
	diag.Assert(tls.ctr.Load() != 0, "rcu: read_lock on an offline reader")
}

func (tls *ReaderTLS) ReadUnlock() {
	diag.Assert(tls.ctr.Load() != 0, "rcu: read_unlock on an offline reader")
}

// ReadOngoing reports whether tls is currently online, and so possibly
// inside a read-side critical section.
func (tls *ReaderTLS) ReadOngoing() bool {
	return tls.ctr.Load() != 0
}

// ThreadOnline transitions an offline reader to online-current,
// publishing the domain's current phase as the reader's own.
func (tls *ReaderTLS) ThreadOnline() {
	diag.Assert(tls.ctr.Load() == 0, "rcu: thread_online on an already-online reader")
	tls.ctr.Store(tls.dom.gpCtr.Load() | onlineBit)
	platform.StrongFence()
}

// ThreadOffline transitions an online reader to offline and wakes any
// grace period that might have been waiting on it.
func (tls *ReaderTLS) ThreadOffline() {
	platform.StrongFence()
	tls.ctr.Store(0)
	platform.StrongFence()
	tls.dom.wakeGracePeriod()
}

// QuiescentState reports that tls's reader currently holds no read-side
// references, advancing it to online-current if it was online-old. A
// no-op if the reader is already current or offline.
func (tls *ReaderTLS) QuiescentState() {
	cur := tls.ctr.Load()
	if cur == 0 {
		return
	}
	target := tls.dom.gpCtr.Load() | onlineBit
	if cur == target {
		return
	}
	platform.StrongFence()
	tls.ctr.Store(target)
	platform.StrongFence()
	tls.dom.wakeGracePeriod()
}
