package platform

import "sync/atomic"

// PercpuSlotCAS atomically tests slot == expectNull and stores newVal, as
// if running on the CPU identified by cpu.
//
// Design note: Go has no public API for a true restartable sequence — the
// kernel rseq(2) ABI requires a per-thread TLS struct the runtime does not
// expose, and goroutines are not OS threads. Rather than reach for an
// unsafe runtime-internal linkname trick, this models the same contract
// with getcpu(2) bracketing a real sync/atomic.CompareAndSwap:
//
//  1. Read CurrentCPU(). If it disagrees with the caller's cpu, report
//     Migrated without touching memory — the caller re-reads the CPU and
//     retries.
//  2. Otherwise perform the CAS.
//
// A migration landing in the (very small) window between step 1 and step 2
// is NOT caught — unlike real rseq, this is not atomic end-to-end. That is
// safe, not approximate: CAS safety never depended on CPU ownership in the
// first place. Two threads can only ever believe they both "own" slot[cpu]
// during a migration race; the CAS beneath them still only lets one
// actually win, and the loser sees Retry and tries the next slot, same as
// if it had found the slot genuinely busy. CPU ownership here is a
// contention-avoidance heuristic (so a bank is normally touched by one CPU
// at a time), not a safety mechanism, so the narrow unguarded window costs
// nothing but an occasional spurious Retry.
func PercpuSlotCAS(slot *atomic.Uint64, cpu int, expectNull, newVal uint64) CASResult {
	if now, ok := CurrentCPU(); ok && now != cpu {
		return Migrated
	}
	if slot.CompareAndSwap(expectNull, newVal) {
		return OK
	}
	return Retry
}
