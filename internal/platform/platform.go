// Package platform implements the low-level platform facilities the rest
// of the module builds on: per-CPU identification, a restartable per-CPU
// slot compare-store, an asymmetric process-wide broadcast barrier, and
// the futex wait/wake primitive the grace-period wait is built on.
//
// The CPU id, broadcast barrier and futex primitives each have a Linux
// implementation backed by a real syscall (golang.org/x/sys/unix) and a
// portable fallback for every other GOOS: a `_linux.go` file with the real
// mechanism and a `_stub.go` file with a conservative emulation.
// StrongFence and PercpuSlotCAS are plain sync/atomic code on every GOOS,
// and CPURelax is selected per architecture.
package platform

import "runtime"

// CASResult is the outcome of PercpuSlotCAS.
type CASResult int

const (
	// OK: the slot transitioned NULL -> new.
	OK CASResult = iota
	// Retry: the slot was already non-NULL; try the next slot.
	Retry
	// Migrated: the calling goroutine is no longer observed on the CPU it
	// started on; the caller must re-read CurrentCPU and retry.
	Migrated
)

func (r CASResult) String() string {
	switch r {
	case OK:
		return "OK"
	case Retry:
		return "RETRY"
	case Migrated:
		return "MIGRATED"
	default:
		return "?"
	}
}

// NumCPU returns the slab width: the number of per-CPU hazard banks to
// allocate. It is the real hardware core count, not GOMAXPROCS, since the
// slab must have a slot bank for every CPU a migrating thread could land on
// regardless of how many goroutines Go schedules concurrently.
func NumCPU() int {
	return runtime.NumCPU()
}
