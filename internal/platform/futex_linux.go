//go:build linux && !tinygo

// futex_linux.go backs FutexWait/FutexWake with the real Linux futex(2)
// syscall via golang.org/x/sys/unix, the mechanism the grace-period slow
// path parks on.
package platform

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// Linux futex(2) operation codes. golang.org/x/sys/unix exposes SYS_FUTEX
// (the syscall number) but not these op constants, so they are defined
// here directly from the stable kernel UAPI (linux/futex.h).
const (
	futexWait = 0
	futexWake = 1
)

// FutexWait blocks the calling thread while *addr == expected, subject to
// spurious wakeups the caller must tolerate by re-checking its condition.
// Any syscall error — EAGAIN (value already changed), EINTR, or otherwise
// — is deliberately ignored: the contract is "return to the caller's
// condition-recheck loop", never "fail".
func FutexWait(addr *uint32, expected uint32) {
	unix.Syscall6(unix.SYS_FUTEX,
		uintptr(unsafe.Pointer(addr)), uintptr(futexWait), uintptr(expected), 0, 0, 0)
}

// FutexWake wakes up to n threads blocked in FutexWait on addr.
func FutexWake(addr *uint32, n int) {
	unix.Syscall6(unix.SYS_FUTEX,
		uintptr(unsafe.Pointer(addr)), uintptr(futexWake), uintptr(n), 0, 0, 0)
}
