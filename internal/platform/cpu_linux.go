//go:build linux && !tinygo

// cpu_linux.go binds CurrentCPU to the real getcpu(2) syscall via
// golang.org/x/sys/unix. It is load-bearing here: every hazard-pointer
// acquire calls this on its way into the slot scan.
package platform

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// CurrentCPU returns the logical CPU the calling OS thread is running on
// right now. The value may be stale the instant after it is read — a
// migration can happen at any point — which is exactly the staleness
// PercpuSlotCAS is built to tolerate (see percpu.go).
func CurrentCPU() (cpu int, ok bool) {
	var c uint32
	_, _, errno := unix.Syscall(unix.SYS_GETCPU, uintptr(unsafe.Pointer(&c)), 0, 0)
	if errno != 0 {
		return 0, false
	}
	return int(c), true
}
