//go:build linux && !tinygo

// barrier_linux.go backs BroadcastBarrier with the real Linux
// membarrier(2) syscall: a writer-side request that forces every other
// CPU in the process through a full memory fence. The reader-side fence
// points in package hazard / rcu still issue StrongFence themselves (see
// the fence comment in hazard's Get).
package platform

import (
	"sync"

	"golang.org/x/sys/unix"

	"smrcore/internal/diag"
)

// membarrier(2) commands (linux/membarrier.h). golang.org/x/sys/unix does
// not wrap membarrier itself, only the raw syscall number, so the command
// codes are reproduced here from the stable UAPI.
const (
	membarrierCmdQuery  = 0
	membarrierCmdGlobal = 1 << 0 // MEMBARRIER_CMD_GLOBAL (formerly SHARED)
)

var (
	membarrierOnce      sync.Once
	membarrierSupported bool
)

func probeMembarrier() {
	// MEMBARRIER_CMD_QUERY returns a bitmask of supported commands; a
	// negative errno means the kernel predates membarrier(2) entirely.
	supported, _, errno := unix.Syscall(unix.SYS_MEMBARRIER, membarrierCmdQuery, 0, 0)
	membarrierSupported = errno == 0 && supported&membarrierCmdGlobal != 0
	if !membarrierSupported {
		diag.DropError("platform: membarrier(2) unavailable, using full fences", nil)
	}
}

// HaveBroadcastBarrier reports whether the process-wide broadcast barrier
// is available on this kernel. When false, every call site must fall back
// to StrongFence at each reader fence point.
func HaveBroadcastBarrier() bool {
	membarrierOnce.Do(probeMembarrier)
	return membarrierSupported
}

// BroadcastBarrier forces a full memory fence on every CPU currently
// running a thread of this process. Falls back to StrongFence if the
// kernel doesn't support membarrier(2).
func BroadcastBarrier() {
	if !HaveBroadcastBarrier() {
		StrongFence()
		return
	}
	// MEMBARRIER_CMD_GLOBAL requires no prior registration, unlike the
	// *_EXPEDITED variants; it is slower but always safe to call.
	if _, _, errno := unix.Syscall(unix.SYS_MEMBARRIER, membarrierCmdGlobal, 0, 0); errno != 0 {
		StrongFence()
	}
}
