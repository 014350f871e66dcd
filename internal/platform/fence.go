package platform

import "sync/atomic"

// fenceWord is a dedicated word touched only by StrongFence's dummy
// read-modify-write; it carries no meaning of its own. It is not padded
// onto a cache line of its own.
var fenceWord atomic.Uint64

// StrongFence executes a full memory fence: no load or store on either side
// may cross it, in either direction. Go has no standalone fence intrinsic,
// but sync/atomic's read-modify-write operations compile to a LOCK-prefixed
// instruction on amd64 (and the equivalent full barrier on arm64), which is
// a strict superset of what a standalone mfence provides.
//
//go:nosplit
func StrongFence() {
	fenceWord.Add(1)
}
