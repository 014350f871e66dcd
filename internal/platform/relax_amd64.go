//go:build amd64 && !noasm

// relax_amd64.go declares CPURelax on amd64; the body lives in
// relax_amd64.s and emits a single PAUSE so hazard/RCU busy-wait loops
// back off politely without leaving userspace.
package platform

// CPURelax executes the x86_64 PAUSE instruction.
//
//go:noescape
func CPURelax()
