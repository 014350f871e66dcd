//go:build !linux || tinygo

// barrier_stub.go: off Linux there is no process-wide broadcast barrier,
// so every site that would have relied on one must pay for a real fence
// instead.
package platform

// HaveBroadcastBarrier is always false outside Linux.
func HaveBroadcastBarrier() bool { return false }

// BroadcastBarrier degrades to StrongFence when the platform has no
// broadcast primitive.
func BroadcastBarrier() { StrongFence() }
