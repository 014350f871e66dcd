//go:build (!amd64 && !arm64) || noasm

// relax_stub.go is the portable fallback for architectures without a
// dedicated spin-wait hint.
package platform

// CPURelax is a no-op on unsupported targets.
func CPURelax() {}
