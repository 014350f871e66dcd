//go:build arm64 && !noasm

// relax_arm64.go mirrors relax_amd64.go for arm64.
package platform

// CPURelax executes the arm64 YIELD hint.
//
//go:noescape
func CPURelax()
