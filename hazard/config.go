package hazard

// Tunables live in a bare const block, each entry justified by a one-line
// comment, rather than a flags/env layer: there is no process and no CLI
// here to parse flags for.
const (
	// slotsPerBank is the number of hazard slots per CPU bank: a small
	// power of two, leaving headroom for nested critical sections on one
	// CPU before any reader is forced to the emergency slot.
	slotsPerBank = 8

	// emergencySlot is the last slot in every bank, reserved for readers
	// that find every ordinary slot occupied.
	emergencySlot = slotsPerBank - 1
)
