package rcu

const (
	// onlineBit is always set in a reader's ctr while it is online,
	// keeping that value nonzero and so distinguishable from the offline
	// sentinel (0) regardless of which phase it last observed.
	onlineBit uint32 = 1 << 0

	// phaseBit is the single discriminator a grace period flips: readers
	// classify as caught-up by comparing their own ctr against the
	// domain's current (phase | onlineBit) value.
	phaseBit uint32 = 1 << 1

	// nestCount is one nesting level in the nested-counter flavor's ctr;
	// the count occupies the bits below nestPhase.
	nestCount uint32 = 1 << 0

	// nestPhase is the nested-counter flavor's phase discriminator, placed
	// at the half-word position so the count below it has a full 16-bit
	// mask before it can saturate.
	nestPhase uint32 = 1 << 16

	// nestMask extracts the nesting count from a nested-counter ctr.
	nestMask uint32 = nestPhase - 1

	// qsActiveAttempts is how many times the grace-period loop re-scans
	// the registry, releasing its lock between passes, before parking on
	// the futex instead of continuing to spin.
	qsActiveAttempts = 100

	// futexParked is the sentinel value the grace-period loop stores into
	// a domain's futex word before blocking on it.
	futexParked uint32 = ^uint32(0)
)
