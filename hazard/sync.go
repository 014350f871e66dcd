package hazard

import (
	"unsafe"

	"smrcore/internal/platform"
)

// Synchronize blocks until no reader can still hold a hazard pointer to
// node. Passing a non-nil node waits out every hazard pointer that could
// have been taken on that node specifically; passing nil waits out any
// in-flight reader regardless of which node it holds, via a period-tagging
// protocol that guarantees forward progress even against a steady stream
// of readers re-taking the same value in the same slot.
func (d *Domain) Synchronize(node *Node) {
	if node != nil {
		d.synchronizeNode(node)
		return
	}
	d.synchronizeAny()
}

// SynchronizePut is Synchronize(node) followed by dropping the caller's
// owning reference.
func (d *Domain) SynchronizePut(node *Node) {
	d.Synchronize(node)
	NodePut(node)
}

func (d *Domain) synchronizeNode(node *Node) {
	// Orders the caller's unpublish (typically a prior pub.Store(nil) or
	// pub.Store(otherNode)) before the scan below.
	platform.BroadcastBarrier()

	target := uint64(uintptr(unsafe.Pointer(node)))
	for i := range d.banks {
		bk := &d.banks[i]
		for s := 0; s < slotsPerBank; s++ {
			for stripTag(bk.slots[s].Load()) == target {
				platform.CPURelax()
			}
		}
	}
}

// synchronizeAny is the NULL-argument path: a dual-phase period flip so
// that every slot is observed to have traversed NULL, or changed its
// tagged value, at least once since the call began.
func (d *Domain) synchronizeAny() {
	d.syncMu.Lock()
	defer d.syncMu.Unlock()

	current := d.period.Load() & 1
	target := current ^ 1

	d.waitForPeriod(target)
	d.period.Store(target)
	d.waitForPeriod(target ^ 1) // == current
}

// waitForPeriod runs one scan pass: a slot passes immediately if it is
// NULL or already tagged with period; otherwise the call busy-waits until
// the slot's raw tagged value changes (to anything, including a different
// node with the same old tag) or becomes NULL.
func (d *Domain) waitForPeriod(period uint32) {
	for i := range d.banks {
		bk := &d.banks[i]
		for s := 0; s < slotsPerBank; s++ {
			observed := bk.slots[s].Load()
			if observed == 0 || tagOf(observed) == period {
				continue
			}
			for {
				cur := bk.slots[s].Load()
				if cur != observed {
					break
				}
				platform.CPURelax()
			}
		}
	}
}
