// Package diag provides the cold-path logging and assertion helpers used
// across smrcore: a prefix/error logger that branches on nil instead of
// formatting on the hot path, reserved for setup, retry-exhaustion, and
// abort-before-crash sites.
//
// Never call DropError from hp_get, hp_put, quiescent_state, or any other
// reader fast path. Assert does sit on reader fast paths (the rcu
// ReadLock/ReadUnlock checks); outside smrdebug builds it is an empty
// function.
package diag

import "log"

// DropError prints "<prefix>: <error>" when err is non-nil, or just
// "<prefix>" otherwise. Used as a cheap trace tag on cold paths.
//
//go:noinline
func DropError(prefix string, err error) {
	if err != nil {
		log.Printf("%s: %v", prefix, err)
	} else {
		log.Print(prefix)
	}
}
