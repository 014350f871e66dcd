package rcu

import (
	"sync"
	"testing"
	"time"
)

// TestSynchronizeWaitsForOnlineOldReader checks that a writer's
// Synchronize blocks while a registered reader sits online without
// having reported a quiescent state since the call began, and returns
// once the reader does.
func TestSynchronizeWaitsForOnlineOldReader(t *testing.T) {
	dom := NewDomain()
	tls := NewReaderTLS()
	dom.RegisterThread(tls)
	tls.ThreadOnline()
	defer func() {
		tls.ThreadOffline()
		tls.UnregisterThread()
	}()

	done := make(chan struct{})
	go func() {
		dom.Synchronize()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("Synchronize returned before the online reader reported a quiescent state")
	case <-time.After(20 * time.Millisecond):
	}

	tls.QuiescentState()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Synchronize did not return after the reader's quiescent state")
	}
}

// TestSynchronizeDoesNotWaitOnUnregisteredReader covers the common case:
// a writer with no readers registered returns immediately.
func TestSynchronizeDoesNotWaitOnUnregisteredReader(t *testing.T) {
	dom := NewDomain()
	done := make(chan struct{})
	go func() {
		dom.Synchronize()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Synchronize did not return against an empty registry")
	}
}

// TestOfflineReaderNeverBlocksSynchronize is scenario seed 6: a reader
// that offlines itself before a writer calls Synchronize (the documented
// contract for a goroutine that is both reader and writer) never makes
// the writer wait on it.
func TestOfflineReaderNeverBlocksSynchronize(t *testing.T) {
	dom := NewDomain()
	tls := NewReaderTLS()
	dom.RegisterThread(tls)
	tls.ThreadOnline()
	tls.ThreadOffline()

	done := make(chan struct{})
	go func() {
		dom.Synchronize()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Synchronize waited on an already-offline reader")
	}

	tls.UnregisterThread()
}

// TestGracePeriodBatching is scenario seed 4: many concurrent Synchronize
// callers against a steady reader must all return, and a lone
// Synchronize issued afterwards must flip the domain's phase.
func TestGracePeriodBatching(t *testing.T) {
	dom := NewDomain()
	tls := NewReaderTLS()
	dom.RegisterThread(tls)
	tls.ThreadOnline()
	defer func() {
		tls.ThreadOffline()
		tls.UnregisterThread()
	}()

	stop := make(chan struct{})
	go func() {
		for {
			select {
			case <-stop:
				return
			default:
			}
			tls.QuiescentState()
		}
	}()

	const callers = 16
	var wg sync.WaitGroup
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func() {
			defer wg.Done()
			dom.Synchronize()
		}()
	}
	wg.Wait()

	// A lone call flips the phase exactly once; the batch above may have
	// run any number of grace periods between one and callers, so only
	// the single-call flip is deterministic to assert on.
	phaseBefore := dom.gpCtr.Load() & phaseBit
	dom.Synchronize()
	close(stop)

	if dom.gpCtr.Load()&phaseBit == phaseBefore {
		t.Fatal("a completed Synchronize left the phase unchanged")
	}
}

// TestRegisterDuringGracePeriod is scenario seed 5: a thread registering
// while a grace period is in flight must neither deadlock it nor stall it
// past that new reader's first quiescent state (it starts offline, so it
// shouldn't block the in-flight scan at all).
func TestRegisterDuringGracePeriod(t *testing.T) {
	dom := NewDomain()
	blocker := NewReaderTLS()
	dom.RegisterThread(blocker)
	blocker.ThreadOnline()

	done := make(chan struct{})
	go func() {
		dom.Synchronize()
		close(done)
	}()

	time.Sleep(5 * time.Millisecond)

	newcomer := NewReaderTLS()
	registered := make(chan struct{})
	go func() {
		dom.RegisterThread(newcomer)
		close(registered)
	}()

	select {
	case <-registered:
	case <-time.After(5 * time.Second):
		t.Fatal("RegisterThread deadlocked against an in-flight grace period")
	}

	blocker.QuiescentState()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Synchronize did not return after the blocking reader's quiescent state")
	}

	blocker.ThreadOffline()
	blocker.UnregisterThread()
	newcomer.UnregisterThread()
}

// TestMainDomainConvenienceLayer exercises the process-wide forwarding
// functions.
func TestMainDomainConvenienceLayer(t *testing.T) {
	tls := NewReaderTLS()
	RegisterThread(tls)
	tls.ThreadOnline()

	done := make(chan struct{})
	go func() {
		Synchronize()
		close(done)
	}()

	time.Sleep(5 * time.Millisecond)
	tls.QuiescentState()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("package-level Synchronize did not return")
	}

	tls.ThreadOffline()
	tls.UnregisterThread()
}
