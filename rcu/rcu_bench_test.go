// rcu_bench_test.go
//
// Benchmarks for two scenarios:
//   - QuiescentState – reader-side cost of reporting a quiescent state
//     against a domain with no pending grace period
//   - Synchronize    – writer-side grace-period cost against a fixed
//     number of readers reporting quiescent states in the background

package rcu

import (
	"runtime"
	"sync"
	"testing"
)

func BenchmarkRCU_QuiescentState(b *testing.B) {
	dom := NewDomain()
	tls := NewReaderTLS()
	dom.RegisterThread(tls)
	tls.ThreadOnline()
	defer func() {
		tls.ThreadOffline()
		tls.UnregisterThread()
	}()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tls.QuiescentState()
	}
}

func BenchmarkRCU_Synchronize(b *testing.B) {
	dom := NewDomain()

	stop := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < runtime.NumCPU(); i++ {
		tls := NewReaderTLS()
		dom.RegisterThread(tls)
		tls.ThreadOnline()

		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					tls.ThreadOffline()
					tls.UnregisterThread()
					return
				default:
				}
				tls.QuiescentState()
			}
		}()
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		dom.Synchronize()
	}
	b.StopTimer()
	close(stop)
	wg.Wait()
}
