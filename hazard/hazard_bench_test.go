// hazard_bench_test.go
//
// Benchmarks for three scenarios:
//   - GetPut      – single-goroutine acquire/release latency against a
//     steady publication
//   - GetPutPar   – the same, from many goroutines concurrently, to surface
//     slot contention within a bank
//   - Synchronize – writer-side grace-period cost against a fixed number of
//     readers hammering Get/Put in the background

package hazard

import (
	"runtime"
	"sync"
	"testing"
)

func BenchmarkHazard_GetPut(b *testing.B) {
	dom := NewDomain()
	var pub Pointer
	node := NewNode(nil, func(*Node) {})
	pub.Store(node)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ctx, ok := dom.Get(&pub)
		if !ok {
			b.Fatal("Get observed NULL")
		}
		dom.Put(ctx)
	}
}

func BenchmarkHazard_GetPutParallel(b *testing.B) {
	dom := NewDomain()
	var pub Pointer
	node := NewNode(nil, func(*Node) {})
	pub.Store(node)

	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			ctx, ok := dom.Get(&pub)
			if !ok {
				b.Fatal("Get observed NULL")
			}
			dom.Put(ctx)
		}
	})
}

func BenchmarkHazard_Synchronize(b *testing.B) {
	dom := NewDomain()
	var pub Pointer
	node := NewNode(nil, func(*Node) {})
	pub.Store(node)

	stop := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < runtime.NumCPU(); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				if ctx, ok := dom.Get(&pub); ok {
					dom.Put(ctx)
				}
			}
		}()
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		dom.Synchronize(nil)
	}
	b.StopTimer()
	close(stop)
	wg.Wait()
}
