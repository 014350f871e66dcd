package rcu

// mainDomain is the process-wide RCU domain, constructed once at package
// init. The package-level functions below forward to it, giving callers a
// domain-less API for the common case of a single global domain per
// process.
var mainDomain = NewDomain()

// RegisterThread registers tls with the process-wide domain.
func RegisterThread(tls *ReaderTLS) { mainDomain.RegisterThread(tls) }

// Synchronize waits out every reader of the process-wide domain.
func Synchronize() { mainDomain.Synchronize() }
