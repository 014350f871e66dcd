package hazard

// mainDomain is the process-wide hazard-pointer domain, constructed once
// at package init. The package-level Get/Put/Promote/Synchronize*
// functions below forward to it, giving callers a domain-less API for the
// common case of a single global reclamation domain per process.
var mainDomain = NewDomain()

// Get acquires a hazard pointer from the process-wide domain.
func Get(pub *Pointer) (Ctx, bool) { return mainDomain.Get(pub) }

// Put releases ctx back to the process-wide domain.
func Put(ctx Ctx) { mainDomain.Put(ctx) }

// Promote upgrades ctx from a hazard pointer to a refcount on the
// process-wide domain.
func Promote(ctx *Ctx) { mainDomain.Promote(ctx) }

// Synchronize waits out readers of the process-wide domain.
func Synchronize(node *Node) { mainDomain.Synchronize(node) }

// SynchronizePut waits out readers of node on the process-wide domain, then
// drops the caller's owning reference.
func SynchronizePut(node *Node) { mainDomain.SynchronizePut(node) }
