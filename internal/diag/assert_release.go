//go:build !smrdebug

package diag

// Debug is false in release builds; Assert is a no-op the compiler can
// inline away entirely.
const Debug = false

func Assert(cond bool, format string, args ...any) {}
