// Package backend is the portability boundary for the atomic primitives
// that atomiccell, tailqueue and ringqueue are built on.
//
// Go's sync/atomic already collapses what the original C source treated
// as three separate tiers (standard atomics, compiler intrinsics,
// platform interlocked primitives) into one: the Go runtime lowers
// sync/atomic directly onto the same compiler/CPU primitives those tiers
// named by hand. The one tier that remains a genuine build-time choice
// is the mutex fallback, selected with the tailqueue_mutexfallback build
// tag. Both variants implement the same Int64 and Pointer API, so
// atomiccell/tailqueue/ringqueue are written once against this package
// and never branch on the backend themselves.
package backend
