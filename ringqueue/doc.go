// Package ringqueue implements a circular, preallocated ring of nodes,
// with an enqueue-with-transform hook and a per-node READY/BUSY status
// that delays a consumer until a producer has published its item.
//
// This is the optional extension to tailqueue's primary pointer-based
// FIFO: an implementer can choose either representation as primary and
// keep the other as a documented alternative. It is grounded directly
// on original_source/sim_tailq.c's ring-growth and transform-hook
// algorithm (tailq_add_node / sim_tailq_enqueue_xform /
// sim_tailq_dequeue), translated to Go's generics and sync/atomic.
package ringqueue
