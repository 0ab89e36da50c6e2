// Package tailqueue implements a mostly-lock-free concurrent FIFO,
// the pointer-based representation: head and tail are atomic pointers,
// append is O(1), and dequeue is O(1).
//
// This is the primary variant (see ringqueue for the circular,
// transform-hook extension). Internally it is realized as the classic
// Michael & Scott queue with a permanent dummy head node rather than a
// literal pointer-to-the-next-link-field, which is the form the source
// material uses. DESIGN.md records this as a deliberate divergence for
// memory safety in a garbage-collected language, every externally
// observable operation (Enqueue, Dequeue, InsertHead, Take, Splice,
// Len, Iterate) keeps the same contract regardless of representation.
package tailqueue
