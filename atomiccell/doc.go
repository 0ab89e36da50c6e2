// Package atomiccell wraps a signed 64-bit integer with linearizable
// load/store/add/sub/inc/dec operations, and a Group collaborator for
// compound updates across several cells.
//
// A Group stands in for the source's "paired recursive mutex": a cell
// created with NewPaired shares its group's single critical section, so
// a caller can update several paired cells atomically by wrapping the
// updates in one Group.Do call. Cells created with New never touch a
// group's mutex; they are lock-free unless the module is built with the
// tailqueue_mutexfallback tag, which makes internal/backend mutex-guarded.
package atomiccell
