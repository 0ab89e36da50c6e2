package atomiccell

import (
	"sync"

	"github.com/gsingh-ds/go-atomic-tailqueue/internal/backend"
)

// Group owns the single critical section shared by every Cell created
// with NewPaired against it. Do executes fn with that section held,
// letting a caller update several paired cells as one compound,
// linearized step, in place of a caller-supplied recursive mutex.
type Group struct {
	mu sync.Mutex
}

func NewGroup() *Group {
	return &Group{}
}

// Do runs fn with the group's section held. fn must only touch cells
// paired with this same group, and must use the *Locked accessors
// (LoadLocked, StoreLocked, ...) rather than the plain ones, which
// would otherwise try to re-acquire the section and deadlock.
func (g *Group) Do(fn func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	fn()
}

// Cell is a linearizable wrapper around a signed 64-bit integer.
//
// A Cell created with New is backed by internal/backend: lock-free by
// default, mutex-guarded under the tailqueue_mutexfallback build tag.
// A Cell created with NewPaired shares its Group's section: standalone
// operations (Load, Store, ...) acquire the section for the duration of
// the call; the *Locked variants assume the caller already holds it
// (via Group.Do) and touch the raw value directly.
type Cell struct {
	group *Group
	raw   int64
	cell  backend.Int64
}

// New returns a cell holding 0, not paired with any group.
func New() *Cell {
	return &Cell{}
}

// NewPaired returns a cell holding 0 that shares g's section for
// compound cross-cell updates.
func NewPaired(g *Group) *Cell {
	return &Cell{group: g}
}

// Destroy sets the cell to -1. Further use is a caller error and is
// not diagnosed at runtime.
func (c *Cell) Destroy() {
	c.Store(-1)
}

func (c *Cell) Load() int64 {
	if c.group != nil {
		c.group.mu.Lock()
		defer c.group.mu.Unlock()
		return c.raw
	}
	return c.cell.Load()
}

func (c *Cell) Store(v int64) {
	if c.group != nil {
		c.group.mu.Lock()
		defer c.group.mu.Unlock()
		c.raw = v
		return
	}
	c.cell.Store(v)
}

func (c *Cell) Add(x int64) int64 {
	if c.group != nil {
		c.group.mu.Lock()
		defer c.group.mu.Unlock()
		c.raw += x
		return c.raw
	}
	return c.cell.Add(x)
}

func (c *Cell) Sub(x int64) int64 {
	return c.Add(-x)
}

func (c *Cell) Inc() int64 {
	return c.Add(1)
}

func (c *Cell) Dec() int64 {
	return c.Add(-1)
}

// LoadLocked, StoreLocked, AddLocked, SubLocked, IncLocked and DecLocked
// assume the caller already holds the cell's group section (via
// Group.Do). They panic if called on a cell that isn't paired, since
// there is no section to assume held.
func (c *Cell) LoadLocked() int64 {
	c.mustBePaired()
	return c.raw
}

func (c *Cell) StoreLocked(v int64) {
	c.mustBePaired()
	c.raw = v
}

func (c *Cell) AddLocked(x int64) int64 {
	c.mustBePaired()
	c.raw += x
	return c.raw
}

func (c *Cell) SubLocked(x int64) int64 {
	return c.AddLocked(-x)
}

func (c *Cell) IncLocked() int64 {
	return c.AddLocked(1)
}

func (c *Cell) DecLocked() int64 {
	return c.AddLocked(-1)
}

func (c *Cell) mustBePaired() {
	if c.group == nil {
		panic("atomiccell: *Locked accessor called on an unpaired cell")
	}
}
