package layout

// Allocator hands out primitive ids for one Compute call. It is not safe
// for concurrent use and must not be shared between runs.
type Allocator struct {
	next int
}

// NewAllocator returns an allocator whose first id is base.
func NewAllocator(base int) *Allocator {
	return &Allocator{next: base}
}

// Next returns a fresh id.
func (a *Allocator) Next() int {
	id := a.next
	a.next++
	return id
}

// Peek returns the id Next would return.
func (a *Allocator) Peek() int { return a.next }
