// Package idpool hands out small integer ids and recycles the ones given back.
package idpool

// Pool allocates ids in [1, max] and reuses freed ids in FIFO order before growing.
// It is not safe for concurrent use.
type Pool[T ~uint64] struct {
	max  T
	free []T
}

// New returns an empty pool whose first allocation is 1.
func New[T ~uint64]() *Pool[T] {
	return &Pool[T]{}
}

// Allocate returns the oldest freed id, or a new id one above the current maximum.
func (p *Pool[T]) Allocate() T {
	if len(p.free) == 0 {
		p.max++
		return p.max
	}
	id := p.free[0]
	p.free = p.free[1:]
	return id
}

// Free gives id back. Freeing the current maximum shrinks the range instead of queueing.
// Freeing an id that is not allocated corrupts the pool.
func (p *Pool[T]) Free(id T) {
	if id == p.max {
		p.max--
		return
	}
	p.free = append(p.free, id)
}

// Rebuild resets the pool after a bulk load: max becomes observedMax and every id
// below it that inUse rejects is queued in ascending order.
func (p *Pool[T]) Rebuild(inUse func(T) bool, observedMax T) {
	p.max = observedMax
	p.free = p.free[:0]
	for id := T(1); id < observedMax; id++ {
		if !inUse(id) {
			p.free = append(p.free, id)
		}
	}
}

// Max returns the highest id the pool may have handed out.
func (p *Pool[T]) Max() T { return p.max }

// FreeIDs returns a copy of the free queue, front first.
func (p *Pool[T]) FreeIDs() []T {
	out := make([]T, len(p.free))
	copy(out, p.free)
	return out
}

// FreeLen returns the number of queued ids.
func (p *Pool[T]) FreeLen() int { return len(p.free) }
