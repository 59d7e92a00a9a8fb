package freight

import "sync"

// maxTrackedCapacities bounds how many distinct slot counts the pool
// will cache bags for (capacities 0 through maxTrackedCapacities-1).
// Requests at or above this capacity always allocate fresh and are
// never cached.
const maxTrackedCapacities = 100

// defaultMaxCachePer bounds how many reclaimed slices of a single
// capacity the pool keeps around before dropping the surplus.
const defaultMaxCachePer = 1000

// Pool is a size-indexed cache of reusable backing slices, used for
// per-call stack frames and closure capture lists. It amortizes the
// allocation cost of the common case where most calls in a program
// cluster around a handful of frame sizes.
//
// A Pool is safe for concurrent use, though the engine itself is not
// (see the single-threaded cooperative model in spec.md §5); the lock
// exists only to let a host share one Pool across independently-driven
// engines.
type Pool[T any] struct {
	mu          sync.Mutex
	bags        [maxTrackedCapacities][]Slice[T]
	maxCachePer int
	zero        func() T
}

// NewPool creates a Pool whose elements default to the zero value of T
// when no generator function is supplied. maxCachePer bounds the number
// of slices cached per capacity; pass 0 to use the default of 1000.
func NewPool[T any](maxCachePer int) *Pool[T] {
	if maxCachePer <= 0 {
		maxCachePer = defaultMaxCachePer
	}
	return &Pool[T]{maxCachePer: maxCachePer}
}

// Slice is a pooled backing array. Its contents are not aliased with
// any other live Slice handle. Release returns it to its owning pool;
// calling Release more than once, or using the slice afterward, is a
// caller bug (mirrors the Rust source's scoped-drop discipline, which
// Go has no destructor to enforce automatically).
type Slice[T any] struct {
	Data []T
	pool *Pool[T]
}

// Request returns a cached slice of exactly the requested capacity, or
// allocates fresh (zero-filled) if none is cached. The returned slice's
// length equals cap.
func (p *Pool[T]) Request(cap int) Slice[T] {
	if cap >= 0 && cap < maxTrackedCapacities {
		p.mu.Lock()
		bag := p.bags[cap]
		if n := len(bag); n > 0 {
			data := bag[n-1]
			p.bags[cap] = bag[:n-1]
			p.mu.Unlock()
			return data
		}
		p.mu.Unlock()
	}
	return Slice[T]{Data: make([]T, cap), pool: p}
}

// FromPool requests a slice sized to len(elems) and copies elems into it.
func (p *Pool[T]) FromPool(elems []T) Slice[T] {
	s := p.Request(len(elems))
	copy(s.Data, elems)
	return s
}

// FromPoolWithFn requests a slice of the given capacity and fills every
// slot by calling gen once per slot, in order.
func (p *Pool[T]) FromPoolWithFn(cap int, gen func() T) Slice[T] {
	s := p.Request(cap)
	for i := range s.Data {
		s.Data[i] = gen()
	}
	return s
}

// Release returns the slice to its pool. Beyond maxCachePer entries for
// a given capacity, or beyond maxTrackedCapacities distinct capacities,
// the slice is simply dropped (left for the garbage collector).
func (s Slice[T]) Release() {
	p := s.pool
	if p == nil {
		return
	}
	n := len(s.Data)
	if n < 0 || n >= maxTrackedCapacities {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.bags[n]) < p.maxCachePer {
		p.bags[n] = append(p.bags[n], s)
	}
}

// ReleaseShared returns the slice to its pool only if refs indicates
// this is the sole remaining holder (decrementing it first). This
// mirrors the Rc<[T]> uniqueness check in the Rust source's
// CollectionPool::insert for Poolable<T> for Rc<[T]>: a closure's
// capture slice is shared with every instance of that closure, so it
// can only be recycled once the last instance drops it.
func (s Slice[T]) ReleaseShared(refs *int32) {
	if refs != nil {
		*refs--
		if *refs > 0 {
			return
		}
	}
	s.Release()
}
