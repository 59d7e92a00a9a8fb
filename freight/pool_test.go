package freight

import "testing"

func TestPoolRequestZeroFilled(t *testing.T) {
	p := NewPool[int](0)
	s := p.Request(4)
	for i, v := range s.Data {
		if v != 0 {
			t.Fatalf("slot %d not zero-filled: %d", i, v)
		}
	}
	if len(s.Data) != 4 {
		t.Fatalf("expected length 4, got %d", len(s.Data))
	}
}

func TestPoolRecyclesReleasedSlice(t *testing.T) {
	p := NewPool[int](0)
	s := p.Request(3)
	s.Data[0] = 7
	s.Release()

	s2 := p.Request(3)
	if s2.Data[0] != 7 {
		t.Fatalf("expected recycled backing array to retain stale data, got %d", s2.Data[0])
	}
}

func TestPoolFromPoolCopiesElems(t *testing.T) {
	p := NewPool[string](0)
	s := p.FromPool([]string{"a", "b", "c"})
	if len(s.Data) != 3 || s.Data[0] != "a" || s.Data[2] != "c" {
		t.Fatalf("unexpected copy: %v", s.Data)
	}
}

func TestPoolFromPoolWithFnCallsOncePerSlot(t *testing.T) {
	p := NewPool[int](0)
	n := 0
	s := p.FromPoolWithFn(5, func() int {
		n++
		return n
	})
	if n != 5 {
		t.Fatalf("expected generator called 5 times, got %d", n)
	}
	for i, v := range s.Data {
		if v != i+1 {
			t.Fatalf("slot %d: expected %d, got %d", i, i+1, v)
		}
	}
}

func TestPoolMaxCachePerBoundsRetention(t *testing.T) {
	p := NewPool[int](2)
	held := make([]Slice[int], 5)
	for i := range held {
		held[i] = p.Request(1)
	}
	for _, s := range held {
		s.Release()
	}
	p.mu.Lock()
	cached := len(p.bags[1])
	p.mu.Unlock()
	if cached != 2 {
		t.Fatalf("expected at most maxCachePer=2 cached, got %d", cached)
	}
}

func TestPoolCapacityAboveTrackedRangeIsNotCached(t *testing.T) {
	p := NewPool[int](0)
	s := p.Request(maxTrackedCapacities)
	s.Release()
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.bags {
		if len(p.bags[i]) != 0 {
			t.Fatalf("expected no bag populated for an above-range request, found entries at %d", i)
		}
	}
}

func TestReleaseSharedKeepsSliceAliveUntilLastHolder(t *testing.T) {
	p := NewPool[int](0)
	s := p.Request(2)
	refs := int32(2)

	s.ReleaseShared(&refs)
	p.mu.Lock()
	cached := len(p.bags[2])
	p.mu.Unlock()
	if cached != 0 {
		t.Fatalf("expected slice not yet recycled with refs=%d remaining", refs)
	}

	s.ReleaseShared(&refs)
	p.mu.Lock()
	cached = len(p.bags[2])
	p.mu.Unlock()
	if cached != 1 {
		t.Fatalf("expected slice recycled once the last holder released it")
	}
}

func TestReleaseSharedWithNilRefsAlwaysRecycles(t *testing.T) {
	p := NewPool[int](0)
	s := p.Request(1)
	s.ReleaseShared(nil)
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.bags[1]) != 1 {
		t.Fatalf("expected slice recycled when refs is nil")
	}
}
