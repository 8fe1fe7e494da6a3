package pricing

import (
	"sync"

	"broadbandx-pricing/core/types"
)

// ring is a bounded, concurrency-safe append-only buffer of pricing
// results. Once full, the oldest entry is overwritten. Bounding the
// buffer replaces the unbounded in-process history of earlier designs.
type ring struct {
	mu   sync.Mutex
	buf  []*types.PricingResult
	next int
	full bool
}

func newRing(capacity int) *ring {
	return &ring{buf: make([]*types.PricingResult, capacity)}
}

func (r *ring) append(result *types.PricingResult) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.buf[r.next] = result
	r.next++
	if r.next == len(r.buf) {
		r.next = 0
		r.full = true
	}
}

// recent returns up to limit most recent entries, oldest first.
// A non-positive limit returns everything retained.
func (r *ring) recent(limit int) []*types.PricingResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	size := r.next
	if r.full {
		size = len(r.buf)
	}
	if limit <= 0 || limit > size {
		limit = size
	}

	out := make([]*types.PricingResult, 0, limit)
	start := r.next - limit
	if start < 0 {
		start += len(r.buf)
	}
	for i := 0; i < limit; i++ {
		out = append(out, r.buf[(start+i)%len(r.buf)])
	}
	return out
}
