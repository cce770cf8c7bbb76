package langvalue

import "strings"

// PoolSize and PoolSlotHint mirror spec.md §5's memory discipline note: "a
// small ring (e.g., 32 slots of ≥ 1024 bytes)" used to build transient
// concatenation results before they're copied into a value that outlives
// the current statement.
const (
	PoolSize     = 32
	PoolSlotHint = 1024
)

// Pool is the Go-idiomatic reshaping of that ring: instead of raw byte
// buffers, it recycles strings.Builder instances across concatenations
// within one interpreter run, cutting allocations for chains like
// `a + b + c + d` without violating string immutability. Every call to
// Concat returns a freshly materialized Go string, so — exactly as
// spec.md requires — the result never aliases either operand's storage
// and a later concatenation can reuse the same builder safely.
type Pool struct {
	ring [PoolSize]strings.Builder
	next int
}

// NewPool constructs an empty ring, sized per PoolSize/PoolSlotHint.
func NewPool() *Pool {
	p := &Pool{}
	for i := range p.ring {
		p.ring[i].Grow(PoolSlotHint)
	}
	return p
}

// Concat returns a+b as a fresh string, recycling one ring slot's backing
// storage across calls.
func (p *Pool) Concat(a, b string) string {
	slot := &p.ring[p.next]
	p.next = (p.next + 1) % PoolSize
	slot.Reset()
	slot.WriteString(a)
	slot.WriteString(b)
	// strings.Builder.String() aliases the builder's backing array; clone
	// it so the next Reset/Write on this ring slot can't retroactively
	// mutate a string a caller is still holding.
	return strings.Clone(slot.String())
}
