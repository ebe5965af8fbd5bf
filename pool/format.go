package pool

import "github.com/jamella/solvepool/models"

// SolvableString formats a solvable as "name-evr.arch", the canonical
// short form (spec.md §4.12). A zero solvable formats as "<null>".
func (p *Pool) SolvableString(ix models.SolvableIx) string {
	s := p.Solvables.Get(ix)
	if s.IsZero() {
		return "<null>"
	}
	name := p.Strings.StrString(s.Name)
	evr := p.Strings.StrString(s.EVR)
	arch := p.Strings.StrString(s.Arch)

	buf := make([]byte, 0, len(name)+len(evr)+len(arch)+2)
	buf = append(buf, name...)
	if evr != "" {
		buf = append(buf, '-')
		buf = append(buf, evr...)
	}
	if arch != "" {
		buf = append(buf, '.')
		buf = append(buf, arch...)
	}
	return string(buf)
}

// StringRing is a small fixed-size rotation of reusable scratch buffers
// for formatting calls that need a transient string (spec.md §9, which
// explicitly rejects a single global ring shared across Pool instances
// in favor of one scoped to each Pool). Modeled on the teacher's
// storage/pools.BufferPool, but a ring instead of a sync.Pool: callers
// are single-threaded and want the last few results to stay valid
// simultaneously (e.g. formatting two solvables for one log line),
// which a sync.Pool's reuse-on-Put semantics does not guarantee.
type StringRing struct {
	slots []string
	next  int
}

// NewStringRing creates a ring with room for n simultaneously-valid
// strings.
func NewStringRing(n int) *StringRing {
	if n < 1 {
		n = 1
	}
	return &StringRing{slots: make([]string, n)}
}

// Put stores s in the next ring slot and returns it, unmodified. The
// slot it evicts was last returned n calls ago, where n is the ring's
// capacity.
func (r *StringRing) Put(s string) string {
	r.slots[r.next] = s
	r.next = (r.next + 1) % len(r.slots)
	return s
}

// Ring lazily creates and returns the Pool's scratch string ring.
func (p *Pool) Ring() *StringRing {
	if p.ring == nil {
		p.ring = NewStringRing(4)
	}
	return p.ring
}

// FormatScratch formats ix via SolvableString and stashes the result in
// the Pool's ring, for call sites that want a format-and-log one-liner
// without managing the buffer themselves.
func (p *Pool) FormatScratch(ix models.SolvableIx) string {
	return p.Ring().Put(p.SolvableString(ix))
}
