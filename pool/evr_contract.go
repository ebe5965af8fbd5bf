package pool

import "github.com/jamella/solvepool/models"

// Mode selects an EVR comparison variant. spec.md §6 names MATCH_RELEASE
// concretely (release segment participates in the comparison) and
// leaves room for others via "...".
type Mode int

const (
	// MatchRelease compares epoch, version, and release.
	MatchRelease Mode = iota
	// MatchVersionOnly ignores the release segment, useful for
	// "is this the same upstream version regardless of packaging
	// revision" queries.
	MatchVersionOnly
)

// EVRComparator is the external contract spec.md §6 describes:
// evrcmp(&Pool, a, b, mode) -> {-1,0,+1}. pool.Pool depends only on this
// interface, never on a concrete implementation — the evr package's
// Default() is one implementation among possibly several a caller could
// register via Pool.SetEVRComparator.
type EVRComparator interface {
	Compare(p *Pool, a, b models.StrId, mode Mode) int
}

// SetEVRComparator registers the comparator used for version-relation
// resolution (spec.md §4.7). Without a comparator, a version relation
// can still match through an unversioned provide (RPM mode), the
// flags==7 any-version shortcut, overlapping same-direction
// comparators, or equal EVR ids; every pair that needs an actual EVR
// comparison counts as no match, per spec.md §7's "missing external
// callback" rule.
func (p *Pool) SetEVRComparator(c EVRComparator) {
	p.cmp = c
}
