package models

// Solvable is an installable unit: a name/arch/version tuple plus the
// typed dependency lists a SAT-based solver reasons over. Each
// dependency field is an Offset into the owning Repo's idarraydata — a
// flat, 0-terminated run of Id that may mix plain StrIds and tagged
// RelIds. Index 0 of the SolvableStore is reserved; index 1 is the
// synthetic system solvable (Name == IDSystemSystem, Arch ==
// IDNoarch, EVR == IDEmpty) used to satisfy unresolved rpmlib(...) and
// namespace queries.
type Solvable struct {
	Name   StrId
	Arch   StrId
	EVR    StrId
	Vendor StrId
	Repo   RepoRef

	Provides    Offset
	Requires    Offset
	Conflicts   Offset
	Obsoletes   Offset
	Recommends  Offset
	Suggests    Offset
	Supplements Offset
	Enhances    Offset
	Freshens    Offset
}

// DependencyLists returns the eight non-Provides dependency offsets in
// the order FileProvidesScanner walks them (spec.md §4.8). Provides is
// deliberately excluded: the scanner only looks for file paths inside
// requires/conflicts/obsoletes/.../freshens, never inside a solvable's
// own provides.
func (s *Solvable) DependencyLists() []Offset {
	return []Offset{
		s.Obsoletes,
		s.Conflicts,
		s.Requires,
		s.Recommends,
		s.Suggests,
		s.Supplements,
		s.Enhances,
		s.Freshens,
	}
}

// IsZero reports whether a SolvableStore slot holds no real solvable —
// either never allocated or freed by FreeBlock. Zero-name slots are
// tolerated rather than tracked in a free list (spec.md §4.3): any code
// walking the store must skip them.
func (s *Solvable) IsZero() bool {
	return s.Name == IDNull
}
