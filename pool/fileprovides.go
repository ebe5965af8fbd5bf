package pool

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/jamella/solvepool/models"
)

// FileProvidesScanner walks a solvable's dependency lists looking for
// literal file paths (spec.md §4.8), the names a solver needs to be
// able to satisfy a "requires: /usr/bin/foo" style dependency even
// though no package explicitly "provides" that path.
type FileProvidesScanner struct {
	p       *Pool
	visited *bitset.BitSet
	out     []models.StrId
}

// ScanFileProvides collects every StrId reachable from s's dependency
// lists (spec.md §4.8 "DependencyLists", excluding Provides itself)
// whose string begins with "/". Relation chains are unwrapped following
// the descent rules below; a visited-set over the combined StrId+RelId
// space guards against cycles through shared Reldeps. This scanner's
// visited-set is scoped to s alone; use AddFileProvides to scan the
// whole pool with one shared visited-set.
func (p *Pool) ScanFileProvides(s *models.Solvable) []models.StrId {
	sc := &FileProvidesScanner{
		p:       p,
		visited: bitset.New(uint(p.Strings.Len() + p.Rels.Len())),
	}
	sc.scanSolvable(s)
	return sc.out
}

// AddFileProvides is the pool-wide add_file_provides() (spec.md §6):
// it walks every solvable's dependency lists with one shared
// visited-set, so a path required by two packages is emitted exactly
// once in the combined search-files output, then invalidates the
// whatprovides index since the external filelist scanner is expected
// to add synthetic provides for the returned paths (spec.md §4.8 "the
// whatprovides index must be rebuilt").
func (p *Pool) AddFileProvides() []models.StrId {
	sc := &FileProvidesScanner{
		p:       p,
		visited: bitset.New(uint(p.Strings.Len() + p.Rels.Len())),
	}
	for i := 1; i < p.Solvables.Len(); i++ {
		s := p.Solvables.Get(models.SolvableIx(i))
		if s.IsZero() {
			continue
		}
		sc.scanSolvable(s)
	}
	p.FreeWhatProvides()
	return sc.out
}

// scanSolvable walks s's dependency lists into sc, sharing sc's
// visited-set and output slice with whatever else sc has already
// scanned.
func (sc *FileProvidesScanner) scanSolvable(s *models.Solvable) {
	for _, off := range s.DependencyLists() {
		for _, id := range sc.p.repoRun(s.Repo, off) {
			sc.visit(id)
		}
	}
}

// visitKey maps an Id into the scanner's combined visited-set index
// space: StrIds occupy [0, nstrings) and RelIds occupy
// [nstrings, nstrings+nrels).
func (sc *FileProvidesScanner) visitKey(id models.Id) uint {
	if models.IsRel(id) {
		return uint(sc.p.Strings.Len()) + uint(models.RelIndex(id))
	}
	return uint(id)
}

func (sc *FileProvidesScanner) visit(id models.Id) {
	key := sc.visitKey(id)
	if sc.visited.Test(key) {
		return
	}
	sc.visited.Set(key)

	if !models.IsRel(id) {
		if b := sc.p.Strings.Str(id); len(b) > 0 && b[0] == '/' {
			sc.out = append(sc.out, id)
		}
		return
	}

	rd := sc.p.Rels.Get(id)
	switch rd.Flags {
	case models.RelNamespace:
		if rd.Name == models.IDNamespaceInstalled {
			return
		}
		sc.visit(rd.EVR)
		sc.visit(rd.Name)
	default:
		if models.IsVersionRel(rd.Flags) {
			// Version comparisons only ever wrap a plain name; EVR is
			// a version string, never a file path.
			sc.visit(rd.Name)
			return
		}
		// REL_AND / REL_OR / REL_WITH: descend into both operands.
		sc.visit(rd.Name)
		sc.visit(rd.EVR)
	}
}
