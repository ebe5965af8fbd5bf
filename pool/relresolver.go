package pool

import (
	"strings"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/jamella/solvepool/models"
)

// rpmlibPrefix marks the synthetic rpmlib(...) capability names that
// fall back to the system solvable when nothing else provides them
// (spec.md §4.7 "rpmlib fallback").
const rpmlibPrefix = "rpmlib("

// Providers resolves id (a StrId or RelId) to its 0-terminated provider
// run, building and memoizing the result for a RelId on first use
// (spec.md §4.7 "RelProviderResolver"). Calling Providers before
// CreateWhatProvides has run returns nil for every id.
func (p *Pool) Providers(id models.Id) []models.Id {
	if !p.hasWhatProvides() {
		return nil
	}
	if !models.IsRel(id) {
		if int(id) >= len(p.whatprovides) {
			return nil
		}
		return p.walkRun(p.whatprovides[id])
	}

	idx := int(models.RelIndex(id))
	if idx >= len(p.whatprovidesRel) {
		p.growWhatProvidesRel(idx + 1)
	}
	if off := p.whatprovidesRel[idx]; off != 0 {
		return p.walkRun(off)
	}
	return p.resolveRel(id, idx)
}

// growWhatProvidesRel extends whatprovidesRel to cover a RelId interned
// after CreateWhatProvides last ran. New slots start at offset 0
// ("unresolved"), same as a freshly built index.
func (p *Pool) growWhatProvidesRel(minLen int) {
	if minLen <= len(p.whatprovidesRel) {
		return
	}
	grown := make([]models.Offset, roundUpBlock(minLen, wpBlockSize))
	copy(grown, p.whatprovidesRel)
	p.whatprovidesRel = grown
}

// resolveRel computes and memoizes the provider run for the RelId id,
// whose RelPool slot is idx. Dispatches on the Reldep's Flags per
// spec.md §4.7's resolution table.
func (p *Pool) resolveRel(id models.RelId, idx int) []models.Id {
	rd := p.Rels.Get(id)

	switch rd.Flags {
	case models.RelAnd, models.RelWith:
		return p.memoizeRel(idx, p.intersectProviders(rd.Name, rd.EVR))
	case models.RelOr:
		return p.memoizeRel(idx, p.unionProviders(rd.Name, rd.EVR))
	case models.RelNamespace:
		return p.resolveNamespace(idx, rd.Name, rd.EVR)
	}

	if models.IsVersionRel(rd.Flags) && rd.Flags != 0 {
		return p.memoizeRel(idx, p.resolveVersionRel(rd.Name, rd.EVR, rd.Flags))
	}

	// flags == 0 (RelUnversioned) or any other unrecognized sentinel:
	// no providers, per spec.md §4.7's "0 or other" row.
	return p.memoizeRel(idx, nil)
}

// memoizeRel enqueues providers into whatprovidesdata and records the
// resulting offset in whatprovidesRel[idx], so subsequent Providers
// calls for the same RelId skip resolution entirely.
func (p *Pool) memoizeRel(idx int, providers []models.Id) []models.Id {
	off := p.EnqueueProviders(providers)
	p.whatprovidesRel[idx] = off
	return p.walkRun(off)
}

// intersectProviders computes providers(name) ∩ providers(evr),
// preserving the order of providers(name) (spec.md §4.7 REL_AND /
// REL_WITH).
func (p *Pool) intersectProviders(name, evr models.Id) []models.Id {
	left := p.Providers(name)
	if len(left) == 0 {
		return nil
	}
	right := p.Providers(evr)
	if len(right) == 0 {
		return nil
	}
	rightSet := roaring.New()
	for _, s := range right {
		rightSet.Add(uint32(s))
	}
	out := make([]models.Id, 0, len(left))
	for _, s := range left {
		if rightSet.Contains(uint32(s)) {
			out = append(out, s)
		}
	}
	return out
}

// unionProviders computes providers(name) ∪ providers(evr), preserving
// left-then-right order and deduplicating (spec.md §4.7 REL_OR).
func (p *Pool) unionProviders(name, evr models.Id) []models.Id {
	left := p.Providers(name)
	right := p.Providers(evr)
	seen := roaring.New()
	out := make([]models.Id, 0, len(left)+len(right))
	for _, s := range left {
		if seen.CheckedAdd(uint32(s)) {
			out = append(out, s)
		}
	}
	for _, s := range right {
		if seen.CheckedAdd(uint32(s)) {
			out = append(out, s)
		}
	}
	return out
}

// resolveNamespace dispatches to the registered NamespaceCallback
// (spec.md §4.7 REL_NAMESPACE). A callback result >1 is a pre-interned
// offset, memoized directly without a second EnqueueProviders copy; 1
// means "only the system solvable", synthesized and enqueued; 0 or an
// unregistered callback means no providers, still memoized so the
// callback is not re-invoked on every query.
func (p *Pool) resolveNamespace(idx int, name, evr models.StrId) []models.Id {
	if p.namespaceCB == nil {
		p.whatprovidesRel[idx] = 1
		return nil
	}
	off := p.namespaceCB(p, p.namespaceCtx, name, evr)
	switch {
	case off > 1:
		p.whatprovidesRel[idx] = off
		return p.walkRun(off)
	case off == 1:
		return p.memoizeRel(idx, []models.Id{models.Id(1)})
	default:
		p.whatprovidesRel[idx] = 1
		return nil
	}
}

// resolveVersionRel implements the versioned-relation compatibility
// scan (spec.md §4.7, flags 1..7): for each candidate provider of name,
// look for a matching Reldep in that solvable's own provides list and
// test version compatibility. Falls back to the system solvable for an
// unsatisfied rpmlib(...) capability.
func (p *Pool) resolveVersionRel(name, evr models.StrId, flags uint8) []models.Id {
	candidates := p.Providers(name)
	var out []models.Id
	for _, sid := range candidates {
		s := p.Solvables.Get(models.SolvableIx(sid))
		if p.solvableSatisfiesVersion(s, name, evr, flags) {
			out = append(out, sid)
		}
	}
	if len(out) == 0 && strings.HasPrefix(p.Strings.StrString(name), rpmlibPrefix) {
		out = []models.Id{models.Id(1)}
	}
	return out
}

// solvableSatisfiesVersion scans s's own provides run for an entry that
// satisfies the (name, evr, flags) requirement: either a bare StrId
// equal to name (an unversioned provide, gated by
// cfg.UnversionedProvidesSatisfyVersioned) or a Reldep whose Name
// matches and whose version compatibility holds.
func (p *Pool) solvableSatisfiesVersion(s *models.Solvable, name, evr models.StrId, flags uint8) bool {
	for _, pid := range p.repoRun(s.Repo, s.Provides) {
		if !models.IsRel(pid) {
			if pid == name && p.cfg.UnversionedProvidesSatisfyVersioned {
				return true
			}
			continue
		}
		prd := p.Rels.Get(pid)
		if prd.Name != name {
			continue
		}
		if p.versionCompatible(flags, evr, prd.Flags, prd.EVR) {
			return true
		}
	}
	return false
}

// versionCompatible implements spec.md §4.7's version-comparison table.
// The final branch preserves, verbatim, the mask formula the spec
// documents as a deliberately-kept subtlety rather than something to be
// "fixed": f selects which of the three evrcmp outcomes (pevr<evr,
// pevr==evr, pevr>evr) counts as a match.
func (p *Pool) versionCompatible(flags uint8, evr models.StrId, pflags uint8, pevr models.StrId) bool {
	if pflags == 0 {
		return false
	}
	if flags == models.RelAnyVersion || pflags == models.RelAnyVersion {
		return true
	}
	if pflags&flags&(models.RelGT|models.RelLT) != 0 {
		return true
	}
	if pevr == evr {
		return pflags&flags&models.RelEQ != 0
	}
	if p.cmp == nil {
		p.logWarn("version relation resolved with no EVRComparator registered, treating as no-match")
		return false
	}
	c := p.cmp.Compare(p, pevr, evr, MatchRelease)

	var f uint8
	switch flags {
	case 5:
		f = 5
	case 2:
		f = pflags
	default:
		f = (flags ^ 5) & (pflags | 5)
	}
	return f&(1<<uint(1+c)) != 0
}
