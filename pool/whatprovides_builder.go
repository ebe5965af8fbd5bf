package pool

import (
	"github.com/jamella/solvepool/logger"
	"github.com/jamella/solvepool/models"
)

// wpBlockSize rounds whatprovides/whatprovides_rel allocations up to a
// block multiple (spec.md §4.4 step 2), mirroring solvableBlockSize.
const wpBlockSize = 256

// maxUnwrapDepth bounds the name-chain unwrap in unwrapName, guarding
// against a cyclic Reldep chain (spec.md §7 "cycle through RelDeps ...
// depth limits in relation resolution").
const maxUnwrapDepth = 64

// CreateWhatProvides runs the two-pass WhatProvidesBuilder (spec.md
// §4.4) followed by WhatProvidesShrinker (§4.5). Any previously built
// index is discarded first.
func (p *Pool) CreateWhatProvides() {
	p.FreeWhatProvides()

	nstrings := p.Strings.Len()
	nrels := p.Rels.Len()
	wpSize := roundUpBlock(nstrings, wpBlockSize)
	wpRelSize := roundUpBlock(nrels, wpBlockSize)

	p.whatprovides = make([]models.Offset, wpSize)
	p.whatprovidesRel = make([]models.Offset, wpRelSize)

	counts := make([]int, wpSize)

	// Counting pass.
	p.forEachInstallableProvide(func(name models.StrId, _ models.SolvableIx) {
		counts[name]++
	})

	// Layout pass.
	off := models.Offset(2)
	for i, c := range counts {
		if c == 0 {
			continue
		}
		counts[i] = 0 // reused below as the fill-pass write cursor
		p.whatprovides[i] = off
		off += models.Offset(c) + 1
	}

	extra := p.cfg.WhatProvidesDataExtraMin
	if 2*nrels > extra {
		extra = 2 * nrels
	}
	p.whatprovidesData = make([]models.Id, int(off)+extra)

	// Fill pass.
	p.forEachInstallableProvide(func(name models.StrId, ix models.SolvableIx) {
		base := int(p.whatprovides[name])
		pos := counts[name]
		if pos > 0 && p.whatprovidesData[base+pos-1] == models.Id(ix) {
			return // consecutive duplicate suppression (spec.md §4.4 step 6)
		}
		p.whatprovidesData[base+pos] = models.Id(ix)
		counts[name] = pos + 1
	})

	p.dataOff = int(off)

	p.logCategory(logger.CategoryStats, "whatprovides built: %d strings, %d rels, %d data cells", nstrings, nrels, len(p.whatprovidesData))

	p.shrinkWhatProvides()
}

// forEachInstallableProvide walks every installable solvable's provides
// run, unwraps each entry to its head StrId, and invokes fn once per
// entry (spec.md §4.4 steps 3 and 6 share this walk, which is why both
// the counting and fill passes call it with different callbacks).
func (p *Pool) forEachInstallableProvide(fn func(name models.StrId, ix models.SolvableIx)) {
	for i := 1; i < p.Solvables.Len(); i++ {
		ix := models.SolvableIx(i)
		s := p.Solvables.Get(ix)
		if s.Provides == 0 {
			continue
		}
		if !p.installable(p, s) {
			continue
		}
		for _, id := range p.repoRun(s.Repo, s.Provides) {
			name := p.unwrapName(id)
			if name == models.IDNull {
				continue
			}
			fn(name, ix)
		}
	}
}

// unwrapName follows a chain of RelDep.Name references down to a plain
// StrId (spec.md §4.4 step 3: "follow .name chains ... until a StrId is
// reached"). Returns IDNull if the chain exceeds maxUnwrapDepth, which
// is logged and treated as "no providers" per spec.md §7.
func (p *Pool) unwrapName(id models.Id) models.StrId {
	for depth := 0; models.IsRel(id); depth++ {
		if depth >= maxUnwrapDepth {
			p.logWarn("whatprovides: relation name chain exceeded depth %d, dropping", maxUnwrapDepth)
			return models.IDNull
		}
		id = p.Rels.Get(id).Name
	}
	return id
}

// repoRun resolves a Solvable's dependency-list Offset through its
// owning Repo's idarraydata. Returns nil if the repo has been detached
// (spec.md §7 "Repo detached mid-query": undefined, so this module
// degrades to an empty run rather than panicking).
func (p *Pool) repoRun(ref models.RepoRef, off models.Offset) []models.Id {
	r := p.Repo(ref)
	if r == nil {
		return nil
	}
	return r.Walk(off)
}
