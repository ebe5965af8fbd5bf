package pool

import (
	"sort"

	"github.com/jamella/solvepool/logger"
	"github.com/jamella/solvepool/models"
)

// shrinkTailHeadroom is the small zeroed tail left after compaction
// (spec.md §4.5 step 4). Step 4 trims whatprovidesdata to the compacted
// data plus this tail, so the larger `extra` headroom CreateWhatProvides
// allocates before the fill pass does not survive the build; later
// EnqueueProviders calls grow the array when this tail runs out.
const shrinkTailHeadroom = 64

// shrinkWhatProvides implements WhatProvidesShrinker (spec.md §4.5):
// names with identical provider runs are collapsed to share storage.
// Precondition: whatprovidesRel must still be empty — no relation has
// been resolved yet, so no run in whatprovidesdata is addressed from
// outside the StrId space this function rewrites.
func (p *Pool) shrinkWhatProvides() {
	for _, o := range p.whatprovidesRel {
		if o != 0 {
			p.logFatal("shrink: whatprovides_rel must be empty before shrinking")
			panic(models.ErrInvariantViolation)
		}
	}

	// Step 1: collect StrIds with a real run and sort by run content,
	// ties broken by StrId ascending.
	var real []models.StrId
	for id := models.StrId(2); int(id) < len(p.whatprovides); id++ {
		if p.whatprovides[id] > 1 {
			real = append(real, id)
		}
	}
	sort.Slice(real, func(i, j int) bool {
		a, b := real[i], real[j]
		c := compareRuns(p.walkRun(p.whatprovides[a]), p.walkRun(p.whatprovides[b]))
		if c != 0 {
			return c < 0
		}
		return a < b
	})

	// Step 2: sweep, tagging equal runs with a negative back-reference
	// to the first (smallest-StrId) member of their group.
	var lastRun []models.Id
	var lastID models.StrId
	haveLast := false
	for _, id := range real {
		run := p.walkRun(p.whatprovides[id])
		if haveLast && compareRuns(run, lastRun) == 0 {
			p.whatprovides[id] = -models.Offset(lastID)
			continue
		}
		lastRun, lastID, haveLast = run, id, true
	}

	// Step 3: compaction pass in StrId order.
	dp := models.Offset(2)
	for id := models.StrId(2); int(id) < len(p.whatprovides); id++ {
		o := p.whatprovides[id]
		switch {
		case o == 0 || o == 1:
			continue
		case o < 0:
			refID := models.StrId(-o)
			if refID >= id {
				p.logFatal("shrink: back-reference from %d points forward to %d", id, refID)
				panic(models.ErrInvariantViolation)
			}
			resolved := p.whatprovides[refID]
			if resolved <= 1 {
				p.logFatal("shrink: back-reference from %d to %d did not resolve to a compacted offset", id, refID)
				panic(models.ErrInvariantViolation)
			}
			p.whatprovides[id] = resolved
		default:
			if o < dp {
				p.logFatal("shrink: compaction source %d for id %d lies behind write cursor %d", o, id, dp)
				panic(models.ErrInvariantViolation)
			}
			j := int(o)
			for p.whatprovidesData[j] != models.IDNull {
				j++
			}
			runLen := j - int(o)
			copy(p.whatprovidesData[dp:int(dp)+runLen], p.whatprovidesData[o:o+models.Offset(runLen)])
			p.whatprovidesData[int(dp)+runLen] = models.IDNull
			p.whatprovides[id] = dp
			dp += models.Offset(runLen) + 1
		}
	}

	// Step 4: shrink whatprovidesdata to dp plus a small zeroed tail.
	newLen := int(dp) + shrinkTailHeadroom
	if newLen > len(p.whatprovidesData) {
		newLen = len(p.whatprovidesData)
	}
	compacted := make([]models.Id, newLen)
	copy(compacted, p.whatprovidesData[:dp])
	p.whatprovidesData = compacted
	p.dataOff = int(dp)

	p.logCategory(logger.CategoryStats, "whatprovides shrunk to %d data cells (%d names compacted)", len(p.whatprovidesData), len(real))
}

// compareRuns lexicographically compares two Id runs. A run that is a
// strict prefix of the other sorts first.
func compareRuns(a, b []models.Id) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}
