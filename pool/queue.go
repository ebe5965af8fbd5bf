package pool

import "github.com/jamella/solvepool/models"

// EnqueueProviders appends a 0-terminated copy of q to whatprovidesdata
// and returns its starting Offset (spec.md §4.6). Used both internally,
// to memoize relation resolution results, and externally by a solver
// that wants to intern a synthesized provider set. Requires
// CreateWhatProvides to have already run — enqueuing before a
// whatprovides index exists is a caller bug, not a recoverable one.
func (p *Pool) EnqueueProviders(q []models.Id) models.Offset {
	if len(q) == 0 {
		return 1
	}
	needed := len(q) + 1
	free := len(p.whatprovidesData) - p.dataOff
	if free < needed {
		grow := needed + p.cfg.EnqueueGrowSlack
		grown := make([]models.Id, len(p.whatprovidesData)+grow)
		copy(grown, p.whatprovidesData)
		p.whatprovidesData = grown
	}

	start := models.Offset(p.dataOff)
	copy(p.whatprovidesData[p.dataOff:], q)
	p.dataOff += len(q)
	p.whatprovidesData[p.dataOff] = models.IDNull
	p.dataOff++
	return start
}
