package pool

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"

	"github.com/jamella/solvepool/models"
)

// RelPool interns (name, flags, evr) triples into dense RelIds, tagged
// with the high bit so they share the Id namespace with StringPool's
// StrIds (spec.md §3 "Identifier encoding"). Append-only, like
// StringPool: rels[0] is reserved and never dereferenced.
type RelPool struct {
	rels  []models.Reldep
	table []models.Id // stores tagged RelIds; models.IDNull marks an empty slot
	mask  uint32
}

// NewRelPool creates a pool with rels[0] reserved.
func NewRelPool() *RelPool {
	rp := &RelPool{
		rels:  make([]models.Reldep, 1, 1024),
		table: make([]models.Id, 1024),
		mask:  1023,
	}
	return rp
}

// InternRel returns the RelId for (name, flags, evr), assigning a new
// slot if this triple has never been seen.
func (rp *RelPool) InternRel(name, evr models.Id, flags uint8) models.RelId {
	h := hashTriple(name, evr, flags)
	mask := uint64(rp.mask)
	for i := h & mask; ; i = (i + 1) & mask {
		id := rp.table[i]
		if id == models.IDNull {
			break
		}
		r := &rp.rels[models.RelIndex(id)]
		if r.Name == name && r.EVR == evr && r.Flags == flags {
			return id
		}
	}
	return rp.insertNew(name, evr, flags, h)
}

// Get returns the Reldep a RelId names. The caller must not
// dereference RelId 0 (it is never produced by InternRel).
func (rp *RelPool) Get(id models.RelId) *models.Reldep {
	return &rp.rels[models.RelIndex(id)]
}

// Len returns the number of interned Reldeps, including the reserved
// slot 0.
func (rp *RelPool) Len() int {
	return len(rp.rels)
}

func (rp *RelPool) insertNew(name, evr models.Id, flags uint8, h uint64) models.RelId {
	idx := uint32(len(rp.rels))
	rp.rels = append(rp.rels, models.Reldep{Name: name, EVR: evr, Flags: flags})
	id := models.MakeRelId(idx)

	if 2*len(rp.rels) >= len(rp.table) {
		rp.grow()
	}
	rp.tableInsertAt(h, id)
	return id
}

func (rp *RelPool) tableInsertAt(h uint64, id models.RelId) {
	mask := uint64(rp.mask)
	for i := h & mask; ; i = (i + 1) & mask {
		if rp.table[i] == models.IDNull {
			rp.table[i] = id
			return
		}
	}
}

func (rp *RelPool) grow() {
	newSize := len(rp.table) * 2
	rp.table = make([]models.Id, newSize)
	rp.mask = uint32(newSize - 1)
	for idx := 1; idx < len(rp.rels); idx++ {
		r := rp.rels[idx]
		h := hashTriple(r.Name, r.EVR, r.Flags)
		rp.tableInsertAt(h, models.MakeRelId(uint32(idx)))
	}
}

func hashTriple(name, evr models.Id, flags uint8) uint64 {
	var b [9]byte
	binary.LittleEndian.PutUint32(b[0:4], uint32(name))
	binary.LittleEndian.PutUint32(b[4:8], uint32(evr))
	b[8] = flags
	return xxhash.Sum64(b[:])
}
