package pool

import (
	"bytes"

	"github.com/cespare/xxhash/v2"

	"github.com/jamella/solvepool/models"
)

// StringPool is an append-only string interner: bytes are stored once
// in a contiguous buffer, and repeated interning of equal bytes always
// returns the same dense StrId. Unlike the teacher's
// models.StringIntern, nothing is ever evicted — spec.md §3 requires a
// StrId to never change for the pool's lifetime, which rules out LRU
// eviction entirely. What survives from the teacher's design is the
// open-addressed hash-keyed lookup and the hit/miss bookkeeping; what
// changes is that this is the identity function, not a GC-pressure
// reducer: a StrId IS the string's address in this system, not a
// deduplicated copy of it.
type StringPool struct {
	buf     []byte      // every interned string, each followed by a 0 byte
	offsets []uint32    // offsets[id] = start of StrId id's bytes in buf
	table   []models.Id // open-addressed hash table, 0 = empty slot
	mask    uint32

	hits   int64
	misses int64
}

// NewStringPool creates a pool with StrId 0 (ID_NULL), StrId 1
// (ID_EMPTY), and the built-in reserved block already interned, so
// their numeric values match models.IDSolvableName..IDRepodataLocation
// exactly as spec.md §6 requires.
func NewStringPool() *StringPool {
	sp := &StringPool{
		buf:     make([]byte, 0, 16*1024),
		offsets: make([]uint32, 0, 1024),
		table:   make([]models.Id, 1024),
		mask:    1023,
	}
	sp.reserve() // StrId 0: ID_NULL, never dereferenced
	sp.reserve() // StrId 1: ID_EMPTY
	for _, s := range models.BuiltinStrings() {
		sp.insertNew([]byte(s))
	}
	return sp
}

// reserve allocates the next dense StrId with empty content, without
// touching the hash table. Used only for the two fixed sentinel slots.
func (sp *StringPool) reserve() models.StrId {
	id := models.StrId(len(sp.offsets))
	sp.offsets = append(sp.offsets, uint32(len(sp.buf)))
	sp.buf = append(sp.buf, 0)
	return id
}

// Intern returns the dense StrId for b, assigning a new one if b has
// never been seen by this pool. The empty string always maps to
// ID_EMPTY without consulting the hash table.
func (sp *StringPool) Intern(b []byte) models.StrId {
	if len(b) == 0 {
		return models.IDEmpty
	}
	if id, ok := sp.Lookup(b); ok {
		sp.hits++
		return id
	}
	sp.misses++
	return sp.insertNew(b)
}

// InternString is Intern for a Go string, avoiding a caller-side copy
// when the string is already known.
func (sp *StringPool) InternString(s string) models.StrId {
	return sp.Intern([]byte(s))
}

// Lookup returns the StrId for b if it has already been interned,
// without assigning a new one.
func (sp *StringPool) Lookup(b []byte) (models.StrId, bool) {
	if len(b) == 0 {
		return models.IDEmpty, true
	}
	h := xxhash.Sum64(b)
	mask := uint64(sp.mask)
	for i := h & mask; ; i = (i + 1) & mask {
		id := sp.table[i]
		if id == models.IDNull {
			return 0, false
		}
		if bytes.Equal(sp.strBytes(id), b) {
			return id, true
		}
	}
}

// Str returns the raw bytes of a StrId. The returned slice aliases the
// pool's internal buffer and must not be mutated or retained past the
// next call that grows buf.
func (sp *StringPool) Str(id models.StrId) []byte {
	return sp.strBytes(id)
}

// StrString is Str with a string copy, for callers that need an owned
// value (e.g. formatting, error messages).
func (sp *StringPool) StrString(id models.StrId) string {
	return string(sp.strBytes(id))
}

// Len returns the number of StrIds assigned, including the two
// reserved sentinels and the built-in block.
func (sp *StringPool) Len() int {
	return len(sp.offsets)
}

func (sp *StringPool) strBytes(id models.StrId) []byte {
	start := sp.offsets[id]
	var end uint32
	if int(id)+1 < len(sp.offsets) {
		end = sp.offsets[id+1] - 1 // exclude the terminator
	} else {
		end = uint32(len(sp.buf)) - 1
	}
	return sp.buf[start:end]
}

func (sp *StringPool) insertNew(b []byte) models.StrId {
	id := models.StrId(len(sp.offsets))
	sp.offsets = append(sp.offsets, uint32(len(sp.buf)))
	sp.buf = append(sp.buf, b...)
	sp.buf = append(sp.buf, 0)

	if 2*(len(sp.offsets)) >= len(sp.table) {
		sp.grow()
	}
	sp.tableInsert(b, id)
	return id
}

func (sp *StringPool) tableInsert(b []byte, id models.StrId) {
	h := xxhash.Sum64(b)
	mask := uint64(sp.mask)
	for i := h & mask; ; i = (i + 1) & mask {
		if sp.table[i] == models.IDNull {
			sp.table[i] = id
			return
		}
	}
}

func (sp *StringPool) grow() {
	newSize := len(sp.table) * 2
	sp.table = make([]models.Id, newSize)
	sp.mask = uint32(newSize - 1)
	for id := models.StrId(2); int(id) < len(sp.offsets); id++ {
		sp.tableInsert(sp.strBytes(id), id)
	}
}

// Stats reports intern hit/miss counters, mirroring the teacher's
// StringInternStats but without the size/eviction fields that only make
// sense for a bounded cache.
type StringPoolStats struct {
	Strings int
	Hits    int64
	Misses  int64
}

func (sp *StringPool) Stats() StringPoolStats {
	return StringPoolStats{
		Strings: sp.Len(),
		Hits:    sp.hits,
		Misses:  sp.misses,
	}
}
