package pool

import "github.com/jamella/solvepool/models"

// solvableBlockSize is the growth increment for the solvable array
// (spec.md §4.3).
const solvableBlockSize = 256

// SolvableStore is the append-only array of solvables. Index 0 is
// reserved; index 1 is the system solvable, both allocated by
// NewSolvableStore before any repo attaches. Freed interior slots are
// zeroed in place rather than tracked in a free list — code that walks
// the store treats a zero-name solvable as absent (models.Solvable.IsZero).
type SolvableStore struct {
	solvables []models.Solvable
}

// NewSolvableStore allocates the reserved slot 0 and the system
// solvable at slot 1.
func NewSolvableStore(systemName, systemArch, systemEVR models.StrId) *SolvableStore {
	st := &SolvableStore{
		solvables: make([]models.Solvable, 2, solvableBlockSize),
	}
	st.solvables[1] = models.Solvable{
		Name: systemName,
		Arch: systemArch,
		EVR:  systemEVR,
		Repo: models.NoRepo,
	}
	return st
}

// Len returns one past the highest allocated solvable index.
func (st *SolvableStore) Len() int {
	return len(st.solvables)
}

// Get returns a pointer to the solvable at ix for in-place mutation.
// Index 0 must never be dereferenced by callers (spec.md §3).
func (st *SolvableStore) Get(ix models.SolvableIx) *models.Solvable {
	return &st.solvables[ix]
}

// AddOne appends a single new solvable slot and returns its index.
func (st *SolvableStore) AddOne() models.SolvableIx {
	return st.AddBlock(1)
}

// AddBlock appends n contiguous new solvable slots, growing the
// backing array in blocks of solvableBlockSize, and returns the index
// of the first new slot.
func (st *SolvableStore) AddBlock(n int) models.SolvableIx {
	start := models.SolvableIx(len(st.solvables))
	needed := len(st.solvables) + n
	if needed > cap(st.solvables) {
		grown := roundUpBlock(needed, solvableBlockSize)
		grownSlice := make([]models.Solvable, len(st.solvables), grown)
		copy(grownSlice, st.solvables)
		st.solvables = grownSlice
	}
	st.solvables = st.solvables[:needed]
	return start
}

// FreeBlock zeroes n solvables starting at start. When reuseTailIds is
// true and the freed range sits at the end of the store, the backing
// array is truncated instead of merely zeroed, allowing those indices
// to be reissued by a subsequent AddBlock. Interior frees never shrink
// the array: their indices remain permanently reserved.
func (st *SolvableStore) FreeBlock(start models.SolvableIx, n int, reuseTailIds bool) {
	end := int(start) + n
	for i := int(start); i < end; i++ {
		st.solvables[i] = models.Solvable{}
	}
	if reuseTailIds && end == len(st.solvables) {
		st.solvables = st.solvables[:start]
	}
}

func roundUpBlock(n, block int) int {
	return (n + block - 1) / block * block
}
