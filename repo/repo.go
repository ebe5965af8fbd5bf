// Package repo implements the minimal concrete Repo collaborator spec.md
// describes only through its idarraydata interface. A real package
// repository loader (parsing on-disk metadata into solvables) is out of
// scope per spec.md §1; this package implements just the array-owner
// surface a loader calls into: a flat, repo-owned, 0-terminated Id
// array that Solvable dependency-list offsets point into.
package repo

import (
	"github.com/google/uuid"

	"github.com/jamella/solvepool/models"
)

// Repo owns one repository's idarraydata. It has no reference back to
// the Pool it will be attached to: a loader interns strings/relations
// through the Pool directly and only hands the resulting Ids to
// AppendIdArray, so idarraydata ownership stays independent of any
// particular Pool instance (spec.md §3 "Repo lifecycle").
type Repo struct {
	Handle uuid.UUID
	Name   string

	idarraydata []models.Id
}

// New creates an empty, unattached Repo. Index 0 of its idarraydata is
// reserved, matching the pool-wide convention that Offset 0 means "no
// data" (spec.md §3).
func New(name string) *Repo {
	return &Repo{
		Handle:      uuid.New(),
		Name:        name,
		idarraydata: []models.Id{models.IDNull},
	}
}

// IdArrayData returns the repo's raw backing array, for pool code that
// walks a run starting at an Offset this Repo produced.
func (r *Repo) IdArrayData() []models.Id {
	return r.idarraydata
}

// AppendIdArray copies ids into the repo's idarraydata, terminated by
// an IDNull, and returns the Offset a Solvable field can store to
// reference the run. An empty ids slice still gets a real terminated
// (empty) run rather than reusing the shared "1 means empty" sentinel,
// since idarraydata offsets are local to this Repo, not the pool's
// whatprovidesdata.
func (r *Repo) AppendIdArray(ids []models.Id) models.Offset {
	off := models.Offset(len(r.idarraydata))
	r.idarraydata = append(r.idarraydata, ids...)
	r.idarraydata = append(r.idarraydata, models.IDNull)
	return off
}

// Walk returns the 0-terminated run starting at off as a slice
// excluding the terminator.
func (r *Repo) Walk(off models.Offset) []models.Id {
	if off == 0 {
		return nil
	}
	i := int(off)
	j := i
	for r.idarraydata[j] != models.IDNull {
		j++
	}
	return r.idarraydata[i:j]
}
