// Package models defines the core data structures of the solvable pool:
// the tagged identifier space, relation records, and the solvable record
// itself. It mirrors the role EntityDB's models package plays for
// entities — here the "entity" is a package-manager solvable and its
// typed dependency lists instead of a timestamped tag set.
package models

// Id is the single 32-bit identifier space shared by interned strings
// and interned relations. The high bit is a discriminant: clear means
// "index into the StringPool", set means "tagged index into the
// RelPool". A single representation is used deliberately instead of two
// parallel Go types, because provides/requires/... arrays freely mix
// both kinds of Id in one run.
type Id uint32

// StrId and RelId are semantic aliases for Id, documenting which half
// of the tagged space a function expects. They share Id's
// representation; StrId callers must have the high bit clear and RelId
// callers must have it set. Keeping them as aliases (not distinct
// types) avoids forcing a cast at every mixed-array boundary.
type (
	StrId = Id
	RelId = Id
)

// relTagBit marks an Id as a RelId rather than a StrId.
const relTagBit Id = 1 << 31

// IDNull is the reserved "no id" value. Index 0 in every pool array is
// never dereferenced.
const IDNull Id = 0

// IDEmpty is the interned empty string, always StrId 1.
const IDEmpty Id = 1

// IsRel reports whether id names a relation rather than a string.
func IsRel(id Id) bool {
	return id&relTagBit != 0
}

// RelIndex strips the tag bit, returning the RelPool slot a RelId names.
func RelIndex(id RelId) uint32 {
	return uint32(id &^ relTagBit)
}

// MakeRelId tags a RelPool slot index as a RelId.
func MakeRelId(index uint32) RelId {
	return Id(index) | relTagBit
}

// Offset addresses a 0-terminated run inside whatprovidesdata or a
// Repo's idarraydata. In whatprovidesdata, 0 means "no providers" and 1
// means "empty list"; both are reserved so a positive, non-1 Offset
// always points at real data. In a Repo's idarraydata only 0 is
// reserved, and the first appended run starts at Offset 1. During the
// shrink pass's tagging step a negative Offset is a temporary
// back-reference to another StrId's run (see the pool package's
// shrinkWhatProvides), which is why Offset is signed.
type Offset int32

// SolvableIx indexes the SolvableStore. Index 0 is reserved and index 1
// is the system solvable; both exist before any repo attaches.
type SolvableIx uint32

// RepoRef indexes a Pool's attached-repo table. It is a plain integer,
// not a pointer, so that models has no dependency on the repo package —
// repo.Repo is an external collaborator from models' point of view,
// exactly as spec.md describes it.
type RepoRef int32

// NoRepo is the RepoRef of a solvable with no owning repo (the system
// solvable, slot 1). The reserved slot 0 is left zero-valued.
const NoRepo RepoRef = -1

// Built-in reserved string IDs. Their numeric values are fixed by the
// order of builtinStrings below and form part of the pool's ABI: a
// caller may hardcode these constants and expect them to match any
// freshly created Pool.
const (
	IDSolvableName Id = iota + 2
	IDSolvableArch
	IDSolvableEVR
	IDSolvableVendor
	IDSolvableProvides
	IDSolvableObsoletes
	IDSolvableConflicts
	IDSolvableRequires
	IDSolvableRecommends
	IDSolvableSuggests
	IDSolvableSupplements
	IDSolvableEnhances
	IDSolvableFreshens
	IDRpmDbid
	IDSolvablePrereqmarker
	IDSolvableFilemarker
	IDNamespaceInstalled
	IDNamespaceModalias
	IDSystemSystem
	IDSrc
	IDNosrc
	IDNoarch
	IDRepodataExternal
	IDRepodataKeys
	IDRepodataLocation
)

// builtinStrings lists the byte content of the pre-reserved StrId
// block, in the exact order that fixes IDSolvableName..IDRepodataLocation
// above. Index 0 of this slice is StrId 2.
var builtinStrings = []string{
	"solvable:name",
	"solvable:arch",
	"solvable:evr",
	"solvable:vendor",
	"solvable:provides",
	"solvable:obsoletes",
	"solvable:conflicts",
	"solvable:requires",
	"solvable:recommends",
	"solvable:suggests",
	"solvable:supplements",
	"solvable:enhances",
	"solvable:freshens",
	"rpm:dbid",
	"solvable:prereqmarker",
	"solvable:filemarker",
	"namespace:installed",
	"namespace:modalias",
	"system:system",
	"src",
	"nosrc",
	"noarch",
	"repodata:external",
	"repodata:keys",
	"repodata:location",
}

// BuiltinStrings exposes the reserved-block contents for pool
// initialization; callers outside this module should treat it as
// read-only.
func BuiltinStrings() []string {
	return builtinStrings
}
