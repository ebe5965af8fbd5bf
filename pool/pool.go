// Package pool implements the solvable pool's core engine: the
// interning tables, the solvable store, the packed whatprovides index,
// and relation-provider resolution. It plays the role the teacher's
// storage/binary package plays for EntityDB's entity store, except
// everything here is in-memory and append-only — there is no WAL, no
// journal, no persistence, matching spec.md's explicit Non-goals.
package pool

import (
	"github.com/jamella/solvepool/config"
	"github.com/jamella/solvepool/logger"
	"github.com/jamella/solvepool/models"
	"github.com/jamella/solvepool/repo"
)

// InstallablePredicate decides whether a solvable participates in the
// whatprovides index (spec.md §4.4 step 3, §9 "Installability
// callback"). Injected so policy (arch compatibility, disabled repos,
// ...) stays outside the engine.
type InstallablePredicate func(p *Pool, s *models.Solvable) bool

// NamespaceCallback resolves a REL_NAMESPACE relation (spec.md §4.7).
// A return value >1 is a pre-interned whatprovidesdata Offset (memoized
// directly); 1 means "only the system solvable"; 0 means no providers.
type NamespaceCallback func(p *Pool, ctx any, name, evr models.StrId) models.Offset

// Pool is the solvable pool. It owns StringPool, RelPool, SolvableStore
// and both whatprovides arrays; Repos are external collaborators the
// Pool only holds back-references to (spec.md §5 "Resource ownership").
// Pool is not safe for concurrent mutation — spec.md §5 specifies a
// single-threaded cooperative model, and unlike the teacher's
// mutex-guarded StringIntern, nothing here takes a lock.
type Pool struct {
	Strings   *StringPool
	Rels      *RelPool
	Solvables *SolvableStore

	cfg *config.Config

	repos []*repo.Repo

	whatprovides     []models.Offset // indexed by StrId
	whatprovidesRel  []models.Offset // indexed by RelId index
	whatprovidesData []models.Id     // flat pool; offsets 0 and 1 reserved
	dataOff          int             // next free index in whatprovidesData

	installable  InstallablePredicate
	namespaceCB  NamespaceCallback
	namespaceCtx any

	cmp EVRComparator

	debugCB  DebugCallback
	debugCtx any

	ring *StringRing
}

// New creates a Pool with the built-in string block, an empty RelPool,
// and a SolvableStore holding the reserved slot and the system
// solvable. cfg may be nil, in which case config.Default() is used.
func New(cfg *config.Config) *Pool {
	if cfg == nil {
		cfg = config.Default()
	}
	strs := NewStringPool()
	p := &Pool{
		Strings:     strs,
		Rels:        NewRelPool(),
		Solvables:   NewSolvableStore(models.IDSystemSystem, models.IDNoarch, models.IDEmpty),
		cfg:         cfg,
		installable: DefaultInstallable,
	}
	logger.SetDebugLevel(cfg.DebugLevel)
	return p
}

// Config returns the Pool's configuration, for callers that need to
// read HostArch, RPM-mode, etc. directly.
func (p *Pool) Config() *config.Config {
	return p.cfg
}

// SetInstallable overrides the installability predicate used by
// CreateWhatProvides. Passing nil restores DefaultInstallable.
func (p *Pool) SetInstallable(pred InstallablePredicate) {
	if pred == nil {
		pred = DefaultInstallable
	}
	p.installable = pred
}

// SetNamespaceCallback registers the callback REL_NAMESPACE relations
// dispatch to. An unregistered callback resolves namespace relations to
// "no providers", per spec.md §7's "Missing external callback" rule.
func (p *Pool) SetNamespaceCallback(cb NamespaceCallback, ctx any) {
	p.namespaceCB = cb
	p.namespaceCtx = ctx
}

// SetDebugLevel forwards to logger.SetDebugLevel (spec.md §6).
func (p *Pool) SetDebugLevel(level int) {
	p.cfg.DebugLevel = level
	logger.SetDebugLevel(level)
}

// AttachRepo registers a Repo with the Pool and invalidates any built
// whatprovides index, since a newly attached repo's solvables are not
// yet reflected in it (spec.md §3 "Repo lifecycle").
func (p *Pool) AttachRepo(r *repo.Repo) models.RepoRef {
	ref := models.RepoRef(len(p.repos))
	p.repos = append(p.repos, r)
	p.FreeWhatProvides()
	return ref
}

// DetachRepo clears the Pool's reference to a repo and invalidates the
// whatprovides index. Per spec.md §5, a Repo's idarraydata must outlive
// any Offset referring into it; detaching does not retroactively fix up
// solvables that still reference the detached repo — callers must not
// query those solvables afterward, matching spec.md §7's "undefined"
// contract for mid-query detachment.
func (p *Pool) DetachRepo(ref models.RepoRef) {
	if int(ref) < 0 || int(ref) >= len(p.repos) {
		return
	}
	p.repos[ref] = nil
	p.FreeWhatProvides()
}

// Repo returns the attached repo for ref, or nil if detached or out of
// range.
func (p *Pool) Repo(ref models.RepoRef) *repo.Repo {
	if int(ref) < 0 || int(ref) >= len(p.repos) {
		return nil
	}
	return p.repos[ref]
}

// FreeWhatProvides discards the built index. The next Providers call
// against a StrId will see an empty index (all zero offsets) until
// CreateWhatProvides is called again; this matches spec.md §3's
// lifecycle step "on mutation ... free whatprovides and rebuild on
// demand" — "on demand" here means the caller must explicitly rebuild,
// not that Providers rebuilds implicitly.
func (p *Pool) FreeWhatProvides() {
	p.whatprovides = nil
	p.whatprovidesRel = nil
	p.whatprovidesData = nil
	p.dataOff = 0
}

// hasWhatProvides reports whether CreateWhatProvides has run since the
// last FreeWhatProvides.
func (p *Pool) hasWhatProvides() bool {
	return p.whatprovidesData != nil
}

// walkRun returns the 0-terminated run starting at off, excluding the
// terminator, or nil for the 0/1 sentinel offsets.
func (p *Pool) walkRun(off models.Offset) []models.Id {
	if off == 0 || off == 1 {
		return nil
	}
	i := int(off)
	j := i
	for p.whatprovidesData[j] != models.IDNull {
		j++
	}
	return p.whatprovidesData[i:j]
}

// DefaultInstallable implements "architecture compatible with host or
// noarch" (spec.md §4.11).
func DefaultInstallable(p *Pool, s *models.Solvable) bool {
	if s.Name == models.IDNull {
		return false
	}
	if s.Arch == models.IDNoarch {
		return true
	}
	return p.Strings.StrString(s.Arch) == p.cfg.HostArch
}
