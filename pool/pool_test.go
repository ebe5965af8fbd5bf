package pool_test

import (
	"testing"

	"github.com/jamella/solvepool/config"
	"github.com/jamella/solvepool/evr"
	"github.com/jamella/solvepool/models"
	"github.com/jamella/solvepool/pool"
	"github.com/jamella/solvepool/repo"
)

// newTestPool builds a Pool with the default EVR comparator and rpmMode
// as given, returning the Pool alongside its sole attached Repo.
func newTestPool(t *testing.T, rpmMode bool) (*pool.Pool, *repo.Repo, models.RepoRef) {
	t.Helper()
	cfg := config.Default()
	cfg.UnversionedProvidesSatisfyVersioned = rpmMode
	p := pool.New(cfg)
	p.SetEVRComparator(evr.Default())
	r := repo.New("test")
	ref := p.AttachRepo(r)
	return p, r, ref
}

// addSolvable interns name/evr/arch and appends a new solvable with the
// given provides/requires lists (each a list of Ids already interned by
// the caller), returning the new SolvableIx.
func addSolvable(p *pool.Pool, r *repo.Repo, ref models.RepoRef, name, evrStr, arch string, provides, requires []models.Id) models.SolvableIx {
	ix := p.Solvables.AddOne()
	s := p.Solvables.Get(ix)
	s.Name = p.Strings.InternString(name)
	s.EVR = p.Strings.InternString(evrStr)
	s.Arch = p.Strings.InternString(arch)
	s.Repo = ref
	if len(provides) > 0 {
		s.Provides = r.AppendIdArray(provides)
	}
	if len(requires) > 0 {
		s.Requires = r.AppendIdArray(requires)
	}
	return ix
}

func TestSingleProvider(t *testing.T) {
	p, r, ref := newTestPool(t, true)
	foo := p.Strings.InternString("foo")
	ix := addSolvable(p, r, ref, "pkg-a", "1.0", "noarch", []models.Id{foo}, nil)

	p.CreateWhatProvides()

	got := p.Providers(foo)
	if len(got) != 1 || got[0] != models.Id(ix) {
		t.Fatalf("Providers(foo) = %v, want [%d]", got, ix)
	}
}

func TestSharedRunsResolveIdenticallyAfterShrink(t *testing.T) {
	p, r, ref := newTestPool(t, true)
	foo := p.Strings.InternString("foo")
	bar := p.Strings.InternString("bar")

	a := addSolvable(p, r, ref, "pkg-a", "1.0", "noarch", []models.Id{foo, bar}, nil)
	b := addSolvable(p, r, ref, "pkg-b", "1.0", "noarch", []models.Id{foo, bar}, nil)

	p.CreateWhatProvides()

	provFoo := p.Providers(foo)
	provBar := p.Providers(bar)
	if len(provFoo) != 2 || len(provBar) != 2 {
		t.Fatalf("expected both foo and bar to have 2 providers, got %v / %v", provFoo, provBar)
	}
	if provFoo[0] != models.Id(a) || provFoo[1] != models.Id(b) {
		t.Fatalf("unexpected foo providers: %v", provFoo)
	}
	if provBar[0] != models.Id(a) || provBar[1] != models.Id(b) {
		t.Fatalf("unexpected bar providers: %v", provBar)
	}
}

func TestRelAndIntersection(t *testing.T) {
	p, r, ref := newTestPool(t, true)
	foo := p.Strings.InternString("foo")
	bar := p.Strings.InternString("bar")
	baz := p.Strings.InternString("baz")

	a := addSolvable(p, r, ref, "pkg-a", "1.0", "noarch", []models.Id{foo, bar}, nil)
	_ = addSolvable(p, r, ref, "pkg-b", "1.0", "noarch", []models.Id{foo, baz}, nil)

	p.CreateWhatProvides()

	rel := p.Rels.InternRel(foo, bar, models.RelAnd)
	got := p.Providers(rel)
	if len(got) != 1 || got[0] != models.Id(a) {
		t.Fatalf("AND(foo,bar) = %v, want [%d]", got, a)
	}
}

func TestRelOrUnion(t *testing.T) {
	p, r, ref := newTestPool(t, true)
	foo := p.Strings.InternString("foo")
	bar := p.Strings.InternString("bar")

	a := addSolvable(p, r, ref, "pkg-a", "1.0", "noarch", []models.Id{foo}, nil)
	b := addSolvable(p, r, ref, "pkg-b", "1.0", "noarch", []models.Id{bar}, nil)

	p.CreateWhatProvides()

	rel := p.Rels.InternRel(foo, bar, models.RelOr)
	got := p.Providers(rel)
	if len(got) != 2 || got[0] != models.Id(a) || got[1] != models.Id(b) {
		t.Fatalf("OR(foo,bar) = %v, want [%d %d]", got, a, b)
	}
}

func TestVersionedRequireRPMModeMatchesUnversionedProvide(t *testing.T) {
	p, r, ref := newTestPool(t, true)
	foo := p.Strings.InternString("foo")
	ver := p.Strings.InternString("1.0")

	a := addSolvable(p, r, ref, "pkg-a", "1.0", "noarch", []models.Id{foo}, nil)
	p.CreateWhatProvides()

	req := p.Rels.InternRel(foo, ver, models.RelEQ)
	got := p.Providers(req)
	if len(got) != 1 || got[0] != models.Id(a) {
		t.Fatalf("versioned require against unversioned provide (RPM mode) = %v, want [%d]", got, a)
	}
}

func TestVersionedRequireDebianModeRejectsUnversionedProvide(t *testing.T) {
	p, r, ref := newTestPool(t, false)
	foo := p.Strings.InternString("foo")
	ver := p.Strings.InternString("1.0")

	addSolvable(p, r, ref, "pkg-a", "1.0", "noarch", []models.Id{foo}, nil)
	p.CreateWhatProvides()

	req := p.Rels.InternRel(foo, ver, models.RelEQ)
	got := p.Providers(req)
	if len(got) != 0 {
		t.Fatalf("versioned require against unversioned provide (Debian mode) = %v, want none", got)
	}
}

func TestVersionedRequireAgainstVersionedProvide(t *testing.T) {
	p, r, ref := newTestPool(t, false)
	foo := p.Strings.InternString("foo")
	v1 := p.Strings.InternString("1.0")
	v2 := p.Strings.InternString("2.0")

	fooProvideV2 := p.Rels.InternRel(foo, v2, models.RelEQ)
	a := addSolvable(p, r, ref, "pkg-a", "2.0", "noarch", []models.Id{fooProvideV2}, nil)
	p.CreateWhatProvides()

	reqGE1 := p.Rels.InternRel(foo, v1, models.RelGT|models.RelEQ)
	got := p.Providers(reqGE1)
	if len(got) != 1 || got[0] != models.Id(a) {
		t.Fatalf("foo >= 1.0 against provide foo = 2.0: got %v, want [%d]", got, a)
	}

	reqLT1 := p.Rels.InternRel(foo, v1, models.RelLT)
	got = p.Providers(reqLT1)
	if len(got) != 0 {
		t.Fatalf("foo < 1.0 against provide foo = 2.0 should not match, got %v", got)
	}
}

func TestRpmlibFallsBackToSystemSolvable(t *testing.T) {
	p, r, ref := newTestPool(t, true)
	foo := p.Strings.InternString("foo")
	addSolvable(p, r, ref, "pkg-a", "1.0", "noarch", []models.Id{foo}, nil)
	p.CreateWhatProvides()

	rpmlibName := p.Strings.InternString("rpmlib(CompressedFileNames)")
	ver := p.Strings.InternString("3.0.4-1")
	req := p.Rels.InternRel(rpmlibName, ver, models.RelGT|models.RelEQ)

	got := p.Providers(req)
	if len(got) != 1 || got[0] != models.Id(1) {
		t.Fatalf("unsatisfied rpmlib() requirement should fall back to the system solvable, got %v", got)
	}
}

func TestMissingNamespaceCallbackResolvesEmpty(t *testing.T) {
	p, r, ref := newTestPool(t, true)
	addSolvable(p, r, ref, "pkg-a", "1.0", "noarch", nil, nil)
	p.CreateWhatProvides()

	installed := p.Strings.InternString("modalias(foo)")
	ns := p.Rels.InternRel(models.IDNamespaceModalias, installed, models.RelNamespace)
	got := p.Providers(ns)
	if len(got) != 0 {
		t.Fatalf("namespace relation with no callback registered should resolve empty, got %v", got)
	}
}
