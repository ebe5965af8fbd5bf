package pool

import (
	"testing"

	"github.com/jamella/solvepool/models"
	"github.com/jamella/solvepool/repo"
)

// TestShrinkCollapsesIdenticalRunsAndRejectsDistinctOnes builds three
// names: two with byte-identical provider runs and one with a different
// run, and checks the shrink pass shares storage for the first two
// while keeping the third independent.
func TestShrinkCollapsesIdenticalRunsAndRejectsDistinctOnes(t *testing.T) {
	p := New(nil)
	r := repo.New("test")
	ref := p.AttachRepo(r)

	foo := p.Strings.InternString("foo")
	bar := p.Strings.InternString("bar")
	baz := p.Strings.InternString("baz")

	a := p.Solvables.AddOne()
	sa := p.Solvables.Get(a)
	sa.Name = p.Strings.InternString("pkg-a")
	sa.Arch = models.IDNoarch
	sa.EVR = models.IDEmpty
	sa.Repo = ref
	sa.Provides = r.AppendIdArray([]models.Id{foo, bar})

	b := p.Solvables.AddOne()
	sb := p.Solvables.Get(b)
	sb.Name = p.Strings.InternString("pkg-b")
	sb.Arch = models.IDNoarch
	sb.EVR = models.IDEmpty
	sb.Repo = ref
	sb.Provides = r.AppendIdArray([]models.Id{baz})

	p.CreateWhatProvides()

	offFoo := p.whatprovides[foo]
	offBar := p.whatprovides[bar]
	offBaz := p.whatprovides[baz]

	if offFoo != offBar {
		t.Fatalf("identical runs for foo and bar should share one offset: %d vs %d", offFoo, offBar)
	}
	if offBaz == offFoo {
		t.Fatalf("baz's distinct run should not share foo/bar's offset")
	}
}

// TestShrinkPanicsOnForwardBackReference hand-builds a whatprovides
// array with a back-reference pointing to a higher StrId than itself.
// Step 1/2 of the shrink pass only ever tag a back-reference onto an id
// whose own entry was positive going in, so a pre-existing forward
// reference like this one passes through untouched into the
// compaction pass, where it must be rejected rather than silently
// read as a real (still uncompacted) offset.
func TestShrinkPanicsOnForwardBackReference(t *testing.T) {
	p := New(nil)
	p.whatprovides = make([]models.Offset, 5)
	p.whatprovidesData = []models.Id{models.IDNull, models.IDNull, 10, models.IDNull}
	p.whatprovides[2] = 2
	p.whatprovides[3] = -models.Offset(4)
	p.whatprovides[4] = 2

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected shrinkWhatProvides to panic on a forward back-reference")
		}
	}()
	p.shrinkWhatProvides()
}

// TestShrinkPanicsOnSourceBehindCursor builds two distinct runs whose
// storage overlaps once compaction starts writing: processing the
// first run (StrId 2, first in the StrId-order compaction) advances
// the write cursor past
// the second run's source offset before that second run is copied,
// which must fail fatally rather than copy already-overwritten data.
func TestShrinkPanicsOnSourceBehindCursor(t *testing.T) {
	p := New(nil)
	p.whatprovides = make([]models.Offset, 4)
	data := make([]models.Id, 20)
	data[10], data[11], data[12], data[13], data[14] = 50, 51, 52, 53, 54
	data[3] = 99
	p.whatprovidesData = data
	p.whatprovides[2] = 10
	p.whatprovides[3] = 3

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected shrinkWhatProvides to panic when a source run lies behind the write cursor")
		}
	}()
	p.shrinkWhatProvides()
}

func TestCompareRuns(t *testing.T) {
	cases := []struct {
		a, b []models.Id
		want int
	}{
		{[]models.Id{1, 2}, []models.Id{1, 2}, 0},
		{[]models.Id{1, 2}, []models.Id{1, 3}, -1},
		{[]models.Id{1}, []models.Id{1, 2}, -1},
		{[]models.Id{1, 2}, []models.Id{1}, 1},
	}
	for _, c := range cases {
		if got := compareRuns(c.a, c.b); got != c.want {
			t.Errorf("compareRuns(%v, %v) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}
