package models

import "testing"

func TestIsRelAndRelIndexRoundTrip(t *testing.T) {
	for _, idx := range []uint32{0, 1, 42, 1<<31 - 1} {
		rid := MakeRelId(idx)
		if !IsRel(rid) {
			t.Fatalf("MakeRelId(%d) = %d, IsRel should be true", idx, rid)
		}
		if got := RelIndex(rid); got != idx {
			t.Fatalf("RelIndex(MakeRelId(%d)) = %d, want %d", idx, got, idx)
		}
	}
}

func TestPlainStrIdIsNotRel(t *testing.T) {
	for _, id := range []Id{0, 1, 2, 1000} {
		if IsRel(id) {
			t.Fatalf("IsRel(%d) = true, want false", id)
		}
	}
}

func TestBuiltinStringsMatchReservedIDRange(t *testing.T) {
	strs := BuiltinStrings()
	if len(strs) != int(IDRepodataLocation-IDSolvableName)+1 {
		t.Fatalf("builtinStrings has %d entries, want %d", len(strs), int(IDRepodataLocation-IDSolvableName)+1)
	}
	if strs[0] != "solvable:name" {
		t.Fatalf("builtinStrings[0] = %q, want solvable:name", strs[0])
	}
	if strs[len(strs)-1] != "repodata:location" {
		t.Fatalf("builtinStrings[last] = %q, want repodata:location", strs[len(strs)-1])
	}
}
