// Package evr implements the default EVR (epoch:version-release)
// comparator the pool package consumes through its EVRComparator
// contract. Grounded in RPM/dpkg version-compare convention and
// original_source/pool.c's evrcmp usage (the MATCH_RELEASE mode name
// and the caller-side contract come directly from there; the segment
// comparison rules below are the well-known RPM rpmvercmp algorithm
// that implementation builds on).
package evr

import (
	"strings"

	"github.com/jamella/solvepool/models"
	"github.com/jamella/solvepool/pool"
)

// Comparator is the default EVRComparator implementation.
type Comparator struct{}

// Default returns the stock RPM-convention comparator. Stateless, so a
// single value can be shared across Pools.
func Default() Comparator {
	return Comparator{}
}

// Compare implements pool.EVRComparator. a and b are interned EVR
// strings; mode selects whether the release segment participates.
func (Comparator) Compare(p *pool.Pool, a, b models.StrId, mode pool.Mode) int {
	return compareEVR(p.Strings.StrString(a), p.Strings.StrString(b), mode)
}

func compareEVR(a, b string, mode pool.Mode) int {
	ae, av, ar := splitEVR(a)
	be, bv, br := splitEVR(b)

	if c := compareSegment(ae, be); c != 0 {
		return c
	}
	if c := compareSegment(av, bv); c != 0 {
		return c
	}
	if mode == pool.MatchVersionOnly {
		return 0
	}
	return compareSegment(ar, br)
}

// splitEVR parses "[epoch:]version[-release]". A missing epoch is "0".
func splitEVR(s string) (epoch, version, release string) {
	epoch = "0"
	if i := strings.IndexByte(s, ':'); i >= 0 {
		epoch = s[:i]
		s = s[i+1:]
	}
	if i := strings.LastIndexByte(s, '-'); i >= 0 {
		version = s[:i]
		release = s[i+1:]
	} else {
		version = s
	}
	return epoch, version, release
}

// compareSegment implements the RPM rpmvercmp rule: split into
// alternating runs of digits and non-digits, compare numeric runs
// numerically and alphabetic runs lexically, a tilde-led run always
// sorts lower than anything else (including another non-tilde empty
// tail), and a side that runs out of runs first sorts lower than the
// side that still has runs left, whether those runs are numeric or
// alphabetic.
func compareSegment(a, b string) int {
	for {
		if strings.HasPrefix(a, "~") || strings.HasPrefix(b, "~") {
			aTilde := strings.HasPrefix(a, "~")
			bTilde := strings.HasPrefix(b, "~")
			switch {
			case aTilde && bTilde:
				a, b = a[1:], b[1:]
				continue
			case aTilde:
				return -1
			default:
				return 1
			}
		}
		if a == "" && b == "" {
			return 0
		}
		if a == "" {
			return -1
		}
		if b == "" {
			return 1
		}

		aRun, aRest, aNumeric := nextRun(a)
		bRun, bRest, bNumeric := nextRun(b)

		var c int
		switch {
		case aNumeric && bNumeric:
			c = compareNumeric(aRun, bRun)
		case aNumeric:
			// A numeric run always sorts higher than an alphabetic one.
			c = 1
		case bNumeric:
			c = -1
		default:
			c = strings.Compare(aRun, bRun)
		}
		if c != 0 {
			return c
		}
		a, b = aRest, bRest
	}
}

// nextRun splits off the leading maximal run of digits (or
// non-digits) from s, reporting whether it was a digit run.
func nextRun(s string) (run, rest string, numeric bool) {
	numeric = isDigit(s[0])
	i := 1
	for i < len(s) && isDigit(s[i]) == numeric {
		i++
	}
	return s[:i], s[i:], numeric
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// compareNumeric compares two digit runs as arbitrary-precision
// unsigned integers by stripping leading zeros and falling back to
// length then lexical comparison.
func compareNumeric(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}
