// Package config provides centralized configuration for solvepool,
// trimmed from the teacher's three-tier config.Config down to the
// handful of knobs this module's core actually reads: environment
// variables are the only tier here, since there is no database-backed
// config layer or CLI in scope (spec.md §1).
package config

import (
	"os"
	"strconv"
)

// Config holds solvepool's tunables. All fields have defaults and can
// be overridden via SOLVEPOOL_* environment variables, following the
// teacher's doc-comment convention of stating env var, default, and
// valid range per field.
type Config struct {
	// UnversionedProvidesSatisfyVersioned selects RPM semantics (true)
	// or Debian semantics (false) for spec.md §4.7's version-relation
	// compatibility rule: whether a plain, unversioned provides
	// satisfies a versioned require.
	// Environment: SOLVEPOOL_RPM_MODE
	// Default: true
	UnversionedProvidesSatisfyVersioned bool

	// WhatProvidesDataExtraMin is the minimum headroom appended to
	// whatprovidesdata before the fill pass, per spec.md §4.4 step 5
	// (extra = max(256, 2*nrels)). The shrink pass that ends the build
	// trims the array to the compacted data plus a 64-cell tail.
	// Environment: SOLVEPOOL_WHATPROVIDES_EXTRA_MIN
	// Default: 256
	WhatProvidesDataExtraMin int

	// EnqueueGrowSlack is appended to a queue's length when
	// pool.EnqueueProviders must grow whatprovidesdata (spec.md §4.6).
	// Environment: SOLVEPOOL_ENQUEUE_GROW_SLACK
	// Default: 4096
	EnqueueGrowSlack int

	// HostArch is the architecture DefaultInstallable compares solvable
	// architectures against (spec.md §4.11).
	// Environment: SOLVEPOOL_HOST_ARCH
	// Default: "noarch"
	HostArch string

	// DebugLevel seeds logger.SetDebugLevel at startup (spec.md §6).
	// Environment: SOLVEPOOL_DEBUG_LEVEL
	// Default: 0
	// Valid range: 0-5
	DebugLevel int
}

// Default returns Config populated with the documented defaults.
func Default() *Config {
	return &Config{
		UnversionedProvidesSatisfyVersioned: true,
		WhatProvidesDataExtraMin:            256,
		EnqueueGrowSlack:                    4096,
		HostArch:                            "noarch",
		DebugLevel:                          0,
	}
}

// Load builds a Config from SOLVEPOOL_* environment variables layered
// over Default(), matching the teacher's env-var-over-default pattern.
func Load() *Config {
	c := Default()

	if v := os.Getenv("SOLVEPOOL_RPM_MODE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.UnversionedProvidesSatisfyVersioned = b
		}
	}
	if v := os.Getenv("SOLVEPOOL_WHATPROVIDES_EXTRA_MIN"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.WhatProvidesDataExtraMin = n
		}
	}
	if v := os.Getenv("SOLVEPOOL_ENQUEUE_GROW_SLACK"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.EnqueueGrowSlack = n
		}
	}
	if v := os.Getenv("SOLVEPOOL_HOST_ARCH"); v != "" {
		c.HostArch = v
	}
	if v := os.Getenv("SOLVEPOOL_DEBUG_LEVEL"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.DebugLevel = n
		}
	}
	return c
}
