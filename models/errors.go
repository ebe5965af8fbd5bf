package models

import "errors"

// Sentinel errors surfaced by the pool's setup and lifecycle paths
// (spec.md §7). None of these are returned from the hot-path query
// functions (Providers, Str, Intern): a query that fails to resolve
// returns an empty result, never an error, matching spec.md §7's "no
// structured error from providers()" rule. These are reserved for
// construction-time and lifecycle misuse that callers can reasonably
// branch on.
var (
	// ErrOutOfMemory names the failure of a pool array to grow. No
	// function in this module returns it: array growth goes through
	// make/append, and an allocation failure there is not recovered.
	ErrOutOfMemory = errors.New("solvepool: out of memory")

	// ErrInvariantViolation marks a detected internal bug: a shrink
	// back-reference pointing forward, or a compaction write past its
	// source run. These never happen on correct input and are not
	// meant to be handled, only logged and panicked on.
	ErrInvariantViolation = errors.New("solvepool: invariant violation")

	// ErrRepoDetached names an operation on a Repo that is no longer
	// attached to its Pool. No function in this module returns it: pool
	// code that reads a detached repo's runs sees an empty run instead.
	ErrRepoDetached = errors.New("solvepool: repo detached")
)
