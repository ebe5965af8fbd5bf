package pool

import (
	"fmt"

	"github.com/jamella/solvepool/logger"
)

// DebugCallback is the optional diagnostic sink spec.md §6 describes:
// when registered, every category-gated or warning/fatal diagnostic the
// pool emits routes here instead of the package-level logger's
// stdout/stderr split. Category gating (SetDebugLevel) still applies —
// a registered callback does not see categories that are disabled.
type DebugCallback func(p *Pool, ctx any, level int, msg string)

// SetDebugCallback registers cb as the Pool's diagnostic sink. Passing
// nil restores the default logger-package behavior.
func (p *Pool) SetDebugCallback(cb DebugCallback, ctx any) {
	p.debugCB = cb
	p.debugCtx = ctx
}

// logCategory emits a category-gated diagnostic, spec.md §6's
// set_debug_level bitmask semantics: silent unless the category was
// enabled.
func (p *Pool) logCategory(category, format string, args ...interface{}) {
	if !logger.CategoryEnabled(category) {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if p.debugCB != nil {
		p.debugCB(p, p.debugCtx, int(logger.DEBUG), "["+category+"] "+msg)
		return
	}
	logger.Category(category, "%s", msg)
}

// logWarn emits an ungated WARN diagnostic.
func (p *Pool) logWarn(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if p.debugCB != nil {
		p.debugCB(p, p.debugCtx, int(logger.WARN), msg)
		return
	}
	logger.Warn("%s", msg)
}

// logFatal emits a FATAL diagnostic. Per spec.md §7 callers panic
// immediately afterward; this function never does so itself.
func (p *Pool) logFatal(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if p.debugCB != nil {
		p.debugCB(p, p.debugCtx, int(logger.FATAL), msg)
		return
	}
	logger.Fatal("%s", msg)
}
