// Package fault implements the process-wide, settable-once hook for
// programmer-contract violations: nil arguments, impossible states,
// allocation failure. These are distinct from the MIDI format/IO errors
// reported through errors.Code — a contract violation is never recoverable
// and must never occur in correct client code (spec.md §5, §7.2).
package fault

import (
	"fmt"
	"sync/atomic"
)

// Handler is invoked with the operation name and a detail string before the
// process aborts. It must not return control to the caller in any way that
// resumes normal execution; Raise panics regardless of what Handler does.
type Handler func(op, detail string)

var installed atomic.Pointer[Handler]

// Install registers the process-wide fault handler. Safe to call more than
// once; the most recent registration wins. A nil Handler clears it.
func Install(h Handler) {
	if h == nil {
		installed.Store(nil)
		return
	}
	installed.Store(&h)
}

// Raise invokes the installed handler, if any, then panics. Go's panic is
// the language's safe-abort mechanism (spec.md §9: "prefer that to a
// mutable global"); Install exists only for embedders who need a diagnostic
// callback before the process goes down.
func Raise(op, detail string) {
	if hp := installed.Load(); hp != nil && *hp != nil {
		(*hp)(op, detail)
	}
	panic(fmt.Sprintf("smf: contract violation in %s: %s", op, detail))
}

// RequireNonNil calls Raise if v is nil, identifying the violating argument
// by name.
func RequireNonNil(op, argName string, v any) {
	if v == nil {
		Raise(op, argName+" must not be nil")
	}
}
