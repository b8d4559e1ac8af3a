// Package source implements the pluggable input-source abstraction the
// event engine reads from: a byte-at-a-time capability set (read, optional
// skip/rewind/close) plus the NORMAL/ERROR/DOUBLE_ERROR/EOF lifecycle state
// machine. Concrete sources wrap an *os.File, an arbitrary io.Reader, or an
// in-memory byte slice.
package source

import (
	"io"

	smferrors "github.com/alxayo/smf-go/internal/errors"
)

// MaxAddressable is the hard cap on input size every Source enforces, seekable
// or not. Exceeding it is an I/O error, never EOF.
const MaxAddressable = 1 << 30 // 1 GiB

// State is the Input Source lifecycle described in spec.md §4.1.
type State int

const (
	Normal State = iota
	Error
	DoubleError
	EOF
)

func (s State) String() string {
	switch s {
	case Normal:
		return "normal"
	case Error:
		return "error"
	case DoubleError:
		return "double-error"
	case EOF:
		return "eof"
	default:
		return "unknown"
	}
}

// Source is the capability set an input source exposes. Skip, Rewind, and
// Close are always present on the interface (Go has no optional-method
// vtable), but an implementation that cannot honor one of them reports that
// by always failing it, per spec.md §9's "idiomatic tagged implementations"
// guidance — capability detection is structural, not a flag the caller
// queries before calling.
type Source interface {
	// ReadByte returns the next byte, io.EOF at end of input, or a wrapped
	// *errors.Error with CodeIO on failure.
	ReadByte() (byte, error)
	// Skip advances n bytes (n >= 0). A skip that would pass end-of-input
	// is clamped so the next ReadByte returns io.EOF.
	Skip(n int64) error
	// Rewind returns to the first byte of input. A failed rewind attempt
	// transitions a source in the Error state to DoubleError, and a source
	// in any other state to Error. Rewind on a DoubleError source always
	// fails.
	Rewind() error
	// CanRewind reports whether Rewind has a chance of succeeding.
	CanRewind() bool
	// Close is idempotent; closing an already-closed source is a no-op.
	Close() error
}

// stateTracker centralizes the NORMAL/ERROR/DOUBLE_ERROR/EOF transitions so
// FileSource and ReaderSource don't each reimplement spec.md §4.1's table.
type stateTracker struct {
	state State
}

func (t *stateTracker) get() State { return t.state }

// guard reports whether an operation should even attempt the underlying
// capability. Per §4.1: ERROR/DOUBLE_ERROR report IO-ERROR without touching
// the capability; EOF read-paths return EOF without touching it either.
func (t *stateTracker) guard(isReadPath bool) (shortCircuit bool, err error) {
	switch t.state {
	case DoubleError, Error:
		return true, smferrors.New("source.guard", smferrors.CodeIO, nil)
	case EOF:
		if isReadPath {
			return true, io.EOF
		}
	}
	return false, nil
}

func (t *stateTracker) onReadEOF()   { t.state = EOF }
func (t *stateTracker) onReadFail()  { t.state = Error }
func (t *stateTracker) onSkipFail()  { t.state = Error }
func (t *stateTracker) onRewindOK()  { t.state = Normal }
func (t *stateTracker) onRewindFail() {
	if t.state == Error {
		t.state = DoubleError
	} else {
		t.state = Error
	}
}
