// Package errors defines the parser's stable error vocabulary: a closed set
// of negative codes (part of the public contract, safe to switch on across
// versions) plus an *Error type that carries the code, the operation that
// raised it, and an optional wrapped cause for diagnostics.
package errors

import (
	"errors"
	"fmt"
)

// Code is a stable, negative error identifier. Callers may switch on Code
// without depending on message text.
type Code int

// The full set of error codes the parser can report. Never renumber an
// existing constant; the values are part of the public contract.
const (
	CodeNone       Code = 0
	CodeIO         Code = -1
	CodeHugeFile   Code = -2
	CodeOpenFile   Code = -3
	CodeEOF        Code = -4
	CodeHugeChunk  Code = -5
	CodeSignature  Code = -6
	CodeHeader     Code = -7
	CodeMIDIFmt    Code = -8
	CodeNoTracks   Code = -9
	CodeMultiTrack Code = -10
	CodeMultiHead  Code = -11
	CodeOpenTrack  Code = -12
	CodeLongVarint Code = -13
	CodeRunStatus  Code = -14
	CodeBigPayload Code = -15
	CodeBadEvent   Code = -16
	CodeSeqNum     Code = -17
	CodeChPrefix   Code = -18
	CodeBadEOT     Code = -19
	CodeSetTempo   Code = -20
	CodeSMPTEOff   Code = -21
	CodeTimeSig    Code = -22
	CodeKeySig     Code = -23
	CodeMIDIData   Code = -24
)

var names = map[Code]string{
	CodeNone:       "no error",
	CodeIO:         "I/O error",
	CodeHugeFile:   "input exceeds the maximum addressable size",
	CodeOpenFile:   "failed to open input",
	CodeEOF:        "unexpected end of input",
	CodeHugeChunk:  "chunk length exceeds 2^31-1",
	CodeSignature:  "bad chunk signature",
	CodeHeader:     "malformed header chunk",
	CodeMIDIFmt:    "invalid MIDI format value",
	CodeNoTracks:   "header declares zero tracks",
	CodeMultiTrack: "format 0 file declares more than one track",
	CodeMultiHead:  "more than one header chunk",
	CodeOpenTrack:  "track chunk exhausted before its declared length",
	CodeLongVarint: "variable-length integer longer than 4 bytes",
	CodeRunStatus:  "running status used with no prior status byte",
	CodeBigPayload: "sysex or meta-event payload exceeds 32768 bytes",
	CodeBadEvent:   "unrecognized event status byte",
	CodeSeqNum:     "malformed sequence number meta-event",
	CodeChPrefix:   "malformed channel prefix meta-event",
	CodeBadEOT:     "malformed end-of-track meta-event",
	CodeSetTempo:   "malformed or zero set-tempo meta-event",
	CodeSMPTEOff:   "malformed or out-of-range SMPTE offset meta-event",
	CodeTimeSig:    "malformed time signature meta-event",
	CodeKeySig:     "malformed or out-of-range key signature meta-event",
	CodeMIDIData:   "MIDI data byte with high bit set",
}

// Translate returns the human-readable string for a Code, the API surface
// spec.md §6 requires ("translate an error code to a human-readable
// string"). Unknown codes return a generic placeholder rather than
// panicking; translation is a display concern, not a contract the caller
// must satisfy with only known codes.
func Translate(c Code) string {
	if s, ok := names[c]; ok {
		return s
	}
	return fmt.Sprintf("unknown error code %d", int(c))
}

// Error wraps a Code with the operation that produced it and, optionally,
// the underlying cause (an I/O error, for instance). It mirrors the
// teacher's op-tagged error types (ProtocolError, ChunkError, ...) but pins
// every instance to one of the stable Codes above instead of a free-form
// classification.
type Error struct {
	Code Code
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, Translate(e.Code))
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, Translate(e.Code), e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// New constructs an *Error for op with the given code and optional cause.
func New(op string, code Code, cause error) error {
	return &Error{Code: code, Op: op, Err: cause}
}

// CodeOf extracts the Code carried by err, if any, walking the Unwrap
// chain. Returns CodeNone when err is nil and CodeIO for an opaque,
// uncoded error (a bare I/O failure that never passed through New).
func CodeOf(err error) Code {
	if err == nil {
		return CodeNone
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeIO
}
