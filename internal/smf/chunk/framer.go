package chunk

import (
	"io"

	smferrors "github.com/alxayo/smf-go/internal/errors"
	"github.com/alxayo/smf-go/internal/smf/source"
)

// Framer wraps a source.Source and tracks the remaining byte budget of the
// chunk currently open on it. Remaining == -1 means no chunk is open
// (spec.md §3's Parser State: "chunk_remaining >= 0 means inside a chunk;
// -1 means between chunks").
type Framer struct {
	src       source.Source
	remaining int64
}

// NewFramer wraps src with no chunk open.
func NewFramer(src source.Source) *Framer {
	return &Framer{src: src, remaining: -1}
}

// Open begins a new chunk budget of length bytes.
func (f *Framer) Open(length uint32) { f.remaining = int64(length) }

// Close marks no chunk as open.
func (f *Framer) Close() { f.remaining = -1 }

// Remaining reports the current chunk's unconsumed byte budget, or -1
// between chunks.
func (f *Framer) Remaining() int64 { return f.remaining }

// ReadByte consumes one byte from the open chunk's budget. OPEN_TRACK
// signals premature in-chunk exhaustion (the declared length ran out before
// the logical content did); an underlying EOF before that point is its own
// (unexpected) EOF error, never a graceful end, per spec.md §4.2.
func (f *Framer) ReadByte() (byte, error) {
	if f.remaining == 0 {
		return 0, smferrors.New("chunk.Framer.ReadByte", smferrors.CodeOpenTrack, nil)
	}
	b, err := f.src.ReadByte()
	if err == io.EOF {
		return 0, smferrors.New("chunk.Framer.ReadByte", smferrors.CodeEOF, err)
	}
	if err != nil {
		return 0, err
	}
	if f.remaining > 0 {
		f.remaining--
	}
	return b, nil
}

// ReadUint16 reads a big-endian uint16 from the chunk budget.
func (f *Framer) ReadUint16() (uint16, error) {
	var buf [2]byte
	for i := range buf {
		b, err := f.ReadByte()
		if err != nil {
			return 0, err
		}
		buf[i] = b
	}
	return beUint16(buf[:]), nil
}

// ReadUint32 reads a big-endian uint32 from the chunk budget.
func (f *Framer) ReadUint32() (uint32, error) {
	var buf [4]byte
	for i := range buf {
		b, err := f.ReadByte()
		if err != nil {
			return 0, err
		}
		buf[i] = b
	}
	return beUint32(buf[:]), nil
}

// ReadVarint decodes a base-128 big-endian variable-length integer: each
// byte contributes its low 7 bits, with the top bit set meaning "more
// follows". At most 4 bytes are consumed; a 5th continuation byte is a
// LONG_VARINT error. The result is always in [0, 2^28-1].
func (f *Framer) ReadVarint() (uint32, error) {
	var value uint32
	for i := 0; i < 4; i++ {
		b, err := f.ReadByte()
		if err != nil {
			return 0, err
		}
		value = value<<7 | uint32(b&0x7F)
		if b&0x80 == 0 {
			return value, nil
		}
	}
	// Every byte so far had its continuation bit set, so a value would
	// need a 5th byte; a varint can never legally be that long.
	if _, err := f.ReadByte(); err != nil {
		return 0, err
	}
	return 0, smferrors.New("chunk.Framer.ReadVarint", smferrors.CodeLongVarint, nil)
}

// Skip discards n bytes from the chunk budget, e.g. an unrecognized
// top-level chunk's payload, or the untouched remainder after END_TRACK.
func (f *Framer) Skip(n int64) error {
	for i := int64(0); i < n; i++ {
		if _, err := f.ReadByte(); err != nil {
			return err
		}
	}
	return nil
}

// SkipRemaining discards whatever is left of the currently open chunk and
// closes it.
func (f *Framer) SkipRemaining() error {
	if f.remaining <= 0 {
		f.Close()
		return nil
	}
	if err := f.Skip(f.remaining); err != nil {
		return err
	}
	f.Close()
	return nil
}
