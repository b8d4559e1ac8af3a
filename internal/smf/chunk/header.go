// Package chunk implements the SMF chunk framer: 8-byte chunk header
// parsing and the big-endian/varint readers that consume from a chunk's
// declared byte budget.
package chunk

import (
	smferrors "github.com/alxayo/smf-go/internal/errors"
	"github.com/alxayo/smf-go/internal/smf/source"
)

// MaxChunkLength is the largest declared chunk length the framer accepts;
// anything larger is a HUGE_CHUNK error.
const MaxChunkLength = 1<<31 - 1

// Type codes for the two chunk kinds the engine understands by name; any
// other 4-byte ASCII code is an unrecognized top-level chunk (spec.md §6:
// "tolerated and surfaced as CHUNK events").
const (
	TypeMThd uint32 = 0x4D546864
	TypeMTrk uint32 = 0x4D54726B
)

// Header is a parsed 8-byte chunk header: 4-byte ASCII type packed
// big-endian into a uint32, plus a 4-byte big-endian length.
type Header struct {
	Type   uint32
	Length uint32
}

// TypeString renders Type back to its 4-character ASCII form for display
// (e.g. in CHUNK event records and cmd/smfdump output).
func (h Header) TypeString() string {
	return string([]byte{
		byte(h.Type >> 24),
		byte(h.Type >> 16),
		byte(h.Type >> 8),
		byte(h.Type),
	})
}

// ReadHeader reads an 8-byte chunk header directly from src: 4 bytes
// big-endian ASCII type, then 4 bytes big-endian length. A length exceeding
// MaxChunkLength is a HUGE_CHUNK error.
func ReadHeader(src source.Source) (Header, error) {
	var raw [8]byte
	for i := range raw {
		b, err := src.ReadByte()
		if err != nil {
			return Header{}, err
		}
		raw[i] = b
	}

	h := Header{
		Type:   beUint32(raw[0:4]),
		Length: beUint32(raw[4:8]),
	}
	if h.Length > MaxChunkLength {
		return Header{}, smferrors.New("chunk.ReadHeader", smferrors.CodeHugeChunk, nil)
	}
	return h, nil
}

func beUint32(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

func beUint16(b []byte) uint16 {
	return uint16(b[0])<<8 | uint16(b[1])
}
