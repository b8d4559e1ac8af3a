// Package integration runs the event engine end-to-end over complete byte
// streams, exercising all three layers (source, chunk, event) together the
// way cmd/smfdump does, rather than unit-testing any one layer in
// isolation.
package integration

import (
	"bytes"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	smferrors "github.com/alxayo/smf-go/internal/errors"
	"github.com/alxayo/smf-go/internal/smf/event"
	"github.com/alxayo/smf-go/internal/smf/source"
	"github.com/stretchr/testify/require"
)

func decodeHex(t *testing.T, hexStr string) []byte {
	t.Helper()
	b, err := hex.DecodeString(strings.ReplaceAll(hexStr, " ", ""))
	require.NoError(t, err)
	return b
}

func collectKinds(e *event.Engine) []event.Kind {
	var kinds []event.Kind
	for {
		rec := e.Next()
		kinds = append(kinds, rec.Kind)
		if rec.Kind == event.KindEOF || rec.Kind == event.KindError {
			return kinds
		}
	}
}

func TestEndToEndMinimalFormat0FromFile(t *testing.T) {
	b := decodeHex(t, `4D546864 00000006 0000 0001 0060 4D54726B 0000000C 00 90 3C 64 60 80 3C 40 00 FF 2F 00`)
	path := filepath.Join(t.TempDir(), "minimal.mid")
	require.NoError(t, os.WriteFile(path, b, 0o644))

	src, err := source.NewFromPath(path)
	require.NoError(t, err)
	defer src.Close()

	e := event.NewEngine(src)
	kinds := collectKinds(e)
	require.Equal(t, []event.Kind{
		event.KindHeader,
		event.KindBeginTrack,
		event.KindNoteOn,
		event.KindNoteOff,
		event.KindEndTrack,
		event.KindEOF,
	}, kinds)
}

func TestEndToEndForeignChunkFromReader(t *testing.T) {
	b := decodeHex(t, `4D546864 00000006 0000 0001 0060 58595A5A 00000004 DEADBEEF 4D54726B 00000004 00 FF 2F 00`)
	src := source.NewReaderSource(bytes.NewReader(b))
	e := event.NewEngine(src)
	kinds := collectKinds(e)
	require.Equal(t, []event.Kind{
		event.KindHeader,
		event.KindChunk,
		event.KindBeginTrack,
		event.KindEndTrack,
		event.KindEOF,
	}, kinds)
}

func TestEndToEndTruncatedFileIsEOFError(t *testing.T) {
	b := decodeHex(t, `4D546864 00000006 0000 0001`) // missing division field
	src := source.FromBytes(b)
	e := event.NewEngine(src)

	first := e.Next()
	require.Equal(t, event.KindError, first.Kind)
	require.Equal(t, smferrors.CodeEOF, first.Err)

	second := e.Next()
	require.Equal(t, first, second)
}

func TestEndToEndSysExPayloadRoundTrips(t *testing.T) {
	// F0 len=3 payload AA BB CC, followed by END_TRACK (10 payload bytes total)
	b := decodeHex(t, `4D546864 00000006 0000 0001 0060 4D54726B 0000000A 00 F0 03 AA BB CC 00 FF 2F 00`)
	src := source.FromBytes(b)
	e := event.NewEngine(src)

	e.Next() // HEADER
	e.Next() // BEGIN_TRACK
	sysex := e.Next()
	require.Equal(t, event.KindSysEx, sysex.Kind)
	require.Equal(t, []byte{0xAA, 0xBB, 0xCC}, sysex.Data)
}
