package event

import (
	"errors"
	"io"

	"github.com/alxayo/smf-go/internal/bufpool"
	smferrors "github.com/alxayo/smf-go/internal/errors"
	"github.com/alxayo/smf-go/internal/smf/chunk"
	"github.com/alxayo/smf-go/internal/smf/fault"
	"github.com/alxayo/smf-go/internal/smf/source"
)

type topState int

const (
	stateFresh topState = iota
	stateHeaderSeen
	stateEOF
	stateError
)

// Engine drives the event-level state machine described in spec.md §4.3.
// One Next call performs exactly one state transition and returns exactly
// one Record. Not safe for concurrent use; an Engine and the source.Source
// it reads from form an aliasing set (spec.md §5).
type Engine struct {
	src     source.Source
	framer  *chunk.Framer
	top     topState
	errCode smferrors.Code

	header     Header
	tracksSeen uint16
	inTrack    bool

	runningStatus byte // 0 means none; valid status bytes are 0x80-0xFF
	scratch       *bufpool.Scratch
}

// NewEngine creates an Engine reading from src. src must not be nil; a nil
// src is a contract violation, not a format error, and aborts the process
// via fault.Raise.
func NewEngine(src source.Source) *Engine {
	if src == nil {
		fault.Raise("event.NewEngine", "src must not be nil")
	}
	return &Engine{
		src:     src,
		framer:  chunk.NewFramer(src),
		scratch: bufpool.NewScratch(nil),
	}
}

// Next performs the next state transition and returns its Record. Once the
// engine enters the error or EOF state, Next is a constant function:
// sticky error state is an absorbing state in the FSM (spec.md §9).
func (e *Engine) Next() Record {
	switch e.top {
	case stateError:
		return Record{Kind: KindError, Err: e.errCode}
	case stateEOF:
		return Record{Kind: KindEOF}
	case stateFresh:
		return e.readHeaderChunk()
	}

	if e.inTrack {
		return e.readEvent()
	}
	if e.tracksSeen >= e.header.NumTracks {
		e.top = stateEOF
		return Record{Kind: KindEOF}
	}
	return e.readNextTopChunk()
}

// fail moves the engine into the sticky error state and returns its Record.
// A bare io.EOF (read before any structural EOF transition applies) is
// always an unexpected-EOF format error, never a graceful end.
func (e *Engine) fail(err error) Record {
	code := smferrors.CodeOf(err)
	if errors.Is(err, io.EOF) {
		code = smferrors.CodeEOF
	}
	e.top = stateError
	e.errCode = code
	return Record{Kind: KindError, Err: code}
}

func (e *Engine) readHeaderChunk() Record {
	h, err := chunk.ReadHeader(e.src)
	if err != nil {
		return e.fail(err)
	}
	if h.Type != chunk.TypeMThd {
		return e.fail(smferrors.New("event.readHeaderChunk", smferrors.CodeSignature, nil))
	}
	if h.Length < 6 {
		return e.fail(smferrors.New("event.readHeaderChunk", smferrors.CodeHeader, nil))
	}

	hf := chunk.NewFramer(e.src)
	hf.Open(h.Length)

	format, err := hf.ReadUint16()
	if err != nil {
		return e.fail(err)
	}
	nTracks, err := hf.ReadUint16()
	if err != nil {
		return e.fail(err)
	}
	division, err := hf.ReadUint16()
	if err != nil {
		return e.fail(err)
	}
	if err := hf.SkipRemaining(); err != nil {
		return e.fail(err)
	}

	if format > 2 {
		return e.fail(smferrors.New("event.readHeaderChunk", smferrors.CodeMIDIFmt, nil))
	}
	if nTracks < 1 {
		return e.fail(smferrors.New("event.readHeaderChunk", smferrors.CodeNoTracks, nil))
	}
	if format == 0 && nTracks != 1 {
		return e.fail(smferrors.New("event.readHeaderChunk", smferrors.CodeMultiTrack, nil))
	}

	ts, err := decodeDivision(division)
	if err != nil {
		return e.fail(err)
	}

	e.header = Header{Format: format, NumTracks: nTracks, Time: ts}
	e.top = stateHeaderSeen
	return Record{Kind: KindHeader, Header: e.header}
}

// decodeDivision decodes the header's division field per spec.md §3/§4.3:
// high bit clear means ticks-per-beat; high bit set means SMPTE timing
// where the high byte is the two's-complement frame rate.
func decodeDivision(division uint16) (TimeSystem, error) {
	if division&0x8000 == 0 {
		if division == 0 {
			return TimeSystem{}, smferrors.New("event.decodeDivision", smferrors.CodeHeader, nil)
		}
		return TimeSystem{Subdivision: division, FrameRate: 0}, nil
	}

	highByte := int8(byte(division >> 8))
	frameRate := -int(highByte)
	switch frameRate {
	case 24, 25, 29, 30:
	default:
		return TimeSystem{}, smferrors.New("event.decodeDivision", smferrors.CodeHeader, nil)
	}
	subdiv := division & 0xFF
	if subdiv < 1 {
		return TimeSystem{}, smferrors.New("event.decodeDivision", smferrors.CodeHeader, nil)
	}
	return TimeSystem{Subdivision: subdiv, FrameRate: int8(frameRate)}, nil
}

func (e *Engine) readNextTopChunk() Record {
	h, err := chunk.ReadHeader(e.src)
	if err != nil {
		return e.fail(err)
	}

	switch h.Type {
	case chunk.TypeMTrk:
		e.framer = chunk.NewFramer(e.src)
		e.framer.Open(h.Length)
		e.inTrack = true
		e.runningStatus = 0
		e.tracksSeen++
		return Record{Kind: KindBeginTrack}
	case chunk.TypeMThd:
		return e.fail(smferrors.New("event.readNextTopChunk", smferrors.CodeMultiHead, nil))
	default:
		f := chunk.NewFramer(e.src)
		f.Open(h.Length)
		if err := f.SkipRemaining(); err != nil {
			return e.fail(err)
		}
		return Record{Kind: KindChunk, ChunkType: h.Type}
	}
}

func (e *Engine) readEvent() Record {
	delta, err := e.framer.ReadVarint()
	if err != nil {
		return e.fail(err)
	}

	s, err := e.framer.ReadByte()
	if err != nil {
		return e.fail(err)
	}

	if s < 0x80 {
		return e.readRunningStatusEvent(delta, s)
	}
	if isChannelStatus(s) {
		return e.readChannelEvent(delta, s)
	}
	switch s {
	case statusSysEx, statusSysExEscape:
		return e.readSysEx(delta, s)
	case statusMeta:
		return e.readMeta(delta)
	default:
		return e.fail(smferrors.New("event.readEvent", smferrors.CodeBadEvent, nil))
	}
}

func (e *Engine) readRunningStatusEvent(delta uint32, firstDataByte byte) Record {
	if e.runningStatus == 0 {
		return e.fail(smferrors.New("event.readRunningStatusEvent", smferrors.CodeRunStatus, nil))
	}
	status := e.runningStatus
	a := firstDataByte // already known to have its high bit clear: that's what put us on this branch

	var b byte
	if dataByteCount(status) == 2 {
		var err error
		b, err = e.framer.ReadByte()
		if err != nil {
			return e.fail(err)
		}
		if b&0x80 != 0 {
			return e.fail(smferrors.New("event.readRunningStatusEvent", smferrors.CodeMIDIData, nil))
		}
	}

	rec := decodeChannelMessage(status, a, b)
	rec.Delta = delta
	return rec
}

func (e *Engine) readChannelEvent(delta uint32, status byte) Record {
	a, err := e.framer.ReadByte()
	if err != nil {
		return e.fail(err)
	}
	if a&0x80 != 0 {
		return e.fail(smferrors.New("event.readChannelEvent", smferrors.CodeMIDIData, nil))
	}

	var b byte
	if dataByteCount(status) == 2 {
		b, err = e.framer.ReadByte()
		if err != nil {
			return e.fail(err)
		}
		if b&0x80 != 0 {
			return e.fail(smferrors.New("event.readChannelEvent", smferrors.CodeMIDIData, nil))
		}
	}

	e.runningStatus = status
	rec := decodeChannelMessage(status, a, b)
	rec.Delta = delta
	return rec
}

func (e *Engine) readSysEx(delta uint32, status byte) Record {
	length, err := e.framer.ReadVarint()
	if err != nil {
		return e.fail(err)
	}
	if length > bufpool.MaxScratch {
		return e.fail(smferrors.New("event.readSysEx", smferrors.CodeBigPayload, nil))
	}
	buf, rerr := e.scratch.Reserve(int(length))
	if rerr != nil {
		return e.fail(smferrors.New("event.readSysEx", smferrors.CodeBigPayload, rerr))
	}
	for i := range buf {
		b, err := e.framer.ReadByte()
		if err != nil {
			return e.fail(err)
		}
		buf[i] = b
	}

	e.runningStatus = 0
	kind := KindSysEx
	if status == statusSysExEscape {
		kind = KindSysExEscape
	}
	return Record{Kind: kind, Delta: delta, Data: buf}
}

func (e *Engine) readMeta(delta uint32) Record {
	typeByte, err := e.framer.ReadByte()
	if err != nil {
		return e.fail(err)
	}
	length, err := e.framer.ReadVarint()
	if err != nil {
		return e.fail(err)
	}
	if length > bufpool.MaxScratch {
		return e.fail(smferrors.New("event.readMeta", smferrors.CodeBigPayload, nil))
	}
	buf, rerr := e.scratch.Reserve(int(length))
	if rerr != nil {
		return e.fail(smferrors.New("event.readMeta", smferrors.CodeBigPayload, rerr))
	}
	for i := range buf {
		b, err := e.framer.ReadByte()
		if err != nil {
			return e.fail(err)
		}
		buf[i] = b
	}

	rec, err := decodeMeta(typeByte, buf, e.header.Time)
	if err != nil {
		return e.fail(err)
	}
	rec.Delta = delta
	e.runningStatus = 0

	if rec.Kind == KindEndTrack {
		if err := e.framer.SkipRemaining(); err != nil {
			return e.fail(err)
		}
		e.inTrack = false
	}
	return rec
}
