// Package event implements the top-level Event Engine state machine:
// header validation, running-status resolution, channel-message and
// meta-event decoding, and the sticky error state. One Next call is one
// state transition and one emitted Record.
package event

import (
	"fmt"

	smferrors "github.com/alxayo/smf-go/internal/errors"
)

// Kind discriminates a Record's variant. It plays the role spec.md §3
// assigns to the Event Record's discriminator field.
type Kind int

const (
	KindNone Kind = iota
	KindHeader
	KindBeginTrack
	KindChunk
	KindEndTrack
	KindEOF
	KindError

	KindNoteOff
	KindNoteOn
	KindKeyAftertouch
	KindControl
	KindProgram
	KindChannelAftertouch
	KindPitchBend

	KindSysEx
	KindSysExEscape

	KindSeqNum
	KindText
	KindChannelPrefix
	KindTempo
	KindSMPTE
	KindTimeSig
	KindKeySig
	KindCustomMeta
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindHeader:
		return "HEADER"
	case KindBeginTrack:
		return "BEGIN_TRACK"
	case KindChunk:
		return "CHUNK"
	case KindEndTrack:
		return "END_TRACK"
	case KindEOF:
		return "EOF"
	case KindError:
		return "ERROR"
	case KindNoteOff:
		return "NOTE_OFF"
	case KindNoteOn:
		return "NOTE_ON"
	case KindKeyAftertouch:
		return "KEY_AFTERTOUCH"
	case KindControl:
		return "CONTROL"
	case KindProgram:
		return "PROGRAM"
	case KindChannelAftertouch:
		return "CH_AFTERTOUCH"
	case KindPitchBend:
		return "PITCH_BEND"
	case KindSysEx:
		return "SYSEX"
	case KindSysExEscape:
		return "SYSEX_ESCAPE"
	case KindSeqNum:
		return "SEQ_NUM"
	case KindText:
		return "TEXT"
	case KindChannelPrefix:
		return "CH_PREFIX"
	case KindTempo:
		return "TEMPO"
	case KindSMPTE:
		return "SMPTE"
	case KindTimeSig:
		return "TIME_SIG"
	case KindKeySig:
		return "KEY_SIG"
	case KindCustomMeta:
		return "CUSTOM_META"
	default:
		return "UNKNOWN"
	}
}

// TimeSystem is the header's division field decoded per spec.md §3: either
// ticks-per-beat (FrameRate == 0) or ticks-per-SMPTE-frame.
type TimeSystem struct {
	Subdivision uint16
	FrameRate   int8 // 0 = ticks-per-beat; else one of {24, 25, 29, 30}
}

// Header is the decoded MThd payload.
type Header struct {
	Format    uint16
	NumTracks uint16
	Time      TimeSystem
}

// SMPTEOffset is a validated SMPTE meta-event payload.
type SMPTEOffset struct {
	Hour   uint8
	Minute uint8
	Second uint8
	Frame  uint8
	FF     uint8
}

// TimeSignature is a validated time-signature meta-event payload.
type TimeSignature struct {
	Numerator   uint8
	Denominator uint16 // 2^DenomExp, <= 1024
	Click       uint8
	BeatUnit    uint8
}

// KeySignature is a validated key-signature meta-event payload.
type KeySignature struct {
	Key     int8 // [-7, 7]
	IsMinor bool
}

// Record is a tagged union over every variant spec.md §4.3 names. Only the
// fields relevant to Kind are meaningful; everything else carries its Go
// zero value, the idiomatic stand-in for spec.md's -1/NULL sentinels
// (spec.md §9's "pick one per target language" design note).
type Record struct {
	Kind  Kind
	Delta uint32
	Err   smferrors.Code

	// KindHeader
	Header Header

	// KindChunk
	ChunkType uint32

	// Channel messages (KindNoteOff .. KindPitchBend)
	Channel  uint8
	Data1    uint8
	Data2    uint8
	Velocity uint8 // alias view of Data2 for NOTE_ON/NOTE_OFF readability
	Bend     int16

	// KindSeqNum
	SeqNum uint16

	// KindText
	TextKind uint8 // 1..7

	// KindChannelPrefix
	ChannelPrefix uint8

	// KindTempo
	MicrosecondsPerBeat uint32

	// KindSMPTE
	SMPTE SMPTEOffset

	// KindTimeSig
	TimeSig TimeSignature

	// KindKeySig
	KeySig KeySignature

	// KindCustomMeta
	CustomMetaType uint8

	// KindSysEx, KindSysExEscape, KindText, KindCustomMeta: a window into
	// the engine's scratch buffer, owned by the Engine and valid only
	// until the next Next call (spec.md §3 ownership rule).
	Data []byte
}

// IsError reports whether this Record carries a sticky error code instead
// of a data variant.
func (r Record) IsError() bool { return r.Kind == KindError }

// String renders a human-readable line for the record, the formatting
// cmd/smfdump's reference dumper consumes without owning any per-event
// logic of its own (spec.md §1: "these appear only as the interfaces the
// parser exposes").
func (r Record) String() string {
	switch r.Kind {
	case KindHeader:
		return fmt.Sprintf("HEADER fmt=%d tracks=%d subdiv=%d frameRate=%d",
			r.Header.Format, r.Header.NumTracks, r.Header.Time.Subdivision, r.Header.Time.FrameRate)
	case KindBeginTrack:
		return "BEGIN_TRACK"
	case KindChunk:
		return fmt.Sprintf("CHUNK type=%08X", r.ChunkType)
	case KindEndTrack:
		return fmt.Sprintf("END_TRACK delta=%d", r.Delta)
	case KindEOF:
		return "EOF"
	case KindError:
		return fmt.Sprintf("ERROR %s", smferrors.Translate(r.Err))
	case KindNoteOff:
		return fmt.Sprintf("NOTE_OFF delta=%d ch=%d key=%d vel=%d", r.Delta, r.Channel, r.Data1, r.Data2)
	case KindNoteOn:
		return fmt.Sprintf("NOTE_ON delta=%d ch=%d key=%d vel=%d", r.Delta, r.Channel, r.Data1, r.Data2)
	case KindKeyAftertouch:
		return fmt.Sprintf("KEY_AFTERTOUCH delta=%d ch=%d key=%d pressure=%d", r.Delta, r.Channel, r.Data1, r.Data2)
	case KindControl:
		return fmt.Sprintf("CONTROL delta=%d ch=%d controller=%d value=%d", r.Delta, r.Channel, r.Data1, r.Data2)
	case KindProgram:
		return fmt.Sprintf("PROGRAM delta=%d ch=%d value=%d", r.Delta, r.Channel, r.Data1)
	case KindChannelAftertouch:
		return fmt.Sprintf("CH_AFTERTOUCH delta=%d ch=%d value=%d", r.Delta, r.Channel, r.Data1)
	case KindPitchBend:
		return fmt.Sprintf("PITCH_BEND delta=%d ch=%d bend=%d", r.Delta, r.Channel, r.Bend)
	case KindSysEx:
		return fmt.Sprintf("SYSEX delta=%d len=%d", r.Delta, len(r.Data))
	case KindSysExEscape:
		return fmt.Sprintf("SYSEX_ESCAPE delta=%d len=%d", r.Delta, len(r.Data))
	case KindSeqNum:
		return fmt.Sprintf("SEQ_NUM delta=%d value=%d", r.Delta, r.SeqNum)
	case KindText:
		return fmt.Sprintf("TEXT delta=%d kind=%d %q", r.Delta, r.TextKind, string(r.Data))
	case KindChannelPrefix:
		return fmt.Sprintf("CH_PREFIX delta=%d channel=%d", r.Delta, r.ChannelPrefix)
	case KindTempo:
		return fmt.Sprintf("TEMPO delta=%d usPerBeat=%d", r.Delta, r.MicrosecondsPerBeat)
	case KindSMPTE:
		return fmt.Sprintf("SMPTE delta=%d %02d:%02d:%02d.%02d,%02d", r.Delta,
			r.SMPTE.Hour, r.SMPTE.Minute, r.SMPTE.Second, r.SMPTE.Frame, r.SMPTE.FF)
	case KindTimeSig:
		return fmt.Sprintf("TIME_SIG delta=%d %d/%d click=%d beatUnit=%d",
			r.Delta, r.TimeSig.Numerator, r.TimeSig.Denominator, r.TimeSig.Click, r.TimeSig.BeatUnit)
	case KindKeySig:
		return fmt.Sprintf("KEY_SIG delta=%d key=%d minor=%t", r.Delta, r.KeySig.Key, r.KeySig.IsMinor)
	case KindCustomMeta:
		return fmt.Sprintf("CUSTOM_META delta=%d type=%02X len=%d", r.Delta, r.CustomMetaType, len(r.Data))
	default:
		return "NONE"
	}
}
