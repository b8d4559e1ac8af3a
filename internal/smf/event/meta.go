package event

import smferrors "github.com/alxayo/smf-go/internal/errors"

// Meta-event type bytes, per spec.md §4.3.
const (
	metaSeqNum    = 0x00
	metaTextMin   = 0x01
	metaTextMax   = 0x07
	metaChPrefix  = 0x20
	metaEndTrack  = 0x2F
	metaTempo     = 0x51
	metaSMPTE     = 0x54
	metaTimeSig   = 0x58
	metaKeySig    = 0x59
)

// decodeMeta validates and decodes a meta-event payload already captured
// into scratch. ts is the header's TimeSystem, needed to validate an SMPTE
// offset's frame-rate and drop-frame constraints.
func decodeMeta(typeByte byte, payload []byte, ts TimeSystem) (Record, error) {
	switch {
	case typeByte == metaSeqNum:
		if len(payload) != 2 {
			return Record{}, smferrors.New("event.decodeMeta.seqNum", smferrors.CodeSeqNum, nil)
		}
		return Record{Kind: KindSeqNum, SeqNum: uint16(payload[0])<<8 | uint16(payload[1])}, nil

	case typeByte >= metaTextMin && typeByte <= metaTextMax:
		return Record{Kind: KindText, TextKind: typeByte, Data: payload}, nil

	case typeByte == metaChPrefix:
		if len(payload) != 1 || payload[0] > 15 {
			return Record{}, smferrors.New("event.decodeMeta.chPrefix", smferrors.CodeChPrefix, nil)
		}
		return Record{Kind: KindChannelPrefix, ChannelPrefix: payload[0]}, nil

	case typeByte == metaEndTrack:
		if len(payload) != 0 {
			return Record{}, smferrors.New("event.decodeMeta.endTrack", smferrors.CodeBadEOT, nil)
		}
		return Record{Kind: KindEndTrack}, nil

	case typeByte == metaTempo:
		if len(payload) != 3 {
			return Record{}, smferrors.New("event.decodeMeta.tempo", smferrors.CodeSetTempo, nil)
		}
		us := uint32(payload[0])<<16 | uint32(payload[1])<<8 | uint32(payload[2])
		if us == 0 {
			return Record{}, smferrors.New("event.decodeMeta.tempo", smferrors.CodeSetTempo, nil)
		}
		return Record{Kind: KindTempo, MicrosecondsPerBeat: us}, nil

	case typeByte == metaSMPTE:
		return decodeSMPTE(payload, ts)

	case typeByte == metaTimeSig:
		return decodeTimeSig(payload)

	case typeByte == metaKeySig:
		return decodeKeySig(payload)

	default:
		return Record{Kind: KindCustomMeta, CustomMetaType: typeByte, Data: payload}, nil
	}
}

func decodeSMPTE(payload []byte, ts TimeSystem) (Record, error) {
	if len(payload) != 5 {
		return Record{}, smferrors.New("event.decodeSMPTE", smferrors.CodeSMPTEOff, nil)
	}
	hour, minute, second, frame, ff := payload[0], payload[1], payload[2], payload[3], payload[4]

	if hour > 23 || minute > 59 || second > 59 || frame > 29 || ff > 99 {
		return Record{}, smferrors.New("event.decodeSMPTE", smferrors.CodeSMPTEOff, nil)
	}
	switch ts.FrameRate {
	case 24, 25:
		if frame >= uint8(ts.FrameRate) {
			return Record{}, smferrors.New("event.decodeSMPTE", smferrors.CodeSMPTEOff, nil)
		}
	case 29:
		if minute%10 != 0 && (frame == 0 || frame == 1) {
			return Record{}, smferrors.New("event.decodeSMPTE", smferrors.CodeSMPTEOff, nil)
		}
	}

	return Record{Kind: KindSMPTE, SMPTE: SMPTEOffset{
		Hour: hour, Minute: minute, Second: second, Frame: frame, FF: ff,
	}}, nil
}

func decodeTimeSig(payload []byte) (Record, error) {
	if len(payload) != 4 {
		return Record{}, smferrors.New("event.decodeTimeSig", smferrors.CodeTimeSig, nil)
	}
	numerator, denomExp, click, beatUnit := payload[0], payload[1], payload[2], payload[3]
	if denomExp > 15 || numerator == 0 || click == 0 || beatUnit == 0 {
		return Record{}, smferrors.New("event.decodeTimeSig", smferrors.CodeTimeSig, nil)
	}
	denominator := uint16(1) << denomExp
	if denominator > 1024 {
		return Record{}, smferrors.New("event.decodeTimeSig", smferrors.CodeTimeSig, nil)
	}
	return Record{Kind: KindTimeSig, TimeSig: TimeSignature{
		Numerator: numerator, Denominator: denominator, Click: click, BeatUnit: beatUnit,
	}}, nil
}

func decodeKeySig(payload []byte) (Record, error) {
	if len(payload) != 2 {
		return Record{}, smferrors.New("event.decodeKeySig", smferrors.CodeKeySig, nil)
	}
	key := int8(payload[0])
	isMinor := payload[1]
	if key < -7 || key > 7 || (isMinor != 0 && isMinor != 1) {
		return Record{}, smferrors.New("event.decodeKeySig", smferrors.CodeKeySig, nil)
	}
	return Record{Kind: KindKeySig, KeySig: KeySignature{Key: key, IsMinor: isMinor == 1}}, nil
}
