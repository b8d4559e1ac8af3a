package event

// Channel message status nibbles, per spec.md §4.3.
const (
	statusNoteOff       = 0x80
	statusNoteOn        = 0x90
	statusKeyAftertouch = 0xA0
	statusControl       = 0xB0
	statusProgram       = 0xC0
	statusChannelAT     = 0xD0
	statusPitchBend     = 0xE0
	statusSysEx         = 0xF0
	statusSysExEscape   = 0xF7
	statusMeta          = 0xFF
)

// dataByteCount returns how many data bytes follow a channel-message status
// byte: 2 for note/aftertouch/control/pitch-bend, 1 for program/channel
// aftertouch. Only valid for 0x80-0xEF; callers must range-check first.
func dataByteCount(status byte) int {
	switch status & 0xF0 {
	case statusProgram, statusChannelAT:
		return 1
	default:
		return 2
	}
}

// isChannelStatus reports whether status is a channel-message status byte
// (0x80-0xEF).
func isChannelStatus(status byte) bool {
	return status >= 0x80 && status <= 0xEF
}

// decodeChannelMessage fills in a Record's channel-message fields from a
// status byte and its one or two already-validated data bytes.
func decodeChannelMessage(status, a, b byte) Record {
	channel := status & 0x0F
	r := Record{Channel: channel, Data1: a, Data2: b}

	switch status & 0xF0 {
	case statusNoteOff:
		r.Kind = KindNoteOff
		r.Velocity = b
	case statusNoteOn:
		r.Kind = KindNoteOn
		r.Velocity = b
	case statusKeyAftertouch:
		r.Kind = KindKeyAftertouch
	case statusControl:
		r.Kind = KindControl
	case statusProgram:
		r.Kind = KindProgram
	case statusChannelAT:
		r.Kind = KindChannelAftertouch
	case statusPitchBend:
		r.Kind = KindPitchBend
		r.Bend = int16(uint16(b)<<7|uint16(a)) - 8192
	}
	return r
}
