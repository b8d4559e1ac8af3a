// Package stat implements a supplementary analysis pass over a parsed SMF
// stream: per-instrument note counts, tempo changes, and the header's time
// system. It is the kind of secondary tool real SMF libraries ship
// alongside their core parser (grounded on yalue-midi/instrument_stats),
// not something spec.md's reference dumper contract names.
package stat

import (
	"fmt"
	"io"

	smferrors "github.com/alxayo/smf-go/internal/errors"
	"github.com/alxayo/smf-go/internal/smf/event"
	"github.com/alxayo/smf-go/internal/smf/source"
)

const percussionChannel = 9 // channel 10 in 1-based MIDI terminology

// Summary accumulates note and tempo statistics across one or more files.
type Summary struct {
	FilesParsed     int
	InstrumentNotes [128]uint64
	PercussionNotes [128]uint64
	TempoChanges    []uint32 // microseconds per beat, in file order
	TimeSystems     []event.TimeSystem
}

// New returns an empty Summary ready to accumulate results via Merge.
func New() *Summary { return &Summary{} }

// Summarize parses the file at path and returns its Summary.
func Summarize(path string) (*Summary, error) {
	src, err := source.NewFromPath(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	s := &Summary{FilesParsed: 1}
	var channelInstrument [16]uint8

	e := event.NewEngine(src)
	for {
		rec := e.Next()
		switch rec.Kind {
		case event.KindEOF:
			return s, nil
		case event.KindError:
			return nil, fmt.Errorf("%s", smferrors.Translate(rec.Err))
		case event.KindHeader:
			s.TimeSystems = append(s.TimeSystems, rec.Header.Time)
		case event.KindBeginTrack:
			channelInstrument = [16]uint8{}
		case event.KindProgram:
			if rec.Channel < 16 {
				channelInstrument[rec.Channel] = rec.Data1
			}
		case event.KindNoteOn:
			if rec.Velocity == 0 {
				continue // release, not a sounding note
			}
			if rec.Channel == percussionChannel {
				s.PercussionNotes[rec.Data1]++
			} else {
				s.InstrumentNotes[channelInstrument[rec.Channel]]++
			}
		case event.KindTempo:
			s.TempoChanges = append(s.TempoChanges, rec.MicrosecondsPerBeat)
		}
	}
}

// Merge folds other into s.
func (s *Summary) Merge(other *Summary) {
	s.FilesParsed += other.FilesParsed
	for i := range s.InstrumentNotes {
		s.InstrumentNotes[i] += other.InstrumentNotes[i]
	}
	for i := range s.PercussionNotes {
		s.PercussionNotes[i] += other.PercussionNotes[i]
	}
	s.TempoChanges = append(s.TempoChanges, other.TempoChanges...)
	s.TimeSystems = append(s.TimeSystems, other.TimeSystems...)
}

// WriteReport writes a human-readable summary to w.
func (s *Summary) WriteReport(w io.Writer) {
	fmt.Fprintf(w, "files parsed: %d\n", s.FilesParsed)
	for i, note := range s.InstrumentNotes {
		if note > 0 {
			fmt.Fprintf(w, "instrument %d: %d notes\n", i, note)
		}
	}
	for i, note := range s.PercussionNotes {
		if note > 0 {
			fmt.Fprintf(w, "percussion %d: %d notes\n", i, note)
		}
	}
	fmt.Fprintf(w, "tempo changes: %d\n", len(s.TempoChanges))
	for _, ts := range s.TimeSystems {
		if ts.FrameRate == 0 {
			fmt.Fprintf(w, "time system: %d ticks/beat\n", ts.Subdivision)
		} else {
			fmt.Fprintf(w, "time system: SMPTE %d fps, %d ticks/frame\n", ts.FrameRate, ts.Subdivision)
		}
	}
}
