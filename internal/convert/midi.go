package convert

import (
	"fmt"
	"sort"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// Defaults when the file carries no meta events
const (
	DefaultBeats    = 4
	DefaultBeatType = 4
)

// midiNote is a sounding note in absolute ticks
type midiNote struct {
	start uint64
	end   uint64
	key   uint8
}

// midiTrack holds the notes of one track
type midiTrack struct {
	name  string
	notes []midiNote
}

// midiScore is the subset of an SMF the converter uses
type midiScore struct {
	ticksPerQuarter uint32
	beats           uint8
	beatType        uint8
	tempo           float64 // 0 when absent
	tracks          []midiTrack
}

type noteKey struct {
	channel uint8
	key     uint8
}

// readMIDI extracts notes and the first meter/tempo from an SMF
func readMIDI(s *smf.SMF) (*midiScore, error) {
	ticks, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok {
		return nil, fmt.Errorf("unsupported time format %v: only metric ticks are supported", s.TimeFormat)
	}
	if ticks.Resolution() == 0 {
		return nil, fmt.Errorf("invalid resolution 0")
	}

	score := &midiScore{
		ticksPerQuarter: uint32(ticks.Resolution()),
		beats:           DefaultBeats,
		beatType:        DefaultBeatType,
	}
	meterSeen := false

	for i, track := range s.Tracks {
		mt := midiTrack{name: fmt.Sprintf("Part %d", i+1)}
		open := make(map[noteKey][]uint64)
		var abs uint64

		for _, ev := range track {
			abs += uint64(ev.Delta)

			var (
				channel, key, velocity, num, denom uint8
				bpm                                float64
				text                               string
			)

			switch {
			case midi.Message(ev.Message).GetNoteStart(&channel, &key, &velocity):
				k := noteKey{channel, key}
				open[k] = append(open[k], abs)
			case midi.Message(ev.Message).GetNoteEnd(&channel, &key):
				k := noteKey{channel, key}
				starts := open[k]
				if len(starts) == 0 {
					continue
				}
				start := starts[0]
				open[k] = starts[1:]
				if abs > start {
					mt.notes = append(mt.notes, midiNote{start: start, end: abs, key: key})
				}
			case ev.Message.GetMetaMeter(&num, &denom):
				if !meterSeen && num > 0 && denom > 0 {
					score.beats, score.beatType = num, denom
					meterSeen = true
				}
			case ev.Message.GetMetaTempo(&bpm):
				if score.tempo == 0 && bpm > 0 {
					score.tempo = bpm
				}
			case ev.Message.GetMetaTrackName(&text):
				if text != "" {
					mt.name = text
				}
			}
		}

		// Notes still sounding at end of track end there
		for k, starts := range open {
			for _, start := range starts {
				if abs > start {
					mt.notes = append(mt.notes, midiNote{start: start, end: abs, key: k.key})
				}
			}
		}

		if len(mt.notes) == 0 {
			continue
		}
		sort.Slice(mt.notes, func(a, b int) bool {
			if mt.notes[a].start != mt.notes[b].start {
				return mt.notes[a].start < mt.notes[b].start
			}
			return mt.notes[a].key < mt.notes[b].key
		})
		score.tracks = append(score.tracks, mt)
	}

	return score, nil
}

// measureTicks is the length of one measure in ticks
func (m *midiScore) measureTicks() uint64 {
	return uint64(m.ticksPerQuarter) * 4 * uint64(m.beats) / uint64(m.beatType)
}
