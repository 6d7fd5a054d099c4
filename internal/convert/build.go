package convert

import (
	"errors"
	"fmt"
	"strconv"
)

// Conversion errors
var (
	ErrNoNotes      = errors.New("no note events found")
	ErrScoreTooLong = errors.New("score is too long")
)

// MaxMeasures caps the length of a converted score
const MaxMeasures = 10000

// Clef selection
const (
	BassClefThreshold = 60 // average key below middle C uses the F clef
	VoiceNumber       = "1"
)

var pitchNames = [12]struct {
	step  string
	alter int
}{
	{"C", 0}, {"C", 1}, {"D", 0}, {"D", 1}, {"E", 0}, {"F", 0},
	{"F", 1}, {"G", 0}, {"G", 1}, {"A", 0}, {"A", 1}, {"B", 0},
}

// pitchOf maps a MIDI key to a MusicXML pitch, spelling accidentals as sharps
func pitchOf(key uint8) *Pitch {
	p := pitchNames[key%12]
	return &Pitch{Step: p.step, Alter: p.alter, Octave: int(key)/12 - 1}
}

// noteType returns the MusicXML type and dot count for duration, or "" when
// the duration is not a plain or single-dotted value.
func noteType(duration, divisions int) (string, int) {
	types := []struct {
		name     string
		num, den int // length relative to a quarter note
	}{
		{"whole", 4, 1}, {"half", 2, 1}, {"quarter", 1, 1},
		{"eighth", 1, 2}, {"16th", 1, 4}, {"32nd", 1, 8},
	}
	for _, t := range types {
		if divisions*t.num%t.den != 0 {
			continue
		}
		base := divisions * t.num / t.den
		if duration == base {
			return t.name, 0
		}
		if base%2 == 0 && duration == base+base/2 {
			return t.name, 1
		}
	}
	return "", 0
}

// segment is a chord or rest slice that lies inside one measure
type segment struct {
	start, end uint64
	keys       []uint8 // empty for rests
	tieStart   bool
	tieStop    bool
}

// buildScore lays the MIDI notes out into measures
func buildScore(m *midiScore, title string) (*ScorePartwise, error) {
	if len(m.tracks) == 0 {
		return nil, ErrNoNotes
	}

	measureLen := m.measureTicks()
	if measureLen == 0 {
		return nil, fmt.Errorf("invalid meter %d/%d", m.beats, m.beatType)
	}

	// All parts share the same number of measures
	var lastEnd uint64
	for _, tr := range m.tracks {
		for _, n := range tr.notes {
			if n.end > lastEnd {
				lastEnd = n.end
			}
		}
	}
	measures := lastEnd / measureLen
	if lastEnd%measureLen != 0 {
		measures++
	}
	if measures > MaxMeasures {
		return nil, fmt.Errorf("%w: %d measures, limit is %d", ErrScoreTooLong, measures, MaxMeasures)
	}
	measureCount := int(measures)
	if measureCount == 0 {
		measureCount = 1
	}
	total := uint64(measureCount) * measureLen

	score := &ScorePartwise{
		Version:        MusicXMLVersion,
		Identification: &Identification{Encoding: Encoding{Software: SoftwareName}},
	}
	if title != "" {
		score.Work = &Work{Title: title}
	}

	for i, tr := range m.tracks {
		id := "P" + strconv.Itoa(i+1)
		score.PartList.ScoreParts = append(score.PartList.ScoreParts, ScorePart{ID: id, Name: tr.name})

		part := Part{ID: id, Measures: make([]Measure, measureCount)}
		for idx := range part.Measures {
			part.Measures[idx].Number = idx + 1
		}
		part.Measures[0].Attributes = &Attributes{
			Divisions: int(m.ticksPerQuarter),
			Time:      Time{Beats: int(m.beats), BeatType: int(m.beatType)},
			Clef:      clefFor(tr.notes),
		}
		if m.tempo > 0 {
			bpm := strconv.FormatFloat(m.tempo, 'f', -1, 64)
			part.Measures[0].Direction = &Direction{
				Placement:     "above",
				DirectionType: DirectionType{Metronome: Metronome{BeatUnit: "quarter", PerMinute: bpm}},
				Sound:         Sound{Tempo: bpm},
			}
		}

		for _, seg := range timeline(tr.notes, total, measureLen) {
			idx := int(seg.start / measureLen)
			part.Measures[idx].Notes = append(part.Measures[idx].Notes, seg.render(int(m.ticksPerQuarter))...)
		}
		score.Parts = append(score.Parts, part)
	}

	return score, nil
}

// timeline turns sorted notes into chord and rest segments covering [0,total),
// split at measure boundaries.
func timeline(notes []midiNote, total, measureLen uint64) []segment {
	var segs []segment
	var cursor uint64

	for i := 0; i < len(notes); {
		start := notes[i].start
		end := notes[i].end
		keys := []uint8{}
		j := i
		for ; j < len(notes) && notes[j].start == start; j++ {
			if len(keys) == 0 || keys[len(keys)-1] != notes[j].key {
				keys = append(keys, notes[j].key)
			}
			if notes[j].end > end {
				end = notes[j].end
			}
		}
		if j < len(notes) && notes[j].start < end {
			end = notes[j].start
		}
		i = j

		if start < cursor {
			// overlaps a chord already laid out; it was truncated there
			continue
		}
		if start > cursor {
			segs = append(segs, split(cursor, start, nil, measureLen)...)
		}
		segs = append(segs, split(start, end, keys, measureLen)...)
		cursor = end
	}

	if cursor < total {
		segs = append(segs, split(cursor, total, nil, measureLen)...)
	}
	return segs
}

// split cuts [start,end) at barlines, tying pitched pieces together
func split(start, end uint64, keys []uint8, measureLen uint64) []segment {
	var segs []segment
	for s := start; s < end; {
		barline := (s/measureLen + 1) * measureLen
		e := end
		if barline < e {
			e = barline
		}
		segs = append(segs, segment{start: s, end: e, keys: keys})
		s = e
	}
	if len(keys) > 0 && len(segs) > 1 {
		for i := range segs {
			segs[i].tieStop = i > 0
			segs[i].tieStart = i < len(segs)-1
		}
	}
	return segs
}

// render emits the note elements of one segment
func (s segment) render(divisions int) []Note {
	duration := int(s.end - s.start)
	typ, dots := noteType(duration, divisions)

	if len(s.keys) == 0 {
		return []Note{{Rest: &Empty{}, Duration: duration, Voice: VoiceNumber, Type: typ, Dots: make([]Empty, dots)}}
	}

	notes := make([]Note, 0, len(s.keys))
	for i, key := range s.keys {
		n := Note{
			Pitch:    pitchOf(key),
			Duration: duration,
			Voice:    VoiceNumber,
			Type:     typ,
			Dots:     make([]Empty, dots),
		}
		if i > 0 {
			n.Chord = &Empty{}
		}
		var ties []Tie
		if s.tieStop {
			ties = append(ties, Tie{Type: "stop"})
		}
		if s.tieStart {
			ties = append(ties, Tie{Type: "start"})
		}
		if len(ties) > 0 {
			n.Ties = ties
			n.Notations = &Notations{Tied: ties}
		}
		notes = append(notes, n)
	}
	return notes
}

// clefFor picks a bass clef for low parts
func clefFor(notes []midiNote) Clef {
	if len(notes) == 0 {
		return Clef{Sign: "G", Line: 2}
	}
	var sum int
	for _, n := range notes {
		sum += int(n.key)
	}
	if sum/len(notes) < BassClefThreshold {
		return Clef{Sign: "F", Line: 4}
	}
	return Clef{Sign: "G", Line: 2}
}
