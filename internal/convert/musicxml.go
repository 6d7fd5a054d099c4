package convert

import (
	"encoding/xml"
	"fmt"
	"io"
)

// MusicXML document constants
const (
	MusicXMLVersion = "4.0"
	MusicXMLDoctype = `<!DOCTYPE score-partwise PUBLIC "-//Recordare//DTD MusicXML 4.0 Partwise//EN" "http://www.musicxml.org/dtds/partwise.dtd">`
	SoftwareName    = "score-downloader"
)

// ScorePartwise is the root of a partwise MusicXML document
type ScorePartwise struct {
	XMLName        xml.Name        `xml:"score-partwise"`
	Version        string          `xml:"version,attr"`
	Work           *Work           `xml:"work,omitempty"`
	Identification *Identification `xml:"identification,omitempty"`
	PartList       PartList        `xml:"part-list"`
	Parts          []Part          `xml:"part"`
}

type Work struct {
	Title string `xml:"work-title"`
}

type Identification struct {
	Encoding Encoding `xml:"encoding"`
}

type Encoding struct {
	Software string `xml:"software"`
}

type PartList struct {
	ScoreParts []ScorePart `xml:"score-part"`
}

type ScorePart struct {
	ID   string `xml:"id,attr"`
	Name string `xml:"part-name"`
}

type Part struct {
	ID       string    `xml:"id,attr"`
	Measures []Measure `xml:"measure"`
}

type Measure struct {
	Number     int         `xml:"number,attr"`
	Attributes *Attributes `xml:"attributes,omitempty"`
	Direction  *Direction  `xml:"direction,omitempty"`
	Notes      []Note      `xml:"note"`
}

type Attributes struct {
	Divisions int  `xml:"divisions"`
	Key       Key  `xml:"key"`
	Time      Time `xml:"time"`
	Clef      Clef `xml:"clef"`
}

type Key struct {
	Fifths int `xml:"fifths"`
}

type Time struct {
	Beats    int `xml:"beats"`
	BeatType int `xml:"beat-type"`
}

type Clef struct {
	Sign string `xml:"sign"`
	Line int    `xml:"line"`
}

type Direction struct {
	Placement     string        `xml:"placement,attr"`
	DirectionType DirectionType `xml:"direction-type"`
	Sound         Sound         `xml:"sound"`
}

type DirectionType struct {
	Metronome Metronome `xml:"metronome"`
}

type Metronome struct {
	BeatUnit  string `xml:"beat-unit"`
	PerMinute string `xml:"per-minute"`
}

type Sound struct {
	Tempo string `xml:"tempo,attr"`
}

// Note element children follow the order the schema requires
type Note struct {
	Chord     *Empty     `xml:"chord,omitempty"`
	Pitch     *Pitch     `xml:"pitch,omitempty"`
	Rest      *Empty     `xml:"rest,omitempty"`
	Duration  int        `xml:"duration"`
	Ties      []Tie      `xml:"tie,omitempty"`
	Voice     string     `xml:"voice"`
	Type      string     `xml:"type,omitempty"`
	Dots      []Empty    `xml:"dot,omitempty"`
	Notations *Notations `xml:"notations,omitempty"`
}

type Empty struct{}

type Pitch struct {
	Step   string `xml:"step"`
	Alter  int    `xml:"alter,omitempty"`
	Octave int    `xml:"octave"`
}

type Tie struct {
	Type string `xml:"type,attr"`
}

type Notations struct {
	Tied []Tie `xml:"tied"`
}

// Encode writes score as an indented MusicXML document
func Encode(w io.Writer, score *ScorePartwise) error {
	if _, err := io.WriteString(w, xml.Header+MusicXMLDoctype+"\n"); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(score); err != nil {
		return fmt.Errorf("failed to encode score: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to flush score: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}
