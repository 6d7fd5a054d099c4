package model

import "fmt"

// OutputFormat is the format the user asks the workflow to produce
type OutputFormat string

const (
	FormatMusicXML OutputFormat = "musicxml"
	FormatMIDI     OutputFormat = "midi"
	FormatAudio    OutputFormat = "mp3"
	FormatPDF      OutputFormat = "pdf"
)

// Downloader format identifiers (the -t flag)
const (
	DownloadFormatMIDI = "midi"
	DownloadFormatMP3  = "mp3"
	DownloadFormatPDF  = "pdf"
)

// Extensions of files written by the workflow
const (
	ExtMIDI     = ".mid"
	ExtMusicXML = ".xml"
)

// AllFormats lists the selectable formats in display order
func AllFormats() []OutputFormat {
	return []OutputFormat{FormatMusicXML, FormatMIDI, FormatAudio, FormatPDF}
}

// ParseOutputFormat converts a stored or user-supplied value into an OutputFormat
func ParseOutputFormat(s string) (OutputFormat, error) {
	for _, f := range AllFormats() {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format: %q", s)
}

// Label returns the human-facing name of the format
func (f OutputFormat) Label() string {
	switch f {
	case FormatMusicXML:
		return "MusicXML"
	case FormatMIDI:
		return "MIDI"
	case FormatAudio:
		return "MP3"
	case FormatPDF:
		return "PDF"
	default:
		return string(f)
	}
}

// NeedsConversion reports whether the format is produced by converting an
// intermediate download rather than downloaded directly.
func (f OutputFormat) NeedsConversion() bool {
	return f == FormatMusicXML
}

// DownloadFormat returns the format passed to the downloader. MusicXML is
// produced from a MIDI download.
func (f OutputFormat) DownloadFormat() string {
	switch f {
	case FormatMusicXML, FormatMIDI:
		return DownloadFormatMIDI
	case FormatPDF:
		return DownloadFormatPDF
	default:
		return DownloadFormatMP3
	}
}

// DownloadExtension returns the extension of the file the downloader writes
func (f OutputFormat) DownloadExtension() string {
	if f.DownloadFormat() == DownloadFormatMIDI {
		return ExtMIDI
	}
	return "." + f.DownloadFormat()
}
