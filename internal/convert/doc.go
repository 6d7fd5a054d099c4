package convert

// Package convert converts Standard MIDI Files into MusicXML partwise scores.
//
// Each MIDI track with note events becomes one part. Notes that start on the
// same tick form a chord; a chord lasts until its longest note ends or the next
// onset begins, whichever comes first, and gaps become rests. Notes crossing a
// barline are split and tied. Divisions equal the file's ticks per quarter note,
// so durations are exact.
