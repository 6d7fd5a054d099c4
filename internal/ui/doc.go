package ui

// Package ui contains the Fyne-based desktop front-end. It reads the form,
// runs the conversion workflow on a background goroutine and reports status,
// errors and the manual file prompt back on the UI thread. All UI strings are
// localized via Localization.
