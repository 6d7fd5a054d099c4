// Package workflow runs the download, locate and convert sequence for a
// single score.
//
// A run moves linearly through Idle, Downloading, Locating, Converting and
// ends in Succeeded or Failed. Failures are reported as *Error values whose
// Kind tells the caller which step gave up. The workflow never touches the
// interface directly: status changes go through a callback and the manual
// file selection goes through a FilePicker.
package workflow
