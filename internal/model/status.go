package model

// WorkflowStatus represents the state of a conversion run
type WorkflowStatus string

const (
	// WorkflowStatusIdle means no run has started yet
	WorkflowStatusIdle WorkflowStatus = "Idle"

	// WorkflowStatusDownloading means the downloader subprocess is running
	WorkflowStatusDownloading WorkflowStatus = "Downloading"

	// WorkflowStatusLocating means the downloaded file is being looked up on disk
	WorkflowStatusLocating WorkflowStatus = "Locating"

	// WorkflowStatusConverting means the located file is being converted
	WorkflowStatusConverting WorkflowStatus = "Converting"

	// WorkflowStatusSucceeded means the run produced a file
	WorkflowStatusSucceeded WorkflowStatus = "Succeeded"

	// WorkflowStatusFailed means the run stopped with an error
	WorkflowStatusFailed WorkflowStatus = "Failed"
)

// statusOrder fixes the linear progression; terminal states share the last rank.
var statusOrder = map[WorkflowStatus]int{
	WorkflowStatusIdle:        0,
	WorkflowStatusDownloading: 1,
	WorkflowStatusLocating:    2,
	WorkflowStatusConverting:  3,
	WorkflowStatusSucceeded:   4,
	WorkflowStatusFailed:      4,
}

// String returns the string representation of WorkflowStatus
func (ws WorkflowStatus) String() string {
	return string(ws)
}

// IsActive returns true while a run is in progress
func (ws WorkflowStatus) IsActive() bool {
	return ws == WorkflowStatusDownloading || ws == WorkflowStatusLocating || ws == WorkflowStatusConverting
}

// IsFinished returns true for the terminal states
func (ws WorkflowStatus) IsFinished() bool {
	return ws == WorkflowStatusSucceeded || ws == WorkflowStatusFailed
}

// CanTransitionTo reports whether next is a legal successor. Runs only move
// forward; steps may be skipped (e.g. no conversion) and any active state may fail.
func (ws WorkflowStatus) CanTransitionTo(next WorkflowStatus) bool {
	if ws.IsFinished() {
		return false
	}
	from, ok := statusOrder[ws]
	if !ok {
		return false
	}
	to, ok := statusOrder[next]
	if !ok {
		return false
	}
	if next == WorkflowStatusFailed {
		return true
	}
	return to > from
}
