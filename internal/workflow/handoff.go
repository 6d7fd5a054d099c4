package workflow

import (
	"context"
)

// Handoff is a single-slot cell the interface thread fills once and the
// workflow goroutine waits on.
type Handoff struct {
	ch chan string
}

// NewHandoff creates an empty handoff
func NewHandoff() *Handoff {
	return &Handoff{ch: make(chan string, 1)}
}

// Deliver stores value. Only the first delivery is kept; later calls report false.
func (h *Handoff) Deliver(value string) bool {
	select {
	case h.ch <- value:
		return true
	default:
		return false
	}
}

// Await blocks until a value is delivered or ctx is done
func (h *Handoff) Await(ctx context.Context) (string, error) {
	select {
	case v := <-h.ch:
		return v, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
