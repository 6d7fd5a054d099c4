package workflow

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestHandoff_DeliverThenAwait(t *testing.T) {
	h := NewHandoff()

	go func() {
		time.Sleep(10 * time.Millisecond)
		h.Deliver("/tmp/song.mid")
	}()

	got, err := h.Await(context.Background())
	if err != nil {
		t.Fatalf("Await returned error: %v", err)
	}
	if got != "/tmp/song.mid" {
		t.Errorf("Expected /tmp/song.mid, got %s", got)
	}
}

func TestHandoff_SingleSlot(t *testing.T) {
	h := NewHandoff()

	if !h.Deliver("first") {
		t.Fatal("First delivery should succeed")
	}
	if h.Deliver("second") {
		t.Error("Second delivery should be rejected")
	}

	got, _ := h.Await(context.Background())
	if got != "first" {
		t.Errorf("Expected first value to win, got %s", got)
	}
}

func TestHandoff_AwaitCancelled(t *testing.T) {
	h := NewHandoff()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := h.Await(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected DeadlineExceeded, got %v", err)
	}
}
