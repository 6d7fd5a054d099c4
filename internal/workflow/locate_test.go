package workflow

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, path string, modTime time.Time) {
	t.Helper()
	if err := os.WriteFile(path, []byte("MThd"), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	if err := os.Chtimes(path, modTime, modTime); err != nil {
		t.Fatalf("Failed to set times on %s: %v", path, err)
	}
}

func TestLocate_ExpectedPathSkipsScan(t *testing.T) {
	dir := t.TempDir()
	expected := filepath.Join(dir, "My_Song.mid")
	writeFile(t, expected, time.Now())

	locator := NewLocator(DefaultRecencyWindow, nil)
	locator.ReadDir = func(string) ([]os.DirEntry, error) {
		t.Fatal("Directory must not be scanned when the expected file exists")
		return nil, nil
	}

	result, tier, err := locator.Locate(context.Background(), dir, expected, ".mid")
	if err != nil {
		t.Fatalf("Locate returned error: %v", err)
	}
	if tier != TierExpected {
		t.Errorf("Expected tier %s, got %s", TierExpected, tier)
	}
	if result.Path != expected || result.Size != 4 {
		t.Errorf("Unexpected result: %+v", result)
	}
}

func TestLocate_NewestRecentFile(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()

	writeFile(t, filepath.Join(dir, "old.mid"), now.Add(-2*time.Minute))
	writeFile(t, filepath.Join(dir, "recent.mid"), now.Add(-30*time.Second))
	writeFile(t, filepath.Join(dir, "newest.mid"), now.Add(-5*time.Second))
	writeFile(t, filepath.Join(dir, "other.pdf"), now)
	if err := os.Mkdir(filepath.Join(dir, "folder.mid"), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	locator := NewLocator(DefaultRecencyWindow, nil)
	locator.Now = func() time.Time { return now }

	result, tier, err := locator.Locate(context.Background(), dir, filepath.Join(dir, "missing.mid"), ".mid")
	if err != nil {
		t.Fatalf("Locate returned error: %v", err)
	}
	if tier != TierRecent {
		t.Fatalf("Expected tier %s, got %s", TierRecent, tier)
	}
	if filepath.Base(result.Path) != "newest.mid" {
		t.Errorf("Expected newest.mid, got %s", result.Path)
	}
}

func TestLocate_IgnoresFilesOutsideWindow(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	writeFile(t, filepath.Join(dir, "stale.mid"), now.Add(-61*time.Second))

	locator := NewLocator(DefaultRecencyWindow, nil)
	locator.Now = func() time.Time { return now }

	result, tier, err := locator.Locate(context.Background(), dir, filepath.Join(dir, "missing.mid"), ".mid")
	if err != nil {
		t.Fatalf("Locate returned error: %v", err)
	}
	if result != nil || tier != TierNone {
		t.Errorf("Expected no result without a picker, got %+v (%s)", result, tier)
	}
}

func TestLocate_ManualSelectionBlocks(t *testing.T) {
	dir := t.TempDir()
	picked := filepath.Join(t.TempDir(), "chosen.mid")
	writeFile(t, picked, time.Now().Add(-time.Hour))

	handoff := NewHandoff()
	asked := make(chan string, 1)
	picker := PickerFunc(func(ctx context.Context, d, ext string) (string, error) {
		asked <- d + "|" + ext
		return handoff.Await(ctx)
	})

	manualCalled := false
	locator := NewLocator(DefaultRecencyWindow, picker)
	locator.OnManual = func() { manualCalled = true }

	type outcome struct {
		path string
		tier Tier
		err  error
	}
	done := make(chan outcome, 1)
	go func() {
		result, tier, err := locator.Locate(context.Background(), dir, filepath.Join(dir, "x.mid"), ".mid")
		o := outcome{tier: tier, err: err}
		if result != nil {
			o.path = result.Path
		}
		done <- o
	}()

	if got := <-asked; got != dir+"|.mid" {
		t.Errorf("Picker asked with %q", got)
	}

	select {
	case <-done:
		t.Fatal("Locate returned before a file was selected")
	case <-time.After(20 * time.Millisecond):
	}

	handoff.Deliver(picked)
	o := <-done

	if o.err != nil {
		t.Fatalf("Locate returned error: %v", o.err)
	}
	if o.tier != TierManual || o.path != picked {
		t.Errorf("Expected manual pick of %s, got %s (%s)", picked, o.path, o.tier)
	}
	if !manualCalled {
		t.Error("Expected OnManual to be called before the picker")
	}
}

func TestLocate_ManualSelectionCancelled(t *testing.T) {
	dir := t.TempDir()
	picker := PickerFunc(func(context.Context, string, string) (string, error) {
		return "", nil
	})

	result, tier, err := NewLocator(0, picker).Locate(context.Background(), dir, filepath.Join(dir, "x.mid"), ".mid")
	if err != nil {
		t.Fatalf("Locate returned error: %v", err)
	}
	if result != nil || tier != TierNone {
		t.Errorf("Expected no result after cancel, got %+v (%s)", result, tier)
	}
}

func TestLocate_MissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "gone")

	result, _, err := NewLocator(0, nil).Locate(context.Background(), dir, filepath.Join(dir, "x.mid"), ".mid")
	if err != nil || result != nil {
		t.Errorf("Expected nil result and error, got %+v, %v", result, err)
	}
}
