package workflow

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ytget/score-downloader/internal/model"
)

// DefaultRecencyWindow bounds how old a file found by directory scan may be
const DefaultRecencyWindow = 60 * time.Second

// Tier identifies which discovery step resolved the file
type Tier int

const (
	TierNone Tier = iota
	TierExpected
	TierRecent
	TierManual
)

// String returns the string representation of Tier
func (t Tier) String() string {
	switch t {
	case TierExpected:
		return "expected"
	case TierRecent:
		return "recent"
	case TierManual:
		return "manual"
	default:
		return "none"
	}
}

// FilePicker asks the operator to choose the downloaded file. It blocks
// until a choice is made; an empty path means the prompt was dismissed.
type FilePicker interface {
	PickFile(ctx context.Context, dir, ext string) (string, error)
}

// PickerFunc adapts a function to FilePicker
type PickerFunc func(ctx context.Context, dir, ext string) (string, error)

// PickFile calls f
func (f PickerFunc) PickFile(ctx context.Context, dir, ext string) (string, error) {
	return f(ctx, dir, ext)
}

// Locator finds the file the downloader wrote
type Locator struct {
	Window  time.Duration
	Picker  FilePicker // nil disables the manual tier
	Now     func() time.Time
	Stat    func(name string) (os.FileInfo, error)
	ReadDir func(name string) ([]os.DirEntry, error)

	// OnManual is called before the picker is shown
	OnManual func()
}

// NewLocator creates a locator backed by the real filesystem
func NewLocator(window time.Duration, picker FilePicker) *Locator {
	if window <= 0 {
		window = DefaultRecencyWindow
	}
	return &Locator{
		Window:  window,
		Picker:  picker,
		Now:     time.Now,
		Stat:    os.Stat,
		ReadDir: os.ReadDir,
	}
}

// Locate tries the expected path, then the newest recent file with ext in
// dir, then the picker.
func (l *Locator) Locate(ctx context.Context, dir, expectedPath, ext string) (*model.DownloadResult, Tier, error) {
	if info, err := l.Stat(expectedPath); err == nil && info.Mode().IsRegular() {
		return resultOf(expectedPath, info), TierExpected, nil
	}

	recent, err := l.newest(dir, ext)
	if err != nil {
		return nil, TierNone, err
	}
	if recent != nil {
		return recent, TierRecent, nil
	}

	if l.Picker == nil {
		return nil, TierNone, nil
	}
	if l.OnManual != nil {
		l.OnManual()
	}
	picked, err := l.Picker.PickFile(ctx, dir, ext)
	if err != nil {
		return nil, TierNone, err
	}
	if picked == "" {
		return nil, TierNone, nil
	}
	info, err := l.Stat(picked)
	if err != nil {
		return nil, TierNone, err
	}
	if info.IsDir() {
		return nil, TierNone, errors.New(picked + " is a directory")
	}
	return resultOf(picked, info), TierManual, nil
}

// newest returns the most recently modified file in dir ending in ext and
// modified inside the recency window, or nil.
func (l *Locator) newest(dir, ext string) (*model.DownloadResult, error) {
	entries, err := l.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	cutoff := l.Now().Add(-l.Window)
	var best *model.DownloadResult
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ext) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		mod := info.ModTime()
		if !mod.After(cutoff) {
			continue
		}
		if best == nil || mod.After(best.ModTime) {
			best = resultOf(filepath.Join(dir, entry.Name()), info)
		}
	}
	return best, nil
}

func resultOf(path string, info os.FileInfo) *model.DownloadResult {
	return &model.DownloadResult{Path: path, Size: info.Size(), ModTime: info.ModTime()}
}
