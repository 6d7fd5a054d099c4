package workflow

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ytget/score-downloader/internal/convert"
	"github.com/ytget/score-downloader/internal/download"
	"github.com/ytget/score-downloader/internal/model"
	"github.com/ytget/score-downloader/internal/platform"
)

// DefaultSettleDelay is the pause between the downloader exiting and discovery
const DefaultSettleDelay = time.Second

// Failure reasons
const (
	MsgCreateDirFailed  = "Could not create output folder"
	MsgDownloadFailed   = "Download failed"
	MsgFileNotFound     = "Could not find the downloaded file. Please check the output folder manually."
	MsgConversionFailed = "Conversion failed"
	MsgSelectManually   = "Could not find downloaded file automatically. Please select it manually."
)

// StatusFunc receives every status change of a run. It is called on the
// workflow goroutine.
type StatusFunc func(status model.WorkflowStatus, message string)

// Config wires the workflow to its collaborators
type Config struct {
	Downloader download.Downloader
	Converter  convert.Converter // nil: the located file is the result
	Picker     FilePicker
	Logger     *zap.Logger
	OnStatus   StatusFunc

	RecencyWindow time.Duration
	SettleDelay   time.Duration

	// Test hooks; nil uses the real clock and filesystem
	Now     func() time.Time
	Locator *Locator
}

// Workflow runs one conversion at a time
type Workflow struct {
	cfg     Config
	logger  *zap.Logger
	locator *Locator
	now     func() time.Time
}

// New creates a workflow
func New(cfg Config) *Workflow {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	locator := cfg.Locator
	if locator == nil {
		locator = NewLocator(cfg.RecencyWindow, cfg.Picker)
		locator.Now = now
	}
	return &Workflow{cfg: cfg, logger: logger, locator: locator, now: now}
}

// Run executes req to completion. The returned run is always non-nil and
// ends in Succeeded or Failed; on failure the error is a *Error.
func (w *Workflow) Run(ctx context.Context, req model.ConversionRequest) (*model.ConversionRun, error) {
	run := model.NewConversionRun(req)
	run.StartedAt = w.now()
	log := w.logger.With(zap.String("run_id", run.ID), zap.String("url", req.URL))

	if err := ValidateURL(req.URL); err != nil {
		return w.fail(run, log, err)
	}
	if _, err := model.ParseOutputFormat(string(req.Format)); err != nil {
		return w.fail(run, log, newError(KindInvalidInput, MsgUnknownFormat, err))
	}
	if err := platform.CreateDirectoryIfNotExists(req.OutputDir); err != nil {
		return w.fail(run, log, newError(KindIOError, MsgCreateDirFailed, err))
	}

	dlFormat := req.Format.DownloadFormat()
	ext := req.Format.DownloadExtension()
	baseName := DeriveBaseName(req.URL, w.now())
	expected := filepath.Join(req.OutputDir, baseName+ext)

	w.setStatus(run, model.WorkflowStatusDownloading,
		fmt.Sprintf("Downloading %s from MuseScore...", strings.ToUpper(dlFormat)))

	err := w.cfg.Downloader.Download(ctx, download.Request{
		URL:       strings.TrimSpace(req.URL),
		Format:    dlFormat,
		OutputDir: req.OutputDir,
	})
	if err != nil {
		return w.fail(run, log, downloadError(err))
	}

	w.setStatus(run, model.WorkflowStatusLocating, "Looking for downloaded file...")
	if err := w.settle(ctx); err != nil {
		return w.fail(run, log, newError(KindNotFound, MsgFileNotFound, err))
	}

	locator := *w.locator
	if locator.OnManual == nil {
		locator.OnManual = func() {
			run.Message = MsgSelectManually
			w.notify(run.Status, run.Message)
		}
	}
	found, tier, err := locator.Locate(ctx, req.OutputDir, expected, ext)
	if err != nil {
		return w.fail(run, log, newError(KindNotFound, MsgFileNotFound, err))
	}
	if found == nil {
		return w.fail(run, log, newError(KindNotFound, MsgFileNotFound, nil))
	}
	run.Download = found
	log.Info("located downloaded file",
		zap.String("path", found.Path),
		zap.Stringer("tier", tier),
		zap.String("size", found.HumanSize()))

	if req.Format.NeedsConversion() && w.cfg.Converter != nil {
		w.setStatus(run, model.WorkflowStatusConverting, "Converting MIDI to MusicXML...")
		out := convert.OutputPath(found.Path, req.OutputDir)
		if err := w.cfg.Converter.Convert(ctx, found.Path, out); err != nil {
			return w.fail(run, log, newError(KindConversionError, MsgConversionFailed, err))
		}
		run.OutputPath = out
		w.finish(run, fmt.Sprintf("Conversion complete! File saved to: %s", out))
	} else {
		run.OutputPath = found.Path
		w.finish(run, fmt.Sprintf("Download complete! File saved to: %s", found.Path))
	}

	log.Info("run succeeded",
		zap.String("title", run.GetDisplayTitle()),
		zap.String("output", run.OutputPath),
		zap.Duration("duration", run.Duration()))
	return run, nil
}

// settle waits for the filesystem to catch up with the downloader
func (w *Workflow) settle(ctx context.Context) error {
	if w.cfg.SettleDelay <= 0 {
		return nil
	}
	timer := time.NewTimer(w.cfg.SettleDelay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *Workflow) setStatus(run *model.ConversionRun, status model.WorkflowStatus, message string) {
	if !run.Status.CanTransitionTo(status) {
		w.logger.Warn("ignoring illegal status transition",
			zap.Stringer("from", run.Status),
			zap.Stringer("to", status))
		return
	}
	run.Status = status
	run.Message = message
	w.notify(status, message)
}

func (w *Workflow) notify(status model.WorkflowStatus, message string) {
	if w.cfg.OnStatus != nil {
		w.cfg.OnStatus(status, message)
	}
}

func (w *Workflow) finish(run *model.ConversionRun, message string) {
	w.setStatus(run, model.WorkflowStatusSucceeded, message)
	run.FinishedAt = w.now()
}

func (w *Workflow) fail(run *model.ConversionRun, log *zap.Logger, err error) (*model.ConversionRun, error) {
	var werr *Error
	if !errors.As(err, &werr) {
		werr = newError(KindIOError, "", err)
	}
	run.LastError = werr.Message()
	w.setStatus(run, model.WorkflowStatusFailed, "Error: "+werr.Message())
	run.FinishedAt = w.now()
	log.Warn("run failed",
		zap.Stringer("kind", werr.Kind),
		zap.String("reason", werr.Message()))
	return run, werr
}

// downloadError prefers the downloader's own stderr as the detail
func downloadError(err error) *Error {
	e := newError(KindDownloadError, MsgDownloadFailed, err)
	var cmdErr *download.CommandError
	if errors.As(err, &cmdErr) && cmdErr.Stderr != "" {
		e.Detail = cmdErr.Stderr
	}
	return e
}
