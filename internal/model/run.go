package model

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
)

// RunIDPrefix prefixes every ConversionRun ID
const RunIDPrefix = "run-"

// ConversionRequest is built from user input and not modified once a run starts
type ConversionRequest struct {
	URL       string
	Format    OutputFormat
	OutputDir string
}

// DownloadResult describes the file located after the downloader finished
type DownloadResult struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// HumanSize returns the file size formatted for display (e.g. "12 kB")
func (r DownloadResult) HumanSize() string {
	return humanize.Bytes(uint64(r.Size))
}

// ConversionRun tracks a single pass through the workflow
type ConversionRun struct {
	ID         string
	Request    ConversionRequest
	Status     WorkflowStatus
	Message    string          // last status line shown to the user
	LastError  string          // failure reason if Status is Failed
	Download   *DownloadResult // set once the downloaded file is located
	OutputPath string          // final result
	StartedAt  time.Time
	FinishedAt time.Time
}

// NewConversionRun creates an idle run for req
func NewConversionRun(req ConversionRequest) *ConversionRun {
	return &ConversionRun{
		ID:        generateRunID(),
		Request:   req,
		Status:    WorkflowStatusIdle,
		StartedAt: time.Now(),
	}
}

// Duration returns how long the run took, or has taken so far
func (r *ConversionRun) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return time.Since(r.StartedAt)
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// GetDisplayTitle returns the output file name, or the URL before one is known
func (r *ConversionRun) GetDisplayTitle() string {
	if r.OutputPath != "" {
		name := filepath.Base(r.OutputPath)
		return strings.TrimSuffix(name, filepath.Ext(name))
	}
	return r.Request.URL
}

// generateRunID uses UUID v7 so IDs sort by creation time
func generateRunID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf(RunIDPrefix+"%d", time.Now().UnixNano())
	}
	return RunIDPrefix + id.String()
}
