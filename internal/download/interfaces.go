package download

import (
	"context"
)

// Request describes one downloader invocation
type Request struct {
	URL       string
	Format    string // downloader format: midi, mp3, pdf
	OutputDir string
}

// Downloader defines the interface for the download service.
type Downloader interface {
	// Download blocks until the subprocess exits.
	Download(ctx context.Context, req Request) error

	// CommandLine returns the full argv that Download would execute.
	CommandLine(req Request) []string
}

// CommandRunner executes a program and returns its captured output.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}
