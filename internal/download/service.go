package download

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Downloader invocation constants
const (
	DefaultCommand = "npx dl-librescore@latest"

	FlagInput  = "-i"
	FlagType   = "-t"
	FlagOutput = "-o"

	// Cap on stderr carried into error messages
	MaxStderrLength = 2000
)

// ErrDownloaderNotFound is returned when the downloader executable is not on PATH
var ErrDownloaderNotFound = errors.New("downloader executable not found")

// CommandError reports a downloader run that exited unsuccessfully
type CommandError struct {
	ExitCode int
	Stderr   string
	Err      error
}

func (e *CommandError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("download failed (exit code %d): %s", e.ExitCode, e.Stderr)
	}
	return fmt.Sprintf("download failed (exit code %d): %v", e.ExitCode, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// ExecRunner runs commands with os/exec
type ExecRunner struct{}

// Run executes name with args and captures stdout and stderr separately
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// Service runs the external downloader
type Service struct {
	command []string
	runner  CommandRunner
	logger  *zap.Logger
}

// NewService creates a download service. command is split on whitespace; an
// empty command falls back to DefaultCommand.
func NewService(command string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	fields := strings.Fields(command)
	if len(fields) == 0 {
		fields = strings.Fields(DefaultCommand)
	}
	return &Service{
		command: fields,
		runner:  ExecRunner{},
		logger:  logger,
	}
}

// SetRunner replaces the command runner
func (s *Service) SetRunner(runner CommandRunner) {
	s.runner = runner
}

// BuildArgs builds the downloader arguments that follow the command prefix
func (s *Service) BuildArgs(req Request) []string {
	return []string{
		FlagInput, req.URL,
		FlagType, req.Format,
		FlagOutput, req.OutputDir,
	}
}

// CommandLine returns the full argv for req
func (s *Service) CommandLine(req Request) []string {
	argv := make([]string, 0, len(s.command)+6)
	argv = append(argv, s.command...)
	return append(argv, s.BuildArgs(req)...)
}

// Download runs the downloader once. There is no retry.
func (s *Service) Download(ctx context.Context, req Request) error {
	argv := s.CommandLine(req)
	s.logger.Info("running downloader",
		zap.Strings("argv", argv),
		zap.String("format", req.Format),
		zap.String("output_dir", req.OutputDir))

	start := time.Now()
	stdout, stderr, err := s.runner.Run(ctx, argv[0], argv[1:]...)
	elapsed := time.Since(start)

	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrDownloaderNotFound, argv[0])
		}
		cmdErr := &CommandError{
			ExitCode: exitCode(err),
			Stderr:   truncate(strings.TrimSpace(string(stderr)), MaxStderrLength),
			Err:      err,
		}
		s.logger.Warn("downloader failed",
			zap.Int("exit_code", cmdErr.ExitCode),
			zap.Duration("elapsed", elapsed),
			zap.String("stderr", cmdErr.Stderr))
		return cmdErr
	}

	s.logger.Debug("downloader finished",
		zap.Duration("elapsed", elapsed),
		zap.Int("stdout_bytes", len(stdout)))
	return nil
}

// exitCode extracts the process exit status, -1 if the process never ran
func exitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
