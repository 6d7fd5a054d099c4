package download

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"
)

type fakeRunner struct {
	calls  [][]string
	stderr string
	err    error
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	return nil, []byte(f.stderr), f.err
}

func TestNewService_DefaultCommand(t *testing.T) {
	service := NewService("", nil)

	expected := []string{"npx", "dl-librescore@latest"}
	if len(service.command) != len(expected) {
		t.Fatalf("Expected command %v, got %v", expected, service.command)
	}
	for i := range expected {
		if service.command[i] != expected[i] {
			t.Errorf("Command part %d: expected %s, got %s", i, expected[i], service.command[i])
		}
	}
}

func TestCommandLine(t *testing.T) {
	service := NewService("npx dl-librescore@latest", nil)
	req := Request{URL: "https://musescore.com/user/1/scores/42", Format: "midi", OutputDir: "/tmp/out"}

	expectedArgs := []string{
		"npx", "dl-librescore@latest",
		"-i", "https://musescore.com/user/1/scores/42",
		"-t", "midi",
		"-o", "/tmp/out",
	}

	args := service.CommandLine(req)
	if len(args) != len(expectedArgs) {
		t.Fatalf("Expected %d args, got %d", len(expectedArgs), len(args))
	}
	for i, expected := range expectedArgs {
		if args[i] != expected {
			t.Errorf("Arg %d: expected %s, got %s", i, expected, args[i])
		}
	}
}

func TestDownload_Success(t *testing.T) {
	runner := &fakeRunner{}
	service := NewService("dl", nil)
	service.SetRunner(runner)

	err := service.Download(context.Background(), Request{URL: "u", Format: "pdf", OutputDir: "d"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(runner.calls) != 1 {
		t.Fatalf("Expected exactly one invocation, got %d", len(runner.calls))
	}
	if got := strings.Join(runner.calls[0], " "); got != "dl -i u -t pdf -o d" {
		t.Errorf("Unexpected invocation: %s", got)
	}
}

func TestDownload_FailureCarriesStderr(t *testing.T) {
	runner := &fakeRunner{stderr: "  score not found\n", err: errors.New("exit status 1")}
	service := NewService("dl", nil)
	service.SetRunner(runner)

	err := service.Download(context.Background(), Request{URL: "u", Format: "midi", OutputDir: "d"})
	if err == nil {
		t.Fatal("Expected error, got nil")
	}

	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("Expected *CommandError, got %T", err)
	}
	if cmdErr.Stderr != "score not found" {
		t.Errorf("Expected trimmed stderr, got %q", cmdErr.Stderr)
	}
	if !strings.Contains(err.Error(), "score not found") {
		t.Errorf("Expected error message to include stderr, got %v", err)
	}
	if len(runner.calls) != 1 {
		t.Errorf("Expected a single attempt, got %d", len(runner.calls))
	}
}

func TestDownload_ExecutableMissing(t *testing.T) {
	service := NewService("definitely-not-a-real-downloader-binary", nil)

	err := service.Download(context.Background(), Request{URL: "u", Format: "midi", OutputDir: t.TempDir()})
	if !errors.Is(err, ErrDownloaderNotFound) {
		t.Fatalf("Expected ErrDownloaderNotFound, got %v", err)
	}
}

func TestExecRunner_ExitCode(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	_, stderr, err := ExecRunner{}.Run(context.Background(), "sh", "-c", "echo boom >&2; exit 3")
	if err == nil {
		t.Fatal("Expected error from non-zero exit, got nil")
	}
	if code := exitCode(err); code != 3 {
		t.Errorf("Expected exit code 3, got %d", code)
	}
	if strings.TrimSpace(string(stderr)) != "boom" {
		t.Errorf("Expected stderr 'boom', got %q", stderr)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdef", 3); got != "abc..." {
		t.Errorf("truncate = %q, expected abc...", got)
	}
	if got := truncate("ab", 3); got != "ab" {
		t.Errorf("truncate = %q, expected ab", got)
	}
}
