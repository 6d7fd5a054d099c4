package workflow

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_IsMatchesKind(t *testing.T) {
	err := newError(KindDownloadError, MsgDownloadFailed, errors.New("exit status 1"))
	wrapped := fmt.Errorf("run: %w", err)

	if !errors.Is(wrapped, ErrDownload) {
		t.Error("Expected wrapped error to match ErrDownload")
	}
	if errors.Is(wrapped, ErrNotFound) {
		t.Error("Download error must not match ErrNotFound")
	}
	if KindOf(wrapped) != KindDownloadError {
		t.Errorf("Expected KindDownloadError, got %s", KindOf(wrapped))
	}
	if KindOf(errors.New("plain")) != 0 {
		t.Error("Expected zero kind for a plain error")
	}
}

func TestError_Message(t *testing.T) {
	tests := []struct {
		err      *Error
		expected string
	}{
		{newError(KindNotFound, MsgFileNotFound, nil), MsgFileNotFound},
		{newError(KindIOError, MsgCreateDirFailed, errors.New("permission denied")), MsgCreateDirFailed + ": permission denied"},
		{&Error{Kind: KindConversionError, Detail: "bad file"}, "bad file"},
	}

	for _, test := range tests {
		if got := test.err.Message(); got != test.expected {
			t.Errorf("Message() = %q, expected %q", got, test.expected)
		}
	}

	if got := newError(KindNotFound, "gone", nil).Error(); got != "NotFoundError: gone" {
		t.Errorf("Unexpected Error() text: %q", got)
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := newError(KindConversionError, MsgConversionFailed, cause)
	if !errors.Is(err, cause) {
		t.Error("Expected error to unwrap to its cause")
	}
}
