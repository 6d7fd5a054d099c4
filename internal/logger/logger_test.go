package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zapcore.Level
		wantErr  bool
	}{
		{"debug", zapcore.DebugLevel, false},
		{"info", zapcore.InfoLevel, false},
		{"", zapcore.InfoLevel, false},
		{"warn", zapcore.WarnLevel, false},
		{"error", zapcore.ErrorLevel, false},
		{"verbose", zapcore.InfoLevel, true},
	}

	for _, test := range tests {
		level, err := ParseLevel(test.input)
		if (err != nil) != test.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", test.input, err, test.wantErr)
		}
		if level != test.expected {
			t.Errorf("ParseLevel(%q) = %s, expected %s", test.input, level, test.expected)
		}
	}
}

func TestInit(t *testing.T) {
	if GetZapLogger() == nil {
		t.Fatal("GetZapLogger must never return nil")
	}

	for _, format := range []string{FormatConsole, FormatJSON} {
		if err := Init("debug", format); err != nil {
			t.Fatalf("Init(%s) returned error: %v", format, err)
		}
		if logger == nil {
			t.Fatal("Expected global logger to be set")
		}
		if !GetZapLogger().Core().Enabled(zapcore.DebugLevel) {
			t.Errorf("Expected debug level to be enabled for %s", format)
		}
	}

	if err := Init("loud", FormatJSON); err == nil {
		t.Error("Expected error for invalid level")
	}
}

func TestValidFormat(t *testing.T) {
	if !ValidFormat("json") || !ValidFormat("console") {
		t.Error("Expected json and console to be valid")
	}
	if ValidFormat("xml") {
		t.Error("Expected xml to be invalid")
	}
}
