package workflow

import (
	"errors"
	"testing"
	"time"
)

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		message string // empty means valid
	}{
		{"valid https", "https://musescore.com/user/1/scores/12345-My-Song", ""},
		{"valid http", "http://musescore.com/user/1/scores/12345", ""},
		{"surrounding spaces", "  https://musescore.com/user/1/scores/1  ", ""},
		{"empty", "", MsgEmptyURL},
		{"blank", "   ", MsgEmptyURL},
		{"no scheme", "musescore.com/user/1/scores/12345", MsgInvalidScheme},
		{"ftp scheme", "ftp://musescore.com/user/1/scores/12345", MsgInvalidScheme},
		{"other site", "https://example.com/scores/12345", MsgWrongDomain},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := ValidateURL(test.url)
			if test.message == "" {
				if err != nil {
					t.Fatalf("Expected valid URL, got %v", err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("Expected InvalidInput, got %v", err)
			}
			if MessageOf(err) != test.message {
				t.Errorf("Expected message %q, got %q", test.message, MessageOf(err))
			}
		})
	}
}

func TestDeriveBaseName(t *testing.T) {
	now := time.Unix(1700000000, 0)

	tests := []struct {
		url      string
		expected string
	}{
		{"https://musescore.com/user/1/scores/12345-My-Song", "My_Song"},
		{"https://musescore.com/user/1/scores/12345", "score_12345"},
		{"https://musescore.com/user/1/scores/12345/", "score_12345"},
		{"https://musescore.com/user/1/scores/777-a-b-c?share=copy", "a_b_c"},
		{"https://musescore.com/official_scores/scores/999-Fur-Elise#top", "Fur_Elise"},
		{"https://musescore.com/user/1/sets/42", "musescore_1700000000"},
		{"https://musescore.com/user/1/scores/123-A%2FB", "A%2FB"},
		{"https://musescore.com/user/1/scores/123-Caf%C3%A9-Song", "Caf%C3%A9_Song"},
	}

	for _, test := range tests {
		if got := DeriveBaseName(test.url, now); got != test.expected {
			t.Errorf("DeriveBaseName(%s) = %s, expected %s", test.url, got, test.expected)
		}
	}
}
