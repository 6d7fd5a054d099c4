package workflow

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// Source site constants
const (
	SourceDomain   = "musescore.com"
	ScorePrefix    = "score_"
	FallbackPrefix = "musescore_"
)

// Validation messages
const (
	MsgEmptyURL      = "Please enter a MuseScore URL"
	MsgInvalidScheme = "URL must start with http:// or https://"
	MsgWrongDomain   = "URL must be from musescore.com"
	MsgUnknownFormat = "Unsupported output format"
)

var scorePathPattern = regexp.MustCompile(`/scores/(\d+)(?:-([^/]+))?`)

// ValidateURL checks the URL before any subprocess is started
func ValidateURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return newError(KindInvalidInput, MsgEmptyURL, nil)
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		return newError(KindInvalidInput, MsgInvalidScheme, nil)
	}
	if !strings.Contains(raw, SourceDomain) {
		return newError(KindInvalidInput, MsgWrongDomain, nil)
	}
	return nil
}

// DeriveBaseName returns the file name stem the downloader is expected to use.
// The slug after the score id wins, otherwise score_<id>; URLs without a
// score path fall back to musescore_<unix time>.
func DeriveBaseName(raw string, now time.Time) string {
	path := raw
	if u, err := url.Parse(strings.TrimSpace(raw)); err == nil && u.Path != "" {
		// keep percent-escapes as they appear in the URL
		path = u.EscapedPath()
	}

	m := scorePathPattern.FindStringSubmatch(path)
	if m == nil {
		return fmt.Sprintf("%s%d", FallbackPrefix, now.Unix())
	}

	name := m[2]
	if name == "" {
		name = ScorePrefix + m[1]
	}
	return strings.ReplaceAll(name, "-", "_")
}
