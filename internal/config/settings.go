package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"fyne.io/fyne/v2"

	"github.com/ytget/score-downloader/internal/download"
	"github.com/ytget/score-downloader/internal/model"
	"github.com/ytget/score-downloader/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyOutputDir         = "output_directory"
	KeyOutputFormat      = "output_format"
	KeyLanguage          = "app_language"
	KeyDownloaderCommand = "downloader_command"
	KeyRecencyWindow     = "recency_window_seconds"
	KeyOfferOpenFolder   = "offer_open_folder"
)

// Default values
const (
	DefaultOutputFormat    = model.FormatMusicXML
	DefaultLanguage        = "system"
	DefaultRecencyWindow   = 60
	MinRecencyWindow       = 5
	MaxRecencyWindow       = 600
	DefaultOfferOpenFolder = true
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetOutputDirectory returns the configured output directory
func (s *Settings) GetOutputDirectory() string {
	dir := s.app.Preferences().String(KeyOutputDir)
	if dir == "" {
		defaultDir, err := platform.GetDefaultOutputDir()
		if err != nil {
			defaultDir = filepath.Join(os.TempDir(), platform.DefaultOutputDirName)
		}
		s.SetOutputDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetOutputDirectory sets the output directory
func (s *Settings) SetOutputDirectory(dir string) {
	s.app.Preferences().SetString(KeyOutputDir, dir)
}

// GetOutputFormat returns the last used output format
func (s *Settings) GetOutputFormat() model.OutputFormat {
	format, err := model.ParseOutputFormat(s.app.Preferences().String(KeyOutputFormat))
	if err != nil {
		s.SetOutputFormat(DefaultOutputFormat)
		return DefaultOutputFormat
	}
	return format
}

// SetOutputFormat sets the output format
func (s *Settings) SetOutputFormat(format model.OutputFormat) {
	s.app.Preferences().SetString(KeyOutputFormat, string(format))
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetDownloaderCommand returns the command prefix used to run the downloader
func (s *Settings) GetDownloaderCommand() string {
	cmd := strings.TrimSpace(s.app.Preferences().String(KeyDownloaderCommand))
	if cmd == "" {
		return download.DefaultCommand
	}
	return cmd
}

// SetDownloaderCommand sets the downloader command; empty restores the default
func (s *Settings) SetDownloaderCommand(cmd string) {
	s.app.Preferences().SetString(KeyDownloaderCommand, strings.TrimSpace(cmd))
}

// GetRecencyWindow returns how recent a scanned file must be to be picked up
func (s *Settings) GetRecencyWindow() time.Duration {
	seconds := s.app.Preferences().IntWithFallback(KeyRecencyWindow, DefaultRecencyWindow)
	if seconds <= 0 {
		seconds = DefaultRecencyWindow
	}
	return time.Duration(seconds) * time.Second
}

// SetRecencyWindow sets the recency window, clamped to a sane range
func (s *Settings) SetRecencyWindow(window time.Duration) {
	seconds := int(window / time.Second)
	if seconds < MinRecencyWindow {
		seconds = MinRecencyWindow
	}
	if seconds > MaxRecencyWindow {
		seconds = MaxRecencyWindow
	}
	s.app.Preferences().SetInt(KeyRecencyWindow, seconds)
}

// GetOfferOpenFolder returns whether to offer opening the folder after a run
func (s *Settings) GetOfferOpenFolder() bool {
	return s.app.Preferences().BoolWithFallback(KeyOfferOpenFolder, DefaultOfferOpenFolder)
}

// SetOfferOpenFolder sets whether to offer opening the folder after a run
func (s *Settings) SetOfferOpenFolder(offer bool) {
	s.app.Preferences().SetBool(KeyOfferOpenFolder, offer)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}
