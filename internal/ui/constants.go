package ui

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconFolder   = "📁"
	IconFile     = "📄"
	IconMusic    = "🎵"
)

// Text fragments
const (
	MiddleDotSeparator = " · "
	FileTimeLayout     = "2006-01-02 15:04"
)

// Window and dialog sizing
const (
	WindowWidth  float32 = 600
	WindowHeight float32 = 420

	FilesDialogWidth  float32 = 520
	FilesDialogHeight float32 = 380

	SettingsDialogWidth  float32 = 500
	SettingsDialogHeight float32 = 360
)
