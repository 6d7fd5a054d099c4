package ui

import (
	"sort"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/score-downloader/internal/config"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	// UI components
	outputDirEntry  *widget.Entry
	commandEntry    *widget.Entry
	windowEntry     *widget.Entry
	offerOpenCheck  *widget.Check
	languageSelect  *widget.Select
	languageByLabel map[string]string
}

// ShowSettingsDialog creates and shows the settings dialog. onSaved runs
// after the values were stored.
func ShowSettingsDialog(window fyne.Window, settings *config.Settings, loc *Localization, onSaved func()) *SettingsDialog {
	sd := NewSettingsDialog(settings, loc, window)
	sd.onSaved = onSaved
	sd.Show()
	return sd
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, loc *Localization, window fyne.Window) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		localization: loc,
		window:       window,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	loc := sd.localization

	sd.outputDirEntry = widget.NewEntry()
	browseDirBtn := widget.NewButton(loc.GetText(KeyBrowse), sd.onBrowseDirectory)
	outputDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.outputDirEntry)

	sd.commandEntry = widget.NewEntry()
	sd.commandEntry.SetPlaceHolder("npx dl-librescore@latest")

	sd.windowEntry = widget.NewEntry()
	sd.windowEntry.SetPlaceHolder(strconv.Itoa(config.MinRecencyWindow) + "-" + strconv.Itoa(config.MaxRecencyWindow))

	sd.offerOpenCheck = widget.NewCheck(loc.GetText(KeyOfferOpenFolder), nil)

	// Language select shows names and stores codes
	sd.languageByLabel = make(map[string]string)
	languageOptions := []string{}
	for code, label := range sd.settings.GetLanguageOptions() {
		sd.languageByLabel[label] = code
		languageOptions = append(languageOptions, label)
	}
	sort.Strings(languageOptions)
	sd.languageSelect = widget.NewSelect(languageOptions, nil)

	form := container.NewVBox(
		widget.NewLabel(loc.GetText(KeyOutputFolder)),
		outputDirRow,

		widget.NewLabel(loc.GetText(KeyDownloaderCommand)+":"),
		sd.commandEntry,

		widget.NewLabel(loc.GetText(KeyRecencyWindow)+":"),
		sd.windowEntry,

		sd.offerOpenCheck,

		widget.NewSeparator(),
		widget.NewLabel(loc.GetText(KeyLanguage)+":"),
		sd.languageSelect,
	)

	sd.dialog = dialog.NewCustomConfirm(
		loc.GetText(KeySettings),
		loc.GetText(KeySave),
		loc.GetText(KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(SettingsDialogWidth, SettingsDialogHeight))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.outputDirEntry.SetText(sd.settings.GetOutputDirectory())
	sd.commandEntry.SetText(sd.settings.GetDownloaderCommand())
	sd.windowEntry.SetText(strconv.Itoa(int(sd.settings.GetRecencyWindow() / time.Second)))
	sd.offerOpenCheck.SetChecked(sd.settings.GetOfferOpenFolder())
	sd.languageSelect.SetSelected(sd.settings.GetLanguageOptions()[sd.settings.GetLanguage()])
}

// onBrowseDirectory handles directory browsing
func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.outputDirEntry.SetText(uri.Path())
	}, sd.window)
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}
	sd.apply()
	dialog.ShowInformation(sd.localization.GetText(KeySettings), sd.localization.GetText(KeySettingsSaved), sd.window)
}

// apply stores the form values
func (sd *SettingsDialog) apply() {
	if dir := sd.outputDirEntry.Text; dir != "" {
		sd.settings.SetOutputDirectory(dir)
	}

	sd.settings.SetDownloaderCommand(sd.commandEntry.Text)

	if seconds, err := strconv.Atoi(sd.windowEntry.Text); err == nil {
		sd.settings.SetRecencyWindow(time.Duration(seconds) * time.Second)
	}

	sd.settings.SetOfferOpenFolder(sd.offerOpenCheck.Checked)

	if code, ok := sd.languageByLabel[sd.languageSelect.Selected]; ok {
		sd.settings.SetLanguage(code)
	}

	if sd.onSaved != nil {
		sd.onSaved()
	}
}
