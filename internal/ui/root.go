package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/ytget/score-downloader/internal/config"
	"github.com/ytget/score-downloader/internal/convert"
	"github.com/ytget/score-downloader/internal/download"
	"github.com/ytget/score-downloader/internal/model"
	"github.com/ytget/score-downloader/internal/platform"
	"github.com/ytget/score-downloader/internal/workflow"
)

// Services are the collaborators the window hands to each workflow run
type Services struct {
	// Downloader is built from the configured command when nil
	Downloader download.Downloader
	// Converter produces MusicXML; nil keeps the downloaded MIDI file
	Converter   convert.Converter
	Logger      *zap.Logger
	SettleDelay time.Duration
}

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	settings     *config.Settings
	localization *Localization
	services     Services
	logger       *zap.Logger

	urlLabel      *widget.Label
	urlEntry      *widget.Entry
	outputLabel   *widget.Label
	outputEntry   *widget.Entry
	browseBtn     *widget.Button
	formatLabel   *widget.Label
	formatGroup   *widget.RadioGroup
	convertBtn    *widget.Button
	openFolderBtn *widget.Button
	listFilesBtn  *widget.Button
	statusLabel   *widget.Label
	progress      *widget.ProgressBarInfinite

	running atomic.Bool
	runs    sync.WaitGroup

	mu      sync.Mutex
	lastRun *model.ConversionRun
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, services Services) *RootUI {
	settings := config.NewSettings(app)

	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	logger := services.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	ui := &RootUI{
		window:       window,
		settings:     settings,
		localization: localization,
		services:     services,
		logger:       logger,
	}

	window.SetTitle(localization.GetText(KeyAppTitle))
	ui.setupUI()
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	ui.urlLabel = widget.NewLabel(ui.localization.GetText(KeyScoreURL))
	ui.urlEntry = widget.NewEntry()
	ui.urlEntry.SetPlaceHolder(ui.localization.GetText(KeyEnterURL))
	ui.urlEntry.OnSubmitted = func(string) {
		ui.onConvertClick()
	}

	ui.outputLabel = widget.NewLabel(ui.localization.GetText(KeyOutputFolder))
	ui.outputEntry = widget.NewEntry()
	ui.outputEntry.SetText(ui.settings.GetOutputDirectory())
	ui.browseBtn = widget.NewButton(ui.localization.GetText(KeyBrowse), ui.onBrowseOutput)
	outputRow := container.NewBorder(nil, nil, nil, ui.browseBtn, ui.outputEntry)

	ui.formatLabel = widget.NewLabel(ui.localization.GetText(KeyOutputFormat))
	labels := make([]string, 0, len(model.AllFormats()))
	for _, f := range model.AllFormats() {
		labels = append(labels, f.Label())
	}
	ui.formatGroup = widget.NewRadioGroup(labels, nil)
	ui.formatGroup.Horizontal = true
	ui.formatGroup.Required = true
	ui.formatGroup.SetSelected(ui.settings.GetOutputFormat().Label())

	ui.convertBtn = widget.NewButton(ui.localization.GetText(KeyConvert), ui.onConvertClick)
	ui.convertBtn.Importance = widget.HighImportance

	ui.openFolderBtn = widget.NewButton(IconFolder+" "+ui.localization.GetText(KeyOpenFolder), ui.onOpenFolder)
	ui.listFilesBtn = widget.NewButton(IconFile+" "+ui.localization.GetText(KeyListFiles), ui.onListFiles)

	ui.progress = widget.NewProgressBarInfinite()
	ui.progress.Stop()
	ui.progress.Hide()

	ui.statusLabel = widget.NewLabel(ui.localization.GetText(KeyReady))
	ui.statusLabel.Wrapping = fyne.TextWrapWord

	content := container.NewVBox(
		ui.urlLabel,
		ui.urlEntry,
		ui.outputLabel,
		outputRow,
		ui.formatLabel,
		ui.formatGroup,
		widget.NewSeparator(),
		ui.convertBtn,
		ui.progress,
		ui.statusLabel,
		widget.NewSeparator(),
		container.NewGridWithColumns(2, ui.openFolderBtn, ui.listFilesBtn),
	)

	ui.window.SetContent(container.NewPadded(content))
}

// createMenu builds the main menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(IconSettings+" "+ui.localization.GetText(KeySettings), ui.onShowSettings)

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code // Capture for closure
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})
		if ui.localization.GetCurrentLanguage() == code {
			langItem.Checked = true
		}
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem),
		languageMenu,
	))
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()

	// Recreate menu to update checkmarks
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))
	ui.urlLabel.SetText(ui.localization.GetText(KeyScoreURL))
	ui.urlEntry.SetPlaceHolder(ui.localization.GetText(KeyEnterURL))
	ui.outputLabel.SetText(ui.localization.GetText(KeyOutputFolder))
	ui.browseBtn.SetText(ui.localization.GetText(KeyBrowse))
	ui.formatLabel.SetText(ui.localization.GetText(KeyOutputFormat))
	ui.convertBtn.SetText(ui.localization.GetText(KeyConvert))
	ui.openFolderBtn.SetText(IconFolder + " " + ui.localization.GetText(KeyOpenFolder))
	ui.listFilesBtn.SetText(IconFile + " " + ui.localization.GetText(KeyListFiles))
	if !ui.running.Load() {
		ui.statusLabel.SetText(ui.localization.GetText(KeyReady))
	}
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	ShowSettingsDialog(ui.window, ui.settings, ui.localization, func() {
		ui.outputEntry.SetText(ui.settings.GetOutputDirectory())
		ui.localization.SetLanguage(ui.settings.GetLanguage())
		ui.refreshUITexts()
		ui.createMenu()
	})
}

// onBrowseOutput picks the output folder
func (ui *RootUI) onBrowseOutput() {
	d := dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		ui.outputEntry.SetText(uri.Path())
		ui.settings.SetOutputDirectory(uri.Path())
	}, ui.window)
	if lister, err := storage.ListerForURI(storage.NewFileURI(ui.outputDir())); err == nil {
		d.SetLocation(lister)
	}
	d.Show()
}

// selectedFormat maps the radio selection back to an OutputFormat
func (ui *RootUI) selectedFormat() model.OutputFormat {
	for _, f := range model.AllFormats() {
		if f.Label() == ui.formatGroup.Selected {
			return f
		}
	}
	return config.DefaultOutputFormat
}

// outputDir returns the folder from the form, falling back to the saved one
func (ui *RootUI) outputDir() string {
	dir := strings.TrimSpace(ui.outputEntry.Text)
	if dir == "" {
		return ui.settings.GetOutputDirectory()
	}
	return dir
}

// onConvertClick validates the form and starts a workflow run
func (ui *RootUI) onConvertClick() {
	if ui.running.Load() {
		return
	}

	url := strings.TrimSpace(ui.urlEntry.Text)
	if err := workflow.ValidateURL(url); err != nil {
		ui.showFailure(err)
		return
	}

	req := model.ConversionRequest{
		URL:       url,
		Format:    ui.selectedFormat(),
		OutputDir: ui.outputDir(),
	}
	ui.settings.SetOutputDirectory(req.OutputDir)
	ui.settings.SetOutputFormat(req.Format)

	ui.setRunning(true)
	wf := ui.newWorkflow(req)

	ui.runs.Add(1)
	go func() {
		defer ui.runs.Done()
		run, err := wf.Run(context.Background(), req)

		ui.mu.Lock()
		ui.lastRun = run
		ui.mu.Unlock()

		fyne.Do(func() {
			ui.onRunFinished(run, err)
		})
	}()
}

// newWorkflow wires a workflow for one run using the current settings
func (ui *RootUI) newWorkflow(req model.ConversionRequest) *workflow.Workflow {
	downloader := ui.services.Downloader
	if downloader == nil {
		downloader = download.NewService(ui.settings.GetDownloaderCommand(), ui.logger)
	}

	return workflow.New(workflow.Config{
		Downloader:    downloader,
		Converter:     ui.services.Converter,
		Picker:        ui,
		Logger:        ui.logger,
		RecencyWindow: ui.settings.GetRecencyWindow(),
		SettleDelay:   ui.services.SettleDelay,
		OnStatus: func(status model.WorkflowStatus, message string) {
			if status.IsFinished() {
				return
			}
			text := ui.statusText(status, message, req)
			fyne.Do(func() {
				ui.statusLabel.SetText(text)
			})
		},
	})
}

// setRunning toggles the trigger and the progress bar
func (ui *RootUI) setRunning(running bool) {
	ui.running.Store(running)
	if running {
		ui.convertBtn.Disable()
		ui.progress.Show()
		ui.progress.Start()
		return
	}
	ui.progress.Stop()
	ui.progress.Hide()
	ui.convertBtn.Enable()
}

// onRunFinished reports the outcome; runs on the UI thread
func (ui *RootUI) onRunFinished(run *model.ConversionRun, err error) {
	ui.setRunning(false)

	if err != nil {
		ui.showFailure(err)
		return
	}

	ui.statusLabel.SetText(ui.resultText(run))
	if !ui.settings.GetOfferOpenFolder() {
		return
	}

	prompt := KeyDownloadedPrompt
	if run.Download != nil && run.OutputPath != run.Download.Path {
		prompt = KeyConvertedPrompt
	}
	dialog.ShowConfirm(
		ui.localization.GetText(KeySuccess),
		fmt.Sprintf(ui.localization.GetText(prompt), run.OutputPath),
		func(open bool) {
			if open {
				ui.onOpenFolder()
			}
		},
		ui.window,
	)
}

// showFailure puts the reason in the status line and a blocking error dialog
func (ui *RootUI) showFailure(err error) {
	msg := workflow.MessageOf(err)
	ui.statusLabel.SetText(fmt.Sprintf(ui.localization.GetText(KeyStatusError), msg))
	dialog.ShowError(errors.New(fmt.Sprintf(ui.localization.GetText(KeyErrorOccurred), msg)), ui.window)
}

// statusText localizes a status update from the workflow
func (ui *RootUI) statusText(status model.WorkflowStatus, message string, req model.ConversionRequest) string {
	switch status {
	case model.WorkflowStatusDownloading:
		return fmt.Sprintf(ui.localization.GetText(KeyStatusDownloading), strings.ToUpper(req.Format.DownloadFormat()))
	case model.WorkflowStatusLocating:
		if message == workflow.MsgSelectManually {
			return ui.localization.GetText(KeyStatusSelectFile)
		}
		return ui.localization.GetText(KeyStatusLocating)
	case model.WorkflowStatusConverting:
		return ui.localization.GetText(KeyStatusConverting)
	default:
		return message
	}
}

// resultText describes a successful run
func (ui *RootUI) resultText(run *model.ConversionRun) string {
	if run.Download != nil && run.OutputPath != run.Download.Path {
		return fmt.Sprintf(ui.localization.GetText(KeyStatusConverted), run.OutputPath)
	}
	return fmt.Sprintf(ui.localization.GetText(KeyStatusDownloaded), run.OutputPath)
}

// PickFile shows a file dialog filtered to ext and blocks the calling
// workflow goroutine until the operator chooses or dismisses it. Dismissing
// the filtered dialog offers to browse all files instead.
func (ui *RootUI) PickFile(ctx context.Context, dir, ext string) (string, error) {
	handoff := workflow.NewHandoff()

	fyne.Do(func() {
		ui.showPicker(handoff, dir, ext, true)
	})

	ui.logger.Info("waiting for manual file selection", zap.String("dir", dir), zap.String("ext", ext))
	return handoff.Await(ctx)
}

// showPicker opens the file dialog; runs on the UI thread
func (ui *RootUI) showPicker(handoff *workflow.Handoff, dir, ext string, filtered bool) {
	d := dialog.NewFileOpen(ui.pickResult(handoff, dir, ext, filtered), ui.window)
	if filter := pickerFilter(ext, filtered); filter != nil {
		d.SetFilter(filter)
	}
	if lister, err := storage.ListerForURI(storage.NewFileURI(dir)); err == nil {
		d.SetLocation(lister)
	}
	d.Show()
}

// pickResult handles the file dialog outcome
func (ui *RootUI) pickResult(handoff *workflow.Handoff, dir, ext string, filtered bool) func(fyne.URIReadCloser, error) {
	return func(reader fyne.URIReadCloser, err error) {
		if err == nil && reader != nil {
			defer reader.Close()
			handoff.Deliver(reader.URI().Path())
			return
		}
		if err != nil || !filtered {
			handoff.Deliver("")
			return
		}
		dialog.ShowConfirm(
			ui.localization.GetText(KeyInfo),
			fmt.Sprintf(ui.localization.GetText(KeyShowAllFiles), ext),
			func(all bool) {
				ui.onShowAllFiles(handoff, dir, ext, all)
			},
			ui.window,
		)
	}
}

// onShowAllFiles reopens the picker unfiltered, or gives up
func (ui *RootUI) onShowAllFiles(handoff *workflow.Handoff, dir, ext string, all bool) {
	if !all {
		handoff.Deliver("")
		return
	}
	ui.showPicker(handoff, dir, ext, false)
}

// pickerFilter limits the dialog to ext; nil shows every file
func pickerFilter(ext string, filtered bool) storage.FileFilter {
	if !filtered || ext == "" {
		return nil
	}
	return storage.NewExtensionFileFilter([]string{ext})
}

// onOpenFolder opens the output folder, creating it first if needed
func (ui *RootUI) onOpenFolder() {
	dir := ui.outputDir()
	if err := platform.OpenFolder(dir); err != nil {
		ui.logger.Warn("failed to open folder", zap.String("dir", dir), zap.Error(err))
		dialog.ShowError(fmt.Errorf("%s: %w", ui.localization.GetText(KeyErrorOpeningFolder), err), ui.window)
	}
}

// onListFiles shows the files in the output folder, newest first
func (ui *RootUI) onListFiles() {
	dir := ui.outputDir()
	if !platform.DirectoryExists(dir) {
		dialog.ShowInformation(ui.localization.GetText(KeyInfo), ui.localization.GetText(KeyFolderMissing), ui.window)
		return
	}

	files, err := platform.ListFiles(dir)
	if err != nil {
		dialog.ShowError(err, ui.window)
		return
	}
	if len(files) == 0 {
		dialog.ShowInformation(ui.localization.GetText(KeyInfo), ui.localization.GetText(KeyNoFiles), ui.window)
		return
	}

	ShowFilesDialog(ui.window, ui.localization, files, ui.onOpenFile)
}

// onOpenFile opens a file with the default application
func (ui *RootUI) onOpenFile(path string) {
	if err := platform.OpenFileWithDefaultApp(path); err != nil {
		ui.logger.Warn("failed to open file", zap.String("path", path), zap.Error(err))
		dialog.ShowError(fmt.Errorf("%s: %w", ui.localization.GetText(KeyErrorOpeningFile), err), ui.window)
	}
}

// LastRun returns the most recently finished run, nil before the first one
func (ui *RootUI) LastRun() *model.ConversionRun {
	ui.mu.Lock()
	defer ui.mu.Unlock()
	return ui.lastRun
}

// wait blocks until background runs have finished
func (ui *RootUI) wait() {
	ui.runs.Wait()
}
