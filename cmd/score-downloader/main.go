package main

import (
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"go.uber.org/zap"

	"github.com/ytget/score-downloader/internal/config"
	"github.com/ytget/score-downloader/internal/convert"
	"github.com/ytget/score-downloader/internal/logger"
	"github.com/ytget/score-downloader/internal/platform"
	"github.com/ytget/score-downloader/internal/ui"
	"github.com/ytget/score-downloader/internal/workflow"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.score-downloader"
	AppName = "MuseScore Downloader & Converter"
)

func main() {
	level := os.Getenv("SCORE_DOWNLOADER_LOG_LEVEL")
	if err := logger.Init(level, logger.FormatConsole); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	log := logger.GetZapLogger()
	log.Info("starting", zap.String("app", AppName), zap.String("version", version))

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewScoreTheme())

	myWindow := myApp.NewWindow(fmt.Sprintf("%s v%s", AppName, version))
	myWindow.Resize(fyne.NewSize(ui.WindowWidth, ui.WindowHeight))

	settings := config.NewSettings(myApp)
	outputDir := settings.GetOutputDirectory()
	if err := platform.CreateDirectoryIfNotExists(outputDir); err != nil {
		log.Warn("failed to ensure output dir", zap.String("dir", outputDir), zap.Error(err))
	}

	ui.NewRootUI(myWindow, myApp, ui.Services{
		Converter:   convert.NewService(log),
		Logger:      log,
		SettleDelay: workflow.DefaultSettleDelay,
	})

	myWindow.ShowAndRun()
}
