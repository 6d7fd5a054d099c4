package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/dustin/go-humanize"

	"github.com/ytget/score-downloader/internal/platform"
)

// fileRowText renders one entry of the downloaded files list
func fileRowText(f platform.FileEntry) string {
	return f.Name + MiddleDotSeparator + humanize.Bytes(uint64(f.Size)) + MiddleDotSeparator + f.ModTime.Format(FileTimeLayout)
}

// newFilesList builds the list widget; tapping a row calls onOpen
func newFilesList(files []platform.FileEntry, onOpen func(path string)) *widget.List {
	list := widget.NewList(
		func() int {
			return len(files)
		},
		func() fyne.CanvasObject {
			label := widget.NewLabel("")
			label.Truncation = fyne.TextTruncateEllipsis
			return label
		},
		func(id widget.ListItemID, item fyne.CanvasObject) {
			item.(*widget.Label).SetText(fileRowText(files[id]))
		},
	)
	list.OnSelected = func(id widget.ListItemID) {
		list.Unselect(id)
		if onOpen != nil {
			onOpen(files[id].Path)
		}
	}
	return list
}

// ShowFilesDialog lists the output folder contents
func ShowFilesDialog(window fyne.Window, loc *Localization, files []platform.FileEntry, onOpen func(path string)) dialog.Dialog {
	list := newFilesList(files, onOpen)
	hint := widget.NewLabel(IconMusic + " " + loc.GetText(KeyOpenHint))
	content := container.NewBorder(hint, nil, nil, nil, list)

	d := dialog.NewCustom(loc.GetText(KeyDownloadedFiles), loc.GetText(KeyClose), content, window)
	d.Resize(fyne.NewSize(FilesDialogWidth, FilesDialogHeight))
	d.Show()
	return d
}
