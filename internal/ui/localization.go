package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle           = "app_title"
	KeyScoreURL           = "score_url"
	KeyEnterURL           = "enter_url"
	KeyOutputFolder       = "output_folder"
	KeyOutputFormat       = "output_format"
	KeyBrowse             = "browse"
	KeyConvert            = "convert"
	KeyOpenFolder         = "open_folder"
	KeyListFiles          = "list_files"
	KeyReady              = "ready"
	KeySettings           = "settings"
	KeyFile               = "file"
	KeyLanguage           = "language"
	KeySave               = "save"
	KeyCancel             = "cancel"
	KeyError              = "error"
	KeyInfo               = "info"
	KeySuccess            = "success"
	KeyFolderMissing      = "folder_missing"
	KeyNoFiles            = "no_files"
	KeyDownloadedFiles    = "downloaded_files"
	KeyOpen               = "open"
	KeyOpenHint           = "open_hint"
	KeyClose              = "close"
	KeyConvertedPrompt    = "converted_prompt"
	KeyDownloadedPrompt   = "downloaded_prompt"
	KeySelectFile         = "select_file"
	KeyErrorOpeningFile   = "error_opening_file"
	KeyErrorOpeningFolder = "error_opening_folder"
	KeyErrorOccurred      = "error_occurred"
	KeyDownloaderCommand  = "downloader_command"
	KeyRecencyWindow      = "recency_window"
	KeyOfferOpenFolder    = "offer_open_folder"
	KeySettingsSaved      = "settings_saved"
	KeyStatusDownloading  = "status_downloading"
	KeyStatusLocating     = "status_locating"
	KeyStatusSelectFile   = "status_select_file"
	KeyShowAllFiles       = "show_all_files"
	KeyStatusConverting   = "status_converting"
	KeyStatusConverted    = "status_converted"
	KeyStatusDownloaded   = "status_downloaded"
	KeyStatusError        = "status_error"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		// Use system locale - simplified to English for now
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
		"pt": "Português",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	l.texts["en"] = map[string]string{
		KeyAppTitle:           "MuseScore Downloader & Converter",
		KeyScoreURL:           "MuseScore URL:",
		KeyEnterURL:           "https://musescore.com/user/.../scores/...",
		KeyOutputFolder:       "Output Folder:",
		KeyOutputFormat:       "Output Format:",
		KeyBrowse:             "Browse...",
		KeyConvert:            "Download & Convert",
		KeyOpenFolder:         "Open Output Folder",
		KeyListFiles:          "List Downloaded Files",
		KeyReady:              "Ready",
		KeySettings:           "Settings",
		KeyFile:               "File",
		KeyLanguage:           "Language",
		KeySave:               "Save",
		KeyCancel:             "Cancel",
		KeyError:              "Error",
		KeyInfo:               "Info",
		KeySuccess:            "Success",
		KeyFolderMissing:      "Output folder does not exist yet.",
		KeyNoFiles:            "No files found in the output folder.",
		KeyDownloadedFiles:    "Downloaded Files",
		KeyOpen:               "Open",
		KeyOpenHint:           "Select a file to open it",
		KeyClose:              "Close",
		KeyConvertedPrompt:    "File successfully converted and saved as:\n%s\n\nWould you like to open the output folder?",
		KeyDownloadedPrompt:   "File successfully downloaded as:\n%s\n\nWould you like to open the output folder?",
		KeySelectFile:         "Select the downloaded %s file",
		KeyErrorOpeningFile:   "Could not open file",
		KeyErrorOpeningFolder: "Could not open folder",
		KeyErrorOccurred:      "An error occurred:\n\n%s",
		KeyDownloaderCommand:  "Downloader Command",
		KeyRecencyWindow:      "Recent File Window (seconds)",
		KeyOfferOpenFolder:    "Offer to open the folder when done",
		KeySettingsSaved:      "Settings saved successfully!",
		KeyStatusDownloading:  "Downloading %s from MuseScore...",
		KeyStatusLocating:     "Looking for downloaded file...",
		KeyStatusSelectFile:   "Could not find downloaded file automatically. Please select it manually.",
		KeyShowAllFiles:       "No %s file selected. Show all files instead?",
		KeyStatusConverting:   "Converting MIDI to MusicXML...",
		KeyStatusConverted:    "Conversion complete! File saved to: %s",
		KeyStatusDownloaded:   "Download complete! File saved to: %s",
		KeyStatusError:        "Error: %s",
	}

	l.texts["ru"] = map[string]string{
		KeyAppTitle:           "Загрузчик и конвертер MuseScore",
		KeyScoreURL:           "Ссылка MuseScore:",
		KeyOutputFolder:       "Папка сохранения:",
		KeyOutputFormat:       "Формат:",
		KeyBrowse:             "Обзор...",
		KeyConvert:            "Скачать и конвертировать",
		KeyOpenFolder:         "Открыть папку",
		KeyListFiles:          "Скачанные файлы",
		KeyReady:              "Готово к работе",
		KeySettings:           "Настройки",
		KeyFile:               "Файл",
		KeyLanguage:           "Язык",
		KeySave:               "Сохранить",
		KeyCancel:             "Отмена",
		KeyError:              "Ошибка",
		KeyInfo:               "Информация",
		KeySuccess:            "Успех",
		KeyFolderMissing:      "Папка сохранения ещё не создана.",
		KeyNoFiles:            "В папке сохранения нет файлов.",
		KeyDownloadedFiles:    "Скачанные файлы",
		KeyOpen:               "Открыть",
		KeyOpenHint:           "Выберите файл, чтобы открыть его",
		KeyClose:              "Закрыть",
		KeyConvertedPrompt:    "Файл успешно сконвертирован и сохранён как:\n%s\n\nОткрыть папку?",
		KeyDownloadedPrompt:   "Файл успешно скачан как:\n%s\n\nОткрыть папку?",
		KeySelectFile:         "Выберите скачанный файл %s",
		KeyErrorOpeningFile:   "Не удалось открыть файл",
		KeyErrorOpeningFolder: "Не удалось открыть папку",
		KeyErrorOccurred:      "Произошла ошибка:\n\n%s",
		KeyDownloaderCommand:  "Команда загрузчика",
		KeyRecencyWindow:      "Окно поиска свежих файлов (сек)",
		KeyOfferOpenFolder:    "Предлагать открыть папку по завершении",
		KeySettingsSaved:      "Настройки успешно сохранены!",
		KeyStatusDownloading:  "Скачивание %s с MuseScore...",
		KeyStatusLocating:     "Поиск скачанного файла...",
		KeyStatusSelectFile:   "Не удалось найти файл автоматически. Выберите его вручную.",
		KeyShowAllFiles:       "Файл %s не выбран. Показать все файлы?",
		KeyStatusConverting:   "Конвертация MIDI в MusicXML...",
		KeyStatusConverted:    "Конвертация завершена! Файл сохранён: %s",
		KeyStatusDownloaded:   "Скачивание завершено! Файл сохранён: %s",
		KeyStatusError:        "Ошибка: %s",
	}

	l.texts["pt"] = map[string]string{
		KeyAppTitle:           "Baixador e Conversor MuseScore",
		KeyScoreURL:           "URL do MuseScore:",
		KeyOutputFolder:       "Pasta de Saída:",
		KeyOutputFormat:       "Formato de Saída:",
		KeyBrowse:             "Navegar...",
		KeyConvert:            "Baixar e Converter",
		KeyOpenFolder:         "Abrir Pasta de Saída",
		KeyListFiles:          "Listar Arquivos Baixados",
		KeyReady:              "Pronto",
		KeySettings:           "Configurações",
		KeyFile:               "Arquivo",
		KeyLanguage:           "Idioma",
		KeySave:               "Salvar",
		KeyCancel:             "Cancelar",
		KeyError:              "Erro",
		KeyInfo:               "Informação",
		KeySuccess:            "Sucesso",
		KeyFolderMissing:      "A pasta de saída ainda não existe.",
		KeyNoFiles:            "Nenhum arquivo encontrado na pasta de saída.",
		KeyDownloadedFiles:    "Arquivos Baixados",
		KeyOpen:               "Abrir",
		KeyOpenHint:           "Selecione um arquivo para abri-lo",
		KeyClose:              "Fechar",
		KeyConvertedPrompt:    "Arquivo convertido e salvo como:\n%s\n\nDeseja abrir a pasta de saída?",
		KeyDownloadedPrompt:   "Arquivo baixado como:\n%s\n\nDeseja abrir a pasta de saída?",
		KeySelectFile:         "Selecione o arquivo %s baixado",
		KeyErrorOpeningFile:   "Não foi possível abrir o arquivo",
		KeyErrorOpeningFolder: "Não foi possível abrir a pasta",
		KeyErrorOccurred:      "Ocorreu um erro:\n\n%s",
		KeyDownloaderCommand:  "Comando do Baixador",
		KeyRecencyWindow:      "Janela de Arquivos Recentes (segundos)",
		KeyOfferOpenFolder:    "Oferecer abrir a pasta ao terminar",
		KeySettingsSaved:      "Configurações salvas com sucesso!",
		KeyStatusDownloading:  "Baixando %s do MuseScore...",
		KeyStatusLocating:     "Procurando o arquivo baixado...",
		KeyStatusSelectFile:   "Não foi possível encontrar o arquivo automaticamente. Selecione-o manualmente.",
		KeyShowAllFiles:       "Nenhum arquivo %s selecionado. Mostrar todos os arquivos?",
		KeyStatusConverting:   "Convertendo MIDI para MusicXML...",
		KeyStatusConverted:    "Conversão concluída! Arquivo salvo em: %s",
		KeyStatusDownloaded:   "Download concluído! Arquivo salvo em: %s",
		KeyStatusError:        "Erro: %s",
	}
}
