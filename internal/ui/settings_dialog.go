package ui

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"github.com/ytget/songlist/internal/config"
	"github.com/ytget/songlist/internal/platform"
)

// languageOrder fixes the order of the language select
var languageOrder = []string{"system", "zh", "en"}

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	songsFile    string
	onSaved      func()

	// UI components
	rowHeightEntry   *widget.Entry
	listHeightEntry  *widget.Entry
	maxParallelEntry *widget.Entry
	songsFileEntry   *widget.Entry
	languageSelect   *widget.Select
}

// NewSettingsDialog creates a new settings dialog. songsFile is shown when
// no songs file has been chosen yet.
func NewSettingsDialog(settings *config.Settings, loc *Localization, window fyne.Window, songsFile string, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		localization: loc,
		window:       window,
		songsFile:    songsFile,
		onSaved:      onSaved,
	}

	sd.createUI()
	return sd
}

// ShowSettingsDialog creates and shows the settings dialog
func ShowSettingsDialog(window fyne.Window, settings *config.Settings, loc *Localization, songsFile string, onSaved func()) {
	NewSettingsDialog(settings, loc, window, songsFile, onSaved).Show()
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

func (sd *SettingsDialog) text(key string) string {
	return sd.localization.GetText(key)
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	sd.rowHeightEntry = widget.NewEntry()
	sd.rowHeightEntry.SetPlaceHolder(fmt.Sprintf("%d-%d", config.MinRowHeight, config.MaxRowHeight))

	sd.listHeightEntry = widget.NewEntry()
	sd.listHeightEntry.SetPlaceHolder(fmt.Sprintf("%.2f-%.2f", config.MinListHeight, config.MaxListHeight))

	sd.maxParallelEntry = widget.NewEntry()
	sd.maxParallelEntry.SetPlaceHolder(fmt.Sprintf("1-%d", config.MaxParallelArtworkCap))

	sd.songsFileEntry = widget.NewEntry()
	sd.songsFileEntry.SetPlaceHolder("songs.json")
	browseBtn := widget.NewButton(sd.text(KeyBrowse), sd.onBrowseFile)
	revealBtn := widget.NewButton(IconFolder, sd.onRevealFile)
	songsFileRow := container.NewBorder(nil, nil, nil, container.NewHBox(browseBtn, revealBtn), sd.songsFileEntry)

	labels := sd.settings.GetLanguageOptions()
	languageOptions := make([]string, 0, len(languageOrder))
	for _, code := range languageOrder {
		languageOptions = append(languageOptions, labels[code])
	}
	sd.languageSelect = widget.NewSelect(languageOptions, nil)

	form := container.NewVBox(
		widget.NewLabel(sd.text(KeyListSettings)),
		widget.NewSeparator(),

		widget.NewLabel(sd.text(KeyRowHeight)+":"),
		sd.rowHeightEntry,

		widget.NewLabel(sd.text(KeyListHeight)+":"),
		sd.listHeightEntry,

		widget.NewLabel(sd.text(KeyMaxParallel)+":"),
		sd.maxParallelEntry,

		widget.NewLabel(sd.text(KeySongsFile)+":"),
		songsFileRow,

		widget.NewSeparator(),
		widget.NewLabel(sd.text(KeyInterfaceSettings)),
		widget.NewSeparator(),

		widget.NewLabel(sd.text(KeyLanguage)+":"),
		sd.languageSelect,
	)

	sd.dialog = dialog.NewCustomConfirm(
		sd.text(KeySettings),
		sd.text(KeySave),
		sd.text(KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(500, 460))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.rowHeightEntry.SetText(strconv.Itoa(int(sd.settings.GetRowHeight())))
	sd.listHeightEntry.SetText(strconv.FormatFloat(float64(sd.settings.GetListHeight()), 'f', 2, 32))
	sd.maxParallelEntry.SetText(strconv.Itoa(sd.settings.GetMaxParallelArtwork()))
	sd.songsFileEntry.SetText(sd.settings.GetSongsFile(sd.songsFile))
	sd.languageSelect.SetSelected(sd.settings.GetLanguageOptions()[sd.settings.GetLanguage()])
}

// onBrowseFile lets the user pick a JSON or CSV songs file
func (sd *SettingsDialog) onBrowseFile() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		sd.songsFileEntry.SetText(reader.URI().Path())
	}, sd.window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{platform.ExtJSON, platform.ExtCSV}))
	fd.Show()
}

// revealFile shows a file selected in the system file manager
var revealFile = platform.OpenFileInManager

// onRevealFile shows the songs file in the system file manager
func (sd *SettingsDialog) onRevealFile() {
	path := strings.TrimSpace(sd.songsFileEntry.Text)
	if path == "" {
		return
	}
	if err := revealFile(path); err != nil {
		logrus.Warnf("Failed to reveal %s: %v", path, err)
	}
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}
	sd.apply()

	if sd.onSaved != nil {
		sd.onSaved()
	}
}

// apply writes every valid field to the settings. Invalid numbers leave the
// stored value untouched.
func (sd *SettingsDialog) apply() {
	if v, err := strconv.ParseFloat(strings.TrimSpace(sd.rowHeightEntry.Text), 32); err == nil {
		sd.settings.SetRowHeight(float32(v))
	}

	if v, err := strconv.ParseFloat(strings.TrimSpace(sd.listHeightEntry.Text), 32); err == nil {
		sd.settings.SetListHeight(float32(v))
	}

	if v, err := strconv.Atoi(strings.TrimSpace(sd.maxParallelEntry.Text)); err == nil {
		sd.settings.SetMaxParallelArtwork(v)
	}

	if path := strings.TrimSpace(sd.songsFileEntry.Text); path != "" {
		sd.settings.SetSongsFile(path)
	}

	if sd.languageSelect.Selected != "" {
		for code, label := range sd.settings.GetLanguageOptions() {
			if label == sd.languageSelect.Selected {
				sd.settings.SetLanguage(code)
				break
			}
		}
	}

	logrus.Debugf("Settings saved: row=%v list=%v parallel=%d",
		sd.settings.GetRowHeight(), sd.settings.GetListHeight(), sd.settings.GetMaxParallelArtwork())
}
