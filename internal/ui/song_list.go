package ui

import (
	"context"
	"fmt"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"github.com/ytget/songlist/internal/artwork"
	"github.com/ytget/songlist/internal/config"
	"github.com/ytget/songlist/internal/model"
	"github.com/ytget/songlist/internal/platform"
	"github.com/ytget/songlist/internal/songlist"
	"github.com/ytget/songlist/internal/store"
)

// storeTimeout bounds a single store call started from the UI
const storeTimeout = 10 * time.Second

// Options carries the collaborators of the song list view. Store and
// Artwork may be nil.
type Options struct {
	Store     store.SongStore
	Artwork   artwork.Loader
	Settings  *config.Settings
	SongsFile string
	Watch     bool // re-import the songs file when it changes on disk
}

// SongListView is the root content of the main window
type SongListView struct {
	window       fyne.Window
	controller   *songlist.Controller
	store        store.SongStore
	artwork      artwork.Loader
	settings     *config.Settings
	localization *Localization
	songsFile    string

	watch       bool
	watchMu     sync.Mutex
	watchedFile string
	stopWatch   context.CancelFunc

	// Header
	settingsBtn   *widget.Button
	searchBar     *SearchBar
	languageGroup *LanguageFilterGroup
	favoritesBox  *Checkbox
	sortDropdown  *Dropdown

	// Rows of the current page, reused between pages
	rows    []*SongRow
	rowsBox *fyne.Container
	swipe   *SwipeArea

	// Pager
	prevBtn   *widget.Button
	nextBtn   *widget.Button
	pageLabel *widget.Label

	content fyne.CanvasObject
}

// NewSongListView creates the view, installs it as the window content and
// the window menu.
func NewSongListView(window fyne.Window, controller *songlist.Controller, opts Options) *SongListView {
	localization := NewLocalization()
	if opts.Settings != nil {
		localization.SetLanguage(opts.Settings.GetLanguage())
	}

	v := &SongListView{
		window:       window,
		controller:   controller,
		store:        opts.Store,
		artwork:      opts.Artwork,
		settings:     opts.Settings,
		localization: localization,
		songsFile:    opts.SongsFile,
		watch:        opts.Watch,
	}
	if v.settings != nil {
		v.songsFile = v.settings.GetSongsFile(opts.SongsFile)
		controller.SetRowHeight(v.settings.GetRowHeight())
		controller.SetListHeight(v.settings.GetListHeight())
	}

	window.SetTitle(localization.GetText(KeyAppTitle))

	if v.artwork != nil {
		v.artwork.SetUpdateCallback(v.onArtworkUpdate)
	}

	v.setupUI()
	controller.SetOnChange(v.refresh)
	v.refresh()
	v.watchSongsFile(v.songsFile)

	logrus.WithField("prefix", "ui").Infof("Song list view ready, %d pages", controller.TotalPages())
	return v
}

// setupUI creates and arranges all UI components
func (v *SongListView) setupUI() {
	v.createMenu()

	v.settingsBtn = widget.NewButton(IconSettings, v.onShowSettings)
	v.settingsBtn.Importance = widget.LowImportance
	reloadBtn := widget.NewButton(IconReload, v.Reload)
	reloadBtn.Importance = widget.LowImportance

	logo := canvas.NewImageFromResource(LoadLogoResource())
	logo.SetMinSize(fyne.NewSize(32, 32))
	logo.FillMode = canvas.ImageFillContain

	v.searchBar = NewSearchBar(v.localization.GetText(KeySearchPlaceholder), v.controller.Search)
	v.languageGroup = NewLanguageFilterGroup(v.controller.SetLanguage)
	v.favoritesBox = NewControlledCheckbox(v.localization.GetText(KeyFavorites), false, v.controller.SetFavorites)

	options := make([]model.Option, 0, len(model.SortMethods()))
	for _, m := range model.SortMethods() {
		options = append(options, model.Option{Key: m.String(), Label: m.Label()})
	}
	v.sortDropdown = NewDropdown(model.SortDefault.Label(), options, func(key string) {
		v.controller.SetSortMethod(model.SortMethod(key))
	})

	filters := container.NewHBox(v.languageGroup.Container(), v.favoritesBox, v.sortDropdown)
	header := container.NewVBox(
		container.NewBorder(nil, nil, container.NewHBox(logo, v.settingsBtn, reloadBtn), nil, v.searchBar.Container()),
		filters,
	)

	v.rowsBox = container.NewVBox()
	v.swipe = NewSwipeArea(v.rowsBox, v.onGesture)

	v.prevBtn = widget.NewButton(v.localization.GetText(KeyPrev), v.onPrev)
	v.nextBtn = widget.NewButton(v.localization.GetText(KeyNext), v.onNext)
	v.pageLabel = widget.NewLabel("")
	v.pageLabel.Alignment = fyne.TextAlignCenter
	pager := container.NewBorder(nil, nil, v.prevBtn, v.nextBtn, v.pageLabel)

	body := container.NewBorder(header, pager, nil, nil, v.swipe)
	v.content = container.New(&viewportLayout{onResize: v.onViewportResize}, body)

	v.window.SetContent(v.content)
	v.window.Canvas().SetOnTypedKey(v.onTypedKey)
}

// createMenu creates the application menu
func (v *SongListView) createMenu() {
	importItem := fyne.NewMenuItem(v.localization.GetText(KeyImport), v.onImport)
	reloadItem := fyne.NewMenuItem(v.localization.GetText(KeyReload), v.Reload)
	settingsItem := fyne.NewMenuItem(v.localization.GetText(KeySettings), v.onShowSettings)

	languageMenu := fyne.NewMenu(v.localization.GetText(KeyLanguage))
	for _, code := range []string{"zh", "en"} {
		langCode := code
		name := v.localization.GetAvailableLanguages()[code]
		item := fyne.NewMenuItem(name, func() { v.onLanguageChange(langCode) })
		item.Checked = v.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, item)
	}

	v.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(v.localization.GetText(KeyFile), importItem, reloadItem, fyne.NewMenuItemSeparator(), settingsItem),
		languageMenu,
	))
}

// Content returns the root canvas object
func (v *SongListView) Content() fyne.CanvasObject {
	return v.content
}

// Controller returns the list state shown by the view
func (v *SongListView) Controller() *songlist.Controller {
	return v.controller
}

// refresh rebuilds the visible page from the controller
func (v *SongListView) refresh() {
	state := v.controller.State()
	items := v.controller.PageItems()

	for len(v.rows) < len(items) {
		row := NewSongRow(v.artwork)
		row.SetCallbacks(v.onPlay, v.onFavorite)
		v.rows = append(v.rows, row)
	}

	objects := make([]fyne.CanvasObject, 0, len(items))
	for i, song := range items {
		row := v.rows[i]
		row.SetRowHeight(state.RowHeight)
		row.Update(song, i)
		objects = append(objects, row)
	}
	v.rowsBox.Objects = objects
	v.rowsBox.Refresh()

	v.pageLabel.SetText(v.controller.PageLabel())
	setEnabled(v.prevBtn, v.controller.CanPrev())
	setEnabled(v.nextBtn, v.controller.CanNext())

	v.languageGroup.SetSelected(state.Filter.Lang)
	v.favoritesBox.SetChecked(state.Filter.IsLocal)
	v.sortDropdown.SetLabel(state.Filter.SortingMethod.Label())
}

// VisibleRows returns the rows of the current page
func (v *SongListView) VisibleRows() []*SongRow {
	out := make([]*SongRow, 0, len(v.rowsBox.Objects))
	for _, obj := range v.rowsBox.Objects {
		if row, ok := obj.(*SongRow); ok {
			out = append(out, row)
		}
	}
	return out
}

func (v *SongListView) onViewportResize(size fyne.Size) {
	height := size.Height
	if c := v.window.Canvas(); c != nil && c.Size().Height > 0 {
		height = c.Size().Height
	}
	v.controller.Resize(height)
}

func (v *SongListView) onPrev() {
	v.controller.Prev()
}

func (v *SongListView) onNext() {
	v.controller.Next()
}

func (v *SongListView) onGesture(g GestureType) {
	switch g {
	case GestureSwipeLeft:
		v.controller.Next()
	case GestureSwipeRight:
		v.controller.Prev()
	case GestureSwipeDown:
		v.Reload()
	}
}

func (v *SongListView) onTypedKey(ev *fyne.KeyEvent) {
	switch ev.Name {
	case fyne.KeyPageDown, fyne.KeyRight:
		v.controller.Next()
	case fyne.KeyPageUp, fyne.KeyLeft:
		v.controller.Prev()
	}
}

// onPlay records a performance of song
func (v *SongListView) onPlay(song model.Song) {
	logrus.Debugf("Play requested for %s (%s)", song.Name, song.ID)
	if v.store == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		updated, err := v.store.RecordPlay(ctx, song.ID, time.Now())
		if err != nil {
			logrus.Errorf("Failed to record play of %s: %v", song.ID, err)
			v.showError(v.localization.GetText(KeyLoadFailed), err)
			return
		}
		v.reloadFromStore(ctx)
		v.showToast(fmt.Sprintf("%s: %s (%d)", v.localization.GetText(KeyPlayRecorded), updated.Name, updated.Count))
	}()
}

// onFavorite persists the favorite flag of song
func (v *SongListView) onFavorite(song model.Song, favorite bool) {
	if v.store == nil {
		v.controller.UpdateSong(song)
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		if err := v.store.SetFavorite(ctx, song.ID, favorite); err != nil {
			logrus.Errorf("Failed to update favorite of %s: %v", song.ID, err)
			v.showError(v.localization.GetText(KeyFavoriteFailed), err)
		}
		// Reload in both cases so a failed toggle reverts the star
		v.reloadFromStore(ctx)
	}()
}

// Reload re-imports the songs file
func (v *SongListView) Reload() {
	if v.songsFile == "" || !platform.FileExists(v.songsFile) {
		if v.store != nil {
			go v.reloadFromStore(context.Background())
		}
		return
	}
	v.ImportFile(v.songsFile)
}

// ImportFile imports a JSON or CSV songs file into the list
func (v *SongListView) ImportFile(path string) {
	go func() {
		songs, err := platform.ImportSongs(path)
		v.HandleImported(songs, err)
	}()
}

// HandleImported applies an imported song list. It is safe to call from any
// goroutine and matches platform.SongsHandler.
func (v *SongListView) HandleImported(songs []model.Song, err error) {
	if err != nil {
		logrus.Errorf("Song import failed: %v", err)
		v.showError(v.localization.GetText(KeyImportFailed), err)
		return
	}

	if v.store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		stored, err := store.Sync(ctx, v.store, songs)
		if err != nil {
			logrus.Errorf("Failed to store imported songs: %v", err)
			v.showError(v.localization.GetText(KeyImportFailed), err)
			return
		}
		songs = stored
	}

	count := len(songs)
	logrus.Infof("Imported %d songs", count)
	fyne.Do(func() {
		v.controller.SetSongs(songs)
	})
	v.showToast(fmt.Sprintf("%s: %d", v.localization.GetText(KeySongsImported), count))
}

func (v *SongListView) reloadFromStore(ctx context.Context) {
	songs, err := v.store.ListSongs(ctx)
	if err != nil {
		logrus.Errorf("Failed to list songs: %v", err)
		v.showError(v.localization.GetText(KeyLoadFailed), err)
		return
	}
	fyne.Do(func() {
		v.controller.SetSongs(songs)
	})
}

func (v *SongListView) onImport() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		v.setSongsFile(path)
		if v.settings != nil {
			v.settings.SetSongsFile(path)
		}
		v.ImportFile(path)
	}, v.window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{platform.ExtJSON, platform.ExtCSV}))
	fd.Show()
}

// setSongsFile switches the songs file and moves the watcher to it
func (v *SongListView) setSongsFile(path string) {
	v.songsFile = path
	v.watchSongsFile(path)
}

// watchSongsFile restarts the songs file watcher on path. It does nothing
// unless watching was enabled.
func (v *SongListView) watchSongsFile(path string) {
	if !v.watch {
		return
	}
	v.watchMu.Lock()
	defer v.watchMu.Unlock()

	if v.stopWatch != nil {
		if path == v.watchedFile {
			return
		}
		v.stopWatch()
		v.stopWatch = nil
	}
	v.watchedFile = path
	if path == "" {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	v.stopWatch = cancel
	watcher := platform.NewSongFileWatcher(path, v.HandleImported)
	go func() {
		if err := watcher.Run(ctx); err != nil {
			logrus.Errorf("Songs file watcher for %s stopped: %v", path, err)
		}
	}()
}

// StopWatching stops the songs file watcher, if any
func (v *SongListView) StopWatching() {
	v.watchMu.Lock()
	defer v.watchMu.Unlock()
	if v.stopWatch != nil {
		v.stopWatch()
		v.stopWatch = nil
	}
	v.watchedFile = ""
}

func (v *SongListView) watchedPath() string {
	v.watchMu.Lock()
	defer v.watchMu.Unlock()
	return v.watchedFile
}

// onShowSettings shows the settings dialog
func (v *SongListView) onShowSettings() {
	if v.settings == nil {
		return
	}
	ShowSettingsDialog(v.window, v.settings, v.localization, v.songsFile, v.applySettings)
}

// applySettings pushes saved settings into the list and the loaders
func (v *SongListView) applySettings() {
	v.controller.SetRowHeight(v.settings.GetRowHeight())
	v.controller.SetListHeight(v.settings.GetListHeight())
	if v.artwork != nil {
		v.artwork.SetMaxParallel(v.settings.GetMaxParallelArtwork())
	}

	v.localization.SetLanguage(v.settings.GetLanguage())
	v.refreshUITexts()
	v.createMenu()

	if path := v.settings.GetSongsFile(v.songsFile); path != v.songsFile {
		v.setSongsFile(path)
		v.ImportFile(path)
	}

	v.showToast(v.localization.GetText(KeySettingsSaved))
}

// onLanguageChange handles language change
func (v *SongListView) onLanguageChange(langCode string) {
	v.localization.SetLanguage(langCode)
	if v.settings != nil {
		v.settings.SetLanguage(langCode)
	}
	v.refreshUITexts()
	v.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (v *SongListView) refreshUITexts() {
	v.window.SetTitle(v.localization.GetText(KeyAppTitle))
	v.searchBar.SetPlaceHolder(v.localization.GetText(KeySearchPlaceholder))
	v.favoritesBox.Label = v.localization.GetText(KeyFavorites)
	v.favoritesBox.Refresh()
	v.prevBtn.SetText(v.localization.GetText(KeyPrev))
	v.nextBtn.SetText(v.localization.GetText(KeyNext))
}

// onArtworkUpdate is called by the artwork service from its workers
func (v *SongListView) onArtworkUpdate(url string, res fyne.Resource) {
	fyne.Do(func() {
		for _, row := range v.VisibleRows() {
			row.ArtworkLoaded(url, res)
		}
	})
}

// showError shows an error popup. It is safe to call from any goroutine.
func (v *SongListView) showError(title string, err error) {
	fyne.Do(func() {
		widget.ShowPopUp(widget.NewLabel(title+": "+err.Error()), v.window.Canvas())
	})
}

// showToast shows a short message in the top right corner that hides itself
func (v *SongListView) showToast(message string) {
	fyne.Do(func() {
		canvasSize := v.window.Canvas().Size()
		label := widget.NewLabel(message)
		label.Wrapping = fyne.TextWrapWord

		toast := widget.NewPopUp(container.NewPadded(label), v.window.Canvas())
		toastSize := fyne.NewSize(ToastWidth, ToastHeight)
		toast.Resize(toastSize)
		toast.Move(fyne.NewPos(canvasSize.Width-toastSize.Width-ToastMargin, ToastMargin))
		toast.Show()

		time.AfterFunc(ToastAutoHide, func() {
			fyne.Do(toast.Hide)
		})
	})
}

func setEnabled(btn *widget.Button, enabled bool) {
	if enabled {
		btn.Enable()
	} else {
		btn.Disable()
	}
}

// viewportLayout stacks its objects and reports every new size
type viewportLayout struct {
	onResize func(fyne.Size)
	last     fyne.Size
}

func (l *viewportLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	for _, o := range objects {
		o.Move(fyne.NewPos(0, 0))
		o.Resize(size)
	}
	if size != l.last && l.onResize != nil {
		l.last = size
		l.onResize(size)
	}
}

func (l *viewportLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	minSize := fyne.NewSize(0, 0)
	for _, o := range objects {
		minSize = minSize.Max(o.MinSize())
	}
	return minSize
}
