package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/songlist/internal/artwork"
	"github.com/ytget/songlist/internal/catalog"
	"github.com/ytget/songlist/internal/model"
)

// SongRow renders one song of the visible page
type SongRow struct {
	widget.BaseWidget

	song    model.Song
	display model.DisplaySong
	loader  artwork.Loader

	rowHeight float32

	// Callbacks
	onPlay     func(song model.Song)
	onFavorite func(song model.Song, favorite bool)

	// UI components
	artworkImage    *canvas.Image
	nameLabel       *widget.Label
	translatedLabel *canvas.Text
	remarksLabel    *canvas.Text
	artistLabel     *widget.Label
	statsLabel      *widget.Label
	favoriteBtn     *widget.Button
	separator       *canvas.Rectangle
	content         *fyne.Container
}

// NewSongRow creates an empty row. loader may be nil, in which case the
// fallback artwork is always shown.
func NewSongRow(loader artwork.Loader) *SongRow {
	r := &SongRow{
		loader:    loader,
		rowHeight: ArtworkSize,
	}
	r.ExtendBaseWidget(r)
	r.createUI()
	return r
}

func (r *SongRow) createUI() {
	r.artworkImage = canvas.NewImageFromResource(r.fallback())
	r.artworkImage.FillMode = canvas.ImageFillContain
	size := ArtworkSize
	if fyne.CurrentDevice().IsMobile() {
		size = ArtworkSizeMobile
	}
	r.artworkImage.SetMinSize(fyne.NewSquareSize(size))

	r.nameLabel = widget.NewLabel("")
	r.nameLabel.TextStyle = fyne.TextStyle{Bold: true}
	r.nameLabel.Truncation = fyne.TextTruncateEllipsis

	// Secondary lines use caption text so three lines fit the default row height
	r.translatedLabel = canvas.NewText("", ColorNeonText)
	r.translatedLabel.TextSize = theme.CaptionTextSize()

	r.remarksLabel = canvas.NewText("", ColorNeonText)
	r.remarksLabel.TextSize = theme.CaptionTextSize()
	r.remarksLabel.TextStyle = fyne.TextStyle{Italic: true}

	r.artistLabel = widget.NewLabel("")
	r.artistLabel.Alignment = fyne.TextAlignTrailing
	r.artistLabel.Truncation = fyne.TextTruncateEllipsis

	r.statsLabel = widget.NewLabel("")
	r.statsLabel.Alignment = fyne.TextAlignTrailing
	r.statsLabel.Importance = widget.LowImportance

	r.favoriteBtn = widget.NewButton(IconStarEmpty, r.onFavoriteClick)
	r.favoriteBtn.Importance = widget.LowImportance

	r.separator = canvas.NewRectangle(ColorRowSeparator)
	r.separator.SetMinSize(fyne.NewSize(1, 1))

	texts := container.NewVBox(r.nameLabel, r.translatedLabel, r.remarksLabel)

	statsWidth := canvas.NewRectangle(nil)
	statsWidth.SetMinSize(fyne.NewSize(StatsColumnWidth, 0))
	stats := container.NewStack(statsWidth, container.NewVBox(layout.NewSpacer(), r.artistLabel, r.statsLabel, layout.NewSpacer()))

	right := container.NewHBox(stats, container.NewCenter(r.favoriteBtn))
	row := container.NewBorder(nil, nil, container.NewCenter(r.artworkImage), right, texts)

	r.content = container.NewBorder(nil, r.separator, nil, nil, row)
}

// SetCallbacks sets the row actions
func (r *SongRow) SetCallbacks(onPlay func(model.Song), onFavorite func(model.Song, bool)) {
	r.onPlay = onPlay
	r.onFavorite = onFavorite
}

// SetRowHeight sets the minimum height of the row
func (r *SongRow) SetRowHeight(h float32) {
	if h <= 0 {
		return
	}
	r.rowHeight = h
	r.Refresh()
}

// Update shows song at position index of the page
func (r *SongRow) Update(song model.Song, index int) {
	r.song = song
	r.display = catalog.Canonicalize(song, index)

	r.nameLabel.SetText(r.display.SongName)
	setOptionalCaption(r.translatedLabel, r.display.SongTranslatedName)
	setOptionalCaption(r.remarksLabel, r.display.Remarks)
	setOptionalText(r.artistLabel, r.display.Artist)
	r.statsLabel.SetText(r.display.StatsLine())
	r.updateFavoriteButton()

	res, _ := r.artworkFor(r.display.ArtworkURL)
	r.setArtwork(res)
}

// Song returns the song shown by the row
func (r *SongRow) Song() model.Song {
	return r.song
}

// Display returns the canonical values shown by the row
func (r *SongRow) Display() model.DisplaySong {
	return r.display
}

// ArtworkLoaded is called when the artwork of url becomes available
func (r *SongRow) ArtworkLoaded(url string, res fyne.Resource) {
	if url != r.display.ArtworkURL {
		return
	}
	r.setArtwork(res)
}

// Tapped records a play of the song
func (r *SongRow) Tapped(*fyne.PointEvent) {
	if r.onPlay != nil && r.song.ID != "" {
		r.onPlay(r.song)
	}
}

func (r *SongRow) onFavoriteClick() {
	if r.song.ID == "" {
		return
	}
	r.song.IsLocal = !r.song.IsLocal
	r.updateFavoriteButton()
	if r.onFavorite != nil {
		r.onFavorite(r.song, r.song.IsLocal)
	}
}

func (r *SongRow) updateFavoriteButton() {
	if r.song.IsLocal {
		r.favoriteBtn.SetText(IconStarFilled)
		r.favoriteBtn.Importance = widget.HighImportance
	} else {
		r.favoriteBtn.SetText(IconStarEmpty)
		r.favoriteBtn.Importance = widget.LowImportance
	}
	r.favoriteBtn.Refresh()
}

func (r *SongRow) artworkFor(url string) (fyne.Resource, bool) {
	if r.loader == nil {
		return r.fallback(), true
	}
	return r.loader.Request(url)
}

func (r *SongRow) setArtwork(res fyne.Resource) {
	if res == nil {
		res = r.fallback()
	}
	r.artworkImage.Resource = res
	r.artworkImage.Refresh()
}

func (r *SongRow) fallback() fyne.Resource {
	if r.loader != nil && r.loader.Fallback() != nil {
		return r.loader.Fallback()
	}
	return FallbackArtworkResource
}

// CreateRenderer creates the widget renderer
func (r *SongRow) CreateRenderer() fyne.WidgetRenderer {
	return &songRowRenderer{row: r}
}

type songRowRenderer struct {
	row *SongRow
}

func (sr *songRowRenderer) Layout(size fyne.Size) {
	sr.row.content.Resize(size)
}

func (sr *songRowRenderer) MinSize() fyne.Size {
	size := sr.row.content.MinSize()
	if size.Width < RowMinWidth {
		size.Width = RowMinWidth
	}
	if size.Height < sr.row.rowHeight {
		size.Height = sr.row.rowHeight
	}
	return size
}

func (sr *songRowRenderer) Refresh() {
	sr.row.content.Refresh()
}

func (sr *songRowRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{sr.row.content}
}

func (sr *songRowRenderer) Destroy() {}

// setOptionalText shows the label with text, or hides it when text is empty
func setOptionalText(label *widget.Label, text string) {
	label.SetText(text)
	if text == "" {
		label.Hide()
	} else {
		label.Show()
	}
}

func setOptionalCaption(text *canvas.Text, value string) {
	text.Text = value
	if value == "" {
		text.Hide()
	} else {
		text.Show()
	}
	text.Refresh()
}
