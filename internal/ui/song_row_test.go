package ui

import (
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"

	"github.com/ytget/songlist/internal/artwork"
	"github.com/ytget/songlist/internal/model"
)

type fakeLoader struct {
	images   map[string]fyne.Resource
	requests []string
	fallback fyne.Resource
}

func newFakeLoader() *fakeLoader {
	return &fakeLoader{
		images:   map[string]fyne.Resource{},
		fallback: FallbackArtworkResource,
	}
}

func (f *fakeLoader) SetUpdateCallback(func(string, fyne.Resource)) {}

func (f *fakeLoader) Request(url string) (fyne.Resource, bool) {
	f.requests = append(f.requests, url)
	if res, ok := f.images[url]; ok {
		return res, true
	}
	return f.fallback, false
}

func (f *fakeLoader) Status(string) artwork.Status { return artwork.StatusUnknown }
func (f *fakeLoader) SetMaxParallel(int)           {}
func (f *fakeLoader) Fallback() fyne.Resource      { return f.fallback }

func TestSongRow_HidesEmptyLines(t *testing.T) {
	test.NewApp()
	row := NewSongRow(nil)
	w := test.NewWindow(row)
	defer w.Close()

	row.Update(model.Song{ID: "1", Name: " 晴天 "}, 0)

	if row.nameLabel.Text != "晴天" {
		t.Errorf("Expected trimmed name, got %q", row.nameLabel.Text)
	}
	if row.translatedLabel.Visible() {
		t.Error("Empty translated name should be hidden")
	}
	if row.remarksLabel.Visible() {
		t.Error("Empty remarks should be hidden")
	}
	if row.artistLabel.Visible() {
		t.Error("Empty artist should be hidden")
	}
	if row.statsLabel.Text != "— / 0" {
		t.Errorf("Expected never-sung stats, got %q", row.statsLabel.Text)
	}
}

func TestSongRow_ShowsAllLines(t *testing.T) {
	test.NewApp()
	row := NewSongRow(nil)
	w := test.NewWindow(row)
	defer w.Close()

	row.Update(model.Song{
		ID:             "1",
		Name:           "Lemon",
		TranslatedName: "柠檬",
		Remarks:        "drama",
		Artist:         "米津玄師",
		LastSung:       time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC),
		Count:          12,
	}, 0)

	if !row.translatedLabel.Visible() || row.translatedLabel.Text != "柠檬" {
		t.Errorf("Translated name not shown: %q", row.translatedLabel.Text)
	}
	if !row.remarksLabel.Visible() || !row.artistLabel.Visible() {
		t.Error("Remarks and artist should be visible")
	}
	if row.statsLabel.Text != "2024-05-01 / 12" {
		t.Errorf("Expected stats 2024-05-01 / 12, got %q", row.statsLabel.Text)
	}

	// Reusing the row for a sparse song hides the lines again
	row.Update(model.Song{ID: "2", Name: "x"}, 1)
	if row.translatedLabel.Visible() || row.artistLabel.Visible() {
		t.Error("Reused row should hide empty lines")
	}
}

func TestSongRow_Artwork(t *testing.T) {
	test.NewApp()
	loader := newFakeLoader()
	cover := fyne.NewStaticResource("cover.png", []byte{1})
	loader.images["http://img/a.png"] = cover

	row := NewSongRow(loader)
	w := test.NewWindow(row)
	defer w.Close()

	row.Update(model.Song{ID: "1", Name: "a", ArtworkURL: " http://img/a.png "}, 0)
	if row.artworkImage.Resource != cover {
		t.Error("Cached artwork should be shown at once")
	}

	row.Update(model.Song{ID: "2", Name: "b", ArtworkURL: "http://img/b.png"}, 0)
	if row.artworkImage.Resource != FallbackArtworkResource {
		t.Error("Fallback should be shown while loading")
	}

	late := fyne.NewStaticResource("late.png", []byte{2})
	row.ArtworkLoaded("http://img/other.png", late)
	if row.artworkImage.Resource == late {
		t.Error("Artwork for another URL must be ignored")
	}
	row.ArtworkLoaded("http://img/b.png", late)
	if row.artworkImage.Resource != late {
		t.Error("Loaded artwork should replace the fallback")
	}
}

func TestSongRow_Callbacks(t *testing.T) {
	test.NewApp()
	row := NewSongRow(nil)
	w := test.NewWindow(row)
	defer w.Close()

	var played []string
	var favorites []bool
	row.SetCallbacks(
		func(s model.Song) { played = append(played, s.ID) },
		func(s model.Song, fav bool) { favorites = append(favorites, fav) },
	)
	row.Update(model.Song{ID: "7", Name: "x"}, 0)

	test.Tap(row)
	if len(played) != 1 || played[0] != "7" {
		t.Errorf("Expected play of 7, got %v", played)
	}

	test.Tap(row.favoriteBtn)
	if len(favorites) != 1 || !favorites[0] {
		t.Errorf("Expected favorite true, got %v", favorites)
	}
	if row.favoriteBtn.Text != IconStarFilled {
		t.Errorf("Expected filled star, got %q", row.favoriteBtn.Text)
	}
	if !row.Song().IsLocal {
		t.Error("Row should keep the new favorite flag")
	}
}

func TestSongRow_MinHeight(t *testing.T) {
	test.NewApp()
	row := NewSongRow(nil)
	row.SetRowHeight(150)
	if h := row.MinSize().Height; h < 150 {
		t.Errorf("Row min height %v is below the row height", h)
	}
}
