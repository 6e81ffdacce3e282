package songlist

import (
	"fmt"
	"testing"

	"github.com/ytget/songlist/internal/catalog"
	"github.com/ytget/songlist/internal/model"
)

func makeSongs(n int) []model.Song {
	songs := make([]model.Song, n)
	for i := range songs {
		songs[i] = model.Song{ID: fmt.Sprintf("%d", i), Name: fmt.Sprintf("Song %02d", i)}
	}
	return songs
}

type recordingFilter struct {
	calls  int
	result []model.Song
	terms  []string
	states []model.FilterState
}

func (r *recordingFilter) filter(songs []model.Song, term string, state model.FilterState) []model.Song {
	r.calls++
	r.terms = append(r.terms, term)
	r.states = append(r.states, state)
	if r.result != nil {
		return r.result
	}
	return songs
}

func TestCapacity(t *testing.T) {
	tests := []struct {
		viewport, fraction, row float32
		expected                int
	}{
		{900, 0.8, 72, 9},
		{800, 0.5, 35, 10},
		{100, 0.8, 72, 1},
		{50, 0.8, 72, 1},
		{0, 0.8, 72, 1},
		{-10, 0.8, 72, 1},
		{900, 0, 72, 1},
		{1000, 1, -5, 1},
		{1000, 1, -100, 1},
	}

	for _, test := range tests {
		result := Capacity(test.viewport, test.fraction, test.row)
		if result != test.expected {
			t.Errorf("Capacity(%v, %v, %v) = %d, expected %d",
				test.viewport, test.fraction, test.row, result, test.expected)
		}
	}
}

func TestNew_Defaults(t *testing.T) {
	c := New(makeSongs(3), 0, 0, nil)
	s := c.State()

	if s.RowHeight != DefaultRowHeight || s.ListHeight != DefaultListHeight {
		t.Errorf("Expected default heights, got %v / %v", s.RowHeight, s.ListHeight)
	}
	if s.PageIndex != 1 || s.PerPage != 1 {
		t.Errorf("Expected page 1 with capacity 1, got %d / %d", s.PageIndex, s.PerPage)
	}
	if s.Matches != 3 {
		t.Errorf("Working list should start as the full catalog, got %d", s.Matches)
	}
	if !s.Filter.IsDefault() {
		t.Errorf("Expected default filter state, got %+v", s.Filter)
	}
}

func TestController_Pagination(t *testing.T) {
	c := New(makeSongs(25), 72, 0.8, catalog.FilterSongs)
	c.Resize(900)

	if c.PerPage() != 9 {
		t.Fatalf("Expected 9 rows per page, got %d", c.PerPage())
	}
	if c.TotalPages() != 3 {
		t.Fatalf("Expected 3 pages, got %d", c.TotalPages())
	}
	if c.PageLabel() != "1 / 3" {
		t.Errorf("Expected label 1 / 3, got %s", c.PageLabel())
	}

	items := c.PageItems()
	if len(items) != 9 || items[0].ID != "0" || items[8].ID != "8" {
		t.Errorf("Unexpected first page: %d items", len(items))
	}
	if c.CanPrev() || !c.CanNext() {
		t.Error("First page should allow next only")
	}
	if c.Prev() {
		t.Error("Prev on the first page should be a no-op")
	}

	c.Next()
	c.Next()
	if c.PageIndex() != 3 {
		t.Fatalf("Expected page 3, got %d", c.PageIndex())
	}
	items = c.PageItems()
	if len(items) != 7 || items[0].ID != "18" || items[6].ID != "24" {
		t.Errorf("Unexpected last page: %+v", items)
	}
	if c.Next() {
		t.Error("Next on the last page should be a no-op")
	}
	if c.PageIndex() != 3 {
		t.Errorf("Page index should stay 3, got %d", c.PageIndex())
	}
	if !c.Prev() || c.PageIndex() != 2 {
		t.Errorf("Prev should move back to page 2, got %d", c.PageIndex())
	}
}

func TestController_ResizeClampsPageDown(t *testing.T) {
	c := New(makeSongs(25), 72, 0.8, nil)
	c.Resize(900)
	c.Next()
	c.Next()

	c.Resize(3000)
	if c.PerPage() != 31 {
		t.Fatalf("Expected 31 rows per page, got %d", c.PerPage())
	}
	if c.PageIndex() != 1 {
		t.Errorf("Page index should be clamped to 1, got %d", c.PageIndex())
	}

	c.Resize(100)
	if c.PageIndex() != 1 {
		t.Errorf("Resize must never raise the page index, got %d", c.PageIndex())
	}
	if c.TotalPages() != 25 {
		t.Errorf("Expected 25 pages of one row, got %d", c.TotalPages())
	}
}

func TestController_ResizeKeepsValidPage(t *testing.T) {
	c := New(makeSongs(25), 72, 0.8, nil)
	c.Resize(900)
	c.Next()

	c.Resize(800)
	// 640/77 = 8 rows, 4 pages
	if c.PageIndex() != 2 {
		t.Errorf("Expected page 2 to be kept, got %d", c.PageIndex())
	}
}

func TestController_SearchWithoutMatches(t *testing.T) {
	c := New(makeSongs(25), 72, 0.8, catalog.FilterSongs)
	c.Resize(900)

	c.Search("ABC")

	if c.PageLabel() != "1 / 0" {
		t.Errorf("Expected label 1 / 0, got %s", c.PageLabel())
	}
	if len(c.PageItems()) != 0 {
		t.Error("Expected no rows")
	}
	if c.CanPrev() || c.CanNext() {
		t.Error("Both pager buttons should be disabled")
	}
}

func TestController_EmptySearchSkipsFilter(t *testing.T) {
	rec := &recordingFilter{result: makeSongs(2)}
	c := New(makeSongs(25), 72, 0.8, rec.filter)
	c.Resize(900)

	c.Search("  song ")
	if rec.calls != 1 || rec.terms[0] != "song" {
		t.Fatalf("Expected one filter call with trimmed term, got %d %v", rec.calls, rec.terms)
	}
	if c.State().Matches != 2 {
		t.Errorf("Expected 2 matches, got %d", c.State().Matches)
	}

	c.Search("   ")
	if rec.calls != 1 {
		t.Errorf("Blank search must not call the filter, calls=%d", rec.calls)
	}
	if c.State().Matches != 25 || c.PageIndex() != 1 {
		t.Errorf("Blank search should restore the full catalog on page 1, got %+v", c.State())
	}
}

func TestController_FilterChangeResetsPage(t *testing.T) {
	rec := &recordingFilter{}
	c := New(makeSongs(25), 72, 0.8, rec.filter)
	c.Resize(900)
	c.Next()
	c.Next()

	c.SetSortMethod(model.SortFrequently)

	if c.PageIndex() != 1 {
		t.Errorf("Filter change should reset to page 1, got %d", c.PageIndex())
	}
	if got := rec.states[len(rec.states)-1].SortingMethod; got != model.SortFrequently {
		t.Errorf("Filter received sort %s", got)
	}
}

func TestController_LanguageToggle(t *testing.T) {
	rec := &recordingFilter{}
	c := New(makeSongs(5), 72, 0.8, rec.filter)

	steps := []struct {
		lang     string
		expected string
	}{
		{"", ""},
		{model.LanguageJapanese, model.LanguageJapanese},
		{"", ""},
		{"klingon", ""},
	}

	for i, step := range steps {
		c.SetLanguage(step.lang)
		if got := c.State().Filter.Lang; got != step.expected {
			t.Errorf("step %d: expected lang %q, got %q", i, step.expected, got)
		}
		if got := rec.states[i].Lang; got != step.expected {
			t.Errorf("step %d: filter received lang %q", i, got)
		}
	}
}

func TestController_Favorites(t *testing.T) {
	songs := makeSongs(4)
	songs[1].IsLocal = true
	songs[3].IsLocal = true
	c := New(songs, 72, 0.8, catalog.FilterSongs)
	c.Resize(900)

	c.SetFavorites(true)
	items := c.PageItems()
	if len(items) != 2 || items[0].ID != "1" || items[1].ID != "3" {
		t.Errorf("Expected favorites 1 and 3, got %+v", items)
	}

	c.SetFavorites(false)
	if c.State().Matches != 4 {
		t.Errorf("Expected full list after clearing favorites, got %d", c.State().Matches)
	}
}

func TestController_SetSongsKeepsPage(t *testing.T) {
	c := New(makeSongs(25), 72, 0.8, nil)
	c.Resize(900)
	c.Next()

	c.SetSongs(makeSongs(26))
	if c.PageIndex() != 2 {
		t.Errorf("Expected page 2 after reload, got %d", c.PageIndex())
	}

	c.SetSongs(makeSongs(3))
	if c.PageIndex() != 1 {
		t.Errorf("Expected page clamped to 1, got %d", c.PageIndex())
	}
}

func TestController_RowAndListHeight(t *testing.T) {
	c := New(makeSongs(25), 72, 0.8, nil)
	c.Resize(900)

	c.SetRowHeight(35)
	// 720/40 = 18
	if c.PerPage() != 18 {
		t.Errorf("Expected 18 rows, got %d", c.PerPage())
	}

	c.SetListHeight(0.5)
	// 450/40 = 11
	if c.PerPage() != 11 {
		t.Errorf("Expected 11 rows, got %d", c.PerPage())
	}
}

func TestController_OnChange(t *testing.T) {
	c := New(makeSongs(25), 72, 0.8, nil)
	calls := 0
	c.SetOnChange(func() { calls++ })

	c.Resize(900)
	c.Next()
	c.Prev()
	c.Prev()

	if calls != 3 {
		t.Errorf("Expected 3 change notifications, got %d", calls)
	}
}

func TestController_PageItemsIsCopy(t *testing.T) {
	c := New(makeSongs(3), 72, 0.8, nil)
	c.Resize(900)

	items := c.PageItems()
	items[0].Name = "changed"

	if c.PageItems()[0].Name == "changed" {
		t.Error("PageItems should return a copy")
	}
}

func TestDerive(t *testing.T) {
	songs := makeSongs(3)

	if got := Derive(songs, "x", model.DefaultFilterState(), nil); len(got) != 3 {
		t.Errorf("nil filter should return the catalog, got %d", len(got))
	}

	rec := &recordingFilter{}
	Derive(songs, "  term ", model.DefaultFilterState(), rec.filter)
	if rec.terms[0] != "term" {
		t.Errorf("Derive should trim the term, got %q", rec.terms[0])
	}
}

func TestController_UpdateSong(t *testing.T) {
	c := New(makeSongs(25), 72, 0.8, catalog.FilterSongs)
	c.Resize(900)
	c.Next()

	song := makeSongs(25)[12]
	song.IsLocal = true
	if !c.UpdateSong(song) {
		t.Fatal("UpdateSong should find song 12")
	}
	if c.PageIndex() != 2 {
		t.Errorf("Expected page 2 to be kept, got %d", c.PageIndex())
	}

	c.SetFavorites(true)
	items := c.PageItems()
	if len(items) != 1 || items[0].ID != "12" {
		t.Errorf("Expected only song 12 as favorite, got %+v", items)
	}

	if c.UpdateSong(model.Song{ID: "missing"}) {
		t.Error("UpdateSong should report unknown IDs")
	}
}
