package songlist

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/ytget/songlist/internal/model"
)

const (
	// DefaultRowHeight is the height of one row in pixels
	DefaultRowHeight float32 = 72

	// DefaultListHeight is the fraction of the viewport used by rows
	DefaultListHeight float32 = 0.8

	// RowGap is the spacing added below every row
	RowGap float32 = 5
)

// FilterFunc narrows and orders the source catalog.
type FilterFunc func(songs []model.Song, term string, state model.FilterState) []model.Song

// State is a snapshot of the controller.
type State struct {
	PageIndex      int
	PerPage        int
	TotalPages     int
	Matches        int
	Term           string
	Filter         model.FilterState
	RowHeight      float32
	ListHeight     float32
	ViewportHeight float32
}

// Controller manages filtering and pagination of a song catalog.
type Controller struct {
	mu sync.RWMutex

	source  []model.Song
	working []model.Song

	pageIndex int
	perPage   int

	state model.FilterState
	term  string

	rowHeight  float32
	listHeight float32
	viewport   float32

	filter   FilterFunc
	onChange func()
}

// New creates a controller showing every song on a single-row page until
// the first Resize. Non-positive heights fall back to the defaults.
func New(songs []model.Song, rowHeight, listHeight float32, filter FilterFunc) *Controller {
	if rowHeight <= 0 {
		rowHeight = DefaultRowHeight
	}
	if listHeight <= 0 {
		listHeight = DefaultListHeight
	}
	source := cloneSongs(songs)
	return &Controller{
		source:     source,
		working:    source,
		pageIndex:  1,
		perPage:    1,
		state:      model.DefaultFilterState(),
		rowHeight:  rowHeight,
		listHeight: listHeight,
		filter:     filter,
	}
}

// Capacity returns how many rows fit into listHeight of the viewport. It is
// never less than one.
func Capacity(viewportHeight, listHeight, rowHeight float32) int {
	slot := float64(rowHeight) + float64(RowGap)
	if slot <= 0 || viewportHeight <= 0 || listHeight <= 0 {
		return 1
	}
	n := math.Floor(float64(viewportHeight) * float64(listHeight) / slot)
	if math.IsNaN(n) || n < 1 {
		return 1
	}
	if n > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(n)
}

// Derive computes the working list for a search term and filter state.
// A nil filter returns a copy of songs.
func Derive(songs []model.Song, term string, state model.FilterState, filter FilterFunc) []model.Song {
	if filter == nil {
		return cloneSongs(songs)
	}
	return filter(songs, strings.TrimSpace(term), state)
}

// SetOnChange registers a callback invoked after every state change.
func (c *Controller) SetOnChange(fn func()) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

// Resize recomputes the page capacity for a new viewport height. The page
// index is lowered when it falls past the last page, never raised.
func (c *Controller) Resize(viewportHeight float32) {
	c.mu.Lock()
	c.viewport = viewportHeight
	changed := c.recomputeLocked()
	c.mu.Unlock()

	if changed {
		c.notify()
	}
}

// SetRowHeight changes the row height and recomputes the capacity.
func (c *Controller) SetRowHeight(h float32) {
	if h <= 0 {
		h = DefaultRowHeight
	}
	c.mu.Lock()
	c.rowHeight = h
	c.recomputeLocked()
	c.mu.Unlock()
	c.notify()
}

// SetListHeight changes the list height fraction and recomputes the capacity.
func (c *Controller) SetListHeight(fraction float32) {
	if fraction <= 0 {
		fraction = DefaultListHeight
	}
	c.mu.Lock()
	c.listHeight = fraction
	c.recomputeLocked()
	c.mu.Unlock()
	c.notify()
}

// Search applies a search term. An empty or blank term restores the full
// catalog without running the filter.
func (c *Controller) Search(term string) {
	term = strings.TrimSpace(term)

	c.mu.Lock()
	if term == "" {
		c.term = ""
		c.working = c.source
		c.pageIndex = 1
		c.recomputeLocked()
		c.mu.Unlock()
		logrus.Debug("Search cleared, showing full catalog")
		c.notify()
		return
	}
	c.term = term
	c.refreshLocked()
	c.mu.Unlock()
	c.notify()
}

// SetLanguage selects a language filter. An empty or unknown language
// clears it.
func (c *Controller) SetLanguage(lang string) {
	c.updateFilter(func(s model.FilterState) model.FilterState { return s.WithLanguage(lang) })
}

// SetFavorites toggles the favorites-only filter.
func (c *Controller) SetFavorites(on bool) {
	c.updateFilter(func(s model.FilterState) model.FilterState { return s.WithFavorites(on) })
}

// SetSortMethod changes the ordering of the working list.
func (c *Controller) SetSortMethod(m model.SortMethod) {
	c.updateFilter(func(s model.FilterState) model.FilterState { return s.WithSortMethod(m) })
}

func (c *Controller) updateFilter(apply func(model.FilterState) model.FilterState) {
	c.mu.Lock()
	c.state = apply(c.state)
	c.refreshLocked()
	c.mu.Unlock()
	c.notify()
}

// SetSongs replaces the source catalog and re-applies the current search and
// filters. The page index is kept when still valid.
func (c *Controller) SetSongs(songs []model.Song) {
	c.mu.Lock()
	page := c.pageIndex
	c.source = cloneSongs(songs)
	c.refreshLocked()
	c.pageIndex = page
	c.recomputeLocked()
	c.mu.Unlock()
	c.notify()
}

// UpdateSong replaces the source entry with the same ID and re-applies the
// current search and filters. It reports whether the ID was found.
func (c *Controller) UpdateSong(song model.Song) bool {
	c.mu.Lock()
	found := false
	for i := range c.source {
		if c.source[i].ID == song.ID {
			c.source[i] = song
			found = true
		}
	}
	if !found {
		c.mu.Unlock()
		return false
	}
	page := c.pageIndex
	c.refreshLocked()
	c.pageIndex = page
	c.recomputeLocked()
	c.mu.Unlock()
	c.notify()
	return true
}

// TotalPages returns the number of pages of the working list.
func (c *Controller) TotalPages() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.totalPagesLocked()
}

// PageIndex returns the 1-based current page.
func (c *Controller) PageIndex() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.pageIndex
}

// PerPage returns the current page capacity.
func (c *Controller) PerPage() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.perPage
}

// PageItems returns the songs on the current page.
func (c *Controller) PageItems() []model.Song {
	c.mu.RLock()
	defer c.mu.RUnlock()

	start := (c.pageIndex - 1) * c.perPage
	if start < 0 || start >= len(c.working) {
		return nil
	}
	end := start + c.perPage
	if end > len(c.working) {
		end = len(c.working)
	}
	return cloneSongs(c.working[start:end])
}

// CanPrev reports whether a previous page exists.
func (c *Controller) CanPrev() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.pageIndex > 1
}

// CanNext reports whether a next page exists.
func (c *Controller) CanNext() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.pageIndex < c.totalPagesLocked()
}

// Prev moves to the previous page. It does nothing on the first page.
func (c *Controller) Prev() bool {
	c.mu.Lock()
	if c.pageIndex <= 1 {
		c.mu.Unlock()
		return false
	}
	c.pageIndex--
	c.mu.Unlock()
	c.notify()
	return true
}

// Next moves to the next page. It does nothing on the last page.
func (c *Controller) Next() bool {
	c.mu.Lock()
	if c.pageIndex >= c.totalPagesLocked() {
		c.mu.Unlock()
		return false
	}
	c.pageIndex++
	c.mu.Unlock()
	c.notify()
	return true
}

// PageLabel returns the pager caption, e.g. "2 / 5".
func (c *Controller) PageLabel() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return fmt.Sprintf("%d / %d", c.pageIndex, c.totalPagesLocked())
}

// State returns a snapshot of the controller.
func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return State{
		PageIndex:      c.pageIndex,
		PerPage:        c.perPage,
		TotalPages:     c.totalPagesLocked(),
		Matches:        len(c.working),
		Term:           c.term,
		Filter:         c.state,
		RowHeight:      c.rowHeight,
		ListHeight:     c.listHeight,
		ViewportHeight: c.viewport,
	}
}

func (c *Controller) refreshLocked() {
	c.working = Derive(c.source, c.term, c.state, c.filter)
	c.pageIndex = 1
	c.recomputeLocked()
	logrus.Debugf("Song list refreshed: term=%q lang=%q favorites=%t sort=%s matches=%d",
		c.term, c.state.Lang, c.state.IsLocal, c.state.SortingMethod, len(c.working))
}

// recomputeLocked updates perPage and clamps the page index. It reports
// whether either value changed.
func (c *Controller) recomputeLocked() bool {
	perPage, page := c.perPage, c.pageIndex
	c.perPage = Capacity(c.viewport, c.listHeight, c.rowHeight)

	if total := c.totalPagesLocked(); c.pageIndex > total {
		c.pageIndex = total
	}
	if c.pageIndex < 1 {
		c.pageIndex = 1
	}
	return perPage != c.perPage || page != c.pageIndex
}

func (c *Controller) totalPagesLocked() int {
	if c.perPage < 1 {
		return 0
	}
	return (len(c.working) + c.perPage - 1) / c.perPage
}

func (c *Controller) notify() {
	c.mu.RLock()
	fn := c.onChange
	c.mu.RUnlock()
	if fn != nil {
		fn()
	}
}

func cloneSongs(songs []model.Song) []model.Song {
	if songs == nil {
		return nil
	}
	out := make([]model.Song, len(songs))
	copy(out, songs)
	return out
}
