package ui

import (
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// SearchBar is a text entry that reports the search term after typing pauses.
// Pressing Enter reports it at once.
type SearchBar struct {
	entry    *widget.Entry
	onUpdate func(term string)
	debounce time.Duration

	mu    sync.Mutex
	timer *time.Timer

	container *fyne.Container
}

// NewSearchBar creates a search bar with the given placeholder
func NewSearchBar(placeholder string, onUpdate func(term string)) *SearchBar {
	sb := &SearchBar{
		entry:    widget.NewEntry(),
		onUpdate: onUpdate,
		debounce: SearchDebounce,
	}

	sb.entry.SetPlaceHolder(placeholder)
	sb.entry.OnChanged = sb.schedule
	sb.entry.OnSubmitted = func(text string) {
		sb.cancel()
		sb.emit(text)
	}

	// Border keeps the entry stretching with the header
	sb.container = container.NewBorder(nil, nil, nil, nil, sb.entry)
	return sb
}

// Container returns the search bar's canvas object
func (sb *SearchBar) Container() *fyne.Container {
	return sb.container
}

// Entry returns the underlying entry
func (sb *SearchBar) Entry() *widget.Entry {
	return sb.entry
}

// SetPlaceHolder updates the placeholder text
func (sb *SearchBar) SetPlaceHolder(text string) {
	sb.entry.SetPlaceHolder(text)
}

// SetDebounce changes the typing pause used before reporting
func (sb *SearchBar) SetDebounce(d time.Duration) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.debounce = d
}

// Text returns the current entry text
func (sb *SearchBar) Text() string {
	return sb.entry.Text
}

func (sb *SearchBar) schedule(text string) {
	sb.mu.Lock()
	if sb.timer != nil {
		sb.timer.Stop()
		sb.timer = nil
	}
	if sb.debounce <= 0 {
		// Without a pause every keystroke is reported in order
		sb.mu.Unlock()
		sb.emit(text)
		return
	}
	sb.timer = time.AfterFunc(sb.debounce, func() {
		sb.emit(text)
	})
	sb.mu.Unlock()
}

func (sb *SearchBar) cancel() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	if sb.timer != nil {
		sb.timer.Stop()
		sb.timer = nil
	}
}

// emit runs onUpdate on the UI goroutine. It is called from timer goroutines
// and from the entry's change and submit handlers.
func (sb *SearchBar) emit(text string) {
	if sb.onUpdate == nil {
		return
	}
	fyne.Do(func() {
		sb.onUpdate(text)
	})
}
