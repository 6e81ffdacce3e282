package ui

// Package ui contains the Fyne user interface of the song picker: the
// paginated song list window, its search bar, language and favorites
// filters, sort dropdown, pager and settings dialog. All UI strings are
// localized via Localization.
