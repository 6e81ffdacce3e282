package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings   = "⚙"
	IconPrev       = "◀"
	IconNext       = "▶"
	IconDropDown   = "▾"
	IconStarEmpty  = "☆"
	IconStarFilled = "★"
	IconReload     = "⟳"
	IconFolder     = "📁"
)

// Layout sizing (SongRow / header)
const (
	ArtworkSize       float32 = 56
	ArtworkSizeMobile float32 = 48
	StatsColumnWidth  float32 = 140
	DropdownMenuWidth float32 = 128
	DropdownMenuH     float32 = 160
	RowMinWidth       float32 = 320

	// Touch target minimum sizes (iOS/Android guidelines)
	MinTouchTargetSize float32 = 44
)

// Toast notification sizing and behavior
const (
	ToastWidth    float32 = 300
	ToastHeight   float32 = 80
	ToastMargin   float32 = 20
	ToastAutoHide         = 4 * time.Second
)

// SearchDebounce is the typing pause before a search term is applied
const SearchDebounce = 200 * time.Millisecond
