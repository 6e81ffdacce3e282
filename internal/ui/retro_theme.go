package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// Retro palette
var (
	ColorNeonAccent     = color.RGBA{R: 0, G: 255, B: 200, A: 255}
	ColorNeonText       = color.RGBA{R: 190, G: 180, B: 230, A: 255}
	ColorNeonBackground = color.RGBA{R: 20, G: 16, B: 36, A: 255}
	ColorPanel          = color.RGBA{R: 36, G: 30, B: 62, A: 255}
	ColorRowSeparator   = color.RGBA{R: 75, G: 85, B: 99, A: 255}
)

// RetroTheme is a dark, compact neon theme for the song list
type RetroTheme struct{}

// NewRetroTheme creates a new retro theme
func NewRetroTheme() fyne.Theme {
	return &RetroTheme{}
}

// Color returns theme colors. The palette is dark regardless of variant.
func (t *RetroTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary, theme.ColorNameFocus:
		return ColorNeonAccent
	case theme.ColorNameBackground:
		return ColorNeonBackground
	case theme.ColorNameInputBackground, theme.ColorNameButton, theme.ColorNameMenuBackground,
		theme.ColorNameOverlayBackground:
		return ColorPanel
	case theme.ColorNameForeground:
		return color.White
	case theme.ColorNamePlaceHolder, theme.ColorNameDisabled:
		return ColorNeonText
	case theme.ColorNameSeparator:
		return ColorRowSeparator
	case theme.ColorNameHover:
		return color.RGBA{R: 0, G: 255, B: 200, A: 40}
	}

	return theme.DefaultTheme().Color(name, theme.VariantDark)
}

// Font returns theme fonts
func (t *RetroTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns theme icons
func (t *RetroTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns theme sizes with compact adjustments
func (t *RetroTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameLineSpacing:
		return 2
	case theme.SizeNameScrollBar:
		return 10
	case theme.SizeNameText:
		return 14
	case theme.SizeNameCaptionText:
		return 11
	case theme.SizeNameInputRadius, theme.SizeNameSelectionRadius:
		return 0 // square corners
	}

	return theme.DefaultTheme().Size(name)
}
