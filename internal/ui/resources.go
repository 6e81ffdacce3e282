package ui

import (
	_ "embed"

	"fyne.io/fyne/v2"
)

const (
	AppIcon         = "songlist.png"
	FallbackArtwork = "favicon.png"
)

//go:embed assets/fallback.png
var fallbackArtworkPNG []byte

// FallbackArtworkResource is shown for songs without artwork or whose
// artwork failed to load
var FallbackArtworkResource = fyne.NewStaticResource(FallbackArtwork, fallbackArtworkPNG)

// LoadLogoResource loads the logo from file path, falling back to the
// embedded artwork
func LoadLogoResource() fyne.Resource {
	res, err := fyne.LoadResourceFromPath(AppIcon)
	if err != nil {
		return FallbackArtworkResource
	}
	return res
}
