package config

import (
	"fyne.io/fyne/v2"

	"github.com/ytget/songlist/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyRowHeight          = "row_height"
	KeyListHeight         = "song_list_height"
	KeyLanguage           = "app_language"
	KeyMaxParallelArtwork = "max_parallel_artwork"
	KeySongsFile          = "songs_file"
)

// Default values
const (
	DefaultRowHeight          = 72
	DefaultListHeight         = 0.8
	DefaultLanguage           = "system"
	DefaultMaxParallelArtwork = 4
)

// Bounds applied by the setters
const (
	MinRowHeight          = 40
	MaxRowHeight          = 200
	MinListHeight         = 0.3
	MaxListHeight         = 0.95
	MaxParallelArtworkCap = 16
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetRowHeight returns the configured row height in pixels
func (s *Settings) GetRowHeight() float32 {
	value := s.app.Preferences().Float(KeyRowHeight)
	if value <= 0 {
		s.SetRowHeight(DefaultRowHeight)
		return DefaultRowHeight
	}
	return float32(value)
}

// SetRowHeight sets the row height
func (s *Settings) SetRowHeight(h float32) {
	if h < MinRowHeight {
		h = MinRowHeight
	}
	if h > MaxRowHeight {
		h = MaxRowHeight
	}
	s.app.Preferences().SetFloat(KeyRowHeight, float64(h))
}

// GetListHeight returns the fraction of the window used by song rows
func (s *Settings) GetListHeight() float32 {
	value := s.app.Preferences().Float(KeyListHeight)
	if value <= 0 {
		s.SetListHeight(DefaultListHeight)
		return DefaultListHeight
	}
	return float32(value)
}

// SetListHeight sets the list height fraction
func (s *Settings) SetListHeight(fraction float32) {
	if fraction < MinListHeight {
		fraction = MinListHeight
	}
	if fraction > MaxListHeight {
		fraction = MaxListHeight
	}
	s.app.Preferences().SetFloat(KeyListHeight, float64(fraction))
}

// GetMaxParallelArtwork returns the maximum number of concurrent artwork fetches
func (s *Settings) GetMaxParallelArtwork() int {
	value := s.app.Preferences().Int(KeyMaxParallelArtwork)
	if value <= 0 {
		s.SetMaxParallelArtwork(DefaultMaxParallelArtwork)
		return DefaultMaxParallelArtwork
	}
	return value
}

// SetMaxParallelArtwork sets the maximum number of concurrent artwork fetches
func (s *Settings) SetMaxParallelArtwork(count int) {
	if count < 1 {
		count = 1
	}
	if count > MaxParallelArtworkCap {
		count = MaxParallelArtworkCap
	}
	s.app.Preferences().SetInt(KeyMaxParallelArtwork, count)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	if _, ok := s.GetLanguageOptions()[lang]; !ok {
		lang = DefaultLanguage
	}
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetSongsFile returns the songs file chosen in the UI, or fallback when
// none was chosen
func (s *Settings) GetSongsFile(fallback string) string {
	path := s.app.Preferences().String(KeySongsFile)
	if path == "" || !platform.FileExists(path) {
		return fallback
	}
	return path
}

// SetSongsFile remembers the songs file
func (s *Settings) SetSongsFile(path string) {
	s.app.Preferences().SetString(KeySongsFile, path)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"zh":     "中文",
		"en":     "English",
	}
}
