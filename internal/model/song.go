package model

import (
	"fmt"
	"strings"
	"time"
)

// Song is a single entry of the karaoke catalog.
type Song struct {
	ID             string    `json:"id"`
	Name           string    `json:"song_name"`
	TranslatedName string    `json:"song_translated_name,omitempty"`
	Remarks        string    `json:"remarks,omitempty"`
	Artist         string    `json:"artist,omitempty"`
	ArtworkURL     string    `json:"artwork_url,omitempty"`
	Language       string    `json:"language,omitempty"`
	Initial        string    `json:"initial,omitempty"` // first letter of the romanized name
	Paid           bool      `json:"paid,omitempty"`
	LastSung       time.Time `json:"last_sung"` // zero when never sung
	Count          int       `json:"count"`
	IsLocal        bool      `json:"is_local,omitempty"` // favorite
}

// NeverSung reports whether the song has no recorded performance.
func (s *Song) NeverSung() bool {
	return s.LastSung.IsZero()
}

// DisplaySong holds the fields a row renders for one song.
type DisplaySong struct {
	Index              int
	SongName           string
	SongTranslatedName string
	Remarks            string
	Artist             string
	ArtworkURL         string
	LastDate           string
	Count              int
}

// HasTranslatedName reports whether the translated name line should be shown.
func (d DisplaySong) HasTranslatedName() bool {
	return len(d.SongTranslatedName) > 0
}

// HasRemarks reports whether the remarks line should be shown.
func (d DisplaySong) HasRemarks() bool {
	return len(d.Remarks) > 0
}

// HasArtist reports whether the artist line should be shown.
func (d DisplaySong) HasArtist() bool {
	return strings.TrimSpace(d.Artist) != ""
}

// StatsLine returns the "last date / count" text of the right column.
func (d DisplaySong) StatsLine() string {
	return fmt.Sprintf("%s / %d", d.LastDate, d.Count)
}
