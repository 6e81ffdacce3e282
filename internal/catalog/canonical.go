package catalog

import (
	"strings"

	"github.com/ytget/songlist/internal/model"
)

const (
	// DateLayout formats the last performance date.
	DateLayout = "2006-01-02"

	// NeverSungDate is shown when a song has no recorded performance.
	NeverSungDate = "—"
)

// Canonicalize converts a song into the values a row renders. index is the
// position of the song in the visible page.
func Canonicalize(song model.Song, index int) model.DisplaySong {
	lastDate := NeverSungDate
	if !song.NeverSung() {
		lastDate = song.LastSung.Format(DateLayout)
	}

	count := song.Count
	if count < 0 {
		count = 0
	}

	return model.DisplaySong{
		Index:              index,
		SongName:           strings.TrimSpace(song.Name),
		SongTranslatedName: strings.TrimSpace(song.TranslatedName),
		Remarks:            strings.TrimSpace(song.Remarks),
		Artist:             strings.TrimSpace(song.Artist),
		ArtworkURL:         strings.TrimSpace(song.ArtworkURL),
		LastDate:           lastDate,
		Count:              count,
	}
}

// CanonicalizePage converts every song of a page.
func CanonicalizePage(songs []model.Song) []model.DisplaySong {
	out := make([]model.DisplaySong, len(songs))
	for i, song := range songs {
		out[i] = Canonicalize(song, i)
	}
	return out
}
