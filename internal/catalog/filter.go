package catalog

import (
	"sort"
	"strings"

	"github.com/ytget/songlist/internal/model"
)

// Filter narrows and orders song lists.
type Filter struct {
	folder *Folder
}

// NewFilter returns a Filter that matches with folder. A nil folder uses
// plain case and width folding.
func NewFilter(folder *Folder) *Filter {
	if folder == nil {
		folder = NewFolder(nil)
	}
	return &Filter{folder: folder}
}

// FilterSongs returns the songs matching term and state, ordered by
// state.SortingMethod. The input slice is not modified.
func (f *Filter) FilterSongs(songs []model.Song, term string, state model.FilterState) []model.Song {
	needle := f.folder.Fold(term)
	initial := f.folder.Fold(state.Initial)

	result := make([]model.Song, 0, len(songs))
	for _, song := range songs {
		if !f.matchesState(&song, state, initial) {
			continue
		}
		if needle != "" && !f.matchesTerm(&song, needle) {
			continue
		}
		result = append(result, song)
	}

	SortSongs(result, state.SortingMethod)
	return result
}

func (f *Filter) matchesState(song *model.Song, state model.FilterState, initial string) bool {
	if state.Lang != "" && song.Language != state.Lang {
		return false
	}
	if state.IsLocal && !song.IsLocal {
		return false
	}
	if state.Paid && !song.Paid {
		return false
	}
	if initial != "" && f.folder.Fold(song.Initial) != initial {
		return false
	}
	if state.Remark != "" && !f.folder.Contains(song.Remarks, state.Remark) {
		return false
	}
	return true
}

func (f *Filter) matchesTerm(song *model.Song, needle string) bool {
	fields := []string{song.Name, song.TranslatedName, song.Artist, song.Remarks, song.Initial}
	for _, field := range fields {
		if strings.Contains(f.folder.Fold(field), needle) {
			return true
		}
	}
	return false
}

// SortSongs orders songs in place by method. Every ordering is stable, so
// ties keep catalog order.
func SortSongs(songs []model.Song, method model.SortMethod) {
	var less func(a, b *model.Song) bool

	switch method {
	case model.SortNotRecently:
		less = func(a, b *model.Song) bool {
			if a.NeverSung() != b.NeverSung() {
				return a.NeverSung()
			}
			return a.LastSung.Before(b.LastSung)
		}
	case model.SortInfrequently:
		less = func(a, b *model.Song) bool { return a.Count < b.Count }
	case model.SortRecently:
		less = func(a, b *model.Song) bool {
			if a.NeverSung() != b.NeverSung() {
				return b.NeverSung()
			}
			return a.LastSung.After(b.LastSung)
		}
	case model.SortFrequently:
		less = func(a, b *model.Song) bool { return a.Count > b.Count }
	default:
		return
	}

	sort.SliceStable(songs, func(i, j int) bool {
		return less(&songs[i], &songs[j])
	})
}

var defaultFilter = NewFilter(nil)

// FilterSongs filters with plain case and width folding. It matches the
// songlist.FilterFunc signature.
func FilterSongs(songs []model.Song, term string, state model.FilterState) []model.Song {
	return defaultFilter.FilterSongs(songs, term, state)
}
