// Package store persists the song catalog together with favorites and
// performance history.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ytget/songlist/internal/model"
	"github.com/ytget/songlist/internal/platform"
)

// ErrSongNotFound is returned when an operation references an unknown song ID.
var ErrSongNotFound = errors.New("song not found")

// SongStore defines catalog persistence
type SongStore interface {
	ListSongs(ctx context.Context) ([]model.Song, error)             // catalog in import order
	UpsertSongs(ctx context.Context, songs []model.Song) error        // replace the catalog, keeping local history
	SetFavorite(ctx context.Context, id string, favorite bool) error // toggle the favorites flag
	RecordPlay(ctx context.Context, id string, at time.Time) (model.Song, error)
	Close() error
}

// Sync upserts songs and returns the stored catalog, which carries the
// favorites and history kept by the store.
func Sync(ctx context.Context, s SongStore, songs []model.Song) ([]model.Song, error) {
	if err := s.UpsertSongs(ctx, songs); err != nil {
		return nil, fmt.Errorf("failed to store songs: %w", err)
	}
	stored, err := s.ListSongs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list songs: %w", err)
	}
	return stored, nil
}

// ImportFile imports a JSON or CSV songs file into s and returns the stored
// catalog.
func ImportFile(ctx context.Context, s SongStore, path string) ([]model.Song, error) {
	songs, err := platform.ImportSongs(path)
	if err != nil {
		return nil, err
	}
	return Sync(ctx, s, songs)
}
