package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
	"github.com/sirupsen/logrus"

	"github.com/ytget/songlist/internal/model"
)

// sqliteStore is the SQLite implementation of SongStore
type sqliteStore struct {
	db  *sql.DB
	log *logrus.Entry
}

const createTableSQL = `
	CREATE TABLE IF NOT EXISTS songs (
		id TEXT PRIMARY KEY,
		position INTEGER NOT NULL DEFAULT 0,
		name TEXT NOT NULL,
		translated_name TEXT NOT NULL DEFAULT '',
		remarks TEXT NOT NULL DEFAULT '',
		artist TEXT NOT NULL DEFAULT '',
		artwork_url TEXT NOT NULL DEFAULT '',
		language TEXT NOT NULL DEFAULT '',
		initial TEXT NOT NULL DEFAULT '',
		paid INTEGER NOT NULL DEFAULT 0,
		last_sung INTEGER NOT NULL DEFAULT 0,
		play_count INTEGER NOT NULL DEFAULT 0,
		is_local INTEGER NOT NULL DEFAULT 0
	);
	`

// Imported history never lowers what was recorded locally.
const upsertSongSQL = `
	INSERT INTO songs (id, position, name, translated_name, remarks, artist, artwork_url,
		language, initial, paid, last_sung, play_count, is_local)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		position = excluded.position,
		name = excluded.name,
		translated_name = excluded.translated_name,
		remarks = excluded.remarks,
		artist = excluded.artist,
		artwork_url = excluded.artwork_url,
		language = excluded.language,
		initial = excluded.initial,
		paid = excluded.paid,
		last_sung = MAX(songs.last_sung, excluded.last_sung),
		play_count = MAX(songs.play_count, excluded.play_count),
		is_local = MAX(songs.is_local, excluded.is_local)
	`

const selectColumns = `id, name, translated_name, remarks, artist, artwork_url,
	language, initial, paid, last_sung, play_count, is_local`

// NewSQLiteStore opens the database at dataSourceName and creates the schema.
func NewSQLiteStore(dataSourceName string) (SongStore, error) {
	db, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create songs table: %w", err)
	}
	entry := logrus.WithField("prefix", "store")
	entry.Infof("SQLite database initialized at: %s", dataSourceName)
	return &sqliteStore{db: db, log: entry}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.log.Debug("SQLite database connection closed")
	return err
}

// ListSongs returns every song ordered by import position
func (s *sqliteStore) ListSongs(ctx context.Context) ([]model.Song, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+selectColumns+" FROM songs ORDER BY position, rowid")
	if err != nil {
		return nil, fmt.Errorf("failed to list songs: %w", err)
	}
	defer rows.Close()

	var songs []model.Song
	for rows.Next() {
		song, err := scanSong(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to read song row: %w", err)
		}
		songs = append(songs, song)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate songs: %w", err)
	}
	return songs, nil
}

// UpsertSongs replaces the catalog with songs in a single transaction. New
// songs are inserted, known ones keep their local history and songs missing
// from the slice are removed. Slice order becomes the catalog order.
func (s *sqliteStore) UpsertSongs(ctx context.Context, songs []model.Song) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	// Rows still at a negative position after the upsert were not imported
	if _, err := tx.ExecContext(ctx, "UPDATE songs SET position = -1"); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to mark stale songs: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, upsertSongSQL)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	for i, song := range songs {
		if song.ID == "" {
			tx.Rollback()
			return fmt.Errorf("song %q at position %d has no id", song.Name, i)
		}
		_, err := stmt.ExecContext(ctx,
			song.ID, i, song.Name, song.TranslatedName, song.Remarks, song.Artist, song.ArtworkURL,
			song.Language, song.Initial, boolToInt(song.Paid), timeToUnix(song.LastSung), song.Count,
			boolToInt(song.IsLocal))
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to upsert song %s: %w", song.ID, err)
		}
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM songs WHERE position < 0")
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to remove stale songs: %w", err)
	}
	removed, _ := res.RowsAffected()

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit songs: %w", err)
	}
	s.log.Infof("Upserted %d songs, removed %d", len(songs), removed)
	return nil
}

// SetFavorite sets the favorites flag of a song
func (s *sqliteStore) SetFavorite(ctx context.Context, id string, favorite bool) error {
	res, err := s.db.ExecContext(ctx, "UPDATE songs SET is_local = ? WHERE id = ?", boolToInt(favorite), id)
	if err != nil {
		s.log.Errorf("Failed to update favorite for %s: %v", id, err)
		return fmt.Errorf("failed to set favorite for %s: %w", id, err)
	}
	if err := requireRow(res, id); err != nil {
		return err
	}
	s.log.Debugf("Song %s favorite=%t", id, favorite)
	return nil
}

// RecordPlay increments the play count, sets the last performance time and
// returns the updated song.
func (s *sqliteStore) RecordPlay(ctx context.Context, id string, at time.Time) (model.Song, error) {
	res, err := s.db.ExecContext(ctx,
		"UPDATE songs SET play_count = play_count + 1, last_sung = MAX(last_sung, ?) WHERE id = ?",
		timeToUnix(at), id)
	if err != nil {
		s.log.Errorf("Failed to record play for %s: %v", id, err)
		return model.Song{}, fmt.Errorf("failed to record play for %s: %w", id, err)
	}
	if err := requireRow(res, id); err != nil {
		return model.Song{}, err
	}

	row := s.db.QueryRowContext(ctx, "SELECT "+selectColumns+" FROM songs WHERE id = ?", id)
	song, err := scanSong(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Song{}, fmt.Errorf("%s: %w", id, ErrSongNotFound)
		}
		return model.Song{}, fmt.Errorf("failed to reload song %s: %w", id, err)
	}
	s.log.Debugf("Recorded play for %s, count=%d", id, song.Count)
	return song, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSong(row scanner) (model.Song, error) {
	var (
		song     model.Song
		paid     int
		lastSung int64
		isLocal  int
	)
	err := row.Scan(&song.ID, &song.Name, &song.TranslatedName, &song.Remarks, &song.Artist,
		&song.ArtworkURL, &song.Language, &song.Initial, &paid, &lastSung, &song.Count, &isLocal)
	if err != nil {
		return model.Song{}, err
	}
	song.Paid = paid != 0
	song.IsLocal = isLocal != 0
	song.LastSung = unixToTime(lastSung)
	return song, nil
}

func requireRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update of %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", id, ErrSongNotFound)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Times are stored as Unix milliseconds in UTC, zero meaning never.
func timeToUnix(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func unixToTime(ms int64) time.Time {
	if ms <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}
