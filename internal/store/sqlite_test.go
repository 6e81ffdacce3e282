package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ytget/songlist/internal/model"
)

func newTestStore(t *testing.T) SongStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "songs.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func seed() []model.Song {
	return []model.Song{
		{ID: "b", Name: "晴天", Artist: "周杰伦", Language: model.LanguageChinese, Count: 3,
			LastSung: time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)},
		{ID: "a", Name: "Lemon", Language: model.LanguageJapanese, Paid: true},
		{ID: "c", Name: "Let It Go", Remarks: "duet", IsLocal: true},
	}
}

func TestSQLiteStore_UpsertAndList(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.UpsertSongs(ctx, seed()); err != nil {
		t.Fatalf("UpsertSongs: %v", err)
	}

	songs, err := s.ListSongs(ctx)
	if err != nil {
		t.Fatalf("ListSongs: %v", err)
	}
	if len(songs) != 3 {
		t.Fatalf("Expected 3 songs, got %d", len(songs))
	}

	order := []string{songs[0].ID, songs[1].ID, songs[2].ID}
	if order[0] != "b" || order[1] != "a" || order[2] != "c" {
		t.Errorf("Expected import order b,a,c got %v", order)
	}
	if !songs[0].LastSung.Equal(time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)) || songs[0].Count != 3 {
		t.Errorf("History not persisted: %+v", songs[0])
	}
	if !songs[1].NeverSung() || !songs[1].Paid {
		t.Errorf("Unexpected song a: %+v", songs[1])
	}
	if !songs[2].IsLocal || songs[2].Remarks != "duet" {
		t.Errorf("Unexpected song c: %+v", songs[2])
	}
}

func TestSQLiteStore_UpsertKeepsLocalHistory(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.UpsertSongs(ctx, seed()); err != nil {
		t.Fatalf("UpsertSongs: %v", err)
	}
	if err := s.SetFavorite(ctx, "a", true); err != nil {
		t.Fatalf("SetFavorite: %v", err)
	}

	// Re-import with stale history and a new name
	reimport := seed()
	reimport[0].Count = 1
	reimport[1].Name = "Lemon (TV size)"
	reimport[1].IsLocal = false
	if err := s.UpsertSongs(ctx, reimport); err != nil {
		t.Fatalf("UpsertSongs: %v", err)
	}

	songs, _ := s.ListSongs(ctx)
	if songs[0].Count != 3 {
		t.Errorf("Count should not decrease, got %d", songs[0].Count)
	}
	if songs[1].Name != "Lemon (TV size)" {
		t.Errorf("Name should be refreshed, got %s", songs[1].Name)
	}
	if !songs[1].IsLocal {
		t.Error("Favorite flag should survive re-import")
	}
}

func TestSQLiteStore_UpsertRejectsMissingID(t *testing.T) {
	s := newTestStore(t)
	err := s.UpsertSongs(context.Background(), []model.Song{{Name: "no id"}})
	if err == nil {
		t.Fatal("Expected error for missing id")
	}
}

func TestSQLiteStore_SetFavorite(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	s.UpsertSongs(ctx, seed())

	if err := s.SetFavorite(ctx, "c", false); err != nil {
		t.Fatalf("SetFavorite: %v", err)
	}
	songs, _ := s.ListSongs(ctx)
	if songs[2].IsLocal {
		t.Error("Expected favorite to be cleared")
	}

	err := s.SetFavorite(ctx, "missing", true)
	if !errors.Is(err, ErrSongNotFound) {
		t.Errorf("Expected ErrSongNotFound, got %v", err)
	}
}

func TestSQLiteStore_RecordPlay(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	s.UpsertSongs(ctx, seed())

	at := time.Date(2024, 6, 15, 22, 0, 0, 0, time.UTC)
	song, err := s.RecordPlay(ctx, "a", at)
	if err != nil {
		t.Fatalf("RecordPlay: %v", err)
	}
	if song.Count != 1 || !song.LastSung.Equal(at) {
		t.Errorf("Unexpected song after play: %+v", song)
	}

	// An older timestamp does not move the last date back
	song, err = s.RecordPlay(ctx, "a", at.Add(-48*time.Hour))
	if err != nil {
		t.Fatalf("RecordPlay: %v", err)
	}
	if song.Count != 2 || !song.LastSung.Equal(at) {
		t.Errorf("Unexpected song after second play: %+v", song)
	}

	if _, err := s.RecordPlay(ctx, "missing", at); !errors.Is(err, ErrSongNotFound) {
		t.Errorf("Expected ErrSongNotFound, got %v", err)
	}
}

func TestSync(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.UpsertSongs(ctx, seed()); err != nil {
		t.Fatalf("UpsertSongs: %v", err)
	}
	if err := s.SetFavorite(ctx, "a", true); err != nil {
		t.Fatalf("SetFavorite: %v", err)
	}

	// A re-import carries no favorites, the stored flag must survive
	reimport := seed()
	for i := range reimport {
		reimport[i].IsLocal = false
	}
	songs, err := Sync(ctx, s, reimport)
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if len(songs) != 3 {
		t.Fatalf("Sync() returned %d songs, want 3", len(songs))
	}
	for _, song := range songs {
		if song.ID == "a" && !song.IsLocal {
			t.Error("favorite flag lost on re-import")
		}
	}
}

func TestSync_RemovesSongsMissingFromImport(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := Sync(ctx, s, seed()); err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if _, err := s.RecordPlay(ctx, "c", time.Date(2024, 7, 1, 20, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("RecordPlay: %v", err)
	}

	// The source file now holds only c, listed first, plus a new song
	var c model.Song
	for _, song := range seed() {
		if song.ID == "c" {
			c = song
		}
	}
	c.IsLocal = false
	songs, err := Sync(ctx, s, []model.Song{c, {ID: "d", Name: "Yesterday"}})
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if len(songs) != 2 || songs[0].ID != "c" || songs[1].ID != "d" {
		t.Fatalf("Expected c,d after re-import, got %+v", songs)
	}
	if songs[0].Count != 1 || !songs[0].IsLocal {
		t.Errorf("Local history of c should survive re-import: %+v", songs[0])
	}

	songs, err = Sync(ctx, s, nil)
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if len(songs) != 0 {
		t.Errorf("Expected empty catalog, got %d songs", len(songs))
	}
}

func TestImportFile(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "songs.json")
	data := `[{"song_name":"晴天","artist":"周杰伦","language":"华语","count":2},{"song_name":"Lemon"}]`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	songs, err := ImportFile(ctx, s, path)
	if err != nil {
		t.Fatalf("ImportFile: %v", err)
	}
	if len(songs) != 2 || songs[0].Name != "晴天" || songs[0].Count != 2 {
		t.Errorf("Unexpected stored songs %+v", songs)
	}

	if _, err := ImportFile(ctx, s, filepath.Join(t.TempDir(), "songs.txt")); err == nil {
		t.Error("Expected an error for an unsupported file")
	}
}
