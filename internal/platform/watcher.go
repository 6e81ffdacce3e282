package platform

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/ytget/songlist/internal/model"
)

// DefaultWatchDebounce is the quiet period before a changed songs file is
// re-imported.
const DefaultWatchDebounce = 500 * time.Millisecond

// SongsHandler receives the re-imported song list or the import error.
type SongsHandler func(songs []model.Song, err error)

// SongFileWatcher re-imports a songs file whenever it changes on disk.
type SongFileWatcher struct {
	path     string
	debounce time.Duration
	handler  SongsHandler

	mu    sync.Mutex
	timer *time.Timer
}

// NewSongFileWatcher creates a watcher for path.
func NewSongFileWatcher(path string, handler SongsHandler) *SongFileWatcher {
	return &SongFileWatcher{
		path:     filepath.Clean(path),
		debounce: DefaultWatchDebounce,
		handler:  handler,
	}
}

// SetDebounce sets the quiet period before re-importing
func (w *SongFileWatcher) SetDebounce(d time.Duration) {
	if d < 0 {
		d = 0
	}
	w.debounce = d
}

// Run watches the file until ctx is cancelled. The parent directory is
// watched so editors that replace the file on save are handled.
func (w *SongFileWatcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("error creating file watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(w.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("error watching %s: %w", dir, err)
	}
	logrus.Infof("Watching %s for changes", w.path)

	for {
		select {
		case <-ctx.Done():
			w.stopTimer()
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			logrus.Debugf("Watcher event: %s on %s", event.Op.String(), event.Name)
			w.schedule(ctx)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logrus.Errorf("Watcher error: %v", err)
		}
	}
}

func (w *SongFileWatcher) schedule(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		if ctx.Err() != nil {
			return
		}
		songs, err := ImportSongs(w.path)
		if err != nil {
			logrus.Warnf("Failed to re-import %s: %v", w.path, err)
		}
		if w.handler != nil {
			w.handler(songs, err)
		}
	})
}

func (w *SongFileWatcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}
