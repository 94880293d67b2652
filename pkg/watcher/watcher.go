// Package watcher reports changes to a set of files, debounced.
package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/philipparndt/goobj/internal/logging"
)

// FileWatcher watches files for changes and triggers a callback once a
// burst of events has settled.
//
// The parent directories are watched rather than the files themselves so
// that editors replacing a file on save keep triggering events.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	log      *slog.Logger
	debounce time.Duration

	// held while the callback runs so that callbacks never overlap
	callbackMu sync.Mutex

	mu       sync.Mutex
	files    map[string]bool
	dirs     map[string]bool
	timer    *time.Timer
	changed  map[string]bool
	callback func(changed []string)
}

// NewFileWatcher creates a new file watcher
func NewFileWatcher(debounce time.Duration, log *slog.Logger) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if log == nil {
		log = logging.Discard()
	}

	return &FileWatcher{
		watcher:  w,
		log:      log,
		debounce: debounce,
		files:    make(map[string]bool),
		dirs:     make(map[string]bool),
		changed:  make(map[string]bool),
	}, nil
}

// Watch registers files. callback receives the absolute paths that changed
// since the previous call. Calls to callback are serialized.
func (fw *FileWatcher) Watch(files []string, callback func(changed []string)) error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	for _, file := range files {
		absPath, err := filepath.Abs(file)
		if err != nil {
			return fmt.Errorf("failed to resolve path %s: %w", file, err)
		}

		dir := filepath.Dir(absPath)
		if !fw.dirs[dir] {
			if err := fw.watcher.Add(dir); err != nil {
				return fmt.Errorf("failed to watch %s: %w", dir, err)
			}
			fw.dirs[dir] = true
		}
		fw.files[absPath] = true
	}

	fw.callback = callback
	return nil
}

// Run processes events until ctx is done or the watcher is closed
func (fw *FileWatcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				fw.handleFileChange(event.Name)
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.log.Error("watcher error", "err", err)
		}
	}
}

// Start runs the event loop in a new goroutine
func (fw *FileWatcher) Start(ctx context.Context) {
	go fw.Run(ctx)
}

// handleFileChange records a change and restarts the debounce timer
func (fw *FileWatcher) handleFileChange(filePath string) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	absPath, err := filepath.Abs(filePath)
	if err != nil || !fw.files[absPath] {
		return
	}
	fw.log.Debug("file changed", "file", absPath)
	fw.changed[absPath] = true

	if fw.timer != nil {
		fw.timer.Stop()
	}
	fw.timer = time.AfterFunc(fw.debounce, fw.flush)
}

// flush hands the pending changes to the callback. A flush that fires while
// an earlier callback is still running waits for it.
func (fw *FileWatcher) flush() {
	fw.callbackMu.Lock()
	defer fw.callbackMu.Unlock()

	fw.mu.Lock()
	changed := make([]string, 0, len(fw.changed))
	for f := range fw.changed {
		changed = append(changed, f)
	}
	fw.changed = make(map[string]bool)
	callback := fw.callback
	fw.mu.Unlock()

	if callback != nil && len(changed) > 0 {
		callback(changed)
	}
}

// Close stops the watcher
func (fw *FileWatcher) Close() error {
	fw.mu.Lock()
	if fw.timer != nil {
		fw.timer.Stop()
	}
	fw.mu.Unlock()
	return fw.watcher.Close()
}

// RemoveAll removes all watched files
func (fw *FileWatcher) RemoveAll() error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	for dir := range fw.dirs {
		if err := fw.watcher.Remove(dir); err != nil {
			return err
		}
	}

	fw.files = make(map[string]bool)
	fw.dirs = make(map[string]bool)
	fw.changed = make(map[string]bool)
	return nil
}
