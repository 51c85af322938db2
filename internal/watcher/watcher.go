package watcher

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"github.com/nguyentantai21042004/meetscribe/internal/logger"
	"github.com/nguyentantai21042004/meetscribe/internal/meeting"
)

type implWatcher struct {
	dir       string
	scheduler Scheduler
	logger    logger.Logger
	watcher   *fsnotify.Watcher
	settle    time.Duration

	mu   sync.Mutex
	seen map[string]bool
}

// Start schedules files already in the directory, then every new one until
// ctx is done.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "Intake watcher started. Monitoring: %s", w.dir)
	w.logger.Info(ctx, "Supported formats: .yaml, .yml, .json")

	if err := w.scanExisting(ctx); err != nil {
		w.logger.Warn(ctx, "Failed to scan intake directory: %v", err)
	}

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Intake watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			// Editors and copy tools emit Create followed by Write
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if !isRequestFile(event.Name) {
				w.logger.Debug(ctx, "Ignoring non-request file: %s", event.Name)
				continue
			}

			// Small delay to let the writer finish
			time.Sleep(w.settle)
			w.handle(ctx, event.Name)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

func (w *implWatcher) scanExisting(ctx context.Context) error {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() || !isRequestFile(e.Name()) {
			continue
		}
		w.handle(ctx, filepath.Join(w.dir, e.Name()))
	}
	return nil
}

// handle decodes path, schedules it and moves it aside. A path is handled
// once even when several events arrive for it.
func (w *implWatcher) handle(ctx context.Context, path string) {
	if !w.claim(path) {
		return
	}
	defer w.release(path)

	if _, err := os.Stat(path); err != nil {
		return
	}

	req, err := decodeRequest(path)
	if err == nil {
		var snap meeting.Snapshot
		snap, err = w.scheduler.Schedule(req)
		if err == nil {
			w.logger.Info(logger.WithSession(ctx, snap.ID), "Scheduled from %s for %s", filepath.Base(path), snap.Start.Format(time.RFC3339))
		}
	}

	target := acceptedDir
	if err != nil {
		target = rejectedDir
		w.logger.Warn(ctx, "Rejected %s: %v", filepath.Base(path), err)
	}
	if mvErr := w.move(path, target); mvErr != nil {
		w.logger.Error(ctx, "Failed to move %s to %s: %v", path, target, mvErr)
	}
}

func (w *implWatcher) claim(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.seen == nil {
		w.seen = make(map[string]bool)
	}
	if w.seen[path] {
		return false
	}
	w.seen[path] = true
	return true
}

func (w *implWatcher) release(path string) {
	w.mu.Lock()
	delete(w.seen, path)
	w.mu.Unlock()
}

func (w *implWatcher) move(path, sub string) error {
	name := filepath.Base(path)
	dest := filepath.Join(w.dir, sub, name)
	if _, err := os.Stat(dest); err == nil {
		ext := filepath.Ext(name)
		dest = filepath.Join(w.dir, sub, fmt.Sprintf("%s_%d%s", strings.TrimSuffix(name, ext), time.Now().UnixNano(), ext))
	}
	return os.Rename(path, dest)
}

// decodeRequest reads a request file. JSON files go through encoding/json so
// that error messages point at JSON syntax; YAML covers the rest.
func decodeRequest(path string) (meeting.Request, error) {
	var req meeting.Request
	data, err := os.ReadFile(path)
	if err != nil {
		return req, fmt.Errorf("read request file: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := json.Unmarshal(data, &req); err != nil {
			return req, fmt.Errorf("%w: parse json: %v", meeting.ErrValidation, err)
		}
		return req, nil
	}
	if err := yaml.Unmarshal(data, &req); err != nil {
		return req, fmt.Errorf("%w: parse yaml: %v", meeting.ErrValidation, err)
	}
	return req, nil
}

// isRequestFile checks if the file has a supported request extension
func isRequestFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}
