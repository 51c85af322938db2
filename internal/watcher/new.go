package watcher

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nguyentantai21042004/meetscribe/internal/logger"
)

const (
	acceptedDir = "accepted"
	rejectedDir = "rejected"
)

// New creates a Watcher on dir. The accepted/ and rejected/ subdirectories
// are created when missing.
func New(dir string, sched Scheduler, log logger.Logger) (Watcher, error) {
	for _, sub := range []string{acceptedDir, rejectedDir} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0755); err != nil {
			return nil, fmt.Errorf("create %s dir: %w", sub, err)
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	return &implWatcher{
		dir:       dir,
		scheduler: sched,
		logger:    log,
		watcher:   watcher,
		settle:    200 * time.Millisecond,
	}, nil
}
