// Package watch reports changes to a set of files so the editor can rebuild on the main loop.
package watch

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// pendingBuffer bounds how many distinct changed paths are queued between polls.
const pendingBuffer = 16

// Watcher watches the parent directories of its files, since editors often save by writing a
// new file and renaming it over the old one. Events for other files in those directories are
// ignored.
type Watcher struct {
	fw      *fsnotify.Watcher
	log     logrus.FieldLogger
	mu      sync.Mutex
	files   map[string]bool
	dirs    map[string]bool
	queued  map[string]bool
	changed chan string
}

// New returns a watcher with no files.
func New(log logrus.FieldLogger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fw:      fw,
		log:     log,
		files:   make(map[string]bool),
		dirs:    make(map[string]bool),
		queued:  make(map[string]bool),
		changed: make(chan string, pendingBuffer),
	}, nil
}

// Add starts watching path. The file itself does not need to exist yet.
func (w *Watcher) Add(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(abs)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.files[abs] = true
	if w.dirs[dir] {
		return nil
	}
	if err := w.fw.Add(dir); err != nil {
		return err
	}
	w.dirs[dir] = true
	return nil
}

// Run forwards relevant events until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			w.enqueue(event.Name)
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.log.WithError(err).Warn("File watcher error")
		}
	}
}

// enqueue queues name once until the next Poll; further events for it are coalesced.
func (w *Watcher) enqueue(name string) {
	abs, err := filepath.Abs(name)
	if err != nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.files[abs] || w.queued[abs] {
		return
	}
	select {
	case w.changed <- abs:
		w.queued[abs] = true
	default:
		w.log.WithField("file", abs).Warn("Dropped file change, queue full")
	}
}

// Poll returns the files that changed since the last call without blocking.
func (w *Watcher) Poll() []string {
	var out []string
	for {
		select {
		case name := <-w.changed:
			w.mu.Lock()
			delete(w.queued, name)
			w.mu.Unlock()
			out = append(out, name)
		default:
			return out
		}
	}
}

// Close stops the underlying OS watcher; Run returns afterwards.
func (w *Watcher) Close() error {
	return w.fw.Close()
}
