package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"tableflip.dev/dreamer/pkg/datekey"
)

// EventType describes the nature of a persistence change notification.
type EventType int

const (
	// EventEntryChanged indicates the entry for Date was added, edited, or
	// removed.
	EventEntryChanged EventType = iota

	// EventInvalidated signals a change that could not be tied to a single
	// date (a new year or month directory, watcher errors); callers should
	// refresh their full view.
	EventInvalidated
)

func (t EventType) String() string {
	if t == EventEntryChanged {
		return "entry-changed"
	}
	return "invalidated"
}

// Event is emitted by Persistence.Watch when underlying storage changes.
type Event struct {
	Type EventType
	Date datekey.DateKey
}

// Watch streams change events until ctx is cancelled. Callers should drain the
// returned channel to avoid blocking the watcher. The channel is closed once
// ctx is done or the watcher encounters an unrecoverable error.
func (p *persistence) Watch(ctx context.Context) (<-chan Event, error) {
	if err := p.ensureBase(); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			if err := watcher.Close(); err != nil {
				p.logger.Warn("watcher close", "err", err)
			}
		})
	}

	dirs, err := collectDirs(p.basePath)
	if err != nil {
		closeWatcher()
		return nil, fmt.Errorf("store: enumerate directories: %w", err)
	}

	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			closeWatcher()
			return nil, fmt.Errorf("store: watch %s: %w", dir, err)
		}
	}

	events := make(chan Event, 64)

	go func() {
		defer close(events)
		defer closeWatcher()

		watched := make(map[string]struct{}, len(dirs))
		for _, dir := range dirs {
			watched[dir] = struct{}{}
		}

		send := func(ev Event) {
			select {
			case events <- ev:
			default:
				// Consumer is behind; the next refresh reads the store anyway.
			}
		}

		throttle := newEventThrottle(100 * time.Millisecond)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				p.logger.Warn("watcher error", "err", err)
				throttle.Enqueue(Event{Type: EventInvalidated}, send)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}

				if evt.Op&fsnotify.Create == fsnotify.Create {
					// New year and month directories need their own watch.
					if info, err := os.Stat(evt.Name); err == nil && info.IsDir() {
						absDir := filepath.Clean(evt.Name)
						if _, found := watched[absDir]; !found {
							if err := watcher.Add(absDir); err != nil {
								p.logger.Warn("watch directory", "dir", absDir, "err", err)
							} else {
								watched[absDir] = struct{}{}
							}
						}
						throttle.Enqueue(Event{Type: EventInvalidated}, send)
						continue
					}
				}

				key, ok := p.dateForPath(evt.Name)
				if !ok {
					throttle.Enqueue(Event{Type: EventInvalidated}, send)
					continue
				}
				throttle.Enqueue(Event{Type: EventEntryChanged, Date: key}, send)
			}
		}
	}()

	return events, nil
}

// collectDirs walks base and returns all directories that should be watched.
func collectDirs(base string) ([]string, error) {
	dirs := []string{base}
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() && path != base {
			dirs = append(dirs, path)
		}
		return nil
	})
	return dirs, err
}

// dateForPath maps a YYYY/MM/DD file path back to its date.
func (p *persistence) dateForPath(path string) (datekey.DateKey, bool) {
	rel, err := filepath.Rel(p.basePath, path)
	if err != nil || rel == "." {
		return datekey.DateKey{}, false
	}
	parts := strings.Split(rel, string(os.PathSeparator))
	if len(parts) != 3 {
		return datekey.DateKey{}, false
	}
	return keyToDate(strings.Join(parts, "-"))
}

// eventThrottle coalesces rapid change notifications so the UI can redraw once
// per burst of filesystem activity instead of on every single write.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[Event]struct{}
	delay   time.Duration
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{
		delay:   delay,
		pending: make(map[Event]struct{}),
	}
}

func (t *eventThrottle) Enqueue(ev Event, send func(Event)) {
	t.mu.Lock()
	t.pending[ev] = struct{}{}
	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
	t.mu.Unlock()
}

func (t *eventThrottle) flush(send func(Event)) {
	t.mu.Lock()
	pending := t.pending
	t.pending = make(map[Event]struct{})
	t.timer = nil
	t.mu.Unlock()

	for ev := range pending {
		send(ev)
	}
}

func (t *eventThrottle) Stop() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
