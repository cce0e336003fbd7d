package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"tableflip.dev/dreamer/pkg/datekey"
	"tableflip.dev/dreamer/pkg/entry"
	"tableflip.dev/dreamer/pkg/log"
	"tableflip.dev/dreamer/pkg/notify"
	"tableflip.dev/dreamer/pkg/store"
)

var (
	ErrNotFound      = errors.New("app: entry not found")
	ErrEmptyEntry    = errors.New("app: entry text is empty")
	ErrNoPersistence = errors.New("app: no persistence configured")
)

// Service keeps every journal entry indexed by date in memory and writes
// changes through to persistence. It satisfies calendar.EntryStore, and
// publishes on Changes after every mutation.
type Service struct {
	Persistence store.Persistence
	Changes     *notify.Subject
	// Clock defaults to time.Now.
	Clock  func() time.Time
	Logger *log.Logger

	mu      sync.RWMutex
	entries map[datekey.DateKey]*entry.Entry
	loaded  bool
}

// Load indexes every persisted entry by its date, replacing anything already
// held in memory.
func (s *Service) Load(ctx context.Context) error {
	if s.Persistence == nil {
		return ErrNoPersistence
	}
	all := s.Persistence.ListAll(ctx)
	index := make(map[datekey.DateKey]*entry.Entry, len(all))
	for _, e := range all {
		if e == nil || e.Date.IsZero() {
			continue
		}
		index[e.Date] = e
	}
	s.mu.Lock()
	s.entries = index
	s.loaded = true
	s.mu.Unlock()
	s.logger().Debug("loaded entries", "count", len(index))
	return nil
}

// Reload re-reads persistence and notifies subscribers. It is the bridge from
// store watch events to the calendar.
func (s *Service) Reload(ctx context.Context) error {
	if err := s.Load(ctx); err != nil {
		return err
	}
	s.publish()
	return nil
}

// Years returns the years holding at least one entry plus the current year,
// ascending. The current year is always present so today can be reached in an
// empty journal, and it is also the last: the calendar never runs past the
// present month, so years after it are left out.
func (s *Service) Years() []int {
	current := s.now().Year()
	s.mu.RLock()
	seen := map[int]struct{}{current: {}}
	for k := range s.entries {
		if k.Year > current {
			continue
		}
		seen[k.Year] = struct{}{}
	}
	s.mu.RUnlock()

	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// Entry returns the entry for key.
func (s *Service) Entry(key datekey.DateKey) (*entry.Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[key]
	return e, ok
}

// Entries returns all entries within month/year, ordered by day.
func (s *Service) Entries(month, year int) []*entry.Entry {
	s.mu.RLock()
	var out []*entry.Entry
	for k, e := range s.entries {
		if k.Month == month && k.Year == year {
			out = append(out, e)
		}
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Day < out[j].Date.Day })
	return out
}

// Update stores e under key, overwriting any entry already there.
func (s *Service) Update(e *entry.Entry, key datekey.DateKey) error {
	if s.Persistence == nil {
		return ErrNoPersistence
	}
	if e == nil {
		return errors.New("app: nil entry")
	}
	e.Date = key
	if err := s.Persistence.Store(e); err != nil {
		return err
	}
	s.mu.Lock()
	if s.entries == nil {
		s.entries = make(map[datekey.DateKey]*entry.Entry)
	}
	s.entries[key] = e
	s.mu.Unlock()
	s.logger().Debug("updated entry", "date", key.String())
	s.publish()
	return nil
}

// Write creates the entry for key or replaces its text.
func (s *Service) Write(key datekey.DateKey, text string) (*entry.Entry, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyEntry
	}
	current, ok := s.Entry(key)
	if !ok {
		e := entry.New(key, text, s.now())
		if err := s.Update(e, key); err != nil {
			return nil, err
		}
		return e, nil
	}
	// Edit a copy; the indexed entry is swapped only once persistence succeeds.
	e := current.Clone()
	if !e.SetText(text, s.now()) {
		return current, nil
	}
	if err := s.Update(e, key); err != nil {
		return current, err
	}
	return e, nil
}

// Delete removes the entry for key.
func (s *Service) Delete(key datekey.DateKey) error {
	if s.Persistence == nil {
		return ErrNoPersistence
	}
	if _, ok := s.Entry(key); !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err := s.Persistence.Delete(key); err != nil && !errors.Is(err, store.ErrNotFound) {
		return err
	}
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
	s.logger().Debug("deleted entry", "date", key.String())
	s.publish()
	return nil
}

// Watch subscribes to persistence change events.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}
	return s.Persistence.Watch(ctx)
}

// Today returns the current date key.
func (s *Service) Today() datekey.DateKey {
	return datekey.FromTime(s.now())
}

func (s *Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

func (s *Service) publish() {
	if s.Changes != nil {
		s.Changes.Publish()
	}
}

func (s *Service) logger() *log.Logger {
	return log.OrDiscard(s.Logger).WithComponent("app")
}
