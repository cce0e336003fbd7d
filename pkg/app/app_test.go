package app

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"sync"
	"testing"
	"time"

	"tableflip.dev/dreamer/pkg/datekey"
	"tableflip.dev/dreamer/pkg/entry"
	"tableflip.dev/dreamer/pkg/notify"
	"tableflip.dev/dreamer/pkg/store"
)

type memoryPersistence struct {
	mu      sync.Mutex
	counter int
	entries map[datekey.DateKey]*entry.Entry
	failing bool
}

func newMemoryPersistence(entries ...*entry.Entry) *memoryPersistence {
	mp := &memoryPersistence{entries: make(map[datekey.DateKey]*entry.Entry)}
	for _, e := range entries {
		if e == nil {
			continue
		}
		if e.ID == "" {
			e.ID = mp.newID()
		}
		mp.entries[e.Date] = cloneEntry(e)
	}
	return mp
}

func (m *memoryPersistence) newID() string {
	m.counter++
	return fmt.Sprintf("id-%d", m.counter)
}

func (m *memoryPersistence) ListAll(_ context.Context) []*entry.Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entry.Entry, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, cloneEntry(e))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

func (m *memoryPersistence) Read(key datekey.DateKey) (*entry.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	return cloneEntry(e), nil
}

func (m *memoryPersistence) Store(e *entry.Entry) error {
	if e == nil {
		return errors.New("nil entry")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failing {
		return errors.New("disk full")
	}
	if e.ID == "" {
		e.ID = m.newID()
	}
	m.entries[e.Date] = cloneEntry(e)
	return nil
}

func (m *memoryPersistence) Delete(key datekey.DateKey) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[key]; !ok {
		return store.ErrNotFound
	}
	delete(m.entries, key)
	return nil
}

func (m *memoryPersistence) Years(_ context.Context) []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	seen := map[int]bool{}
	var years []int
	for k := range m.entries {
		if !seen[k.Year] {
			seen[k.Year] = true
			years = append(years, k.Year)
		}
	}
	sort.Ints(years)
	return years
}

func (m *memoryPersistence) Watch(context.Context) (<-chan store.Event, error) {
	return nil, nil
}

func cloneEntry(e *entry.Entry) *entry.Entry {
	if e == nil {
		return nil
	}
	cp := *e
	if len(e.History) > 0 {
		cp.History = append([]entry.HistoryRecord(nil), e.History...)
	}
	return &cp
}

var now = time.Date(2024, 3, 20, 9, 0, 0, 0, time.Local)

func newService(t *testing.T, entries ...*entry.Entry) (*Service, *memoryPersistence, *notify.Subject) {
	t.Helper()
	mp := newMemoryPersistence(entries...)
	changes := notify.New()
	svc := &Service{
		Persistence: mp,
		Changes:     changes,
		Clock:       func() time.Time { return now },
	}
	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return svc, mp, changes
}

func key(day, month, year int) datekey.DateKey {
	return datekey.DateKey{Day: day, Month: month, Year: year}
}

func TestLoadIndexesEntriesByDate(t *testing.T) {
	svc, _, _ := newService(t,
		entry.New(key(2, 1, 2022), "old dream", now),
		entry.New(key(10, 3, 2024), "recent dream", now),
	)

	e, ok := svc.Entry(key(2, 1, 2022))
	if !ok || e.Text != "old dream" {
		t.Fatalf("unexpected entry %+v (found=%v)", e, ok)
	}
	if _, ok := svc.Entry(key(3, 1, 2022)); ok {
		t.Fatal("expected no entry for 2022-01-03")
	}
}

func TestYearsIncludeCurrentYear(t *testing.T) {
	svc, _, _ := newService(t, entry.New(key(2, 1, 2021), "old", now))
	if got := svc.Years(); !reflect.DeepEqual(got, []int{2021, 2024}) {
		t.Fatalf("Years = %v", got)
	}

	empty, _, _ := newService(t)
	if got := empty.Years(); !reflect.DeepEqual(got, []int{2024}) {
		t.Fatalf("Years of empty journal = %v", got)
	}
}

func TestYearsStopAtCurrentYear(t *testing.T) {
	future := key(1, 1, 2030)
	svc, _, _ := newService(t,
		entry.New(key(2, 1, 2023), "old", now),
		entry.New(future, "not yet", now),
	)
	if got := svc.Years(); !reflect.DeepEqual(got, []int{2023, 2024}) {
		t.Fatalf("Years = %v", got)
	}
	if _, ok := svc.Entry(future); !ok {
		t.Fatal("future entry should still be indexed")
	}
}

func TestWriteCreatesAndEdits(t *testing.T) {
	svc, mp, changes := newService(t)
	published := 0
	changes.Subscribe(func() { published++ })

	k := key(10, 3, 2024)
	e, err := svc.Write(k, "a lighthouse")
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if e == nil || e.Date != k {
		t.Fatalf("unexpected entry %+v", e)
	}
	if published != 1 {
		t.Fatalf("expected one notification, got %d", published)
	}

	if _, err := svc.Write(k, "a lighthouse"); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	if published != 1 {
		t.Fatalf("unchanged text should not notify, got %d", published)
	}

	if _, err := svc.Write(k, "a lighthouse at dusk"); err != nil {
		t.Fatalf("edit: %v", err)
	}
	stored, err := mp.Read(k)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if stored.Text != "a lighthouse at dusk" || len(stored.History) != 2 {
		t.Fatalf("unexpected stored entry %+v", stored)
	}
	if published != 2 {
		t.Fatalf("expected two notifications, got %d", published)
	}
}

func TestWriteRejectsEmptyText(t *testing.T) {
	svc, _, _ := newService(t)
	if _, err := svc.Write(key(1, 3, 2024), "  \n "); !errors.Is(err, ErrEmptyEntry) {
		t.Fatalf("expected ErrEmptyEntry, got %v", err)
	}
}

func TestUpdateFailureLeavesIndexUntouched(t *testing.T) {
	svc, mp, changes := newService(t)
	published := 0
	changes.Subscribe(func() { published++ })
	mp.failing = true

	if _, err := svc.Write(key(1, 3, 2024), "lost"); err == nil {
		t.Fatal("expected store failure")
	}
	if _, ok := svc.Entry(key(1, 3, 2024)); ok {
		t.Fatal("failed write should not be indexed")
	}
	if published != 0 {
		t.Fatalf("failed write should not notify, got %d", published)
	}
}

func TestFailedEditKeepsIndexedText(t *testing.T) {
	k := key(10, 3, 2024)
	svc, mp, changes := newService(t, entry.New(k, "old", now))
	published := 0
	changes.Subscribe(func() { published++ })
	mp.failing = true

	e, err := svc.Write(k, "new")
	if err == nil {
		t.Fatal("expected store failure")
	}
	if e == nil || e.Text != "old" {
		t.Fatalf("expected the unchanged entry back, got %+v", e)
	}
	indexed, _ := svc.Entry(k)
	if indexed.Text != "old" || len(indexed.History) != 1 {
		t.Fatalf("index changed after failed write: %+v", indexed)
	}
	stored, _ := mp.Read(k)
	if stored.Text != "old" {
		t.Fatalf("unexpected stored text %q", stored.Text)
	}
	if published != 0 {
		t.Fatalf("failed write should not notify, got %d", published)
	}

	mp.failing = false
	if _, err := svc.Write(k, "new"); err != nil {
		t.Fatalf("write: %v", err)
	}
	if indexed, _ := svc.Entry(k); indexed.Text != "new" {
		t.Fatalf("expected new text after retry, got %q", indexed.Text)
	}
}

func TestDelete(t *testing.T) {
	k := key(10, 3, 2024)
	svc, mp, _ := newService(t, entry.New(k, "gone soon", now))

	if err := svc.Delete(k); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := svc.Entry(k); ok {
		t.Fatal("entry still indexed")
	}
	if _, err := mp.Read(k); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("entry still persisted: %v", err)
	}
	if err := svc.Delete(k); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEntriesForMonth(t *testing.T) {
	svc, _, _ := newService(t,
		entry.New(key(20, 3, 2024), "late", now),
		entry.New(key(2, 3, 2024), "early", now),
		entry.New(key(2, 4, 2023), "other month", now),
	)
	got := svc.Entries(3, 2024)
	if len(got) != 2 || got[0].Text != "early" || got[1].Text != "late" {
		t.Fatalf("unexpected entries %+v", got)
	}
}

func TestReloadPublishes(t *testing.T) {
	svc, mp, changes := newService(t)
	published := 0
	changes.Subscribe(func() { published++ })

	_ = mp.Store(entry.New(key(4, 2, 2023), "written elsewhere", now))
	if err := svc.Reload(context.Background()); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if _, ok := svc.Entry(key(4, 2, 2023)); !ok {
		t.Fatal("expected reloaded entry")
	}
	if published != 1 {
		t.Fatalf("expected one notification, got %d", published)
	}
}

func TestNoPersistence(t *testing.T) {
	svc := &Service{}
	if err := svc.Load(context.Background()); !errors.Is(err, ErrNoPersistence) {
		t.Fatalf("expected ErrNoPersistence, got %v", err)
	}
}
