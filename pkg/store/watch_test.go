package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"tableflip.dev/dreamer/pkg/datekey"
	"tableflip.dev/dreamer/pkg/entry"
)

func TestPersistenceWatchEmitsEntryChanges(t *testing.T) {
	base := t.TempDir()
	p, err := Load(StaticConfig{Path: base}, nil)
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow watcher goroutine to subscribe to directories before storing.
	time.Sleep(50 * time.Millisecond)

	key := datekey.DateKey{Day: 10, Month: 3, Year: 2024}
	if err := p.Store(entry.New(key, "hello world", time.Now())); err != nil {
		t.Fatalf("store entry: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Type == EventInvalidated {
				return
			}
			if evt.Date != key {
				t.Fatalf("expected date %s, got %s", key, evt.Date)
			}
			return
		case <-deadline:
			t.Fatal("timed out waiting for change event")
		}
	}
}

func TestEventThrottleCoalesces(t *testing.T) {
	th := newEventThrottle(20 * time.Millisecond)
	defer th.Stop()

	var mu sync.Mutex
	var got []Event
	done := make(chan struct{}, 4)
	send := func(ev Event) {
		mu.Lock()
		got = append(got, ev)
		mu.Unlock()
		done <- struct{}{}
	}

	key := datekey.DateKey{Day: 1, Month: 2, Year: 2024}
	for i := 0; i < 5; i++ {
		th.Enqueue(Event{Type: EventEntryChanged, Date: key}, send)
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("throttle never flushed")
	}
	time.Sleep(40 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 1 {
		t.Fatalf("expected one coalesced event, got %d", len(got))
	}
}
