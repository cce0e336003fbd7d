package notify

import "testing"

func TestPublishReachesSubscribersInOrder(t *testing.T) {
	s := New()
	var got []string
	s.Subscribe(func() { got = append(got, "a") })
	s.Subscribe(func() { got = append(got, "b") })

	s.Publish()

	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("unexpected delivery order %v", got)
	}
}

func TestUnsubscribe(t *testing.T) {
	s := New()
	calls := 0
	unsubscribe := s.Subscribe(func() { calls++ })
	other := 0
	s.Subscribe(func() { other++ })

	unsubscribe()
	unsubscribe()
	s.Publish()

	if calls != 0 {
		t.Fatalf("unsubscribed callback invoked %d times", calls)
	}
	if other != 1 {
		t.Fatalf("remaining subscriber invoked %d times", other)
	}
	if s.Len() != 1 {
		t.Fatalf("expected 1 subscriber, got %d", s.Len())
	}
}

func TestUnsubscribeDuringPublish(t *testing.T) {
	s := New()
	calls := 0
	var unsubscribe func()
	unsubscribe = s.Subscribe(func() {
		calls++
		unsubscribe()
	})

	s.Publish()
	s.Publish()

	if calls != 1 {
		t.Fatalf("expected a single delivery, got %d", calls)
	}
}

func TestNilSubscriber(t *testing.T) {
	s := New()
	s.Subscribe(nil)()
	if s.Len() != 0 {
		t.Fatalf("nil subscriber should not register")
	}
	s.Publish()
}
