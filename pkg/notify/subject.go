// Package notify provides the "entries changed" broadcast that views
// subscribe to. Subscribers are invoked synchronously, in subscription order,
// on the goroutine that calls Publish.
package notify

import "sync"

// Subject is an explicit, injectable observer channel with a zero-payload
// signal.
type Subject struct {
	mu     sync.Mutex
	nextID int
	subs   []subscription
}

type subscription struct {
	id int
	fn func()
}

// New returns an empty Subject.
func New() *Subject {
	return &Subject{}
}

// Subscribe registers fn and returns a function that removes it. Calling the
// returned function more than once is a no-op.
func (s *Subject) Subscribe(fn func()) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscription{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { s.remove(id) })
	}
}

// Publish delivers the signal to every current subscriber.
func (s *Subject) Publish() {
	s.mu.Lock()
	subs := make([]subscription, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn()
	}
}

// Len returns the number of active subscribers.
func (s *Subject) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

func (s *Subject) remove(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sub := range s.subs {
		if sub.id == id {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			return
		}
	}
}
