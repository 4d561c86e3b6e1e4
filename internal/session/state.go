package session

// Package session holds the process-wide observable session state. It is the
// single source of truth the UI reads; the durable copy lives behind
// ports.CredentialStore.

import (
	"sync"

	domainauth "github.com/target/mmk-mobile-client/internal/domain/auth"
)

// Observer is notified with the new session after every Replace call,
// including no-op replacements.
type Observer func(domainauth.Session)

type subscriber struct {
	id int
	fn Observer
}

// State is an explicitly owned, single-writer observable store for the
// current session. Replace is the only mutator; observers never see a
// partially updated session. Safe for concurrent use.
type State struct {
	mu      sync.Mutex
	current domainauth.Session
	subs    []subscriber
	nextID  int
}

// NewState creates an empty State. Hydration from durable storage is the
// auth service's responsibility and happens exactly once at startup.
func NewState() *State {
	return &State{}
}

// Read returns the current session. The profile is cloned so callers cannot
// mutate state through the returned value.
func (s *State) Read() domainauth.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.current)
}

// Replace swaps the session atomically and notifies observers synchronously
// in subscription order. Notifications are not de-duplicated.
func (s *State) Replace(next domainauth.Session) {
	s.mu.Lock()
	s.current = clone(next)
	subs := make([]subscriber, len(s.subs))
	copy(subs, s.subs)
	snapshot := s.current
	s.mu.Unlock()

	// Observers run outside the lock so they may call Read or Subscribe.
	for _, sub := range subs {
		sub.fn(clone(snapshot))
	}
}

// Subscribe registers an observer and returns its unsubscribe function.
// The observer is not called with the current value at subscription time.
func (s *State) Subscribe(fn Observer) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscriber{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

func clone(sess domainauth.Session) domainauth.Session {
	if sess.Profile != nil {
		p := *sess.Profile
		sess.Profile = &p
	}
	return sess
}
