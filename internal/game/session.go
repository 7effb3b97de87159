package game

import (
	"sync"
	"time"
)

// AfterFunc schedules f to run once after d.
type AfterFunc func(d time.Duration, f func())

// Observer is told about every state change, outside the session lock.
type Observer func(id string, prev, next State, e Event)

// Session owns one State and serializes events applied to it. Cosmetic
// clears listed by Timers are scheduled with the session's AfterFunc; they
// re-enter through Apply and are dropped by Transition if stale.
type Session struct {
	ID      string
	Started time.Time

	// Owner and Mode are labels for the caller; Transition never sees them.
	Owner string
	Mode  string

	mu       sync.Mutex
	state    State
	after    AfterFunc
	observer Observer
}

// SessionOption customizes a Session.
type SessionOption func(*Session)

// WithAfterFunc replaces time.AfterFunc (tests use a manual clock).
func WithAfterFunc(f AfterFunc) SessionOption {
	return func(s *Session) { s.after = f }
}

// WithLabels sets Owner and Mode.
func WithLabels(owner, mode string) SessionOption {
	return func(s *Session) { s.Owner, s.Mode = owner, mode }
}

// WithObserver installs a state-change hook.
func WithObserver(o Observer) SessionOption {
	return func(s *Session) { s.observer = o }
}

// NewSession returns a session in the loading state.
func NewSession(id string, opts ...SessionOption) *Session {
	s := &Session{
		ID:      id,
		Started: time.Now().UTC(),
		state:   NewState(),
		after: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Apply runs e through Transition and returns the new state.
func (s *Session) Apply(e Event) State {
	return s.ApplyAll(e)
}

// ApplyAll applies events in order as one step: no other event can
// interleave with them. It returns the final state.
func (s *Session) ApplyAll(events ...Event) State {
	type change struct {
		prev, next State
		e          Event
	}

	s.mu.Lock()
	changes := make([]change, 0, len(events))
	for _, e := range events {
		prev := s.state
		next := Transition(prev, e)
		s.state = next
		if next.Generation != prev.Generation {
			s.Started = time.Now().UTC()
		}
		changes = append(changes, change{prev, next, e})
	}
	final := s.state
	s.mu.Unlock()

	for _, c := range changes {
		for _, t := range Timers(c.prev, c.next) {
			ev := t.Event
			s.after(t.Delay, func() { s.Apply(ev) })
		}
		if s.observer != nil {
			s.observer(s.ID, c.prev, c.next, c.e)
		}
	}
	return final
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Elapsed is the time since the current game began.
func (s *Session) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return time.Since(s.Started)
}

// TypeWord converts w into one Letter event per rune.
func TypeWord(w string) []Event {
	var out []Event
	for _, r := range w {
		out = append(out, Letter{Rune: r})
	}
	return out
}
