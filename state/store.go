package state

import (
	"sync"

	"github.com/viant/sessionauth/schema"
)

// Listener receives every state written to a Store.
type Listener func(State)

type subscription struct {
	id int
	fn Listener
}

// Store is the single observable container of the current authentication state.
// Writes replace the whole value; subscribers are notified in subscription order
// and every write reaches them in write order.
type Store struct {
	mux         sync.RWMutex
	state       State
	listeners   []subscription
	queue       []State
	dispatching bool
	nextID      int
	initialized bool
	ready       chan struct{}
}

// NewStore creates a store holding Uninitialized.
func NewStore() *Store {
	return &Store{state: Of(Uninitialized), ready: make(chan struct{})}
}

// Get returns the current state.
func (s *Store) Get() State {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return s.state
}

// User returns the held identity, if any.
func (s *Store) User() (*schema.User, bool) {
	current := s.Get()
	if current.Kind != Authenticated || current.User == nil {
		return nil, false
	}
	u := *current.User
	return &u, true
}

// Set replaces the state and notifies subscribers before returning, unless a
// notification is already running, from a listener or another goroutine. Such a
// write is queued and delivered by the running notification after its current round.
func (s *Store) Set(state State) {
	s.mux.Lock()
	s.state = state
	s.queue = append(s.queue, state)
	if s.dispatching {
		s.mux.Unlock()
		return
	}
	s.dispatching = true
	for len(s.queue) > 0 {
		next := s.queue[0]
		s.queue = s.queue[1:]
		listeners := make([]subscription, len(s.listeners))
		copy(listeners, s.listeners)
		s.mux.Unlock()
		for _, l := range listeners {
			l.fn(next)
		}
		s.mux.Lock()
	}
	s.dispatching = false
	s.mux.Unlock()
}

// Subscribe registers fn and returns a handle that removes it. Listeners run on
// the writing goroutine; a listener may call Set, the nested write is delivered
// after the current round, but it must not block on work that itself waits for
// notification to finish.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, subscription{id: id, fn: fn})
	var once sync.Once
	return func() {
		once.Do(func() {
			s.mux.Lock()
			defer s.mux.Unlock()
			for i, l := range s.listeners {
				if l.id == id {
					s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
					break
				}
			}
		})
	}
}

// Initialized reports whether startup has produced a terminal state.
func (s *Store) Initialized() bool {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return s.initialized
}

// MarkInitialized sets the initialization flag; it returns true only for the call that flipped it.
func (s *Store) MarkInitialized() bool {
	s.mux.Lock()
	defer s.mux.Unlock()
	if s.initialized {
		return false
	}
	s.initialized = true
	close(s.ready)
	return true
}

// Ready returns a channel closed once the initialization flag is set.
func (s *Store) Ready() <-chan struct{} {
	return s.ready
}
