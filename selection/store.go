// Package selection holds the host's selected item and tells interested
// parts of the UI when it changes.
package selection

import (
	"sync"

	"github.com/almonk/arbor/tree"
)

// Event is sent to subscribers when the selection changes. ID is empty when
// nothing is selected.
type Event struct {
	ID       string
	Previous string
}

// Store owns the selected id. The tree view never writes it directly; the
// host applies the view's SelectMsg here.
type Store struct {
	mu          sync.RWMutex
	id          string
	subscribers []chan Event
	closed      bool
}

func NewStore(id string) *Store {
	return &Store{id: id}
}

// ID returns the selected id.
func (s *Store) ID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.id
}

// Subscribe returns a channel that receives selection changes.
func (s *Store) Subscribe() <-chan Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan Event, 1) // Buffered to prevent blocking
	if s.closed {
		close(ch)
		return ch
	}
	s.subscribers = append(s.subscribers, ch)
	return ch
}

// Set selects id. It reports whether the selection changed.
func (s *Store) Set(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || id == s.id {
		return false
	}
	event := Event{ID: id, Previous: s.id}
	s.id = id
	for _, ch := range s.subscribers {
		select {
		case ch <- event:
		default:
			// Subscriber still holds an older event; drop it for the newer one.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- event:
			default:
			}
		}
	}
	return true
}

// Reconcile keeps the selection if the id still resolves in root and clears
// it otherwise. It reports whether the selection changed.
func (s *Store) Reconcile(root *tree.Node) bool {
	id := s.ID()
	if id == "" || tree.Find(root, id) != nil {
		return false
	}
	return s.Set("")
}

// Close closes all subscriber channels.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for _, ch := range s.subscribers {
		close(ch)
	}
	s.subscribers = nil
}
