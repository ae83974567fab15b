// Package session holds each browser's last request and result between
// page renders. State is process-local and survives only as long as the
// process does.
package session

import (
	"sync"

	"blsexplorer/models"
	"github.com/google/uuid"
)

// State is everything a render pass reads back from the store.
type State struct {
	Params models.QueryParams
	Result models.Result
}

type entry struct {
	state         State
	showAnimation bool
}

// Store maps session ids to their saved state. All access goes through one
// lock so a reader never observes a data/params mismatch.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*entry
}

// NewStore builds an empty store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*entry)}
}

// NewID mints a session id for the cookie.
func (s *Store) NewID() string {
	return uuid.NewString()
}

// Put overwrites the session's state as a group and arms the one-shot
// animation flag for the next render.
func (s *Store) Put(id string, params models.QueryParams, result models.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = &entry{
		state:         State{Params: params, Result: result},
		showAnimation: true,
	}
}

// Get returns the session's state, if any submission has been stored.
func (s *Store) Get(id string) (State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[id]
	if !ok {
		return State{}, false
	}
	return e.state, true
}

// ConsumeAnimation reports whether the celebration animation should fire,
// clearing the flag so it fires at most once per stored submission.
func (s *Store) ConsumeAnimation(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[id]
	if !ok || !e.showAnimation {
		return false
	}
	e.showAnimation = false
	return true
}
