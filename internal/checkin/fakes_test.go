package checkin_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/mallikaketkar/ALIGN-APP-NEW/internal/checkin"
)

// memSessionStore keeps sessions as JSON, the same way the redis store does.
type memSessionStore struct {
	mu        sync.Mutex
	sessions  map[string][]byte
	submitted map[string]bool
	// failSave makes every Save fail, as an unreachable redis would
	failSave bool
}

var errStoreDown = errors.New("session store down")

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{
		sessions:  make(map[string][]byte),
		submitted: make(map[string]bool),
	}
}

func (s *memSessionStore) Save(_ context.Context, session *checkin.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSave {
		return errStoreDown
	}
	s.sessions[session.ID] = raw
	return nil
}

func (s *memSessionStore) Get(_ context.Context, id string) (*checkin.Session, error) {
	s.mu.Lock()
	raw, ok := s.sessions[id]
	s.mu.Unlock()
	if !ok {
		return nil, checkin.ErrSessionNotFound
	}
	var session checkin.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *memSessionStore) setFailSave(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failSave = fail
}

func (s *memSessionStore) isMarked(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitted[id]
}

func (s *memSessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	delete(s.submitted, id)
	return nil
}

func (s *memSessionStore) MarkSubmitted(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitted[id] {
		return false, nil
	}
	s.submitted[id] = true
	return true, nil
}

func (s *memSessionStore) ClearSubmitted(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.submitted, id)
	return nil
}

func (s *memSessionStore) RenameOwner(_ context.Context, oldEmail, newEmail string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	renamed := 0
	for id, raw := range s.sessions {
		var session checkin.Session
		if err := json.Unmarshal(raw, &session); err != nil {
			return renamed, err
		}
		if session.Email != oldEmail {
			continue
		}
		session.Email = newEmail
		updated, err := json.Marshal(session)
		if err != nil {
			return renamed, err
		}
		s.sessions[id] = updated
		renamed++
	}
	return renamed, nil
}
