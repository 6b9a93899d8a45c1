package store

import (
	"sync"

	"github.com/google/uuid"

	"mindemotion-core/internal/domain/entity"
)

type session struct {
	mu    sync.Mutex
	turns []entity.Turn
}

// SessionStore keeps per-session conversation histories in memory.
// Histories live for the process lifetime. Each session has its own
// lock so concurrent chats on different sessions never contend.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*session)}
}

// Create registers a fresh session and returns its id.
func (s *SessionStore) Create() string {
	id := uuid.NewString()
	s.mu.Lock()
	s.sessions[id] = &session{}
	s.mu.Unlock()
	return id
}

// History returns a copy of the turns recorded for id so far.
func (s *SessionStore) History(id string) []entity.Turn {
	sess := s.get(id)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	out := make([]entity.Turn, len(sess.turns))
	copy(out, sess.turns)
	return out
}

// Append records one completed exchange.
func (s *SessionStore) Append(id string, turn entity.Turn) {
	sess := s.get(id)
	sess.mu.Lock()
	sess.turns = append(sess.turns, turn)
	sess.mu.Unlock()
}

func (s *SessionStore) get(id string) *session {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if ok {
		return sess
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok = s.sessions[id]; !ok {
		sess = &session{}
		s.sessions[id] = sess
	}
	return sess
}
