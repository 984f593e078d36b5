package auth

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session marks one authenticated browser session. Sessions never expire
// and there is no logout; they last until the process restarts.
type Session struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionStore holds active sessions in memory, keyed by bearer token.
// Concurrent sessions from different users do not share any state beyond
// the credential map, which is immutable after startup.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
	creds    map[string]string
}

func NewSessionStore(creds map[string]string) *SessionStore {
	return &SessionStore{
		sessions: map[string]Session{},
		creds:    creds,
	}
}

// Login validates the credential pair and, on success, issues a session
// token. On failure no session state changes.
func (s *SessionStore) Login(username, password string) (Session, bool) {
	if !Authenticate(username, password, s.creds) {
		return Session{}, false
	}
	sess := Session{
		Token:     uuid.NewString(),
		Username:  username,
		CreatedAt: time.Now().UTC(),
	}
	s.mu.Lock()
	s.sessions[sess.Token] = sess
	s.mu.Unlock()
	return sess, true
}

func (s *SessionStore) Get(token string) (Session, bool) {
	s.mu.RLock()
	sess, ok := s.sessions[token]
	s.mu.RUnlock()
	return sess, ok
}

func (s *SessionStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
