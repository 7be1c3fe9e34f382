package auth

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session is an authenticated terminal session. Sessions live only in
// memory and disappear on logout or process restart.
type Session struct {
	Token     string
	UserID    int64
	Username  string
	Role      Role
	CreatedAt time.Time
}

// SessionStore is an in-memory registry of active sessions keyed by token.
type SessionStore struct {
	mu      sync.RWMutex
	byToken map[string]Session
	now     func() time.Time
}

// NewSessionStore returns an empty session registry.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		byToken: make(map[string]Session),
		now:     time.Now,
	}
}

// Issue creates a session for the given user and returns it.
func (s *SessionStore) Issue(u *User) Session {
	sess := Session{
		Token:     uuid.New().String(),
		UserID:    u.ID,
		Username:  u.Username,
		Role:      u.Role,
		CreatedAt: s.now(),
	}

	s.mu.Lock()
	s.byToken[sess.Token] = sess
	s.mu.Unlock()
	return sess
}

// Get looks up a session by token.
func (s *SessionStore) Get(token string) (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.byToken[token]
	return sess, ok
}

// Revoke removes a session, ending it.
func (s *SessionStore) Revoke(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byToken, token)
}
