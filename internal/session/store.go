package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"greenfields/internal/model"
)

// Session is the server-side record an opaque cookie token points at
type Session struct {
	UserID    int
	Username  string
	Role      string // always stored lower-cased
	ExpiresAt time.Time
}

// Store maps opaque tokens to session records. It is the sole writer of
// session state; expired entries are dropped lazily on Get and swept by
// StartSweeper.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]Session
	ttl      time.Duration
}

// NewStore creates a session store with the given TTL
func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]Session),
		ttl:      ttl,
	}
}

// Create issues a new session for a logged-in user and returns its token.
// The role is normalized so later comparisons are case-stable.
func (s *Store) Create(userID int, username, role string) string {
	token := uuid.NewString()
	s.mu.Lock()
	s.sessions[token] = Session{
		UserID:    userID,
		Username:  username,
		Role:      model.NormalizeRole(role),
		ExpiresAt: time.Now().Add(s.ttl),
	}
	s.mu.Unlock()
	return token
}

// Get resolves a token to its session. Absent or expired tokens return
// ok=false, never an error.
func (s *Store) Get(token string) (Session, bool) {
	s.mu.RLock()
	sess, ok := s.sessions[token]
	s.mu.RUnlock()
	if !ok {
		return Session{}, false
	}
	if time.Now().After(sess.ExpiresAt) {
		s.Destroy(token)
		return Session{}, false
	}
	return sess, true
}

// Destroy removes a session; destroying a missing token is a no-op
func (s *Store) Destroy(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// StartSweeper purges expired sessions periodically until stop is closed
func (s *Store) StartSweeper(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				s.purgeExpired()
			}
		}
	}()
}

func (s *Store) purgeExpired() {
	now := time.Now()
	s.mu.Lock()
	for token, sess := range s.sessions {
		if now.After(sess.ExpiresAt) {
			delete(s.sessions, token)
		}
	}
	s.mu.Unlock()
}
