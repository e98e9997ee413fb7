package memory

import (
	"context"
	"sync"
	"time"

	"github.com/lithammer/shortuuid/v4"
)

const (
	defaultMaxMessages  = 40
	sessionIdleLifetime = time.Hour
	cleanupInterval     = 10 * time.Minute
)

// SessionStore keeps per-session conversation history in memory with a
// sliding window. Thread-safe. Volatile by design: nothing is persisted.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*sessionData
	maxSize  int

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

type sessionData struct {
	messages   []Message
	lastAccess time.Time
}

// NewSessionStore creates a session store. maxSize caps the messages kept per
// session (default 40).
func NewSessionStore(maxSize int) *SessionStore {
	if maxSize <= 0 {
		maxSize = defaultMaxMessages
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &SessionStore{
		sessions: make(map[string]*sessionData),
		maxSize:  maxSize,
		ctx:      ctx,
		cancel:   cancel,
	}
	s.wg.Add(1)
	go s.cleanupLoop()
	return s
}

// Close stops the cleanup goroutine.
func (s *SessionStore) Close() {
	s.cancel()
	s.wg.Wait()
}

// NewSession allocates a fresh session ID and registers an empty session for
// it, so a created session is immediately readable.
func (s *SessionStore) NewSession() string {
	id := shortuuid.New()

	s.mu.Lock()
	s.sessions[id] = &sessionData{
		messages:   make([]Message, 0, s.maxSize),
		lastAccess: time.Now(),
	}
	s.mu.Unlock()

	return id
}

// Append adds a message to a session, creating the session on first use.
func (s *SessionStore) Append(sessionID string, msg Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		session = &sessionData{messages: make([]Message, 0, s.maxSize)}
		s.sessions[sessionID] = session
	}

	session.messages = append(session.messages, msg)
	session.lastAccess = time.Now()

	if len(session.messages) > s.maxSize {
		session.messages = session.messages[len(session.messages)-s.maxSize:]
	}
}

// History returns a copy of the session's messages in order. A known but
// empty session yields an empty non-nil slice; an unknown session yields nil.
func (s *SessionStore) History(sessionID string) []Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil
	}
	session.lastAccess = time.Now()

	out := make([]Message, len(session.messages))
	copy(out, session.messages)
	return out
}

// Clear removes a session and its messages.
func (s *SessionStore) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

// SessionCount returns the number of live sessions.
func (s *SessionStore) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// cleanupLoop periodically evicts sessions idle for longer than the lifetime.
func (s *SessionStore) cleanupLoop() {
	defer s.wg.Done()
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.mu.Lock()
			now := time.Now()
			for id, session := range s.sessions {
				if now.Sub(session.lastAccess) > sessionIdleLifetime {
					delete(s.sessions, id)
				}
			}
			s.mu.Unlock()
		}
	}
}
