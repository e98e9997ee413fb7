package tripcontext

import (
	"context"
	"sync"
	"time"
)

const (
	trackerIdleLifetime    = time.Hour
	trackerCleanupInterval = 10 * time.Minute
)

// CardStore keeps one CardTracker per session so displayed cards never cross
// conversation boundaries. Thread-safe. Volatile like the session store:
// trackers for sessions idle past the lifetime are evicted.
type CardStore struct {
	mu       sync.Mutex
	trackers map[string]*trackerData

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

type trackerData struct {
	tracker    *CardTracker
	lastAccess time.Time
}

// NewCardStore creates a session-keyed card store.
func NewCardStore() *CardStore {
	ctx, cancel := context.WithCancel(context.Background())
	s := &CardStore{
		trackers: make(map[string]*trackerData),
		ctx:      ctx,
		cancel:   cancel,
	}
	s.wg.Add(1)
	go s.cleanupLoop()
	return s
}

// Close stops the cleanup goroutine.
func (s *CardStore) Close() {
	s.cancel()
	s.wg.Wait()
}

// Upsert records a card against a session, creating its tracker on first use.
func (s *CardStore) Upsert(sessionID string, card DisplayedCard) {
	if sessionID == "" {
		return
	}
	s.tracker(sessionID).Upsert(card)
}

// Cards returns a copy of one session's cards in first-seen order.
// Unknown sessions yield nil without creating a tracker.
func (s *CardStore) Cards(sessionID string) []DisplayedCard {
	s.mu.Lock()
	data, ok := s.trackers[sessionID]
	if ok {
		data.lastAccess = time.Now()
	}
	s.mu.Unlock()

	if !ok {
		return nil
	}
	return data.tracker.Cards()
}

// Len returns the number of distinct tracked places for one session.
func (s *CardStore) Len(sessionID string) int {
	s.mu.Lock()
	data, ok := s.trackers[sessionID]
	s.mu.Unlock()

	if !ok {
		return 0
	}
	return data.tracker.Len()
}

// Clear drops a session's tracker and all its cards.
func (s *CardStore) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.trackers, sessionID)
}

func (s *CardStore) tracker(sessionID string) *CardTracker {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.trackers[sessionID]
	if !ok {
		data = &trackerData{tracker: NewCardTracker()}
		s.trackers[sessionID] = data
	}
	data.lastAccess = time.Now()
	return data.tracker
}

// cleanupLoop periodically evicts trackers idle for longer than the lifetime.
func (s *CardStore) cleanupLoop() {
	defer s.wg.Done()
	ticker := time.NewTicker(trackerCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.mu.Lock()
			now := time.Now()
			for id, data := range s.trackers {
				if now.Sub(data.lastAccess) > trackerIdleLifetime {
					delete(s.trackers, id)
				}
			}
			s.mu.Unlock()
		}
	}
}
