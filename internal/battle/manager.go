package battle

import (
	"sync"
	"time"
)

// Manager owns every live session, keyed by room ID. Rooms are fully
// independent; the manager's lock only guards the map, never a session's
// own mutations.
type Manager struct {
	mu       sync.RWMutex
	sessions map[uint]*Session
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[uint]*Session)}
}

// Create registers a new session for roomID. If one already exists (a
// duplicate join slipped past the registry) the existing session wins.
func (m *Manager) Create(roomID uint, s *Session) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.sessions[roomID]; ok {
		return existing
	}
	m.sessions[roomID] = s
	return s
}

// Get returns the session for roomID, if any.
func (m *Manager) Get(roomID uint) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[roomID]
	return s, ok
}

// Remove drops the session for roomID. Idempotent.
func (m *Manager) Remove(roomID uint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, roomID)
}

// Abandon marks the session concluded because leavingUserID left. The
// session is kept registered so the remaining participant's next poll
// still sees the opponent-left conclusion; SweepConcluded evicts it later.
// Returns false when no session exists for roomID.
func (m *Manager) Abandon(roomID uint, leavingUserID string) bool {
	s, ok := m.Get(roomID)
	if !ok {
		return false
	}
	s.Abandon(leavingUserID)
	return true
}

// SweepConcluded removes sessions that concluded before cutoff and returns
// their room IDs.
func (m *Manager) SweepConcluded(cutoff time.Time) []uint {
	m.mu.Lock()
	defer m.mu.Unlock()
	var removed []uint
	for id, s := range m.sessions {
		if s.ConcludedSince(cutoff) {
			delete(m.sessions, id)
			removed = append(removed, id)
		}
	}
	return removed
}
