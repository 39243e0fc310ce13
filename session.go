package main

import (
	"sync"
	"time"
)

const maxSessions = 100

// SessionIdleTimeout is how long an empty session survives before the
// janitor removes it. Variable so tests can shrink it.
var SessionIdleTimeout = 2 * time.Minute

// Session represents one salvage run that a player owns
type Session struct {
	ID       string
	Name     string
	Game     *Game
	emptyAt  time.Time
}

// SessionManager handles creation and lookup of run sessions
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewSessionManager creates a new SessionManager and starts the idle
// session janitor.
func NewSessionManager() *SessionManager {
	sm := &SessionManager{
		sessions: make(map[string]*Session),
	}
	go sm.janitor()
	return sm
}

// CreateSession creates a new run session. Returns nil if limit reached.
func (sm *SessionManager) CreateSession(name string, run *RunConfig, db *DB, analytics *Analytics) *Session {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if len(sm.sessions) >= maxSessions {
		return nil
	}

	id := GenerateUUID()
	game := NewGame(run, id, db, analytics)
	sess := &Session{
		ID:      id,
		Name:    name,
		Game:    game,
		emptyAt: time.Now(),
	}
	sm.sessions[id] = sess
	go game.Run()
	return sess
}

// GetSession returns a session by ID
func (sm *SessionManager) GetSession(id string) *Session {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.sessions[id]
}

// RemoveCraft detaches a craft from a session. The session lingers
// until the janitor collects it, so a dropped connection can rejoin.
func (sm *SessionManager) RemoveCraft(sessionID, craftID string) {
	sm.mu.Lock()
	sess, ok := sm.sessions[sessionID]
	if ok {
		sess.emptyAt = time.Now()
	}
	sm.mu.Unlock()
	if !ok {
		return
	}
	sess.Game.RemoveCraft(craftID)
}

// ListSessions returns info about all active sessions
func (sm *SessionManager) ListSessions() []SessionInfo {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	list := make([]SessionInfo, 0, len(sm.sessions))
	for _, sess := range sm.sessions {
		list = append(list, SessionInfo{
			ID:      sess.ID,
			Name:    sess.Name,
			Level:   sess.Game.LevelIndex(),
			Running: sess.Game.CraftCount() > 0,
		})
	}
	return list
}

// janitor removes sessions that have sat empty past the idle timeout
func (sm *SessionManager) janitor() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	for range ticker.C {
		cutoff := time.Now().Add(-SessionIdleTimeout)
		sm.mu.Lock()
		for id, sess := range sm.sessions {
			if sess.Game.CraftCount() == 0 && sess.emptyAt.Before(cutoff) {
				sess.Game.Stop()
				delete(sm.sessions, id)
			}
		}
		sm.mu.Unlock()
	}
}
