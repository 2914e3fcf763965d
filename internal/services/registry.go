package services

import (
	"sync"
	"time"

	"riskspin-backend/internal/models"
)

// SessionRegistry maps session ids to live controllers. A controller is
// discarded when its session is removed; nothing is kept across sessions.
type SessionRegistry struct {
	gateway   Gateway
	roller    Roller
	refresher Refresher

	mu       sync.RWMutex
	sessions map[string]*Controller
}

func NewSessionRegistry(gw Gateway, roller Roller, refresher Refresher) *SessionRegistry {
	return &SessionRegistry{
		gateway:   gw,
		roller:    roller,
		refresher: refresher,
		sessions:  make(map[string]*Controller),
	}
}

// NewController returns an unauthenticated controller that is not yet registered.
func (r *SessionRegistry) NewController() *Controller {
	return NewController(r.gateway, r.roller, r.refresher)
}

func (r *SessionRegistry) Add(ctrl *Controller) string {
	id := models.GenerateSessionID()

	r.mu.Lock()
	r.sessions[id] = ctrl
	r.mu.Unlock()

	return id
}

func (r *SessionRegistry) Get(sessionID string) (*Controller, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ctrl, ok := r.sessions[sessionID]
	return ctrl, ok
}

func (r *SessionRegistry) Remove(sessionID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.sessions[sessionID]
	delete(r.sessions, sessionID)
	return ok
}

func (r *SessionRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// CleanupIdle drops sessions untouched for longer than maxIdle. Sessions with
// a save in flight are kept.
func (r *SessionRegistry) CleanupIdle(maxIdle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, ctrl := range r.sessions {
		if ctrl.Idle(maxIdle) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}
