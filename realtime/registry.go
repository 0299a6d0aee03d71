package realtime

import "sync"

// Registry tracks, per user identifier, the live transport sessions and the
// conversation rooms that user currently participates in. State is process
// local; cross-process delivery is the transport adapter's concern.
//
// Sessions that connect without a user identifier are never registered here —
// they stay connected in a degraded mode with no personal-channel routing.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]map[string]struct{} // userID -> session ids
	rooms    map[string]map[string]struct{} // userID -> joined room ids
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]map[string]struct{}),
		rooms:    make(map[string]map[string]struct{}),
	}
}

func (r *Registry) RegisterSession(userID, sessionID string) {
	if userID == "" || sessionID == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[userID]; !ok {
		r.sessions[userID] = make(map[string]struct{})
	}
	r.sessions[userID][sessionID] = struct{}{}
}

// RemoveSession drops one session. Room bookkeeping survives until the user's
// last session is gone, since rooms are tracked per user, not per session.
func (r *Registry) RemoveSession(userID, sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if set, ok := r.sessions[userID]; ok {
		delete(set, sessionID)
		if len(set) == 0 {
			delete(r.sessions, userID)
			delete(r.rooms, userID)
		}
	}
}

func (r *Registry) RecordRoomJoin(userID, roomID string) {
	if userID == "" || roomID == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rooms[userID]; !ok {
		r.rooms[userID] = make(map[string]struct{})
	}
	r.rooms[userID][roomID] = struct{}{}
}

func (r *Registry) RecordRoomLeave(userID, roomID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if set, ok := r.rooms[userID]; ok {
		delete(set, roomID)
	}
}

func (r *Registry) IsUserInRoom(userID, roomID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	set, ok := r.rooms[userID]
	if !ok {
		return false
	}
	_, ok = set[roomID]
	return ok
}

// SessionCount reports live sessions for a user. Zero means offline.
func (r *Registry) SessionCount(userID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions[userID])
}
