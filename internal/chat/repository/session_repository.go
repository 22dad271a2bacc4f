package repository

import (
	"sync"
	"time"

	"social_chat_service/internal/chat/domain"
)

// SessionRegistry single source of truth for "is this account online and
// where". All lookups against unknown accounts degrade to offline defaults.
type SessionRegistry interface {
	// Connect registers the account as online with the given handle,
	// superseding any prior handle (last writer wins).
	Connect(accountID string, conn domain.ConnHandle)
	// Disconnect reverse-looks-up the session owning the handle, marks it
	// offline and stamps LastSeen. ok is false when the handle never
	// announced or was already superseded.
	Disconnect(conn domain.ConnHandle) (accountID string, ok bool)
	// StatusOf offline is the default for unknown accounts, never an error.
	StatusOf(accountID string) domain.PresenceStatus
	// HandleOf the current handle if the account is online.
	HandleOf(accountID string) (domain.ConnHandle, bool)
	// LastSeen the last disconnect time, zero for accounts never seen.
	LastSeen(accountID string) time.Time
}

type memorySessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
	// handle -> account index so Disconnect stays O(1) instead of scanning
	conns map[domain.ConnHandle]string
}

// NewMemorySessionRegistry create an in-memory SessionRegistry
func NewMemorySessionRegistry() SessionRegistry {
	return &memorySessionRegistry{
		sessions: make(map[string]*domain.Session),
		conns:    make(map[domain.ConnHandle]string),
	}
}

func (r *memorySessionRegistry) Connect(accountID string, conn domain.ConnHandle) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// 同帳號重複連線時舊的 handle 直接被取代
	if prev, ok := r.sessions[accountID]; ok && prev.Conn != nil {
		delete(r.conns, prev.Conn)
	}

	r.sessions[accountID] = &domain.Session{
		AccountID: accountID,
		Conn:      conn,
		Status:    domain.StatusOnline,
		LastSeen:  time.Now(),
	}
	r.conns[conn] = accountID
}

func (r *memorySessionRegistry) Disconnect(conn domain.ConnHandle) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	accountID, ok := r.conns[conn]
	if !ok {
		// disconnect before announce, or a superseded handle closing late
		return "", false
	}
	delete(r.conns, conn)

	if s, ok := r.sessions[accountID]; ok && s.Conn == conn {
		s.Status = domain.StatusOffline
		s.Conn = nil
		s.LastSeen = time.Now()
	}
	return accountID, true
}

func (r *memorySessionRegistry) StatusOf(accountID string) domain.PresenceStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if s, ok := r.sessions[accountID]; ok {
		return s.Status
	}
	return domain.StatusOffline
}

func (r *memorySessionRegistry) HandleOf(accountID string) (domain.ConnHandle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[accountID]
	if !ok || s.Status != domain.StatusOnline || s.Conn == nil {
		return nil, false
	}
	return s.Conn, true
}

func (r *memorySessionRegistry) LastSeen(accountID string) time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if s, ok := r.sessions[accountID]; ok {
		return s.LastSeen
	}
	return time.Time{}
}
