package domain

import "time"

// PresenceStatus definition account presence
type PresenceStatus string

const (
	// StatusOnline the account has a live connection
	StatusOnline PresenceStatus = "online"
	// StatusOffline default for disconnected or unknown accounts
	StatusOffline PresenceStatus = "offline"
)

// ConnHandle pushes one named event to one live connection.
// Push is fire-and-forget: a write to a stale handle is swallowed by the
// implementation and never fails the triggering operation.
type ConnHandle interface {
	Push(event string, payload map[string]interface{})
}

// Session the current connection state of one account.
// One session per account at a time: a new connection under the same
// account supersedes the prior handle.
type Session struct {
	AccountID string
	Conn      ConnHandle
	Status    PresenceStatus
	LastSeen  time.Time
}
