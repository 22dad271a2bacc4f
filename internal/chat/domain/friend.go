package domain

// FriendInfo one confirmed friend with presence resolved.
// LastSeen is the unix time of the last disconnect, zero for accounts that
// never connected.
type FriendInfo struct {
	Username string         `json:"username"`
	Status   PresenceStatus `json:"status"`
	LastSeen int64          `json:"lastSeen,omitempty"`
}

// SearchResult one searchUsers row, annotated relative to the searcher.
type SearchResult struct {
	Username string         `json:"username"`
	Status   PresenceStatus `json:"status"`
	IsFriend bool           `json:"isFriend"`
}
