package domain

const roomKeySeparator = "-"

// ChatMessage one relayed chat message, immutable once routed.
// The same message may be stored under the room key (history) and under the
// recipient's account id (offline backlog); the copies are independent.
type ChatMessage struct {
	ID        string `bson:"id" json:"id"`
	RoomKey   string `bson:"room_key" json:"room"`
	SenderID  string `bson:"sender_id" json:"sender"`
	Content   string `bson:"content" json:"message"`
	Timestamp int64  `bson:"timestamp" json:"timestamp"`
}

// AsPayload envelope payload form of the message
func (m ChatMessage) AsPayload() map[string]interface{} {
	return map[string]interface{}{
		"id":        m.ID,
		"room":      m.RoomKey,
		"sender":    m.SenderID,
		"message":   m.Content,
		"timestamp": m.Timestamp,
	}
}

// RoomKey derive the canonical key for a two-party room.
// The same unordered pair always yields the same key. Keys are derived
// from the participant pair and never parsed back: identities may contain
// the separator themselves, so a split would be ambiguous.
func RoomKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + roomKeySeparator + b
}
