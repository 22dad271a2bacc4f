package app

import (
	"sync"

	"social_chat_service/internal/chat/domain"
)

// RoomBroadcaster fan-out of one event to every connection joined to a room.
type RoomBroadcaster interface {
	Broadcast(roomKey, event string, payload map[string]interface{})
}

// RoomHub tracks which live connections joined which room key. Several
// sockets may share a room, so delivery is a broadcast, not a unicast.
type RoomHub struct {
	mu    sync.RWMutex
	rooms map[string]map[domain.ConnHandle]struct{}
}

// NewRoomHub create a RoomHub
func NewRoomHub() *RoomHub {
	return &RoomHub{
		rooms: make(map[string]map[domain.ConnHandle]struct{}),
	}
}

// Join adds the connection to the room. Joining twice is a no-op.
func (h *RoomHub) Join(roomKey string, conn domain.ConnHandle) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.rooms[roomKey] == nil {
		h.rooms[roomKey] = make(map[domain.ConnHandle]struct{})
	}
	h.rooms[roomKey][conn] = struct{}{}
}

// Remove drops the connection from every room it joined.
func (h *RoomHub) Remove(conn domain.ConnHandle) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for roomKey, members := range h.rooms {
		delete(members, conn)
		if len(members) == 0 {
			delete(h.rooms, roomKey)
		}
	}
}

// Broadcast pushes the event to every member of the room, fire-and-forget.
func (h *RoomHub) Broadcast(roomKey, event string, payload map[string]interface{}) {
	h.mu.RLock()
	conns := make([]domain.ConnHandle, 0, len(h.rooms[roomKey]))
	for conn := range h.rooms[roomKey] {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	// push outside the lock, a slow socket must not stall the room
	for _, conn := range conns {
		conn.Push(event, payload)
	}
}
