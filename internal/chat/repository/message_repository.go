package repository

import (
	"context"
	"sync"

	"social_chat_service/internal/chat/domain"
)

// MessageRepository append-only room history, keyed by canonical room key.
type MessageRepository interface {
	Append(ctx context.Context, msg domain.ChatMessage) error
	// History ordered messages for the room, possibly empty; idempotent read.
	History(ctx context.Context, roomKey string) ([]domain.ChatMessage, error)
}

type memoryMessageRepository struct {
	mu      sync.RWMutex
	history map[string][]domain.ChatMessage
}

// NewMemoryMessageRepository create an in-memory MessageRepository
func NewMemoryMessageRepository() MessageRepository {
	return &memoryMessageRepository{
		history: make(map[string][]domain.ChatMessage),
	}
}

func (r *memoryMessageRepository) Append(ctx context.Context, msg domain.ChatMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.history[msg.RoomKey] = append(r.history[msg.RoomKey], msg)
	return nil
}

func (r *memoryMessageRepository) History(ctx context.Context, roomKey string) ([]domain.ChatMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.history[roomKey]
	out := make([]domain.ChatMessage, len(stored))
	copy(out, stored)
	return out, nil
}
