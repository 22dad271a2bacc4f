package repository

import (
	"sync"

	"social_chat_service/internal/chat/domain"
)

// BacklogRepository per-account ordered queue of messages routed while the
// account was offline. Append and Drain share one mutex, so a message routed
// concurrently with a drain is either in the drained batch or left for the
// next drain, never dropped.
type BacklogRepository interface {
	Append(accountID string, msg domain.ChatMessage)
	// Drain returns the backlog in original send order and clears it.
	Drain(accountID string) []domain.ChatMessage
}

type memoryBacklogRepository struct {
	mu      sync.Mutex
	backlog map[string][]domain.ChatMessage
}

// NewMemoryBacklogRepository create an in-memory BacklogRepository
func NewMemoryBacklogRepository() BacklogRepository {
	return &memoryBacklogRepository{
		backlog: make(map[string][]domain.ChatMessage),
	}
}

func (r *memoryBacklogRepository) Append(accountID string, msg domain.ChatMessage) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.backlog[accountID] = append(r.backlog[accountID], msg)
}

func (r *memoryBacklogRepository) Drain(accountID string) []domain.ChatMessage {
	r.mu.Lock()
	defer r.mu.Unlock()

	queued := r.backlog[accountID]
	delete(r.backlog, accountID)
	return queued
}
