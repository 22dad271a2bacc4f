package app

import (
	"context"
	"sync"

	"social_chat_service/internal/chat/domain"

	"github.com/stretchr/testify/mock"
)

// recordingConn ConnHandle that records every Push for assertions.
type recordingConn struct {
	mu     sync.Mutex
	pushes []recordedPush
}

type recordedPush struct {
	Event   string
	Payload map[string]interface{}
}

func (c *recordingConn) Push(event string, payload map[string]interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pushes = append(c.pushes, recordedPush{Event: event, Payload: payload})
}

func (c *recordingConn) recorded() []recordedPush {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]recordedPush, len(c.pushes))
	copy(out, c.pushes)
	return out
}

func (c *recordingConn) events() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.pushes))
	for _, p := range c.pushes {
		out = append(out, p.Event)
	}
	return out
}

// MockMessageRepo Mock MessageRepository
type MockMessageRepo struct {
	mock.Mock
}

func (m *MockMessageRepo) Append(ctx context.Context, msg domain.ChatMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockMessageRepo) History(ctx context.Context, roomKey string) ([]domain.ChatMessage, error) {
	args := m.Called(ctx, roomKey)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.ChatMessage), args.Error(1)
	}
	return nil, args.Error(1)
}
