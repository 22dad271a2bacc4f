package repository

import (
	"testing"

	"social_chat_service/internal/chat/domain"

	"github.com/stretchr/testify/assert"
)

// fakeConn minimal ConnHandle, the registry never calls Push itself.
type fakeConn struct {
	id string
}

func (c *fakeConn) Push(event string, payload map[string]interface{}) {}

func TestSessionRegistry_ConnectDisconnect(t *testing.T) {
	reg := NewMemorySessionRegistry()
	conn := &fakeConn{id: "c1"}

	t.Run("connect 後是 online", func(t *testing.T) {
		reg.Connect("alice", conn)
		assert.Equal(t, domain.StatusOnline, reg.StatusOf("alice"))

		h, ok := reg.HandleOf("alice")
		assert.True(t, ok)
		assert.Same(t, conn, h)
	})

	t.Run("disconnect 後是 offline 並記下 LastSeen", func(t *testing.T) {
		accountID, ok := reg.Disconnect(conn)
		assert.True(t, ok)
		assert.Equal(t, "alice", accountID)
		assert.Equal(t, domain.StatusOffline, reg.StatusOf("alice"))
		assert.False(t, reg.LastSeen("alice").IsZero())

		_, online := reg.HandleOf("alice")
		assert.False(t, online)
	})
}

func TestSessionRegistry_Supersede(t *testing.T) {
	reg := NewMemorySessionRegistry()
	first := &fakeConn{id: "first"}
	second := &fakeConn{id: "second"}

	reg.Connect("alice", first)
	reg.Connect("alice", second)

	// 新 handle 生效
	h, ok := reg.HandleOf("alice")
	assert.True(t, ok)
	assert.Same(t, second, h)

	// 舊 handle 晚一點才關閉, 不能把帳號踢成 offline
	_, ok = reg.Disconnect(first)
	assert.False(t, ok)
	assert.Equal(t, domain.StatusOnline, reg.StatusOf("alice"))

	accountID, ok := reg.Disconnect(second)
	assert.True(t, ok)
	assert.Equal(t, "alice", accountID)
	assert.Equal(t, domain.StatusOffline, reg.StatusOf("alice"))
}

func TestSessionRegistry_UnknownDefaults(t *testing.T) {
	reg := NewMemorySessionRegistry()

	assert.Equal(t, domain.StatusOffline, reg.StatusOf("ghost"))
	assert.True(t, reg.LastSeen("ghost").IsZero())

	_, ok := reg.HandleOf("ghost")
	assert.False(t, ok)

	// 沒 announce 過的 handle 直接斷線
	_, ok = reg.Disconnect(&fakeConn{id: "stray"})
	assert.False(t, ok)
}
