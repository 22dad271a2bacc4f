package app

import (
	"testing"

	"social_chat_service/internal/chat/domain"
	"social_chat_service/internal/chat/repository"
	"social_chat_service/pkg/logger"

	"github.com/stretchr/testify/assert"
)

func newPresenceFixture() (*PresenceUseCase, repository.FriendRepository, repository.BacklogRepository) {
	friends := repository.NewMemoryFriendRepository()
	backlog := repository.NewMemoryBacklogRepository()
	sessions := repository.NewMemorySessionRegistry()
	return NewPresenceUseCase(sessions, backlog, friends), friends, backlog
}

func TestPresenceUseCase_Connect(t *testing.T) {
	logger.SetNewNop()

	t.Run("announce 後 online 並取回 backlog", func(t *testing.T) {
		uc, _, backlog := newPresenceFixture()
		backlog.Append("alice", domain.ChatMessage{ID: "1", Content: "missed you"})

		pending := uc.Connect("alice", &recordingConn{})
		assert.Len(t, pending, 1)
		assert.Equal(t, "missed you", pending[0].Content)
		assert.Equal(t, domain.StatusOnline, uc.StatusOf("alice"))
	})

	t.Run("第二次 announce backlog 已空", func(t *testing.T) {
		uc, _, backlog := newPresenceFixture()
		backlog.Append("alice", domain.ChatMessage{ID: "1"})

		uc.Connect("alice", &recordingConn{})
		assert.Empty(t, uc.Connect("alice", &recordingConn{}))
	})
}

func TestPresenceUseCase_Disconnect(t *testing.T) {
	logger.SetNewNop()

	t.Run("在線朋友收到 friendListUpdated", func(t *testing.T) {
		uc, friends, _ := newPresenceFixture()
		friends.Accept("alice", "bob")
		friends.Accept("alice", "carol")

		aliceConn := &recordingConn{}
		bobConn := &recordingConn{}
		uc.Connect("alice", aliceConn)
		uc.Connect("bob", bobConn)
		// carol 離線, 不應該收到任何 push

		accountID, ok := uc.Disconnect(aliceConn)
		assert.True(t, ok)
		assert.Equal(t, "alice", accountID)
		assert.Equal(t, domain.StatusOffline, uc.StatusOf("alice"))
		assert.Equal(t, []string{domain.EventFriendListUpdated}, bobConn.events())
	})

	t.Run("沒 announce 過的 handle 是 no-op", func(t *testing.T) {
		uc, _, _ := newPresenceFixture()
		_, ok := uc.Disconnect(&recordingConn{})
		assert.False(t, ok)
	})

	t.Run("被取代的舊 handle 不影響新 session", func(t *testing.T) {
		uc, _, _ := newPresenceFixture()

		oldConn := &recordingConn{}
		uc.Connect("alice", oldConn)
		uc.Connect("alice", &recordingConn{})

		_, ok := uc.Disconnect(oldConn)
		assert.False(t, ok)
		assert.Equal(t, domain.StatusOnline, uc.StatusOf("alice"))
	})
}
