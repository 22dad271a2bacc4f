package app

import (
	"context"
	"errors"
	"testing"

	"social_chat_service/internal/chat/domain"
	"social_chat_service/internal/chat/repository"
	"social_chat_service/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newMessageFixture() (*SendMessageUseCase, repository.SessionRegistry, repository.BacklogRepository, *RoomHub) {
	sessions := repository.NewMemorySessionRegistry()
	backlog := repository.NewMemoryBacklogRepository()
	hub := NewRoomHub()
	uc := NewSendMessageUseCase(sessions, repository.NewMemoryMessageRepository(), backlog, hub)
	return uc, sessions, backlog, hub
}

func TestSendMessageUseCase_Route(t *testing.T) {
	ctx := context.Background()
	logger.SetNewNop()

	// **情境 1: 對方在線**
	t.Run("對方在線收到 notification", func(t *testing.T) {
		uc, sessions, _, hub := newMessageFixture()

		aliceConn := &recordingConn{}
		bobConn := &recordingConn{}
		sessions.Connect("alice", aliceConn)
		sessions.Connect("bob", bobConn)
		roomKey := domain.RoomKey("alice", "bob")
		hub.Join(roomKey, aliceConn)
		hub.Join(roomKey, bobConn)

		msg, err := uc.Route(ctx, "alice", "bob", "hello")
		assert.NoError(t, err)
		assert.Equal(t, roomKey, msg.RoomKey)

		// 房間兩邊都收到 receiveMessage-<roomKey>
		assert.Contains(t, aliceConn.events(), domain.ReceiveMessageEvent(roomKey))
		assert.Contains(t, bobConn.events(), domain.ReceiveMessageEvent(roomKey))

		// 在線的 peer 再收到一個 messageNotification
		assert.Contains(t, bobConn.events(), domain.EventMessageNotification)
		assert.NotContains(t, aliceConn.events(), domain.EventMessageNotification)
	})

	// **情境 2: 對方離線**
	t.Run("對方離線訊息進 backlog", func(t *testing.T) {
		uc, sessions, backlog, hub := newMessageFixture()

		aliceConn := &recordingConn{}
		sessions.Connect("alice", aliceConn)
		hub.Join(domain.RoomKey("alice", "bob"), aliceConn)

		_, err := uc.Route(ctx, "alice", "bob", "are you there")
		assert.NoError(t, err)

		queued := backlog.Drain("bob")
		assert.Len(t, queued, 1)
		assert.Equal(t, "are you there", queued[0].Content)
		assert.Equal(t, "alice", queued[0].SenderID)
	})

	// **情境 3: uuid 帳號 id**
	t.Run("uuid 帳號互傳不會錯認 peer", func(t *testing.T) {
		uc, sessions, backlog, _ := newMessageFixture()

		sender := uuid.New().String()
		peer := uuid.New().String()
		sessions.Connect(sender, &recordingConn{})

		// 兩個方向算出同一個 room, 離線的 peer 整個 uuid 當 key 進 backlog
		a, err := uc.Route(ctx, sender, peer, "ping")
		assert.NoError(t, err)
		b, err := uc.Route(ctx, peer, sender, "pong")
		assert.NoError(t, err)
		assert.Equal(t, a.RoomKey, b.RoomKey)

		queued := backlog.Drain(peer)
		assert.Len(t, queued, 1)
		assert.Equal(t, "ping", queued[0].Content)
	})

	// **情境 4: self-room**
	t.Run("self room 不會通知也不會排隊", func(t *testing.T) {
		uc, sessions, backlog, hub := newMessageFixture()

		aliceConn := &recordingConn{}
		sessions.Connect("alice", aliceConn)
		hub.Join(domain.RoomKey("alice", "alice"), aliceConn)

		_, err := uc.Route(ctx, "alice", "alice", "note to self")
		assert.NoError(t, err)

		assert.Contains(t, aliceConn.events(), domain.ReceiveMessageEvent("alice-alice"))
		assert.NotContains(t, aliceConn.events(), domain.EventMessageNotification)
		assert.Empty(t, backlog.Drain("alice"))
	})

	// **情境 5: 儲存失敗**
	t.Run("history 儲存失敗直接回傳錯誤", func(t *testing.T) {
		sessions := repository.NewMemorySessionRegistry()
		mockRepo := new(MockMessageRepo)
		mockRepo.On("Append", ctx, mock.Anything).Return(errors.New("db error")).Once()

		uc := NewSendMessageUseCase(sessions, mockRepo, repository.NewMemoryBacklogRepository(), NewRoomHub())

		_, err := uc.Route(ctx, "alice", "bob", "hello")
		assert.Error(t, err)
		assert.Equal(t, "db error", err.Error())
		mockRepo.AssertExpectations(t)
	})
}

func TestSendMessageUseCase_History(t *testing.T) {
	ctx := context.Background()
	logger.SetNewNop()

	t.Run("history 依序回傳且雙向同房", func(t *testing.T) {
		uc, _, _, _ := newMessageFixture()

		_, err := uc.Route(ctx, "alice", "bob", "one")
		assert.NoError(t, err)
		_, err = uc.Route(ctx, "bob", "alice", "two")
		assert.NoError(t, err)

		// 兩個參與者讀到同一條 history
		msgs, err := uc.History(ctx, "bob", "alice")
		assert.NoError(t, err)
		assert.Len(t, msgs, 2)
		assert.Equal(t, "one", msgs[0].Content)
		assert.Equal(t, "two", msgs[1].Content)
	})

	t.Run("uuid 帳號讀 history 也同房", func(t *testing.T) {
		uc, _, _, _ := newMessageFixture()

		a := uuid.New().String()
		b := uuid.New().String()
		_, err := uc.Route(ctx, a, b, "hello")
		assert.NoError(t, err)

		msgs, err := uc.History(ctx, b, a)
		assert.NoError(t, err)
		assert.Len(t, msgs, 1)
	})

	t.Run("空房間回傳空", func(t *testing.T) {
		uc, _, _, _ := newMessageFixture()
		msgs, err := uc.History(ctx, "ghost", "nobody")
		assert.NoError(t, err)
		assert.Empty(t, msgs)
	})
}
