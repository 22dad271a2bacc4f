package app

import (
	"context"
	"time"

	"social_chat_service/internal/chat/domain"
	"social_chat_service/internal/chat/repository"

	"github.com/google/uuid"
)

// SendMessageUseCase routes chat messages: room history, live room
// broadcast, and peer notification or offline backlog.
type SendMessageUseCase struct {
	sessions repository.SessionRegistry
	msgRepo  repository.MessageRepository
	backlog  repository.BacklogRepository
	hub      RoomBroadcaster
}

// NewSendMessageUseCase init create message use case
func NewSendMessageUseCase(
	sessions repository.SessionRegistry,
	msgRepo repository.MessageRepository,
	backlog repository.BacklogRepository,
	hub RoomBroadcaster,
) *SendMessageUseCase {
	return &SendMessageUseCase{
		sessions: sessions,
		msgRepo:  msgRepo,
		backlog:  backlog,
		hub:      hub,
	}
}

// Route stores the message under the room key of the sender/peer pair,
// broadcasts it to every connection joined to the room, then resolves the
// peer explicitly: an online peer gets a lightweight messageNotification
// (sender id only), an offline peer gets the full message appended to their
// personal backlog. The peer arrives as its own argument, never recovered by
// parsing the key.
func (uc *SendMessageUseCase) Route(ctx context.Context, senderID, peerID, content string) (domain.ChatMessage, error) {
	key := domain.RoomKey(senderID, peerID)

	msg := domain.ChatMessage{
		ID:        uuid.New().String(),
		RoomKey:   key,
		SenderID:  senderID,
		Content:   content,
		Timestamp: time.Now().Unix(),
	}

	if err := uc.msgRepo.Append(ctx, msg); err != nil {
		return domain.ChatMessage{}, err
	}

	uc.hub.Broadcast(key, domain.ReceiveMessageEvent(key), msg.AsPayload())

	if peerID == senderID {
		// self-room, no notification or backlog branch
		return msg, nil
	}

	if conn, online := uc.sessions.HandleOf(peerID); online {
		conn.Push(domain.EventMessageNotification, map[string]interface{}{
			"from": senderID,
		})
	} else {
		uc.backlog.Append(peerID, msg)
	}

	return msg, nil
}

// History the ordered stored messages of the a/b pair's room, possibly empty.
func (uc *SendMessageUseCase) History(ctx context.Context, a, b string) ([]domain.ChatMessage, error) {
	return uc.msgRepo.History(ctx, domain.RoomKey(a, b))
}
