package app

import (
	"social_chat_service/internal/chat/domain"
	"social_chat_service/internal/chat/repository"
	"social_chat_service/pkg/logger"

	"go.uber.org/zap"
)

// PresenceUseCase session lifecycle: announce, disconnect, status lookups.
type PresenceUseCase struct {
	sessions repository.SessionRegistry
	backlog  repository.BacklogRepository
	friends  repository.FriendRepository
}

// NewPresenceUseCase init presence use case
func NewPresenceUseCase(
	sessions repository.SessionRegistry,
	backlog repository.BacklogRepository,
	friends repository.FriendRepository,
) *PresenceUseCase {
	return &PresenceUseCase{
		sessions: sessions,
		backlog:  backlog,
		friends:  friends,
	}
}

// Connect registers the connection as the account's live session and returns
// the drained offline backlog for the caller to deliver. The drain clears
// the backlog, so a second connect returns nothing.
func (uc *PresenceUseCase) Connect(accountID string, conn domain.ConnHandle) []domain.ChatMessage {
	uc.sessions.Connect(accountID, conn)
	return uc.backlog.Drain(accountID)
}

// Disconnect resolves the account owning the handle, marks it offline and
// tells every online friend the list changed. Silent no-op for handles that
// never announced.
func (uc *PresenceUseCase) Disconnect(conn domain.ConnHandle) (string, bool) {
	accountID, ok := uc.sessions.Disconnect(conn)
	if !ok {
		return "", false
	}

	logger.Log.Info("account disconnected", zap.String("accountID", accountID))

	for _, friend := range uc.friends.FriendsOf(accountID) {
		if h, online := uc.sessions.HandleOf(friend); online {
			h.Push(domain.EventFriendListUpdated, nil)
		}
	}
	return accountID, true
}

// StatusOf presence of the account, offline for unknown ids.
func (uc *PresenceUseCase) StatusOf(accountID string) domain.PresenceStatus {
	return uc.sessions.StatusOf(accountID)
}
