package app

import (
	"social_chat_service/internal/chat/domain"
	"social_chat_service/internal/chat/repository"
	"social_chat_service/pkg/logger"

	"go.uber.org/zap"
)

// FriendUseCase friend graph mutations plus the signals they emit.
type FriendUseCase struct {
	friends  repository.FriendRepository
	sessions repository.SessionRegistry
}

// NewFriendUseCase init friend use case
func NewFriendUseCase(friends repository.FriendRepository, sessions repository.SessionRegistry) *FriendUseCase {
	return &FriendUseCase{
		friends:  friends,
		sessions: sessions,
	}
}

// RequestFriend adds the pending edge and signals the target if online.
// Duplicates and already-friends pairs are silent no-ops, not errors.
func (uc *FriendUseCase) RequestFriend(from, to string) {
	if !uc.friends.AddRequest(from, to) {
		logger.Log.Debug("friend request skipped",
			zap.String("from", from),
			zap.String("to", to),
		)
		return
	}

	if h, online := uc.sessions.HandleOf(to); online {
		h.Push(domain.EventFriendRequestReceived, map[string]interface{}{
			"from": from,
		})
	}
}

// AcceptFriend the target accepts requester `from`. The friendship is
// created even without a visible pending request (lenient source behavior);
// the requester gets friendRequestAccepted and both sides get
// friendListUpdated when online.
func (uc *FriendUseCase) AcceptFriend(from, to string) {
	uc.friends.Accept(from, to)

	if h, online := uc.sessions.HandleOf(from); online {
		h.Push(domain.EventFriendRequestAccepted, map[string]interface{}{
			"from": to,
		})
		h.Push(domain.EventFriendListUpdated, nil)
	}
	if h, online := uc.sessions.HandleOf(to); online {
		h.Push(domain.EventFriendListUpdated, nil)
	}
}

// Unfriend removes both directions atomically and signals both parties.
// Calling twice is safe.
func (uc *FriendUseCase) Unfriend(from, to string) {
	uc.friends.Unfriend(from, to)

	if h, online := uc.sessions.HandleOf(from); online {
		h.Push(domain.EventFriendListUpdated, nil)
	}
	if h, online := uc.sessions.HandleOf(to); online {
		h.Push(domain.EventFriendListUpdated, nil)
	}
}

// FriendsOf confirmed friends with presence and last-seen resolved via the
// registry.
func (uc *FriendUseCase) FriendsOf(accountID string) []domain.FriendInfo {
	usernames := uc.friends.FriendsOf(accountID)
	out := make([]domain.FriendInfo, 0, len(usernames))
	for _, friend := range usernames {
		info := domain.FriendInfo{
			Username: friend,
			Status:   uc.sessions.StatusOf(friend),
		}
		if seen := uc.sessions.LastSeen(friend); !seen.IsZero() {
			info.LastSeen = seen.Unix()
		}
		out = append(out, info)
	}
	return out
}

// IsFriend symmetric friendship query.
func (uc *FriendUseCase) IsFriend(a, b string) bool {
	return uc.friends.IsFriend(a, b)
}

// PendingFor requesters waiting on accountID.
func (uc *FriendUseCase) PendingFor(accountID string) []string {
	return uc.friends.PendingFor(accountID)
}
