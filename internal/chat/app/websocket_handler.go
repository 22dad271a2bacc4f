package app

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"social_chat_service/internal/chat/domain"
	"social_chat_service/pkg/logger"
	"social_chat_service/pkg/middlewares"

	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

// MemberDirectory the account list the chat side reads for searchUsers.
type MemberDirectory interface {
	SearchUsernames(ctx context.Context, query string) ([]string, error)
}

// ChatWebsocketHandler dispatches inbound events to the presence, friend and
// message components. The chat identity is the username carried in the JWT:
// the same string keys the session registry, the friend graph, the backlog
// and the room keys, so every id a client sees (search results, friend
// lists) can be sent back as a routing target.
type ChatWebsocketHandler struct {
	presenceUC *PresenceUseCase
	friendUC   *FriendUseCase
	messageUC  *SendMessageUseCase
	hub        *RoomHub
	members    MemberDirectory
}

// NewChatWebsocketHandler create ChatWebsocketHandler
func NewChatWebsocketHandler(
	presenceUC *PresenceUseCase,
	friendUC *FriendUseCase,
	messageUC *SendMessageUseCase,
	hub *RoomHub,
	members MemberDirectory,
) *ChatWebsocketHandler {
	return &ChatWebsocketHandler{
		presenceUC: presenceUC,
		friendUC:   friendUC,
		messageUC:  messageUC,
		hub:        hub,
		members:    members,
	}
}

// clientConn one client-facing connection as the dispatcher sees it.
type clientConn interface {
	domain.ConnHandle
	pushError(event, errorMsg string)
}

// wsClient serializes writes to one websocket connection. Push never fails
// the caller: a write error on a stale socket is logged and swallowed.
type wsClient struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *wsClient) Push(event string, payload map[string]interface{}) {
	resp := domain.WSResponse{
		Event:   event,
		Success: true,
		Payload: payload,
	}
	b, err := json.Marshal(resp)
	if err != nil {
		logger.Log.Errorf("marshal response error:", err)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.WriteMessage(websocket.TextMessage, b); err != nil {
		logger.Log.Errorf("websocket push error:", err)
	}
}

func (c *wsClient) pushError(event, errorMsg string) {
	resp := domain.WSResponse{
		Event:   event,
		Success: false,
		Error:   errorMsg,
	}
	b, err := json.Marshal(resp)
	if err != nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.WriteMessage(websocket.TextMessage, b); err != nil {
		logger.Log.Errorf("websocket push error:", err)
	}
}

// HandleConnection websocket 連線的進入點, one goroutine per client.
func (h *ChatWebsocketHandler) HandleConnection(ctx context.Context, conn *websocket.Conn) {
	tokenUsername := conn.Locals(middlewares.TokenUsername)
	accountID, ok := tokenUsername.(string)
	if !ok || accountID == "" {
		logger.Log.Warn("websocket connection without member identity")
		conn.Close()
		return
	}

	client := &wsClient{conn: conn}

	defer func() {
		// 先從房間移除再標記離線，朋友收到通知時廣播名單已經乾淨
		h.hub.Remove(client)
		h.presenceUC.Disconnect(client)
		conn.Close()
		logger.Log.Info("websocket close", zap.String("accountID", accountID))
	}()

	conn.SetCloseHandler(func(code int, text string) error {
		logger.Log.Infof("WebSocket closed:", conn.RemoteAddr())
		return nil
	})

	conn.SetPingHandler(func(appData string) error {
		return conn.WriteControl(
			websocket.PongMessage,
			[]byte(appData),
			time.Now().Add(time.Second),
		)
	})

	for {
		mt, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
				websocket.CloseNoStatusReceived,
			) {
				logger.Log.Infof("Connection closed:", err)
			} else {
				logger.Log.Errorf("websocket read error:", err)
			}
			return
		}

		if mt != websocket.TextMessage {
			client.pushError("error", "unknown message type")
			continue
		}
		h.textMessageAction(ctx, client, accountID, message)
	}
}

// textMessageAction maps one inbound event to exactly one component
// operation. Malformed events are dropped and logged, never a
// connection-ending fault.
func (h *ChatWebsocketHandler) textMessageAction(ctx context.Context, client clientConn, accountID string, msg []byte) {
	var req domain.WSRequest
	if err := json.Unmarshal(msg, &req); err != nil {
		logger.Log.Warn("drop malformed event", zap.String("accountID", accountID), zap.Error(err))
		return
	}

	switch domain.Action(req.Action) {
	case domain.ActionAnnounce:
		if req.AccountID != "" && req.AccountID != accountID {
			h.dropEvent(req.Action, accountID, "accountId does not match token identity")
			return
		}
		pending := h.presenceUC.Connect(accountID, client)
		if len(pending) > 0 {
			client.Push(domain.EventPendingMessages, map[string]interface{}{
				"messages": messagePayloads(pending),
			})
		}
		// 離線期間收到的交友邀請重新推一次
		for _, requester := range h.friendUC.PendingFor(accountID) {
			client.Push(domain.EventFriendRequestReceived, map[string]interface{}{
				"from": requester,
			})
		}

	case domain.ActionJoinRoom:
		if req.To == "" {
			h.dropEvent(req.Action, accountID, "missing to")
			return
		}
		h.hub.Join(domain.RoomKey(accountID, req.To), client)

	case domain.ActionSendMessage:
		if req.To == "" || req.Message == "" {
			h.dropEvent(req.Action, accountID, "missing to or message")
			return
		}
		// sender identity comes from the token, not the payload
		if _, err := h.messageUC.Route(ctx, accountID, req.To, req.Message); err != nil {
			logger.Log.Errorf("route message error:", err, zap.String("accountID", accountID))
			client.pushError(req.Action, err.Error())
		}

	case domain.ActionGetChatHistory:
		if req.To == "" {
			h.dropEvent(req.Action, accountID, "missing to")
			return
		}
		msgs, err := h.messageUC.History(ctx, accountID, req.To)
		if err != nil {
			logger.Log.Errorf("chat history error:", err, zap.String("accountID", accountID))
			client.pushError(req.Action, err.Error())
			return
		}
		client.Push(domain.EventChatHistory, map[string]interface{}{
			"room":     domain.RoomKey(accountID, req.To),
			"messages": messagePayloads(msgs),
		})

	case domain.ActionSendFriendRequest:
		if req.To == "" {
			h.dropEvent(req.Action, accountID, "missing to")
			return
		}
		h.friendUC.RequestFriend(accountID, req.To)

	case domain.ActionAcceptFriendRequest:
		if req.From == "" {
			h.dropEvent(req.Action, accountID, "missing from")
			return
		}
		h.friendUC.AcceptFriend(req.From, accountID)

	case domain.ActionUnfriend:
		if req.To == "" {
			h.dropEvent(req.Action, accountID, "missing to")
			return
		}
		h.friendUC.Unfriend(accountID, req.To)

	case domain.ActionSearchUsers:
		// 空字串照樣查, substring 全比對時回整份名單
		usernames, err := h.members.SearchUsernames(ctx, req.Query)
		if err != nil {
			logger.Log.Errorf("search users error:", err, zap.String("accountID", accountID))
			client.pushError(req.Action, err.Error())
			return
		}
		results := make([]domain.SearchResult, 0, len(usernames))
		for _, username := range usernames {
			results = append(results, domain.SearchResult{
				Username: username,
				Status:   h.presenceUC.StatusOf(username),
				IsFriend: h.friendUC.IsFriend(accountID, username),
			})
		}
		client.Push(domain.EventSearchResults, map[string]interface{}{
			"results": results,
		})

	case domain.ActionGetUserFriends:
		target := req.AccountID
		if target == "" {
			target = accountID
		}
		client.Push(domain.EventUserFriends, map[string]interface{}{
			"friends": h.friendUC.FriendsOf(target),
		})

	default:
		client.pushError("error", "unknown action")
	}
}

func (h *ChatWebsocketHandler) dropEvent(action, accountID, reason string) {
	logger.Log.Warn("drop event",
		zap.String("action", action),
		zap.String("accountID", accountID),
		zap.String("reason", reason),
	)
}

func messagePayloads(msgs []domain.ChatMessage) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, m.AsPayload())
	}
	return out
}
