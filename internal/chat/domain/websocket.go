package domain

// Action websocket request action
type Action string

const (
	// ActionAnnounce websocket action announce
	ActionAnnounce Action = "announce"
	// ActionJoinRoom websocket action joinRoom
	ActionJoinRoom Action = "joinRoom"
	// ActionSendMessage websocket action sendMessage
	ActionSendMessage Action = "sendMessage"
	// ActionGetChatHistory websocket action getChatHistory
	ActionGetChatHistory Action = "getChatHistory"
	// ActionSendFriendRequest websocket action sendFriendRequest
	ActionSendFriendRequest Action = "sendFriendRequest"
	// ActionAcceptFriendRequest websocket action acceptFriendRequest
	ActionAcceptFriendRequest Action = "acceptFriendRequest"
	// ActionUnfriend websocket action unfriend
	ActionUnfriend Action = "unfriend"
	// ActionSearchUsers websocket action searchUsers
	ActionSearchUsers Action = "searchUsers"
	// ActionGetUserFriends websocket action getUserFriends
	ActionGetUserFriends Action = "getUserFriends"
)

// Outbound event names, kept wire compatible with the original client.
const (
	// EventPendingMessages backlog delivered at announce time
	EventPendingMessages = "pendingMessages"
	// EventMessageNotification lightweight new-message signal {from}
	EventMessageNotification = "messageNotification"
	// EventFriendRequestReceived incoming pending request {from}
	EventFriendRequestReceived = "friendRequestReceived"
	// EventFriendRequestAccepted the target accepted {from}
	EventFriendRequestAccepted = "friendRequestAccepted"
	// EventFriendListUpdated friend list or friend presence changed
	EventFriendListUpdated = "friendListUpdated"
	// EventSearchResults reply to searchUsers
	EventSearchResults = "searchResults"
	// EventChatHistory reply to getChatHistory
	EventChatHistory = "chatHistory"
	// EventUserFriends reply to getUserFriends
	EventUserFriends = "userFriends"
)

// ReceiveMessageEvent the room-scoped message event name.
func ReceiveMessageEvent(roomKey string) string {
	return "receiveMessage-" + roomKey
}

// WSRequest websocket Request. Room-addressed actions carry the peer in
// `to`; the server derives the room key itself so clients never build or
// parse keys.
type WSRequest struct {
	Action    string `json:"action"`
	AccountID string `json:"accountId,omitempty"`
	Message   string `json:"message,omitempty"`
	From      string `json:"from,omitempty"`
	To        string `json:"to,omitempty"`
	Query     string `json:"query,omitempty"`
}

// WSResponse websocket Response
type WSResponse struct {
	Event   string                 `json:"event"`
	Success bool                   `json:"success"`
	Payload map[string]interface{} `json:"payload,omitempty"`
	Error   string                 `json:"error,omitempty"`
}
