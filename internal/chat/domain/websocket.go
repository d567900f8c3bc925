package domain

// Action websocket request action (client -> server)
type Action string

const (
	// ActionAuthenticate bind the connection to a user and join the personal room
	ActionAuthenticate Action = "authenticate"
	// ActionJoinRoom join a group room
	ActionJoinRoom Action = "joinRoom"
	// ActionLeaveRoom leave a group room
	ActionLeaveRoom Action = "leaveRoom"
	// ActionSendMessage persist and dispatch a message
	ActionSendMessage Action = "sendMessage"
	// ActionTyping ephemeral typing indicator, never persisted
	ActionTyping Action = "typing"
	// ActionMessageRead per-message read receipt
	ActionMessageRead Action = "messageRead"
)

// Server -> client event names.
const (
	// EventReceiveMessage a message dispatched to a room the session joined
	EventReceiveMessage = "receiveMessage"
	// EventMessageSent confirmation to the sender of a direct message
	EventMessageSent = "messageSent"
	// EventUserTyping typing indicator relayed to peers
	EventUserTyping = "userTyping"
	// EventMessageStatusUpdate delivery-status change for a message the user sent
	EventMessageStatusUpdate = "messageStatusUpdate"
	// EventUserOnline presence broadcast on registration
	EventUserOnline = "userOnline"
	// EventUserOffline presence broadcast on disconnect
	EventUserOffline = "userOffline"
	// EventNotification a workforce notification pushed to a target user
	EventNotification = "notification"
	// EventError error surfaced to this session only, connection stays open
	EventError = "error"
)

// WSRequest websocket request envelope
type WSRequest struct {
	Action     Action `json:"action"`
	UserID     string `json:"userId,omitempty"`
	RoomID     string `json:"roomId,omitempty"`
	SenderID   string `json:"senderId,omitempty"`
	ReceiverID string `json:"receiverId,omitempty"`
	GroupID    string `json:"groupId,omitempty"`
	Content    string `json:"content,omitempty"`
	MessageID  string `json:"messageId,omitempty"`
	ReaderID   string `json:"readerId,omitempty"`
	IsTyping   bool   `json:"isTyping,omitempty"`
}

// WSEvent websocket event envelope. The same shape travels over the broadcast
// bus, so any instance can deliver events published by another.
type WSEvent struct {
	Event   string                 `json:"event"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

// ErrorEvent builds the error event surfaced to a single session.
func ErrorEvent(message string) WSEvent {
	return WSEvent{
		Event:   EventError,
		Payload: map[string]interface{}{"message": message},
	}
}

// MessageEvent builds a message-carrying event.
func MessageEvent(event string, m *Message) WSEvent {
	payload := map[string]interface{}{
		"id":        m.ID,
		"senderId":  m.SenderID,
		"content":   m.Content,
		"kind":      string(m.Kind),
		"status":    string(m.Status),
		"createdAt": m.CreatedAt,
	}
	if m.ReceiverID != "" {
		payload["receiverId"] = m.ReceiverID
	}
	if m.GroupID != "" {
		payload["groupId"] = m.GroupID
	}
	return WSEvent{Event: event, Payload: payload}
}

// StatusUpdateEvent builds the messageStatusUpdate event sent to the
// original sender's personal room.
func StatusUpdateEvent(messageID string, status MessageStatus) WSEvent {
	return WSEvent{
		Event: EventMessageStatusUpdate,
		Payload: map[string]interface{}{
			"messageId": messageID,
			"status":    string(status),
		},
	}
}

// TypingEvent builds the userTyping event relayed to peers.
func TypingEvent(senderID string, isTyping bool) WSEvent {
	return WSEvent{
		Event: EventUserTyping,
		Payload: map[string]interface{}{
			"senderId": senderID,
			"isTyping": isTyping,
		},
	}
}

// PresenceEvent builds a userOnline / userOffline broadcast.
func PresenceEvent(event, userID string) WSEvent {
	return WSEvent{
		Event:   event,
		Payload: map[string]interface{}{"userId": userID},
	}
}

// SenderOf extracts the originating user of an event, "" when the event has
// no originator. Sessions use it to drop their own typing and presence
// echoes coming back off the bus.
func (e WSEvent) SenderOf() string {
	if e.Payload == nil {
		return ""
	}
	switch e.Event {
	case EventUserTyping:
		s, _ := e.Payload["senderId"].(string)
		return s
	case EventUserOnline, EventUserOffline:
		s, _ := e.Payload["userId"].(string)
		return s
	}
	return ""
}
