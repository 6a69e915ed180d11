package domain

// WebSocket event types from client.
const (
	EventJoinRoom    = "join_room"
	EventLeaveRoom   = "leave_room"
	EventSendMessage = "send_message"
	EventPing        = "ping"
)

// WebSocket event types to client.
const (
	EventReceiveMessage = "receive_message"
	EventRoomJoined     = "room_joined"
	EventRoomLeft       = "room_left"
	EventError          = "error"
	EventPong           = "pong"
)

// Error codes carried by error events. Private to the offending
// connection; never broadcast.
const (
	ErrCodeBadRequest    = "BAD_REQUEST"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeNotAuthorized = "NOT_AUTHORIZED"
	ErrCodeInvalidState  = "INVALID_STATE"
	ErrCodeTimeout       = "TIMEOUT"
	ErrCodeInternalError = "INTERNAL_ERROR"
)

// BaseEvent is the base structure for all WebSocket events.
type BaseEvent struct {
	Type string `json:"type"`
}

// Client -> Server events

type JoinRoomEvent struct {
	Type   string `json:"type"`
	RoomID string `json:"room_id"`
}

type LeaveRoomEvent struct {
	Type   string `json:"type"`
	RoomID string `json:"room_id"`
}

type SendMessageEvent struct {
	Type     string `json:"type"`
	RoomID   string `json:"room_id"`
	SenderID string `json:"sender_id"`
	Message  string `json:"message"`
}

// Server -> Client events

// ReceiveMessageEvent is broadcast to every member of the room,
// including the sender's own connection.
type ReceiveMessageEvent struct {
	Type        string `json:"type"`
	MessageID   string `json:"message_id"`
	RoomID      string `json:"room_id"`
	SenderID    string `json:"sender_id"`
	RecipientID string `json:"recipient_id"`
	Message     string `json:"message"`
	Timestamp   string `json:"timestamp"`
}

type RoomEvent struct {
	Type   string `json:"type"`
	RoomID string `json:"room_id"`
}

type ErrorEvent struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func NewErrorEvent(code, message string) *ErrorEvent {
	return &ErrorEvent{
		Type:    EventError,
		Code:    code,
		Message: message,
	}
}
