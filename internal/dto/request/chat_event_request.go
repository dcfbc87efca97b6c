// Package request defines the inbound payload shapes received from clients.
// Validation happens here at the boundary, before anything reaches the room
// core: malformed input is rejected with an error frame, never passed on.
package request

import "encoding/json"

// Inbound event names accepted over the websocket.
const (
	EventJoinChat     = "join_chat"
	EventSendMessage  = "send_message"
	EventSendFile     = "send_file_message"
	EventTypingStart  = "typing_start"
	EventTypingStop   = "typing_stop"
	EventSendReaction = "send_reaction"
	EventMessageRead  = "message_read"
	EventRequestOlder = "request_older_messages"
)

// ChatEventRequest is the envelope of every inbound websocket frame.
// Data is decoded into the per-event request type selected by Event.
type ChatEventRequest struct {
	Event string          `json:"event" validate:"required"`
	Data  json.RawMessage `json:"data"`
}

// JoinChatRequest asks to join the room under a display name. The server
// may suffix the name to keep the roster collision-free.
type JoinChatRequest struct {
	Username string `json:"username" validate:"required,min=1,max=32"`
}

// SendMessageRequest carries a text message body. The author is the
// session bound to the sending connection, never a client-supplied field.
type SendMessageRequest struct {
	Content string `json:"content" validate:"required,max=4096"`
}

// SendFileRequest carries a base64-encoded attachment with its descriptor.
type SendFileRequest struct {
	FileBase64 string `json:"file_base64" validate:"required"`
	FileName   string `json:"file_name" validate:"required,max=255"`
	FileType   string `json:"file_type" validate:"required,max=100"`
	FileSize   string `json:"file_size" validate:"max=20"`
}

// SendReactionRequest reacts to a logged message with an emoji symbol.
type SendReactionRequest struct {
	MessageId string `json:"message_id" validate:"required"`
	Emoji     string `json:"emoji" validate:"required,max=16"`
}

// MessageReadRequest reports that the session has read a message.
type MessageReadRequest struct {
	MessageId string `json:"message_id" validate:"required"`
}

// RequestOlderRequest asks for the page of messages preceding the given
// reference id.
type RequestOlderRequest struct {
	LastMessageId string `json:"last_message_id" validate:"required"`
}
