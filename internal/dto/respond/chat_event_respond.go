// Package respond defines the outbound payload shapes sent to clients.
package respond

import (
	"global_chat_server/internal/model"
)

// TimeLayout is the wall-clock format used in every outbound payload.
const TimeLayout = "2006-01-02 15:04:05"

// MessageRespond is the wire form of a logged message.
type MessageRespond struct {
	Id        string                `json:"id"`
	Sender    string                `json:"sender"`
	Kind      model.MessageKind     `json:"kind"`
	Content   string                `json:"content"`
	File      *model.FileDescriptor `json:"file,omitempty"`
	Timestamp string                `json:"timestamp"`
	Reactions map[string]int        `json:"reactions,omitempty"`
	ReadBy    []string              `json:"read_by,omitempty"`
}

// NewMessageRespond builds the wire form of a message record.
func NewMessageRespond(m *model.Message) MessageRespond {
	return MessageRespond{
		Id:        m.Id,
		Sender:    m.Sender,
		Kind:      m.Kind,
		Content:   m.Content,
		File:      m.File,
		Timestamp: m.SentAt.Format(TimeLayout),
		Reactions: m.Reactions,
		ReadBy:    m.ReadBy,
	}
}

// NewMessageListRespond builds the wire form of an ordered message slice.
func NewMessageListRespond(messages []*model.Message) []MessageRespond {
	list := make([]MessageRespond, 0, len(messages))
	for _, m := range messages {
		list = append(list, NewMessageRespond(m))
	}
	return list
}

// JoinedChatRespond confirms a successful join to the joining client.
type JoinedChatRespond struct {
	Username string `json:"username"` // the assigned (possibly suffixed) name
	Room     string `json:"room"`
}

// UserJoinedRespond announces a new participant to the rest of the room.
type UserJoinedRespond struct {
	Username  string `json:"username"`
	Timestamp string `json:"timestamp"`
}

// UserLeftRespond announces a departed participant.
type UserLeftRespond struct {
	Username  string `json:"username"`
	Timestamp string `json:"timestamp"`
}

// ReactionRespond carries the full updated tally of a message.
type ReactionRespond struct {
	MessageId string         `json:"message_id"`
	Reactor   string         `json:"reactor"`
	Emoji     string         `json:"emoji"`
	Reactions map[string]int `json:"reactions"`
}

// ReceiptRespond notifies a message author that someone read it.
type ReceiptRespond struct {
	MessageId string   `json:"message_id"`
	Status    string   `json:"status"` // always "read"
	Reader    string   `json:"reader"`
	ReadBy    []string `json:"read_by"`
}

// RoomStatsRespond is the REST snapshot served at /room/stats.
type RoomStatsRespond struct {
	Room         string   `json:"room"`
	OnlineCount  int      `json:"online_count"`
	MessageCount int      `json:"message_count"`
	OnlineUsers  []string `json:"online_users"`
	TypingUsers  []string `json:"typing_users"`
}
