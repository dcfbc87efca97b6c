// Package room implements the server-side room state machine: the message
// log, the presence registry, the typing aggregator, the reaction/receipt
// relay, and the Room hub that wires inbound events to them.
//
// Nothing in this package is synchronized on its own; the Room serializes
// every mutation behind one coarse lock (see room.go).
package room

import (
	"time"

	"global_chat_server/internal/model"
	"global_chat_server/pkg/util/snowflake"
)

// MessageLog is the append-only ordered store of room messages.
// Insertion order is arrival order at the hub, not per-author order.
//
// The log keeps an id→position index maintained on append so older-history
// lookups stay cheap as the log grows; the external contract is identical
// to a linear scan.
type MessageLog struct {
	messages []*model.Message
	index    map[string]int // message id → position in messages
}

// NewMessageLog creates an empty log.
func NewMessageLog() *MessageLog {
	return &MessageLog{
		index: make(map[string]int),
	}
}

// Append assigns a snowflake id and the arrival time, appends the message
// at the tail and returns it. No payload validation happens here; rejecting
// empty or oversized bodies is the boundary's concern.
func (l *MessageLog) Append(msg *model.Message) *model.Message {
	msg.Id = snowflake.GenerateIDString()
	if msg.SentAt.IsZero() {
		msg.SentAt = time.Now()
	}
	l.index[msg.Id] = len(l.messages)
	l.messages = append(l.messages, msg)
	return msg
}

// HistorySnapshot returns a point-in-time copy of the full log in insertion
// order. The slice is the caller's; the records are shared.
func (l *MessageLog) HistorySnapshot() []*model.Message {
	snapshot := make([]*model.Message, len(l.messages))
	copy(snapshot, l.messages)
	return snapshot
}

// OlderThan returns up to count messages immediately preceding the message
// with refId in log order, oldest first. The reference message itself is
// never included. An unknown refId yields an empty result, not an error.
func (l *MessageLog) OlderThan(refId string, count int) []*model.Message {
	pos, ok := l.index[refId]
	if !ok {
		return []*model.Message{}
	}
	if count <= 0 {
		return []*model.Message{}
	}
	start := pos - count
	if start < 0 {
		start = 0
	}
	window := make([]*model.Message, pos-start)
	copy(window, l.messages[start:pos])
	return window
}

// Find returns the message with the given id, or false when absent.
func (l *MessageLog) Find(id string) (*model.Message, bool) {
	pos, ok := l.index[id]
	if !ok {
		return nil, false
	}
	return l.messages[pos], true
}

// Len returns the number of messages appended so far.
func (l *MessageLog) Len() int {
	return len(l.messages)
}
