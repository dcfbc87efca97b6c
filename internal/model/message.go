// Package model defines the in-memory chat entities.
package model

import "time"

// MessageKind discriminates the message payload.
type MessageKind string

const (
	KindText   MessageKind = "text"   // plain text body in Content
	KindFile   MessageKind = "file"   // base64 attachment, described by File
	KindSystem MessageKind = "system" // server-generated notice
)

// FileDescriptor describes a binary attachment carried by a file message.
// The attachment body itself travels base64-encoded in Message.Content;
// decoding it back to bytes is the client's concern.
type FileDescriptor struct {
	Name string `json:"name"` // original file name
	Type string `json:"type"` // MIME type, e.g. "image/png"
	Size string `json:"size"` // human-readable size, e.g. "1.5MB"
}

// Message is one entry of the room's append-only log.
//
// The core payload (Id through SentAt) is immutable once the message has
// been appended. Reactions and ReadBy are annotation fields layered on top:
// they are mutated in place after append, and only ever grow.
type Message struct {
	// Id is a snowflake id assigned at append time, kept as a string so
	// JSON clients do not lose precision on int64. Ids are strictly
	// increasing within one process, but pagination still orders messages
	// by log position, never by id magnitude.
	Id string `json:"id"`

	// Sender is the assigned display name of the author. System messages
	// use the reserved name "System".
	Sender string `json:"sender"`

	// Kind selects the payload interpretation.
	Kind MessageKind `json:"kind"`

	// Content is the text body, or the base64 attachment for file messages.
	Content string `json:"content"`

	// File describes the attachment for Kind == KindFile, nil otherwise.
	File *FileDescriptor `json:"file,omitempty"`

	// SentAt is the server-side arrival time.
	SentAt time.Time `json:"sentAt"`

	// Reactions maps emoji symbol to cumulative count. Counts only ever
	// increment; the same reactor reacting twice counts twice.
	Reactions map[string]int `json:"reactions,omitempty"`

	// ReadBy lists reader names in the order receipts arrived. Append-only,
	// duplicates possible when the same reader reports twice.
	ReadBy []string `json:"readBy,omitempty"`
}
