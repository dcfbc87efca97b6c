package room_test

import (
	"testing"

	"global_chat_server/internal/model"
	"global_chat_server/internal/service/room"
)

func TestReactCountsWithoutDedup(t *testing.T) {
	log := room.NewMessageLog()
	relay := room.NewRelay(log)
	msg := log.Append(&model.Message{Sender: "alice", Kind: model.KindText, Content: "hi"})

	if _, ok := relay.React(msg.Id, "bob", "👍"); !ok {
		t.Fatal("react on known message reported absent")
	}
	tally, ok := relay.React(msg.Id, "bob", "👍")
	if !ok {
		t.Fatal("second react reported absent")
	}
	if tally["👍"] != 2 {
		t.Errorf("same reactor twice: tally got %d, want 2", tally["👍"])
	}
}

func TestReactReturnsFullTally(t *testing.T) {
	log := room.NewMessageLog()
	relay := room.NewRelay(log)
	msg := log.Append(&model.Message{Sender: "alice", Kind: model.KindText, Content: "hi"})

	relay.React(msg.Id, "bob", "👍")
	tally, _ := relay.React(msg.Id, "carol", "🎉")

	if tally["👍"] != 1 || tally["🎉"] != 1 {
		t.Errorf("tally incomplete: %v", tally)
	}
}

func TestReactUnknownMessage(t *testing.T) {
	relay := room.NewRelay(room.NewMessageLog())

	if _, ok := relay.React("no-such-id", "bob", "👍"); ok {
		t.Error("react on unknown id reported present")
	}
}

func TestMarkReadAppendsAndReturnsAuthor(t *testing.T) {
	log := room.NewMessageLog()
	relay := room.NewRelay(log)
	msg := log.Append(&model.Message{Sender: "alice", Kind: model.KindText, Content: "hi"})

	author, readBy, ok := relay.MarkRead(msg.Id, "bob")
	if !ok {
		t.Fatal("markRead on known message reported absent")
	}
	if author != "alice" {
		t.Errorf("author: got %q, want alice", author)
	}
	if len(readBy) != 1 || readBy[0] != "bob" {
		t.Errorf("readBy: got %v, want [bob]", readBy)
	}
}

func TestMarkReadKeepsDuplicates(t *testing.T) {
	log := room.NewMessageLog()
	relay := room.NewRelay(log)
	msg := log.Append(&model.Message{Sender: "alice", Kind: model.KindText, Content: "hi"})

	relay.MarkRead(msg.Id, "bob")
	_, readBy, _ := relay.MarkRead(msg.Id, "bob")

	if len(readBy) != 2 {
		t.Errorf("repeated reads: got %v, want two entries", readBy)
	}
}

func TestMarkReadUnknownMessage(t *testing.T) {
	relay := room.NewRelay(room.NewMessageLog())

	if _, _, ok := relay.MarkRead("no-such-id", "bob"); ok {
		t.Error("markRead on unknown id reported present")
	}
}
