package room_test

import (
	"fmt"
	"testing"

	"global_chat_server/internal/model"
	"global_chat_server/internal/service/room"
)

func appendN(l *room.MessageLog, n int) []*model.Message {
	messages := make([]*model.Message, 0, n)
	for i := 0; i < n; i++ {
		messages = append(messages, l.Append(&model.Message{
			Sender:  "alice",
			Kind:    model.KindText,
			Content: fmt.Sprintf("message %d", i+1),
		}))
	}
	return messages
}

func TestAppendAssignsDistinctIds(t *testing.T) {
	l := room.NewMessageLog()
	appended := appendN(l, 50)

	seen := make(map[string]bool)
	for _, m := range appended {
		if m.Id == "" {
			t.Fatal("append left an empty id")
		}
		if seen[m.Id] {
			t.Fatalf("id %q assigned twice", m.Id)
		}
		seen[m.Id] = true
	}
}

func TestHistorySnapshotPreservesOrder(t *testing.T) {
	l := room.NewMessageLog()
	appended := appendN(l, 10)

	snapshot := l.HistorySnapshot()
	if len(snapshot) != len(appended) {
		t.Fatalf("snapshot length: got %d, want %d", len(snapshot), len(appended))
	}
	for i := range appended {
		if snapshot[i].Id != appended[i].Id {
			t.Errorf("snapshot[%d]: got id %q, want %q", i, snapshot[i].Id, appended[i].Id)
		}
	}
}

func TestHistorySnapshotIsPointInTime(t *testing.T) {
	l := room.NewMessageLog()
	appendN(l, 3)

	snapshot := l.HistorySnapshot()
	appendN(l, 2)

	if len(snapshot) != 3 {
		t.Errorf("snapshot grew after later appends: got %d, want 3", len(snapshot))
	}
}

func TestOlderThanWindow(t *testing.T) {
	l := room.NewMessageLog()
	appended := appendN(l, 25)

	window := l.OlderThan(appended[24].Id, 20)
	if len(window) != 20 {
		t.Fatalf("window length: got %d, want 20", len(window))
	}
	// messages #5..#24 (indexes 4..23), original order
	for i, m := range window {
		if m.Id != appended[4+i].Id {
			t.Errorf("window[%d]: got id %q, want %q", i, m.Id, appended[4+i].Id)
		}
		if m.Id == appended[24].Id {
			t.Error("window contains the reference message itself")
		}
	}
}

func TestOlderThanFewerPredecessors(t *testing.T) {
	l := room.NewMessageLog()
	appended := appendN(l, 5)

	window := l.OlderThan(appended[4].Id, 20)
	if len(window) != 4 {
		t.Fatalf("window length: got %d, want 4", len(window))
	}
	for i, m := range window {
		if m.Id != appended[i].Id {
			t.Errorf("window[%d]: got id %q, want %q", i, m.Id, appended[i].Id)
		}
	}
}

func TestOlderThanUnknownReference(t *testing.T) {
	l := room.NewMessageLog()
	appendN(l, 5)

	window := l.OlderThan("no-such-id", 20)
	if len(window) != 0 {
		t.Errorf("unknown reference: got %d messages, want 0", len(window))
	}
}

func TestOlderThanOldestMessage(t *testing.T) {
	l := room.NewMessageLog()
	appended := appendN(l, 5)

	window := l.OlderThan(appended[0].Id, 20)
	if len(window) != 0 {
		t.Errorf("oldest message has no predecessors: got %d, want 0", len(window))
	}
}

func TestFind(t *testing.T) {
	l := room.NewMessageLog()
	appended := appendN(l, 3)

	msg, ok := l.Find(appended[1].Id)
	if !ok || msg.Content != "message 2" {
		t.Errorf("Find: got (%v, %v), want message 2", msg, ok)
	}
	if _, ok := l.Find("no-such-id"); ok {
		t.Error("Find reported an unknown id as present")
	}
}
