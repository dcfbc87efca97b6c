package room_test

import (
	"sort"
	"testing"

	"global_chat_server/internal/service/room"
)

func TestTypingStartIsIdempotent(t *testing.T) {
	agg := room.NewTypingAggregator()

	if !agg.Start("alice") {
		t.Error("first start: want changed=true")
	}
	if agg.Start("alice") {
		t.Error("repeated start: want changed=false")
	}
	if names := agg.Names(); len(names) != 1 {
		t.Errorf("membership duplicated: %v", names)
	}
}

func TestTypingStopIsIdempotent(t *testing.T) {
	agg := room.NewTypingAggregator()
	agg.Start("alice")

	if !agg.Stop("alice") {
		t.Error("stop of member: want changed=true")
	}
	if agg.Stop("alice") {
		t.Error("repeated stop: want changed=false")
	}
	if agg.Stop("bob") {
		t.Error("stop of non-member: want changed=false")
	}
}

func TestTypingNamesIsFullSortedSet(t *testing.T) {
	agg := room.NewTypingAggregator()
	agg.Start("zoe")
	agg.Start("alice")
	agg.Start("bob")

	names := agg.Names()
	if len(names) != 3 {
		t.Fatalf("got %d names, want 3", len(names))
	}
	if !sort.StringsAreSorted(names) {
		t.Errorf("names not sorted: %v", names)
	}
}
