package snowflake

import (
	"strconv"
	"testing"
)

func TestGenerateIDStrictlyIncreasing(t *testing.T) {
	Init(1)

	prev := GenerateID()
	for i := 0; i < 1000; i++ {
		id := GenerateID()
		if id <= prev {
			t.Fatalf("id %d not greater than previous %d", id, prev)
		}
		prev = id
	}
}

func TestGenerateIDStringParsesBackToInt64(t *testing.T) {
	Init(1)

	s := GenerateIDString()
	if _, err := strconv.ParseInt(s, 10, 64); err != nil {
		t.Fatalf("id string %q is not an int64: %v", s, err)
	}
}
