package room

import "sort"

// TypingAggregator tracks the set of names currently typing.
// Membership changes only on explicit start/stop signals; there is no
// server-side timeout, the client is trusted to send stop. The Room calls
// Stop during disconnect teardown so no stale entry can outlive a session.
type TypingAggregator struct {
	typing map[string]struct{}
}

// NewTypingAggregator creates an empty aggregator.
func NewTypingAggregator() *TypingAggregator {
	return &TypingAggregator{
		typing: make(map[string]struct{}),
	}
}

// Start marks the name as typing. Returns true only when membership
// actually changed, so repeated starts do not trigger duplicate broadcasts.
func (t *TypingAggregator) Start(name string) bool {
	if _, ok := t.typing[name]; ok {
		return false
	}
	t.typing[name] = struct{}{}
	return true
}

// Stop clears the name's typing state. Stopping a non-member is a no-op
// and returns false.
func (t *TypingAggregator) Stop(name string) bool {
	if _, ok := t.typing[name]; !ok {
		return false
	}
	delete(t.typing, name)
	return true
}

// Names returns the full current typing set, sorted. Consumers always
// receive the complete list, never a delta.
func (t *TypingAggregator) Names() []string {
	names := make([]string, 0, len(t.typing))
	for name := range t.typing {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
