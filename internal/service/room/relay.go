package room

// Relay applies reaction and read-receipt annotations to logged messages.
// It mutates annotation fields in place; the core payload of a message is
// never altered after append.
type Relay struct {
	log *MessageLog
}

// NewRelay creates a relay over the given log.
func NewRelay(log *MessageLog) *Relay {
	return &Relay{log: log}
}

// React increments the tally for emoji on the message and returns a copy of
// the full updated tally. There is no dedup: the same reactor reacting
// twice with the same emoji counts twice. An unknown message id yields
// ok=false and no mutation.
func (r *Relay) React(messageId, reactorName, emoji string) (map[string]int, bool) {
	msg, ok := r.log.Find(messageId)
	if !ok {
		return nil, false
	}
	if msg.Reactions == nil {
		msg.Reactions = make(map[string]int)
	}
	msg.Reactions[emoji]++

	tally := make(map[string]int, len(msg.Reactions))
	for k, v := range msg.Reactions {
		tally[k] = v
	}
	return tally, true
}

// MarkRead appends readerName to the message's read-by list and returns the
// author name for targeted routing plus a copy of the updated list.
// Repeated reads by the same reader append repeatedly. An unknown message
// id yields ok=false and no mutation.
func (r *Relay) MarkRead(messageId, readerName string) (string, []string, bool) {
	msg, ok := r.log.Find(messageId)
	if !ok {
		return "", nil, false
	}
	msg.ReadBy = append(msg.ReadBy, readerName)

	readBy := make([]string, len(msg.ReadBy))
	copy(readBy, msg.ReadBy)
	return msg.Sender, readBy, true
}
