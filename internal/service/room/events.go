package room

// Outbound event names. These are the wire-level event identifiers the
// client listens on.
const (
	EventJoinedChat      = "joined_chat"            // targeted: join confirmation with assigned name
	EventMessageHistory  = "message_history"        // targeted: full history snapshot on join
	EventReceiveMessage  = "receive_message"        // broadcast: a newly appended message
	EventOnlineUsers     = "online_users"           // broadcast: sorted roster of joined names
	EventTypingStatus    = "typing_status_update"   // broadcast: full set of typing names
	EventUserJoined      = "user_joined"            // broadcast (except joiner): someone joined
	EventUserLeft        = "user_left"              // broadcast: someone left
	EventReceiveReaction = "receive_reaction"       // broadcast: updated reaction tally
	EventReceiptUpdate   = "message_receipt_update" // targeted to author: read receipt
	EventOlderMessages   = "load_older_messages"    // targeted: reply to an older-history request
)

// DeliveryKind distinguishes room-wide fan-out from targeted sends.
type DeliveryKind int

const (
	// DeliverBroadcast sends to every connection except those in Exclude.
	DeliverBroadcast DeliveryKind = iota
	// DeliverTargeted sends only to the connections in Targets.
	DeliverTargeted
)

// Outbound is one event produced by the Room in response to an inbound
// event, tagged with how it must be delivered. Modeling fan-out this way
// keeps the hub's dispatch uniform and testable without a transport.
type Outbound struct {
	Event   string
	Data    any
	Kind    DeliveryKind
	Exclude []string // broadcast only: connection ids to skip
	Targets []string // targeted only: connection ids to deliver to
}

// Broadcast builds a room-wide outbound event, optionally excluding
// specific connections.
func Broadcast(event string, data any, exclude ...string) Outbound {
	return Outbound{
		Event:   event,
		Data:    data,
		Kind:    DeliverBroadcast,
		Exclude: exclude,
	}
}

// Targeted builds an outbound event for specific connections only.
func Targeted(event string, data any, targets ...string) Outbound {
	return Outbound{
		Event:   event,
		Data:    data,
		Kind:    DeliverTargeted,
		Targets: targets,
	}
}

// DeliversTo reports whether the event must reach the given connection.
func (o Outbound) DeliversTo(connId string) bool {
	if o.Kind == DeliverTargeted {
		for _, t := range o.Targets {
			if t == connId {
				return true
			}
		}
		return false
	}
	for _, e := range o.Exclude {
		if e == connId {
			return false
		}
	}
	return true
}
