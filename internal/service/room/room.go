package room

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"global_chat_server/internal/dto/respond"
	"global_chat_server/internal/model"
)

// Room is the orchestrating state machine for one chat room. It owns the
// four state-holding components and translates each inbound event into
// component mutations plus a list of outbound events for the transport to
// deliver.
//
// Every exported method takes the room's single coarse lock, so mutations
// apply strictly sequentially no matter how many goroutines call in. The
// per-connection lifecycle is Connected(anonymous) → Joined(named) →
// Disconnected, with no way back from Disconnected.
type Room struct {
	mu sync.Mutex

	name     string
	pageSize int

	log      *MessageLog
	presence *PresenceRegistry
	typing   *TypingAggregator
	relay    *Relay
}

// NewRoom creates a room with an empty log and no participants.
// pageSize bounds the older-history window; values <= 0 fall back to 20.
func NewRoom(name string, pageSize int) *Room {
	if pageSize <= 0 {
		pageSize = 20
	}
	log := NewMessageLog()
	return &Room{
		name:     name,
		pageSize: pageSize,
		log:      log,
		presence: NewPresenceRegistry(),
		typing:   NewTypingAggregator(),
		relay:    NewRelay(log),
	}
}

// Name returns the room's display name.
func (r *Room) Name() string {
	return r.name
}

// Join binds the connection to a unique display name and returns the
// events of the join flow: a confirmation and the history snapshot for the
// joiner only, plus the join announcement and refreshed roster for the
// room. A join from an already-joined connection only re-confirms the
// existing name.
func (r *Room) Join(connId, requestedName string) []Outbound {
	r.mu.Lock()
	defer r.mu.Unlock()

	if current, ok := r.presence.NameOf(connId); ok {
		return []Outbound{
			Targeted(EventJoinedChat, respond.JoinedChatRespond{Username: current, Room: r.name}, connId),
		}
	}

	assigned := r.presence.Join(connId, requestedName)
	zap.L().Info("user joined room",
		zap.String("room", r.name),
		zap.String("connId", connId),
		zap.String("username", assigned),
	)

	return []Outbound{
		Targeted(EventJoinedChat, respond.JoinedChatRespond{Username: assigned, Room: r.name}, connId),
		Broadcast(EventUserJoined, respond.UserJoinedRespond{
			Username:  assigned,
			Timestamp: time.Now().Format(respond.TimeLayout),
		}, connId),
		Broadcast(EventOnlineUsers, r.presence.AllNames()),
		Targeted(EventMessageHistory, respond.NewMessageListRespond(r.log.HistorySnapshot()), connId),
	}
}

// Send appends a message authored by the connection's session and
// broadcasts it to the whole room, sender included. Sending implicitly
// ends the author's typing state, so a typing roster update may precede
// the message broadcast. A connection that never joined produces nothing.
func (r *Room) Send(connId string, kind model.MessageKind, content string, file *model.FileDescriptor) []Outbound {
	r.mu.Lock()
	defer r.mu.Unlock()

	name, ok := r.presence.NameOf(connId)
	if !ok {
		return nil
	}

	var outs []Outbound
	if r.typing.Stop(name) {
		outs = append(outs, Broadcast(EventTypingStatus, r.typing.Names()))
	}

	msg := r.log.Append(&model.Message{
		Sender:  name,
		Kind:    kind,
		Content: content,
		File:    file,
	})
	zap.L().Debug("message appended",
		zap.String("room", r.name),
		zap.String("id", msg.Id),
		zap.String("sender", name),
		zap.String("kind", string(kind)),
	)

	outs = append(outs, Broadcast(EventReceiveMessage, respond.NewMessageRespond(msg)))
	return outs
}

// TypingStart marks the connection's session as typing. A typing roster
// broadcast is produced only when membership actually changed.
func (r *Room) TypingStart(connId string) []Outbound {
	r.mu.Lock()
	defer r.mu.Unlock()

	name, ok := r.presence.NameOf(connId)
	if !ok {
		return nil
	}
	if !r.typing.Start(name) {
		return nil
	}
	return []Outbound{Broadcast(EventTypingStatus, r.typing.Names())}
}

// TypingStop clears the connection's typing state, broadcasting the
// refreshed set only on actual change.
func (r *Room) TypingStop(connId string) []Outbound {
	r.mu.Lock()
	defer r.mu.Unlock()

	name, ok := r.presence.NameOf(connId)
	if !ok {
		return nil
	}
	if !r.typing.Stop(name) {
		return nil
	}
	return []Outbound{Broadcast(EventTypingStatus, r.typing.Names())}
}

// React applies a reaction by the connection's session to a message and
// broadcasts the full updated tally. An unknown message id produces
// nothing.
func (r *Room) React(connId, messageId, emoji string) []Outbound {
	r.mu.Lock()
	defer r.mu.Unlock()

	name, ok := r.presence.NameOf(connId)
	if !ok {
		return nil
	}
	tally, ok := r.relay.React(messageId, name, emoji)
	if !ok {
		return nil
	}
	return []Outbound{
		Broadcast(EventReceiveReaction, respond.ReactionRespond{
			MessageId: messageId,
			Reactor:   name,
			Emoji:     emoji,
			Reactions: tally,
		}),
	}
}

// MarkRead records a read receipt by the connection's session and routes
// the update only to the connection(s) bound to the message's author.
// Nothing is emitted for an unknown message id or an offline author.
func (r *Room) MarkRead(connId, messageId string) []Outbound {
	r.mu.Lock()
	defer r.mu.Unlock()

	name, ok := r.presence.NameOf(connId)
	if !ok {
		return nil
	}
	author, readBy, ok := r.relay.MarkRead(messageId, name)
	if !ok {
		return nil
	}
	targets := r.presence.ConnectionsOf(author)
	if len(targets) == 0 {
		return nil
	}
	return []Outbound{
		Targeted(EventReceiptUpdate, respond.ReceiptRespond{
			MessageId: messageId,
			Status:    "read",
			Reader:    name,
			ReadBy:    readBy,
		}, targets...),
	}
}

// RequestOlder replies to the requester only with up to one page of
// messages preceding refId in log order. An unknown refId yields an empty
// page, never an error.
func (r *Room) RequestOlder(connId, refId string) []Outbound {
	r.mu.Lock()
	defer r.mu.Unlock()

	window := r.log.OlderThan(refId, r.pageSize)
	return []Outbound{
		Targeted(EventOlderMessages, respond.NewMessageListRespond(window), connId),
	}
}

// Disconnect tears down the connection's session: the presence binding is
// removed, any stale typing entry is cleared even if the client never sent
// an explicit stop, and the departure plus refreshed roster are broadcast.
// A connection that never joined disconnects silently.
func (r *Room) Disconnect(connId string) []Outbound {
	r.mu.Lock()
	defer r.mu.Unlock()

	name, ok := r.presence.Leave(connId)
	if !ok {
		return nil
	}
	zap.L().Info("user left room",
		zap.String("room", r.name),
		zap.String("connId", connId),
		zap.String("username", name),
	)

	var outs []Outbound
	if r.typing.Stop(name) {
		outs = append(outs, Broadcast(EventTypingStatus, r.typing.Names()))
	}
	outs = append(outs,
		Broadcast(EventUserLeft, respond.UserLeftRespond{
			Username:  name,
			Timestamp: time.Now().Format(respond.TimeLayout),
		}),
		Broadcast(EventOnlineUsers, r.presence.AllNames()),
	)
	return outs
}

// Roster returns the sorted list of joined names for the REST view.
func (r *Room) Roster() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.presence.AllNames()
}

// Stats returns a point-in-time snapshot of the room for the REST view.
func (r *Room) Stats() respond.RoomStatsRespond {
	r.mu.Lock()
	defer r.mu.Unlock()
	return respond.RoomStatsRespond{
		Room:         r.name,
		OnlineCount:  r.presence.Count(),
		MessageCount: r.log.Len(),
		OnlineUsers:  r.presence.AllNames(),
		TypingUsers:  r.typing.Names(),
	}
}
