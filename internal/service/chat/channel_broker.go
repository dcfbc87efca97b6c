package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"global_chat_server/internal/dto/request"
	"global_chat_server/internal/model"
	"global_chat_server/internal/service/room"
	"global_chat_server/pkg/constants"
	"global_chat_server/pkg/errorx"
)

// EventError is the transport-level error frame sent back to a client whose
// input was rejected at the boundary. It is always targeted, never
// broadcast, so one client's bad input stays invisible to the room.
const EventError = "error"

// EventConnected greets a client right after the upgrade, before any join.
const EventConnected = "connected"

// errorRespond is the payload of an EventError frame.
type errorRespond struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

// StandaloneServer is the channel-backed Broker. Its Start loop is the
// single goroutine that feeds the room state machine: every login, logout
// and inbound frame passes through one select loop, so event side effects
// always complete before the next event is processed.
type StandaloneServer struct {
	// Clients maps connection id to *UserConn.
	Clients sync.Map
	// Transmit carries inbound frames from the read pumps.
	Transmit chan InboundFrame
	// Login carries freshly upgraded connections.
	Login chan *UserConn
	// Logout carries connections to tear down.
	Logout chan *UserConn

	room     *room.Room
	validate *validator.Validate
	welcome  string

	// done stops the loop; the mailbox channels themselves stay open so a
	// read pump racing the shutdown can never hit a closed channel.
	done      chan struct{}
	closeOnce sync.Once
}

// NewStandaloneServer creates the broker over the given room.
func NewStandaloneServer(rm *room.Room, welcome string) *StandaloneServer {
	return &StandaloneServer{
		Transmit: make(chan InboundFrame, constants.CHANNEL_SIZE),
		Login:    make(chan *UserConn, constants.CHANNEL_SIZE),
		Logout:   make(chan *UserConn, constants.CHANNEL_SIZE),
		room:     rm,
		validate: validator.New(),
		welcome:  welcome,
		done:     make(chan struct{}),
	}
}

// Start runs the broker event loop. It returns when Close shuts the
// channels down. Run it in its own goroutine.
func (s *StandaloneServer) Start() {
	for {
		select {
		case <-s.done:
			return

		case client := <-s.Login:
			if client == nil {
				continue
			}
			s.Clients.Store(client.Id, client)
			zap.L().Info("client registered", zap.String("connId", client.Id))
			s.sendFrame(client, ServerFrame{
				Event: EventConnected,
				Data: map[string]string{
					"room":    s.room.Name(),
					"message": s.welcome,
				},
			})

		case client := <-s.Logout:
			if client == nil {
				continue
			}
			// LoadAndDelete makes teardown idempotent: the read pump and an
			// explicit logout may both enqueue the same connection.
			if _, loaded := s.Clients.LoadAndDelete(client.Id); !loaded {
				continue
			}
			s.deliver(s.room.Disconnect(client.Id))
			close(client.SendBack)
			if err := client.Conn.Close(); err != nil {
				zap.L().Debug("ws close", zap.String("connId", client.Id), zap.Error(err))
			}
			zap.L().Info("client unregistered", zap.String("connId", client.Id))

		case frame := <-s.Transmit:
			s.dispatch(frame)
		}
	}
}

// dispatch decodes and validates one inbound frame, applies it to the room
// and delivers the resulting outbound events. Boundary rejections go back
// to the offending connection only.
func (s *StandaloneServer) dispatch(frame InboundFrame) {
	var envelope request.ChatEventRequest
	if err := json.Unmarshal(frame.Data, &envelope); err != nil {
		s.rejectFrame(frame.ConnId, errorx.Wrap(err, errorx.CodeInvalidParam, "malformed event envelope"))
		return
	}
	if err := s.validate.Struct(&envelope); err != nil {
		s.rejectFrame(frame.ConnId, errorx.Wrap(err, errorx.CodeInvalidParam, "invalid event envelope"))
		return
	}

	var outs []room.Outbound
	switch envelope.Event {
	case request.EventJoinChat:
		var req request.JoinChatRequest
		if !s.bindEventData(frame.ConnId, envelope.Data, &req) {
			return
		}
		outs = s.room.Join(frame.ConnId, req.Username)

	case request.EventSendMessage:
		var req request.SendMessageRequest
		if !s.bindEventData(frame.ConnId, envelope.Data, &req) {
			return
		}
		outs = s.room.Send(frame.ConnId, model.KindText, req.Content, nil)

	case request.EventSendFile:
		var req request.SendFileRequest
		if !s.bindEventData(frame.ConnId, envelope.Data, &req) {
			return
		}
		outs = s.room.Send(frame.ConnId, model.KindFile, req.FileBase64, &model.FileDescriptor{
			Name: req.FileName,
			Type: req.FileType,
			Size: req.FileSize,
		})

	case request.EventTypingStart:
		outs = s.room.TypingStart(frame.ConnId)

	case request.EventTypingStop:
		outs = s.room.TypingStop(frame.ConnId)

	case request.EventSendReaction:
		var req request.SendReactionRequest
		if !s.bindEventData(frame.ConnId, envelope.Data, &req) {
			return
		}
		outs = s.room.React(frame.ConnId, req.MessageId, req.Emoji)

	case request.EventMessageRead:
		var req request.MessageReadRequest
		if !s.bindEventData(frame.ConnId, envelope.Data, &req) {
			return
		}
		outs = s.room.MarkRead(frame.ConnId, req.MessageId)

	case request.EventRequestOlder:
		var req request.RequestOlderRequest
		if !s.bindEventData(frame.ConnId, envelope.Data, &req) {
			return
		}
		outs = s.room.RequestOlder(frame.ConnId, req.LastMessageId)

	default:
		s.rejectFrame(frame.ConnId, errorx.Newf(errorx.CodeInvalidParam, "unknown event %q", envelope.Event))
		return
	}

	s.deliver(outs)
}

// bindEventData decodes and validates a per-event payload. On failure the
// offending connection gets an error frame and false is returned.
func (s *StandaloneServer) bindEventData(connId string, data json.RawMessage, out any) bool {
	if len(data) == 0 {
		s.rejectFrame(connId, errorx.New(errorx.CodeInvalidParam, "missing event data"))
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		s.rejectFrame(connId, errorx.Wrap(err, errorx.CodeInvalidParam, "malformed event data"))
		return false
	}
	if err := s.validate.Struct(out); err != nil {
		s.rejectFrame(connId, errorx.Wrap(err, errorx.CodeInvalidParam, "invalid event data"))
		return false
	}
	return true
}

// rejectFrame logs a boundary rejection and notifies the sender.
func (s *StandaloneServer) rejectFrame(connId string, rejection *errorx.CodeError) {
	zap.L().Warn("inbound frame rejected",
		zap.String("connId", connId),
		zap.Int("code", rejection.Code),
		zap.Error(rejection),
	)
	if value, ok := s.Clients.Load(connId); ok {
		s.sendFrame(value.(*UserConn), ServerFrame{
			Event: EventError,
			Data:  errorRespond{Code: rejection.Code, Msg: rejection.Msg},
		})
	}
}

// deliver fans the room's outbound events out to the connected clients
// according to their delivery tag.
func (s *StandaloneServer) deliver(outs []room.Outbound) {
	for _, out := range outs {
		data, err := json.Marshal(ServerFrame{Event: out.Event, Data: out.Data})
		if err != nil {
			zap.L().Error("marshal outbound event failed", zap.String("event", out.Event), zap.Error(err))
			continue
		}

		if out.Kind == room.DeliverTargeted {
			for _, target := range out.Targets {
				if value, ok := s.Clients.Load(target); ok {
					s.trySend(value.(*UserConn), data)
				}
			}
			continue
		}
		s.Clients.Range(func(key, value any) bool {
			if out.DeliversTo(key.(string)) {
				s.trySend(value.(*UserConn), data)
			}
			return true
		})
	}
}

// trySend is the fire-and-forget send primitive: a full per-connection
// buffer drops the frame for that connection only, so one slow client
// never stalls the loop or the rest of the room.
func (s *StandaloneServer) trySend(client *UserConn, data []byte) {
	select {
	case client.SendBack <- data:
	default:
		zap.L().Warn("send buffer full, dropping frame", zap.String("connId", client.Id))
	}
}

// sendFrame marshals and sends a single frame to one client.
func (s *StandaloneServer) sendFrame(client *UserConn, frame ServerFrame) {
	data, err := json.Marshal(frame)
	if err != nil {
		zap.L().Error("marshal frame failed", zap.String("event", frame.Event), zap.Error(err))
		return
	}
	s.trySend(client, data)
}

// Publish implements Broker: it hands the frame to the event loop.
func (s *StandaloneServer) Publish(ctx context.Context, frame InboundFrame) error {
	select {
	case s.Transmit <- frame:
		return nil
	case <-s.done:
		return fmt.Errorf("publish inbound frame: broker closed")
	case <-ctx.Done():
		return fmt.Errorf("publish inbound frame: %w", ctx.Err())
	}
}

// RegisterClient implements Broker.
func (s *StandaloneServer) RegisterClient(client *UserConn) {
	select {
	case s.Login <- client:
	case <-s.done:
	}
}

// UnregisterClient implements Broker.
func (s *StandaloneServer) UnregisterClient(client *UserConn) {
	select {
	case s.Logout <- client:
	case <-s.done:
	}
}

// GetClient implements Broker.
func (s *StandaloneServer) GetClient(connId string) *UserConn {
	value, ok := s.Clients.Load(connId)
	if !ok {
		return nil
	}
	return value.(*UserConn)
}

// Close shuts the event loop down. Safe to call more than once.
func (s *StandaloneServer) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
}
