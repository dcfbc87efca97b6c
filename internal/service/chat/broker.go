// Package chat implements the websocket transport for the room: the
// per-connection read/write pumps and the broker run loop that is the only
// goroutine feeding events into the room state machine.
package chat

import "context"

// InboundFrame is one raw frame read from a client connection, tagged with
// the connection it arrived on.
type InboundFrame struct {
	ConnId string
	Data   []byte
}

// ServerFrame is the envelope of every outbound websocket frame.
type ServerFrame struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

// Broker decouples the connection pumps from the event loop that consumes
// them. The standalone channel implementation is the only one here; the
// interface keeps the gateway testable and leaves space for a distributed
// implementation behind the same surface.
type Broker interface {
	// Publish hands an inbound frame to the event loop.
	Publish(ctx context.Context, frame InboundFrame) error
	// RegisterClient enqueues a freshly upgraded connection.
	RegisterClient(client *UserConn)
	// UnregisterClient enqueues a connection for teardown. Safe to call
	// more than once for the same connection.
	UnregisterClient(client *UserConn)
	// GetClient returns the live connection with the given id, or nil.
	GetClient(connId string) *UserConn
	// Start runs the event loop until Close.
	Start()
	// Close shuts the loop down.
	Close()
}
