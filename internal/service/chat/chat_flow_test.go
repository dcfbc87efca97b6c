package chat_test

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"global_chat_server/internal/service/chat"
	"global_chat_server/internal/service/room"
	"global_chat_server/pkg/errorx"
)

// serverFrame mirrors the outbound envelope for decoding in tests.
type serverFrame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// startTestServer spins up a gin engine with the websocket route over a
// fresh room and broker.
func startTestServer(t *testing.T) (*httptest.Server, *chat.StandaloneServer) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rm := room.NewRoom("test", 20)
	broker := chat.NewStandaloneServer(rm, "welcome")
	go broker.Start()

	engine := gin.New()
	engine.GET("/ws", func(c *gin.Context) {
		chat.NewClientInit(c, broker)
	})
	srv := httptest.NewServer(engine)

	t.Cleanup(func() {
		srv.Close()
		broker.Close()
	})
	return srv, broker
}

func dialWs(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func writeEvent(t *testing.T, conn *websocket.Conn, event string, data any) {
	t.Helper()
	payload, err := json.Marshal(map[string]any{"event": event, "data": data})
	if err != nil {
		t.Fatalf("marshal %s: %v", event, err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		t.Fatalf("write %s: %v", event, err)
	}
}

// expectEvent reads the next frame and asserts its event name, returning
// the raw payload. The broker loop delivers frames in a deterministic
// order, so strict sequential matching is safe.
func expectEvent(t *testing.T, conn *websocket.Conn, want string) json.RawMessage {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	_, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read (want %q): %v", want, err)
	}
	var frame serverFrame
	if err := json.Unmarshal(raw, &frame); err != nil {
		t.Fatalf("unmarshal frame %q: %v", raw, err)
	}
	if frame.Event != want {
		t.Fatalf("event: got %q, want %q (payload %s)", frame.Event, want, frame.Data)
	}
	return frame.Data
}

func TestChatFlowOverWebsocket(t *testing.T) {
	srv, _ := startTestServer(t)

	alice := dialWs(t, srv)
	expectEvent(t, alice, "connected")
	writeEvent(t, alice, "join_chat", map[string]string{"username": "alice"})

	joined := expectEvent(t, alice, "joined_chat")
	var joinedData struct {
		Username string `json:"username"`
	}
	if err := json.Unmarshal(joined, &joinedData); err != nil {
		t.Fatal(err)
	}
	if joinedData.Username != "alice" {
		t.Fatalf("assigned name: got %q, want alice", joinedData.Username)
	}
	expectEvent(t, alice, "online_users")
	expectEvent(t, alice, "message_history")

	bob := dialWs(t, srv)
	expectEvent(t, bob, "connected")
	writeEvent(t, bob, "join_chat", map[string]string{"username": "bob"})
	expectEvent(t, bob, "joined_chat")
	expectEvent(t, bob, "online_users")
	expectEvent(t, bob, "message_history")

	// alice sees bob arrive, bob does not see his own user_joined
	expectEvent(t, alice, "user_joined")
	roster := expectEvent(t, alice, "online_users")
	var names []string
	if err := json.Unmarshal(roster, &names); err != nil {
		t.Fatal(err)
	}
	if len(names) != 2 || names[0] != "alice" || names[1] != "bob" {
		t.Fatalf("roster: got %v, want [alice bob]", names)
	}

	// message broadcast reaches both, sender included
	writeEvent(t, alice, "send_message", map[string]string{"content": "hello world"})
	var msg struct {
		Id      string `json:"id"`
		Sender  string `json:"sender"`
		Content string `json:"content"`
	}
	if err := json.Unmarshal(expectEvent(t, alice, "receive_message"), &msg); err != nil {
		t.Fatal(err)
	}
	if msg.Sender != "alice" || msg.Content != "hello world" || msg.Id == "" {
		t.Fatalf("message payload: %+v", msg)
	}
	expectEvent(t, bob, "receive_message")

	// read receipt is routed to the author only; the follow-up reaction
	// confirms bob never saw the receipt frame
	writeEvent(t, bob, "message_read", map[string]string{"message_id": msg.Id})
	var receipt struct {
		MessageId string `json:"message_id"`
		Reader    string `json:"reader"`
	}
	if err := json.Unmarshal(expectEvent(t, alice, "message_receipt_update"), &receipt); err != nil {
		t.Fatal(err)
	}
	if receipt.MessageId != msg.Id || receipt.Reader != "bob" {
		t.Fatalf("receipt payload: %+v", receipt)
	}

	writeEvent(t, bob, "send_reaction", map[string]string{"message_id": msg.Id, "emoji": "👍"})
	expectEvent(t, bob, "receive_reaction")
	expectEvent(t, alice, "receive_reaction")

	// pagination reply goes to the requester only
	writeEvent(t, bob, "request_older_messages", map[string]string{"last_message_id": msg.Id})
	var window []json.RawMessage
	if err := json.Unmarshal(expectEvent(t, bob, "load_older_messages"), &window); err != nil {
		t.Fatal(err)
	}
	if len(window) != 0 {
		t.Fatalf("older than the first message: got %d entries, want 0", len(window))
	}

	// bob disconnects while typing; alice sees typing clear and the roster shrink
	writeEvent(t, bob, "typing_start", nil)
	expectEvent(t, alice, "typing_status_update")
	bob.Close()

	typing := expectEvent(t, alice, "typing_status_update")
	var typingNames []string
	if err := json.Unmarshal(typing, &typingNames); err != nil {
		t.Fatal(err)
	}
	if len(typingNames) != 0 {
		t.Fatalf("typing set after disconnect: got %v, want empty", typingNames)
	}
	expectEvent(t, alice, "user_left")
	if err := json.Unmarshal(expectEvent(t, alice, "online_users"), &names); err != nil {
		t.Fatal(err)
	}
	if len(names) != 1 || names[0] != "alice" {
		t.Fatalf("roster after leave: got %v, want [alice]", names)
	}
}

func TestMalformedFramesAreRejectedAtBoundary(t *testing.T) {
	srv, _ := startTestServer(t)

	conn := dialWs(t, srv)
	expectEvent(t, conn, "connected")

	// not JSON at all
	if err := conn.WriteMessage(websocket.TextMessage, []byte("not json")); err != nil {
		t.Fatal(err)
	}
	var rejection struct {
		Code int `json:"code"`
	}
	if err := json.Unmarshal(expectEvent(t, conn, "error"), &rejection); err != nil {
		t.Fatal(err)
	}
	if rejection.Code != errorx.CodeInvalidParam {
		t.Fatalf("rejection code: got %d, want %d", rejection.Code, errorx.CodeInvalidParam)
	}

	// empty username must be rejected before reaching the room
	writeEvent(t, conn, "join_chat", map[string]string{"username": ""})
	expectEvent(t, conn, "error")

	// unknown event name
	writeEvent(t, conn, "fly_to_the_moon", map[string]string{})
	expectEvent(t, conn, "error")

	// a valid join still works afterwards: the bad frames cost nothing
	writeEvent(t, conn, "join_chat", map[string]string{"username": "alice"})
	expectEvent(t, conn, "joined_chat")
}

func TestEventsFromUnjoinedConnectionAreSilent(t *testing.T) {
	srv, _ := startTestServer(t)

	conn := dialWs(t, srv)
	expectEvent(t, conn, "connected")

	// typing and sending before join touch no room state and emit nothing
	writeEvent(t, conn, "typing_start", nil)
	writeEvent(t, conn, "send_message", map[string]string{"content": "hello"})

	// join afterwards: the history must still be empty
	writeEvent(t, conn, "join_chat", map[string]string{"username": "alice"})
	expectEvent(t, conn, "joined_chat")
	expectEvent(t, conn, "online_users")
	var history []json.RawMessage
	if err := json.Unmarshal(expectEvent(t, conn, "message_history"), &history); err != nil {
		t.Fatal(err)
	}
	if len(history) != 0 {
		t.Fatalf("pre-join send leaked into the log: %d entries", len(history))
	}
}
