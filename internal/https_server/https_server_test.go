package https_server_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"global_chat_server/internal/handler"
	"global_chat_server/internal/https_server"
	"global_chat_server/internal/service/chat"
	"global_chat_server/internal/service/room"
	"global_chat_server/pkg/errorx"
)

func newRestServer(t *testing.T) (*httptest.Server, *room.Room) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rm := room.NewRoom("test", 20)
	broker := chat.NewStandaloneServer(rm, "welcome")
	engine := https_server.Init(handler.NewHandlers(broker, rm))

	srv := httptest.NewServer(engine)
	t.Cleanup(srv.Close)
	return srv, rm
}

func getJSON(t *testing.T, url string, out any) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET %s: status %d", url, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		t.Fatalf("unmarshal %q: %v", body, err)
	}
}

func TestHealthz(t *testing.T) {
	srv, _ := newRestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("healthz status: got %d, want 200", resp.StatusCode)
	}
}

func TestRosterView(t *testing.T) {
	srv, rm := newRestServer(t)
	rm.Join("conn-1", "zoe")
	rm.Join("conn-2", "alice")

	var envelope struct {
		Code int      `json:"code"`
		Data []string `json:"data"`
	}
	getJSON(t, srv.URL+"/room/roster", &envelope)

	if envelope.Code != errorx.CodeSuccess {
		t.Errorf("code: got %d, want %d", envelope.Code, errorx.CodeSuccess)
	}
	if len(envelope.Data) != 2 || envelope.Data[0] != "alice" || envelope.Data[1] != "zoe" {
		t.Errorf("roster: got %v, want [alice zoe]", envelope.Data)
	}
}

func TestStatsView(t *testing.T) {
	srv, rm := newRestServer(t)
	rm.Join("conn-1", "alice")
	rm.TypingStart("conn-1")

	var envelope struct {
		Code int `json:"code"`
		Data struct {
			Room        string   `json:"room"`
			OnlineCount int      `json:"online_count"`
			TypingUsers []string `json:"typing_users"`
		} `json:"data"`
	}
	getJSON(t, srv.URL+"/room/stats", &envelope)

	if envelope.Data.Room != "test" || envelope.Data.OnlineCount != 1 {
		t.Errorf("stats: %+v", envelope.Data)
	}
	if len(envelope.Data.TypingUsers) != 1 || envelope.Data.TypingUsers[0] != "alice" {
		t.Errorf("typing users: %v", envelope.Data.TypingUsers)
	}
}
