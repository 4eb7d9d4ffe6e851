package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"skrillax-agent/internal/config"
	"skrillax-agent/internal/domain"
	"skrillax-agent/internal/engine"
	"skrillax-agent/internal/navmesh"
	"skrillax-agent/internal/network"
	"skrillax-agent/internal/worlddata"
	"skrillax-agent/pkg/api"
	"skrillax-agent/pkg/logger"

	"github.com/gorilla/websocket"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	reg := worlddata.NewRegistry()
	if err := reg.Load(worlddata.StaticLoader{Levels: []worlddata.LevelEntry{{Level: 1, Exp: 100}}}); err != nil {
		t.Fatal(err)
	}
	hub := network.NewBroadcaster()
	game := config.Default().Game
	game.Seed = 1
	eng, err := engine.New(engine.NewConfig(game), reg, navmesh.Flat{Bounds: game.Bounds}, hub)
	if err != nil {
		t.Fatal(err)
	}
	s := New(eng, hub, "0")
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func TestHTTP_Endpoints(t *testing.T) {
	s, ts := newTestServer(t)
	if _, err := s.Engine.LoadCharacter(domain.CharacterState{ID: 1, Name: "Dump"}); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		path     string
		contains string
	}{
		{"/health", "ok"},
		{"/version", "goVersion"},
		{"/debug/schedule", "flush_store"},
		{"/debug/entities", `"Dump"`},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := http.Get(ts.URL + tt.path)
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d", resp.StatusCode)
			}
			if resp.Header.Get("Access-Control-Allow-Origin") != "*" {
				t.Error("CORS header missing")
			}
			body, err := io.ReadAll(resp.Body)
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(string(body), tt.contains) {
				t.Errorf("body %q does not contain %q", body, tt.contains)
			}
		})
	}
}

func dial(t *testing.T, ts *httptest.Server, token string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	if err := conn.WriteJSON(api.ClientCommand{Token: token}); err != nil {
		t.Fatal(err)
	}
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) api.ServerMessage {
	t.Helper()
	if err := conn.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
		t.Fatal(err)
	}
	var msg api.ServerMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	return msg
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not reached")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestWS_CommandRoundTrip(t *testing.T) {
	s, ts := newTestServer(t)
	id, err := s.Engine.LoadCharacter(domain.CharacterState{ID: 1, Name: "Socket", StatPoints: 1})
	if err != nil {
		t.Fatal(err)
	}
	s.Engine.Tick(100 * time.Millisecond) // начальная синхронизация до подключения

	conn := dial(t, ts, id.Decimal())
	payload, _ := json.Marshal(api.StatIncreasePayload{Stat: "INT"})
	if err := conn.WriteJSON(api.ClientCommand{Action: "STAT_INCREASE", Payload: payload}); err != nil {
		t.Fatal(err)
	}

	player := s.Engine.GetEntity(id)
	waitFor(t, player.Input.Stats.Pending)
	s.Engine.Tick(100 * time.Millisecond)

	msg := readMessage(t, conn)
	if msg.Type != api.MsgResponse || msg.Response == nil || !msg.Response.Success {
		t.Fatalf("first message = %+v", msg)
	}
	msg = readMessage(t, conn)
	if msg.Type != api.MsgChanges || msg.Changes[0].StatPoints == nil || msg.Changes[0].StatPoints.Intelligence != domain.BaseIntelligence+1 {
		t.Errorf("changes = %+v", msg)
	}
}

func TestWS_RejectsBadCommands(t *testing.T) {
	s, ts := newTestServer(t)
	id, _ := s.Engine.LoadCharacter(domain.CharacterState{ID: 1, Name: "Socket"})

	conn := dial(t, ts, id.Decimal())
	if err := conn.WriteJSON(api.ClientCommand{Action: "FLY"}); err != nil {
		t.Fatal(err)
	}
	msg := readMessage(t, conn)
	if msg.Type != api.MsgError || !strings.Contains(msg.Error, "unknown action") {
		t.Errorf("message = %+v", msg)
	}

	watcher := dial(t, ts, "")
	if err := watcher.WriteJSON(api.ClientCommand{Action: "LEARN_SKILL"}); err != nil {
		t.Fatal(err)
	}
	msg = readMessage(t, watcher)
	if msg.Type != api.MsgError || !strings.Contains(msg.Error, "observer") {
		t.Errorf("watcher message = %+v", msg)
	}
}
