package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/session"
)

func TestHubRegisterUnregister(t *testing.T) {
	hub := NewHub(nil)
	client := &Client{hub: hub, sessionID: "s1", send: make(chan []byte, 1)}

	hub.registerClient(client)
	if !hub.sessions["s1"][client] {
		t.Fatal("client was not registered")
	}

	hub.unregisterClient(client)
	if _, ok := hub.sessions["s1"]; ok {
		t.Error("empty session should be removed")
	}
	if _, ok := <-client.send; ok {
		t.Error("send channel should be closed")
	}

	// A second unregister is a no-op
	hub.unregisterClient(client)
}

func TestHubBroadcastOnlyToSession(t *testing.T) {
	hub := NewHub(nil)
	a := &Client{hub: hub, sessionID: "a", send: make(chan []byte, 1)}
	b := &Client{hub: hub, sessionID: "b", send: make(chan []byte, 1)}
	hub.registerClient(a)
	hub.registerClient(b)

	hub.broadcastMessage(&Message{SessionID: "a", Event: "ping"})

	select {
	case data := <-a.send:
		if !strings.Contains(string(data), `"event":"ping"`) {
			t.Errorf("message = %s", data)
		}
	default:
		t.Error("client a got nothing")
	}
	select {
	case data := <-b.send:
		t.Errorf("client b got %s", data)
	default:
	}
}

func TestHubDropsSlowClient(t *testing.T) {
	hub := NewHub(nil)
	slow := &Client{hub: hub, sessionID: "s", send: make(chan []byte)} // unbuffered, never read
	hub.registerClient(slow)

	hub.broadcastMessage(&Message{SessionID: "s", Event: "x"})
	if _, ok := hub.sessions["s"]; ok {
		t.Error("slow client should be dropped")
	}
}

func TestServeWSStateUpdates(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(nil)
	go hub.Run(ctx)

	mgr := session.NewManager()
	mgr.OnUpdate(hub.BroadcastState)
	st, err := mgr.Create(21, t2048.ModeClassic)
	if err != nil {
		t.Fatal(err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		initial, _ := mgr.Get(st.ID)
		hub.ServeWS(w, r, st.ID, &initial)
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()

	first := readMessage(t, conn)
	if first.Event != EventState || first.State == nil || first.State.ID != st.ID {
		t.Fatalf("initial message = %+v", first)
	}

	var moved bool
	for _, d := range t2048.Directions {
		res, err := mgr.Shift(st.ID, d)
		if err != nil {
			t.Fatal(err)
		}
		if res.Move.Accepted {
			moved = true
			break
		}
	}
	if !moved {
		t.Fatal("no legal move on a fresh board")
	}

	update := readMessage(t, conn)
	if update.Event != EventStateUpdate || update.State == nil || update.State.Moves != 1 {
		t.Errorf("update = %+v", update)
	}
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	//nolint:errcheck // test deadline
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	var m Message
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("Unmarshal %s: %v", data, err)
	}
	return m
}
