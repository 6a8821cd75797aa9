package spectate

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

type frame struct {
	Tick  int    `json:"tick"`
	State string `json:"state"`
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		t.Fatalf("failed to open websocket connection: %v", err)
	}
	t.Cleanup(func() {
		conn.Close()
		if resp != nil {
			resp.Body.Close()
		}
	})
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) frame {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("failed to read frame: %v", err)
	}
	var f frame
	if err := json.Unmarshal(payload, &f); err != nil {
		t.Fatalf("failed to decode frame %q: %v", payload, err)
	}
	return f
}

func waitViewers(t *testing.T, h *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for h.Viewers() != n {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d viewers, have %d", n, h.Viewers())
		}
		time.Sleep(time.Millisecond)
	}
}

func TestHubBroadcastsFrames(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(hub)
	t.Cleanup(srv.Close)
	t.Cleanup(hub.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	a := dial(t, url)
	b := dial(t, url)
	waitViewers(t, hub, 2)

	if err := hub.Publish(frame{Tick: 1, State: "Running"}); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	for _, conn := range []*websocket.Conn{a, b} {
		if f := readFrame(t, conn); f.Tick != 1 || f.State != "Running" {
			t.Errorf("unexpected frame %+v", f)
		}
	}
}

func TestHubSendsLatestFrameOnConnect(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(hub)
	t.Cleanup(srv.Close)
	t.Cleanup(hub.Close)

	hub.Publish(frame{Tick: 7})
	conn := dial(t, "ws"+strings.TrimPrefix(srv.URL, "http"))

	if f := readFrame(t, conn); f.Tick != 7 {
		t.Errorf("expected latest frame on connect, got %+v", f)
	}
}

func TestHubRemovesDisconnectedViewers(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(hub)
	t.Cleanup(srv.Close)
	t.Cleanup(hub.Close)

	conn := dial(t, "ws"+strings.TrimPrefix(srv.URL, "http"))
	waitViewers(t, hub, 1)

	conn.Close()
	waitViewers(t, hub, 0)
}

func TestPublishRejectsUnencodableFrame(t *testing.T) {
	hub := NewHub()
	if err := hub.Publish(func() {}); err == nil {
		t.Error("expected encoding error")
	}
}

func TestServerListenAndShutdown(t *testing.T) {
	hub := NewHub()
	s, err := Listen("127.0.0.1:0", hub)
	if err != nil {
		t.Fatalf("Listen failed: %v", err)
	}

	conn := dial(t, "ws://"+s.Addr()+"/ws")
	waitViewers(t, hub, 1)
	hub.Publish(frame{Tick: 3})
	if f := readFrame(t, conn); f.Tick != 3 {
		t.Errorf("unexpected frame %+v", f)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown failed: %v", err)
	}
	if hub.Viewers() != 0 {
		t.Errorf("expected no viewers after shutdown, got %d", hub.Viewers())
	}
}
