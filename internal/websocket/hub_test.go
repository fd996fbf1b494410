package websocket

import (
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/cinesuggest/web/internal/model"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	h := NewHub()
	go h.Run()
	return h
}

func receive(t *testing.T, c *Client) []byte {
	t.Helper()
	select {
	case msg, ok := <-c.Send:
		if !ok {
			t.Fatal("send channel closed")
		}
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
	}
	return nil
}

func TestNotify(t *testing.T) {
	h := startHub(t)
	a := &Client{SessionID: "s1", Send: make(chan []byte, 4)}
	b := &Client{SessionID: "s2", Send: make(chan []byte, 4)}
	h.Register(a)
	h.Register(b)

	h.Notify("s1", model.Toast{Message: "🔀 Movies shuffled!", Kind: model.ToastInfo})

	var msg model.WSToastMessage
	if err := json.Unmarshal(receive(t, a), &msg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if msg.Type != model.WSMessageTypeToast || msg.Message != "🔀 Movies shuffled!" || msg.Kind != model.ToastInfo {
		t.Errorf("unexpected message %+v", msg)
	}

	select {
	case m := <-b.Send:
		t.Errorf("other session received %s", m)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBroadcastPosterFallback(t *testing.T) {
	h := startHub(t)
	c := &Client{SessionID: "s1", Send: make(chan []byte, 4)}
	h.Register(c)

	h.BroadcastPosterFallback("s1", model.RegionBrowse, 7, "https://placeholder.example/x.png")

	var msg map[string]interface{}
	if err := json.Unmarshal(receive(t, c), &msg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if msg["type"] != "poster-fallback" || msg["region"] != "browse" || msg["cardId"] != float64(7) {
		t.Errorf("unexpected message %v", msg)
	}
}

func TestUnregister(t *testing.T) {
	h := startHub(t)
	c := &Client{SessionID: "s1", Send: make(chan []byte, 1)}
	h.Register(c)
	h.Unregister(c)

	select {
	case _, ok := <-c.Send:
		if ok {
			t.Error("expected closed channel")
		}
	case <-time.After(time.Second):
		t.Fatal("channel not closed")
	}
	if n := h.Connected("s1"); n != 0 {
		t.Errorf("expected no clients, got %d", n)
	}
}

func TestSlowClientIsDropped(t *testing.T) {
	h := startHub(t)
	c := &Client{SessionID: "s1", Send: make(chan []byte)} // never drained
	h.Register(c)

	h.Notify("s1", model.Toast{Message: "hello", Kind: model.ToastInfo})

	deadline := time.Now().Add(time.Second)
	for h.Connected("s1") != 0 {
		if time.Now().After(deadline) {
			t.Fatal("slow client was not removed")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
