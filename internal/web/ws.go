package web

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/xid"
)

type wsMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type wsClick struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func mustMarshal(v any) json.RawMessage {
	data, _ := json.Marshal(v)
	return data
}

// ws pushes the game state as JSON whenever it changes. Clients may send
// {"type":"request_state"} or {"type":"click","payload":{"row":r,"col":c}}.
func (h *handlers) ws(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.svc.Get(id); !ok {
		http.NotFound(w, r)
		return
	}
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Printf("[ws] upgrade failed: %v", err)
		return
	}
	connID := xid.New().String()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	updates, unsub, err := h.svc.Subscribe(ctx, id)
	if err != nil {
		_ = conn.Close()
		return
	}
	defer unsub()
	h.logger.Printf("[ws] %s connected game=%s", connID, id)

	replies := make(chan []byte, 8)
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer conn.Close()
		if err := h.writeWS(conn, id, updates, replies); err != nil {
			h.logger.Printf("[ws] %s write: %v", connID, err)
		}
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			break
		}
		var msg wsMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}
		var reply []byte
		switch msg.Type {
		case "request_state":
			reply = h.stateMessage(id)
		case "click":
			var c wsClick
			if err := json.Unmarshal(msg.Payload, &c); err != nil {
				continue
			}
			if _, err := h.svc.Click(id, c.Row, c.Col); err != nil {
				reply = mustMarshal(wsMessage{Type: "error", Payload: mustMarshal(map[string]string{"error": errorMessage(err)})})
			}
		}
		if reply != nil {
			select {
			case replies <- reply:
			default:
			}
		}
	}
	unsub()
	<-done
	h.logger.Printf("[ws] %s disconnected", connID)
}

func (h *handlers) stateMessage(id string) []byte {
	gs, ok := h.svc.Get(id)
	if !ok {
		return nil
	}
	return mustMarshal(wsMessage{Type: "state", Payload: mustMarshal(gs)})
}

// writeWS owns all writes on conn. A ping goes out once the connection has
// been idle for the heartbeat interval.
func (h *handlers) writeWS(conn *websocket.Conn, id string, updates <-chan []byte, replies <-chan []byte) error {
	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()
	pingPayload := mustMarshal(wsMessage{Type: "ping"})

	write := func(msg []byte) error {
		if msg == nil {
			return nil
		}
		return conn.WriteMessage(websocket.TextMessage, msg)
	}
	if err := write(h.stateMessage(id)); err != nil {
		return err
	}
	lastWrite := time.Now()
	for {
		select {
		case _, ok := <-updates:
			if !ok {
				return nil
			}
			if err := write(h.stateMessage(id)); err != nil {
				return err
			}
			lastWrite = time.Now()
		case msg := <-replies:
			if err := write(msg); err != nil {
				return err
			}
			lastWrite = time.Now()
		case <-ticker.C:
			if time.Since(lastWrite) < h.heartbeat {
				continue
			}
			if err := write(pingPayload); err != nil {
				return err
			}
			lastWrite = time.Now()
		}
	}
}
