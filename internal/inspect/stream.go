package inspect

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const streamInterval = 200 * time.Millisecond

var upgrader = websocket.Upgrader{
	CheckOrigin: func(_ *http.Request) bool { return true },
}

type serverEnvelope struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type clientEnvelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type streamConn struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func (c *streamConn) writeJSON(value any) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteJSON(value)
}

// StreamWorld pushes a snapshot on connect and then on every interval.
// Clients may send {"type":"command","payload":{"command":"wait 5s"}} and
// get a command_result envelope back on the same socket.
func (h *handler) StreamWorld(w http.ResponseWriter, req *http.Request) {
	conn, err := upgrader.Upgrade(w, req, nil)
	if err != nil {
		log.Printf("inspect: ws upgrade failed: %v", err)
		return
	}
	client := &streamConn{conn: conn}
	defer conn.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		h.readCommands(client)
	}()

	if err := client.writeJSON(serverEnvelope{Type: "snapshot", Payload: h.session.Snapshot()}); err != nil {
		log.Printf("inspect: stream write error: %v", err)
		return
	}

	ticker := time.NewTicker(h.streamEvery)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := client.writeJSON(serverEnvelope{Type: "snapshot", Payload: h.session.Snapshot()}); err != nil {
				log.Printf("inspect: stream write error: %v", err)
				return
			}
		}
	}
}

func (h *handler) readCommands(client *streamConn) {
	for {
		_, payload, err := client.conn.ReadMessage()
		if err != nil {
			return
		}

		var envelope clientEnvelope
		if err := json.Unmarshal(payload, &envelope); err != nil {
			continue
		}

		switch envelope.Type {
		case "command":
			var cmd CommandRequest
			if err := json.Unmarshal(envelope.Payload, &cmd); err != nil {
				_ = client.writeJSON(serverEnvelope{Type: "error", Payload: ErrorResponse{Message: "error decoding payload as command"}})
				continue
			}
			res := h.session.ExecuteCommand(cmd.Command)
			if err := client.writeJSON(serverEnvelope{Type: "command_result", Payload: res}); err != nil {
				return
			}
		default:
			_ = client.writeJSON(serverEnvelope{Type: "error", Payload: ErrorResponse{Message: "unknown message type " + envelope.Type}})
		}
	}
}
