// internal/bridge/connection.go
package bridge

import (
	"encoding/json"
	"log"

	"github.com/gorilla/websocket"
)

// Connection wraps one websocket client with a buffered send queue.
type Connection struct {
	id   string
	ws   *websocket.Conn
	send chan []byte
}

func newConnection(id string, ws *websocket.Conn) *Connection {
	return &Connection{
		id:   id,
		ws:   ws,
		send: make(chan []byte, 256),
	}
}

func (c *Connection) ID() string { return c.id }

// readPump hands every inbound frame to h until the socket closes.
func (c *Connection) readPump(h func(c *Connection, message []byte)) {
	for {
		_, message, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("Bridge: error reading from %s: %v", c.id, err)
			}
			return
		}
		h(c, message)
	}
}

// writePump drains the send queue until it is closed.
func (c *Connection) writePump() {
	defer c.ws.Close()

	for message := range c.send {
		w, err := c.ws.NextWriter(websocket.TextMessage)
		if err != nil {
			return
		}
		if _, err := w.Write(message); err != nil {
			return
		}
		if err := w.Close(); err != nil {
			return
		}
	}
	c.ws.WriteMessage(websocket.CloseMessage, []byte{})
}

// SendMessage queues msg as JSON. A client that cannot keep up is dropped.
func (c *Connection) SendMessage(msg interface{}) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	c.sendRaw(data)
	return nil
}

func (c *Connection) sendRaw(data []byte) {
	select {
	case c.send <- data:
	default:
		log.Printf("Bridge: client %s too slow, closing", c.id)
		c.ws.Close()
	}
}
