// internal/bridge/hub.go
package bridge

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"go-td-core/internal/app"
	"go-td-core/internal/event"
)

// CommandSink accepts commands from remote clients.
type CommandSink interface {
	Submit(cmd app.Command) bool
}

// SinkFunc adapts a function to CommandSink.
type SinkFunc func(cmd app.Command) bool

func (f SinkFunc) Submit(cmd app.Command) bool { return f(cmd) }

// Hub broadcasts simulation events to websocket clients and forwards their
// commands to the game.
type Hub struct {
	clients  map[string]*Connection
	mutex    sync.RWMutex
	sink     CommandSink
	upgrader websocket.Upgrader
}

func NewHub(sink CommandSink) *Hub {
	return &Hub{
		clients: make(map[string]*Connection),
		sink:    sink,
		upgrader: websocket.Upgrader{
			// Local debugging tool; any origin may connect.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Attach subscribes the hub to every simulation event.
func (h *Hub) Attach(d *event.Dispatcher) {
	d.SubscribeAll(h)
}

// OnEvent broadcasts e as {type, data}.
func (h *Hub) OnEvent(e event.Event) {
	h.Broadcast(OutboundMessage{Type: MessageType(e.Type), Data: e.Data})
}

// Broadcast sends msg to every connected client.
func (h *Hub) Broadcast(msg OutboundMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Bridge: failed to encode %s: %v", msg.Type, err)
		return
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	for _, c := range h.clients {
		c.sendRaw(data)
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

// ServeHTTP upgrades the request and serves the client until it leaves.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Bridge: failed to upgrade connection: %v", err)
		return
	}

	c := newConnection(uuid.New().String(), ws)
	h.add(c)
	go c.writePump()
	h.reply(c, OutboundMessage{Type: MessageTypeWelcome, Data: WelcomeMessage{ClientID: c.id}})
	log.Printf("Bridge: client %s connected", c.id)

	c.readPump(h.handleMessage)

	h.remove(c)
	log.Printf("Bridge: client %s disconnected", c.id)
}

func (h *Hub) add(c *Connection) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.clients[c.id] = c
}

func (h *Hub) remove(c *Connection) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if _, ok := h.clients[c.id]; ok {
		delete(h.clients, c.id)
		close(c.send)
	}
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for id, c := range h.clients {
		c.ws.Close()
		close(c.send)
		delete(h.clients, id)
	}
}

// reply sends msg to c if it is still registered.
func (h *Hub) reply(c *Connection, msg OutboundMessage) {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	if _, ok := h.clients[c.id]; !ok {
		return
	}
	if err := c.SendMessage(msg); err != nil {
		log.Printf("Bridge: failed to send to %s: %v", c.id, err)
	}
}

func (h *Hub) handleMessage(c *Connection, message []byte) {
	var cmd app.Command
	if err := json.Unmarshal(message, &cmd); err != nil {
		h.reply(c, OutboundMessage{Type: MessageTypeError, Data: ErrorMessage{Reason: "invalid_json"}})
		return
	}
	if cmd.Name == "" {
		h.reply(c, OutboundMessage{Type: MessageTypeError, Data: ErrorMessage{Reason: "missing_command"}})
		return
	}
	if !h.sink.Submit(cmd) {
		h.reply(c, OutboundMessage{Type: MessageTypeError, Data: ErrorMessage{Reason: "queue_full", Command: cmd.Name}})
	}
}
