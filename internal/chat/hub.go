package chat

import (
	"context"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

const writeTimeout = 5 * time.Second

// Frame is a chat protocol message in either direction
type Frame struct {
	Type     string   `json:"type"`
	Username string   `json:"username,omitempty"`
	From     string   `json:"from,omitempty"`
	To       string   `json:"to,omitempty"`
	Message  string   `json:"message,omitempty"`
	Users    []string `json:"users,omitempty"`
}

// Hub relays direct messages between connected usernames. It owns the
// online-user directory alone; nothing else may consult it, and in
// particular it says nothing about session validity.
type Hub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]string
}

// NewHub creates an empty chat hub
func NewHub() *Hub {
	return &Hub{conns: make(map[*websocket.Conn]string)}
}

// Register binds a connection to a username and broadcasts the user list
func (h *Hub) Register(ctx context.Context, conn *websocket.Conn, username string) {
	h.mu.Lock()
	h.conns[conn] = username
	h.mu.Unlock()
	h.broadcastUserList(ctx)
}

// Unregister drops a connection and broadcasts the updated user list
func (h *Hub) Unregister(ctx context.Context, conn *websocket.Conn) {
	h.mu.Lock()
	_, present := h.conns[conn]
	delete(h.conns, conn)
	h.mu.Unlock()
	if present {
		h.broadcastUserList(ctx)
	}
}

// Send delivers a direct message to every connection registered under the
// recipient's username. Unknown recipients are silently dropped.
func (h *Hub) Send(ctx context.Context, from, to, message string) {
	frame := Frame{Type: "receiveMessage", From: from, Message: message}
	for _, conn := range h.connsFor(to) {
		h.write(ctx, conn, frame)
	}
}

// Users returns the currently registered usernames
func (h *Hub) Users() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	users := make([]string, 0, len(h.conns))
	for _, username := range h.conns {
		users = append(users, username)
	}
	return users
}

func (h *Hub) connsFor(username string) []*websocket.Conn {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []*websocket.Conn
	for conn, name := range h.conns {
		if name == username {
			out = append(out, conn)
		}
	}
	return out
}

func (h *Hub) broadcastUserList(ctx context.Context) {
	frame := Frame{Type: "userList", Users: h.Users()}
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for conn := range h.conns {
		conns = append(conns, conn)
	}
	h.mu.Unlock()
	for _, conn := range conns {
		h.write(ctx, conn, frame)
	}
}

func (h *Hub) write(ctx context.Context, conn *websocket.Conn, frame Frame) {
	writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	_ = wsjson.Write(writeCtx, conn, frame)
}
