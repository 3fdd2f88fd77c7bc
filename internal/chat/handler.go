package chat

import (
	"context"
	"log"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/gin-gonic/gin"
)

// Handler upgrades /ws requests and runs the relay read loop
type Handler struct {
	hub *Hub
}

// NewHandler creates a chat Handler around a hub
func NewHandler(hub *Hub) *Handler {
	return &Handler{hub: hub}
}

// ServeWS handles a single chat connection until it closes
func (h *Handler) ServeWS(c *gin.Context) {
	conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
		// Chat is keyed by self-reported username and carries no
		// session authority.
		InsecureSkipVerify: true,
	})
	if err != nil {
		log.Printf("Chat websocket accept failed: %v", err)
		return
	}

	ctx := c.Request.Context()
	defer h.hub.Unregister(context.WithoutCancel(ctx), conn)
	defer conn.Close(websocket.StatusNormalClosure, "closed")

	for {
		var frame Frame
		if err := wsjson.Read(ctx, conn, &frame); err != nil {
			return
		}

		switch frame.Type {
		case "register":
			if frame.Username != "" {
				h.hub.Register(ctx, conn, frame.Username)
			}
		case "sendMessage":
			h.hub.Send(ctx, frame.From, frame.To, frame.Message)
		}
	}
}

// RegisterChatRoutes registers the websocket endpoint
func (h *Handler) RegisterChatRoutes(r *gin.Engine) {
	r.GET("/ws", h.ServeWS)
}
