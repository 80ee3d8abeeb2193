package handler

import (
	"net/http"

	"samadhan/backend/internal/models"
	"samadhan/backend/internal/notifyhub"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allows connections from any origin. Lock down in production.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWebSocket upgrades the connection to WebSocket after a one-time
// token handshake. The connection joins the user's own room immediately;
// a role room requires an explicit "join" event from the client.
func (h *Handler) ServeWebSocket(c *gin.Context) {
	// Browsers cannot set headers on WebSocket requests, so the token may
	// also arrive as a query parameter.
	token := bearerToken(c.GetHeader("Authorization"))
	if token == "" {
		token = c.Query("token")
	}
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authorization token missing"})
		return
	}

	user, err := h.userFromToken(token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token or expired"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Failed to upgrade connection"})
		return
	}

	client := &notifyhub.WebSocketClient{
		UserID: user.ID,
		Conn:   conn,
		Hub:    h.Hub,
		Send:   make(chan models.Notification, 256),
	}

	h.Hub.RegisterCh <- client
	client.Run()
}
