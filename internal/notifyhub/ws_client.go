package notifyhub

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"samadhan/backend/internal/models"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// EventNewNotification is the only event the server pushes to clients.
const EventNewNotification = "newNotification"

// EventJoin is the only event clients send after the handshake: a request
// to subscribe to a role room.
const EventJoin = "join"

// WebSocketClient implements the notifyhub.Client interface over a
// gorilla/websocket connection.
type WebSocketClient struct {
	UserID string
	Conn   *websocket.Conn
	Hub    *ManagerService
	Send   chan models.Notification

	closeOnce sync.Once
}

func (c *WebSocketClient) GetUserID() string                          { return c.UserID }
func (c *WebSocketClient) GetSendChannel() chan<- models.Notification { return c.Send }

// Run starts the read and write pumps.
func (c *WebSocketClient) Run() {
	go c.writePump()
	go c.readPump()
}

// Close closes the Send channel, which stops the write pump. Safe to call
// from both the hub (slow client) and the read pump (disconnect).
func (c *WebSocketClient) Close() {
	c.closeOnce.Do(func() {
		close(c.Send)
	})
}

// readPump consumes inbound frames. The only meaningful one is "join";
// everything else is ignored. Connection loss unregisters the client.
func (c *WebSocketClient) readPump() {
	defer func() {
		c.Hub.UnregisterCh <- c
		c.Close()
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("error reading message: %v", err)
			}
			break
		}

		var ev models.ClientEvent
		if err := json.Unmarshal(message, &ev); err != nil {
			log.Printf("Error decoding JSON from client %s: %v", c.UserID, err)
			continue
		}

		if ev.Event == EventJoin && ev.Role != "" {
			c.Hub.JoinCh <- JoinRequest{Client: c, Room: RoleRoom(ev.Role)}
		}
	}
}

// writePump frames notifications for the wire and keeps the connection
// alive with pings.
func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case n, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel, close the WS connection.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			data, err := json.Marshal(models.ServerEvent{Event: EventNewNotification, Notification: n})
			if err != nil {
				log.Printf("Error encoding JSON for client %s: %v", c.UserID, err)
				continue
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(data)

			// Drain whatever queued up behind this notification.
			queued := len(c.Send)
			for i := 0; i < queued; i++ {
				next, ok := <-c.Send
				if !ok {
					break
				}
				extra, _ := json.Marshal(models.ServerEvent{Event: EventNewNotification, Notification: next})
				w.Write(extra)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
