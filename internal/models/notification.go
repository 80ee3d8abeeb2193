package models

import "time"

// Notification severity tags.
const (
	NotifyInfo    = "info"
	NotifySuccess = "success"
	NotifyWarning = "warning"
	NotifyError   = "error"
)

// Notification is an ephemeral message delivered to live subscribers.
// It is never persisted: if no subscriber is connected it is simply lost.
type Notification struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	Type        string    `json:"type"` // "info", "success", "warning", "error"
	Timestamp   time.Time `json:"timestamp"`
	Read        bool      `json:"read"`
	ComplaintID string    `json:"complaintId,omitempty"`
}

// RoomNotification is the envelope published on the Redis broadcast channel.
// Room addresses one of the two audience schemes: "<role>_notifications"
// or "<userID>_room".
type RoomNotification struct {
	Room         string       `json:"room"`
	Notification Notification `json:"notification"`
}

// ClientEvent is an inbound websocket frame. The only event clients send
// after the handshake is "join" with the role room they want to subscribe to.
type ClientEvent struct {
	Event string `json:"event"`
	Role  string `json:"role,omitempty"`
}

// ServerEvent is an outbound websocket frame carrying a notification.
type ServerEvent struct {
	Event        string       `json:"event"` // always "newNotification"
	Notification Notification `json:"notification"`
}
