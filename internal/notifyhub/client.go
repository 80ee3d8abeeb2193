package notifyhub

import "samadhan/backend/internal/models"

// Client is the interface for any type of live connection receiving
// notifications (e.g., WebSocket, Telegram). It abstracts the underlying
// transport, allowing the hub to manage different client types uniformly.
type Client interface {
	// GetUserID returns the unique identifier for the user associated
	// with the connection.
	GetUserID() string

	// GetSendChannel returns the channel to which the hub delivers
	// notifications intended for this specific connection.
	GetSendChannel() chan<- models.Notification

	// Run starts the client's read and write pumps.
	Run()
	// Close gracefully shuts down the client's connection and channels.
	// It must be safe to call more than once.
	Close()
}
