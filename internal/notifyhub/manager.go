// Package notifyhub implements the real-time notification fan-out: an
// explicit registry of live connections grouped into rooms, fed by a Redis
// broadcast channel so every service instance sees every notification.
package notifyhub

import (
	"encoding/json"
	"log"
	"time"

	"samadhan/backend/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RoleRoom is the room every connection of a role may join on request,
// e.g. "admin_notifications".
func RoleRoom(role string) string {
	return role + "_notifications"
}

// UserRoom is the room a connection is joined to automatically on connect,
// addressing exactly one user's active connections.
func UserRoom(userID string) string {
	return userID + "_room"
}

// Broker is the pub/sub substrate the hub publishes through. Satisfied by
// the storage service; nil means local-only delivery (single instance,
// used in tests).
type Broker interface {
	PublishNotification(room string, n models.Notification) error
	SubscribeNotifications() *redis.PubSub
}

// JoinRequest asks the hub to add a connection to a room.
type JoinRequest struct {
	Client Client
	Room   string
}

// ManagerService owns the connection registry. All room membership
// mutations and deliveries happen on the Run goroutine; the channels are
// the only way in.
type ManagerService struct {
	Rooms map[string]map[Client]bool

	RegisterCh   chan Client
	UnregisterCh chan Client
	JoinCh       chan JoinRequest
	BroadcastCh  chan models.RoomNotification

	Broker Broker

	pubSubCh chan models.RoomNotification
}

// NewManagerService creates the hub. The broadcast channel is buffered so
// publishing never blocks the request that triggered it.
func NewManagerService(broker Broker) *ManagerService {
	return &ManagerService{
		Rooms:        make(map[string]map[Client]bool),
		RegisterCh:   make(chan Client),
		UnregisterCh: make(chan Client),
		JoinCh:       make(chan JoinRequest),
		BroadcastCh:  make(chan models.RoomNotification, 64),
		Broker:       broker,
		pubSubCh:     make(chan models.RoomNotification),
	}
}

// PublishToRole delivers a notification to every connection currently
// joined to the role's room. Fire-and-forget: no subscriber, no delivery.
func (m *ManagerService) PublishToRole(role string, n models.Notification) {
	m.publish(RoleRoom(role), n)
}

// PublishToUser delivers a notification to the user's active connections.
func (m *ManagerService) PublishToUser(userID string, n models.Notification) {
	m.publish(UserRoom(userID), n)
}

func (m *ManagerService) publish(room string, n models.Notification) {
	n = fillDefaults(n)
	envelope := models.RoomNotification{Room: room, Notification: n}

	// With a broker the notification comes back through the pub/sub
	// listener, so every instance (this one included) delivers it locally.
	if m.Broker != nil {
		if err := m.Broker.PublishNotification(room, n); err == nil {
			return
		}
		// Broker down: fall through to local delivery so connected
		// clients on this instance still hear about it.
	}

	select {
	case m.BroadcastCh <- envelope:
	default:
		log.Printf("WARNING: Broadcast buffer full, dropping notification for room %s", room)
	}
}

// fillDefaults stamps id, timestamp, severity and the unread flag the way
// the delivery contract expects them.
func fillDefaults(n models.Notification) models.Notification {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.Type == "" {
		n.Type = models.NotifyInfo
	}
	if n.Timestamp.IsZero() {
		n.Timestamp = time.Now()
	}
	n.Read = false
	return n
}

// StartPubSubListener starts a goroutine that relays the Redis broadcast
// channel into the Run loop.
func (m *ManagerService) StartPubSubListener() {
	if m.Broker == nil {
		return
	}
	go func() {
		pubsub := m.Broker.SubscribeNotifications()
		defer pubsub.Close()

		for msg := range pubsub.Channel() {
			envelope, err := decodeEnvelope(msg.Payload)
			if err != nil {
				log.Printf("ERROR: Failed to decode notification payload: %v", err)
				continue
			}
			m.pubSubCh <- envelope
		}
	}()
}

func decodeEnvelope(payload string) (models.RoomNotification, error) {
	var envelope models.RoomNotification
	err := json.Unmarshal([]byte(payload), &envelope)
	return envelope, err
}

// Run is the hub's main dispatcher. It owns the room registry; everything
// else talks to it through channels.
func (m *ManagerService) Run() {
	m.StartPubSubListener()

	for {
		select {
		case client := <-m.RegisterCh:
			// Every connection is joined to its own user room on connect.
			m.joinRoom(client, UserRoom(client.GetUserID()))
			log.Printf("Client registered for user %s", client.GetUserID())

		case client := <-m.UnregisterCh:
			m.removeClient(client)

		case req := <-m.JoinCh:
			m.joinRoom(req.Client, req.Room)
			log.Printf("User %s joined room %s", req.Client.GetUserID(), req.Room)

		case envelope := <-m.BroadcastCh:
			m.deliver(envelope)

		case envelope := <-m.pubSubCh:
			m.deliver(envelope)
		}
	}
}

func (m *ManagerService) joinRoom(client Client, room string) {
	members, ok := m.Rooms[room]
	if !ok {
		members = make(map[Client]bool)
		m.Rooms[room] = members
	}
	members[client] = true
}

// removeClient drops the connection from every room. There is no partial
// unjoin; disconnect is the only way out of a room.
func (m *ManagerService) removeClient(client Client) {
	for room, members := range m.Rooms {
		if members[client] {
			delete(members, client)
			if len(members) == 0 {
				delete(m.Rooms, room)
			}
		}
	}
}

// deliver fans a notification out to the room's current members. Slow
// clients are disconnected rather than allowed to block the hub.
func (m *ManagerService) deliver(envelope models.RoomNotification) {
	var stalled []Client

	for client := range m.Rooms[envelope.Room] {
		select {
		case client.GetSendChannel() <- envelope.Notification:
		default:
			stalled = append(stalled, client)
		}
	}

	for _, client := range stalled {
		log.Printf("WARNING: Dropping slow client for user %s", client.GetUserID())
		m.removeClient(client)
		client.Close()
	}
}
