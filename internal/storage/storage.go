package storage

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"samadhan/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// NotifyChannel is the Redis Pub/Sub channel carrying room-addressed
// notifications between service instances and the fan-out hub.
const NotifyChannel = "notifications:broadcast"

// Storage is the persistence boundary of the application. Lookups return
// (nil, nil) when the record does not exist; only real failures produce
// an error.
type Storage interface {
	CreateComplaint(c *models.Complaint) error
	GetComplaintByID(id string) (*models.Complaint, error)
	SaveComplaint(c *models.Complaint) error
	DeleteComplaint(id string) error
	ListComplaints() ([]models.Complaint, error)
	ListComplaintsByUser(userID string) ([]models.Complaint, error)
	CountComplaintsByStatus() (map[string]int64, error)

	CreateUser(user *models.User) error
	SaveUser(user *models.User) error
	DeleteUser(id string) error
	GetUserByID(id string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	ListUsers() ([]models.User, error)

	PublishNotification(room string, n models.Notification) error
}

// Service implements Storage over PostgreSQL (GORM) and Redis.
type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewStorageService Constructor
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}

// PublishNotification publishes a room-addressed notification on the Redis
// broadcast channel. Delivery is best-effort; nobody awaits an ack.
func (s *Service) PublishNotification(room string, n models.Notification) error {
	envelope := models.RoomNotification{Room: room, Notification: n}

	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}

	if err := s.Redis.Publish(s.Ctx, NotifyChannel, string(payload)).Err(); err != nil {
		log.Printf("ERROR: Failed to publish notification for room %s: %v", room, err)
		return err
	}

	return nil
}

// SubscribeNotifications subscribes to the notification broadcast channel.
func (s *Service) SubscribeNotifications() *redis.PubSub {
	return s.Redis.Subscribe(s.Ctx, NotifyChannel)
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
