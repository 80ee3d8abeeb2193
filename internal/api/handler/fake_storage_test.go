package handler

import (
	"sort"

	"samadhan/backend/internal/models"

	"github.com/google/uuid"
)

// memStorage is an in-memory Storage used by the route tests.
type memStorage struct {
	users      map[string]*models.User
	complaints map[string]*models.Complaint
	published  []models.RoomNotification
}

func newMemStorage() *memStorage {
	return &memStorage{
		users:      make(map[string]*models.User),
		complaints: make(map[string]*models.Complaint),
	}
}

func (s *memStorage) CreateComplaint(c *models.Complaint) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	cp := *c
	s.complaints[c.ID] = &cp
	return nil
}

func (s *memStorage) GetComplaintByID(id string) (*models.Complaint, error) {
	c, ok := s.complaints[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (s *memStorage) SaveComplaint(c *models.Complaint) error {
	cp := *c
	s.complaints[c.ID] = &cp
	return nil
}

func (s *memStorage) DeleteComplaint(id string) error {
	delete(s.complaints, id)
	return nil
}

func (s *memStorage) ListComplaints() ([]models.Complaint, error) {
	out := make([]models.Complaint, 0, len(s.complaints))
	for _, c := range s.complaints {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *memStorage) ListComplaintsByUser(userID string) ([]models.Complaint, error) {
	var out []models.Complaint
	for _, c := range s.complaints {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *memStorage) CountComplaintsByStatus() (map[string]int64, error) {
	counts := make(map[string]int64)
	for _, c := range s.complaints {
		counts[c.Status]++
	}
	return counts, nil
}

func (s *memStorage) CreateUser(u *models.User) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *memStorage) SaveUser(u *models.User) error {
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *memStorage) DeleteUser(id string) error {
	delete(s.users, id)
	return nil
}

func (s *memStorage) GetUserByID(id string) (*models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (s *memStorage) GetUserByEmail(email string) (*models.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *memStorage) ListUsers() ([]models.User, error) {
	out := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, *u)
	}
	return out, nil
}

func (s *memStorage) PublishNotification(room string, n models.Notification) error {
	s.published = append(s.published, models.RoomNotification{Room: room, Notification: n})
	return nil
}
