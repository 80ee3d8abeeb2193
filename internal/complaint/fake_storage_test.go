package complaint_test

import (
	"sort"
	"time"

	"samadhan/backend/internal/models"

	"github.com/google/uuid"
)

// fakeStorage is an in-memory Storage used by the service tests. Reads
// hand out copies so the service's read-modify-write cycle behaves like
// it does against the real database.
type fakeStorage struct {
	complaints map[string]*models.Complaint
	users      map[string]*models.User
	published  []models.RoomNotification
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		complaints: make(map[string]*models.Complaint),
		users:      make(map[string]*models.User),
	}
}

func (f *fakeStorage) CreateComplaint(c *models.Complaint) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	if c.Status == "" {
		c.Status = models.StatusPending
	}
	if c.Priority == "" {
		c.Priority = models.PriorityMedium
	}
	cp := *c
	f.complaints[c.ID] = &cp
	return nil
}

func (f *fakeStorage) GetComplaintByID(id string) (*models.Complaint, error) {
	c, ok := f.complaints[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (f *fakeStorage) SaveComplaint(c *models.Complaint) error {
	cp := *c
	f.complaints[c.ID] = &cp
	return nil
}

func (f *fakeStorage) DeleteComplaint(id string) error {
	delete(f.complaints, id)
	return nil
}

func (f *fakeStorage) ListComplaints() ([]models.Complaint, error) {
	out := make([]models.Complaint, 0, len(f.complaints))
	for _, c := range f.complaints {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (f *fakeStorage) ListComplaintsByUser(userID string) ([]models.Complaint, error) {
	all, _ := f.ListComplaints()
	out := make([]models.Complaint, 0, len(all))
	for _, c := range all {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeStorage) CountComplaintsByStatus() (map[string]int64, error) {
	counts := make(map[string]int64)
	for _, c := range f.complaints {
		counts[c.Status]++
	}
	return counts, nil
}

func (f *fakeStorage) CreateUser(user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeStorage) SaveUser(user *models.User) error {
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeStorage) DeleteUser(id string) error {
	delete(f.users, id)
	return nil
}

func (f *fakeStorage) GetUserByID(id string) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeStorage) GetUserByEmail(email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeStorage) ListUsers() ([]models.User, error) {
	out := make([]models.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeStorage) PublishNotification(room string, n models.Notification) error {
	f.published = append(f.published, models.RoomNotification{Room: room, Notification: n})
	return nil
}
