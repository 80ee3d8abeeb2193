package storage

import (
	"log"

	"samadhan/backend/internal/models"

	"gorm.io/gorm"
)

// CreateComplaint inserts a new complaint into PostgreSQL. The BeforeCreate
// hook fills the UUID.
func (s *Service) CreateComplaint(c *models.Complaint) error {
	if c.Status == "" {
		c.Status = models.StatusPending
	}
	if c.Priority == "" {
		c.Priority = models.PriorityMedium
	}

	if err := s.DB.Create(c).Error; err != nil {
		log.Printf("ERROR: Failed to create complaint %q: %v", c.Title, err)
		return err
	}
	return nil
}

// GetComplaintByID loads a complaint with its comments. Returns (nil, nil)
// when no such complaint exists.
func (s *Service) GetComplaintByID(id string) (*models.Complaint, error) {
	var c models.Complaint

	err := s.DB.Preload("Comments", func(db *gorm.DB) *gorm.DB {
		return db.Order("comments.date ASC")
	}).Where("id = ?", id).First(&c).Error

	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		log.Printf("ERROR: Failed to get complaint %s: %v", id, err)
		return nil, err
	}
	return &c, nil
}

// SaveComplaint persists the full complaint document (last write wins).
func (s *Service) SaveComplaint(c *models.Complaint) error {
	return s.DB.Save(c).Error
}

// DeleteComplaint removes a complaint and its comments.
func (s *Service) DeleteComplaint(id string) error {
	if err := s.DB.Where("complaint_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
		return err
	}
	return s.DB.Where("id = ?", id).Delete(&models.Complaint{}).Error
}

// ListComplaints returns every complaint, newest first.
func (s *Service) ListComplaints() ([]models.Complaint, error) {
	var complaints []models.Complaint
	if err := s.DB.Preload("Comments").Order("created_at DESC").Find(&complaints).Error; err != nil {
		log.Printf("ERROR: Failed to list complaints: %v", err)
		return nil, err
	}
	return complaints, nil
}

// ListComplaintsByUser returns the complaints submitted by one user,
// newest first.
func (s *Service) ListComplaintsByUser(userID string) ([]models.Complaint, error) {
	var complaints []models.Complaint
	if err := s.DB.Preload("Comments").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&complaints).Error; err != nil {
		log.Printf("ERROR: Failed to list complaints for user %s: %v", userID, err)
		return nil, err
	}
	return complaints, nil
}

// CountComplaintsByStatus groups complaints by status for the admin
// dashboard.
func (s *Service) CountComplaintsByStatus() (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row

	if err := s.DB.Model(&models.Complaint{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}

// CreateUser inserts a new user.
func (s *Service) CreateUser(user *models.User) error {
	return s.DB.Create(user).Error
}

// SaveUser persists user changes.
func (s *Service) SaveUser(user *models.User) error {
	return s.DB.Save(user).Error
}

// DeleteUser removes a user account.
func (s *Service) DeleteUser(id string) error {
	return s.DB.Where("id = ?", id).Delete(&models.User{}).Error
}

// GetUserByID returns (nil, nil) when no such user exists.
func (s *Service) GetUserByID(id string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("id = ?", id).First(&user).Error
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail returns (nil, nil) when no such user exists.
func (s *Service) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("email = ?", email).First(&user).Error
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsers returns every account, newest first.
func (s *Service) ListUsers() ([]models.User, error) {
	var users []models.User
	if err := s.DB.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
