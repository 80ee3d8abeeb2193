package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Complaint categories. The enumeration is fixed; anything else is rejected
// at validation time.
const (
	CategoryStreetLight        = "street-light"
	CategoryWaterPipe          = "water-pipe"
	CategoryRainDrainage       = "rain-drainage"
	CategoryRoadReconstruction = "road-reconstruction"
	CategoryGarbageSystem      = "garbage-system"
	CategoryOther              = "other"
)

// Complaint priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Complaint lifecycle statuses. Resolved and rejected are soft-terminal:
// an admin may still move the status again afterwards.
const (
	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusResolved   = "resolved"
	StatusRejected   = "rejected"
)

// Content limits enforced on create and edit.
const (
	MaxTitleLen           = 100
	MaxDescriptionLen     = 1000
	MaxFeedbackCommentLen = 500
	MaxImages             = 5
)

// Location is an optional geographic point with a free-text address.
// Coordinates are [longitude, latitude], GeoJSON order.
type Location struct {
	Type        string          `json:"type,omitempty"`
	Coordinates pq.Float64Array `gorm:"type:float8[]" json:"coordinates,omitempty"`
	Address     string          `json:"address,omitempty"`
}

// Feedback is the submitter's one-shot rating of a resolved or rejected
// complaint. Re-submission overwrites it (upsert, never append).
type Feedback struct {
	Rating  *int       `json:"rating,omitempty"`
	Comment string     `json:"comment,omitempty"`
	Date    *time.Time `json:"date,omitempty"`
}

// Comment is a dated remark attached to a complaint.
type Comment struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	ComplaintID string    `gorm:"type:uuid;not null;index" json:"-"`
	UserID      string    `gorm:"not null" json:"userId"`
	Text        string    `gorm:"type:text;not null" json:"text"`
	Date        time.Time `json:"date"`
}

// Complaint is the central entity: a citizen-filed issue report tracked
// through a status lifecycle.
type Complaint struct {
	ID          string `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text;not null" json:"description"`
	Category    string `gorm:"not null" json:"category"`
	Priority    string `gorm:"default:medium" json:"priority"`
	Status      string `gorm:"default:pending;index" json:"status"`

	Location *Location `gorm:"embedded;embeddedPrefix:location_" json:"location,omitempty"`

	// Images holds citizen-uploaded photo references; ProofOfWork holds
	// staff-uploaded photos of the completed work.
	Images      pq.StringArray `gorm:"type:text[]" json:"images"`
	ProofOfWork pq.StringArray `gorm:"type:text[]" json:"proofOfWork"`

	// UserID is the submitter and is immutable after creation.
	UserID         string  `gorm:"type:uuid;not null;index" json:"userId"`
	AssignedUserID *string `gorm:"type:uuid" json:"assignedUser"`

	// Likes and Dislikes store voter user IDs. A user appears in at most
	// one of the two sets at any time.
	Likes    pq.StringArray `gorm:"type:text[]" json:"likes"`
	Dislikes pq.StringArray `gorm:"type:text[]" json:"dislikes"`

	Feedback *Feedback `gorm:"embedded;embeddedPrefix:feedback_" json:"feedback,omitempty"`

	// ResolutionDate is set the first time the status enters resolved and
	// never cleared or overwritten by later transitions.
	ResolutionDate          *time.Time `json:"resolutionDate"`
	EstimatedResolutionDate *time.Time `json:"estimatedResolutionDate,omitempty"`

	Comments []Comment `gorm:"foreignKey:ComplaintID" json:"comments"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate is a GORM hook that generates a UUID for the complaint
// if the ID has not been set yet.
func (c *Complaint) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}

// NetScore is the community ranking key: likes minus dislikes.
func (c *Complaint) NetScore() int {
	return len(c.Likes) - len(c.Dislikes)
}

// HasLike reports whether the given user currently likes the complaint.
func (c *Complaint) HasLike(userID string) bool {
	return containsID(c.Likes, userID)
}

// HasDislike reports whether the given user currently dislikes the complaint.
func (c *Complaint) HasDislike(userID string) bool {
	return containsID(c.Dislikes, userID)
}

// ValidCategory reports whether s is one of the six known categories.
func ValidCategory(s string) bool {
	switch s {
	case CategoryStreetLight, CategoryWaterPipe, CategoryRainDrainage,
		CategoryRoadReconstruction, CategoryGarbageSystem, CategoryOther:
		return true
	}
	return false
}

// ValidPriority reports whether s is one of low, medium, high.
func ValidPriority(s string) bool {
	switch s {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// ValidStatus reports whether s is one of the four lifecycle statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusResolved, StatusRejected:
		return true
	}
	return false
}

func containsID(set pq.StringArray, id string) bool {
	for _, v := range set {
		if v == id {
			return true
		}
	}
	return false
}

// RemoveID returns set without id. The original order is preserved.
func RemoveID(set pq.StringArray, id string) pq.StringArray {
	out := make(pq.StringArray, 0, len(set))
	for _, v := range set {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
