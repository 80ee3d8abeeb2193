package complaint

import (
	"sort"
	"strings"
	"time"

	"samadhan/backend/internal/models"
	"samadhan/backend/internal/storage"
)

// Service orchestrates the complaint store and the authorization policy,
// and emits lifecycle events for the notification bridge.
type Service struct {
	Storage storage.Storage
	Events  EventSink
}

// NewService creates a new lifecycle service. A nil sink disables events.
func NewService(s storage.Storage, sink EventSink) *Service {
	if sink == nil {
		sink = NopSink{}
	}
	return &Service{Storage: s, Events: sink}
}

// NewComplaint carries the submitter-supplied fields of a complaint.
type NewComplaint struct {
	Title       string
	Description string
	Category    string
	Priority    string
	Location    *models.Location
	Images      []string
}

// Patch carries a partial update. Nil fields are left untouched. Which
// fields actually apply depends on the actor's role: submitters may change
// content fields, admins the status fields. Fields outside the actor's
// authority are ignored, not rejected.
type Patch struct {
	Title       *string
	Description *string
	Category    *string
	Priority    *string

	Status                  *string
	EstimatedResolutionDate *time.Time
	ProofOfWork             []string
}

// Vote directions.
const (
	VoteLike    = "like"
	VoteDislike = "dislike"
)

// File validates and stores a new complaint for the actor and notifies
// the admin room.
func (s *Service) File(actor Actor, in NewComplaint) (*models.Complaint, error) {
	if err := validateNew(in); err != nil {
		return nil, err
	}

	c := &models.Complaint{
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Category:    in.Category,
		Priority:    in.Priority,
		Location:    in.Location,
		Images:      in.Images,
		UserID:      actor.ID,
		Status:      models.StatusPending,
	}
	if c.Priority == "" {
		c.Priority = models.PriorityMedium
	}
	if c.Location != nil && c.Location.Type == "" {
		c.Location.Type = "Point"
	}

	if err := s.Storage.CreateComplaint(c); err != nil {
		return nil, err
	}

	s.Events.ComplaintCreated(CreatedEvent{
		ComplaintID:   c.ID,
		Title:         c.Title,
		SubmitterID:   actor.ID,
		SubmitterName: s.submitterName(actor),
	})

	return c, nil
}

// Get returns a complaint the actor is allowed to view.
func (s *Service) Get(actor Actor, id string) (*models.Complaint, error) {
	c, err := s.Storage.GetComplaintByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrNotFound
	}
	if !CanView(actor, c) {
		return nil, ErrForbidden
	}
	return c, nil
}

// List returns all complaints for admins and only the actor's own
// complaints otherwise, newest first.
func (s *Service) List(actor Actor) ([]models.Complaint, error) {
	if actor.IsAdmin() {
		return s.Storage.ListComplaints()
	}
	return s.Storage.ListComplaintsByUser(actor.ID)
}

// ListMine always returns the actor's own complaints, newest first.
func (s *Service) ListMine(actor Actor) ([]models.Complaint, error) {
	return s.Storage.ListComplaintsByUser(actor.ID)
}

// ListGeneral returns every complaint for the public community feed,
// ranked by net score (likes minus dislikes) descending, ties broken by
// creation time descending. The re-sort happens in memory on every read,
// which is fine at this data volume.
func (s *Service) ListGeneral() ([]models.Complaint, error) {
	complaints, err := s.Storage.ListComplaints()
	if err != nil {
		return nil, err
	}

	sort.SliceStable(complaints, func(i, j int) bool {
		netI, netJ := complaints[i].NetScore(), complaints[j].NetScore()
		if netI != netJ {
			return netI > netJ
		}
		return complaints[i].CreatedAt.After(complaints[j].CreatedAt)
	})

	return complaints, nil
}

// Update applies the subset of the patch the actor is authorized for.
// A status change emits a StatusChanged event after the save commits.
func (s *Service) Update(actor Actor, id string, p Patch) (*models.Complaint, error) {
	c, err := s.Storage.GetComplaintByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrNotFound
	}

	originalStatus := c.Status

	switch {
	case CanEditStatusFields(actor):
		if err := validateStatusPatch(p); err != nil {
			return nil, err
		}
		applyStatusPatch(c, p)
	case CanEditContent(actor, c):
		if err := validateContentPatch(p); err != nil {
			return nil, err
		}
		applyContentPatch(c, p)
	default:
		return nil, ErrForbidden
	}

	if err := s.Storage.SaveComplaint(c); err != nil {
		return nil, err
	}

	if originalStatus != c.Status {
		s.Events.StatusChanged(StatusChangedEvent{
			ComplaintID: c.ID,
			Title:       c.Title,
			SubmitterID: c.UserID,
			NewStatus:   c.Status,
		})
	}

	return c, nil
}

// Delete removes a complaint. Admin-only.
func (s *Service) Delete(actor Actor, id string) error {
	if !CanDelete(actor) {
		return ErrForbidden
	}

	c, err := s.Storage.GetComplaintByID(id)
	if err != nil {
		return err
	}
	if c == nil {
		return ErrNotFound
	}

	return s.Storage.DeleteComplaint(id)
}

// Assign sets or clears the assigned handler. Admin-only; the target user
// must exist.
func (s *Service) Assign(actor Actor, id string, assignedUserID *string) (*models.Complaint, error) {
	if !CanAssign(actor) {
		return nil, ErrForbidden
	}

	c, err := s.Storage.GetComplaintByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrNotFound
	}

	if assignedUserID != nil {
		user, err := s.Storage.GetUserByID(*assignedUserID)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, ErrUserNotFound
		}
		c.AssignedUserID = assignedUserID
	} else {
		c.AssignedUserID = nil
	}

	if err := s.Storage.SaveComplaint(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Vote toggles the actor's like or dislike on a complaint and returns the
// updated counts. Voting the same direction twice removes the vote; voting
// the opposite direction moves it, so a user is never in both sets.
func (s *Service) Vote(actor Actor, id string, direction string) (likes, dislikes int, err error) {
	if !CanVote(actor) {
		return 0, 0, ErrForbidden
	}

	c, err := s.Storage.GetComplaintByID(id)
	if err != nil {
		return 0, 0, err
	}
	if c == nil {
		return 0, 0, ErrNotFound
	}

	switch direction {
	case VoteLike:
		if c.HasLike(actor.ID) {
			c.Likes = models.RemoveID(c.Likes, actor.ID)
		} else {
			c.Dislikes = models.RemoveID(c.Dislikes, actor.ID)
			c.Likes = append(c.Likes, actor.ID)
		}
	case VoteDislike:
		if c.HasDislike(actor.ID) {
			c.Dislikes = models.RemoveID(c.Dislikes, actor.ID)
		} else {
			c.Likes = models.RemoveID(c.Likes, actor.ID)
			c.Dislikes = append(c.Dislikes, actor.ID)
		}
	default:
		verr := &ValidationError{}
		return 0, 0, verr.add("direction", "Vote must be like or dislike")
	}

	if err := s.Storage.SaveComplaint(c); err != nil {
		return 0, 0, err
	}
	return len(c.Likes), len(c.Dislikes), nil
}

// AddFeedback upserts the submitter's feedback on a resolved or rejected
// complaint. Absent fields keep their previous values; the date is always
// refreshed.
func (s *Service) AddFeedback(actor Actor, id string, rating *int, comment *string) (*models.Complaint, error) {
	if err := validateFeedback(rating, comment); err != nil {
		return nil, err
	}

	c, err := s.Storage.GetComplaintByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrNotFound
	}

	if actor.ID != c.UserID {
		return nil, ErrForbidden
	}
	if c.Status != models.StatusResolved && c.Status != models.StatusRejected {
		verr := &ValidationError{}
		return nil, verr.add("status", "Feedback can only be added to resolved or rejected complaints")
	}

	fb := c.Feedback
	if fb == nil {
		fb = &models.Feedback{}
	}
	if rating != nil {
		fb.Rating = rating
	}
	if comment != nil {
		fb.Comment = *comment
	}
	now := time.Now()
	fb.Date = &now
	c.Feedback = fb

	if err := s.Storage.SaveComplaint(c); err != nil {
		return nil, err
	}

	s.Events.FeedbackAdded(FeedbackEvent{ComplaintID: c.ID, Title: c.Title})

	return c, nil
}

// AddComment appends a dated comment by the actor. Viewing rules apply:
// only admins and the submitter may comment.
func (s *Service) AddComment(actor Actor, id, text string) (*models.Complaint, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		verr := &ValidationError{}
		return nil, verr.add("text", "Text is required")
	}

	c, err := s.Storage.GetComplaintByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrNotFound
	}
	if !CanView(actor, c) {
		return nil, ErrForbidden
	}

	c.Comments = append(c.Comments, models.Comment{
		ComplaintID: c.ID,
		UserID:      actor.ID,
		Text:        text,
		Date:        time.Now(),
	})

	if err := s.Storage.SaveComplaint(c); err != nil {
		return nil, err
	}
	return c, nil
}

// applyStatusPatch merges the admin-editable fields. The allow-list is
// explicit so extending the Patch struct cannot silently widen admin
// authority over content fields.
func applyStatusPatch(c *models.Complaint, p Patch) {
	if p.Status != nil {
		c.Status = *p.Status
		// First entry into resolved stamps the resolution date; later
		// transitions never touch it again.
		if c.Status == models.StatusResolved && c.ResolutionDate == nil {
			now := time.Now()
			c.ResolutionDate = &now
		}
	}
	if p.EstimatedResolutionDate != nil {
		c.EstimatedResolutionDate = p.EstimatedResolutionDate
	}
	if len(p.ProofOfWork) > 0 {
		c.ProofOfWork = append(c.ProofOfWork, p.ProofOfWork...)
	}
}

// applyContentPatch merges the submitter-editable fields.
func applyContentPatch(c *models.Complaint, p Patch) {
	if p.Title != nil {
		c.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	if p.Category != nil {
		c.Category = *p.Category
	}
	if p.Priority != nil {
		c.Priority = *p.Priority
	}
}

// submitterName resolves the display name used in admin notifications.
// Falls back to the raw ID when the lookup fails; the notification is
// best-effort anyway.
func (s *Service) submitterName(actor Actor) string {
	user, err := s.Storage.GetUserByID(actor.ID)
	if err != nil || user == nil {
		return actor.ID
	}
	return user.Name
}
