package handler

import (
	"net/http"
	"time"

	"samadhan/backend/internal/complaint"
	"samadhan/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// complaintID extracts and checks the :id path parameter. A malformed id
// is indistinguishable from a missing complaint, so it reports not found.
func complaintID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Complaint not found"})
		return "", false
	}
	return id, true
}

// CreateComplaint files a new complaint for the authenticated user.
// POST /api/complaints
func (h *Handler) CreateComplaint(c *gin.Context) {
	var in struct {
		Title       string           `json:"title"`
		Description string           `json:"description"`
		Category    string           `json:"category"`
		Priority    string           `json:"priority"`
		Location    *models.Location `json:"location"`
		Images      []string         `json:"images"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	created, err := h.Complaints.File(actor(c), complaint.NewComplaint{
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Priority:    in.Priority,
		Location:    in.Location,
		Images:      in.Images,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "complaint": created})
}

// ListComplaints returns all complaints for admins, the caller's own
// otherwise.
// GET /api/complaints
func (h *Handler) ListComplaints(c *gin.Context) {
	complaints, err := h.Complaints.List(actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(complaints), "complaints": complaints})
}

// ListMyComplaints always returns the caller's own complaints.
// GET /api/complaints/mine
func (h *Handler) ListMyComplaints(c *gin.Context) {
	complaints, err := h.Complaints.ListMine(actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(complaints), "complaints": complaints})
}

// ListGeneralComplaints returns the community feed ranked by net votes.
// GET /api/general-complaints
func (h *Handler) ListGeneralComplaints(c *gin.Context) {
	complaints, err := h.Complaints.ListGeneral()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(complaints), "complaints": complaints})
}

// GetComplaint returns one complaint if the caller may view it.
// GET /api/complaints/:id
func (h *Handler) GetComplaint(c *gin.Context) {
	id, ok := complaintID(c)
	if !ok {
		return
	}
	found, err := h.Complaints.Get(actor(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "complaint": found})
}

// UpdateComplaint applies a partial update. Submitters may change content
// fields while the complaint is open; admins change status, the estimate
// and proof-of-work images. Fields outside the caller's authority are
// ignored.
// PUT /api/complaints/:id
func (h *Handler) UpdateComplaint(c *gin.Context) {
	id, ok := complaintID(c)
	if !ok {
		return
	}

	var in struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Category    *string `json:"category"`
		Priority    *string `json:"priority"`

		Status                  *string    `json:"status"`
		EstimatedResolutionDate *time.Time `json:"estimatedResolutionDate"`
		ProofOfWork             []string   `json:"proofOfWork"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	updated, err := h.Complaints.Update(actor(c), id, complaint.Patch{
		Title:                   in.Title,
		Description:             in.Description,
		Category:                in.Category,
		Priority:                in.Priority,
		Status:                  in.Status,
		EstimatedResolutionDate: in.EstimatedResolutionDate,
		ProofOfWork:             in.ProofOfWork,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "complaint": updated})
}

// DeleteComplaint removes a complaint. Admin-only policy.
// DELETE /api/complaints/:id
func (h *Handler) DeleteComplaint(c *gin.Context) {
	id, ok := complaintID(c)
	if !ok {
		return
	}
	if err := h.Complaints.Delete(actor(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Complaint deleted successfully"})
}

// AddFeedback upserts the submitter's rating of the outcome.
// PUT /api/complaints/:id/feedback
func (h *Handler) AddFeedback(c *gin.Context) {
	id, ok := complaintID(c)
	if !ok {
		return
	}

	var in struct {
		Rating  *int    `json:"rating"`
		Comment *string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	updated, err := h.Complaints.AddFeedback(actor(c), id, in.Rating, in.Comment)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Feedback added successfully", "complaint": updated})
}

// LikeComplaint toggles the caller's like.
// POST /api/complaints/:id/like
func (h *Handler) LikeComplaint(c *gin.Context) {
	h.vote(c, complaint.VoteLike, "Like updated")
}

// DislikeComplaint toggles the caller's dislike.
// POST /api/complaints/:id/dislike
func (h *Handler) DislikeComplaint(c *gin.Context) {
	h.vote(c, complaint.VoteDislike, "Dislike updated")
}

func (h *Handler) vote(c *gin.Context, direction, message string) {
	id, ok := complaintID(c)
	if !ok {
		return
	}
	likes, dislikes, err := h.Complaints.Vote(actor(c), id, direction)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  message,
		"likes":    likes,
		"dislikes": dislikes,
	})
}

// AssignComplaint sets or clears the assigned handler.
// PUT /api/complaints/:id/assign
func (h *Handler) AssignComplaint(c *gin.Context) {
	id, ok := complaintID(c)
	if !ok {
		return
	}

	var in struct {
		AssignedUserID *string `json:"assignedUserId"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	updated, err := h.Complaints.Assign(actor(c), id, in.AssignedUserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "complaint": updated})
}

// AddComment appends a comment to a complaint the caller may view.
// POST /api/complaints/:id/comments
func (h *Handler) AddComment(c *gin.Context) {
	id, ok := complaintID(c)
	if !ok {
		return
	}

	var in struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	updated, err := h.Complaints.AddComment(actor(c), id, in.Text)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "complaint": updated})
}
