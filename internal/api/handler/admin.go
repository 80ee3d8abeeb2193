package handler

import (
	"net/http"

	"samadhan/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func userID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return "", false
	}
	return id, true
}

// ListUsers returns every account.
// GET /api/admin/users
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.Storage.ListUsers()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(users), "users": users})
}

// GetUser returns a single account.
// GET /api/admin/users/:id
func (h *Handler) GetUser(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	user, err := h.Storage.GetUserByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

// UpdateUser changes an account's role or activity flag.
// PUT /api/admin/users/:id
func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	var in struct {
		Role     *string `json:"role"`
		IsActive *bool   `json:"isActive"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	if in.Role != nil && *in.Role != models.RoleUser && *in.Role != models.RoleAdmin {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Role must be user or admin"})
		return
	}

	user, err := h.Storage.GetUserByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	if in.Role != nil {
		user.Role = *in.Role
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}

	if err := h.Storage.SaveUser(user); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": userPayload(user)})
}

// DeleteUser removes an account.
// DELETE /api/admin/users/:id
func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	user, err := h.Storage.GetUserByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}
	if err := h.Storage.DeleteUser(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User removed"})
}

// ComplaintReport returns every complaint for the admin dashboard.
// GET /api/admin/reports/complaints
func (h *Handler) ComplaintReport(c *gin.Context) {
	complaints, err := h.Storage.ListComplaints()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(complaints), "complaints": complaints})
}

// StatusCounts returns how many complaints sit in each status.
// GET /api/admin/stats/status-counts
func (h *Handler) StatusCounts(c *gin.Context) {
	counts, err := h.Storage.CountComplaintsByStatus()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "counts": counts})
}
