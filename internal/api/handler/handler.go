// Package handler wires the HTTP and WebSocket surface to the complaint
// lifecycle service and the notification hub.
package handler

import (
	"errors"
	"log"
	"net/http"

	"samadhan/backend/internal/complaint"
	"samadhan/backend/internal/notifyhub"
	"samadhan/backend/internal/storage"

	"github.com/gin-gonic/gin"
)

// Handler holds the dependencies shared by all routes.
type Handler struct {
	Complaints *complaint.Service
	Storage    storage.Storage
	Hub        *notifyhub.ManagerService
	JWTSecret  []byte
}

func NewHandler(svc *complaint.Service, s storage.Storage, hub *notifyhub.ManagerService, jwtSecret []byte) *Handler {
	return &Handler{
		Complaints: svc,
		Storage:    s,
		Hub:        hub,
		JWTSecret:  jwtSecret,
	}
}

// RegisterRoutes attaches every route to the engine. Auth endpoints are
// public; everything else sits behind the Protect middleware.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.GET("/me", h.Protect(), h.Me)
	}

	complaints := api.Group("/complaints", h.Protect())
	{
		complaints.POST("", h.CreateComplaint)
		complaints.GET("", h.ListComplaints)
		complaints.GET("/mine", h.ListMyComplaints)
		complaints.GET("/:id", h.GetComplaint)
		complaints.PUT("/:id", h.UpdateComplaint)
		complaints.DELETE("/:id", h.DeleteComplaint)
		complaints.PUT("/:id/feedback", h.AddFeedback)
		complaints.POST("/:id/like", h.LikeComplaint)
		complaints.POST("/:id/dislike", h.DislikeComplaint)
		complaints.PUT("/:id/assign", h.AdminOnly(), h.AssignComplaint)
		complaints.POST("/:id/comments", h.AddComment)
	}

	api.GET("/general-complaints", h.Protect(), h.ListGeneralComplaints)

	admin := api.Group("/admin", h.Protect(), h.AdminOnly())
	{
		admin.GET("/users", h.ListUsers)
		admin.GET("/users/:id", h.GetUser)
		admin.PUT("/users/:id", h.UpdateUser)
		admin.DELETE("/users/:id", h.DeleteUser)
		admin.GET("/reports/complaints", h.ComplaintReport)
		admin.GET("/stats/status-counts", h.StatusCounts)
	}

	r.GET("/ws", h.ServeWebSocket)
}

// respondError maps the domain error taxonomy onto HTTP status codes.
// Unexpected errors are logged and reported without detail.
func respondError(c *gin.Context, err error) {
	var verr *complaint.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed", "errors": verr.Fields})
	case errors.Is(err, complaint.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Complaint not found"})
	case errors.Is(err, complaint.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Assigned user not found"})
	case errors.Is(err, complaint.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"message": "Not authorized"})
	default:
		log.Printf("ERROR: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
	}
}
