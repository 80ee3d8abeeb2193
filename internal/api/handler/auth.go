package handler

import (
	"net/http"
	"strings"
	"time"

	"samadhan/backend/internal/config"
	"samadhan/backend/internal/models"

	"github.com/gin-gonic/gin"
	jwt "github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// generateToken issues a signed JWT carrying the account id and role.
func (h *Handler) generateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"id":   user.ID,
		"role": user.Role,
		"exp":  time.Now().Add(config.TokenTTL).Unix(),
		"iss":  "samadhan-service",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(h.JWTSecret)
}

func userPayload(user *models.User) gin.H {
	return gin.H{
		"id":       user.ID,
		"name":     user.Name,
		"email":    user.Email,
		"role":     user.Role,
		"phone":    user.Phone,
		"avatar":   user.Avatar,
		"isActive": user.IsActive,
	}
}

// Register creates an account and returns a token.
// POST /api/auth/register
func (h *Handler) Register(c *gin.Context) {
	var in struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
		Phone    string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Name == "" || !strings.Contains(in.Email, "@") || len(in.Password) < 6 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Name, a valid email and a password of at least 6 characters are required"})
		return
	}
	if in.Role == "" {
		in.Role = models.RoleUser
	}
	if in.Role != models.RoleUser && in.Role != models.RoleAdmin {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Role must be user or admin"})
		return
	}

	existing, err := h.Storage.GetUserByEmail(in.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	if existing != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "User already exists"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, err)
		return
	}

	user := &models.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: string(hash),
		Role:     in.Role,
		Phone:    in.Phone,
		IsActive: true,
	}
	if err := h.Storage.CreateUser(user); err != nil {
		respondError(c, err)
		return
	}

	token, err := h.generateToken(user)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "token": token, "user": userPayload(user)})
}

// Login verifies credentials and returns a token.
// POST /api/auth/login
func (h *Handler) Login(c *gin.Context) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	user, err := h.Storage.GetUserByEmail(strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		respondError(c, err)
		return
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)) != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid credentials"})
		return
	}
	if !user.IsActive {
		c.JSON(http.StatusForbidden, gin.H{"message": "Account is deactivated"})
		return
	}

	token, err := h.generateToken(user)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "token": token, "user": userPayload(user)})
}

// Me returns the authenticated account.
// GET /api/auth/me
func (h *Handler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "user": userPayload(currentUser(c))})
}
