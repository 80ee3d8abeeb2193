package handler

import (
	"errors"
	"net/http"
	"strings"

	"samadhan/backend/internal/complaint"
	"samadhan/backend/internal/models"

	"github.com/gin-gonic/gin"
	jwt "github.com/golang-jwt/jwt/v5"
)

const ctxActorKey = "actor"

// Protect verifies the Bearer token, loads the account and stores the
// acting principal in the request context. Deactivated accounts are
// rejected as if the token were invalid.
func (h *Handler) Protect() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authorization token missing"})
			return
		}

		user, err := h.userFromToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token or expired"})
			return
		}

		c.Set(ctxActorKey, complaint.Actor{ID: user.ID, Role: user.Role})
		c.Set("user", user)
		c.Next()
	}
}

// AdminOnly rejects non-admin actors. Must run after Protect.
func (h *Handler) AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !actor(c).IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Not authorized"})
			return
		}
		c.Next()
	}
}

// actor returns the authenticated principal placed by Protect.
func actor(c *gin.Context) complaint.Actor {
	v, _ := c.Get(ctxActorKey)
	a, _ := v.(complaint.Actor)
	return a
}

// currentUser returns the full account record placed by Protect.
func currentUser(c *gin.Context) *models.User {
	v, _ := c.Get("user")
	u, _ := v.(*models.User)
	return u
}

func bearerToken(header string) string {
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return header[7:]
	}
	return ""
}

// userFromToken validates the JWT and resolves it to an active account.
func (h *Handler) userFromToken(tokenString string) (*models.User, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return h.JWTSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	id, _ := claims["id"].(string)
	if id == "" {
		return nil, errors.New("token missing subject")
	}

	user, err := h.Storage.GetUserByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, errors.New("account unavailable")
	}
	return user, nil
}
