package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/jetcharter/internal/auth"
	"github.com/Domenick1991/jetcharter/internal/domain"
	"github.com/gin-gonic/gin"
)

const (
	ctxUserID = "uid"
	ctxRole   = "role"
	ctxEmail  = "email"
	ctxName   = "name"
)

// RequireAuth validates the bearer token and stashes the caller's identity
// in the gin context.
func RequireAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := auth.ParseAuthHeader(c.GetHeader("Authorization"), secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxRole, claims.Role)
		c.Set(ctxEmail, claims.Email)
		c.Set(ctxName, claims.Name)
		c.Next()
	}
}

func RequireRole(role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ctxRole) != string(role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

// respondError maps the domain error taxonomy onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrJetNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrBookingNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrJetHeld),
		errors.Is(err, domain.ErrEmailTaken):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrInvalidRange),
		errors.Is(err, domain.ErrInvalidState),
		errors.Is(err, domain.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// respondInput is for request parsing and validation failures.
func respondInput(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
