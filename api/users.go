package api

import (
	"net/http"

	"github.com/Domenick1991/jetcharter/internal/service/users"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	service users.UserUseCase
}

func NewUserHandler(service users.UserUseCase) *UserHandler {
	return &UserHandler{service: service}
}

// Register wires the profile routes; the group must already require auth.
func (h *UserHandler) Register(router *gin.RouterGroup) {
	router.GET("/me", h.getMe)
	router.PUT("/me", h.updateMe)
	router.PUT("/me/password", h.changePassword)
}

type updateProfileRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

func (h *UserHandler) getMe(c *gin.Context) {
	user, err := h.service.GetByID(c.Request.Context(), c.GetString(ctxUserID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *UserHandler) updateMe(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInput(c, err)
		return
	}

	user, err := h.service.UpdateProfile(c.Request.Context(), c.GetString(ctxUserID), req.Name, req.Phone)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *UserHandler) changePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInput(c, err)
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), c.GetString(ctxUserID), req.CurrentPassword, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}
