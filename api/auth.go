package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/jetcharter/internal/domain"
	"github.com/Domenick1991/jetcharter/internal/service/users"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	service       users.UserUseCase
	refreshCookie string
	refreshTTL    time.Duration
}

func NewAuthHandler(service users.UserUseCase, refreshCookie string, refreshTTL time.Duration) *AuthHandler {
	return &AuthHandler{service: service, refreshCookie: refreshCookie, refreshTTL: refreshTTL}
}

func (h *AuthHandler) Register(router *gin.RouterGroup, secret string) {
	router.POST("/register", h.register)
	router.POST("/login", h.login)
	router.POST("/refresh", h.refresh)
	router.POST("/logout", h.logout)
	router.GET("/me", RequireAuth(secret), h.me)
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type userResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: string(u.Role)}
}

func (h *AuthHandler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInput(c, err)
		return
	}

	user, tokens, err := h.service.Register(c.Request.Context(), users.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	h.setRefreshCookie(c, tokens.RefreshToken)
	c.JSON(http.StatusCreated, gin.H{"user": toUserResponse(user), "access_token": tokens.AccessToken})
}

func (h *AuthHandler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInput(c, err)
		return
	}

	user, tokens, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	h.setRefreshCookie(c, tokens.RefreshToken)
	c.JSON(http.StatusOK, gin.H{"user": toUserResponse(user), "access_token": tokens.AccessToken})
}

func (h *AuthHandler) refresh(c *gin.Context) {
	token, err := c.Cookie(h.refreshCookie)
	if err != nil || token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no refresh token"})
		return
	}

	access, err := h.service.Refresh(c.Request.Context(), token)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": access})
}

func (h *AuthHandler) logout(c *gin.Context) {
	c.SetCookie(h.refreshCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (h *AuthHandler) me(c *gin.Context) {
	user, err := h.service.GetByID(c.Request.Context(), c.GetString(ctxUserID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": toUserResponse(user)})
}

func (h *AuthHandler) setRefreshCookie(c *gin.Context, token string) {
	c.SetCookie(h.refreshCookie, token, int(h.refreshTTL.Seconds()), "/", "", false, true)
}
