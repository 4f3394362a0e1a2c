package api

import (
	"net/http"

	"github.com/Domenick1991/jetcharter/internal/service/stats"
	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	service stats.StatsUseCase
}

func NewAdminHandler(service stats.StatsUseCase) *AdminHandler {
	return &AdminHandler{service: service}
}

func (h *AdminHandler) Register(router *gin.RouterGroup) {
	router.GET("/stats", h.stats)
}

func (h *AdminHandler) stats(c *gin.Context) {
	dashboard, err := h.service.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}
