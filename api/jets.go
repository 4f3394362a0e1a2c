package api

import (
	"math"
	"net/http"
	"strconv"

	"github.com/Domenick1991/jetcharter/internal/domain"
	"github.com/Domenick1991/jetcharter/internal/service/jets"
	"github.com/gin-gonic/gin"
)

type JetHandler struct {
	service jets.JetUseCase
}

func NewJetHandler(service jets.JetUseCase) *JetHandler {
	return &JetHandler{service: service}
}

func (h *JetHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.GET("/:id", h.get)
}

func (h *JetHandler) RegisterAdmin(router *gin.RouterGroup) {
	router.GET("/jets", h.adminList)
	router.POST("/jets", h.create)
	router.PUT("/jets/:id", h.update)
	router.DELETE("/jets/:id", h.remove)
}

type jetRequest struct {
	Name         string   `json:"name"`
	Manufacturer string   `json:"manufacturer"`
	Category     string   `json:"category"`
	Seats        int      `json:"seats"`
	RangeNM      int      `json:"range_nm"`
	SpeedKts     int      `json:"speed_kts"`
	HourlyRate   float64  `json:"hourly_rate"`
	BaseAirport  string   `json:"base_airport"`
	Amenities    []string `json:"amenities"`
	Images       []string `json:"images"`
	Description  string   `json:"description"`
	IsAvailable  *bool    `json:"is_available"`
	IsActive     *bool    `json:"is_active"`
}

func (r jetRequest) toDomain(id string) *domain.Jet {
	jet := &domain.Jet{
		ID:           id,
		Name:         r.Name,
		Manufacturer: r.Manufacturer,
		Category:     domain.JetCategory(r.Category),
		Seats:        r.Seats,
		RangeNM:      r.RangeNM,
		SpeedKts:     r.SpeedKts,
		HourlyRate:   r.HourlyRate,
		BaseAirport:  r.BaseAirport,
		Amenities:    r.Amenities,
		Images:       r.Images,
		Description:  r.Description,
		IsAvailable:  true,
		IsActive:     true,
	}
	if r.IsAvailable != nil {
		jet.IsAvailable = *r.IsAvailable
	}
	if r.IsActive != nil {
		jet.IsActive = *r.IsActive
	}
	return jet
}

func (h *JetHandler) list(c *gin.Context) {
	filter := domain.JetFilter{
		Query:         c.Query("q"),
		Category:      domain.JetCategory(c.Query("category")),
		SeatsMin:      queryInt(c, "seats_min"),
		SeatsMax:      queryInt(c, "seats_max"),
		RateMin:       queryFloat(c, "rate_min"),
		RateMax:       queryFloat(c, "rate_max"),
		OnlyAvailable: c.Query("only_available") == "true",
		Page:          queryInt(c, "page"),
		Limit:         queryInt(c, "limit"),
	}

	items, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse(items, total, filter.Page, filter.Limit, 12))
}

func (h *JetHandler) get(c *gin.Context) {
	jet, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jet": jet})
}

func (h *JetHandler) adminList(c *gin.Context) {
	page, limit := queryInt(c, "page"), queryInt(c, "limit")
	items, total, err := h.service.ListAll(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse(items, total, page, limit, 20))
}

func (h *JetHandler) create(c *gin.Context) {
	var req jetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInput(c, err)
		return
	}

	jet, err := h.service.Create(c.Request.Context(), req.toDomain(""))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"jet": jet})
}

func (h *JetHandler) update(c *gin.Context) {
	var req jetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInput(c, err)
		return
	}

	jet, err := h.service.Update(c.Request.Context(), req.toDomain(c.Param("id")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jet": jet})
}

func (h *JetHandler) remove(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

func listResponse(items []domain.Jet, total int64, page, limit, defaultLimit int) gin.H {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	pages := int64(math.Ceil(float64(total) / float64(limit)))
	return gin.H{"items": items, "page": page, "pages": pages, "total": total}
}

func queryInt(c *gin.Context, key string) int {
	n, _ := strconv.Atoi(c.Query(key))
	return n
}

func queryFloat(c *gin.Context, key string) float64 {
	f, _ := strconv.ParseFloat(c.Query(key), 64)
	return f
}
