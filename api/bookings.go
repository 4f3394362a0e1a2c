package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/jetcharter/internal/domain"
	"github.com/Domenick1991/jetcharter/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

// Register wires the client-facing booking routes. The availability check is
// public; everything else requires a logged-in user.
func (h *BookingHandler) Register(router *gin.RouterGroup, secret string) {
	router.GET("/availability", h.check)

	bookings := router.Group("/bookings")
	bookings.Use(RequireAuth(secret))
	bookings.POST("", h.create)
	bookings.GET("", h.listMine)
	bookings.GET("/:id", h.getMine)
	bookings.POST("/:id/cancel", h.cancelMine)
}

// RegisterAdmin wires the admin booking routes under /admin.
func (h *BookingHandler) RegisterAdmin(router *gin.RouterGroup) {
	router.GET("/bookings", h.adminList)
	router.PUT("/bookings/:id", h.adminUpdate)
}

type createBookingRequest struct {
	JetID       string `json:"jet_id" binding:"required"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	DepartureAt string `json:"departure_at" binding:"required"`
	ArrivalAt   string `json:"arrival_at" binding:"required"`
}

type updateBookingRequest struct {
	Status      *string `json:"status"`
	Notes       *string `json:"notes"`
	DepartureAt *string `json:"departure_at"`
	ArrivalAt   *string `json:"arrival_at"`
}

func (h *BookingHandler) check(c *gin.Context) {
	jetID := c.Query("jet_id")
	if jetID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "jet_id, from, to required"})
		return
	}
	from, err := parseRFC3339(c.Query("from"))
	if err != nil {
		respondInput(c, err)
		return
	}
	to, err := parseRFC3339(c.Query("to"))
	if err != nil {
		respondInput(c, err)
		return
	}

	availability, err := h.service.CheckAvailability(c.Request.Context(), jetID, from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, availability)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInput(c, err)
		return
	}
	from, err := parseRFC3339(req.DepartureAt)
	if err != nil {
		respondInput(c, err)
		return
	}
	to, err := parseRFC3339(req.ArrivalAt)
	if err != nil {
		respondInput(c, err)
		return
	}

	created, err := h.service.CreateBooking(c.Request.Context(), booking.CreateBookingInput{
		ClientID:    c.GetString(ctxUserID),
		JetID:       req.JetID,
		Origin:      req.Origin,
		Destination: req.Destination,
		DepartureAt: from,
		ArrivalAt:   to,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"booking": created})
}

func (h *BookingHandler) listMine(c *gin.Context) {
	items, err := h.service.ListByClient(c.Request.Context(), c.GetString(ctxUserID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *BookingHandler) getMine(c *gin.Context) {
	found, err := h.service.GetForClient(c.Request.Context(), c.Param("id"), c.GetString(ctxUserID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": found})
}

func (h *BookingHandler) cancelMine(c *gin.Context) {
	cancelled, err := h.service.CancelOwnBooking(c.Request.Context(), c.Param("id"), c.GetString(ctxUserID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": cancelled})
}

func (h *BookingHandler) adminList(c *gin.Context) {
	items, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *BookingHandler) adminUpdate(c *gin.Context) {
	var req updateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInput(c, err)
		return
	}

	patch := booking.UpdatePatch{Notes: req.Notes}
	if req.Status != nil {
		status := domain.BookingStatus(*req.Status)
		patch.Status = &status
	}
	if req.DepartureAt != nil {
		from, err := parseRFC3339(*req.DepartureAt)
		if err != nil {
			respondInput(c, err)
			return
		}
		patch.DepartureAt = &from
	}
	if req.ArrivalAt != nil {
		to, err := parseRFC3339(*req.ArrivalAt)
		if err != nil {
			respondInput(c, err)
			return
		}
		patch.ArrivalAt = &to
	}

	updated, err := h.service.UpdateBooking(c.Request.Context(), c.Param("id"), patch, c.GetString(ctxUserID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": updated})
}

func parseRFC3339(value string) (time.Time, error) {
	return time.Parse(time.RFC3339, value)
}
