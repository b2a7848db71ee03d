package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dieg0espx/spanish-horizons-api/internal/domain"
	"github.com/dieg0espx/spanish-horizons-api/internal/service/slots"
	"github.com/gin-gonic/gin"
)

type SlotHandler struct {
	service slots.SlotUseCase
}

type slotResponse struct {
	ID            int64  `json:"id"`
	Date          string `json:"date"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	Booked        bool   `json:"booked"`
	ApplicationID *int64 `json:"application_id,omitempty"`
	ChildName     string `json:"child_name,omitempty"`
}

func NewSlotHandler(service slots.SlotUseCase) *SlotHandler {
	return &SlotHandler{service: service}
}

func (h *SlotHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.POST("", h.create)
	router.DELETE("/:id", h.delete)
}

func (h *SlotHandler) list(c *gin.Context) {
	listing, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]slotResponse, 0, len(listing))
	for _, s := range listing {
		out = append(out, slotResponse{
			ID:            s.ID,
			Date:          s.Date.Format("2006-01-02"),
			StartTime:     s.StartTime,
			EndTime:       s.EndTime,
			Booked:        s.Booked,
			ApplicationID: s.ApplicationID,
			ChildName:     s.ChildName,
		})
	}
	c.JSON(http.StatusOK, out)
}

func (h *SlotHandler) create(c *gin.Context) {
	var req slots.CreateSlotInput
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, domain.NewValidationError("body", "invalid JSON"))
		return
	}

	slot, err := h.service.Create(c.Request.Context(), req, identityFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, slotResponse{
		ID:        slot.ID,
		Date:      slot.Date.Format("2006-01-02"),
		StartTime: slot.StartTime,
		EndTime:   slot.EndTime,
		Booked:    slot.Booked,
	})
}

func (h *SlotHandler) delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		writeError(c, domain.NewValidationError("id", "must be an integer"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, identityFrom(c)); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": id, "at": time.Now().UTC().Format(time.RFC3339)})
}
