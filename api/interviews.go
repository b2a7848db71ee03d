package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dieg0espx/spanish-horizons-api/internal/domain"
	"github.com/dieg0espx/spanish-horizons-api/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type InterviewHandler struct {
	service booking.BookingUseCase
}

type bookInterviewRequest struct {
	SlotID int64 `json:"slot_id"`
}

type applicationResponse struct {
	ID            int64  `json:"id"`
	ChildName     string `json:"child_name"`
	Status        string `json:"status"`
	InterviewDate string `json:"interview_date,omitempty"`
}

type bookInterviewResponse struct {
	Application applicationResponse `json:"application"`
	Slot        slotResponse        `json:"slot"`
	InterviewAt string              `json:"interview_at"`
}

func NewInterviewHandler(service booking.BookingUseCase) *InterviewHandler {
	return &InterviewHandler{service: service}
}

func (h *InterviewHandler) Register(router *gin.RouterGroup) {
	router.POST("/:id/interview", h.book)
	router.DELETE("/:id/interview", h.cancel)
	router.POST("/:id/withdraw", h.withdraw)
}

func (h *InterviewHandler) book(c *gin.Context) {
	appID, ok := applicationID(c)
	if !ok {
		return
	}

	var req bookInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.SlotID == 0 {
		writeError(c, domain.NewValidationError("slot_id", "is required"))
		return
	}

	app, slot, err := h.service.BookInterview(c.Request.Context(), appID, req.SlotID, identityFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, bookInterviewResponse{
		Application: toApplicationResponse(app),
		Slot: slotResponse{
			ID:            slot.ID,
			Date:          slot.Date.Format("2006-01-02"),
			StartTime:     slot.StartTime,
			EndTime:       slot.EndTime,
			Booked:        slot.Booked,
			ApplicationID: slot.ApplicationID,
		},
		InterviewAt: formatInterviewDate(app),
	})
}

func (h *InterviewHandler) cancel(c *gin.Context) {
	appID, ok := applicationID(c)
	if !ok {
		return
	}

	app, err := h.service.CancelInterview(c.Request.Context(), appID, identityFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toApplicationResponse(app))
}

func (h *InterviewHandler) withdraw(c *gin.Context) {
	appID, ok := applicationID(c)
	if !ok {
		return
	}

	app, err := h.service.WithdrawApplication(c.Request.Context(), appID, identityFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toApplicationResponse(app))
}

func applicationID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		writeError(c, domain.NewValidationError("id", "must be an integer"))
		return 0, false
	}
	return id, true
}

func toApplicationResponse(app *domain.Application) applicationResponse {
	return applicationResponse{
		ID:            app.ID,
		ChildName:     app.ChildName,
		Status:        string(app.Status),
		InterviewDate: formatInterviewDate(app),
	}
}

func formatInterviewDate(app *domain.Application) string {
	if app.InterviewDate == nil {
		return ""
	}
	return app.InterviewDate.Format(time.RFC3339)
}
