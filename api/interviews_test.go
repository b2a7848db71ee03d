package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dieg0espx/spanish-horizons-api/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockBookingUseCase is a mock implementation of booking.BookingUseCase
type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) BookInterview(ctx context.Context, applicationID, slotID int64, identity string) (*domain.Application, *domain.InterviewSlot, error) {
	args := m.Called(ctx, applicationID, slotID, identity)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Application), args.Get(1).(*domain.InterviewSlot), args.Error(2)
}

func (m *MockBookingUseCase) CancelInterview(ctx context.Context, applicationID int64, identity string) (*domain.Application, error) {
	args := m.Called(ctx, applicationID, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}

func (m *MockBookingUseCase) WithdrawApplication(ctx context.Context, applicationID int64, identity string) (*domain.Application, error) {
	args := m.Called(ctx, applicationID, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}

func TestInterviewHandler_book(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewInterviewHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(bookInterviewRequest{SlotID: 3})
	c.Request = httptest.NewRequest("POST", "/api/applications/7/interview", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: "7"}}
	c.Set(identityKey, "marta@example.com")

	interviewAt := time.Date(2025, 9, 2, 9, 0, 0, 0, time.UTC)
	appID := int64(7)
	app := &domain.Application{
		ID:            7,
		ChildName:     "Lucia",
		Status:        domain.StatusInterviewScheduled,
		InterviewDate: &interviewAt,
	}
	slot := &domain.InterviewSlot{
		ID:            3,
		Date:          time.Date(2025, 9, 2, 0, 0, 0, 0, time.UTC),
		StartTime:     "09:00",
		EndTime:       "09:30",
		Booked:        true,
		ApplicationID: &appID,
	}

	mockService.On("BookInterview", c.Request.Context(), int64(7), int64(3), "marta@example.com").Return(app, slot, nil)

	handler.book(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response bookInterviewResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, string(domain.StatusInterviewScheduled), response.Application.Status)
	assert.Equal(t, "2025-09-02T09:00:00Z", response.InterviewAt)
	assert.True(t, response.Slot.Booked)

	mockService.AssertExpectations(t)
}

func TestInterviewHandler_book_MissingSlotID(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewInterviewHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest("POST", "/api/applications/7/interview", bytes.NewReader([]byte(`{}`)))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: "7"}}
	c.Set(identityKey, "marta@example.com")

	handler.book(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "validation")
	mockService.AssertNotCalled(t, "BookInterview", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestInterviewHandler_book_SlotUnavailable(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewInterviewHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(bookInterviewRequest{SlotID: 3})
	c.Request = httptest.NewRequest("POST", "/api/applications/7/interview", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: "7"}}
	c.Set(identityKey, "marta@example.com")

	mockService.On("BookInterview", c.Request.Context(), int64(7), int64(3), "marta@example.com").
		Return(nil, nil, domain.ErrSlotUnavailable)

	handler.book(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "slot-unavailable")
}

func TestInterviewHandler_cancel(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewInterviewHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest("DELETE", "/api/applications/7/interview", nil)
	c.Params = gin.Params{{Key: "id", Value: "7"}}
	c.Set(identityKey, "marta@example.com")

	app := &domain.Application{
		ID:        7,
		ChildName: "Lucia",
		Status:    domain.StatusInterviewPending,
	}

	mockService.On("CancelInterview", c.Request.Context(), int64(7), "marta@example.com").Return(app, nil)

	handler.cancel(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response applicationResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, string(domain.StatusInterviewPending), response.Status)
	assert.Empty(t, response.InterviewDate)

	mockService.AssertExpectations(t)
}

func TestInterviewHandler_withdraw_NotOwned(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewInterviewHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest("POST", "/api/applications/7/withdraw", nil)
	c.Params = gin.Params{{Key: "id", Value: "7"}}
	c.Set(identityKey, "intruder@example.com")

	mockService.On("WithdrawApplication", c.Request.Context(), int64(7), "intruder@example.com").
		Return(nil, domain.ErrNotFound)

	handler.withdraw(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "not-found")
}

func TestInterviewHandler_withdraw_TerminalState(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewInterviewHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest("POST", "/api/applications/7/withdraw", nil)
	c.Params = gin.Params{{Key: "id", Value: "7"}}
	c.Set(identityKey, "marta@example.com")

	mockService.On("WithdrawApplication", c.Request.Context(), int64(7), "marta@example.com").
		Return(nil, domain.ErrInvalidState)

	handler.withdraw(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "invalid-state")
}
