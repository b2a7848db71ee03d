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
	"github.com/dieg0espx/spanish-horizons-api/internal/service/slots"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockSlotUseCase is a mock implementation of slots.SlotUseCase
type MockSlotUseCase struct {
	mock.Mock
}

func (m *MockSlotUseCase) List(ctx context.Context) ([]domain.SlotListing, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.SlotListing), args.Error(1)
}

func (m *MockSlotUseCase) Create(ctx context.Context, input slots.CreateSlotInput, identity string) (*domain.InterviewSlot, error) {
	args := m.Called(ctx, input, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InterviewSlot), args.Error(1)
}

func (m *MockSlotUseCase) Delete(ctx context.Context, slotID int64, identity string) error {
	args := m.Called(ctx, slotID, identity)
	return args.Error(0)
}

func TestSlotHandler_list(t *testing.T) {
	mockService := &MockSlotUseCase{}
	handler := NewSlotHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest("GET", "/api/slots", nil)
	c.Set(identityKey, "marta@example.com")

	appID := int64(7)
	listing := []domain.SlotListing{
		{
			InterviewSlot: domain.InterviewSlot{
				ID:        1,
				Date:      time.Date(2025, 9, 2, 0, 0, 0, 0, time.UTC),
				StartTime: "09:00",
				EndTime:   "09:30",
			},
		},
		{
			InterviewSlot: domain.InterviewSlot{
				ID:            2,
				Date:          time.Date(2025, 9, 2, 0, 0, 0, 0, time.UTC),
				StartTime:     "09:30",
				EndTime:       "10:00",
				Booked:        true,
				ApplicationID: &appID,
			},
			ChildName: "Lucia",
		},
	}

	mockService.On("List", c.Request.Context()).Return(listing, nil)

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response []slotResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Len(t, response, 2)
	assert.Equal(t, "2025-09-02", response[0].Date)
	assert.Empty(t, response[0].ChildName)
	assert.True(t, response[1].Booked)
	assert.Equal(t, "Lucia", response[1].ChildName)

	mockService.AssertExpectations(t)
}

func TestSlotHandler_create(t *testing.T) {
	mockService := &MockSlotUseCase{}
	handler := NewSlotHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	input := slots.CreateSlotInput{Date: "2025-09-02", StartTime: "09:00", EndTime: "09:30"}
	body, _ := json.Marshal(input)
	c.Request = httptest.NewRequest("POST", "/api/slots", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(identityKey, "admissions@spanishhorizons.org")

	slot := &domain.InterviewSlot{
		ID:        1,
		Date:      time.Date(2025, 9, 2, 0, 0, 0, 0, time.UTC),
		StartTime: "09:00",
		EndTime:   "09:30",
		CreatedBy: "admissions@spanishhorizons.org",
	}

	mockService.On("Create", c.Request.Context(), input, "admissions@spanishhorizons.org").Return(slot, nil)

	handler.create(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response slotResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), response.ID)
	assert.False(t, response.Booked)

	mockService.AssertExpectations(t)
}

func TestSlotHandler_create_Forbidden(t *testing.T) {
	mockService := &MockSlotUseCase{}
	handler := NewSlotHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	input := slots.CreateSlotInput{Date: "2025-09-02", StartTime: "09:00", EndTime: "09:30"}
	body, _ := json.Marshal(input)
	c.Request = httptest.NewRequest("POST", "/api/slots", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(identityKey, "marta@example.com")

	mockService.On("Create", c.Request.Context(), input, "marta@example.com").Return(nil, domain.ErrForbidden)

	handler.create(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "forbidden")
}

func TestSlotHandler_create_Validation(t *testing.T) {
	mockService := &MockSlotUseCase{}
	handler := NewSlotHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	input := slots.CreateSlotInput{Date: "2025-09-02"}
	body, _ := json.Marshal(input)
	c.Request = httptest.NewRequest("POST", "/api/slots", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(identityKey, "admissions@spanishhorizons.org")

	mockService.On("Create", c.Request.Context(), input, "admissions@spanishhorizons.org").
		Return(nil, domain.NewValidationError("start_time", "is required"))

	handler.create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "start_time")
}

func TestSlotHandler_delete(t *testing.T) {
	mockService := &MockSlotUseCase{}
	handler := NewSlotHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest("DELETE", "/api/slots/5", nil)
	c.Params = gin.Params{{Key: "id", Value: "5"}}
	c.Set(identityKey, "admissions@spanishhorizons.org")

	mockService.On("Delete", c.Request.Context(), int64(5), "admissions@spanishhorizons.org").Return(nil)

	handler.delete(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestSlotHandler_delete_Booked(t *testing.T) {
	mockService := &MockSlotUseCase{}
	handler := NewSlotHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest("DELETE", "/api/slots/5", nil)
	c.Params = gin.Params{{Key: "id", Value: "5"}}
	c.Set(identityKey, "admissions@spanishhorizons.org")

	mockService.On("Delete", c.Request.Context(), int64(5), "admissions@spanishhorizons.org").Return(domain.ErrSlotBooked)

	handler.delete(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "slot-booked")
}
