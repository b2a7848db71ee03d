package slots

import (
	"context"
	"time"

	"github.com/dieg0espx/spanish-horizons-api/internal/auth"
	"github.com/dieg0espx/spanish-horizons-api/internal/domain"
	"github.com/dieg0espx/spanish-horizons-api/internal/repository"
	"go.uber.org/zap"
)

type SlotUseCase interface {
	List(ctx context.Context) ([]domain.SlotListing, error)
	Create(ctx context.Context, input CreateSlotInput, identity string) (*domain.InterviewSlot, error)
	Delete(ctx context.Context, slotID int64, identity string) error
}

// Cache is the read-through cache for the slot listing. All slot mutations
// invalidate it; the TTL only bounds staleness from out-of-band writes.
type Cache interface {
	GetSlots(ctx context.Context) ([]domain.SlotListing, error)
	SetSlots(ctx context.Context, slots []domain.SlotListing) error
	InvalidateSlots(ctx context.Context) error
}

type CreateSlotInput struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type SlotService struct {
	slots repository.SlotRepository
	cache Cache
	authz auth.Authorizer
	log   *zap.Logger
}

func NewSlotService(slots repository.SlotRepository, cache Cache, authz auth.Authorizer, log *zap.Logger) *SlotService {
	return &SlotService{slots: slots, cache: cache, authz: authz, log: log}
}

func (s *SlotService) List(ctx context.Context) ([]domain.SlotListing, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetSlots(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	listing, err := s.slots.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetSlots(ctx, listing)
	}
	return listing, nil
}

func (s *SlotService) Create(ctx context.Context, input CreateSlotInput, identity string) (*domain.InterviewSlot, error) {
	if !s.authz.IsAdministrator(identity) {
		return nil, domain.ErrForbidden
	}

	date, start, end, err := validateSlotInput(input)
	if err != nil {
		return nil, err
	}

	slot := &domain.InterviewSlot{
		Date:      date,
		StartTime: start,
		EndTime:   end,
		CreatedBy: identity,
	}
	if err := s.slots.Create(ctx, slot); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return slot, nil
}

func (s *SlotService) Delete(ctx context.Context, slotID int64, identity string) error {
	if !s.authz.IsAdministrator(identity) {
		return domain.ErrForbidden
	}

	if err := s.slots.Delete(ctx, slotID); err != nil {
		return err
	}

	s.invalidate(ctx)
	return nil
}

func (s *SlotService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateSlots(ctx); err != nil {
		s.log.Warn("failed to invalidate slot cache", zap.Error(err))
	}
}

func validateSlotInput(input CreateSlotInput) (time.Time, string, string, error) {
	if input.Date == "" {
		return time.Time{}, "", "", domain.NewValidationError("date", "is required")
	}
	if input.StartTime == "" {
		return time.Time{}, "", "", domain.NewValidationError("start_time", "is required")
	}
	if input.EndTime == "" {
		return time.Time{}, "", "", domain.NewValidationError("end_time", "is required")
	}

	date, err := time.Parse("2006-01-02", input.Date)
	if err != nil {
		return time.Time{}, "", "", domain.NewValidationError("date", "must be YYYY-MM-DD")
	}
	start, err := time.Parse("15:04", input.StartTime)
	if err != nil {
		return time.Time{}, "", "", domain.NewValidationError("start_time", "must be HH:MM")
	}
	end, err := time.Parse("15:04", input.EndTime)
	if err != nil {
		return time.Time{}, "", "", domain.NewValidationError("end_time", "must be HH:MM")
	}
	if !start.Before(end) {
		return time.Time{}, "", "", domain.NewValidationError("start_time", "must be before end_time")
	}

	return date, input.StartTime, input.EndTime, nil
}

var _ SlotUseCase = (*SlotService)(nil)
