package booking

import (
	"context"
	"time"

	"github.com/dieg0espx/spanish-horizons-api/internal/domain"
	"github.com/dieg0espx/spanish-horizons-api/internal/kafka"
	"github.com/dieg0espx/spanish-horizons-api/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingUseCase interface {
	BookInterview(ctx context.Context, applicationID, slotID int64, identity string) (*domain.Application, *domain.InterviewSlot, error)
	CancelInterview(ctx context.Context, applicationID int64, identity string) (*domain.Application, error)
	WithdrawApplication(ctx context.Context, applicationID int64, identity string) (*domain.Application, error)
}

type Cache interface {
	InvalidateSlots(ctx context.Context) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

// BookingService coordinates the slot claim and the application status
// transition. The two writes are not one database transaction; the slot claim
// is the linearization point and every later failure is compensated by
// releasing the slot.
type BookingService struct {
	applications repository.ApplicationRepository
	slots        repository.SlotRepository
	cache        Cache
	producer     Producer
	topic        string
	log          *zap.Logger
}

func NewBookingService(
	applications repository.ApplicationRepository,
	slots repository.SlotRepository,
	cache Cache,
	producer Producer,
	topic string,
	log *zap.Logger,
) *BookingService {
	return &BookingService{
		applications: applications,
		slots:        slots,
		cache:        cache,
		producer:     producer,
		topic:        topic,
		log:          log,
	}
}

func (s *BookingService) BookInterview(ctx context.Context, applicationID, slotID int64, identity string) (*domain.Application, *domain.InterviewSlot, error) {
	app, err := s.applications.GetOwned(ctx, applicationID, identity)
	if err != nil {
		return nil, nil, err
	}
	if app.Status != domain.StatusInterviewPending {
		return nil, nil, domain.ErrInvalidState
	}

	// Conditional claim; concurrent bookers of the same slot lose here, before
	// any application mutation.
	slot, err := s.slots.Claim(ctx, slotID, applicationID)
	if err != nil {
		return nil, nil, err
	}

	interviewAt, err := slot.InterviewStart()
	if err != nil {
		s.compensateClaim(ctx, slotID)
		return nil, nil, err
	}

	updated, err := s.applications.MarkScheduled(ctx, applicationID, interviewAt)
	if err != nil {
		s.compensateClaim(ctx, slotID)
		return nil, nil, err
	}

	s.invalidate(ctx)
	s.publish(ctx, kafka.EventInterviewBooked, updated, slot)
	return updated, slot, nil
}

// CancelInterview returns a scheduled application to the bookable state. The
// status transition runs first; if the slot release then fails, the transition
// is compensated by re-scheduling, so a booked slot never points at a pending
// application.
func (s *BookingService) CancelInterview(ctx context.Context, applicationID int64, identity string) (*domain.Application, error) {
	app, err := s.applications.GetOwned(ctx, applicationID, identity)
	if err != nil {
		return nil, err
	}
	if app.Status != domain.StatusInterviewScheduled {
		return nil, domain.ErrInvalidState
	}

	// Absence of a slot is tolerated; the application must still become
	// bookable again.
	slot, err := s.slots.FindByApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	updated, err := s.applications.MarkPending(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	if slot != nil {
		if err := s.slots.Release(ctx, slot.ID); err != nil {
			if app.InterviewDate != nil {
				if _, rerr := s.applications.MarkScheduled(ctx, applicationID, *app.InterviewDate); rerr != nil {
					s.log.Error("failed to restore scheduled status after release failure",
						zap.Int64("application_id", applicationID), zap.Error(rerr))
				}
			}
			return nil, err
		}
	}

	s.invalidate(ctx)
	s.publish(ctx, kafka.EventInterviewCancelled, updated, slot)
	return updated, nil
}

func (s *BookingService) WithdrawApplication(ctx context.Context, applicationID int64, identity string) (*domain.Application, error) {
	app, err := s.applications.GetOwned(ctx, applicationID, identity)
	if err != nil {
		return nil, err
	}
	if app.Status.Terminal() {
		return nil, domain.ErrInvalidState
	}

	updated, err := s.applications.MarkWithdrawn(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	// Best effort: the application is the source of truth for terminality,
	// a stuck slot release must not fail the withdrawal.
	slot, err := s.slots.FindByApplication(ctx, applicationID)
	if err != nil {
		s.log.Warn("failed to look up slot during withdrawal",
			zap.Int64("application_id", applicationID), zap.Error(err))
	} else if slot != nil {
		if err := s.slots.Release(ctx, slot.ID); err != nil {
			s.log.Warn("failed to release slot during withdrawal",
				zap.Int64("slot_id", slot.ID), zap.Error(err))
		} else {
			s.invalidate(ctx)
		}
	}

	s.publish(ctx, kafka.EventApplicationWithdrawn, updated, slot)
	return updated, nil
}

func (s *BookingService) compensateClaim(ctx context.Context, slotID int64) {
	if err := s.slots.Release(ctx, slotID); err != nil {
		s.log.Error("failed to release slot during compensation", zap.Int64("slot_id", slotID), zap.Error(err))
	}
}

func (s *BookingService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateSlots(ctx); err != nil {
		s.log.Warn("failed to invalidate slot cache", zap.Error(err))
	}
}

// publish is fire and forget: notification failures are logged and never
// surfaced as operation failures.
func (s *BookingService) publish(ctx context.Context, eventType string, app *domain.Application, slot *domain.InterviewSlot) {
	if s.producer == nil || s.topic == "" {
		return
	}
	event := kafka.InterviewEvent{
		ID:            uuid.NewString(),
		Type:          eventType,
		ApplicationID: app.ID,
		ChildName:     app.ChildName,
		ParentName:    app.ParentName,
		ParentEmail:   app.ParentEmail,
		Status:        string(app.Status),
		InterviewAt:   app.InterviewDate,
		OccurredAt:    time.Now(),
	}
	if slot != nil {
		event.SlotID = slot.ID
	}
	if err := s.producer.Publish(ctx, s.topic, event.ID, event); err != nil {
		s.log.Warn("failed to publish interview event",
			zap.String("type", eventType), zap.Int64("application_id", app.ID), zap.Error(err))
	}
}

var _ BookingUseCase = (*BookingService)(nil)
