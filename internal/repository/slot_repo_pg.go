package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/dieg0espx/spanish-horizons-api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SlotRepository interface {
	List(ctx context.Context) ([]domain.SlotListing, error)
	Create(ctx context.Context, slot *domain.InterviewSlot) error
	Delete(ctx context.Context, id int64) error
	Claim(ctx context.Context, slotID, applicationID int64) (*domain.InterviewSlot, error)
	Release(ctx context.Context, slotID int64) error
	FindByApplication(ctx context.Context, applicationID int64) (*domain.InterviewSlot, error)
}

type PGSlotRepository struct {
	db *pgxpool.Pool
}

func NewSlotRepository(db *pgxpool.Pool) SlotRepository {
	return &PGSlotRepository{db: db}
}

func (r *PGSlotRepository) List(ctx context.Context) ([]domain.SlotListing, error) {
	rows, err := r.db.Query(ctx, `
		SELECT s.id, s.date, s.start_time, s.end_time, s.booked, s.application_id, s.created_by, s.created_at,
		       COALESCE(a.child_name, '')
		FROM interview_availability s
		LEFT JOIN applications a ON a.id = s.application_id
		ORDER BY s.date, s.start_time`)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	defer rows.Close()

	slots := make([]domain.SlotListing, 0)
	for rows.Next() {
		var s domain.SlotListing
		if err := rows.Scan(&s.ID, &s.Date, &s.StartTime, &s.EndTime, &s.Booked, &s.ApplicationID, &s.CreatedBy, &s.CreatedAt, &s.ChildName); err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		slots = append(slots, s)
	}
	return slots, rows.Err()
}

func (r *PGSlotRepository) Create(ctx context.Context, slot *domain.InterviewSlot) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO interview_availability (date, start_time, end_time, booked, created_by)
		VALUES ($1, $2, $3, false, $4)
		RETURNING id, created_at`,
		slot.Date, slot.StartTime, slot.EndTime, slot.CreatedBy).
		Scan(&slot.ID, &slot.CreatedAt)
	if err != nil {
		return fmt.Errorf("create slot: %w", err)
	}
	slot.Booked = false
	return nil
}

// Delete removes a free slot. Deleting a booked slot is refused so a booked
// reference never dangles; callers must release first.
func (r *PGSlotRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM interview_availability WHERE id=$1 AND NOT booked`, id)
	if err != nil {
		return fmt.Errorf("delete slot: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		var booked bool
		err := r.db.QueryRow(ctx, `SELECT booked FROM interview_availability WHERE id=$1`, id).Scan(&booked)
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("delete slot: %w", err)
		}
		return domain.ErrSlotBooked
	}
	return nil
}

// Claim is the linearization point of a booking: a single conditional update
// that only succeeds while the slot is free. Concurrent claimers of the same
// slot see exactly one success.
func (r *PGSlotRepository) Claim(ctx context.Context, slotID, applicationID int64) (*domain.InterviewSlot, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE interview_availability
		SET booked = true, application_id = $2
		WHERE id = $1 AND NOT booked
		RETURNING id, date, start_time, end_time, booked, application_id, created_by, created_at`,
		slotID, applicationID)
	var s domain.InterviewSlot
	if err := row.Scan(&s.ID, &s.Date, &s.StartTime, &s.EndTime, &s.Booked, &s.ApplicationID, &s.CreatedBy, &s.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSlotUnavailable
		}
		return nil, fmt.Errorf("claim slot: %w", err)
	}
	return &s, nil
}

// Release frees a slot. Releasing an already-free or missing slot is a no-op.
func (r *PGSlotRepository) Release(ctx context.Context, slotID int64) error {
	_, err := r.db.Exec(ctx, `
		UPDATE interview_availability
		SET booked = false, application_id = NULL
		WHERE id = $1`, slotID)
	if err != nil {
		return fmt.Errorf("release slot: %w", err)
	}
	return nil
}

func (r *PGSlotRepository) FindByApplication(ctx context.Context, applicationID int64) (*domain.InterviewSlot, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, date, start_time, end_time, booked, application_id, created_by, created_at
		FROM interview_availability
		WHERE application_id = $1`, applicationID)
	var s domain.InterviewSlot
	if err := row.Scan(&s.ID, &s.Date, &s.StartTime, &s.EndTime, &s.Booked, &s.ApplicationID, &s.CreatedBy, &s.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find slot by application: %w", err)
	}
	return &s, nil
}

var _ SlotRepository = (*PGSlotRepository)(nil)
