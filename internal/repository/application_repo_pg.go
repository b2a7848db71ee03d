package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dieg0espx/spanish-horizons-api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ApplicationRepository interface {
	GetOwned(ctx context.Context, id int64, ownerEmail string) (*domain.Application, error)
	MarkScheduled(ctx context.Context, id int64, interviewAt time.Time) (*domain.Application, error)
	MarkPending(ctx context.Context, id int64) (*domain.Application, error)
	MarkWithdrawn(ctx context.Context, id int64) (*domain.Application, error)
	ClaimDueReminders(ctx context.Context, from, until time.Time) ([]domain.Application, error)
}

type PGApplicationRepository struct {
	db *pgxpool.Pool
}

func NewApplicationRepository(db *pgxpool.Pool) ApplicationRepository {
	return &PGApplicationRepository{db: db}
}

const applicationColumns = `id, owner_email, child_name, parent_name, parent_email, parent_phone, status, interview_date, reminder_sent, created_at, updated_at`

func scanApplication(row pgx.Row) (*domain.Application, error) {
	var a domain.Application
	err := row.Scan(&a.ID, &a.OwnerEmail, &a.ChildName, &a.ParentName, &a.ParentEmail, &a.ParentPhone,
		&a.Status, &a.InterviewDate, &a.ReminderSent, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// GetOwned returns the application only when the caller owns it. A wrong
// owner and a missing record are indistinguishable on purpose.
func (r *PGApplicationRepository) GetOwned(ctx context.Context, id int64, ownerEmail string) (*domain.Application, error) {
	row := r.db.QueryRow(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id=$1 AND owner_email=$2`, id, ownerEmail)
	a, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get application: %w", err)
	}
	return a, nil
}

// MarkScheduled advances interview_pending -> interview_scheduled. The status
// precondition lives in the WHERE clause so a stale read cannot slip a bad
// transition through.
func (r *PGApplicationRepository) MarkScheduled(ctx context.Context, id int64, interviewAt time.Time) (*domain.Application, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE applications
		SET status=$2, interview_date=$3, updated_at=now()
		WHERE id=$1 AND status=$4
		RETURNING `+applicationColumns,
		id, domain.StatusInterviewScheduled, interviewAt, domain.StatusInterviewPending)
	a, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInvalidState
		}
		return nil, fmt.Errorf("mark scheduled: %w", err)
	}
	return a, nil
}

func (r *PGApplicationRepository) MarkPending(ctx context.Context, id int64) (*domain.Application, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE applications
		SET status=$2, interview_date=NULL, reminder_sent=false, updated_at=now()
		WHERE id=$1 AND status=$3
		RETURNING `+applicationColumns,
		id, domain.StatusInterviewPending, domain.StatusInterviewScheduled)
	a, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInvalidState
		}
		return nil, fmt.Errorf("mark pending: %w", err)
	}
	return a, nil
}

func (r *PGApplicationRepository) MarkWithdrawn(ctx context.Context, id int64) (*domain.Application, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE applications
		SET status=$2, updated_at=now()
		WHERE id=$1 AND status NOT IN ($3, $4, $5, $6)
		RETURNING `+applicationColumns,
		id, domain.StatusWithdrawn,
		domain.StatusAdmitted, domain.StatusRejected, domain.StatusDeclined, domain.StatusWithdrawn)
	a, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInvalidState
		}
		return nil, fmt.Errorf("mark withdrawn: %w", err)
	}
	return a, nil
}

// ClaimDueReminders flips reminder_sent in the same statement that selects the
// batch, so each application is returned by at most one sweep.
func (r *PGApplicationRepository) ClaimDueReminders(ctx context.Context, from, until time.Time) ([]domain.Application, error) {
	rows, err := r.db.Query(ctx, `
		UPDATE applications
		SET reminder_sent=true, updated_at=now()
		WHERE status=$1 AND NOT reminder_sent AND interview_date > $2 AND interview_date <= $3
		RETURNING `+applicationColumns,
		domain.StatusInterviewScheduled, from, until)
	if err != nil {
		return nil, fmt.Errorf("claim due reminders: %w", err)
	}
	defer rows.Close()

	var due []domain.Application
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		due = append(due, *a)
	}
	return due, rows.Err()
}

var _ ApplicationRepository = (*PGApplicationRepository)(nil)
