package domain

import "time"

type ApplicationStatus string

const (
	StatusSubmitted          ApplicationStatus = "submitted"
	StatusInterviewPending   ApplicationStatus = "interview_pending"
	StatusInterviewScheduled ApplicationStatus = "interview_scheduled"
	StatusAdmitted           ApplicationStatus = "admitted"
	StatusRejected           ApplicationStatus = "rejected"
	StatusDeclined           ApplicationStatus = "declined"
	StatusWithdrawn          ApplicationStatus = "withdrawn"
)

// Terminal reports whether no further status transitions are permitted.
func (s ApplicationStatus) Terminal() bool {
	switch s {
	case StatusAdmitted, StatusRejected, StatusDeclined, StatusWithdrawn:
		return true
	}
	return false
}

// Application is an admissions application owned by the submitting family.
// InterviewDate is a denormalized copy of the claimed slot's start; the slot's
// application reference is the source of truth for which slot is held.
type Application struct {
	ID            int64
	OwnerEmail    string
	ChildName     string
	ParentName    string
	ParentEmail   string
	ParentPhone   string
	Status        ApplicationStatus
	InterviewDate *time.Time
	ReminderSent  bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
