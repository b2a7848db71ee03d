package domain

import (
	"fmt"
	"time"
)

// InterviewSlot is a bookable interview time window. A booked slot always
// references the application that claimed it; a free slot never does.
type InterviewSlot struct {
	ID            int64
	Date          time.Time
	StartTime     string
	EndTime       string
	Booked        bool
	ApplicationID *int64
	CreatedBy     string
	CreatedAt     time.Time
}

// SlotListing is the read-side shape of a slot: the slot plus the booked
// child's name joined in for display. ChildName is empty for free slots.
type SlotListing struct {
	InterviewSlot
	ChildName string
}

// InterviewStart combines the slot's date and start time into the concrete
// interview timestamp stored on the application.
func (s *InterviewSlot) InterviewStart() (time.Time, error) {
	t, err := time.Parse("15:04", s.StartTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse slot start time %q: %w", s.StartTime, err)
	}
	d := s.Date
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC), nil
}
