package email

import (
	"fmt"
	"time"

	"github.com/dieg0espx/spanish-horizons-api/internal/domain"
	"github.com/dieg0espx/spanish-horizons-api/internal/kafka"
)

const timeLayout = "Monday, January 2 2006 at 15:04"

// BookingConfirmation is the applicant-facing message sent after a booking.
func BookingConfirmation(event kafka.InterviewEvent) Message {
	when := "your selected time"
	if event.InterviewAt != nil {
		when = event.InterviewAt.Format(timeLayout)
	}
	return Message{
		To:      []string{event.ParentEmail},
		Subject: fmt.Sprintf("Interview confirmed for %s", event.ChildName),
		Body: fmt.Sprintf(
			"Hi %s,\n\nYour family interview for %s is confirmed for %s.\n\nIf you need to reschedule, cancel the interview from your dashboard and pick a new time.\n\nSpanish Horizons Academy Admissions",
			event.ParentName, event.ChildName, when),
	}
}

// AdminAlert notifies the admissions team about the same booking.
func AdminAlert(event kafka.InterviewEvent, recipients []string) Message {
	when := ""
	if event.InterviewAt != nil {
		when = event.InterviewAt.Format(timeLayout)
	}
	return Message{
		To:      recipients,
		Subject: fmt.Sprintf("New interview booked: %s", event.ChildName),
		Body: fmt.Sprintf(
			"%s (%s) booked an interview for %s on %s.\nApplication #%d, slot #%d.",
			event.ParentName, event.ParentEmail, event.ChildName, when, event.ApplicationID, event.SlotID),
	}
}

// InterviewReminder is sent by the worker sweep ahead of the interview.
func InterviewReminder(app domain.Application, interviewAt time.Time) Message {
	return Message{
		To:      []string{app.ParentEmail},
		Subject: fmt.Sprintf("Interview reminder for %s", app.ChildName),
		Body: fmt.Sprintf(
			"Hi %s,\n\nA quick reminder that %s's family interview is coming up on %s.\n\nSee you soon,\nSpanish Horizons Academy Admissions",
			app.ParentName, app.ChildName, interviewAt.Format(timeLayout)),
	}
}
