// Package derive holds the pure read-side calculations over assignments:
// day deltas, urgency, display formatting and the automatic overdue
// transition. Nothing in here mutates state.
package derive

import (
	"time"

	"github.com/classtrack/classtrack-back/internal/models"
)

const dueDateLayout = "2006-01-02"

// ParseDueDate parses a YYYY-MM-DD calendar date.
func ParseDueDate(s string) (time.Time, error) {
	return time.Parse(dueDateLayout, s)
}

// DaysUntilDueAt returns the signed count of midnight boundaries between
// now's calendar day and dueDate. 0 = due today, negative = past due.
// An unparseable date counts as due today.
func DaysUntilDueAt(dueDate string, now time.Time) int {
	due, err := ParseDueDate(dueDate)
	if err != nil {
		return 0
	}
	// Both days are pinned to UTC midnight so DST transitions can never
	// produce a fractional day.
	d0 := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	d1 := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, time.UTC)
	return int(d1.Sub(d0) / (24 * time.Hour))
}

func DaysUntilDue(dueDate string) int {
	return DaysUntilDueAt(dueDate, time.Now())
}

// DayOfWeek returns the abbreviated weekday label ("Sun".."Sat") for a
// due date, or "" if the date does not parse.
func DayOfWeek(dueDate string) string {
	due, err := ParseDueDate(dueDate)
	if err != nil {
		return ""
	}
	return due.Weekday().String()[:3]
}

// FormatDisplayDate renders a due date as MM/DD/YYYY.
func FormatDisplayDate(dueDate string) string {
	due, err := ParseDueDate(dueDate)
	if err != nil {
		return dueDate
	}
	return due.Format("01/02/2006")
}

type Urgency string

const (
	UrgencyNone    Urgency = "none"
	UrgencySoon    Urgency = "soon"
	UrgencyOverdue Urgency = "overdue"
)

// UrgencyLevel classifies display emphasis. Completed and Submitted
// assignments are never urgent, whatever their date.
func UrgencyLevel(daysUntil int, status models.Status) Urgency {
	if status.Effective().Done() {
		return UrgencyNone
	}
	if daysUntil < 0 {
		return UrgencyOverdue
	}
	if daysUntil <= 2 {
		return UrgencySoon
	}
	return UrgencyNone
}

// AutoAdvanceStatus returns the status an assignment should hold at
// `now`: past-due assignments advance to Overdue, Completed/Submitted
// are terminal, everything else is left alone. Idempotent.
func AutoAdvanceStatus(a models.Assignment, now time.Time) models.Status {
	if a.Status.Effective().Done() {
		return a.Status
	}
	if DaysUntilDueAt(a.DueDate, now) < 0 {
		return models.StatusOverdue
	}
	return a.Status
}
