package models

import "time"

// ExceptionType categorises a dated scheduling exception for an employee.
type ExceptionType string

const (
	ExceptionUnavailable ExceptionType = "unavailable"
	ExceptionReduced     ExceptionType = "reduced"
	ExceptionTraining    ExceptionType = "training"
	ExceptionSick        ExceptionType = "sick"
	ExceptionVacation    ExceptionType = "vacation"
)

// BlocksWork reports whether the exception forbids any slot on its date.
// Reduced and training days still allow (partial) work.
func (t ExceptionType) BlocksWork() bool {
	switch t {
	case ExceptionUnavailable, ExceptionSick, ExceptionVacation:
		return true
	default:
		return false
	}
}

// Exception is a dated deviation from an employee's normal availability.
// Exceptions are request-scoped: the engine never persists them itself.
type Exception struct {
	Date   time.Time     `db:"date" json:"date"`
	Type   ExceptionType `db:"type" json:"type"`
	Reason string        `db:"reason" json:"reason"`
}

// EmployeeConstraint carries the scheduling constraints of one employee for
// a single engine call.
type EmployeeConstraint struct {
	ID               string      `db:"id" json:"id"`
	Name             string      `db:"name" json:"name"`
	Email            string      `db:"email" json:"email"`
	RestDay          *Weekday    `db:"rest_day" json:"restDay,omitempty"`
	WeeklyHours      *int        `db:"weekly_hours" json:"weeklyHours,omitempty"`
	PreferredHours   []string    `db:"preferred_hours" json:"preferredHours,omitempty"`
	Exceptions       []Exception `json:"exceptions,omitempty"`
	AllowSplitShifts bool        `db:"allow_split_shifts" json:"allowSplitShifts"`
}

// DefaultWeeklyHours is the contractual weekly volume assumed when an
// employee has no explicit value.
const DefaultWeeklyHours = 35

// ContractualHours returns the weekly hours, defaulting to 35.
func (e EmployeeConstraint) ContractualHours() int {
	if e.WeeklyHours != nil && *e.WeeklyHours > 0 {
		return *e.WeeklyHours
	}
	return DefaultWeeklyHours
}

// ExceptionOn returns the exception matching the calendar date, if any.
func (e EmployeeConstraint) ExceptionOn(date time.Time) *Exception {
	for i := range e.Exceptions {
		ex := &e.Exceptions[i]
		if sameDate(ex.Date, date) {
			return ex
		}
	}
	return nil
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
