package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

// TimeSlot is a contiguous working window inside a single day, expressed as
// minutes of day in [0,1440). End is always strictly after Start; slots never
// cross midnight.
type TimeSlot struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Schedule maps each weekday to the slots assigned per employee name. An
// absent or empty slot list means the employee does not work that day. Every
// employee name is expected to reference an EmployeeConstraint supplied to
// the same engine call.
type Schedule map[Weekday]map[string][]TimeSlot

// SlotsFor looks up the slots of an employee on a day, tolerating missing keys.
func (s Schedule) SlotsFor(day Weekday, employee string) []TimeSlot {
	if s == nil {
		return nil
	}
	byEmployee, ok := s[day]
	if !ok {
		return nil
	}
	return byEmployee[employee]
}

// SetSlots assigns the slot list of an employee on a day, allocating the day
// bucket when needed.
func (s Schedule) SetSlots(day Weekday, employee string, slots []TimeSlot) {
	byEmployee, ok := s[day]
	if !ok {
		byEmployee = make(map[string][]TimeSlot)
		s[day] = byEmployee
	}
	byEmployee[employee] = slots
}

// WarningSeverity qualifies validation findings. Only soft warnings exist:
// findings never block schedule creation, they are surfaced to the approver.
type WarningSeverity string

// WarningSeveritySoft is the severity of every validator finding.
const WarningSeveritySoft WarningSeverity = "soft"

// Warning is a non-blocking validation finding tied to an employee and/or day.
type Warning struct {
	Severity WarningSeverity `json:"severity"`
	Employee string          `json:"employee,omitempty"`
	Day      string          `json:"day,omitempty"`
	Message  string          `json:"message"`
}

// WeekRange delimits a calendar week resolved from (year, ISO week number).
// WeekStart is always a Monday and WeekEnd the following Sunday.
type WeekRange struct {
	WeekStart time.Time `json:"weekStart"`
	WeekEnd   time.Time `json:"weekEnd"`
}

// PlanningSource records which path produced a weekly planning.
type PlanningSource string

const (
	// PlanningSourceModel marks schedules parsed from the external model proposal.
	PlanningSourceModel PlanningSource = "model"
	// PlanningSourceFallback marks deterministically generated schedules.
	PlanningSourceFallback PlanningSource = "fallback"
	// PlanningSourceManual marks schedules supplied by a human planner.
	PlanningSourceManual PlanningSource = "manual"
)

// WeeklyPlanning is a persisted, approved weekly schedule for one team.
type WeeklyPlanning struct {
	ID           string         `db:"id" json:"id"`
	TeamID       string         `db:"team_id" json:"team_id"`
	Year         int            `db:"year" json:"year"`
	WeekNumber   int            `db:"week_number" json:"week_number"`
	Source       PlanningSource `db:"source" json:"source"`
	Payload      types.JSONText `db:"payload" json:"payload"`
	WarningCount int            `db:"warning_count" json:"warning_count"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updated_at"`
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
