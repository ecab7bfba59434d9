package dto

import (
	"encoding/json"

	"github.com/plannora/planning-api/internal/models"
)

// WeeklyScheduleDTO is the wire shape of a weekly schedule: day name ->
// employee name -> slot tokens. Day names may use either vocabulary on the
// way in; responses always spell them in canonical English.
type WeeklyScheduleDTO map[string]map[string][]string

// GeneratePlanningRequest asks for a weekly planning for one team. When a
// proposal payload is present (typically relayed from the external model
// integration) it is validated; otherwise the deterministic fallback runs.
type GeneratePlanningRequest struct {
	TeamID     string          `json:"teamId" validate:"required"`
	Year       int             `json:"year" validate:"required,min=2020,max=2030"`
	WeekNumber int             `json:"weekNumber" validate:"required,min=1,max=53"`
	Proposal   json.RawMessage `json:"proposal,omitempty"`
}

// ValidatePlanningRequest submits a manually edited schedule for a warning
// report. The schedule itself never blocks on warnings.
type ValidatePlanningRequest struct {
	TeamID     string            `json:"teamId" validate:"required"`
	Year       int               `json:"year" validate:"required,min=2020,max=2030"`
	WeekNumber int               `json:"weekNumber" validate:"required,min=1,max=53"`
	Schedule   WeeklyScheduleDTO `json:"schedule" validate:"required"`
}

// SavePlanningRequest persists an approved weekly planning.
type SavePlanningRequest struct {
	TeamID     string                `json:"teamId" validate:"required"`
	Year       int                   `json:"year" validate:"required,min=2020,max=2030"`
	WeekNumber int                   `json:"weekNumber" validate:"required,min=1,max=53"`
	Source     models.PlanningSource `json:"source" validate:"omitempty,oneof=model fallback manual"`
	Schedule   WeeklyScheduleDTO     `json:"schedule" validate:"required"`
}

// PlanningResponse returns a weekly planning with its warning report.
type PlanningResponse struct {
	TeamID     string                `json:"teamId"`
	Year       int                   `json:"year"`
	WeekNumber int                   `json:"weekNumber"`
	WeekStart  string                `json:"weekStart"`
	WeekEnd    string                `json:"weekEnd"`
	Source     models.PlanningSource `json:"source"`
	Schedule   WeeklyScheduleDTO     `json:"schedule"`
	Warnings   []models.Warning      `json:"warnings"`
}

// ValidationResponse carries the warning report for a submitted schedule.
type ValidationResponse struct {
	TeamID     string           `json:"teamId"`
	Year       int              `json:"year"`
	WeekNumber int              `json:"weekNumber"`
	Warnings   []models.Warning `json:"warnings"`
}

// PlanningSummary lists stored plannings of one team.
type PlanningSummary struct {
	ID           string                `json:"id"`
	Year         int                   `json:"year"`
	WeekNumber   int                   `json:"weekNumber"`
	Source       models.PlanningSource `json:"source"`
	WarningCount int                   `json:"warningCount"`
}
