package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/plannora/planning-api/internal/models"
)

// PlanningRepository persists approved weekly plannings.
type PlanningRepository struct {
	db *sqlx.DB
}

// NewPlanningRepository creates a new planning repository.
func NewPlanningRepository(db *sqlx.DB) *PlanningRepository {
	return &PlanningRepository{db: db}
}

// Upsert stores a weekly planning, replacing any previous version for the
// same (team, year, week) tuple.
func (r *PlanningRepository) Upsert(ctx context.Context, planning *models.WeeklyPlanning) error {
	if planning.ID == "" {
		planning.ID = uuid.NewString()
	}
	query := `INSERT INTO weekly_plannings (id, team_id, year, week_number, source, payload, warning_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		ON CONFLICT (team_id, year, week_number)
		DO UPDATE SET source = EXCLUDED.source, payload = EXCLUDED.payload,
			warning_count = EXCLUDED.warning_count, updated_at = NOW()`
	if _, err := r.db.ExecContext(ctx, query,
		planning.ID, planning.TeamID, planning.Year, planning.WeekNumber,
		planning.Source, planning.Payload, planning.WarningCount); err != nil {
		return fmt.Errorf("upsert weekly planning %s/%d-W%02d: %w",
			planning.TeamID, planning.Year, planning.WeekNumber, err)
	}
	return nil
}

// FindByTeamWeek loads the stored planning of one week. sql.ErrNoRows passes
// through untouched.
func (r *PlanningRepository) FindByTeamWeek(ctx context.Context, teamID string, year, weekNumber int) (*models.WeeklyPlanning, error) {
	var planning models.WeeklyPlanning
	query := `SELECT id, team_id, year, week_number, source, payload, warning_count, created_at, updated_at
		FROM weekly_plannings WHERE team_id = $1 AND year = $2 AND week_number = $3`
	if err := r.db.GetContext(ctx, &planning, query, teamID, year, weekNumber); err != nil {
		return nil, err
	}
	return &planning, nil
}

// ListByTeam returns the stored plannings of a team, most recent week first.
func (r *PlanningRepository) ListByTeam(ctx context.Context, teamID string) ([]models.WeeklyPlanning, error) {
	var plannings []models.WeeklyPlanning
	query := `SELECT id, team_id, year, week_number, source, payload, warning_count, created_at, updated_at
		FROM weekly_plannings WHERE team_id = $1 ORDER BY year DESC, week_number DESC`
	if err := r.db.SelectContext(ctx, &plannings, query, teamID); err != nil {
		return nil, fmt.Errorf("list weekly plannings for team %s: %w", teamID, err)
	}
	return plannings, nil
}
