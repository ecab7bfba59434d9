package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"

	"github.com/plannora/planning-api/internal/models"
)

// CompanyRepository stores the company-wide scheduling calendar per team as
// a JSONB document.
type CompanyRepository struct {
	db *sqlx.DB
}

// NewCompanyRepository creates a new company constraints repository.
func NewCompanyRepository(db *sqlx.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

// GetByTeam loads the constraints of a team. sql.ErrNoRows passes through
// so callers can distinguish "not configured".
func (r *CompanyRepository) GetByTeam(ctx context.Context, teamID string) (*models.CompanyConstraints, error) {
	var payload types.JSONText
	query := `SELECT constraints FROM company_constraints WHERE team_id = $1`
	if err := r.db.GetContext(ctx, &payload, query, teamID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("load company constraints for team %s: %w", teamID, err)
	}

	var constraints models.CompanyConstraints
	if err := json.Unmarshal(payload, &constraints); err != nil {
		return nil, fmt.Errorf("decode company constraints for team %s: %w", teamID, err)
	}
	return &constraints, nil
}

// Upsert stores or replaces the constraints of a team.
func (r *CompanyRepository) Upsert(ctx context.Context, teamID string, constraints models.CompanyConstraints) error {
	payload, err := json.Marshal(constraints)
	if err != nil {
		return fmt.Errorf("encode company constraints: %w", err)
	}
	query := `INSERT INTO company_constraints (team_id, constraints, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (team_id) DO UPDATE SET constraints = EXCLUDED.constraints, updated_at = NOW()`
	if _, err := r.db.ExecContext(ctx, query, teamID, types.JSONText(payload)); err != nil {
		return fmt.Errorf("upsert company constraints for team %s: %w", teamID, err)
	}
	return nil
}
