package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/plannora/planning-api/internal/models"
	"github.com/plannora/planning-api/internal/planning"
	appErrors "github.com/plannora/planning-api/pkg/errors"
)

// CompanyStore reads and writes the company constraints of a team.
type CompanyStore interface {
	GetByTeam(ctx context.Context, teamID string) (*models.CompanyConstraints, error)
	Upsert(ctx context.Context, teamID string, constraints models.CompanyConstraints) error
}

// ConstraintService manages the per-team company calendar the planning
// engine consumes.
type ConstraintService struct {
	companies CompanyStore
	cache     PlanningCache
}

func NewConstraintService(companies CompanyStore, cache PlanningCache) *ConstraintService {
	return &ConstraintService{companies: companies, cache: cache}
}

// Get returns the stored constraints of a team.
func (s *ConstraintService) Get(ctx context.Context, teamID string) (*models.CompanyConstraints, error) {
	constraints, err := s.companies.GetByTeam(ctx, teamID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "no constraints configured for team")
		}
		return nil, wrapAs(appErrors.ErrInternal, err)
	}
	return constraints, nil
}

// Put stores the constraints of a team. Opening hour tokens must be
// well-formed here, unlike schedule proposals which degrade to warnings:
// a broken calendar would silently distort every future planning. Cached
// plannings of the team are invalidated.
func (s *ConstraintService) Put(ctx context.Context, teamID string, constraints models.CompanyConstraints) error {
	if teamID == "" {
		return appErrors.Clone(appErrors.ErrValidation, "teamId is required")
	}
	for _, day := range constraints.OpeningDays {
		if !day.Valid() {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown opening day ordinal %d", int(day)))
		}
	}
	for _, entry := range constraints.OpeningHours {
		if !entry.Day.Valid() {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown day ordinal %d in opening hours", int(entry.Day)))
		}
		for _, token := range entry.Hours {
			if _, err := planning.ParseSlot(token); err != nil {
				return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("malformed opening hours token %q", token))
			}
		}
	}

	if err := s.companies.Upsert(ctx, teamID, constraints); err != nil {
		return wrapAs(appErrors.ErrInternal, err)
	}
	if s.cache != nil {
		s.cache.InvalidateTeam(ctx, teamID)
	}
	return nil
}
