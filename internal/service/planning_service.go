package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx/types"
	"go.uber.org/zap"

	"github.com/plannora/planning-api/internal/dto"
	"github.com/plannora/planning-api/internal/models"
	"github.com/plannora/planning-api/internal/planning"
	appErrors "github.com/plannora/planning-api/pkg/errors"
)

const weekDateLayout = "2006-01-02"

// wrapAs attaches a cause to one of the predefined errors.
func wrapAs(base *appErrors.Error, cause error) *appErrors.Error {
	return appErrors.Wrap(cause, base.Code, base.Status, base.Message)
}

// EmployeeLister loads the employee constraints of a team.
type EmployeeLister interface {
	ListByTeam(ctx context.Context, teamID string) ([]models.EmployeeConstraint, error)
}

// CompanyGetter loads the company-wide constraints of a team.
type CompanyGetter interface {
	GetByTeam(ctx context.Context, teamID string) (*models.CompanyConstraints, error)
}

// PlanningStore persists approved weekly plannings.
type PlanningStore interface {
	Upsert(ctx context.Context, planning *models.WeeklyPlanning) error
	FindByTeamWeek(ctx context.Context, teamID string, year, weekNumber int) (*models.WeeklyPlanning, error)
	ListByTeam(ctx context.Context, teamID string) ([]models.WeeklyPlanning, error)
}

// ProposalProvider produces an external schedule proposal for a team week.
// The payload is opaque; anything unusable makes the service fall back to
// deterministic generation.
type ProposalProvider interface {
	Propose(ctx context.Context, teamID string, year, weekNumber int) ([]byte, error)
}

// PlanningCache is the subset of CacheService the planning service needs.
type PlanningCache interface {
	GetPlanning(ctx context.Context, teamID string, year, week int, dest interface{}) bool
	SetPlanning(ctx context.Context, teamID string, year, week int, value interface{})
	InvalidateTeam(ctx context.Context, teamID string)
}

// PlanningService orchestrates generation, validation and persistence of
// weekly plannings.
type PlanningService struct {
	employees EmployeeLister
	companies CompanyGetter
	plannings PlanningStore
	provider  ProposalProvider
	cache     PlanningCache
	metrics   *MetricsService
	logger    *zap.Logger
	validate  *validator.Validate
	strict    bool
}

func NewPlanningService(
	employees EmployeeLister,
	companies CompanyGetter,
	plannings PlanningStore,
	provider ProposalProvider,
	cache PlanningCache,
	metrics *MetricsService,
	logger *zap.Logger,
	strictChecks bool,
) *PlanningService {
	return &PlanningService{
		employees: employees,
		companies: companies,
		plannings: plannings,
		provider:  provider,
		cache:     cache,
		metrics:   metrics,
		logger:    logger,
		validate:  validator.New(),
		strict:    strictChecks,
	}
}

// Generate produces the weekly planning for a team. A usable external
// proposal wins; otherwise the deterministic fallback generator runs. Both
// paths go through the same warning-only validation.
func (s *PlanningService) Generate(ctx context.Context, req dto.GeneratePlanningRequest) (*dto.PlanningResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, wrapAs(appErrors.ErrValidation, err)
	}

	week, err := planning.ResolveWeek(req.Year, req.WeekNumber)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		var cached dto.PlanningResponse
		if s.cache.GetPlanning(ctx, req.TeamID, req.Year, req.WeekNumber, &cached) {
			return &cached, nil
		}
	}

	employees, company, err := s.loadConstraints(ctx, req.TeamID)
	if err != nil {
		return nil, err
	}

	raw := []byte(req.Proposal)
	if len(raw) == 0 && s.provider != nil {
		raw, err = s.provider.Propose(ctx, req.TeamID, req.Year, req.WeekNumber)
		if err != nil {
			s.logger.Warn("proposal provider failed, falling back",
				zap.String("team_id", req.TeamID), zap.Error(err))
			raw = nil
		}
	}

	var (
		schedule models.Schedule
		warnings []models.Warning
		source   models.PlanningSource
	)

	if parsed, parseWarnings, ok := planning.ParseProposal(raw, employees); ok {
		schedule = parsed
		warnings = parseWarnings
		source = models.PlanningSourceModel
	} else {
		schedule, err = planning.Generate(employees, company, req.Year, req.WeekNumber)
		if err != nil {
			return nil, err
		}
		source = models.PlanningSourceFallback
	}

	validationWarnings, err := s.runValidation(schedule, employees, company, req.Year, req.WeekNumber)
	if err != nil {
		return nil, err
	}
	warnings = append(warnings, validationWarnings...)

	resp := s.buildResponse(req.TeamID, req.Year, req.WeekNumber, week, source, schedule, warnings)

	if s.cache != nil {
		s.cache.SetPlanning(ctx, req.TeamID, req.Year, req.WeekNumber, resp)
	}
	s.metrics.RecordGeneration(string(source), len(resp.Warnings))

	return resp, nil
}

// Validate reports soft warnings for a manually edited schedule.
func (s *PlanningService) Validate(ctx context.Context, req dto.ValidatePlanningRequest) (*dto.ValidationResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, wrapAs(appErrors.ErrValidation, err)
	}

	if _, err := planning.ResolveWeek(req.Year, req.WeekNumber); err != nil {
		return nil, err
	}

	employees, company, err := s.loadConstraints(ctx, req.TeamID)
	if err != nil {
		return nil, err
	}

	schedule, warnings, ok := planning.DecodeProposal(planning.RawProposal(req.Schedule), employees)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "schedule contains no recognizable day")
	}

	validationWarnings, err := s.runValidation(schedule, employees, company, req.Year, req.WeekNumber)
	if err != nil {
		return nil, err
	}
	warnings = append(warnings, validationWarnings...)
	if warnings == nil {
		warnings = []models.Warning{}
	}

	return &dto.ValidationResponse{
		TeamID:     req.TeamID,
		Year:       req.Year,
		WeekNumber: req.WeekNumber,
		Warnings:   warnings,
	}, nil
}

// Save persists an approved weekly planning and invalidates cached entries
// for the team.
func (s *PlanningService) Save(ctx context.Context, req dto.SavePlanningRequest) (*models.WeeklyPlanning, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, wrapAs(appErrors.ErrValidation, err)
	}

	if _, err := planning.ResolveWeek(req.Year, req.WeekNumber); err != nil {
		return nil, err
	}

	employees, company, err := s.loadConstraints(ctx, req.TeamID)
	if err != nil {
		return nil, err
	}

	schedule, _, ok := planning.DecodeProposal(planning.RawProposal(req.Schedule), employees)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "schedule contains no recognizable day")
	}

	warnings, err := s.runValidation(schedule, employees, company, req.Year, req.WeekNumber)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(planning.EncodeSchedule(schedule, planning.VocabularyEnglish))
	if err != nil {
		return nil, wrapAs(appErrors.ErrInternal, err)
	}

	source := req.Source
	if source == "" {
		source = models.PlanningSourceManual
	}

	record := &models.WeeklyPlanning{
		TeamID:       req.TeamID,
		Year:         req.Year,
		WeekNumber:   req.WeekNumber,
		Source:       source,
		Payload:      types.JSONText(payload),
		WarningCount: len(warnings),
	}
	if err := s.plannings.Upsert(ctx, record); err != nil {
		return nil, wrapAs(appErrors.ErrInternal, err)
	}

	if s.cache != nil {
		s.cache.InvalidateTeam(ctx, req.TeamID)
	}

	return record, nil
}

// Get returns the stored planning of a team week.
func (s *PlanningService) Get(ctx context.Context, teamID string, year, weekNumber int) (*models.WeeklyPlanning, error) {
	if _, err := planning.ResolveWeek(year, weekNumber); err != nil {
		return nil, err
	}

	record, err := s.plannings.FindByTeamWeek(ctx, teamID, year, weekNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "planning not found")
		}
		return nil, wrapAs(appErrors.ErrInternal, err)
	}
	return record, nil
}

// ListWeeks summarizes every stored planning of a team, most recent first.
func (s *PlanningService) ListWeeks(ctx context.Context, teamID string) ([]dto.PlanningSummary, error) {
	records, err := s.plannings.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, wrapAs(appErrors.ErrInternal, err)
	}

	summaries := make([]dto.PlanningSummary, 0, len(records))
	for _, record := range records {
		summaries = append(summaries, dto.PlanningSummary{
			ID:           record.ID,
			Year:         record.Year,
			WeekNumber:   record.WeekNumber,
			Source:       record.Source,
			WarningCount: record.WarningCount,
		})
	}
	return summaries, nil
}

// loadConstraints fetches the team's employees and company constraints. A
// team without stored company constraints falls back to defaults.
func (s *PlanningService) loadConstraints(ctx context.Context, teamID string) ([]models.EmployeeConstraint, models.CompanyConstraints, error) {
	employees, err := s.employees.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, models.CompanyConstraints{}, wrapAs(appErrors.ErrInternal, err)
	}

	company, err := s.companies.GetByTeam(ctx, teamID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return employees, models.CompanyConstraints{}, nil
		}
		return nil, models.CompanyConstraints{}, wrapAs(appErrors.ErrInternal, err)
	}
	return employees, *company, nil
}

func (s *PlanningService) runValidation(schedule models.Schedule, employees []models.EmployeeConstraint, company models.CompanyConstraints, year, weekNumber int) ([]models.Warning, error) {
	if s.strict {
		return planning.ValidateStrict(schedule, employees, company, year, weekNumber)
	}
	return planning.Validate(schedule, employees, company, year, weekNumber)
}

func (s *PlanningService) buildResponse(teamID string, year, weekNumber int, week models.WeekRange, source models.PlanningSource, schedule models.Schedule, warnings []models.Warning) *dto.PlanningResponse {
	if warnings == nil {
		warnings = []models.Warning{}
	}
	return &dto.PlanningResponse{
		TeamID:     teamID,
		Year:       year,
		WeekNumber: weekNumber,
		WeekStart:  week.WeekStart.Format(weekDateLayout),
		WeekEnd:    week.WeekEnd.Format(weekDateLayout),
		Source:     source,
		Schedule:   dto.WeeklyScheduleDTO(planning.EncodeSchedule(schedule, planning.VocabularyEnglish)),
		Warnings:   warnings,
	}
}
