package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/plannora/planning-api/internal/dto"
	"github.com/plannora/planning-api/internal/models"
	appErrors "github.com/plannora/planning-api/pkg/errors"
)

type stubEmployeeRepo struct {
	employees []models.EmployeeConstraint
	err       error
}

func (s *stubEmployeeRepo) ListByTeam(ctx context.Context, teamID string) ([]models.EmployeeConstraint, error) {
	return s.employees, s.err
}

type stubCompanyRepo struct {
	company *models.CompanyConstraints
	err     error
}

func (s *stubCompanyRepo) GetByTeam(ctx context.Context, teamID string) (*models.CompanyConstraints, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.company, nil
}

type stubPlanningStore struct {
	saved   *models.WeeklyPlanning
	found   *models.WeeklyPlanning
	records []models.WeeklyPlanning
	findErr error
}

func (s *stubPlanningStore) Upsert(ctx context.Context, planning *models.WeeklyPlanning) error {
	s.saved = planning
	return nil
}

func (s *stubPlanningStore) FindByTeamWeek(ctx context.Context, teamID string, year, weekNumber int) (*models.WeeklyPlanning, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	return s.found, nil
}

func (s *stubPlanningStore) ListByTeam(ctx context.Context, teamID string) ([]models.WeeklyPlanning, error) {
	return s.records, nil
}

type stubProvider struct {
	payload []byte
	err     error
	calls   int
}

func (s *stubProvider) Propose(ctx context.Context, teamID string, year, weekNumber int) ([]byte, error) {
	s.calls++
	return s.payload, s.err
}

type recordingCache struct {
	entries     map[string]*dto.PlanningResponse
	invalidated []string
}

func newRecordingCache() *recordingCache {
	return &recordingCache{entries: map[string]*dto.PlanningResponse{}}
}

func (c *recordingCache) GetPlanning(ctx context.Context, teamID string, year, week int, dest interface{}) bool {
	cached, ok := c.entries[PlanningKey(teamID, year, week)]
	if !ok {
		return false
	}
	*dest.(*dto.PlanningResponse) = *cached
	return true
}

func (c *recordingCache) SetPlanning(ctx context.Context, teamID string, year, week int, value interface{}) {
	resp := value.(*dto.PlanningResponse)
	c.entries[PlanningKey(teamID, year, week)] = resp
}

func (c *recordingCache) InvalidateTeam(ctx context.Context, teamID string) {
	c.invalidated = append(c.invalidated, teamID)
}

func testEmployees() []models.EmployeeConstraint {
	return []models.EmployeeConstraint{
		{ID: "e1", Name: "Alice"},
		{ID: "e2", Name: "Brice"},
		{ID: "e3", Name: "Chloe"},
	}
}

func newTestService(employees *stubEmployeeRepo, companies *stubCompanyRepo, store *stubPlanningStore, provider ProposalProvider, cache PlanningCache) *PlanningService {
	return NewPlanningService(employees, companies, store, provider, cache, NewMetricsService(), zap.NewNop(), false)
}

func TestGenerateFallsBackWithoutProposal(t *testing.T) {
	svc := newTestService(
		&stubEmployeeRepo{employees: testEmployees()},
		&stubCompanyRepo{err: sql.ErrNoRows},
		&stubPlanningStore{},
		nil,
		nil,
	)

	resp, err := svc.Generate(context.Background(), dto.GeneratePlanningRequest{
		TeamID: "team-1", Year: 2024, WeekNumber: 10,
	})
	require.NoError(t, err)

	assert.Equal(t, models.PlanningSourceFallback, resp.Source)
	assert.Equal(t, "2024-03-04", resp.WeekStart)
	assert.Equal(t, "2024-03-10", resp.WeekEnd)
	assert.Len(t, resp.Schedule, 7)
	assert.Empty(t, resp.Warnings)

	monday := resp.Schedule["monday"]
	require.Contains(t, monday, "Alice")
	assert.Equal(t, []string{"08:00-12:00", "13:00-17:00"}, monday["Alice"])
	assert.Empty(t, resp.Schedule["saturday"]["Alice"])
}

func TestGenerateUsesRequestProposal(t *testing.T) {
	svc := newTestService(
		&stubEmployeeRepo{employees: testEmployees()},
		&stubCompanyRepo{err: sql.ErrNoRows},
		&stubPlanningStore{},
		nil,
		nil,
	)

	resp, err := svc.Generate(context.Background(), dto.GeneratePlanningRequest{
		TeamID:     "team-1",
		Year:       2024,
		WeekNumber: 10,
		Proposal:   []byte(`{"lundi":{"Alice":["09:00-13:00"]}}`),
	})
	require.NoError(t, err)

	assert.Equal(t, models.PlanningSourceModel, resp.Source)
	assert.Equal(t, []string{"09:00-13:00"}, resp.Schedule["monday"]["Alice"])
	assert.NotEmpty(t, resp.Warnings)
}

func TestGenerateMalformedProposalFallsBack(t *testing.T) {
	svc := newTestService(
		&stubEmployeeRepo{employees: testEmployees()},
		&stubCompanyRepo{err: sql.ErrNoRows},
		&stubPlanningStore{},
		nil,
		nil,
	)

	resp, err := svc.Generate(context.Background(), dto.GeneratePlanningRequest{
		TeamID:     "team-1",
		Year:       2024,
		WeekNumber: 10,
		Proposal:   []byte(`not a schedule`),
	})
	require.NoError(t, err)
	assert.Equal(t, models.PlanningSourceFallback, resp.Source)
}

func TestGenerateAsksProviderWhenRequestHasNoProposal(t *testing.T) {
	provider := &stubProvider{payload: []byte(`{"monday":{"Brice":["10:00-14:00"]}}`)}
	svc := newTestService(
		&stubEmployeeRepo{employees: testEmployees()},
		&stubCompanyRepo{err: sql.ErrNoRows},
		&stubPlanningStore{},
		provider,
		nil,
	)

	resp, err := svc.Generate(context.Background(), dto.GeneratePlanningRequest{
		TeamID: "team-1", Year: 2024, WeekNumber: 10,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, provider.calls)
	assert.Equal(t, models.PlanningSourceModel, resp.Source)
	assert.Equal(t, []string{"10:00-14:00"}, resp.Schedule["monday"]["Brice"])
}

func TestGenerateProviderFailureFallsBack(t *testing.T) {
	provider := &stubProvider{err: errors.New("model unreachable")}
	svc := newTestService(
		&stubEmployeeRepo{employees: testEmployees()},
		&stubCompanyRepo{err: sql.ErrNoRows},
		&stubPlanningStore{},
		provider,
		nil,
	)

	resp, err := svc.Generate(context.Background(), dto.GeneratePlanningRequest{
		TeamID: "team-1", Year: 2024, WeekNumber: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, models.PlanningSourceFallback, resp.Source)
}

func TestGenerateServesCachedResponse(t *testing.T) {
	cache := newRecordingCache()
	employees := &stubEmployeeRepo{employees: testEmployees()}
	svc := newTestService(employees, &stubCompanyRepo{err: sql.ErrNoRows}, &stubPlanningStore{}, nil, cache)

	req := dto.GeneratePlanningRequest{TeamID: "team-1", Year: 2024, WeekNumber: 10}
	first, err := svc.Generate(context.Background(), req)
	require.NoError(t, err)

	employees.err = errors.New("db down")
	second, err := svc.Generate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, first.Schedule, second.Schedule)
}

func TestGenerateRejectsInvalidWeek(t *testing.T) {
	svc := newTestService(
		&stubEmployeeRepo{employees: testEmployees()},
		&stubCompanyRepo{err: sql.ErrNoRows},
		&stubPlanningStore{},
		nil,
		nil,
	)

	_, err := svc.Generate(context.Background(), dto.GeneratePlanningRequest{
		TeamID: "team-1", Year: 2031, WeekNumber: 1,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.Generate(context.Background(), dto.GeneratePlanningRequest{
		TeamID: "team-1", Year: 2024, WeekNumber: 40, Proposal: nil,
	})
	require.NoError(t, err)
}

func TestGenerateRejectsMissingTeam(t *testing.T) {
	svc := newTestService(
		&stubEmployeeRepo{employees: testEmployees()},
		&stubCompanyRepo{err: sql.ErrNoRows},
		&stubPlanningStore{},
		nil,
		nil,
	)

	_, err := svc.Generate(context.Background(), dto.GeneratePlanningRequest{Year: 2024, WeekNumber: 10})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestValidateReportsUnderstaffing(t *testing.T) {
	svc := newTestService(
		&stubEmployeeRepo{employees: testEmployees()},
		&stubCompanyRepo{company: &models.CompanyConstraints{
			OpeningDays:            []models.Weekday{models.Monday},
			MinStaffSimultaneously: 2,
		}},
		&stubPlanningStore{},
		nil,
		nil,
	)

	resp, err := svc.Validate(context.Background(), dto.ValidatePlanningRequest{
		TeamID:     "team-1",
		Year:       2024,
		WeekNumber: 10,
		Schedule: dto.WeeklyScheduleDTO{
			"monday": {"Alice": []string{"08:00-12:00"}},
		},
	})
	require.NoError(t, err)

	var staffing []models.Warning
	for _, w := range resp.Warnings {
		if w.Employee == "" && w.Day == "monday" {
			staffing = append(staffing, w)
		}
	}
	require.Len(t, staffing, 1)
	assert.Contains(t, staffing[0].Message, "1 scheduled, 2 required")
}

func TestValidateRejectsUnrecognizableSchedule(t *testing.T) {
	svc := newTestService(
		&stubEmployeeRepo{employees: testEmployees()},
		&stubCompanyRepo{err: sql.ErrNoRows},
		&stubPlanningStore{},
		nil,
		nil,
	)

	_, err := svc.Validate(context.Background(), dto.ValidatePlanningRequest{
		TeamID:     "team-1",
		Year:       2024,
		WeekNumber: 10,
		Schedule:   dto.WeeklyScheduleDTO{"someday": {"Alice": []string{"08:00-12:00"}}},
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestSavePersistsAndInvalidatesCache(t *testing.T) {
	cache := newRecordingCache()
	store := &stubPlanningStore{}
	svc := newTestService(
		&stubEmployeeRepo{employees: testEmployees()},
		&stubCompanyRepo{err: sql.ErrNoRows},
		store,
		nil,
		cache,
	)

	record, err := svc.Save(context.Background(), dto.SavePlanningRequest{
		TeamID:     "team-1",
		Year:       2024,
		WeekNumber: 10,
		Schedule: dto.WeeklyScheduleDTO{
			"monday": {"Alice": []string{"08:00-12:00", "13:00-17:00"}},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, store.saved)

	assert.Equal(t, models.PlanningSourceManual, record.Source)
	assert.Equal(t, "team-1", record.TeamID)
	assert.Positive(t, record.WarningCount)
	assert.Contains(t, string(record.Payload), "08:00-12:00")
	assert.Equal(t, []string{"team-1"}, cache.invalidated)
}

func TestGetMapsMissingPlanningToNotFound(t *testing.T) {
	svc := newTestService(
		&stubEmployeeRepo{employees: testEmployees()},
		&stubCompanyRepo{err: sql.ErrNoRows},
		&stubPlanningStore{findErr: sql.ErrNoRows},
		nil,
		nil,
	)

	_, err := svc.Get(context.Background(), "team-1", 2024, 10)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestListWeeksSummarizesRecords(t *testing.T) {
	store := &stubPlanningStore{records: []models.WeeklyPlanning{
		{ID: "p2", Year: 2024, WeekNumber: 11, Source: models.PlanningSourceManual, WarningCount: 0},
		{ID: "p1", Year: 2024, WeekNumber: 10, Source: models.PlanningSourceFallback, WarningCount: 3},
	}}
	svc := newTestService(
		&stubEmployeeRepo{employees: testEmployees()},
		&stubCompanyRepo{err: sql.ErrNoRows},
		store,
		nil,
		nil,
	)

	summaries, err := svc.ListWeeks(context.Background(), "team-1")
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "p2", summaries[0].ID)
	assert.Equal(t, 3, summaries[1].WarningCount)
}
