package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plannora/planning-api/internal/dto"
	"github.com/plannora/planning-api/internal/models"
	appErrors "github.com/plannora/planning-api/pkg/errors"
	"github.com/plannora/planning-api/pkg/response"
)

type fakePlanningSrv struct {
	generateResp *dto.PlanningResponse
	generateErr  error
	lastGenerate dto.GeneratePlanningRequest
	validateResp *dto.ValidationResponse
	saveResp     *models.WeeklyPlanning
	getResp      *models.WeeklyPlanning
	getErr       error
	summaries    []dto.PlanningSummary
	lastTeamID   string
	lastYear     int
	lastWeek     int
}

func (f *fakePlanningSrv) Generate(_ context.Context, req dto.GeneratePlanningRequest) (*dto.PlanningResponse, error) {
	f.lastGenerate = req
	return f.generateResp, f.generateErr
}

func (f *fakePlanningSrv) Validate(_ context.Context, req dto.ValidatePlanningRequest) (*dto.ValidationResponse, error) {
	return f.validateResp, nil
}

func (f *fakePlanningSrv) Save(_ context.Context, req dto.SavePlanningRequest) (*models.WeeklyPlanning, error) {
	return f.saveResp, nil
}

func (f *fakePlanningSrv) Get(_ context.Context, teamID string, year, weekNumber int) (*models.WeeklyPlanning, error) {
	f.lastTeamID = teamID
	f.lastYear = year
	f.lastWeek = weekNumber
	return f.getResp, f.getErr
}

func (f *fakePlanningSrv) ListWeeks(_ context.Context, teamID string) ([]dto.PlanningSummary, error) {
	return f.summaries, nil
}

func TestPlanningHandlerGenerateSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakePlanningSrv{generateResp: &dto.PlanningResponse{
		TeamID: "team-1", Year: 2024, WeekNumber: 10, Source: models.PlanningSourceFallback,
	}}
	handler := NewPlanningHandler(srv)

	body := `{"teamId":"team-1","year":2024,"weekNumber":10}`
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/plannings/generate", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Generate(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "team-1", srv.lastGenerate.TeamID)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.NotNil(t, envelope.Data)
}

func TestPlanningHandlerGenerateRejectsMalformedBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewPlanningHandler(&fakePlanningSrv{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/plannings/generate", strings.NewReader("{"))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Generate(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPlanningHandlerGeneratePropagatesInvalidWeek(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewPlanningHandler(&fakePlanningSrv{generateErr: appErrors.ErrInvalidWeek})

	body := `{"teamId":"team-1","year":2024,"weekNumber":54}`
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/plannings/generate", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Generate(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "INVALID_WEEK", envelope.Error.Code)
}

func TestPlanningHandlerSaveCreated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewPlanningHandler(&fakePlanningSrv{saveResp: &models.WeeklyPlanning{ID: "p1"}})

	body := `{"teamId":"team-1","year":2024,"weekNumber":10,"schedule":{"monday":{"Alice":["08:00-12:00"]}}}`
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/plannings", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Save(c)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestPlanningHandlerGetParsesWeekParams(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakePlanningSrv{getResp: &models.WeeklyPlanning{ID: "p1"}}
	handler := NewPlanningHandler(srv)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/plannings/team-1?year=2024&week=10", nil)
	c.Params = gin.Params{{Key: "teamId", Value: "team-1"}}

	handler.Get(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "team-1", srv.lastTeamID)
	assert.Equal(t, 2024, srv.lastYear)
	assert.Equal(t, 10, srv.lastWeek)
}

func TestPlanningHandlerGetRejectsBadYear(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewPlanningHandler(&fakePlanningSrv{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/plannings/team-1?year=twenty&week=10", nil)
	c.Params = gin.Params{{Key: "teamId", Value: "team-1"}}

	handler.Get(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPlanningHandlerListWeeks(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewPlanningHandler(&fakePlanningSrv{summaries: []dto.PlanningSummary{
		{ID: "p1", Year: 2024, WeekNumber: 10},
	}})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/plannings/team-1/weeks", nil)
	c.Params = gin.Params{{Key: "teamId", Value: "team-1"}}

	handler.ListWeeks(c)

	assert.Equal(t, http.StatusOK, rec.Code)
}
