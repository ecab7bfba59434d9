package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/plannora/planning-api/internal/dto"
	"github.com/plannora/planning-api/internal/models"
	appErrors "github.com/plannora/planning-api/pkg/errors"
	"github.com/plannora/planning-api/pkg/response"
)

// PlanningService is the orchestration surface the planning endpoints need.
type PlanningService interface {
	Generate(ctx context.Context, req dto.GeneratePlanningRequest) (*dto.PlanningResponse, error)
	Validate(ctx context.Context, req dto.ValidatePlanningRequest) (*dto.ValidationResponse, error)
	Save(ctx context.Context, req dto.SavePlanningRequest) (*models.WeeklyPlanning, error)
	Get(ctx context.Context, teamID string, year, weekNumber int) (*models.WeeklyPlanning, error)
	ListWeeks(ctx context.Context, teamID string) ([]dto.PlanningSummary, error)
}

// PlanningHandler manages weekly planning endpoints.
type PlanningHandler struct {
	service PlanningService
}

// NewPlanningHandler constructs handler.
func NewPlanningHandler(svc PlanningService) *PlanningHandler {
	return &PlanningHandler{service: svc}
}

// Generate godoc
// @Summary Generate a weekly planning
// @Description Validates the relayed model proposal when present, otherwise generates a deterministic fallback schedule. Constraint findings are returned as non-blocking warnings.
// @Tags Plannings
// @Accept json
// @Produce json
// @Param request body dto.GeneratePlanningRequest true "Generation request"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /plannings/generate [post]
func (h *PlanningHandler) Generate(c *gin.Context) {
	var req dto.GeneratePlanningRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}

	resp, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}

// Validate godoc
// @Summary Validate a weekly schedule
// @Description Runs constraint validation over a manually edited schedule and reports soft warnings. Warnings never block.
// @Tags Plannings
// @Accept json
// @Produce json
// @Param request body dto.ValidatePlanningRequest true "Validation request"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /plannings/validate [post]
func (h *PlanningHandler) Validate(c *gin.Context) {
	var req dto.ValidatePlanningRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}

	resp, err := h.service.Validate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}

// Save godoc
// @Summary Save an approved weekly planning
// @Tags Plannings
// @Accept json
// @Produce json
// @Param request body dto.SavePlanningRequest true "Save request"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /plannings [post]
func (h *PlanningHandler) Save(c *gin.Context) {
	var req dto.SavePlanningRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}

	record, err := h.service.Save(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, record)
}

// Get godoc
// @Summary Get the stored planning of a team week
// @Tags Plannings
// @Produce json
// @Param teamId path string true "Team ID"
// @Param year query int true "Year"
// @Param week query int true "ISO week number"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /plannings/{teamId} [get]
func (h *PlanningHandler) Get(c *gin.Context) {
	year, week, err := weekParams(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	record, err := h.service.Get(c.Request.Context(), c.Param("teamId"), year, week)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record, nil)
}

// ListWeeks godoc
// @Summary List stored plannings of a team
// @Tags Plannings
// @Produce json
// @Param teamId path string true "Team ID"
// @Success 200 {object} response.Envelope
// @Router /plannings/{teamId}/weeks [get]
func (h *PlanningHandler) ListWeeks(c *gin.Context) {
	summaries, err := h.service.ListWeeks(c.Request.Context(), c.Param("teamId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summaries, nil)
}

// weekParams reads the year and week query parameters.
func weekParams(c *gin.Context) (int, int, error) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		return 0, 0, appErrors.Clone(appErrors.ErrValidation, "year must be an integer")
	}
	week, err := strconv.Atoi(c.Query("week"))
	if err != nil {
		return 0, 0, appErrors.Clone(appErrors.ErrValidation, "week must be an integer")
	}
	return year, week, nil
}
