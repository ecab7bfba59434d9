package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/plannora/planning-api/internal/models"
	appErrors "github.com/plannora/planning-api/pkg/errors"
	"github.com/plannora/planning-api/pkg/response"
)

// ConstraintService manages per-team company constraints.
type ConstraintService interface {
	Get(ctx context.Context, teamID string) (*models.CompanyConstraints, error)
	Put(ctx context.Context, teamID string, constraints models.CompanyConstraints) error
}

// ConstraintHandler manages company constraint endpoints.
type ConstraintHandler struct {
	service ConstraintService
}

// NewConstraintHandler constructs handler.
func NewConstraintHandler(svc ConstraintService) *ConstraintHandler {
	return &ConstraintHandler{service: svc}
}

// Get godoc
// @Summary Get the company constraints of a team
// @Tags Constraints
// @Produce json
// @Param teamId path string true "Team ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /teams/{teamId}/constraints [get]
func (h *ConstraintHandler) Get(c *gin.Context) {
	constraints, err := h.service.Get(c.Request.Context(), c.Param("teamId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, constraints, nil)
}

// Put godoc
// @Summary Store the company constraints of a team
// @Tags Constraints
// @Accept json
// @Produce json
// @Param teamId path string true "Team ID"
// @Param request body models.CompanyConstraints true "Constraints"
// @Success 204 {object} nil
// @Failure 400 {object} response.Envelope
// @Router /teams/{teamId}/constraints [put]
func (h *ConstraintHandler) Put(c *gin.Context) {
	var constraints models.CompanyConstraints
	if err := c.ShouldBindJSON(&constraints); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}

	if err := h.service.Put(c.Request.Context(), c.Param("teamId"), constraints); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
