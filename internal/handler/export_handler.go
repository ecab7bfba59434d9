package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/plannora/planning-api/internal/service"
	appErrors "github.com/plannora/planning-api/pkg/errors"
	"github.com/plannora/planning-api/pkg/response"
)

// ExportService renders stored plannings into downloadable documents.
type ExportService interface {
	ExportWeek(ctx context.Context, teamID string, year, weekNumber int, format service.ExportFormat) (*service.ExportResult, error)
}

// ExportHandler serves planning downloads.
type ExportHandler struct {
	service ExportService
	enabled bool
}

// NewExportHandler constructs handler.
func NewExportHandler(svc ExportService, enabled bool) *ExportHandler {
	return &ExportHandler{service: svc, enabled: enabled}
}

// Export godoc
// @Summary Export the stored planning of a team week
// @Tags Plannings
// @Produce text/csv
// @Produce application/pdf
// @Param teamId path string true "Team ID"
// @Param year query int true "Year"
// @Param week query int true "ISO week number"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Failure 404 {object} response.Envelope
// @Router /plannings/{teamId}/export [get]
func (h *ExportHandler) Export(c *gin.Context) {
	if !h.enabled {
		response.Error(c, appErrors.Clone(appErrors.ErrPreconditionFailed, "exports are disabled"))
		return
	}

	year, week, err := weekParams(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	format := service.ExportFormat(c.DefaultQuery("format", "csv"))

	result, err := h.service.ExportWeek(c.Request.Context(), c.Param("teamId"), year, week, format)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Content)
}
