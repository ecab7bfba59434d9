package service

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plannora/planning-api/internal/models"
	appErrors "github.com/plannora/planning-api/pkg/errors"
)

func storedPlanning() *models.WeeklyPlanning {
	payload := `{
		"monday": {"Alice": ["08:00-12:00", "13:00-17:00"], "Brice": ["08:00-12:00"]},
		"tuesday": {"Alice": ["08:00-12:00"]},
		"wednesday": {}, "thursday": {}, "friday": {}, "saturday": {}, "sunday": {}
	}`
	return &models.WeeklyPlanning{
		ID:         "p1",
		TeamID:     "team-1",
		Year:       2024,
		WeekNumber: 10,
		Source:     models.PlanningSourceManual,
		Payload:    types.JSONText(payload),
	}
}

func TestExportWeekCSV(t *testing.T) {
	svc := NewExportService(&stubPlanningStore{found: storedPlanning()})

	result, err := svc.ExportWeek(context.Background(), "team-1", 2024, 10, ExportFormatCSV)
	require.NoError(t, err)

	assert.Equal(t, "planning_team-1_2024-W10.csv", result.Filename)
	assert.Equal(t, "text/csv", result.ContentType)

	lines := strings.Split(strings.TrimSpace(string(result.Content)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Employee,Monday,Tuesday,Wednesday,Thursday,Friday,Saturday,Sunday", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "Alice,"), "rows sorted by employee name")
	assert.Contains(t, lines[1], "08:00-12:00, 13:00-17:00")
	assert.True(t, strings.HasPrefix(lines[2], "Brice,"))
}

func TestExportWeekPDF(t *testing.T) {
	svc := NewExportService(&stubPlanningStore{found: storedPlanning()})

	result, err := svc.ExportWeek(context.Background(), "team-1", 2024, 10, ExportFormatPDF)
	require.NoError(t, err)

	assert.Equal(t, "planning_team-1_2024-W10.pdf", result.Filename)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.True(t, strings.HasPrefix(string(result.Content), "%PDF"))
}

func TestExportWeekUnknownFormat(t *testing.T) {
	svc := NewExportService(&stubPlanningStore{found: storedPlanning()})

	_, err := svc.ExportWeek(context.Background(), "team-1", 2024, 10, ExportFormat("xlsx"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestExportWeekMissingPlanning(t *testing.T) {
	svc := NewExportService(&stubPlanningStore{findErr: sql.ErrNoRows})

	_, err := svc.ExportWeek(context.Background(), "team-1", 2024, 10, ExportFormatCSV)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
