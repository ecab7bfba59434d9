package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/plannora/planning-api/internal/models"
	"github.com/plannora/planning-api/internal/planning"
	appErrors "github.com/plannora/planning-api/pkg/errors"
	"github.com/plannora/planning-api/pkg/export"
)

// ExportFormat selects the rendering of an exported planning.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

// ExportResult is a rendered planning document.
type ExportResult struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ExportService renders stored weekly plannings as downloadable documents.
type ExportService struct {
	plannings PlanningStore
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
}

func NewExportService(plannings PlanningStore) *ExportService {
	return &ExportService{
		plannings: plannings,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
	}
}

// ExportWeek renders the stored planning of a team week in the given format.
func (s *ExportService) ExportWeek(ctx context.Context, teamID string, year, weekNumber int, format ExportFormat) (*ExportResult, error) {
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

	dataset, err := planningDataset(record)
	if err != nil {
		return nil, err
	}

	basename := fmt.Sprintf("planning_%s_%d-W%02d", teamID, year, weekNumber)
	switch format {
	case ExportFormatCSV:
		content, err := s.csv.Render(dataset)
		if err != nil {
			return nil, wrapAs(appErrors.ErrInternal, err)
		}
		return &ExportResult{Filename: basename + ".csv", ContentType: "text/csv", Content: content}, nil
	case ExportFormatPDF:
		title := fmt.Sprintf("Weekly planning %d-W%02d", year, weekNumber)
		content, err := s.pdf.Render(dataset, title)
		if err != nil {
			return nil, wrapAs(appErrors.ErrInternal, err)
		}
		return &ExportResult{Filename: basename + ".pdf", ContentType: "application/pdf", Content: content}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
}

func title(name string) string {
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

// planningDataset flattens a stored payload into one row per employee with a
// column per weekday.
func planningDataset(record *models.WeeklyPlanning) (export.Dataset, error) {
	var payload planning.RawProposal
	if err := json.Unmarshal(record.Payload, &payload); err != nil {
		return export.Dataset{}, wrapAs(appErrors.ErrInternal, err)
	}

	headers := []string{"Employee"}
	for _, day := range models.Weekdays() {
		headers = append(headers, title(day.String()))
	}

	seen := map[string]bool{}
	var names []string
	for _, byEmployee := range payload {
		for name := range byEmployee {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)

	rows := make([]map[string]string, 0, len(names))
	for _, name := range names {
		row := map[string]string{"Employee": name}
		for _, day := range models.Weekdays() {
			tokens := payload[day.String()][name]
			row[title(day.String())] = strings.Join(tokens, ", ")
		}
		rows = append(rows, row)
	}

	return export.Dataset{Headers: headers, Rows: rows}, nil
}
