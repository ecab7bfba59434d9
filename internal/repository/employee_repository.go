package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/plannora/planning-api/internal/models"
)

// EmployeeRepository loads the per-employee scheduling constraints of a team.
type EmployeeRepository struct {
	db *sqlx.DB
}

// NewEmployeeRepository creates a new employee repository.
func NewEmployeeRepository(db *sqlx.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

type employeeRow struct {
	ID               string         `db:"id"`
	Name             string         `db:"name"`
	Email            string         `db:"email"`
	RestDay          sql.NullString `db:"rest_day"`
	WeeklyHours      sql.NullInt64  `db:"weekly_hours"`
	PreferredHours   pq.StringArray `db:"preferred_hours"`
	AllowSplitShifts bool           `db:"allow_split_shifts"`
}

type exceptionRow struct {
	EmployeeID string `db:"employee_id"`
	models.Exception
}

// ListByTeam returns the employees of a team together with their dated
// exceptions, ordered by name for deterministic rotation indexing.
func (r *EmployeeRepository) ListByTeam(ctx context.Context, teamID string) ([]models.EmployeeConstraint, error) {
	var rows []employeeRow
	query := `SELECT id, name, email, rest_day, weekly_hours, preferred_hours, allow_split_shifts
		FROM employees WHERE team_id = $1 ORDER BY name ASC`
	if err := r.db.SelectContext(ctx, &rows, query, teamID); err != nil {
		return nil, fmt.Errorf("list employees for team %s: %w", teamID, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	exceptions, err := r.listExceptions(ctx, ids)
	if err != nil {
		return nil, err
	}

	employees := make([]models.EmployeeConstraint, 0, len(rows))
	for _, row := range rows {
		employee := models.EmployeeConstraint{
			ID:               row.ID,
			Name:             row.Name,
			Email:            row.Email,
			PreferredHours:   row.PreferredHours,
			Exceptions:       exceptions[row.ID],
			AllowSplitShifts: row.AllowSplitShifts,
		}
		if row.RestDay.Valid {
			if day, ok := models.ParseWeekday(row.RestDay.String); ok {
				employee.RestDay = &day
			}
		}
		if row.WeeklyHours.Valid {
			hours := int(row.WeeklyHours.Int64)
			employee.WeeklyHours = &hours
		}
		employees = append(employees, employee)
	}
	return employees, nil
}

func (r *EmployeeRepository) listExceptions(ctx context.Context, employeeIDs []string) (map[string][]models.Exception, error) {
	placeholders := make([]string, len(employeeIDs))
	args := make([]interface{}, len(employeeIDs))
	for i, id := range employeeIDs {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}
	query := fmt.Sprintf(`SELECT employee_id, date, type, reason
		FROM employee_exceptions WHERE employee_id IN (%s) ORDER BY date ASC`,
		strings.Join(placeholders, ", "))

	var rows []exceptionRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list employee exceptions: %w", err)
	}

	result := make(map[string][]models.Exception, len(employeeIDs))
	for _, row := range rows {
		result[row.EmployeeID] = append(result[row.EmployeeID], row.Exception)
	}
	return result, nil
}
