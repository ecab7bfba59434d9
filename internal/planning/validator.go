package planning

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/plannora/planning-api/internal/models"
)

// hoursTolerance is the accepted deviation around the contractual weekly
// volume, as a fraction of that volume.
const hoursTolerance = 0.10

// Validate runs the four constraint passes over a proposed schedule and
// returns the accumulated soft warnings. All passes always run so the
// approver gets the complete picture; nothing short-circuits. The schedule
// is never mutated. The only error is an out-of-range (year, week) pair.
func Validate(schedule models.Schedule, employees []models.EmployeeConstraint, company models.CompanyConstraints, year, weekNumber int) ([]models.Warning, error) {
	return validate(schedule, employees, company, year, weekNumber, false)
}

// ValidateStrict behaves like Validate and additionally reports intra-day
// slot overlaps per employee. The extra pass only appends warnings; the
// default passes are unchanged.
func ValidateStrict(schedule models.Schedule, employees []models.EmployeeConstraint, company models.CompanyConstraints, year, weekNumber int) ([]models.Warning, error) {
	return validate(schedule, employees, company, year, weekNumber, true)
}

func validate(schedule models.Schedule, employees []models.EmployeeConstraint, company models.CompanyConstraints, year, weekNumber int, strict bool) ([]models.Warning, error) {
	week, err := ResolveWeek(year, weekNumber)
	if err != nil {
		return nil, err
	}

	warnings := make([]models.Warning, 0)
	warnings = append(warnings, checkRestDays(schedule, employees)...)
	warnings = append(warnings, checkExceptions(schedule, employees, week)...)
	warnings = append(warnings, checkStaffing(schedule, employees, company)...)
	warnings = append(warnings, checkContractualHours(schedule, employees)...)
	if strict {
		warnings = append(warnings, checkOverlaps(schedule, employees)...)
	}
	return warnings, nil
}

// checkRestDays warns whenever an employee is scheduled on their rest day.
func checkRestDays(schedule models.Schedule, employees []models.EmployeeConstraint) []models.Warning {
	var warnings []models.Warning
	for _, employee := range employees {
		if employee.RestDay == nil {
			continue
		}
		day := *employee.RestDay
		slots := schedule.SlotsFor(day, employee.Name)
		if len(slots) == 0 {
			continue
		}
		warnings = append(warnings, models.Warning{
			Severity: models.WarningSeveritySoft,
			Employee: employee.Name,
			Day:      day.String(),
			Message: fmt.Sprintf("%s is scheduled on their rest day (%s): %s",
				employee.Name, day, strings.Join(FormatSlots(slots), ", ")),
		})
	}
	return warnings
}

// checkExceptions warns when a blocking exception (unavailable, sick,
// vacation) inside the week coincides with assigned slots. Reduced-type
// exceptions are informational for this pass; the generator handles them.
func checkExceptions(schedule models.Schedule, employees []models.EmployeeConstraint, week models.WeekRange) []models.Warning {
	var warnings []models.Warning
	for _, employee := range employees {
		for _, exception := range employee.Exceptions {
			if !exception.Type.BlocksWork() {
				continue
			}
			day, ok := DayOf(week, exception.Date)
			if !ok {
				continue
			}
			slots := schedule.SlotsFor(day, employee.Name)
			if len(slots) == 0 {
				continue
			}
			warnings = append(warnings, models.Warning{
				Severity: models.WarningSeveritySoft,
				Employee: employee.Name,
				Day:      day.String(),
				Message: fmt.Sprintf("%s has a %s exception on %s (%s) but is scheduled: %s",
					employee.Name, exception.Type, day, exception.Date.Format("2006-01-02"),
					strings.Join(FormatSlots(slots), ", ")),
			})
		}
	}
	return warnings
}

// checkStaffing counts employees working each opening day and warns below
// the required floor. This is a coverage count, not a simultaneous-presence
// check across overlapping windows.
func checkStaffing(schedule models.Schedule, employees []models.EmployeeConstraint, company models.CompanyConstraints) []models.Warning {
	required := company.MinStaff()
	var warnings []models.Warning
	for _, day := range models.Weekdays() {
		if !company.IsOpeningDay(day) {
			continue
		}
		if hours, explicit := company.HoursFor(day); explicit && len(hours) == 0 {
			// Explicitly closed that day.
			continue
		}
		observed := 0
		for _, employee := range employees {
			if len(schedule.SlotsFor(day, employee.Name)) > 0 {
				observed++
			}
		}
		if observed < required {
			warnings = append(warnings, models.Warning{
				Severity: models.WarningSeveritySoft,
				Day:      day.String(),
				Message: fmt.Sprintf("insufficient staffing on %s: %d scheduled, %d required",
					day, observed, required),
			})
		}
	}
	return warnings
}

// checkContractualHours compares each employee's weekly total against their
// contractual volume with a ±10% tolerance band.
func checkContractualHours(schedule models.Schedule, employees []models.EmployeeConstraint) []models.Warning {
	var warnings []models.Warning
	for _, employee := range employees {
		minutes := 0
		for _, day := range models.Weekdays() {
			minutes += TotalMinutes(schedule.SlotsFor(day, employee.Name))
		}
		actual := float64(minutes) / 60
		contractual := float64(employee.ContractualHours())
		if math.Abs(actual-contractual) > contractual*hoursTolerance {
			warnings = append(warnings, models.Warning{
				Severity: models.WarningSeveritySoft,
				Employee: employee.Name,
				Message: fmt.Sprintf("%s works %.1fh this week, outside tolerance of contractual %.0fh",
					employee.Name, actual, contractual),
			})
		}
	}
	return warnings
}

// checkOverlaps is the strict-mode pass: it reports slots of one employee
// that overlap within the same day.
func checkOverlaps(schedule models.Schedule, employees []models.EmployeeConstraint) []models.Warning {
	var warnings []models.Warning
	for _, day := range models.Weekdays() {
		for _, employee := range employees {
			slots := schedule.SlotsFor(day, employee.Name)
			if len(slots) < 2 {
				continue
			}
			ordered := make([]models.TimeSlot, len(slots))
			copy(ordered, slots)
			sort.Slice(ordered, func(i, j int) bool { return ordered[i].Start < ordered[j].Start })
			for i := 0; i < len(ordered)-1; i++ {
				if ordered[i+1].Start < ordered[i].End {
					warnings = append(warnings, models.Warning{
						Severity: models.WarningSeveritySoft,
						Employee: employee.Name,
						Day:      day.String(),
						Message: fmt.Sprintf("%s has overlapping slots on %s: %s and %s",
							employee.Name, day, FormatSlot(ordered[i]), FormatSlot(ordered[i+1])),
					})
				}
			}
		}
	}
	return warnings
}
