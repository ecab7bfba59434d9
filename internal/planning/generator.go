package planning

import (
	"sort"
	"time"

	"github.com/plannora/planning-api/internal/models"
)

const (
	// rotationCycle drives the round-robin rest heuristic: one designated
	// rest slot per 5-day cycle per employee, independent of any restDay
	// preference.
	rotationCycle = 5
	rotationRest  = rotationCycle - 1

	// morningCutoff separates the "morning" slots kept on reduced days (10:00).
	morningCutoff = 10 * 60
)

// defaultOpeningTokens is the opening calendar assumed when a company has no
// explicit opening hours: 08:00-12:00 and 13:00-17:00, Monday to Friday.
var defaultOpeningTokens = []string{"08:00-12:00", "13:00-17:00"}

// reducedFallbackSlot replaces a reduced day when no opening slot starts
// before the morning cutoff.
var reducedFallbackSlot = models.TimeSlot{Start: 8 * 60, End: 12 * 60}

// Generate synthesizes a deterministic, constraint-respecting weekly
// schedule used when no validated external proposal exists. The output is
// fully populated: every employee has an entry, possibly empty, for every
// weekday. It trades optimality for determinism and total coverage, and is
// not re-validated here; callers run it through Validate when they need a
// warning report.
func Generate(employees []models.EmployeeConstraint, company models.CompanyConstraints, year, weekNumber int) (models.Schedule, error) {
	week, err := ResolveWeek(year, weekNumber)
	if err != nil {
		return nil, err
	}
	dates := DailyDates(week.WeekStart)
	days := workingDays(company)

	schedule := make(models.Schedule, 7)
	for _, day := range models.Weekdays() {
		for _, employee := range employees {
			schedule.SetSlots(day, employee.Name, []models.TimeSlot{})
		}
	}

	for i, employee := range employees {
		for dayIndex, day := range days {
			slots := daySlots(employee, day, dates[day], i, dayIndex, company)
			if len(slots) > 0 {
				schedule.SetSlots(day, employee.Name, slots)
			}
		}
	}
	return schedule, nil
}

// daySlots decides what one employee works on one working day.
func daySlots(employee models.EmployeeConstraint, day models.Weekday, date time.Time, employeeIndex, dayIndex int, company models.CompanyConstraints) []models.TimeSlot {
	exception := employee.ExceptionOn(date)
	if exception != nil && exception.Type.BlocksWork() {
		// Forced empty regardless of the rotation.
		return nil
	}
	if employee.RestDay != nil && *employee.RestDay == day {
		return nil
	}
	opening := openingSlots(company, day)
	if exception != nil && exception.Type == models.ExceptionReduced {
		return reducedSlots(opening)
	}
	if (employeeIndex+dayIndex)%rotationCycle == rotationRest {
		return nil
	}
	return opening
}

// reducedSlots keeps only the opening windows starting before the morning
// cutoff, substituting a single default morning slot when none qualifies.
func reducedSlots(opening []models.TimeSlot) []models.TimeSlot {
	var kept []models.TimeSlot
	for _, slot := range opening {
		if slot.Start < morningCutoff {
			kept = append(kept, slot)
		}
	}
	if len(kept) == 0 {
		return []models.TimeSlot{reducedFallbackSlot}
	}
	return kept
}

// workingDays builds the canonical working-day list from the opening days,
// deduplicated and in ordinal order, defaulting to Monday-Friday.
func workingDays(company models.CompanyConstraints) []models.Weekday {
	if len(company.OpeningDays) == 0 {
		return []models.Weekday{models.Monday, models.Tuesday, models.Wednesday, models.Thursday, models.Friday}
	}
	seen := make(map[models.Weekday]bool, len(company.OpeningDays))
	days := make([]models.Weekday, 0, len(company.OpeningDays))
	for _, day := range company.OpeningDays {
		if !day.Valid() || seen[day] {
			continue
		}
		seen[day] = true
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })
	return days
}

// openingSlots returns the parsed opening windows of a day, falling back to
// the default calendar when the company defines no explicit entry. Tokens
// that fail to parse are skipped.
func openingSlots(company models.CompanyConstraints, day models.Weekday) []models.TimeSlot {
	tokens, explicit := company.HoursFor(day)
	if !explicit {
		tokens = defaultOpeningTokens
	}
	slots, _ := ParseSlots(tokens)
	return slots
}
