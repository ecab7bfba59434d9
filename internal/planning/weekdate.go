package planning

import (
	"fmt"
	"time"

	"github.com/plannora/planning-api/internal/models"
	appErrors "github.com/plannora/planning-api/pkg/errors"
)

// Supported planning horizon. Callers validate input first; the resolver
// re-asserts the boundary because no calendar dates exist outside it.
const (
	MinYear = 2020
	MaxYear = 2030

	MinWeekNumber = 1
	MaxWeekNumber = 53
)

// ResolveWeek maps (year, ISO week number) to concrete calendar dates using
// the ISO-8601 rule: week 1 is the week containing January 4th and weeks
// start on Monday. All dates are at midnight UTC.
func ResolveWeek(year, weekNumber int) (models.WeekRange, error) {
	if year < MinYear || year > MaxYear {
		return models.WeekRange{}, appErrors.Clone(appErrors.ErrInvalidWeek,
			fmt.Sprintf("year %d outside supported range [%d,%d]", year, MinYear, MaxYear))
	}
	if weekNumber < MinWeekNumber || weekNumber > MaxWeekNumber {
		return models.WeekRange{}, appErrors.Clone(appErrors.ErrInvalidWeek,
			fmt.Sprintf("week %d outside range [%d,%d]", weekNumber, MinWeekNumber, MaxWeekNumber))
	}

	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	week1Monday := jan4.AddDate(0, 0, -isoWeekdayIndex(jan4))
	weekStart := week1Monday.AddDate(0, 0, (weekNumber-1)*7)
	return models.WeekRange{
		WeekStart: weekStart,
		WeekEnd:   weekStart.AddDate(0, 0, 6),
	}, nil
}

// DailyDates expands a week start into the seven consecutive calendar dates
// keyed by Weekday.
func DailyDates(weekStart time.Time) map[models.Weekday]time.Time {
	dates := make(map[models.Weekday]time.Time, 7)
	for _, day := range models.Weekdays() {
		dates[day] = weekStart.AddDate(0, 0, int(day))
	}
	return dates
}

// DayOf resolves a date inside the week to its Weekday. The second result is
// false when the date falls outside [weekStart, weekStart+6d].
func DayOf(week models.WeekRange, date time.Time) (models.Weekday, bool) {
	normalized := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	offset := int(normalized.Sub(week.WeekStart).Hours() / 24)
	if offset < 0 || offset > 6 {
		return models.Monday, false
	}
	return models.Weekday(offset), true
}

// Contains reports whether the date falls inside the week range.
func Contains(week models.WeekRange, date time.Time) bool {
	_, ok := DayOf(week, date)
	return ok
}

// isoWeekdayIndex returns the Monday-based index (Monday=0 .. Sunday=6).
func isoWeekdayIndex(date time.Time) int {
	return (int(date.Weekday()) + 6) % 7
}
