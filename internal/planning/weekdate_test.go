package planning

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plannora/planning-api/internal/models"
	appErrors "github.com/plannora/planning-api/pkg/errors"
)

func TestResolveWeekKnownMondays(t *testing.T) {
	cases := []struct {
		year, week int
		wantStart  string
	}{
		{2024, 1, "2024-01-01"},
		{2021, 1, "2021-01-04"},
		// 2020 is a 53-week leap year ending on a Thursday.
		{2020, 53, "2020-12-28"},
		// Week 1 of 2026 starts in the previous calendar year.
		{2026, 1, "2025-12-29"},
		{2025, 26, "2025-06-23"},
	}
	for _, tc := range cases {
		week, err := ResolveWeek(tc.year, tc.week)
		require.NoError(t, err, "resolve(%d,%d)", tc.year, tc.week)
		assert.Equal(t, tc.wantStart, week.WeekStart.Format("2006-01-02"))
		assert.Equal(t, time.Monday, week.WeekStart.Weekday())
		assert.Equal(t, 6*24*time.Hour, week.WeekEnd.Sub(week.WeekStart))
	}
}

func TestResolveWeekRejectsOutOfRangeInput(t *testing.T) {
	for _, tc := range []struct{ year, week int }{
		{2019, 10},
		{2031, 10},
		{2024, 0},
		{2024, 54},
		{2024, -3},
	} {
		_, err := ResolveWeek(tc.year, tc.week)
		require.Error(t, err, "resolve(%d,%d)", tc.year, tc.week)
		assert.Equal(t, appErrors.ErrInvalidWeek.Code, appErrors.FromError(err).Code)
	}
}

func TestDailyDatesAreConsecutive(t *testing.T) {
	week, err := ResolveWeek(2024, 10)
	require.NoError(t, err)

	dates := DailyDates(week.WeekStart)
	require.Len(t, dates, 7)
	for _, day := range models.Weekdays() {
		want := week.WeekStart.AddDate(0, 0, int(day))
		assert.True(t, dates[day].Equal(want), "%s should be %s", day, want)
	}
	assert.True(t, dates[models.Sunday].Equal(week.WeekEnd))
}

func TestDayOfResolvesDatesWithinWeek(t *testing.T) {
	week, err := ResolveWeek(2024, 1)
	require.NoError(t, err)

	day, ok := DayOf(week, time.Date(2024, 1, 3, 15, 30, 0, 0, time.UTC))
	require.True(t, ok)
	assert.Equal(t, models.Wednesday, day)

	_, ok = DayOf(week, time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC))
	assert.False(t, ok)
	assert.False(t, Contains(week, time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)))
}
