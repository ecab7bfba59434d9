package models

// DayHours lists the opening windows of one weekday as "HH:MM-HH:MM" tokens.
type DayHours struct {
	Day   Weekday  `json:"day"`
	Hours []string `json:"hours"`
}

// RoleConstraint demands the presence of a role during specific windows.
type RoleConstraint struct {
	Role       string   `json:"role"`
	RequiredAt []string `json:"requiredAt"`
}

// CompanyConstraints is the company-wide calendar for one team: which days
// need coverage and during which time windows.
type CompanyConstraints struct {
	OpeningDays            []Weekday        `json:"openingDays"`
	OpeningHours           []DayHours       `json:"openingHours"`
	MinStaffSimultaneously int              `json:"minStaffSimultaneously,omitempty"`
	MinHoursPerDay         int              `json:"minHoursPerDay,omitempty"`
	MaxHoursPerDay         int              `json:"maxHoursPerDay,omitempty"`
	LunchBreakDuration     int              `json:"lunchBreakDuration,omitempty"`
	MandatoryLunchBreak    bool             `json:"mandatoryLunchBreak,omitempty"`
	RoleConstraints        []RoleConstraint `json:"roleConstraints,omitempty"`
}

// MinStaff returns the required staffing floor, defaulting to 1.
func (c CompanyConstraints) MinStaff() int {
	if c.MinStaffSimultaneously >= 1 {
		return c.MinStaffSimultaneously
	}
	return 1
}

// HoursFor returns the explicit opening tokens of a day and whether an
// explicit entry exists. An existing entry with no hours means the day is
// fully closed.
func (c CompanyConstraints) HoursFor(day Weekday) ([]string, bool) {
	for _, entry := range c.OpeningHours {
		if entry.Day == day {
			return entry.Hours, true
		}
	}
	return nil, false
}

// IsOpeningDay reports whether the day is part of the coverage calendar.
func (c CompanyConstraints) IsOpeningDay(day Weekday) bool {
	for _, candidate := range c.OpeningDays {
		if candidate == day {
			return true
		}
	}
	return false
}
