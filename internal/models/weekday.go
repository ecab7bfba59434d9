package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Weekday enumerates the seven ISO week days, Monday first. The ordinal
// order (0-6) is the iteration order for every per-day operation.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [7]string{
	"monday",
	"tuesday",
	"wednesday",
	"thursday",
	"friday",
	"saturday",
	"sunday",
}

// Weekdays returns all seven days in ordinal order.
func Weekdays() []Weekday {
	return []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}
}

// Valid reports whether the ordinal is inside the Monday..Sunday range.
func (d Weekday) Valid() bool {
	return d >= Monday && d <= Sunday
}

// String returns the canonical ISO English spelling in lower case.
func (d Weekday) String() string {
	if !d.Valid() {
		return fmt.Sprintf("weekday(%d)", int(d))
	}
	return weekdayNames[d]
}

// ParseWeekday resolves an ISO English day name to its Weekday.
func ParseWeekday(name string) (Weekday, bool) {
	needle := strings.ToLower(strings.TrimSpace(name))
	for i, candidate := range weekdayNames {
		if candidate == needle {
			return Weekday(i), true
		}
	}
	return Monday, false
}

// MarshalJSON encodes the day as its canonical English name.
func (d Weekday) MarshalJSON() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("weekday ordinal %d out of range", int(d))
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes a canonical English day name.
func (d *Weekday) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	day, ok := ParseWeekday(name)
	if !ok {
		return fmt.Errorf("unknown weekday %q", name)
	}
	*d = day
	return nil
}
