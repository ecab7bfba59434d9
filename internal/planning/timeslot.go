// Package planning implements the weekly schedule constraint engine: slot
// token arithmetic, ISO week resolution, day-key vocabularies, proposal
// validation, and the deterministic fallback generator. Every function is
// pure and synchronous; the package owns no state and performs no I/O, so
// concurrent calls need no coordination.
package planning

import (
	"errors"
	"fmt"

	"github.com/plannora/planning-api/internal/models"
)

// MinutesPerDay bounds the minute-of-day domain of a TimeSlot.
const MinutesPerDay = 24 * 60

// ErrMalformedSlot reports a slot token that deviates from "HH:MM-HH:MM"
// with HH in [00,23], MM in [00,59] and start strictly before end.
var ErrMalformedSlot = errors.New("malformed time slot")

// ParseSlot parses a "HH:MM-HH:MM" token into a TimeSlot.
func ParseSlot(token string) (models.TimeSlot, error) {
	// Fixed layout: exactly "HH:MM-HH:MM", 11 bytes.
	if len(token) != 11 || token[5] != '-' {
		return models.TimeSlot{}, fmt.Errorf("%w: %q", ErrMalformedSlot, token)
	}
	start, ok := parseClock(token[:5])
	if !ok {
		return models.TimeSlot{}, fmt.Errorf("%w: %q", ErrMalformedSlot, token)
	}
	end, ok := parseClock(token[6:])
	if !ok {
		return models.TimeSlot{}, fmt.Errorf("%w: %q", ErrMalformedSlot, token)
	}
	if start >= end {
		return models.TimeSlot{}, fmt.Errorf("%w: %q starts at or after its end", ErrMalformedSlot, token)
	}
	return models.TimeSlot{Start: start, End: end}, nil
}

// parseClock converts "HH:MM" to a minute of day.
func parseClock(raw string) (int, bool) {
	if len(raw) != 5 || raw[2] != ':' {
		return 0, false
	}
	hh, ok := parseTwoDigits(raw[0], raw[1])
	if !ok || hh > 23 {
		return 0, false
	}
	mm, ok := parseTwoDigits(raw[3], raw[4])
	if !ok || mm > 59 {
		return 0, false
	}
	return hh*60 + mm, true
}

func parseTwoDigits(tens, units byte) (int, bool) {
	if tens < '0' || tens > '9' || units < '0' || units > '9' {
		return 0, false
	}
	return int(tens-'0')*10 + int(units-'0'), true
}

// DurationMinutes returns the length of a slot in minutes.
func DurationMinutes(slot models.TimeSlot) int {
	return slot.End - slot.Start
}

// TotalMinutes sums the durations of already-valid slots. Overlapping slots
// are not detected here; overlap handling is a caller concern.
func TotalMinutes(slots []models.TimeSlot) int {
	total := 0
	for _, slot := range slots {
		total += DurationMinutes(slot)
	}
	return total
}

// FormatSlot renders a slot back into its "HH:MM-HH:MM" token form.
func FormatSlot(slot models.TimeSlot) string {
	return fmt.Sprintf("%02d:%02d-%02d:%02d", slot.Start/60, slot.Start%60, slot.End/60, slot.End%60)
}

// FormatSlots renders a slot list into token form, preserving order.
func FormatSlots(slots []models.TimeSlot) []string {
	tokens := make([]string, 0, len(slots))
	for _, slot := range slots {
		tokens = append(tokens, FormatSlot(slot))
	}
	return tokens
}

// ParseSlots parses a token list, returning the valid slots alongside the
// tokens that failed to parse.
func ParseSlots(tokens []string) ([]models.TimeSlot, []string) {
	slots := make([]models.TimeSlot, 0, len(tokens))
	var malformed []string
	for _, token := range tokens {
		slot, err := ParseSlot(token)
		if err != nil {
			malformed = append(malformed, token)
			continue
		}
		slots = append(slots, slot)
	}
	return slots, malformed
}
