package planning

import (
	"encoding/json"
	"fmt"

	"github.com/plannora/planning-api/internal/models"
)

// RawProposal is the day -> employee name -> slot tokens shape produced by
// the external model integration. Day keys may use either vocabulary.
type RawProposal map[string]map[string][]string

// ParseProposal decodes the external model's payload into a Schedule. A
// payload that is not schedule-shaped is treated as absent (ok=false) so the
// caller falls through to the fallback generator. Recoverable issues
// (unknown day keys, unknown employee names, malformed slot tokens) become
// warnings instead of failures.
func ParseProposal(raw []byte, employees []models.EmployeeConstraint) (models.Schedule, []models.Warning, bool) {
	if len(raw) == 0 {
		return nil, nil, false
	}
	var proposal RawProposal
	if err := json.Unmarshal(raw, &proposal); err != nil {
		return nil, nil, false
	}
	return DecodeProposal(proposal, employees)
}

// DecodeProposal converts an already-decoded proposal map into a Schedule.
// ok is false when not a single day key is recognizable.
func DecodeProposal(proposal RawProposal, employees []models.EmployeeConstraint) (models.Schedule, []models.Warning, bool) {
	if len(proposal) == 0 {
		return nil, nil, false
	}
	known := make(map[string]bool, len(employees))
	for _, employee := range employees {
		known[employee.Name] = true
	}

	schedule := make(models.Schedule, 7)
	var warnings []models.Warning
	recognized := 0

	for dayKey, byEmployee := range proposal {
		day, ok := ToCanonical(dayKey)
		if !ok {
			warnings = append(warnings, models.Warning{
				Severity: models.WarningSeveritySoft,
				Day:      dayKey,
				Message:  fmt.Sprintf("unknown day key %q in proposal, entry ignored", dayKey),
			})
			continue
		}
		recognized++
		for name, tokens := range byEmployee {
			if !known[name] {
				warnings = append(warnings, models.Warning{
					Severity: models.WarningSeveritySoft,
					Employee: name,
					Day:      day.String(),
					Message:  fmt.Sprintf("proposal references unknown employee %q, slots dropped", name),
				})
				continue
			}
			slots, malformed := ParseSlots(tokens)
			for _, token := range malformed {
				warnings = append(warnings, models.Warning{
					Severity: models.WarningSeveritySoft,
					Employee: name,
					Day:      day.String(),
					Message:  fmt.Sprintf("malformed slot %q for %s on %s, slot dropped", token, name, day),
				})
			}
			schedule.SetSlots(day, name, slots)
		}
	}
	if recognized == 0 {
		return nil, warnings, false
	}
	return schedule, warnings, true
}

// EncodeSchedule serializes a schedule back into the day -> employee ->
// tokens wire shape, spelling days in the requested vocabulary. Days are
// always fully enumerated so consumers see explicit empty assignments.
func EncodeSchedule(schedule models.Schedule, vocabulary Vocabulary) RawProposal {
	encoded := make(RawProposal, 7)
	for _, day := range models.Weekdays() {
		byEmployee := make(map[string][]string)
		for name, slots := range schedule[day] {
			byEmployee[name] = FormatSlots(slots)
		}
		encoded[FromCanonical(day, vocabulary)] = byEmployee
	}
	return encoded
}
