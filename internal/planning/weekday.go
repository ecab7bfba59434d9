package planning

import (
	"strings"

	"github.com/plannora/planning-api/internal/models"
)

// Vocabulary identifies one of the two day-naming vocabularies exchanged
// with upstream and downstream collaborators.
type Vocabulary string

const (
	// VocabularyEnglish is the canonical ISO English spelling ("monday").
	VocabularyEnglish Vocabulary = "english"
	// VocabularyFrench is the native-language spelling ("lundi") still used
	// by partially migrated callers.
	VocabularyFrench Vocabulary = "french"
)

var frenchNames = [7]string{
	"lundi",
	"mardi",
	"mercredi",
	"jeudi",
	"vendredi",
	"samedi",
	"dimanche",
}

// ToCanonical resolves a day key from either vocabulary to its Weekday.
// The second result is false when the key belongs to neither vocabulary.
func ToCanonical(key string) (models.Weekday, bool) {
	needle := strings.ToLower(strings.TrimSpace(key))
	if day, ok := models.ParseWeekday(needle); ok {
		return day, true
	}
	for i, name := range frenchNames {
		if name == needle {
			return models.Weekday(i), true
		}
	}
	return models.Monday, false
}

// FromCanonical spells a Weekday in the requested vocabulary. Unknown
// vocabularies fall back to the canonical English spelling.
func FromCanonical(day models.Weekday, vocabulary Vocabulary) string {
	if !day.Valid() {
		return day.String()
	}
	if vocabulary == VocabularyFrench {
		return frenchNames[day]
	}
	return day.String()
}

// TranslateDayKey maps a day key into the target vocabulary. Unknown keys
// pass through unchanged so partially migrated callers keep working.
func TranslateDayKey(key string, vocabulary Vocabulary) string {
	day, ok := ToCanonical(key)
	if !ok {
		return key
	}
	return FromCanonical(day, vocabulary)
}
