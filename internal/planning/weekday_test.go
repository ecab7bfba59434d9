package planning

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plannora/planning-api/internal/models"
)

func TestDayKeyRoundTripBothVocabularies(t *testing.T) {
	english := []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}
	french := []string{"lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi", "dimanche"}

	for i, key := range english {
		day, ok := ToCanonical(key)
		require.True(t, ok, key)
		assert.Equal(t, models.Weekday(i), day)
		assert.Equal(t, key, FromCanonical(day, VocabularyEnglish))
	}
	for i, key := range french {
		day, ok := ToCanonical(key)
		require.True(t, ok, key)
		assert.Equal(t, models.Weekday(i), day)
		assert.Equal(t, key, FromCanonical(day, VocabularyFrench))
	}
}

func TestToCanonicalNormalizesCaseAndSpace(t *testing.T) {
	day, ok := ToCanonical("  Mercredi ")
	require.True(t, ok)
	assert.Equal(t, models.Wednesday, day)
}

func TestTranslateDayKeyPassesUnknownKeysThrough(t *testing.T) {
	assert.Equal(t, "someday", TranslateDayKey("someday", VocabularyEnglish))
	assert.Equal(t, "vendredi", TranslateDayKey("friday", VocabularyFrench))
	assert.Equal(t, "friday", TranslateDayKey("vendredi", VocabularyEnglish))
}

func TestWeekdayOrdinalOrder(t *testing.T) {
	days := models.Weekdays()
	require.Len(t, days, 7)
	assert.Equal(t, models.Monday, days[0])
	assert.Equal(t, models.Sunday, days[6])
	for i, day := range days {
		assert.Equal(t, i, int(day))
	}
}
