package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm/clause"
)

// Re-saving a profile must not rewrite the row's bookkeeping columns; the
// upsert assigns only the profile's own fields (plus updated_at).
func TestProfileConflictClause(t *testing.T) {
	oc := profileConflictClause()

	assert.Equal(t, []clause.Column{{Name: "user_id"}}, oc.Columns)
	assert.False(t, oc.UpdateAll)

	set := oc.DoUpdates

	updated := map[string]bool{}
	for _, a := range set {
		updated[a.Column.Name] = true
	}
	for _, col := range []string{
		"current_illness", "symptoms", "past_illnesses", "year_afflicted",
		"medication", "dosage", "allergy", "family_history",
		"weight_kg", "height_cm", "pulse", "blood_pressure",
		"body_temperature", "updated_at",
	} {
		assert.True(t, updated[col], "missing update for %s", col)
	}
	for _, col := range []string{"id", "user_id", "created_at", "deleted_at"} {
		assert.False(t, updated[col], "%s must not be rewritten on upsert", col)
	}
}

func TestParsePastIllnesses(t *testing.T) {
	assert.Equal(t, []string{"Tipes", "DBD"}, ParsePastIllnesses("Tipes, DBD"))
	assert.Equal(t, []string{"Asma"}, ParsePastIllnesses("  Asma  "))
	assert.Empty(t, ParsePastIllnesses(" , ,"))
	assert.Empty(t, ParsePastIllnesses(""))
}
