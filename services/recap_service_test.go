package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarizeRecapEmpty(t *testing.T) {
	out := summarizeRecap(0, 0)
	assert.EqualValues(t, 0, out.Total)
	assert.Equal(t, 0, out.HealthyPct)
	assert.Equal(t, 0, out.JunkPct)
}

func TestSummarizeRecapPercentages(t *testing.T) {
	out := summarizeRecap(3, 7)
	assert.EqualValues(t, 10, out.Total)
	assert.Equal(t, 30, out.HealthyPct)
	assert.Equal(t, 70, out.JunkPct)
}

func TestSummarizeRecapFlooring(t *testing.T) {
	// each percentage is floored independently; they need not sum to 100
	out := summarizeRecap(1, 2)
	assert.Equal(t, 33, out.HealthyPct)
	assert.Equal(t, 66, out.JunkPct)
}

func TestSummarizeRecapEra(t *testing.T) {
	assert.Equal(t, JunkFoodEra, summarizeRecap(5, 5).Era, "ties classify as the junk era")
	assert.Equal(t, HealthyEra, summarizeRecap(6, 4).Era)
	assert.Equal(t, JunkFoodEra, summarizeRecap(2, 9).Era)
}
