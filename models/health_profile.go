package models

import "gorm.io/gorm"

// HealthProfile holds the self-reported medical data used to personalize
// every nutrition-safety evaluation. One row per user; saves are upserts
// keyed on UserID.
type HealthProfile struct {
	gorm.Model
	UserID         uint   `gorm:"uniqueIndex;not null"`
	CurrentIllness string
	Symptoms       string // comma-joined multi-select, stored as entered
	// PastIllnesses is canonically an ordered list; older revisions stored a
	// comma-joined string, which is only accepted as form input now.
	PastIllnesses   []string `gorm:"serializer:json"`
	YearAfflicted   *int
	Medication      string
	Dosage          string
	Allergy         string
	FamilyHistory   string
	WeightKg        float64
	HeightCm        float64
	Pulse           int
	BloodPressure   string `gorm:"size:16"` // e.g. "120/80"
	BodyTemperature float64
}
