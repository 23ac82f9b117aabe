package models

import "gorm.io/gorm"

// Evaluation statuses as the generation model is prompted to emit them.
// Matching is exact; never substring-match these values.
const (
	StatusSafe    = "Aman"
	StatusUnsafe  = "Tidak Aman"
	StatusError   = "Error"
	StatusUnknown = "Tidak Diketahui"
)

const (
	CategoryHealthy = "Sehat"
	CategoryJunk    = "Junk"
)

// ScanRecord is one persisted outcome of running a label photo through the
// scan pipeline. Rows are append-only: never updated or deleted, and two
// identical uploads produce two rows.
type ScanRecord struct {
	gorm.Model
	UserID         uint   `gorm:"index;not null"`
	OCRText        string `gorm:"type:text"`
	Status         string `gorm:"size:20"`
	Reason         string `gorm:"type:text"`
	Recommendation string `gorm:"type:text"`
	Category       string `gorm:"size:10"`
	ImageURL       string
}

// CategoryForStatus derives the recap category from an evaluation status.
func CategoryForStatus(status string) string {
	if status == StatusSafe {
		return CategoryHealthy
	}
	return CategoryJunk
}
