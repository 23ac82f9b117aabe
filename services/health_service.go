package services

import (
	"context"
	"strings"

	"github.com/Sinduaditya/gizi-gemini/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HealthProfileService struct{ db *gorm.DB }

func NewHealthProfileService(db *gorm.DB) *HealthProfileService {
	return &HealthProfileService{db: db}
}

// ByUser returns the user's health profile, or gorm.ErrRecordNotFound when
// none has been saved yet.
func (s *HealthProfileService) ByUser(ctx context.Context, userID uint) (*models.HealthProfile, error) {
	var p models.HealthProfile
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// Upsert inserts or replaces the single profile row keyed on user_id.
func (s *HealthProfileService) Upsert(ctx context.Context, p *models.HealthProfile) error {
	return s.db.WithContext(ctx).
		Clauses(profileConflictClause()).
		Create(p).Error
}

// profileConflictClause updates only the profile's own columns on conflict,
// so created_at and soft-delete state survive repeated saves.
func profileConflictClause() clause.OnConflict {
	return clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"current_illness", "symptoms", "past_illnesses", "year_afflicted",
			"medication", "dosage", "allergy", "family_history",
			"weight_kg", "height_cm", "pulse", "blood_pressure",
			"body_temperature", "updated_at",
		}),
	}
}

// ParsePastIllnesses canonicalizes legacy comma-joined input into the ordered
// list representation the profile stores.
func ParsePastIllnesses(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// BuildHealthSummary formats the four profile fields both AI calls receive.
// The full profile is never sent.
func BuildHealthSummary(p *models.HealthProfile) string {
	return "Penyakit: " + p.CurrentIllness +
		", Gejala: " + p.Symptoms +
		", Obat: " + p.Medication +
		", Alergi: " + p.Allergy
}
