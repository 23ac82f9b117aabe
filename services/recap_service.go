package services

import (
	"context"
	"time"

	"github.com/Sinduaditya/gizi-gemini/models"

	"gorm.io/gorm"
)

const (
	HealthyEra  = "Healthy Era"
	JunkFoodEra = "Junk Food Era"
)

type RecapSummary struct {
	Total      int64  `json:"total"`
	Healthy    int64  `json:"healthy"`
	Junk       int64  `json:"junk"`
	HealthyPct int    `json:"healthy_pct"`
	JunkPct    int    `json:"junk_pct"`
	Era        string `json:"era"`
}

type RecapService struct{ db *gorm.DB }

func NewRecapService(db *gorm.DB) *RecapService { return &RecapService{db: db} }

// Recap rolls up the user's scans from the last 30 days (inclusive lower
// bound, exclusive at now).
func (s *RecapService) Recap(ctx context.Context, userID uint, now time.Time) (*RecapSummary, error) {
	since := now.AddDate(0, 0, -30)

	var records []models.ScanRecord
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, since, now).
		Find(&records).Error; err != nil {
		return nil, err
	}

	var healthy, junk int64
	for _, r := range records {
		switch r.Category {
		case models.CategoryHealthy:
			healthy++
		case models.CategoryJunk:
			junk++
		}
	}
	return summarizeRecap(healthy, junk), nil
}

// summarizeRecap computes the rollup. Percentages are floored independently,
// so they are not guaranteed to sum to 100; ties classify as the junk era.
func summarizeRecap(healthy, junk int64) *RecapSummary {
	total := healthy + junk

	var healthyPct, junkPct int
	if total > 0 {
		healthyPct = int(100 * healthy / total)
		junkPct = int(100 * junk / total)
	}

	era := JunkFoodEra
	if healthy > junk {
		era = HealthyEra
	}

	return &RecapSummary{
		Total:      total,
		Healthy:    healthy,
		Junk:       junk,
		HealthyPct: healthyPct,
		JunkPct:    junkPct,
		Era:        era,
	}
}
