package services

import (
	"context"

	"github.com/Sinduaditya/gizi-gemini/models"

	"gorm.io/gorm"
)

// ScanHistoryService is the append-only store behind the scan pipeline.
type ScanHistoryService struct{ db *gorm.DB }

func NewScanHistoryService(db *gorm.DB) *ScanHistoryService {
	return &ScanHistoryService{db: db}
}

func (s *ScanHistoryService) Append(ctx context.Context, rec *models.ScanRecord) error {
	return s.db.WithContext(ctx).Create(rec).Error
}

func (s *ScanHistoryService) ListByUser(ctx context.Context, userID uint) ([]models.ScanRecord, error) {
	var recs []models.ScanRecord
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&recs).Error
	return recs, err
}
