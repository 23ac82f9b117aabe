package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/Sinduaditya/gizi-gemini/models"
	"github.com/Sinduaditya/gizi-gemini/utils"

	"gorm.io/gorm"
)

// ErrNoHealthProfile gates the pipeline: without a saved profile no external
// call is made and nothing is persisted.
var ErrNoHealthProfile = errors.New("health profile required before scanning")

// TextExtractor is the OCR provider contract.
type TextExtractor interface {
	ExtractText(ctx context.Context, image []byte) (string, bool)
}

// SafetyChecker is the generation-endpoint contract for evaluation and
// recommendation.
type SafetyChecker interface {
	CheckNutritionSafety(ctx context.Context, labelText, healthSummary string) SafetyResult
	RecommendFoods(ctx context.Context, status, reason, healthSummary string) string
}

type ProfileStore interface {
	ByUser(ctx context.Context, userID uint) (*models.HealthProfile, error)
}

type ScanStore interface {
	Append(ctx context.Context, rec *models.ScanRecord) error
}

var (
	_ TextExtractor = (*OCRSpaceService)(nil)
	_ TextExtractor = (*RekognitionOCR)(nil)
	_ SafetyChecker = (*GeminiService)(nil)
	_ ProfileStore  = (*HealthProfileService)(nil)
	_ ScanStore     = (*ScanHistoryService)(nil)
)

// Pipeline stages, broadcast over the realtime hub as each completes.
const (
	StageImageUploaded = "image_uploaded"
	StageOCRComplete   = "ocr_complete"
	StageSummaryBuilt  = "health_summary_built"
	StageEvaluated     = "safety_evaluated"
	StageRecommended   = "recommendation_generated"
	StagePersisted     = "persisted"
)

// ScanResult carries the full outcome of one pipeline run. Record is non-nil
// once the row has been persisted.
type ScanResult struct {
	OCRText        string             `json:"ocr_text"`
	OCROk          bool               `json:"ocr_ok"`
	Status         string             `json:"status"`
	Reason         string             `json:"reason"`
	Recommendation string             `json:"recommendation"`
	Category       string             `json:"category"`
	ImageURL       string             `json:"image_url,omitempty"`
	Record         *models.ScanRecord `json:"record,omitempty"`
}

type ScanService struct {
	profiles ProfileStore
	scans    ScanStore
	ocr      TextExtractor
	ai       SafetyChecker
	hub      *RealtimeHub
	archive  func(userID uint, image []byte, contentType string) (string, error)
}

func NewScanService(profiles ProfileStore, scans ScanStore, ocr TextExtractor, ai SafetyChecker, hub *RealtimeHub) *ScanService {
	return &ScanService{
		profiles: profiles,
		scans:    scans,
		ocr:      ocr,
		ai:       ai,
		hub:      hub,
		archive:  utils.UploadLabelImage,
	}
}

// Scan runs the whole pipeline for one uploaded label image:
// gate → archive → OCR → health summary → evaluate → recommend → persist.
// Every step is sequential and single-attempt; evaluation or recommendation
// failures degrade the result but persistence still happens. A persistence
// failure returns the completed (unsaved) result together with the error so
// callers can surface it instead of dropping it.
func (s *ScanService) Scan(ctx context.Context, userID uint, image []byte, contentType string) (*ScanResult, error) {
	profile, err := s.profiles.ByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoHealthProfile
		}
		return nil, err
	}
	s.emit(userID, StageImageUploaded)

	// Best effort; a failed archive never blocks the scan.
	imageURL := ""
	if s.archive != nil {
		if url, err := s.archive(userID, image, contentType); err != nil {
			log.Printf("label image archive failed for user %d: %v", userID, err)
		} else {
			imageURL = url
		}
	}

	text, ok := s.ocr.ExtractText(ctx, image)
	s.emit(userID, StageOCRComplete)

	summary := BuildHealthSummary(profile)
	s.emit(userID, StageSummaryBuilt)

	eval := s.ai.CheckNutritionSafety(ctx, text, summary)
	s.emit(userID, StageEvaluated)

	recommendation := s.ai.RecommendFoods(ctx, eval.Status, eval.Reason, summary)
	s.emit(userID, StageRecommended)

	result := &ScanResult{
		OCRText:        text,
		OCROk:          ok,
		Status:         eval.Status,
		Reason:         eval.Reason,
		Recommendation: recommendation,
		Category:       models.CategoryForStatus(eval.Status),
		ImageURL:       imageURL,
	}

	rec := &models.ScanRecord{
		UserID:         userID,
		OCRText:        text,
		Status:         eval.Status,
		Reason:         eval.Reason,
		Recommendation: recommendation,
		Category:       result.Category,
		ImageURL:       imageURL,
	}
	if err := s.scans.Append(ctx, rec); err != nil {
		return result, fmt.Errorf("scan completed but result was not saved: %w", err)
	}
	result.Record = rec
	s.emit(userID, StagePersisted)

	if eval.Status == models.StatusUnsafe {
		EmitAlert(userID, "scan.unsafe", eval.Reason)
	}

	return result, nil
}

func (s *ScanService) emit(userID uint, stage string) {
	if s.hub != nil {
		s.hub.BroadcastScanEvent(userID, stage)
	}
}
