package controllers

import (
	"net/http"
	"strconv"

	"github.com/Sinduaditya/gizi-gemini/models"
	"github.com/Sinduaditya/gizi-gemini/services"
	"github.com/Sinduaditya/gizi-gemini/utils"

	"github.com/gin-gonic/gin"
)

type HealthProfileController struct {
	Svc *services.HealthProfileService
}

func NewHealthProfileController(svc *services.HealthProfileService) *HealthProfileController {
	return &HealthProfileController{Svc: svc}
}

type HealthProfileInput struct {
	CurrentIllness string   `json:"current_illness"`
	Symptoms       string   `json:"symptoms"`
	PastIllnesses  []string `json:"past_illnesses"`
	// legacy comma-joined form of past_illnesses; split before storage
	PastIllnessesText string  `json:"past_illnesses_text"`
	YearAfflicted     string  `json:"year_afflicted"`
	Medication        string  `json:"medication"`
	Dosage            string  `json:"dosage"`
	Allergy           string  `json:"allergy"`
	FamilyHistory     string  `json:"family_history"`
	WeightKg          float64 `json:"weight_kg"`
	HeightCm          float64 `json:"height_cm"`
	Pulse             int     `json:"pulse"`
	BloodPressure     string  `json:"blood_pressure"`
	BodyTemperature   float64 `json:"body_temperature"`
}

func (h *HealthProfileController) GetHealthProfile(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	profile, err := h.Svc.ByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "health profile not found"})
		return
	}

	resp := gin.H{"profile": profile}
	if bmi, err := utils.CalculateBMI(profile.HeightCm, profile.WeightKg); err == nil {
		resp["bmi"] = bmi
		resp["bmi_category"] = utils.BMICategory(bmi)
	}
	c.JSON(http.StatusOK, resp)
}

func (h *HealthProfileController) SaveHealthProfile(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var input HealthProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var year *int
	if input.YearAfflicted != "" {
		y, err := strconv.Atoi(input.YearAfflicted)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "year_afflicted must be a number"})
			return
		}
		year = &y
	}

	past := input.PastIllnesses
	if len(past) == 0 && input.PastIllnessesText != "" {
		past = services.ParsePastIllnesses(input.PastIllnessesText)
	}

	profile := &models.HealthProfile{
		UserID:          userID,
		CurrentIllness:  input.CurrentIllness,
		Symptoms:        input.Symptoms,
		PastIllnesses:   past,
		YearAfflicted:   year,
		Medication:      input.Medication,
		Dosage:          input.Dosage,
		Allergy:         input.Allergy,
		FamilyHistory:   input.FamilyHistory,
		WeightKg:        input.WeightKg,
		HeightCm:        input.HeightCm,
		Pulse:           input.Pulse,
		BloodPressure:   input.BloodPressure,
		BodyTemperature: input.BodyTemperature,
	}

	if err := h.Svc.Upsert(c.Request.Context(), profile); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "health profile saved"})
}
