package controllers

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strings"

	"github.com/Sinduaditya/gizi-gemini/services"

	"github.com/gin-gonic/gin"
)

type ScanController struct {
	Scans   *services.ScanService
	History *services.ScanHistoryService
}

func NewScanController(scans *services.ScanService, history *services.ScanHistoryService) *ScanController {
	return &ScanController{Scans: scans, History: history}
}

// POST /scan  { "image_base64": "data:image/jpeg;base64,..." }
func (sc *ScanController) PostScan(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req struct {
		ImageBase64 string `json:"image_base64" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	image, contentType, err := decodeImageDataURI(req.ImageBase64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := sc.Scans.Scan(c.Request.Context(), userID, image, contentType)
	if err != nil {
		if errors.Is(err, services.ErrNoHealthProfile) {
			c.JSON(http.StatusPreconditionFailed, gin.H{"error": "health profile required before scanning"})
			return
		}
		if result != nil {
			// evaluation finished but the row was not persisted
			c.JSON(http.StatusOK, gin.H{"result": result, "saved": false, "save_error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result, "saved": true})
}

// GET /scan/history
func (sc *ScanController) GetScanHistory(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	recs, err := sc.History.ListByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"scans": recs})
}

// decodeImageDataURI splits a "data:<mime>;base64,<data>" payload into raw
// bytes and content type. Bare base64 is accepted and assumed JPEG.
func decodeImageDataURI(dataURI string) ([]byte, string, error) {
	contentType := "image/jpeg"
	payload := dataURI

	if strings.HasPrefix(dataURI, "data:") {
		parts := strings.SplitN(dataURI, ",", 2)
		if len(parts) != 2 {
			return nil, "", errors.New("invalid base64 image")
		}
		meta := strings.TrimPrefix(parts[0], "data:")
		contentType = strings.SplitN(meta, ";", 2)[0]
		payload = parts[1]
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", errors.New("invalid base64 image")
	}
	return data, contentType, nil
}
