package controllers

import (
	"net/http"
	"time"

	"github.com/Sinduaditya/gizi-gemini/services"

	"github.com/gin-gonic/gin"
)

type RecapController struct {
	Svc *services.RecapService
}

func NewRecapController(svc *services.RecapService) *RecapController {
	return &RecapController{Svc: svc}
}

// GET /recap — last-30-day healthy vs junk rollup
func (h *RecapController) GetRecap(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	out, err := h.Svc.Recap(c.Request.Context(), userID, time.Now().UTC())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}

// --- helpers ---

func userIDFromCtx(c *gin.Context) (uint, bool) {
	v, ok := c.Get("userID")
	if !ok {
		return 0, false
	}
	switch id := v.(type) {
	case uint:
		return id, true
	case int:
		return uint(id), true
	case int64:
		return uint(id), true
	default:
		return 0, false
	}
}
