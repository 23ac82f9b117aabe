package routes

import (
	"log"
	"os"

	"github.com/Sinduaditya/gizi-gemini/config"
	"github.com/Sinduaditya/gizi-gemini/controllers"
	"github.com/Sinduaditya/gizi-gemini/middlewares"
	"github.com/Sinduaditya/gizi-gemini/services"

	"github.com/gin-gonic/gin"
)

func SetupRouter(hub *services.RealtimeHub, push *services.PushService) *gin.Engine {
	r := gin.Default()

	profiles := services.NewHealthProfileService(config.DB)
	history := services.NewScanHistoryService(config.DB)
	recap := services.NewRecapService(config.DB)
	gemini := services.NewGeminiService()

	var ocr services.TextExtractor = services.NewOCRSpaceService()
	if os.Getenv("OCR_PROVIDER") == "rekognition" {
		if rek, err := services.NewRekognitionOCR(); err != nil {
			log.Printf("rekognition OCR unavailable, falling back to OCR.space: %v", err)
		} else {
			ocr = rek
		}
	}

	scan := services.NewScanService(profiles, history, ocr, gemini, hub)

	profileCtl := controllers.NewHealthProfileController(profiles)
	scanCtl := controllers.NewScanController(scan, history)
	recapCtl := controllers.NewRecapController(recap)
	deviceCtl := controllers.NewDeviceController(push)
	realtimeCtl := controllers.NewRealtimeController(hub)

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/forgot-password", controllers.ForgotPassword)
		auth.POST("/reset-password", controllers.ResetPassword)
	}

	// Protected routes
	user := r.Group("/")
	user.Use(middlewares.AuthMiddleware())
	{
		user.GET("/user/health-profile", profileCtl.GetHealthProfile)
		user.PUT("/user/health-profile", profileCtl.SaveHealthProfile)

		user.POST("/scan", scanCtl.PostScan)
		user.GET("/scan/history", scanCtl.GetScanHistory)
		user.GET("/recap", recapCtl.GetRecap)

		user.POST("/devices", deviceCtl.RegisterDevice)
		user.GET("/ws", realtimeCtl.ScanEventsWS)
	}

	return r
}
