package main

import (
	"log"

	"github.com/Sinduaditya/gizi-gemini/config"
	"github.com/Sinduaditya/gizi-gemini/routes"
	"github.com/Sinduaditya/gizi-gemini/services"
	"github.com/Sinduaditya/gizi-gemini/utils"
)

func main() {
	config.InitDB()
	utils.InitS3()

	hub := services.NewRealtimeHub()
	push, err := services.NewPushService(config.DB)
	if err != nil {
		log.Printf("push notifications disabled: %v", err)
		push = nil
	}
	services.InitAlertDeps(config.DB, hub, push)

	r := routes.SetupRouter(hub, push)
	r.Run(":8080")
}
