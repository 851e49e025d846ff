package main

import (
	"log"

	"github.com/ChipUtah/HeatherDees/config"
	_ "github.com/ChipUtah/HeatherDees/docs"
	"github.com/ChipUtah/HeatherDees/routes"
	"github.com/ChipUtah/HeatherDees/stripeapi"
	"github.com/ChipUtah/HeatherDees/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// @title Coaching Plan Billing API
// @version 1.0
// @description Checkout and Stripe webhook endpoints for coaching-plan subscription schedules
// @host localhost:8080
// @BasePath /
func main() {

	gin.SetMode(gin.ReleaseMode)

	if err := godotenv.Load(); err != nil {
		utils.LogInfo("No .env file found, reading configuration from the environment")
	}

	cfg := config.Load()
	if cfg.StripeSecretKey == "" {
		utils.LogError(nil, "STRIPE_SECRET_KEY is not set")
	}
	if cfg.StripeWebhookSecret == "" {
		utils.LogError(nil, "STRIPE_WEBHOOK_SECRET is not set")
	}

	client := stripeapi.NewLiveClient(cfg.StripeSecretKey)

	r := routes.SetupRouter(cfg, client)

	utils.LogSuccess("Server listening on port " + cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Error starting the server:", err)
	}
}
