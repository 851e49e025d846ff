package routes

import (
	"github.com/ChipUtah/HeatherDees/config"
	"github.com/ChipUtah/HeatherDees/handlers/checkout"
	"github.com/ChipUtah/HeatherDees/handlers/stripe"
	"github.com/ChipUtah/HeatherDees/models"
	"github.com/ChipUtah/HeatherDees/stripeapi"

	"github.com/gin-gonic/gin"
)

func BillingRoutes(r *gin.Engine, cfg *config.Config, client stripeapi.Client) {
	catalog := models.NewPlanCatalog(cfg.Prices)

	checkoutHandler := checkout.New(client, catalog, cfg)
	webhookHandler := stripe.New(client, catalog, cfg.StripeWebhookSecret)

	r.GET("/checkout", checkoutHandler.Start)
	r.POST("/stripe/webhook", webhookHandler.Handle)
}
