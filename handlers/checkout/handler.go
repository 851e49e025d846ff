package checkout

import (
	"net/http"

	"github.com/ChipUtah/HeatherDees/config"
	"github.com/ChipUtah/HeatherDees/models"
	"github.com/ChipUtah/HeatherDees/stripeapi"
	"github.com/ChipUtah/HeatherDees/utils"

	"github.com/gin-gonic/gin"
	stripe "github.com/stripe/stripe-go/v82"
)

type Handler struct {
	client     stripeapi.Client
	catalog    *models.PlanCatalog
	successURL string
	cancelURL  string
}

func New(client stripeapi.Client, catalog *models.PlanCatalog, cfg *config.Config) *Handler {
	return &Handler{
		client:     client,
		catalog:    catalog,
		successURL: cfg.SuccessURL,
		cancelURL:  cfg.CancelURL,
	}
}

// Start opens a setup-mode Stripe Checkout session for the chosen plan and
// redirects the browser to it. The customer is created up front so the
// completed session always carries a customer reference for the webhook.
// @Summary Start a save-payment-method checkout for a plan
// @Description Validate the plan code, create a Stripe customer and a setup-mode Checkout session, and redirect to the Stripe-hosted page.
// @Tags checkout
// @Produce json
// @Param plan query string true "Plan code (6-inperson, 3-inperson, 6-online)"
// @Success 303 {string} string "Redirect to Stripe Checkout"
// @Failure 400 {object} map[string]string "error: Unknown plan"
// @Failure 500 {object} map[string]string "error: Unable to start checkout"
// @Router /checkout [get]
func (h *Handler) Start(c *gin.Context) {
	planCode := c.Query("plan")
	plan, ok := h.catalog.Get(planCode)
	if !ok {
		utils.LogError(nil, "Unknown plan code in checkout: "+planCode)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown plan"})
		return
	}

	// The webhook needs session.customer to be non-null, so never rely on
	// Checkout's implicit customer creation.
	cust, err := h.client.CreateCustomer(&stripe.CustomerParams{})
	if err != nil {
		utils.LogError(err, "Stripe customer creation failed in checkout")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to start checkout"})
		return
	}

	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModeSetup)),
		Customer:           stripe.String(cust.ID),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		SuccessURL:         stripe.String(h.successURL + "?ok=1"),
		CancelURL:          stripe.String(h.cancelURL + "?canceled=1"),
		// The plan code rides in both fields; Stripe has not always
		// propagated the same one to the completed-session event.
		ClientReferenceID: stripe.String(string(plan.Code)),
	}
	params.AddMetadata("plan", string(plan.Code))

	s, err := h.client.CreateCheckoutSession(params)
	if err != nil {
		utils.LogError(err, "Stripe checkout session creation failed for plan "+planCode)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to start checkout"})
		return
	}

	utils.LogSuccess("Checkout session " + s.ID + " created for plan " + planCode)
	c.Redirect(http.StatusSeeOther, s.URL)
}
