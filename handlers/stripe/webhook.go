package stripe

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/ChipUtah/HeatherDees/models"
	"github.com/ChipUtah/HeatherDees/stripeapi"
	"github.com/ChipUtah/HeatherDees/utils"

	"github.com/gin-gonic/gin"
	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

type Handler struct {
	client        stripeapi.Client
	catalog       *models.PlanCatalog
	webhookSecret string
}

func New(client stripeapi.Client, catalog *models.PlanCatalog, webhookSecret string) *Handler {
	return &Handler{
		client:        client,
		catalog:       catalog,
		webhookSecret: webhookSecret,
	}
}

// Handle receives Stripe webhook deliveries. Signature verification runs over
// the raw body before any field is trusted; everything after it either
// provisions a subscription schedule or acknowledges the event so Stripe stops
// redelivering it.
// @Summary Stripe webhook receiver
// @Description Verify the Stripe signature and, on checkout.session.completed, create the subscription schedule for the chosen plan.
// @Tags webhook
// @Accept json
// @Produce json
// @Success 200 {object} map[string]bool "received: true"
// @Failure 400 {object} map[string]string "error: signature verification failed"
// @Failure 500 {object} map[string]string "error: schedule creation failed"
// @Router /stripe/webhook [post]
func (h *Handler) Handle(c *gin.Context) {
	const MaxBodyBytes = int64(65536)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes)

	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Could not read request body"})
		return
	}

	if h.webhookSecret == "" {
		utils.LogError(nil, "Webhook secret is not configured")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Webhook secret not configured"})
		return
	}

	sig := c.GetHeader("Stripe-Signature")
	event, err := webhook.ConstructEvent(payload, sig, h.webhookSecret)
	if err != nil {
		utils.LogError(err, "Stripe signature verification failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Webhook signature verification failed: " + err.Error()})
		return
	}

	if event.Type != stripe.EventTypeCheckoutSessionCompleted {
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	h.handleCheckoutSessionCompleted(c, event)
}

func (h *Handler) handleCheckoutSessionCompleted(c *gin.Context, event stripe.Event) {
	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		utils.LogError(err, "Could not parse checkout session from event "+event.ID)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not parse checkout session"})
		return
	}

	// Past this point nothing is a client error anymore: Stripe retries any
	// non-2xx delivery, and no retry fixes a session we cannot act on.
	code := planCode(&session)
	if code == "" {
		utils.LogInfo("Completed session " + session.ID + " carries no plan code, ignoring")
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	plan, ok := h.catalog.Get(code)
	if !ok {
		utils.LogInfo("Completed session " + session.ID + " carries unknown plan code " + code + ", ignoring")
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	if session.Customer == nil || session.Customer.ID == "" {
		utils.LogError(nil, "Completed session "+session.ID+" has no customer, cannot provision")
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	defaultPaymentMethod, err := h.resolvePaymentMethod(&session)
	if err != nil {
		utils.LogError(err, "Setup intent retrieval failed for session "+session.ID)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":      err.Error(),
			"error_type": stripeapi.ErrorType(err),
		})
		return
	}

	schedule, err := h.createSchedule(&session, plan, defaultPaymentMethod)
	if err != nil {
		utils.LogError(err, "Subscription schedule creation failed for session "+session.ID)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":      err.Error(),
			"error_type": stripeapi.ErrorType(err),
		})
		return
	}

	utils.LogSuccess("Subscription schedule " + schedule.ID + " created for session " + session.ID + " (plan " + code + ")")
	c.JSON(http.StatusOK, gin.H{"received": true})
}

// planCode reads the plan code the checkout handler wrote into the session.
// client_reference_id takes precedence, metadata is the fallback.
func planCode(session *stripe.CheckoutSession) string {
	if session.ClientReferenceID != "" {
		return session.ClientReferenceID
	}
	return session.Metadata["plan"]
}

// resolvePaymentMethod turns the session's setup intent into the payment
// method the schedule should charge. A session without a setup intent is
// fine (the customer's default on file applies); a retrieval failure is not,
// because it would silently drop the card the customer just saved.
func (h *Handler) resolvePaymentMethod(session *stripe.CheckoutSession) (string, error) {
	if session.SetupIntent == nil || session.SetupIntent.ID == "" {
		return "", nil
	}
	si, err := h.client.GetSetupIntent(session.SetupIntent.ID, nil)
	if err != nil {
		return "", err
	}
	if si.PaymentMethod == nil {
		return "", nil
	}
	return si.PaymentMethod.ID, nil
}

func (h *Handler) createSchedule(session *stripe.CheckoutSession, plan models.Plan, defaultPaymentMethod string) (*stripe.SubscriptionSchedule, error) {
	params := h.scheduleParams(session, plan, defaultPaymentMethod, false)
	schedule, err := h.client.CreateSubscriptionSchedule(params)
	if err == nil {
		return schedule, nil
	}
	if !stripeapi.IsUnknownParameter(err, "items") {
		return nil, err
	}

	// Older Stripe API versions call the phase items "plans". Retry once with
	// that shape; any further failure propagates.
	utils.LogInfo("Stripe rejected the items phase field for session " + session.ID + ", retrying with legacy shape")
	return h.client.CreateSubscriptionSchedule(h.scheduleParams(session, plan, defaultPaymentMethod, true))
}

func (h *Handler) scheduleParams(session *stripe.CheckoutSession, plan models.Plan, defaultPaymentMethod string, legacyShape bool) *stripe.SubscriptionScheduleParams {
	params := &stripe.SubscriptionScheduleParams{
		Customer:     stripe.String(session.Customer.ID),
		StartDateNow: stripe.Bool(true),
		EndBehavior:  stripe.String(string(stripe.SubscriptionScheduleEndBehaviorCancel)),
		DefaultSettings: &stripe.SubscriptionScheduleDefaultSettingsParams{
			CollectionMethod: stripe.String("charge_automatically"),
		},
	}
	if defaultPaymentMethod != "" {
		params.DefaultSettings.DefaultPaymentMethod = stripe.String(defaultPaymentMethod)
	}

	// Keyed by the session so a redelivered event replays the same request
	// instead of minting a second schedule. The legacy shape needs its own
	// key: Stripe refuses to reuse a key for a different payload.
	key := "checkout-session-" + session.ID
	if legacyShape {
		key += "-legacy"
	}
	params.IdempotencyKey = stripe.String(key)

	for i, def := range plan.Phases {
		phase := &stripe.SubscriptionSchedulePhaseParams{
			Iterations: stripe.Int64(def.Iterations),
		}
		if legacyShape {
			params.AddExtra(fmt.Sprintf("phases[%d][plans][0][price]", i), def.PriceID)
			params.AddExtra(fmt.Sprintf("phases[%d][plans][0][quantity]", i), "1")
		} else {
			phase.Items = []*stripe.SubscriptionSchedulePhaseItemParams{
				{
					Price:    stripe.String(def.PriceID),
					Quantity: stripe.Int64(1),
				},
			}
		}
		params.Phases = append(params.Phases, phase)
	}

	return params
}
