package stripeapi

import (
	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
)

// Client is the slice of the Stripe API this service talks to. Handlers take
// it at construction time so tests can swap in a recording fake instead of
// hitting the network.
type Client interface {
	CreateCustomer(params *stripe.CustomerParams) (*stripe.Customer, error)
	CreateCheckoutSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
	GetSetupIntent(id string, params *stripe.SetupIntentParams) (*stripe.SetupIntent, error)
	CreateSubscriptionSchedule(params *stripe.SubscriptionScheduleParams) (*stripe.SubscriptionSchedule, error)
}

// LiveClient calls Stripe through the official SDK, bound to one secret key.
type LiveClient struct {
	api *client.API
}

func NewLiveClient(secretKey string) *LiveClient {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &LiveClient{api: api}
}

func (c *LiveClient) CreateCustomer(params *stripe.CustomerParams) (*stripe.Customer, error) {
	return c.api.Customers.New(params)
}

func (c *LiveClient) CreateCheckoutSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	return c.api.CheckoutSessions.New(params)
}

func (c *LiveClient) GetSetupIntent(id string, params *stripe.SetupIntentParams) (*stripe.SetupIntent, error) {
	return c.api.SetupIntents.Get(id, params)
}

func (c *LiveClient) CreateSubscriptionSchedule(params *stripe.SubscriptionScheduleParams) (*stripe.SubscriptionSchedule, error) {
	return c.api.SubscriptionSchedules.New(params)
}
