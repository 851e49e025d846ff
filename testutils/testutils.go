package testutils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	stripe "github.com/stripe/stripe-go/v82"
)

func InitTestMain() {
	gin.SetMode(gin.TestMode)
}

func SetupTestRouter() *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	return r
}

// SignPayload builds a Stripe-Signature header value for the given body and
// webhook secret, using the scheme webhook.ConstructEvent verifies: an HMAC
// SHA-256 of "<timestamp>.<payload>".
func SignPayload(payload []byte, secret string) string {
	return SignPayloadAt(payload, secret, time.Now())
}

func SignPayloadAt(payload []byte, secret string, at time.Time) string {
	ts := at.Unix()
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", ts, payload)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

// StripeMock is a recording fake for the stripeapi.Client seam. Every call is
// appended to the matching slice; the optional func fields override the
// default canned responses.
type StripeMock struct {
	CustomerCalls []*stripe.CustomerParams
	SessionCalls  []*stripe.CheckoutSessionParams
	SetupCalls    []string
	ScheduleCalls []*stripe.SubscriptionScheduleParams

	CustomerFunc func(params *stripe.CustomerParams) (*stripe.Customer, error)
	SessionFunc  func(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
	SetupFunc    func(id string, params *stripe.SetupIntentParams) (*stripe.SetupIntent, error)
	ScheduleFunc func(params *stripe.SubscriptionScheduleParams) (*stripe.SubscriptionSchedule, error)
}

func (m *StripeMock) CreateCustomer(params *stripe.CustomerParams) (*stripe.Customer, error) {
	m.CustomerCalls = append(m.CustomerCalls, params)
	if m.CustomerFunc != nil {
		return m.CustomerFunc(params)
	}
	return &stripe.Customer{ID: "cus_test"}, nil
}

func (m *StripeMock) CreateCheckoutSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	m.SessionCalls = append(m.SessionCalls, params)
	if m.SessionFunc != nil {
		return m.SessionFunc(params)
	}
	return &stripe.CheckoutSession{ID: "cs_test", URL: "https://checkout.stripe.com/c/pay/cs_test"}, nil
}

func (m *StripeMock) GetSetupIntent(id string, params *stripe.SetupIntentParams) (*stripe.SetupIntent, error) {
	m.SetupCalls = append(m.SetupCalls, id)
	if m.SetupFunc != nil {
		return m.SetupFunc(id, params)
	}
	return &stripe.SetupIntent{ID: id, PaymentMethod: &stripe.PaymentMethod{ID: "pm_test"}}, nil
}

func (m *StripeMock) CreateSubscriptionSchedule(params *stripe.SubscriptionScheduleParams) (*stripe.SubscriptionSchedule, error) {
	m.ScheduleCalls = append(m.ScheduleCalls, params)
	if m.ScheduleFunc != nil {
		return m.ScheduleFunc(params)
	}
	return &stripe.SubscriptionSchedule{ID: "sub_sched_test"}, nil
}

// RemoteCalls is the total number of Stripe API calls the mock has seen.
func (m *StripeMock) RemoteCalls() int {
	return len(m.CustomerCalls) + len(m.SessionCalls) + len(m.SetupCalls) + len(m.ScheduleCalls)
}
