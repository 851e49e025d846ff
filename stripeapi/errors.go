package stripeapi

import (
	"errors"
	"strings"

	stripe "github.com/stripe/stripe-go/v82"
)

// IsUnknownParameter reports whether err is Stripe rejecting the named request
// parameter as unrecognized. Stripe's request schema renamed some fields
// between API versions, so callers use this to decide whether a legacy-shaped
// retry of the same request is worth attempting.
func IsUnknownParameter(err error, param string) bool {
	var stripeErr *stripe.Error
	if !errors.As(err, &stripeErr) {
		return false
	}
	if stripeErr.Type != stripe.ErrorTypeInvalidRequest {
		return false
	}
	if !strings.Contains(strings.ToLower(stripeErr.Msg), "unknown parameter") {
		return false
	}
	return stripeErr.Param == param || strings.Contains(stripeErr.Msg, param)
}

// ErrorType returns Stripe's error category for diagnostics, or "internal"
// when the error did not come from Stripe at all.
func ErrorType(err error) string {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		return string(stripeErr.Type)
	}
	return "internal"
}
