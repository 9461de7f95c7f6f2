package payments

import (
	"context"

	"github.com/pkg/errors"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// Authorizer creates a payment authorization and returns its client secret.
type Authorizer interface {
	CreateIntent(ctx context.Context, amount int64, currency string) (string, error)
}

// StripeAuthorizer backs Authorizer with Stripe PaymentIntents.
type StripeAuthorizer struct {
	api *client.API
}

// NewStripeAuthorizer builds a Stripe client from the given secret key. The
// key comes from configuration; it is never embedded in source.
func NewStripeAuthorizer(secretKey string) *StripeAuthorizer {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeAuthorizer{api: api}
}

// CreateIntent forwards amount and currency to Stripe unmodified and returns
// the intent's client secret. Every Stripe rejection is flattened to its
// message text; callers see no error categories.
func (s *StripeAuthorizer) CreateIntent(ctx context.Context, amount int64, currency string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Params:   stripe.Params{Context: ctx},
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(currency),
	}
	intent, err := s.api.PaymentIntents.New(params)
	if err != nil {
		if stripeErr, ok := err.(*stripe.Error); ok && stripeErr.Msg != "" {
			return "", errors.New(stripeErr.Msg)
		}
		return "", err
	}
	return intent.ClientSecret, nil
}
