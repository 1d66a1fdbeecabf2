package payment

import (
	"context"
	"errors"
	"strings"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"

	"spellbudex/internal/pkg/errs"
)

// stripeElement confirms intents directly against Stripe using only the
// publishable key and the intent's client secret, the way a hosted payment
// element does.
type stripeElement struct {
	api *client.API
}

// NewStripeElementFactory returns the production ElementFactory.
func NewStripeElementFactory() ElementFactory {
	return func(publishableKey string) Element {
		sc := &client.API{}
		sc.Init(publishableKey, nil)
		return &stripeElement{api: sc}
	}
}

func (e *stripeElement) Confirm(ctx context.Context, clientSecret string, opts ConfirmOptions) (Result, error) {
	intentID, err := IntentIDFromSecret(clientSecret)
	if err != nil {
		return Result{}, err
	}

	intent, err := e.api.PaymentIntents.Confirm(intentID, confirmParams(ctx, clientSecret, opts))
	if err != nil {
		// A processor-side decline is a payment outcome, not a transport
		// failure; the user retries with the same reservation.
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) {
			return Result{
				Status:   StatusFailed,
				Message:  stripeErr.Msg,
				IntentID: intentID,
			}, nil
		}
		return Result{}, errs.Wrap(err, "failed to confirm intent")
	}

	return Result{
		Status:   classifyIntent(intent.Status),
		Message:  statusMessage(intent.Status),
		IntentID: intent.ID,
	}, nil
}

// confirmParams builds the confirmation request. Publishable-key
// confirmation authorizes with the intent's client secret, sent as a plain
// form field alongside the typed params.
func confirmParams(ctx context.Context, clientSecret string, opts ConfirmOptions) *stripe.PaymentIntentConfirmParams {
	params := &stripe.PaymentIntentConfirmParams{
		Params:    stripe.Params{Context: ctx},
		ReturnURL: stripe.String(opts.ReturnURL),
	}
	params.AddExtra("client_secret", clientSecret)
	if opts.ReceiptEmail != "" {
		params.ReceiptEmail = stripe.String(opts.ReceiptEmail)
	}
	return params
}

// IntentIDFromSecret recovers the intent identifier embedded in a client
// secret ("pi_123_secret_abc" -> "pi_123").
func IntentIDFromSecret(clientSecret string) (string, error) {
	id, _, found := strings.Cut(clientSecret, "_secret")
	if !found || id == "" {
		return "", errs.New("malformed client secret")
	}
	return id, nil
}

func classifyIntent(status stripe.PaymentIntentStatus) Status {
	switch status {
	case stripe.PaymentIntentStatusSucceeded:
		return StatusSucceeded
	case stripe.PaymentIntentStatusRequiresAction:
		return StatusRequiresAction
	default:
		return StatusFailed
	}
}

func statusMessage(status stripe.PaymentIntentStatus) string {
	switch status {
	case stripe.PaymentIntentStatusSucceeded:
		return ""
	case stripe.PaymentIntentStatusRequiresAction:
		return "Potwierdź płatność na swoim urządzeniu."
	default:
		return "Płatność nie powiodła się. Spróbuj ponownie."
	}
}
