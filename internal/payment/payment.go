// Package payment drives a backend-issued payment-intent through the
// processor's hosted confirmation element and reports the outcome.
package payment

import (
	"context"
	"log/slog"

	"spellbudex/internal/api"
	"spellbudex/internal/pkg/config"
	"spellbudex/internal/pkg/errs"
)

type Status string

const (
	// StatusSucceeded means the charge settled.
	StatusSucceeded Status = "succeeded"
	// StatusRequiresAction means the processor needs an out-of-band step
	// (bank confirmation on another device); the charge may still settle.
	StatusRequiresAction Status = "requires_action"
	// StatusFailed means this attempt is over; the user may retry with the
	// same reservation.
	StatusFailed Status = "failed"
)

// Result is what the checkout surface renders after a payment attempt.
type Result struct {
	Status        Status
	Message       string
	ReservationID int64
	IntentID      string
}

// ConfirmOptions prefills the hosted element.
type ConfirmOptions struct {
	ReceiptEmail string
	ReturnURL    string
}

// Element is the processor's hosted confirmation step. The production
// implementation talks to the payment processor; tests substitute a fake.
type Element interface {
	Confirm(ctx context.Context, clientSecret string, opts ConfirmOptions) (Result, error)
}

// ElementFactory builds an element bound to the processor's publishable key,
// which the client only learns from the backend at payment time.
type ElementFactory func(publishableKey string) Element

// Backend is the slice of the API client the flow consumes.
type Backend interface {
	GetReservation(ctx context.Context, id int64) (*api.ReservationView, error)
	CreatePaymentIntent(ctx context.Context, req api.CreatePaymentIntentRequest) (*api.PaymentIntentView, error)
	PaymentProcessorPublicConfig(ctx context.Context) (*api.PaymentProcessorConfig, error)
}

type Flow struct {
	backend  Backend
	elements ElementFactory
	cfg      config.PaymentConfig
	log      *slog.Logger
}

func NewFlow(backend Backend, elements ElementFactory, cfg config.PaymentConfig, log *slog.Logger) *Flow {
	return &Flow{backend: backend, elements: elements, cfg: cfg, log: log}
}

// Start pays for an existing reservation: read it back, request an intent,
// fetch the processor's public configuration, then drive the hosted element.
// Cancelling ctx before the element step abandons the attempt without ever
// contacting the processor.
func (f *Flow) Start(ctx context.Context, reservationID int64) (Result, error) {
	reservation, err := f.backend.GetReservation(ctx, reservationID)
	if err != nil {
		return Result{}, errs.Wrap(err, "failed to load reservation")
	}

	intent, err := f.backend.CreatePaymentIntent(ctx, api.CreatePaymentIntentRequest{
		ReservationID: reservation.ID,
		PaymentMethod: "card",
		ReturnURL:     f.cfg.ReturnURL,
	})
	if err != nil {
		return Result{}, errs.Wrap(err, "failed to create payment intent")
	}

	public, err := f.backend.PaymentProcessorPublicConfig(ctx)
	if err != nil {
		return Result{}, errs.Wrap(err, "failed to load processor config")
	}

	if err := ctx.Err(); err != nil {
		// The user backed out; the unconfirmed intent just expires
		// server-side.
		return Result{}, err
	}

	element := f.elements(public.PublishableKey)
	result, err := element.Confirm(ctx, intent.ClientSecret, ConfirmOptions{
		ReceiptEmail: reservation.Customer.Email,
		ReturnURL:    f.cfg.ReturnURL,
	})
	if err != nil {
		return Result{}, errs.Wrap(err, "payment confirmation failed")
	}

	result.ReservationID = reservation.ID
	f.log.Info("payment attempt finished",
		"reservation_id", reservation.ID,
		"status", string(result.Status),
	)
	return result, nil
}
