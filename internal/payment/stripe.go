package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"bus-booking/pkg/utils"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"github.com/stripe/stripe-go/v79/webhook"
	"go.uber.org/zap"
)

// StripeProvider implements Provider on Stripe Checkout. The API client is
// constructed per provider instance, not via the SDK's package-level key.
type StripeProvider struct {
	api           *client.API
	webhookSecret string
	log           *zap.Logger
}

func NewStripeProvider(config utils.StripeConfig, log *zap.Logger) *StripeProvider {
	api := &client.API{}
	api.Init(config.APIKey, nil)

	return &StripeProvider{
		api:           api,
		webhookSecret: config.WebhookSecret,
		log:           log.With(zap.String("provider", "stripe")),
	}
}

func (p *StripeProvider) CreateSession(ctx context.Context, req SessionRequest) (*Session, error) {
	params := &stripe.CheckoutSessionParams{
		Params: stripe.Params{
			Context: ctx,
		},
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(req.Currency),
					UnitAmount: stripe.Int64(toMinorUnits(req.Amount)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.Reference),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	session, err := p.api.CheckoutSessions.New(params)
	if err != nil {
		p.log.Error("Failed to create checkout session",
			zap.Error(err),
			zap.String("reference", req.Reference),
		)
		return nil, fmt.Errorf("create checkout session: %w", err)
	}

	return &Session{
		SessionID: session.ID,
		URL:       session.URL,
	}, nil
}

func (p *StripeProvider) GetStatus(ctx context.Context, sessionID string) (*Status, error) {
	params := &stripe.CheckoutSessionParams{
		Params: stripe.Params{
			Context: ctx,
		},
	}

	session, err := p.api.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		p.log.Error("Failed to get checkout session status",
			zap.Error(err),
			zap.String("session_id", sessionID),
		)
		return nil, fmt.Errorf("get checkout status %s: %w", sessionID, err)
	}

	return &Status{
		Status:        string(session.Status),
		PaymentStatus: string(session.PaymentStatus),
		AmountTotal:   session.AmountTotal,
		Currency:      string(session.Currency),
	}, nil
}

func (p *StripeProvider) ParseWebhook(payload []byte, signature string) (*WebhookEvent, error) {
	event, err := webhook.ConstructEvent(payload, signature, p.webhookSecret)
	if err != nil {
		return nil, fmt.Errorf("verify webhook signature: %w", err)
	}

	switch event.Type {
	case "checkout.session.completed",
		"checkout.session.async_payment_succeeded",
		"checkout.session.async_payment_failed",
		"checkout.session.expired":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			return nil, fmt.Errorf("parse webhook session payload: %w", err)
		}
		return &WebhookEvent{
			SessionID:     session.ID,
			PaymentStatus: string(session.PaymentStatus),
		}, nil
	default:
		// Verified but irrelevant event type; reconciliation skips it.
		p.log.Debug("Ignoring webhook event", zap.String("type", string(event.Type)))
		return &WebhookEvent{}, nil
	}
}

// toMinorUnits converts a decimal amount to processor minor units (cents).
func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
