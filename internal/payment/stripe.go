package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/stripe/stripe-go/v84"
	"github.com/stripe/stripe-go/v84/webhook"
)

const (
	productName        = "InterviewPrep - Lifetime Access"
	productDescription = "Unlimited AI-powered interview practice with detailed feedback"
	priceCents         = 1000 // $10.00
	checkoutExpiry     = 30 * time.Minute
)

// CheckoutInput identifies the purchasing user.
type CheckoutInput struct {
	UserID    string
	UserEmail string
	UserName  string
}

// CompletedCheckout is a verified checkout.session.completed notification.
type CompletedCheckout struct {
	UserID           string
	CustomerEmail    string
	StripeCustomerID string
}

// Service wraps the payment provider: one-time lifetime-access checkout plus
// webhook verification.
type Service struct {
	client        *stripe.Client
	webhookSecret string
	baseURL       string
}

func NewService(secretKey, webhookSecret, baseURL string) *Service {
	return &Service{
		client:        stripe.NewClient(secretKey),
		webhookSecret: webhookSecret,
		baseURL:       baseURL,
	}
}

// CreateCheckoutSession opens a checkout session and returns its id.
func (s *Service) CreateCheckoutSession(ctx context.Context, in CheckoutInput) (string, error) {
	if in.UserID == "" || in.UserEmail == "" || in.UserName == "" {
		return "", fmt.Errorf("user id, email and name are required")
	}

	params := &stripe.CheckoutSessionCreateParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionCreateLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionCreateLineItemPriceDataParams{
					Currency: stripe.String(string(stripe.CurrencyUSD)),
					ProductData: &stripe.CheckoutSessionCreateLineItemPriceDataProductDataParams{
						Name:        stripe.String(productName),
						Description: stripe.String(productDescription),
					},
					UnitAmount: stripe.Int64(priceCents),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL:        stripe.String(s.baseURL + "/payment/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:         stripe.String(s.baseURL + "/payment/cancel"),
		CustomerEmail:     stripe.String(in.UserEmail),
		ClientReferenceID: stripe.String(in.UserID),
		ExpiresAt:         stripe.Int64(time.Now().Add(checkoutExpiry).Unix()),
		Metadata: map[string]string{
			"userId":   in.UserID,
			"userName": in.UserName,
			"product":  "InterviewPrep-Lifetime-Access",
		},
	}

	session, err := s.client.V1CheckoutSessions.Create(ctx, params)
	if err != nil {
		return "", fmt.Errorf("create checkout session: %w", err)
	}
	return session.ID, nil
}

// VerifyWebhook checks the signature and, for checkout.session.completed
// events, returns the completed checkout. Other event types return nil.
// A bad signature is an error and must reject the request without touching
// any state.
func (s *Service) VerifyWebhook(payload []byte, signature string) (*CompletedCheckout, error) {
	event, err := webhook.ConstructEvent(payload, signature, s.webhookSecret)
	if err != nil {
		return nil, fmt.Errorf("verify webhook signature: %w", err)
	}

	if event.Type != "checkout.session.completed" {
		return nil, nil
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return nil, fmt.Errorf("parse checkout session: %w", err)
	}

	done := &CompletedCheckout{
		UserID:        session.ClientReferenceID,
		CustomerEmail: session.CustomerEmail,
	}
	if session.Customer != nil {
		done.StripeCustomerID = session.Customer.ID
	}
	return done, nil
}
