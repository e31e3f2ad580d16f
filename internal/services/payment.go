package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	stripesdk "github.com/stripe/stripe-go/v81"
	"github.com/thebagdis/storefront/internal/api/middleware"
	"github.com/thebagdis/storefront/internal/config"
	"github.com/thebagdis/storefront/internal/errors"
	"github.com/thebagdis/storefront/internal/models"
	repository "github.com/thebagdis/storefront/internal/repositories"
	"github.com/thebagdis/storefront/pkg/razorpay"
	"github.com/thebagdis/storefront/pkg/stripe"
	"go.mongodb.org/mongo-driver/mongo"
)

type PaymentService struct {
	orderRepo repository.OrderRepository
	razorpay  razorpay.Client
	stripe    stripe.Client
	cfg       *config.Config
}

func NewPaymentService(orderRepo repository.OrderRepository, razorpayClient razorpay.Client, stripeClient stripe.Client, cfg *config.Config) *PaymentService {
	return &PaymentService{
		orderRepo: orderRepo,
		razorpay:  razorpayClient,
		stripe:    stripeClient,
		cfg:       cfg,
	}
}

// CreateCheckout registers the order with the payment gateway its method
// needs and records the gateway reference on the order. COD needs no gateway.
// Called before the order is persisted so the reference is stored with it.
func (s *PaymentService) CreateCheckout(ctx context.Context, user *models.User, order *models.Order) (*models.CheckoutResponse, error) {
	resp := &models.CheckoutResponse{Order: order}

	switch order.PaymentMethod {
	case models.PaymentMethodCOD:
		return resp, nil

	case models.PaymentMethodUPI:
		// Gateway amounts are integers in the smallest currency unit.
		amountPaise := order.TotalAmount.Round(2).Shift(2).IntPart()

		receipt := uuid.New().String()
		notes := map[string]any{
			"userId":  user.ID.Hex(),
			"orderId": order.ID.Hex(),
		}

		gatewayOrderID, err := s.razorpay.CreateOrder(amountPaise, s.cfg.Razorpay.Currency, receipt, notes)
		if err != nil {
			return nil, errors.ThirdPartyError("Failed to create payment order").WithError(err)
		}

		order.PaymentResult = &models.PaymentResult{ID: gatewayOrderID, Status: "created"}
		resp.GatewayOrderID = gatewayOrderID
		resp.GatewayKeyID = s.cfg.Razorpay.KeyID

		return resp, nil

	case models.PaymentMethodCard:
		amount := order.TotalAmount.Round(2).Shift(2).IntPart()

		intent, err := s.stripe.CreatePaymentIntent(amount, s.cfg.Stripe.Currency, "Order "+order.ID.Hex())
		if err != nil {
			return nil, errors.ThirdPartyError("Failed to create payment intent").WithError(err)
		}

		order.PaymentResult = &models.PaymentResult{ID: intent.ID, Status: string(intent.Status)}
		resp.ClientSecret = intent.ClientSecret

		return resp, nil

	default:
		return nil, errors.BadRequestError("Unsupported payment method")
	}
}

// razorpayEvent is the slice of the webhook body the service acts on.
type razorpayEvent struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				ID      string `json:"id"`
				OrderID string `json:"order_id"`
				Email   string `json:"email"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

// ProcessRazorpayWebhook verifies the signature over the raw body and applies
// the payment outcome to the matched order. Replays and unknown references
// are logged no-ops, so the gateway never needs to retry on them.
func (s *PaymentService) ProcessRazorpayWebhook(ctx context.Context, payload []byte, signature string) error {
	logger := middleware.LoggerFromContext(ctx)

	if !s.razorpay.VerifyWebhookSignature(payload, signature) {
		return errors.IntegrityError("Invalid webhook signature")
	}

	var event razorpayEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return errors.BadRequestError("Malformed webhook payload").WithError(err)
	}

	var status models.PaymentStatus

	switch event.Event {
	case "payment.captured":
		status = models.PaymentStatusCompleted
	case "payment.failed":
		status = models.PaymentStatusFailed
	default:
		logger.Info("Ignoring razorpay event", slog.String("event", event.Event))

		return nil
	}

	entity := event.Payload.Payment.Entity

	refs := []gatewayRef{{"payment_result.id", entity.OrderID}}
	if s.cfg.Razorpay.WebhookMatchKey == "payment_id" {
		// The payment reference is only recorded once an event has been
		// applied, so the first event for an order still has to match on
		// the gateway order id captured at checkout creation.
		refs = []gatewayRef{
			{"payment_result.payment_id", entity.ID},
			{"payment_result.id", entity.OrderID},
		}
	}

	result := &models.PaymentResult{
		ID:         entity.OrderID,
		PaymentID:  entity.ID,
		Status:     string(status),
		UpdateTime: time.Now().UTC().Format(time.RFC3339),
		Email:      entity.Email,
	}

	return s.applyPaymentOutcome(ctx, refs, status, result)
}

// ProcessStripeWebhook is the stripe counterpart, using the SDK's signature
// check and intent-succeeded/failed events.
func (s *PaymentService) ProcessStripeWebhook(ctx context.Context, payload []byte, signature string) error {
	logger := middleware.LoggerFromContext(ctx)

	event, err := s.stripe.VerifyWebhookSignature(payload, signature)
	if err != nil {
		return errors.IntegrityError("Invalid webhook signature").WithError(err)
	}

	var status models.PaymentStatus

	switch event.Type {
	case "payment_intent.succeeded":
		status = models.PaymentStatusCompleted
	case "payment_intent.payment_failed":
		status = models.PaymentStatusFailed
	default:
		logger.Info("Ignoring stripe event", slog.String("event", string(event.Type)))

		return nil
	}

	var intent stripesdk.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		return errors.BadRequestError("Malformed webhook payload").WithError(err)
	}

	result := &models.PaymentResult{
		ID:         intent.ID,
		Status:     string(status),
		UpdateTime: time.Now().UTC().Format(time.RFC3339),
	}

	if intent.ReceiptEmail != "" {
		result.Email = intent.ReceiptEmail
	}

	return s.applyPaymentOutcome(ctx, []gatewayRef{{"payment_result.id", intent.ID}}, status, result)
}

// gatewayRef is one candidate (document field, gateway value) pair for
// matching a webhook event to an order.
type gatewayRef struct {
	field string
	value string
}

func (s *PaymentService) applyPaymentOutcome(ctx context.Context, refs []gatewayRef, status models.PaymentStatus, result *models.PaymentResult) error {
	logger := middleware.LoggerFromContext(ctx)

	var order *models.Order

	for _, ref := range refs {
		if ref.value == "" {
			continue
		}

		found, err := s.orderRepo.GetOrderByGatewayRef(ctx, ref.field, ref.value)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				continue
			}

			return errors.DatabaseError("Failed to look up order for webhook").WithError(err)
		}

		order = found

		break
	}

	if order == nil {
		// Unknown reference: acknowledge so the gateway stops retrying.
		logger.Warn("Webhook for unknown order", slog.String(refs[0].field, refs[0].value))

		return nil
	}

	// A completed payment never changes again; a replayed webhook is a no-op.
	if order.PaymentStatus == models.PaymentStatusCompleted {
		logger.Info("Ignoring webhook replay", slog.String("orderId", order.ID.Hex()))

		return nil
	}

	if err := s.orderRepo.UpdatePaymentStatus(ctx, order.ID, status, result); err != nil {
		return errors.DatabaseError("Failed to update payment status").WithError(err)
	}

	logger.Info("Payment status updated",
		slog.String("orderId", order.ID.Hex()),
		slog.String("paymentStatus", string(status)))

	return nil
}
