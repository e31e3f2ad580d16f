package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	stripesdk "github.com/stripe/stripe-go/v81"
	"github.com/thebagdis/storefront/internal/config"
	appErrors "github.com/thebagdis/storefront/internal/errors"
	"github.com/thebagdis/storefront/internal/models"
	"github.com/thebagdis/storefront/internal/repositories/mocks"
	service "github.com/thebagdis/storefront/internal/services"
	razorpayMocks "github.com/thebagdis/storefront/pkg/razorpay/mocks"
	stripeclient "github.com/thebagdis/storefront/pkg/stripe"
	stripeMocks "github.com/thebagdis/storefront/pkg/stripe/mocks"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type paymentFixture struct {
	orderRepo *mocks.OrderRepository
	razorpay  *razorpayMocks.Client
	stripe    *stripeMocks.Client
	service   *service.PaymentService
}

func newPaymentFixture(matchKey string) *paymentFixture {
	f := &paymentFixture{
		orderRepo: new(mocks.OrderRepository),
		razorpay:  new(razorpayMocks.Client),
		stripe:    new(stripeMocks.Client),
	}

	cfg := &config.Config{
		Razorpay: config.Razorpay{KeyID: "rzp_test_key", WebhookMatchKey: matchKey, Currency: "INR"},
		Stripe:   config.Stripe{Currency: "inr"},
	}

	f.service = service.NewPaymentService(f.orderRepo, f.razorpay, f.stripe, cfg)

	return f
}

func razorpayPayload(event, paymentID, orderID, email string) []byte {
	return []byte(fmt.Sprintf(
		`{"event":%q,"payload":{"payment":{"entity":{"id":%q,"order_id":%q,"email":%q}}}}`,
		event, paymentID, orderID, email))
}

func TestPaymentService_ProcessRazorpayWebhook(t *testing.T) {
	t.Run("Failure - Bad Signature Leaves Orders Untouched", func(t *testing.T) {
		// Arrange
		f := newPaymentFixture("order_id")
		ctx := context.Background()
		payload := razorpayPayload("payment.captured", "pay_1", "order_rzp1", "buyer@example.com")

		f.razorpay.On("VerifyWebhookSignature", payload, "bad_sig").Return(false).Once()

		// Act
		err := f.service.ProcessRazorpayWebhook(ctx, payload, "bad_sig")

		// Assert
		var appErr *appErrors.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeIntegrity, appErr.Code)

		f.orderRepo.AssertNotCalled(t, "GetOrderByGatewayRef")
		f.orderRepo.AssertNotCalled(t, "UpdatePaymentStatus")
	})

	t.Run("Success - Captured Payment Completes Order", func(t *testing.T) {
		f := newPaymentFixture("order_id")
		ctx := context.Background()
		payload := razorpayPayload("payment.captured", "pay_1", "order_rzp1", "buyer@example.com")

		order := &models.Order{
			ID:            primitive.NewObjectID(),
			PaymentStatus: models.PaymentStatusPending,
		}

		f.razorpay.On("VerifyWebhookSignature", payload, "good_sig").Return(true).Once()
		f.orderRepo.On("GetOrderByGatewayRef", ctx, "payment_result.id", "order_rzp1").Return(order, nil).Once()
		f.orderRepo.On("UpdatePaymentStatus", ctx, order.ID, models.PaymentStatusCompleted,
			mock.MatchedBy(func(r *models.PaymentResult) bool {
				return r.ID == "order_rzp1" && r.PaymentID == "pay_1" && r.Email == "buyer@example.com"
			})).Return(nil).Once()

		err := f.service.ProcessRazorpayWebhook(ctx, payload, "good_sig")

		assert.NoError(t, err)
		f.orderRepo.AssertExpectations(t)
	})

	t.Run("Success - Failed Payment Marks Order Failed", func(t *testing.T) {
		f := newPaymentFixture("order_id")
		ctx := context.Background()
		payload := razorpayPayload("payment.failed", "pay_2", "order_rzp2", "")

		order := &models.Order{
			ID:            primitive.NewObjectID(),
			PaymentStatus: models.PaymentStatusPending,
		}

		f.razorpay.On("VerifyWebhookSignature", payload, "good_sig").Return(true).Once()
		f.orderRepo.On("GetOrderByGatewayRef", ctx, "payment_result.id", "order_rzp2").Return(order, nil).Once()
		f.orderRepo.On("UpdatePaymentStatus", ctx, order.ID, models.PaymentStatusFailed,
			mock.AnythingOfType("*models.PaymentResult")).Return(nil).Once()

		err := f.service.ProcessRazorpayWebhook(ctx, payload, "good_sig")

		assert.NoError(t, err)
		f.orderRepo.AssertExpectations(t)
	})

	t.Run("Success - Replay Of Completed Payment Is A No-Op", func(t *testing.T) {
		f := newPaymentFixture("order_id")
		ctx := context.Background()
		payload := razorpayPayload("payment.captured", "pay_1", "order_rzp1", "buyer@example.com")

		order := &models.Order{
			ID:            primitive.NewObjectID(),
			PaymentStatus: models.PaymentStatusCompleted,
		}

		f.razorpay.On("VerifyWebhookSignature", payload, "good_sig").Return(true).Once()
		f.orderRepo.On("GetOrderByGatewayRef", ctx, "payment_result.id", "order_rzp1").Return(order, nil).Once()

		err := f.service.ProcessRazorpayWebhook(ctx, payload, "good_sig")

		assert.NoError(t, err)
		f.orderRepo.AssertNotCalled(t, "UpdatePaymentStatus")
	})

	t.Run("Success - Unknown Reference Is Acknowledged", func(t *testing.T) {
		f := newPaymentFixture("order_id")
		ctx := context.Background()
		payload := razorpayPayload("payment.captured", "pay_9", "order_unknown", "")

		f.razorpay.On("VerifyWebhookSignature", payload, "good_sig").Return(true).Once()
		f.orderRepo.On("GetOrderByGatewayRef", ctx, "payment_result.id", "order_unknown").
			Return(nil, mongo.ErrNoDocuments).Once()

		err := f.service.ProcessRazorpayWebhook(ctx, payload, "good_sig")

		assert.NoError(t, err)
		f.orderRepo.AssertNotCalled(t, "UpdatePaymentStatus")
	})

	t.Run("Success - Unhandled Event Is Ignored", func(t *testing.T) {
		f := newPaymentFixture("order_id")
		ctx := context.Background()
		payload := razorpayPayload("order.paid", "pay_1", "order_rzp1", "")

		f.razorpay.On("VerifyWebhookSignature", payload, "good_sig").Return(true).Once()

		err := f.service.ProcessRazorpayWebhook(ctx, payload, "good_sig")

		assert.NoError(t, err)
		f.orderRepo.AssertNotCalled(t, "GetOrderByGatewayRef")
	})

	t.Run("Success - Payment ID Match Key Uses Payment Reference", func(t *testing.T) {
		f := newPaymentFixture("payment_id")
		ctx := context.Background()
		payload := razorpayPayload("payment.captured", "pay_7", "order_rzp7", "")

		order := &models.Order{
			ID:            primitive.NewObjectID(),
			PaymentStatus: models.PaymentStatusPending,
		}

		f.razorpay.On("VerifyWebhookSignature", payload, "good_sig").Return(true).Once()
		f.orderRepo.On("GetOrderByGatewayRef", ctx, "payment_result.payment_id", "pay_7").Return(order, nil).Once()
		f.orderRepo.On("UpdatePaymentStatus", ctx, order.ID, models.PaymentStatusCompleted,
			mock.AnythingOfType("*models.PaymentResult")).Return(nil).Once()

		err := f.service.ProcessRazorpayWebhook(ctx, payload, "good_sig")

		assert.NoError(t, err)
		f.orderRepo.AssertExpectations(t)
	})

	t.Run("Success - Payment ID Match Key Falls Back To Order Reference On First Event", func(t *testing.T) {
		// Checkout creation records only the gateway order id; the payment
		// reference does not exist yet.
		f := newPaymentFixture("payment_id")
		ctx := context.Background()
		user := &models.User{ID: primitive.NewObjectID(), Email: "test@example.com"}

		order := &models.Order{
			ID:            primitive.NewObjectID(),
			UserID:        user.ID,
			PaymentMethod: models.PaymentMethodUPI,
			TotalAmount:   decimal.NewFromInt(1280),
			PaymentStatus: models.PaymentStatusPending,
		}

		f.razorpay.On("CreateOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return("order_rzp7", nil).Once()

		_, err := f.service.CreateCheckout(ctx, user, order)
		assert.NoError(t, err)
		assert.Empty(t, order.PaymentResult.PaymentID)

		payload := razorpayPayload("payment.captured", "pay_7", "order_rzp7", "")

		f.razorpay.On("VerifyWebhookSignature", payload, "good_sig").Return(true).Once()
		f.orderRepo.On("GetOrderByGatewayRef", ctx, "payment_result.payment_id", "pay_7").
			Return(nil, mongo.ErrNoDocuments).Once()
		f.orderRepo.On("GetOrderByGatewayRef", ctx, "payment_result.id", "order_rzp7").Return(order, nil).Once()
		f.orderRepo.On("UpdatePaymentStatus", ctx, order.ID, models.PaymentStatusCompleted,
			mock.MatchedBy(func(r *models.PaymentResult) bool {
				return r.ID == "order_rzp7" && r.PaymentID == "pay_7"
			})).Return(nil).Once()

		err = f.service.ProcessRazorpayWebhook(ctx, payload, "good_sig")

		assert.NoError(t, err)
		f.orderRepo.AssertExpectations(t)
	})

	t.Run("Success - Payment ID Match Key Acknowledges When Both References Miss", func(t *testing.T) {
		f := newPaymentFixture("payment_id")
		ctx := context.Background()
		payload := razorpayPayload("payment.captured", "pay_9", "order_unknown", "")

		f.razorpay.On("VerifyWebhookSignature", payload, "good_sig").Return(true).Once()
		f.orderRepo.On("GetOrderByGatewayRef", ctx, "payment_result.payment_id", "pay_9").
			Return(nil, mongo.ErrNoDocuments).Once()
		f.orderRepo.On("GetOrderByGatewayRef", ctx, "payment_result.id", "order_unknown").
			Return(nil, mongo.ErrNoDocuments).Once()

		err := f.service.ProcessRazorpayWebhook(ctx, payload, "good_sig")

		assert.NoError(t, err)
		f.orderRepo.AssertNotCalled(t, "UpdatePaymentStatus")
	})
}

func TestPaymentService_ProcessStripeWebhook(t *testing.T) {
	stripeEvent := func(eventType, intentID, email string) stripeclient.Event {
		raw, _ := json.Marshal(map[string]any{
			"id":            intentID,
			"receipt_email": email,
		})

		return stripeclient.Event{
			Type: stripesdk.EventType(eventType),
			Data: &stripesdk.EventData{Raw: raw},
		}
	}

	t.Run("Failure - Bad Signature", func(t *testing.T) {
		f := newPaymentFixture("order_id")
		ctx := context.Background()
		payload := []byte(`{}`)

		f.stripe.On("VerifyWebhookSignature", payload, "bad_sig").
			Return(stripeclient.Event{}, errors.New("signature mismatch")).Once()

		err := f.service.ProcessStripeWebhook(ctx, payload, "bad_sig")

		var appErr *appErrors.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeIntegrity, appErr.Code)

		f.orderRepo.AssertNotCalled(t, "GetOrderByGatewayRef")
	})

	t.Run("Success - Intent Succeeded Completes Order", func(t *testing.T) {
		f := newPaymentFixture("order_id")
		ctx := context.Background()
		payload := []byte(`{"real":"body"}`)

		order := &models.Order{
			ID:            primitive.NewObjectID(),
			PaymentStatus: models.PaymentStatusPending,
		}

		f.stripe.On("VerifyWebhookSignature", payload, "good_sig").
			Return(stripeEvent("payment_intent.succeeded", "pi_1", "buyer@example.com"), nil).Once()
		f.orderRepo.On("GetOrderByGatewayRef", ctx, "payment_result.id", "pi_1").Return(order, nil).Once()
		f.orderRepo.On("UpdatePaymentStatus", ctx, order.ID, models.PaymentStatusCompleted,
			mock.MatchedBy(func(r *models.PaymentResult) bool {
				return r.ID == "pi_1" && r.Email == "buyer@example.com"
			})).Return(nil).Once()

		err := f.service.ProcessStripeWebhook(ctx, payload, "good_sig")

		assert.NoError(t, err)
		f.orderRepo.AssertExpectations(t)
	})

	t.Run("Success - Intent Failed Marks Order Failed", func(t *testing.T) {
		f := newPaymentFixture("order_id")
		ctx := context.Background()
		payload := []byte(`{"real":"body"}`)

		order := &models.Order{
			ID:            primitive.NewObjectID(),
			PaymentStatus: models.PaymentStatusPending,
		}

		f.stripe.On("VerifyWebhookSignature", payload, "good_sig").
			Return(stripeEvent("payment_intent.payment_failed", "pi_2", ""), nil).Once()
		f.orderRepo.On("GetOrderByGatewayRef", ctx, "payment_result.id", "pi_2").Return(order, nil).Once()
		f.orderRepo.On("UpdatePaymentStatus", ctx, order.ID, models.PaymentStatusFailed,
			mock.AnythingOfType("*models.PaymentResult")).Return(nil).Once()

		err := f.service.ProcessStripeWebhook(ctx, payload, "good_sig")

		assert.NoError(t, err)
		f.orderRepo.AssertExpectations(t)
	})
}

func TestPaymentService_CreateCheckout(t *testing.T) {
	user := &models.User{ID: primitive.NewObjectID(), Name: "Test User", Email: "test@example.com"}

	newOrder := func(method models.PaymentMethod, total int64) *models.Order {
		return &models.Order{
			ID:            primitive.NewObjectID(),
			UserID:        user.ID,
			PaymentMethod: method,
			TotalAmount:   decimal.NewFromInt(total),
		}
	}

	t.Run("Success - COD Needs No Gateway", func(t *testing.T) {
		f := newPaymentFixture("order_id")
		order := newOrder(models.PaymentMethodCOD, 1280)

		resp, err := f.service.CreateCheckout(context.Background(), user, order)

		assert.NoError(t, err)
		assert.Empty(t, resp.GatewayOrderID)
		assert.Empty(t, resp.ClientSecret)
		assert.Nil(t, order.PaymentResult)

		f.razorpay.AssertNotCalled(t, "CreateOrder")
		f.stripe.AssertNotCalled(t, "CreatePaymentIntent")
	})

	t.Run("Success - UPI Converts Amount To Paise", func(t *testing.T) {
		f := newPaymentFixture("order_id")
		order := newOrder(models.PaymentMethodUPI, 1280)

		f.razorpay.On("CreateOrder", int64(128000), "INR", mock.AnythingOfType("string"),
			mock.MatchedBy(func(notes map[string]any) bool {
				return notes["userId"] == user.ID.Hex() && notes["orderId"] == order.ID.Hex()
			})).Return("order_rzp42", nil).Once()

		resp, err := f.service.CreateCheckout(context.Background(), user, order)

		assert.NoError(t, err)
		assert.Equal(t, "order_rzp42", resp.GatewayOrderID)
		assert.Equal(t, "rzp_test_key", resp.GatewayKeyID)
		assert.Equal(t, "order_rzp42", order.PaymentResult.ID)
		assert.Equal(t, "created", order.PaymentResult.Status)

		f.razorpay.AssertExpectations(t)
	})

	t.Run("Success - Card Creates Payment Intent", func(t *testing.T) {
		f := newPaymentFixture("order_id")
		order := newOrder(models.PaymentMethodCard, 1416)

		intent := &stripesdk.PaymentIntent{
			ID:           "pi_42",
			ClientSecret: "pi_42_secret",
			Status:       stripesdk.PaymentIntentStatusRequiresPaymentMethod,
		}

		f.stripe.On("CreatePaymentIntent", int64(141600), "inr", "Order "+order.ID.Hex()).
			Return(intent, nil).Once()

		resp, err := f.service.CreateCheckout(context.Background(), user, order)

		assert.NoError(t, err)
		assert.Equal(t, "pi_42_secret", resp.ClientSecret)
		assert.Equal(t, "pi_42", order.PaymentResult.ID)

		f.stripe.AssertExpectations(t)
	})

	t.Run("Failure - Gateway Error Surfaces As Third Party Error", func(t *testing.T) {
		f := newPaymentFixture("order_id")
		order := newOrder(models.PaymentMethodUPI, 1280)

		f.razorpay.On("CreateOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return("", errors.New("gateway unavailable")).Once()

		resp, err := f.service.CreateCheckout(context.Background(), user, order)

		assert.Nil(t, resp)

		var appErr *appErrors.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeThirdPartyError, appErr.Code)
	})
}
