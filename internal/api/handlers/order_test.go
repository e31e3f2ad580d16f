package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/thebagdis/storefront/internal/api/handlers"
	"github.com/thebagdis/storefront/internal/config"
	"github.com/thebagdis/storefront/internal/models"
	"github.com/thebagdis/storefront/internal/repositories/mocks"
	service "github.com/thebagdis/storefront/internal/services"
	"github.com/thebagdis/storefront/internal/utils/response"
	razorpayMocks "github.com/thebagdis/storefront/pkg/razorpay/mocks"
	sendgridMocks "github.com/thebagdis/storefront/pkg/sendgrid/mocks"
	stripeMocks "github.com/thebagdis/storefront/pkg/stripe/mocks"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type checkoutFixture struct {
	userRepo         *mocks.UserRepository
	orderRepo        *mocks.OrderRepository
	productRepo      *mocks.ProductRepository
	cartRepo         *mocks.CartRepository
	notificationRepo *mocks.NotificationRepository
	email            *sendgridMocks.EmailService
	handler          *handlers.OrderHandler
}

func setupCheckoutTest() *checkoutFixture {
	f := &checkoutFixture{
		userRepo:         new(mocks.UserRepository),
		orderRepo:        new(mocks.OrderRepository),
		productRepo:      new(mocks.ProductRepository),
		cartRepo:         new(mocks.CartRepository),
		notificationRepo: new(mocks.NotificationRepository),
		email:            new(sendgridMocks.EmailService),
	}

	cfg := &config.Config{
		Razorpay: config.Razorpay{KeyID: "rzp_test_key", WebhookMatchKey: "order_id", Currency: "INR"},
		Stripe:   config.Stripe{Currency: "inr"},
	}

	payments := service.NewPaymentService(f.orderRepo, new(razorpayMocks.Client), new(stripeMocks.Client), cfg)
	carts := service.NewCartService(f.cartRepo, f.productRepo)
	notifications := service.NewNotificationService(f.notificationRepo, f.email)
	orders := service.NewOrderService(f.orderRepo, f.productRepo, payments, carts, notifications)
	users := service.NewUserService(f.userRepo, new(mocks.RateLimitRepository), []byte("test-signing-key"))

	f.handler = handlers.NewOrderHandler(orders, users)

	return f
}

func checkoutBody(productID primitive.ObjectID, phone string) []byte {
	body, _ := json.Marshal(models.CreateOrderRequest{
		Items: []models.LineItem{{
			ProductID: productID.Hex(),
			Name:      "A2 Ghee",
			UnitPrice: decimal.NewFromInt(500),
			Quantity:  2,
		}},
		ShippingAddress: models.Address{
			Street:     "12 MG Road",
			City:       "Kolkata",
			State:      "West Bengal",
			PostalCode: "700001",
			Country:    "India",
		},
		Phone:         phone,
		PaymentMethod: models.PaymentMethodCOD,
	})

	return body
}

func TestOrderHandler_Checkout(t *testing.T) {
	t.Run("Success - Valid Phone Places Order", func(t *testing.T) {
		// Arrange
		f := setupCheckoutTest()
		productID := primitive.NewObjectID()

		req, userID := authenticatedRequest("POST", "/api/v1/orders", checkoutBody(productID, "9876543210"))
		recorder := httptest.NewRecorder()

		user := &models.User{ID: userID, Name: "Test User", Email: "test@example.com", Role: models.RoleUser}
		product := &models.Product{ID: productID, Name: "A2 Ghee", Price: decimal.NewFromInt(500), Stock: 5}

		f.userRepo.On("GetUserById", mock.Anything, userID).Return(user, nil).Once()
		f.productRepo.On("GetProductByID", mock.Anything, productID).Return(product, nil)
		f.productRepo.On("UpdateProduct", mock.Anything, mock.AnythingOfType("*models.Product")).Return(nil).Once()
		f.orderRepo.On("CreateOrder", mock.Anything, mock.AnythingOfType("*models.Order")).Return(nil).Once()
		f.cartRepo.On("LoadSnapshot", mock.Anything, userID).Return(nil, nil).Once()
		f.notificationRepo.On("CreateNotification", mock.Anything, mock.Anything).Return(nil).Once()
		f.notificationRepo.On("UpdateNotificationStatus", mock.Anything, mock.Anything, models.StatusSent).Return(nil).Once()
		f.email.On("Send", mock.Anything, mock.Anything).Return(nil).Once()

		// Act
		f.handler.Checkout()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusCreated, recorder.Code)

		resp := decodeEnvelope(t, recorder.Body.Bytes())
		assert.True(t, resp.Success)

		f.orderRepo.AssertExpectations(t)
	})

	t.Run("Failure - Empty Items Creates No Order", func(t *testing.T) {
		f := setupCheckoutTest()

		body, _ := json.Marshal(models.CreateOrderRequest{
			Items: []models.LineItem{},
			ShippingAddress: models.Address{
				Street:     "12 MG Road",
				City:       "Kolkata",
				State:      "West Bengal",
				PostalCode: "700001",
				Country:    "India",
			},
			Phone:         "9876543210",
			PaymentMethod: models.PaymentMethodCOD,
		})

		req, _ := authenticatedRequest("POST", "/api/v1/orders", body)
		recorder := httptest.NewRecorder()

		f.handler.Checkout()(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)

		var resp response.Response
		assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.Equal(t, response.StatusError, resp.Status)

		f.orderRepo.AssertNotCalled(t, "CreateOrder")
	})

	t.Run("Failure - Short Phone Rejected", func(t *testing.T) {
		f := setupCheckoutTest()

		req, _ := authenticatedRequest("POST", "/api/v1/orders", checkoutBody(primitive.NewObjectID(), "12345"))
		recorder := httptest.NewRecorder()

		f.handler.Checkout()(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		f.orderRepo.AssertNotCalled(t, "CreateOrder")
	})

	t.Run("Failure - Signed Phone Rejected", func(t *testing.T) {
		// Ten characters, but not ten digits.
		f := setupCheckoutTest()

		req, _ := authenticatedRequest("POST", "/api/v1/orders", checkoutBody(primitive.NewObjectID(), "+123456789"))
		recorder := httptest.NewRecorder()

		f.handler.Checkout()(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		f.orderRepo.AssertNotCalled(t, "CreateOrder")
	})
}
