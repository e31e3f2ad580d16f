package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/thebagdis/storefront/internal/api/handlers"
	"github.com/thebagdis/storefront/internal/api/middleware"
	appErrors "github.com/thebagdis/storefront/internal/errors"
	"github.com/thebagdis/storefront/internal/models"
	"github.com/thebagdis/storefront/internal/repositories/mocks"
	service "github.com/thebagdis/storefront/internal/services"
	"github.com/thebagdis/storefront/internal/utils/response"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func setupCartTest() (*mocks.CartRepository, *mocks.ProductRepository, *handlers.CartHandler) {
	cartRepo := new(mocks.CartRepository)
	productRepo := new(mocks.ProductRepository)
	cartHandler := handlers.NewCartHandler(service.NewCartService(cartRepo, productRepo))

	return cartRepo, productRepo, cartHandler
}

// authenticatedRequest builds a request carrying validated claims and a
// logger, the way the middleware chain would.
func authenticatedRequest(method, url string, body []byte) (*http.Request, primitive.ObjectID) {
	req := httptest.NewRequest(method, url, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	userID := primitive.NewObjectID()
	claims := &models.Claims{
		UserID: userID.Hex(),
		Email:  "test@example.com",
		Role:   models.RoleUser,
	}

	ctx := context.WithValue(req.Context(), middleware.UserContextKey, claims)
	ctx = middleware.ContextWithLogger(ctx, slog.Default())

	return req.WithContext(ctx), userID
}

func decodeEnvelope(t *testing.T, body []byte) *response.APIResponse {
	t.Helper()

	var resp response.APIResponse
	assert.NoError(t, json.Unmarshal(body, &resp))

	return &resp
}

func TestCartHandler_GetCart(t *testing.T) {
	t.Run("Success - Retrieve Cart", func(t *testing.T) {
		// Arrange
		cartRepo, _, cartHandler := setupCartTest()
		req, userID := authenticatedRequest("GET", "/api/v1/carts", nil)
		recorder := httptest.NewRecorder()

		snapshot := []byte(`[{"productId":"68b1c0ffee0000000000abcd","name":"A2 Ghee","price":"500","quantity":2}]`)
		cartRepo.On("LoadSnapshot", mock.Anything, userID).Return(snapshot, nil).Once()

		// Act
		cartHandler.GetCart()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)

		resp := decodeEnvelope(t, recorder.Body.Bytes())
		assert.True(t, resp.Success)

		data, err := json.Marshal(resp.Data)
		assert.NoError(t, err)

		var cart models.CartResponse
		assert.NoError(t, json.Unmarshal(data, &cart))
		assert.Len(t, cart.Items, 1)
		assert.True(t, cart.TotalAmount.Equal(decimal.NewFromInt(1280)))

		cartRepo.AssertExpectations(t)
	})

	t.Run("Failure - Unauthenticated", func(t *testing.T) {
		_, _, cartHandler := setupCartTest()

		req := httptest.NewRequest("GET", "/api/v1/carts", nil)
		req = req.WithContext(middleware.ContextWithLogger(req.Context(), slog.Default()))
		recorder := httptest.NewRecorder()

		cartHandler.GetCart()(recorder, req)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)

		resp := decodeEnvelope(t, recorder.Body.Bytes())
		assert.False(t, resp.Success)
		assert.Equal(t, appErrors.ErrCodeUnauthorized, resp.Error.Code)
	})
}

func TestCartHandler_AddItem(t *testing.T) {
	t.Run("Success - Item Added", func(t *testing.T) {
		cartRepo, productRepo, cartHandler := setupCartTest()

		productID := primitive.NewObjectID()
		body, _ := json.Marshal(models.AddItemRequest{ProductID: productID.Hex(), Quantity: 2})

		req, userID := authenticatedRequest("POST", "/api/v1/carts/items", body)
		recorder := httptest.NewRecorder()

		product := &models.Product{
			ID:    productID,
			Name:  "A2 Ghee",
			Price: decimal.NewFromInt(500),
			Stock: 10,
		}

		productRepo.On("GetProductByID", mock.Anything, productID).Return(product, nil).Once()
		cartRepo.On("LoadSnapshot", mock.Anything, userID).Return(nil, nil).Once()
		cartRepo.On("SaveSnapshot", mock.Anything, userID, mock.AnythingOfType("[]uint8")).Return(nil).Once()

		cartHandler.AddItem()(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)

		resp := decodeEnvelope(t, recorder.Body.Bytes())
		assert.True(t, resp.Success)

		cartRepo.AssertExpectations(t)
		productRepo.AssertExpectations(t)
	})

	t.Run("Failure - Validation Rejects Zero Quantity", func(t *testing.T) {
		cartRepo, _, cartHandler := setupCartTest()

		body, _ := json.Marshal(models.AddItemRequest{ProductID: primitive.NewObjectID().Hex(), Quantity: 0})

		req, _ := authenticatedRequest("POST", "/api/v1/carts/items", body)
		recorder := httptest.NewRecorder()

		cartHandler.AddItem()(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)

		var resp response.Response
		assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.Equal(t, response.StatusError, resp.Status)

		cartRepo.AssertNotCalled(t, "SaveSnapshot")
	})

	t.Run("Failure - Unknown Product", func(t *testing.T) {
		_, productRepo, cartHandler := setupCartTest()

		productID := primitive.NewObjectID()
		body, _ := json.Marshal(models.AddItemRequest{ProductID: productID.Hex(), Quantity: 1})

		req, _ := authenticatedRequest("POST", "/api/v1/carts/items", body)
		recorder := httptest.NewRecorder()

		productRepo.On("GetProductByID", mock.Anything, productID).
			Return(nil, assert.AnError).Once()

		cartHandler.AddItem()(recorder, req)

		assert.Equal(t, http.StatusNotFound, recorder.Code)

		resp := decodeEnvelope(t, recorder.Body.Bytes())
		assert.Equal(t, appErrors.ErrCodeNotFound, resp.Error.Code)
	})
}

func TestCartHandler_RemoveItem(t *testing.T) {
	t.Run("Success - Item Removed", func(t *testing.T) {
		cartRepo, _, cartHandler := setupCartTest()

		req, userID := authenticatedRequest("DELETE", "/api/v1/carts/items/68b1c0ffee0000000000abcd", nil)
		req.SetPathValue("id", "68b1c0ffee0000000000abcd")
		recorder := httptest.NewRecorder()

		snapshot := []byte(`[{"productId":"68b1c0ffee0000000000abcd","name":"A2 Ghee","price":"500","quantity":2}]`)
		cartRepo.On("LoadSnapshot", mock.Anything, userID).Return(snapshot, nil).Once()
		cartRepo.On("SaveSnapshot", mock.Anything, userID, mock.AnythingOfType("[]uint8")).Return(nil).Once()

		cartHandler.RemoveItem()(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)

		resp := decodeEnvelope(t, recorder.Body.Bytes())
		assert.True(t, resp.Success)

		data, err := json.Marshal(resp.Data)
		assert.NoError(t, err)

		var cart models.CartResponse
		assert.NoError(t, json.Unmarshal(data, &cart))
		assert.Empty(t, cart.Items)

		cartRepo.AssertExpectations(t)
	})
}
