package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/thebagdis/storefront/internal/api/middleware"
	"github.com/thebagdis/storefront/internal/errors"
	"github.com/thebagdis/storefront/internal/models"
	service "github.com/thebagdis/storefront/internal/services"
	"github.com/thebagdis/storefront/internal/utils"
	"github.com/thebagdis/storefront/internal/utils/response"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CartHandler struct {
	cartService *service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService, validator: validator.New()}
}

func (h *CartHandler) userID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	claims, ok := currentClaims(r)
	if !ok {
		response.Error(w, errors.UnauthorizedError("Authentication required"))

		return primitive.NilObjectID, false
	}

	id, err := claimsUserID(claims)
	if err != nil {
		response.Error(w, errors.UnauthorizedError("Invalid token subject"))

		return primitive.NilObjectID, false
	}

	return id, true
}

func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := h.userID(w, r)
		if !ok {
			return
		}

		cart, err := h.cartService.GetCart(r.Context(), userID)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		userID, ok := h.userID(w, r)
		if !ok {
			return
		}

		var req models.AddItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		cart, err := h.cartService.AddItem(r.Context(), userID, &req)
		if err != nil {
			logger.Warn("Failed to add cart item", slog.String("productId", req.ProductID), slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) UpdateQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := h.userID(w, r)
		if !ok {
			return
		}

		var req models.UpdateQuantityRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		cart, err := h.cartService.UpdateQuantity(r.Context(), userID, &req)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := h.userID(w, r)
		if !ok {
			return
		}

		productID := r.PathValue("id")
		if productID == "" {
			response.Error(w, errors.BadRequestError("Product ID is required"))

			return
		}

		cart, err := h.cartService.RemoveItem(r.Context(), userID, productID)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) ClearCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := h.userID(w, r)
		if !ok {
			return
		}

		cart, err := h.cartService.ClearCart(r.Context(), userID)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}
